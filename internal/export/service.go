// Package export renders the monthly summary as CSV.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/alekseyp/fintrack/internal/report"
)

type Service struct {
	reports *report.Service
	dir     string
}

func NewService(reports *report.Service, dir string) *Service {
	return &Service{reports: reports, dir: dir}
}

// WriteMonth streams the monthly summary to w as CSV. Each row carries the
// group columns alongside the member transaction, so the file round-trips the
// full report.
func (s *Service) WriteMonth(ctx context.Context, w io.Writer, year int, month time.Month) error {
	groups, err := s.reports.SummarizeMonth(ctx, year, month)
	if err != nil {
		return fmt.Errorf("summarize month: %w", err)
	}

	cw := csv.NewWriter(w)

	header := []string{"type", "group_total", "id", "wallet_id", "date", "amount", "description"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, g := range groups {
		for _, tx := range g.Transactions {
			record := []string{
				string(g.Type),
				g.Total.StringFixed(2),
				fmt.Sprintf("%d", tx.ID),
				fmt.Sprintf("%d", tx.WalletID),
				tx.Date.Format(time.DateOnly),
				tx.Amount.StringFixed(2),
				tx.Description,
			}
			if err := cw.Write(record); err != nil {
				return fmt.Errorf("write record: %w", err)
			}
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	return nil
}

// ExportMonth writes the monthly summary to a file in the export directory
// and returns its path. Filenames carry a random suffix so repeated exports
// of the same month never clobber each other.
func (s *Service) ExportMonth(ctx context.Context, year int, month time.Month) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}

	name := fmt.Sprintf("summary-%04d-%02d-%s.csv", year, int(month), uuid.NewString()[:8])
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()

	if err := s.WriteMonth(ctx, f, year, month); err != nil {
		os.Remove(path)
		return "", err
	}

	return path, nil
}
