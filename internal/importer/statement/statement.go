// Package statement parses the semicolon-separated statement format used for
// wallet imports:
//
//	date;type;amount;description
//	05.01.2025;expense;1 234,56;Продукты
//
// Dates are dd.MM.yyyy (with an optional HH:mm:ss part), amounts use either a
// decimal comma or a decimal point, and the type column accepts income/expense
// in any case. A header row is skipped when present.
package statement

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	enc "github.com/alekseyp/fintrack/internal/encoding"
	"github.com/alekseyp/fintrack/internal/transaction"
)

var dateFormats = []string{"02.01.2006 15:04:05", "02.01.2006"}

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]transaction.CreateParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	var params []transaction.CreateParams

	for i, row := range rows {
		if len(row) == 0 || isBlank(row) {
			continue
		}

		if i == 0 && isHeader(row) {
			continue
		}

		if len(row) < 4 {
			return nil, fmt.Errorf("row %d: expected 4 columns, got %d", i+1, len(row))
		}

		date, err := parseDate(row[0])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}

		typ := transaction.Type(strings.ToLower(strings.TrimSpace(row[1])))
		if !typ.Valid() {
			return nil, fmt.Errorf("row %d: unknown transaction type %q", i+1, row[1])
		}

		amount, err := parseAmount(row[2])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}

		if amount.IsNegative() {
			return nil, fmt.Errorf("row %d: negative amount %s", i+1, amount)
		}

		desc := truncate(strings.TrimSpace(row[3]), transaction.MaxDescriptionLen)

		params = append(params, transaction.CreateParams{
			Date:        date,
			Type:        typ,
			Amount:      amount,
			Description: desc,
		})
	}

	return params, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)

	for _, format := range dateFormats {
		if t, err := time.ParseInLocation(format, s, time.Local); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

// parseAmount accepts both "1 234,56" and "1234.56" style amounts.
func parseAmount(s string) (decimal.Decimal, error) {
	clean := strings.Map(func(r rune) rune {
		if r == ' ' || r == ' ' {
			return -1
		}

		return r
	}, strings.TrimSpace(s))

	if strings.Contains(clean, ",") {
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("unparseable amount %q", s)
	}

	return d, nil
}

// truncate cuts s to at most n runes. Counting runes rather than bytes keeps
// truncated Cyrillic descriptions valid UTF-8.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}

	return string([]rune(s)[:n])
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}

// isHeader treats a first row whose date column does not parse as a header.
func isHeader(row []string) bool {
	if len(row) == 0 {
		return false
	}

	_, err := parseDate(row[0])

	return err != nil
}
