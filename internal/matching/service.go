// Package matching maps raw statement descriptions to preferred ones, so
// repeated imports of the same merchant end up with a consistent label.
package matching

import (
	"context"
	"strings"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=matching
type Repository interface {
	FindMatch(ctx context.Context, rawDescription string) (string, error)
	CreateMapping(ctx context.Context, rawPattern, preferredDescription string) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Resolve returns the preferred description for a raw statement description,
// or the cleaned-up raw description itself when no mapping exists.
func (s *Service) Resolve(ctx context.Context, rawDescription string) (string, error) {
	raw := clean(rawDescription)
	if raw == "" {
		return "", nil
	}

	preferred, err := s.repo.FindMatch(ctx, raw)
	if err != nil {
		return "", err
	}

	if preferred == "" {
		return raw, nil
	}

	return preferred, nil
}

// Learn remembers a mapping between a raw pattern and a preferred
// description. Re-learning an existing pattern overwrites it.
func (s *Service) Learn(ctx context.Context, rawPattern, preferredDescription string) error {
	return s.repo.CreateMapping(ctx, clean(rawPattern), clean(preferredDescription))
}

// clean trims and collapses internal whitespace runs.
func clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
