package matching

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Alias maps a raw product name seen in imported files to the name the
// business actually uses.
type Alias struct {
	Pattern   string    `json:"pattern"`
	Product   string    `json:"product"`
	CreatedAt time.Time `json:"created_at"`
}

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=matching
type Repository interface {
	ListAliases(ctx context.Context, username string) ([]Alias, error)
	SaveAlias(ctx context.Context, username string, alias Alias) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest looks for an alias whose pattern appears in the raw product name,
// case-insensitively. The longest pattern wins, the most recent one on equal
// length. Returns empty string when nothing matches.
func (s *Service) Suggest(ctx context.Context, username, rawProduct string) (string, error) {
	aliases, err := s.repo.ListAliases(ctx, username)
	if err != nil {
		return "", fmt.Errorf("listing aliases: %w", err)
	}

	raw := strings.ToLower(rawProduct)

	var best *Alias
	for i := range aliases {
		a := &aliases[i]
		if a.Pattern == "" || !strings.Contains(raw, strings.ToLower(a.Pattern)) {
			continue
		}

		if best == nil ||
			len(a.Pattern) > len(best.Pattern) ||
			(len(a.Pattern) == len(best.Pattern) && a.CreatedAt.After(best.CreatedAt)) {
			best = a
		}
	}

	if best == nil {
		return "", nil
	}

	return best.Product, nil
}

// Learn remembers that raw names containing pattern should import as product.
func (s *Service) Learn(ctx context.Context, username, pattern, product string) error {
	pattern = strings.TrimSpace(pattern)
	product = strings.TrimSpace(product)

	if pattern == "" || product == "" {
		return fmt.Errorf("pattern and product are required")
	}

	alias := Alias{
		Pattern:   pattern,
		Product:   product,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.SaveAlias(ctx, username, alias); err != nil {
		return fmt.Errorf("saving alias: %w", err)
	}

	return nil
}
