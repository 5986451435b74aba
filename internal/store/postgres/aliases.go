package postgres

import (
	"context"
	"database/sql"

	"github.com/MrJamesThe3rd/shopsight/internal/matching"
)

// aliasCollection shares the collections table with the record types.
const aliasCollection = "aliases"

type AliasStore struct {
	db *sql.DB
}

func NewAliasStore(db *sql.DB) *AliasStore {
	return &AliasStore{db: db}
}

func (s *AliasStore) ListAliases(ctx context.Context, username string) ([]matching.Alias, error) {
	return getRecords[matching.Alias](ctx, s.db, username, aliasCollection)
}

func (s *AliasStore) SaveAlias(ctx context.Context, username string, alias matching.Alias) error {
	return appendRecord(ctx, s.db, username, aliasCollection, alias)
}
