package flatfile

import (
	"context"

	"github.com/MrJamesThe3rd/shopsight/internal/matching"
)

const aliasesFile = "aliases.json"

type AliasStore struct {
	db *DB
}

func NewAliasStore(db *DB) *AliasStore {
	return &AliasStore{db: db}
}

func (s *AliasStore) ListAliases(ctx context.Context, username string) ([]matching.Alias, error) {
	return getList[matching.Alias](s.db, aliasesFile, username)
}

func (s *AliasStore) SaveAlias(ctx context.Context, username string, alias matching.Alias) error {
	return appendItem(s.db, aliasesFile, username, alias)
}
