package flatfile

import (
	"context"
	"sort"

	"github.com/MrJamesThe3rd/shopsight/internal/account"
)

const usersFile = "users.json"

type AccountStore struct {
	db *DB
}

func NewAccountStore(db *DB) *AccountStore {
	return &AccountStore{db: db}
}

func (s *AccountStore) CreateAccount(ctx context.Context, acc *account.Account) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	users, err := loadFile[account.Account](s.db, usersFile)
	if err != nil {
		return err
	}

	if _, ok := users[acc.Username]; ok {
		return account.ErrExists
	}

	users[acc.Username] = *acc

	return saveFile(s.db, usersFile, users)
}

func (s *AccountStore) GetAccount(ctx context.Context, username string) (*account.Account, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	users, err := loadFile[account.Account](s.db, usersFile)
	if err != nil {
		return nil, err
	}

	acc, ok := users[username]
	if !ok {
		return nil, account.ErrNotFound
	}

	return &acc, nil
}

func (s *AccountStore) ListAccounts(ctx context.Context) ([]*account.Account, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	users, err := loadFile[account.Account](s.db, usersFile)
	if err != nil {
		return nil, err
	}

	accs := make([]*account.Account, 0, len(users))
	for username := range users {
		acc := users[username]
		accs = append(accs, &acc)
	}

	sort.Slice(accs, func(i, j int) bool { return accs[i].Username < accs[j].Username })

	return accs, nil
}
