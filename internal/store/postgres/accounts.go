package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MrJamesThe3rd/shopsight/internal/account"
)

type AccountStore struct {
	db *sql.DB
}

func NewAccountStore(db *sql.DB) *AccountStore {
	return &AccountStore{db: db}
}

func (s *AccountStore) CreateAccount(ctx context.Context, acc *account.Account) error {
	query := `
		INSERT INTO accounts (username, password_hash, role, business_name, business_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.db.ExecContext(ctx, query,
		acc.Username,
		acc.PasswordHash,
		acc.Role,
		acc.BusinessName,
		acc.BusinessType,
		acc.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return account.ErrExists
		}

		return fmt.Errorf("creating account: %w", err)
	}

	return nil
}

func scanAccount(row *sql.Row) (*account.Account, error) {
	var acc account.Account

	var role, businessType string

	if err := row.Scan(
		&acc.Username, &acc.PasswordHash, &role,
		&acc.BusinessName, &businessType, &acc.CreatedAt,
	); err != nil {
		return nil, err
	}

	acc.Role = account.Role(role)
	acc.BusinessType = account.BusinessType(businessType)

	return &acc, nil
}

const selectAccountColumns = `username, password_hash, role, business_name, business_type, created_at`

func (s *AccountStore) GetAccount(ctx context.Context, username string) (*account.Account, error) {
	query := `SELECT ` + selectAccountColumns + ` FROM accounts WHERE username = $1`

	acc, err := scanAccount(s.db.QueryRowContext(ctx, query, username))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, account.ErrNotFound
		}

		return nil, fmt.Errorf("getting account: %w", err)
	}

	return acc, nil
}

func (s *AccountStore) ListAccounts(ctx context.Context) ([]*account.Account, error) {
	query := `SELECT ` + selectAccountColumns + ` FROM accounts ORDER BY username ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	defer rows.Close()

	var accs []*account.Account

	for rows.Next() {
		var acc account.Account

		var role, businessType string

		if err := rows.Scan(
			&acc.Username, &acc.PasswordHash, &role,
			&acc.BusinessName, &businessType, &acc.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}

		acc.Role = account.Role(role)
		acc.BusinessType = account.BusinessType(businessType)
		accs = append(accs, &acc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating account rows: %w", err)
	}

	return accs, nil
}
