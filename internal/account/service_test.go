package account_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/MrJamesThe3rd/shopsight/internal/account"
)

func TestService_Register(t *testing.T) {
	type args struct {
		params account.RegisterParams
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *account.MockRepository)
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			args: args{
				params: account.RegisterParams{
					Username:     "asha",
					Password:     "hunter22",
					BusinessName: "Asha General Store",
					BusinessType: account.BusinessRetailShop,
				},
			},
			setupMock: func(m *account.MockRepository) {
				m.EXPECT().
					CreateAccount(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "ShortPassword",
			args: args{
				params: account.RegisterParams{
					Username:     "asha",
					Password:     "abc",
					BusinessType: account.BusinessRetailShop,
				},
			},
			wantErr: true,
		},
		{
			name: "BlankUsername",
			args: args{
				params: account.RegisterParams{
					Username:     "  ",
					Password:     "hunter22",
					BusinessType: account.BusinessRetailShop,
				},
			},
			wantErr: true,
		},
		{
			name: "UnknownBusinessType",
			args: args{
				params: account.RegisterParams{
					Username:     "asha",
					Password:     "hunter22",
					BusinessType: account.BusinessType("bakery"),
				},
			},
			wantErr: true,
		},
		{
			name: "UsernameTaken",
			args: args{
				params: account.RegisterParams{
					Username:     "asha",
					Password:     "hunter22",
					BusinessType: account.BusinessRetailShop,
				},
			},
			setupMock: func(m *account.MockRepository) {
				m.EXPECT().
					CreateAccount(gomock.Any(), gomock.Any()).
					Return(account.ErrExists)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := account.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := account.NewService(repo)
			got, err := svc.Register(context.Background(), tt.args.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			assert.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, account.RoleUser, got.Role)
			assert.NotEqual(t, "hunter22", got.PasswordHash)
			assert.False(t, got.CreatedAt.IsZero())
		})
	}
}

func TestService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)

	stored := &account.Account{
		Username:     "asha",
		PasswordHash: string(hash),
		Role:         account.RoleUser,
	}

	type args struct {
		username string
		password string
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *account.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			args: args{username: "asha", password: "hunter22"},
			setupMock: func(m *account.MockRepository) {
				m.EXPECT().
					GetAccount(gomock.Any(), "asha").
					Return(stored, nil)
			},
		},
		{
			name: "WrongPassword",
			args: args{username: "asha", password: "hunter23"},
			setupMock: func(m *account.MockRepository) {
				m.EXPECT().
					GetAccount(gomock.Any(), "asha").
					Return(stored, nil)
			},
			wantErr: account.ErrInvalidCredentials,
		},
		{
			name: "UnknownUser",
			args: args{username: "nobody", password: "hunter22"},
			setupMock: func(m *account.MockRepository) {
				m.EXPECT().
					GetAccount(gomock.Any(), "nobody").
					Return(nil, account.ErrNotFound)
			},
			wantErr: account.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := account.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := account.NewService(repo)
			got, err := svc.Login(context.Background(), tt.args.username, tt.args.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			assert.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, "asha", got.Username)
		})
	}
}

func TestService_EnsureAdmin(t *testing.T) {
	t.Run("CreatesWhenMissing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := account.NewMockRepository(ctrl)
		repo.EXPECT().
			GetAccount(gomock.Any(), "admin").
			Return(nil, account.ErrNotFound)
		repo.EXPECT().
			CreateAccount(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, acc *account.Account) error {
				assert.Equal(t, account.RoleAdmin, acc.Role)
				return nil
			})

		svc := account.NewService(repo)
		assert.NoError(t, svc.EnsureAdmin(context.Background(), "admin", "admin123"))
	})

	t.Run("SkipsWhenPresent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := account.NewMockRepository(ctrl)
		repo.EXPECT().
			GetAccount(gomock.Any(), "admin").
			Return(&account.Account{Username: "admin", Role: account.RoleAdmin}, nil)

		svc := account.NewService(repo)
		assert.NoError(t, svc.EnsureAdmin(context.Background(), "admin", "admin123"))
	})

	t.Run("RepoError", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := account.NewMockRepository(ctrl)
		repo.EXPECT().
			GetAccount(gomock.Any(), "admin").
			Return(nil, errors.New("db down"))

		svc := account.NewService(repo)
		assert.Error(t, svc.EnsureAdmin(context.Background(), "admin", "admin123"))
	})
}
