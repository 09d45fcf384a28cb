package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/atinyakov/WorkoutTracker/internal/common"
	"github.com/atinyakov/WorkoutTracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type mockUserRepo struct {
	UserExistsFunc     func(ctx context.Context, email string) (bool, error)
	CreateUserFunc     func(ctx context.Context, user *models.User) error
	GetUserByEmailFunc func(ctx context.Context, email string) (*models.User, error)
}

func (m *mockUserRepo) UserExists(ctx context.Context, email string) (bool, error) {
	return m.UserExistsFunc(ctx, email)
}
func (m *mockUserRepo) CreateUser(ctx context.Context, user *models.User) error {
	return m.CreateUserFunc(ctx, user)
}
func (m *mockUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.GetUserByEmailFunc(ctx, email)
}

type fakeTokens struct {
	err error
}

func (f *fakeTokens) GenerateToken(userID string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "token-" + userID, nil
}

func newTestAuthService(repo UserRepository, tokens TokenIssuer) *AuthService {
	s := NewAuthService(repo, tokens)
	s.hashCost = bcrypt.MinCost
	return s
}

func TestSignup_Success(t *testing.T) {
	var stored *models.User
	repo := &mockUserRepo{
		UserExistsFunc: func(ctx context.Context, email string) (bool, error) {
			assert.Equal(t, "mattiv@matti.fi", email)
			return false, nil
		},
		CreateUserFunc: func(ctx context.Context, user *models.User) error {
			stored = user
			return nil
		},
	}
	svc := newTestAuthService(repo, &fakeTokens{})

	user, token, err := svc.Signup(context.Background(), "  MattiV@matti.fi ", "R3g5T7#gh")
	require.NoError(t, err)
	require.NotNil(t, stored)

	assert.Equal(t, "mattiv@matti.fi", user.Email)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "token-"+user.ID, token)
	assert.NotEqual(t, "R3g5T7#gh", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("R3g5T7#gh")))
}

func TestSignup_Validation(t *testing.T) {
	cases := []struct {
		name       string
		email      string
		password   string
		wantMsg    string
		wantFields []string
	}{
		{"empty both", "", "", "all fields must be filled", []string{"email", "password"}},
		{"empty password", "a@b.fi", "", "all fields must be filled", []string{"password"}},
		{"bad email", "not-an-email", "R3g5T7#gh", "email not valid", nil},
		{"display name", "Matti <m@b.fi>", "R3g5T7#gh", "email not valid", nil},
		{"weak password", "a@b.fi", "password", "password not strong enough", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newTestAuthService(&mockUserRepo{}, &fakeTokens{})
			_, _, err := svc.Signup(context.Background(), tc.email, tc.password)

			var ve *common.ValidationError
			require.True(t, errors.As(err, &ve), "expected ValidationError, got %v", err)
			assert.Equal(t, tc.wantMsg, ve.Message)
			assert.Equal(t, tc.wantFields, ve.Fields)
		})
	}
}

func TestSignup_EmailInUse(t *testing.T) {
	repo := &mockUserRepo{
		UserExistsFunc: func(context.Context, string) (bool, error) { return true, nil },
	}
	svc := newTestAuthService(repo, &fakeTokens{})

	_, _, err := svc.Signup(context.Background(), "a@b.fi", "R3g5T7#gh")
	assert.ErrorIs(t, err, common.ErrConflict)
}

func TestSignup_RaceOnInsertIsConflict(t *testing.T) {
	repo := &mockUserRepo{
		UserExistsFunc: func(context.Context, string) (bool, error) { return false, nil },
		CreateUserFunc: func(context.Context, *models.User) error { return common.ErrConflict },
	}
	svc := newTestAuthService(repo, &fakeTokens{})

	_, _, err := svc.Signup(context.Background(), "a@b.fi", "R3g5T7#gh")
	assert.ErrorIs(t, err, common.ErrConflict)
}

func TestSignup_RepositoryErrors(t *testing.T) {
	wantErr := errors.New("db down")

	t.Run("exists check", func(t *testing.T) {
		repo := &mockUserRepo{
			UserExistsFunc: func(context.Context, string) (bool, error) { return false, wantErr },
		}
		_, _, err := newTestAuthService(repo, &fakeTokens{}).Signup(context.Background(), "a@b.fi", "R3g5T7#gh")
		assert.ErrorIs(t, err, wantErr)
	})

	t.Run("token", func(t *testing.T) {
		repo := &mockUserRepo{
			UserExistsFunc: func(context.Context, string) (bool, error) { return false, nil },
			CreateUserFunc: func(context.Context, *models.User) error { return nil },
		}
		_, _, err := newTestAuthService(repo, &fakeTokens{err: wantErr}).Signup(context.Background(), "a@b.fi", "R3g5T7#gh")
		assert.ErrorIs(t, err, wantErr)
	})
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("R3g5T7#gh"), bcrypt.MinCost)
	require.NoError(t, err)
	existing := &models.User{ID: "u-1", Email: "a@b.fi", PasswordHash: string(hash)}

	repo := &mockUserRepo{
		GetUserByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			if email == existing.Email {
				return existing, nil
			}
			return nil, common.ErrNotFound
		},
	}
	svc := newTestAuthService(repo, &fakeTokens{})

	t.Run("success", func(t *testing.T) {
		user, token, err := svc.Login(context.Background(), "A@B.fi", "R3g5T7#gh")
		require.NoError(t, err)
		assert.Equal(t, "u-1", user.ID)
		assert.Equal(t, "token-u-1", token)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), "a@b.fi", "Wr0ng#pass")
		assert.ErrorIs(t, err, common.ErrUnauthorized)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), "x@b.fi", "R3g5T7#gh")
		assert.ErrorIs(t, err, common.ErrUnauthorized)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), "", "")
		var ve *common.ValidationError
		assert.True(t, errors.As(err, &ve))
	})
}

func TestStrongPassword(t *testing.T) {
	cases := map[string]bool{
		"R3g5T7#gh":   true,
		"Abcdef1!":    true,
		"Abc1!":       false,
		"abcdefg1!":   false,
		"ABCDEFG1!":   false,
		"Abcdefgh!":   false,
		"Abcdefgh1":   false,
		"Aa1!" + strings.Repeat("x", 70): false,
	}
	for p, want := range cases {
		if got := strongPassword(p); got != want {
			t.Errorf("strongPassword(%q) = %v; want %v", p, got, want)
		}
	}
}
