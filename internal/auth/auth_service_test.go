package auth

import (
	"context"
	"testing"

	autherrors "github.com/AleBonatti/timetjek.test/internal/auth/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	getByPersonnummerFn func(ctx context.Context, personnummer string) (*User, error)
	getByIDFn           func(ctx context.Context, id uuid.UUID) (*User, error)
	updateFn            func(ctx context.Context, user *User) error
	emailInUseFn        func(ctx context.Context, email string, excludeID uuid.UUID) (bool, error)
}

func (f *fakeUserRepo) GetByPersonnummer(ctx context.Context, personnummer string) (*User, error) {
	return f.getByPersonnummerFn(ctx, personnummer)
}
func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return f.getByIDFn(ctx, id)
}
func (f *fakeUserRepo) Update(ctx context.Context, user *User) error { return f.updateFn(ctx, user) }
func (f *fakeUserRepo) EmailInUse(ctx context.Context, email string, excludeID uuid.UUID) (bool, error) {
	return f.emailInUseFn(ctx, email, excludeID)
}

func testUser(t *testing.T, password string) *User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &User{
		ID:           uuid.New(),
		Name:         "Anna Andersson",
		Email:        "anna@example.com",
		Personnummer: "811218-9876",
		Password:     string(hashed),
	}
}

func TestService_Login(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	user := testUser(t, "hemligt123")
	repo := &fakeUserRepo{
		getByPersonnummerFn: func(ctx context.Context, personnummer string) (*User, error) {
			if personnummer == user.Personnummer {
				return user, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := NewService(repo)

	access, refresh, resp, err := svc.Login(context.Background(), user.Personnummer, "hemligt123")
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.Equal(t, user.ID.String(), resp.ID)
	assert.Equal(t, user.Email, resp.Email)
}

func TestService_Login_BadCredentials(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	user := testUser(t, "hemligt123")
	repo := &fakeUserRepo{
		getByPersonnummerFn: func(ctx context.Context, personnummer string) (*User, error) {
			if personnummer == user.Personnummer {
				return user, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := NewService(repo)

	_, _, _, err := svc.Login(context.Background(), user.Personnummer, "wrong-password")
	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)

	_, _, _, err = svc.Login(context.Background(), "760117-6998", "hemligt123")
	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
}

func TestService_RefreshToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	user := testUser(t, "hemligt123")
	repo := &fakeUserRepo{
		getByPersonnummerFn: func(ctx context.Context, personnummer string) (*User, error) {
			return user, nil
		},
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*User, error) {
			assert.Equal(t, user.ID, id)
			return user, nil
		},
	}

	svc := NewService(repo)

	_, refresh, _, err := svc.Login(context.Background(), user.Personnummer, "hemligt123")
	require.NoError(t, err)

	access, newRefresh, resp, err := svc.RefreshToken(context.Background(), refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, newRefresh)
	assert.Equal(t, user.ID.String(), resp.ID)

	_, _, _, err = svc.RefreshToken(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
}

func TestService_GetMe(t *testing.T) {
	user := testUser(t, "hemligt123")
	repo := &fakeUserRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*User, error) {
			if id == user.ID {
				return user, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := NewService(repo)

	resp, err := svc.GetMe(context.Background(), user.ID.String())
	require.NoError(t, err)
	assert.Equal(t, user.Personnummer, resp.Personnummer)

	_, err = svc.GetMe(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, autherrors.ErrUserNotFound)

	_, err = svc.GetMe(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, autherrors.ErrInvalidUserID)
}

func TestService_UpdatePassword(t *testing.T) {
	user := testUser(t, "hemligt123")

	var savedPassword string
	repo := &fakeUserRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*User, error) { return user, nil },
		updateFn: func(ctx context.Context, u *User) error {
			savedPassword = u.Password
			return nil
		},
	}

	svc := NewService(repo)

	err := svc.UpdatePassword(context.Background(), user.ID.String(), UpdatePasswordRequest{
		CurrentPassword:         "wrong",
		NewPassword:             "nytthemligt",
		NewPasswordConfirmation: "nytthemligt",
	})
	assert.ErrorIs(t, err, autherrors.ErrWrongCurrentPassword)

	err = svc.UpdatePassword(context.Background(), user.ID.String(), UpdatePasswordRequest{
		CurrentPassword:         "hemligt123",
		NewPassword:             "nytthemligt",
		NewPasswordConfirmation: "nytthemligt",
	})
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(savedPassword), []byte("nytthemligt")))
}

func TestService_UpdateProfile(t *testing.T) {
	user := testUser(t, "hemligt123")

	emailTaken := false
	var saved *User
	repo := &fakeUserRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*User, error) { return user, nil },
		emailInUseFn: func(ctx context.Context, email string, excludeID uuid.UUID) (bool, error) {
			assert.Equal(t, user.ID, excludeID)
			return emailTaken, nil
		},
		updateFn: func(ctx context.Context, u *User) error { saved = u; return nil },
	}

	svc := NewService(repo)

	resp, err := svc.UpdateProfile(context.Background(), user.ID.String(), UpdateProfileRequest{
		Name:  "Anna Svensson",
		Email: "anna.svensson@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "Anna Svensson", resp.Name)
	require.NotNil(t, saved)
	assert.Equal(t, "anna.svensson@example.com", saved.Email)

	emailTaken = true
	_, err = svc.UpdateProfile(context.Background(), user.ID.String(), UpdateProfileRequest{
		Name:  "Anna Svensson",
		Email: "taken@example.com",
	})
	assert.ErrorIs(t, err, autherrors.ErrEmailTaken)
}
