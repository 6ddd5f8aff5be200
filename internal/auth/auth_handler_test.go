package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/AleBonatti/timetjek.test/internal/auth"
	autherrors "github.com/AleBonatti/timetjek.test/internal/auth/errors"
	"github.com/AleBonatti/timetjek.test/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeAuthService struct {
	loginFn          func(ctx context.Context, personnummer, password string) (string, string, auth.AuthResponse, error)
	refreshTokenFn   func(ctx context.Context, refreshToken string) (string, string, auth.AuthResponse, error)
	getMeFn          func(ctx context.Context, userID string) (*auth.AuthResponse, error)
	updatePasswordFn func(ctx context.Context, userID string, req auth.UpdatePasswordRequest) error
	updateProfileFn  func(ctx context.Context, userID string, req auth.UpdateProfileRequest) (auth.AuthResponse, error)
}

func (f *fakeAuthService) Login(ctx context.Context, personnummer, password string) (string, string, auth.AuthResponse, error) {
	return f.loginFn(ctx, personnummer, password)
}
func (f *fakeAuthService) RefreshToken(ctx context.Context, refreshToken string) (string, string, auth.AuthResponse, error) {
	return f.refreshTokenFn(ctx, refreshToken)
}
func (f *fakeAuthService) GetMe(ctx context.Context, userID string) (*auth.AuthResponse, error) {
	return f.getMeFn(ctx, userID)
}
func (f *fakeAuthService) UpdatePassword(ctx context.Context, userID string, req auth.UpdatePasswordRequest) error {
	return f.updatePasswordFn(ctx, userID, req)
}
func (f *fakeAuthService) UpdateProfile(ctx context.Context, userID string, req auth.UpdateProfileRequest) (auth.AuthResponse, error) {
	return f.updateProfileFn(ctx, userID, req)
}

func setupValidators() {
	gin.SetMode(gin.TestMode)
	apperror.Init()
	auth.RegisterValidators()
}

func TestHandler_Login(t *testing.T) {
	setupValidators()

	svc := &fakeAuthService{
		loginFn: func(ctx context.Context, personnummer, password string) (string, string, auth.AuthResponse, error) {
			assert.Equal(t, "811218-9876", personnummer)
			return "access", "refresh", auth.AuthResponse{ID: uuid.New().String()}, nil
		},
	}
	h := auth.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"personnummer":"811218-9876","password":"hemligt123"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Login(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"access_token":"access"`)
	assert.Contains(t, w.Body.String(), `"refresh_token":"refresh"`)
}

func TestHandler_Login_InvalidPersonnummer(t *testing.T) {
	setupValidators()

	h := auth.NewHandler(&fakeAuthService{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"personnummer":"811218-9875","password":"hemligt123"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Login(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "personnummer")
}

func TestHandler_Login_WrongPassword(t *testing.T) {
	setupValidators()

	svc := &fakeAuthService{
		loginFn: func(ctx context.Context, personnummer, password string) (string, string, auth.AuthResponse, error) {
			return "", "", auth.AuthResponse{}, autherrors.ErrInvalidCredentials
		},
	}
	h := auth.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"personnummer":"811218-9876","password":"wrong"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Login(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "credentials are incorrect")
}

func TestHandler_Logout(t *testing.T) {
	setupValidators()

	h := auth.NewHandler(&fakeAuthService{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id", uuid.New().String())
	c.Request = httptest.NewRequest(http.MethodPost, "/logout", nil)
	h.Logout(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Logged out successfully")

	// The access_token cookie is cleared so cookie-based sessions end too.
	cookies := w.Result().Cookies()
	var cleared bool
	for _, ck := range cookies {
		if ck.Name == "access_token" && ck.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}

func TestHandler_Me(t *testing.T) {
	setupValidators()
	userID := uuid.New().String()

	svc := &fakeAuthService{
		getMeFn: func(ctx context.Context, uid string) (*auth.AuthResponse, error) {
			assert.Equal(t, userID, uid)
			return &auth.AuthResponse{ID: uid, Name: "Anna Andersson"}, nil
		},
	}
	h := auth.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id", userID)
	c.Request = httptest.NewRequest(http.MethodGet, "/user", nil)
	h.Me(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Anna Andersson")
}

func TestHandler_UpdatePassword_ConfirmationMismatch(t *testing.T) {
	setupValidators()

	h := auth.NewHandler(&fakeAuthService{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id", uuid.New().String())
	c.Request = httptest.NewRequest(http.MethodPut, "/user/password",
		strings.NewReader(`{"current_password":"old","new_password":"nytthemligt","new_password_confirmation":"different"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.UpdatePassword(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestHandler_UpdateProfile(t *testing.T) {
	setupValidators()
	userID := uuid.New().String()

	svc := &fakeAuthService{
		updateProfileFn: func(ctx context.Context, uid string, req auth.UpdateProfileRequest) (auth.AuthResponse, error) {
			return auth.AuthResponse{ID: uid, Name: req.Name, Email: req.Email}, nil
		},
	}
	h := auth.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id", userID)
	c.Request = httptest.NewRequest(http.MethodPut, "/user/profile",
		strings.NewReader(`{"name":"Anna Svensson","email":"anna.svensson@example.com"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.UpdateProfile(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Profile updated successfully")
}
