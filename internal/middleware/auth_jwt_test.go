package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"app/internal/config"
	"app/internal/domain/model"
	repo "app/internal/repository"
)

const testSecret = "test-secret"

func signedToken(t *testing.T, method jwt.SigningMethod, secret string, claims AccessClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func validClaims() AccessClaims {
	return AccessClaims{
		Role:         "USER",
		TokenVersion: 3,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "42",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(15 * time.Minute)),
		},
	}
}

// チェーンの終端。到達したらコンテキストの中身を返す。
func capture(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"user_id": c.Get(CtxUserIDKey),
		"role":    c.Get(CtxUserRoleKey),
		"tv":      c.Get(CtxTokenVersionKey),
	})
}

func runAuthJWT(t *testing.T, authz string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := AuthJWT(config.Config{JWTSecret: testSecret})
	require.NoError(t, mw(capture)(c))
	return rec
}

func TestAuthJWT_ValidTokenPopulatesContext(t *testing.T) {
	tok := signedToken(t, jwt.SigningMethodHS256, testSecret, validClaims())

	rec := runAuthJWT(t, "Bearer "+tok)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user_id":42,"role":"USER","tv":3}`, rec.Body.String())
}

func TestAuthJWT_RejectsBadTokens(t *testing.T) {
	expired := validClaims()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	badSub := validClaims()
	badSub.Subject = "not-a-number"

	noRole := validClaims()
	noRole.Role = ""

	cases := []struct {
		name  string
		authz string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"wrong secret", "Bearer " + signedToken(t, jwt.SigningMethodHS256, "other-secret", validClaims())},
		{"wrong method", "Bearer " + signedToken(t, jwt.SigningMethodHS512, testSecret, validClaims())},
		{"expired", "Bearer " + signedToken(t, jwt.SigningMethodHS256, testSecret, expired)},
		{"non-numeric sub", "Bearer " + signedToken(t, jwt.SigningMethodHS256, testSecret, badSub)},
		{"empty role", "Bearer " + signedToken(t, jwt.SigningMethodHS256, testSecret, noRole)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := runAuthJWT(t, tc.authz)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.JSONEq(t, `{"error":"unauthorized"}`, rec.Body.String())
		})
	}
}

// TokenVersionGuard用の決め打ちリポジトリ
type stubUserRepo struct {
	user *model.User
}

func (s *stubUserRepo) Create(ctx context.Context, user *model.User) error { return nil }
func (s *stubUserRepo) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	if s.user == nil || s.user.ID != userID {
		return nil, repo.ErrUserNotFound
	}
	return s.user, nil
}
func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return nil, repo.ErrUserNotFound
}
func (s *stubUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return nil, repo.ErrUserNotFound
}
func (s *stubUserRepo) Update(ctx context.Context, user *model.User) error { return nil }
func (s *stubUserRepo) List(ctx context.Context, page int, limit int) ([]model.User, int64, error) {
	return nil, 0, nil
}
func (s *stubUserRepo) IncrementTokenVersion(ctx context.Context, userID int64) error { return nil }

func runGuard(t *testing.T, mw echo.MiddlewareFunc, setup func(echo.Context)) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if setup != nil {
		setup(c)
	}
	require.NoError(t, mw(capture)(c))
	return rec
}

func TestTokenVersionGuard(t *testing.T) {
	users := &stubUserRepo{user: &model.User{ID: 42, TokenVersion: 3, IsActive: true}}

	withClaims := func(tv int) func(echo.Context) {
		return func(c echo.Context) {
			c.Set(CtxUserIDKey, int64(42))
			c.Set(CtxTokenVersionKey, tv)
		}
	}

	// 一致していれば通過
	rec := runGuard(t, TokenVersionGuard(users), withClaims(3))
	assert.Equal(t, http.StatusOK, rec.Code)

	// tvが古いトークンは401（強制ログアウト後のトークン）
	rec = runGuard(t, TokenVersionGuard(users), withClaims(2))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// 停止ユーザーは一致していても401
	users.user.IsActive = false
	rec = runGuard(t, TokenVersionGuard(users), withClaims(3))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	// ロールなしは401
	rec := runGuard(t, RequireAdmin(), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// USERは403
	rec = runGuard(t, RequireAdmin(), func(c echo.Context) { c.Set(CtxUserRoleKey, "USER") })
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error":"admin only"}`, rec.Body.String())

	// ADMINは通過
	rec = runGuard(t, RequireAdmin(), func(c echo.Context) { c.Set(CtxUserRoleKey, "ADMIN") })
	assert.Equal(t, http.StatusOK, rec.Code)
}
