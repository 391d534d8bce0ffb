package middleware

import (
	"net/http"

	"app/internal/repository"

	"github.com/labstack/echo/v4"
)

// TokenVersionGuardはJWTのtvをDBの現在値と突き合わせる。
// AuthJWTの後段に積む。ズレていたら強制ログアウト済みとして401。
func TokenVersionGuard(userRepo repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, okID := c.Get(CtxUserIDKey).(int64)
			tv, okTV := c.Get(CtxTokenVersionKey).(int)
			if !okID || userID <= 0 || !okTV || tv < 0 {
				return unauthorized(c)
			}

			user, err := userRepo.FindByID(c.Request().Context(), userID)
			if err != nil || user == nil {
				return unauthorized(c)
			}

			//停止中のユーザーと、tvが古いトークンはここで落とす
			if !user.IsActive || user.TokenVersion != tv {
				return unauthorized(c)
			}

			return next(c)
		}
	}
}

// RequireAdminはADMINロール以外を403で落とす。
// TokenVersionGuardの後段に積む前提で、ロールはコンテキストから読む。
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(CtxUserRoleKey).(string)
			if !ok || role == "" {
				return unauthorized(c)
			}
			if role != "ADMIN" {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "admin only"})
			}
			return next(c)
		}
	}
}
