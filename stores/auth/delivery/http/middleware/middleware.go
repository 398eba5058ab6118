package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/x-xyz/yieldbot/base/ctx"
	"github.com/x-xyz/yieldbot/base/delivery"
	"github.com/x-xyz/yieldbot/domain"
	"github.com/x-xyz/yieldbot/domain/botuser"
)

const keyTelegramId = "telegramId"

type AuthMiddleware struct {
	auth  domain.AuthUsecase
	users botuser.Usecase
}

func New(auth domain.AuthUsecase, users botuser.Usecase) *AuthMiddleware {
	return &AuthMiddleware{
		auth:  auth,
		users: users,
	}
}

// Auth requires a valid `Authorization: Bearer <token>` header
func (m *AuthMiddleware) Auth() echo.MiddlewareFunc {
	return middleware.KeyAuth(m.validateAuthToken)
}

// IsAdmin re-checks the admin flag, so revoking an admin invalidates their tokens
func (m *AuthMiddleware) IsAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Get("ctx").(ctx.Ctx)
			telegramId, _ := c.Get(keyTelegramId).(string)

			if telegramId == "" || !m.users.IsAdmin(ctx, telegramId) {
				return delivery.MakeJsonResp(c, http.StatusForbidden, "require admin privilege")
			}
			return next(c)
		}
	}
}

func (m *AuthMiddleware) validateAuthToken(key string, c echo.Context) (bool, error) {
	ctx := c.Get("ctx").(ctx.Ctx)
	if id, err := m.auth.ParseToken(ctx, key); err != nil {
		ctx.WithField("err", err).Warn("auth.ParseToken failed")
		return false, nil
	} else {
		c.Set(keyTelegramId, id)
		return true, nil
	}
}
