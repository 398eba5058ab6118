package domain

import (
	"github.com/golang-jwt/jwt"

	"github.com/x-xyz/yieldbot/base/ctx"
)

type JwtCustomClaims struct {
	// TelegramId is the admin the token was issued to
	TelegramId string `json:"data"`
	jwt.StandardClaims
}

type AuthUsecase interface {
	// SignToken issues an admin token, it fails with ErrForbidden for non admins
	SignToken(c ctx.Ctx, telegramId string) (string, error)
	ParseToken(c ctx.Ctx, token string) (telegramId string, err error)
}
