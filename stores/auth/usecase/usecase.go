package usecase

import (
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/golang-jwt/jwt"

	"github.com/x-xyz/yieldbot/base/ctx"
	"github.com/x-xyz/yieldbot/domain"
	"github.com/x-xyz/yieldbot/domain/botuser"
)

const tokenTTL = 24 * time.Hour

type impl struct {
	jwtSecret []byte
	users     botuser.Usecase
	clock     clock.Clock
}

func New(jwtSecret string, users botuser.Usecase, clk clock.Clock) domain.AuthUsecase {
	if clk == nil {
		clk = clock.New()
	}
	return &impl{
		jwtSecret: []byte(jwtSecret),
		users:     users,
		clock:     clk,
	}
}

func (im *impl) SignToken(c ctx.Ctx, telegramId string) (string, error) {
	if len(im.jwtSecret) == 0 {
		c.Warn("auth.jwtSecret is empty, refusing to sign")
		return "", domain.ErrForbidden
	}
	if !im.users.IsAdmin(c, telegramId) {
		return "", domain.ErrForbidden
	}

	now := im.clock.Now()
	claims := domain.JwtCustomClaims{
		TelegramId: telegramId,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(tokenTTL).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	if ss, err := token.SignedString(im.jwtSecret); err != nil {
		c.WithField("err", err).Error("token.SignedString failed")
		return "", err
	} else {
		return ss, nil
	}
}

func (im *impl) ParseToken(c ctx.Ctx, str string) (string, error) {
	if len(im.jwtSecret) == 0 {
		return "", domain.ErrForbidden
	}
	token, err := jwt.ParseWithClaims(str, &domain.JwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("Unexpected signing method: %v", token.Header["alg"])
		}
		return im.jwtSecret, nil
	})
	if err != nil {
		return "", err
	}

	if claims, ok := token.Claims.(*domain.JwtCustomClaims); ok && token.Valid {
		return claims.TelegramId, nil
	}

	return "", domain.ErrForbidden
}
