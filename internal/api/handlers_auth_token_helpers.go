package api

import (
	"strconv"

	"github.com/golang-jwt/jwt/v5"
	"github.com/terraincognita07/shim/internal/models"
)

func (handler *Handler) buildToken(user *models.User) (string, error) {
	now := handler.now()

	claims := authClaims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(handler.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(handler.secretKey)
}
