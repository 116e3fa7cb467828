package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/terraincognita07/shim/internal/models"
)

var errMissingBearerToken = errors.New("missing bearer token")

type authClaims struct {
	UserID uint   `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func bearerToken(c *fiber.Ctx) (string, error) {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", errMissingBearerToken
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", errMissingBearerToken
	}
	return token, nil
}

func (handler *Handler) parseToken(tokenValue string) (*authClaims, error) {
	keyFunc := func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return handler.secretKey, nil
	}

	claims := &authClaims{}
	token, err := jwt.ParseWithClaims(tokenValue, claims, keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(handler.now),
	)
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

func (handler *Handler) authenticateRequest(c *fiber.Ctx) (*models.User, error) {
	tokenValue, err := bearerToken(c)
	if err != nil {
		return nil, err
	}
	claims, err := handler.parseToken(tokenValue)
	if err != nil {
		return nil, err
	}

	user, err := handler.auth.FindActiveByID(claims.UserID)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
