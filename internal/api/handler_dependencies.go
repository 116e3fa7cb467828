package api

import (
	"errors"
	"time"

	"github.com/terraincognita07/shim/internal/logger"
)

type Dependencies struct {
	Auth      AuthService
	Users     UserService
	Records   RecordService
	Weather   WeatherService
	SecretKey string
	Location  *time.Location
	Logger    *logger.Logger

	// TokenTTL defaults to seven days.
	TokenTTL time.Duration
}

func NewHandler(deps Dependencies) (*Handler, error) {
	if deps.Auth == nil || deps.Users == nil || deps.Records == nil || deps.Weather == nil {
		return nil, errors.New("api handler requires auth, user, record and weather services")
	}
	if len(deps.SecretKey) == 0 {
		return nil, errors.New("api handler requires a secret key")
	}

	location := deps.Location
	if location == nil {
		location = time.UTC
	}
	log := deps.Logger
	if log == nil {
		log = logger.NewNop()
	}
	tokenTTL := deps.TokenTTL
	if tokenTTL <= 0 {
		tokenTTL = defaultAuthTokenTTL
	}

	return &Handler{
		auth:         deps.Auth,
		users:        deps.Users,
		records:      deps.Records,
		weather:      deps.Weather,
		secretKey:    []byte(deps.SecretKey),
		tokenTTL:     tokenTTL,
		location:     location,
		log:          log,
		loginLimiter: newAttemptLimiter(),
		now:          time.Now,
	}, nil
}
