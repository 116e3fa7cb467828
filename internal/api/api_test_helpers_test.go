package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/shim/internal/db"
	"github.com/terraincognita07/shim/internal/services"
)

const testSecretKey = "test-secret-key-with-enough-entropy-0123456789"

type testEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *errorBody      `json:"error"`
}

type testApp struct {
	app     *fiber.App
	handler *Handler
	repos   *db.Repositories
}

// newTestApp wires real services over a temporary sqlite database. Upstream
// providers are left unset so weather and prescriptions use their fallbacks.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "shim-api.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	repos := db.NewRepositories(database)
	location := time.FixedZone("KST", 9*60*60)
	weather := services.NewWeatherService(nil, nil, repos.WeatherLogs, nil)
	prescriber := services.NewPrescriptionService(nil, repos.Prescriptions, nil)
	records := services.NewRecordService(services.RecordServiceDeps{
		Users:         repos.Users,
		Records:       repos.Records,
		Prescriptions: repos.Prescriptions,
		WeatherLogs:   repos.WeatherLogs,
		Weather:       weather,
		Prescriber:    prescriber,
		Location:      location,
	})

	handler, err := NewHandler(Dependencies{
		Auth:      services.NewAuthService(repos.Users),
		Users:     services.NewUserService(repos.Users, repos.Records),
		Records:   records,
		Weather:   weather,
		SecretKey: testSecretKey,
		Location:  location,
	})
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}

	app := fiber.New(fiber.Config{ErrorHandler: handler.ErrorHandler})
	RegisterRoutes(app, handler)
	return &testApp{app: app, handler: handler, repos: repos}
}

func (env *testApp) do(t *testing.T, method string, path string, token string, body any) (int, testEnvelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	request := httptest.NewRequest(method, path, reader)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := env.app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("%s %s read body failed: %v", method, path, err)
	}

	var parsed testEnvelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &parsed); err != nil {
			t.Fatalf("%s %s decode body %q: %v", method, path, string(raw), err)
		}
	}
	return response.StatusCode, parsed
}

func (env *testApp) registerUser(t *testing.T, email string, name string) string {
	t.Helper()

	status, body := env.do(t, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"email":    email,
		"password": "walk1ng-home",
		"name":     name,
	})
	if status != http.StatusCreated {
		t.Fatalf("register %s expected 201, got %d (%+v)", email, status, body.Error)
	}

	var token tokenResponse
	decodeData(t, body, &token)
	if token.Token == "" {
		t.Fatalf("expected token in register response")
	}
	return token.Token
}

func decodeData(t *testing.T, body testEnvelope, target any) {
	t.Helper()

	if !body.Success {
		t.Fatalf("expected success envelope, got error %+v", body.Error)
	}
	if err := json.Unmarshal(body.Data, target); err != nil {
		t.Fatalf("decode data %s: %v", string(body.Data), err)
	}
}

func defaultRecordBody() fiber.Map {
	return fiber.Map{
		"emotion_level":      4,
		"conversation_level": 3,
		"meeting_count":      2,
		"transport_mode":     "walk",
		"congestion_level":   2,
		"location":           "강남구",
		"journal":            "점심에 산책했다",
	}
}
