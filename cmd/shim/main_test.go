package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/terraincognita07/shim/internal/config"
	"github.com/terraincognita07/shim/internal/db"
	"github.com/terraincognita07/shim/internal/logger"
)

func TestValidateSecret(t *testing.T) {
	valid := "0123456789abcdef0123456789abcdef"

	tests := []struct {
		name    string
		cfg     config.Config
		wantErr bool
	}{
		{name: "short secret", cfg: config.Config{SecretKey: "too-short-secret"}, wantErr: true},
		{name: "ephemeral in production", cfg: config.Config{AppEnv: "production", SecretKey: valid, EphemeralSecret: true}, wantErr: true},
		{name: "ephemeral in development", cfg: config.Config{AppEnv: "development", SecretKey: valid, EphemeralSecret: true}},
		{name: "configured in production", cfg: config.Config{AppEnv: "production", SecretKey: valid}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateSecret(tt.cfg)
			if tt.wantErr && !errors.Is(err, errInsecureSecret) {
				t.Fatalf("expected errInsecureSecret, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	}
}

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestScoreCommandPrintsJSON(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		wantScore    float64
		wantLevel    string
		wantCategory string
	}{
		{
			name:         "ideal day",
			args:         []string{"score", "--emotion", "5", "--conversation", "5", "--meetings", "3", "--transport", "walk", "--congestion", "1"},
			wantScore:    99.7,
			wantLevel:    "HIGH",
			wantCategory: "social",
		},
		{
			name:         "without weather",
			args:         []string{"score", "--emotion", "5", "--conversation", "5", "--meetings", "3", "--transport", "walk", "--congestion", "1", "--no-weather"},
			wantScore:    91,
			wantLevel:    "HIGH",
			wantCategory: "social",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := runRoot(t, tt.args...)
			if err != nil {
				t.Fatalf("score command: %v", err)
			}

			var result scoreOutput
			if err := json.Unmarshal([]byte(output), &result); err != nil {
				t.Fatalf("decode output %q: %v", output, err)
			}
			if result.EnergyScore != tt.wantScore || result.EnergyLevel != tt.wantLevel || result.Category != tt.wantCategory {
				t.Fatalf("expected %v %s %s, got %+v", tt.wantScore, tt.wantLevel, tt.wantCategory, result)
			}
		})
	}
}

func TestScoreCommandRejectsInvalidInput(t *testing.T) {
	cases := [][]string{
		{"score", "--emotion", "7"},
		{"score", "--transport", "rocket"},
		{"score", "--condition", "hail"},
	}
	for _, args := range cases {
		if _, err := runRoot(t, args...); err == nil {
			t.Fatalf("expected %v to fail", args)
		}
	}
}

func TestNewAppServesHealthWithoutProviderKeys(t *testing.T) {
	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "shim-main.db"))
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

	cfg := config.Config{
		SecretKey:   "0123456789abcdef0123456789abcdef",
		HTTPTimeout: time.Second,
	}
	app, err := newApp(cfg, database, time.UTC, logger.NewNop())
	if err != nil {
		t.Fatalf("new app: %v", err)
	}

	response, err := app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil), -1)
	if err != nil {
		t.Fatalf("healthz: %v", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", response.StatusCode)
	}

	response, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/records", nil), -1)
	if err != nil {
		t.Fatalf("records: %v", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", response.StatusCode)
	}
}
