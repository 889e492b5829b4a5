package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/terraincognita07/nutrilog/internal/db"
	"github.com/terraincognita07/nutrilog/internal/i18n"
	"github.com/terraincognita07/nutrilog/internal/models"
	"github.com/terraincognita07/nutrilog/internal/services"
)

const testSecretKey = "0123456789abcdef0123456789abcdef"

var testNow = time.Date(2026, time.February, 18, 12, 0, 0, 0, time.UTC)

type eventRecorder struct {
	mu     sync.Mutex
	events []models.JournalEvent
}

func (recorder *eventRecorder) Publish(_ context.Context, event models.JournalEvent) {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	recorder.events = append(recorder.events, event)
}

func (recorder *eventRecorder) types() []string {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	types := make([]string, 0, len(recorder.events))
	for _, event := range recorder.events {
		types = append(types, event.Type)
	}
	return types
}

func newTestApp(t *testing.T) (*fiber.App, *eventRecorder) {
	t.Helper()

	logger, _ := test.NewNullLogger()
	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "nutrilog-test.db"), logger)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := database.DB(); err == nil {
			sqlDB.Close()
		}
	})

	i18nManager, err := i18n.NewEmbeddedManager(i18n.LangEN)
	if err != nil {
		t.Fatalf("init i18n: %v", err)
	}

	recorder := &eventRecorder{}
	store := services.NewEntryStore(db.NewRepositories(database).KeyValues, logger)
	handler, err := NewHandler(testSecretKey, time.UTC, Dependencies{
		Journal:  services.NewJournalService(store, recorder),
		Profiles: services.NewProfileService(store, recorder),
		Stats:    services.NewStatsService(store),
		I18n:     i18nManager,
		Logger:   logger,
	})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}
	handler.now = func() time.Time { return testNow }

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	RegisterRoutes(app, handler)
	return app, recorder
}

func bearerFor(t *testing.T, subject string) string {
	t.Helper()

	token, err := services.BuildAccessToken([]byte(testSecretKey), subject, time.Hour, testNow)
	if err != nil {
		t.Fatalf("build access token: %v", err)
	}
	return "Bearer " + token
}

type testRequest struct {
	method   string
	path     string
	body     any
	auth     string
	language string
}

func doRequest(t *testing.T, app *fiber.App, request testRequest) (int, []byte) {
	t.Helper()

	var body io.Reader
	if request.body != nil {
		encoded, err := json.Marshal(request.body)
		if err != nil {
			t.Fatalf("encode request body: %v", err)
		}
		body = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(request.method, request.path, body)
	if request.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if request.auth != "" {
		req.Header.Set("Authorization", request.auth)
	}
	if request.language != "" {
		req.Header.Set("Accept-Language", request.language)
	}

	response, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", request.method, request.path, err)
	}
	defer response.Body.Close()

	payload, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	return response.StatusCode, payload
}

func decodeJSON(t *testing.T, payload []byte, target any) {
	t.Helper()
	if err := json.Unmarshal(payload, target); err != nil {
		t.Fatalf("decode response %q: %v", string(payload), err)
	}
}

func expectStatus(t *testing.T, got int, want int, payload []byte) {
	t.Helper()
	if got != want {
		t.Fatalf("expected status %d, got %d (body %s)", want, got, string(payload))
	}
}
