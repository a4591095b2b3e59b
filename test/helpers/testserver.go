package helpers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"projecthub_backend/internal/app"
	"projecthub_backend/internal/config"
	"projecthub_backend/internal/database"
	"projecthub_backend/internal/email"
	"projecthub_backend/internal/logger"
	"projecthub_backend/internal/services"
	"projecthub_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// TestServer hosts the full router over the test database. Requests are
// dispatched in-process so each test can pin its own transaction to the
// request context; DBMiddleware prefers that over the shared pool, which
// lets tests run in parallel and roll everything back at the end.
type TestServer struct {
	Router *gin.Engine
	DB     *gorm.DB
	Email  *email.MockProvider
}

func NewTestServer(t *testing.T) *TestServer {
	gin.SetMode(gin.TestMode)

	config.LoadConfig()
	cfg := config.GetConfig()
	logger.Init("test")

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect to test database (%s): %v", cfg.Database.DSN, err)
	}

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	mockEmail := email.NewMockProvider()
	serviceContainer := services.NewServiceContainer(mockEmail)
	router := app.SetupRouter(db, serviceContainer)

	return &TestServer{
		Router: router,
		DB:     db,
		Email:  mockEmail,
	}
}

func (ts *TestServer) Close() {
	sqlDB, _ := ts.DB.DB()
	sqlDB.Close()
}

// BeginTransaction opens the per-test transaction every write goes into.
func (ts *TestServer) BeginTransaction(t *testing.T) *gorm.DB {
	tx := ts.DB.Begin()
	if tx.Error != nil {
		t.Fatalf("failed to begin test transaction: %v", tx.Error)
	}
	return tx
}

func (ts *TestServer) RollbackTransaction(t *testing.T, tx *gorm.DB) {
	if err := tx.Rollback().Error; err != nil && err != gorm.ErrInvalidTransaction {
		t.Logf("rollback failed: %v", err)
	}
}

// SendRequest dispatches an HTTP request through the router with the test
// transaction attached to the request context.
func (ts *TestServer) SendRequest(t *testing.T, tx *gorm.DB, method, path, token string, body interface{}) (*http.Response, string) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, path, reqBody)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}

	if tx != nil {
		ctx := context.WithValue(req.Context(), contextkeys.DBContextKey, tx)
		req = req.WithContext(ctx)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	ts.Router.ServeHTTP(w, req)

	res := w.Result()
	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	res.Body.Close()

	return res, string(resBody)
}
