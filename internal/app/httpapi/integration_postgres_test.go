//go:build integration && postgres

package httpapi

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/odpi/itinfra/internal/app/handlers"
	"github.com/odpi/itinfra/internal/app/instance"
	"github.com/odpi/itinfra/internal/app/storage/postgres"
	"github.com/odpi/itinfra/internal/platform/migrations"
	"github.com/odpi/itinfra/pkg/logger"
)

// Runs the REST surface against a real Postgres repository.
func TestIntegrationPostgres(t *testing.T) {
	_ = godotenv.Load()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set; skipping Postgres integration")
	}

	ctx := context.Background()
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()
	if err := migrations.Apply(ctx, db); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	inst, err := instance.New(instance.Options{
		Config:     handlers.Config{ServerName: "integration", MaxPageSize: 100},
		Repository: postgres.New(db),
		Logger:     logger.NewNop(),
	})
	if err != nil {
		t.Fatalf("new instance: %v", err)
	}
	reg := instance.NewRegistry()
	if err := reg.Register(inst); err != nil {
		t.Fatalf("register: %v", err)
	}
	h := NewHandler(reg, Options{Logger: logger.NewNop()})

	base := "/servers/integration/open-metadata/access-services/it-infrastructure/users/garygeeke"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, jsonRequest(http.MethodPost, base+"/hosts", map[string]any{
		"properties": map[string]any{"qualifiedName": "Host:integration-" + t.Name(), "name": "integration"},
	}))
	if rec.Code != http.StatusOK {
		t.Fatalf("create host: %d %s", rec.Code, rec.Body.String())
	}
	var created GUIDResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	t.Cleanup(func() {
		h.ServeHTTP(httptest.NewRecorder(), jsonRequest(http.MethodPost, base+"/assets/"+created.GUID+"/delete", nil))
	})

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, jsonRequest(http.MethodGet, base+"/assets/"+created.GUID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("get host: %d %s", rec.Code, rec.Body.String())
	}
}
