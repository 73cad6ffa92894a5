package postgres

import (
	"context"
	"database/sql"
	"os"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"github.com/odpi/itinfra/internal/app/storage"
	"github.com/odpi/itinfra/internal/errors"
	"github.com/odpi/itinfra/internal/platform/migrations"
)

var entityCols = []string{
	"guid", "type_name", "status", "properties", "zone_membership", "external_source_guid",
	"external_source_name", "created_by", "updated_by", "create_time", "update_time", "version",
	"effective_from", "effective_to",
}

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return New(db), mock
}

func TestGetEntity(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT .* FROM itinfra_entities WHERE guid = \\$1").
		WithArgs("g1").
		WillReturnRows(sqlmock.NewRows(entityCols).AddRow(
			"g1", "Host", 15, []byte(`{"qualifiedName":"host:1"}`), "{zone-a}", "", "",
			"erinoverview", "", now, now, 3, nil, nil,
		))

	e, err := store.GetEntity(context.Background(), "g1")
	if err != nil {
		t.Fatalf("get entity: %v", err)
	}
	if e.TypeName != "Host" || e.Version != 3 || e.Properties["qualifiedName"] != "host:1" {
		t.Fatalf("unexpected entity: %+v", e)
	}
	if len(e.ZoneMembership) != 1 || e.ZoneMembership[0] != "zone-a" {
		t.Fatalf("unexpected zones: %v", e.ZoneMembership)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestGetEntityNotFound(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery("SELECT .* FROM itinfra_entities").WillReturnError(sql.ErrNoRows)

	if _, err := store.GetEntity(context.Background(), "missing"); !errors.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCreateEntityDuplicate(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO itinfra_entities")).
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := store.CreateEntity(context.Background(), storage.Entity{GUID: "g1", TypeName: "Host"})
	if !errors.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestCreateRelationshipMissingEnd(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO itinfra_relationships")).
		WillReturnError(&pq.Error{Code: "23503"})

	_, err := store.CreateRelationship(context.Background(), storage.Relationship{
		TypeName: "DeployedOn", End1GUID: "a", End2GUID: "b",
	})
	if !errors.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestFindEntitiesBuildsFilters(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`FROM itinfra_entities WHERE type_name = ANY\(\$1\) AND \(properties ->> \$2 = \$3 OR properties ->> \$4 = \$5\) AND jsonb_path_query_first\(properties, \$6::jsonpath\) #>> '\{\}' = \$7 ORDER BY seq LIMIT \$8 OFFSET \$9`).
		WithArgs(sqlmock.AnyArg(), "name", "lake", "qualifiedName", "lake", "$.deployedImplementationType", "VM", 10, 5).
		WillReturnRows(sqlmock.NewRows(entityCols).AddRow(
			"g1", "Host", 15, []byte(`{"name":"lake"}`), "{}", "", "", "u", "", now, now, 1, nil, nil,
		))

	got, err := store.FindEntities(context.Background(), storage.EntityQuery{
		TypeNames:      []string{"Host"},
		PropertyValues: map[string]string{"qualifiedName": "lake", "name": "lake"},
		PathFilters:    []storage.PathFilter{{Path: "$.deployedImplementationType", Value: "VM"}},
		StartFrom:      5,
		PageSize:       10,
	})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(got) != 1 || got[0].ZoneMembership != nil {
		t.Fatalf("unexpected result: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestFindEntitiesPagesZonesInProcess(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now().UTC()

	rows := sqlmock.NewRows(entityCols).
		AddRow("g1", "Host", 15, []byte(`{}`), "{quarantine}", "", "", "u", "", now, now, 1, nil, nil).
		AddRow("g2", "Host", 15, []byte(`{}`), "{data-lake}", "", "", "u", "", now, now, 1, nil, nil).
		AddRow("g3", "Host", 15, []byte(`{}`), "{}", "", "", "u", "", now, now, 1, nil, nil)
	mock.ExpectQuery(`FROM itinfra_entities ORDER BY seq$`).WillReturnRows(rows)

	got, err := store.FindEntities(context.Background(), storage.EntityQuery{
		Zones: []string{"data-*"}, StartFrom: 1, PageSize: 5,
	})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(got) != 1 || got[0].GUID != "g3" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestFindEntitiesRejectsBadSearch(t *testing.T) {
	store, _ := newMockStore(t)
	if _, err := store.FindEntities(context.Background(), storage.EntityQuery{SearchString: "[a"}); !errors.IsInvalid(err) {
		t.Fatalf("expected invalid search, got %v", err)
	}
}

func TestCountEntities(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery("SELECT type_name, COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"type_name", "count"}).AddRow("Host", 2).AddRow("Process", 1))

	counts, err := store.CountEntities(context.Background())
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if counts["Host"] != 2 || counts["Process"] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}
}

func TestDeleteEntityRelationships(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec("DELETE FROM itinfra_relationships").WithArgs("g1").WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := store.DeleteEntityRelationships(context.Background(), "g1")
	if err != nil || n != 3 {
		t.Fatalf("delete: %d %v", n, err)
	}
}

func TestStoreIntegration(t *testing.T) {
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set; skipping postgres integration test")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := migrations.Apply(ctx, db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	store := New(db)

	host, err := store.CreateEntity(ctx, storage.Entity{TypeName: "Host", Properties: map[string]interface{}{"name": "h"}})
	if err != nil {
		t.Fatalf("create host: %v", err)
	}
	server, err := store.CreateEntity(ctx, storage.Entity{TypeName: "SoftwareServer"})
	if err != nil {
		t.Fatalf("create server: %v", err)
	}
	if _, err := store.CreateRelationship(ctx, storage.Relationship{
		TypeName: "DeployedOn", End1GUID: server.GUID, End2GUID: host.GUID,
	}); err != nil {
		t.Fatalf("create relationship: %v", err)
	}
	found, err := store.FindEntities(ctx, storage.EntityQuery{SearchString: "h", TypeNames: []string{"Host"}})
	if err != nil || len(found) == 0 {
		t.Fatalf("search: %v %v", found, err)
	}
	if _, err := store.DeleteEntityRelationships(ctx, host.GUID); err != nil {
		t.Fatalf("delete relationships: %v", err)
	}
	for _, guid := range []string{host.GUID, server.GUID} {
		if err := store.DeleteEntity(ctx, guid); err != nil {
			t.Fatalf("delete %s: %v", guid, err)
		}
	}
}
