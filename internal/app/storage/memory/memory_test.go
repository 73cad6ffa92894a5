package memory

import (
	"context"
	"testing"

	"github.com/odpi/itinfra/internal/app/storage"
	"github.com/odpi/itinfra/internal/errors"
)

func TestEntityLifecycle(t *testing.T) {
	store := New()
	ctx := context.Background()

	created, err := store.CreateEntity(ctx, storage.Entity{
		TypeName:   "Host",
		CreatedBy:  "erinoverview",
		Properties: map[string]interface{}{"qualifiedName": "host:1", "name": "one"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.GUID == "" || created.Version != 1 {
		t.Fatalf("unexpected created entity: %+v", created)
	}

	created.Properties["name"] = "mutated"
	got, err := store.GetEntity(ctx, created.GUID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Properties["name"] != "one" {
		t.Fatalf("store shared properties with caller: %v", got.Properties)
	}

	got.Properties["name"] = "two"
	got.UpdatedBy = "peterprofile"
	got.TypeName = "Comment"
	updated, err := store.UpdateEntity(ctx, got)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Version != 2 || updated.TypeName != "Host" || updated.CreatedBy != "erinoverview" {
		t.Fatalf("update should keep identity fields and bump version: %+v", updated)
	}

	if err := store.DeleteEntity(ctx, created.GUID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.GetEntity(ctx, created.GUID); !errors.IsNotFound(err) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if _, err := store.UpdateEntity(ctx, got); !errors.IsNotFound(err) {
		t.Fatalf("expected not found on update, got %v", err)
	}
}

func TestCreateDuplicateGUID(t *testing.T) {
	store := New()
	ctx := context.Background()
	if _, err := store.CreateEntity(ctx, storage.Entity{GUID: "g1", TypeName: "Host"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := store.CreateEntity(ctx, storage.Entity{GUID: "g1", TypeName: "Host"}); !errors.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func seed(t *testing.T, store *Store) {
	t.Helper()
	ctx := context.Background()
	docs := []storage.Entity{
		{TypeName: "Host", ZoneMembership: []string{"data-lake"}, Properties: map[string]interface{}{
			"qualifiedName": "host:lake", "name": "lake", "deployedImplementationType": "VM",
		}},
		{TypeName: "Host", ZoneMembership: []string{"quarantine"}, Properties: map[string]interface{}{
			"qualifiedName": "host:quarantine", "name": "q", "deployedImplementationType": "VM",
		}},
		{TypeName: "SoftwareServer", Properties: map[string]interface{}{
			"qualifiedName": "server:cocoMDS1", "name": "cocoMDS1",
			"extended": map[string]interface{}{"tags": []interface{}{"metadata", "omag"}},
		}},
		{TypeName: "Comment", Properties: map[string]interface{}{"commentText": "lake is full"}},
	}
	for _, e := range docs {
		if _, err := store.CreateEntity(ctx, e); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
}

func TestFindEntities(t *testing.T) {
	store := New()
	seed(t, store)
	ctx := context.Background()

	cases := []struct {
		name  string
		query storage.EntityQuery
		want  []string
	}{
		{"all", storage.EntityQuery{}, []string{"host:lake", "host:quarantine", "server:cocoMDS1", ""}},
		{"types", storage.EntityQuery{TypeNames: []string{"Host"}}, []string{"host:lake", "host:quarantine"}},
		{"search whole value", storage.EntityQuery{SearchString: "lake"}, []string{"host:lake"}},
		{"search regex", storage.EntityQuery{SearchString: "host:.*"}, []string{"host:lake", "host:quarantine"}},
		{"search nested", storage.EntityQuery{SearchString: "omag"}, []string{"server:cocoMDS1"}},
		{"by name any-of", storage.EntityQuery{PropertyValues: map[string]string{"qualifiedName": "q", "name": "q"}},
			[]string{"host:quarantine"}},
		{"path filter", storage.EntityQuery{PathFilters: []storage.PathFilter{
			{Path: "$.deployedImplementationType", Value: "VM"}}}, []string{"host:lake", "host:quarantine"}},
		{"zones", storage.EntityQuery{TypeNames: []string{"Host", "SoftwareServer"}, Zones: []string{"data-*"}},
			[]string{"host:lake", "server:cocoMDS1"}},
		{"paging", storage.EntityQuery{TypeNames: []string{"Host"}, StartFrom: 1, PageSize: 1}, []string{"host:quarantine"}},
		{"past the end", storage.EntityQuery{StartFrom: 10}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := store.FindEntities(ctx, tc.query)
			if err != nil {
				t.Fatalf("find: %v", err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("got %d entities, want %d: %+v", len(got), len(tc.want), got)
			}
			for i, e := range got {
				qn, _ := e.Properties["qualifiedName"].(string)
				if qn != tc.want[i] {
					t.Fatalf("result %d: got %q want %q", i, qn, tc.want[i])
				}
			}
		})
	}
}

func TestFindEntitiesRejectsBadExpressions(t *testing.T) {
	store := New()
	seed(t, store)
	ctx := context.Background()
	if _, err := store.FindEntities(ctx, storage.EntityQuery{SearchString: "("}); !errors.IsInvalid(err) {
		t.Fatalf("expected invalid search string, got %v", err)
	}
	if _, err := store.FindEntities(ctx, storage.EntityQuery{PathFilters: []storage.PathFilter{{Path: "$[", Value: "x"}}}); !errors.IsInvalid(err) {
		t.Fatalf("expected invalid path filter, got %v", err)
	}
}

func TestRelationships(t *testing.T) {
	store := New()
	ctx := context.Background()
	host, _ := store.CreateEntity(ctx, storage.Entity{TypeName: "Host"})
	server, _ := store.CreateEntity(ctx, storage.Entity{TypeName: "SoftwareServer"})
	other, _ := store.CreateEntity(ctx, storage.Entity{TypeName: "SoftwareServer"})

	rel, err := store.CreateRelationship(ctx, storage.Relationship{
		TypeName: "DeployedOn", End1GUID: server.GUID, End2GUID: host.GUID,
		Properties: map[string]interface{}{"deployer": "ops"},
	})
	if err != nil {
		t.Fatalf("create relationship: %v", err)
	}
	if _, err := store.CreateRelationship(ctx, storage.Relationship{
		TypeName: "DeployedOn", End1GUID: other.GUID, End2GUID: host.GUID,
	}); err != nil {
		t.Fatalf("create second relationship: %v", err)
	}
	if _, err := store.CreateRelationship(ctx, storage.Relationship{
		TypeName: "DeployedOn", End1GUID: "missing", End2GUID: host.GUID,
	}); !errors.IsNotFound(err) {
		t.Fatalf("expected not found end, got %v", err)
	}

	got, err := store.GetRelationship(ctx, rel.GUID)
	if err != nil || got.Properties["deployer"] != "ops" {
		t.Fatalf("get relationship: %+v %v", got, err)
	}

	atHost, _ := store.FindRelationships(ctx, storage.RelationshipQuery{EntityGUID: host.GUID, End: 2})
	if len(atHost) != 2 {
		t.Fatalf("expected 2 relationships at host, got %d", len(atHost))
	}
	asEnd1, _ := store.FindRelationships(ctx, storage.RelationshipQuery{EntityGUID: host.GUID, End: 1})
	if asEnd1 != nil {
		t.Fatalf("host is never end 1: %+v", asEnd1)
	}
	byOther, _ := store.FindRelationships(ctx, storage.RelationshipQuery{EntityGUID: host.GUID, OtherGUID: other.GUID})
	if len(byOther) != 1 || byOther[0].End1GUID != other.GUID {
		t.Fatalf("filter by other end: %+v", byOther)
	}

	removed, err := store.DeleteEntityRelationships(ctx, host.GUID)
	if err != nil || removed != 2 {
		t.Fatalf("delete entity relationships: %d %v", removed, err)
	}
	if rels, _ := store.FindRelationships(ctx, storage.RelationshipQuery{EntityGUID: server.GUID}); rels != nil {
		t.Fatalf("index not cleaned at the other end: %+v", rels)
	}
	if err := store.DeleteRelationship(ctx, rel.GUID); !errors.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCountEntities(t *testing.T) {
	store := New()
	seed(t, store)
	counts, err := store.CountEntities(context.Background())
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if counts["Host"] != 2 || counts["SoftwareServer"] != 1 || counts["Comment"] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}
}
