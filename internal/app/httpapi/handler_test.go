package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/odpi/itinfra/internal/app/domain/enums"
	"github.com/odpi/itinfra/internal/app/handlers"
	"github.com/odpi/itinfra/internal/app/instance"
	"github.com/odpi/itinfra/internal/app/storage/memory"
	"github.com/odpi/itinfra/pkg/logger"
)

const base = "/servers/cocoMDS1/open-metadata/access-services/it-infrastructure/users/garygeeke"

func newTestHandler(t *testing.T, opts Options) http.Handler {
	t.Helper()
	inst, err := instance.New(instance.Options{
		Config: handlers.Config{
			ServerName:        "cocoMDS1",
			LocalServerUserID: "cocoMDS1npa",
			MaxPageSize:       50,
		},
		Repository: memory.New(),
		Logger:     logger.NewNop(),
	})
	if err != nil {
		t.Fatalf("new instance: %v", err)
	}
	reg := instance.NewRegistry()
	if err := reg.Register(inst); err != nil {
		t.Fatalf("register: %v", err)
	}
	opts.Logger = logger.NewNop()
	return NewHandler(reg, opts)
}

func jsonRequest(method, path string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func do(t *testing.T, h http.Handler, method, path string, body any, out any) int {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, jsonRequest(method, path, body))
	if out != nil {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("%s %s: decode %q: %v", method, path, rec.Body.String(), err)
		}
	}
	return rec.Code
}

func TestAssetLifecycle(t *testing.T) {
	h := newTestHandler(t, Options{})

	var created GUIDResponse
	code := do(t, h, http.MethodPost, base+"/hosts", map[string]any{
		"externalSourceName": "discovery",
		"properties": map[string]any{
			"qualifiedName":   "Host:cocoHost1",
			"name":            "cocoHost1",
			"operatingSystem": "Linux",
		},
	}, &created)
	if code != http.StatusOK || created.GUID == "" {
		t.Fatalf("create host: %d %+v", code, created)
	}
	if created.RelatedHTTPCode != http.StatusOK {
		t.Fatalf("relatedHTTPCode = %d", created.RelatedHTTPCode)
	}

	var got AssetResponse
	if code := do(t, h, http.MethodGet, base+"/assets/"+created.GUID, nil, &got); code != http.StatusOK {
		t.Fatalf("get asset: %d", code)
	}
	if got.Element == nil || got.Element.ElementHeader.Type.TypeName != "Host" {
		t.Fatalf("unexpected element %+v", got.Element)
	}
	if got.Element.ElementHeader.Origin.ExternalSourceName != "discovery" {
		t.Fatalf("external source not recorded: %+v", got.Element.ElementHeader.Origin)
	}

	var void VoidResponse
	code = do(t, h, http.MethodPost, base+"/assets/"+created.GUID+"/update?isMergeUpdate=true", map[string]any{
		"properties": map[string]any{"description": "build host"},
	}, &void)
	if code != http.StatusOK {
		t.Fatalf("update: %d %+v", code, void)
	}
	code = do(t, h, http.MethodPost, base+"/assets/"+created.GUID+"/status", map[string]any{"status": "DEPRECATED"}, &void)
	if code != http.StatusOK {
		t.Fatalf("status: %d %+v", code, void)
	}
	do(t, h, http.MethodGet, base+"/assets/"+created.GUID, nil, &got)
	if got.Element.Properties.Description != "build host" || got.Element.ElementHeader.Status != enums.ElementStatusDeprecated {
		t.Fatalf("update not applied: %+v", got.Element)
	}

	var found AssetListResponse
	code = do(t, h, http.MethodPost, base+"/assets/by-search-string?startFrom=0&pageSize=10", map[string]any{"searchString": "coco.*"}, &found)
	if code != http.StatusOK || len(found.Elements) != 1 {
		t.Fatalf("find: %d %+v", code, found)
	}

	if code := do(t, h, http.MethodPost, base+"/assets/"+created.GUID+"/delete", nil, &void); code != http.StatusOK {
		t.Fatalf("delete: %d %+v", code, void)
	}
	var missing AssetResponse
	if code := do(t, h, http.MethodGet, base+"/assets/"+created.GUID, nil, &missing); code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", code)
	}
	if missing.RelatedHTTPCode != http.StatusNotFound || missing.ExceptionErrorMessageID != "OMAS-IT-INFRASTRUCTURE-404-001" {
		t.Fatalf("unexpected envelope %+v", missing.FFDCResponse)
	}
	if missing.Element != nil {
		t.Fatalf("element returned with error")
	}
}

func TestUnknownServerIsNotActive(t *testing.T) {
	h := newTestHandler(t, Options{})
	var resp VoidResponse
	path := "/servers/nowhere/open-metadata/access-services/it-infrastructure/users/garygeeke/assets/abc"
	if code := do(t, h, http.MethodGet, path, nil, &resp); code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", code)
	}
	if resp.ExceptionErrorMessageID != "OMAS-IT-INFRASTRUCTURE-404-002" {
		t.Fatalf("unexpected message id %q", resp.ExceptionErrorMessageID)
	}
	if resp.ExceptionProperties["serverName"] != "nowhere" {
		t.Fatalf("server name missing from %v", resp.ExceptionProperties)
	}
}

func TestRequestBodyValidation(t *testing.T) {
	h := newTestHandler(t, Options{})

	cases := []struct {
		name string
		path string
		body string
	}{
		{"empty body", base + "/hosts", ""},
		{"unknown field", base + "/hosts", `{"properties":{"qualifiedName":"Host:x","colour":"blue"}}`},
		{"malformed", base + "/hosts", `{"properties":`},
		{"missing qualified name", base + "/hosts", `{"properties":{"name":"x"}}`},
		{"bad page size", base + "/assets/by-name?pageSize=ten", `{"name":"x"}`},
		{"negative page size", base + "/assets/by-name?pageSize=-1", `{"name":"x"}`},
		{"bad merge flag", base + "/assets/abc/update?isMergeUpdate=maybe", `{"properties":{}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, tc.path, bytes.NewBufferString(tc.body)))
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
			var resp FFDCResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.ExceptionKind != "InvalidParameter" {
				t.Fatalf("unexpected kind %q", resp.ExceptionKind)
			}
		})
	}
}

func TestProfileAndComments(t *testing.T) {
	h := newTestHandler(t, Options{})

	var profile GUIDResponse
	code := do(t, h, http.MethodPost, base+"/it-profiles", map[string]any{
		"properties":   map[string]any{"qualifiedName": "ITProfile:cocoMDS1npa", "knownName": "Metadata server"},
		"userIdentity": map[string]any{"userId": "cocoMDS1npa"},
	}, &profile)
	if code != http.StatusOK {
		t.Fatalf("create profile: %d %+v", code, profile)
	}

	var byUser ITProfileResponse
	if code := do(t, h, http.MethodGet, base+"/it-profiles/user-ids/cocoMDS1npa", nil, &byUser); code != http.StatusOK {
		t.Fatalf("profile by user id: %d %+v", code, byUser.FFDCResponse)
	}
	if byUser.Element.ElementHeader.GUID != profile.GUID || len(byUser.Element.UserIdentities) != 1 {
		t.Fatalf("unexpected profile %+v", byUser.Element)
	}

	var comment GUIDResponse
	code = do(t, h, http.MethodPost, base+"/elements/"+profile.GUID+"/comments", map[string]any{
		"properties": map[string]any{"commentText": "needs an owner", "commentType": "SUGGESTION", "isPublic": true},
	}, &comment)
	if code != http.StatusOK {
		t.Fatalf("add comment: %d %+v", code, comment)
	}
	var reply GUIDResponse
	code = do(t, h, http.MethodPost, base+"/elements/"+comment.GUID+"/comments", map[string]any{
		"properties": map[string]any{"commentText": "agreed", "isPublic": true},
	}, &reply)
	if code != http.StatusOK {
		t.Fatalf("add reply: %d %+v", code, reply)
	}

	var comments CommentListResponse
	if code := do(t, h, http.MethodGet, base+"/elements/"+profile.GUID+"/comments", nil, &comments); code != http.StatusOK {
		t.Fatalf("list comments: %d", code)
	}
	if len(comments.Elements) != 1 || len(comments.Elements[0].Replies) != 1 {
		t.Fatalf("unexpected comments %+v", comments.Elements)
	}

	other := "/servers/cocoMDS1/open-metadata/access-services/it-infrastructure/users/erinoverview"
	var denied VoidResponse
	code = do(t, h, http.MethodPost, other+"/comments/"+comment.GUID+"/delete", nil, &denied)
	if code != http.StatusForbidden || denied.ExceptionKind != "UserNotAuthorized" {
		t.Fatalf("expected 403, got %d %+v", code, denied)
	}
}

func TestLicenses(t *testing.T) {
	h := newTestHandler(t, Options{})

	var host, licenseType GUIDResponse
	do(t, h, http.MethodPost, base+"/hosts", map[string]any{"properties": map[string]any{"qualifiedName": "Host:licensed"}}, &host)
	code := do(t, h, http.MethodPost, base+"/license-types", map[string]any{
		"properties": map[string]any{"qualifiedName": "LicenseType:apache-2", "title": "Apache 2.0"},
	}, &licenseType)
	if code != http.StatusOK {
		t.Fatalf("create license type: %d %+v", code, licenseType)
	}

	var license GUIDResponse
	code = do(t, h, http.MethodPost, base+"/elements/"+host.GUID+"/license-types/"+licenseType.GUID, map[string]any{"licensee": "Coco Pharmaceuticals"}, &license)
	if code != http.StatusOK {
		t.Fatalf("license element: %d %+v", code, license)
	}

	var licenses LicenseListResponse
	do(t, h, http.MethodGet, base+"/elements/"+host.GUID+"/licenses", nil, &licenses)
	if len(licenses.Elements) != 1 || licenses.Elements[0].LicenseType.ElementHeader.GUID != licenseType.GUID {
		t.Fatalf("unexpected licenses %+v", licenses.Elements)
	}

	var void VoidResponse
	if code := do(t, h, http.MethodPost, base+"/license-types/"+licenseType.GUID+"/delete", nil, &void); code != http.StatusBadRequest {
		t.Fatalf("removing a granted license type should fail, got %d", code)
	}
	if code := do(t, h, http.MethodPost, base+"/licenses/"+license.GUID+"/delete", nil, &void); code != http.StatusOK {
		t.Fatalf("unlicense: %d %+v", code, void)
	}
	if code := do(t, h, http.MethodPost, base+"/license-types/"+licenseType.GUID+"/delete", nil, &void); code != http.StatusOK {
		t.Fatalf("remove license type: %d %+v", code, void)
	}
}

func TestValidValues(t *testing.T) {
	h := newTestHandler(t, Options{})

	var all ValidValuesResponse
	if code := do(t, h, http.MethodGet, base+"/valid-values", nil, &all); code != http.StatusOK {
		t.Fatalf("valid values: %d", code)
	}
	if len(all.Vocabularies) < 5 {
		t.Fatalf("expected every vocabulary, got %d", len(all.Vocabularies))
	}

	var one ValidValuesResponse
	do(t, h, http.MethodGet, base+"/valid-values/ProcessStatus", nil, &one)
	if len(one.Vocabularies) != 1 || one.Vocabularies[0].Name != "ProcessStatus" {
		t.Fatalf("unexpected vocabulary %+v", one.Vocabularies)
	}

	if code := do(t, h, http.MethodGet, base+"/valid-values/Colour", nil, &one); code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown enum, got %d", code)
	}
}

func TestAuditTrail(t *testing.T) {
	audit := NewAuditLog(10, nil)
	h := newTestHandler(t, Options{Audit: audit})

	do(t, h, http.MethodGet, base+"/assets/missing", nil, nil)
	do(t, h, http.MethodPost, base+"/hosts", map[string]any{"properties": map[string]any{"qualifiedName": "Host:audited"}}, nil)

	var trail AuditResponse
	if code := do(t, h, http.MethodGet, base+"/audit?limit=2", nil, &trail); code != http.StatusOK {
		t.Fatalf("audit: %d", code)
	}
	if len(trail.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(trail.Entries))
	}
	first := trail.Entries[0]
	if first.Status != http.StatusNotFound || first.User != "garygeeke" || first.Server != "cocoMDS1" {
		t.Fatalf("unexpected entry %+v", first)
	}
	if trail.Entries[1].Method != http.MethodPost {
		t.Fatalf("entries out of order: %+v", trail.Entries)
	}
}

func TestHealth(t *testing.T) {
	h := newTestHandler(t, Options{Ready: func(context.Context) error { return nil }})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	h = newTestHandler(t, Options{Ready: func(context.Context) error { return errors.New("database down") }})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestElementCounts(t *testing.T) {
	h := newTestHandler(t, Options{})
	do(t, h, http.MethodPost, base+"/hosts", map[string]any{"properties": map[string]any{"qualifiedName": "Host:a"}}, nil)
	do(t, h, http.MethodPost, base+"/hosts", map[string]any{"properties": map[string]any{"qualifiedName": "Host:b"}}, nil)

	var counts ElementCountsResponse
	if code := do(t, h, http.MethodGet, base+"/element-counts", nil, &counts); code != http.StatusOK {
		t.Fatalf("counts: %d", code)
	}
	if counts.Counts["Host"] != 2 {
		t.Fatalf("unexpected counts %v", counts.Counts)
	}
}

func TestMergeUpdateHonoursSentProperties(t *testing.T) {
	h := newTestHandler(t, Options{})
	other := "/servers/cocoMDS1/open-metadata/access-services/it-infrastructure/users/erinoverview"

	var host GUIDResponse
	do(t, h, http.MethodPost, base+"/hosts", map[string]any{
		"properties": map[string]any{"qualifiedName": "Host:commented", "name": "commented"},
	}, &host)
	var comment GUIDResponse
	code := do(t, h, http.MethodPost, base+"/elements/"+host.GUID+"/comments", map[string]any{
		"properties": map[string]any{"commentText": "who patches this?", "commentType": "QUESTION", "isPublic": true},
	}, &comment)
	if code != http.StatusOK {
		t.Fatalf("add comment: %d %+v", code, comment)
	}

	var void VoidResponse
	if code := do(t, h, http.MethodPost, base+"/comments/"+comment.GUID+"/update", map[string]any{
		"properties": map[string]any{"commentText": "who patches this host?"},
	}, &void); code != http.StatusOK {
		t.Fatalf("merge text: %d %+v", code, void)
	}
	var got CommentResponse
	if code := do(t, h, http.MethodGet, base+"/comments/"+comment.GUID, nil, &got); code != http.StatusOK || got.Element == nil {
		t.Fatalf("get comment: %d %+v", code, got.FFDCResponse)
	}
	if p := got.Element.Properties; p.CommentType != enums.CommentTypeQuestion || !p.IsPublic || p.CommentText != "who patches this host?" {
		t.Fatalf("merge should keep unsent properties: %+v", p)
	}

	if code := do(t, h, http.MethodPost, base+"/comments/"+comment.GUID+"/update", map[string]any{
		"properties": map[string]any{"isPublic": false},
	}, &void); code != http.StatusOK {
		t.Fatalf("merge visibility: %d %+v", code, void)
	}
	var listed CommentListResponse
	if code := do(t, h, http.MethodGet, other+"/elements/"+host.GUID+"/comments", nil, &listed); code != http.StatusOK {
		t.Fatalf("list comments: %d", code)
	}
	if len(listed.Elements) != 0 {
		t.Fatalf("private comment visible to another user: %+v", listed.Elements)
	}
	got = CommentResponse{}
	if code := do(t, h, http.MethodGet, base+"/comments/"+comment.GUID, nil, &got); code != http.StatusOK || got.Element == nil {
		t.Fatalf("get comment: %d %+v", code, got.FFDCResponse)
	}
	if p := got.Element.Properties; p.IsPublic || p.CommentType != enums.CommentTypeQuestion {
		t.Fatalf("only isPublic should change: %+v", p)
	}
}
