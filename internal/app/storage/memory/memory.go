package memory

import (
	"context"
	"encoding/json"
	"regexp"
	"slices"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/odpi/itinfra/internal/app/storage"
	"github.com/odpi/itinfra/internal/errors"
)

// Store is an in-memory implementation of the storage interfaces. It is safe
// for concurrent use and is primarily intended for tests and local development.
// Entity properties are held as JSON documents so every read hands out a
// fresh copy.
type Store struct {
	mu            sync.RWMutex
	seq           int64
	entities      map[string]entityRecord
	relationships map[string]relationshipRecord
	byEntity      map[string]map[string]struct{}
}

type entityRecord struct {
	seq    int64
	entity storage.Entity
	doc    []byte
}

type relationshipRecord struct {
	seq int64
	rel storage.Relationship
	doc []byte
}

var _ storage.Repository = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{
		entities:      make(map[string]entityRecord),
		relationships: make(map[string]relationshipRecord),
		byEntity:      make(map[string]map[string]struct{}),
	}
}

// EntityStore implementation -------------------------------------------------

func (s *Store) CreateEntity(_ context.Context, e storage.Entity) (storage.Entity, error) {
	doc, err := encodeDoc(e.Properties)
	if err != nil {
		return storage.Entity{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if e.GUID == "" {
		e.GUID = uuid.NewString()
	} else if _, exists := s.entities[e.GUID]; exists {
		return storage.Entity{}, errors.AlreadyExists("entity", e.GUID)
	}

	now := time.Now().UTC()
	e.CreateTime = now
	e.UpdateTime = now
	e.Version = 1

	s.seq++
	s.entities[e.GUID] = entityRecord{seq: s.seq, entity: stripEntity(e), doc: doc}
	return s.entities[e.GUID].read(), nil
}

func (s *Store) UpdateEntity(_ context.Context, e storage.Entity) (storage.Entity, error) {
	doc, err := encodeDoc(e.Properties)
	if err != nil {
		return storage.Entity{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	original, ok := s.entities[e.GUID]
	if !ok {
		return storage.Entity{}, errors.NotFound("entity", e.GUID)
	}

	e.TypeName = original.entity.TypeName
	e.CreatedBy = original.entity.CreatedBy
	e.CreateTime = original.entity.CreateTime
	e.UpdateTime = time.Now().UTC()
	e.Version = original.entity.Version + 1

	s.entities[e.GUID] = entityRecord{seq: original.seq, entity: stripEntity(e), doc: doc}
	return s.entities[e.GUID].read(), nil
}

func (s *Store) GetEntity(_ context.Context, guid string) (storage.Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.entities[guid]
	if !ok {
		return storage.Entity{}, errors.NotFound("entity", guid)
	}
	return rec.read(), nil
}

func (s *Store) DeleteEntity(_ context.Context, guid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entities[guid]; !ok {
		return errors.NotFound("entity", guid)
	}
	delete(s.entities, guid)
	return nil
}

func (s *Store) FindEntities(ctx context.Context, q storage.EntityQuery) ([]storage.Entity, error) {
	re, err := storage.CompileSearch(q.SearchString)
	if err != nil {
		return nil, err
	}
	paths, err := compilePaths(q.PathFilters)
	if err != nil {
		return nil, err
	}
	types := make(map[string]struct{}, len(q.TypeNames))
	for _, name := range q.TypeNames {
		types[name] = struct{}{}
	}

	s.mu.RLock()
	matched := make([]entityRecord, 0)
	for _, rec := range s.entities {
		if len(types) > 0 {
			if _, ok := types[rec.entity.TypeName]; !ok {
				continue
			}
		}
		if slices.Contains(q.ExcludeStatuses, rec.entity.Status) {
			continue
		}
		if !storage.InZones(rec.entity.ZoneMembership, q.Zones) {
			continue
		}
		if !matchProperties(rec.doc, q.PropertyValues) || !matchSearch(rec.doc, re) {
			continue
		}
		if matchPaths(ctx, rec.doc, paths) {
			matched = append(matched, rec)
		}
	}
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool { return matched[i].seq < matched[j].seq })
	page := storage.Page(matched, q.StartFrom, q.PageSize)
	if len(page) == 0 {
		return nil, nil
	}
	result := make([]storage.Entity, 0, len(page))
	for _, rec := range page {
		result = append(result, rec.read())
	}
	return result, nil
}

func (s *Store) CountEntities(_ context.Context) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)
	for _, rec := range s.entities {
		counts[rec.entity.TypeName]++
	}
	return counts, nil
}

// RelationshipStore implementation -------------------------------------------

func (s *Store) CreateRelationship(_ context.Context, r storage.Relationship) (storage.Relationship, error) {
	doc, err := encodeDoc(r.Properties)
	if err != nil {
		return storage.Relationship{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if r.GUID == "" {
		r.GUID = uuid.NewString()
	} else if _, exists := s.relationships[r.GUID]; exists {
		return storage.Relationship{}, errors.AlreadyExists("relationship", r.GUID)
	}
	for _, end := range []string{r.End1GUID, r.End2GUID} {
		if _, ok := s.entities[end]; !ok {
			return storage.Relationship{}, errors.NotFound("entity", end)
		}
	}

	now := time.Now().UTC()
	r.CreateTime = now
	r.UpdateTime = now
	r.Version = 1
	r.Properties = nil

	s.seq++
	s.relationships[r.GUID] = relationshipRecord{seq: s.seq, rel: r, doc: doc}
	s.indexLocked(r.End1GUID, r.GUID)
	s.indexLocked(r.End2GUID, r.GUID)
	return s.relationships[r.GUID].read(), nil
}

func (s *Store) GetRelationship(_ context.Context, guid string) (storage.Relationship, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.relationships[guid]
	if !ok {
		return storage.Relationship{}, errors.NotFound("relationship", guid)
	}
	return rec.read(), nil
}

func (s *Store) DeleteRelationship(_ context.Context, guid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.deleteRelationshipLocked(guid) {
		return errors.NotFound("relationship", guid)
	}
	return nil
}

func (s *Store) FindRelationships(_ context.Context, q storage.RelationshipQuery) ([]storage.Relationship, error) {
	s.mu.RLock()
	matched := make([]relationshipRecord, 0)
	for guid := range s.byEntity[q.EntityGUID] {
		rec := s.relationships[guid]
		if q.TypeName != "" && rec.rel.TypeName != q.TypeName {
			continue
		}
		switch q.End {
		case 1:
			if rec.rel.End1GUID != q.EntityGUID {
				continue
			}
		case 2:
			if rec.rel.End2GUID != q.EntityGUID {
				continue
			}
		}
		if q.OtherGUID != "" && rec.rel.OtherEnd(q.EntityGUID) != q.OtherGUID {
			continue
		}
		matched = append(matched, rec)
	}
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool { return matched[i].seq < matched[j].seq })
	page := storage.Page(matched, q.StartFrom, q.PageSize)
	if len(page) == 0 {
		return nil, nil
	}
	result := make([]storage.Relationship, 0, len(page))
	for _, rec := range page {
		result = append(result, rec.read())
	}
	return result, nil
}

func (s *Store) DeleteEntityRelationships(_ context.Context, entityGUID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for guid := range s.byEntity[entityGUID] {
		if s.deleteRelationshipLocked(guid) {
			removed++
		}
	}
	delete(s.byEntity, entityGUID)
	return removed, nil
}

func (s *Store) indexLocked(entityGUID, relGUID string) {
	set, ok := s.byEntity[entityGUID]
	if !ok {
		set = make(map[string]struct{})
		s.byEntity[entityGUID] = set
	}
	set[relGUID] = struct{}{}
}

func (s *Store) deleteRelationshipLocked(guid string) bool {
	rec, ok := s.relationships[guid]
	if !ok {
		return false
	}
	delete(s.relationships, guid)
	for _, end := range []string{rec.rel.End1GUID, rec.rel.End2GUID} {
		if set, ok := s.byEntity[end]; ok {
			delete(set, guid)
			if len(set) == 0 {
				delete(s.byEntity, end)
			}
		}
	}
	return true
}

// Helpers --------------------------------------------------------------------

func (r entityRecord) read() storage.Entity {
	e := r.entity
	e.Properties = decodeDoc(r.doc)
	e.ZoneMembership = cloneStrings(e.ZoneMembership)
	e.EffectiveFrom = cloneTime(e.EffectiveFrom)
	e.EffectiveTo = cloneTime(e.EffectiveTo)
	return e
}

func (r relationshipRecord) read() storage.Relationship {
	rel := r.rel
	rel.Properties = decodeDoc(r.doc)
	return rel
}

func stripEntity(e storage.Entity) storage.Entity {
	e.Properties = nil
	e.ZoneMembership = cloneStrings(e.ZoneMembership)
	e.EffectiveFrom = cloneTime(e.EffectiveFrom)
	e.EffectiveTo = cloneTime(e.EffectiveTo)
	return e
}

func encodeDoc(props map[string]interface{}) ([]byte, error) {
	if len(props) == 0 {
		return nil, nil
	}
	doc, err := json.Marshal(props)
	if err != nil {
		return nil, errors.InvalidParameter("properties", err.Error())
	}
	return doc, nil
}

func decodeDoc(doc []byte) map[string]interface{} {
	if len(doc) == 0 {
		return nil
	}
	var props map[string]interface{}
	if err := json.Unmarshal(doc, &props); err != nil || len(props) == 0 {
		return nil
	}
	return props
}

func matchProperties(doc []byte, values map[string]string) bool {
	if len(values) == 0 {
		return true
	}
	for name, want := range values {
		res := gjson.GetBytes(doc, name)
		if res.Exists() && res.String() == want {
			return true
		}
	}
	return false
}

func matchSearch(doc []byte, re *regexp.Regexp) bool {
	if re == nil {
		return true
	}
	return anyString(gjson.ParseBytes(doc), re.MatchString)
}

func anyString(res gjson.Result, match func(string) bool) bool {
	switch {
	case res.IsObject(), res.IsArray():
		found := false
		res.ForEach(func(_, v gjson.Result) bool {
			found = anyString(v, match)
			return !found
		})
		return found
	case res.Type == gjson.String:
		return match(res.Str)
	default:
		return false
	}
}

type pathMatcher struct {
	eval  func(context.Context, interface{}) (interface{}, error)
	value string
}

func compilePaths(filters []storage.PathFilter) ([]pathMatcher, error) {
	out := make([]pathMatcher, 0, len(filters))
	for _, f := range filters {
		eval, err := jsonpath.New(f.Path)
		if err != nil {
			return nil, errors.InvalidParameter("pathFilter", err.Error())
		}
		out = append(out, pathMatcher{eval: eval, value: f.Value})
	}
	return out, nil
}

func matchPaths(ctx context.Context, doc []byte, paths []pathMatcher) bool {
	if len(paths) == 0 {
		return true
	}
	if len(doc) == 0 {
		return false
	}
	var v interface{}
	if err := json.Unmarshal(doc, &v); err != nil {
		return false
	}
	for _, p := range paths {
		got, err := p.eval(ctx, v)
		if err != nil || render(got) != p.value {
			return false
		}
	}
	return true
}

// render formats a decoded JSON value the way postgres renders a jsonb scalar
// as text.
func render(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return ""
	default:
		raw, _ := json.Marshal(t)
		return string(raw)
	}
}

func cloneStrings(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return append([]string(nil), s...)
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
