package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/odpi/itinfra/internal/app/storage"
	"github.com/odpi/itinfra/internal/errors"
)

// Store implements the storage interfaces backed by PostgreSQL.
type Store struct {
	db *sqlx.DB
}

var _ storage.Repository = (*Store)(nil)

// New creates a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: sqlx.NewDb(db, "postgres")}
}

const entityColumns = `guid, type_name, status, properties, zone_membership, external_source_guid,
	external_source_name, created_by, updated_by, create_time, update_time, version,
	effective_from, effective_to`

const relationshipColumns = `guid, type_name, end1_guid, end2_guid, properties, status,
	created_by, updated_by, create_time, update_time, version`

type entityRow struct {
	storage.Entity
	PropertiesRaw []byte         `db:"properties"`
	Zones         pq.StringArray `db:"zone_membership"`
}

func (r entityRow) toEntity() storage.Entity {
	e := r.Entity
	e.Properties = decodeDoc(r.PropertiesRaw)
	if len(r.Zones) > 0 {
		e.ZoneMembership = []string(r.Zones)
	}
	return e
}

type relationshipRow struct {
	storage.Relationship
	PropertiesRaw []byte `db:"properties"`
}

func (r relationshipRow) toRelationship() storage.Relationship {
	rel := r.Relationship
	rel.Properties = decodeDoc(r.PropertiesRaw)
	return rel
}

// --- EntityStore ------------------------------------------------------------

func (s *Store) CreateEntity(ctx context.Context, e storage.Entity) (storage.Entity, error) {
	if e.GUID == "" {
		e.GUID = uuid.NewString()
	}
	now := time.Now().UTC()
	e.CreateTime = now
	e.UpdateTime = now
	e.Version = 1

	doc, err := encodeDoc(e.Properties)
	if err != nil {
		return storage.Entity{}, err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO itinfra_entities (`+entityColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, e.GUID, e.TypeName, int(e.Status), doc, pq.Array(zonesOrEmpty(e.ZoneMembership)),
		e.ExternalSourceGUID, e.ExternalSourceName, e.CreatedBy, e.UpdatedBy,
		e.CreateTime, e.UpdateTime, e.Version, e.EffectiveFrom, e.EffectiveTo)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.Entity{}, errors.AlreadyExists("entity", e.GUID)
		}
		return storage.Entity{}, err
	}
	return e, nil
}

func (s *Store) UpdateEntity(ctx context.Context, e storage.Entity) (storage.Entity, error) {
	doc, err := encodeDoc(e.Properties)
	if err != nil {
		return storage.Entity{}, err
	}

	var row entityRow
	err = s.db.GetContext(ctx, &row, `
		UPDATE itinfra_entities
		SET status = $2, properties = $3, zone_membership = $4, external_source_guid = $5,
			external_source_name = $6, updated_by = $7, update_time = $8, version = version + 1,
			effective_from = $9, effective_to = $10
		WHERE guid = $1
		RETURNING `+entityColumns,
		e.GUID, int(e.Status), doc, pq.Array(zonesOrEmpty(e.ZoneMembership)), e.ExternalSourceGUID,
		e.ExternalSourceName, e.UpdatedBy, time.Now().UTC(), e.EffectiveFrom, e.EffectiveTo)
	if stderrors.Is(err, sql.ErrNoRows) {
		return storage.Entity{}, errors.NotFound("entity", e.GUID)
	}
	if err != nil {
		return storage.Entity{}, err
	}
	return row.toEntity(), nil
}

func (s *Store) GetEntity(ctx context.Context, guid string) (storage.Entity, error) {
	var row entityRow
	err := s.db.GetContext(ctx, &row, `SELECT `+entityColumns+` FROM itinfra_entities WHERE guid = $1`, guid)
	if stderrors.Is(err, sql.ErrNoRows) {
		return storage.Entity{}, errors.NotFound("entity", guid)
	}
	if err != nil {
		return storage.Entity{}, err
	}
	return row.toEntity(), nil
}

func (s *Store) DeleteEntity(ctx context.Context, guid string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM itinfra_entities WHERE guid = $1`, guid)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return errors.NotFound("entity", guid)
	}
	return nil
}

func (s *Store) FindEntities(ctx context.Context, q storage.EntityQuery) ([]storage.Entity, error) {
	if _, err := storage.CompileSearch(q.SearchString); err != nil {
		return nil, err
	}
	if err := storage.ValidatePathFilters(q.PathFilters); err != nil {
		return nil, err
	}

	b := &queryBuilder{}
	if len(q.TypeNames) > 0 {
		b.where("type_name = ANY(" + b.arg(pq.Array(q.TypeNames)) + ")")
	}
	if len(q.ExcludeStatuses) > 0 {
		statuses := make([]int64, 0, len(q.ExcludeStatuses))
		for _, st := range q.ExcludeStatuses {
			statuses = append(statuses, int64(st))
		}
		b.where("NOT (status = ANY(" + b.arg(pq.Array(statuses)) + "))")
	}
	if q.SearchString != "" {
		b.where(`EXISTS (SELECT 1 FROM jsonb_path_query(properties, 'strict $.** ? (@.type() == "string")') AS v(val)
			WHERE v.val #>> '{}' ~ ('^(?:' || ` + b.arg(q.SearchString) + ` || ')$'))`)
	}
	if len(q.PropertyValues) > 0 {
		names := make([]string, 0, len(q.PropertyValues))
		for name := range q.PropertyValues {
			names = append(names, name)
		}
		sort.Strings(names)
		var anyOf []string
		for _, name := range names {
			anyOf = append(anyOf, "properties ->> "+b.arg(name)+" = "+b.arg(q.PropertyValues[name]))
		}
		b.where("(" + strings.Join(anyOf, " OR ") + ")")
	}
	for _, f := range q.PathFilters {
		b.where("jsonb_path_query_first(properties, " + b.arg(f.Path) + "::jsonpath) #>> '{}' = " + b.arg(f.Value))
	}

	query := `SELECT ` + entityColumns + ` FROM itinfra_entities` + b.clause() + ` ORDER BY seq`
	zoned := len(q.Zones) > 0
	if !zoned {
		query += b.page(q.StartFrom, q.PageSize)
	}

	var rows []entityRow
	if err := s.db.SelectContext(ctx, &rows, query, b.args...); err != nil {
		return nil, err
	}

	result := make([]storage.Entity, 0, len(rows))
	for _, row := range rows {
		e := row.toEntity()
		if zoned && !storage.InZones(e.ZoneMembership, q.Zones) {
			continue
		}
		result = append(result, e)
	}
	if zoned {
		result = storage.Page(result, q.StartFrom, q.PageSize)
	}
	if len(result) == 0 {
		return nil, nil
	}
	return result, nil
}

func (s *Store) CountEntities(ctx context.Context) (map[string]int, error) {
	var rows []struct {
		TypeName string `db:"type_name"`
		Count    int    `db:"count"`
	}
	if err := s.db.SelectContext(ctx, &rows, `
		SELECT type_name, COUNT(*) AS count
		FROM itinfra_entities
		GROUP BY type_name
	`); err != nil {
		return nil, err
	}
	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.TypeName] = row.Count
	}
	return counts, nil
}

// --- RelationshipStore ------------------------------------------------------

func (s *Store) CreateRelationship(ctx context.Context, r storage.Relationship) (storage.Relationship, error) {
	if r.GUID == "" {
		r.GUID = uuid.NewString()
	}
	now := time.Now().UTC()
	r.CreateTime = now
	r.UpdateTime = now
	r.Version = 1

	doc, err := encodeDoc(r.Properties)
	if err != nil {
		return storage.Relationship{}, err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO itinfra_relationships (`+relationshipColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, r.GUID, r.TypeName, r.End1GUID, r.End2GUID, doc, int(r.Status), r.CreatedBy, r.UpdatedBy,
		r.CreateTime, r.UpdateTime, r.Version)
	switch {
	case err == nil:
		return r, nil
	case isUniqueViolation(err):
		return storage.Relationship{}, errors.AlreadyExists("relationship", r.GUID)
	case isForeignKeyViolation(err):
		return storage.Relationship{}, errors.NotFound("entity", r.End1GUID+"|"+r.End2GUID)
	default:
		return storage.Relationship{}, err
	}
}

func (s *Store) GetRelationship(ctx context.Context, guid string) (storage.Relationship, error) {
	var row relationshipRow
	err := s.db.GetContext(ctx, &row, `SELECT `+relationshipColumns+` FROM itinfra_relationships WHERE guid = $1`, guid)
	if stderrors.Is(err, sql.ErrNoRows) {
		return storage.Relationship{}, errors.NotFound("relationship", guid)
	}
	if err != nil {
		return storage.Relationship{}, err
	}
	return row.toRelationship(), nil
}

func (s *Store) DeleteRelationship(ctx context.Context, guid string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM itinfra_relationships WHERE guid = $1`, guid)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return errors.NotFound("relationship", guid)
	}
	return nil
}

func (s *Store) FindRelationships(ctx context.Context, q storage.RelationshipQuery) ([]storage.Relationship, error) {
	b := &queryBuilder{}
	guid := b.arg(q.EntityGUID)
	switch q.End {
	case 1:
		b.where("end1_guid = " + guid)
	case 2:
		b.where("end2_guid = " + guid)
	default:
		b.where("(end1_guid = " + guid + " OR end2_guid = " + guid + ")")
	}
	if q.TypeName != "" {
		b.where("type_name = " + b.arg(q.TypeName))
	}
	if q.OtherGUID != "" {
		b.where("(CASE WHEN end1_guid = " + guid + " THEN end2_guid ELSE end1_guid END) = " + b.arg(q.OtherGUID))
	}

	query := `SELECT ` + relationshipColumns + ` FROM itinfra_relationships` + b.clause() +
		` ORDER BY seq` + b.page(q.StartFrom, q.PageSize)

	var rows []relationshipRow
	if err := s.db.SelectContext(ctx, &rows, query, b.args...); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	result := make([]storage.Relationship, 0, len(rows))
	for _, row := range rows {
		result = append(result, row.toRelationship())
	}
	return result, nil
}

func (s *Store) DeleteEntityRelationships(ctx context.Context, entityGUID string) (int, error) {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM itinfra_relationships
		WHERE end1_guid = $1 OR end2_guid = $1
	`, entityGUID)
	if err != nil {
		return 0, err
	}
	rows, err := result.RowsAffected()
	return int(rows), err
}

// --- helpers ----------------------------------------------------------------

type queryBuilder struct {
	conds []string
	args  []interface{}
}

func (b *queryBuilder) arg(v interface{}) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

func (b *queryBuilder) where(cond string) {
	b.conds = append(b.conds, cond)
}

func (b *queryBuilder) clause() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conds, " AND ")
}

func (b *queryBuilder) page(startFrom, pageSize int) string {
	var out string
	if pageSize > 0 {
		out += " LIMIT " + b.arg(pageSize)
	}
	if startFrom > 0 {
		out += " OFFSET " + b.arg(startFrom)
	}
	return out
}

func encodeDoc(props map[string]interface{}) ([]byte, error) {
	if len(props) == 0 {
		return []byte("{}"), nil
	}
	doc, err := json.Marshal(props)
	if err != nil {
		return nil, errors.InvalidParameter("properties", err.Error())
	}
	return doc, nil
}

func decodeDoc(raw []byte) map[string]interface{} {
	if len(raw) == 0 {
		return nil
	}
	var props map[string]interface{}
	if err := json.Unmarshal(raw, &props); err != nil || len(props) == 0 {
		return nil
	}
	return props
}

func zonesOrEmpty(zones []string) []string {
	if zones == nil {
		return []string{}
	}
	return zones
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return stderrors.As(err, &pqErr) && pqErr.Code == "23505"
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return stderrors.As(err, &pqErr) && pqErr.Code == "23503"
}
