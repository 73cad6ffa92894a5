package storage

import (
	"context"
	"time"

	"github.com/odpi/itinfra/internal/app/domain/enums"
)

// Entity is a metadata element as held by the repository. Properties is the
// JSON document of the element's attributes keyed by their wire names.
type Entity struct {
	GUID               string                 `json:"guid" db:"guid"`
	TypeName           string                 `json:"typeName" db:"type_name"`
	Status             enums.ElementStatus    `json:"status" db:"status"`
	Properties         map[string]interface{} `json:"properties,omitempty" db:"-"`
	ZoneMembership     []string               `json:"zoneMembership,omitempty" db:"-"`
	ExternalSourceGUID string                 `json:"externalSourceGUID,omitempty" db:"external_source_guid"`
	ExternalSourceName string                 `json:"externalSourceName,omitempty" db:"external_source_name"`
	CreatedBy          string                 `json:"createdBy" db:"created_by"`
	UpdatedBy          string                 `json:"updatedBy,omitempty" db:"updated_by"`
	CreateTime         time.Time              `json:"createTime" db:"create_time"`
	UpdateTime         time.Time              `json:"updateTime" db:"update_time"`
	Version            int64                  `json:"version" db:"version"`
	EffectiveFrom      *time.Time             `json:"effectiveFrom,omitempty" db:"effective_from"`
	EffectiveTo        *time.Time             `json:"effectiveTo,omitempty" db:"effective_to"`
}

// Relationship links two entities.
type Relationship struct {
	GUID       string                 `json:"guid" db:"guid"`
	TypeName   string                 `json:"typeName" db:"type_name"`
	End1GUID   string                 `json:"end1GUID" db:"end1_guid"`
	End2GUID   string                 `json:"end2GUID" db:"end2_guid"`
	Properties map[string]interface{} `json:"properties,omitempty" db:"-"`
	Status     enums.ElementStatus    `json:"status" db:"status"`
	CreatedBy  string                 `json:"createdBy" db:"created_by"`
	UpdatedBy  string                 `json:"updatedBy,omitempty" db:"updated_by"`
	CreateTime time.Time              `json:"createTime" db:"create_time"`
	UpdateTime time.Time              `json:"updateTime" db:"update_time"`
	Version    int64                  `json:"version" db:"version"`
}

// OtherEnd returns the GUID at the opposite end from guid.
func (r Relationship) OtherEnd(guid string) string {
	if r.End1GUID == guid {
		return r.End2GUID
	}
	return r.End1GUID
}

// PathFilter requires the value selected by a JSONPath expression over the
// entity properties to render as Value.
type PathFilter struct {
	Path  string `json:"path"`
	Value string `json:"value"`
}

// EntityQuery selects entities. Empty fields do not constrain the result.
type EntityQuery struct {
	// TypeNames are matched exactly; callers expand subtypes.
	TypeNames []string
	// SearchString is a regular expression that must match the whole of at
	// least one string property value.
	SearchString string
	// PropertyValues matches when any named property equals its value.
	PropertyValues map[string]string
	// PathFilters must all match.
	PathFilters []PathFilter
	// ExcludeStatuses drops entities in any of these statuses.
	ExcludeStatuses []enums.ElementStatus
	// Zones are glob patterns. An entity with zone membership is returned only
	// when one of its zones matches a pattern.
	Zones     []string
	StartFrom int
	PageSize  int
}

// RelationshipQuery selects the relationships attached to an entity.
type RelationshipQuery struct {
	EntityGUID string
	TypeName   string
	// End is 1 or 2 to require EntityGUID at that end, 0 for either.
	End int
	// OtherGUID, when set, requires that GUID at the opposite end.
	OtherGUID string
	StartFrom int
	PageSize  int
}

// EntityStore persists entities.
type EntityStore interface {
	CreateEntity(ctx context.Context, e Entity) (Entity, error)
	UpdateEntity(ctx context.Context, e Entity) (Entity, error)
	GetEntity(ctx context.Context, guid string) (Entity, error)
	DeleteEntity(ctx context.Context, guid string) error
	FindEntities(ctx context.Context, q EntityQuery) ([]Entity, error)
	CountEntities(ctx context.Context) (map[string]int, error)
}

// RelationshipStore persists relationships.
type RelationshipStore interface {
	CreateRelationship(ctx context.Context, r Relationship) (Relationship, error)
	GetRelationship(ctx context.Context, guid string) (Relationship, error)
	DeleteRelationship(ctx context.Context, guid string) error
	FindRelationships(ctx context.Context, q RelationshipQuery) ([]Relationship, error)
	DeleteEntityRelationships(ctx context.Context, entityGUID string) (int, error)
}

// Repository is the metadata repository used by the generic handlers.
type Repository interface {
	EntityStore
	RelationshipStore
}
