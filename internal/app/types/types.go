// Package types is the open metadata type registry consulted by the generic
// handlers. It knows the entity types and their super-type chains, and the
// relationship types with the entity types permitted at each end.
package types

import (
	"fmt"
	"slices"
	"sort"

	"github.com/odpi/itinfra/internal/errors"
)

// Entity type names.
const (
	Referenceable             = "Referenceable"
	Asset                     = "Asset"
	Infrastructure            = "Infrastructure"
	ITInfrastructure          = "ITInfrastructure"
	Host                      = "Host"
	SoftwareServerPlatform    = "SoftwareServerPlatform"
	SoftwareServer            = "SoftwareServer"
	Application               = "Application"
	Process                   = "Process"
	DeployedSoftwareComponent = "DeployedSoftwareComponent"
	SchemaElement             = "SchemaElement"
	SchemaType                = "SchemaType"
	ComplexSchemaType         = "ComplexSchemaType"
	Comment                   = "Comment"
	LicenseType               = "LicenseType"
	Collection                = "Collection"
	ExternalReference         = "ExternalReference"
	ActorProfile              = "ActorProfile"
	ITProfile                 = "ITProfile"
	ContactDetails            = "ContactDetails"
	UserIdentity              = "UserIdentity"
)

// Relationship type names.
const (
	ProcessHierarchy      = "ProcessHierarchy"
	ServerAssetUse        = "ServerAssetUse"
	DeployedOn            = "DeployedOn"
	AttachedComment       = "AttachedComment"
	ExternalReferenceLink = "ExternalReferenceLink"
	License               = "License"
	CollectionMembership  = "CollectionMembership"
	AssetSchemaType       = "AssetSchemaType"
	ProfileIdentity       = "ProfileIdentity"
	ContactThrough        = "ContactThrough"
	RelatedAsset          = "RelatedAsset"
)

// EntityDef describes an entity type.
type EntityDef struct {
	Name      string `json:"name"`
	GUID      string `json:"guid"`
	SuperType string `json:"superType,omitempty"`
}

// RelationshipDef describes a relationship type and its end constraints.
type RelationshipDef struct {
	Name     string `json:"name"`
	GUID     string `json:"guid"`
	End1Type string `json:"end1Type"`
	End1Name string `json:"end1AttributeName"`
	End2Type string `json:"end2Type"`
	End2Name string `json:"end2AttributeName"`
}

// Registry holds type definitions. It is immutable once built and safe for
// concurrent use.
type Registry struct {
	entities      map[string]EntityDef
	relationships map[string]RelationshipDef
	subtypes      map[string][]string
}

// NewRegistry builds a registry from the supplied definitions. Every super
// type must itself be defined.
func NewRegistry(entities []EntityDef, relationships []RelationshipDef) (*Registry, error) {
	r := &Registry{
		entities:      make(map[string]EntityDef, len(entities)),
		relationships: make(map[string]RelationshipDef, len(relationships)),
		subtypes:      make(map[string][]string),
	}
	for _, def := range entities {
		if def.Name == "" {
			return nil, fmt.Errorf("entity type with empty name")
		}
		if _, dup := r.entities[def.Name]; dup {
			return nil, fmt.Errorf("entity type %s defined twice", def.Name)
		}
		r.entities[def.Name] = def
	}
	for _, def := range entities {
		if def.SuperType == "" {
			continue
		}
		if _, ok := r.entities[def.SuperType]; !ok {
			return nil, fmt.Errorf("entity type %s: unknown super type %s", def.Name, def.SuperType)
		}
	}
	for name := range r.entities {
		for _, super := range r.SuperTypes(name) {
			r.subtypes[super] = append(r.subtypes[super], name)
		}
	}
	for super := range r.subtypes {
		sort.Strings(r.subtypes[super])
	}
	for _, def := range relationships {
		if _, dup := r.relationships[def.Name]; dup {
			return nil, fmt.Errorf("relationship type %s defined twice", def.Name)
		}
		for _, end := range []string{def.End1Type, def.End2Type} {
			if _, ok := r.entities[end]; !ok {
				return nil, fmt.Errorf("relationship type %s: unknown end type %s", def.Name, end)
			}
		}
		r.relationships[def.Name] = def
	}
	return r, nil
}

// Entity returns the named entity type.
func (r *Registry) Entity(name string) (EntityDef, bool) {
	def, ok := r.entities[name]
	return def, ok
}

// Relationship returns the named relationship type.
func (r *Registry) Relationship(name string) (RelationshipDef, bool) {
	def, ok := r.relationships[name]
	return def, ok
}

// SuperTypes returns the super-type chain of name, nearest first.
func (r *Registry) SuperTypes(name string) []string {
	var out []string
	def, ok := r.entities[name]
	for ok && def.SuperType != "" {
		out = append(out, def.SuperType)
		def, ok = r.entities[def.SuperType]
	}
	return out
}

// SubTypes returns name followed by every type that inherits from it.
func (r *Registry) SubTypes(name string) []string {
	if _, ok := r.entities[name]; !ok {
		return nil
	}
	return append([]string{name}, r.subtypes[name]...)
}

// IsA reports whether typeName is super or one of its subtypes.
func (r *Registry) IsA(typeName, super string) bool {
	if typeName == super {
		_, ok := r.entities[typeName]
		return ok
	}
	return slices.Contains(r.SuperTypes(typeName), super)
}

// EntityNames lists the entity types in name order.
func (r *Registry) EntityNames() []string {
	names := make([]string, 0, len(r.entities))
	for name := range r.entities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RelationshipNames lists the relationship types in name order.
func (r *Registry) RelationshipNames() []string {
	names := make([]string, 0, len(r.relationships))
	for name := range r.relationships {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidateEntity checks that typeName is known and is expectedSuper or one of
// its subtypes. An empty expectedSuper only checks that the type exists.
func (r *Registry) ValidateEntity(typeName, expectedSuper string) error {
	if _, ok := r.entities[typeName]; !ok {
		return errors.InvalidParameter("typeName", fmt.Sprintf("unknown entity type %q", typeName))
	}
	if expectedSuper != "" && !r.IsA(typeName, expectedSuper) {
		return errors.InvalidParameter("typeName",
			fmt.Sprintf("type %s is not a subtype of %s", typeName, expectedSuper))
	}
	return nil
}

// ValidateRelationship checks that relType is known and that the entity types
// at each end satisfy its constraints.
func (r *Registry) ValidateRelationship(relType, end1Type, end2Type string) error {
	def, ok := r.relationships[relType]
	if !ok {
		return errors.InvalidParameter("relationshipTypeName", fmt.Sprintf("unknown relationship type %q", relType))
	}
	if !r.IsA(end1Type, def.End1Type) {
		return errors.InvalidParameter("end1GUID",
			fmt.Sprintf("%s end 1 must be a %s, not %s", relType, def.End1Type, end1Type))
	}
	if !r.IsA(end2Type, def.End2Type) {
		return errors.InvalidParameter("end2GUID",
			fmt.Sprintf("%s end 2 must be a %s, not %s", relType, def.End2Type, end2Type))
	}
	return nil
}
