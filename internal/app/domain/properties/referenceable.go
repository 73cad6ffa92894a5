// Package properties holds the property beans exchanged with callers of the
// access service.
//
// Beans are plain values. Embedding stands in for the type hierarchy of the
// open metadata types, so the JSON form of a subtype flattens the attributes
// of its supertypes. Clone is the copy constructor: maps and slices are
// copied and empty collections come back as nil so they are absent on the
// wire. Equal compares every field, embedded ones included.
package properties

import (
	"encoding/json"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"time"
)

// ReferenceableProperties are the attributes shared by every entity that
// can be referenced by a unique name.
type ReferenceableProperties struct {
	QualifiedName        string                 `json:"qualifiedName,omitempty"`
	AdditionalProperties map[string]string      `json:"additionalProperties,omitempty"`
	TypeName             string                 `json:"typeName,omitempty"`
	ExtendedProperties   map[string]interface{} `json:"extendedProperties,omitempty"`
	EffectiveFrom        *time.Time             `json:"effectiveFrom,omitempty"`
	EffectiveTo          *time.Time             `json:"effectiveTo,omitempty"`
}

// Clone returns a copy that shares no maps with p.
func (p ReferenceableProperties) Clone() ReferenceableProperties {
	return ReferenceableProperties{
		QualifiedName:        p.QualifiedName,
		AdditionalProperties: cloneStringMap(p.AdditionalProperties),
		TypeName:             p.TypeName,
		ExtendedProperties:   cloneAnyMap(p.ExtendedProperties),
		EffectiveFrom:        cloneTime(p.EffectiveFrom),
		EffectiveTo:          cloneTime(p.EffectiveTo),
	}
}

// Equal reports whether every field matches.
func (p ReferenceableProperties) Equal(o ReferenceableProperties) bool {
	return p.QualifiedName == o.QualifiedName &&
		equalStringMap(p.AdditionalProperties, o.AdditionalProperties) &&
		p.TypeName == o.TypeName &&
		equalAnyMap(p.ExtendedProperties, o.ExtendedProperties) &&
		equalTime(p.EffectiveFrom, o.EffectiveFrom) &&
		equalTime(p.EffectiveTo, o.EffectiveTo)
}

func (p ReferenceableProperties) String() string { return describe("ReferenceableProperties", p) }

// RelationshipProperties are the attributes shared by every relationship.
type RelationshipProperties struct {
	EffectiveFrom      *time.Time             `json:"effectiveFrom,omitempty"`
	EffectiveTo        *time.Time             `json:"effectiveTo,omitempty"`
	ExtendedProperties map[string]interface{} `json:"extendedProperties,omitempty"`
}

// Clone returns a deep copy.
func (p RelationshipProperties) Clone() RelationshipProperties {
	return RelationshipProperties{
		EffectiveFrom:      cloneTime(p.EffectiveFrom),
		EffectiveTo:        cloneTime(p.EffectiveTo),
		ExtendedProperties: cloneAnyMap(p.ExtendedProperties),
	}
}

// Equal reports whether every field matches.
func (p RelationshipProperties) Equal(o RelationshipProperties) bool {
	return equalTime(p.EffectiveFrom, o.EffectiveFrom) &&
		equalTime(p.EffectiveTo, o.EffectiveTo) &&
		equalAnyMap(p.ExtendedProperties, o.ExtendedProperties)
}

func (p RelationshipProperties) String() string { return describe("RelationshipProperties", p) }

func cloneStringMap(m map[string]string) map[string]string {
	if len(m) == 0 {
		return nil
	}
	return maps.Clone(m)
}

func cloneAnyMap(m map[string]interface{}) map[string]interface{} {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		return cloneAnyMap(t)
	case []interface{}:
		out := make([]interface{}, len(t))
		for i := range t {
			out[i] = cloneValue(t[i])
		}
		return out
	case []string:
		return slices.Clone(t)
	default:
		return v
	}
}

func cloneStrings(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return slices.Clone(s)
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func equalStringMap(a, b map[string]string) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}
	return maps.Equal(a, b)
}

func equalAnyMap(a, b map[string]interface{}) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}
	return reflect.DeepEqual(a, b)
}

func equalStrings(a, b []string) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}
	return slices.Equal(a, b)
}

func equalTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

// describe renders a bean as its type name followed by its JSON form.
func describe(name string, v interface{}) string {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%s{%+v}", name, v)
	}
	return name + string(raw)
}
