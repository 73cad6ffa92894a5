package handlers

import (
	"encoding/json"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/odpi/itinfra/internal/app/storage"
	"github.com/odpi/itinfra/internal/errors"
)

// Keys carried on the entity itself rather than inside its property document.
const (
	keyTypeName           = "typeName"
	keyExtendedProperties = "extendedProperties"
	keyEffectiveFrom      = "effectiveFrom"
	keyEffectiveTo        = "effectiveTo"
)

// Document is a bean flattened for storage. Extended properties are merged
// into Properties next to the bean's own attributes.
type Document struct {
	TypeName      string
	Properties    map[string]interface{}
	EffectiveFrom *time.Time
	EffectiveTo   *time.Time
}

// ToDocument flattens an entity property bean.
func ToDocument(bean interface{}) (Document, error) {
	doc, err := toMap(bean)
	if err != nil {
		return Document{}, err
	}

	var out Document
	if v, ok := doc[keyTypeName].(string); ok {
		out.TypeName = v
	}
	if out.EffectiveFrom, err = popTime(doc, keyEffectiveFrom); err != nil {
		return Document{}, err
	}
	if out.EffectiveTo, err = popTime(doc, keyEffectiveTo); err != nil {
		return Document{}, err
	}
	extended, _ := doc[keyExtendedProperties].(map[string]interface{})
	delete(doc, keyTypeName)
	delete(doc, keyExtendedProperties)
	for k, v := range extended {
		if _, taken := doc[k]; !taken {
			doc[k] = v
		}
	}
	if len(doc) > 0 {
		out.Properties = doc
	}
	return out, nil
}

// FromEntity fills bean from a stored entity. Properties the bean has no
// field for come back as its extended properties.
func FromEntity(e storage.Entity, bean interface{}) error {
	known := jsonFields(reflect.TypeOf(bean))
	doc := make(map[string]interface{}, len(e.Properties)+4)
	extended := make(map[string]interface{})
	for k, v := range e.Properties {
		if _, ok := known[k]; ok {
			doc[k] = v
		} else {
			extended[k] = v
		}
	}
	if _, ok := known[keyTypeName]; ok {
		doc[keyTypeName] = e.TypeName
	}
	if _, ok := known[keyExtendedProperties]; ok && len(extended) > 0 {
		doc[keyExtendedProperties] = extended
	}
	if e.EffectiveFrom != nil {
		doc[keyEffectiveFrom] = e.EffectiveFrom
	}
	if e.EffectiveTo != nil {
		doc[keyEffectiveTo] = e.EffectiveTo
	}
	return fromMap(doc, bean)
}

// RelationshipDocument flattens a relationship property bean. Relationship
// effectivity stays in the document.
func RelationshipDocument(bean interface{}) (map[string]interface{}, error) {
	if bean == nil {
		return nil, nil
	}
	doc, err := toMap(bean)
	if err != nil || len(doc) == 0 {
		return nil, err
	}
	return doc, nil
}

// FromRelationship fills a relationship property bean.
func FromRelationship(r storage.Relationship, bean interface{}) error {
	return fromMap(r.Properties, bean)
}

// MergeDocument flattens a bean for a merge update. Only the named fields are
// overlaid, and a named field holding its zero value is removed from the
// stored properties. Without names every field set on the bean is overlaid.
// Naming extendedProperties overlays each extended property.
func MergeDocument(bean interface{}, fields []string) (Document, error) {
	doc, err := ToDocument(bean)
	if err != nil {
		return Document{}, err
	}
	set := setFields(bean)
	extended := make(map[string]interface{})
	for k, v := range doc.Properties {
		if _, known := set[k]; !known {
			extended[k] = v
		}
	}

	props := make(map[string]interface{})
	if fields == nil {
		for k, v := range doc.Properties {
			if nonZero, known := set[k]; !known || nonZero {
				props[k] = v
			}
		}
	} else {
		for _, name := range fields {
			switch name {
			case keyTypeName, keyEffectiveFrom, keyEffectiveTo:
				continue
			case keyExtendedProperties:
				for k, v := range extended {
					props[k] = v
				}
				continue
			}
			nonZero, known := set[name]
			if !known {
				return Document{}, errors.InvalidParameter(name, "not a property of this element")
			}
			if nonZero {
				props[name] = doc.Properties[name]
			} else {
				props[name] = nil
			}
		}
	}
	doc.Properties = props
	if len(props) == 0 {
		doc.Properties = nil
	}
	return doc, nil
}

func toMap(bean interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(bean)
	if err != nil {
		return nil, errors.InvalidParameter("properties", err.Error())
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.InvalidParameter("properties", err.Error())
	}
	return doc, nil
}

func fromMap(doc map[string]interface{}, bean interface{}) error {
	if len(doc) == 0 {
		return nil
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return errors.Internal("encode stored properties", err)
	}
	if err := json.Unmarshal(raw, bean); err != nil {
		return errors.Internal("decode stored properties", err)
	}
	return nil
}

func popTime(doc map[string]interface{}, key string) (*time.Time, error) {
	v, ok := doc[key]
	if !ok {
		return nil, nil
	}
	delete(doc, key)
	s, _ := v.(string)
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return nil, errors.InvalidParameter(key, err.Error())
	}
	return &t, nil
}

var fieldCache sync.Map

// jsonFields returns the wire names of t's fields, including those promoted
// from embedded structs.
func jsonFields(t reflect.Type) map[string]struct{} {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if cached, ok := fieldCache.Load(t); ok {
		return cached.(map[string]struct{})
	}
	out := make(map[string]struct{})
	collectFields(t, out)
	fieldCache.Store(t, out)
	return out
}

// setFields reports, per wire name, whether bean holds a non-zero value.
// The entity-level keys are left out.
func setFields(bean interface{}) map[string]bool {
	out := make(map[string]bool)
	v := reflect.ValueOf(bean)
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return out
		}
		v = v.Elem()
	}
	collectValues(v, out)
	delete(out, keyTypeName)
	delete(out, keyExtendedProperties)
	delete(out, keyEffectiveFrom)
	delete(out, keyEffectiveTo)
	return out
}

func collectValues(v reflect.Value, out map[string]bool) {
	if v.Kind() != reflect.Struct {
		return
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if f.Anonymous && name == "" {
			collectValues(reflect.Indirect(v.Field(i)), out)
			continue
		}
		if !f.IsExported() {
			continue
		}
		if name == "" {
			name = f.Name
		}
		out[name] = !v.Field(i).IsZero()
	}
}

func collectFields(t reflect.Type, out map[string]struct{}) {
	if t.Kind() != reflect.Struct {
		return
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if f.Anonymous && name == "" {
			collectFields(f.Type, out)
			continue
		}
		if !f.IsExported() {
			continue
		}
		if name == "" {
			name = f.Name
		}
		out[name] = struct{}{}
	}
}
