// Package enums holds the fixed vocabularies used in metadata properties.
//
// Every value is an (ordinal, name, description) triple. Values travel on the
// wire by name and map onto the ordinals of the matching enum definition in
// the open metadata type system, so the ordinals must never be renumbered.
package enums

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Descriptor is the wire form of one vocabulary value as listed by the
// valid-values endpoint.
type Descriptor struct {
	Ordinal         int    `json:"ordinal"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	OpenTypeOrdinal int    `json:"openTypeOrdinal"`
}

// VocabularyDescriptor describes a whole vocabulary.
type VocabularyDescriptor struct {
	Name         string       `json:"name"`
	OpenTypeGUID string       `json:"openTypeGUID,omitempty"`
	OpenTypeName string       `json:"openTypeName,omitempty"`
	Values       []Descriptor `json:"values"`
}

type entry[T ~int] struct {
	value       T
	name        string
	description string
	openOrdinal int
}

type vocabulary[T ~int] struct {
	typeName     string
	openTypeGUID string
	openTypeName string
	entries      []entry[T]
	byValue      map[T]int
	byName       map[string]int
}

func newVocabulary[T ~int](name, openTypeGUID, openTypeName string, entries ...entry[T]) *vocabulary[T] {
	v := &vocabulary[T]{
		typeName:     name,
		openTypeGUID: openTypeGUID,
		openTypeName: openTypeName,
		entries:      entries,
		byValue:      make(map[T]int, len(entries)),
		byName:       make(map[string]int, len(entries)),
	}
	for i, e := range entries {
		if _, dup := v.byValue[e.value]; dup {
			panic(fmt.Sprintf("enums: duplicate ordinal %d in %s", int(e.value), name))
		}
		v.byValue[e.value] = i
		v.byName[strings.ToUpper(e.name)] = i
	}
	return v
}

func (v *vocabulary[T]) lookup(val T) (entry[T], bool) {
	i, ok := v.byValue[val]
	if !ok {
		return entry[T]{}, false
	}
	return v.entries[i], true
}

func (v *vocabulary[T]) nameOf(val T) string {
	if e, ok := v.lookup(val); ok {
		return e.name
	}
	return fmt.Sprintf("%s(%d)", v.typeName, int(val))
}

func (v *vocabulary[T]) descriptionOf(val T) string {
	e, _ := v.lookup(val)
	return e.description
}

func (v *vocabulary[T]) openOrdinal(val T) int {
	if e, ok := v.lookup(val); ok {
		return e.openOrdinal
	}
	return -1
}

func (v *vocabulary[T]) values() []T {
	out := make([]T, len(v.entries))
	for i, e := range v.entries {
		out[i] = e.value
	}
	return out
}

// parse accepts a value name (any case) or its decimal ordinal.
func (v *vocabulary[T]) parse(s string) (T, error) {
	key := strings.ToUpper(strings.TrimSpace(s))
	if i, ok := v.byName[key]; ok {
		return v.entries[i].value, nil
	}
	if n, err := strconv.Atoi(key); err == nil {
		if _, ok := v.byValue[T(n)]; ok {
			return T(n), nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%q is not a valid %s", s, v.typeName)
}

func (v *vocabulary[T]) marshal(val T) ([]byte, error) {
	e, ok := v.lookup(val)
	if !ok {
		return nil, fmt.Errorf("%d is not a valid %s", int(val), v.typeName)
	}
	return json.Marshal(e.name)
}

func (v *vocabulary[T]) unmarshal(data []byte, dst *T) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		parsed, err := v.parse(name)
		if err != nil {
			return err
		}
		*dst = parsed
		return nil
	}
	var ordinal int
	if err := json.Unmarshal(data, &ordinal); err != nil {
		return fmt.Errorf("%s must be a name or an ordinal: %s", v.typeName, string(data))
	}
	parsed, err := v.parse(strconv.Itoa(ordinal))
	if err != nil {
		return err
	}
	*dst = parsed
	return nil
}

func (v *vocabulary[T]) describe() VocabularyDescriptor {
	out := VocabularyDescriptor{
		Name:         v.typeName,
		OpenTypeGUID: v.openTypeGUID,
		OpenTypeName: v.openTypeName,
		Values:       make([]Descriptor, 0, len(v.entries)),
	}
	for _, e := range v.entries {
		out.Values = append(out.Values, Descriptor{
			Ordinal:         int(e.value),
			Name:            e.name,
			Description:     e.description,
			OpenTypeOrdinal: e.openOrdinal,
		})
	}
	return out
}
