package handlers

import (
	"context"

	"github.com/odpi/itinfra/internal/app/domain/elements"
	"github.com/odpi/itinfra/internal/app/domain/enums"
)

// ExternalSource identifies the third party technology that owns an element.
type ExternalSource struct {
	GUID string `json:"externalSourceGUID,omitempty"`
	Name string `json:"externalSourceName,omitempty"`
}

// CreateBean stores a new entity from a property bean. The type comes from
// the bean's typeName, falling back to defaultType, and must be expectedType
// or one of its subtypes.
func (h *ElementHandler) CreateBean(ctx context.Context, userID, expectedType, defaultType string, bean interface{}, status enums.ElementStatus, src ExternalSource, op string) (string, error) {
	doc, err := ToDocument(bean)
	if err != nil {
		return "", err
	}
	typeName := doc.TypeName
	if typeName == "" {
		typeName = defaultType
	}
	return h.CreateElement(ctx, userID, expectedType, NewElement{
		TypeName:           typeName,
		Properties:         doc.Properties,
		Status:             status,
		ExternalSourceGUID: src.GUID,
		ExternalSourceName: src.Name,
		EffectiveFrom:      doc.EffectiveFrom,
		EffectiveTo:        doc.EffectiveTo,
	}, op)
}

// UpdateBean updates an entity from a property bean. A merge update
// overlays the named fields, or every field set on the bean when none are
// named; see MergeDocument.
func (h *ElementHandler) UpdateBean(ctx context.Context, userID, guid, expectedType string, bean interface{}, merge bool, op string, fields ...string) error {
	var doc Document
	var err error
	if merge {
		doc, err = MergeDocument(bean, fields)
	} else {
		doc, err = ToDocument(bean)
	}
	if err != nil {
		return err
	}
	return h.UpdateElement(ctx, userID, guid, expectedType, doc.Properties, doc.EffectiveFrom, doc.EffectiveTo, merge, op)
}

// LinkBean creates a relationship carrying a relationship property bean.
func (h *ElementHandler) LinkBean(ctx context.Context, userID, relType, end1GUID, end2GUID string, bean interface{}, op string) (string, error) {
	props, err := RelationshipDocument(bean)
	if err != nil {
		return "", err
	}
	return h.LinkElements(ctx, userID, relType, end1GUID, end2GUID, props, op)
}

// RelatedElement converts a Related pair into its response form.
func (h *ElementHandler) RelatedElement(r Related) elements.RelatedElement {
	return elements.RelatedElement{
		RelationshipHeader:     h.RelationshipHeader(r.Relationship),
		RelationshipProperties: r.Relationship.Properties,
		RelatedElement:         h.Stub(r.Entity),
	}
}

// RelatedElements converts every pair, keeping nil for an empty input.
func (h *ElementHandler) RelatedElements(related []Related) []elements.RelatedElement {
	if len(related) == 0 {
		return nil
	}
	out := make([]elements.RelatedElement, 0, len(related))
	for _, r := range related {
		out = append(out, h.RelatedElement(r))
	}
	return out
}
