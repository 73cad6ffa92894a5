// Package references manages external references: links from IT
// infrastructure elements to documentation held outside open metadata.
package references

import (
	"context"

	"github.com/odpi/itinfra/internal/app/domain/elements"
	"github.com/odpi/itinfra/internal/app/domain/enums"
	"github.com/odpi/itinfra/internal/app/domain/properties"
	"github.com/odpi/itinfra/internal/app/handlers"
	"github.com/odpi/itinfra/internal/app/storage"
	"github.com/odpi/itinfra/internal/app/types"
	"github.com/odpi/itinfra/pkg/logger"
)

// Service manages external references.
type Service struct {
	handler *handlers.ElementHandler
	log     *logger.Logger
}

// New constructs an external reference service.
func New(handler *handlers.ElementHandler, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("references")
	}
	return &Service{handler: handler, log: log}
}

// CreateExternalReference creates an external reference.
func (s *Service) CreateExternalReference(ctx context.Context, userID string, props properties.ExternalReferenceProperties, src handlers.ExternalSource) (string, error) {
	return s.handler.CreateBean(ctx, userID, types.ExternalReference, types.ExternalReference, props, enums.ElementStatusActive, src, "createExternalReference")
}

// UpdateExternalReference updates an external reference.
func (s *Service) UpdateExternalReference(ctx context.Context, userID, guid string, merge bool, props properties.ExternalReferenceProperties, fields ...string) error {
	return s.handler.UpdateBean(ctx, userID, guid, types.ExternalReference, props, merge, "updateExternalReference", fields...)
}

// RemoveExternalReference deletes an external reference and its links.
func (s *Service) RemoveExternalReference(ctx context.Context, userID, guid string) error {
	return s.handler.DeleteElement(ctx, userID, guid, types.ExternalReference, "removeExternalReference")
}

// GetExternalReference returns one external reference.
func (s *Service) GetExternalReference(ctx context.Context, userID, guid string) (elements.ExternalReferenceElement, error) {
	e, err := s.handler.GetElement(ctx, userID, guid, types.ExternalReference, "getExternalReference")
	if err != nil {
		return elements.ExternalReferenceElement{}, err
	}
	return s.toElement(e)
}

// FindExternalReferences returns the references with a property value
// matching search.
func (s *Service) FindExternalReferences(ctx context.Context, userID, search string, startFrom, pageSize int) ([]elements.ExternalReferenceElement, error) {
	if err := handlers.ValidateName(search, "searchString", "findExternalReferences"); err != nil {
		return nil, err
	}
	found, err := s.handler.FindElements(ctx, userID, types.ExternalReference, search, nil, startFrom, pageSize, "findExternalReferences")
	if err != nil {
		return nil, err
	}
	return s.toElements(found)
}

// GetExternalReferencesByURL returns the references pointing at url.
func (s *Service) GetExternalReferencesByURL(ctx context.Context, userID, url string, startFrom, pageSize int) ([]elements.ExternalReferenceElement, error) {
	const op = "getExternalReferencesByURL"
	if err := handlers.ValidateName(url, "url", op); err != nil {
		return nil, err
	}
	found, err := s.handler.GetElementsByProperty(ctx, userID, types.ExternalReference, url, startFrom, pageSize, op, "url")
	if err != nil {
		return nil, err
	}
	return s.toElements(found)
}

// LinkExternalReference attaches a reference to an element.
func (s *Service) LinkExternalReference(ctx context.Context, userID, elementGUID, referenceGUID string, props *properties.RelationshipProperties) (string, error) {
	var bean interface{}
	if props != nil {
		bean = *props
	}
	return s.handler.LinkBean(ctx, userID, types.ExternalReferenceLink, elementGUID, referenceGUID, bean, "linkExternalReferenceToElement")
}

// UnlinkExternalReference detaches a reference from an element.
func (s *Service) UnlinkExternalReference(ctx context.Context, userID, elementGUID, referenceGUID string) error {
	return s.handler.UnlinkElements(ctx, userID, types.ExternalReferenceLink, elementGUID, referenceGUID, "unlinkExternalReferenceFromElement")
}

// GetExternalReferences returns the references attached to an element.
func (s *Service) GetExternalReferences(ctx context.Context, userID, elementGUID string, startFrom, pageSize int) ([]elements.ExternalReferenceElement, error) {
	related, err := s.handler.GetRelatedElements(ctx, userID, elementGUID, types.ExternalReferenceLink, 1, types.ExternalReference, startFrom, pageSize, "retrieveAttachedExternalReferences")
	if err != nil {
		return nil, err
	}
	found := make([]storage.Entity, 0, len(related))
	for _, r := range related {
		found = append(found, r.Entity)
	}
	return s.toElements(found)
}

func (s *Service) toElement(e storage.Entity) (elements.ExternalReferenceElement, error) {
	var props properties.ExternalReferenceProperties
	if err := handlers.FromEntity(e, &props); err != nil {
		return elements.ExternalReferenceElement{}, err
	}
	return elements.ExternalReferenceElement{ElementHeader: s.handler.Header(e), Properties: props}, nil
}

func (s *Service) toElements(found []storage.Entity) ([]elements.ExternalReferenceElement, error) {
	if len(found) == 0 {
		return nil, nil
	}
	out := make([]elements.ExternalReferenceElement, 0, len(found))
	for _, e := range found {
		el, err := s.toElement(e)
		if err != nil {
			return nil, err
		}
		out = append(out, el)
	}
	return out, nil
}
