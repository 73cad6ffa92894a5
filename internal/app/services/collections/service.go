// Package collections manages collections of IT infrastructure elements.
package collections

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

// Service manages collections and their membership.
type Service struct {
	handler *handlers.ElementHandler
	log     *logger.Logger
}

// New constructs a collection service.
func New(handler *handlers.ElementHandler, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("collections")
	}
	return &Service{handler: handler, log: log}
}

// CreateCollection creates a collection.
func (s *Service) CreateCollection(ctx context.Context, userID string, props properties.CollectionProperties, src handlers.ExternalSource) (string, error) {
	return s.handler.CreateBean(ctx, userID, types.Collection, types.Collection, props, enums.ElementStatusActive, src, "createCollection")
}

// UpdateCollection updates a collection.
func (s *Service) UpdateCollection(ctx context.Context, userID, guid string, merge bool, props properties.CollectionProperties, fields ...string) error {
	return s.handler.UpdateBean(ctx, userID, guid, types.Collection, props, merge, "updateCollection", fields...)
}

// RemoveCollection deletes a collection. Its members are unlinked, not
// deleted.
func (s *Service) RemoveCollection(ctx context.Context, userID, guid string) error {
	return s.handler.DeleteElement(ctx, userID, guid, types.Collection, "removeCollection")
}

// GetCollection returns one collection.
func (s *Service) GetCollection(ctx context.Context, userID, guid string) (elements.CollectionElement, error) {
	e, err := s.handler.GetElement(ctx, userID, guid, types.Collection, "getCollection")
	if err != nil {
		return elements.CollectionElement{}, err
	}
	return s.toElement(e)
}

// FindCollections returns the collections with a property value matching
// search.
func (s *Service) FindCollections(ctx context.Context, userID, search string, startFrom, pageSize int) ([]elements.CollectionElement, error) {
	if err := handlers.ValidateName(search, "searchString", "findCollections"); err != nil {
		return nil, err
	}
	found, err := s.handler.FindElements(ctx, userID, types.Collection, search, nil, startFrom, pageSize, "findCollections")
	if err != nil {
		return nil, err
	}
	return s.toElements(found)
}

// GetCollectionsByName returns the collections whose qualifiedName or name
// is name.
func (s *Service) GetCollectionsByName(ctx context.Context, userID, name string, startFrom, pageSize int) ([]elements.CollectionElement, error) {
	found, err := s.handler.GetElementsByName(ctx, userID, types.Collection, name, startFrom, pageSize, "getCollectionsByName")
	if err != nil {
		return nil, err
	}
	return s.toElements(found)
}

// AddToCollection makes memberGUID a member of collectionGUID.
func (s *Service) AddToCollection(ctx context.Context, userID, collectionGUID, memberGUID string, props *properties.RelationshipProperties) (string, error) {
	var bean interface{}
	if props != nil {
		bean = *props
	}
	return s.handler.LinkBean(ctx, userID, types.CollectionMembership, collectionGUID, memberGUID, bean, "addToCollection")
}

// RemoveFromCollection removes memberGUID from collectionGUID.
func (s *Service) RemoveFromCollection(ctx context.Context, userID, collectionGUID, memberGUID string) error {
	return s.handler.UnlinkElements(ctx, userID, types.CollectionMembership, collectionGUID, memberGUID, "removeFromCollection")
}

// GetCollectionMembers returns the members of a collection.
func (s *Service) GetCollectionMembers(ctx context.Context, userID, collectionGUID string, startFrom, pageSize int) ([]elements.RelatedElement, error) {
	const op = "getCollectionMembers"
	if _, err := s.handler.GetElement(ctx, userID, collectionGUID, types.Collection, op); err != nil {
		return nil, err
	}
	related, err := s.handler.GetRelatedElements(ctx, userID, collectionGUID, types.CollectionMembership, 1, "", startFrom, pageSize, op)
	if err != nil {
		return nil, err
	}
	return s.handler.RelatedElements(related), nil
}

// GetElementCollections returns the collections an element belongs to.
func (s *Service) GetElementCollections(ctx context.Context, userID, memberGUID string, startFrom, pageSize int) ([]elements.CollectionElement, error) {
	related, err := s.handler.GetRelatedElements(ctx, userID, memberGUID, types.CollectionMembership, 2, types.Collection, startFrom, pageSize, "getElementCollections")
	if err != nil {
		return nil, err
	}
	found := make([]storage.Entity, 0, len(related))
	for _, r := range related {
		found = append(found, r.Entity)
	}
	return s.toElements(found)
}

func (s *Service) toElement(e storage.Entity) (elements.CollectionElement, error) {
	var props properties.CollectionProperties
	if err := handlers.FromEntity(e, &props); err != nil {
		return elements.CollectionElement{}, err
	}
	return elements.CollectionElement{ElementHeader: s.handler.Header(e), Properties: props}, nil
}

func (s *Service) toElements(found []storage.Entity) ([]elements.CollectionElement, error) {
	if len(found) == 0 {
		return nil, nil
	}
	out := make([]elements.CollectionElement, 0, len(found))
	for _, e := range found {
		el, err := s.toElement(e)
		if err != nil {
			return nil, err
		}
		out = append(out, el)
	}
	return out, nil
}
