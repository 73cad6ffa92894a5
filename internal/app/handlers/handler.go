// Package handlers holds the generic element handler the access service
// facades delegate to. It validates parameters, enforces zone visibility,
// maintains the repository and publishes an out-topic event for every change.
package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/odpi/itinfra/internal/app/domain/elements"
	"github.com/odpi/itinfra/internal/app/domain/enums"
	"github.com/odpi/itinfra/internal/app/events"
	"github.com/odpi/itinfra/internal/app/storage"
	"github.com/odpi/itinfra/internal/app/types"
	"github.com/odpi/itinfra/internal/errors"
	"github.com/odpi/itinfra/pkg/logger"
)

// Config carries the per-server settings a handler enforces.
type Config struct {
	ServerName        string
	LocalServerUserID string
	// MaxPageSize caps every page. Zero means unlimited.
	MaxPageSize    int
	SupportedZones []string
	DefaultZones   []string
	PublishZones   []string
}

// NewElement describes an entity to create.
type NewElement struct {
	TypeName           string
	Properties         map[string]interface{}
	Status             enums.ElementStatus
	ExternalSourceGUID string
	ExternalSourceName string
	EffectiveFrom      *time.Time
	EffectiveTo        *time.Time
	Zones              []string
}

// Related is a relationship together with the entity at its other end.
type Related struct {
	Relationship storage.Relationship
	Entity       storage.Entity
}

// Recorder observes completed operations. Metrics implement it.
type Recorder interface {
	RecordOperation(serverName, operation string, err error)
}

// ElementHandler is the generic handler for every element type.
type ElementHandler struct {
	repo      storage.Repository
	types     *types.Registry
	publisher events.Publisher
	recorder  Recorder
	cfg       Config
	log       *logger.Logger
}

// NewElementHandler creates a handler bound to one server's repository.
func NewElementHandler(repo storage.Repository, reg *types.Registry, pub events.Publisher, cfg Config, log *logger.Logger) *ElementHandler {
	if reg == nil {
		reg = types.Default()
	}
	if pub == nil {
		pub = events.Noop{}
	}
	if log == nil {
		log = logger.NewDefault("element-handler")
	}
	return &ElementHandler{
		repo:      repo,
		types:     reg,
		publisher: pub,
		cfg:       cfg,
		log:       log.With("server", cfg.ServerName),
	}
}

// WithRecorder attaches an operation recorder.
func (h *ElementHandler) WithRecorder(r Recorder) *ElementHandler {
	h.recorder = r
	return h
}

// Config returns the server settings.
func (h *ElementHandler) Config() Config { return h.cfg }

// Types returns the type registry.
func (h *ElementHandler) Types() *types.Registry { return h.types }

// Repository returns the underlying repository.
func (h *ElementHandler) Repository() storage.Repository { return h.repo }

// CreateElement stores a new entity of el.TypeName, which must be
// expectedType or one of its subtypes, and returns its GUID.
func (h *ElementHandler) CreateElement(ctx context.Context, userID, expectedType string, el NewElement, op string) (guid string, err error) {
	defer func() { h.record(op, err) }()

	if err := ValidateUserID(userID, op); err != nil {
		return "", err
	}
	if el.TypeName == "" {
		el.TypeName = expectedType
	}
	if err := h.types.ValidateEntity(el.TypeName, expectedType); err != nil {
		return "", err
	}
	if h.types.IsA(el.TypeName, types.Referenceable) {
		if qn, _ := el.Properties["qualifiedName"].(string); qn == "" {
			return "", errors.NullParameter("qualifiedName", op)
		}
	}
	if el.Status == enums.ElementStatusUnknown {
		el.Status = enums.ElementStatusActive
	}
	zones := el.Zones
	if h.types.IsA(el.TypeName, types.Asset) && len(zones) == 0 {
		zones = h.cfg.DefaultZones
	}

	created, err := h.repo.CreateEntity(ctx, storage.Entity{
		TypeName:           el.TypeName,
		Status:             el.Status,
		Properties:         el.Properties,
		ZoneMembership:     zones,
		ExternalSourceGUID: el.ExternalSourceGUID,
		ExternalSourceName: el.ExternalSourceName,
		CreatedBy:          userID,
		EffectiveFrom:      el.EffectiveFrom,
		EffectiveTo:        el.EffectiveTo,
	})
	if err != nil {
		return "", h.repoError(op, err)
	}

	h.publish(ctx, events.Event{
		EventType:   enums.EventNewElement,
		UserID:      userID,
		TypeName:    created.TypeName,
		ElementGUID: created.GUID,
		Properties:  created.Properties,
	})
	h.log.WithField("guid", created.GUID).WithField("type", created.TypeName).Debugf("%s created element", op)
	return created.GUID, nil
}

// UpdateElement changes the properties of an entity. With merge the supplied
// properties are overlaid on the stored ones; otherwise they replace them.
func (h *ElementHandler) UpdateElement(ctx context.Context, userID, guid, expectedType string, props map[string]interface{}, effectiveFrom, effectiveTo *time.Time, merge bool, op string) (err error) {
	defer func() { h.record(op, err) }()

	e, err := h.visibleElement(ctx, userID, guid, expectedType, op)
	if err != nil {
		return err
	}
	if merge {
		e.Properties = overlay(e.Properties, props)
		if effectiveFrom != nil {
			e.EffectiveFrom = effectiveFrom
		}
		if effectiveTo != nil {
			e.EffectiveTo = effectiveTo
		}
	} else {
		e.Properties = props
		e.EffectiveFrom = effectiveFrom
		e.EffectiveTo = effectiveTo
	}
	if h.types.IsA(e.TypeName, types.Referenceable) {
		if qn, _ := e.Properties["qualifiedName"].(string); qn == "" {
			return errors.NullParameter("qualifiedName", op)
		}
	}
	return h.update(ctx, userID, e, op)
}

// UpdateStatus changes the status of an entity.
func (h *ElementHandler) UpdateStatus(ctx context.Context, userID, guid, expectedType string, status enums.ElementStatus, op string) (err error) {
	defer func() { h.record(op, err) }()

	e, err := h.visibleElement(ctx, userID, guid, expectedType, op)
	if err != nil {
		return err
	}
	e.Status = status
	return h.update(ctx, userID, e, op)
}

// SetZones replaces the zone membership of an asset. The asset may sit in
// any zone the server manages, so an asset still in the default zones can be
// published even when those are not supported zones.
func (h *ElementHandler) SetZones(ctx context.Context, userID, guid, expectedType string, zones []string, op string) (err error) {
	defer func() { h.record(op, err) }()

	if err := storage.ValidateZonePatterns(zones); err != nil {
		return errors.InvalidParameter("zones", err.Error())
	}
	e, err := h.elementIn(ctx, userID, guid, expectedType, h.managedZones(), op)
	if err != nil {
		return err
	}
	if !h.types.IsA(e.TypeName, types.Asset) {
		return errors.WrongType(guid, e.TypeName, types.Asset)
	}
	e.ZoneMembership = append([]string(nil), zones...)
	return h.update(ctx, userID, e, op)
}

// DeleteElement removes an entity together with every relationship attached
// to it.
func (h *ElementHandler) DeleteElement(ctx context.Context, userID, guid, expectedType string, op string) (err error) {
	defer func() { h.record(op, err) }()

	e, err := h.visibleElement(ctx, userID, guid, expectedType, op)
	if err != nil {
		return err
	}
	if _, err := h.repo.DeleteEntityRelationships(ctx, guid); err != nil {
		return h.repoError(op, err)
	}
	if err := h.repo.DeleteEntity(ctx, guid); err != nil {
		return h.repoError(op, err)
	}
	h.publish(ctx, events.Event{
		EventType:   enums.EventDeletedElement,
		UserID:      userID,
		TypeName:    e.TypeName,
		ElementGUID: guid,
	})
	return nil
}

// GetElement returns a visible entity of expectedType.
func (h *ElementHandler) GetElement(ctx context.Context, userID, guid, expectedType string, op string) (e storage.Entity, err error) {
	defer func() { h.record(op, err) }()
	return h.visibleElement(ctx, userID, guid, expectedType, op)
}

// FindElements returns the visible entities of expectedType, and its
// subtypes, that match the search string and path filters. An empty search
// string matches everything.
func (h *ElementHandler) FindElements(ctx context.Context, userID, expectedType, search string, filters []storage.PathFilter, startFrom, pageSize int, op string) (result []storage.Entity, err error) {
	defer func() { h.record(op, err) }()

	q, err := h.query(userID, expectedType, startFrom, pageSize, op)
	if err != nil {
		return nil, err
	}
	q.SearchString = search
	q.PathFilters = filters
	return h.find(ctx, q, op)
}

// GetElementsByName returns the visible entities whose qualifiedName or name
// equals name.
func (h *ElementHandler) GetElementsByName(ctx context.Context, userID, expectedType, name string, startFrom, pageSize int, op string) (result []storage.Entity, err error) {
	defer func() { h.record(op, err) }()

	if name == "" {
		return nil, errors.NullParameter("name", op)
	}
	return h.findByProperties(ctx, userID, expectedType, map[string]string{
		"qualifiedName": name,
		"name":          name,
	}, startFrom, pageSize, op)
}

// GetElementsByProperty returns the visible entities where any of the named
// properties equals value.
func (h *ElementHandler) GetElementsByProperty(ctx context.Context, userID, expectedType, value string, startFrom, pageSize int, op string, names ...string) (result []storage.Entity, err error) {
	defer func() { h.record(op, err) }()

	if len(names) == 0 {
		return nil, errors.NullParameter("propertyName", op)
	}
	if value == "" {
		return nil, errors.NullParameter(names[0], op)
	}
	values := make(map[string]string, len(names))
	for _, name := range names {
		values[name] = value
	}
	return h.findByProperties(ctx, userID, expectedType, values, startFrom, pageSize, op)
}

// LinkElements creates a relationship of relType between two visible
// entities and returns its GUID.
func (h *ElementHandler) LinkElements(ctx context.Context, userID, relType, end1GUID, end2GUID string, props map[string]interface{}, op string) (guid string, err error) {
	defer func() { h.record(op, err) }()

	if err := ValidateUserID(userID, op); err != nil {
		return "", err
	}
	if err := ValidateGUID(end1GUID, "end1GUID", op); err != nil {
		return "", err
	}
	if err := ValidateGUID(end2GUID, "end2GUID", op); err != nil {
		return "", err
	}
	end1, err := h.visibleElement(ctx, userID, end1GUID, "", op)
	if err != nil {
		return "", err
	}
	end2, err := h.visibleElement(ctx, userID, end2GUID, "", op)
	if err != nil {
		return "", err
	}
	if err := h.types.ValidateRelationship(relType, end1.TypeName, end2.TypeName); err != nil {
		return "", err
	}

	rel, err := h.repo.CreateRelationship(ctx, storage.Relationship{
		TypeName:   relType,
		End1GUID:   end1GUID,
		End2GUID:   end2GUID,
		Properties: props,
		Status:     enums.ElementStatusActive,
		CreatedBy:  userID,
	})
	if err != nil {
		return "", h.repoError(op, err)
	}
	h.publish(ctx, events.Event{
		EventType:        enums.EventNewRelationship,
		UserID:           userID,
		TypeName:         relType,
		RelationshipGUID: rel.GUID,
		End1GUID:         end1GUID,
		End2GUID:         end2GUID,
		Properties:       rel.Properties,
	})
	return rel.GUID, nil
}

// UnlinkElements removes every relationship of relType from end1GUID to
// end2GUID.
func (h *ElementHandler) UnlinkElements(ctx context.Context, userID, relType, end1GUID, end2GUID string, op string) (err error) {
	defer func() { h.record(op, err) }()

	if err := ValidateUserID(userID, op); err != nil {
		return err
	}
	if err := ValidateGUID(end1GUID, "end1GUID", op); err != nil {
		return err
	}
	if err := ValidateGUID(end2GUID, "end2GUID", op); err != nil {
		return err
	}
	if _, ok := h.types.Relationship(relType); !ok {
		return errors.InvalidParameter("relationshipTypeName", fmt.Sprintf("unknown relationship type %q", relType))
	}
	rels, err := h.repo.FindRelationships(ctx, storage.RelationshipQuery{
		EntityGUID: end1GUID,
		TypeName:   relType,
		End:        1,
		OtherGUID:  end2GUID,
	})
	if err != nil {
		return h.repoError(op, err)
	}
	if len(rels) == 0 {
		return errors.NotFound(relType+" relationship", end1GUID+" -> "+end2GUID)
	}
	for _, rel := range rels {
		if err := h.deleteRelationship(ctx, userID, rel, op); err != nil {
			return err
		}
	}
	return nil
}

// UnlinkRelationship removes one relationship, which must be of relType when
// relType is set.
func (h *ElementHandler) UnlinkRelationship(ctx context.Context, userID, relGUID, relType string, op string) (err error) {
	defer func() { h.record(op, err) }()

	if err := ValidateUserID(userID, op); err != nil {
		return err
	}
	if err := ValidateGUID(relGUID, "relationshipGUID", op); err != nil {
		return err
	}
	rel, err := h.repo.GetRelationship(ctx, relGUID)
	if err != nil {
		return h.repoError(op, err)
	}
	if relType != "" && rel.TypeName != relType {
		return errors.WrongType(relGUID, rel.TypeName, relType)
	}
	return h.deleteRelationship(ctx, userID, rel, op)
}

// GetRelationship returns one relationship, which must be of relType when
// relType is set.
func (h *ElementHandler) GetRelationship(ctx context.Context, userID, relGUID, relType string, op string) (rel storage.Relationship, err error) {
	defer func() { h.record(op, err) }()

	if err := ValidateUserID(userID, op); err != nil {
		return storage.Relationship{}, err
	}
	if err := ValidateGUID(relGUID, "relationshipGUID", op); err != nil {
		return storage.Relationship{}, err
	}
	rel, err = h.repo.GetRelationship(ctx, relGUID)
	if err != nil {
		return storage.Relationship{}, h.repoError(op, err)
	}
	if relType != "" && rel.TypeName != relType {
		return storage.Relationship{}, errors.WrongType(relGUID, rel.TypeName, relType)
	}
	return rel, nil
}

// GetRelatedElements returns the visible entities linked to guid through
// relType. anchorEnd is the end guid must occupy (0 for either) and
// relatedType, when set, restricts the entities at the other end.
func (h *ElementHandler) GetRelatedElements(ctx context.Context, userID, guid, relType string, anchorEnd int, relatedType string, startFrom, pageSize int, op string) ([]Related, error) {
	return h.GetRelatedElementsWhere(ctx, userID, guid, relType, anchorEnd, relatedType, nil, startFrom, pageSize, op)
}

// GetRelatedElementsWhere is GetRelatedElements with an extra filter on the
// related entities. Paging applies after filtering.
func (h *ElementHandler) GetRelatedElementsWhere(ctx context.Context, userID, guid, relType string, anchorEnd int, relatedType string, keep func(storage.Entity) bool, startFrom, pageSize int, op string) (result []Related, err error) {
	defer func() { h.record(op, err) }()

	if _, err := h.visibleElement(ctx, userID, guid, "", op); err != nil {
		return nil, err
	}
	start, size, err := h.paging(startFrom, pageSize)
	if err != nil {
		return nil, err
	}
	rels, err := h.repo.FindRelationships(ctx, storage.RelationshipQuery{
		EntityGUID: guid,
		TypeName:   relType,
		End:        anchorEnd,
	})
	if err != nil {
		return nil, h.repoError(op, err)
	}
	for _, rel := range rels {
		other, err := h.repo.GetEntity(ctx, rel.OtherEnd(guid))
		if err != nil {
			if errors.IsNotFound(err) {
				continue
			}
			return nil, h.repoError(op, err)
		}
		if relatedType != "" && !h.types.IsA(other.TypeName, relatedType) {
			continue
		}
		if !h.visible(other) {
			continue
		}
		if keep != nil && !keep(other) {
			continue
		}
		result = append(result, Related{Relationship: rel, Entity: other})
	}
	return storage.Page(result, start, size), nil
}

// Header builds the response header for a stored entity.
func (h *ElementHandler) Header(e storage.Entity) elements.ElementHeader {
	return elements.ElementHeader{
		GUID: e.GUID,
		Type: elements.ElementType{
			TypeName:       e.TypeName,
			SuperTypeNames: h.types.SuperTypes(e.TypeName),
		},
		Status: e.Status,
		Versions: elements.ElementVersions{
			CreatedBy:  e.CreatedBy,
			UpdatedBy:  e.UpdatedBy,
			CreateTime: e.CreateTime,
			UpdateTime: e.UpdateTime,
			Version:    e.Version,
		},
		Origin: elements.ElementOrigin{
			ExternalSourceGUID: e.ExternalSourceGUID,
			ExternalSourceName: e.ExternalSourceName,
		},
		ZoneMembership: e.ZoneMembership,
	}
}

// RelationshipHeader builds the response header for a stored relationship.
func (h *ElementHandler) RelationshipHeader(r storage.Relationship) elements.ElementHeader {
	return elements.ElementHeader{
		GUID:   r.GUID,
		Type:   elements.ElementType{TypeName: r.TypeName},
		Status: r.Status,
		Versions: elements.ElementVersions{
			CreatedBy:  r.CreatedBy,
			UpdatedBy:  r.UpdatedBy,
			CreateTime: r.CreateTime,
			UpdateTime: r.UpdateTime,
			Version:    r.Version,
		},
	}
}

// Stub builds the minimal description of an entity.
func (h *ElementHandler) Stub(e storage.Entity) elements.ElementStub {
	stub := elements.ElementStub{
		GUID:   e.GUID,
		Type:   elements.ElementType{TypeName: e.TypeName, SuperTypeNames: h.types.SuperTypes(e.TypeName)},
		Status: e.Status,
	}
	stub.UniqueName, _ = e.Properties["qualifiedName"].(string)
	return stub
}

// --- internals ----------------------------------------------------------------

func (h *ElementHandler) visibleElement(ctx context.Context, userID, guid, expectedType, op string) (storage.Entity, error) {
	return h.elementIn(ctx, userID, guid, expectedType, h.cfg.SupportedZones, op)
}

// managedZones are the supported zones widened by the default and publish
// zones. No supported zones means no restriction.
func (h *ElementHandler) managedZones() []string {
	if len(h.cfg.SupportedZones) == 0 {
		return nil
	}
	zones := append([]string(nil), h.cfg.SupportedZones...)
	zones = append(zones, h.cfg.DefaultZones...)
	return append(zones, h.cfg.PublishZones...)
}

func (h *ElementHandler) elementIn(ctx context.Context, userID, guid, expectedType string, zones []string, op string) (storage.Entity, error) {
	if err := ValidateUserID(userID, op); err != nil {
		return storage.Entity{}, err
	}
	if err := ValidateGUID(guid, "guid", op); err != nil {
		return storage.Entity{}, err
	}
	e, err := h.repo.GetEntity(ctx, guid)
	if err != nil {
		return storage.Entity{}, h.repoError(op, err)
	}
	if expectedType != "" && !h.types.IsA(e.TypeName, expectedType) {
		return storage.Entity{}, errors.WrongType(guid, e.TypeName, expectedType)
	}
	if !h.visibleIn(e, zones) {
		return storage.Entity{}, errors.NotFound(e.TypeName, guid)
	}
	return e, nil
}

func (h *ElementHandler) visible(e storage.Entity) bool {
	return h.visibleIn(e, h.cfg.SupportedZones)
}

func (h *ElementHandler) visibleIn(e storage.Entity, zones []string) bool {
	if !e.Status.Visible() {
		return false
	}
	if !h.types.IsA(e.TypeName, types.Asset) {
		return true
	}
	return storage.InZones(e.ZoneMembership, zones)
}

func (h *ElementHandler) update(ctx context.Context, userID string, e storage.Entity, op string) error {
	e.UpdatedBy = userID
	updated, err := h.repo.UpdateEntity(ctx, e)
	if err != nil {
		return h.repoError(op, err)
	}
	h.publish(ctx, events.Event{
		EventType:   enums.EventUpdatedElement,
		UserID:      userID,
		TypeName:    updated.TypeName,
		ElementGUID: updated.GUID,
		Properties:  updated.Properties,
	})
	return nil
}

func (h *ElementHandler) deleteRelationship(ctx context.Context, userID string, rel storage.Relationship, op string) error {
	if err := h.repo.DeleteRelationship(ctx, rel.GUID); err != nil {
		return h.repoError(op, err)
	}
	h.publish(ctx, events.Event{
		EventType:        enums.EventDeletedRelationship,
		UserID:           userID,
		TypeName:         rel.TypeName,
		RelationshipGUID: rel.GUID,
		End1GUID:         rel.End1GUID,
		End2GUID:         rel.End2GUID,
	})
	return nil
}

func (h *ElementHandler) query(userID, expectedType string, startFrom, pageSize int, op string) (storage.EntityQuery, error) {
	if err := ValidateUserID(userID, op); err != nil {
		return storage.EntityQuery{}, err
	}
	if err := h.types.ValidateEntity(expectedType, ""); err != nil {
		return storage.EntityQuery{}, err
	}
	start, size, err := h.paging(startFrom, pageSize)
	if err != nil {
		return storage.EntityQuery{}, err
	}
	return storage.EntityQuery{
		TypeNames:       h.types.SubTypes(expectedType),
		ExcludeStatuses: []enums.ElementStatus{enums.ElementStatusDeleted},
		Zones:           h.cfg.SupportedZones,
		StartFrom:       start,
		PageSize:        size,
	}, nil
}

func (h *ElementHandler) findByProperties(ctx context.Context, userID, expectedType string, values map[string]string, startFrom, pageSize int, op string) ([]storage.Entity, error) {
	q, err := h.query(userID, expectedType, startFrom, pageSize, op)
	if err != nil {
		return nil, err
	}
	q.PropertyValues = values
	return h.find(ctx, q, op)
}

func (h *ElementHandler) find(ctx context.Context, q storage.EntityQuery, op string) ([]storage.Entity, error) {
	result, err := h.repo.FindEntities(ctx, q)
	if err != nil {
		return nil, h.repoError(op, err)
	}
	return result, nil
}

func (h *ElementHandler) paging(startFrom, pageSize int) (int, int, error) {
	if startFrom < 0 {
		return 0, 0, errors.InvalidParameter("startFrom", "must not be negative")
	}
	if pageSize < 0 {
		return 0, 0, errors.InvalidParameter("pageSize", "must not be negative")
	}
	if limit := h.cfg.MaxPageSize; limit > 0 && (pageSize == 0 || pageSize > limit) {
		pageSize = limit
	}
	return startFrom, pageSize, nil
}

func (h *ElementHandler) publish(ctx context.Context, evt events.Event) {
	evt.ServerName = h.cfg.ServerName
	if err := h.publisher.Publish(ctx, evt); err != nil {
		h.log.WithError(err).WithField("event_type", evt.EventType.String()).Warn("failed to publish out-topic event")
	}
}

func (h *ElementHandler) record(op string, err error) {
	if h.recorder != nil {
		h.recorder.RecordOperation(h.cfg.ServerName, op, err)
	}
}

// repoError passes classified errors through and wraps anything else as a
// repository failure.
func (h *ElementHandler) repoError(op string, err error) error {
	if se := errors.GetServiceError(err); se != nil {
		return se
	}
	h.log.WithError(err).Errorf("%s failed in the metadata repository", op)
	return errors.FromError(op, err)
}

// overlay returns base with every key of top applied. A nil value removes
// the key.
func overlay(base, top map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(base)+len(top))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range top {
		if v == nil {
			delete(out, k)
			continue
		}
		out[k] = v
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
