// Package profiles is the IT profile facade. An IT profile describes the
// identity an automated process or piece of infrastructure acts under, with
// its user identities and contact methods.
package profiles

import (
	"context"

	"github.com/odpi/itinfra/internal/app/domain/elements"
	"github.com/odpi/itinfra/internal/app/domain/enums"
	"github.com/odpi/itinfra/internal/app/domain/properties"
	"github.com/odpi/itinfra/internal/app/handlers"
	"github.com/odpi/itinfra/internal/app/storage"
	"github.com/odpi/itinfra/internal/app/types"
	"github.com/odpi/itinfra/internal/errors"
	"github.com/odpi/itinfra/pkg/logger"
)

// Service manages IT profiles.
type Service struct {
	handler *handlers.ElementHandler
	log     *logger.Logger
}

// New constructs a profile service.
func New(handler *handlers.ElementHandler, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("profiles")
	}
	return &Service{handler: handler, log: log}
}

// CreateITProfile creates a profile and, when identity is supplied, the user
// identity it acts through.
func (s *Service) CreateITProfile(ctx context.Context, userID string, props properties.ITProfileProperties, identity *properties.UserIdentityProperties, src handlers.ExternalSource) (string, error) {
	const op = "createITProfile"
	guid, err := s.handler.CreateBean(ctx, userID, types.ITProfile, types.ITProfile, props, enums.ElementStatusActive, src, op)
	if err != nil {
		return "", err
	}
	if identity != nil {
		if _, err := s.addUserIdentity(ctx, userID, guid, *identity, src, op); err != nil {
			if cleanup := s.handler.DeleteElement(ctx, userID, guid, types.ITProfile, op); cleanup != nil {
				s.log.WithError(cleanup).WithField("guid", guid).Warn("failed to remove half-created profile")
			}
			return "", err
		}
	}
	s.log.WithField("guid", guid).WithField("qualified_name", props.QualifiedName).Info("IT profile created")
	return guid, nil
}

// UpdateITProfile updates a profile.
func (s *Service) UpdateITProfile(ctx context.Context, userID, guid string, merge bool, props properties.ITProfileProperties, fields ...string) error {
	return s.handler.UpdateBean(ctx, userID, guid, types.ITProfile, props, merge, "updateITProfile", fields...)
}

// RemoveITProfile deletes a profile together with its contact methods. The
// user identities are unlinked and kept.
func (s *Service) RemoveITProfile(ctx context.Context, userID, guid string) error {
	const op = "removeITProfile"
	if _, err := s.handler.GetElement(ctx, userID, guid, types.ITProfile, op); err != nil {
		return err
	}
	contacts, err := s.handler.GetRelatedElements(ctx, userID, guid, types.ContactThrough, 1, types.ContactDetails, 0, 0, op)
	if err != nil {
		return err
	}
	for _, c := range contacts {
		if err := s.handler.DeleteElement(ctx, userID, c.Entity.GUID, types.ContactDetails, op); err != nil {
			return err
		}
	}
	return s.handler.DeleteElement(ctx, userID, guid, types.ITProfile, op)
}

// GetITProfile returns a profile with its identities and contact methods.
func (s *Service) GetITProfile(ctx context.Context, userID, guid string) (elements.ITProfileElement, error) {
	e, err := s.handler.GetElement(ctx, userID, guid, types.ITProfile, "getITProfile")
	if err != nil {
		return elements.ITProfileElement{}, err
	}
	return s.toElement(ctx, userID, e)
}

// GetITProfileByUserID returns the profile linked to the user identity with
// the given userId.
func (s *Service) GetITProfileByUserID(ctx context.Context, userID, profileUserID string) (elements.ITProfileElement, error) {
	const op = "getITProfileByUserId"
	identities, err := s.handler.GetElementsByProperty(ctx, userID, types.UserIdentity, profileUserID, 0, 0, op, "userId")
	if err != nil {
		return elements.ITProfileElement{}, err
	}
	for _, identity := range identities {
		owners, err := s.handler.GetRelatedElements(ctx, userID, identity.GUID, types.ProfileIdentity, 2, types.ITProfile, 0, 1, op)
		if err != nil {
			return elements.ITProfileElement{}, err
		}
		if len(owners) > 0 {
			return s.toElement(ctx, userID, owners[0].Entity)
		}
	}
	return elements.ITProfileElement{}, errors.NotFound("IT profile for user", profileUserID)
}

// GetITProfilesByName returns the profiles whose qualifiedName or name is name.
func (s *Service) GetITProfilesByName(ctx context.Context, userID, name string, startFrom, pageSize int) ([]elements.ITProfileElement, error) {
	found, err := s.handler.GetElementsByName(ctx, userID, types.ITProfile, name, startFrom, pageSize, "getITProfilesByName")
	if err != nil {
		return nil, err
	}
	return s.toElements(ctx, userID, found)
}

// FindITProfiles returns the profiles with a property value matching search.
func (s *Service) FindITProfiles(ctx context.Context, userID, search string, startFrom, pageSize int) ([]elements.ITProfileElement, error) {
	if err := handlers.ValidateName(search, "searchString", "findITProfiles"); err != nil {
		return nil, err
	}
	found, err := s.handler.FindElements(ctx, userID, types.ITProfile, search, nil, startFrom, pageSize, "findITProfiles")
	if err != nil {
		return nil, err
	}
	return s.toElements(ctx, userID, found)
}

// AddContactMethod attaches a new contact method to a profile.
func (s *Service) AddContactMethod(ctx context.Context, userID, profileGUID string, props properties.ContactMethodProperties, src handlers.ExternalSource) (string, error) {
	const op = "addContactMethod"
	if _, err := s.handler.GetElement(ctx, userID, profileGUID, types.ActorProfile, op); err != nil {
		return "", err
	}
	guid, err := s.handler.CreateBean(ctx, userID, types.ContactDetails, types.ContactDetails, props, enums.ElementStatusActive, src, op)
	if err != nil {
		return "", err
	}
	if _, err := s.handler.LinkElements(ctx, userID, types.ContactThrough, profileGUID, guid, nil, op); err != nil {
		return "", err
	}
	return guid, nil
}

// RemoveContactMethod deletes a contact method.
func (s *Service) RemoveContactMethod(ctx context.Context, userID, contactMethodGUID string) error {
	return s.handler.DeleteElement(ctx, userID, contactMethodGUID, types.ContactDetails, "removeContactMethod")
}

// AddUserIdentity creates a user identity and links it to a profile.
func (s *Service) AddUserIdentity(ctx context.Context, userID, profileGUID string, props properties.UserIdentityProperties, src handlers.ExternalSource) (string, error) {
	const op = "addUserIdentity"
	if _, err := s.handler.GetElement(ctx, userID, profileGUID, types.ActorProfile, op); err != nil {
		return "", err
	}
	return s.addUserIdentity(ctx, userID, profileGUID, props, src, op)
}

// RemoveUserIdentity unlinks a user identity from a profile and deletes it.
func (s *Service) RemoveUserIdentity(ctx context.Context, userID, profileGUID, identityGUID string) error {
	const op = "removeUserIdentity"
	if err := s.handler.UnlinkElements(ctx, userID, types.ProfileIdentity, profileGUID, identityGUID, op); err != nil {
		return err
	}
	return s.handler.DeleteElement(ctx, userID, identityGUID, types.UserIdentity, op)
}

func (s *Service) addUserIdentity(ctx context.Context, userID, profileGUID string, props properties.UserIdentityProperties, src handlers.ExternalSource, op string) (string, error) {
	if props.UserID == "" {
		return "", errors.NullParameter("userId", op)
	}
	if props.QualifiedName == "" {
		props.QualifiedName = "UserIdentity:" + props.UserID
	}
	guid, err := s.handler.CreateBean(ctx, userID, types.UserIdentity, types.UserIdentity, props, enums.ElementStatusActive, src, op)
	if err != nil {
		return "", err
	}
	if _, err := s.handler.LinkElements(ctx, userID, types.ProfileIdentity, profileGUID, guid, nil, op); err != nil {
		return "", err
	}
	return guid, nil
}

func (s *Service) toElement(ctx context.Context, userID string, e storage.Entity) (elements.ITProfileElement, error) {
	const op = "getITProfile"
	out := elements.ITProfileElement{ElementHeader: s.handler.Header(e)}
	if err := handlers.FromEntity(e, &out.Properties); err != nil {
		return elements.ITProfileElement{}, err
	}

	identities, err := s.handler.GetRelatedElements(ctx, userID, e.GUID, types.ProfileIdentity, 1, types.UserIdentity, 0, 0, op)
	if err != nil {
		return elements.ITProfileElement{}, err
	}
	for _, r := range identities {
		el := elements.UserIdentityElement{ElementHeader: s.handler.Header(r.Entity)}
		if err := handlers.FromEntity(r.Entity, &el.Properties); err != nil {
			return elements.ITProfileElement{}, err
		}
		out.UserIdentities = append(out.UserIdentities, el)
	}

	contacts, err := s.handler.GetRelatedElements(ctx, userID, e.GUID, types.ContactThrough, 1, types.ContactDetails, 0, 0, op)
	if err != nil {
		return elements.ITProfileElement{}, err
	}
	for _, r := range contacts {
		el := elements.ContactMethodElement{ElementHeader: s.handler.Header(r.Entity)}
		if err := handlers.FromEntity(r.Entity, &el.Properties); err != nil {
			return elements.ITProfileElement{}, err
		}
		out.ContactMethods = append(out.ContactMethods, el)
	}
	return out, nil
}

func (s *Service) toElements(ctx context.Context, userID string, found []storage.Entity) ([]elements.ITProfileElement, error) {
	if len(found) == 0 {
		return nil, nil
	}
	out := make([]elements.ITProfileElement, 0, len(found))
	for _, e := range found {
		el, err := s.toElement(ctx, userID, e)
		if err != nil {
			return nil, err
		}
		out = append(out, el)
	}
	return out, nil
}
