// Package licenses manages license types and the licenses granting them to
// IT infrastructure elements.
package licenses

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

// Service manages license types and licenses.
type Service struct {
	handler *handlers.ElementHandler
	log     *logger.Logger
}

// New constructs a license service.
func New(handler *handlers.ElementHandler, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("licenses")
	}
	return &Service{handler: handler, log: log}
}

// CreateLicenseType creates a license type.
func (s *Service) CreateLicenseType(ctx context.Context, userID string, props properties.LicenseTypeProperties, src handlers.ExternalSource) (string, error) {
	return s.handler.CreateBean(ctx, userID, types.LicenseType, types.LicenseType, props, enums.ElementStatusActive, src, "createLicenseType")
}

// UpdateLicenseType updates a license type.
func (s *Service) UpdateLicenseType(ctx context.Context, userID, guid string, merge bool, props properties.LicenseTypeProperties, fields ...string) error {
	return s.handler.UpdateBean(ctx, userID, guid, types.LicenseType, props, merge, "updateLicenseType", fields...)
}

// RemoveLicenseType deletes a license type. It fails while the type is still
// granted to an element.
func (s *Service) RemoveLicenseType(ctx context.Context, userID, guid string) error {
	const op = "removeLicenseType"
	granted, err := s.handler.GetRelatedElements(ctx, userID, guid, types.License, 2, "", 0, 1, op)
	if err != nil {
		return err
	}
	if len(granted) > 0 {
		return errors.InvalidParameter("licenseTypeGUID", "license type is still granted to "+granted[0].Entity.GUID)
	}
	return s.handler.DeleteElement(ctx, userID, guid, types.LicenseType, op)
}

// GetLicenseType returns one license type.
func (s *Service) GetLicenseType(ctx context.Context, userID, guid string) (elements.LicenseTypeElement, error) {
	e, err := s.handler.GetElement(ctx, userID, guid, types.LicenseType, "getLicenseTypeByGUID")
	if err != nil {
		return elements.LicenseTypeElement{}, err
	}
	return s.licenseType(e)
}

// GetLicenseTypesByName returns the license types whose qualifiedName or
// title is name.
func (s *Service) GetLicenseTypesByName(ctx context.Context, userID, name string, startFrom, pageSize int) ([]elements.LicenseTypeElement, error) {
	const op = "getLicenseTypesByName"
	if err := handlers.ValidateName(name, "name", op); err != nil {
		return nil, err
	}
	found, err := s.handler.GetElementsByProperty(ctx, userID, types.LicenseType, name, startFrom, pageSize, op, "qualifiedName", "title")
	if err != nil {
		return nil, err
	}
	return s.licenseTypes(found)
}

// FindLicenseTypes returns the license types with a property value matching
// search.
func (s *Service) FindLicenseTypes(ctx context.Context, userID, search string, startFrom, pageSize int) ([]elements.LicenseTypeElement, error) {
	if err := handlers.ValidateName(search, "searchString", "findLicenseTypes"); err != nil {
		return nil, err
	}
	found, err := s.handler.FindElements(ctx, userID, types.LicenseType, search, nil, startFrom, pageSize, "findLicenseTypes")
	if err != nil {
		return nil, err
	}
	return s.licenseTypes(found)
}

// LicenseElement grants a license type to an element.
func (s *Service) LicenseElement(ctx context.Context, userID, elementGUID, licenseTypeGUID string, props properties.LicenseProperties) (string, error) {
	if props.StartDate != nil && props.EndDate != nil && props.EndDate.Before(*props.StartDate) {
		return "", errors.InvalidParameter("endDate", "must not be before startDate")
	}
	return s.handler.LinkBean(ctx, userID, types.License, elementGUID, licenseTypeGUID, props, "licenseElement")
}

// UpdateLicense replaces the properties of a license.
func (s *Service) UpdateLicense(ctx context.Context, userID, licenseGUID string, props properties.LicenseProperties) (string, error) {
	const op = "updateLicense"
	rel, err := s.handler.GetRelationship(ctx, userID, licenseGUID, types.License, op)
	if err != nil {
		return "", err
	}
	if err := s.handler.UnlinkRelationship(ctx, userID, licenseGUID, types.License, op); err != nil {
		return "", err
	}
	return s.LicenseElement(ctx, userID, rel.End1GUID, rel.End2GUID, props)
}

// UnlicenseElement removes a license.
func (s *Service) UnlicenseElement(ctx context.Context, userID, licenseGUID string) error {
	return s.handler.UnlinkRelationship(ctx, userID, licenseGUID, types.License, "unlicenseElement")
}

// GetLicenses returns the licenses granted to an element.
func (s *Service) GetLicenses(ctx context.Context, userID, elementGUID string, startFrom, pageSize int) ([]elements.LicenseElement, error) {
	related, err := s.handler.GetRelatedElements(ctx, userID, elementGUID, types.License, 1, types.LicenseType, startFrom, pageSize, "getLicenses")
	if err != nil {
		return nil, err
	}
	if len(related) == 0 {
		return nil, nil
	}
	out := make([]elements.LicenseElement, 0, len(related))
	for _, r := range related {
		el := elements.LicenseElement{
			ElementHeader: s.handler.RelationshipHeader(r.Relationship),
			LicensedGUID:  elementGUID,
		}
		if err := handlers.FromRelationship(r.Relationship, &el.Properties); err != nil {
			return nil, err
		}
		if el.LicenseType, err = s.licenseType(r.Entity); err != nil {
			return nil, err
		}
		out = append(out, el)
	}
	return out, nil
}

func (s *Service) licenseType(e storage.Entity) (elements.LicenseTypeElement, error) {
	var props properties.LicenseTypeProperties
	if err := handlers.FromEntity(e, &props); err != nil {
		return elements.LicenseTypeElement{}, err
	}
	return elements.LicenseTypeElement{ElementHeader: s.handler.Header(e), Properties: props}, nil
}

func (s *Service) licenseTypes(found []storage.Entity) ([]elements.LicenseTypeElement, error) {
	if len(found) == 0 {
		return nil, nil
	}
	out := make([]elements.LicenseTypeElement, 0, len(found))
	for _, e := range found {
		el, err := s.licenseType(e)
		if err != nil {
			return nil, err
		}
		out = append(out, el)
	}
	return out, nil
}
