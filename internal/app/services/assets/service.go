// Package assets is the IT asset facade: hosts, software server platforms,
// software servers and the other IT infrastructure assets, together with
// their deployments, server asset uses and schema types.
package assets

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

// Service manages IT infrastructure assets.
type Service struct {
	handler *handlers.ElementHandler
	log     *logger.Logger
}

// New constructs an asset service.
func New(handler *handlers.ElementHandler, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("assets")
	}
	return &Service{handler: handler, log: log}
}

// CreateAsset creates an asset of typeName, which defaults to the bean's
// typeName and then to ITInfrastructure.
func (s *Service) CreateAsset(ctx context.Context, userID, typeName string, props properties.AssetProperties, src handlers.ExternalSource) (string, error) {
	if typeName != "" {
		props.TypeName = typeName
	}
	guid, err := s.handler.CreateBean(ctx, userID, types.Asset, types.ITInfrastructure, props, enums.ElementStatusActive, src, "createAsset")
	if err != nil {
		return "", err
	}
	s.log.WithField("guid", guid).WithField("qualified_name", props.QualifiedName).Info("asset created")
	return guid, nil
}

// CreateHost creates a Host.
func (s *Service) CreateHost(ctx context.Context, userID string, props properties.HostProperties, src handlers.ExternalSource) (string, error) {
	return s.handler.CreateBean(ctx, userID, types.Host, types.Host, props, enums.ElementStatusActive, src, "createHost")
}

// CreateSoftwareServerPlatform creates a SoftwareServerPlatform.
func (s *Service) CreateSoftwareServerPlatform(ctx context.Context, userID string, props properties.PlatformProperties, src handlers.ExternalSource) (string, error) {
	return s.handler.CreateBean(ctx, userID, types.SoftwareServerPlatform, types.SoftwareServerPlatform, props, enums.ElementStatusActive, src, "createSoftwareServerPlatform")
}

// CreateSoftwareServer creates a SoftwareServer.
func (s *Service) CreateSoftwareServer(ctx context.Context, userID string, props properties.ServerProperties, src handlers.ExternalSource) (string, error) {
	return s.handler.CreateBean(ctx, userID, types.SoftwareServer, types.SoftwareServer, props, enums.ElementStatusActive, src, "createSoftwareServer")
}

// UpdateAsset updates an asset's properties, merging them into the stored
// ones when merge is set.
func (s *Service) UpdateAsset(ctx context.Context, userID, guid string, merge bool, props properties.AssetProperties, fields ...string) error {
	return s.handler.UpdateBean(ctx, userID, guid, types.Asset, props, merge, "updateAsset", fields...)
}

// UpdateAssetStatus changes the status of an asset.
func (s *Service) UpdateAssetStatus(ctx context.Context, userID, guid string, status enums.ElementStatus) error {
	return s.handler.UpdateStatus(ctx, userID, guid, types.Asset, status, "updateAssetStatus")
}

// PublishAsset moves an asset into the publish zones.
func (s *Service) PublishAsset(ctx context.Context, userID, guid string) error {
	return s.handler.SetZones(ctx, userID, guid, types.Asset, s.handler.Config().PublishZones, "publishAsset")
}

// WithdrawAsset moves an asset back into the default zones.
func (s *Service) WithdrawAsset(ctx context.Context, userID, guid string) error {
	return s.handler.SetZones(ctx, userID, guid, types.Asset, s.handler.Config().DefaultZones, "withdrawAsset")
}

// RemoveAsset deletes an asset and its relationships.
func (s *Service) RemoveAsset(ctx context.Context, userID, guid string) error {
	if err := s.handler.DeleteElement(ctx, userID, guid, types.Asset, "removeAsset"); err != nil {
		return err
	}
	s.log.WithField("guid", guid).Info("asset removed")
	return nil
}

// GetAsset returns one asset.
func (s *Service) GetAsset(ctx context.Context, userID, guid string) (elements.AssetElement, error) {
	e, err := s.handler.GetElement(ctx, userID, guid, types.Asset, "getAsset")
	if err != nil {
		return elements.AssetElement{}, err
	}
	return s.toElement(e)
}

// FindAssets returns the assets with a property value matching search.
func (s *Service) FindAssets(ctx context.Context, userID, search string, startFrom, pageSize int) ([]elements.AssetElement, error) {
	if err := handlers.ValidateName(search, "searchString", "findAssets"); err != nil {
		return nil, err
	}
	found, err := s.handler.FindElements(ctx, userID, types.Asset, search, nil, startFrom, pageSize, "findAssets")
	if err != nil {
		return nil, err
	}
	return s.toElements(found)
}

// GetAssetsByName returns the assets whose qualifiedName or name is name.
func (s *Service) GetAssetsByName(ctx context.Context, userID, name string, startFrom, pageSize int) ([]elements.AssetElement, error) {
	found, err := s.handler.GetElementsByName(ctx, userID, types.Asset, name, startFrom, pageSize, "getAssetsByName")
	if err != nil {
		return nil, err
	}
	return s.toElements(found)
}

// GetAssetsByDeployedImplementationType returns the assets built with the
// named technology.
func (s *Service) GetAssetsByDeployedImplementationType(ctx context.Context, userID, implementationType string, startFrom, pageSize int) ([]elements.AssetElement, error) {
	const op = "getAssetsByDeployedImplementationType"
	if err := handlers.ValidateName(implementationType, "deployedImplementationType", op); err != nil {
		return nil, err
	}
	filters := []storage.PathFilter{{Path: "$.deployedImplementationType", Value: implementationType}}
	found, err := s.handler.FindElements(ctx, userID, types.Asset, "", filters, startFrom, pageSize, op)
	if err != nil {
		return nil, err
	}
	return s.toElements(found)
}

// SetupRelatedAsset links two assets.
func (s *Service) SetupRelatedAsset(ctx context.Context, userID, asset1GUID, asset2GUID string, props *properties.RelationshipProperties) (string, error) {
	var bean interface{}
	if props != nil {
		bean = *props
	}
	return s.handler.LinkBean(ctx, userID, types.RelatedAsset, asset1GUID, asset2GUID, bean, "setupRelatedAsset")
}

// ClearRelatedAsset unlinks two assets.
func (s *Service) ClearRelatedAsset(ctx context.Context, userID, asset1GUID, asset2GUID string) error {
	return s.handler.UnlinkElements(ctx, userID, types.RelatedAsset, asset1GUID, asset2GUID, "clearRelatedAsset")
}

// GetRelatedAssets returns the assets linked to guid, at either end.
func (s *Service) GetRelatedAssets(ctx context.Context, userID, guid string, startFrom, pageSize int) ([]elements.RelatedElement, error) {
	related, err := s.handler.GetRelatedElements(ctx, userID, guid, types.RelatedAsset, 0, types.Asset, startFrom, pageSize, "getRelatedAssets")
	if err != nil {
		return nil, err
	}
	return s.handler.RelatedElements(related), nil
}

// DeployAsset records that assetGUID is deployed on the IT infrastructure
// element infrastructureGUID.
func (s *Service) DeployAsset(ctx context.Context, userID, assetGUID, infrastructureGUID string, props properties.DeploymentProperties) (string, error) {
	return s.handler.LinkBean(ctx, userID, types.DeployedOn, assetGUID, infrastructureGUID, props, "deployAsset")
}

// ClearDeployment removes the deployment of assetGUID on infrastructureGUID.
func (s *Service) ClearDeployment(ctx context.Context, userID, assetGUID, infrastructureGUID string) error {
	return s.handler.UnlinkElements(ctx, userID, types.DeployedOn, assetGUID, infrastructureGUID, "clearDeployment")
}

// GetDeployedAssets returns the assets deployed on an infrastructure element.
func (s *Service) GetDeployedAssets(ctx context.Context, userID, infrastructureGUID string, startFrom, pageSize int) ([]elements.RelatedElement, error) {
	related, err := s.handler.GetRelatedElements(ctx, userID, infrastructureGUID, types.DeployedOn, 2, "", startFrom, pageSize, "getDeployedAssets")
	if err != nil {
		return nil, err
	}
	return s.handler.RelatedElements(related), nil
}

// SetupServerAssetUse records how a software server uses an asset.
func (s *Service) SetupServerAssetUse(ctx context.Context, userID, serverGUID, assetGUID string, props properties.ServerAssetUseProperties) (string, error) {
	if props.MinInstances < 0 || (props.MaxInstances > 0 && props.MaxInstances < props.MinInstances) {
		return "", errors.InvalidParameter("maximumInstances", "must not be below minimumInstances")
	}
	return s.handler.LinkBean(ctx, userID, types.ServerAssetUse, serverGUID, assetGUID, props, "setupServerAssetUse")
}

// ClearServerAssetUse removes a server asset use relationship.
func (s *Service) ClearServerAssetUse(ctx context.Context, userID, relationshipGUID string) error {
	return s.handler.UnlinkRelationship(ctx, userID, relationshipGUID, types.ServerAssetUse, "clearServerAssetUse")
}

// GetServerAssetUses returns the assets a software server uses.
func (s *Service) GetServerAssetUses(ctx context.Context, userID, serverGUID string, startFrom, pageSize int) ([]elements.RelatedElement, error) {
	related, err := s.handler.GetRelatedElements(ctx, userID, serverGUID, types.ServerAssetUse, 1, "", startFrom, pageSize, "getServerAssetUses")
	if err != nil {
		return nil, err
	}
	return s.handler.RelatedElements(related), nil
}

// SetupSchemaType creates the schema type describing an asset. An asset
// has at most one schema type.
func (s *Service) SetupSchemaType(ctx context.Context, userID, assetGUID string, props properties.SchemaTypeProperties, src handlers.ExternalSource) (string, error) {
	const op = "setupSchemaType"
	existing, err := s.handler.GetRelatedElements(ctx, userID, assetGUID, types.AssetSchemaType, 1, "", 0, 1, op)
	if err != nil {
		return "", err
	}
	if len(existing) > 0 {
		return "", errors.AlreadyExists("schema type for asset", assetGUID)
	}
	guid, err := s.handler.CreateBean(ctx, userID, types.SchemaType, types.ComplexSchemaType, props, enums.ElementStatusActive, src, op)
	if err != nil {
		return "", err
	}
	if _, err := s.handler.LinkElements(ctx, userID, types.AssetSchemaType, assetGUID, guid, nil, op); err != nil {
		if cleanup := s.handler.DeleteElement(ctx, userID, guid, types.SchemaType, op); cleanup != nil {
			s.log.WithError(cleanup).WithField("guid", guid).Warn("failed to remove orphaned schema type")
		}
		return "", err
	}
	return guid, nil
}

// GetSchemaType returns the schema type attached to an asset.
func (s *Service) GetSchemaType(ctx context.Context, userID, assetGUID string) (elements.SchemaTypeElement, error) {
	related, err := s.handler.GetRelatedElements(ctx, userID, assetGUID, types.AssetSchemaType, 1, types.SchemaType, 0, 1, "getSchemaType")
	if err != nil {
		return elements.SchemaTypeElement{}, err
	}
	if len(related) == 0 {
		return elements.SchemaTypeElement{}, errors.NotFound("schema type for asset", assetGUID)
	}
	var props properties.SchemaTypeProperties
	if err := handlers.FromEntity(related[0].Entity, &props); err != nil {
		return elements.SchemaTypeElement{}, err
	}
	return elements.SchemaTypeElement{ElementHeader: s.handler.Header(related[0].Entity), Properties: props}, nil
}

func (s *Service) toElement(e storage.Entity) (elements.AssetElement, error) {
	var props properties.AssetProperties
	if err := handlers.FromEntity(e, &props); err != nil {
		return elements.AssetElement{}, err
	}
	return elements.AssetElement{ElementHeader: s.handler.Header(e), Properties: props}, nil
}

func (s *Service) toElements(found []storage.Entity) ([]elements.AssetElement, error) {
	if len(found) == 0 {
		return nil, nil
	}
	out := make([]elements.AssetElement, 0, len(found))
	for _, e := range found {
		el, err := s.toElement(e)
		if err != nil {
			return nil, err
		}
		out = append(out, el)
	}
	return out, nil
}
