package assets

import (
	"context"
	"testing"

	"github.com/odpi/itinfra/internal/app/domain/enums"
	"github.com/odpi/itinfra/internal/app/domain/properties"
	"github.com/odpi/itinfra/internal/app/events"
	"github.com/odpi/itinfra/internal/app/handlers"
	"github.com/odpi/itinfra/internal/app/storage/memory"
	"github.com/odpi/itinfra/internal/app/types"
	"github.com/odpi/itinfra/internal/errors"
	"github.com/odpi/itinfra/pkg/logger"
)

const user = "garygeeke"

func newService(t *testing.T, cfg handlers.Config) *Service {
	t.Helper()
	h := handlers.NewElementHandler(memory.New(), types.Default(), events.Noop{}, cfg, logger.NewNop())
	return New(h, logger.NewNop())
}

func host(qn string) properties.HostProperties {
	return properties.HostProperties{
		AssetProperties: properties.AssetProperties{
			ReferenceableProperties:    properties.ReferenceableProperties{QualifiedName: qn},
			Name:                       qn,
			DeployedImplementationType: "Linux Host",
		},
		HostID:          "h-" + qn,
		OperatingSystem: "Linux",
	}
}

func TestHostLifecycle(t *testing.T) {
	svc := newService(t, handlers.Config{})
	ctx := context.Background()

	guid, err := svc.CreateHost(ctx, user, host("host:cocoHost1"), handlers.ExternalSource{})
	if err != nil {
		t.Fatalf("create host: %v", err)
	}

	got, err := svc.GetAsset(ctx, user, guid)
	if err != nil {
		t.Fatalf("get asset: %v", err)
	}
	if got.ElementHeader.Type.TypeName != types.Host {
		t.Fatalf("expected Host, got %s", got.ElementHeader.Type.TypeName)
	}
	if got.Properties.Name != "host:cocoHost1" {
		t.Fatalf("unexpected name %q", got.Properties.Name)
	}
	if got.Properties.ExtendedProperties["hostId"] != "h-host:cocoHost1" {
		t.Fatalf("subtype attributes not carried: %v", got.Properties.ExtendedProperties)
	}

	update := properties.AssetProperties{Description: "primary database host"}
	if err := svc.UpdateAsset(ctx, user, guid, true, update); err != nil {
		t.Fatalf("merge update: %v", err)
	}
	got, _ = svc.GetAsset(ctx, user, guid)
	if got.Properties.Description != "primary database host" || got.Properties.QualifiedName != "host:cocoHost1" {
		t.Fatalf("merge lost properties: %+v", got.Properties)
	}

	if err := svc.UpdateAssetStatus(ctx, user, guid, enums.ElementStatusDeprecated); err != nil {
		t.Fatalf("update status: %v", err)
	}
	got, _ = svc.GetAsset(ctx, user, guid)
	if got.ElementHeader.Status != enums.ElementStatusDeprecated {
		t.Fatalf("expected deprecated, got %s", got.ElementHeader.Status)
	}

	if err := svc.RemoveAsset(ctx, user, guid); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := svc.GetAsset(ctx, user, guid); !errors.IsNotFound(err) {
		t.Fatalf("expected not found after remove, got %v", err)
	}
}

func TestCreateAssetDefaultsToITInfrastructure(t *testing.T) {
	svc := newService(t, handlers.Config{})
	ctx := context.Background()

	props := properties.AssetProperties{ReferenceableProperties: properties.ReferenceableProperties{QualifiedName: "asset:1"}}
	guid, err := svc.CreateAsset(ctx, user, "", props, handlers.ExternalSource{})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	got, _ := svc.GetAsset(ctx, user, guid)
	if got.ElementHeader.Type.TypeName != types.ITInfrastructure {
		t.Fatalf("expected ITInfrastructure, got %s", got.ElementHeader.Type.TypeName)
	}

	if _, err := svc.CreateAsset(ctx, user, types.Comment, props, handlers.ExternalSource{}); !errors.IsInvalid(err) {
		t.Fatalf("expected non-asset type to be rejected, got %v", err)
	}
}

func TestFindAndLookup(t *testing.T) {
	svc := newService(t, handlers.Config{MaxPageSize: 10})
	ctx := context.Background()

	for _, qn := range []string{"host:alpha", "host:beta"} {
		if _, err := svc.CreateHost(ctx, user, host(qn), handlers.ExternalSource{}); err != nil {
			t.Fatalf("create %s: %v", qn, err)
		}
	}
	platform := properties.PlatformProperties{
		AssetProperties: properties.AssetProperties{
			ReferenceableProperties:    properties.ReferenceableProperties{QualifiedName: "platform:omag"},
			DeployedImplementationType: "OMAG Server Platform",
		},
	}
	if _, err := svc.CreateSoftwareServerPlatform(ctx, user, platform, handlers.ExternalSource{}); err != nil {
		t.Fatalf("create platform: %v", err)
	}

	if _, err := svc.FindAssets(ctx, user, "", 0, 0); !errors.IsInvalid(err) {
		t.Fatalf("empty search should be rejected, got %v", err)
	}
	found, err := svc.FindAssets(ctx, user, "host:.*", 0, 0)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("expected 2 hosts, got %d", len(found))
	}

	byName, err := svc.GetAssetsByName(ctx, user, "host:beta", 0, 0)
	if err != nil || len(byName) != 1 {
		t.Fatalf("by name: %v %d", err, len(byName))
	}

	byTech, err := svc.GetAssetsByDeployedImplementationType(ctx, user, "OMAG Server Platform", 0, 0)
	if err != nil {
		t.Fatalf("by implementation type: %v", err)
	}
	if len(byTech) != 1 || byTech[0].Properties.QualifiedName != "platform:omag" {
		t.Fatalf("unexpected result %+v", byTech)
	}

	page, err := svc.FindAssets(ctx, user, ".*", 1, 1)
	if err != nil || len(page) != 1 {
		t.Fatalf("paging: %v %d", err, len(page))
	}
}

func TestPublishAndWithdraw(t *testing.T) {
	store := memory.New()
	zones := handlers.Config{
		DefaultZones:   []string{"quarantine"},
		PublishZones:   []string{"data-lake"},
		SupportedZones: []string{"quarantine", "data-lake"},
	}
	onboarding := New(handlers.NewElementHandler(store, types.Default(), events.Noop{}, zones, logger.NewNop()), logger.NewNop())
	zones.SupportedZones = []string{"data-lake"}
	consumer := New(handlers.NewElementHandler(store, types.Default(), events.Noop{}, zones, logger.NewNop()), logger.NewNop())
	ctx := context.Background()

	guid, err := onboarding.CreateHost(ctx, user, host("host:zoned"), handlers.ExternalSource{})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := consumer.GetAsset(ctx, user, guid); !errors.IsNotFound(err) {
		t.Fatalf("quarantined asset should be invisible, got %v", err)
	}

	if err := onboarding.PublishAsset(ctx, user, guid); err != nil {
		t.Fatalf("publish: %v", err)
	}
	got, err := consumer.GetAsset(ctx, user, guid)
	if err != nil {
		t.Fatalf("published asset should be visible: %v", err)
	}
	if len(got.ElementHeader.ZoneMembership) != 1 || got.ElementHeader.ZoneMembership[0] != "data-lake" {
		t.Fatalf("unexpected zones %v", got.ElementHeader.ZoneMembership)
	}

	if err := onboarding.WithdrawAsset(ctx, user, guid); err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if _, err := consumer.GetAsset(ctx, user, guid); !errors.IsNotFound(err) {
		t.Fatalf("withdrawn asset should be invisible, got %v", err)
	}
}

func TestPublishFromUnsupportedDefaultZone(t *testing.T) {
	svc := newService(t, handlers.Config{
		DefaultZones:   []string{"quarantine"},
		PublishZones:   []string{"data-lake"},
		SupportedZones: []string{"data-lake"},
	})
	ctx := context.Background()

	guid, err := svc.CreateHost(ctx, user, host("host:onboarded"), handlers.ExternalSource{})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.GetAsset(ctx, user, guid); !errors.IsNotFound(err) {
		t.Fatalf("new asset should wait in quarantine, got %v", err)
	}
	if err := svc.PublishAsset(ctx, user, guid); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if _, err := svc.GetAsset(ctx, user, guid); err != nil {
		t.Fatalf("published asset should be visible: %v", err)
	}
	if err := svc.WithdrawAsset(ctx, user, guid); err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if err := svc.PublishAsset(ctx, user, guid); err != nil {
		t.Fatalf("republish: %v", err)
	}
}

func TestDeploymentAndServerAssetUse(t *testing.T) {
	svc := newService(t, handlers.Config{})
	ctx := context.Background()

	hostGUID, _ := svc.CreateHost(ctx, user, host("host:deploy"), handlers.ExternalSource{})
	server := properties.ServerProperties{
		AssetProperties: properties.AssetProperties{ReferenceableProperties: properties.ReferenceableProperties{QualifiedName: "server:cocoMDS1"}},
	}
	serverGUID, err := svc.CreateSoftwareServer(ctx, user, server, handlers.ExternalSource{})
	if err != nil {
		t.Fatalf("create server: %v", err)
	}

	if _, err := svc.DeployAsset(ctx, user, serverGUID, hostGUID, properties.DeploymentProperties{Deployer: "ops"}); err != nil {
		t.Fatalf("deploy: %v", err)
	}
	deployed, err := svc.GetDeployedAssets(ctx, user, hostGUID, 0, 0)
	if err != nil {
		t.Fatalf("deployed assets: %v", err)
	}
	if len(deployed) != 1 || deployed[0].RelatedElement.GUID != serverGUID {
		t.Fatalf("unexpected deployments %+v", deployed)
	}
	if deployed[0].RelationshipProperties["deployer"] != "ops" {
		t.Fatalf("relationship properties lost: %v", deployed[0].RelationshipProperties)
	}
	if err := svc.ClearDeployment(ctx, user, serverGUID, hostGUID); err != nil {
		t.Fatalf("clear deployment: %v", err)
	}
	if deployed, _ := svc.GetDeployedAssets(ctx, user, hostGUID, 0, 0); len(deployed) != 0 {
		t.Fatalf("deployment not cleared")
	}

	bad := properties.ServerAssetUseProperties{UseType: enums.ServerAssetUseGoverns, MinInstances: 3, MaxInstances: 1}
	if _, err := svc.SetupServerAssetUse(ctx, user, serverGUID, hostGUID, bad); !errors.IsInvalid(err) {
		t.Fatalf("expected invalid instance bounds, got %v", err)
	}
	use := properties.ServerAssetUseProperties{UseType: enums.ServerAssetUseMaintains, MinInstances: 1, MaxInstances: 2}
	relGUID, err := svc.SetupServerAssetUse(ctx, user, serverGUID, hostGUID, use)
	if err != nil {
		t.Fatalf("server asset use: %v", err)
	}
	uses, err := svc.GetServerAssetUses(ctx, user, serverGUID, 0, 0)
	if err != nil || len(uses) != 1 {
		t.Fatalf("uses: %v %d", err, len(uses))
	}
	if err := svc.ClearServerAssetUse(ctx, user, relGUID); err != nil {
		t.Fatalf("clear use: %v", err)
	}
	if _, err := svc.SetupServerAssetUse(ctx, user, hostGUID, serverGUID, use); !errors.IsInvalid(err) {
		t.Fatalf("host cannot consume assets, got %v", err)
	}
}

func TestRelatedAssets(t *testing.T) {
	svc := newService(t, handlers.Config{})
	ctx := context.Background()

	a, _ := svc.CreateHost(ctx, user, host("host:a"), handlers.ExternalSource{})
	b, _ := svc.CreateHost(ctx, user, host("host:b"), handlers.ExternalSource{})
	if _, err := svc.SetupRelatedAsset(ctx, user, a, b, nil); err != nil {
		t.Fatalf("relate: %v", err)
	}
	for _, guid := range []string{a, b} {
		related, err := svc.GetRelatedAssets(ctx, user, guid, 0, 0)
		if err != nil || len(related) != 1 {
			t.Fatalf("related from %s: %v %d", guid, err, len(related))
		}
	}
	if err := svc.ClearRelatedAsset(ctx, user, a, b); err != nil {
		t.Fatalf("clear: %v", err)
	}
}

func TestSchemaTypeIsUnique(t *testing.T) {
	svc := newService(t, handlers.Config{})
	ctx := context.Background()

	assetGUID, _ := svc.CreateHost(ctx, user, host("host:schema"), handlers.ExternalSource{})
	schema := properties.SchemaTypeProperties{ReferenceableProperties: properties.ReferenceableProperties{QualifiedName: "schema:host"}}

	if _, err := svc.GetSchemaType(ctx, user, assetGUID); !errors.IsNotFound(err) {
		t.Fatalf("expected no schema yet, got %v", err)
	}
	guid, err := svc.SetupSchemaType(ctx, user, assetGUID, schema, handlers.ExternalSource{})
	if err != nil {
		t.Fatalf("setup schema: %v", err)
	}
	got, err := svc.GetSchemaType(ctx, user, assetGUID)
	if err != nil || got.ElementHeader.GUID != guid {
		t.Fatalf("get schema: %v %+v", err, got.ElementHeader)
	}
	if got.ElementHeader.Type.TypeName != types.ComplexSchemaType {
		t.Fatalf("expected ComplexSchemaType, got %s", got.ElementHeader.Type.TypeName)
	}
	schema.QualifiedName = "schema:second"
	if _, err := svc.SetupSchemaType(ctx, user, assetGUID, schema, handlers.ExternalSource{}); !errors.IsConflict(err) {
		t.Fatalf("expected conflict for second schema, got %v", err)
	}
}
