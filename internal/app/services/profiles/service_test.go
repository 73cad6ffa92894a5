package profiles

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

func newService(t *testing.T) (*Service, *handlers.ElementHandler) {
	t.Helper()
	h := handlers.NewElementHandler(memory.New(), types.Default(), events.Noop{}, handlers.Config{}, logger.NewNop())
	return New(h, logger.NewNop()), h
}

func profile(qn string) properties.ITProfileProperties {
	return properties.ITProfileProperties{ActorProfileProperties: properties.ActorProfileProperties{
		ReferenceableProperties: properties.ReferenceableProperties{QualifiedName: qn},
		KnownName:               qn,
	}}
}

func TestProfileWithIdentityAndContacts(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	identity := &properties.UserIdentityProperties{UserID: "cocoMDS1npa"}
	guid, err := svc.CreateITProfile(ctx, user, profile("profile:cocoMDS1"), identity, handlers.ExternalSource{})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	contact := properties.ContactMethodProperties{
		Name:               "ops mailbox",
		ContactMethodType:  enums.ContactMethodEmail,
		ContactMethodValue: "ops@coco.example",
	}
	if _, err := svc.AddContactMethod(ctx, user, guid, contact, handlers.ExternalSource{}); err != nil {
		t.Fatalf("add contact: %v", err)
	}

	got, err := svc.GetITProfile(ctx, user, guid)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.UserIdentities) != 1 || got.UserIdentities[0].Properties.UserID != "cocoMDS1npa" {
		t.Fatalf("unexpected identities %+v", got.UserIdentities)
	}
	if got.UserIdentities[0].Properties.QualifiedName != "UserIdentity:cocoMDS1npa" {
		t.Fatalf("identity qualifiedName not generated: %q", got.UserIdentities[0].Properties.QualifiedName)
	}
	if len(got.ContactMethods) != 1 || got.ContactMethods[0].Properties.ContactMethodType != enums.ContactMethodEmail {
		t.Fatalf("unexpected contacts %+v", got.ContactMethods)
	}

	byUser, err := svc.GetITProfileByUserID(ctx, user, "cocoMDS1npa")
	if err != nil {
		t.Fatalf("by user id: %v", err)
	}
	if byUser.ElementHeader.GUID != guid {
		t.Fatalf("expected %s, got %s", guid, byUser.ElementHeader.GUID)
	}
	if _, err := svc.GetITProfileByUserID(ctx, user, "nobody"); !errors.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRemoveProfileDeletesContactMethods(t *testing.T) {
	svc, h := newService(t)
	ctx := context.Background()

	guid, _ := svc.CreateITProfile(ctx, user, profile("profile:temp"), nil, handlers.ExternalSource{})
	contactGUID, err := svc.AddContactMethod(ctx, user, guid, properties.ContactMethodProperties{Name: "pager"}, handlers.ExternalSource{})
	if err != nil {
		t.Fatalf("add contact: %v", err)
	}
	identityGUID, err := svc.AddUserIdentity(ctx, user, guid, properties.UserIdentityProperties{UserID: "temp"}, handlers.ExternalSource{})
	if err != nil {
		t.Fatalf("add identity: %v", err)
	}

	if err := svc.RemoveITProfile(ctx, user, guid); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := h.GetElement(ctx, user, contactGUID, types.ContactDetails, "test"); !errors.IsNotFound(err) {
		t.Fatalf("contact method should be deleted, got %v", err)
	}
	if _, err := h.GetElement(ctx, user, identityGUID, types.UserIdentity, "test"); err != nil {
		t.Fatalf("user identity should survive: %v", err)
	}
}

func TestUserIdentityManagement(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	guid, _ := svc.CreateITProfile(ctx, user, profile("profile:ids"), nil, handlers.ExternalSource{})
	if _, err := svc.AddUserIdentity(ctx, user, guid, properties.UserIdentityProperties{}, handlers.ExternalSource{}); !errors.IsInvalid(err) {
		t.Fatalf("expected missing userId to be rejected, got %v", err)
	}
	identityGUID, err := svc.AddUserIdentity(ctx, user, guid, properties.UserIdentityProperties{UserID: "svc-a"}, handlers.ExternalSource{})
	if err != nil {
		t.Fatalf("add identity: %v", err)
	}
	if err := svc.RemoveUserIdentity(ctx, user, guid, identityGUID); err != nil {
		t.Fatalf("remove identity: %v", err)
	}
	got, _ := svc.GetITProfile(ctx, user, guid)
	if len(got.UserIdentities) != 0 {
		t.Fatalf("identity not removed: %+v", got.UserIdentities)
	}
}

func TestFindProfiles(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	for _, qn := range []string{"profile:a", "profile:b"} {
		if _, err := svc.CreateITProfile(ctx, user, profile(qn), nil, handlers.ExternalSource{}); err != nil {
			t.Fatalf("create %s: %v", qn, err)
		}
	}
	found, err := svc.FindITProfiles(ctx, user, "profile:.*", 0, 0)
	if err != nil || len(found) != 2 {
		t.Fatalf("find: %v %d", err, len(found))
	}
	byName, err := svc.GetITProfilesByName(ctx, user, "profile:b", 0, 0)
	if err != nil || len(byName) != 1 {
		t.Fatalf("by name: %v %d", err, len(byName))
	}
	if err := svc.UpdateITProfile(ctx, user, byName[0].ElementHeader.GUID, true, properties.ITProfileProperties{
		ActorProfileProperties: properties.ActorProfileProperties{Description: "batch identity"},
	}); err != nil {
		t.Fatalf("update: %v", err)
	}
}
