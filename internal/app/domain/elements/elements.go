// Package elements holds the response-side wrappers returned by the access
// service: a header describing the stored element plus its property bean.
package elements

import (
	"time"

	"github.com/odpi/itinfra/internal/app/domain/enums"
	"github.com/odpi/itinfra/internal/app/domain/properties"
)

// ElementType names the open metadata type of an element.
type ElementType struct {
	TypeName       string   `json:"typeName"`
	SuperTypeNames []string `json:"superTypeNames,omitempty"`
}

// ElementVersions records who changed an element and when.
type ElementVersions struct {
	CreatedBy  string    `json:"createdBy,omitempty"`
	UpdatedBy  string    `json:"updatedBy,omitempty"`
	CreateTime time.Time `json:"createTime"`
	UpdateTime time.Time `json:"updateTime"`
	Version    int64     `json:"version"`
}

// ElementOrigin identifies the external source that owns an element, if any.
type ElementOrigin struct {
	ExternalSourceGUID string `json:"externalSourceGUID,omitempty"`
	ExternalSourceName string `json:"externalSourceName,omitempty"`
}

// ElementHeader describes a stored element independently of its properties.
type ElementHeader struct {
	GUID           string              `json:"guid"`
	Type           ElementType         `json:"type"`
	Status         enums.ElementStatus `json:"status"`
	Versions       ElementVersions     `json:"versions"`
	Origin         ElementOrigin       `json:"origin"`
	ZoneMembership []string            `json:"zoneMembership,omitempty"`
}

// AssetElement is an asset or any of its IT infrastructure subtypes. The
// subtype specific attributes travel in Properties.ExtendedProperties.
type AssetElement struct {
	ElementHeader ElementHeader              `json:"elementHeader"`
	Properties    properties.AssetProperties `json:"properties"`
}

// ProcessElement is a process.
type ProcessElement struct {
	ElementHeader ElementHeader                `json:"elementHeader"`
	Properties    properties.ProcessProperties `json:"properties"`
}

// SchemaTypeElement is the schema type attached to an asset.
type SchemaTypeElement struct {
	ElementHeader ElementHeader                   `json:"elementHeader"`
	Properties    properties.SchemaTypeProperties `json:"properties"`
}

// CommentElement is a comment together with the replies made to it.
type CommentElement struct {
	ElementHeader ElementHeader                `json:"elementHeader"`
	Properties    properties.CommentProperties `json:"properties"`
	Replies       []CommentElement             `json:"replies,omitempty"`
}

// CollectionElement is a collection.
type CollectionElement struct {
	ElementHeader ElementHeader                   `json:"elementHeader"`
	Properties    properties.CollectionProperties `json:"properties"`
}

// ExternalReferenceElement is an external reference.
type ExternalReferenceElement struct {
	ElementHeader ElementHeader                          `json:"elementHeader"`
	Properties    properties.ExternalReferenceProperties `json:"properties"`
}

// LicenseTypeElement is a license type.
type LicenseTypeElement struct {
	ElementHeader ElementHeader                    `json:"elementHeader"`
	Properties    properties.LicenseTypeProperties `json:"properties"`
}

// LicenseElement is a license granted to an element. The header describes
// the License relationship, LicenseType the license type it grants.
type LicenseElement struct {
	ElementHeader ElementHeader                `json:"elementHeader"`
	Properties    properties.LicenseProperties `json:"properties"`
	LicensedGUID  string                       `json:"licensedElementGUID"`
	LicenseType   LicenseTypeElement           `json:"licenseType"`
}

// UserIdentityElement is a user identity.
type UserIdentityElement struct {
	ElementHeader ElementHeader                     `json:"elementHeader"`
	Properties    properties.UserIdentityProperties `json:"properties"`
}

// ContactMethodElement is a contact method attached to a profile.
type ContactMethodElement struct {
	ElementHeader ElementHeader                      `json:"elementHeader"`
	Properties    properties.ContactMethodProperties `json:"properties"`
}

// ITProfileElement is an IT profile with its identities and contact methods.
type ITProfileElement struct {
	ElementHeader  ElementHeader                  `json:"elementHeader"`
	Properties     properties.ITProfileProperties `json:"properties"`
	UserIdentities []UserIdentityElement          `json:"userIdentities,omitempty"`
	ContactMethods []ContactMethodElement         `json:"contactMethods,omitempty"`
}

// RelatedElement pairs a relationship with a stub of the element at its
// other end.
type RelatedElement struct {
	RelationshipHeader     ElementHeader          `json:"relationshipHeader"`
	RelationshipProperties map[string]interface{} `json:"relationshipProperties,omitempty"`
	RelatedElement         ElementStub            `json:"relatedElement"`
}

// ElementStub is the minimal description of an element.
type ElementStub struct {
	GUID       string              `json:"guid"`
	Type       ElementType         `json:"type"`
	UniqueName string              `json:"uniqueName,omitempty"`
	Status     enums.ElementStatus `json:"status"`
}
