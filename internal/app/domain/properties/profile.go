package properties

import (
	"time"

	"github.com/odpi/itinfra/internal/app/domain/enums"
)

// ActorProfileProperties describe a person, team or engine known to the
// open metadata ecosystem.
type ActorProfileProperties struct {
	ReferenceableProperties
	KnownName   string `json:"knownName,omitempty"`
	Description string `json:"description,omitempty"`
}

// Clone returns a deep copy.
func (p ActorProfileProperties) Clone() ActorProfileProperties {
	c := p
	c.ReferenceableProperties = p.ReferenceableProperties.Clone()
	return c
}

// Equal reports whether every field matches.
func (p ActorProfileProperties) Equal(o ActorProfileProperties) bool {
	return p.ReferenceableProperties.Equal(o.ReferenceableProperties) &&
		p.KnownName == o.KnownName &&
		p.Description == o.Description
}

func (p ActorProfileProperties) String() string { return describe("ActorProfileProperties", p) }

// ITProfileProperties describe the profile of an automated process or
// piece of IT infrastructure that acts on its own user identity.
type ITProfileProperties struct {
	ActorProfileProperties
}

// Clone returns a deep copy.
func (p ITProfileProperties) Clone() ITProfileProperties {
	return ITProfileProperties{ActorProfileProperties: p.ActorProfileProperties.Clone()}
}

// Equal reports whether every field matches.
func (p ITProfileProperties) Equal(o ITProfileProperties) bool {
	return p.ActorProfileProperties.Equal(o.ActorProfileProperties)
}

func (p ITProfileProperties) String() string { return describe("ITProfileProperties", p) }

// ContactMethodProperties describe one way of reaching the owner of a profile.
type ContactMethodProperties struct {
	Name                 string                  `json:"name,omitempty"`
	ContactType          string                  `json:"contactType,omitempty"`
	ContactMethodType    enums.ContactMethodType `json:"contactMethodType"`
	ContactMethodService string                  `json:"contactMethodService,omitempty"`
	ContactMethodValue   string                  `json:"contactMethodValue,omitempty"`
	EffectiveFrom        *time.Time              `json:"effectiveFrom,omitempty"`
	EffectiveTo          *time.Time              `json:"effectiveTo,omitempty"`
	TypeName             string                  `json:"typeName,omitempty"`
	ExtendedProperties   map[string]interface{}  `json:"extendedProperties,omitempty"`
}

// Clone returns a deep copy.
func (p ContactMethodProperties) Clone() ContactMethodProperties {
	c := p
	c.EffectiveFrom = cloneTime(p.EffectiveFrom)
	c.EffectiveTo = cloneTime(p.EffectiveTo)
	c.ExtendedProperties = cloneAnyMap(p.ExtendedProperties)
	return c
}

// Equal reports whether every field matches.
func (p ContactMethodProperties) Equal(o ContactMethodProperties) bool {
	return p.Name == o.Name &&
		p.ContactType == o.ContactType &&
		p.ContactMethodType == o.ContactMethodType &&
		p.ContactMethodService == o.ContactMethodService &&
		p.ContactMethodValue == o.ContactMethodValue &&
		equalTime(p.EffectiveFrom, o.EffectiveFrom) &&
		equalTime(p.EffectiveTo, o.EffectiveTo) &&
		p.TypeName == o.TypeName &&
		equalAnyMap(p.ExtendedProperties, o.ExtendedProperties)
}

func (p ContactMethodProperties) String() string { return describe("ContactMethodProperties", p) }

// UserIdentityProperties describe a user account a profile acts through.
type UserIdentityProperties struct {
	ReferenceableProperties
	UserID            string `json:"userId,omitempty"`
	DistinguishedName string `json:"distinguishedName,omitempty"`
}

// Clone returns a deep copy.
func (p UserIdentityProperties) Clone() UserIdentityProperties {
	c := p
	c.ReferenceableProperties = p.ReferenceableProperties.Clone()
	return c
}

// Equal reports whether every field matches.
func (p UserIdentityProperties) Equal(o UserIdentityProperties) bool {
	return p.ReferenceableProperties.Equal(o.ReferenceableProperties) &&
		p.UserID == o.UserID &&
		p.DistinguishedName == o.DistinguishedName
}

func (p UserIdentityProperties) String() string { return describe("UserIdentityProperties", p) }
