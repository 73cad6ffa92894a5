package properties

import "time"

// LicenseTypeProperties describe a kind of license that may be granted.
type LicenseTypeProperties struct {
	ReferenceableProperties
	Title       string `json:"title,omitempty"`
	Summary     string `json:"summary,omitempty"`
	Description string `json:"description,omitempty"`
	Scope       string `json:"scope,omitempty"`
	Details     string `json:"details,omitempty"`
	Restrictive bool   `json:"restrictive,omitempty"`
}

// Clone returns a deep copy.
func (p LicenseTypeProperties) Clone() LicenseTypeProperties {
	c := p
	c.ReferenceableProperties = p.ReferenceableProperties.Clone()
	return c
}

// Equal reports whether every field matches.
func (p LicenseTypeProperties) Equal(o LicenseTypeProperties) bool {
	return p.ReferenceableProperties.Equal(o.ReferenceableProperties) &&
		p.Title == o.Title &&
		p.Summary == o.Summary &&
		p.Description == o.Description &&
		p.Scope == o.Scope &&
		p.Details == o.Details &&
		p.Restrictive == o.Restrictive
}

func (p LicenseTypeProperties) String() string { return describe("LicenseTypeProperties", p) }

// LicenseProperties are carried by the relationship granting a license type
// to an element.
type LicenseProperties struct {
	RelationshipProperties
	LicenseID              string     `json:"licenseId,omitempty"`
	StartDate              *time.Time `json:"startDate,omitempty"`
	EndDate                *time.Time `json:"endDate,omitempty"`
	Conditions             string     `json:"conditions,omitempty"`
	LicensedBy             string     `json:"licensedBy,omitempty"`
	LicensedByTypeName     string     `json:"licensedByTypeName,omitempty"`
	LicensedByPropertyName string     `json:"licensedByPropertyName,omitempty"`
	Custodian              string     `json:"custodian,omitempty"`
	CustodianTypeName      string     `json:"custodianTypeName,omitempty"`
	CustodianPropertyName  string     `json:"custodianPropertyName,omitempty"`
	Licensee               string     `json:"licensee,omitempty"`
	LicenseeTypeName       string     `json:"licenseeTypeName,omitempty"`
	LicenseePropertyName   string     `json:"licenseePropertyName,omitempty"`
	Notes                  string     `json:"notes,omitempty"`
}

// Clone returns a deep copy.
func (p LicenseProperties) Clone() LicenseProperties {
	c := p
	c.RelationshipProperties = p.RelationshipProperties.Clone()
	c.StartDate = cloneTime(p.StartDate)
	c.EndDate = cloneTime(p.EndDate)
	return c
}

// Equal reports whether every field matches.
func (p LicenseProperties) Equal(o LicenseProperties) bool {
	return p.RelationshipProperties.Equal(o.RelationshipProperties) &&
		p.LicenseID == o.LicenseID &&
		equalTime(p.StartDate, o.StartDate) &&
		equalTime(p.EndDate, o.EndDate) &&
		p.Conditions == o.Conditions &&
		p.LicensedBy == o.LicensedBy &&
		p.LicensedByTypeName == o.LicensedByTypeName &&
		p.LicensedByPropertyName == o.LicensedByPropertyName &&
		p.Custodian == o.Custodian &&
		p.CustodianTypeName == o.CustodianTypeName &&
		p.CustodianPropertyName == o.CustodianPropertyName &&
		p.Licensee == o.Licensee &&
		p.LicenseeTypeName == o.LicenseeTypeName &&
		p.LicenseePropertyName == o.LicenseePropertyName &&
		p.Notes == o.Notes
}

func (p LicenseProperties) String() string { return describe("LicenseProperties", p) }
