package properties

// AssetProperties describe any asset, IT infrastructure or otherwise.
type AssetProperties struct {
	ReferenceableProperties
	Name                       string `json:"name,omitempty"`
	DisplayName                string `json:"displayName,omitempty"`
	VersionIdentifier          string `json:"versionIdentifier,omitempty"`
	Description                string `json:"description,omitempty"`
	DeployedImplementationType string `json:"deployedImplementationType,omitempty"`
}

// Clone returns a deep copy.
func (p AssetProperties) Clone() AssetProperties {
	c := p
	c.ReferenceableProperties = p.ReferenceableProperties.Clone()
	return c
}

// Equal reports whether every field, including the referenceable ones, matches.
func (p AssetProperties) Equal(o AssetProperties) bool {
	return p.ReferenceableProperties.Equal(o.ReferenceableProperties) &&
		p.Name == o.Name &&
		p.DisplayName == o.DisplayName &&
		p.VersionIdentifier == o.VersionIdentifier &&
		p.Description == o.Description &&
		p.DeployedImplementationType == o.DeployedImplementationType
}

func (p AssetProperties) String() string { return describe("AssetProperties", p) }

// HostProperties describe a physical or virtual computer.
type HostProperties struct {
	AssetProperties
	HostID          string `json:"hostId,omitempty"`
	OperatingSystem string `json:"operatingSystem,omitempty"`
	PlatformVersion string `json:"operatingSystemVersion,omitempty"`
	Architecture    string `json:"architecture,omitempty"`
}

// Clone returns a deep copy.
func (p HostProperties) Clone() HostProperties {
	c := p
	c.AssetProperties = p.AssetProperties.Clone()
	return c
}

// Equal reports whether every field matches.
func (p HostProperties) Equal(o HostProperties) bool {
	return p.AssetProperties.Equal(o.AssetProperties) &&
		p.HostID == o.HostID &&
		p.OperatingSystem == o.OperatingSystem &&
		p.PlatformVersion == o.PlatformVersion &&
		p.Architecture == o.Architecture
}

func (p HostProperties) String() string { return describe("HostProperties", p) }

// PlatformProperties describe a software server platform running on a host.
type PlatformProperties struct {
	AssetProperties
	PlatformVersion string `json:"platformVersion,omitempty"`
	PlatformSource  string `json:"platformSource,omitempty"`
}

// Clone returns a deep copy.
func (p PlatformProperties) Clone() PlatformProperties {
	c := p
	c.AssetProperties = p.AssetProperties.Clone()
	return c
}

// Equal reports whether every field matches.
func (p PlatformProperties) Equal(o PlatformProperties) bool {
	return p.AssetProperties.Equal(o.AssetProperties) &&
		p.PlatformVersion == o.PlatformVersion &&
		p.PlatformSource == o.PlatformSource
}

func (p PlatformProperties) String() string { return describe("PlatformProperties", p) }

// ServerProperties describe a software server deployed on a platform.
type ServerProperties struct {
	AssetProperties
	ServerVersion string `json:"serverVersion,omitempty"`
	ServerSource  string `json:"softwareServerSource,omitempty"`
	UserID        string `json:"userId,omitempty"`
}

// Clone returns a deep copy.
func (p ServerProperties) Clone() ServerProperties {
	c := p
	c.AssetProperties = p.AssetProperties.Clone()
	return c
}

// Equal reports whether every field matches.
func (p ServerProperties) Equal(o ServerProperties) bool {
	return p.AssetProperties.Equal(o.AssetProperties) &&
		p.ServerVersion == o.ServerVersion &&
		p.ServerSource == o.ServerSource &&
		p.UserID == o.UserID
}

func (p ServerProperties) String() string { return describe("ServerProperties", p) }

// ProcessProperties describe a process, which is an asset that performs work.
type ProcessProperties struct {
	AssetProperties
	Formula                string `json:"formula,omitempty"`
	FormulaType            string `json:"formulaType,omitempty"`
	ImplementationLanguage string `json:"implementationLanguage,omitempty"`
}

// Clone returns a deep copy.
func (p ProcessProperties) Clone() ProcessProperties {
	c := p
	c.AssetProperties = p.AssetProperties.Clone()
	return c
}

// Equal reports whether every field matches.
func (p ProcessProperties) Equal(o ProcessProperties) bool {
	return p.AssetProperties.Equal(o.AssetProperties) &&
		p.Formula == o.Formula &&
		p.FormulaType == o.FormulaType &&
		p.ImplementationLanguage == o.ImplementationLanguage
}

func (p ProcessProperties) String() string { return describe("ProcessProperties", p) }
