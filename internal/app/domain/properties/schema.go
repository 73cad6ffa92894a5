package properties

// SchemaTypeProperties describe the structure of the data held by an asset.
type SchemaTypeProperties struct {
	ReferenceableProperties
	DisplayName      string `json:"displayName,omitempty"`
	Description      string `json:"description,omitempty"`
	VersionNumber    string `json:"versionNumber,omitempty"`
	Author           string `json:"author,omitempty"`
	Usage            string `json:"usage,omitempty"`
	EncodingStandard string `json:"encodingStandard,omitempty"`
	Namespace        string `json:"namespace,omitempty"`
	IsDeprecated     bool   `json:"isDeprecated,omitempty"`
}

// Clone returns a deep copy.
func (p SchemaTypeProperties) Clone() SchemaTypeProperties {
	c := p
	c.ReferenceableProperties = p.ReferenceableProperties.Clone()
	return c
}

// Equal reports whether every field matches.
func (p SchemaTypeProperties) Equal(o SchemaTypeProperties) bool {
	return p.ReferenceableProperties.Equal(o.ReferenceableProperties) &&
		p.DisplayName == o.DisplayName &&
		p.Description == o.Description &&
		p.VersionNumber == o.VersionNumber &&
		p.Author == o.Author &&
		p.Usage == o.Usage &&
		p.EncodingStandard == o.EncodingStandard &&
		p.Namespace == o.Namespace &&
		p.IsDeprecated == o.IsDeprecated
}

func (p SchemaTypeProperties) String() string { return describe("SchemaTypeProperties", p) }
