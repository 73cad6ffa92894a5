package properties

// ExternalReferenceProperties point at a resource held outside the
// repository, such as a web page or a document.
type ExternalReferenceProperties struct {
	ReferenceableProperties
	DisplayName      string   `json:"displayName,omitempty"`
	URL              string   `json:"url,omitempty"`
	Description      string   `json:"description,omitempty"`
	ReferenceVersion string   `json:"referenceVersion,omitempty"`
	Organization     string   `json:"organization,omitempty"`
	Copyright        string   `json:"copyright,omitempty"`
	Attribution      string   `json:"attribution,omitempty"`
	Authors          []string `json:"authors,omitempty"`
}

// Clone returns a deep copy.
func (p ExternalReferenceProperties) Clone() ExternalReferenceProperties {
	c := p
	c.ReferenceableProperties = p.ReferenceableProperties.Clone()
	c.Authors = cloneStrings(p.Authors)
	return c
}

// Equal reports whether every field matches.
func (p ExternalReferenceProperties) Equal(o ExternalReferenceProperties) bool {
	return p.ReferenceableProperties.Equal(o.ReferenceableProperties) &&
		p.DisplayName == o.DisplayName &&
		p.URL == o.URL &&
		p.Description == o.Description &&
		p.ReferenceVersion == o.ReferenceVersion &&
		p.Organization == o.Organization &&
		p.Copyright == o.Copyright &&
		p.Attribution == o.Attribution &&
		equalStrings(p.Authors, o.Authors)
}

func (p ExternalReferenceProperties) String() string {
	return describe("ExternalReferenceProperties", p)
}
