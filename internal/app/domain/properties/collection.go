package properties

// CollectionProperties describe a grouping of elements.
type CollectionProperties struct {
	ReferenceableProperties
	Name           string `json:"name,omitempty"`
	Description    string `json:"description,omitempty"`
	CollectionType string `json:"collectionType,omitempty"`
}

// Clone returns a deep copy.
func (p CollectionProperties) Clone() CollectionProperties {
	c := p
	c.ReferenceableProperties = p.ReferenceableProperties.Clone()
	return c
}

// Equal reports whether every field matches.
func (p CollectionProperties) Equal(o CollectionProperties) bool {
	return p.ReferenceableProperties.Equal(o.ReferenceableProperties) &&
		p.Name == o.Name &&
		p.Description == o.Description &&
		p.CollectionType == o.CollectionType
}

func (p CollectionProperties) String() string { return describe("CollectionProperties", p) }
