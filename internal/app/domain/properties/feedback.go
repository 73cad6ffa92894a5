package properties

import "github.com/odpi/itinfra/internal/app/domain/enums"

// CommentProperties describe informal feedback attached to an element.
type CommentProperties struct {
	ReferenceableProperties
	CommentType enums.CommentType `json:"commentType"`
	CommentText string            `json:"commentText,omitempty"`
	IsPublic    bool              `json:"isPublic,omitempty"`
}

// Clone returns a deep copy.
func (p CommentProperties) Clone() CommentProperties {
	c := p
	c.ReferenceableProperties = p.ReferenceableProperties.Clone()
	return c
}

// Equal reports whether every field matches.
func (p CommentProperties) Equal(o CommentProperties) bool {
	return p.ReferenceableProperties.Equal(o.ReferenceableProperties) &&
		p.CommentType == o.CommentType &&
		p.CommentText == o.CommentText &&
		p.IsPublic == o.IsPublic
}

func (p CommentProperties) String() string { return describe("CommentProperties", p) }
