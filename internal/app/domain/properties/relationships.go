package properties

import (
	"time"

	"github.com/odpi/itinfra/internal/app/domain/enums"
)

// ProcessContainmentProperties qualify the link between a parent process and
// one of its steps.
type ProcessContainmentProperties struct {
	RelationshipProperties
	ContainmentType enums.ProcessContainmentType `json:"containmentType"`
}

// Clone returns a deep copy.
func (p ProcessContainmentProperties) Clone() ProcessContainmentProperties {
	return ProcessContainmentProperties{
		RelationshipProperties: p.RelationshipProperties.Clone(),
		ContainmentType:        p.ContainmentType,
	}
}

// Equal reports whether every field matches.
func (p ProcessContainmentProperties) Equal(o ProcessContainmentProperties) bool {
	return p.RelationshipProperties.Equal(o.RelationshipProperties) &&
		p.ContainmentType == o.ContainmentType
}

func (p ProcessContainmentProperties) String() string {
	return describe("ProcessContainmentProperties", p)
}

// ServerAssetUseProperties qualify how a software server uses an asset.
type ServerAssetUseProperties struct {
	RelationshipProperties
	UseType      enums.ServerAssetUseType `json:"useType"`
	Description  string                   `json:"description,omitempty"`
	MinInstances int                      `json:"minimumInstances,omitempty"`
	MaxInstances int                      `json:"maximumInstances,omitempty"`
}

// Clone returns a deep copy.
func (p ServerAssetUseProperties) Clone() ServerAssetUseProperties {
	c := p
	c.RelationshipProperties = p.RelationshipProperties.Clone()
	return c
}

// Equal reports whether every field matches.
func (p ServerAssetUseProperties) Equal(o ServerAssetUseProperties) bool {
	return p.RelationshipProperties.Equal(o.RelationshipProperties) &&
		p.UseType == o.UseType &&
		p.Description == o.Description &&
		p.MinInstances == o.MinInstances &&
		p.MaxInstances == o.MaxInstances
}

func (p ServerAssetUseProperties) String() string { return describe("ServerAssetUseProperties", p) }

// DeploymentProperties qualify the deployment of an asset onto a host,
// platform or server.
type DeploymentProperties struct {
	RelationshipProperties
	DeploymentTime       *time.Time              `json:"deploymentTime,omitempty"`
	Deployer             string                  `json:"deployer,omitempty"`
	DeployerTypeName     string                  `json:"deployerTypeName,omitempty"`
	DeployerPropertyName string                  `json:"deployerPropertyName,omitempty"`
	OperationalStatus    enums.OperationalStatus `json:"operationalStatus"`
}

// Clone returns a deep copy.
func (p DeploymentProperties) Clone() DeploymentProperties {
	c := p
	c.RelationshipProperties = p.RelationshipProperties.Clone()
	c.DeploymentTime = cloneTime(p.DeploymentTime)
	return c
}

// Equal reports whether every field matches.
func (p DeploymentProperties) Equal(o DeploymentProperties) bool {
	return p.RelationshipProperties.Equal(o.RelationshipProperties) &&
		equalTime(p.DeploymentTime, o.DeploymentTime) &&
		p.Deployer == o.Deployer &&
		p.DeployerTypeName == o.DeployerTypeName &&
		p.DeployerPropertyName == o.DeployerPropertyName &&
		p.OperationalStatus == o.OperationalStatus
}

func (p DeploymentProperties) String() string { return describe("DeploymentProperties", p) }
