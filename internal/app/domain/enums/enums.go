package enums

// ElementStatus is the lifecycle status of a metadata element.
type ElementStatus int

// ElementStatus values.
const (
	ElementStatusUnknown               ElementStatus = 0
	ElementStatusDraft                 ElementStatus = 1
	ElementStatusPrepared              ElementStatus = 2
	ElementStatusProposed              ElementStatus = 3
	ElementStatusApproved              ElementStatus = 4
	ElementStatusRejected              ElementStatus = 5
	ElementStatusApprovedConcept       ElementStatus = 6
	ElementStatusUnderDevelopment      ElementStatus = 7
	ElementStatusDevelopmentComplete   ElementStatus = 8
	ElementStatusApprovedForDeployment ElementStatus = 9
	ElementStatusStandby               ElementStatus = 10
	ElementStatusActive                ElementStatus = 15
	ElementStatusFailed                ElementStatus = 16
	ElementStatusDisabled              ElementStatus = 17
	ElementStatusComplete              ElementStatus = 18
	ElementStatusDeprecated            ElementStatus = 19
	ElementStatusOther                 ElementStatus = 50
	ElementStatusDeleted               ElementStatus = 99
)

var elementStatuses = newVocabulary("ElementStatus", "", "",
	entry[ElementStatus]{ElementStatusUnknown, "UNKNOWN", "Unknown element status.", 0},
	entry[ElementStatus]{ElementStatusDraft, "DRAFT", "The content is incomplete.", 1},
	entry[ElementStatus]{ElementStatusPrepared, "PREPARED", "The content is ready for review.", 2},
	entry[ElementStatus]{ElementStatusProposed, "PROPOSED", "The content is in review.", 3},
	entry[ElementStatus]{ElementStatusApproved, "APPROVED", "The content is approved.", 4},
	entry[ElementStatus]{ElementStatusRejected, "REJECTED", "The request or proposal is rejected.", 5},
	entry[ElementStatus]{ElementStatusApprovedConcept, "APPROVED_CONCEPT", "The request or proposal is approved for development.", 6},
	entry[ElementStatus]{ElementStatusUnderDevelopment, "UNDER_DEVELOPMENT", "The further development of the element is in progress.", 7},
	entry[ElementStatus]{ElementStatusDevelopmentComplete, "DEVELOPMENT_COMPLETE", "The development of the element is complete.", 8},
	entry[ElementStatus]{ElementStatusApprovedForDeployment, "APPROVED_FOR_DEPLOYMENT", "The element is approved for deployment.", 9},
	entry[ElementStatus]{ElementStatusStandby, "STANDBY", "The element is deployed in standby mode.", 10},
	entry[ElementStatus]{ElementStatusActive, "ACTIVE", "The element is approved and in use.", 15},
	entry[ElementStatus]{ElementStatusFailed, "FAILED", "The element has reported a failure.", 16},
	entry[ElementStatus]{ElementStatusDisabled, "DISABLED", "The element is deployed but disabled.", 17},
	entry[ElementStatus]{ElementStatusComplete, "COMPLETE", "The activity associated with the element is complete.", 18},
	entry[ElementStatus]{ElementStatusDeprecated, "DEPRECATED", "The element is out of date and should not be used.", 19},
	entry[ElementStatus]{ElementStatusOther, "OTHER", "The status of the element is described in another property.", 50},
	entry[ElementStatus]{ElementStatusDeleted, "DELETED", "The element has been deleted and is no longer in use.", 99},
)

// Ordinal returns the wire ordinal.
func (e ElementStatus) Ordinal() int { return int(e) }

func (e ElementStatus) String() string { return elementStatuses.nameOf(e) }

// Description returns the human readable meaning of the value.
func (e ElementStatus) Description() string { return elementStatuses.descriptionOf(e) }

// OpenTypeOrdinal returns the ordinal of the matching open metadata enum value.
func (e ElementStatus) OpenTypeOrdinal() int { return elementStatuses.openOrdinal(e) }

// MarshalJSON encodes the value by name.
func (e ElementStatus) MarshalJSON() ([]byte, error) { return elementStatuses.marshal(e) }

// UnmarshalJSON accepts a name or an ordinal.
func (e *ElementStatus) UnmarshalJSON(data []byte) error { return elementStatuses.unmarshal(data, e) }

// ParseElementStatus converts a name or ordinal string to a ElementStatus.
func ParseElementStatus(s string) (ElementStatus, error) { return elementStatuses.parse(s) }

// ElementStatusValues lists every ElementStatus in declaration order.
func ElementStatusValues() []ElementStatus { return elementStatuses.values() }

// CommentType classifies a comment attached to an element.
type CommentType int

// CommentType values.
const (
	CommentTypeStandard        CommentType = 0
	CommentTypeQuestion        CommentType = 1
	CommentTypeAnswer          CommentType = 2
	CommentTypeSuggestion      CommentType = 3
	CommentTypeUsageExperience CommentType = 4
	CommentTypeRequirement     CommentType = 5
	CommentTypeOther           CommentType = 99
)

var commentTypes = newVocabulary("CommentType", "06d5032e-192a-4f77-ade1-a4b97926e867", "CommentType",
	entry[CommentType]{CommentTypeStandard, "STANDARD_COMMENT", "General comment.", 0},
	entry[CommentType]{CommentTypeQuestion, "QUESTION", "A question.", 1},
	entry[CommentType]{CommentTypeAnswer, "ANSWER", "An answer to a previously asked question.", 2},
	entry[CommentType]{CommentTypeSuggestion, "SUGGESTION", "A suggestion for improvement.", 3},
	entry[CommentType]{CommentTypeUsageExperience, "USAGE_EXPERIENCE", "An account of an experience using the element.", 4},
	entry[CommentType]{CommentTypeRequirement, "REQUIREMENT", "A requirement for the element.", 5},
	entry[CommentType]{CommentTypeOther, "OTHER", "Unknown comment type.", 99},
)

// Ordinal returns the wire ordinal.
func (c CommentType) Ordinal() int { return int(c) }

func (c CommentType) String() string { return commentTypes.nameOf(c) }

// Description returns the human readable meaning of the value.
func (c CommentType) Description() string { return commentTypes.descriptionOf(c) }

// OpenTypeOrdinal returns the ordinal of the matching open metadata enum value.
func (c CommentType) OpenTypeOrdinal() int { return commentTypes.openOrdinal(c) }

// MarshalJSON encodes the value by name.
func (c CommentType) MarshalJSON() ([]byte, error) { return commentTypes.marshal(c) }

// UnmarshalJSON accepts a name or an ordinal.
func (c *CommentType) UnmarshalJSON(data []byte) error { return commentTypes.unmarshal(data, c) }

// ParseCommentType converts a name or ordinal string to a CommentType.
func ParseCommentType(s string) (CommentType, error) { return commentTypes.parse(s) }

// CommentTypeValues lists every CommentType in declaration order.
func CommentTypeValues() []CommentType { return commentTypes.values() }

// ContactMethodType is the mechanism used to reach a profile.
type ContactMethodType int

// ContactMethodType values.
const (
	ContactMethodEmail   ContactMethodType = 0
	ContactMethodPhone   ContactMethodType = 1
	ContactMethodChat    ContactMethodType = 2
	ContactMethodProfile ContactMethodType = 3
	ContactMethodAccount ContactMethodType = 4
	ContactMethodOther   ContactMethodType = 99
)

var contactMethodTypes = newVocabulary("ContactMethodType", "30e7d8cd-df01-46e8-9247-a24c5650910d", "ContactMethodType",
	entry[ContactMethodType]{ContactMethodEmail, "EMAIL", "Contact through email.", 0},
	entry[ContactMethodType]{ContactMethodPhone, "PHONE", "Contact through telephone number.", 1},
	entry[ContactMethodType]{ContactMethodChat, "CHAT", "Contact through chat account.", 2},
	entry[ContactMethodType]{ContactMethodProfile, "PROFILE", "Contact through open metadata profile.", 3},
	entry[ContactMethodType]{ContactMethodAccount, "ACCOUNT", "Contact through social media or similar account.", 4},
	entry[ContactMethodType]{ContactMethodOther, "OTHER", "Another usage.", 99},
)

// Ordinal returns the wire ordinal.
func (c ContactMethodType) Ordinal() int { return int(c) }

func (c ContactMethodType) String() string { return contactMethodTypes.nameOf(c) }

// Description returns the human readable meaning of the value.
func (c ContactMethodType) Description() string { return contactMethodTypes.descriptionOf(c) }

// OpenTypeOrdinal returns the ordinal of the matching open metadata enum value.
func (c ContactMethodType) OpenTypeOrdinal() int { return contactMethodTypes.openOrdinal(c) }

// MarshalJSON encodes the value by name.
func (c ContactMethodType) MarshalJSON() ([]byte, error) { return contactMethodTypes.marshal(c) }

// UnmarshalJSON accepts a name or an ordinal.
func (c *ContactMethodType) UnmarshalJSON(data []byte) error {
	return contactMethodTypes.unmarshal(data, c)
}

// ParseContactMethodType converts a name or ordinal string to a ContactMethodType.
func ParseContactMethodType(s string) (ContactMethodType, error) { return contactMethodTypes.parse(s) }

// ContactMethodTypeValues lists every ContactMethodType in declaration order.
func ContactMethodTypeValues() []ContactMethodType { return contactMethodTypes.values() }

// OperationalStatus reports whether a deployed asset is running.
type OperationalStatus int

// OperationalStatus values.
const (
	OperationalStatusDisabled OperationalStatus = 0
	OperationalStatusEnabled  OperationalStatus = 1
)

var operationalStatuses = newVocabulary("OperationalStatus", "24e1e33e-9250-4a6c-8b07-05c7adec3a1d", "OperationalStatus",
	entry[OperationalStatus]{OperationalStatusDisabled, "DISABLED", "The deployed asset is not operational.", 0},
	entry[OperationalStatus]{OperationalStatusEnabled, "ENABLED", "The deployed asset is operational.", 1},
)

// Ordinal returns the wire ordinal.
func (o OperationalStatus) Ordinal() int { return int(o) }

func (o OperationalStatus) String() string { return operationalStatuses.nameOf(o) }

// Description returns the human readable meaning of the value.
func (o OperationalStatus) Description() string { return operationalStatuses.descriptionOf(o) }

// OpenTypeOrdinal returns the ordinal of the matching open metadata enum value.
func (o OperationalStatus) OpenTypeOrdinal() int { return operationalStatuses.openOrdinal(o) }

// MarshalJSON encodes the value by name.
func (o OperationalStatus) MarshalJSON() ([]byte, error) { return operationalStatuses.marshal(o) }

// UnmarshalJSON accepts a name or an ordinal.
func (o *OperationalStatus) UnmarshalJSON(data []byte) error {
	return operationalStatuses.unmarshal(data, o)
}

// ParseOperationalStatus converts a name or ordinal string to a OperationalStatus.
func ParseOperationalStatus(s string) (OperationalStatus, error) { return operationalStatuses.parse(s) }

// OperationalStatusValues lists every OperationalStatus in declaration order.
func OperationalStatusValues() []OperationalStatus { return operationalStatuses.values() }

// ProcessStatus is the lifecycle status of a process definition.
type ProcessStatus int

// ProcessStatus values.
const (
	ProcessStatusUnknown    ProcessStatus = 0
	ProcessStatusDraft      ProcessStatus = 1
	ProcessStatusProposed   ProcessStatus = 2
	ProcessStatusApproved   ProcessStatus = 3
	ProcessStatusActive     ProcessStatus = 4
	ProcessStatusDeprecated ProcessStatus = 5
	ProcessStatusOther      ProcessStatus = 99
)

var processStatuses = newVocabulary("ProcessStatus", "", "",
	entry[ProcessStatus]{ProcessStatusUnknown, "UNKNOWN", "Unknown process status.", 0},
	entry[ProcessStatus]{ProcessStatusDraft, "DRAFT", "The process is incomplete.", 1},
	entry[ProcessStatus]{ProcessStatusProposed, "PROPOSED", "The process is in review.", 2},
	entry[ProcessStatus]{ProcessStatusApproved, "APPROVED", "The process is approved.", 3},
	entry[ProcessStatus]{ProcessStatusActive, "ACTIVE", "The process is approved and in use.", 4},
	entry[ProcessStatus]{ProcessStatusDeprecated, "DEPRECATED", "The process should no longer be used.", 5},
	entry[ProcessStatus]{ProcessStatusOther, "OTHER", "Another process status.", 99},
)

// Ordinal returns the wire ordinal.
func (p ProcessStatus) Ordinal() int { return int(p) }

func (p ProcessStatus) String() string { return processStatuses.nameOf(p) }

// Description returns the human readable meaning of the value.
func (p ProcessStatus) Description() string { return processStatuses.descriptionOf(p) }

// OpenTypeOrdinal returns the ordinal of the matching open metadata enum value.
func (p ProcessStatus) OpenTypeOrdinal() int { return processStatuses.openOrdinal(p) }

// MarshalJSON encodes the value by name.
func (p ProcessStatus) MarshalJSON() ([]byte, error) { return processStatuses.marshal(p) }

// UnmarshalJSON accepts a name or an ordinal.
func (p *ProcessStatus) UnmarshalJSON(data []byte) error { return processStatuses.unmarshal(data, p) }

// ParseProcessStatus converts a name or ordinal string to a ProcessStatus.
func ParseProcessStatus(s string) (ProcessStatus, error) { return processStatuses.parse(s) }

// ProcessStatusValues lists every ProcessStatus in declaration order.
func ProcessStatusValues() []ProcessStatus { return processStatuses.values() }

// ProcessContainmentType describes the ownership of a child process.
type ProcessContainmentType int

// ProcessContainmentType values.
const (
	ProcessContainmentOwned ProcessContainmentType = 0
	ProcessContainmentUsed  ProcessContainmentType = 1
	ProcessContainmentOther ProcessContainmentType = 99
)

var processContainmentTypes = newVocabulary("ProcessContainmentType", "1bb4b908-7983-4802-a2b5-91b095552ee9", "ProcessContainmentType",
	entry[ProcessContainmentType]{ProcessContainmentOwned, "OWNED", "The parent process owns the child process in the relationship.", 0},
	entry[ProcessContainmentType]{ProcessContainmentUsed, "USED", "The child process is defined independently of the parent.", 1},
	entry[ProcessContainmentType]{ProcessContainmentOther, "OTHER", "None of the above.", 99},
)

// Ordinal returns the wire ordinal.
func (p ProcessContainmentType) Ordinal() int { return int(p) }

func (p ProcessContainmentType) String() string { return processContainmentTypes.nameOf(p) }

// Description returns the human readable meaning of the value.
func (p ProcessContainmentType) Description() string { return processContainmentTypes.descriptionOf(p) }

// OpenTypeOrdinal returns the ordinal of the matching open metadata enum value.
func (p ProcessContainmentType) OpenTypeOrdinal() int { return processContainmentTypes.openOrdinal(p) }

// MarshalJSON encodes the value by name.
func (p ProcessContainmentType) MarshalJSON() ([]byte, error) {
	return processContainmentTypes.marshal(p)
}

// UnmarshalJSON accepts a name or an ordinal.
func (p *ProcessContainmentType) UnmarshalJSON(data []byte) error {
	return processContainmentTypes.unmarshal(data, p)
}

// ParseProcessContainmentType converts a name or ordinal string to a ProcessContainmentType.
func ParseProcessContainmentType(s string) (ProcessContainmentType, error) {
	return processContainmentTypes.parse(s)
}

// ProcessContainmentTypeValues lists every ProcessContainmentType in declaration order.
func ProcessContainmentTypeValues() []ProcessContainmentType { return processContainmentTypes.values() }

// ServerAssetUseType describes how a software server uses an asset.
type ServerAssetUseType int

// ServerAssetUseType values.
const (
	ServerAssetUseOwns      ServerAssetUseType = 0
	ServerAssetUseGoverns   ServerAssetUseType = 1
	ServerAssetUseMaintains ServerAssetUseType = 2
	ServerAssetUseUses      ServerAssetUseType = 3
	ServerAssetUseOther     ServerAssetUseType = 99
)

var serverAssetUseTypes = newVocabulary("ServerAssetUseType", "09439481-9489-467c-9ae5-178a6e0b6b5a", "ServerAssetUseType",
	entry[ServerAssetUseType]{ServerAssetUseOwns, "OWNS", "The software server capability is accountable for the maintenance and protection of the asset.", 0},
	entry[ServerAssetUseType]{ServerAssetUseGoverns, "GOVERNS", "The software server capability provides management or oversight of the asset.", 1},
	entry[ServerAssetUseType]{ServerAssetUseMaintains, "MAINTAINS", "The software server capability keeps the asset up-to-date.", 2},
	entry[ServerAssetUseType]{ServerAssetUseUses, "USES", "The software server capability consumes the content of the asset.", 3},
	entry[ServerAssetUseType]{ServerAssetUseOther, "OTHER", "Another usage.", 99},
)

// Ordinal returns the wire ordinal.
func (s ServerAssetUseType) Ordinal() int { return int(s) }

func (s ServerAssetUseType) String() string { return serverAssetUseTypes.nameOf(s) }

// Description returns the human readable meaning of the value.
func (s ServerAssetUseType) Description() string { return serverAssetUseTypes.descriptionOf(s) }

// OpenTypeOrdinal returns the ordinal of the matching open metadata enum value.
func (s ServerAssetUseType) OpenTypeOrdinal() int { return serverAssetUseTypes.openOrdinal(s) }

// MarshalJSON encodes the value by name.
func (s ServerAssetUseType) MarshalJSON() ([]byte, error) { return serverAssetUseTypes.marshal(s) }

// UnmarshalJSON accepts a name or an ordinal.
func (s *ServerAssetUseType) UnmarshalJSON(data []byte) error {
	return serverAssetUseTypes.unmarshal(data, s)
}

// ParseServerAssetUseType converts a name or ordinal string to a ServerAssetUseType.
func ParseServerAssetUseType(s string) (ServerAssetUseType, error) {
	return serverAssetUseTypes.parse(s)
}

// ServerAssetUseTypeValues lists every ServerAssetUseType in declaration order.
func ServerAssetUseTypeValues() []ServerAssetUseType { return serverAssetUseTypes.values() }

// KeyPattern describes how the identifiers of an external system are managed.
type KeyPattern int

// KeyPattern values.
const (
	KeyPatternLocal     KeyPattern = 0
	KeyPatternRecycled  KeyPattern = 1
	KeyPatternNatural   KeyPattern = 2
	KeyPatternMirror    KeyPattern = 3
	KeyPatternAggregate KeyPattern = 4
	KeyPatternCallers   KeyPattern = 5
	KeyPatternStable    KeyPattern = 6
	KeyPatternOther     KeyPattern = 99
)

var keyPatterns = newVocabulary("KeyPattern", "8904df8f-1aca-4de8-9abd-1ef2aadba300", "KeyPattern",
	entry[KeyPattern]{KeyPatternLocal, "LOCAL_KEY", "Unique key allocated and used within the scope of a single system.", 0},
	entry[KeyPattern]{KeyPatternRecycled, "RECYCLED_KEY", "Key allocated and used within the scope of a single system that is periodically reused.", 1},
	entry[KeyPattern]{KeyPatternNatural, "NATURAL_KEY", "Key derived from an attribute of the entity.", 2},
	entry[KeyPattern]{KeyPatternMirror, "MIRROR_KEY", "Keys copied from another system.", 3},
	entry[KeyPattern]{KeyPatternAggregate, "AGGREGATE_KEY", "Key formed by combining keys from multiple systems.", 4},
	entry[KeyPattern]{KeyPatternCallers, "CALLERS_KEY", "Key from another system can be used if system name provided.", 5},
	entry[KeyPattern]{KeyPatternStable, "STABLE_KEY", "Key value will remain active even if records are merged.", 6},
	entry[KeyPattern]{KeyPatternOther, "OTHER", "Another key pattern.", 99},
)

// Ordinal returns the wire ordinal.
func (k KeyPattern) Ordinal() int { return int(k) }

func (k KeyPattern) String() string { return keyPatterns.nameOf(k) }

// Description returns the human readable meaning of the value.
func (k KeyPattern) Description() string { return keyPatterns.descriptionOf(k) }

// OpenTypeOrdinal returns the ordinal of the matching open metadata enum value.
func (k KeyPattern) OpenTypeOrdinal() int { return keyPatterns.openOrdinal(k) }

// MarshalJSON encodes the value by name.
func (k KeyPattern) MarshalJSON() ([]byte, error) { return keyPatterns.marshal(k) }

// UnmarshalJSON accepts a name or an ordinal.
func (k *KeyPattern) UnmarshalJSON(data []byte) error { return keyPatterns.unmarshal(data, k) }

// ParseKeyPattern converts a name or ordinal string to a KeyPattern.
func ParseKeyPattern(s string) (KeyPattern, error) { return keyPatterns.parse(s) }

// KeyPatternValues lists every KeyPattern in declaration order.
func KeyPatternValues() []KeyPattern { return keyPatterns.values() }

// EventType classifies out-topic notifications.
type EventType int

// EventType values.
const (
	EventNewElement          EventType = 0
	EventUpdatedElement      EventType = 1
	EventDeletedElement      EventType = 2
	EventNewRelationship     EventType = 3
	EventDeletedRelationship EventType = 4
	EventOther               EventType = 99
)

var eventTypes = newVocabulary("EventType", "", "",
	entry[EventType]{EventNewElement, "NEW_ELEMENT", "A new element has been created.", 0},
	entry[EventType]{EventUpdatedElement, "UPDATED_ELEMENT", "An element's properties or status have changed.", 1},
	entry[EventType]{EventDeletedElement, "DELETED_ELEMENT", "An element has been removed.", 2},
	entry[EventType]{EventNewRelationship, "NEW_RELATIONSHIP", "Two elements have been linked.", 3},
	entry[EventType]{EventDeletedRelationship, "DELETED_RELATIONSHIP", "A link between two elements has been removed.", 4},
	entry[EventType]{EventOther, "OTHER", "Another kind of change.", 99},
)

// Ordinal returns the wire ordinal.
func (e EventType) Ordinal() int { return int(e) }

func (e EventType) String() string { return eventTypes.nameOf(e) }

// Description returns the human readable meaning of the value.
func (e EventType) Description() string { return eventTypes.descriptionOf(e) }

// OpenTypeOrdinal returns the ordinal of the matching open metadata enum value.
func (e EventType) OpenTypeOrdinal() int { return eventTypes.openOrdinal(e) }

// MarshalJSON encodes the value by name.
func (e EventType) MarshalJSON() ([]byte, error) { return eventTypes.marshal(e) }

// UnmarshalJSON accepts a name or an ordinal.
func (e *EventType) UnmarshalJSON(data []byte) error { return eventTypes.unmarshal(data, e) }

// ParseEventType converts a name or ordinal string to a EventType.
func ParseEventType(s string) (EventType, error) { return eventTypes.parse(s) }

// EventTypeValues lists every EventType in declaration order.
func EventTypeValues() []EventType { return eventTypes.values() }

// Vocabularies describes every vocabulary by name for the valid-values endpoint.
func Vocabularies() map[string]VocabularyDescriptor {
	return map[string]VocabularyDescriptor{
		"ElementStatus":          elementStatuses.describe(),
		"CommentType":            commentTypes.describe(),
		"ContactMethodType":      contactMethodTypes.describe(),
		"OperationalStatus":      operationalStatuses.describe(),
		"ProcessStatus":          processStatuses.describe(),
		"ProcessContainmentType": processContainmentTypes.describe(),
		"ServerAssetUseType":     serverAssetUseTypes.describe(),
		"KeyPattern":             keyPatterns.describe(),
		"EventType":              eventTypes.describe(),
	}
}
