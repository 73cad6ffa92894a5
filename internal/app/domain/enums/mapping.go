package enums

// ElementStatus maps a process status onto the element status stored in the
// repository.
func (p ProcessStatus) ElementStatus() ElementStatus {
	switch p {
	case ProcessStatusDraft:
		return ElementStatusDraft
	case ProcessStatusProposed:
		return ElementStatusProposed
	case ProcessStatusApproved:
		return ElementStatusApproved
	case ProcessStatusActive:
		return ElementStatusActive
	case ProcessStatusDeprecated:
		return ElementStatusDeprecated
	case ProcessStatusOther:
		return ElementStatusOther
	default:
		return ElementStatusUnknown
	}
}

// ProcessStatusOf is the inverse of ProcessStatus.ElementStatus. Element
// statuses with no process equivalent map to OTHER.
func ProcessStatusOf(s ElementStatus) ProcessStatus {
	switch s {
	case ElementStatusUnknown:
		return ProcessStatusUnknown
	case ElementStatusDraft:
		return ProcessStatusDraft
	case ElementStatusProposed:
		return ProcessStatusProposed
	case ElementStatusApproved:
		return ProcessStatusApproved
	case ElementStatusActive:
		return ProcessStatusActive
	case ElementStatusDeprecated:
		return ProcessStatusDeprecated
	default:
		return ProcessStatusOther
	}
}

// Visible reports whether elements with this status are returned by
// retrieval operations.
func (e ElementStatus) Visible() bool {
	return e != ElementStatusDeleted
}
