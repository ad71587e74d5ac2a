package reservation

type UIState string

const (
	StateEditing    UIState = "editing"
	StateConfirming UIState = "confirming"
	StateSubmitted  UIState = "submitted"
	StateFailed     UIState = "failed"
)

func (s UIState) String() string {
	return string(s)
}

func (s UIState) IsValid() bool {
	switch s {
	case StateEditing, StateConfirming, StateSubmitted, StateFailed:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the current draft can no longer be submitted.
func (s UIState) IsTerminal() bool {
	return s == StateSubmitted || s == StateFailed
}

// Field names the form control an alert is attached to.
type Field string

const (
	FieldTime      Field = "time"
	FieldDate      Field = "date"
	FieldName      Field = "name"
	FieldPhone     Field = "phone"
	FieldPartySize Field = "partySize"
	FieldForm      Field = "form"
)

func (f Field) IsValid() bool {
	switch f {
	case FieldTime, FieldDate, FieldName, FieldPhone, FieldPartySize, FieldForm:
		return true
	default:
		return false
	}
}
