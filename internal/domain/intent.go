package domain

// IntentType classifies what the user typed at the prompt.
type IntentType int

const (
	IntentUnknown IntentType = iota
	IntentShowList
	IntentShowAddForm
	IntentSearch      // payload is the search term, may be empty
	IntentViewDetails // payload is the 1-based position in the rendered list
	IntentBack
	IntentHelp
	IntentQuit
)

// String returns a human-readable intent type.
func (i IntentType) String() string {
	switch i {
	case IntentShowList:
		return "show_list"
	case IntentShowAddForm:
		return "show_add_form"
	case IntentSearch:
		return "search"
	case IntentViewDetails:
		return "view_details"
	case IntentBack:
		return "back"
	case IntentHelp:
		return "help"
	case IntentQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Intent represents a parsed user action.
type Intent struct {
	Type    IntentType
	Payload string
}
