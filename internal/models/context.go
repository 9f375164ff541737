package models

// SearchContext is the ParsedRequest-shaped partial persisted between turns.
// Only fields worth remembering for a follow-up survive distillation; display
// and transient fields are dropped before persisting.
type SearchContext struct {
	Type     RequestType      `json:"type"`
	Flights  *FlightCriteria  `json:"flights,omitempty"`
	Hotels   *HotelCriteria   `json:"hotels,omitempty"`
	Packages *PackageCriteria `json:"packages,omitempty"`
	Services *ServiceCriteria `json:"services,omitempty"`
}

// ContextState is the cross-turn conversational memory owned by the caller.
// TurnNumber grows monotonically per completed exchange; it guards merge
// ordering, not expiry.
type ContextState struct {
	LastSearch *SearchContext `json:"last_search,omitempty"`
	TurnNumber int            `json:"turn_number"`
}

// HasSearch reports whether there is a prior search to iterate on.
func (s *ContextState) HasSearch() bool {
	return s != nil && s.LastSearch != nil
}

type ContextAction string

const (
	ActionMerge   ContextAction = "merge"
	ActionReplace ContextAction = "replace"
	ActionClear   ContextAction = "clear"
)

type Followup struct {
	Type          string `json:"type"`
	PromptExample string `json:"prompt_example"`
}

// ContextManagement is the Context Builder decision: what the caller should do
// with the conversational context after a search, plus follow-up suggestions.
type ContextManagement struct {
	Action                ContextAction  `json:"action"`
	PersistForNextRequest *SearchContext `json:"persist_for_next_request"`
	SuggestedFollowups    []Followup     `json:"suggested_followups,omitempty"`
}
