package models

import "encoding/json"

type IterationType string

const (
	IterModifyDates       IterationType = "modify-dates"
	IterModifyPassengers  IterationType = "modify-passengers"
	IterModifyDestination IterationType = "modify-destination"
	IterModifyPreferences IterationType = "modify-preferences"
	IterAddHotel          IterationType = "add-hotel"
	IterAddFlight         IterationType = "add-flight"
)

type Component string

const (
	ComponentFlights  Component = "flights"
	ComponentHotels   Component = "hotels"
	ComponentPackages Component = "packages"
	ComponentServices Component = "services"
)

// RequestType returns the search type that a merge targeting this component
// produces.
func (c Component) RequestType() RequestType {
	switch c {
	case ComponentHotels:
		return TypeHotels
	case ComponentPackages:
		return TypePackages
	case ComponentServices:
		return TypeServices
	default:
		return TypeFlights
	}
}

// IterationResult classifies an inbound message against the previous turn.
type IterationResult struct {
	IsIteration bool          `json:"is_iteration"`
	Type        IterationType `json:"iteration_type,omitempty"`
	Component   Component     `json:"modified_component,omitempty"`
	Confidence  float64       `json:"confidence"`
}

// IsAddition reports whether the iteration attaches a new sub-object to the
// previous search rather than modifying an existing one.
func (r IterationResult) IsAddition() bool {
	return r.Type == IterAddHotel || r.Type == IterAddFlight
}

type MissingField struct {
	Field       string   `json:"field"`
	Description string   `json:"description"`
	Examples    []string `json:"examples"`
}

// ValidationResult reports either approval or the full list of gaps, so the
// caller can prompt for everything at once.
type ValidationResult struct {
	IsValid       bool           `json:"is_valid"`
	Message       string         `json:"message,omitempty"`
	MissingFields []MissingField `json:"missing_fields,omitempty"`
}

type ResultStatus string

const (
	StatusCompleted  ResultStatus = "completed"
	StatusIncomplete ResultStatus = "incomplete"
	StatusError      ResultStatus = "error"
)

type CategoryResult struct {
	Count int               `json:"count"`
	Items []json.RawMessage `json:"items,omitempty"`
}

// SearchResults is the search-execution collaborator's outcome consumed by
// the Context Builder.
type SearchResults struct {
	Status   ResultStatus    `json:"status"`
	Type     RequestType     `json:"type,omitempty"`
	Flights  *CategoryResult `json:"flights,omitempty"`
	Hotels   *CategoryResult `json:"hotels,omitempty"`
	Packages *CategoryResult `json:"packages,omitempty"`
	Services *CategoryResult `json:"services,omitempty"`
	Error    string          `json:"error,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
