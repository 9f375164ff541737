package models

type RequestType string

const (
	TypeFlights     RequestType = "flights"
	TypeHotels      RequestType = "hotels"
	TypeCombined    RequestType = "combined"
	TypePackages    RequestType = "packages"
	TypeServices    RequestType = "services"
	TypeItinerary   RequestType = "itinerary"
	TypeGeneral     RequestType = "general"
	TypeMissingInfo RequestType = "missing_info_request"
)

// FlightCriteria describes one flight search. Adults is a pointer because an
// explicit 0 and an absent value are different states: explicit 0 together
// with minors is a policy violation, absence is just missing data to prompt
// for.
type FlightCriteria struct {
	Origin                  string  `json:"origin"`
	Destination             string  `json:"destination"`
	DepartureDate           string  `json:"departure_date"`
	ReturnDate              *string `json:"return_date,omitempty"`
	Adults                  *int    `json:"adults,omitempty"`
	Children                int     `json:"children"`
	Infants                 int     `json:"infants"`
	Luggage                 *string `json:"luggage,omitempty"`
	Stops                   *string `json:"stops,omitempty"`
	PreferredAirline        *string `json:"preferred_airline,omitempty"`
	MaxLayoverHours         *int    `json:"max_layover_hours,omitempty"`
	DepartureTimePreference *string `json:"departure_time_preference,omitempty"`
}

type HotelCriteria struct {
	City         string   `json:"city"`
	CheckinDate  string   `json:"checkin_date"`
	CheckoutDate string   `json:"checkout_date"`
	Adults       *int     `json:"adults,omitempty"`
	Children     int      `json:"children"`
	Infants      int      `json:"infants"`
	RoomType     *string  `json:"room_type,omitempty"`
	MealPlan     *string  `json:"meal_plan,omitempty"`
	HotelChains  []string `json:"hotel_chains,omitempty"`
	HotelChain   *string  `json:"hotel_chain,omitempty"`
	HotelName    *string  `json:"hotel_name,omitempty"`
}

type PackageCriteria struct {
	Destination string `json:"destination"`
	DateFrom    string `json:"date_from"`
	DateTo      string `json:"date_to"`
	Adults      *int   `json:"adults,omitempty"`
	Children    int    `json:"children"`
}

type ServiceCriteria struct {
	City        string  `json:"city"`
	DateFrom    string  `json:"date_from"`
	DateTo      *string `json:"date_to,omitempty"`
	ServiceType *string `json:"service_type,omitempty"`
}

type ItineraryCriteria struct {
	Destinations []string `json:"destinations"`
	Days         int      `json:"days"`
	Month        *string  `json:"month,omitempty"`
}

// ParsedRequest is the canonical in-flight search specification produced by
// the AI parsing collaborator and refined by the iteration pipeline.
type ParsedRequest struct {
	Type       RequestType        `json:"type"`
	Flights    *FlightCriteria    `json:"flights,omitempty"`
	Hotels     *HotelCriteria     `json:"hotels,omitempty"`
	Packages   *PackageCriteria   `json:"packages,omitempty"`
	Services   *ServiceCriteria   `json:"services,omitempty"`
	Itinerary  *ItineraryCriteria `json:"itinerary,omitempty"`
	Confidence float64            `json:"confidence"`
}

// IntPtr returns a pointer to v, for optional count fields.
func IntPtr(v int) *int { return &v }

// StrPtr returns a pointer to v, for optional string fields.
func StrPtr(v string) *string { return &v }
