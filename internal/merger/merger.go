package merger

import (
	"github.com/gonzaloriv/travelsearch/internal/models"
	"github.com/gonzaloriv/travelsearch/internal/trace"
)

// Merger combines a freshly parsed request with the previous turn's context
// once an iteration has been detected. The merge is shallow and right-biased
// at field level: anything the new parse extracted wins, anything it left out
// is carried over. Fresh extraction is trusted over stale context even for
// identity fields like origin. Inputs are never mutated.
type Merger struct {
	rec trace.Recorder
}

func New(rec trace.Recorder) *Merger {
	if rec == nil {
		rec = trace.NewNopRecorder()
	}
	return &Merger{rec: rec}
}

// Merge produces the effective request for this turn. Only call it when
// iteration.IsIteration is true and prev.LastSearch exists.
func (m *Merger) Merge(newReq models.ParsedRequest, prev *models.ContextState, iteration models.IterationResult, message string) models.ParsedRequest {
	if !iteration.IsIteration || !prev.HasSearch() {
		return newReq
	}

	last := prev.LastSearch
	merged := newReq

	if iteration.IsAddition() {
		// An add-on keeps the previous component untouched and attaches the
		// freshly parsed one: the result is a combined search.
		merged.Type = models.TypeCombined
		switch iteration.Type {
		case models.IterAddHotel:
			merged.Flights = copyFlights(last.Flights)
			if merged.Hotels == nil {
				merged.Hotels = &models.HotelCriteria{}
			}
		case models.IterAddFlight:
			merged.Hotels = copyHotels(last.Hotels)
			if merged.Flights == nil {
				merged.Flights = &models.FlightCriteria{}
			}
		}
		m.rec.Event("merger.addon", map[string]interface{}{
			"iteration_type": string(iteration.Type),
			"message":        message,
		})
		return merged
	}

	merged.Type = iteration.Component.RequestType()

	switch iteration.Component {
	case models.ComponentFlights:
		merged.Flights = mergeFlights(last.Flights, newReq.Flights)
	case models.ComponentHotels:
		merged.Hotels = mergeHotels(last.Hotels, newReq.Hotels)
	case models.ComponentPackages:
		merged.Packages = mergePackages(last.Packages, newReq.Packages)
	case models.ComponentServices:
		merged.Services = mergeServices(last.Services, newReq.Services)
	}

	m.rec.Event("merger.merged", map[string]interface{}{
		"component": string(iteration.Component),
		"type":      string(merged.Type),
	})
	return merged
}

// MergeContexts overlays a partial search context onto the previously stored
// one, sub-object by sub-object. It implements the context builder's merge
// action: sub-objects absent from next are carried over from prev, never
// dropped. Inputs are not mutated.
func MergeContexts(prev, next *models.SearchContext) *models.SearchContext {
	if prev == nil {
		return next
	}
	if next == nil {
		out := *prev
		return &out
	}

	return &models.SearchContext{
		Type:     next.Type,
		Flights:  mergeFlights(prev.Flights, next.Flights),
		Hotels:   mergeHotels(prev.Hotels, next.Hotels),
		Packages: mergePackages(prev.Packages, next.Packages),
		Services: mergeServices(prev.Services, next.Services),
	}
}

func mergeFlights(prev, next *models.FlightCriteria) *models.FlightCriteria {
	if prev == nil {
		return copyFlights(next)
	}
	out := *prev
	if next == nil {
		return &out
	}

	if next.Origin != "" {
		out.Origin = next.Origin
	}
	if next.Destination != "" {
		out.Destination = next.Destination
	}
	if next.DepartureDate != "" {
		out.DepartureDate = next.DepartureDate
	}
	if next.ReturnDate != nil {
		out.ReturnDate = next.ReturnDate
	}
	if next.Adults != nil {
		out.Adults = next.Adults
	}
	if next.Children > 0 {
		out.Children = next.Children
	}
	if next.Infants > 0 {
		out.Infants = next.Infants
	}
	if next.Luggage != nil {
		out.Luggage = next.Luggage
	}
	if next.Stops != nil {
		out.Stops = next.Stops
	}
	if next.PreferredAirline != nil {
		out.PreferredAirline = next.PreferredAirline
	}
	if next.MaxLayoverHours != nil {
		out.MaxLayoverHours = next.MaxLayoverHours
	}
	if next.DepartureTimePreference != nil {
		out.DepartureTimePreference = next.DepartureTimePreference
	}
	return &out
}

func mergeHotels(prev, next *models.HotelCriteria) *models.HotelCriteria {
	if prev == nil {
		return copyHotels(next)
	}
	out := *prev
	if next == nil {
		return &out
	}

	if next.City != "" {
		out.City = next.City
	}
	if next.CheckinDate != "" {
		out.CheckinDate = next.CheckinDate
	}
	if next.CheckoutDate != "" {
		out.CheckoutDate = next.CheckoutDate
	}
	if next.Adults != nil {
		out.Adults = next.Adults
	}
	if next.Children > 0 {
		out.Children = next.Children
	}
	if next.Infants > 0 {
		out.Infants = next.Infants
	}
	if next.RoomType != nil {
		out.RoomType = next.RoomType
	}
	if next.MealPlan != nil {
		out.MealPlan = next.MealPlan
	}
	// Array fields are replaced wholesale, never concatenated.
	if next.HotelChains != nil {
		out.HotelChains = next.HotelChains
	}
	if next.HotelChain != nil {
		out.HotelChain = next.HotelChain
	}
	if next.HotelName != nil {
		out.HotelName = next.HotelName
	}
	return &out
}

func mergePackages(prev, next *models.PackageCriteria) *models.PackageCriteria {
	if prev == nil {
		if next == nil {
			return nil
		}
		out := *next
		return &out
	}
	out := *prev
	if next == nil {
		return &out
	}

	if next.Destination != "" {
		out.Destination = next.Destination
	}
	if next.DateFrom != "" {
		out.DateFrom = next.DateFrom
	}
	if next.DateTo != "" {
		out.DateTo = next.DateTo
	}
	if next.Adults != nil {
		out.Adults = next.Adults
	}
	if next.Children > 0 {
		out.Children = next.Children
	}
	return &out
}

func mergeServices(prev, next *models.ServiceCriteria) *models.ServiceCriteria {
	if prev == nil {
		if next == nil {
			return nil
		}
		out := *next
		return &out
	}
	out := *prev
	if next == nil {
		return &out
	}

	if next.City != "" {
		out.City = next.City
	}
	if next.DateFrom != "" {
		out.DateFrom = next.DateFrom
	}
	if next.DateTo != nil {
		out.DateTo = next.DateTo
	}
	if next.ServiceType != nil {
		out.ServiceType = next.ServiceType
	}
	return &out
}

func copyFlights(f *models.FlightCriteria) *models.FlightCriteria {
	if f == nil {
		return nil
	}
	out := *f
	return &out
}

func copyHotels(h *models.HotelCriteria) *models.HotelCriteria {
	if h == nil {
		return nil
	}
	out := *h
	return &out
}
