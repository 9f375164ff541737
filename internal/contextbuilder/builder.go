package contextbuilder

import (
	"github.com/gonzaloriv/travelsearch/internal/models"
	"github.com/gonzaloriv/travelsearch/internal/trace"
)

// Builder derives the context to persist for the next turn from a completed
// search. The decision table is an ordered chain: several conditions can be
// true at once and only the first applicable branch fires.
type Builder struct {
	rec trace.Recorder
}

func New(rec trace.Recorder) *Builder {
	if rec == nil {
		rec = trace.NewNopRecorder()
	}
	return &Builder{rec: rec}
}

func (b *Builder) Build(parsed models.ParsedRequest, results models.SearchResults) models.ContextManagement {
	branch, out := b.build(parsed, results)
	b.rec.Event("contextbuilder.branch", map[string]interface{}{
		"branch": branch,
		"action": string(out.Action),
		"type":   string(parsed.Type),
	})
	return out
}

func (b *Builder) build(parsed models.ParsedRequest, results models.SearchResults) (string, models.ContextManagement) {
	if results.Status == models.StatusIncomplete {
		return "incomplete", models.ContextManagement{
			Action:                models.ActionMerge,
			PersistForNextRequest: partialContext(parsed),
		}
	}

	// Errors must not destroy conversational state.
	if results.Status == models.StatusError {
		return "error", models.ContextManagement{
			Action:                models.ActionMerge,
			PersistForNextRequest: partialContext(parsed),
		}
	}

	if results.Status == models.StatusCompleted && parsed.Type == models.TypeCombined {
		// A combined booking is a completed transaction; the next message
		// starts fresh.
		return "combined-completed", models.ContextManagement{
			Action:                models.ActionClear,
			PersistForNextRequest: nil,
			SuggestedFollowups: []models.Followup{
				{Type: "new_search", PromptExample: "Buscame otro destino"},
				{Type: "cheaper_alternative", PromptExample: "¿Hay opciones más baratas?"},
			},
		}
	}

	if results.Status == models.StatusCompleted && parsed.Type == models.TypeFlights &&
		results.Flights != nil && results.Flights.Count > 0 {
		return "flights-completed", models.ContextManagement{
			Action:                models.ActionReplace,
			PersistForNextRequest: distillFlights(parsed.Flights),
			SuggestedFollowups: []models.Followup{
				{Type: "add_hotel", PromptExample: "Agregale un hotel"},
				{Type: "cheaper_alternative", PromptExample: "¿Hay algo más barato?"},
				{Type: "different_dates", PromptExample: "Probá con otras fechas"},
				{Type: "different_airline", PromptExample: "Mejor con otra aerolínea"},
			},
		}
	}

	if results.Status == models.StatusCompleted && parsed.Type == models.TypeHotels &&
		results.Hotels != nil && results.Hotels.Count > 0 {
		return "hotels-completed", models.ContextManagement{
			Action:                models.ActionReplace,
			PersistForNextRequest: distillHotels(parsed.Hotels),
			SuggestedFollowups: []models.Followup{
				{Type: "add_flight", PromptExample: "Agregale los vuelos"},
				{Type: "cheaper_alternative", PromptExample: "¿Hay algo más económico?"},
				{Type: "different_dates", PromptExample: "Probá con otras fechas"},
			},
		}
	}

	if results.Status == models.StatusCompleted && anySearchedCategoryEmpty(results) {
		return "zero-results", models.ContextManagement{
			Action:                models.ActionMerge,
			PersistForNextRequest: partialContext(parsed),
			SuggestedFollowups: []models.Followup{
				{Type: "different_dates", PromptExample: "Probá con otras fechas"},
				{Type: "broaden_search", PromptExample: "Buscá con más flexibilidad"},
			},
		}
	}

	return "default", models.ContextManagement{
		Action:                models.ActionMerge,
		PersistForNextRequest: partialContext(parsed),
	}
}

// partialContext shallow-copies every sub-object present on the request. It
// is the merge-shaped payload used whenever the search did not complete with
// results worth distilling.
func partialContext(parsed models.ParsedRequest) *models.SearchContext {
	ctx := &models.SearchContext{Type: parsed.Type}
	if parsed.Flights != nil {
		f := *parsed.Flights
		ctx.Flights = &f
	}
	if parsed.Hotels != nil {
		h := *parsed.Hotels
		ctx.Hotels = &h
	}
	if parsed.Packages != nil {
		p := *parsed.Packages
		ctx.Packages = &p
	}
	if parsed.Services != nil {
		s := *parsed.Services
		ctx.Services = &s
	}
	return ctx
}

// distillFlights keeps only the fields worth remembering for a follow-up:
// route, dates, pax, and whichever optional preferences were actually set.
func distillFlights(f *models.FlightCriteria) *models.SearchContext {
	if f == nil {
		return &models.SearchContext{Type: models.TypeFlights}
	}

	distilled := &models.FlightCriteria{
		Origin:        f.Origin,
		Destination:   f.Destination,
		DepartureDate: f.DepartureDate,
		ReturnDate:    f.ReturnDate,
		Adults:        f.Adults,
		Children:      f.Children,
		Infants:       f.Infants,
	}
	if f.Luggage != nil {
		distilled.Luggage = f.Luggage
	}
	if f.Stops != nil {
		distilled.Stops = f.Stops
	}
	if f.PreferredAirline != nil {
		distilled.PreferredAirline = f.PreferredAirline
	}
	if f.MaxLayoverHours != nil {
		distilled.MaxLayoverHours = f.MaxLayoverHours
	}

	return &models.SearchContext{Type: models.TypeFlights, Flights: distilled}
}

func distillHotels(h *models.HotelCriteria) *models.SearchContext {
	if h == nil {
		return &models.SearchContext{Type: models.TypeHotels}
	}

	distilled := &models.HotelCriteria{
		City:         h.City,
		CheckinDate:  h.CheckinDate,
		CheckoutDate: h.CheckoutDate,
		Adults:       h.Adults,
		Children:     h.Children,
		Infants:      h.Infants,
	}
	if h.RoomType != nil {
		distilled.RoomType = h.RoomType
	}
	if h.MealPlan != nil {
		distilled.MealPlan = h.MealPlan
	}
	if h.HotelChains != nil {
		distilled.HotelChains = append([]string(nil), h.HotelChains...)
	}
	if h.HotelChain != nil {
		distilled.HotelChain = h.HotelChain
	}
	if h.HotelName != nil {
		distilled.HotelName = h.HotelName
	}

	return &models.SearchContext{Type: models.TypeHotels, Hotels: distilled}
}

// anySearchedCategoryEmpty reports whether any category the executor actually
// searched came back with zero results.
func anySearchedCategoryEmpty(results models.SearchResults) bool {
	for _, c := range []*models.CategoryResult{results.Flights, results.Hotels, results.Packages, results.Services} {
		if c != nil && c.Count == 0 {
			return true
		}
	}
	return false
}
