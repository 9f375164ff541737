package validator

import (
	"github.com/gonzaloriv/travelsearch/internal/models"
	"github.com/gonzaloriv/travelsearch/internal/trace"
)

// MinorsMessage is the dedicated text for the minors-without-adults policy
// violation. It is intentionally distinct from the generic missing-fields
// prompt so the UI can render a specific warning.
const MinorsMessage = "No es posible buscar con menores o bebés sin al menos un adulto. Por favor indicá cuántos adultos viajan."

// MissingFieldsMessage heads every generic missing-data response.
const MissingFieldsMessage = "Me faltan algunos datos para completar la búsqueda:"

// Validator checks a merged/parsed request for completeness per request type.
// It enumerates every gap in one pass so the caller can prompt for all of
// them at once instead of one at a time.
type Validator struct {
	rec trace.Recorder
}

func New(rec trace.Recorder) *Validator {
	if rec == nil {
		rec = trace.NewNopRecorder()
	}
	return &Validator{rec: rec}
}

func (v *Validator) Validate(req models.ParsedRequest) models.ValidationResult {
	result := v.validate(req)
	v.rec.Event("validator.result", map[string]interface{}{
		"type":    string(req.Type),
		"valid":   result.IsValid,
		"missing": len(result.MissingFields),
	})
	return result
}

func (v *Validator) validate(req models.ParsedRequest) models.ValidationResult {
	switch req.Type {
	case models.TypeFlights:
		return validateFlights(req.Flights)
	case models.TypeHotels:
		return validateHotels(req.Hotels)
	case models.TypeCombined:
		// Flights first; a flight failure short-circuits before hotels are
		// even looked at.
		if flightResult := validateFlights(req.Flights); !flightResult.IsValid {
			return flightResult
		}
		return validateHotels(req.Hotels)
	case models.TypePackages:
		return validatePackages(req.Packages)
	case models.TypeServices:
		return validateServices(req.Services)
	case models.TypeItinerary:
		return validateItinerary(req.Itinerary)
	default:
		// general, missing_info_request and unknown types carry no
		// sub-object to check.
		return models.ValidationResult{IsValid: true}
	}
}

// minorsWithoutAdults is the one policy rule checked before anything else:
// adults explicitly zero while children or infants are positive. An absent
// adults field is NOT a violation; it defaults to one traveller later.
func minorsWithoutAdults(adults *int, children, infants int) bool {
	return adults != nil && *adults == 0 && (children > 0 || infants > 0)
}

func minorsResult() models.ValidationResult {
	return models.ValidationResult{
		IsValid: false,
		Message: MinorsMessage,
		MissingFields: []models.MissingField{
			{
				Field:       "adults",
				Description: "cantidad de adultos que viajan",
				Examples:    []string{"1 adulto", "2 adultos"},
			},
		},
	}
}

func invalid(missing []models.MissingField) models.ValidationResult {
	return models.ValidationResult{
		IsValid:       false,
		Message:       MissingFieldsMessage,
		MissingFields: missing,
	}
}

func validateFlights(f *models.FlightCriteria) models.ValidationResult {
	if f == nil {
		return invalid([]models.MissingField{
			missingOrigin(), missingDestination(), missingDepartureDate(), missingAdults(),
		})
	}

	if minorsWithoutAdults(f.Adults, f.Children, f.Infants) {
		return minorsResult()
	}

	var missing []models.MissingField
	if f.Origin == "" {
		missing = append(missing, missingOrigin())
	}
	if f.Destination == "" {
		missing = append(missing, missingDestination())
	}
	if f.DepartureDate == "" {
		missing = append(missing, missingDepartureDate())
	}
	if f.Adults == nil || *f.Adults < 1 {
		missing = append(missing, missingAdults())
	}

	if len(missing) > 0 {
		return invalid(missing)
	}
	return models.ValidationResult{IsValid: true}
}

func validateHotels(h *models.HotelCriteria) models.ValidationResult {
	if h == nil {
		return invalid([]models.MissingField{
			missingCity(), missingCheckin(), missingCheckout(), missingAdults(),
		})
	}

	if minorsWithoutAdults(h.Adults, h.Children, h.Infants) {
		return minorsResult()
	}

	var missing []models.MissingField
	if h.City == "" {
		missing = append(missing, missingCity())
	}
	if h.CheckinDate == "" {
		missing = append(missing, missingCheckin())
	}
	if h.CheckoutDate == "" {
		missing = append(missing, missingCheckout())
	}
	if h.Adults == nil || *h.Adults < 1 {
		missing = append(missing, missingAdults())
	}

	if len(missing) > 0 {
		return invalid(missing)
	}
	return models.ValidationResult{IsValid: true}
}

func validatePackages(p *models.PackageCriteria) models.ValidationResult {
	if p == nil {
		return invalid([]models.MissingField{
			missingPackageDestination(), missingDateFrom(), missingDateTo(),
		})
	}

	var missing []models.MissingField
	if p.Destination == "" {
		missing = append(missing, missingPackageDestination())
	}
	if p.DateFrom == "" {
		missing = append(missing, missingDateFrom())
	}
	if p.DateTo == "" {
		missing = append(missing, missingDateTo())
	}

	if len(missing) > 0 {
		return invalid(missing)
	}
	return models.ValidationResult{IsValid: true}
}

func validateServices(s *models.ServiceCriteria) models.ValidationResult {
	if s == nil {
		return invalid([]models.MissingField{missingCity(), missingDateFrom()})
	}

	var missing []models.MissingField
	if s.City == "" {
		missing = append(missing, missingCity())
	}
	if s.DateFrom == "" {
		missing = append(missing, missingDateFrom())
	}

	if len(missing) > 0 {
		return invalid(missing)
	}
	return models.ValidationResult{IsValid: true}
}

func validateItinerary(i *models.ItineraryCriteria) models.ValidationResult {
	if i == nil {
		return invalid([]models.MissingField{missingDestinations(), missingDays()})
	}

	var missing []models.MissingField
	if len(i.Destinations) == 0 {
		missing = append(missing, missingDestinations())
	}
	if i.Days < 1 {
		missing = append(missing, missingDays())
	}

	if len(missing) > 0 {
		return invalid(missing)
	}
	return models.ValidationResult{IsValid: true}
}

func missingOrigin() models.MissingField {
	return models.MissingField{
		Field:       "origin",
		Description: "ciudad o aeropuerto de salida",
		Examples:    []string{"Buenos Aires", "EZE", "Córdoba"},
	}
}

func missingDestination() models.MissingField {
	return models.MissingField{
		Field:       "destination",
		Description: "ciudad o aeropuerto de destino",
		Examples:    []string{"Madrid", "MIA", "Cancún"},
	}
}

func missingDepartureDate() models.MissingField {
	return models.MissingField{
		Field:       "departure_date",
		Description: "fecha de salida",
		Examples:    []string{"15 de diciembre", "2025-12-15"},
	}
}

func missingAdults() models.MissingField {
	return models.MissingField{
		Field:       "adults",
		Description: "cantidad de adultos que viajan",
		Examples:    []string{"1 adulto", "2 adultos"},
	}
}

func missingCity() models.MissingField {
	return models.MissingField{
		Field:       "city",
		Description: "ciudad donde buscás",
		Examples:    []string{"Cancún", "Punta Cana", "Río de Janeiro"},
	}
}

func missingCheckin() models.MissingField {
	return models.MissingField{
		Field:       "checkin_date",
		Description: "fecha de entrada al hotel",
		Examples:    []string{"1 de diciembre", "2025-12-01"},
	}
}

func missingCheckout() models.MissingField {
	return models.MissingField{
		Field:       "checkout_date",
		Description: "fecha de salida del hotel",
		Examples:    []string{"5 de diciembre", "2025-12-05"},
	}
}

func missingPackageDestination() models.MissingField {
	return models.MissingField{
		Field:       "destination",
		Description: "destino del paquete",
		Examples:    []string{"Cancún", "Punta Cana"},
	}
}

func missingDateFrom() models.MissingField {
	return models.MissingField{
		Field:       "date_from",
		Description: "fecha de inicio",
		Examples:    []string{"10 de enero", "2026-01-10"},
	}
}

func missingDateTo() models.MissingField {
	return models.MissingField{
		Field:       "date_to",
		Description: "fecha de fin",
		Examples:    []string{"17 de enero", "2026-01-17"},
	}
}

func missingDestinations() models.MissingField {
	return models.MissingField{
		Field:       "destinations",
		Description: "ciudades del itinerario",
		Examples:    []string{"Madrid y Barcelona", "Roma, Florencia y Venecia"},
	}
}

func missingDays() models.MissingField {
	return models.MissingField{
		Field:       "days",
		Description: "cantidad de días del viaje",
		Examples:    []string{"7 días", "10 días"},
	}
}
