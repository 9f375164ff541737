package iteration

import (
	"regexp"

	"github.com/gonzaloriv/travelsearch/internal/models"
)

// Matchers are independent heuristics over colloquial Spanish (plus the
// English equivalents agents actually type). Each returns a candidate or nil;
// adding a heuristic family means adding a list entry, not touching control
// flow.

var (
	addHotelRe  = regexp.MustCompile(`(agreg\w*|sum\w*|a[ñn]ad\w*|pon\w*|incluir?|add)\s+(un\s+|el\s+|a\s+)?hotel`)
	withHotelRe = regexp.MustCompile(`\b(con|y)\s+(un\s+|el\s+)?hotel\b`)

	addFlightRe = regexp.MustCompile(`(agreg\w*|sum\w*|a[ñn]ad\w*|incluir?|add)\s+(un\s+|el\s+|a\s+)?(vuelo|a[eé]reo|flight)`)

	dateWordRe   = regexp.MustCompile(`\bfechas?\b|\bdates?\b`)
	changeVerbRe = regexp.MustCompile(`cambi\w*|modific\w*|mov\w*|corr\w*|adelant\w*|atras\w*|mejor|change|move`)
	monthDateRe  = regexp.MustCompile(`\b(al|el|del|para el|hasta el)\s+\d{1,2}\s+de\s+(enero|febrero|marzo|abril|mayo|junio|julio|agosto|septiembre|octubre|noviembre|diciembre)`)
	otherDateRe  = regexp.MustCompile(`otra\s+fecha|otras\s+fechas|otro\s+d[ií]a|una\s+semana\s+(antes|despu[eé]s)`)

	paxWordRe   = regexp.MustCompile(`\b(personas?|pasajeros?|adultos?|ni[ñn]os?|menores|beb[eé]s?|infantes?|pax|people|passengers?)\b`)
	paxNumberRe = regexp.MustCompile(`\b(para|somos|con|seamos|viajamos)\s+(el\s+)?\d+\b|\b\d+\s+(personas?|pasajeros?|adultos?|ni[ñn]os?|beb[eé]s?|pax)\b`)

	destWordRe   = regexp.MustCompile(`\b(destino|otra\s+ciudad|otro\s+lugar|otra\s+playa|en\s+vez\s+de|en\s+lugar\s+de)\b`)
	destBetterRe = regexp.MustCompile(`mejor\s+(a|en|para)\s+\p{L}+`)

	flightPrefRe = regexp.MustCompile(`aerol[ií]nea|airline|equipaje|valija|maleta|mochila|carry\s?on|directo|sin\s+escalas?|con\s+escalas?|escala`)
	hotelPrefRe  = regexp.MustCompile(`pensi[oó]n|all\s+inclusive|todo\s+incluido|desayuno|habitaci[oó]n|room|otro\s+hotel|otra\s+cadena|cadena`)
)

func matchAddHotel(msg string, prev *models.SearchContext) *candidate {
	// Only an addition when the previous search had no hotel component yet.
	if prev.Hotels != nil {
		return nil
	}
	if addHotelRe.MatchString(msg) {
		return &candidate{iterType: models.IterAddHotel, component: models.ComponentHotels, confidence: 0.9}
	}
	if withHotelRe.MatchString(msg) {
		return &candidate{iterType: models.IterAddHotel, component: models.ComponentHotels, confidence: 0.6}
	}
	return nil
}

func matchAddFlight(msg string, prev *models.SearchContext) *candidate {
	if prev.Flights != nil {
		return nil
	}
	if addFlightRe.MatchString(msg) {
		return &candidate{iterType: models.IterAddFlight, component: models.ComponentFlights, confidence: 0.9}
	}
	return nil
}

func matchDateChange(msg string, prev *models.SearchContext) *candidate {
	component := primaryComponent(prev)

	if dateWordRe.MatchString(msg) && changeVerbRe.MatchString(msg) {
		return &candidate{iterType: models.IterModifyDates, component: component, confidence: 0.85}
	}
	if otherDateRe.MatchString(msg) {
		return &candidate{iterType: models.IterModifyDates, component: component, confidence: 0.75}
	}
	if monthDateRe.MatchString(msg) && changeVerbRe.MatchString(msg) {
		return &candidate{iterType: models.IterModifyDates, component: component, confidence: 0.7}
	}
	if monthDateRe.MatchString(msg) {
		// A bare date on top of an existing search reads as a date tweak,
		// but with less certainty than explicit change phrasing.
		return &candidate{iterType: models.IterModifyDates, component: component, confidence: 0.55}
	}
	return nil
}

func matchPassengerChange(msg string, prev *models.SearchContext) *candidate {
	component := primaryComponent(prev)

	if paxWordRe.MatchString(msg) && changeVerbRe.MatchString(msg) {
		return &candidate{iterType: models.IterModifyPassengers, component: component, confidence: 0.8}
	}
	if paxNumberRe.MatchString(msg) && paxWordRe.MatchString(msg) {
		return &candidate{iterType: models.IterModifyPassengers, component: component, confidence: 0.75}
	}
	return nil
}

func matchDestinationChange(msg string, prev *models.SearchContext) *candidate {
	component := primaryComponent(prev)

	if destWordRe.MatchString(msg) && changeVerbRe.MatchString(msg) {
		return &candidate{iterType: models.IterModifyDestination, component: component, confidence: 0.8}
	}
	if destWordRe.MatchString(msg) {
		return &candidate{iterType: models.IterModifyDestination, component: component, confidence: 0.65}
	}
	if destBetterRe.MatchString(msg) && !monthDateRe.MatchString(msg) {
		return &candidate{iterType: models.IterModifyDestination, component: component, confidence: 0.6}
	}
	return nil
}

func matchPreferenceChange(msg string, prev *models.SearchContext) *candidate {
	if hotelPrefRe.MatchString(msg) && prev.Hotels != nil {
		return &candidate{iterType: models.IterModifyPreferences, component: models.ComponentHotels, confidence: 0.7}
	}
	if flightPrefRe.MatchString(msg) && prev.Flights != nil {
		return &candidate{iterType: models.IterModifyPreferences, component: models.ComponentFlights, confidence: 0.7}
	}
	return nil
}
