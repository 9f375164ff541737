package normalizer

import (
	"strings"

	"github.com/gonzaloriv/travelsearch/internal/models"
)

// ResolveChain canonicalizes a single chain mention. Unknown input is returned
// unchanged with ok=false.
func (n *Normalizer) ResolveChain(input string) (string, bool) {
	part := strings.ToLower(strings.TrimSpace(input))
	if part == "" {
		return input, false
	}
	if resolved, ok := n.resolvePart(part); ok {
		return resolved, true
	}
	return input, false
}

// NormalizeRequest canonicalizes the free-text fields of a parsed request:
// airline preferences become carrier codes, chain mentions resolve through the
// vocabulary, time-of-day words collapse to their canonical key. The message
// is scanned for chains only when the parse extracted none. The input is not
// mutated.
func (n *Normalizer) NormalizeRequest(req models.ParsedRequest, message string) models.ParsedRequest {
	out := req

	if req.Flights != nil {
		f := *req.Flights
		if f.PreferredAirline != nil {
			if a, ok := n.NormalizeAirline(*f.PreferredAirline); ok {
				f.PreferredAirline = models.StrPtr(a.Code)
			}
		}
		if f.DepartureTimePreference != nil {
			if canonical, ok := CanonicalTimeOfDay(*f.DepartureTimePreference); ok {
				f.DepartureTimePreference = models.StrPtr(canonical)
			}
		}
		out.Flights = &f
	}

	if req.Hotels != nil {
		h := *req.Hotels
		if len(h.HotelChains) > 0 {
			resolved := make([]string, 0, len(h.HotelChains))
			for _, chain := range h.HotelChains {
				value, _ := n.ResolveChain(chain)
				resolved = append(resolved, value)
			}
			h.HotelChains = resolved
		} else if chains := n.DetectChains(message); len(chains) > 0 {
			h.HotelChains = chains
		}
		if h.HotelChain != nil {
			if value, ok := n.ResolveChain(*h.HotelChain); ok {
				h.HotelChain = models.StrPtr(value)
			}
		}
		out.Hotels = &h
	}

	return out
}
