package iteration

import (
	"strings"

	"github.com/gonzaloriv/travelsearch/internal/models"
	"github.com/gonzaloriv/travelsearch/internal/trace"
)

// MinConfidence is the threshold a matcher candidate must exceed for the
// message to count as an iteration. Tuned empirically on colloquial Spanish
// phrasing; tests assert booleans and relative ordering, not exact values.
const MinConfidence = 0.5

// Detector classifies an inbound message as a brand-new search or an
// iteration on the previous turn. It is a pure function of its inputs: a
// prioritized list of heuristic matchers each proposes a candidate and the
// highest-confidence candidate wins.
type Detector struct {
	rec      trace.Recorder
	matchers []matcher
}

type candidate struct {
	iterType   models.IterationType
	component  models.Component
	confidence float64
}

type matcher struct {
	name string
	fn   func(msg string, prev *models.SearchContext) *candidate
}

func NewDetector(rec trace.Recorder) *Detector {
	if rec == nil {
		rec = trace.NewNopRecorder()
	}
	return &Detector{
		rec: rec,
		matchers: []matcher{
			{name: "add-hotel", fn: matchAddHotel},
			{name: "add-flight", fn: matchAddFlight},
			{name: "dates", fn: matchDateChange},
			{name: "passengers", fn: matchPassengerChange},
			{name: "destination", fn: matchDestinationChange},
			{name: "preferences", fn: matchPreferenceChange},
		},
	}
}

// Detect runs the matcher list against the message. With no prior search
// there is nothing to iterate on and the result is always negative.
func (d *Detector) Detect(message string, prev *models.ContextState) models.IterationResult {
	if !prev.HasSearch() {
		return models.IterationResult{IsIteration: false}
	}

	msg := strings.ToLower(strings.TrimSpace(message))
	if msg == "" {
		return models.IterationResult{IsIteration: false}
	}

	var best *candidate
	var bestName string
	for _, m := range d.matchers {
		c := m.fn(msg, prev.LastSearch)
		if c == nil {
			continue
		}
		if best == nil || c.confidence > best.confidence {
			best = c
			bestName = m.name
		}
	}

	if best == nil || best.confidence < MinConfidence {
		d.rec.Event("iteration.no_match", map[string]interface{}{"message": message})
		return models.IterationResult{IsIteration: false}
	}

	d.rec.Event("iteration.matched", map[string]interface{}{
		"matcher":    bestName,
		"type":       string(best.iterType),
		"component":  string(best.component),
		"confidence": best.confidence,
	})

	return models.IterationResult{
		IsIteration: true,
		Type:        best.iterType,
		Component:   best.component,
		Confidence:  best.confidence,
	}
}

// primaryComponent picks which sub-object of the previous search a
// non-specific modification targets.
func primaryComponent(prev *models.SearchContext) models.Component {
	switch {
	case prev == nil:
		return models.ComponentFlights
	case prev.Flights != nil:
		return models.ComponentFlights
	case prev.Hotels != nil:
		return models.ComponentHotels
	case prev.Packages != nil:
		return models.ComponentPackages
	case prev.Services != nil:
		return models.ComponentServices
	default:
		return models.ComponentFlights
	}
}
