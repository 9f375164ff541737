package engine

import (
	"github.com/gonzaloriv/travelsearch/internal/contextbuilder"
	"github.com/gonzaloriv/travelsearch/internal/iteration"
	"github.com/gonzaloriv/travelsearch/internal/merger"
	"github.com/gonzaloriv/travelsearch/internal/models"
	"github.com/gonzaloriv/travelsearch/internal/normalizer"
	"github.com/gonzaloriv/travelsearch/internal/trace"
	"github.com/gonzaloriv/travelsearch/internal/validator"
)

// Engine wires the conversational pipeline: iteration detection, conditional
// context merge, validation, and context building. It performs no I/O and
// retains no state between calls; unrelated conversations can run through the
// same Engine concurrently. Within one conversation the caller must feed the
// context of turn N into turn N+1.
type Engine struct {
	detector   *iteration.Detector
	merger     *merger.Merger
	normalizer *normalizer.Normalizer
	validator  *validator.Validator
	builder    *contextbuilder.Builder
}

func New(rec trace.Recorder) *Engine {
	if rec == nil {
		rec = trace.NewNopRecorder()
	}
	return &Engine{
		detector:   iteration.NewDetector(rec),
		merger:     merger.New(rec),
		normalizer: normalizer.New(normalizer.DefaultVocabulary(), rec),
		validator:  validator.New(rec),
		builder:    contextbuilder.New(rec),
	}
}

// Resolution is the outcome of resolving one inbound message against the
// previous turn.
type Resolution struct {
	Request    models.ParsedRequest
	Iteration  models.IterationResult
	Validation models.ValidationResult
}

// Resolve classifies the message, merges with previous context when it is an
// iteration, normalizes the effective request's free-text fields, and
// validates it. The caller dispatches to the search executor only when
// Validation.IsValid.
func (e *Engine) Resolve(message string, parsed models.ParsedRequest, prev *models.ContextState) Resolution {
	iter := e.detector.Detect(message, prev)

	effective := parsed
	if iter.IsIteration && prev.HasSearch() {
		effective = e.merger.Merge(parsed, prev, iter, message)
	}
	effective = e.normalizer.NormalizeRequest(effective, message)

	return Resolution{
		Request:    effective,
		Iteration:  iter,
		Validation: e.validator.Validate(effective),
	}
}

// BuildContext decides what to persist for the next turn after a search.
func (e *Engine) BuildContext(parsed models.ParsedRequest, results models.SearchResults) models.ContextManagement {
	return e.builder.Build(parsed, results)
}

// ResetsContext reports whether a request type is unrelated to iterative
// searching and should wipe the stored context outright.
func ResetsContext(t models.RequestType) bool {
	return t == models.TypeGeneral || t == models.TypeItinerary
}
