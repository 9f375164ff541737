package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/gonzaloriv/travelsearch/internal/contextstore"
	"github.com/gonzaloriv/travelsearch/internal/engine"
	"github.com/gonzaloriv/travelsearch/internal/models"
	"github.com/gonzaloriv/travelsearch/internal/ratelimit"
	"github.com/gonzaloriv/travelsearch/internal/trace"
)

type fakeParser struct {
	parsed models.ParsedRequest
	err    error
}

func (f *fakeParser) Parse(ctx context.Context, message string, prev *models.SearchContext) (models.ParsedRequest, error) {
	return f.parsed, f.err
}

type fakeExecutor struct {
	results models.SearchResults
	err     error
	calls   int
}

func (f *fakeExecutor) Execute(ctx context.Context, req models.ParsedRequest) (models.SearchResults, error) {
	f.calls++
	return f.results, f.err
}

func newTestHandler(p *fakeParser, ex *fakeExecutor, store contextstore.Store, limiter *ratelimit.ConversationLimiter) *SearchHandler {
	if limiter == nil {
		limiter = ratelimit.NewConversationLimiterWithDefaults()
	}
	eng := engine.New(trace.NewNopRecorder())
	return NewSearchHandler(eng, p, ex, store, limiter, zap.NewNop())
}

func postMessage(h *SearchHandler, body string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/search/message", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	_ = h.Message(e.NewContext(req, rec))
	return rec
}

func completedFlightResults() models.SearchResults {
	return models.SearchResults{
		Status:  models.StatusCompleted,
		Flights: &models.CategoryResult{Count: 8},
	}
}

func validFlightParse() models.ParsedRequest {
	return models.ParsedRequest{
		Type: models.TypeFlights,
		Flights: &models.FlightCriteria{
			Origin:        "EZE",
			Destination:   "MAD",
			DepartureDate: "2025-12-15",
			Adults:        models.IntPtr(2),
		},
	}
}

func TestMessageRejectsBadBody(t *testing.T) {
	h := newTestHandler(&fakeParser{}, &fakeExecutor{}, contextstore.NewMemoryStore(time.Minute), nil)

	t.Run("malformed json", func(t *testing.T) {
		rec := postMessage(h, "{not json")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("empty message", func(t *testing.T) {
		rec := postMessage(h, `{"conversation_id":"c1","message":""}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestMessageAssignsConversationID(t *testing.T) {
	h := newTestHandler(
		&fakeParser{parsed: validFlightParse()},
		&fakeExecutor{results: completedFlightResults()},
		contextstore.NewMemoryStore(time.Minute), nil)

	rec := postMessage(h, `{"message":"vuelo a madrid"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp MessageResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ConversationID)
}

func TestMessageCompletedSearchPersistsContext(t *testing.T) {
	store := contextstore.NewMemoryStore(time.Minute)
	h := newTestHandler(
		&fakeParser{parsed: validFlightParse()},
		&fakeExecutor{results: completedFlightResults()},
		store, nil)

	rec := postMessage(h, `{"conversation_id":"c1","message":"vuelo de buenos aires a madrid"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp MessageResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotNil(t, resp.Results)
	assert.Len(t, resp.Followups, 4)

	state, err := store.Get(context.Background(), "c1")
	assert.NoError(t, err)
	assert.NotNil(t, state)
	assert.Equal(t, "EZE", state.LastSearch.Flights.Origin)
}

func TestMessageMissingInfoLeavesContextUntouched(t *testing.T) {
	store := contextstore.NewMemoryStore(time.Minute)
	assert.NoError(t, store.Save(context.Background(), "c1", &models.SearchContext{
		Type:    models.TypeFlights,
		Flights: &models.FlightCriteria{Origin: "EZE", Destination: "MAD"},
	}))

	ex := &fakeExecutor{results: completedFlightResults()}
	h := newTestHandler(
		&fakeParser{parsed: models.ParsedRequest{
			Type:    models.TypeFlights,
			Flights: &models.FlightCriteria{Origin: "COR"},
		}},
		ex, store, nil)

	rec := postMessage(h, `{"conversation_id":"c1","message":"vuelo desde córdoba"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp MessageResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "missing_info", resp.Status)
	assert.NotNil(t, resp.Validation)
	assert.False(t, resp.Validation.IsValid)
	assert.Nil(t, resp.Results)
	assert.Zero(t, ex.calls, "no search dispatched for an invalid request")

	state, err := store.Get(context.Background(), "c1")
	assert.NoError(t, err)
	assert.Equal(t, "EZE", state.LastSearch.Flights.Origin, "stored context survives the prompt round-trip")
}

func TestMessageMergeActionPreservesStoredContext(t *testing.T) {
	store := contextstore.NewMemoryStore(time.Minute)
	assert.NoError(t, store.Save(context.Background(), "c1", &models.SearchContext{
		Type: models.TypeFlights,
		Flights: &models.FlightCriteria{
			Origin:        "EZE",
			Destination:   "CUN",
			DepartureDate: "2025-12-01",
			Adults:        models.IntPtr(2),
		},
	}))

	// A complete hotel turn that finds nothing: the builder's zero-results
	// branch merges a hotels-only partial into the context.
	h := newTestHandler(
		&fakeParser{parsed: models.ParsedRequest{
			Type: models.TypeHotels,
			Hotels: &models.HotelCriteria{
				City:         "Cancún",
				CheckinDate:  "2025-12-01",
				CheckoutDate: "2025-12-05",
				Adults:       models.IntPtr(2),
			},
		}},
		&fakeExecutor{results: models.SearchResults{
			Status: models.StatusCompleted,
			Hotels: &models.CategoryResult{Count: 0},
		}},
		store, nil)

	rec := postMessage(h, `{"conversation_id":"c1","message":"quiero un hotel en cancun para dos personas"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	state, err := store.Get(context.Background(), "c1")
	assert.NoError(t, err)
	assert.NotNil(t, state.LastSearch.Hotels)
	assert.Equal(t, "Cancún", state.LastSearch.Hotels.City)
	assert.NotNil(t, state.LastSearch.Flights, "merge must not drop the stored flight context")
	assert.Equal(t, "EZE", state.LastSearch.Flights.Origin)
}

func TestMessageGeneralRequestClearsContext(t *testing.T) {
	store := contextstore.NewMemoryStore(time.Minute)
	assert.NoError(t, store.Save(context.Background(), "c1", &models.SearchContext{
		Type:    models.TypeFlights,
		Flights: &models.FlightCriteria{Origin: "EZE"},
	}))

	h := newTestHandler(
		&fakeParser{parsed: models.ParsedRequest{Type: models.TypeGeneral}},
		&fakeExecutor{results: models.SearchResults{Status: models.StatusCompleted}},
		store, nil)

	rec := postMessage(h, `{"conversation_id":"c1","message":"¿necesito visa para europa?"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	state, err := store.Get(context.Background(), "c1")
	assert.NoError(t, err)
	assert.Nil(t, state, "general questions wipe the iteration context")
}

func TestMessageCombinedCompletionClearsContext(t *testing.T) {
	store := contextstore.NewMemoryStore(time.Minute)
	assert.NoError(t, store.Save(context.Background(), "c1", &models.SearchContext{
		Type:    models.TypeFlights,
		Flights: &models.FlightCriteria{Origin: "EZE"},
	}))

	parsed := models.ParsedRequest{
		Type: models.TypeCombined,
		Flights: &models.FlightCriteria{
			Origin: "EZE", Destination: "MAD", DepartureDate: "2025-12-15", Adults: models.IntPtr(2),
		},
		Hotels: &models.HotelCriteria{
			City: "Madrid", CheckinDate: "2025-12-15", CheckoutDate: "2025-12-22", Adults: models.IntPtr(2),
		},
	}
	h := newTestHandler(
		&fakeParser{parsed: parsed},
		&fakeExecutor{results: models.SearchResults{
			Status:  models.StatusCompleted,
			Flights: &models.CategoryResult{Count: 4},
			Hotels:  &models.CategoryResult{Count: 6},
		}},
		store, nil)

	rec := postMessage(h, `{"conversation_id":"c1","message":"vuelo y hotel en madrid"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	state, err := store.Get(context.Background(), "c1")
	assert.NoError(t, err)
	assert.Nil(t, state)
}

func TestMessageRateLimited(t *testing.T) {
	limiter := ratelimit.NewConversationLimiter(ratelimit.RateLimitConfig{RequestsPerSecond: 0.001, BurstSize: 1})
	h := newTestHandler(
		&fakeParser{parsed: validFlightParse()},
		&fakeExecutor{results: completedFlightResults()},
		contextstore.NewMemoryStore(time.Minute), limiter)

	first := postMessage(h, `{"conversation_id":"c1","message":"vuelo a madrid"}`)
	assert.Equal(t, http.StatusOK, first.Code)

	second := postMessage(h, `{"conversation_id":"c1","message":"otra vez"}`)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)

	// Another conversation has its own bucket.
	third := postMessage(h, `{"conversation_id":"c2","message":"vuelo a madrid"}`)
	assert.Equal(t, http.StatusOK, third.Code)
}

func TestMessageParserFailure(t *testing.T) {
	h := newTestHandler(
		&fakeParser{err: errors.New("upstream timeout")},
		&fakeExecutor{},
		contextstore.NewMemoryStore(time.Minute), nil)

	rec := postMessage(h, `{"conversation_id":"c1","message":"vuelo a madrid"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	var resp models.ErrorResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "parser_error", resp.Error)
}

func TestMessageExecutorFailure(t *testing.T) {
	store := contextstore.NewMemoryStore(time.Minute)
	h := newTestHandler(
		&fakeParser{parsed: validFlightParse()},
		&fakeExecutor{err: errors.New("providers down")},
		store, nil)

	rec := postMessage(h, `{"conversation_id":"c1","message":"vuelo a madrid"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	var resp models.ErrorResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "search_error", resp.Error)
}

func TestMessageIterationAcrossTurns(t *testing.T) {
	store := contextstore.NewMemoryStore(time.Minute)
	ex := &fakeExecutor{results: completedFlightResults()}
	p := &fakeParser{parsed: validFlightParse()}
	h := newTestHandler(p, ex, store, nil)

	first := postMessage(h, `{"conversation_id":"c1","message":"vuelo de buenos aires a madrid para 2"}`)
	assert.Equal(t, http.StatusOK, first.Code)

	// Second turn: the parser only extracts the new date.
	p.parsed = models.ParsedRequest{
		Type:    models.TypeFlights,
		Flights: &models.FlightCriteria{DepartureDate: "2026-01-20"},
	}

	second := postMessage(h, `{"conversation_id":"c1","message":"cambiá las fechas al 20 de enero"}`)
	assert.Equal(t, http.StatusOK, second.Code)

	var resp MessageResponse
	assert.NoError(t, json.Unmarshal(second.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.Iteration.IsIteration)
	assert.Equal(t, "EZE", resp.Request.Flights.Origin, "origin carried from the stored context")
	assert.Equal(t, "2026-01-20", resp.Request.Flights.DepartureDate)
}

func TestHealthHandler(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	assert.NoError(t, HealthHandler(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}
