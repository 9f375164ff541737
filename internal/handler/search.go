package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/gonzaloriv/travelsearch/internal/contextstore"
	"github.com/gonzaloriv/travelsearch/internal/engine"
	"github.com/gonzaloriv/travelsearch/internal/executor"
	"github.com/gonzaloriv/travelsearch/internal/merger"
	"github.com/gonzaloriv/travelsearch/internal/models"
	"github.com/gonzaloriv/travelsearch/internal/parser"
	"github.com/gonzaloriv/travelsearch/internal/ratelimit"
)

type MessageRequest struct {
	ConversationID string `json:"conversation_id,omitempty"`
	Message        string `json:"message"`
}

type MessageResponse struct {
	ConversationID string                   `json:"conversation_id"`
	Status         string                   `json:"status"`
	Request        models.ParsedRequest     `json:"request"`
	Iteration      models.IterationResult   `json:"iteration"`
	Validation     *models.ValidationResult `json:"validation,omitempty"`
	Results        *models.SearchResults    `json:"results,omitempty"`
	Followups      []models.Followup        `json:"suggested_followups,omitempty"`
	SearchTimeMs   int64                    `json:"search_time_ms"`
}

type SearchHandler struct {
	engine   *engine.Engine
	parser   parser.Client
	executor executor.Client
	store    contextstore.Store
	limiter  *ratelimit.ConversationLimiter
	log      *zap.Logger
}

func NewSearchHandler(eng *engine.Engine, p parser.Client, ex executor.Client, store contextstore.Store, limiter *ratelimit.ConversationLimiter, log *zap.Logger) *SearchHandler {
	return &SearchHandler{
		engine:   eng,
		parser:   p,
		executor: ex,
		store:    store,
		limiter:  limiter,
		log:      log,
	}
}

func (h *SearchHandler) Message(c echo.Context) error {
	startTime := time.Now()
	ctx := c.Request().Context()

	var req MessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse request body: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}
	if req.Message == "" {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "message is required",
			Code:    http.StatusBadRequest,
		})
	}

	conversationID := req.ConversationID
	if conversationID == "" {
		conversationID = uuid.NewString()
	}

	if !h.limiter.Allow(conversationID) {
		return c.JSON(http.StatusTooManyRequests, models.ErrorResponse{
			Error:   "rate_limited",
			Message: "Too many messages for this conversation, slow down",
			Code:    http.StatusTooManyRequests,
		})
	}

	prev, err := h.store.Get(ctx, conversationID)
	if err != nil {
		h.log.Warn("context load failed, continuing without context",
			zap.String("conversation_id", conversationID), zap.Error(err))
		prev = nil
	}

	var prevSearch *models.SearchContext
	if prev != nil {
		prevSearch = prev.LastSearch
	}

	parsed, err := h.parser.Parse(ctx, req.Message, prevSearch)
	if err != nil {
		h.log.Error("parser collaborator failed", zap.Error(err))
		return c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "parser_error",
			Message: "Failed to interpret message: " + err.Error(),
			Code:    http.StatusBadGateway,
		})
	}

	resolution := h.engine.Resolve(req.Message, parsed, prev)

	if !resolution.Validation.IsValid {
		// Context stays untouched so the user can answer the prompt and
		// continue the same exchange.
		validation := resolution.Validation
		return c.JSON(http.StatusOK, MessageResponse{
			ConversationID: conversationID,
			Status:         "missing_info",
			Request:        resolution.Request,
			Iteration:      resolution.Iteration,
			Validation:     &validation,
			SearchTimeMs:   time.Since(startTime).Milliseconds(),
		})
	}

	results, err := h.executor.Execute(ctx, resolution.Request)
	if err != nil {
		h.log.Error("executor collaborator failed", zap.Error(err))
		return c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "search_error",
			Message: "Failed to execute search: " + err.Error(),
			Code:    http.StatusBadGateway,
		})
	}

	management := h.engine.BuildContext(resolution.Request, results)
	h.applyContext(c, conversationID, prev, resolution.Request, management)

	return c.JSON(http.StatusOK, MessageResponse{
		ConversationID: conversationID,
		Status:         "ok",
		Request:        resolution.Request,
		Iteration:      resolution.Iteration,
		Results:        &results,
		Followups:      management.SuggestedFollowups,
		SearchTimeMs:   time.Since(startTime).Milliseconds(),
	})
}

// applyContext translates the builder decision into store operations.
// Request types unrelated to iterative searching wipe the context outright.
// A merge action overlays the partial onto the stored context; only replace
// overwrites it wholesale.
func (h *SearchHandler) applyContext(c echo.Context, conversationID string, prev *models.ContextState, req models.ParsedRequest, management models.ContextManagement) {
	ctx := c.Request().Context()

	if engine.ResetsContext(req.Type) || management.Action == models.ActionClear {
		if err := h.store.Clear(ctx, conversationID); err != nil {
			h.log.Warn("context clear failed", zap.String("conversation_id", conversationID), zap.Error(err))
		}
		return
	}

	persist := management.PersistForNextRequest
	if management.Action == models.ActionMerge && prev != nil && prev.LastSearch != nil {
		persist = merger.MergeContexts(prev.LastSearch, persist)
	}

	if err := h.store.Save(ctx, conversationID, persist); err != nil {
		h.log.Warn("context save failed", zap.String("conversation_id", conversationID), zap.Error(err))
	}
}

func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
