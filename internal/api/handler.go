package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fundsight/salespulse/internal/domain/dto"
	"github.com/fundsight/salespulse/internal/service"
)

// Handler provides HTTP handlers for the question-answering endpoint.
//
// Responsibilities:
//   - Validate the incoming request payload
//   - Hand the question to the AskService
//   - Return the text/chart response as JSON
//
// Malformed payloads are rejected here with a 400 before any routing logic
// runs; past this boundary the pipeline has no failure modes.
type Handler struct {
	svc service.AskService
}

// NewHandler constructs a new Handler instance.
//
// Parameters:
//   - svc (service.AskService): The question-routing service.
//
// Returns:
//   - *Handler: A handler ready to be registered with the router.
func NewHandler(svc service.AskService) *Handler {
	return &Handler{svc: svc}
}

// Ask handles POST /api/v1/ask requests.
//
// Request body:
//   - question (string, required): The free-text question.
//   - user_context (object, optional): Caller context, e.g. {"rvp":"Alice"}.
//
// Responses:
//   - 200 OK: AskResponse of type "text" or "chart".
//   - 400 Bad Request: Missing question or malformed JSON.
//
// Ask godoc
// @Summary      Ask a sales question
// @Description  Routes a free-text question to a canonical aggregation and returns a text or chart response
// @Tags         ask
// @Accept       json
// @Produce      json
// @Param        request  body      dto.AskRequest  true  "Question payload"
// @Success      200      {object}  dto.AskResponse    "Success"
// @Failure      400      {object}  dto.ErrorResponse  "Bad Request"
// @Router       /api/v1/ask [post]
func (h *Handler) Ask(c *gin.Context) {
	// ─── Validate request body ────────────────────────────────
	var req dto.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("question is required", err))
		return
	}

	// ─── Route the question ───────────────────────────────────
	resp := h.svc.Ask(c.Request.Context(), req.Question, req.UserContext)

	c.JSON(http.StatusOK, resp)
}
