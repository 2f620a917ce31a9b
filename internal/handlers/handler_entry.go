package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	portssvc "github.com/SscSPs/general_ledger/internal/core/ports/services"
	"github.com/SscSPs/general_ledger/internal/dto"
	"github.com/SscSPs/general_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

const (
	idempotencyKeyHeader = "Idempotency-Key"
	replayedHeader       = "Idempotent-Replayed"
)

// entryHandler handles HTTP requests related to ledger entries.
type entryHandler struct {
	entryService portssvc.EntrySvcFacade
	guard        portssvc.IdempotencySvc
}

func newEntryHandler(es portssvc.EntrySvcFacade, guard portssvc.IdempotencySvc) *entryHandler {
	return &entryHandler{entryService: es, guard: guard}
}

// registerEntryRoutes registers routes related to ledger entries.
func registerEntryRoutes(rg *gin.RouterGroup, entryService portssvc.EntrySvcFacade, guard portssvc.IdempotencySvc) {
	h := newEntryHandler(entryService, guard)

	entries := rg.Group("/entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:id", h.getEntry)
		entries.PATCH("/:id", h.updateEntry)
		entries.DELETE("/:id", h.deleteEntry)
	}
}

// createEntry godoc
// @Summary Record a ledger entry
// @Description Creates a debit or credit entry. Retrying with the same idempotency key and payload returns the original entry with status 200.
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   Idempotency-Key header string false "UUID identifying this submission"
// @Param   entry body dto.CreateEntryRequest true "Entry details"
// @Success 201 {object} dto.EntryResponse
// @Success 200 {object} dto.EntryResponse "Replayed"
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 409 {object} dto.ErrorResponse "Idempotency key reused with different data"
// @Failure 422 {object} dto.ErrorResponse "Account is inactive"
// @Router /entries [post]
func (h *entryHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "CreateEntry request")
		return
	}
	payload, err := req.ToPayload()
	if err != nil {
		respondError(c, err, "Invalid entry")
		return
	}

	key := strings.TrimSpace(c.GetHeader(idempotencyKeyHeader))
	if key == "" {
		key = strings.TrimSpace(req.IdempotencyKey)
	}
	logger.Info("Received request to create entry",
		slog.String("idempotency_key", key),
		slog.String("account", payload.Account),
		slog.String("entry_type", string(payload.EntryType)))

	view, replayed, err := h.guard.SubmitCreate(c.Request.Context(), key, payload)
	if err != nil {
		respondError(c, err, "Failed to create entry")
		return
	}

	status := http.StatusCreated
	if replayed {
		status = http.StatusOK
		c.Header(replayedHeader, "true")
	}
	setETag(c, view.Version)
	c.JSON(status, dto.ToEntryResponse(view))
}

// listEntries godoc
// @Summary List ledger entries
// @Description Lists non-deleted entries newest first. All filters are optional and combine with AND.
// @Tags entries
// @Produce  json
// @Param   account_name query string false "Exact account name"
// @Param   currency query string false "Currency code"
// @Param   entry_type query string false "debit or credit"
// @Param   start_date query string false "Inclusive lower bound (YYYY-MM-DD or RFC 3339)"
// @Param   end_date query string false "Inclusive upper bound (YYYY-MM-DD or RFC 3339)"
// @Param   limit query int false "Page size (default 100, max 500)"
// @Param   next_token query string false "Token from the previous page"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Router /entries [get]
func (h *entryHandler) listEntries(c *gin.Context) {
	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "ListEntries query")
		return
	}
	filter, err := params.ToFilter()
	if err == nil {
		filter, err = filter.Normalize()
	}
	if err != nil {
		respondError(c, err, "Invalid filter")
		return
	}

	views, page, err := h.entryService.ListEntries(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "Failed to list entries")
		return
	}
	c.JSON(http.StatusOK, dto.ToListEntriesResponse(views, page, filter.Limit))
}

// getEntry godoc
// @Summary Get a ledger entry
// @Tags entries
// @Produce  json
// @Param   id path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 404 {object} dto.ErrorResponse "Entry not found"
// @Router /entries/{id} [get]
func (h *entryHandler) getEntry(c *gin.Context) {
	view, err := h.entryService.GetEntry(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve entry")
		return
	}
	setETag(c, view.Version)
	c.JSON(http.StatusOK, dto.ToEntryResponse(view))
}

// updateEntry godoc
// @Summary Update a ledger entry
// @Description Changes amount and/or description. Send If-Match with the version last read to guard against lost updates.
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   id path string true "Entry ID"
// @Param   If-Match header string false "Expected entry version"
// @Param   entry body dto.UpdateEntryRequest true "Fields to update"
// @Success 200 {object} dto.EntryResponse
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 404 {object} dto.ErrorResponse "Entry not found"
// @Failure 409 {object} dto.ErrorResponse "Version conflict"
// @Router /entries/{id} [patch]
func (h *entryHandler) updateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("id")
	var req dto.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "UpdateEntry request")
		return
	}
	input, err := req.ToInput()
	if err != nil {
		respondError(c, err, "Invalid entry update")
		return
	}
	ifMatch, err := parseIfMatch(c.GetHeader("If-Match"))
	if err != nil {
		respondError(c, err, "Invalid entry update")
		return
	}
	if ifMatch != nil {
		input.ExpectedVersion = ifMatch
	}

	logger.Info("Received request to update entry", slog.String("entry_id", entryID))

	view, err := h.entryService.UpdateEntry(c.Request.Context(), entryID, input)
	if err != nil {
		respondError(c, err, "Failed to update entry")
		return
	}
	setETag(c, view.Version)
	c.JSON(http.StatusOK, dto.ToEntryResponse(view))
}

// deleteEntry godoc
// @Summary Soft-delete a ledger entry
// @Description Marks the entry deleted. It disappears from reads, lists and summaries.
// @Tags entries
// @Produce  json
// @Param   id path string true "Entry ID"
// @Param   If-Match header string false "Expected entry version"
// @Success 200 {object} dto.DeleteEntryResponse
// @Failure 404 {object} dto.ErrorResponse "Entry not found"
// @Failure 409 {object} dto.ErrorResponse "Version conflict"
// @Router /entries/{id} [delete]
func (h *entryHandler) deleteEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("id")

	var req dto.DeleteEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondBindError(c, err, "DeleteEntry request")
		return
	}
	expected, err := parseIfMatch(c.GetHeader("If-Match"))
	if err != nil {
		respondError(c, err, "Invalid entry delete")
		return
	}
	if expected == nil {
		expected = req.ExpectedVersion
	}

	logger.Info("Received request to delete entry", slog.String("entry_id", entryID))

	deleted, err := h.entryService.SoftDeleteEntry(c.Request.Context(), entryID, expected)
	if err != nil {
		respondError(c, err, "Failed to delete entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToDeleteEntryResponse(deleted))
}
