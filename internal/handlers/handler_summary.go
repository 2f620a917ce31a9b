package handlers

import (
	"net/http"

	"github.com/SscSPs/general_ledger/internal/apperrors"
	portssvc "github.com/SscSPs/general_ledger/internal/core/ports/services"
	"github.com/SscSPs/general_ledger/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type summaryHandler struct {
	summaryService    portssvc.SummarySvc
	conversionService portssvc.ConversionSvc
}

func registerSummaryRoutes(rg *gin.RouterGroup, summary portssvc.SummarySvc, conversion portssvc.ConversionSvc) {
	h := &summaryHandler{summaryService: summary, conversionService: conversion}

	rg.GET("/summary", h.getSummary)
	rg.GET("/conversions/usd-cad", h.convert)
}

// getSummary godoc
// @Summary Summarize the ledger
// @Description Live debit and credit counts and totals over non-deleted entries, with the same filters as the entry list.
// @Tags summary
// @Produce  json
// @Param   account_name query string false "Exact account name"
// @Param   currency query string false "Currency code"
// @Param   entry_type query string false "debit or credit"
// @Param   start_date query string false "Inclusive lower bound"
// @Param   end_date query string false "Inclusive upper bound"
// @Success 200 {object} dto.SummaryResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Router /summary [get]
func (h *summaryHandler) getSummary(c *gin.Context) {
	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "Summary query")
		return
	}
	filter, err := params.ToFilter()
	if err != nil {
		respondError(c, err, "Invalid filter")
		return
	}

	summary, err := h.summaryService.Summarize(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "Failed to summarize ledger")
		return
	}
	c.JSON(http.StatusOK, dto.ToSummaryResponse(summary))
}

// convert godoc
// @Summary Convert USD to CAD
// @Description Converts an amount at the current rate.
// @Tags conversions
// @Produce  json
// @Param   amount query string true "USD amount"
// @Success 200 {object} dto.ConversionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid amount"
// @Failure 503 {object} dto.ErrorResponse "Conversion unavailable"
// @Router /conversions/usd-cad [get]
func (h *summaryHandler) convert(c *gin.Context) {
	var params dto.ConversionParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "Conversion query")
		return
	}
	amount, err := decimal.NewFromString(params.Amount)
	if err != nil {
		respondError(c, apperrors.NewValidationError("amount must be a decimal number (got %q)", params.Amount), "Invalid amount")
		return
	}

	conv, err := h.conversionService.Convert(c.Request.Context(), amount)
	if err != nil {
		respondError(c, err, "Currency conversion failed")
		return
	}
	c.JSON(http.StatusOK, dto.ToConversionResponse(conv))
}
