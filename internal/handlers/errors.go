package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/erp_ledger/internal/apperrors"
	"github.com/SscSPs/erp_ledger/internal/middleware"
	"github.com/SscSPs/erp_ledger/internal/utils/accounting"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// LedgerErrorResponse is returned when a journal entry fails double-entry validation.
type LedgerErrorResponse struct {
	Error        string           `json:"error"`
	Kind         string           `json:"kind"`
	Line         *int             `json:"line,omitempty"` // 1-based among substantive lines
	TotalDebits  *decimal.Decimal `json:"totalDebits,omitempty"`
	TotalCredits *decimal.Decimal `json:"totalCredits,omitempty"`
}

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	var appErr *apperrors.AppError
	switch {
	case errors.As(err, &appErr) && appErr.Code != 0:
		return appErr.Code
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// respondWithError logs err and writes the matching status. Internal failures
// are reported with the generic fallback message only.
func respondWithError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := statusFor(err)

	if status >= http.StatusInternalServerError {
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(status, ErrorResponse{Error: fallback})
		return
	}
	logger.Warn(fallback, slog.String("error", err.Error()), slog.Int("status", status))

	var verr *accounting.ValidationError
	if errors.As(err, &verr) {
		resp := LedgerErrorResponse{Error: verr.Error(), Kind: string(verr.Kind)}
		switch verr.Kind {
		case accounting.NegativeAmount, accounting.AmountTooPrecise, accounting.LineHasBothDebitAndCredit:
			line := verr.LineIndex + 1
			resp.Line = &line
		case accounting.Unbalanced:
			debits, credits := verr.TotalDebits, verr.TotalCredits
			resp.TotalDebits, resp.TotalCredits = &debits, &credits
		}
		c.JSON(status, resp)
		return
	}
	c.JSON(status, ErrorResponse{Error: err.Error()})
}

// bindError reports a request that could not be decoded or failed binding rules.
func bindError(c *gin.Context, what string, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind "+what, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("Invalid %s: %s", what, err.Error())})
}

// intParam reads a positive integer path parameter, writing a 400 when it is malformed.
func intParam(c *gin.Context, name string) (int, bool) {
	raw := c.Param(name)
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("Invalid %s %q", name, raw)})
		return 0, false
	}
	return id, true
}
