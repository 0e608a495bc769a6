package handlers

import (
	"errors"
	"log"
	"net/http"

	request "propserv/internal/adapter/http/dto/request"
	response "propserv/internal/adapter/http/dto/response"
	"propserv/internal/usecase"
	"propserv/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidPortalPayload = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request payload", http.StatusBadRequest)

// ClientPortalHandler serves the unauthenticated client-facing routes. The
// responses never carry internal fields (costs, profit, internal notes) and
// the errors stay deliberately generic so a caller probing IDs learns nothing
// about estimate state.
type ClientPortalHandler struct {
	usecase usecase.IClientPortalUseCase
}

func NewClientPortalHandler(uc usecase.IClientPortalUseCase) *ClientPortalHandler {
	return &ClientPortalHandler{usecase: uc}
}

// GetEstimate returns the sanitized client view and records the first view.
func (h *ClientPortalHandler) GetEstimate(c *gin.Context) {
	estimate, err := h.usecase.MarkViewed(c.Request.Context(), c.Param("id"), c.ClientIP())
	if err != nil {
		appErr := mapPortalError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromEstimateClientView(estimate))
}

func (h *ClientPortalHandler) AcceptEstimate(c *gin.Context) {
	var payload request.ClientAcceptRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPortalPayload.HTTPStatus, errInvalidPortalPayload.ToHTTPError())
		return
	}

	estimate, err := h.usecase.Accept(c.Request.Context(), c.Param("id"), usecase.ClientAcceptInput{
		AcceptedBy:      payload.AcceptedBy,
		ClientSignature: payload.ClientSignature,
		IPAddress:       c.ClientIP(),
	})
	if err != nil {
		appErr := mapPortalError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	log.Printf("[portal][handler] estimate %s accepted by client", estimate.ID)
	c.JSON(http.StatusOK, response.FromEstimateClientView(estimate))
}

func (h *ClientPortalHandler) RejectEstimate(c *gin.Context) {
	var payload request.ClientRejectRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPortalPayload.HTTPStatus, errInvalidPortalPayload.ToHTTPError())
		return
	}

	estimate, err := h.usecase.Reject(c.Request.Context(), c.Param("id"), usecase.ClientRejectInput{
		Reason:    payload.Reason,
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		appErr := mapPortalError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	log.Printf("[portal][handler] estimate %s rejected by client", estimate.ID)
	c.JSON(http.StatusOK, response.FromEstimateClientView(estimate))
}

func mapPortalError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidEstimateID),
		errors.Is(err, usecase.ErrMissingAcceptedBy),
		errors.Is(err, usecase.ErrMissingClientReason):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrEstimateNotFound):
		return pkg.NewDomainErrorSimple("ESTIMATE_NOT_FOUND", "Estimate not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrClientActionNotAllowed):
		// keep it vague on purpose
		return pkg.NewDomainErrorSimple("REQUEST_NOT_ALLOWED", "This action is not available", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
