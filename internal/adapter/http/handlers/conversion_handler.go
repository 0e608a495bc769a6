package handlers

import (
	"errors"
	"log"
	"net/http"

	response "propserv/internal/adapter/http/dto/response"
	"propserv/internal/usecase"
	"propserv/pkg"

	"github.com/gin-gonic/gin"
)

// ConversionHandler exposes the one-way estimate conversions.
type ConversionHandler struct {
	usecase usecase.IConversionUseCase
}

func NewConversionHandler(uc usecase.IConversionUseCase) *ConversionHandler {
	return &ConversionHandler{usecase: uc}
}

func (h *ConversionHandler) ConvertToWorkOrder(c *gin.Context) {
	workOrder, err := h.usecase.ConvertToWorkOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapConversionError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	log.Printf("[conversion][handler] estimate %s converted to work order %s", c.Param("id"), workOrder.ID)
	c.JSON(http.StatusCreated, response.FromWorkOrder(workOrder))
}

func (h *ConversionHandler) ConvertToInvoice(c *gin.Context) {
	invoice, err := h.usecase.ConvertToInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapConversionError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	log.Printf("[conversion][handler] estimate %s converted to invoice %s", c.Param("id"), invoice.InvoiceNumber)
	c.JSON(http.StatusCreated, response.FromInvoice(invoice))
}

func mapConversionError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidEstimateID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrEstimateNotFound):
		return pkg.NewDomainErrorSimple("ESTIMATE_NOT_FOUND", "Estimate not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrEstimateNotApproved):
		return pkg.NewDomainErrorSimple("ESTIMATE_NOT_APPROVED", "Only approved estimates can be converted", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrAlreadyConverted):
		return pkg.NewDomainErrorSimple("ESTIMATE_ALREADY_CONVERTED", "Estimate already converted", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
