package handlers

import (
	"errors"
	"net/http"
	"strconv"

	request "propserv/internal/adapter/http/dto/request"
	response "propserv/internal/adapter/http/dto/response"
	"propserv/internal/domain/entities"
	"propserv/internal/usecase"
	"propserv/internal/usecase/interfaces"
	"propserv/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidEstimatePayload = pkg.NewDomainErrorSimple("INVALID_ESTIMATE_INPUT", "Invalid estimate payload", http.StatusBadRequest)
)

// EstimateHandler handles the authenticated estimate routes: CRUD, the
// lifecycle transitions and the photo/PDF endpoints.

type EstimateHandler struct {
	usecase usecase.IEstimateUseCase
}

func NewEstimateHandler(uc usecase.IEstimateUseCase) *EstimateHandler {
	return &EstimateHandler{usecase: uc}
}

func (h *EstimateHandler) CreateEstimate(c *gin.Context) {
	var payload request.EstimateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidEstimatePayload.HTTPStatus, errInvalidEstimatePayload.ToHTTPError())
		return
	}

	estimate, err := h.usecase.Create(c.Request.Context(), actorID(c), payload.ToInput())
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromEstimate(estimate))
}

func (h *EstimateHandler) GetEstimate(c *gin.Context) {
	estimate, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromEstimate(estimate))
}

func (h *EstimateHandler) ListEstimates(c *gin.Context) {
	limit, _ := strconv.ParseInt(c.Query("limit"), 10, 32)
	filter := interfaces.EstimateFilter{
		Status:   entities.EstimateStatus(c.Query("status")),
		Priority: entities.EstimatePriority(c.Query("priority")),
		Building: c.Query("building"),
		Limit:    int32(limit),
		Cursor:   c.Query("cursor"),
	}

	page, err := h.usecase.List(c.Request.Context(), filter)
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	items := make([]response.EstimateResponse, 0, len(page.Items))
	for _, e := range page.Items {
		items = append(items, response.FromEstimate(e))
	}
	c.JSON(http.StatusOK, response.EstimateListResponse{Items: items, NextCursor: page.NextCursor})
}

// ListPendingApprovals returns the approval queue, oldest submission first.
func (h *EstimateHandler) ListPendingApprovals(c *gin.Context) {
	estimates, err := h.usecase.ListPendingApprovals(c.Request.Context())
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	items := make([]response.EstimateResponse, 0, len(estimates))
	for _, e := range estimates {
		items = append(items, response.FromEstimate(e))
	}
	c.JSON(http.StatusOK, response.EstimateListResponse{Items: items})
}

func (h *EstimateHandler) UpdateEstimate(c *gin.Context) {
	var payload request.EstimateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidEstimatePayload.HTTPStatus, errInvalidEstimatePayload.ToHTTPError())
		return
	}

	estimate, err := h.usecase.Update(c.Request.Context(), c.Param("id"), payload.ToInput())
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromEstimate(estimate))
}

func (h *EstimateHandler) DeleteEstimate(c *gin.Context) {
	if err := h.usecase.Delete(c.Request.Context(), c.Param("id")); err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *EstimateHandler) SubmitEstimate(c *gin.Context) {
	var payload request.SubmitRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidEstimatePayload.HTTPStatus, errInvalidEstimatePayload.ToHTTPError())
		return
	}

	estimate, err := h.usecase.Submit(c.Request.Context(), c.Param("id"), payload.ClientEmail)
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromEstimate(estimate))
}

func (h *EstimateHandler) MarkEstimatePending(c *gin.Context) {
	estimate, err := h.usecase.MarkPending(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromEstimate(estimate))
}

func (h *EstimateHandler) ApproveEstimate(c *gin.Context) {
	estimate, err := h.usecase.Approve(c.Request.Context(), c.Param("id"), actorID(c))
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromEstimate(estimate))
}

func (h *EstimateHandler) RejectEstimate(c *gin.Context) {
	var payload request.RejectRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidEstimatePayload.HTTPStatus, errInvalidEstimatePayload.ToHTTPError())
		return
	}

	estimate, err := h.usecase.Reject(c.Request.Context(), c.Param("id"), payload.Reason)
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromEstimate(estimate))
}

// GetTotals returns the derived money figures without the full document.
func (h *EstimateHandler) GetTotals(c *gin.Context) {
	estimate, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromEstimateTotals(estimate))
}

func (h *EstimateHandler) RecalculateEstimate(c *gin.Context) {
	estimate, err := h.usecase.RecalculateTotals(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromEstimate(estimate))
}

// UploadPhoto accepts a multipart "photo" file and attaches it to the
// estimate.
func (h *EstimateHandler) UploadPhoto(c *gin.Context) {
	file, err := c.FormFile("photo")
	if err != nil {
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Missing photo file", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	f, err := file.Open()
	if err != nil {
		appErr := pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	defer f.Close()

	estimate, err := h.usecase.AttachPhoto(c.Request.Context(), c.Param("id"), file.Filename, file.Header.Get("Content-Type"), f)
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromEstimate(estimate))
}

// DownloadPDF streams a PDF snapshot. The internal variant carries cost
// and classification columns and is requested with ?internal=true.
func (h *EstimateHandler) DownloadPDF(c *gin.Context) {
	internal := c.Query("internal") == "true"
	b, err := h.usecase.RenderPDF(c.Request.Context(), c.Param("id"), internal)
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.Data(http.StatusOK, "application/pdf", b)
}

func actorID(c *gin.Context) string {
	if v, ok := c.Get("user_id"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func mapEstimateError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidEstimateID),
		errors.Is(err, usecase.ErrInvalidEstimateInput),
		errors.Is(err, usecase.ErrInvalidLineItem),
		errors.Is(err, usecase.ErrMissingClientEmail),
		errors.Is(err, usecase.ErrMissingRejectionReason),
		errors.Is(err, usecase.ErrMissingActor):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrEstimateNotFound):
		return pkg.NewDomainErrorSimple("ESTIMATE_NOT_FOUND", "Estimate not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrInvalidTransition):
		return pkg.NewDomainErrorSimple("INVALID_STATUS_TRANSITION", "Operation not allowed in current status", http.StatusConflict)
	case errors.Is(err, usecase.ErrEstimateNotDeletable):
		return pkg.NewDomainErrorSimple("ESTIMATE_NOT_DELETABLE", "Converted estimates cannot be deleted", http.StatusConflict)
	case errors.Is(err, usecase.ErrAlreadyConverted):
		return pkg.NewDomainErrorSimple("ESTIMATE_ALREADY_CONVERTED", "Estimate already converted", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
