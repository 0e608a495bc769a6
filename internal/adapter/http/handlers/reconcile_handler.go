package handlers

import (
	"log"
	"net/http"

	"propserv/internal/usecase"
	"propserv/pkg"

	"github.com/gin-gonic/gin"
)

// ReconcileHandler triggers the conversion-link repair pass.
type ReconcileHandler struct {
	usecase usecase.IReconcileUseCase
}

func NewReconcileHandler(uc usecase.IReconcileUseCase) *ReconcileHandler {
	return &ReconcileHandler{usecase: uc}
}

func (h *ReconcileHandler) Run(c *gin.Context) {
	report, err := h.usecase.Run(c.Request.Context())
	if err != nil {
		appErr := pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	log.Printf("[reconcile][handler] work_orders=%d invoices=%d links=%d statuses=%d line_items=%d orphans=%d",
		report.WorkOrdersScanned, report.InvoicesScanned, report.LinksRestored, report.StatusesRestored, report.LineItemsRestored, len(report.Orphans))
	c.JSON(http.StatusOK, report)
}
