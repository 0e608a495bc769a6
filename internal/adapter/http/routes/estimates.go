package routes

import (
	"propserv/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathEstimates = "/estimates"
	PathPayments  = "/payments"
	PathReconcile = "/reconcile"
)

func addEstimateRoutes(rg *gin.RouterGroup, estimateHandler *handlers.EstimateHandler, conversionHandler *handlers.ConversionHandler, reconcileHandler *handlers.ReconcileHandler) {
	estimates := rg.Group(PathEstimates)
	{
		estimates.POST("", estimateHandler.CreateEstimate)
		estimates.GET("", estimateHandler.ListEstimates)
		estimates.GET("/pending-approvals", estimateHandler.ListPendingApprovals)
		estimates.GET("/:id", estimateHandler.GetEstimate)
		estimates.PUT("/:id", estimateHandler.UpdateEstimate)
		estimates.DELETE("/:id", estimateHandler.DeleteEstimate)

		estimates.PATCH("/:id/submit", estimateHandler.SubmitEstimate)
		estimates.PATCH("/:id/pending", estimateHandler.MarkEstimatePending)
		estimates.PATCH("/:id/approve", estimateHandler.ApproveEstimate)
		estimates.PATCH("/:id/reject", estimateHandler.RejectEstimate)
		estimates.GET("/:id/totals", estimateHandler.GetTotals)
		estimates.POST("/:id/recalculate", estimateHandler.RecalculateEstimate)

		estimates.POST("/:id/photos", estimateHandler.UploadPhoto)
		estimates.GET("/:id/pdf", estimateHandler.DownloadPDF)

		estimates.POST("/:id/convert/workorder", conversionHandler.ConvertToWorkOrder)
		estimates.POST("/:id/convert/invoice", conversionHandler.ConvertToInvoice)
	}

	rg.POST("/admin"+PathReconcile, reconcileHandler.Run)
}

func addPaymentRoutes(rg *gin.RouterGroup, paymentHandler *handlers.PaymentHandler) {
	payments := rg.Group(PathPayments)
	{
		payments.POST("/:invoice_id", paymentHandler.CreatePaymentByInvoiceID)
		payments.GET("/invoice/:invoice_id", paymentHandler.GetPaymentByInvoiceID)
		payments.GET("/by-id/:id", paymentHandler.GetPayment)
	}
}

func addPortalRoutes(rg *gin.RouterGroup, portalHandler *handlers.ClientPortalHandler) {
	estimates := rg.Group(PathEstimates)
	{
		estimates.GET("/:id", portalHandler.GetEstimate)
		estimates.POST("/:id/accept", portalHandler.AcceptEstimate)
		estimates.POST("/:id/reject", portalHandler.RejectEstimate)
	}
}
