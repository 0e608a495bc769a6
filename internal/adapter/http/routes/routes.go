package routes

import (
	"log"
	"os"
	"strconv"

	_ "propserv/docs" // This will be auto-generated
	"propserv/internal/adapter/http/handlers"
	"propserv/internal/adapter/http/middleware"
	"propserv/internal/adapter/persistence/repository"
	"propserv/internal/events"
	"propserv/internal/infrastructure/database"
	"propserv/internal/infrastructure/notify"
	"propserv/internal/infrastructure/payments"
	"propserv/internal/infrastructure/pdf"
	"propserv/internal/infrastructure/storage"
	"propserv/internal/usecase"
	"propserv/internal/usecase/interfaces"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const PORT = 8080

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	err := router.Run(":" + strconv.Itoa(PORT))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	ddb := database.ConnectDynamoDB()
	s3Client := database.ConnectS3()

	estimateRepo := repository.NewEstimateDynamoRepository(ddb)
	workOrderRepo := repository.NewWorkOrderDynamoRepository(ddb)
	invoiceRepo := repository.NewInvoiceDynamoRepository(ddb)
	paymentRepo := repository.NewPaymentDynamoRepository(ddb)
	counterRepo := repository.NewCounterDynamoRepository(ddb)
	conversionRepo := repository.NewConversionDynamoRepository(ddb)

	bus := events.NewMemoryBus()
	bus.Subscribe("*", func(event string, payload any) {
		log.Printf("[events] %s payload=%+v", event, payload)
	})

	photoStore, err := storage.NewS3PhotoStore(s3Client)
	if err != nil {
		log.Fatalf("Photo storage not configured: %v", err)
	}
	pdfRenderer := pdf.NewFpdfRenderer(os.Getenv("COMPANY_NAME"))
	notifier := notify.NewLogNotifier(os.Getenv("PORTAL_BASE_URL"))

	var paymentGateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(os.Getenv("MERCADOPAGO_ACCESS_TOKEN"))
	if err != nil {
		log.Printf("Mercado Pago gateway not configured: %v", err)
	} else {
		paymentGateway = mpGateway
	}

	estimateUseCase := usecase.NewEstimateUseCase(estimateRepo, photoStore, pdfRenderer, notifier, bus)
	portalUseCase := usecase.NewClientPortalUseCase(estimateRepo, bus)
	conversionUseCase := usecase.NewConversionUseCase(estimateRepo, conversionRepo, counterRepo, bus)
	paymentUseCase := usecase.NewInvoicePaymentUseCase(paymentRepo, invoiceRepo, paymentGateway, bus)
	reconcileUseCase := usecase.NewReconcileUseCase(estimateRepo, workOrderRepo, invoiceRepo)

	estimateHandler := handlers.NewEstimateHandler(estimateUseCase)
	portalHandler := handlers.NewClientPortalHandler(portalUseCase)
	conversionHandler := handlers.NewConversionHandler(conversionUseCase)
	paymentHandler := handlers.NewPaymentHandler(paymentUseCase)
	reconcileHandler := handlers.NewReconcileHandler(reconcileUseCase)

	// Rotas publicas
	addPortalRoutes(router.Group("/portal"), portalHandler)

	// Rotas autenticadas
	v1 := router.Group("/v1")
	v1.Use(middleware.Auth())
	addEstimateRoutes(v1, estimateHandler, conversionHandler, reconcileHandler)
	addPaymentRoutes(v1, paymentHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))
}
