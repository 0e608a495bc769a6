package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"propserv/internal/adapter/persistence/repository"
	"propserv/internal/infrastructure/database"
	"propserv/internal/usecase"

	_ "github.com/joho/godotenv/autoload"
)

// Runs a single reconciliation pass and prints the report as JSON.
// Intended for cron or one-off operator use.
func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	ddb := database.ConnectDynamoDB()

	estimateRepo := repository.NewEstimateDynamoRepository(ddb)
	workOrderRepo := repository.NewWorkOrderDynamoRepository(ddb)
	invoiceRepo := repository.NewInvoiceDynamoRepository(ddb)

	rec := usecase.NewReconcileUseCase(estimateRepo, workOrderRepo, invoiceRepo)

	report, err := rec.Run(ctx)
	if err != nil {
		log.Fatalf("reconcile failed: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		log.Fatalf("encode report: %v", err)
	}
}
