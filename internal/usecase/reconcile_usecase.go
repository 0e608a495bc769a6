package usecase

import (
	"context"
	"log"
	"time"

	"propserv/internal/domain/entities"
	"propserv/internal/usecase/interfaces"
)

// ReconcileReport summarizes one reconciliation run.
type ReconcileReport struct {
	WorkOrdersScanned int      `json:"workOrdersScanned"`
	InvoicesScanned   int      `json:"invoicesScanned"`
	LinksRestored     int      `json:"linksRestored"`
	StatusesRestored  int      `json:"statusesRestored"`
	LineItemsRestored int      `json:"lineItemsRestored"`
	Orphans           []string `json:"orphans,omitempty"`
}

// IReconcileUseCase restores cross-aggregate consistency between estimates
// and their converted work orders/invoices. New conversions commit
// transactionally, so this pass only repairs documents written before that
// flow existed. It is idempotent: a second run over repaired data changes
// nothing.

type IReconcileUseCase interface {
	Run(ctx context.Context) (ReconcileReport, error)
}

type ReconcileUseCase struct {
	estimates  interfaces.IEstimateRepository
	workOrders interfaces.IWorkOrderRepository
	invoices   interfaces.IInvoiceRepository
}

var _ IReconcileUseCase = (*ReconcileUseCase)(nil)

func NewReconcileUseCase(
	estimates interfaces.IEstimateRepository,
	workOrders interfaces.IWorkOrderRepository,
	invoices interfaces.IInvoiceRepository,
) *ReconcileUseCase {
	return &ReconcileUseCase{estimates: estimates, workOrders: workOrders, invoices: invoices}
}

func (u *ReconcileUseCase) Run(ctx context.Context) (ReconcileReport, error) {
	var report ReconcileReport

	wos, err := u.workOrders.ListAll(ctx)
	if err != nil {
		return report, err
	}
	report.WorkOrdersScanned = len(wos)
	for _, wo := range wos {
		if err := u.repairWorkOrderLink(ctx, wo, &report); err != nil {
			return report, err
		}
	}

	invs, err := u.invoices.ListAll(ctx)
	if err != nil {
		return report, err
	}
	report.InvoicesScanned = len(invs)
	for _, inv := range invs {
		if err := u.repairInvoiceLink(ctx, inv, &report); err != nil {
			return report, err
		}
	}

	log.Printf("[reconcile][usecase] run complete work_orders=%d invoices=%d links=%d statuses=%d line_items=%d orphans=%d",
		report.WorkOrdersScanned, report.InvoicesScanned, report.LinksRestored, report.StatusesRestored, report.LineItemsRestored, len(report.Orphans))
	return report, nil
}

func (u *ReconcileUseCase) repairWorkOrderLink(ctx context.Context, wo entities.WorkOrder, report *ReconcileReport) error {
	e, err := u.estimates.GetByID(ctx, wo.EstimateID)
	if err != nil {
		return err
	}
	if e.ID == "" {
		report.Orphans = append(report.Orphans, "work_order:"+wo.ID)
		return nil
	}

	changed := false
	if e.WorkOrderID == "" {
		e.WorkOrderID = wo.ID
		report.LinksRestored++
		changed = true
	}
	// A work order existing while the estimate still reads approved means
	// the conversion write was lost halfway.
	if e.Status == entities.EstimateStatusApproved && e.WorkOrderID == wo.ID {
		e.Status = entities.EstimateStatusConvertedToWorkOrder
		report.StatusesRestored++
		changed = true
	}
	if !changed {
		return nil
	}
	e.UpdatedAt = time.Now().UTC()
	log.Printf("[reconcile][usecase] restored work order link estimate_id=%s work_order_id=%s", e.ID, wo.ID)
	_, err = u.estimates.Update(ctx, e)
	return err
}

func (u *ReconcileUseCase) repairInvoiceLink(ctx context.Context, inv entities.Invoice, report *ReconcileReport) error {
	e, err := u.estimates.GetByID(ctx, inv.EstimateID)
	if err != nil {
		return err
	}
	if e.ID == "" {
		report.Orphans = append(report.Orphans, "invoice:"+inv.ID)
		return nil
	}

	changed := false
	if e.InvoiceID == "" {
		e.InvoiceID = inv.ID
		report.LinksRestored++
		changed = true
	}
	if e.Status == entities.EstimateStatusApproved && e.InvoiceID == inv.ID {
		e.Status = entities.EstimateStatusConvertedToInvoice
		report.StatusesRestored++
		changed = true
	}
	if changed {
		e.UpdatedAt = time.Now().UTC()
		log.Printf("[reconcile][usecase] restored invoice link estimate_id=%s invoice_id=%s", e.ID, inv.ID)
		if _, err := u.estimates.Update(ctx, e); err != nil {
			return err
		}
	}

	if len(inv.LineItems) == 0 {
		rebuilt := entities.NewInvoiceFromEstimate(inv.ID, inv.InvoiceNumber, e, inv.IssueDate)
		if _, err := u.invoices.UpdateLineItems(ctx, inv.ID, rebuilt.LineItems); err != nil {
			return err
		}
		report.LineItemsRestored++
		log.Printf("[reconcile][usecase] rebuilt invoice line items invoice_id=%s", inv.ID)
	}
	return nil
}
