package usecase

import (
	"context"
	"errors"
	"testing"

	"propserv/internal/domain/entities"
	"propserv/internal/usecase/interfaces"
	mock_interfaces "propserv/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func approvedEstimate() entities.Estimate {
	return entities.Estimate{
		ID:             "est-1",
		Title:          "Repipe unit 4B",
		Building:       "Lakeside Tower",
		Status:         entities.EstimateStatusApproved,
		EstimatedPrice: 450,
		EstimatedCost:  300,
	}
}

func TestConversionUseCase_ConvertToWorkOrder(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		uc := NewConversionUseCase(nil, nil, nil, nil)
		_, err := uc.ConvertToWorkOrder(context.Background(), "  ")
		if !errors.Is(err, ErrInvalidEstimateID) {
			t.Fatalf("expected ErrInvalidEstimateID, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		estimates := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewConversionUseCase(estimates, nil, nil, nil)

		estimates.EXPECT().GetByID(gomock.Any(), "est-1").Return(entities.Estimate{}, nil)

		_, err := uc.ConvertToWorkOrder(context.Background(), "est-1")
		if !errors.Is(err, ErrEstimateNotFound) {
			t.Fatalf("expected ErrEstimateNotFound, got %v", err)
		}
	})

	t.Run("not approved", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		estimates := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewConversionUseCase(estimates, nil, nil, nil)

		e := approvedEstimate()
		e.Status = entities.EstimateStatusPending
		estimates.EXPECT().GetByID(gomock.Any(), "est-1").Return(e, nil)

		_, err := uc.ConvertToWorkOrder(context.Background(), "est-1")
		if !errors.Is(err, ErrEstimateNotApproved) {
			t.Fatalf("expected ErrEstimateNotApproved, got %v", err)
		}
	})

	t.Run("already converted status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		estimates := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewConversionUseCase(estimates, nil, nil, nil)

		e := approvedEstimate()
		e.Status = entities.EstimateStatusConvertedToWorkOrder
		e.WorkOrderID = "wo-1"
		estimates.EXPECT().GetByID(gomock.Any(), "est-1").Return(e, nil)

		_, err := uc.ConvertToWorkOrder(context.Background(), "est-1")
		if !errors.Is(err, ErrAlreadyConverted) {
			t.Fatalf("expected ErrAlreadyConverted, got %v", err)
		}
	})

	t.Run("reference already bound", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		estimates := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewConversionUseCase(estimates, nil, nil, nil)

		e := approvedEstimate()
		e.WorkOrderID = "wo-1"
		estimates.EXPECT().GetByID(gomock.Any(), "est-1").Return(e, nil)

		_, err := uc.ConvertToWorkOrder(context.Background(), "est-1")
		if !errors.Is(err, ErrAlreadyConverted) {
			t.Fatalf("expected ErrAlreadyConverted, got %v", err)
		}
	})

	t.Run("store condition lost race", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		estimates := mock_interfaces.NewMockIEstimateRepository(ctrl)
		conversions := mock_interfaces.NewMockIConversionRepository(ctrl)
		uc := NewConversionUseCase(estimates, conversions, nil, nil)

		estimates.EXPECT().GetByID(gomock.Any(), "est-1").Return(approvedEstimate(), nil)
		conversions.EXPECT().CreateWorkOrderAndLink(gomock.Any(), gomock.Any(), gomock.Any()).Return(interfaces.ErrConversionConflict)

		_, err := uc.ConvertToWorkOrder(context.Background(), "est-1")
		if !errors.Is(err, ErrAlreadyConverted) {
			t.Fatalf("expected ErrAlreadyConverted, got %v", err)
		}
	})

	t.Run("convert success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		estimates := mock_interfaces.NewMockIEstimateRepository(ctrl)
		conversions := mock_interfaces.NewMockIConversionRepository(ctrl)
		uc := NewConversionUseCase(estimates, conversions, nil, nil)

		estimates.EXPECT().GetByID(gomock.Any(), "est-1").Return(approvedEstimate(), nil)
		conversions.EXPECT().CreateWorkOrderAndLink(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, e entities.Estimate, wo entities.WorkOrder) error {
				if e.Status != entities.EstimateStatusConvertedToWorkOrder || e.WorkOrderID != wo.ID {
					t.Fatalf("expected linked estimate, got %+v", e)
				}
				if wo.EstimateID != "est-1" || wo.Status != entities.WorkOrderStatusPending {
					t.Fatalf("unexpected work order: %+v", wo)
				}
				return nil
			},
		)

		wo, err := uc.ConvertToWorkOrder(context.Background(), " est-1 ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if wo.ID == "" || wo.Title != "Repipe unit 4B" {
			t.Fatalf("unexpected work order: %+v", wo)
		}
	})
}

func TestConversionUseCase_ConvertToInvoice(t *testing.T) {
	t.Run("counter error bubbles", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		estimates := mock_interfaces.NewMockIEstimateRepository(ctrl)
		counters := mock_interfaces.NewMockICounterRepository(ctrl)
		uc := NewConversionUseCase(estimates, nil, counters, nil)

		estimates.EXPECT().GetByID(gomock.Any(), "est-1").Return(approvedEstimate(), nil)
		counters.EXPECT().NextInvoiceNumber(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("db"))

		_, err := uc.ConvertToInvoice(context.Background(), "est-1")
		if err == nil || err.Error() != "db" {
			t.Fatalf("expected db error, got %v", err)
		}
	})

	t.Run("invoice reference already bound", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		estimates := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewConversionUseCase(estimates, nil, nil, nil)

		e := approvedEstimate()
		e.InvoiceID = "inv-1"
		estimates.EXPECT().GetByID(gomock.Any(), "est-1").Return(e, nil)

		_, err := uc.ConvertToInvoice(context.Background(), "est-1")
		if !errors.Is(err, ErrAlreadyConverted) {
			t.Fatalf("expected ErrAlreadyConverted, got %v", err)
		}
	})

	t.Run("store condition lost race", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		estimates := mock_interfaces.NewMockIEstimateRepository(ctrl)
		conversions := mock_interfaces.NewMockIConversionRepository(ctrl)
		counters := mock_interfaces.NewMockICounterRepository(ctrl)
		uc := NewConversionUseCase(estimates, conversions, counters, nil)

		estimates.EXPECT().GetByID(gomock.Any(), "est-1").Return(approvedEstimate(), nil)
		counters.EXPECT().NextInvoiceNumber(gomock.Any(), gomock.Any()).Return(int64(8), nil)
		conversions.EXPECT().CreateInvoiceAndLink(gomock.Any(), gomock.Any(), gomock.Any()).Return(interfaces.ErrConversionConflict)

		_, err := uc.ConvertToInvoice(context.Background(), "est-1")
		if !errors.Is(err, ErrAlreadyConverted) {
			t.Fatalf("expected ErrAlreadyConverted, got %v", err)
		}
	})

	t.Run("convert success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		estimates := mock_interfaces.NewMockIEstimateRepository(ctrl)
		conversions := mock_interfaces.NewMockIConversionRepository(ctrl)
		counters := mock_interfaces.NewMockICounterRepository(ctrl)
		uc := NewConversionUseCase(estimates, conversions, counters, nil)

		estimates.EXPECT().GetByID(gomock.Any(), "est-1").Return(approvedEstimate(), nil)
		counters.EXPECT().NextInvoiceNumber(gomock.Any(), gomock.Any()).Return(int64(7), nil)
		conversions.EXPECT().CreateInvoiceAndLink(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, e entities.Estimate, inv entities.Invoice) error {
				if e.Status != entities.EstimateStatusConvertedToInvoice || e.InvoiceID != inv.ID {
					t.Fatalf("expected linked estimate, got %+v", e)
				}
				if inv.EstimateID != "est-1" || inv.Status != entities.InvoiceStatusIssued {
					t.Fatalf("unexpected invoice: %+v", inv)
				}
				return nil
			},
		)

		inv, err := uc.ConvertToInvoice(context.Background(), "est-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if inv.Total() != 450 {
			t.Fatalf("expected invoice total 450, got %v", inv.Total())
		}
		if len(inv.InvoiceNumber) != 11 || inv.InvoiceNumber[4] != '-' {
			t.Fatalf("unexpected invoice number format: %q", inv.InvoiceNumber)
		}
	})
}
