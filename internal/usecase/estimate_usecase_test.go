package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"propserv/internal/domain/entities"
	"propserv/internal/usecase/interfaces"
	mock_interfaces "propserv/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func validInput() EstimateInput {
	return EstimateInput{
		Title:    "Repipe unit 4B",
		Building: "Lakeside Tower",
		LineItems: []entities.LineItem{
			{ProductService: "Copper pipe", Qty: 2, Rate: 50, Amount: 100, EstimatedCost: 60},
		},
	}
}

func TestEstimateUseCase_Create(t *testing.T) {
	t.Run("missing actor", func(t *testing.T) {
		uc := NewEstimateUseCase(nil, nil, nil, nil, nil)
		_, err := uc.Create(context.Background(), "   ", validInput())
		if !errors.Is(err, ErrMissingActor) {
			t.Fatalf("expected ErrMissingActor, got %v", err)
		}
	})

	t.Run("missing title", func(t *testing.T) {
		uc := NewEstimateUseCase(nil, nil, nil, nil, nil)
		in := validInput()
		in.Title = "  "
		_, err := uc.Create(context.Background(), "user-1", in)
		if !errors.Is(err, ErrInvalidEstimateInput) {
			t.Fatalf("expected ErrInvalidEstimateInput, got %v", err)
		}
	})

	t.Run("missing building", func(t *testing.T) {
		uc := NewEstimateUseCase(nil, nil, nil, nil, nil)
		in := validInput()
		in.Building = ""
		_, err := uc.Create(context.Background(), "user-1", in)
		if !errors.Is(err, ErrInvalidEstimateInput) {
			t.Fatalf("expected ErrInvalidEstimateInput, got %v", err)
		}
	})

	t.Run("line item qty below minimum", func(t *testing.T) {
		uc := NewEstimateUseCase(nil, nil, nil, nil, nil)
		in := validInput()
		in.LineItems[0].Qty = 0.001
		_, err := uc.Create(context.Background(), "user-1", in)
		if !errors.Is(err, ErrInvalidLineItem) {
			t.Fatalf("expected ErrInvalidLineItem, got %v", err)
		}
	})

	t.Run("negative line item amount", func(t *testing.T) {
		uc := NewEstimateUseCase(nil, nil, nil, nil, nil)
		in := validInput()
		in.LineItems[0].Amount = -1
		_, err := uc.Create(context.Background(), "user-1", in)
		if !errors.Is(err, ErrInvalidLineItem) {
			t.Fatalf("expected ErrInvalidLineItem, got %v", err)
		}
	})

	t.Run("create success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil, nil, nil, nil)

		repo.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.Estimate{})).DoAndReturn(
			func(_ context.Context, e entities.Estimate) (entities.Estimate, error) {
				if e.ID == "" || e.Status != entities.EstimateStatusDraft || e.CreatedBy != "user-1" {
					t.Fatalf("unexpected estimate: %+v", e)
				}
				if e.Priority != entities.PriorityMedium {
					t.Fatalf("expected default priority medium, got %s", e.Priority)
				}
				if e.EstimatedPrice != 100 || e.EstimatedCost != 60 {
					t.Fatalf("expected totals derived from line items, got price=%v cost=%v", e.EstimatedPrice, e.EstimatedCost)
				}
				if e.CreatedAt.IsZero() || e.UpdatedAt.IsZero() {
					t.Fatalf("expected timestamps")
				}
				return e, nil
			},
		)

		res, err := uc.Create(context.Background(), " user-1 ", validInput())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.ID == "" {
			t.Fatalf("expected generated id")
		}
	})
}

func TestEstimateUseCase_GetByID(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		uc := NewEstimateUseCase(nil, nil, nil, nil, nil)
		_, err := uc.GetByID(context.Background(), "  ")
		if !errors.Is(err, ErrInvalidEstimateID) {
			t.Fatalf("expected ErrInvalidEstimateID, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil, nil, nil, nil)

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(entities.Estimate{}, nil)

		_, err := uc.GetByID(context.Background(), "est-1")
		if !errors.Is(err, ErrEstimateNotFound) {
			t.Fatalf("expected ErrEstimateNotFound, got %v", err)
		}
	})

	t.Run("found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil, nil, nil, nil)

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(entities.Estimate{ID: "est-1"}, nil)

		res, err := uc.GetByID(context.Background(), " est-1 ")
		if err != nil || res.ID != "est-1" {
			t.Fatalf("unexpected result: %+v err=%v", res, err)
		}
	})
}

func TestEstimateUseCase_Update(t *testing.T) {
	t.Run("converted estimate is immutable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil, nil, nil, nil)

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(entities.Estimate{
			ID:     "est-1",
			Status: entities.EstimateStatusConvertedToInvoice,
		}, nil)

		_, err := uc.Update(context.Background(), "est-1", validInput())
		if !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
	})

	t.Run("update recomputes totals", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil, nil, nil, nil)

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(entities.Estimate{
			ID: "est-1", Status: entities.EstimateStatusDraft, Title: "old", Building: "old",
		}, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.AssignableToTypeOf(entities.Estimate{})).DoAndReturn(
			func(_ context.Context, e entities.Estimate) (entities.Estimate, error) {
				if e.Title != "Repipe unit 4B" || e.EstimatedPrice != 100 {
					t.Fatalf("unexpected estimate: %+v", e)
				}
				return e, nil
			},
		)

		_, err := uc.Update(context.Background(), "est-1", validInput())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("flat totals kept when no line items", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil, nil, nil, nil)

		in := validInput()
		in.LineItems = nil
		in.EstimatedCost = 300
		in.EstimatedPrice = 450

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(entities.Estimate{
			ID: "est-1", Status: entities.EstimateStatusDraft,
		}, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.AssignableToTypeOf(entities.Estimate{})).DoAndReturn(
			func(_ context.Context, e entities.Estimate) (entities.Estimate, error) {
				if e.EstimatedCost != 300 || e.EstimatedPrice != 450 {
					t.Fatalf("expected flat totals preserved, got cost=%v price=%v", e.EstimatedCost, e.EstimatedPrice)
				}
				return e, nil
			},
		)

		_, err := uc.Update(context.Background(), "est-1", in)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("deleted between load and save", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil, nil, nil, nil)

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(entities.Estimate{
			ID: "est-1", Status: entities.EstimateStatusDraft,
		}, nil)
		// conditional put found no document: the repository reports a
		// zero value with no error
		repo.EXPECT().Update(gomock.Any(), gomock.AssignableToTypeOf(entities.Estimate{})).Return(entities.Estimate{}, nil)

		_, err := uc.Update(context.Background(), "est-1", validInput())
		if !errors.Is(err, ErrEstimateNotFound) {
			t.Fatalf("expected ErrEstimateNotFound, got %v", err)
		}
	})
}

func TestEstimateUseCase_Delete(t *testing.T) {
	t.Run("converted estimate not deletable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil, nil, nil, nil)

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(entities.Estimate{
			ID: "est-1", Status: entities.EstimateStatusConvertedToWorkOrder, WorkOrderID: "wo-1",
		}, nil)

		err := uc.Delete(context.Background(), "est-1")
		if !errors.Is(err, ErrEstimateNotDeletable) {
			t.Fatalf("expected ErrEstimateNotDeletable, got %v", err)
		}
	})

	t.Run("deletes and purges photos", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		photos := mock_interfaces.NewMockIPhotoStorage(ctrl)
		uc := NewEstimateUseCase(repo, photos, nil, nil, nil)

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(entities.Estimate{
			ID: "est-1", Status: entities.EstimateStatusDraft,
			Photos: []string{"s3://bucket/a.jpg", "s3://bucket/b.jpg"},
		}, nil)
		photos.EXPECT().Delete(gomock.Any(), "s3://bucket/a.jpg").Return(nil)
		photos.EXPECT().Delete(gomock.Any(), "s3://bucket/b.jpg").Return(errors.New("gone"))
		repo.EXPECT().Delete(gomock.Any(), "est-1").Return(true, nil)

		if err := uc.Delete(context.Background(), "est-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("repo reports missing row", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil, nil, nil, nil)

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(entities.Estimate{ID: "est-1"}, nil)
		repo.EXPECT().Delete(gomock.Any(), "est-1").Return(false, nil)

		err := uc.Delete(context.Background(), "est-1")
		if !errors.Is(err, ErrEstimateNotFound) {
			t.Fatalf("expected ErrEstimateNotFound, got %v", err)
		}
	})
}

func TestEstimateUseCase_Submit(t *testing.T) {
	t.Run("missing client email", func(t *testing.T) {
		uc := NewEstimateUseCase(nil, nil, nil, nil, nil)
		_, err := uc.Submit(context.Background(), "est-1", " ")
		if !errors.Is(err, ErrMissingClientEmail) {
			t.Fatalf("expected ErrMissingClientEmail, got %v", err)
		}
	})

	t.Run("submit from approved rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil, nil, nil, nil)

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(entities.Estimate{
			ID: "est-1", Status: entities.EstimateStatusApproved,
		}, nil)

		_, err := uc.Submit(context.Background(), "est-1", "client@example.com")
		if !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
	})

	t.Run("submit success notifies client", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		notifier := mock_interfaces.NewMockIClientNotifier(ctrl)
		uc := NewEstimateUseCase(repo, nil, nil, notifier, nil)

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(entities.Estimate{
			ID: "est-1", Status: entities.EstimateStatusDraft, Title: "t", Building: "b",
		}, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.AssignableToTypeOf(entities.Estimate{})).DoAndReturn(
			func(_ context.Context, e entities.Estimate) (entities.Estimate, error) {
				if e.Status != entities.EstimateStatusSubmitted {
					t.Fatalf("expected submitted, got %s", e.Status)
				}
				if !e.ClientInteraction.SentToClient || e.ClientInteraction.SentAt == nil {
					t.Fatalf("expected sent stamp: %+v", e.ClientInteraction)
				}
				if e.ClientEmail != "client@example.com" {
					t.Fatalf("expected client email recorded, got %q", e.ClientEmail)
				}
				return e, nil
			},
		)
		notifier.EXPECT().SendEstimateToClient(gomock.Any(), gomock.Any(), "client@example.com").Return(nil)

		res, err := uc.Submit(context.Background(), "est-1", " client@example.com ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Status != entities.EstimateStatusSubmitted {
			t.Fatalf("expected submitted, got %s", res.Status)
		}
	})

	t.Run("notification failure does not roll back", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		notifier := mock_interfaces.NewMockIClientNotifier(ctrl)
		uc := NewEstimateUseCase(repo, nil, nil, notifier, nil)

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(entities.Estimate{
			ID: "est-1", Status: entities.EstimateStatusPending,
		}, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, e entities.Estimate) (entities.Estimate, error) { return e, nil },
		)
		notifier.EXPECT().SendEstimateToClient(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("smtp down"))

		res, err := uc.Submit(context.Background(), "est-1", "client@example.com")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Status != entities.EstimateStatusSubmitted {
			t.Fatalf("expected submitted despite send failure, got %s", res.Status)
		}
	})
}

func TestEstimateUseCase_ApproveReject(t *testing.T) {
	t.Run("approve missing actor", func(t *testing.T) {
		uc := NewEstimateUseCase(nil, nil, nil, nil, nil)
		_, err := uc.Approve(context.Background(), "est-1", "")
		if !errors.Is(err, ErrMissingActor) {
			t.Fatalf("expected ErrMissingActor, got %v", err)
		}
	})

	t.Run("approve requires pending", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil, nil, nil, nil)

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(entities.Estimate{
			ID: "est-1", Status: entities.EstimateStatusDraft,
		}, nil)

		_, err := uc.Approve(context.Background(), "est-1", "mgr-1")
		if !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
	})

	t.Run("approve success stamps actor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil, nil, nil, nil)

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(entities.Estimate{
			ID: "est-1", Status: entities.EstimateStatusPending,
		}, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, e entities.Estimate) (entities.Estimate, error) {
				if e.Status != entities.EstimateStatusApproved || e.ApprovedBy != "mgr-1" || e.ApprovedAt == nil {
					t.Fatalf("unexpected estimate: %+v", e)
				}
				return e, nil
			},
		)

		if _, err := uc.Approve(context.Background(), "est-1", " mgr-1 "); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("reject missing reason", func(t *testing.T) {
		uc := NewEstimateUseCase(nil, nil, nil, nil, nil)
		_, err := uc.Reject(context.Background(), "est-1", "  ")
		if !errors.Is(err, ErrMissingRejectionReason) {
			t.Fatalf("expected ErrMissingRejectionReason, got %v", err)
		}
	})

	t.Run("reject success records reason", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil, nil, nil, nil)

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(entities.Estimate{
			ID: "est-1", Status: entities.EstimateStatusPending,
		}, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, e entities.Estimate) (entities.Estimate, error) {
				if e.Status != entities.EstimateStatusRejected || e.RejectionReason != "over budget" {
					t.Fatalf("unexpected estimate: %+v", e)
				}
				return e, nil
			},
		)

		if _, err := uc.Reject(context.Background(), "est-1", " over budget "); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestEstimateUseCase_AttachPhoto(t *testing.T) {
	t.Run("converted estimate rejects uploads", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil, nil, nil, nil)

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(entities.Estimate{
			ID: "est-1", Status: entities.EstimateStatusConvertedToWorkOrder,
		}, nil)

		_, err := uc.AttachPhoto(context.Background(), "est-1", "a.jpg", "image/jpeg", strings.NewReader("x"))
		if !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
	})

	t.Run("attach success appends url", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		photos := mock_interfaces.NewMockIPhotoStorage(ctrl)
		uc := NewEstimateUseCase(repo, photos, nil, nil, nil)

		repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(entities.Estimate{
			ID: "est-1", Status: entities.EstimateStatusDraft,
		}, nil)
		photos.EXPECT().Save(gomock.Any(), "est-1", "a.jpg", "image/jpeg", gomock.Any()).Return("s3://bucket/est-1/a.jpg", nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, e entities.Estimate) (entities.Estimate, error) {
				if len(e.Photos) != 1 || e.Photos[0] != "s3://bucket/est-1/a.jpg" {
					t.Fatalf("unexpected photos: %v", e.Photos)
				}
				return e, nil
			},
		)

		if _, err := uc.AttachPhoto(context.Background(), "est-1", "a.jpg", "image/jpeg", strings.NewReader("x")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestEstimateUseCase_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
	uc := NewEstimateUseCase(repo, nil, nil, nil, nil)

	filter := interfaces.EstimateFilter{Status: entities.EstimateStatusPending, Limit: 10}
	repo.EXPECT().List(gomock.Any(), filter).Return(interfaces.EstimatePage{
		Items:      []entities.Estimate{{ID: "est-1"}},
		NextCursor: "cursor-1",
	}, nil)

	page, err := uc.List(context.Background(), filter)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Items) != 1 || page.NextCursor != "cursor-1" {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestEstimateUseCase_RenderPDF(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
	pdf := mock_interfaces.NewMockIPDFRenderer(ctrl)
	uc := NewEstimateUseCase(repo, nil, pdf, nil, nil)

	repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(entities.Estimate{ID: "est-1"}, nil)
	pdf.EXPECT().RenderEstimate(gomock.Any(), gomock.Any(), true).Return([]byte("%PDF-1.4"), nil)

	b, err := uc.RenderPDF(context.Background(), "est-1", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(b) == 0 {
		t.Fatalf("expected pdf bytes")
	}
}

func TestEstimateUseCase_RecalculateTotals(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
	uc := NewEstimateUseCase(repo, nil, nil, nil, nil)

	stale := entities.Estimate{
		ID: "est-1", Status: entities.EstimateStatusDraft,
		EstimatedPrice: 1, EstimatedCost: 1,
		LineItems: []entities.LineItem{
			{ProductService: "Labor", Qty: 4, Rate: 25, Amount: 100, Tax: 10, TaxType: entities.TaxTypePercentage, EstimatedCost: 55},
		},
		UpdatedAt: time.Now().Add(-time.Hour),
	}
	repo.EXPECT().GetByID(gomock.Any(), "est-1").Return(stale, nil)
	repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, e entities.Estimate) (entities.Estimate, error) {
			if e.EstimatedPrice != 110 || e.EstimatedCost != 55 {
				t.Fatalf("expected recomputed totals, got price=%v cost=%v", e.EstimatedPrice, e.EstimatedCost)
			}
			if !e.UpdatedAt.After(stale.UpdatedAt) {
				t.Fatalf("expected updated_at refresh")
			}
			return e, nil
		},
	)

	if _, err := uc.RecalculateTotals(context.Background(), "est-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
