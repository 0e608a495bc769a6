package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"propserv/internal/adapter/http/handlers/mocks"
	"propserv/internal/domain/entities"
	"propserv/internal/usecase"
	"propserv/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func sampleHandlerEstimate() entities.Estimate {
	return entities.Estimate{
		ID:             "est-1",
		Title:          "Repair hallway drywall",
		Building:       "Maple Court",
		Status:         entities.EstimateStatusDraft,
		Priority:       entities.PriorityMedium,
		EstimatedCost:  100,
		EstimatedPrice: 180,
		CreatedBy:      "user-1",
	}
}

func TestEstimateHandler_CreateEstimate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid payload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.POST("/v1/estimates", h.CreateEstimate)

		req := httptest.NewRequest(http.MethodPost, "/v1/estimates", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("missing required fields", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.POST("/v1/estimates", h.CreateEstimate)

		req := httptest.NewRequest(http.MethodPost, "/v1/estimates", bytes.NewBufferString(`{"title":"Only a title"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success with actor from context", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.POST("/v1/estimates", func(c *gin.Context) {
			c.Set("user_id", "user-1")
			h.CreateEstimate(c)
		})

		uc.EXPECT().Create(gomock.Any(), "user-1", gomock.AssignableToTypeOf(usecase.EstimateInput{})).Return(sampleHandlerEstimate(), nil)

		body := `{"title":"Repair hallway drywall","building":"Maple Court"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/estimates", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		var resp map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &resp)
		if resp["id"] != "est-1" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestEstimateHandler_GetEstimate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.GET("/v1/estimates/:id", h.GetEstimate)

		uc.EXPECT().GetByID(gomock.Any(), "missing").Return(entities.Estimate{}, usecase.ErrEstimateNotFound)

		req := httptest.NewRequest(http.MethodGet, "/v1/estimates/missing", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.GET("/v1/estimates/:id", h.GetEstimate)

		uc.EXPECT().GetByID(gomock.Any(), "est-1").Return(sampleHandlerEstimate(), nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/estimates/est-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestEstimateHandler_ListEstimates(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("passes filter from query", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.GET("/v1/estimates", h.ListEstimates)

		uc.EXPECT().List(gomock.Any(), interfaces.EstimateFilter{
			Status:   entities.EstimateStatusApproved,
			Priority: entities.PriorityHigh,
			Building: "Maple Court",
			Limit:    10,
			Cursor:   "abc",
		}).Return(interfaces.EstimatePage{Items: []entities.Estimate{sampleHandlerEstimate()}, NextCursor: "next"}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/estimates?status=approved&priority=high&building=Maple+Court&limit=10&cursor=abc", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var resp map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &resp)
		if resp["nextCursor"] != "next" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestEstimateHandler_ListPendingApprovals(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockIEstimateUseCase(ctrl)
	h := NewEstimateHandler(uc)

	r := gin.New()
	r.GET("/v1/estimates/pending-approvals", h.ListPendingApprovals)

	pending := sampleHandlerEstimate()
	pending.Status = entities.EstimateStatusPending
	uc.EXPECT().ListPendingApprovals(gomock.Any()).Return([]entities.Estimate{pending}, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/estimates/pending-approvals", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestEstimateHandler_DeleteEstimate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("converted estimate", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.DELETE("/v1/estimates/:id", h.DeleteEstimate)

		uc.EXPECT().Delete(gomock.Any(), "est-1").Return(usecase.ErrEstimateNotDeletable)

		req := httptest.NewRequest(http.MethodDelete, "/v1/estimates/est-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.DELETE("/v1/estimates/:id", h.DeleteEstimate)

		uc.EXPECT().Delete(gomock.Any(), "est-1").Return(nil)

		req := httptest.NewRequest(http.MethodDelete, "/v1/estimates/est-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", w.Code)
		}
	})
}

func TestEstimateHandler_SubmitEstimate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid transition", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.POST("/v1/estimates/:id/submit", h.SubmitEstimate)

		uc.EXPECT().Submit(gomock.Any(), "est-1", "client@test.com").Return(entities.Estimate{}, usecase.ErrInvalidTransition)

		req := httptest.NewRequest(http.MethodPost, "/v1/estimates/est-1/submit", bytes.NewBufferString(`{"clientEmail":"client@test.com"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.POST("/v1/estimates/:id/submit", h.SubmitEstimate)

		submitted := sampleHandlerEstimate()
		submitted.Status = entities.EstimateStatusSubmitted
		uc.EXPECT().Submit(gomock.Any(), "est-1", "client@test.com").Return(submitted, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/estimates/est-1/submit", bytes.NewBufferString(`{"clientEmail":"client@test.com"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var resp map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &resp)
		if resp["status"] != string(entities.EstimateStatusSubmitted) {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestEstimateHandler_ApproveAndReject(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("approve uses actor from context", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.POST("/v1/estimates/:id/approve", func(c *gin.Context) {
			c.Set("user_id", "manager-1")
			h.ApproveEstimate(c)
		})

		approved := sampleHandlerEstimate()
		approved.Status = entities.EstimateStatusApproved
		uc.EXPECT().Approve(gomock.Any(), "est-1", "manager-1").Return(approved, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/estimates/est-1/approve", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("reject requires reason payload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.POST("/v1/estimates/:id/reject", h.RejectEstimate)

		req := httptest.NewRequest(http.MethodPost, "/v1/estimates/est-1/reject", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestEstimateHandler_UploadPhoto(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("missing file", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.POST("/v1/estimates/:id/photos", h.UploadPhoto)

		req := httptest.NewRequest(http.MethodPost, "/v1/estimates/est-1/photos", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.POST("/v1/estimates/:id/photos", h.UploadPhoto)

		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		fw, err := mw.CreateFormFile("photo", "leak.jpg")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		_, _ = fw.Write([]byte("fake image bytes"))
		_ = mw.Close()

		updated := sampleHandlerEstimate()
		updated.Photos = []string{"s3://photos/estimates/est-1/leak.jpg"}
		uc.EXPECT().AttachPhoto(gomock.Any(), "est-1", "leak.jpg", gomock.Any(), gomock.Any()).Return(updated, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/estimates/est-1/photos", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestEstimateHandler_GetTotals(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockIEstimateUseCase(ctrl)
	h := NewEstimateHandler(uc)

	r := gin.New()
	r.GET("/v1/estimates/:id/totals", h.GetTotals)

	uc.EXPECT().GetByID(gomock.Any(), "est-1").Return(sampleHandlerEstimate(), nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/estimates/est-1/totals", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body["estimatedPrice"] != 180.0 || body["estimatedProfit"] != 80.0 {
		t.Fatalf("unexpected totals: %s", w.Body.String())
	}
}

func TestEstimateHandler_DownloadPDF(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockIEstimateUseCase(ctrl)
	h := NewEstimateHandler(uc)

	r := gin.New()
	r.GET("/v1/estimates/:id/pdf", h.DownloadPDF)

	uc.EXPECT().RenderPDF(gomock.Any(), "est-1", true).Return([]byte("%PDF-1.4"), nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/estimates/est-1/pdf?internal=true", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("expected pdf content type, got %s", ct)
	}
}
