package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"uni-cmcs/internal/adapters/persistence/models"
	"uni-cmcs/internal/adapters/persistence/repositories"
	"uni-cmcs/internal/core/services"
	"uni-cmcs/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testStatuses = map[string]*models.ClaimStatus{
	"Pending":  {ID: 1, Name: "Pending"},
	"Approved": {ID: 2, Name: "Approved"},
	"Rejected": {ID: 3, Name: "Rejected"},
}

type stubStatusRepo struct{}

func (s *stubStatusRepo) GetByName(_ context.Context, name string) (*models.ClaimStatus, error) {
	if status, ok := testStatuses[name]; ok {
		return status, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubStatusRepo) List(_ context.Context) ([]*models.ClaimStatus, error) {
	return nil, nil
}

type stubClaimRepo struct {
	claims map[uint]*models.Claim
}

func (s *stubClaimRepo) Create(_ context.Context, claim *models.Claim) error {
	claim.ID = uint(len(s.claims) + 1)
	s.claims[claim.ID] = claim
	return nil
}

func (s *stubClaimRepo) GetByID(_ context.Context, id uint) (*models.Claim, error) {
	claim, ok := s.claims[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return claim, nil
}

func (s *stubClaimRepo) Update(_ context.Context, claim *models.Claim) error {
	s.claims[claim.ID] = claim
	return nil
}

func (s *stubClaimRepo) List(_ context.Context, _ *repositories.ClaimFilter, _, _ int) ([]*models.Claim, int64, error) {
	return nil, 0, nil
}

func (s *stubClaimRepo) ListPendingWithDocuments(_ context.Context, _ uint) ([]*models.Claim, error) {
	return nil, nil
}

func (s *stubClaimRepo) ListForReport(_ context.Context, _ *repositories.ReportFilter) ([]*models.Claim, error) {
	return nil, nil
}

type stubDocRepo struct {
	counts map[uint]int64
}

func (s *stubDocRepo) Create(_ context.Context, doc *models.SupportingDocument) error {
	s.counts[doc.ClaimID]++
	return nil
}

func (s *stubDocRepo) CountByClaimID(_ context.Context, claimID uint) (int64, error) {
	return s.counts[claimID], nil
}

func (s *stubDocRepo) ListNamesByClaimID(_ context.Context, _ uint) ([]string, error) {
	return nil, nil
}

// newTestApp wires a fiber app with the claim routes behind a stub auth
// layer that injects a reviewer identity.
func newTestApp(claimRepo *stubClaimRepo, docRepo *stubDocRepo) *fiber.App {
	claimService := services.NewClaimService(nil, claimRepo, &stubStatusRepo{}, docRepo)
	approvalService := services.NewApprovalService(claimRepo, &stubStatusRepo{}, docRepo)
	handler := NewClaimHandler(claimService, approvalService)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", uint(42))
		c.Locals("username", "coordinator")
		c.Locals("role", "Coordinator")
		return c.Next()
	})
	app.Post("/api/v1/claims/validate-entries", handler.ValidateEntries)
	app.Post("/api/v1/claims/:id/process", handler.Process)
	app.Post("/api/v1/claims/:id/status", handler.UpdateStatus)
	return app
}

func seedPending(hours, rate float64) (*stubClaimRepo, *stubDocRepo) {
	claimRepo := &stubClaimRepo{claims: map[uint]*models.Claim{
		1: {
			ID:             1,
			UserID:         7,
			StatusID:       1,
			Status:         testStatuses["Pending"],
			Amount:         hours * rate,
			ClaimType:      "Monthly",
			SubmissionDate: time.Now().AddDate(0, 0, -1),
			HoursWorked:    hours,
			HourlyRate:     rate,
		},
	}}
	docRepo := &stubDocRepo{counts: map[uint]int64{1: 1}}
	return claimRepo, docRepo
}

func decodeResponse(t *testing.T, body io.Reader) *response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.NewDecoder(body).Decode(&resp))
	return &resp
}

func TestClaimHandler_Process(t *testing.T) {
	t.Run("auto-approves standard claim", func(t *testing.T) {
		app := newTestApp(seedPending(10, 200))

		req := httptest.NewRequest("POST", "/api/v1/claims/1/process", nil)
		res, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, res.StatusCode)

		resp := decodeResponse(t, res.Body)
		assert.True(t, resp.Success)
		assert.Equal(t, "Claim automatically approved - Standard rates", resp.Message)
	})

	t.Run("unknown claim", func(t *testing.T) {
		app := newTestApp(&stubClaimRepo{claims: map[uint]*models.Claim{}}, &stubDocRepo{counts: map[uint]int64{}})

		req := httptest.NewRequest("POST", "/api/v1/claims/9/process", nil)
		res, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, res.StatusCode)
	})

	t.Run("already processed claim conflicts", func(t *testing.T) {
		claimRepo, docRepo := seedPending(10, 200)
		claimRepo.claims[1].StatusID = 2
		claimRepo.claims[1].Status = testStatuses["Approved"]
		app := newTestApp(claimRepo, docRepo)

		req := httptest.NewRequest("POST", "/api/v1/claims/1/process", nil)
		res, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusConflict, res.StatusCode)
	})
}

func TestClaimHandler_UpdateStatus(t *testing.T) {
	t.Run("manual rejection", func(t *testing.T) {
		app := newTestApp(seedPending(30, 300))

		req := httptest.NewRequest("POST", "/api/v1/claims/1/status",
			strings.NewReader(`{"status":"Rejected"}`))
		req.Header.Set("Content-Type", "application/json")
		res, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, res.StatusCode)

		resp := decodeResponse(t, res.Body)
		assert.Equal(t, "Claim 1 has been manually rejected.", resp.Message)
	})

	t.Run("unknown status name", func(t *testing.T) {
		app := newTestApp(seedPending(30, 300))

		req := httptest.NewRequest("POST", "/api/v1/claims/1/status",
			strings.NewReader(`{"status":"Cancelled"}`))
		req.Header.Set("Content-Type", "application/json")
		res, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
	})
}

func TestClaimHandler_ValidateEntries(t *testing.T) {
	app := newTestApp(&stubClaimRepo{claims: map[uint]*models.Claim{}}, &stubDocRepo{counts: map[uint]int64{}})

	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	body := `{"hourly_rate":200,"entries":[{"work_date":"` + yesterday + `","hours_worked":5}]}`

	req := httptest.NewRequest("POST", "/api/v1/claims/validate-entries", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)

	resp := decodeResponse(t, res.Body)
	assert.True(t, resp.Success)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, data["valid"])
	assert.Equal(t, 5.0, data["total_hours"])
	assert.Equal(t, 1000.0, data["amount"])
}
