package badges

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"prophezeiung/internal/models"
	"prophezeiung/internal/response"
	"prophezeiung/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubBadgeService struct {
	catalog  []models.BadgeDefinition
	badges   []*models.AwardedBadge
	progress []*models.BadgeProgress
	err      error
}

func (s *stubBadgeService) EvaluateAndAward(ctx context.Context, userID int64) ([]*models.AwardedBadge, error) {
	return nil, s.err
}

func (s *stubBadgeService) AwardQualitative(ctx context.Context, userID int64, badgeKey string) (bool, error) {
	return false, nil
}

func (s *stubBadgeService) ListUserBadges(ctx context.Context, userID int64) ([]*models.AwardedBadge, error) {
	return s.badges, s.err
}

func (s *stubBadgeService) ListCatalog(ctx context.Context) []models.BadgeDefinition {
	return s.catalog
}

func (s *stubBadgeService) GetBadgeStats(ctx context.Context) (map[string]int64, error) {
	return map[string]int64{"creator_1": 3}, s.err
}

func (s *stubBadgeService) GetBadgeProgress(ctx context.Context, userID int64) ([]*models.BadgeProgress, error) {
	return s.progress, s.err
}

func newTestController(svc services.BadgeService) *BadgeController {
	responseBuilder := response.NewBuilder(&response.Config{APIVersion: "v1"}, nil)
	return NewBadgeController(
		&services.ServiceCollection{BadgeService: svc},
		zap.NewNop(),
		responseBuilder,
	)
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestListCatalogReturnsDefinitions(t *testing.T) {
	threshold := 1
	controller := newTestController(&stubBadgeService{
		catalog: []models.BadgeDefinition{
			{Key: "creator_1", Name: "First Prophecy", Category: models.CategoryCreator, Threshold: &threshold},
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/badges", nil)
	rr := httptest.NewRecorder()
	controller.ListCatalog(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Success bool                     `json:"success"`
		Data    []models.BadgeDefinition `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "creator_1", body.Data[0].Key)
}

func TestListUserBadgesRejectsBadID(t *testing.T) {
	controller := newTestController(&stubBadgeService{})

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/users/abc/badges", nil), "userID", "abc")
	rr := httptest.NewRecorder()
	controller.ListUserBadges(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)

	var body struct {
		Error *response.ErrorDetail `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Type)
}

func TestGetProgressReturnsNextTiers(t *testing.T) {
	threshold := 5
	controller := newTestController(&stubBadgeService{
		progress: []*models.BadgeProgress{
			{
				Category:  models.CategoryCreator,
				Current:   2,
				NextBadge: &models.BadgeDefinition{Key: "creator_5", Threshold: &threshold},
				Remaining: 3,
			},
		},
	})

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/users/7/badges/progress", nil), "userID", "7")
	rr := httptest.NewRecorder()
	controller.GetProgress(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Data []*models.BadgeProgress `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, models.CategoryCreator, body.Data[0].Category)
	assert.Equal(t, 3, body.Data[0].Remaining)
	require.NotNil(t, body.Data[0].NextBadge)
	assert.Equal(t, "creator_5", body.Data[0].NextBadge.Key)
}

func TestGetProgressSurfacesServiceErrors(t *testing.T) {
	controller := newTestController(&stubBadgeService{
		err: services.NewNotFoundError("user not found"),
	})

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/users/9/badges/progress", nil), "userID", "9")
	rr := httptest.NewRecorder()
	controller.GetProgress(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
