package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"merchandising_backend/internal/models"
	"merchandising_backend/internal/services"
)

// stubMissionService records the filters GetMissions receives; the other
// operations are not exercised by these tests.
type stubMissionService struct {
	filters models.MissionFilters
}

func (s *stubMissionService) CreateMission(models.Actor, services.CreateMissionRequest) (*models.Mission, error) {
	return nil, nil
}

func (s *stubMissionService) GetMissionByID(int64) (*models.Mission, error) {
	return nil, services.ErrMissionNotFound
}

func (s *stubMissionService) GetMissions(filters models.MissionFilters) ([]models.Mission, int, error) {
	s.filters = filters
	return nil, 0, nil
}

func (s *stubMissionService) GetTodayMissions(models.Actor) ([]models.Mission, error) {
	return nil, nil
}

func (s *stubMissionService) StartMission(int64, models.Actor, services.Coordinates) (*models.Mission, error) {
	return nil, services.ErrMissionNotFound
}

func (s *stubMissionService) FinishMission(int64, models.Actor, services.Coordinates) (*models.Mission, error) {
	return nil, services.ErrMissionNotFound
}

func (s *stubMissionService) FailMission(int64, models.Actor, string) (*models.Mission, error) {
	return nil, services.ErrMissionNotFound
}

func missionListRouter(stub *stubMissionService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/missions", NewMissionHandler(stub).GetMissions)
	return r
}

func TestGetMissionsParsesFilters(t *testing.T) {
	stub := &stubMissionService{}
	r := missionListRouter(stub)

	req := httptest.NewRequest(http.MethodGet, "/missions?merchandiser=3&client=7&etat=planned&date=2026-09-01&page=2&page_size=10", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, stub.filters.MerchandiserID)
	assert.Equal(t, int64(3), *stub.filters.MerchandiserID)
	require.NotNil(t, stub.filters.ClientID)
	assert.Equal(t, int64(7), *stub.filters.ClientID)
	require.NotNil(t, stub.filters.Etat)
	assert.Equal(t, "planned", *stub.filters.Etat)
	require.NotNil(t, stub.filters.Date)
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), *stub.filters.Date)
	assert.Equal(t, 2, stub.filters.Page)
	assert.Equal(t, 10, stub.filters.PageSize)
}

func TestGetMissionsRejectsBadFilters(t *testing.T) {
	cases := []struct {
		name  string
		query string
	}{
		{"bad merchandiser", "/missions?merchandiser=bob"},
		{"bad client", "/missions?client=acme"},
		{"bad date", "/missions?date=01/09/2026"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := missionListRouter(&stubMissionService{})
			req := httptest.NewRequest(http.MethodGet, tc.query, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}
