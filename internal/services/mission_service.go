package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"merchandising_backend/internal/models"
	"merchandising_backend/internal/repositories"
	"merchandising_backend/pkg/utils"
)

// --- Custom Service Errors for Missions ---
var (
	ErrMissionNotFound     = errors.New("mission not found")
	ErrMissionDateInPast   = errors.New("mission date cannot be in the past")
	ErrNotMissionOwner     = errors.New("actor is not the mission's assigned merchandiser")
	ErrMissionState        = errors.New("operation not allowed in the mission's current state")
	ErrInvalidFailReason   = errors.New("unknown mission failure reason")
	ErrMerchRoleRequired   = errors.New("assigned user must have the merchandiser role")
	ErrMissionCodeConflict = errors.New("could not allocate a unique mission code")
	ErrMissionValidation   = errors.New("mission data validation error")
)

// codeGenAttempts bounds retries against the unique constraint on mission
// and PDV codes. Three random hex suffixes colliding in a row means
// something else is wrong.
const codeGenAttempts = 3

// --- Mission DTOs ---
type CreateMissionRequest struct {
	PDVID          int64  `json:"pdv_id" binding:"required"`
	DateMission    string `json:"date_mission" binding:"required"` // YYYY-MM-DD
	MerchandiserID int64  `json:"merchandiser_id" binding:"required"`
	ClientID       *int64 `json:"client_id"`
}

// Coordinates carries an optional geo-stamp for a transition. Partial
// coordinates (only one of lat/lon) are dropped silently, matching the
// behavior merchandiser devices already rely on.
type Coordinates struct {
	Latitude  *float64
	Longitude *float64
}

func (c Coordinates) complete() bool {
	return c.Latitude != nil && c.Longitude != nil
}

// --- MissionService Interface ---
type MissionService interface {
	CreateMission(actor models.Actor, req CreateMissionRequest) (*models.Mission, error)
	GetMissionByID(missionID int64) (*models.Mission, error)
	GetMissions(filters models.MissionFilters) ([]models.Mission, int, error)
	GetTodayMissions(actor models.Actor) ([]models.Mission, error)
	StartMission(missionID int64, actor models.Actor, coords Coordinates) (*models.Mission, error)
	FinishMission(missionID int64, actor models.Actor, coords Coordinates) (*models.Mission, error)
	FailMission(missionID int64, actor models.Actor, reason string) (*models.Mission, error)
}

type missionService struct {
	missionRepo repositories.MissionRepository
	pdvRepo     repositories.PDVRepository
	userRepo    repositories.UserRepository
	db          *sql.DB
	now         func() time.Time
}

// NewMissionService creates a new instance of MissionService.
func NewMissionService(
	mr repositories.MissionRepository,
	pr repositories.PDVRepository,
	ur repositories.UserRepository,
	db *sql.DB,
) MissionService {
	return &missionService{
		missionRepo: mr,
		pdvRepo:     pr,
		userRepo:    ur,
		db:          db,
		now:         time.Now,
	}
}

// currentDate returns the clock's calendar date as a UTC-midnight value,
// directly comparable to parsed date_mission values. Truncating the absolute
// time would shift the boundary on any non-UTC server, accepting past dates
// just after local midnight and rejecting today's date late in the evening
// on negative offsets.
func (s *missionService) currentDate() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *missionService) CreateMission(actor models.Actor, req CreateMissionRequest) (*models.Mission, error) {
	date, err := utils.ParseDate(req.DateMission)
	if err != nil {
		return nil, fmt.Errorf("%w: date_mission must be YYYY-MM-DD", ErrMissionValidation)
	}

	if date.Before(s.currentDate()) {
		return nil, ErrMissionDateInPast
	}

	if _, err := s.pdvRepo.GetPDVByID(req.PDVID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: pdv %d", ErrMissionValidation, req.PDVID)
		}
		return nil, fmt.Errorf("failed to validate pdv for mission: %w", err)
	}

	merch, err := s.userRepo.GetUserByID(req.MerchandiserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrMissionValidation, req.MerchandiserID)
		}
		return nil, fmt.Errorf("failed to validate merchandiser for mission: %w", err)
	}
	if merch.Role != models.RoleMerchandiser {
		return nil, ErrMerchRoleRequired
	}

	mission := &models.Mission{
		PDVID:          req.PDVID,
		DateMission:    date,
		MerchandiserID: req.MerchandiserID,
		CreatedBy:      &actor.UserID,
		ClientID:       req.ClientID,
		Etat:           models.MissionPlanned,
	}

	// The code's uniqueness lives in the schema; regenerate on collision.
	for attempt := 0; attempt < codeGenAttempts; attempt++ {
		mission.Code = utils.GenerateMissionCode()
		_, err = s.missionRepo.CreateMission(s.db, mission)
		if err == nil {
			return s.missionRepo.GetMissionByID(mission.ID)
		}
		if !errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("failed to create mission: %w", err)
		}
	}
	return nil, ErrMissionCodeConflict
}

func (s *missionService) GetMissionByID(missionID int64) (*models.Mission, error) {
	mission, err := s.missionRepo.GetMissionByID(missionID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMissionNotFound
		}
		return nil, fmt.Errorf("failed to get mission by ID: %w", err)
	}
	return mission, nil
}

func (s *missionService) GetMissions(filters models.MissionFilters) ([]models.Mission, int, error) {
	if filters.Page <= 0 {
		filters.Page = 1
	}
	if filters.PageSize <= 0 {
		filters.PageSize = 20
	}
	missions, total, err := s.missionRepo.GetMissions(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get missions: %w", err)
	}
	return missions, total, nil
}

// GetTodayMissions returns the acting merchandiser's missions scheduled for
// the current date.
func (s *missionService) GetTodayMissions(actor models.Actor) ([]models.Mission, error) {
	today := s.currentDate()
	filters := models.MissionFilters{
		MerchandiserID: &actor.UserID,
		Date:           &today,
		Page:           1,
		PageSize:       100,
	}
	missions, _, err := s.missionRepo.GetMissions(filters)
	if err != nil {
		return nil, fmt.Errorf("failed to get today's missions: %w", err)
	}
	return missions, nil
}

// loadOwnedMission fetches a mission and verifies the actor is its assigned
// merchandiser. Every capture and transition operation starts here.
func (s *missionService) loadOwnedMission(missionID int64, actor models.Actor) (*models.Mission, error) {
	mission, err := s.missionRepo.GetMissionByID(missionID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMissionNotFound
		}
		return nil, fmt.Errorf("failed to load mission: %w", err)
	}
	if mission.MerchandiserID != actor.UserID {
		return nil, ErrNotMissionOwner
	}
	return mission, nil
}

// StartMission moves a planned mission to in_progress, stamping the start
// time and, when both coordinates are present, the start position.
// Restarting an in_progress or terminal mission is rejected.
func (s *missionService) StartMission(missionID int64, actor models.Actor, coords Coordinates) (*models.Mission, error) {
	mission, err := s.loadOwnedMission(missionID, actor)
	if err != nil {
		return nil, err
	}
	if mission.Etat != models.MissionPlanned {
		return nil, fmt.Errorf("%w: cannot start a mission that is '%s'", ErrMissionState, mission.Etat)
	}

	now := s.now()
	mission.Etat = models.MissionInProgress
	mission.BeginTime = &now
	if coords.complete() {
		mission.BeginLatitude = coords.Latitude
		mission.BeginLongitude = coords.Longitude
	}

	if err := s.missionRepo.UpdateMissionState(s.db, mission); err != nil {
		return nil, fmt.Errorf("failed to start mission: %w", err)
	}
	return mission, nil
}

// FinishMission moves an in_progress mission to done. End coordinates are
// recorded when both are supplied.
func (s *missionService) FinishMission(missionID int64, actor models.Actor, coords Coordinates) (*models.Mission, error) {
	mission, err := s.loadOwnedMission(missionID, actor)
	if err != nil {
		return nil, err
	}
	if mission.Etat != models.MissionInProgress {
		return nil, fmt.Errorf("%w: cannot finish a mission that is '%s'", ErrMissionState, mission.Etat)
	}

	now := s.now()
	mission.Etat = models.MissionDone
	mission.EndTime = &now
	if coords.complete() {
		mission.EndLatitude = coords.Latitude
		mission.EndLongitude = coords.Longitude
	}

	if err := s.missionRepo.UpdateMissionState(s.db, mission); err != nil {
		return nil, fmt.Errorf("failed to finish mission: %w", err)
	}
	return mission, nil
}

// FailMission moves a planned or in_progress mission to failed with a known
// reason (pdv_closed, other).
func (s *missionService) FailMission(missionID int64, actor models.Actor, reason string) (*models.Mission, error) {
	if !models.IsValidFailReason(reason) {
		return nil, fmt.Errorf("%w: '%s'", ErrInvalidFailReason, reason)
	}

	mission, err := s.loadOwnedMission(missionID, actor)
	if err != nil {
		return nil, err
	}
	if mission.Etat == models.MissionDone || mission.Etat == models.MissionFailed {
		return nil, fmt.Errorf("%w: cannot fail a mission that is '%s'", ErrMissionState, mission.Etat)
	}

	now := s.now()
	mission.Etat = models.MissionFailed
	mission.RaisonEchec = &reason
	mission.EndTime = &now

	if err := s.missionRepo.UpdateMissionState(s.db, mission); err != nil {
		return nil, fmt.Errorf("failed to fail mission: %w", err)
	}
	return mission, nil
}
