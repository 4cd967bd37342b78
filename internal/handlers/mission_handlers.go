package handlers

import (
	"errors"
	"net/http"

	"merchandising_backend/internal/middleware"
	"merchandising_backend/internal/models"
	"merchandising_backend/internal/services"
	"merchandising_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// MissionHandler holds the mission service.
type MissionHandler struct {
	missionService services.MissionService
}

// NewMissionHandler creates a new MissionHandler.
func NewMissionHandler(ms services.MissionService) *MissionHandler {
	return &MissionHandler{missionService: ms}
}

// requireActor pulls the authenticated actor out of the context or writes a
// 401. Shared by every handler in this package.
func requireActor(c *gin.Context) (models.Actor, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Not authenticated.", ""))
		return models.Actor{}, false
	}
	return actor, true
}

// missionIDParam parses the :id path parameter or writes a 400.
func missionIDParam(c *gin.Context) (int64, bool) {
	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid mission id.", c.Param("id")))
		return 0, false
	}
	return id, true
}

// respondMissionOpError maps the shared mission-operation failures to HTTP.
// Returns false when err was nil so callers can continue.
func respondMissionOpError(c *gin.Context, op string, err error) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, services.ErrMissionNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Mission not found.", ""))
	case errors.Is(err, services.ErrNotMissionOwner):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "You are not this mission's merchandiser.", ""))
	case errors.Is(err, services.ErrMissionState):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, err.Error(), ""))
	case errors.Is(err, services.ErrInvalidFailReason),
		errors.Is(err, services.ErrMissionDateInPast),
		errors.Is(err, services.ErrMissionValidation),
		errors.Is(err, services.ErrMerchRoleRequired):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
	default:
		utils.LogError(err, op+": mission operation failed")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Mission operation failed.", ""))
	}
	return true
}

// CreateMission creates a planned mission (superviseur operation).
func (h *MissionHandler) CreateMission(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req services.CreateMissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload.", err.Error()))
		return
	}

	mission, err := h.missionService.CreateMission(actor, req)
	if respondMissionOpError(c, "CreateMission", err) {
		return
	}
	c.JSON(http.StatusCreated, mission)
}

// GetMissions lists missions with filters (superviseur operation).
func (h *MissionHandler) GetMissions(c *gin.Context) {
	var filters models.MissionFilters
	filters.Page, filters.PageSize = parsePagination(c, 20)

	if v := c.Query("merchandiser"); v != "" {
		id, err := utils.StrToInt64(v)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid merchandiser filter.", v))
			return
		}
		filters.MerchandiserID = &id
	}
	if v := c.Query("client"); v != "" {
		id, err := utils.StrToInt64(v)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid client filter.", v))
			return
		}
		filters.ClientID = &id
	}
	if v := c.Query("etat"); v != "" {
		filters.Etat = &v
	}
	if v := c.Query("date"); v != "" {
		date, err := utils.ParseDate(v)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid date filter. Use YYYY-MM-DD.", v))
			return
		}
		filters.Date = &date
	}

	missions, total, err := h.missionService.GetMissions(filters)
	if respondMissionOpError(c, "GetMissions", err) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": missions, "count": total, "page": filters.Page})
}

// MerchDashboard returns the acting merchandiser's missions for today.
func (h *MissionHandler) MerchDashboard(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	missions, err := h.missionService.GetTodayMissions(actor)
	if respondMissionOpError(c, "MerchDashboard", err) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"missions": missions})
}

// StartMission moves a mission to in_progress, geo-stamped from the posted
// form fields. Coordinates are optional; a lone latitude or longitude is
// dropped.
func (h *MissionHandler) StartMission(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	missionID, ok := missionIDParam(c)
	if !ok {
		return
	}

	lat, err := utils.ParseFloat(c.PostForm("latitude"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid latitude.", c.PostForm("latitude")))
		return
	}
	lon, err := utils.ParseFloat(c.PostForm("longitude"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid longitude.", c.PostForm("longitude")))
		return
	}

	mission, err := h.missionService.StartMission(missionID, actor, services.Coordinates{Latitude: lat, Longitude: lon})
	if respondMissionOpError(c, "StartMission", err) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "mission": mission, "redirect": "/missions/" + utils.Int64ToStr(mission.ID) + "/realisation"})
}

// FinishMission moves an in_progress mission to done.
func (h *MissionHandler) FinishMission(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	missionID, ok := missionIDParam(c)
	if !ok {
		return
	}

	lat, err := utils.ParseFloat(c.PostForm("latitude"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid latitude.", c.PostForm("latitude")))
		return
	}
	lon, err := utils.ParseFloat(c.PostForm("longitude"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid longitude.", c.PostForm("longitude")))
		return
	}

	_, err = h.missionService.FinishMission(missionID, actor, services.Coordinates{Latitude: lat, Longitude: lon})
	if respondMissionOpError(c, "FinishMission", err) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "redirect": "/merch/dashboard"})
}

// FailMission marks a mission as failed with a reason (pdv_closed, other).
func (h *MissionHandler) FailMission(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	missionID, ok := missionIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload.", err.Error()))
		return
	}

	mission, err := h.missionService.FailMission(missionID, actor, req.Reason)
	if respondMissionOpError(c, "FailMission", err) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "mission": mission})
}

// parsePagination reads page/page_size query params with a default size.
func parsePagination(c *gin.Context, defaultSize int) (int, int) {
	page, err := utils.StrToInt64(c.DefaultQuery("page", "1"))
	if err != nil || page <= 0 {
		page = 1
	}
	size, err := utils.StrToInt64(c.DefaultQuery("page_size", utils.Int64ToStr(int64(defaultSize))))
	if err != nil || size <= 0 {
		size = int64(defaultSize)
	}
	return int(page), int(size)
}
