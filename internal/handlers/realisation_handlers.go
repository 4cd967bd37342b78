package handlers

import (
	"net/http"

	"merchandising_backend/internal/services"
	"merchandising_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// RealisationHandler holds the realisation service.
type RealisationHandler struct {
	realisationService services.RealisationService
}

// NewRealisationHandler creates a new RealisationHandler.
func NewRealisationHandler(rs services.RealisationService) *RealisationHandler {
	return &RealisationHandler{realisationService: rs}
}

// GetRealisationForm returns the mission plus candidate products and
// categories for the capture form.
func (h *RealisationHandler) GetRealisationForm(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	missionID, ok := missionIDParam(c)
	if !ok {
		return
	}

	form, err := h.realisationService.GetRealisationForm(missionID, actor)
	if respondMissionOpError(c, "GetRealisationForm", err) {
		return
	}
	c.JSON(http.StatusOK, form)
}

// SaveClientProducts records a batch of client-product measurements.
// Unresolvable produit_ids are skipped; the response reports how many rows
// were created.
func (h *RealisationHandler) SaveClientProducts(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	missionID, ok := missionIDParam(c)
	if !ok {
		return
	}

	var payload struct {
		Items []services.ClientRealisationItem `json:"items"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid JSON body.", err.Error()))
		return
	}

	created, err := h.realisationService.SubmitClientRealisations(missionID, actor, payload.Items)
	if respondMissionOpError(c, "SaveClientProducts", err) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "created": created})
}

// MissionRealisations returns a mission with everything captured against it
// (superviseur operation).
func (h *RealisationHandler) MissionRealisations(c *gin.Context) {
	missionID, ok := missionIDParam(c)
	if !ok {
		return
	}

	detail, err := h.realisationService.GetMissionRealisations(missionID)
	if respondMissionOpError(c, "MissionRealisations", err) {
		return
	}
	c.JSON(http.StatusOK, detail)
}

// SaveConcurrentProducts records a batch of competitor-product measurements.
func (h *RealisationHandler) SaveConcurrentProducts(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	missionID, ok := missionIDParam(c)
	if !ok {
		return
	}

	var payload struct {
		Items []services.ConcurrentRealisationItem `json:"items"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid JSON body.", err.Error()))
		return
	}

	created, err := h.realisationService.SubmitConcurrentRealisations(missionID, actor, payload.Items)
	if respondMissionOpError(c, "SaveConcurrentProducts", err) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "created": created})
}
