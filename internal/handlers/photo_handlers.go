package handlers

import (
	"errors"
	"net/http"

	"merchandising_backend/internal/models"
	"merchandising_backend/internal/services"
	"merchandising_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// PhotoHandler holds the photo service.
type PhotoHandler struct {
	photoService services.PhotoService
}

// NewPhotoHandler creates a new PhotoHandler.
func NewPhotoHandler(ps services.PhotoService) *PhotoHandler {
	return &PhotoHandler{photoService: ps}
}

// UploadPhoto accepts a multipart upload (image, categorie, photo_type) and
// records one piece of photo evidence against the mission.
func (h *PhotoHandler) UploadPhoto(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	missionID, ok := missionIDParam(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Missing image file.", ""))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Could not read image file.", err.Error()))
		return
	}
	defer file.Close()

	req := services.UploadPhotoRequest{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Image:       file,
		Categorie:   c.PostForm("categorie"),
		TypePhoto:   c.PostForm("photo_type"),
	}

	result, err := h.photoService.UploadPhoto(c.Request.Context(), missionID, actor, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPhotoUploadArgs):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "missing parameters", ""))
		case errors.Is(err, services.ErrPhotoUpload):
			utils.LogError(err, "UploadPhoto: blob store rejected upload")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadGateway, utils.ErrCodeInternalServerError, "Image storage is unavailable.", ""))
		default:
			respondMissionOpError(c, "UploadPhoto", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"photo_id":  result.PhotoID,
		"url":       result.URL,
		"categorie": result.Categorie,
		"type":      result.TypePhoto,
	})
}

// ListPhotos returns a page of the mission's photos, newest first.
// Query params: type (avant|apres), categorie, page, page_size.
func (h *PhotoHandler) ListPhotos(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	missionID, ok := missionIDParam(c)
	if !ok {
		return
	}

	var filters models.PhotoFilters
	filters.Page, filters.PageSize = parsePagination(c, 50)
	if v := c.Query("type"); v != "" {
		filters.TypePhoto = &v
	}
	if v := c.Query("categorie"); v != "" {
		filters.Categorie = &v
	}

	page, err := h.photoService.ListPhotos(missionID, actor, filters)
	if respondMissionOpError(c, "ListPhotos", err) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"items":   page.Items,
		"page":    page.Page,
		"pages":   page.Pages,
		"count":   page.Count,
	})
}
