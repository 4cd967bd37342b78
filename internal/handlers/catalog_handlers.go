package handlers

import (
	"errors"
	"net/http"

	"merchandising_backend/internal/models"
	"merchandising_backend/internal/services"
	"merchandising_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// CatalogHandler holds the catalog service.
type CatalogHandler struct {
	catalogService services.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(cs services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: cs}
}

// respondCatalogError maps catalog service failures to HTTP.
func respondCatalogError(c *gin.Context, op string, err error) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, services.ErrCatalogValidation):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
	case errors.Is(err, services.ErrClientNotFound), errors.Is(err, services.ErrConcurrentNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, err.Error(), ""))
	default:
		utils.LogError(err, op+": catalog operation failed")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Catalog operation failed.", ""))
	}
	return true
}

// CreateClient registers a new client legal entity.
func (h *CatalogHandler) CreateClient(c *gin.Context) {
	var client models.Client
	if err := c.ShouldBindJSON(&client); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload.", err.Error()))
		return
	}
	created, err := h.catalogService.CreateClient(&client)
	if respondCatalogError(c, "CreateClient", err) {
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetClients lists clients with pagination.
func (h *CatalogHandler) GetClients(c *gin.Context) {
	page, pageSize := parsePagination(c, 20)
	clients, total, err := h.catalogService.GetClients(page, pageSize)
	if respondCatalogError(c, "GetClients", err) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": clients, "count": total, "page": page})
}

// CreatePDV registers a new point of sale; the code is generated server-side.
func (h *CatalogHandler) CreatePDV(c *gin.Context) {
	var req services.CreatePDVRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload.", err.Error()))
		return
	}
	pdv, err := h.catalogService.CreatePDV(req)
	if respondCatalogError(c, "CreatePDV", err) {
		return
	}
	c.JSON(http.StatusCreated, pdv)
}

// GetPDVs lists points of sale, optionally filtered by wilaya.
func (h *CatalogHandler) GetPDVs(c *gin.Context) {
	page, pageSize := parsePagination(c, 20)
	var wilaya *string
	if v := c.Query("wilaya"); v != "" {
		wilaya = &v
	}
	pdvs, total, err := h.catalogService.GetPDVs(page, pageSize, wilaya)
	if respondCatalogError(c, "GetPDVs", err) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": pdvs, "count": total, "page": page})
}

// CreateConcurrent registers a rival brand for a client.
func (h *CatalogHandler) CreateConcurrent(c *gin.Context) {
	var concurrent models.Concurrent
	if err := c.ShouldBindJSON(&concurrent); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload.", err.Error()))
		return
	}
	created, err := h.catalogService.CreateConcurrent(&concurrent)
	if respondCatalogError(c, "CreateConcurrent", err) {
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetConcurrents lists a client's concurrents.
func (h *CatalogHandler) GetConcurrents(c *gin.Context) {
	clientID, err := utils.StrToInt64(c.Query("client_id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "client_id query parameter required.", ""))
		return
	}
	concurrents, err := h.catalogService.GetConcurrentsByClient(clientID)
	if respondCatalogError(c, "GetConcurrents", err) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": concurrents})
}

// CreateProjet registers a client campaign.
func (h *CatalogHandler) CreateProjet(c *gin.Context) {
	var projet models.Projet
	if err := c.ShouldBindJSON(&projet); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload.", err.Error()))
		return
	}
	created, err := h.catalogService.CreateProjet(&projet)
	if respondCatalogError(c, "CreateProjet", err) {
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetProjets lists a client's projets.
func (h *CatalogHandler) GetProjets(c *gin.Context) {
	clientID, err := utils.StrToInt64(c.Query("client_id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "client_id query parameter required.", ""))
		return
	}
	projets, err := h.catalogService.GetProjetsByClient(clientID)
	if respondCatalogError(c, "GetProjets", err) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": projets})
}

// CreateClientProduct adds a product to a client's catalog.
func (h *CatalogHandler) CreateClientProduct(c *gin.Context) {
	var produit models.ProduitClient
	if err := c.ShouldBindJSON(&produit); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload.", err.Error()))
		return
	}
	created, err := h.catalogService.CreateClientProduct(&produit)
	if respondCatalogError(c, "CreateClientProduct", err) {
		return
	}
	c.JSON(http.StatusCreated, created)
}

// CreateConcurrentProduct adds a product to a competitor's catalog.
func (h *CatalogHandler) CreateConcurrentProduct(c *gin.Context) {
	var produit models.ProduitConcurrent
	if err := c.ShouldBindJSON(&produit); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload.", err.Error()))
		return
	}
	created, err := h.catalogService.CreateConcurrentProduct(&produit)
	if respondCatalogError(c, "CreateConcurrentProduct", err) {
		return
	}
	c.JSON(http.StatusCreated, created)
}
