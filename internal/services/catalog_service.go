package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"merchandising_backend/internal/models"
	"merchandising_backend/internal/repositories"
	"merchandising_backend/pkg/utils"

	gocache "github.com/patrickmn/go-cache"
)

// --- Custom Service Errors for the Catalog ---
var (
	ErrClientNotFound     = errors.New("client not found")
	ErrConcurrentNotFound = errors.New("concurrent not found")
	ErrCatalogValidation  = errors.New("catalog data validation error")
	ErrPDVCodeConflict    = errors.New("could not allocate a unique pdv code")
)

// --- Catalog DTOs ---
type CreatePDVRequest struct {
	NoPDV     string  `json:"no_pdv" binding:"required"`
	Nom       string  `json:"nom" binding:"required"`
	Region    string  `json:"region" binding:"required"`
	Wilaya    string  `json:"wilaya" binding:"required"`
	Commune   string  `json:"commune" binding:"required"`
	TypePDV   string  `json:"type_pdv" binding:"required"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// --- CatalogService Interface ---
type CatalogService interface {
	CreateClient(client *models.Client) (*models.Client, error)
	GetClients(page, pageSize int) ([]models.Client, int, error)

	CreatePDV(req CreatePDVRequest) (*models.PointDeVente, error)
	GetPDVs(page, pageSize int, wilaya *string) ([]models.PointDeVente, int, error)

	CreateConcurrent(concurrent *models.Concurrent) (*models.Concurrent, error)
	GetConcurrentsByClient(clientID int64) ([]models.Concurrent, error)

	CreateProjet(projet *models.Projet) (*models.Projet, error)
	GetProjetsByClient(clientID int64) ([]models.Projet, error)

	CreateClientProduct(produit *models.ProduitClient) (*models.ProduitClient, error)
	CreateConcurrentProduct(produit *models.ProduitConcurrent) (*models.ProduitConcurrent, error)
	GetClientProductCategories(clientID int64) ([]string, error)
}

type catalogService struct {
	catalogRepo repositories.CatalogRepository
	pdvRepo     repositories.PDVRepository
	productRepo repositories.ProductRepository
	db          *sql.DB
	categories  *gocache.Cache
}

// categoryCacheTTL: category lists change only when an operator adds
// products, so a short cache saves a DISTINCT scan per capture-form load.
const categoryCacheTTL = 5 * time.Minute

// NewCatalogService creates a new instance of CatalogService.
func NewCatalogService(
	cr repositories.CatalogRepository,
	pr repositories.PDVRepository,
	prr repositories.ProductRepository,
	db *sql.DB,
) CatalogService {
	return &catalogService{
		catalogRepo: cr,
		pdvRepo:     pr,
		productRepo: prr,
		db:          db,
		categories:  gocache.New(categoryCacheTTL, 2*categoryCacheTTL),
	}
}

func (s *catalogService) CreateClient(client *models.Client) (*models.Client, error) {
	if utils.IsEmpty(client.RaisonSociale) {
		return nil, fmt.Errorf("%w: raison_sociale is required", ErrCatalogValidation)
	}
	if _, err := s.catalogRepo.CreateClient(s.db, client); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return client, nil
}

func (s *catalogService) GetClients(page, pageSize int) ([]models.Client, int, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	clients, total, err := s.catalogRepo.GetClients(page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get clients: %w", err)
	}
	return clients, total, nil
}

// CreatePDV generates the immutable outlet code and inserts the PDV,
// regenerating on the rare code collision.
func (s *catalogService) CreatePDV(req CreatePDVRequest) (*models.PointDeVente, error) {
	if !models.IsValidPDVType(req.TypePDV) {
		return nil, fmt.Errorf("%w: invalid type_pdv '%s'", ErrCatalogValidation, req.TypePDV)
	}

	pdv := &models.PointDeVente{
		NoPDV:     req.NoPDV,
		Nom:       req.Nom,
		Region:    req.Region,
		Wilaya:    req.Wilaya,
		Commune:   req.Commune,
		TypePDV:   req.TypePDV,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}

	for attempt := 0; attempt < codeGenAttempts; attempt++ {
		pdv.Code = utils.GeneratePDVCode(req.Wilaya)
		_, err := s.pdvRepo.CreatePDV(s.db, pdv)
		if err == nil {
			return pdv, nil
		}
		if !errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("failed to create pdv: %w", err)
		}
	}
	return nil, ErrPDVCodeConflict
}

func (s *catalogService) GetPDVs(page, pageSize int, wilaya *string) ([]models.PointDeVente, int, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	pdvs, total, err := s.pdvRepo.GetPDVs(page, pageSize, wilaya)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get pdvs: %w", err)
	}
	return pdvs, total, nil
}

func (s *catalogService) CreateConcurrent(concurrent *models.Concurrent) (*models.Concurrent, error) {
	if _, err := s.catalogRepo.GetClientByID(concurrent.ClientID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to validate client for concurrent: %w", err)
	}
	if _, err := s.catalogRepo.CreateConcurrent(s.db, concurrent); err != nil {
		return nil, fmt.Errorf("failed to create concurrent: %w", err)
	}
	return concurrent, nil
}

func (s *catalogService) GetConcurrentsByClient(clientID int64) ([]models.Concurrent, error) {
	concurrents, err := s.catalogRepo.GetConcurrentsByClient(clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get concurrents: %w", err)
	}
	return concurrents, nil
}

func (s *catalogService) CreateProjet(projet *models.Projet) (*models.Projet, error) {
	launch, err := utils.ParseDate(projet.DateLancement)
	if err != nil {
		return nil, fmt.Errorf("%w: date_lancement must be YYYY-MM-DD", ErrCatalogValidation)
	}
	end, err := utils.ParseDate(projet.DateFin)
	if err != nil {
		return nil, fmt.Errorf("%w: date_fin must be YYYY-MM-DD", ErrCatalogValidation)
	}
	if end.Before(launch) {
		return nil, fmt.Errorf("%w: date_fin before date_lancement", ErrCatalogValidation)
	}
	if _, err := s.catalogRepo.GetClientByID(projet.ClientID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to validate client for projet: %w", err)
	}
	if _, err := s.catalogRepo.CreateProjet(s.db, projet); err != nil {
		return nil, fmt.Errorf("failed to create projet: %w", err)
	}
	return projet, nil
}

func (s *catalogService) GetProjetsByClient(clientID int64) ([]models.Projet, error) {
	projets, err := s.catalogRepo.GetProjetsByClient(clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get projets: %w", err)
	}
	return projets, nil
}

func (s *catalogService) CreateClientProduct(produit *models.ProduitClient) (*models.ProduitClient, error) {
	if _, err := s.catalogRepo.GetClientByID(produit.ClientID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to validate client for product: %w", err)
	}
	if _, err := s.productRepo.CreateClientProduct(s.db, produit); err != nil {
		return nil, fmt.Errorf("failed to create client product: %w", err)
	}
	s.categories.Delete(categoryCacheKey(produit.ClientID))
	return produit, nil
}

func (s *catalogService) CreateConcurrentProduct(produit *models.ProduitConcurrent) (*models.ProduitConcurrent, error) {
	if _, err := s.catalogRepo.GetConcurrentByID(produit.ConcurrentID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrConcurrentNotFound
		}
		return nil, fmt.Errorf("failed to validate concurrent for product: %w", err)
	}
	if _, err := s.productRepo.CreateConcurrentProduct(s.db, produit); err != nil {
		return nil, fmt.Errorf("failed to create concurrent product: %w", err)
	}
	return produit, nil
}

func categoryCacheKey(clientID int64) string {
	return fmt.Sprintf("categories:%d", clientID)
}

// GetClientProductCategories returns the distinct categories of one client's
// products, cached briefly.
func (s *catalogService) GetClientProductCategories(clientID int64) ([]string, error) {
	key := categoryCacheKey(clientID)
	if cached, ok := s.categories.Get(key); ok {
		return cached.([]string), nil
	}
	categories, err := s.productRepo.GetClientProductCategories(clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product categories: %w", err)
	}
	s.categories.Set(key, categories, gocache.DefaultExpiration)
	return categories, nil
}
