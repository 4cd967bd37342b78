package services

import (
	"database/sql"
	"errors"
	"fmt"

	"merchandising_backend/internal/models"
	"merchandising_backend/internal/repositories"
)

// --- Realisation DTOs ---

// ClientRealisationItem is one measurement of one client product as posted
// by the merchandiser device.
type ClientRealisationItem struct {
	ProduitID   int64    `json:"produit_id"`
	Disponible  bool     `json:"disponible"`
	Handling    bool     `json:"handling"`
	FacingShare *float64 `json:"facing_share"`
	PrixVente   *float64 `json:"prix_vente"`
	Stock       *int     `json:"stock"`
}

// ConcurrentRealisationItem is the competitor-product counterpart; no
// handling flag.
type ConcurrentRealisationItem struct {
	ProduitID   int64    `json:"produit_id"`
	Disponible  bool     `json:"disponible"`
	FacingShare *float64 `json:"facing_share"`
	PrixVente   *float64 `json:"prix_vente"`
	Stock       *int     `json:"stock"`
}

// RealisationFormData is everything the capture form needs for one mission.
type RealisationFormData struct {
	Mission            *models.Mission            `json:"mission"`
	ClientProducts     []models.ProduitClient     `json:"client_products"`
	ConcurrentProducts []models.ProduitConcurrent `json:"concurrent_products"`
	Categories         []string                   `json:"categories"`
}

// MissionRealisations bundles everything captured during one visit, for the
// supervision mission-detail view.
type MissionRealisations struct {
	Mission     *models.Mission                     `json:"mission"`
	Client      []models.RealisationClientData      `json:"client"`
	Concurrence []models.RealisationConcurrenceData `json:"concurrence"`
}

// formProductLimit caps the candidate product lists on the capture form.
const formProductLimit = 50

// --- RealisationService Interface ---
type RealisationService interface {
	GetRealisationForm(missionID int64, actor models.Actor) (*RealisationFormData, error)
	SubmitClientRealisations(missionID int64, actor models.Actor, items []ClientRealisationItem) (int, error)
	SubmitConcurrentRealisations(missionID int64, actor models.Actor, items []ConcurrentRealisationItem) (int, error)
	GetMissionRealisations(missionID int64) (*MissionRealisations, error)
}

type realisationService struct {
	realisationRepo repositories.RealisationRepository
	missionRepo     repositories.MissionRepository
	productRepo     repositories.ProductRepository
	catalogSvc      CatalogService
	db              *sql.DB
}

// NewRealisationService creates a new instance of RealisationService.
func NewRealisationService(
	rr repositories.RealisationRepository,
	mr repositories.MissionRepository,
	pr repositories.ProductRepository,
	cs CatalogService,
	db *sql.DB,
) RealisationService {
	return &realisationService{
		realisationRepo: rr,
		missionRepo:     mr,
		productRepo:     pr,
		catalogSvc:      cs,
		db:              db,
	}
}

// ownedMission loads a mission (with its PDV joined) and checks the actor is
// its assigned merchandiser.
func (s *realisationService) ownedMission(missionID int64, actor models.Actor) (*models.Mission, error) {
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

// GetRealisationForm returns the mission together with candidate client
// products, their distinct categories and the competitor product list.
func (s *realisationService) GetRealisationForm(missionID int64, actor models.Actor) (*RealisationFormData, error) {
	mission, err := s.ownedMission(missionID, actor)
	if err != nil {
		return nil, err
	}

	form := &RealisationFormData{Mission: mission}

	if mission.ClientID != nil {
		form.ClientProducts, err = s.productRepo.GetClientProducts(*mission.ClientID, formProductLimit)
		if err != nil {
			return nil, fmt.Errorf("failed to load client products: %w", err)
		}
		form.Categories, err = s.catalogSvc.GetClientProductCategories(*mission.ClientID)
		if err != nil {
			return nil, fmt.Errorf("failed to load product categories: %w", err)
		}
	}

	form.ConcurrentProducts, err = s.productRepo.GetConcurrentProducts(formProductLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load concurrent products: %w", err)
	}
	return form, nil
}

// SubmitClientRealisations appends one RealisationClientData row per item
// whose produit_id resolves against the client-product catalog. Unresolved
// ids are skipped silently; the returned count is the only feedback. The
// wilaya/region snapshot is copied from the mission's PDV at write time.
func (s *realisationService) SubmitClientRealisations(missionID int64, actor models.Actor, items []ClientRealisationItem) (int, error) {
	mission, err := s.ownedMission(missionID, actor)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, it := range items {
		if _, err := s.productRepo.GetClientProductByID(it.ProduitID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				continue
			}
			return created, fmt.Errorf("failed to resolve client product %d: %w", it.ProduitID, err)
		}

		rec := &models.RealisationClientData{
			MissionID:   mission.ID,
			PDVID:       mission.PDVID,
			MerchID:     actor.UserID,
			ClientID:    mission.ClientID,
			ProduitID:   it.ProduitID,
			Disponible:  it.Disponible,
			Handling:    it.Handling,
			FacingShare: it.FacingShare,
			PrixVente:   it.PrixVente,
			Stock:       it.Stock,
		}
		if mission.PDV != nil {
			rec.Wilaya = mission.PDV.Wilaya
			rec.Region = mission.PDV.Region
		}

		if _, err := s.realisationRepo.CreateClientRealisation(s.db, rec); err != nil {
			return created, fmt.Errorf("failed to create client realisation: %w", err)
		}
		created++
	}
	return created, nil
}

// GetMissionRealisations returns the mission together with every measurement
// captured against it. No ownership check: this is the supervision view, the
// caller's role is enforced at the route level.
func (s *realisationService) GetMissionRealisations(missionID int64) (*MissionRealisations, error) {
	mission, err := s.missionRepo.GetMissionByID(missionID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMissionNotFound
		}
		return nil, fmt.Errorf("failed to load mission: %w", err)
	}

	clientRows, err := s.realisationRepo.GetClientRealisationsByMission(missionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load client realisations: %w", err)
	}
	concurrenceRows, err := s.realisationRepo.GetConcurrenceRealisationsByMission(missionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load concurrence realisations: %w", err)
	}

	return &MissionRealisations{
		Mission:     mission,
		Client:      clientRows,
		Concurrence: concurrenceRows,
	}, nil
}

// SubmitConcurrentRealisations is the competitor-catalog counterpart of
// SubmitClientRealisations.
func (s *realisationService) SubmitConcurrentRealisations(missionID int64, actor models.Actor, items []ConcurrentRealisationItem) (int, error) {
	mission, err := s.ownedMission(missionID, actor)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, it := range items {
		if _, err := s.productRepo.GetConcurrentProductByID(it.ProduitID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				continue
			}
			return created, fmt.Errorf("failed to resolve concurrent product %d: %w", it.ProduitID, err)
		}

		rec := &models.RealisationConcurrenceData{
			MissionID:           mission.ID,
			PDVID:               mission.PDVID,
			MerchID:             actor.UserID,
			ClientID:            mission.ClientID,
			ProduitConcurrentID: it.ProduitID,
			Disponible:          it.Disponible,
			FacingShare:         it.FacingShare,
			PrixVente:           it.PrixVente,
			Stock:               it.Stock,
		}
		if mission.PDV != nil {
			rec.Wilaya = mission.PDV.Wilaya
			rec.Region = mission.PDV.Region
		}

		if _, err := s.realisationRepo.CreateConcurrenceRealisation(s.db, rec); err != nil {
			return created, fmt.Errorf("failed to create concurrence realisation: %w", err)
		}
		created++
	}
	return created, nil
}
