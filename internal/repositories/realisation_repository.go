package repositories

import (
	"database/sql"
	"fmt"

	"merchandising_backend/internal/models"
)

// RealisationRepository defines the interface for per-visit measurement rows.
// Inserts only: repeated submissions append new rows, there is no upsert key
// across mission+product.
type RealisationRepository interface {
	CreateClientRealisation(executor SQLExecutor, rec *models.RealisationClientData) (int64, error)
	CreateConcurrenceRealisation(executor SQLExecutor, rec *models.RealisationConcurrenceData) (int64, error)
	GetClientRealisationsByMission(missionID int64) ([]models.RealisationClientData, error)
	GetConcurrenceRealisationsByMission(missionID int64) ([]models.RealisationConcurrenceData, error)
}

type realisationRepository struct {
	db *sql.DB
}

// NewRealisationRepository creates a new instance of RealisationRepository.
func NewRealisationRepository(db *sql.DB) RealisationRepository {
	return &realisationRepository{db: db}
}

func (r *realisationRepository) CreateClientRealisation(executor SQLExecutor, rec *models.RealisationClientData) (int64, error) {
	query := `INSERT INTO realisations_client
	          (mission_id, pdv_id, merch_id, client_id, produit_id, disponible, handling, facing_share, prix_vente, stock, wilaya, region)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	          RETURNING id, date_realisation`
	err := executor.QueryRow(query,
		rec.MissionID, rec.PDVID, rec.MerchID, rec.ClientID, rec.ProduitID,
		rec.Disponible, rec.Handling, rec.FacingShare, rec.PrixVente, rec.Stock,
		rec.Wilaya, rec.Region,
	).Scan(&rec.ID, &rec.DateRealisation)
	if err != nil {
		return 0, fmt.Errorf("%w: creating client realisation: %v", ErrDatabaseError, err)
	}
	return rec.ID, nil
}

func (r *realisationRepository) CreateConcurrenceRealisation(executor SQLExecutor, rec *models.RealisationConcurrenceData) (int64, error) {
	query := `INSERT INTO realisations_concurrence
	          (mission_id, pdv_id, merch_id, client_id, produit_concurrent_id, disponible, facing_share, prix_vente, stock, wilaya, region)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	          RETURNING id, date_realisation`
	err := executor.QueryRow(query,
		rec.MissionID, rec.PDVID, rec.MerchID, rec.ClientID, rec.ProduitConcurrentID,
		rec.Disponible, rec.FacingShare, rec.PrixVente, rec.Stock,
		rec.Wilaya, rec.Region,
	).Scan(&rec.ID, &rec.DateRealisation)
	if err != nil {
		return 0, fmt.Errorf("%w: creating concurrence realisation: %v", ErrDatabaseError, err)
	}
	return rec.ID, nil
}

func (r *realisationRepository) GetClientRealisationsByMission(missionID int64) ([]models.RealisationClientData, error) {
	query := `SELECT id, mission_id, pdv_id, merch_id, client_id, produit_id, date_realisation,
	                 disponible, handling, facing_share, prix_vente, stock, wilaya, region
	          FROM realisations_client WHERE mission_id = $1 ORDER BY id`
	rows, err := r.db.Query(query, missionID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying client realisations: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	var recs []models.RealisationClientData
	for rows.Next() {
		var rec models.RealisationClientData
		var clientID sql.NullInt64
		var facingShare, prixVente sql.NullFloat64
		var stock sql.NullInt32
		err := rows.Scan(
			&rec.ID, &rec.MissionID, &rec.PDVID, &rec.MerchID, &clientID, &rec.ProduitID, &rec.DateRealisation,
			&rec.Disponible, &rec.Handling, &facingShare, &prixVente, &stock, &rec.Wilaya, &rec.Region,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning client realisation: %v", ErrDatabaseError, err)
		}
		if clientID.Valid {
			rec.ClientID = &clientID.Int64
		}
		if facingShare.Valid {
			rec.FacingShare = &facingShare.Float64
		}
		if prixVente.Valid {
			rec.PrixVente = &prixVente.Float64
		}
		if stock.Valid {
			s := int(stock.Int32)
			rec.Stock = &s
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func (r *realisationRepository) GetConcurrenceRealisationsByMission(missionID int64) ([]models.RealisationConcurrenceData, error) {
	query := `SELECT id, mission_id, pdv_id, merch_id, client_id, produit_concurrent_id, date_realisation,
	                 disponible, facing_share, prix_vente, stock, wilaya, region
	          FROM realisations_concurrence WHERE mission_id = $1 ORDER BY id`
	rows, err := r.db.Query(query, missionID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying concurrence realisations: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	var recs []models.RealisationConcurrenceData
	for rows.Next() {
		var rec models.RealisationConcurrenceData
		var clientID sql.NullInt64
		var facingShare, prixVente sql.NullFloat64
		var stock sql.NullInt32
		err := rows.Scan(
			&rec.ID, &rec.MissionID, &rec.PDVID, &rec.MerchID, &clientID, &rec.ProduitConcurrentID, &rec.DateRealisation,
			&rec.Disponible, &facingShare, &prixVente, &stock, &rec.Wilaya, &rec.Region,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning concurrence realisation: %v", ErrDatabaseError, err)
		}
		if clientID.Valid {
			rec.ClientID = &clientID.Int64
		}
		if facingShare.Valid {
			rec.FacingShare = &facingShare.Float64
		}
		if prixVente.Valid {
			rec.PrixVente = &prixVente.Float64
		}
		if stock.Valid {
			s := int(stock.Int32)
			rec.Stock = &s
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
