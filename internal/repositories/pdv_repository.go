package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"merchandising_backend/internal/models"
)

// PDVRepository defines the interface for point-of-sale database operations.
// PDV codes are unique at the storage layer; CreatePDV surfaces a collision
// as ErrDuplicateKey so the caller can regenerate.
type PDVRepository interface {
	CreatePDV(executor SQLExecutor, pdv *models.PointDeVente) (int64, error)
	GetPDVByID(id int64) (*models.PointDeVente, error)
	GetPDVs(page, pageSize int, wilaya *string) ([]models.PointDeVente, int, error)
}

type pdvRepository struct {
	db *sql.DB
}

// NewPDVRepository creates a new instance of PDVRepository.
func NewPDVRepository(db *sql.DB) PDVRepository {
	return &pdvRepository{db: db}
}

const pdvColumns = `id, code, no_pdv, nom, region, wilaya, commune, type_pdv, latitude, longitude`

func scanPDV(row scanner) (*models.PointDeVente, error) {
	var p models.PointDeVente
	err := row.Scan(&p.ID, &p.Code, &p.NoPDV, &p.Nom, &p.Region, &p.Wilaya, &p.Commune, &p.TypePDV, &p.Latitude, &p.Longitude)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning pdv: %v", ErrDatabaseError, err)
	}
	return &p, nil
}

func (r *pdvRepository) CreatePDV(executor SQLExecutor, pdv *models.PointDeVente) (int64, error) {
	query := `INSERT INTO points_de_vente (code, no_pdv, nom, region, wilaya, commune, type_pdv, latitude, longitude)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING id`
	var id int64
	err := executor.QueryRow(query,
		pdv.Code, pdv.NoPDV, pdv.Nom, pdv.Region, pdv.Wilaya, pdv.Commune, pdv.TypePDV, pdv.Latitude, pdv.Longitude,
	).Scan(&id)
	if err != nil {
		if err = translatePQError(err); errors.Is(err, ErrDuplicateKey) {
			return 0, ErrDuplicateKey
		}
		return 0, fmt.Errorf("%w: creating pdv: %v", ErrDatabaseError, err)
	}
	pdv.ID = id
	return id, nil
}

func (r *pdvRepository) GetPDVByID(id int64) (*models.PointDeVente, error) {
	query := fmt.Sprintf(`SELECT %s FROM points_de_vente WHERE id = $1`, pdvColumns)
	return scanPDV(r.db.QueryRow(query, id))
}

func (r *pdvRepository) GetPDVs(page, pageSize int, wilaya *string) ([]models.PointDeVente, int, error) {
	query := fmt.Sprintf(`SELECT %s, COUNT(*) OVER() AS total_count FROM points_de_vente`, pdvColumns)
	args := []interface{}{}
	if wilaya != nil {
		query += ` WHERE wilaya = $1`
		args = append(args, *wilaya)
	}
	query += fmt.Sprintf(` ORDER BY code LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying pdvs: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	var pdvs []models.PointDeVente
	total := 0
	for rows.Next() {
		var p models.PointDeVente
		if err := rows.Scan(&p.ID, &p.Code, &p.NoPDV, &p.Nom, &p.Region, &p.Wilaya, &p.Commune, &p.TypePDV, &p.Latitude, &p.Longitude, &total); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning pdv row: %v", ErrDatabaseError, err)
		}
		pdvs = append(pdvs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating pdv rows: %v", ErrDatabaseError, err)
	}
	return pdvs, total, nil
}
