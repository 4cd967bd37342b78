package repositories

import (
	"database/sql"
	"fmt"

	"merchandising_backend/internal/models"
)

// PhotoRepository defines the interface for photo evidence rows.
type PhotoRepository interface {
	CreatePhoto(executor SQLExecutor, photo *models.PhotoMission) (int64, error)
	GetPhotosByMission(missionID int64, filters models.PhotoFilters) ([]models.PhotoMission, int, error)
	GetClientPhotoRows(clientID int64, filters models.ReportFilters) ([]models.ClientPhotoRow, error)
}

type photoRepository struct {
	db *sql.DB
}

// NewPhotoRepository creates a new instance of PhotoRepository.
func NewPhotoRepository(db *sql.DB) PhotoRepository {
	return &photoRepository{db: db}
}

func (r *photoRepository) CreatePhoto(executor SQLExecutor, photo *models.PhotoMission) (int64, error) {
	query := `INSERT INTO photos_mission
	          (mission_id, client_id, pdv_id, categorie, type_photo, image_ref, image_url, wilaya, region)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING id, "timestamp"`
	err := executor.QueryRow(query,
		photo.MissionID, photo.ClientID, photo.PDVID, photo.Categorie, photo.TypePhoto,
		photo.ImageRef, photo.ImageURL, photo.Wilaya, photo.Region,
	).Scan(&photo.ID, &photo.Timestamp)
	if err != nil {
		return 0, fmt.Errorf("%w: creating photo: %v", ErrDatabaseError, err)
	}
	return photo.ID, nil
}

// GetPhotosByMission returns one page of a mission's photos, newest first,
// with the total matching count.
func (r *photoRepository) GetPhotosByMission(missionID int64, filters models.PhotoFilters) ([]models.PhotoMission, int, error) {
	query := `SELECT id, mission_id, client_id, pdv_id, categorie, type_photo, image_ref, image_url, wilaya, region, "timestamp",
	                 COUNT(*) OVER() AS total_count
	          FROM photos_mission WHERE mission_id = $1`
	args := []interface{}{missionID}

	if filters.TypePhoto != nil {
		args = append(args, *filters.TypePhoto)
		query += fmt.Sprintf(" AND type_photo = $%d", len(args))
	}
	if filters.Categorie != nil {
		args = append(args, *filters.Categorie)
		query += fmt.Sprintf(" AND categorie = $%d", len(args))
	}

	query += fmt.Sprintf(" ORDER BY id DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filters.PageSize, (filters.Page-1)*filters.PageSize)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying photos: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	var photos []models.PhotoMission
	total := 0
	for rows.Next() {
		var p models.PhotoMission
		var clientID, pdvID sql.NullInt64
		err := rows.Scan(
			&p.ID, &p.MissionID, &clientID, &pdvID, &p.Categorie, &p.TypePhoto,
			&p.ImageRef, &p.ImageURL, &p.Wilaya, &p.Region, &p.Timestamp, &total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: scanning photo row: %v", ErrDatabaseError, err)
		}
		if clientID.Valid {
			p.ClientID = &clientID.Int64
		}
		if pdvID.Valid {
			p.PDVID = &pdvID.Int64
		}
		photos = append(photos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating photo rows: %v", ErrDatabaseError, err)
	}
	return photos, total, nil
}

// GetClientPhotoRows returns every photo owned by one client joined with its
// mission date, PDV display name and merchandiser name, ordered by capture
// timestamp descending. The PDV join is LEFT: rows whose PDV is gone still
// come back (the aggregator skips them) so the filter-option lists stay
// consistent with the raw result set.
func (r *photoRepository) GetClientPhotoRows(clientID int64, filters models.ReportFilters) ([]models.ClientPhotoRow, error) {
	query := `SELECT ph.id, ph.image_url, ph.categorie, ph.type_photo, ph.wilaya, ph.region, ph."timestamp",
	                 ph.pdv_id, COALESCE(p.nom, ''), m.date_mission,
	                 COALESCE(u.first_name || ' ' || u.last_name, '')
	          FROM photos_mission ph
	          JOIN missions m ON m.id = ph.mission_id
	          LEFT JOIN points_de_vente p ON p.id = ph.pdv_id
	          LEFT JOIN users u ON u.id = m.merchandiser_id
	          WHERE ph.client_id = $1`
	args := []interface{}{clientID}

	if filters.Wilaya != nil {
		args = append(args, *filters.Wilaya)
		query += fmt.Sprintf(" AND ph.wilaya = $%d", len(args))
	}
	if filters.Region != nil {
		args = append(args, *filters.Region)
		query += fmt.Sprintf(" AND ph.region = $%d", len(args))
	}
	if filters.PDVSearch != nil {
		args = append(args, "%"+*filters.PDVSearch+"%")
		query += fmt.Sprintf(" AND p.nom ILIKE $%d", len(args))
	}

	query += ` ORDER BY ph."timestamp" DESC`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying client photo rows: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	var result []models.ClientPhotoRow
	for rows.Next() {
		var row models.ClientPhotoRow
		var pdvID sql.NullInt64
		err := rows.Scan(
			&row.PhotoID, &row.ImageURL, &row.Categorie, &row.TypePhoto,
			&row.Wilaya, &row.Region, &row.Timestamp,
			&pdvID, &row.PDVNom, &row.DateMission, &row.MerchName,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning client photo row: %v", ErrDatabaseError, err)
		}
		if pdvID.Valid {
			row.PDVID = &pdvID.Int64
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
