package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"merchandising_backend/internal/models"
)

// MissionRepository defines the interface for mission database operations.
// GetMissionByID joins the target PDV and the assigned merchandiser so the
// capture services can derive snapshot fields without extra round trips.
type MissionRepository interface {
	CreateMission(executor SQLExecutor, mission *models.Mission) (int64, error)
	GetMissionByID(id int64) (*models.Mission, error)
	GetMissions(filters models.MissionFilters) ([]models.Mission, int, error)
	UpdateMissionState(executor SQLExecutor, mission *models.Mission) error
}

type missionRepository struct {
	db *sql.DB
}

// NewMissionRepository creates a new instance of MissionRepository.
func NewMissionRepository(db *sql.DB) MissionRepository {
	return &missionRepository{db: db}
}

const missionColumns = `m.id, m.code, m.pdv_id, m.date_mission, m.merchandiser_id, m.created_by, m.client_id,
	       m.etat, m.raison_echec, m.begin_time, m.end_time,
	       m.begin_latitude, m.begin_longitude, m.end_latitude, m.end_longitude,
	       m.created_at, m.updated_at,
	       p.id, p.code, p.no_pdv, p.nom, p.region, p.wilaya, p.commune, p.type_pdv, p.latitude, p.longitude,
	       u.id, u.client_id, u.email, u.first_name, u.last_name, u.region, u.wilaya, u.phone_number, u.role, u.is_active`

const missionFrom = `
	FROM missions m
	JOIN points_de_vente p ON p.id = m.pdv_id
	JOIN users u ON u.id = m.merchandiser_id`

// scanMissionRow scans one mission with its joined PDV and merchandiser.
// When isList is true the query also carries a trailing window-function
// total count.
func scanMissionRow(row scanner, isList bool) (*models.Mission, int, error) {
	var m models.Mission
	var pdv models.PointDeVente
	var merch models.User

	var createdBy, clientID, merchClientID sql.NullInt64
	var raisonEchec sql.NullString
	var beginTime, endTime sql.NullTime
	var beginLat, beginLon, endLat, endLon sql.NullFloat64
	var totalCount int

	scanDest := []interface{}{
		&m.ID, &m.Code, &m.PDVID, &m.DateMission, &m.MerchandiserID, &createdBy, &clientID,
		&m.Etat, &raisonEchec, &beginTime, &endTime,
		&beginLat, &beginLon, &endLat, &endLon,
		&m.CreatedAt, &m.UpdatedAt,
		&pdv.ID, &pdv.Code, &pdv.NoPDV, &pdv.Nom, &pdv.Region, &pdv.Wilaya, &pdv.Commune, &pdv.TypePDV, &pdv.Latitude, &pdv.Longitude,
		&merch.ID, &merchClientID, &merch.Email, &merch.FirstName, &merch.LastName, &merch.Region, &merch.Wilaya, &merch.PhoneNumber, &merch.Role, &merch.IsActive,
	}
	if isList {
		scanDest = append(scanDest, &totalCount)
	}

	if err := row.Scan(scanDest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, fmt.Errorf("%w: scanning mission with details: %v", ErrDatabaseError, err)
	}

	if createdBy.Valid {
		m.CreatedBy = &createdBy.Int64
	}
	if clientID.Valid {
		m.ClientID = &clientID.Int64
	}
	if raisonEchec.Valid {
		m.RaisonEchec = &raisonEchec.String
	}
	if beginTime.Valid {
		m.BeginTime = &beginTime.Time
	}
	if endTime.Valid {
		m.EndTime = &endTime.Time
	}
	if beginLat.Valid {
		m.BeginLatitude = &beginLat.Float64
	}
	if beginLon.Valid {
		m.BeginLongitude = &beginLon.Float64
	}
	if endLat.Valid {
		m.EndLatitude = &endLat.Float64
	}
	if endLon.Valid {
		m.EndLongitude = &endLon.Float64
	}
	if merchClientID.Valid {
		merch.ClientID = &merchClientID.Int64
	}

	m.PDV = &pdv
	m.Merchandiser = &merch
	return &m, totalCount, nil
}

func (r *missionRepository) CreateMission(executor SQLExecutor, mission *models.Mission) (int64, error) {
	query := `INSERT INTO missions (code, pdv_id, date_mission, merchandiser_id, created_by, client_id, etat, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	          RETURNING id`
	var id int64
	err := executor.QueryRow(query,
		mission.Code, mission.PDVID, mission.DateMission, mission.MerchandiserID,
		mission.CreatedBy, mission.ClientID, mission.Etat,
	).Scan(&id)
	if err != nil {
		if err = translatePQError(err); errors.Is(err, ErrDuplicateKey) {
			return 0, ErrDuplicateKey
		}
		return 0, fmt.Errorf("%w: creating mission: %v", ErrDatabaseError, err)
	}
	mission.ID = id
	return id, nil
}

func (r *missionRepository) GetMissionByID(id int64) (*models.Mission, error) {
	query := `SELECT ` + missionColumns + missionFrom + ` WHERE m.id = $1`
	mission, _, err := scanMissionRow(r.db.QueryRow(query, id), false)
	return mission, err
}

func (r *missionRepository) GetMissions(filters models.MissionFilters) ([]models.Mission, int, error) {
	// The window-function count rides along with every row, like the other
	// paginated listings in this repo.
	query := `SELECT ` + missionColumns + `, COUNT(*) OVER() AS total_count` + missionFrom

	var conditions []string
	var args []interface{}
	addCondition := func(cond string, val interface{}) {
		args = append(args, val)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if filters.MerchandiserID != nil {
		addCondition("m.merchandiser_id = $%d", *filters.MerchandiserID)
	}
	if filters.ClientID != nil {
		addCondition("m.client_id = $%d", *filters.ClientID)
	}
	if filters.Etat != nil {
		addCondition("m.etat = $%d", *filters.Etat)
	}
	if filters.Date != nil {
		addCondition("m.date_mission = $%d", *filters.Date)
	}

	if len(conditions) > 0 {
		query += " WHERE " + joinConditions(conditions)
	}
	query += fmt.Sprintf(" ORDER BY m.date_mission, m.id LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filters.PageSize, (filters.Page-1)*filters.PageSize)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying missions: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	var missions []models.Mission
	total := 0
	for rows.Next() {
		m, count, err := scanMissionRow(rows, true)
		if err != nil {
			return nil, 0, err
		}
		total = count
		missions = append(missions, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating mission rows: %v", ErrDatabaseError, err)
	}
	return missions, total, nil
}

func (r *missionRepository) UpdateMissionState(executor SQLExecutor, mission *models.Mission) error {
	query := `UPDATE missions
	          SET etat = $1, raison_echec = $2,
	              begin_time = $3, end_time = $4,
	              begin_latitude = $5, begin_longitude = $6,
	              end_latitude = $7, end_longitude = $8,
	              updated_at = NOW()
	          WHERE id = $9`
	result, err := executor.Exec(query,
		mission.Etat, mission.RaisonEchec,
		mission.BeginTime, mission.EndTime,
		mission.BeginLatitude, mission.BeginLongitude,
		mission.EndLatitude, mission.EndLongitude,
		mission.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating mission state: %v", ErrDatabaseError, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: checking mission update: %v", ErrDatabaseError, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func joinConditions(conditions []string) string {
	out := conditions[0]
	for _, c := range conditions[1:] {
		out += " AND " + c
	}
	return out
}
