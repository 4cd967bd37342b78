package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"merchandising_backend/internal/models"
)

// CatalogRepository defines the interface for static reference data: clients,
// projets and concurrents. These rows are created by operators and never
// mutated by the mission workflows.
type CatalogRepository interface {
	CreateClient(executor SQLExecutor, client *models.Client) (int64, error)
	GetClientByID(id int64) (*models.Client, error)
	GetClients(page, pageSize int) ([]models.Client, int, error)

	CreateProjet(executor SQLExecutor, projet *models.Projet) (int64, error)
	GetProjetsByClient(clientID int64) ([]models.Projet, error)

	CreateConcurrent(executor SQLExecutor, concurrent *models.Concurrent) (int64, error)
	GetConcurrentByID(id int64) (*models.Concurrent, error)
	GetConcurrentsByClient(clientID int64) ([]models.Concurrent, error)
}

type catalogRepository struct {
	db *sql.DB
}

// NewCatalogRepository creates a new instance of CatalogRepository.
func NewCatalogRepository(db *sql.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) CreateClient(executor SQLExecutor, client *models.Client) (int64, error) {
	query := `INSERT INTO clients (raison_sociale, ai, rc, nif, nis, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	          RETURNING id`
	var id int64
	err := executor.QueryRow(query, client.RaisonSociale, client.AI, client.RC, client.NIF, client.NIS).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%w: creating client: %v", ErrDatabaseError, err)
	}
	client.ID = id
	return id, nil
}

func (r *catalogRepository) GetClientByID(id int64) (*models.Client, error) {
	query := `SELECT id, raison_sociale, ai, rc, nif, nis, created_at, updated_at FROM clients WHERE id = $1`
	var c models.Client
	err := r.db.QueryRow(query, id).Scan(&c.ID, &c.RaisonSociale, &c.AI, &c.RC, &c.NIF, &c.NIS, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning client: %v", ErrDatabaseError, err)
	}
	return &c, nil
}

func (r *catalogRepository) GetClients(page, pageSize int) ([]models.Client, int, error) {
	query := `SELECT id, raison_sociale, ai, rc, nif, nis, created_at, updated_at,
	                 COUNT(*) OVER() AS total_count
	          FROM clients ORDER BY raison_sociale
	          LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(query, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying clients: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	var clients []models.Client
	total := 0
	for rows.Next() {
		var c models.Client
		if err := rows.Scan(&c.ID, &c.RaisonSociale, &c.AI, &c.RC, &c.NIF, &c.NIS, &c.CreatedAt, &c.UpdatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning client row: %v", ErrDatabaseError, err)
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating client rows: %v", ErrDatabaseError, err)
	}
	return clients, total, nil
}

func (r *catalogRepository) CreateProjet(executor SQLExecutor, projet *models.Projet) (int64, error) {
	query := `INSERT INTO projets (client_id, nom_projet, description, date_lancement, date_fin)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id`
	var id int64
	err := executor.QueryRow(query, projet.ClientID, projet.NomProjet, projet.Description, projet.DateLancement, projet.DateFin).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%w: creating projet: %v", ErrDatabaseError, err)
	}
	projet.ID = id
	return id, nil
}

func (r *catalogRepository) GetProjetsByClient(clientID int64) ([]models.Projet, error) {
	query := `SELECT id, client_id, nom_projet, description, to_char(date_lancement, 'YYYY-MM-DD'), to_char(date_fin, 'YYYY-MM-DD')
	          FROM projets WHERE client_id = $1 ORDER BY date_lancement DESC`
	rows, err := r.db.Query(query, clientID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying projets: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	var projets []models.Projet
	for rows.Next() {
		var p models.Projet
		var desc sql.NullString
		if err := rows.Scan(&p.ID, &p.ClientID, &p.NomProjet, &desc, &p.DateLancement, &p.DateFin); err != nil {
			return nil, fmt.Errorf("%w: scanning projet row: %v", ErrDatabaseError, err)
		}
		if desc.Valid {
			p.Description = &desc.String
		}
		projets = append(projets, p)
	}
	return projets, rows.Err()
}

func (r *catalogRepository) CreateConcurrent(executor SQLExecutor, concurrent *models.Concurrent) (int64, error) {
	query := `INSERT INTO concurrents (client_id, nom) VALUES ($1, $2) RETURNING id`
	var id int64
	err := executor.QueryRow(query, concurrent.ClientID, concurrent.Nom).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%w: creating concurrent: %v", ErrDatabaseError, err)
	}
	concurrent.ID = id
	return id, nil
}

func (r *catalogRepository) GetConcurrentByID(id int64) (*models.Concurrent, error) {
	query := `SELECT id, client_id, nom FROM concurrents WHERE id = $1`
	var c models.Concurrent
	err := r.db.QueryRow(query, id).Scan(&c.ID, &c.ClientID, &c.Nom)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning concurrent: %v", ErrDatabaseError, err)
	}
	return &c, nil
}

func (r *catalogRepository) GetConcurrentsByClient(clientID int64) ([]models.Concurrent, error) {
	query := `SELECT id, client_id, nom FROM concurrents WHERE client_id = $1 ORDER BY nom`
	rows, err := r.db.Query(query, clientID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying concurrents: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	var concurrents []models.Concurrent
	for rows.Next() {
		var c models.Concurrent
		if err := rows.Scan(&c.ID, &c.ClientID, &c.Nom); err != nil {
			return nil, fmt.Errorf("%w: scanning concurrent row: %v", ErrDatabaseError, err)
		}
		concurrents = append(concurrents, c)
	}
	return concurrents, rows.Err()
}
