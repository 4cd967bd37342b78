package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"merchandising_backend/internal/models"
)

// ProductRepository defines the interface for client and competitor product
// catalogs. The two variants stay separate end to end: realisation capture
// resolves ids against one catalog or the other, never both.
type ProductRepository interface {
	CreateClientProduct(executor SQLExecutor, produit *models.ProduitClient) (int64, error)
	GetClientProductByID(id int64) (*models.ProduitClient, error)
	GetClientProducts(clientID int64, limit int) ([]models.ProduitClient, error)
	GetClientProductCategories(clientID int64) ([]string, error)

	CreateConcurrentProduct(executor SQLExecutor, produit *models.ProduitConcurrent) (int64, error)
	GetConcurrentProductByID(id int64) (*models.ProduitConcurrent, error)
	GetConcurrentProducts(limit int) ([]models.ProduitConcurrent, error)
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository.
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) CreateClientProduct(executor SQLExecutor, produit *models.ProduitClient) (int64, error) {
	query := `INSERT INTO produits_client (client_id, nom, categorie, format, image_url)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id`
	var id int64
	err := executor.QueryRow(query, produit.ClientID, produit.Nom, produit.Categorie, produit.Format, produit.ImageURL).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%w: creating client product: %v", ErrDatabaseError, err)
	}
	produit.ID = id
	return id, nil
}

func scanClientProduct(row scanner) (*models.ProduitClient, error) {
	var p models.ProduitClient
	var imageURL sql.NullString
	err := row.Scan(&p.ID, &p.ClientID, &p.Nom, &p.Categorie, &p.Format, &imageURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning client product: %v", ErrDatabaseError, err)
	}
	if imageURL.Valid {
		p.ImageURL = &imageURL.String
	}
	return &p, nil
}

func (r *productRepository) GetClientProductByID(id int64) (*models.ProduitClient, error) {
	query := `SELECT id, client_id, nom, categorie, format, image_url FROM produits_client WHERE id = $1`
	return scanClientProduct(r.db.QueryRow(query, id))
}

func (r *productRepository) GetClientProducts(clientID int64, limit int) ([]models.ProduitClient, error) {
	query := `SELECT id, client_id, nom, categorie, format, image_url
	          FROM produits_client WHERE client_id = $1 ORDER BY categorie, nom LIMIT $2`
	rows, err := r.db.Query(query, clientID, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: querying client products: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	var produits []models.ProduitClient
	for rows.Next() {
		p, err := scanClientProduct(rows)
		if err != nil {
			return nil, err
		}
		produits = append(produits, *p)
	}
	return produits, rows.Err()
}

func (r *productRepository) GetClientProductCategories(clientID int64) ([]string, error) {
	query := `SELECT DISTINCT categorie FROM produits_client WHERE client_id = $1 ORDER BY categorie`
	rows, err := r.db.Query(query, clientID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying product categories: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("%w: scanning category: %v", ErrDatabaseError, err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *productRepository) CreateConcurrentProduct(executor SQLExecutor, produit *models.ProduitConcurrent) (int64, error) {
	query := `INSERT INTO produits_concurrent (concurrent_id, nom, categorie, format, image_url)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id`
	var id int64
	err := executor.QueryRow(query, produit.ConcurrentID, produit.Nom, produit.Categorie, produit.Format, produit.ImageURL).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%w: creating concurrent product: %v", ErrDatabaseError, err)
	}
	produit.ID = id
	return id, nil
}

func scanConcurrentProduct(row scanner) (*models.ProduitConcurrent, error) {
	var p models.ProduitConcurrent
	var imageURL sql.NullString
	err := row.Scan(&p.ID, &p.ConcurrentID, &p.Nom, &p.Categorie, &p.Format, &imageURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning concurrent product: %v", ErrDatabaseError, err)
	}
	if imageURL.Valid {
		p.ImageURL = &imageURL.String
	}
	return &p, nil
}

func (r *productRepository) GetConcurrentProductByID(id int64) (*models.ProduitConcurrent, error) {
	query := `SELECT id, concurrent_id, nom, categorie, format, image_url FROM produits_concurrent WHERE id = $1`
	return scanConcurrentProduct(r.db.QueryRow(query, id))
}

func (r *productRepository) GetConcurrentProducts(limit int) ([]models.ProduitConcurrent, error) {
	query := `SELECT id, concurrent_id, nom, categorie, format, image_url
	          FROM produits_concurrent ORDER BY categorie, nom LIMIT $1`
	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: querying concurrent products: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	var produits []models.ProduitConcurrent
	for rows.Next() {
		p, err := scanConcurrentProduct(rows)
		if err != nil {
			return nil, err
		}
		produits = append(produits, *p)
	}
	return produits, rows.Err()
}
