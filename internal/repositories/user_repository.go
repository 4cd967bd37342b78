package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"merchandising_backend/internal/models"
)

// UserRepository defines the interface for user account database operations.
type UserRepository interface {
	CreateUser(executor SQLExecutor, user *models.User) (int64, error)
	GetUserByID(id int64) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
}

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, client_id, email, password_hash, first_name, last_name, region, wilaya, phone_number, role, is_active, created_at, updated_at`

func scanUser(row scanner) (*models.User, error) {
	var u models.User
	var clientID sql.NullInt64
	err := row.Scan(
		&u.ID, &clientID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.Region, &u.Wilaya, &u.PhoneNumber, &u.Role, &u.IsActive,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning user: %v", ErrDatabaseError, err)
	}
	if clientID.Valid {
		u.ClientID = &clientID.Int64
	}
	return &u, nil
}

func (r *userRepository) CreateUser(executor SQLExecutor, user *models.User) (int64, error) {
	query := `INSERT INTO users (client_id, email, password_hash, first_name, last_name, region, wilaya, phone_number, role, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
	          RETURNING id`
	var id int64
	err := executor.QueryRow(query,
		user.ClientID, user.Email, user.PasswordHash, user.FirstName, user.LastName,
		user.Region, user.Wilaya, user.PhoneNumber, user.Role, user.IsActive,
	).Scan(&id)
	if err != nil {
		if err = translatePQError(err); errors.Is(err, ErrDuplicateKey) {
			return 0, ErrDuplicateKey
		}
		return 0, fmt.Errorf("%w: creating user: %v", ErrDatabaseError, err)
	}
	user.ID = id
	return id, nil
}

func (r *userRepository) GetUserByID(id int64) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)
	return scanUser(r.db.QueryRow(query, id))
}

func (r *userRepository) GetUserByEmail(email string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns)
	return scanUser(r.db.QueryRow(query, email))
}
