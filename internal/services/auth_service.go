package services

import (
	"database/sql"
	"errors"
	"fmt"

	"merchandising_backend/internal/models"
	"merchandising_backend/internal/repositories"
	"merchandising_backend/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

// --- Custom Service Errors for Auth ---
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserValidation     = errors.New("user data validation error")
)

// --- Auth DTOs ---
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         *models.User `json:"user"`
}

type CreateUserRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	Region      string `json:"region"`
	Wilaya      string `json:"wilaya"`
	PhoneNumber string `json:"phone_number"`
	Role        string `json:"role" binding:"required"`
	ClientID    *int64 `json:"client_id"`
}

// --- AuthService Interface ---
type AuthService interface {
	Login(req LoginRequest) (*LoginResponse, error)
	RefreshToken(refreshToken string) (*LoginResponse, error)
	GetCurrentUser(actor models.Actor) (*models.User, error)
	CreateUser(req CreateUserRequest) (*models.User, error)
}

type authService struct {
	userRepo repositories.UserRepository
	db       *sql.DB
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(ur repositories.UserRepository, db *sql.DB) AuthService {
	return &authService{userRepo: ur, db: db}
}

func (s *authService) issueTokens(user *models.User) (*LoginResponse, error) {
	access, err := utils.GenerateAccessToken(user.ID, user.Email, user.Role, user.ClientID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refresh, err := utils.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return &LoginResponse{AccessToken: access, RefreshToken: refresh, User: user}, nil
}

func (s *authService) Login(req LoginRequest) (*LoginResponse, error) {
	user, err := s.userRepo.GetUserByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issueTokens(user)
}

func (s *authService) RefreshToken(refreshToken string) (*LoginResponse, error) {
	claims, err := utils.ValidateToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	user, err := s.userRepo.GetUserByID(claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}
	return s.issueTokens(user)
}

func (s *authService) GetCurrentUser(actor models.Actor) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(actor.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return user, nil
}

func (s *authService) CreateUser(req CreateUserRequest) (*models.User, error) {
	if !models.IsValidRole(req.Role) {
		return nil, fmt.Errorf("%w: invalid role '%s'", ErrUserValidation, req.Role)
	}
	if len(req.Password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrUserValidation)
	}
	if req.Role == models.RoleClient && req.ClientID == nil {
		return nil, fmt.Errorf("%w: client users require a client_id", ErrUserValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ClientID:     req.ClientID,
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Region:       req.Region,
		Wilaya:       req.Wilaya,
		PhoneNumber:  req.PhoneNumber,
		Role:         req.Role,
		IsActive:     true,
	}

	if _, err := s.userRepo.CreateUser(s.db, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}
