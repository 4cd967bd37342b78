package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"merchandising_backend/internal/blobstore"
	"merchandising_backend/internal/models"
	"merchandising_backend/internal/repositories"
	"merchandising_backend/pkg/utils"
)

// --- Custom Service Errors for Photos ---
var (
	ErrPhotoUploadArgs = errors.New("image, categorie and photo_type (avant|apres) are required")
	ErrPhotoUpload     = errors.New("photo upload failed")
)

// defaultPhotoPageSize matches the capture front end's preload batch.
const defaultPhotoPageSize = 50

// UploadPhotoRequest carries the multipart fields of a photo upload.
type UploadPhotoRequest struct {
	Filename    string
	ContentType string
	Image       io.Reader
	Categorie   string
	TypePhoto   string
}

// UploadPhotoResult is returned to the device for immediate display.
type UploadPhotoResult struct {
	PhotoID   int64
	URL       string
	Categorie string
	TypePhoto string
}

// PhotoPage is one page of a mission's photos.
type PhotoPage struct {
	Items []models.PhotoListItem
	Page  int
	Pages int
	Count int
}

// --- PhotoService Interface ---
type PhotoService interface {
	UploadPhoto(ctx context.Context, missionID int64, actor models.Actor, req UploadPhotoRequest) (*UploadPhotoResult, error)
	ListPhotos(missionID int64, actor models.Actor, filters models.PhotoFilters) (*PhotoPage, error)
}

type photoService struct {
	photoRepo   repositories.PhotoRepository
	missionRepo repositories.MissionRepository
	blobs       blobstore.Store
	db          *sql.DB
}

// NewPhotoService creates a new instance of PhotoService.
func NewPhotoService(
	phr repositories.PhotoRepository,
	mr repositories.MissionRepository,
	blobs blobstore.Store,
	db *sql.DB,
) PhotoService {
	return &photoService{
		photoRepo:   phr,
		missionRepo: mr,
		blobs:       blobs,
		db:          db,
	}
}

func (s *photoService) ownedMission(missionID int64, actor models.Actor) (*models.Mission, error) {
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

// UploadPhoto stores the image bytes first, then records the PhotoMission
// row. A blob-store failure aborts before any row is written, so no orphan
// metadata can exist. Client, PDV, wilaya and region are derived from the
// mission; the caller never sets them.
func (s *photoService) UploadPhoto(ctx context.Context, missionID int64, actor models.Actor, req UploadPhotoRequest) (*UploadPhotoResult, error) {
	mission, err := s.ownedMission(missionID, actor)
	if err != nil {
		return nil, err
	}

	if req.Image == nil || utils.IsEmpty(req.Categorie) || !models.IsValidPhotoType(req.TypePhoto) {
		return nil, ErrPhotoUploadArgs
	}

	ref, url, err := s.blobs.Put(ctx, req.Filename, req.ContentType, req.Image)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPhotoUpload, err)
	}

	photo := &models.PhotoMission{
		MissionID: mission.ID,
		ClientID:  mission.ClientID,
		PDVID:     &mission.PDVID,
		Categorie: req.Categorie,
		TypePhoto: req.TypePhoto,
		ImageRef:  ref,
		ImageURL:  url,
	}
	if mission.PDV != nil {
		photo.Wilaya = mission.PDV.Wilaya
		photo.Region = mission.PDV.Region
	}

	if _, err := s.photoRepo.CreatePhoto(s.db, photo); err != nil {
		return nil, fmt.Errorf("failed to record photo: %w", err)
	}

	return &UploadPhotoResult{
		PhotoID:   photo.ID,
		URL:       photo.ImageURL,
		Categorie: photo.Categorie,
		TypePhoto: photo.TypePhoto,
	}, nil
}

// ListPhotos returns one page of the mission's photos, newest first,
// optionally filtered by evidence type and category.
func (s *photoService) ListPhotos(missionID int64, actor models.Actor, filters models.PhotoFilters) (*PhotoPage, error) {
	if _, err := s.ownedMission(missionID, actor); err != nil {
		return nil, err
	}

	if filters.Page <= 0 {
		filters.Page = 1
	}
	if filters.PageSize <= 0 {
		filters.PageSize = defaultPhotoPageSize
	}
	if filters.TypePhoto != nil && !models.IsValidPhotoType(*filters.TypePhoto) {
		filters.TypePhoto = nil
	}

	photos, total, err := s.photoRepo.GetPhotosByMission(missionID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}

	items := make([]models.PhotoListItem, 0, len(photos))
	for _, p := range photos {
		items = append(items, models.PhotoListItem{
			ID:        p.ID,
			URL:       p.ImageURL,
			Categorie: p.Categorie,
			TypePhoto: p.TypePhoto,
		})
	}

	pages := total / filters.PageSize
	if total%filters.PageSize != 0 {
		pages++
	}
	if pages == 0 {
		pages = 1
	}

	return &PhotoPage{Items: items, Page: filters.Page, Pages: pages, Count: total}, nil
}
