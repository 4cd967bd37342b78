package models

import "time"

// Photo evidence types: avant = before the merchandiser's intervention,
// apres = after.
const (
	PhotoAvant = "avant"
	PhotoApres = "apres"
)

// IsValidPhotoType reports whether t is avant or apres.
func IsValidPhotoType(t string) bool {
	return t == PhotoAvant || t == PhotoApres
}

// PhotoMission is one captured image tied to a mission. ClientID, PDVID,
// Wilaya and Region are derived from the parent mission and its PDV on every
// save; callers never set them. Timestamp is set once at creation.
type PhotoMission struct {
	ID        int64     `json:"id" db:"id"`
	MissionID int64     `json:"mission_id" db:"mission_id"`
	ClientID  *int64    `json:"client_id,omitempty" db:"client_id"`
	PDVID     *int64    `json:"pdv_id,omitempty" db:"pdv_id"`
	Categorie string    `json:"categorie" db:"categorie"`
	TypePhoto string    `json:"type_photo" db:"type_photo"`
	ImageRef  string    `json:"image_ref" db:"image_ref"`
	ImageURL  string    `json:"image_url" db:"image_url"`
	Wilaya    string    `json:"wilaya" db:"wilaya"`
	Region    string    `json:"region" db:"region"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
}

// PhotoFilters narrows photo listings for one mission.
type PhotoFilters struct {
	TypePhoto *string
	Categorie *string
	Page      int
	PageSize  int
}

// PhotoListItem is the compact shape returned by the photo listing endpoint.
type PhotoListItem struct {
	ID        int64  `json:"id"`
	URL       string `json:"url"`
	Categorie string `json:"cat"`
	TypePhoto string `json:"type"`
}
