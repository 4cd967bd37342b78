package models

import "time"

// Client is the legal entity whose products are tracked in the field.
// AI/RC/NIF/NIS are the Algerian fiscal and registry identifiers.
type Client struct {
	ID            int64     `json:"id" db:"id"`
	RaisonSociale string    `json:"raison_sociale" db:"raison_sociale" binding:"required"`
	AI            string    `json:"ai" db:"ai"`
	RC            string    `json:"rc" db:"rc"`
	NIF           string    `json:"nif" db:"nif"`
	NIS           string    `json:"nis" db:"nis"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// Projet is a client campaign with a planned time window.
type Projet struct {
	ID            int64   `json:"id" db:"id"`
	ClientID      int64   `json:"client_id" db:"client_id" binding:"required"`
	NomProjet     string  `json:"nom_projet" db:"nom_projet" binding:"required"`
	Description   *string `json:"description,omitempty" db:"description"`
	DateLancement string  `json:"date_lancement" db:"date_lancement" binding:"required"` // YYYY-MM-DD
	DateFin       string  `json:"date_fin" db:"date_fin" binding:"required"`             // YYYY-MM-DD
}

// PDV outlet-type classifications.
const (
	PDVTypeEpicerie    = "epicerie"
	PDVTypeSupermarche = "supermarche"
	PDVTypeHypermarche = "hypermarche"
	PDVTypeAutre       = "autre"
)

// IsValidPDVType reports whether t is a known outlet classification.
func IsValidPDVType(t string) bool {
	switch t {
	case PDVTypeEpicerie, PDVTypeSupermarche, PDVTypeHypermarche, PDVTypeAutre:
		return true
	}
	return false
}

// PointDeVente is a physical retail outlet. Code is generated once at
// creation (PDV-<WILAYA5>-<RANDOM6>) and never changes.
type PointDeVente struct {
	ID        int64   `json:"id" db:"id"`
	Code      string  `json:"code" db:"code"`
	NoPDV     string  `json:"no_pdv" db:"no_pdv" binding:"required"`
	Nom       string  `json:"nom" db:"nom" binding:"required"`
	Region    string  `json:"region" db:"region" binding:"required"`
	Wilaya    string  `json:"wilaya" db:"wilaya" binding:"required"`
	Commune   string  `json:"commune" db:"commune" binding:"required"`
	TypePDV   string  `json:"type_pdv" db:"type_pdv" binding:"required"`
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`
}

// Concurrent is a rival brand tracked on behalf of one Client.
type Concurrent struct {
	ID       int64  `json:"id" db:"id"`
	ClientID int64  `json:"client_id" db:"client_id" binding:"required"`
	Nom      string `json:"nom" db:"nom" binding:"required"`
}

// ProduitClient is a product owned by a Client. Kept separate from
// ProduitConcurrent: the capture and reporting paths treat them
// independently.
type ProduitClient struct {
	ID        int64   `json:"id" db:"id"`
	ClientID  int64   `json:"client_id" db:"client_id" binding:"required"`
	Nom       string  `json:"nom" db:"nom" binding:"required"`
	Categorie string  `json:"categorie" db:"categorie" binding:"required"`
	Format    string  `json:"format" db:"format"`
	ImageURL  *string `json:"image_url,omitempty" db:"image_url"`
}

// ProduitConcurrent is a product owned by a Concurrent.
type ProduitConcurrent struct {
	ID           int64   `json:"id" db:"id"`
	ConcurrentID int64   `json:"concurrent_id" db:"concurrent_id" binding:"required"`
	Nom          string  `json:"nom" db:"nom" binding:"required"`
	Categorie    string  `json:"categorie" db:"categorie" binding:"required"`
	Format       string  `json:"format" db:"format"`
	ImageURL     *string `json:"image_url,omitempty" db:"image_url"`
}
