package models

import "time"

// RealisationClientData is one measurement of one client product during one
// visit. Wilaya/Region are copied from the PDV at write time so client-side
// filtering never needs a join; they are a snapshot, not a live reference.
type RealisationClientData struct {
	ID              int64     `json:"id" db:"id"`
	MissionID       int64     `json:"mission_id" db:"mission_id"`
	PDVID           int64     `json:"pdv_id" db:"pdv_id"`
	MerchID         int64     `json:"merch_id" db:"merch_id"`
	ClientID        *int64    `json:"client_id,omitempty" db:"client_id"`
	ProduitID       int64     `json:"produit_id" db:"produit_id"`
	DateRealisation time.Time `json:"date_realisation" db:"date_realisation"`
	Disponible      bool      `json:"disponible" db:"disponible"`
	Handling        bool      `json:"handling" db:"handling"`
	FacingShare     *float64  `json:"facing_share,omitempty" db:"facing_share"`
	PrixVente       *float64  `json:"prix_vente,omitempty" db:"prix_vente"`
	Stock           *int      `json:"stock,omitempty" db:"stock"`
	Wilaya          string    `json:"wilaya" db:"wilaya"`
	Region          string    `json:"region" db:"region"`
}

// RealisationConcurrenceData is the competitor-product counterpart. No
// handling flag: shelf presentation is only judged for the client's own
// products.
type RealisationConcurrenceData struct {
	ID                  int64     `json:"id" db:"id"`
	MissionID           int64     `json:"mission_id" db:"mission_id"`
	PDVID               int64     `json:"pdv_id" db:"pdv_id"`
	MerchID             int64     `json:"merch_id" db:"merch_id"`
	ClientID            *int64    `json:"client_id,omitempty" db:"client_id"`
	ProduitConcurrentID int64     `json:"produit_concurrent_id" db:"produit_concurrent_id"`
	DateRealisation     time.Time `json:"date_realisation" db:"date_realisation"`
	Disponible          bool      `json:"disponible" db:"disponible"`
	FacingShare         *float64  `json:"facing_share,omitempty" db:"facing_share"`
	PrixVente           *float64  `json:"prix_vente,omitempty" db:"prix_vente"`
	Stock               *int      `json:"stock,omitempty" db:"stock"`
	Wilaya              string    `json:"wilaya" db:"wilaya"`
	Region              string    `json:"region" db:"region"`
}
