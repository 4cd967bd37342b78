package models

import "time"

// Mission lifecycle states. Transitions are monotonic:
// planned -> in_progress -> done | failed. A mission may also be failed
// directly from planned (merchandiser arrived, PDV closed).
const (
	MissionPlanned    = "planned"
	MissionInProgress = "in_progress"
	MissionDone       = "done"
	MissionFailed     = "failed"
)

// Failure reasons for missions in the failed state.
const (
	FailReasonPDVClosed = "pdv_closed"
	FailReasonOther     = "other"
)

// IsValidFailReason reports whether r is a known failure reason.
func IsValidFailReason(r string) bool {
	return r == FailReasonPDVClosed || r == FailReasonOther
}

// Mission is one scheduled merchandiser visit to one PDV.
type Mission struct {
	ID             int64      `json:"id" db:"id"`
	Code           string     `json:"code" db:"code"`
	PDVID          int64      `json:"pdv_id" db:"pdv_id"`
	DateMission    time.Time  `json:"date_mission" db:"date_mission"`
	MerchandiserID int64      `json:"merchandiser_id" db:"merchandiser_id"`
	CreatedBy      *int64     `json:"created_by,omitempty" db:"created_by"`
	ClientID       *int64     `json:"client_id,omitempty" db:"client_id"`
	Etat           string     `json:"etat" db:"etat"`
	RaisonEchec    *string    `json:"raison_echec,omitempty" db:"raison_echec"`
	BeginTime      *time.Time `json:"begin_time,omitempty" db:"begin_time"`
	EndTime        *time.Time `json:"end_time,omitempty" db:"end_time"`
	BeginLatitude  *float64   `json:"begin_latitude,omitempty" db:"begin_latitude"`
	BeginLongitude *float64   `json:"begin_longitude,omitempty" db:"begin_longitude"`
	EndLatitude    *float64   `json:"end_latitude,omitempty" db:"end_latitude"`
	EndLongitude   *float64   `json:"end_longitude,omitempty" db:"end_longitude"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`

	// Joined details, populated by the repository on single-mission reads.
	PDV          *PointDeVente `json:"pdv,omitempty"`
	Merchandiser *User         `json:"merchandiser,omitempty"`
}

// MissionFilters narrows mission listings.
type MissionFilters struct {
	MerchandiserID *int64
	ClientID       *int64
	Etat           *string
	Date           *time.Time
	Page           int
	PageSize       int
}
