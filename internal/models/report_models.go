package models

import "time"

// ClientPhotoRow is one photo joined with the mission and PDV context the
// report aggregator needs. Produced by the photo repository for a single
// client, ordered by capture timestamp descending.
type ClientPhotoRow struct {
	PhotoID     int64
	ImageURL    string
	Categorie   string
	TypePhoto   string
	Wilaya      string
	Region      string
	Timestamp   time.Time
	PDVID       *int64
	PDVNom      string
	DateMission time.Time
	MerchName   string
}

// ReportFilters narrows the client report. PDVSearch is a case-insensitive
// substring match on the PDV display name.
type ReportFilters struct {
	Wilaya    *string
	Region    *string
	PDVSearch *string
}

// ReportGroup is one report entry: all evidence captured at one PDV on one
// mission date, regardless of how many missions produced it.
type ReportGroup struct {
	PDV        string                         `json:"pdv"`
	Wilaya     string                         `json:"wilaya"`
	Region     string                         `json:"region"`
	Merch      string                         `json:"merch"`
	Date       string                         `json:"date"` // DD/MM/YYYY
	Categories map[string]map[string][]string `json:"categories"`
}

// ClientReport is the full client dashboard payload: grouped evidence plus
// the distinct wilaya/region values present, for filter dropdowns.
type ClientReport struct {
	Realisations  []ReportGroup `json:"realisations"`
	FilterWilayas []string      `json:"filter_wilayas"`
	FilterRegions []string      `json:"filter_regions"`
}
