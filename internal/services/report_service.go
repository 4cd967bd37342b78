package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"merchandising_backend/internal/models"
	"merchandising_backend/internal/repositories"

	gocache "github.com/patrickmn/go-cache"
)

// ErrNoClientContext is returned when a report is requested by an actor with
// no client linkage.
var ErrNoClientContext = errors.New("actor has no client context")

// ReportService builds the client-facing evidence report. Read-only: it has
// no write path into any table.
type ReportService interface {
	BuildClientReport(actor models.Actor, filters models.ReportFilters) (*models.ClientReport, error)
}

type reportService struct {
	photoRepo repositories.PhotoRepository
	cache     *gocache.Cache
}

// reportCacheTTL bounds how stale an unfiltered dashboard may be. Filtered
// requests always hit the database.
const reportCacheTTL = 30 * time.Second

// NewReportService creates a new instance of ReportService.
func NewReportService(phr repositories.PhotoRepository) ReportService {
	return &reportService{
		photoRepo: phr,
		cache:     gocache.New(reportCacheTTL, 2*reportCacheTTL),
	}
}

// BuildClientReport groups the client's photos by (PDV identity, mission
// date), not by mission, so two missions to the same PDV on the same date
// merge into one entry. Within each entry, photo URLs are nested by category
// and then by evidence type; both avant and apres buckets are always
// present. Rows whose PDV reference is gone are excluded from grouping but
// still feed the filter-option lists.
func (s *reportService) BuildClientReport(actor models.Actor, filters models.ReportFilters) (*models.ClientReport, error) {
	if actor.ClientID == nil {
		return nil, ErrNoClientContext
	}

	unfiltered := filters.Wilaya == nil && filters.Region == nil && filters.PDVSearch == nil
	cacheKey := fmt.Sprintf("client-report:%d", *actor.ClientID)
	if unfiltered {
		if cached, ok := s.cache.Get(cacheKey); ok {
			return cached.(*models.ClientReport), nil
		}
	}

	rows, err := s.photoRepo.GetClientPhotoRows(*actor.ClientID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to load client photo rows: %w", err)
	}

	report := aggregate(rows)

	if unfiltered {
		s.cache.Set(cacheKey, report, gocache.DefaultExpiration)
	}
	return report, nil
}

type groupKey struct {
	pdvID int64
	date  string
}

func aggregate(rows []models.ClientPhotoRow) *models.ClientReport {
	groups := make(map[groupKey]*models.ReportGroup)
	var order []groupKey
	wilayas := make(map[string]struct{})
	regions := make(map[string]struct{})

	for _, row := range rows {
		if row.Wilaya != "" {
			wilayas[row.Wilaya] = struct{}{}
		}
		if row.Region != "" {
			regions[row.Region] = struct{}{}
		}

		if row.PDVID == nil {
			continue
		}

		key := groupKey{pdvID: *row.PDVID, date: row.DateMission.Format("2006-01-02")}
		group, ok := groups[key]
		if !ok {
			group = &models.ReportGroup{
				PDV:        row.PDVNom,
				Wilaya:     row.Wilaya,
				Region:     row.Region,
				Merch:      row.MerchName,
				Date:       row.DateMission.Format("02/01/2006"),
				Categories: make(map[string]map[string][]string),
			}
			groups[key] = group
			order = append(order, key)
		}

		buckets, ok := group.Categories[row.Categorie]
		if !ok {
			buckets = map[string][]string{
				models.PhotoAvant: {},
				models.PhotoApres: {},
			}
			group.Categories[row.Categorie] = buckets
		}
		buckets[row.TypePhoto] = append(buckets[row.TypePhoto], row.ImageURL)
	}

	report := &models.ClientReport{
		Realisations:  make([]models.ReportGroup, 0, len(order)),
		FilterWilayas: sortedKeys(wilayas),
		FilterRegions: sortedKeys(regions),
	}
	for _, key := range order {
		report.Realisations = append(report.Realisations, *groups[key])
	}
	return report
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
