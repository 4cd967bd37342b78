package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"merchandising_backend/internal/models"
	"merchandising_backend/internal/repositories"
)

// In-memory fakes for the repository interfaces. They reproduce only the
// behavior the services rely on: id assignment, unique code enforcement and
// the PDV/merchandiser join on single-mission reads.

type fakeUserRepo struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*models.User), nextID: 1}
}

func (f *fakeUserRepo) add(u models.User) *models.User {
	u.ID = f.nextID
	f.nextID++
	f.users[u.ID] = &u
	return &u
}

func (f *fakeUserRepo) CreateUser(_ repositories.SQLExecutor, user *models.User) (int64, error) {
	for _, u := range f.users {
		if u.Email == user.Email {
			return 0, repositories.ErrDuplicateKey
		}
	}
	created := f.add(*user)
	user.ID = created.ID
	return user.ID, nil
}

func (f *fakeUserRepo) GetUserByID(id int64) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetUserByEmail(email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

type fakePDVRepo struct {
	pdvs   map[int64]*models.PointDeVente
	nextID int64
	// codes seen, to emulate the unique constraint
	codes map[string]bool
	// failWithDuplicate forces the next N creates to report a collision
	failWithDuplicate int
}

func newFakePDVRepo() *fakePDVRepo {
	return &fakePDVRepo{pdvs: make(map[int64]*models.PointDeVente), nextID: 1, codes: make(map[string]bool)}
}

func (f *fakePDVRepo) add(p models.PointDeVente) *models.PointDeVente {
	p.ID = f.nextID
	f.nextID++
	f.pdvs[p.ID] = &p
	f.codes[p.Code] = true
	return &p
}

func (f *fakePDVRepo) CreatePDV(_ repositories.SQLExecutor, pdv *models.PointDeVente) (int64, error) {
	if f.failWithDuplicate > 0 {
		f.failWithDuplicate--
		return 0, repositories.ErrDuplicateKey
	}
	if f.codes[pdv.Code] {
		return 0, repositories.ErrDuplicateKey
	}
	created := f.add(*pdv)
	pdv.ID = created.ID
	return pdv.ID, nil
}

func (f *fakePDVRepo) GetPDVByID(id int64) (*models.PointDeVente, error) {
	p, ok := f.pdvs[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePDVRepo) GetPDVs(page, pageSize int, wilaya *string) ([]models.PointDeVente, int, error) {
	var out []models.PointDeVente
	for _, p := range f.pdvs {
		if wilaya != nil && p.Wilaya != *wilaya {
			continue
		}
		out = append(out, *p)
	}
	return out, len(out), nil
}

type fakeMissionRepo struct {
	missions map[int64]*models.Mission
	nextID   int64
	codes    map[string]bool
	pdvRepo  *fakePDVRepo
	userRepo *fakeUserRepo
}

func newFakeMissionRepo(pdvRepo *fakePDVRepo, userRepo *fakeUserRepo) *fakeMissionRepo {
	return &fakeMissionRepo{
		missions: make(map[int64]*models.Mission),
		nextID:   1,
		codes:    make(map[string]bool),
		pdvRepo:  pdvRepo,
		userRepo: userRepo,
	}
}

func (f *fakeMissionRepo) CreateMission(_ repositories.SQLExecutor, mission *models.Mission) (int64, error) {
	if f.codes[mission.Code] {
		return 0, repositories.ErrDuplicateKey
	}
	cp := *mission
	cp.ID = f.nextID
	f.nextID++
	f.missions[cp.ID] = &cp
	f.codes[cp.Code] = true
	mission.ID = cp.ID
	return cp.ID, nil
}

func (f *fakeMissionRepo) GetMissionByID(id int64) (*models.Mission, error) {
	m, ok := f.missions[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *m
	if pdv, err := f.pdvRepo.GetPDVByID(cp.PDVID); err == nil {
		cp.PDV = pdv
	}
	if merch, err := f.userRepo.GetUserByID(cp.MerchandiserID); err == nil {
		cp.Merchandiser = merch
	}
	return &cp, nil
}

func (f *fakeMissionRepo) GetMissions(filters models.MissionFilters) ([]models.Mission, int, error) {
	var out []models.Mission
	for _, m := range f.missions {
		if filters.MerchandiserID != nil && m.MerchandiserID != *filters.MerchandiserID {
			continue
		}
		if filters.ClientID != nil && (m.ClientID == nil || *m.ClientID != *filters.ClientID) {
			continue
		}
		if filters.Etat != nil && m.Etat != *filters.Etat {
			continue
		}
		if filters.Date != nil && !m.DateMission.Equal(*filters.Date) {
			continue
		}
		out = append(out, *m)
	}
	return out, len(out), nil
}

func (f *fakeMissionRepo) UpdateMissionState(_ repositories.SQLExecutor, mission *models.Mission) error {
	stored, ok := f.missions[mission.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	cp := *mission
	cp.PDV = nil
	cp.Merchandiser = nil
	cp.UpdatedAt = stored.UpdatedAt
	f.missions[mission.ID] = &cp
	return nil
}

type fakeProductRepo struct {
	clientProducts     map[int64]*models.ProduitClient
	concurrentProducts map[int64]*models.ProduitConcurrent
	nextID             int64
	categoryCalls      int
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{
		clientProducts:     make(map[int64]*models.ProduitClient),
		concurrentProducts: make(map[int64]*models.ProduitConcurrent),
		nextID:             1,
	}
}

func (f *fakeProductRepo) addClientProduct(p models.ProduitClient) *models.ProduitClient {
	p.ID = f.nextID
	f.nextID++
	f.clientProducts[p.ID] = &p
	return &p
}

func (f *fakeProductRepo) addConcurrentProduct(p models.ProduitConcurrent) *models.ProduitConcurrent {
	p.ID = f.nextID
	f.nextID++
	f.concurrentProducts[p.ID] = &p
	return &p
}

func (f *fakeProductRepo) CreateClientProduct(_ repositories.SQLExecutor, produit *models.ProduitClient) (int64, error) {
	created := f.addClientProduct(*produit)
	produit.ID = created.ID
	return produit.ID, nil
}

func (f *fakeProductRepo) GetClientProductByID(id int64) (*models.ProduitClient, error) {
	p, ok := f.clientProducts[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) GetClientProducts(clientID int64, limit int) ([]models.ProduitClient, error) {
	var out []models.ProduitClient
	for _, p := range f.clientProducts {
		if p.ClientID == clientID && len(out) < limit {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) GetClientProductCategories(clientID int64) ([]string, error) {
	f.categoryCalls++
	seen := make(map[string]bool)
	var out []string
	for _, p := range f.clientProducts {
		if p.ClientID == clientID && !seen[p.Categorie] {
			seen[p.Categorie] = true
			out = append(out, p.Categorie)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) CreateConcurrentProduct(_ repositories.SQLExecutor, produit *models.ProduitConcurrent) (int64, error) {
	created := f.addConcurrentProduct(*produit)
	produit.ID = created.ID
	return produit.ID, nil
}

func (f *fakeProductRepo) GetConcurrentProductByID(id int64) (*models.ProduitConcurrent, error) {
	p, ok := f.concurrentProducts[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) GetConcurrentProducts(limit int) ([]models.ProduitConcurrent, error) {
	var out []models.ProduitConcurrent
	for _, p := range f.concurrentProducts {
		if len(out) < limit {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakeRealisationRepo struct {
	clientRows      []models.RealisationClientData
	concurrenceRows []models.RealisationConcurrenceData
	nextID          int64
}

func newFakeRealisationRepo() *fakeRealisationRepo {
	return &fakeRealisationRepo{nextID: 1}
}

func (f *fakeRealisationRepo) CreateClientRealisation(_ repositories.SQLExecutor, rec *models.RealisationClientData) (int64, error) {
	rec.ID = f.nextID
	f.nextID++
	rec.DateRealisation = time.Now()
	f.clientRows = append(f.clientRows, *rec)
	return rec.ID, nil
}

func (f *fakeRealisationRepo) CreateConcurrenceRealisation(_ repositories.SQLExecutor, rec *models.RealisationConcurrenceData) (int64, error) {
	rec.ID = f.nextID
	f.nextID++
	rec.DateRealisation = time.Now()
	f.concurrenceRows = append(f.concurrenceRows, *rec)
	return rec.ID, nil
}

func (f *fakeRealisationRepo) GetClientRealisationsByMission(missionID int64) ([]models.RealisationClientData, error) {
	var out []models.RealisationClientData
	for _, r := range f.clientRows {
		if r.MissionID == missionID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRealisationRepo) GetConcurrenceRealisationsByMission(missionID int64) ([]models.RealisationConcurrenceData, error) {
	var out []models.RealisationConcurrenceData
	for _, r := range f.concurrenceRows {
		if r.MissionID == missionID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakePhotoRepo struct {
	photos     []models.PhotoMission
	clientRows []models.ClientPhotoRow
	nextID     int64
}

func newFakePhotoRepo() *fakePhotoRepo {
	return &fakePhotoRepo{nextID: 1}
}

func (f *fakePhotoRepo) CreatePhoto(_ repositories.SQLExecutor, photo *models.PhotoMission) (int64, error) {
	photo.ID = f.nextID
	f.nextID++
	photo.Timestamp = time.Now()
	f.photos = append(f.photos, *photo)
	return photo.ID, nil
}

func (f *fakePhotoRepo) GetPhotosByMission(missionID int64, filters models.PhotoFilters) ([]models.PhotoMission, int, error) {
	var matching []models.PhotoMission
	// newest first: ids ascend with insertion order
	for i := len(f.photos) - 1; i >= 0; i-- {
		p := f.photos[i]
		if p.MissionID != missionID {
			continue
		}
		if filters.TypePhoto != nil && p.TypePhoto != *filters.TypePhoto {
			continue
		}
		if filters.Categorie != nil && p.Categorie != *filters.Categorie {
			continue
		}
		matching = append(matching, p)
	}
	total := len(matching)
	start := (filters.Page - 1) * filters.PageSize
	if start >= total {
		return nil, total, nil
	}
	end := start + filters.PageSize
	if end > total {
		end = total
	}
	return matching[start:end], total, nil
}

func (f *fakePhotoRepo) GetClientPhotoRows(clientID int64, filters models.ReportFilters) ([]models.ClientPhotoRow, error) {
	var out []models.ClientPhotoRow
	for _, r := range f.clientRows {
		if filters.Wilaya != nil && r.Wilaya != *filters.Wilaya {
			continue
		}
		if filters.Region != nil && r.Region != *filters.Region {
			continue
		}
		if filters.PDVSearch != nil && !strings.Contains(strings.ToLower(r.PDVNom), strings.ToLower(*filters.PDVSearch)) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

type fakeCatalogRepo struct {
	clients     map[int64]*models.Client
	concurrents map[int64]*models.Concurrent
	projets     []models.Projet
	nextID      int64
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{
		clients:     make(map[int64]*models.Client),
		concurrents: make(map[int64]*models.Concurrent),
		nextID:      1,
	}
}

func (f *fakeCatalogRepo) addClient(c models.Client) *models.Client {
	c.ID = f.nextID
	f.nextID++
	f.clients[c.ID] = &c
	return &c
}

func (f *fakeCatalogRepo) CreateClient(_ repositories.SQLExecutor, client *models.Client) (int64, error) {
	created := f.addClient(*client)
	client.ID = created.ID
	return client.ID, nil
}

func (f *fakeCatalogRepo) GetClientByID(id int64) (*models.Client, error) {
	c, ok := f.clients[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCatalogRepo) GetClients(page, pageSize int) ([]models.Client, int, error) {
	var out []models.Client
	for _, c := range f.clients {
		out = append(out, *c)
	}
	return out, len(out), nil
}

func (f *fakeCatalogRepo) CreateProjet(_ repositories.SQLExecutor, projet *models.Projet) (int64, error) {
	projet.ID = f.nextID
	f.nextID++
	f.projets = append(f.projets, *projet)
	return projet.ID, nil
}

func (f *fakeCatalogRepo) GetProjetsByClient(clientID int64) ([]models.Projet, error) {
	var out []models.Projet
	for _, p := range f.projets {
		if p.ClientID == clientID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeCatalogRepo) CreateConcurrent(_ repositories.SQLExecutor, concurrent *models.Concurrent) (int64, error) {
	cp := *concurrent
	cp.ID = f.nextID
	f.nextID++
	f.concurrents[cp.ID] = &cp
	concurrent.ID = cp.ID
	return cp.ID, nil
}

func (f *fakeCatalogRepo) GetConcurrentByID(id int64) (*models.Concurrent, error) {
	c, ok := f.concurrents[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCatalogRepo) GetConcurrentsByClient(clientID int64) ([]models.Concurrent, error) {
	var out []models.Concurrent
	for _, c := range f.concurrents {
		if c.ClientID == clientID {
			out = append(out, *c)
		}
	}
	return out, nil
}

// fakeBlobStore records uploads and can be told to fail.
type fakeBlobStore struct {
	fail    bool
	uploads int
}

func (f *fakeBlobStore) Put(_ context.Context, name, _ string, r io.Reader) (string, string, error) {
	if f.fail {
		return "", "", fmt.Errorf("store unavailable")
	}
	if r != nil {
		_, _ = io.ReadAll(r)
	}
	f.uploads++
	ref := fmt.Sprintf("blob-%d", f.uploads)
	return ref, "https://media.example.com/" + ref, nil
}
