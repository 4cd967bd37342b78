package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"merchandising_backend/internal/models"
)

type realisationFixture struct {
	svc          *realisationService
	realisations *fakeRealisationRepo
	products     *fakeProductRepo
	mission      *models.Mission
	actor        models.Actor
	clientID     int64
}

func newRealisationFixture(t *testing.T) *realisationFixture {
	t.Helper()

	pdvs := newFakePDVRepo()
	users := newFakeUserRepo()
	missions := newFakeMissionRepo(pdvs, users)
	products := newFakeProductRepo()
	realisations := newFakeRealisationRepo()
	catalog := newFakeCatalogRepo()

	client := catalog.addClient(models.Client{RaisonSociale: "Laiterie Soummam"})
	pdv := pdvs.add(models.PointDeVente{
		Code:    "PDV-ORAN-D4E5F6",
		Nom:     "Superette du Port",
		Region:  "Ouest",
		Wilaya:  "Oran",
		Commune: "Sidi El Houari",
		TypePDV: models.PDVTypeSupermarche,
	})
	merch := users.add(models.User{
		Email: "merch@example.com", FirstName: "Lina", LastName: "Khelifi",
		Role: models.RoleMerchandiser, IsActive: true,
	})

	mission := &models.Mission{
		Code:           "MSN-0A1B2C",
		PDVID:          pdv.ID,
		DateMission:    time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		MerchandiserID: merch.ID,
		ClientID:       &client.ID,
		Etat:           models.MissionInProgress,
	}
	_, err := missions.CreateMission(nil, mission)
	require.NoError(t, err)

	catalogSvc := NewCatalogService(catalog, pdvs, products, nil)
	svc := &realisationService{
		realisationRepo: realisations,
		missionRepo:     missions,
		productRepo:     products,
		catalogSvc:      catalogSvc,
	}
	return &realisationFixture{
		svc:          svc,
		realisations: realisations,
		products:     products,
		mission:      mission,
		actor:        models.Actor{UserID: merch.ID, Role: models.RoleMerchandiser},
		clientID:     client.ID,
	}
}

func TestSubmitClientRealisationsSkipsUnknownProducts(t *testing.T) {
	fx := newRealisationFixture(t)
	p1 := fx.products.addClientProduct(models.ProduitClient{ClientID: fx.clientID, Nom: "Yaourt nature", Categorie: "frais"})
	p2 := fx.products.addClientProduct(models.ProduitClient{ClientID: fx.clientID, Nom: "Lait UHT", Categorie: "ambient"})

	created, err := fx.svc.SubmitClientRealisations(fx.mission.ID, fx.actor, []ClientRealisationItem{
		{ProduitID: p1.ID, Disponible: true, Handling: true},
		{ProduitID: 9999, Disponible: true},
		{ProduitID: p2.ID, Disponible: false},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, created)
	require.Len(t, fx.realisations.clientRows, 2)
	assert.Equal(t, p1.ID, fx.realisations.clientRows[0].ProduitID)
	assert.Equal(t, p2.ID, fx.realisations.clientRows[1].ProduitID)
}

func TestSubmitClientRealisationsSnapshotsPDVLocation(t *testing.T) {
	fx := newRealisationFixture(t)
	p := fx.products.addClientProduct(models.ProduitClient{ClientID: fx.clientID, Nom: "Fromage frais", Categorie: "frais"})

	created, err := fx.svc.SubmitClientRealisations(fx.mission.ID, fx.actor, []ClientRealisationItem{
		{ProduitID: p.ID, Disponible: true, FacingShare: floatPtr(0.4)},
	})
	require.NoError(t, err)
	require.Equal(t, 1, created)

	row := fx.realisations.clientRows[0]
	assert.Equal(t, "Oran", row.Wilaya)
	assert.Equal(t, "Ouest", row.Region)
	assert.Equal(t, fx.mission.ID, row.MissionID)
	assert.Equal(t, fx.mission.PDVID, row.PDVID)
	assert.Equal(t, fx.actor.UserID, row.MerchID)
	require.NotNil(t, row.ClientID)
	assert.Equal(t, fx.clientID, *row.ClientID)
	require.NotNil(t, row.FacingShare)
	assert.Equal(t, 0.4, *row.FacingShare)
}

func TestSubmitClientRealisationsAppendOnly(t *testing.T) {
	fx := newRealisationFixture(t)
	p := fx.products.addClientProduct(models.ProduitClient{ClientID: fx.clientID, Nom: "Yaourt nature", Categorie: "frais"})

	item := ClientRealisationItem{ProduitID: p.ID, Disponible: true}
	for i := 0; i < 2; i++ {
		created, err := fx.svc.SubmitClientRealisations(fx.mission.ID, fx.actor, []ClientRealisationItem{item})
		require.NoError(t, err)
		assert.Equal(t, 1, created)
	}
	// resubmitting the same product appends a second row, it never updates
	assert.Len(t, fx.realisations.clientRows, 2)
}

func TestSubmitClientRealisationsOwnershipChecks(t *testing.T) {
	fx := newRealisationFixture(t)
	intruder := models.Actor{UserID: 777, Role: models.RoleMerchandiser}

	_, err := fx.svc.SubmitClientRealisations(fx.mission.ID, intruder, nil)
	assert.ErrorIs(t, err, ErrNotMissionOwner)

	_, err = fx.svc.SubmitClientRealisations(4242, fx.actor, nil)
	assert.ErrorIs(t, err, ErrMissionNotFound)
}

func TestSubmitConcurrentRealisations(t *testing.T) {
	fx := newRealisationFixture(t)
	cp := fx.products.addConcurrentProduct(models.ProduitConcurrent{ConcurrentID: 1, Nom: "Yaourt rival", Categorie: "frais"})

	created, err := fx.svc.SubmitConcurrentRealisations(fx.mission.ID, fx.actor, []ConcurrentRealisationItem{
		{ProduitID: cp.ID, Disponible: true, PrixVente: floatPtr(95)},
		{ProduitID: 9999},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, created)
	require.Len(t, fx.realisations.concurrenceRows, 1)
	row := fx.realisations.concurrenceRows[0]
	assert.Equal(t, cp.ID, row.ProduitConcurrentID)
	assert.Equal(t, "Oran", row.Wilaya)
	assert.Equal(t, "Ouest", row.Region)
	require.NotNil(t, row.PrixVente)
	assert.Equal(t, 95.0, *row.PrixVente)
}

func TestGetMissionRealisations(t *testing.T) {
	fx := newRealisationFixture(t)
	p := fx.products.addClientProduct(models.ProduitClient{ClientID: fx.clientID, Nom: "Yaourt nature", Categorie: "frais"})
	cp := fx.products.addConcurrentProduct(models.ProduitConcurrent{ConcurrentID: 1, Nom: "Yaourt rival", Categorie: "frais"})

	_, err := fx.svc.SubmitClientRealisations(fx.mission.ID, fx.actor, []ClientRealisationItem{{ProduitID: p.ID, Disponible: true}})
	require.NoError(t, err)
	_, err = fx.svc.SubmitConcurrentRealisations(fx.mission.ID, fx.actor, []ConcurrentRealisationItem{{ProduitID: cp.ID}})
	require.NoError(t, err)

	detail, err := fx.svc.GetMissionRealisations(fx.mission.ID)
	require.NoError(t, err)

	require.NotNil(t, detail.Mission)
	assert.Equal(t, fx.mission.ID, detail.Mission.ID)
	require.Len(t, detail.Client, 1)
	assert.Equal(t, p.ID, detail.Client[0].ProduitID)
	require.Len(t, detail.Concurrence, 1)
	assert.Equal(t, cp.ID, detail.Concurrence[0].ProduitConcurrentID)

	_, err = fx.svc.GetMissionRealisations(4242)
	assert.ErrorIs(t, err, ErrMissionNotFound)
}

func TestGetRealisationForm(t *testing.T) {
	fx := newRealisationFixture(t)
	fx.products.addClientProduct(models.ProduitClient{ClientID: fx.clientID, Nom: "Yaourt nature", Categorie: "frais"})
	fx.products.addClientProduct(models.ProduitClient{ClientID: fx.clientID, Nom: "Lait UHT", Categorie: "ambient"})
	fx.products.addConcurrentProduct(models.ProduitConcurrent{ConcurrentID: 1, Nom: "Yaourt rival", Categorie: "frais"})

	form, err := fx.svc.GetRealisationForm(fx.mission.ID, fx.actor)
	require.NoError(t, err)

	require.NotNil(t, form.Mission)
	assert.Equal(t, fx.mission.ID, form.Mission.ID)
	assert.Len(t, form.ClientProducts, 2)
	assert.Len(t, form.ConcurrentProducts, 1)
	assert.ElementsMatch(t, []string{"frais", "ambient"}, form.Categories)
}
