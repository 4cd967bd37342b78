package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"merchandising_backend/internal/models"
)

type photoFixture struct {
	svc     *photoService
	photos  *fakePhotoRepo
	blobs   *fakeBlobStore
	mission *models.Mission
	actor   models.Actor
}

func newPhotoFixture(t *testing.T) *photoFixture {
	t.Helper()

	pdvs := newFakePDVRepo()
	users := newFakeUserRepo()
	missions := newFakeMissionRepo(pdvs, users)
	photos := newFakePhotoRepo()
	blobs := &fakeBlobStore{}

	pdv := pdvs.add(models.PointDeVente{
		Code: "PDV-BLIDA-0F0F0F", Nom: "Epicerie Centrale",
		Region: "Centre", Wilaya: "Blida", Commune: "Ouled Yaich",
		TypePDV: models.PDVTypeEpicerie,
	})
	merch := users.add(models.User{Email: "merch@example.com", Role: models.RoleMerchandiser, IsActive: true})

	clientID := int64(7)
	mission := &models.Mission{
		Code:           "MSN-FACADE",
		PDVID:          pdv.ID,
		DateMission:    time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		MerchandiserID: merch.ID,
		ClientID:       &clientID,
		Etat:           models.MissionInProgress,
	}
	_, err := missions.CreateMission(nil, mission)
	require.NoError(t, err)

	svc := &photoService{photoRepo: photos, missionRepo: missions, blobs: blobs}
	return &photoFixture{
		svc:     svc,
		photos:  photos,
		blobs:   blobs,
		mission: mission,
		actor:   models.Actor{UserID: merch.ID, Role: models.RoleMerchandiser},
	}
}

func uploadReq(categorie, typePhoto string) UploadPhotoRequest {
	return UploadPhotoRequest{
		Filename:    "shelf.jpg",
		ContentType: "image/jpeg",
		Image:       strings.NewReader("jpeg-bytes"),
		Categorie:   categorie,
		TypePhoto:   typePhoto,
	}
}

func TestUploadPhotoDerivesMissionContext(t *testing.T) {
	fx := newPhotoFixture(t)

	res, err := fx.svc.UploadPhoto(context.Background(), fx.mission.ID, fx.actor, uploadReq("rayon", models.PhotoAvant))
	require.NoError(t, err)

	assert.NotZero(t, res.PhotoID)
	assert.NotEmpty(t, res.URL)
	assert.Equal(t, "rayon", res.Categorie)
	assert.Equal(t, models.PhotoAvant, res.TypePhoto)

	require.Len(t, fx.photos.photos, 1)
	stored := fx.photos.photos[0]
	assert.Equal(t, fx.mission.ID, stored.MissionID)
	require.NotNil(t, stored.ClientID)
	assert.Equal(t, int64(7), *stored.ClientID)
	require.NotNil(t, stored.PDVID)
	assert.Equal(t, fx.mission.PDVID, *stored.PDVID)
	assert.Equal(t, "Blida", stored.Wilaya)
	assert.Equal(t, "Centre", stored.Region)
}

func TestUploadPhotoValidatesArguments(t *testing.T) {
	fx := newPhotoFixture(t)
	ctx := context.Background()

	cases := []struct {
		name string
		req  UploadPhotoRequest
	}{
		{"missing image", UploadPhotoRequest{Categorie: "rayon", TypePhoto: models.PhotoAvant}},
		{"missing categorie", uploadReq("  ", models.PhotoApres)},
		{"bad photo type", uploadReq("rayon", "pendant")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := fx.svc.UploadPhoto(ctx, fx.mission.ID, fx.actor, tc.req)
			assert.ErrorIs(t, err, ErrPhotoUploadArgs)
		})
	}
	assert.Empty(t, fx.photos.photos)
}

func TestUploadPhotoBlobFailureWritesNoRow(t *testing.T) {
	fx := newPhotoFixture(t)
	fx.blobs.fail = true

	_, err := fx.svc.UploadPhoto(context.Background(), fx.mission.ID, fx.actor, uploadReq("rayon", models.PhotoAvant))
	assert.ErrorIs(t, err, ErrPhotoUpload)
	assert.Empty(t, fx.photos.photos, "a failed upload must not leave photo metadata behind")
}

func TestUploadPhotoOwnershipChecks(t *testing.T) {
	fx := newPhotoFixture(t)
	ctx := context.Background()

	_, err := fx.svc.UploadPhoto(ctx, fx.mission.ID, models.Actor{UserID: 777}, uploadReq("rayon", models.PhotoAvant))
	assert.ErrorIs(t, err, ErrNotMissionOwner)

	_, err = fx.svc.UploadPhoto(ctx, 4242, fx.actor, uploadReq("rayon", models.PhotoAvant))
	assert.ErrorIs(t, err, ErrMissionNotFound)
}

func TestListPhotosPagination(t *testing.T) {
	fx := newPhotoFixture(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		req := uploadReq(fmt.Sprintf("cat-%d", i), models.PhotoAvant)
		_, err := fx.svc.UploadPhoto(ctx, fx.mission.ID, fx.actor, req)
		require.NoError(t, err)
	}

	page1, err := fx.svc.ListPhotos(fx.mission.ID, fx.actor, models.PhotoFilters{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, page1.Count)
	assert.Equal(t, 3, page1.Pages)
	require.Len(t, page1.Items, 2)
	// newest first
	assert.Equal(t, "cat-4", page1.Items[0].Categorie)
	assert.Equal(t, "cat-3", page1.Items[1].Categorie)

	page3, err := fx.svc.ListPhotos(fx.mission.ID, fx.actor, models.PhotoFilters{Page: 3, PageSize: 2})
	require.NoError(t, err)
	require.Len(t, page3.Items, 1)
	assert.Equal(t, "cat-0", page3.Items[0].Categorie)

	beyond, err := fx.svc.ListPhotos(fx.mission.ID, fx.actor, models.PhotoFilters{Page: 9, PageSize: 2})
	require.NoError(t, err)
	assert.Empty(t, beyond.Items)
	assert.Equal(t, 5, beyond.Count)
}

func TestListPhotosFilters(t *testing.T) {
	fx := newPhotoFixture(t)
	ctx := context.Background()

	_, err := fx.svc.UploadPhoto(ctx, fx.mission.ID, fx.actor, uploadReq("rayon", models.PhotoAvant))
	require.NoError(t, err)
	_, err = fx.svc.UploadPhoto(ctx, fx.mission.ID, fx.actor, uploadReq("rayon", models.PhotoApres))
	require.NoError(t, err)
	_, err = fx.svc.UploadPhoto(ctx, fx.mission.ID, fx.actor, uploadReq("facade", models.PhotoAvant))
	require.NoError(t, err)

	avant := models.PhotoAvant
	page, err := fx.svc.ListPhotos(fx.mission.ID, fx.actor, models.PhotoFilters{TypePhoto: &avant})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Count)
	assert.Equal(t, 1, page.Pages)

	// unknown type filter is ignored rather than rejected
	junk := "pendant"
	page, err = fx.svc.ListPhotos(fx.mission.ID, fx.actor, models.PhotoFilters{TypePhoto: &junk})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Count)
}

func TestListPhotosEmptyMission(t *testing.T) {
	fx := newPhotoFixture(t)

	page, err := fx.svc.ListPhotos(fx.mission.ID, fx.actor, models.PhotoFilters{})
	require.NoError(t, err)
	assert.Equal(t, 0, page.Count)
	assert.Equal(t, 1, page.Pages, "an empty listing still reports one page")
	assert.Empty(t, page.Items)
}
