package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildtour/wildtour-backend/internal/app/model"
)

func TestSnapshotService_BuildFromActivity(t *testing.T) {
	svc, testDB := setupCatalog(t)
	destination := seedDestination(t, testDB)

	activity := model.Activity{
		DestinationID: destination.ID,
		Name:          "Caminata palmas de cera",
		Description:   "Bosque de niebla y palmas de cera",
		Category:      model.CategoryHiking,
		Price:         95000,
		Currency:      "COP",
		PriceUnit:     "persona",
		Rating:        4.7,
		ProviderName:  "Cocora Trek",
		Available:     true,
	}
	require.NoError(t, testDB.Create(&activity).Error)

	snapshots := NewSnapshotService(svc)
	snap, ok := snapshots.BuildSnapshot(model.ItemTypeActivity, fmt.Sprint(activity.ID))
	require.True(t, ok)
	assert.Equal(t, "Caminata palmas de cera", snap.Title)
	assert.Equal(t, 95000.0, snap.Price.Amount)
	assert.Equal(t, "COP", snap.Price.Currency)
	assert.Equal(t, string(model.CategoryHiking), snap.ServiceType)
	assert.Equal(t, "Cocora Trek", snap.Provider.Name)
	assert.Equal(t, "Valle de Cocora", snap.Location.Name)
	assert.Equal(t, "Quindío", snap.Location.Department)
	assert.True(t, snap.Availability.Available)
}

func TestSnapshotService_BuildFromAccommodationAndPackage(t *testing.T) {
	svc, testDB := setupCatalog(t)
	destination := seedDestination(t, testDB)

	accommodation := model.Accommodation{
		DestinationID: destination.ID,
		Name:          "Finca La Esperanza",
		Kind:          model.KindFinca,
		PricePerNight: 180000,
		Currency:      "COP",
		Available:     true,
	}
	require.NoError(t, testDB.Create(&accommodation).Error)

	pkg := model.TourPackage{
		DestinationID: destination.ID,
		Name:          "Eje Cafetero 3 días",
		Days:          3,
		Price:         850000,
		Currency:      "COP",
		Available:     true,
	}
	require.NoError(t, testDB.Create(&pkg).Error)

	snapshots := NewSnapshotService(svc)

	snap, ok := snapshots.BuildSnapshot(model.ItemTypeAccommodation, fmt.Sprint(accommodation.ID))
	require.True(t, ok)
	assert.Equal(t, "Finca La Esperanza", snap.Title)
	assert.Equal(t, "noche", snap.Price.Unit)
	assert.Equal(t, string(model.KindFinca), snap.ServiceType)

	snap, ok = snapshots.BuildSnapshot(model.ItemTypePackage, fmt.Sprint(pkg.ID))
	require.True(t, ok)
	assert.Equal(t, "Eje Cafetero 3 días", snap.Title)
	assert.Equal(t, 850000.0, snap.Price.Amount)
}

func TestSnapshotService_Unresolvable(t *testing.T) {
	svc, _ := setupCatalog(t)
	snapshots := NewSnapshotService(svc)

	_, ok := snapshots.BuildSnapshot(model.ItemTypeServicePost, "1")
	assert.False(t, ok, "service posts have no catalog table")

	_, ok = snapshots.BuildSnapshot(model.ItemTypeActivity, "not-a-number")
	assert.False(t, ok)

	_, ok = snapshots.BuildSnapshot(model.ItemTypeActivity, "404")
	assert.False(t, ok)
}

func TestSnapshotService_ResolveAvailability(t *testing.T) {
	svc, testDB := setupCatalog(t)
	destination := seedDestination(t, testDB)

	activity := model.Activity{
		DestinationID: destination.ID,
		Name:          "Avistamiento de ballenas",
		Category:      model.CategoryWhaleWatching,
		Price:         250000,
		Available:     false,
	}
	require.NoError(t, testDB.Create(&activity).Error)

	snapshots := NewSnapshotService(svc)
	availability, ok := snapshots.ResolveAvailability(model.ItemTypeActivity, fmt.Sprint(activity.ID))
	require.True(t, ok)
	assert.False(t, availability.Available)
}
