package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogRejectsDuplicatedNames(t *testing.T) {
	components := []Component{
		{Name: "Laser", Type: BeamWeapon},
		{Name: "Laser", Type: BeamWeapon},
	}

	_, err := NewCatalog(components)

	assert.Error(t, err)
}

func TestCatalogLookupByName(t *testing.T) {
	catalog := DefaultCatalog()

	laser, err := catalog.ByName("Laser")
	require.NoError(t, err)
	assert.Equal(t, BeamWeapon, laser.Type)
	assert.Equal(t, 10, laser.Power)

	_, err = catalog.ByName("Warp Core")
	assert.ErrorIs(t, err, ErrComponentNotFound)
}

func TestCatalogGroupsComponentsByFamily(t *testing.T) {
	catalog := DefaultCatalog()

	engines := catalog.ByType(Engine)
	require.NotEmpty(t, engines)

	names := make([]string, 0, len(engines))
	for _, engine := range engines {
		assert.Equal(t, Engine, engine.Type)
		names = append(names, engine.Name)
	}
	assert.Contains(t, names, "Quick Jump 5")
	assert.Contains(t, names, "Fuel Mizer")
}

func TestFreeWarpSpeedComesFromTheFuelTable(t *testing.T) {
	catalog := DefaultCatalog()

	quickJump, err := catalog.ByName("Quick Jump 5")
	require.NoError(t, err)
	assert.Equal(t, 1, quickJump.FreeWarpSpeed())

	mizer, err := catalog.ByName("Fuel Mizer")
	require.NoError(t, err)
	assert.Equal(t, 4, mizer.FreeWarpSpeed())

	laser, err := catalog.ByName("Laser")
	require.NoError(t, err)
	assert.Equal(t, 0, laser.FreeWarpSpeed())
}

func TestWeaponsAreBeamsAndMissiles(t *testing.T) {
	catalog := DefaultCatalog()

	laser, err := catalog.ByName("Laser")
	require.NoError(t, err)
	assert.True(t, laser.IsWeapon())

	scanner, err := catalog.ByName("Bat Scanner")
	require.NoError(t, err)
	assert.False(t, scanner.IsWeapon())
}
