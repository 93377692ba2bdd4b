package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHabValueIsOneAtTheIdealCenter(t *testing.T) {
	race := Humanoid()

	assert.InDelta(t, 1.0, race.HabValue(50, 50, 50), 1e-9)
}

func TestHabValueIsTheProductOfTheAxes(t *testing.T) {
	race := Humanoid()

	// Each axis sits 7 points from its center, a fifth of the
	// band width: 0.8 cubed.
	assert.InDelta(t, 0.512, race.HabValue(43, 43, 43), 1e-9)
}

func TestHabValueReachesZeroAtTheBandEdge(t *testing.T) {
	race := Humanoid()

	assert.InDelta(t, 0.0, race.HabValue(85, 50, 50), 1e-9)
}

func TestHostileAxisIsClampedAtMinusFifteenPercent(t *testing.T) {
	race := Humanoid()

	assert.InDelta(t, -0.15, race.HabValue(100, 50, 50), 1e-9)
}

func TestMostHostileAxisWins(t *testing.T) {
	race := Humanoid()

	// Gravity 90 lies 5 points past the edge, one seventh of
	// the width into the hostile zone, not yet at the clamp.
	assert.InDelta(t, -1.0/7.0, race.HabValue(90, 43, 43), 1e-9)
}

func TestImmunityIgnoresTheEnvironment(t *testing.T) {
	race := Silicanoid()

	assert.InDelta(t, 1.0, race.HabValue(0, 100, 0), 1e-9)
}
