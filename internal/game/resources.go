package game

import (
	"fmt"
	"math"

	"github.com/stellarshenson/stars-ultranova-web-sub000/internal/model"
)

// ErrResourceUnderflow : Indicates that a subtraction would
// have produced a negative resource amount. Commands must be
// validated so that this never happens during a turn: hitting
// it while applying a turn step is a fatal engine error.
var ErrResourceUnderflow = fmt.Errorf("Resource subtraction underflow")

// Resources :
// Describes a non-negative amount of each of the four resource
// kinds handled by the economy. The energy part represents the
// industrial output of a star and does not contribute to mass,
// unlike the three minerals.
type Resources struct {
	Ironium   int `json:"ironium"`
	Boranium  int `json:"boranium"`
	Germanium int `json:"germanium"`
	Energy    int `json:"energy"`
}

// ResourcesFromCost :
// Converts a catalog cost into a resource amount.
//
// The `cost` defines the catalog cost to convert.
//
// Returns the equivalent resources.
func ResourcesFromCost(cost model.Cost) Resources {
	return Resources{
		Ironium:   cost.Ironium,
		Boranium:  cost.Boranium,
		Germanium: cost.Germanium,
		Energy:    cost.Energy,
	}
}

// Add :
// Computes the componentwise sum of this amount and the input
// one.
//
// The `other` defines the amount to add.
//
// Returns the sum.
func (r Resources) Add(other Resources) Resources {
	return Resources{
		Ironium:   r.Ironium + other.Ironium,
		Boranium:  r.Boranium + other.Boranium,
		Germanium: r.Germanium + other.Germanium,
		Energy:    r.Energy + other.Energy,
	}
}

// Subtract :
// Computes the componentwise difference of this amount and the
// input one. The subtraction is refused when any component
// would become negative.
//
// The `other` defines the amount to subtract.
//
// Returns the difference along with any error.
func (r Resources) Subtract(other Resources) (Resources, error) {
	if !r.GreaterOrEqual(other) {
		return r, ErrResourceUnderflow
	}

	return Resources{
		Ironium:   r.Ironium - other.Ironium,
		Boranium:  r.Boranium - other.Boranium,
		Germanium: r.Germanium - other.Germanium,
		Energy:    r.Energy - other.Energy,
	}, nil
}

// GreaterOrEqual :
// Determines whether every component of this amount is at
// least the corresponding component of the input one.
//
// The `other` defines the amount to compare to.
//
// Returns `true` if this amount covers the input one.
func (r Resources) GreaterOrEqual(other Resources) bool {
	return r.Ironium >= other.Ironium &&
		r.Boranium >= other.Boranium &&
		r.Germanium >= other.Germanium &&
		r.Energy >= other.Energy
}

// MultiplyInt :
// Computes the exact componentwise product of this amount by
// an integer factor.
//
// The `factor` defines the multiplier.
//
// Returns the scaled amount.
func (r Resources) MultiplyInt(factor int) Resources {
	return Resources{
		Ironium:   r.Ironium * factor,
		Boranium:  r.Boranium * factor,
		Germanium: r.Germanium * factor,
		Energy:    r.Energy * factor,
	}
}

// MultiplyFloat :
// Computes the componentwise product of this amount by a real
// factor. Each component is rounded up so that the scaled
// amount never consumes more than what is actually present
// when used as a remaining-cost estimate.
//
// The `factor` defines the multiplier.
//
// Returns the scaled amount.
func (r Resources) MultiplyFloat(factor float64) Resources {
	return Resources{
		Ironium:   int(math.Ceil(float64(r.Ironium) * factor)),
		Boranium:  int(math.Ceil(float64(r.Boranium) * factor)),
		Germanium: int(math.Ceil(float64(r.Germanium) * factor)),
		Energy:    int(math.Ceil(float64(r.Energy) * factor)),
	}
}

// Mass :
// Computes the mass in kT of this amount. Energy is massless.
//
// Returns the mass.
func (r Resources) Mass() int {
	return r.Ironium + r.Boranium + r.Germanium
}

// Cargo :
// Describes the content of the cargo bay of a fleet. Next to
// the three minerals a fleet can carry colonists (expressed
// in kT, each kT representing a hundred actual colonists) and
// silicoxium, an unrefined mineral only obtained by salvaging.
type Cargo struct {
	Ironium    int `json:"ironium"`
	Boranium   int `json:"boranium"`
	Germanium  int `json:"germanium"`
	Colonists  int `json:"colonists"`
	Silicoxium int `json:"silicoxium"`
}

// Add :
// Computes the componentwise sum of this cargo and the input
// one.
//
// The `other` defines the cargo to add.
//
// Returns the sum.
func (c Cargo) Add(other Cargo) Cargo {
	return Cargo{
		Ironium:    c.Ironium + other.Ironium,
		Boranium:   c.Boranium + other.Boranium,
		Germanium:  c.Germanium + other.Germanium,
		Colonists:  c.Colonists + other.Colonists,
		Silicoxium: c.Silicoxium + other.Silicoxium,
	}
}

// Subtract :
// Computes the componentwise difference of this cargo and the
// input one. The subtraction is refused when any component
// would become negative.
//
// The `other` defines the cargo to subtract.
//
// Returns the difference along with any error.
func (c Cargo) Subtract(other Cargo) (Cargo, error) {
	if c.Ironium < other.Ironium ||
		c.Boranium < other.Boranium ||
		c.Germanium < other.Germanium ||
		c.Colonists < other.Colonists ||
		c.Silicoxium < other.Silicoxium {
		return c, ErrResourceUnderflow
	}

	return Cargo{
		Ironium:    c.Ironium - other.Ironium,
		Boranium:   c.Boranium - other.Boranium,
		Germanium:  c.Germanium - other.Germanium,
		Colonists:  c.Colonists - other.Colonists,
		Silicoxium: c.Silicoxium - other.Silicoxium,
	}, nil
}

// Mass :
// Computes the mass in kT of this cargo. All the components
// of a cargo contribute to its mass.
//
// Returns the mass.
func (c Cargo) Mass() int {
	return c.Ironium + c.Boranium + c.Germanium + c.Colonists + c.Silicoxium
}
