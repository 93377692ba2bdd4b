package game

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/stellarshenson/stars-ultranova-web-sub000/internal/model"
)

// fuelEpsilon protects the time-until-empty division against
// fuel-neutral legs.
const fuelEpsilon = 1e-9

// fuelConsumptionPerYear :
// Computes the yearly fuel consumption of a fleet travelling
// at the input warp factor. The engine table provides the
// consumption per light-year for a reference mass of 200 kT;
// the result scales with the actual mass and the distance
// covered in one year. At warp 1 every engine is net fuel
// generating; ram-scoop engines can yield a negative result
// at higher speeds too. The improved fuel efficiency trait
// shaves 15% off any positive consumption.
//
// The `engine` defines the engine to read the table from.
//
// The `warp` defines the warp factor of the leg.
//
// The `mass` defines the total mass of the fleet, ships and
// cargo included.
//
// The `race` defines the race of the owning empire.
//
// Returns the consumption in mg of fuel per year.
func fuelConsumptionPerYear(engine *model.Component, warp int, mass int, race model.Race) float64 {
	if warp <= 0 {
		return 0
	}

	perLightYear := float64(engine.FuelUsage[warp]) * float64(mass) / 200.0
	if warp == 1 {
		perLightYear = -1
	}

	speed := float64(warp * warp)
	consumption := perLightYear * speed

	if race.ImprovedFuelEfficiency && consumption > 0 {
		consumption *= 0.85
	}

	return consumption
}

// moveFleet :
// Advances a fleet along its waypoint list, consuming up to
// one year of travel time. The leg from the position of the
// fleet to its first waypoint is covered at the waypoint's
// warp factor; arrival pops the waypoint and the next leg is
// attacked with the remaining time. A fleet running dry
// drops to the free warp speed of its engine and resumes the
// following year.
//
// The `w` defines the world the fleet lives in.
//
// The `e` defines the owning empire.
//
// The `f` defines the fleet to move.
//
// The `catalog` allows to resolve the engine of the fleet.
//
// The `rng` drives the cheap-engines failure check.
//
// Returns the messages produced by the move.
func moveFleet(w *World, e *Empire, f *Fleet, catalog *model.Catalog, rng *rand.Rand) []Message {
	messages := make([]Message, 0)
	f.travelled = 0
	f.lastWarp = 0

	mass, _, design := f.summarize(e.Designs)
	if design == nil {
		return messages
	}

	engine, err := catalog.ByName(design.Summary.Engine)
	if err != nil {
		return messages
	}

	totalMass := mass + f.Cargo.Mass()
	timeLeft := 1.0

	for timeLeft > 0 && len(f.Waypoints) > 0 {
		target := f.Waypoints[0]
		distance := f.Position.DistanceTo(target.Position)

		if distance == 0 {
			// Already at the waypoint: the tasks are handled by
			// their dedicated pipeline steps.
			break
		}

		warp := target.WarpFactor
		if warp <= 0 {
			break
		}

		// Cheap engines sometimes refuse to start above warp 6.
		if e.Race.CheapEngines && warp > 6 && timeLeft == 1.0 {
			if rng.Intn(10) == 0 {
				messages = append(messages, Message{
					Audience: e.ID,
					Text:     fmt.Sprintf("The engines of %s failed to start; the fleet holds its position this year.", f.Name),
					Kind:     FleetMessage,
					Fleet:    f.Key,
				})
				break
			}
		}

		speed := float64(warp * warp)
		consumption := fuelConsumptionPerYear(engine, warp, totalMass, e.Race)

		timeToArrival := distance / speed
		timeUntilEmpty := math.Inf(1)
		if consumption > 0 {
			timeUntilEmpty = float64(f.FuelAvailable) / math.Max(consumption, fuelEpsilon)
		}

		moveTime := math.Min(timeLeft, math.Min(timeToArrival, timeUntilEmpty))
		covered := moveTime * speed
		f.lastWarp = warp

		// Advance along the straight line towards the target.
		if covered >= distance-1e-6 {
			f.Position = target.Position
			f.travelled += distance
		} else {
			ratio := covered / distance
			f.Position = Position{
				X: f.Position.X + int(math.Round(float64(target.Position.X-f.Position.X)*ratio)),
				Y: f.Position.Y + int(math.Round(float64(target.Position.Y-f.Position.Y)*ratio)),
			}
			f.travelled += covered
		}

		// Burn (or generate) fuel for the covered leg. The
		// consumed amount rounds up so that a leg never burns
		// less than the table says.
		burned := int(math.Ceil(consumption * moveTime))
		f.FuelAvailable -= burned
		if f.FuelAvailable < 0 {
			f.FuelAvailable = 0
		}

		timeLeft -= moveTime

		if f.Position == target.Position {
			// Arrived: the waypoint becomes the new anchor of
			// the route.
			if len(f.Waypoints) > 1 {
				f.Waypoints = f.Waypoints[1:]
			} else {
				f.Waypoints[0] = NoTaskWaypoint(f.Position)
				timeLeft = 0
			}

			if star := w.StarAt(f.Position); star != nil {
				f.InOrbit = star.Name
			} else {
				f.InOrbit = ""
			}

			continue
		}

		f.InOrbit = ""

		// Not arrived. When the limiting factor was the fuel the
		// fleet is stranded: downgrade to the free warp speed and
		// resume next year.
		if consumption > 0 && moveTime == timeUntilEmpty && timeLeft > 0 {
			freeWarp := engine.FreeWarpSpeed()
			f.Waypoints[0].WarpFactor = freeWarp
			messages = append(messages, Message{
				Audience: e.ID,
				Text:     fmt.Sprintf("%s has run out of fuel and dropped to warp %d.", f.Name, freeWarp),
				Kind:     FleetMessage,
				Fleet:    f.Key,
			})
		}

		break
	}

	return messages
}

// checkMinefields :
// Applies the minefield hazard to a fleet that moved this
// year. Every enemy minefield covering the new position of
// the fleet rolls a hit chance proportional to the distance
// travelled and the warp factor of the leg. A hit damages
// the armor of the fleet and reveals the field to its owner.
//
// The `w` defines the world.
//
// The `e` defines the owning empire of the fleet.
//
// The `f` defines the fleet to check.
//
// The `rng` drives the hit rolls.
//
// Returns the messages produced by the check.
func checkMinefields(w *World, e *Empire, f *Fleet, rng *rand.Rand) []Message {
	messages := make([]Message, 0)

	if f.travelled == 0 {
		return messages
	}

	// The warp factor actually flown: on arrival the waypoint
	// is already replaced by an idle one.
	warp := f.lastWarp

	for _, key := range w.SortedMinefieldKeys() {
		field := w.Minefields[key]

		if field.Owner == e.ID || !e.IsEnemy(field.Owner) {
			continue
		}
		if !field.Contains(f.Position) {
			continue
		}

		// A fleet crossing a field learns about it whether or
		// not it strikes a mine.
		e.VisibleMinefields[field.Key] = field
		e.SpotMinefield(field.Key)

		chance := field.HitChancePerLightYear() * f.travelled * float64(warp)
		if chance > 1 {
			chance = 1
		}

		if rng.Float64() >= chance {
			continue
		}

		damage := 100 + 25*warp
		applyMinefieldDamage(f, damage)

		field.Mines -= 10
		if field.Mines < 0 {
			field.Mines = 0
		}

		messages = append(messages, Message{
			Audience: e.ID,
			Text:     fmt.Sprintf("%s has struck a mine and taken %d damage.", f.Name, damage),
			Kind:     MinefieldMessage,
			Fleet:    f.Key,
		})

		if owner, err := w.Empire(field.Owner); err == nil {
			owner.Notify(Message{
				Text: fmt.Sprintf("An enemy fleet has struck one of our minefields near (%d, %d).", field.Position.X, field.Position.Y),
				Kind: MinefieldMessage,
			})
		}
	}

	return messages
}

// applyMinefieldDamage :
// Distributes mine damage over the tokens of a fleet,
// shields first then armor, destroying ships whose armor is
// exhausted.
//
// The `f` defines the struck fleet.
//
// The `damage` defines the damage points to distribute.
func applyMinefieldDamage(f *Fleet, damage int) {
	for _, key := range f.SortedTokenKeys() {
		if damage <= 0 {
			return
		}

		token := f.Tokens[key]

		absorbed := token.Shields * token.Quantity
		if absorbed > damage {
			token.Shields -= damage / maxInt(token.Quantity, 1)
			return
		}
		damage -= absorbed
		token.Shields = 0

		hull := token.Armor * token.Quantity
		if hull > damage {
			token.Armor -= damage / maxInt(token.Quantity, 1)
			return
		}
		damage -= hull
		token.Quantity = 0
		delete(f.Tokens, key)
	}
}

// refuelAndRepair :
// Restores the fuel and armor of a fleet after movement. The
// repair rate depends on where the fleet sits: a dock at an
// own starbase repairs fastest and refuels to full, empty
// space barely patches the hull.
//
// The `w` defines the world.
//
// The `e` defines the owning empire of the fleet.
//
// The `f` defines the fleet to restore.
func refuelAndRepair(w *World, e *Empire, f *Fleet) {
	rate := 0.0
	refuel := false

	moving := f.travelled > 0

	if len(f.InOrbit) > 0 {
		star := w.Stars[f.InOrbit]
		switch {
		case star != nil && star.Owner == e.ID && star.Starbase != 0:
			starbase := w.FleetByKey(star.Starbase)
			dock := false
			if starbase != nil {
				for _, key := range starbase.SortedTokenKeys() {
					design, ok := e.Designs[key]
					if ok && design.Summary.Dock {
						dock = true
					}
				}
			}
			if dock {
				rate = 0.20
				refuel = true
			} else {
				rate = 0.08
			}
		case star != nil && star.Owner == e.ID:
			rate = 0.05
		default:
			// Foreign star, allied or not: the conservative
			// hostile rate applies.
			rate = 0.03
		}
	} else if moving {
		rate = 0.01
	} else {
		rate = 0.02
	}

	for _, key := range f.SortedTokenKeys() {
		token := f.Tokens[key]
		repaired := int(math.Ceil(float64(token.MaxArmor) * rate))
		token.Armor += repaired
		if token.Armor > token.MaxArmor {
			token.Armor = token.MaxArmor
		}
	}

	if refuel {
		_, capacity, _ := f.summarize(e.Designs)
		f.FuelAvailable = capacity
	}
}

// maxInt :
// Convenience helper: the larger of two integers.
func maxInt(a int, b int) int {
	if a > b {
		return a
	}

	return b
}
