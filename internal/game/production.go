package game

import (
	"fmt"
	"math"

	"github.com/stellarshenson/stars-ultranova-web-sub000/internal/model"
)

// Fixed construction costs for the non-ship order kinds. Ship
// and starbase orders read their cost from the design.
var (
	factoryCost   = Resources{Germanium: 4, Energy: 10}
	mineCost      = Resources{Energy: 5}
	defenseCost   = Resources{Ironium: 5, Boranium: 5, Germanium: 5, Energy: 15}
	terraformCost = Resources{Energy: 100}
	packetCost    = Resources{Ironium: 40, Boranium: 40, Germanium: 40, Energy: 10}
	alchemyCost   = Resources{Energy: 25}
)

// orderCost :
// Resolves the cost of one item of a production order.
//
// The `order` defines the order to price.
//
// The `e` defines the owning empire, used to resolve ship
// designs.
//
// Returns the cost along with any error.
func orderCost(order ProductionOrder, e *Empire) (Resources, error) {
	switch order.Kind {
	case FactoryOrder:
		return factoryCost, nil
	case MineOrder:
		return mineCost, nil
	case DefenseOrder:
		return defenseCost, nil
	case TerraformOrder:
		return terraformCost, nil
	case PacketOrder:
		return packetCost, nil
	case AlchemyOrder:
		return alchemyCost, nil
	case ShipOrder, StarbaseOrder:
		design, ok := e.Designs[order.Design]
		if !ok {
			return Resources{}, fmt.Errorf("Order references unknown design %d", order.Design)
		}
		return design.Summary.Cost, nil
	}

	return Resources{}, fmt.Errorf("Unknown production order kind \"%s\"", order.Kind)
}

// mineStar :
// Extracts minerals from a star and decays its mineral
// concentrations accordingly. The extraction rate for each
// mineral is driven by the operable mines and the current
// concentration; the concentration decay floors and never
// drops a concentration below 1.
//
// The `star` defines the star to mine.
//
// The `race` defines the race of the owning empire.
func mineStar(star *Star, race model.Race) {
	operable := star.Colonists / 10000 * race.OperableMines
	inUse := star.Mines
	if operable < inUse {
		inUse = operable
	}

	mine := func(concentration *int) int {
		rate := float64(inUse) / 10.0 * float64(race.MineProduction) * float64(*concentration) / 100.0
		mined := int(rate)

		decay := int(math.Floor(rate * float64(*concentration) / 12500.0))
		*concentration -= decay
		if *concentration < 1 {
			*concentration = 1
		}

		return mined
	}

	star.ResourcesOnHand.Ironium += mine(&star.IroniumConcentration)
	star.ResourcesOnHand.Boranium += mine(&star.BoraniumConcentration)
	star.ResourcesOnHand.Germanium += mine(&star.GermaniumConcentration)
}

// starResourcesPerYear :
// Computes the yearly industrial output of a star: the
// contribution of the colonists plus the contribution of the
// operable factories.
//
// The `star` defines the star to evaluate.
//
// The `race` defines the race of the owning empire.
//
// Returns the output in resources.
func starResourcesPerYear(star *Star, race model.Race) int {
	fromColonists := star.Colonists / race.ColonistsPerResource

	operable := star.Colonists / 10000 * race.OperableFactories
	inUse := star.Factories
	if operable < inUse {
		inUse = operable
	}
	fromFactories := inUse / 10 * race.FactoryProduction

	return fromColonists + fromFactories
}

// researchLevelCost :
// Computes the resources needed to gain a level in a field
// from the input attained level.
//
// The `level` defines the current level.
//
// Returns the cost.
func researchLevelCost(level int) int {
	return int(50.0 * math.Pow(1.75, float64(level)))
}

// contributeResearch :
// Adds research points to the accumulated resources of the
// empire and converts them into levels of the highest-weight
// field. Several levels can be gained in one turn and the
// remainder carries over.
//
// The `e` defines the empire to credit.
//
// The `points` defines the resources to invest.
//
// Returns the messages produced by the level ups.
func contributeResearch(e *Empire, points int) []Message {
	messages := make([]Message, 0)

	e.ResearchResources += points

	field := e.ResearchPriority.TopField()
	for {
		cost := researchLevelCost(e.TechLevels[field])
		if e.ResearchResources < cost {
			break
		}

		e.ResearchResources -= cost
		e.TechLevels[field]++

		messages = append(messages, Message{
			Audience: e.ID,
			Text:     fmt.Sprintf("Our researchers have reached level %d in %s.", e.TechLevels[field], field),
			Kind:     ResearchMessage,
		})
	}

	return messages
}

// CalculateGrowth :
// Computes the yearly population change of a star. The curve
// has five regimes driven by the capacity ratio: free growth
// below a quarter of the capacity, crowding-dampened growth
// up to the capacity, stagnation at the capacity and deaths
// beyond it. Hostile worlds kill a tenth of the habitability
// fraction regardless of crowding. The result truncates
// toward zero and then rounds down to the nearest hundred.
//
// The `colonists` defines the current population.
//
// The `maxPopulation` defines the capacity of the star.
//
// The `race` defines the race of the colonists.
//
// The `hab` defines the habitability of the star for the
// race, in `[-1, 1]`.
//
// Returns the signed population change.
func CalculateGrowth(colonists int, maxPopulation int, race model.Race, hab float64) int {
	growthRate := float64(race.GrowthRate) / 100.0
	if race.HyperExpansion {
		growthRate *= GrowthFactorHyperExpansion
	}

	pop := float64(colonists)
	capacity := pop / float64(maxPopulation)

	var delta float64
	switch {
	case hab < 0:
		delta = 0.1 * pop * hab
	case capacity < 0.25:
		delta = pop * growthRate * hab
	case capacity < 1:
		crowding := BaseCrowdingFactor * (1 - capacity) * (1 - capacity)
		delta = pop * growthRate * hab * crowding
	case capacity == 1:
		delta = 0
	case capacity < 4:
		delta = pop * (capacity - 1) * -0.04
	default:
		delta = -0.12 * pop
	}

	// Truncate toward zero, then round down to the nearest
	// hundred.
	truncated := int(delta)
	rounded := (truncated / 100) * 100
	if truncated < 0 && truncated%100 != 0 {
		rounded -= 100
	}

	return rounded
}

// manufacture :
// Runs the manufacturing queue of a star, spending the
// available resources in order. Orders record the resources
// already invested so that expensive items span several
// turns. Ordinary orders block the queue once they cannot
// make progress; auto-build orders never do.
//
// The `w` defines the world.
//
// The `e` defines the owning empire.
//
// The `star` defines the star to run.
//
// The `catalog` allows to refresh design summaries.
//
// Returns the messages produced by the completions.
func manufacture(w *World, e *Empire, star *Star, catalog *model.Catalog) []Message {
	messages := make([]Message, 0)

	queue := star.ProductionQueue
	remaining := make([]ProductionOrder, 0, len(queue))
	blocked := false

	for _, order := range queue {
		if blocked && !order.AutoBuild {
			remaining = append(remaining, order)
			continue
		}

		for order.Quantity > 0 {
			cost, err := orderCost(order, e)
			if err != nil {
				// The design was deleted after the order was
				// queued: drop the order.
				order.Quantity = 0
				break
			}

			needed, _ := cost.Subtract(order.Allocated)

			if star.ResourcesOnHand.GreaterOrEqual(needed) {
				star.ResourcesOnHand, _ = star.ResourcesOnHand.Subtract(needed)
				order.Allocated = Resources{}
				order.Quantity--

				if msg := completeOrder(w, e, star, order, catalog); msg != nil {
					messages = append(messages, *msg)
				}

				continue
			}

			// Partial progress: invest everything that is both
			// needed and available.
			invested := Resources{
				Ironium:   minInt(needed.Ironium, star.ResourcesOnHand.Ironium),
				Boranium:  minInt(needed.Boranium, star.ResourcesOnHand.Boranium),
				Germanium: minInt(needed.Germanium, star.ResourcesOnHand.Germanium),
				Energy:    minInt(needed.Energy, star.ResourcesOnHand.Energy),
			}
			star.ResourcesOnHand, _ = star.ResourcesOnHand.Subtract(invested)
			order.Allocated = order.Allocated.Add(invested)

			if !order.AutoBuild {
				blocked = true
			}

			break
		}

		if order.Quantity > 0 {
			remaining = append(remaining, order)
		}
	}

	star.ProductionQueue = remaining

	return messages
}

// completeOrder :
// Applies the effect of one completed production item.
//
// The `w` defines the world.
//
// The `e` defines the owning empire.
//
// The `star` defines the producing star.
//
// The `order` defines the completed order.
//
// The `catalog` allows to refresh design summaries.
//
// Returns a completion message or `nil`.
func completeOrder(w *World, e *Empire, star *Star, order ProductionOrder, catalog *model.Catalog) *Message {
	switch order.Kind {
	case FactoryOrder:
		star.Factories++
	case MineOrder:
		star.Mines++
	case DefenseOrder:
		if star.Defenses < MaxDefenses {
			star.Defenses++
		}
	case AlchemyOrder:
		star.ResourcesOnHand.Ironium++
		star.ResourcesOnHand.Boranium++
		star.ResourcesOnHand.Germanium++
	case TerraformOrder:
		terraformStar(star, e)
	case PacketOrder:
		return launchPacket(w, e, star)
	case ShipOrder, StarbaseOrder:
		return commissionShip(w, e, star, order, catalog)
	}

	return nil
}

// terraformStar :
// Nudges the environment of a star one point towards the
// ideal of the owning race on the axis that is furthest from
// it, bounded by the terraforming ability of the empire
// relative to the original environment.
//
// The `star` defines the star to terraform.
//
// The `e` defines the owning empire.
func terraformStar(star *Star, e *Empire) {
	type axis struct {
		value    *int
		original int
		ideal    int
		reach    int
	}

	axes := []axis{
		{&star.Gravity, star.OriginalGravity, e.Race.Gravity.Center, e.Terraform.Gravity},
		{&star.Temperature, star.OriginalTemperature, e.Race.Temperature.Center, e.Terraform.Temperature},
		{&star.Radiation, star.OriginalRadiation, e.Race.Radiation.Center, e.Terraform.Radiation},
	}

	var best *axis
	bestGap := 0
	for id := range axes {
		a := &axes[id]
		gap := a.ideal - *a.value
		if gap < 0 {
			gap = -gap
		}

		// Respect the terraforming reach relative to the
		// original value.
		shift := *a.value - a.original
		if shift < 0 {
			shift = -shift
		}
		if shift >= a.reach {
			continue
		}

		if gap > bestGap {
			best = a
			bestGap = gap
		}
	}

	if best == nil {
		return
	}

	if *best.value < best.ideal {
		*best.value++
	} else if *best.value > best.ideal {
		*best.value--
	}
}

// launchPacket :
// Builds a mineral packet at a star and flings it towards
// the packet target of the star.
//
// The `w` defines the world.
//
// The `e` defines the owning empire.
//
// The `star` defines the producing star.
//
// Returns a message or `nil`.
func launchPacket(w *World, e *Empire, star *Star) *Message {
	target, err := w.Star(star.PacketTarget)
	if err != nil {
		// No target configured: the minerals return to the
		// stockpile.
		star.ResourcesOnHand = star.ResourcesOnHand.Add(Resources{
			Ironium:   packetCost.Ironium,
			Boranium:  packetCost.Boranium,
			Germanium: packetCost.Germanium,
		})
		return nil
	}

	packet := &Fleet{
		Key:      e.NextFleetKey(),
		Name:     MineralPacketName,
		Position: star.Position,
		Tokens:   make(map[DesignKey]*ShipToken),
		Waypoints: []Waypoint{{
			Position:    target.Position,
			WarpFactor:  10,
			Destination: target.Name,
		}},
		Cargo: Cargo{
			Ironium:   packetCost.Ironium,
			Boranium:  packetCost.Boranium,
			Germanium: packetCost.Germanium,
		},
		TurnYearCreated: w.TurnYear,
		Packet:          true,
	}
	e.Fleets[packet.Key] = packet

	return &Message{
		Audience: e.ID,
		Text:     fmt.Sprintf("%s has flung a mineral packet at %s.", star.Name, target.Name),
		Kind:     PacketMessage,
		Fleet:    packet.Key,
	}
}

// commissionShip :
// Adds a freshly built ship to an orbiting fleet named after
// its design, creating the fleet when none exists. Starbases
// become the starbase of the producing star.
//
// The `w` defines the world.
//
// The `e` defines the owning empire.
//
// The `star` defines the producing star.
//
// The `order` defines the completed order.
//
// The `catalog` allows to refresh the design summary.
//
// Returns a message or `nil`.
func commissionShip(w *World, e *Empire, star *Star, order ProductionOrder, catalog *model.Catalog) *Message {
	design, ok := e.Designs[order.Design]
	if !ok {
		return nil
	}
	if design.Dirty {
		if err := design.UpdateSummary(catalog); err != nil {
			return nil
		}
	}

	// Look for an orbiting fleet carrying the design name to
	// receive the new ship.
	var receiver *Fleet
	for _, key := range e.SortedFleetKeys() {
		fleet := e.Fleets[key]
		if fleet.InOrbit == star.Name && fleet.Name == design.Name && !fleet.Packet {
			receiver = fleet
			break
		}
	}

	if receiver == nil {
		receiver = &Fleet{
			Key:             e.NextFleetKey(),
			Name:            design.Name,
			Position:        star.Position,
			InOrbit:         star.Name,
			Tokens:          make(map[DesignKey]*ShipToken),
			Waypoints:       []Waypoint{NoTaskWaypoint(star.Position)},
			BattlePlanName:  DefaultBattlePlanName,
			TurnYearCreated: w.TurnYear,
		}
		e.Fleets[receiver.Key] = receiver
	}

	token, ok := receiver.Tokens[design.Key]
	if !ok {
		token = &ShipToken{
			Design:     design.Key,
			Shields:    design.Summary.Shields,
			Armor:      design.Summary.Armor,
			MaxShields: design.Summary.Shields,
			MaxArmor:   design.Summary.Armor,
		}
		receiver.Tokens[design.Key] = token
	}
	token.Quantity++

	receiver.FuelAvailable += design.Summary.FuelCapacity

	if order.Kind == StarbaseOrder {
		star.Starbase = receiver.Key
	}

	return &Message{
		Audience: e.ID,
		Text:     fmt.Sprintf("%s has built a new %s.", star.Name, design.Name),
		Kind:     ColonyMessage,
		Fleet:    receiver.Key,
	}
}

// updateStar :
// Runs the yearly economy of one owned star: mining, the
// industrial output split between research and manufacturing,
// with the population update wedged between the two.
//
// The `w` defines the world.
//
// The `e` defines the owning empire.
//
// The `star` defines the star to update.
//
// The `catalog` allows to refresh design summaries.
//
// Returns the messages produced by the update.
func updateStar(w *World, e *Empire, star *Star, catalog *model.Catalog) []Message {
	messages := make([]Message, 0)

	if star.Colonists <= 0 {
		return messages
	}

	// 1. Mining.
	mineStar(star, e.Race)

	// 2. Industrial output.
	resources := starResourcesPerYear(star, e.Race)

	// 3. Research allocation.
	research := 0
	if !e.Race.OnlyLeftoverResearch {
		research = resources * e.ResearchBudget / 100
	}
	messages = append(messages, contributeResearch(e, research)...)

	// 4. Population update. Runs before manufacturing so the
	// newly grown colonists only operate the new installations
	// next year.
	hab := e.Race.HabValue(star.Gravity, star.Temperature, star.Radiation)
	growth := CalculateGrowth(star.Colonists, e.MaxPopulation(hab), e.Race, hab)
	star.Colonists += growth
	if star.Colonists <= 0 {
		star.Abandon()
		delete(e.Stars, star.Name)
		messages = append(messages, Message{
			Audience: e.ID,
			Text:     fmt.Sprintf("The colony on %s has died out.", star.Name),
			Kind:     ColonyMessage,
		})
		return messages
	}

	// 5. Manufacturing with what is left.
	star.ResourcesOnHand.Energy += resources - research
	messages = append(messages, manufacture(w, e, star, catalog)...)

	// 6. Leftover sweep: unspent industrial output feeds the
	// research of the empire.
	leftover := star.ResourcesOnHand.Energy
	star.ResourcesOnHand.Energy = 0
	messages = append(messages, contributeResearch(e, leftover)...)

	return messages
}

// minInt :
// Convenience helper: the smaller of two integers.
func minInt(a int, b int) int {
	if a < b {
		return a
	}

	return b
}
