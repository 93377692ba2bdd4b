package game

import (
	"fmt"
	"math"

	"github.com/stellarshenson/stars-ultranova-web-sub000/internal/model"
)

// layMines :
// Runs the mine laying step: every fleet holding a lay-mines
// task at its position and carrying mine layers pours its
// yearly output into the minefield covering the local grid
// cell. The task counts down its years and clears itself.
//
// The `w` defines the world.
//
// Returns the messages produced by the step.
func layMines(w *World) []Message {
	messages := make([]Message, 0)

	for _, fleet := range w.AllFleets() {
		if len(fleet.Waypoints) == 0 {
			continue
		}

		waypoint := &fleet.Waypoints[0]
		if waypoint.Task.Kind != LayMinesTask || waypoint.Position != fleet.Position {
			continue
		}

		empire, err := w.Empire(fleet.Owner())
		if err != nil {
			continue
		}

		perYear := 0
		mineType := fleet.mineTypeOf(empire.Designs)
		for _, key := range fleet.SortedTokenKeys() {
			design, ok := empire.Designs[key]
			if !ok {
				continue
			}
			perYear += design.Summary.MinesPerYear * fleet.Tokens[key].Quantity
		}

		if perYear == 0 {
			waypoint.Task = Task{Kind: NoTask}
			continue
		}

		field := w.AddMinefield(empire.ID, fleet.Position, mineType, perYear)
		empire.VisibleMinefields[field.Key] = field

		messages = append(messages, Message{
			Audience: empire.ID,
			Text:     fmt.Sprintf("%s has laid %d mines; the field now holds %d.", fleet.Name, perYear, field.Mines),
			Kind:     MinefieldMessage,
			Fleet:    fleet.Key,
		})

		waypoint.Task.Years--
		if waypoint.Task.Years <= 0 {
			waypoint.Task = Task{Kind: NoTask}
		}
	}

	return messages
}

// mineTypeOf :
// Resolves the kind of mines the layers of the fleet deploy.
func (f *Fleet) mineTypeOf(designs map[DesignKey]*ShipDesign) (mineType model.MineType) {
	for _, key := range f.SortedTokenKeys() {
		design, ok := designs[key]
		if ok && design.Summary.MinesPerYear > 0 {
			return design.Summary.MineType
		}
	}

	return mineType
}

// processTransfersAndMerges :
// Runs the split-merge step: cargo transfer, split and merge
// tasks sitting at the position of their fleet are performed
// and their spent waypoints cleared. Every fleet is also
// guaranteed to leave the step with at least an idle waypoint
// at its position.
//
// The `w` defines the world.
//
// Returns the messages produced by the step.
func processTransfersAndMerges(w *World) []Message {
	messages := make([]Message, 0)

	for _, fleet := range w.AllFleets() {
		if len(fleet.Waypoints) == 0 {
			fleet.Waypoints = []Waypoint{NoTaskWaypoint(fleet.Position)}
			continue
		}

		waypoint := &fleet.Waypoints[0]
		if waypoint.Position != fleet.Position {
			continue
		}

		empire, err := w.Empire(fleet.Owner())
		if err != nil {
			continue
		}

		switch waypoint.Task.Kind {
		case TransferCargoTask:
			messages = append(messages, transferCargo(w, empire, fleet, waypoint.Task)...)
			waypoint.Task = Task{Kind: NoTask}
		case SplitMergeTask:
			if waypoint.Task.OtherFleet != 0 {
				messages = append(messages, mergeFleets(w, empire, fleet, waypoint.Task)...)
			} else {
				messages = append(messages, splitFleet(w, empire, fleet, waypoint.Task)...)
			}
			waypoint.Task = Task{Kind: NoTask}
		}
	}

	return messages
}

// transferCargo :
// Moves cargo between a fleet and the star it orbits. Loads
// are bounded by the stockpile of the star and the free cargo
// capacity of the fleet; unloads by the cargo on board. The
// set mode adjusts the hold towards the requested amounts,
// loading or unloading each component as needed under the
// same bounds.
//
// The `w` defines the world.
//
// The `e` defines the owning empire of the fleet.
//
// The `f` defines the fleet performing the transfer.
//
// The `task` defines the transfer parameters.
//
// Returns the messages produced by the transfer.
func transferCargo(w *World, e *Empire, f *Fleet, task Task) []Message {
	messages := make([]Message, 0)

	star := w.StarAt(f.Position)
	if star == nil {
		return append(messages, Message{
			Audience: e.ID,
			Text:     fmt.Sprintf("%s cannot transfer cargo: there is no star at its position.", f.Name),
			Kind:     FleetMessage,
			Fleet:    f.Key,
		})
	}

	capacity := 0
	for _, key := range f.SortedTokenKeys() {
		design, ok := e.Designs[key]
		if ok {
			capacity += design.Summary.CargoCapacity * f.Tokens[key].Quantity
		}
	}

	move := func(available int, wanted int, room int) int {
		amount := wanted
		if amount > available {
			amount = available
		}
		if amount > room {
			amount = room
		}
		if amount < 0 {
			amount = 0
		}
		return amount
	}

	switch task.Mode {
	case TransferLoad:
		room := capacity - f.Cargo.Mass()

		amount := move(star.ResourcesOnHand.Ironium, task.Amount.Ironium, room)
		star.ResourcesOnHand.Ironium -= amount
		f.Cargo.Ironium += amount
		room -= amount

		amount = move(star.ResourcesOnHand.Boranium, task.Amount.Boranium, room)
		star.ResourcesOnHand.Boranium -= amount
		f.Cargo.Boranium += amount
		room -= amount

		amount = move(star.ResourcesOnHand.Germanium, task.Amount.Germanium, room)
		star.ResourcesOnHand.Germanium -= amount
		f.Cargo.Germanium += amount
		room -= amount

		// Colonists only board from an owned star, one kiloton
		// per hundred of them.
		if star.Owner == e.ID {
			amount = move(star.Colonists/ColonistsPerKiloton, task.Amount.Colonists, room)
			star.Colonists -= amount * ColonistsPerKiloton
			f.Cargo.Colonists += amount
		}

	case TransferUnload:
		amount := move(f.Cargo.Ironium, task.Amount.Ironium, math.MaxInt32)
		f.Cargo.Ironium -= amount
		star.ResourcesOnHand.Ironium += amount

		amount = move(f.Cargo.Boranium, task.Amount.Boranium, math.MaxInt32)
		f.Cargo.Boranium -= amount
		star.ResourcesOnHand.Boranium += amount

		amount = move(f.Cargo.Germanium, task.Amount.Germanium, math.MaxInt32)
		f.Cargo.Germanium -= amount
		star.ResourcesOnHand.Germanium += amount

		// Colonists only disembark on an owned star; dropping
		// them anywhere else is an invasion, not a transfer.
		if star.Owner == e.ID {
			amount = move(f.Cargo.Colonists, task.Amount.Colonists, math.MaxInt32)
			f.Cargo.Colonists -= amount
			star.Colonists += amount * ColonistsPerKiloton
		}

	case TransferSet:
		room := capacity - f.Cargo.Mass()

		// The signed amount to apply to the hold to reach the
		// wanted level: positive loads, negative unloads.
		adjust := func(current int, wanted int, available int) int {
			if wanted > current {
				return move(available, wanted-current, room)
			}
			return -move(current, current-wanted, math.MaxInt32)
		}

		amount := adjust(f.Cargo.Ironium, task.Amount.Ironium, star.ResourcesOnHand.Ironium)
		star.ResourcesOnHand.Ironium -= amount
		f.Cargo.Ironium += amount
		room -= amount

		amount = adjust(f.Cargo.Boranium, task.Amount.Boranium, star.ResourcesOnHand.Boranium)
		star.ResourcesOnHand.Boranium -= amount
		f.Cargo.Boranium += amount
		room -= amount

		amount = adjust(f.Cargo.Germanium, task.Amount.Germanium, star.ResourcesOnHand.Germanium)
		star.ResourcesOnHand.Germanium -= amount
		f.Cargo.Germanium += amount
		room -= amount

		// Same ownership rule as the plain load and unload.
		if star.Owner == e.ID {
			amount = adjust(f.Cargo.Colonists, task.Amount.Colonists, star.Colonists/ColonistsPerKiloton)
			star.Colonists -= amount * ColonistsPerKiloton
			f.Cargo.Colonists += amount
		}
	}

	return messages
}

// splitFleet :
// Detaches part of a fleet into a new fleet at the same
// position: the selected ships leave with the requested cargo
// and a share of the fuel proportional to the ships moved.
// The selection must leave ships on both sides.
//
// The `w` defines the world.
//
// The `e` defines the owning empire of the fleet.
//
// The `f` defines the fleet splitting up.
//
// The `task` selects the ships and cargo to detach.
//
// Returns the messages produced by the split.
func splitFleet(w *World, e *Empire, f *Fleet, task Task) []Message {
	messages := make([]Message, 0)

	before := f.ShipCount()
	selected := 0
	for _, key := range f.SortedTokenKeys() {
		wanted := task.Ships[key]
		if wanted > f.Tokens[key].Quantity {
			wanted = f.Tokens[key].Quantity
		}
		if wanted > 0 {
			selected += wanted
		}
	}

	if selected == 0 || selected == before {
		return append(messages, Message{
			Audience: e.ID,
			Text:     fmt.Sprintf("%s cannot split: the selection must leave ships on both sides.", f.Name),
			Kind:     FleetMessage,
			Fleet:    f.Key,
		})
	}

	detached := &Fleet{
		Key:             e.NextFleetKey(),
		Name:            f.Name,
		Position:        f.Position,
		InOrbit:         f.InOrbit,
		Tokens:          make(map[DesignKey]*ShipToken),
		Waypoints:       []Waypoint{NoTaskWaypoint(f.Position)},
		BattlePlanName:  f.BattlePlanName,
		TurnYearCreated: w.TurnYear,
	}

	for _, key := range f.SortedTokenKeys() {
		wanted := task.Ships[key]
		if wanted <= 0 {
			continue
		}

		token := f.Tokens[key]
		if wanted > token.Quantity {
			wanted = token.Quantity
		}

		detached.Tokens[key] = &ShipToken{
			Design:     key,
			Quantity:   wanted,
			Shields:    token.Shields,
			Armor:      token.Armor,
			MaxShields: token.MaxShields,
			MaxArmor:   token.MaxArmor,
		}

		token.Quantity -= wanted
		if token.Quantity <= 0 {
			delete(f.Tokens, key)
		}
	}

	take := func(available int, wanted int) int {
		if wanted > available {
			wanted = available
		}
		if wanted < 0 {
			wanted = 0
		}
		return wanted
	}

	detached.Cargo = Cargo{
		Ironium:   take(f.Cargo.Ironium, task.Amount.Ironium),
		Boranium:  take(f.Cargo.Boranium, task.Amount.Boranium),
		Germanium: take(f.Cargo.Germanium, task.Amount.Germanium),
		Colonists: take(f.Cargo.Colonists, task.Amount.Colonists),
	}
	f.Cargo.Ironium -= detached.Cargo.Ironium
	f.Cargo.Boranium -= detached.Cargo.Boranium
	f.Cargo.Germanium -= detached.Cargo.Germanium
	f.Cargo.Colonists -= detached.Cargo.Colonists

	detached.FuelAvailable = f.FuelAvailable * selected / before
	f.FuelAvailable -= detached.FuelAvailable

	e.Fleets[detached.Key] = detached

	return append(messages, Message{
		Audience: e.ID,
		Text:     fmt.Sprintf("%s has split; the detachment holds %d ships.", f.Name, selected),
		Kind:     FleetMessage,
		Fleet:    detached.Key,
	})
}

// mergeFleets :
// Folds a fleet into another colocated fleet of the same
// empire: tokens, cargo and fuel move over and the source
// fleet is removed.
//
// The `w` defines the world.
//
// The `e` defines the owning empire of the fleets.
//
// The `f` defines the fleet merging away.
//
// The `task` references the receiving fleet.
//
// Returns the messages produced by the merge.
func mergeFleets(w *World, e *Empire, f *Fleet, task Task) []Message {
	messages := make([]Message, 0)

	receiver, ok := e.Fleets[task.OtherFleet]
	if !ok || receiver.Position != f.Position || receiver.Key == f.Key {
		return append(messages, Message{
			Audience: e.ID,
			Text:     fmt.Sprintf("%s cannot merge: the target fleet is not here.", f.Name),
			Kind:     FleetMessage,
			Fleet:    f.Key,
		})
	}

	for _, key := range f.SortedTokenKeys() {
		token := f.Tokens[key]
		if existing, ok := receiver.Tokens[key]; ok {
			existing.Quantity += token.Quantity
		} else {
			receiver.Tokens[key] = token
		}
	}
	f.Tokens = make(map[DesignKey]*ShipToken)

	receiver.Cargo = receiver.Cargo.Add(f.Cargo)
	f.Cargo = Cargo{}
	receiver.FuelAvailable += f.FuelAvailable
	f.FuelAvailable = 0

	delete(e.Fleets, f.Key)
	delete(e.FleetReports, f.Key)

	return messages
}

// scrapFleets :
// Runs the scrap step: fleets holding a scrap task at their
// position are dismantled, recovering three quarters of their
// cost as minerals at the position.
//
// The `w` defines the world.
//
// Returns the messages produced by the step.
func scrapFleets(w *World) []Message {
	messages := make([]Message, 0)

	for _, fleet := range w.AllFleets() {
		if len(fleet.Waypoints) == 0 {
			continue
		}

		waypoint := fleet.Waypoints[0]
		if waypoint.Task.Kind != ScrapTask || waypoint.Position != fleet.Position {
			continue
		}

		empire, err := w.Empire(fleet.Owner())
		if err != nil {
			continue
		}

		recovered := Resources{}
		for _, key := range fleet.SortedTokenKeys() {
			design, ok := empire.Designs[key]
			if !ok {
				continue
			}
			value := design.Summary.Cost.MultiplyInt(fleet.Tokens[key].Quantity).MultiplyFloat(0.75)
			recovered = recovered.Add(value)
		}

		minerals := Resources{
			Ironium:   recovered.Ironium + fleet.Cargo.Ironium,
			Boranium:  recovered.Boranium + fleet.Cargo.Boranium,
			Germanium: recovered.Germanium + fleet.Cargo.Germanium,
		}

		if star := w.StarAt(fleet.Position); star != nil {
			star.ResourcesOnHand = star.ResourcesOnHand.Add(minerals)
		} else {
			salvage := &Fleet{
				Key:      empire.NextFleetKey(),
				Name:     SalvageFleetName,
				Position: fleet.Position,
				Tokens:   make(map[DesignKey]*ShipToken),
				Waypoints: []Waypoint{
					NoTaskWaypoint(fleet.Position),
				},
				Cargo: Cargo{
					Ironium:   minerals.Ironium,
					Boranium:  minerals.Boranium,
					Germanium: minerals.Germanium,
				},
				TurnYearCreated: w.TurnYear,
			}
			empire.Fleets[salvage.Key] = salvage
		}

		fleet.Tokens = make(map[DesignKey]*ShipToken)
		fleet.Cargo = Cargo{}

		messages = append(messages, Message{
			Audience: empire.ID,
			Text:     fmt.Sprintf("%s has been scrapped.", fleet.Name),
			Kind:     FleetMessage,
		})
	}

	return messages
}

// cleanupFleets :
// Removes the fleets that no longer exist: empty fleets,
// starbases whose star is gone and decayed salvage. Salvage
// loses 30% of its cargo per turn and is removed outright
// after three turns.
//
// The `w` defines the world.
func cleanupFleets(w *World) {
	for _, id := range w.SortedEmpireIDs() {
		empire := w.Empires[id]

		for _, key := range empire.SortedFleetKeys() {
			fleet := empire.Fleets[key]

			if fleet.IsSalvage() {
				age := w.TurnYear - fleet.TurnYearCreated
				if age > 0 {
					fleet.Cargo = Cargo{
						Ironium:   fleet.Cargo.Ironium - int(math.Ceil(float64(fleet.Cargo.Ironium)*SalvageDecayRate)),
						Boranium:  fleet.Cargo.Boranium - int(math.Ceil(float64(fleet.Cargo.Boranium)*SalvageDecayRate)),
						Germanium: fleet.Cargo.Germanium - int(math.Ceil(float64(fleet.Cargo.Germanium)*SalvageDecayRate)),
					}
				}
				if age > SalvageMaxAge || fleet.Cargo.Mass() == 0 {
					delete(empire.Fleets, key)
					delete(empire.FleetReports, key)
				}
				continue
			}

			if fleet.Empty() {
				delete(empire.Fleets, key)
				delete(empire.FleetReports, key)
			}
		}
	}

	// Starbase references pointing at removed fleets are
	// cleared so the repair code does not chase ghosts.
	for _, name := range w.SortedStarNames() {
		star := w.Stars[name]
		if star.Starbase != 0 && w.FleetByKey(star.Starbase) == nil {
			star.Starbase = 0
		}
	}
}

// movePackets :
// Advances every mineral packet towards its destination at
// the square of its warp factor, eroding 5% of the carried
// minerals per turn of flight. A packet reaching its target
// slams into the star: three quarters of the population die
// and the minerals join the stockpile.
//
// The `w` defines the world.
//
// Returns the messages produced by the step.
func movePackets(w *World) []Message {
	messages := make([]Message, 0)

	for _, fleet := range w.AllFleets() {
		if !fleet.Packet || len(fleet.Waypoints) == 0 {
			continue
		}

		target := fleet.Waypoints[0]
		distance := fleet.Position.DistanceTo(target.Position)
		speed := float64(target.WarpFactor * target.WarpFactor)

		// In-flight erosion.
		fleet.Cargo = Cargo{
			Ironium:   fleet.Cargo.Ironium - int(math.Ceil(float64(fleet.Cargo.Ironium)*MineralPacketDecayRate)),
			Boranium:  fleet.Cargo.Boranium - int(math.Ceil(float64(fleet.Cargo.Boranium)*MineralPacketDecayRate)),
			Germanium: fleet.Cargo.Germanium - int(math.Ceil(float64(fleet.Cargo.Germanium)*MineralPacketDecayRate)),
		}

		attacker, err := w.Empire(fleet.Owner())
		if err != nil {
			continue
		}

		if distance > speed {
			ratio := speed / distance
			fleet.Position = Position{
				X: fleet.Position.X + int(math.Round(float64(target.Position.X-fleet.Position.X)*ratio)),
				Y: fleet.Position.Y + int(math.Round(float64(target.Position.Y-fleet.Position.Y)*ratio)),
			}
			continue
		}

		// Impact.
		fleet.Position = target.Position
		star := w.StarAt(target.Position)
		if star != nil {
			star.ResourcesOnHand = star.ResourcesOnHand.Add(Resources{
				Ironium:   fleet.Cargo.Ironium,
				Boranium:  fleet.Cargo.Boranium,
				Germanium: fleet.Cargo.Germanium,
			})

			if star.Owned() {
				killed := star.Colonists - star.Colonists/4
				star.Colonists /= 4

				messages = append(messages, Message{
					Audience: attacker.ID,
					Text:     fmt.Sprintf("Our mineral packet has struck %s, killing %d colonists.", star.Name, killed),
					Kind:     PacketMessage,
				})

				if defender, err := w.Empire(star.Owner); err == nil {
					defender.Notify(Message{
						Text: fmt.Sprintf("A mineral packet has struck %s, killing %d of our colonists.", star.Name, killed),
						Kind: PacketMessage,
					})
					if star.Colonists <= 0 {
						delete(defender.Stars, star.Name)
						star.Abandon()
					}
				}
			} else {
				messages = append(messages, Message{
					Audience: attacker.ID,
					Text:     fmt.Sprintf("Our mineral packet has landed on %s.", star.Name),
					Kind:     PacketMessage,
				})
			}
		}

		fleet.Cargo = Cargo{}
		delete(attacker.Fleets, fleet.Key)
	}

	return messages
}
