package game

import (
	"fmt"
	"math"
)

// bombStars :
// Runs the bombing phase: every bomber fleet orbiting a star
// its empire considers hostile erodes the colonists of the
// star. The defenses absorb a share of the kill rate. A star
// bombed down to zero colonists is abandoned and loses its
// installations.
//
// The `w` defines the world.
//
// Returns the messages produced by the phase.
func bombStars(w *World) []Message {
	messages := make([]Message, 0)

	for _, fleet := range w.AllFleets() {
		if len(fleet.InOrbit) == 0 || fleet.Packet || fleet.IsSalvage() {
			continue
		}

		star := w.Stars[fleet.InOrbit]
		if star == nil || !star.Owned() || star.Owner == fleet.Owner() {
			continue
		}

		attacker, err := w.Empire(fleet.Owner())
		if err != nil || !attacker.IsEnemy(star.Owner) {
			continue
		}

		killRate := 0.0
		for _, key := range fleet.SortedTokenKeys() {
			token := fleet.Tokens[key]
			design, ok := attacker.Designs[key]
			if !ok {
				continue
			}
			killRate += design.Summary.BombKillRate * float64(token.Quantity)
		}

		if killRate == 0 {
			continue
		}

		killed := int(float64(star.Colonists) * killRate * (1 - star.DefenseCoverage()))
		if killed > star.Colonists {
			killed = star.Colonists
		}
		if killed == 0 {
			continue
		}

		star.Colonists -= killed

		messages = append(messages, Message{
			Audience: attacker.ID,
			Text:     fmt.Sprintf("%s has killed %d colonists bombing %s.", fleet.Name, killed, star.Name),
			Kind:     FleetMessage,
			Fleet:    fleet.Key,
		})

		defender, err := w.Empire(star.Owner)
		if err == nil {
			defender.Notify(Message{
				Text: fmt.Sprintf("Enemy bombers have killed %d of our colonists on %s.", killed, star.Name),
				Kind: ColonyMessage,
			})
		}

		if star.Colonists <= 0 {
			if err == nil {
				delete(defender.Stars, star.Name)
				defender.Notify(Message{
					Text: fmt.Sprintf("Our colony on %s has been wiped out by enemy bombing.", star.Name),
					Kind: ColonyMessage,
				})
			}
			star.Abandon()
		}
	}

	return messages
}

// coloniseAndInvade :
// Runs the post-bombing phase: the fleets holding a colonise
// or invade task at their position perform it.
//
// The `w` defines the world.
//
// Returns the messages produced by the phase.
func coloniseAndInvade(w *World) []Message {
	messages := make([]Message, 0)

	for _, fleet := range w.AllFleets() {
		if len(fleet.Waypoints) == 0 {
			continue
		}

		waypoint := fleet.Waypoints[0]
		if waypoint.Position != fleet.Position {
			continue
		}

		empire, err := w.Empire(fleet.Owner())
		if err != nil {
			continue
		}

		switch waypoint.Task.Kind {
		case ColoniseTask:
			messages = append(messages, colonise(w, empire, fleet)...)
		case InvadeTask:
			messages = append(messages, invade(w, empire, fleet)...)
		}
	}

	return messages
}

// colonise :
// Settles the star at the position of the fleet. The fleet
// must carry a colonisation module and at least one kiloton
// of colonists, and the star must be unowned. The colonising
// token is consumed by the landing.
//
// The `w` defines the world.
//
// The `e` defines the owning empire of the fleet.
//
// The `f` defines the colonising fleet.
//
// Returns the messages produced by the attempt.
func colonise(w *World, e *Empire, f *Fleet) []Message {
	messages := make([]Message, 0)

	fail := func(reason string) []Message {
		f.Waypoints[0].Task = Task{Kind: NoTask}
		return append(messages, Message{
			Audience: e.ID,
			Text:     fmt.Sprintf("%s cannot colonise: %s.", f.Name, reason),
			Kind:     FleetMessage,
			Fleet:    f.Key,
		})
	}

	star := w.StarAt(f.Position)
	if star == nil {
		return fail("there is no star at its position")
	}
	if star.Owned() {
		return fail(fmt.Sprintf("%s is already inhabited", star.Name))
	}

	ok, colonizer := f.HasColonizer(e.Designs)
	if !ok {
		return fail("it carries no colonisation module")
	}
	if f.Cargo.Colonists < 1 {
		return fail("it carries no colonists")
	}

	star.Owner = e.ID
	star.Colonists = f.Cargo.Colonists * ColonistsPerKiloton
	star.ResourcesOnHand = star.ResourcesOnHand.Add(Resources{
		Ironium:   f.Cargo.Ironium,
		Boranium:  f.Cargo.Boranium,
		Germanium: f.Cargo.Germanium,
	})
	f.Cargo = Cargo{}
	e.Stars[star.Name] = true

	// The landing consumes the colonising ship; a fleet with
	// nothing else aboard disbands on the spot.
	token := f.Tokens[colonizer]
	token.Quantity--
	if token.Quantity <= 0 {
		delete(f.Tokens, colonizer)
	}

	f.Waypoints[0].Task = Task{Kind: NoTask}

	if f.ShipCount() == 0 {
		delete(e.Fleets, f.Key)
		delete(e.FleetReports, f.Key)
	}

	return append(messages, Message{
		Audience: e.ID,
		Text:     fmt.Sprintf("%s has founded a new colony on %s.", f.Name, star.Name),
		Kind:     ColonyMessage,
		Fleet:    f.Key,
	})
}

// invade :
// Throws the carried colonists of the fleet against the star
// at its position. Ground combat favours the attacker with a
// 1.1 strength factor; the winner keeps survivors in
// proportion to the strength of the loser and ownership only
// changes hands when the invaders win. The invading colonists
// never return to the fleet.
//
// The `w` defines the world.
//
// The `e` defines the owning empire of the fleet.
//
// The `f` defines the invading fleet.
//
// Returns the messages produced by the attempt.
func invade(w *World, e *Empire, f *Fleet) []Message {
	messages := make([]Message, 0)

	fail := func(reason string) []Message {
		f.Waypoints[0].Task = Task{Kind: NoTask}
		return append(messages, Message{
			Audience: e.ID,
			Text:     fmt.Sprintf("%s cannot invade: %s.", f.Name, reason),
			Kind:     FleetMessage,
			Fleet:    f.Key,
		})
	}

	star := w.StarAt(f.Position)
	if star == nil {
		return fail("there is no star at its position")
	}
	if !star.Owned() || star.Owner == e.ID {
		return fail(fmt.Sprintf("%s is not held by an enemy", star.Name))
	}
	if f.Cargo.Colonists < 1 {
		return fail("it carries no colonists")
	}

	invaders := f.Cargo.Colonists * ColonistsPerKiloton
	f.Cargo.Colonists = 0
	f.Waypoints[0].Task = Task{Kind: NoTask}

	attackerStrength := float64(invaders) * 1.1
	defenderStrength := float64(star.Colonists)

	defender, _ := w.Empire(star.Owner)

	if attackerStrength > defenderStrength {
		// The invaders win: survivors in proportion to the
		// strength the defenders threw at them.
		survivors := int(math.Floor(float64(invaders) * (1 - defenderStrength/attackerStrength*0.9)))
		if survivors < 1 {
			survivors = 1
		}

		if defender != nil {
			delete(defender.Stars, star.Name)
			defender.Notify(Message{
				Text: fmt.Sprintf("We have lost %s to an invasion by empire %d.", star.Name, e.ID),
				Kind: ColonyMessage,
			})
		}

		previousOwner := star.Owner
		star.Abandon()
		star.Owner = e.ID
		star.Colonists = survivors
		e.Stars[star.Name] = true

		messages = append(messages, Message{
			Audience: e.ID,
			Text:     fmt.Sprintf("Our troops have taken %s from empire %d; %d colonists survived the assault.", star.Name, previousOwner, survivors),
			Kind:     ColonyMessage,
			Fleet:    f.Key,
		})

		return messages
	}

	// The defenders hold: they keep survivors in proportion to
	// the strength of the invaders.
	survivors := int(math.Floor(float64(star.Colonists) * (1 - attackerStrength/defenderStrength*0.9)))
	if survivors < 1 {
		survivors = 1
	}
	star.Colonists = survivors

	if defender != nil {
		defender.Notify(Message{
			Text: fmt.Sprintf("We have repelled an invasion of %s by empire %d; %d colonists survived.", star.Name, e.ID, survivors),
			Kind: ColonyMessage,
		})
	}

	messages = append(messages, Message{
		Audience: e.ID,
		Text:     fmt.Sprintf("Our invasion of %s has been repelled.", star.Name),
		Kind:     FleetMessage,
		Fleet:    f.Key,
	})

	return messages
}
