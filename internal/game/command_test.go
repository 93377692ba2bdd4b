package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaypointCommandRejectsForeignFleet(t *testing.T) {
	w := newTestWorld(t)
	empire := w.Empires[1]

	cmd := &WaypointCommand{
		Mode:  CommandAdd,
		Fleet: NewFleetKey(2, 1),
		Waypoint: &Waypoint{
			Position:   Position{X: 50, Y: 10},
			WarpFactor: 5,
		},
	}

	ok, failure := cmd.Validate(empire, w)

	assert.False(t, ok)
	require.NotNil(t, failure)
	assert.Contains(t, failure.Text, "Invalid Command")
}

func TestWaypointCommandRejectsWarpOutOfRange(t *testing.T) {
	w := newTestWorld(t)
	empire := w.Empires[1]

	cmd := &WaypointCommand{
		Mode:  CommandAdd,
		Fleet: NewFleetKey(1, 1),
		Waypoint: &Waypoint{
			Position:   Position{X: 50, Y: 10},
			WarpFactor: 11,
		},
	}

	ok, _ := cmd.Validate(empire, w)

	assert.False(t, ok)
}

func TestWaypointCommandExtendsTheRoute(t *testing.T) {
	w := newTestWorld(t)
	empire := w.Empires[1]
	fleet := empire.Fleets[NewFleetKey(1, 1)]

	cmd := &WaypointCommand{
		Mode:  CommandAdd,
		Fleet: fleet.Key,
		Waypoint: &Waypoint{
			Position:    Position{X: 50, Y: 10},
			WarpFactor:  5,
			Destination: "Bellatrix",
		},
	}

	ok, _ := cmd.Validate(empire, w)
	require.True(t, ok)
	assert.Nil(t, cmd.Apply(empire, w))

	require.Len(t, fleet.Waypoints, 2)
	assert.Equal(t, "Bellatrix", fleet.Waypoints[1].Destination)
}

func TestResearchCommandRejectsNoOp(t *testing.T) {
	w := newTestWorld(t)
	empire := w.Empires[1]

	// Resubmitting the current settings changes nothing and is
	// rejected instead of silently swallowed.
	cmd := &ResearchCommand{
		Budget:   empire.ResearchBudget,
		Priority: empire.ResearchPriority.Clone(),
	}

	ok, failure := cmd.Validate(empire, w)

	assert.False(t, ok)
	require.NotNil(t, failure)
	assert.Contains(t, failure.Text, "unchanged")
}

func TestResearchCommandUpdatesTheSettings(t *testing.T) {
	w := newTestWorld(t)
	empire := w.Empires[1]

	cmd := &ResearchCommand{
		Budget:   25,
		Priority: TechLevel{Weapons: 3},
	}

	ok, _ := cmd.Validate(empire, w)
	require.True(t, ok)
	cmd.Apply(empire, w)

	assert.Equal(t, 25, empire.ResearchBudget)
	assert.Equal(t, Weapons, empire.ResearchPriority.TopField())
}

func TestProductionCommandRequiresOwnedStar(t *testing.T) {
	w := newTestWorld(t)
	empire := w.Empires[1]

	cmd := &ProductionCommand{
		Mode:  CommandAdd,
		Star:  "Bellatrix",
		Order: &ProductionOrder{Kind: FactoryOrder, Quantity: 1},
	}

	ok, _ := cmd.Validate(empire, w)

	assert.False(t, ok)
}

func TestProductionCommandRequiresExistingDesign(t *testing.T) {
	w := newTestWorld(t)
	empire := w.Empires[1]

	cmd := &ProductionCommand{
		Mode: CommandAdd,
		Star: "Alkaid",
		Order: &ProductionOrder{
			Kind:     ShipOrder,
			Quantity: 1,
			Design:   NewDesignKey(1, 99),
		},
	}

	ok, _ := cmd.Validate(empire, w)

	assert.False(t, ok)
}

func TestDeletingADesignCascadesToFleets(t *testing.T) {
	w := newTestWorld(t)
	empire := w.Empires[1]

	cmd := &DesignCommand{
		Mode: CommandDelete,
		Key:  NewDesignKey(1, 1),
	}

	ok, _ := cmd.Validate(empire, w)
	require.True(t, ok)
	cmd.Apply(empire, w)

	// The scout fleet only carried ships of the deleted design
	// and disappears with it.
	assert.Empty(t, empire.Designs)
	assert.Empty(t, empire.Fleets)
}

func TestDuplicateSubmissionIsAppliedOnce(t *testing.T) {
	w := newTestWorld(t)
	o := newTestOrchestrator(1)

	// The same submission queued twice: the later copy is
	// applied first and the earlier one is rejected as a no-op.
	commands := map[int][]Command{
		1: {
			&ResearchCommand{Budget: 30, Priority: TechLevel{Energy: 1}},
			&ResearchCommand{Budget: 30, Priority: TechLevel{Energy: 1}},
		},
	}

	messages := o.applyCommands(w, commands)

	assert.Equal(t, 30, w.Empires[1].ResearchBudget)
	require.Len(t, messages, 1)
	assert.Contains(t, messages[0].Text, "Invalid Command")
}

func TestInvalidCommandCostsExactlyOneMessage(t *testing.T) {
	w := newTestWorld(t)
	o := newTestOrchestrator(1)

	commands := map[int][]Command{
		1: {
			&ResearchCommand{Budget: 150, Priority: TechLevel{Energy: 1}},
		},
	}

	budget := w.Empires[1].ResearchBudget
	messages := o.applyCommands(w, commands)

	assert.Equal(t, budget, w.Empires[1].ResearchBudget)
	assert.Len(t, messages, 1)
}

func TestCommandRoundTripThroughTheWire(t *testing.T) {
	payload := []byte(`{"type":"Research","budget":40,"priority":{"weapons":2}}`)

	cmd, err := UnmarshalCommand(payload)
	require.NoError(t, err)

	research, ok := cmd.(*ResearchCommand)
	require.True(t, ok)
	assert.Equal(t, 40, research.Budget)
	assert.Equal(t, 2, research.Priority[Weapons])
}

func TestUnknownCommandTypeIsRejected(t *testing.T) {
	_, err := UnmarshalCommand([]byte(`{"type":"SelfDestruct"}`))

	assert.ErrorIs(t, err, ErrUnknownCommandType)
}
