package game

import (
	"encoding/json"
	"fmt"
)

// CommandMode :
// Describes the edit operation carried by a command.
type CommandMode string

// Possible values for the mode of a command.
const (
	CommandAdd    CommandMode = "Add"
	CommandEdit   CommandMode = "Edit"
	CommandDelete CommandMode = "Delete"
	CommandInsert CommandMode = "Insert"
)

// ErrUnknownCommandType : Indicates that a command envelope
// carries a type the engine does not know.
var ErrUnknownCommandType = fmt.Errorf("Unknown command type")

// Command :
// Describes the sole way players mutate their empire between
// turns. Each variant exposes exactly two operations: a pure
// validation against a snapshot of the empire and the
// application of the mutation. `Apply` must not be called
// unless `Validate` returned ok.
//
// The `Validate` checks the command against the empire and
// the world without mutating anything. When the command is
// rejected an explanatory message may be returned.
//
// The `Apply` performs the mutation and may return a message
// describing a soft, non-mutating outcome.
type Command interface {
	Validate(e *Empire, w *World) (bool, *Message)
	Apply(e *Empire, w *World) *Message
}

// invalidCommand :
// Convenience helper building the soft failure message every
// rejected command produces.
//
// The `reason` defines the human readable rejection reason.
//
// Returns the message.
func invalidCommand(reason string) *Message {
	return &Message{
		Text: fmt.Sprintf("Invalid Command: %s", reason),
		Kind: InvalidCommandMessage,
	}
}

// WaypointCommand :
// Edits the route of a fleet.
//
// The `Mode` defines the edit operation. An edit pops the
// waypoint at the index and inserts the payload at the same
// place.
//
// The `Fleet` defines the key of the fleet to edit.
//
// The `Index` defines which waypoint the operation targets.
//
// The `Waypoint` carries the payload for add, insert and
// edit operations.
type WaypointCommand struct {
	Mode     CommandMode `json:"mode"`
	Fleet    FleetKey    `json:"fleet"`
	Index    int         `json:"index"`
	Waypoint *Waypoint   `json:"waypoint,omitempty"`
}

// Validate :
// Implementation of the `Command` interface.
func (c *WaypointCommand) Validate(e *Empire, w *World) (bool, *Message) {
	if _, ok := e.Fleets[c.Fleet]; !ok {
		return false, invalidCommand(fmt.Sprintf("fleet %d does not belong to empire %d", c.Fleet, e.ID))
	}

	switch c.Mode {
	case CommandAdd, CommandEdit, CommandInsert:
		if c.Waypoint == nil {
			return false, invalidCommand("waypoint payload is missing")
		}
		if c.Waypoint.WarpFactor < 0 || c.Waypoint.WarpFactor > 10 {
			return false, invalidCommand("warp factor out of range")
		}
	case CommandDelete:
	default:
		return false, invalidCommand(fmt.Sprintf("unsupported waypoint mode \"%s\"", c.Mode))
	}

	return true, nil
}

// Apply :
// Implementation of the `Command` interface.
func (c *WaypointCommand) Apply(e *Empire, w *World) *Message {
	fleet := e.Fleets[c.Fleet]

	switch c.Mode {
	case CommandAdd:
		fleet.Waypoints = append(fleet.Waypoints, *c.Waypoint)
	case CommandInsert:
		index := c.Index
		if index < 0 {
			index = 0
		}
		if index > len(fleet.Waypoints) {
			index = len(fleet.Waypoints)
		}
		fleet.Waypoints = append(fleet.Waypoints, Waypoint{})
		copy(fleet.Waypoints[index+1:], fleet.Waypoints[index:])
		fleet.Waypoints[index] = *c.Waypoint
	case CommandEdit:
		if c.Index < 0 || c.Index >= len(fleet.Waypoints) {
			return invalidCommand("waypoint index out of range")
		}
		fleet.Waypoints[c.Index] = *c.Waypoint
	case CommandDelete:
		// An out-of-range delete is a soft error: the route is
		// left untouched.
		if c.Index < 0 || c.Index >= len(fleet.Waypoints) {
			return invalidCommand("waypoint index out of range")
		}
		fleet.Waypoints = append(fleet.Waypoints[:c.Index], fleet.Waypoints[c.Index+1:]...)
	}

	return nil
}

// DesignCommand :
// Edits the ship designs of an empire.
//
// The `Mode` defines the edit operation: add registers the
// carried design, edit toggles the obsolete flag of the
// referenced design and delete removes it.
//
// The `Design` carries the payload for add operations.
//
// The `Key` references the design for edit and delete.
type DesignCommand struct {
	Mode   CommandMode `json:"mode"`
	Design *ShipDesign `json:"design,omitempty"`
	Key    DesignKey   `json:"key,omitempty"`
}

// Validate :
// Implementation of the `Command` interface.
func (c *DesignCommand) Validate(e *Empire, w *World) (bool, *Message) {
	switch c.Mode {
	case CommandAdd:
		if c.Design == nil {
			return false, invalidCommand("design payload is missing")
		}
		if _, ok := e.Designs[c.Design.Key]; ok {
			return false, invalidCommand(fmt.Sprintf("design %d already exists", c.Design.Key))
		}
	case CommandEdit, CommandDelete:
		if _, ok := e.Designs[c.Key]; !ok {
			return false, invalidCommand(fmt.Sprintf("design %d does not exist", c.Key))
		}
	default:
		return false, invalidCommand(fmt.Sprintf("unsupported design mode \"%s\"", c.Mode))
	}

	return true, nil
}

// Apply :
// Implementation of the `Command` interface.
func (c *DesignCommand) Apply(e *Empire, w *World) *Message {
	switch c.Mode {
	case CommandAdd:
		design := *c.Design
		design.Dirty = true
		e.Designs[design.Key] = &design
	case CommandEdit:
		e.Designs[c.Key].Obsolete = !e.Designs[c.Key].Obsolete
	case CommandDelete:
		delete(e.Designs, c.Key)

		// Deleting a design cascades: the tokens built from it
		// disappear from every fleet and fleets left empty are
		// removed along with their stale reports.
		for _, key := range e.SortedFleetKeys() {
			fleet := e.Fleets[key]
			delete(fleet.Tokens, c.Key)
			if fleet.Empty() && !fleet.IsSalvage() && !fleet.Packet {
				delete(e.Fleets, key)
				delete(e.FleetReports, key)
			}
		}
	}

	return nil
}

// ProductionCommand :
// Edits the manufacturing queue of a star owned by the
// empire.
//
// The `Mode` defines the edit operation.
//
// The `Star` names the star to edit.
//
// The `Index` defines which queue entry the operation
// targets. An add at an index past the end of the queue is
// renormalised to an append.
//
// The `Order` carries the payload for add and edit.
type ProductionCommand struct {
	Mode  CommandMode      `json:"mode"`
	Star  string           `json:"star"`
	Index int              `json:"index"`
	Order *ProductionOrder `json:"order,omitempty"`
}

// Validate :
// Implementation of the `Command` interface.
func (c *ProductionCommand) Validate(e *Empire, w *World) (bool, *Message) {
	star, err := w.Star(c.Star)
	if err != nil || star.Owner != e.ID {
		return false, invalidCommand(fmt.Sprintf("star \"%s\" is not owned by empire %d", c.Star, e.ID))
	}

	switch c.Mode {
	case CommandAdd:
		if c.Order == nil {
			return false, invalidCommand("production order payload is missing")
		}
		if c.Order.Kind == ShipOrder || c.Order.Kind == StarbaseOrder {
			if _, ok := e.Designs[c.Order.Design]; !ok {
				return false, invalidCommand(fmt.Sprintf("order references unknown design %d", c.Order.Design))
			}
		}
	case CommandEdit:
		if c.Order == nil {
			return false, invalidCommand("production order payload is missing")
		}
		if c.Index < 0 || c.Index >= len(star.ProductionQueue) {
			return false, invalidCommand("production index out of range")
		}
	case CommandDelete:
		if c.Index < 0 || c.Index >= len(star.ProductionQueue) {
			return false, invalidCommand("production index out of range")
		}
	default:
		return false, invalidCommand(fmt.Sprintf("unsupported production mode \"%s\"", c.Mode))
	}

	return true, nil
}

// Apply :
// Implementation of the `Command` interface.
func (c *ProductionCommand) Apply(e *Empire, w *World) *Message {
	star := w.Stars[c.Star]

	switch c.Mode {
	case CommandAdd:
		index := c.Index
		if index < 0 || index > len(star.ProductionQueue) {
			index = len(star.ProductionQueue)
		}
		star.ProductionQueue = append(star.ProductionQueue, ProductionOrder{})
		copy(star.ProductionQueue[index+1:], star.ProductionQueue[index:])
		star.ProductionQueue[index] = *c.Order
	case CommandEdit:
		star.ProductionQueue[c.Index] = *c.Order
	case CommandDelete:
		star.ProductionQueue = append(star.ProductionQueue[:c.Index], star.ProductionQueue[c.Index+1:]...)
	}

	return nil
}

// ResearchCommand :
// Edits the research settings of the empire.
//
// The `Budget` defines the share of the yearly resources
// routed to research, in the `0..100` range.
//
// The `Priority` defines the per-field weights deciding the
// researched field.
type ResearchCommand struct {
	Budget   int       `json:"budget"`
	Priority TechLevel `json:"priority"`
}

// Validate :
// Implementation of the `Command` interface. A command that
// would not change anything is rejected so that replayed or
// duplicated submissions stay visible to the player.
func (c *ResearchCommand) Validate(e *Empire, w *World) (bool, *Message) {
	if c.Budget < 0 || c.Budget > 100 {
		return false, invalidCommand("research budget out of range")
	}
	if c.Budget == e.ResearchBudget && c.Priority.Equals(e.ResearchPriority) {
		return false, invalidCommand("research settings unchanged")
	}

	return true, nil
}

// Apply :
// Implementation of the `Command` interface.
func (c *ResearchCommand) Apply(e *Empire, w *World) *Message {
	e.ResearchBudget = c.Budget
	e.ResearchPriority = c.Priority.Clone()

	return nil
}

// commandEnvelope :
// Wire shape of a command: a type tag next to the flattened
// variant payload.
type commandEnvelope struct {
	Type string `json:"type"`
}

// UnmarshalCommand :
// Parses the JSON representation of a command into the
// matching variant.
//
// The `data` defines the raw JSON payload.
//
// Returns the command along with any error.
func UnmarshalCommand(data []byte) (Command, error) {
	var envelope commandEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, err
	}

	var cmd Command
	switch envelope.Type {
	case "Waypoint":
		cmd = &WaypointCommand{}
	case "Design":
		cmd = &DesignCommand{}
	case "Production":
		cmd = &ProductionCommand{}
	case "Research":
		cmd = &ResearchCommand{}
	default:
		return nil, ErrUnknownCommandType
	}

	if err := json.Unmarshal(data, cmd); err != nil {
		return nil, err
	}

	return cmd, nil
}
