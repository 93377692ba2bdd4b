package game

// MessageKind :
// Describes the category of a message addressed to an empire.
// The kind allows the client to group and filter the inbox of
// a player without parsing the text.
type MessageKind string

// Possible values for the kind of a message.
const (
	GeneralMessage        MessageKind = "general"
	InvalidCommandMessage MessageKind = "invalid_command"
	FleetMessage          MessageKind = "fleet"
	BattleMessage         MessageKind = "battle"
	ColonyMessage         MessageKind = "colony"
	ResearchMessage       MessageKind = "research"
	MinefieldMessage      MessageKind = "minefield"
	PacketMessage         MessageKind = "packet"
	InternalErrorMessage  MessageKind = "internal_error"
)

// Message :
// Describes a single entry of the report delivered to an
// empire with a generated turn. Messages are accumulated
// while the pipeline runs and cleared at the start of the
// next turn.
//
// The `Audience` defines the identifier of the empire the
// message is addressed to.
//
// The `Text` defines the human readable content.
//
// The `Kind` defines the category of the message.
//
// The `Fleet` optionally references the fleet the message is
// about, `0` when the message is not about a fleet.
type Message struct {
	Audience int         `json:"audience"`
	Text     string      `json:"text"`
	Kind     MessageKind `json:"kind"`
	Fleet    FleetKey    `json:"fleet,omitempty"`
}
