package game

// TaskKind :
// Describes the action a fleet performs once it reaches a
// waypoint.
type TaskKind string

// Possible values for the task of a waypoint.
const (
	NoTask            TaskKind = "none"
	TransferCargoTask TaskKind = "transfer_cargo"
	ColoniseTask      TaskKind = "colonise"
	InvadeTask        TaskKind = "invade"
	LayMinesTask      TaskKind = "lay_mines"
	ScrapTask         TaskKind = "scrap"
	SplitMergeTask    TaskKind = "split_merge"
)

// TransferMode :
// Describes the direction of a cargo transfer task.
type TransferMode string

// Possible values for the mode of a cargo transfer.
const (
	TransferLoad   TransferMode = "load"
	TransferUnload TransferMode = "unload"
	TransferSet    TransferMode = "set"
)

// Task :
// Describes the tagged action attached to a waypoint. Only
// the fields relevant to the `Kind` are meaningful.
//
// The `Kind` discriminates the task.
//
// The `Mode` and `Amount` parameterize a cargo transfer; the
// `Target` names the star or carries the decimal fleet key
// the transfer is performed with.
//
// The `Years` defines for how many years a mine laying task
// keeps the fleet in place.
//
// The `OtherFleet` references the fleet to merge with for a
// split/merge task; when it is unset the task is a split and
// the `Ships` select how many ships of each design leave for
// the detached fleet, with the `Amount` naming the cargo they
// take along.
type Task struct {
	Kind       TaskKind          `json:"kind"`
	Mode       TransferMode      `json:"mode,omitempty"`
	Amount     Cargo             `json:"amount,omitempty"`
	Target     string            `json:"target,omitempty"`
	Years      int               `json:"years,omitempty"`
	OtherFleet FleetKey          `json:"other_fleet,omitempty"`
	Ships      map[DesignKey]int `json:"ships,omitempty"`
}

// Waypoint :
// Describes one entry of the route of a fleet. The first
// waypoint of an idle fleet is always its current position.
//
// The `Position` defines where the fleet is headed.
//
// The `WarpFactor` defines the travel speed, in the `0..10`
// range; the speed in light-years per year is its square.
//
// The `Destination` carries the label displayed to the player
// for this waypoint, typically a star name.
//
// The `Task` defines the action to perform on arrival.
type Waypoint struct {
	Position    Position `json:"position"`
	WarpFactor  int      `json:"warp_factor"`
	Destination string   `json:"destination,omitempty"`
	Task        Task     `json:"task"`
}

// NoTaskWaypoint :
// Builds the idle waypoint a fleet holds at its current
// position when it has nothing else to do.
//
// The `position` defines the position of the fleet.
//
// Returns the waypoint.
func NoTaskWaypoint(position Position) Waypoint {
	return Waypoint{
		Position: position,
		Task:     Task{Kind: NoTask},
	}
}
