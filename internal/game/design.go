package game

import (
	"fmt"

	"github.com/stellarshenson/stars-ultranova-web-sub000/internal/model"
)

// ErrUnknownHull : Indicates that the hull referenced by a
// design does not exist in the component catalog.
var ErrUnknownHull = fmt.Errorf("Design references an unknown hull")

// ErrSlotOverflow : Indicates that a module allocation holds
// more items than its slot allows.
var ErrSlotOverflow = fmt.Errorf("Module allocation exceeds slot capacity")

// ModuleAllocation :
// Describes the content of a single hull slot in a design.
//
// The `Component` names the catalog item fitted in the slot,
// empty when the slot is left free.
//
// The `Count` defines how many items are fitted.
type ModuleAllocation struct {
	Component string `json:"component,omitempty"`
	Count     int    `json:"count,omitempty"`
}

// WeaponSpec :
// Describes one weapon battery of a design summary, with the
// catalog values resolved so that the battle engine does not
// need to consult the catalog.
type WeaponSpec struct {
	Name       string  `json:"name"`
	Count      int     `json:"count"`
	Power      int     `json:"power"`
	Range      int     `json:"range"`
	Initiative int     `json:"initiative"`
	Accuracy   float64 `json:"accuracy,omitempty"`
	Missile    bool    `json:"missile,omitempty"`
}

// DesignSummary :
// Describes the derived properties of a design, recomputable
// from the hull and the module allocations. The summary is
// refreshed whenever an allocation changes.
type DesignSummary struct {
	Mass          int            `json:"mass"`
	Cost          Resources      `json:"cost"`
	Armor         int            `json:"armor"`
	Shields       int            `json:"shields"`
	FuelCapacity  int            `json:"fuel_capacity"`
	CargoCapacity int            `json:"cargo_capacity"`
	Engine        string         `json:"engine,omitempty"`
	Weapons       []WeaponSpec   `json:"weapons,omitempty"`
	BombKillRate  float64        `json:"bomb_kill_rate,omitempty"`
	MinesPerYear  int            `json:"mines_per_year,omitempty"`
	MineType      model.MineType `json:"mine_type,omitempty"`
	ScanRange     int            `json:"scan_range,omitempty"`
	PenScanRange  int            `json:"pen_scan_range,omitempty"`
	Initiative    int            `json:"initiative"`
	Movement      float64        `json:"movement"`
	Computer      float64        `json:"computer,omitempty"`
	Jamming       float64        `json:"jamming,omitempty"`
	Starbase      bool           `json:"starbase,omitempty"`
	Dock          bool           `json:"dock,omitempty"`
	Colonizer     bool           `json:"colonizer,omitempty"`
}

// Armed :
// Determines whether ships of this design carry any weapon.
//
// Returns `true` for armed designs.
func (s *DesignSummary) Armed() bool {
	return len(s.Weapons) > 0
}

// Bomber :
// Determines whether ships of this design carry bombs.
//
// Returns `true` for bombers.
func (s *DesignSummary) Bomber() bool {
	return s.BombKillRate > 0
}

// ShipDesign :
// Describes a blueprint for the ships of an empire. A design
// references a hull from the catalog and fills its slots with
// module allocations. The derived summary is cached and kept
// in sync through the `Dirty` flag.
//
// The `Key` uniquely identifies the design.
//
// The `Name` is the player-facing name of the design, which
// is also the name given to the fleets built from it.
//
// The `Hull` names the hull component of the design.
//
// The `Slots` describe the module allocations, one entry per
// hull slot in the same order.
//
// The `Obsolete` marks designs hidden from the production
// dialogs; obsolete designs can still fly.
//
// The `Dirty` marks a summary that is stale relative to the
// allocations. It is not persisted: a loaded design always
// recomputes its summary.
//
// The `Summary` caches the derived values of the design.
type ShipDesign struct {
	Key      DesignKey          `json:"key"`
	Name     string             `json:"name"`
	Hull     string             `json:"hull"`
	Slots    []ModuleAllocation `json:"slots"`
	Obsolete bool               `json:"obsolete,omitempty"`
	Dirty    bool               `json:"-"`
	Summary  DesignSummary      `json:"summary"`
}

// UpdateSummary :
// Recomputes the derived summary of the design from the hull
// and the module allocations, and clears the `Dirty` flag.
//
// The `catalog` allows to resolve the referenced components.
//
// Returns any error.
func (d *ShipDesign) UpdateSummary(catalog *model.Catalog) error {
	hull, err := catalog.ByName(d.Hull)
	if err != nil || hull.Type != model.Hull {
		return ErrUnknownHull
	}

	summary := DesignSummary{
		Mass:          hull.Mass,
		Cost:          ResourcesFromCost(hull.Cost),
		Armor:         hull.ArmorStrength,
		FuelCapacity:  hull.FuelCapacity,
		CargoCapacity: hull.CargoCapacity,
		Initiative:    hull.Initiative,
		Starbase:      hull.Starbase,
		Dock:          hull.Dock,
	}

	for id, allocation := range d.Slots {
		if allocation.Count == 0 || len(allocation.Component) == 0 {
			continue
		}

		comp, err := catalog.ByName(allocation.Component)
		if err != nil {
			return err
		}

		if id < len(hull.Slots) && allocation.Count > hull.Slots[id].Max {
			return ErrSlotOverflow
		}

		count := allocation.Count

		summary.Mass += comp.Mass * count
		summary.Cost = summary.Cost.Add(ResourcesFromCost(comp.Cost).MultiplyInt(count))
		summary.Armor += comp.ArmorStrength * count
		summary.Shields += comp.ShieldStrength * count
		summary.FuelCapacity += comp.FuelCapacity * count
		summary.CargoCapacity += comp.CargoCapacity * count
		summary.BombKillRate += comp.KillRate * float64(count)
		summary.Computer += comp.ComputerAccuracy * float64(count)
		summary.Jamming += comp.Jamming * float64(count)

		if comp.Colonizer {
			summary.Colonizer = true
		}

		if comp.MinesPerYear > 0 {
			summary.MinesPerYear += comp.MinesPerYear * count
			summary.MineType = comp.Mines
		}

		if comp.ScanRange > summary.ScanRange {
			summary.ScanRange = comp.ScanRange
		}
		if comp.PenScanRange > summary.PenScanRange {
			summary.PenScanRange = comp.PenScanRange
		}

		if comp.Type == model.Engine {
			summary.Engine = comp.Name
			if comp.BattleMovement > summary.Movement {
				summary.Movement = comp.BattleMovement
			}
		}

		if comp.IsWeapon() {
			summary.Weapons = append(summary.Weapons, WeaponSpec{
				Name:       comp.Name,
				Count:      count,
				Power:      comp.Power,
				Range:      comp.Range,
				Initiative: comp.Initiative,
				Accuracy:   comp.Accuracy,
				Missile:    comp.Type == model.Missile,
			})
		}
	}

	// Jamming cannot fully negate missile accuracy.
	if summary.Jamming > 0.95 {
		summary.Jamming = 0.95
	}

	// Starbases hold their ground; everything else moves at
	// least at the slowest speed class.
	if !summary.Starbase && summary.Movement < 0.5 {
		summary.Movement = 0.5
	}

	d.Summary = summary
	d.Dirty = false

	return nil
}
