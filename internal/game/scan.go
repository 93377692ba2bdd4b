package game

import "math"

// scannerRanges :
// Aggregates the sensor reach of a fleet: the best scanner
// and the best penetrating scanner across its tokens.
//
// The `f` defines the fleet to evaluate.
//
// The `designs` allows to resolve the designs of the tokens.
//
// Returns the scan range and the penetrating scan range.
func scannerRanges(f *Fleet, designs map[DesignKey]*ShipDesign) (int, int) {
	scan := 0
	pen := 0

	for _, key := range f.SortedTokenKeys() {
		design, ok := designs[key]
		if !ok {
			continue
		}
		if design.Summary.ScanRange > scan {
			scan = design.Summary.ScanRange
		}
		if design.Summary.PenScanRange > pen {
			pen = design.Summary.PenScanRange
		}
	}

	return scan, pen
}

// ownedStarReport :
// Builds the full report an empire holds about one of its own
// stars.
//
// The `star` defines the star to report.
//
// The `year` defines the year of the report.
//
// Returns the report.
func ownedStarReport(star *Star, year int) *StarReport {
	return &StarReport{
		Name:      star.Name,
		PositionX: star.Position.X,
		PositionY: star.Position.Y,
		Year:      year,
		Scan:      ScanOwned,

		Owner:       star.Owner,
		Colonists:   star.Colonists,
		Gravity:     star.Gravity,
		Temperature: star.Temperature,
		Radiation:   star.Radiation,

		IroniumConcentration:   star.IroniumConcentration,
		BoraniumConcentration:  star.BoraniumConcentration,
		GermaniumConcentration: star.GermaniumConcentration,

		Factories: star.Factories,
		Mines:     star.Mines,
		Defenses:  star.Defenses,

		IroniumStockpile:   star.ResourcesOnHand.Ironium,
		BoraniumStockpile:  star.ResourcesOnHand.Boranium,
		GermaniumStockpile: star.ResourcesOnHand.Germanium,
	}
}

// deepStarReport :
// Builds the report a penetrating scan yields about a foreign
// star: the environment, the concentrations and the owner but
// none of the infrastructure.
//
// The `star` defines the star to report.
//
// The `year` defines the year of the report.
//
// Returns the report.
func deepStarReport(star *Star, year int) *StarReport {
	return &StarReport{
		Name:      star.Name,
		PositionX: star.Position.X,
		PositionY: star.Position.Y,
		Year:      year,
		Scan:      ScanDeep,

		Owner:       star.Owner,
		Gravity:     star.Gravity,
		Temperature: star.Temperature,
		Radiation:   star.Radiation,

		IroniumConcentration:   star.IroniumConcentration,
		BoraniumConcentration:  star.BoraniumConcentration,
		GermaniumConcentration: star.GermaniumConcentration,
	}
}

// fleetReportOf :
// Builds the report a scan yields about a foreign fleet: its
// position, size and heading.
//
// The `f` defines the fleet to report.
//
// The `year` defines the year of the report.
//
// Returns the report.
func fleetReportOf(f *Fleet, year int) *FleetReport {
	bearing := 0.0
	warp := 0
	if len(f.Waypoints) > 0 {
		target := f.Waypoints[0]
		warp = target.WarpFactor
		bearing = math.Atan2(
			float64(target.Position.Y-f.Position.Y),
			float64(target.Position.X-f.Position.X),
		) * 180 / math.Pi
	}

	return &FleetReport{
		Key:       f.Key,
		Name:      f.Name,
		Owner:     f.Owner(),
		PositionX: f.Position.X,
		PositionY: f.Position.Y,
		Year:      year,
		ShipCount: f.ShipCount(),
		Bearing:   bearing,
		Warp:      warp,
	}
}

// scannerSource :
// One sensor of an empire: a position and the two ranges it
// covers.
type scannerSource struct {
	position Position
	scan     int
	pen      int
}

// scannerSourcesOf :
// Collects the sensors of an empire: every fleet carrying a
// scanner and every owned star whose starbase carries one.
//
// The `w` defines the world.
//
// The `e` defines the empire to collect the sensors of.
//
// Returns the sources.
func scannerSourcesOf(w *World, e *Empire) []scannerSource {
	sources := make([]scannerSource, 0)

	for _, key := range e.SortedFleetKeys() {
		fleet := e.Fleets[key]
		scan, pen := scannerRanges(fleet, e.Designs)
		if scan > 0 || pen > 0 {
			sources = append(sources, scannerSource{fleet.Position, scan, pen})
		}
	}

	return sources
}

// updateIntel :
// Runs the scanning step for every empire: owned stars are
// reported in full, stale foreign fleet reports are dropped
// and the sensors of the empire sweep the galaxy for foreign
// fleets and stars.
//
// The `w` defines the world.
func updateIntel(w *World) {
	allFleets := w.AllFleets()

	for _, id := range w.SortedEmpireIDs() {
		empire := w.Empires[id]

		// 1. Owned stars report in full.
		for _, name := range empire.SortedStarNames() {
			star, err := w.Star(name)
			if err != nil {
				continue
			}
			empire.StarReports[name] = ownedStarReport(star, w.TurnYear)
		}

		// 2. Foreign fleet reports go stale after one turn.
		for key := range empire.FleetReports {
			if key.Owner() != empire.ID {
				delete(empire.FleetReports, key)
			}
		}
		for _, key := range empire.SortedFleetKeys() {
			empire.FleetReports[key] = fleetReportOf(empire.Fleets[key], w.TurnYear)
		}

		// 3. Sensor sweep.
		sources := scannerSourcesOf(w, empire)
		for _, source := range sources {
			for _, fleet := range allFleets {
				if fleet.Owner() == empire.ID {
					continue
				}
				if source.position.DistanceTo(fleet.Position) <= float64(source.scan) {
					empire.FleetReports[fleet.Key] = fleetReportOf(fleet, w.TurnYear)
				}
			}

			for _, name := range w.SortedStarNames() {
				star := w.Stars[name]
				if star.Owner == empire.ID {
					continue
				}

				distance := source.position.DistanceTo(star.Position)
				if distance <= float64(source.pen) {
					empire.StarReports[name] = deepStarReport(star, w.TurnYear)
					continue
				}

				// Inside the regular scanner range the star is at
				// least known to exist; never downgrade a deeper
				// report though.
				if distance <= float64(source.scan) {
					if existing, ok := empire.StarReports[name]; ok && existing.Scan != ScanNone {
						continue
					}
					empire.StarReports[name] = &StarReport{
						Name:      star.Name,
						PositionX: star.Position.X,
						PositionY: star.Position.Y,
						Year:      w.TurnYear,
						Scan:      ScanInScan,
					}
				}
			}
		}
	}
}

// refreshMinefieldVisibility :
// Rebuilds the visible minefields of every empire: its own
// fields, the fields covered by its sensors and the fields
// its fleets crossed during the movement step of this turn.
//
// The `w` defines the world.
func refreshMinefieldVisibility(w *World) {
	for _, id := range w.SortedEmpireIDs() {
		empire := w.Empires[id]

		visible := make(map[uint64]*Minefield)
		sources := scannerSourcesOf(w, empire)

		for _, key := range w.SortedMinefieldKeys() {
			field := w.Minefields[key]

			if field.Owner == empire.ID || empire.spotted[key] {
				visible[key] = field
				continue
			}

			for _, source := range sources {
				if source.position.DistanceTo(field.Position) <= float64(source.scan)+field.Radius() {
					visible[key] = field
					break
				}
			}
		}

		empire.VisibleMinefields = visible
		empire.spotted = nil
	}
}
