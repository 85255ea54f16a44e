package scheduler

import (
	"fmt"

	"github.com/onsi/gomega/matchers/support/goraph/bipartitegraph"
	"github.com/samber/lo"

	"github.com/classforge/timetable/internal/calendar"
	"github.com/classforge/timetable/internal/constraint"
	"github.com/classforge/timetable/pkg/model"
)

// revalidate replays every hard constraint over the complete assignment
// before the timetable is published. The search and annealing phases already
// maintain these invariants; this is the single commit gate that any branch
// must pass, so a bug upstream can never leak a conflicting timetable out.
func revalidate(s *search, evaluator constraint.Evaluator) error {
	placements := s.placements()
	if len(placements) != len(s.sessions) {
		return fmt.Errorf("commit rejected: %d of %d sessions unassigned", len(s.sessions)-len(placements), len(s.sessions))
	}

	lunch := func(day model.Day) model.Slot {
		return model.Slot{Day: day, Start: model.LunchStart, End: model.LunchEnd}
	}

	for _, p := range placements {
		if p.Slot.Start < model.DayStart || p.Slot.End > model.DayEnd {
			return fmt.Errorf("commit rejected: %s falls outside operating hours", p.Session.DisplayName())
		}
		if p.Slot.Overlaps(lunch(p.Slot.Day)) {
			return fmt.Errorf("commit rejected: %s overlaps the lunch break", p.Session.DisplayName())
		}
		if !evaluator.Fits(p.Session, p.Room) {
			return fmt.Errorf("commit rejected: %s does not fit %s", p.Session.DisplayName(), p.Room.Name)
		}
	}

	for i := range len(placements) - 1 {
		for j := i + 1; j < len(placements); j++ {
			a, b := placements[i], placements[j]
			if !a.Slot.Overlaps(b.Slot) {
				continue
			}
			if a.Room.Name == b.Room.Name {
				return fmt.Errorf("commit rejected: %s and %s share room %s at %v", a.Session.DisplayName(), b.Session.DisplayName(), a.Room.Name, a.Slot)
			}
			if evaluator.Conflicts(a.Session, b.Session) {
				return fmt.Errorf("commit rejected: %s and %s overlap at %v", a.Session.DisplayName(), b.Session.DisplayName(), a.Slot)
			}
		}
	}

	return matchRooms(placements, s.rooms, evaluator)
}

// matchRooms re-derives, cell by cell, that the simultaneous sessions could
// be seated in distinct fitting rooms, using a maximum bipartite matching.
func matchRooms(placements []model.Placement, rooms []*model.Classroom, evaluator constraint.Evaluator) error {
	type cellKey struct {
		day  model.Day
		cell int
	}

	simultaneous := make(map[cellKey][]model.Placement)
	keys := make([]cellKey, 0)
	for _, p := range placements {
		for cell := range calendar.CellsPerDay {
			start := calendar.CellStart(cell)
			if start >= p.Slot.Start && start < p.Slot.End {
				key := cellKey{day: p.Slot.Day, cell: cell}
				if _, ok := simultaneous[key]; !ok {
					keys = append(keys, key)
				}
				simultaneous[key] = append(simultaneous[key], p)
			}
		}
	}

	for _, key := range keys {
		active := simultaneous[key]

		neighbours := func(placementAny any, roomAny any) (bool, error) {
			placement := placementAny.(model.Placement)
			room := roomAny.(*model.Classroom)
			return evaluator.Fits(placement.Session, room) && evaluator.RoomOpen(room, key.cell, 1), nil
		}

		placementsAny := lo.Map(active, func(p model.Placement, _ int) any { return p })
		roomsAny := lo.Map(rooms, func(r *model.Classroom, _ int) any { return r })

		graph, err := bipartitegraph.NewBipartiteGraph(placementsAny, roomsAny, neighbours)
		if err != nil {
			return err
		}
		if matching := graph.LargestMatching(); len(matching) < len(active) {
			return fmt.Errorf("commit rejected: %d simultaneous sessions on %v at cell %d cannot be seated in distinct rooms", len(active), key.day, key.cell)
		}
	}
	return nil
}
