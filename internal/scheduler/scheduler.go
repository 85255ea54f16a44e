// Package scheduler assigns every required session to a room and time slot
// satisfying the hard constraints, then refines the soft cost. The search is
// backtracking with forward checking ordered most-constrained-first; a
// seeded simulated-annealing pass runs on top of the first feasible
// assignment.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/classforge/timetable/internal/constraint"
	"github.com/classforge/timetable/pkg/model"
)

type Scheduler interface {
	// Build produces a complete clash-free timetable or reports why none
	// could be produced. Identical input and seed yield an identical
	// timetable. The only mutation Build performs is populating the Room
	// and Slot of the sessions it created; the problem itself is read-only.
	Build(ctx context.Context, problem Problem) (*model.Timetable, error)

	// Verify independently replays every hard constraint and the session
	// completeness requirement against a finished timetable.
	Verify(timetable *model.Timetable, problem Problem) bool
}

func New(cfg Config) Scheduler {
	return &solver{cfg: cfg.withDefaults()}
}

type solver struct {
	cfg Config
}

func (s *solver) Build(ctx context.Context, problem Problem) (*model.Timetable, error) {
	sessions, err := ExpandSessions(problem)
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return &model.Timetable{}, nil
	}

	evaluator := constraint.NewEvaluator(problem.Rooms)
	rooms := orderRooms(problem.Rooms)

	//** Feasibility search
	search, err := newSearch(ctx, sessions, rooms, evaluator, s.cfg.MaxIterations)
	if err != nil {
		return nil, err
	}
	if err := search.run(); err != nil {
		// A spent wall-clock budget is retryable, same as a spent iteration
		// budget. A caller's cancellation passes through untouched.
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &TimeoutError{Iterations: search.iterations}
		}
		return nil, err
	}

	//** Soft-cost refinement
	scorer := constraint.NewScorer(s.cfg.Weights, rooms)
	best := anneal(search, scorer, s.cfg)

	//** Commit gate: revalidate globally, then publish atomically
	if err := revalidate(best, evaluator); err != nil {
		return nil, err
	}

	placements := best.placements()
	for _, p := range placements {
		slot := p.Slot
		p.Session.Room = p.Room
		p.Session.Slot = &slot
	}
	return &model.Timetable{Placements: placements}, nil
}

func (s *solver) Verify(timetable *model.Timetable, problem Problem) bool {
	sessions, err := ExpandSessions(problem)
	if err != nil {
		return false
	}
	if len(timetable.Placements) != len(sessions) {
		return false
	}

	evaluator := constraint.NewEvaluator(problem.Rooms)

	//** Per-placement checks: hours, lunch, room compatibility
	for _, p := range timetable.Placements {
		if p.Slot.Start < model.DayStart || p.Slot.End > model.DayEnd {
			return false
		}
		lunch := model.Slot{Day: p.Slot.Day, Start: model.LunchStart, End: model.LunchEnd}
		if p.Slot.Overlaps(lunch) {
			return false
		}
		if !evaluator.Fits(p.Session, p.Room) {
			return false
		}
	}

	//** Pairwise checks: room, professor and cohort uniqueness
	for i := range len(timetable.Placements) - 1 {
		for j := i + 1; j < len(timetable.Placements); j++ {
			a, b := timetable.Placements[i], timetable.Placements[j]
			if !a.Slot.Overlaps(b.Slot) {
				continue
			}
			if a.Room.Name == b.Room.Name || evaluator.Conflicts(a.Session, b.Session) {
				return false
			}
		}
	}

	//** Completeness: every required session occurs exactly once
	required := make(map[string]int)
	for _, session := range sessions {
		required[sessionKey(session)]++
	}
	for _, p := range timetable.Placements {
		required[sessionKey(p.Session)]--
	}
	for _, count := range required {
		if count != 0 {
			return false
		}
	}
	return true
}

func sessionKey(session *model.Session) string {
	batch := "-"
	if session.Batch != nil {
		batch = session.Batch.ID
	}
	return fmt.Sprintf("%s\x1f%s\x1f%s\x1f%s\x1f%d", session.Course.Name, session.Kind, session.Division.ID, batch, session.Occurrence)
}

// orderRooms fixes the room iteration order for the run: smallest capacity
// first so cohorts land in the tightest fitting room, name breaking ties.
func orderRooms(rooms []*model.Classroom) []*model.Classroom {
	ordered := slices.Clone(rooms)
	slices.SortStableFunc(ordered, func(a, b *model.Classroom) int {
		if a.Capacity != b.Capacity {
			return a.Capacity - b.Capacity
		}
		return strings.Compare(a.Name, b.Name)
	})
	return ordered
}
