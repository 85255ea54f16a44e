package scheduler

import (
	"math"
	"math/rand"

	"github.com/classforge/timetable/internal/constraint"
	"github.com/classforge/timetable/pkg/model"
)

// clone deep-copies the mutable search state; static tables are shared.
func (s *search) clone() *search {
	copied := *s

	copied.assigned = make([]int, len(s.assigned))
	copy(copied.assigned, s.assigned)

	copied.roomBusy = make([]dayGrid, len(s.roomBusy))
	copy(copied.roomBusy, s.roomBusy)

	copied.profBusy = make(map[string]*dayGrid, len(s.profBusy))
	for name, grid := range s.profBusy {
		gridCopy := *grid
		copied.profBusy[name] = &gridCopy
	}

	copied.cohorts = make(map[string]*cohortGrid, len(s.cohorts))
	for division, grid := range s.cohorts {
		gridCopy := *grid
		copied.cohorts[division] = &gridCopy
	}

	return &copied
}

// placements materializes the current assignment in canonical session order.
func (s *search) placements() []model.Placement {
	placements := make([]model.Placement, 0, len(s.sessions))
	for i, assignedIdx := range s.assigned {
		if assignedIdx == -1 {
			continue
		}
		c := s.domains[i][assignedIdx]
		placements = append(placements, model.Placement{
			Session: s.sessions[i],
			Room:    s.rooms[c.room],
			Slot:    s.slotOf(i, c),
		})
	}
	return placements
}

// anneal refines a feasible assignment with simulated annealing over the
// soft cost. Moves only relocate one session to another feasible candidate,
// so hard constraints hold throughout. Chains run in parallel with distinct
// seeds; the winner is picked deterministically.
func anneal(base *search, scorer constraint.Scorer, cfg Config) *search {
	type outcome struct {
		chain int
		cost  float64
		state *search
	}

	results := make(chan outcome)
	for chain := range cfg.AnnealChains {
		go func(chain int) {
			state := base.clone()
			rng := rand.New(rand.NewSource(cfg.Seed + int64(chain)))
			cost := annealChain(state, scorer, cfg, rng)
			results <- outcome{chain: chain, cost: cost, state: state}
		}(chain)
	}

	best := outcome{chain: -1}
	for range cfg.AnnealChains {
		result := <-results
		if best.chain == -1 || result.cost < best.cost ||
			(result.cost == best.cost && result.chain < best.chain) {
			best = result
		}
	}
	return best.state
}

func annealChain(state *search, scorer constraint.Scorer, cfg Config, rng *rand.Rand) float64 {
	cost := scorer.Score(state.placements())
	decay := math.Pow(cfg.TempLow/cfg.TempHigh, 1.0/float64(cfg.AnnealSteps))
	temp := cfg.TempHigh

	for range cfg.AnnealSteps {
		temp *= decay

		i := rng.Intn(len(state.sessions))
		target := rng.Intn(len(state.domains[i]))
		current := state.assigned[i]
		if target == current {
			continue
		}

		state.unplace(i)
		if !state.feasible(i, state.domains[i][target]) {
			state.place(i, state.domains[i][current])
			continue
		}

		state.place(i, state.domains[i][target])
		candidateCost := scorer.Score(state.placements())
		delta := candidateCost - cost
		if delta <= 0 || rng.Float64() < math.Exp(-delta/temp) {
			cost = candidateCost
			continue
		}

		state.unplace(i)
		state.place(i, state.domains[i][current])
	}
	return cost
}
