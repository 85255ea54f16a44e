package constraint

import (
	"sort"

	"github.com/samber/lo"

	"github.com/classforge/timetable/internal/calendar"
	"github.com/classforge/timetable/pkg/model"
)

// CostModel weighs the soft objectives combined into a single scalar cost.
type CostModel struct {
	// IdleWeight penalizes gaps between a cohort's first and last session
	// of a day, per idle hour, weighted by cohort size.
	IdleWeight float64
	// UtilizationWeight penalizes uneven load across classrooms.
	UtilizationWeight float64
	// SpreadWeight penalizes a cohort's week being smeared over many days.
	SpreadWeight float64
}

func DefaultCostModel() CostModel {
	return CostModel{
		IdleWeight:        1.0,
		UtilizationWeight: 0.5,
		SpreadWeight:      0.25,
	}
}

type Scorer interface {
	// Score evaluates the soft cost of a complete assignment. Lower is
	// better; hard-constraint violations are not scored here.
	Score(placements []model.Placement) float64
}

func NewScorer(weights CostModel, rooms []*model.Classroom) Scorer {
	return &scorer{weights: weights, rooms: len(rooms)}
}

type scorer struct {
	weights CostModel
	rooms   int
}

// attendeeGroup is the finest cohort granularity: a batch when the division
// is batched, the whole division otherwise. Every student belongs to exactly
// one group, so group-level gaps equal per-student gaps.
type attendeeGroup struct {
	division string
	batch    string
}

func (s *scorer) Score(placements []model.Placement) float64 {
	return s.weights.IdleWeight*s.idleCost(placements) +
		s.weights.UtilizationWeight*s.utilizationCost(placements) +
		s.weights.SpreadWeight*s.spreadCost(placements)
}

// groupSessions buckets placements per attendee group. A batch attends its
// own labs plus every whole-division session; an unbatched division attends
// all of its sessions.
func (s *scorer) groupSessions(placements []model.Placement) (map[attendeeGroup][]model.Placement, map[attendeeGroup]int) {
	batchesPerDivision := make(map[string]map[string]int)
	for _, p := range placements {
		if p.Session.Batch != nil {
			if batchesPerDivision[p.Session.Division.ID] == nil {
				batchesPerDivision[p.Session.Division.ID] = make(map[string]int)
			}
			batchesPerDivision[p.Session.Division.ID][p.Session.Batch.ID] = len(p.Session.Batch.Students)
		}
	}

	groups := make(map[attendeeGroup][]model.Placement)
	sizes := make(map[attendeeGroup]int)
	for _, p := range placements {
		division := p.Session.Division
		if p.Session.Batch != nil {
			group := attendeeGroup{division: division.ID, batch: p.Session.Batch.ID}
			groups[group] = append(groups[group], p)
			sizes[group] = len(p.Session.Batch.Students)
			continue
		}
		batches := batchesPerDivision[division.ID]
		if len(batches) == 0 {
			group := attendeeGroup{division: division.ID}
			groups[group] = append(groups[group], p)
			sizes[group] = division.Size()
			continue
		}
		// Whole-division session attended by every batch of the division.
		for batch, size := range batches {
			group := attendeeGroup{division: division.ID, batch: batch}
			groups[group] = append(groups[group], p)
			sizes[group] = size
		}
	}
	return groups, sizes
}

func (s *scorer) idleCost(placements []model.Placement) float64 {
	groups, sizes := s.groupSessions(placements)

	cost := 0.0
	for group, attended := range groups {
		perDay := make(map[model.Day][]model.Slot)
		for _, p := range attended {
			perDay[p.Slot.Day] = append(perDay[p.Slot.Day], p.Slot)
		}
		for _, slots := range perDay {
			first, last, busy := slots[0].Start, slots[0].End, 0
			for _, slot := range slots {
				first = min(first, slot.Start)
				last = max(last, slot.End)
				busy += slot.Minutes()
			}
			idleHours := float64(last-first-busy) / 60.0
			cost += idleHours * float64(sizes[group])
		}
	}
	return cost
}

func (s *scorer) utilizationCost(placements []model.Placement) float64 {
	if s.rooms == 0 {
		return 0
	}
	busy := make(map[string]int)
	for _, p := range placements {
		busy[p.Room.Name] += p.Slot.Minutes()
	}

	// Summation order is fixed so the cost is bit-identical across runs.
	names := lo.Keys(busy)
	sort.Strings(names)

	total := float64(calendar.CellsPerDay * calendar.CellMinutes * model.TotalDays)
	mean := 0.0
	for _, name := range names {
		mean += float64(busy[name]) / total
	}
	mean /= float64(s.rooms)

	variance := 0.0
	for _, name := range names {
		delta := float64(busy[name])/total - mean
		variance += delta * delta
	}
	// Rooms with no placements contribute their full deviation from the mean.
	variance += float64(s.rooms-len(busy)) * mean * mean
	return variance / float64(s.rooms)
}

func (s *scorer) spreadCost(placements []model.Placement) float64 {
	groups, _ := s.groupSessions(placements)

	cost := 0.0
	for _, attended := range groups {
		days := make(map[model.Day]bool)
		for _, p := range attended {
			days[p.Slot.Day] = true
		}
		cost += float64(len(days))
	}
	return cost
}
