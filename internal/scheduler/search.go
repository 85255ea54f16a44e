package scheduler

import (
	"context"
	"fmt"
	"slices"

	"github.com/classforge/timetable/internal/calendar"
	"github.com/classforge/timetable/internal/constraint"
	"github.com/classforge/timetable/pkg/model"
)

// candidate is one legal-looking assignment of a session: a day, a starting
// grid cell, and a room index.
type candidate struct {
	day  int
	cell int
	room int
}

type dayGrid [model.TotalDays][calendar.CellsPerDay]bool

// cohortGrid tracks per-cell cohort occupancy of one division: bit 0 marks a
// whole-division session, bit i+1 marks batch i.
type cohortGrid [model.TotalDays][calendar.CellsPerDay]uint64

const wholeDivisionBit = uint64(1)

// maxBatchesPerDivision is what the remaining 63 bits of the mask can hold.
const maxBatchesPerDivision = 63

func batchBit(index int) uint64 {
	return uint64(1) << (index + 1)
}

type search struct {
	ctx       context.Context
	sessions  []*model.Session
	rooms     []*model.Classroom
	evaluator constraint.Evaluator

	domains  [][]candidate // static domains, canonical candidate order
	covers   []dayGrid     // cells a session could possibly occupy
	partners [][]int       // sessions that may never overlap with i

	assigned []int // candidate index per session, -1 while unassigned
	roomBusy []dayGrid
	profBusy map[string]*dayGrid
	cohorts  map[string]*cohortGrid

	iterations int
	budget     int

	failDepth     int
	failConflicts []string
}

func newSearch(ctx context.Context, sessions []*model.Session, rooms []*model.Classroom, evaluator constraint.Evaluator, budget int) (*search, error) {
	s := &search{
		ctx:         ctx,
		sessions:    sessions,
		rooms:       rooms,
		evaluator:   evaluator,
		assigned:    make([]int, len(sessions)),
		roomBusy:    make([]dayGrid, len(rooms)),
		profBusy:    make(map[string]*dayGrid),
		cohorts:     make(map[string]*cohortGrid),
		budget:      budget,
		failDepth:   -1,
	}

	for i, session := range sessions {
		s.assigned[i] = -1
		if session.Batch != nil && session.Batch.Index >= maxBatchesPerDivision {
			return nil, model.Configurationf("division %v splits into more than %d lab batches", session.Division.ID, maxBatchesPerDivision)
		}
		if _, ok := s.profBusy[session.Professor.Name]; !ok {
			s.profBusy[session.Professor.Name] = &dayGrid{}
		}
		if _, ok := s.cohorts[session.Division.ID]; !ok {
			s.cohorts[session.Division.ID] = &cohortGrid{}
		}
	}

	if err := s.buildDomains(); err != nil {
		return nil, err
	}
	s.buildPartners()
	return s, nil
}

// buildDomains enumerates every statically legal candidate per session. A
// session with an empty static domain makes the whole problem infeasible
// before any search happens.
func (s *search) buildDomains() error {
	s.domains = make([][]candidate, len(s.sessions))
	s.covers = make([]dayGrid, len(s.sessions))

	for i, session := range s.sessions {
		span := session.SpanHours()
		domain := make([]candidate, 0)
		for day := range model.TotalDays {
			for cell := 0; cell+span <= calendar.CellsPerDay; cell++ {
				if !calendar.Contiguous(cell, span) {
					continue
				}
				for room := range s.rooms {
					if !s.evaluator.Fits(session, s.rooms[room]) {
						continue
					}
					if !s.evaluator.RoomOpen(s.rooms[room], cell, span) {
						continue
					}
					domain = append(domain, candidate{day: day, cell: cell, room: room})
					for c := cell; c < cell+span; c++ {
						s.covers[i][day][c] = true
					}
				}
			}
		}
		if len(domain) == 0 {
			return &InfeasibleError{Conflicts: []string{s.explainEmptyDomain(i)}}
		}
		s.domains[i] = domain
	}
	return nil
}

func (s *search) buildPartners() {
	s.partners = make([][]int, len(s.sessions))
	for i := range s.sessions {
		for j := range s.sessions {
			if i != j && s.evaluator.Conflicts(s.sessions[i], s.sessions[j]) {
				s.partners[i] = append(s.partners[i], j)
			}
		}
	}
}

func (s *search) slotOf(i int, c candidate) model.Slot {
	slot, _ := calendar.Span(model.Day(c.day), c.cell, s.sessions[i].SpanHours())
	return slot
}

// feasible checks the candidate against current occupancy: room, professor
// and cohort must all be free for every covered cell.
func (s *search) feasible(i int, c candidate) bool {
	session := s.sessions[i]
	span := session.SpanHours()
	prof := s.profBusy[session.Professor.Name]
	cohort := s.cohorts[session.Division.ID]

	blocking := wholeDivisionBit
	if session.Batch == nil {
		blocking = ^uint64(0)
	} else {
		blocking |= batchBit(session.Batch.Index)
	}

	for cell := c.cell; cell < c.cell+span; cell++ {
		if s.roomBusy[c.room][c.day][cell] || prof[c.day][cell] {
			return false
		}
		if cohort[c.day][cell]&blocking != 0 {
			return false
		}
	}
	return true
}

func (s *search) place(i int, c candidate) {
	session := s.sessions[i]
	span := session.SpanHours()
	bit := wholeDivisionBit
	if session.Batch != nil {
		bit = batchBit(session.Batch.Index)
	}
	for cell := c.cell; cell < c.cell+span; cell++ {
		s.roomBusy[c.room][c.day][cell] = true
		s.profBusy[session.Professor.Name][c.day][cell] = true
		s.cohorts[session.Division.ID][c.day][cell] |= bit
	}
	s.assigned[i] = s.domainIndex(i, c)
}

func (s *search) unplace(i int) {
	c := s.domains[i][s.assigned[i]]
	session := s.sessions[i]
	span := session.SpanHours()
	bit := wholeDivisionBit
	if session.Batch != nil {
		bit = batchBit(session.Batch.Index)
	}
	for cell := c.cell; cell < c.cell+span; cell++ {
		s.roomBusy[c.room][c.day][cell] = false
		s.profBusy[session.Professor.Name][c.day][cell] = false
		s.cohorts[session.Division.ID][c.day][cell] &^= bit
	}
	s.assigned[i] = -1
}

func (s *search) domainIndex(i int, c candidate) int {
	return slices.Index(s.domains[i], c)
}

func (s *search) liveCount(i int) int {
	count := 0
	for _, c := range s.domains[i] {
		if s.feasible(i, c) {
			count++
		}
	}
	return count
}

// run drives the backtracking search to a complete assignment, an
// infeasibility verdict, or budget exhaustion.
func (s *search) run() error {
	done, err := s.solve(0)
	if err != nil {
		return err
	}
	if !done {
		conflicts := s.failConflicts
		if len(conflicts) == 0 {
			conflicts = []string{"no complete assignment exists for the given rooms and slots"}
		}
		return &InfeasibleError{Conflicts: conflicts}
	}
	return nil
}

func (s *search) solve(depth int) (bool, error) {
	if err := s.ctx.Err(); err != nil {
		return false, err
	}
	if s.iterations >= s.budget {
		return false, &TimeoutError{Iterations: s.iterations}
	}
	s.iterations++

	// Most-constrained-session-first: fewest live candidates remaining,
	// canonical order breaking ties.
	next, minCount := -1, 0
	for i := range s.sessions {
		if s.assigned[i] != -1 {
			continue
		}
		count := s.liveCount(i)
		if next == -1 || count < minCount {
			next, minCount = i, count
		}
	}
	if next == -1 {
		return true, nil
	}
	if minCount == 0 {
		// Snapshot the blockers now: backtracking will unwind them.
		if depth > s.failDepth {
			s.failDepth, s.failConflicts = depth, s.describeBlocked(next)
		}
		return false, nil
	}

	for _, c := range s.orderCandidates(next) {
		s.place(next, c)
		done, err := s.solve(depth + 1)
		if err != nil {
			return false, err
		}
		if done {
			return true, nil
		}
		s.unplace(next)
	}
	return false, nil
}

// orderCandidates ranks the live candidates of a session: least constraining
// first (fewest unassigned conflict partners whose domain touches the
// covered cells), then smallest idle-gap increase for the cohort, then
// canonical (day, cell, room) order.
func (s *search) orderCandidates(i int) []candidate {
	type ranked struct {
		c     candidate
		lcv   int
		idle  int
		order int
	}

	span := s.sessions[i].SpanHours()
	live := make([]ranked, 0, len(s.domains[i]))
	for order, c := range s.domains[i] {
		if !s.feasible(i, c) {
			continue
		}

		lcv := 0
		for _, j := range s.partners[i] {
			if s.assigned[j] != -1 {
				continue
			}
			for cell := c.cell; cell < c.cell+span; cell++ {
				if s.covers[j][c.day][cell] {
					lcv++
					break
				}
			}
		}

		live = append(live, ranked{c: c, lcv: lcv, idle: s.idleDelta(i, c), order: order})
	}

	slices.SortFunc(live, func(a, b ranked) int {
		if a.lcv != b.lcv {
			return a.lcv - b.lcv
		}
		if a.idle != b.idle {
			return a.idle - b.idle
		}
		return a.order - b.order
	})

	candidates := make([]candidate, len(live))
	for i, r := range live {
		candidates[i] = r.c
	}
	return candidates
}

// idleDelta measures how many extra idle minutes the candidate would create
// between the cohort's first and last session of that day.
func (s *search) idleDelta(i int, c candidate) int {
	slot := s.slotOf(i, c)

	first, last, busy := slot.Start, slot.End, 0
	existing := false
	for _, j := range s.partners[i] {
		if s.assigned[j] == -1 || !s.sessions[i].SharesStudents(s.sessions[j]) {
			continue
		}
		other := s.slotOf(j, s.domains[j][s.assigned[j]])
		if other.Day != slot.Day {
			continue
		}
		existing = true
		first = min(first, other.Start)
		last = max(last, other.End)
		busy += other.Minutes()
	}
	if !existing {
		return 0
	}
	return (last - first) - (busy + slot.Minutes())
}

func (s *search) explainEmptyDomain(i int) string {
	session := s.sessions[i]
	fitting := 0
	for _, room := range s.rooms {
		if s.evaluator.Fits(session, room) {
			fitting++
		}
	}
	if fitting == 0 {
		return fmt.Sprintf("%s: no classroom of kind %q seats %d students", session.DisplayName(), session.Kind.String(), session.CohortSize())
	}
	return fmt.Sprintf("%s: no fitting classroom is open for a contiguous %dh block", session.DisplayName(), session.SpanHours())
}

// describeBlocked builds the minimal-ish unsatisfiable set: the session
// whose domain just emptied, plus the placed sessions holding the resources
// it needs.
func (s *search) describeBlocked(i int) []string {
	session := s.sessions[i]
	conflicts := []string{fmt.Sprintf("%s: every candidate slot is taken", session.DisplayName())}

	seen := make(map[int]bool)
	for _, c := range s.domains[i] {
		span := session.SpanHours()
		for j, assignedIdx := range s.assigned {
			if assignedIdx == -1 || seen[j] {
				continue
			}
			other := s.domains[j][assignedIdx]
			otherSpan := s.sessions[j].SpanHours()
			overlap := other.day == c.day && other.cell < c.cell+span && c.cell < other.cell+otherSpan
			if !overlap {
				continue
			}
			blocks := other.room == c.room || s.evaluator.Conflicts(session, s.sessions[j])
			if blocks && len(conflicts) < 8 {
				seen[j] = true
				conflicts = append(conflicts, fmt.Sprintf("blocked by %s in %s at %v", s.sessions[j].DisplayName(), s.rooms[other.room].Name, s.slotOf(j, other)))
			}
		}
	}
	return conflicts
}
