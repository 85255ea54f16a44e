// Package constraint encodes the hard assignment rules and the weighted
// soft objectives of the timetabling problem.
package constraint

import (
	"github.com/classforge/timetable/internal/calendar"
	"github.com/classforge/timetable/pkg/model"
)

type Evaluator interface {
	// Fits checks room kind and capacity against the session: labs need lab
	// rooms, lectures need lecture halls, and the cohort must not exceed
	// either the room's capacity or the absolute strength cap for the kind.
	Fits(session *model.Session, room *model.Classroom) bool

	// RoomOpen checks that the room is available for span contiguous cells
	// starting at cell, on every operating day.
	RoomOpen(room *model.Classroom, cell, span int) bool

	// Conflicts reports whether two sessions may never overlap in time:
	// they share a professor or their cohorts share students.
	Conflicts(a, b *model.Session) bool
}

func NewEvaluator(rooms []*model.Classroom) Evaluator {
	cells := make(map[string]map[int]bool, len(rooms))
	for _, room := range rooms {
		open := make(map[int]bool)
		for _, window := range room.Windows {
			for _, cell := range calendar.WindowCells(window.Start, window.End) {
				open[cell] = true
			}
		}
		cells[room.Name] = open
	}
	return &evaluator{openCells: cells}
}

type evaluator struct {
	// openCells maps room name to the grid cells inside its availability
	// windows. Windows are day-agnostic, so one set serves all days.
	openCells map[string]map[int]bool
}

func (e *evaluator) Fits(session *model.Session, room *model.Classroom) bool {
	if session.Kind == model.Lab && room.Kind != model.LabRoom {
		return false
	}
	if session.Kind == model.Lecture && room.Kind != model.LectureHall {
		return false
	}
	size := session.CohortSize()
	return size <= room.Capacity && size <= room.Kind.StrengthCap()
}

func (e *evaluator) RoomOpen(room *model.Classroom, cell, span int) bool {
	if !calendar.Contiguous(cell, span) {
		return false
	}
	open := e.openCells[room.Name]
	for i := cell; i < cell+span; i++ {
		if !open[i] {
			return false
		}
	}
	return true
}

func (e *evaluator) Conflicts(a, b *model.Session) bool {
	return a.Professor.Name == b.Professor.Name || a.SharesStudents(b)
}
