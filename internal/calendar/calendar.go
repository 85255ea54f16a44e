package calendar

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/classforge/timetable/pkg/model"
)

// CellMinutes is the granularity of the scheduling grid.
const CellMinutes = 60

// MorningCells and AfternoonCells partition the hourly grid around lunch:
// four cells between 08:30 and 12:30, eight between 13:30 and 21:30.
const (
	MorningCells   = (model.LunchStart - model.DayStart) / CellMinutes
	AfternoonCells = (model.DayEnd - model.LunchEnd) / CellMinutes
	CellsPerDay    = MorningCells + AfternoonCells
)

// CellStart returns the starting minute of the given grid cell.
func CellStart(cell int) int {
	if cell < MorningCells {
		return model.DayStart + cell*CellMinutes
	}
	return model.LunchEnd + (cell-MorningCells)*CellMinutes
}

// CellAt returns the grid cell whose interval starts at the given minute.
func CellAt(start int) (int, bool) {
	if start >= model.DayStart && start < model.LunchStart && (start-model.DayStart)%CellMinutes == 0 {
		return (start - model.DayStart) / CellMinutes, true
	}
	if start >= model.LunchEnd && start < model.DayEnd && (start-model.LunchEnd)%CellMinutes == 0 {
		return MorningCells + (start-model.LunchEnd)/CellMinutes, true
	}
	return 0, false
}

// Contiguous reports whether span cells starting at cell form one unbroken
// interval, i.e. the span does not jump across the lunch window or run past
// the end of the day.
func Contiguous(cell, span int) bool {
	if cell < 0 || span < 1 || cell+span > CellsPerDay {
		return false
	}
	last := cell + span - 1
	return last < MorningCells || cell >= MorningCells
}

// Span returns the slot covering span contiguous cells starting at cell.
func Span(day model.Day, cell, span int) (model.Slot, bool) {
	if !Contiguous(cell, span) {
		return model.Slot{}, false
	}
	start := CellStart(cell)
	return model.Slot{Day: day, Start: start, End: start + span*CellMinutes}, true
}

// ParseClock parses "8:30" or "08:30" into a minute offset.
func ParseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q: %v", s, err)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q: %v", s, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("clock value %q out of range", s)
	}
	return hour*60 + minute, nil
}

// ParseWindow parses "HH:MM-HH:MM" into a start/end minute pair, verifying
// it lies within operating hours. A window straddling lunch is fine: cell
// expansion skips the lunch hour.
func ParseWindow(s string) (start, end int, err error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time window %q", s)
	}
	start, err = ParseClock(parts[0])
	if err != nil {
		return 0, 0, err
	}
	end, err = ParseClock(parts[1])
	if err != nil {
		return 0, 0, err
	}
	if start >= end {
		return 0, 0, fmt.Errorf("time window %q is empty or reversed", s)
	}
	if start < model.DayStart || end > model.DayEnd {
		return 0, 0, fmt.Errorf("time window %q falls outside operating hours %v", s, model.FormatRange(model.DayStart, model.DayEnd))
	}
	return start, end, nil
}

// WindowCells expands a window into the grid cells it fully covers,
// skipping the lunch hour.
func WindowCells(start, end int) []int {
	cells := make([]int, 0, CellsPerDay)
	for cell := range CellsPerDay {
		cellStart := CellStart(cell)
		if cellStart >= start && cellStart+CellMinutes <= end {
			cells = append(cells, cell)
		}
	}
	return cells
}
