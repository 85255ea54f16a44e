package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/classforge/timetable/pkg/model"
)

func TestGrid(t *testing.T) {
	t.Run("Cells partition the operating day around lunch", func(t *testing.T) {
		assert.Equal(t, 4, MorningCells)
		assert.Equal(t, 8, AfternoonCells)
		assert.Equal(t, 12, CellsPerDay)

		assert.Equal(t, model.DayStart, CellStart(0))
		assert.Equal(t, model.LunchStart-CellMinutes, CellStart(MorningCells-1))
		assert.Equal(t, model.LunchEnd, CellStart(MorningCells))
		assert.Equal(t, model.DayEnd-CellMinutes, CellStart(CellsPerDay-1))
	})

	t.Run("CellAt inverts CellStart and rejects lunch", func(t *testing.T) {
		for cell := range CellsPerDay {
			got, ok := CellAt(CellStart(cell))
			assert.True(t, ok)
			assert.Equal(t, cell, got)
		}

		_, ok := CellAt(model.LunchStart)
		assert.False(t, ok)
	})

	t.Run("Contiguous spans never cross lunch", func(t *testing.T) {
		assert.True(t, Contiguous(0, 4))
		assert.True(t, Contiguous(4, 8))
		assert.False(t, Contiguous(3, 2))
		assert.False(t, Contiguous(0, 5))
		assert.False(t, Contiguous(11, 2))
	})

	t.Run("Span covers consecutive hours", func(t *testing.T) {
		slot, ok := Span(model.Tuesday, 4, 2)
		assert.True(t, ok)
		assert.Equal(t, model.Slot{Day: model.Tuesday, Start: model.LunchEnd, End: model.LunchEnd + 120}, slot)

		_, ok = Span(model.Tuesday, 3, 2)
		assert.False(t, ok)
	})
}

func TestParseWindow(t *testing.T) {
	t.Run("Valid windows", func(t *testing.T) {
		start, end, err := ParseWindow("08:30-12:30")
		assert.Nil(t, err)
		assert.Equal(t, model.DayStart, start)
		assert.Equal(t, model.LunchStart, end)

		start, end, err = ParseWindow("8:30-9:30")
		assert.Nil(t, err)
		assert.Equal(t, model.DayStart, start)
		assert.Equal(t, model.DayStart+60, end)
	})

	t.Run("Rejects windows outside operating hours", func(t *testing.T) {
		_, _, err := ParseWindow("07:30-09:30")
		assert.NotNil(t, err)

		_, _, err = ParseWindow("20:30-22:00")
		assert.NotNil(t, err)

		_, _, err = ParseWindow("10:30-09:30")
		assert.NotNil(t, err)

		_, _, err = ParseWindow("garbage")
		assert.NotNil(t, err)
	})

	t.Run("Window cells skip lunch", func(t *testing.T) {
		cells := WindowCells(model.DayStart, model.DayEnd)
		assert.Len(t, cells, CellsPerDay)

		cells = WindowCells(model.DayStart, model.LunchEnd)
		assert.Equal(t, []int{0, 1, 2, 3}, cells)

		cells = WindowCells(model.LunchStart, model.DayEnd)
		assert.Equal(t, []int{4, 5, 6, 7, 8, 9, 10, 11}, cells)
	})
}
