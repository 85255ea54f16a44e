package csvio

import (
	"io"
	"slices"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/classforge/timetable/pkg/export"
	"github.com/classforge/timetable/pkg/model"
)

type scheduleRow struct {
	Day       string `csv:"Day"`
	Time      string `csv:"Time"`
	Course    string `csv:"Course"`
	Type      string `csv:"Type"`
	Cohort    string `csv:"Cohort"`
	Room      string `csv:"Room"`
	Professor string `csv:"Professor"`
}

type viewRow struct {
	Day    string `csv:"Day"`
	Time   string `csv:"Time"`
	Course string `csv:"Course"`
	Type   string `csv:"Type"`
	Room   string `csv:"Room"`
}

// NewWriter returns the CSV implementation of the export adapter.
func NewWriter() export.Writer {
	return &csvWriter{}
}

type csvWriter struct{}

func (c *csvWriter) WriteTimetable(w io.Writer, timetable *model.Timetable) error {
	placements := slices.Clone(timetable.Placements)
	slices.SortStableFunc(placements, func(a, b model.Placement) int {
		if a.Slot.Day != b.Slot.Day {
			return int(a.Slot.Day) - int(b.Slot.Day)
		}
		if a.Slot.Start != b.Slot.Start {
			return a.Slot.Start - b.Slot.Start
		}
		return strings.Compare(a.Room.Name, b.Room.Name)
	})

	rows := make([]scheduleRow, 0, len(placements))
	for _, p := range placements {
		rows = append(rows, scheduleRow{
			Day:       p.Slot.Day.String(),
			Time:      p.Slot.String(),
			Course:    p.Session.Course.Name,
			Type:      p.Session.Kind.String(),
			Cohort:    p.Session.CohortID(),
			Room:      p.Room.Name,
			Professor: p.Session.Professor.Name,
		})
	}
	return gocsv.Marshal(&rows, w)
}

func (c *csvWriter) WriteView(w io.Writer, view model.View) error {
	rows := make([]viewRow, 0)
	for _, day := range model.Days() {
		for _, row := range view.Days[day.String()] {
			rows = append(rows, viewRow{
				Day:    day.String(),
				Time:   row.TimeRange,
				Course: row.CourseName,
				Type:   row.Kind,
				Room:   row.RoomName,
			})
		}
	}
	return gocsv.Marshal(&rows, w)
}
