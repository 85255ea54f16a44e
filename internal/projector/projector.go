// Package projector derives per-student, per-room and per-professor weekly
// views from a completed timetable. Pure functions of the timetable: an
// unknown student, room or professor yields an empty view.
package projector

import (
	"slices"

	"github.com/classforge/timetable/internal/enrollment"
	"github.com/classforge/timetable/pkg/model"
)

// StudentView projects every session whose cohort includes the student,
// i.e. their division's lectures plus their own batch's labs.
func StudentView(timetable *model.Timetable, roster enrollment.Roster, rollNumber string) model.View {
	division, batch := roster.DivisionOf(rollNumber)
	if division == nil {
		return emptyView(rollNumber)
	}

	attended := make([]model.Placement, 0)
	for _, p := range timetable.Placements {
		if p.Session.Division.ID != division.ID {
			continue
		}
		if p.Session.Batch != nil && (batch == nil || p.Session.Batch.ID != batch.ID) {
			continue
		}
		attended = append(attended, p)
	}
	return buildView(rollNumber, attended)
}

func RoomView(timetable *model.Timetable, roomName string) model.View {
	occupied := make([]model.Placement, 0)
	for _, p := range timetable.Placements {
		if p.Room.Name == roomName {
			occupied = append(occupied, p)
		}
	}
	return buildView(roomName, occupied)
}

func ProfessorView(timetable *model.Timetable, professorName string) model.View {
	taught := make([]model.Placement, 0)
	for _, p := range timetable.Placements {
		if p.Session.Professor.Name == professorName {
			taught = append(taught, p)
		}
	}
	return buildView(professorName, taught)
}

func emptyView(owner string) model.View {
	return model.View{Owner: owner, Days: make(map[string][]model.ViewRow)}
}

// buildView groups placements by day, orders rows by start time, and slots
// the lunch break row into every day that has at least one session.
func buildView(owner string, placements []model.Placement) model.View {
	type timedRow struct {
		start int
		row   model.ViewRow
	}

	perDay := make(map[model.Day][]timedRow)
	for _, p := range placements {
		perDay[p.Slot.Day] = append(perDay[p.Slot.Day], timedRow{
			start: p.Slot.Start,
			row: model.ViewRow{
				TimeRange:  p.Slot.String(),
				CourseName: p.Session.Course.Name,
				RoomName:   p.Room.Name,
				Kind:       p.Session.Kind.String(),
			},
		})
	}

	view := emptyView(owner)
	for day, rows := range perDay {
		rows = append(rows, timedRow{
			start: model.LunchStart,
			row: model.ViewRow{
				TimeRange:  model.FormatRange(model.LunchStart, model.LunchEnd),
				CourseName: "Lunch Break",
				RoomName:   "-",
				Kind:       "break",
			},
		})
		slices.SortStableFunc(rows, func(a, b timedRow) int { return a.start - b.start })

		ordered := make([]model.ViewRow, len(rows))
		for i, r := range rows {
			ordered[i] = r.row
		}
		view.Days[day.String()] = ordered
	}
	return view
}
