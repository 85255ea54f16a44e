package projector

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/classforge/timetable/internal/enrollment"
	"github.com/classforge/timetable/pkg/model"
)

// fixture builds a tiny committed timetable: a whole-division lecture in the
// morning and one afternoon lab per batch, all on Monday.
func fixture(t *testing.T) (*model.Timetable, enrollment.Roster) {
	t.Helper()

	course := &model.Course{Name: "Data Structures", LecturesPerWeek: 1, LabsPerWeek: 1, SessionDurationHours: 1, Professors: []string{"Rao"}}
	rows := make([]model.RowInput, 0, 30)
	for i := range 30 {
		rows = append(rows, model.RowInput{
			StudentName: fmt.Sprintf("Student %02d", i+1),
			RollNumber:  fmt.Sprintf("CS%02d", i+1),
			CourseIDs:   []string{"Data Structures"},
		})
	}
	roster, err := enrollment.NewAggregator(model.MaxLabStrength).Aggregate(
		[]model.BucketInput{{BucketName: "cse.csv", Rows: rows}}, []*model.Course{course})
	assert.Nil(t, err)

	division := roster.Divisions[0]
	batches := roster.Batches[division.ID]
	rao := model.Professor{Name: "Rao"}
	hall := &model.Classroom{Name: "Hall 1", Kind: model.LectureHall, Capacity: 100}
	labOne := &model.Classroom{Name: "Lab 1", Kind: model.LabRoom, Capacity: 25}
	labTwo := &model.Classroom{Name: "Lab 2", Kind: model.LabRoom, Capacity: 25}

	timetable := &model.Timetable{Placements: []model.Placement{
		{
			Session: &model.Session{Course: course, Kind: model.Lecture, Division: division, Professor: rao},
			Room:    hall,
			Slot:    model.Slot{Day: model.Monday, Start: model.DayStart, End: model.DayStart + 60},
		},
		{
			Session: &model.Session{Course: course, Kind: model.Lab, Division: division, Batch: batches[0], Professor: rao},
			Room:    labOne,
			Slot:    model.Slot{Day: model.Monday, Start: model.LunchEnd, End: model.LunchEnd + 60},
		},
		{
			Session: &model.Session{Course: course, Kind: model.Lab, Division: division, Batch: batches[1], Professor: rao},
			Room:    labTwo,
			Slot:    model.Slot{Day: model.Monday, Start: model.LunchEnd, End: model.LunchEnd + 60},
		},
	}}
	return timetable, roster
}

func TestStudentView(t *testing.T) {
	timetable, roster := fixture(t)

	t.Run("Includes division lectures and only the student's own batch lab", func(t *testing.T) {
		// Act: CS27 sits in batch A2.
		view := StudentView(timetable, roster, "CS27")

		// Assert
		assert.Equal(t, "CS27", view.Owner)
		rows := view.Days["Monday"]
		assert.Len(t, rows, 3)
		assert.Equal(t, model.ViewRow{TimeRange: "8:30-9:30", CourseName: "Data Structures", RoomName: "Hall 1", Kind: "lecture"}, rows[0])
		assert.Equal(t, model.ViewRow{TimeRange: "12:30-1:30", CourseName: "Lunch Break", RoomName: "-", Kind: "break"}, rows[1])
		assert.Equal(t, model.ViewRow{TimeRange: "1:30-2:30", CourseName: "Data Structures", RoomName: "Lab 2", Kind: "lab"}, rows[2])
	})

	t.Run("Days without sessions carry no rows at all", func(t *testing.T) {
		view := StudentView(timetable, roster, "CS01")

		assert.NotContains(t, view.Days, "Tuesday")
		assert.NotContains(t, view.Days, "Saturday")
	})

	t.Run("An unknown roll number yields an empty view", func(t *testing.T) {
		view := StudentView(timetable, roster, "ZZ99")

		assert.Equal(t, "ZZ99", view.Owner)
		assert.Empty(t, view.Days)
	})
}

func TestRoomView(t *testing.T) {
	timetable, _ := fixture(t)

	t.Run("Lists only the room's own occupancy", func(t *testing.T) {
		view := RoomView(timetable, "Lab 1")

		rows := view.Days["Monday"]
		assert.Len(t, rows, 2)
		assert.Equal(t, "Lunch Break", rows[0].CourseName)
		assert.Equal(t, "Lab 1", rows[1].RoomName)
		assert.Equal(t, "lab", rows[1].Kind)
	})

	t.Run("An unknown room yields an empty view", func(t *testing.T) {
		assert.Empty(t, RoomView(timetable, "Hall 9").Days)
	})
}

func TestProfessorView(t *testing.T) {
	timetable, _ := fixture(t)

	t.Run("Covers every session the professor teaches", func(t *testing.T) {
		view := ProfessorView(timetable, "Rao")

		// Lecture, lunch, and the two parallel labs.
		assert.Len(t, view.Days["Monday"], 4)
	})

	t.Run("An unknown professor yields an empty view", func(t *testing.T) {
		assert.Empty(t, ProfessorView(timetable, "Nobody").Days)
	})
}
