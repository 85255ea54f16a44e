package engine

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/classforge/timetable/internal/projector"
	"github.com/classforge/timetable/internal/scheduler"
	"github.com/classforge/timetable/pkg/model"
)

func sampleInput() model.Input {
	rows := make([]model.RowInput, 0, 30)
	for i := range 30 {
		rows = append(rows, model.RowInput{
			StudentName: fmt.Sprintf("Student %02d", i+1),
			RollNumber:  fmt.Sprintf("CS%02d", i+1),
			CourseIDs:   []string{"Data Structures", "Linear Algebra"},
		})
	}
	return model.Input{
		Classrooms: []model.RoomInput{
			{Name: "Hall 1"},
			{Name: "Hall 2"},
			{Name: "Lab 1"},
			{Name: "Lab 2"},
		},
		Courses: []model.CourseInput{
			{Name: "Data Structures", LecturesPerWeek: 2, LabsPerWeek: 1, SessionDurationHours: 2, Professors: []string{"Rao"}},
			{Name: "Linear Algebra", LecturesPerWeek: 3, Professors: []string{"Iyer"}},
		},
		Buckets: []model.BucketInput{{BucketName: "cse", Rows: rows}},
	}
}

func TestGenerate(t *testing.T) {
	t.Run("Runs the whole pipeline end to end", func(t *testing.T) {
		// Act
		result, err := Generate(context.Background(), sampleInput(), scheduler.Config{Seed: 3})

		// Assert: 2+3 lectures plus one 2h lab per batch
		assert.Nil(t, err)
		assert.Len(t, result.Timetable.Placements, 7)
		assert.Len(t, result.Roster.Students, 30)
		assert.Len(t, result.Roster.Divisions, 1)

		problem := scheduler.Problem{Rooms: result.Rooms, Courses: result.Courses, Roster: result.Roster}
		assert.True(t, scheduler.New(scheduler.Config{Seed: 3}).Verify(result.Timetable, problem))

		// Every student view is derivable from the result.
		view := projector.StudentView(result.Timetable, result.Roster, "CS01")
		total := 0
		for _, rows := range view.Days {
			total += len(rows)
		}
		// 6 sessions for batch A1, plus one lunch row per non-empty day.
		assert.GreaterOrEqual(t, total, 6)
	})

	t.Run("Configuration errors surface before any scheduling", func(t *testing.T) {
		input := sampleInput()
		input.Classrooms = nil

		_, err := Generate(context.Background(), input, scheduler.Config{Seed: 3})

		var configuration model.ConfigurationError
		assert.True(t, errors.As(err, &configuration))
	})

	t.Run("Enrollment conflicts abort the run", func(t *testing.T) {
		input := sampleInput()
		input.Buckets[0].Rows[0].CourseIDs = []string{"Underwater Basket Weaving"}

		_, err := Generate(context.Background(), input, scheduler.Config{Seed: 3})

		assert.NotNil(t, err)
	})
}
