package csvio

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/classforge/timetable/pkg/model"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	assert.Nil(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadBucket(t *testing.T) {
	// Arrange
	path := writeFile(t, "cse.csv",
		"Student_Name,Roll_Number,Courses\n"+
			"Asha Verma,CS01,Data Structures;Linear Algebra\n"+
			"Rohit Sen,CS02,Linear Algebra\n")

	// Act
	bucket, err := LoadBucket(path)

	// Assert: the bucket is named after the file
	assert.Nil(t, err)
	assert.Equal(t, "cse", bucket.BucketName)
	assert.Len(t, bucket.Rows, 2)
	assert.Equal(t, model.RowInput{
		StudentName: "Asha Verma",
		RollNumber:  "CS01",
		CourseIDs:   []string{"Data Structures", "Linear Algebra"},
	}, bucket.Rows[0])
}

func TestLoadClassrooms(t *testing.T) {
	// Arrange
	path := writeFile(t, "classrooms.csv",
		"Name,Kind,Capacity,Available_Slots\n"+
			"Hall 1,,0,08:30-12:30;13:30-17:30\n"+
			"Lab 1,lab,25,\n")

	// Act
	rooms, err := LoadClassrooms(path)

	// Assert
	assert.Nil(t, err)
	assert.Len(t, rooms, 2)
	assert.Equal(t, model.RoomInput{
		Name:           "Hall 1",
		AvailableSlots: []string{"08:30-12:30", "13:30-17:30"},
	}, rooms[0])
	assert.Equal(t, model.RoomInput{Name: "Lab 1", Kind: "lab", Capacity: 25, AvailableSlots: []string{}}, rooms[1])
}

func TestLoadCourses(t *testing.T) {
	// Arrange
	path := writeFile(t, "courses.csv",
		"Name,Lectures_Per_Week,Labs_Per_Week,Session_Duration_Hours,Professors\n"+
			"Data Structures,2,1,2,Rao;Iyer\n")

	// Act
	courses, err := LoadCourses(path)

	// Assert
	assert.Nil(t, err)
	assert.Len(t, courses, 1)
	assert.Equal(t, model.CourseInput{
		Name:                 "Data Structures",
		LecturesPerWeek:      2,
		LabsPerWeek:          1,
		SessionDurationHours: 2,
		Professors:           []string{"Rao", "Iyer"},
	}, courses[0])
}

func TestWriteTimetable(t *testing.T) {
	// Arrange: two placements in reverse chronological order.
	course := &model.Course{Name: "Data Structures"}
	division := &model.Division{ID: "A", Students: make([]model.Student, 30)}
	hall := &model.Classroom{Name: "Hall 1", Kind: model.LectureHall, Capacity: 100}
	rao := model.Professor{Name: "Rao"}
	timetable := &model.Timetable{Placements: []model.Placement{
		{
			Session: &model.Session{Course: course, Kind: model.Lecture, Division: division, Professor: rao},
			Room:    hall,
			Slot:    model.Slot{Day: model.Tuesday, Start: model.DayStart, End: model.DayStart + 60},
		},
		{
			Session: &model.Session{Course: course, Kind: model.Lecture, Division: division, Professor: rao},
			Room:    hall,
			Slot:    model.Slot{Day: model.Monday, Start: model.LunchEnd, End: model.LunchEnd + 60},
		},
	}}

	// Act
	var buffer bytes.Buffer
	err := NewWriter().WriteTimetable(&buffer, timetable)

	// Assert: chronological output with a header row
	assert.Nil(t, err)
	assert.Equal(t,
		"Day,Time,Course,Type,Cohort,Room,Professor\n"+
			"Monday,1:30-2:30,Data Structures,lecture,A,Hall 1,Rao\n"+
			"Tuesday,8:30-9:30,Data Structures,lecture,A,Hall 1,Rao\n",
		buffer.String())
}

func TestWriteView(t *testing.T) {
	// Arrange
	view := model.View{
		Owner: "CS01",
		Days: map[string][]model.ViewRow{
			"Monday": {
				{TimeRange: "8:30-9:30", CourseName: "Data Structures", RoomName: "Hall 1", Kind: "lecture"},
				{TimeRange: "12:30-1:30", CourseName: "Lunch Break", RoomName: "-", Kind: "break"},
			},
		},
	}

	// Act
	var buffer bytes.Buffer
	err := NewWriter().WriteView(&buffer, view)

	// Assert
	assert.Nil(t, err)
	assert.Equal(t,
		"Day,Time,Course,Type,Room\n"+
			"Monday,8:30-9:30,Data Structures,lecture,Hall 1\n"+
			"Monday,12:30-1:30,Lunch Break,break,-\n",
		buffer.String())
}
