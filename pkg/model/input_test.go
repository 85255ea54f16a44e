package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeInput(t *testing.T) {
	t.Run("Decodes the persisted front-end JSON", func(t *testing.T) {
		// Arrange
		raw := []byte(`{
			"classrooms": [
				{"name": "Hall 1", "capacity": 80, "availableSlots": ["08:30-12:30"]},
				{"name": "Lab 1", "kind": "lab"}
			],
			"courses": [
				{"name": "Data Structures", "lecturesPerWeek": 2, "labsPerWeek": 1, "sessionDurationHours": 2, "professors": ["Rao"]}
			],
			"buckets": [
				{"bucketName": "cse", "rows": [{"studentName": "Asha Verma", "rollNumber": "CS01", "courseIds": ["Data Structures"]}]}
			]
		}`)

		// Act
		input, err := DecodeInput(raw)

		// Assert
		assert.Nil(t, err)
		assert.Equal(t, RoomInput{Name: "Hall 1", Capacity: 80, AvailableSlots: []string{"08:30-12:30"}}, input.Classrooms[0])
		assert.Equal(t, RoomInput{Name: "Lab 1", Kind: "lab"}, input.Classrooms[1])
		assert.Equal(t, CourseInput{Name: "Data Structures", LecturesPerWeek: 2, LabsPerWeek: 1, SessionDurationHours: 2, Professors: []string{"Rao"}}, input.Courses[0])
		assert.Equal(t, "cse", input.Buckets[0].BucketName)
		assert.Equal(t, RowInput{StudentName: "Asha Verma", RollNumber: "CS01", CourseIDs: []string{"Data Structures"}}, input.Buckets[0].Rows[0])
	})

	t.Run("Rejects malformed JSON", func(t *testing.T) {
		_, err := DecodeInput([]byte(`{"classrooms": `))

		assert.NotNil(t, err)
	})
}
