package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadInput(t *testing.T) {
	// Arrange: CSV configuration plus a directory of enrollment buckets.
	dir := t.TempDir()
	classrooms := filepath.Join(dir, "classrooms.csv")
	assert.Nil(t, os.WriteFile(classrooms, []byte(
		"Name,Kind,Capacity,Available_Slots\n"+
			"Hall 1,,0,\n"+
			"Lab 1,lab,25,\n"), 0644))

	courses := filepath.Join(dir, "courses.csv")
	assert.Nil(t, os.WriteFile(courses, []byte(
		"Name,Lectures_Per_Week,Labs_Per_Week,Session_Duration_Hours,Professors\n"+
			"Linear Algebra,3,0,1,Iyer\n"), 0644))

	buckets := filepath.Join(dir, "buckets")
	assert.Nil(t, os.Mkdir(buckets, 0755))
	assert.Nil(t, os.WriteFile(filepath.Join(buckets, "cse.csv"), []byte(
		"Student_Name,Roll_Number,Courses\n"+
			"Asha Verma,CS01,Linear Algebra\n"), 0644))

	// Act
	input, err := loadInput("", classrooms, courses, buckets)

	// Assert: every bucket file in the directory is picked up and named
	// after its file.
	assert.Nil(t, err)
	assert.Len(t, input.Classrooms, 2)
	assert.Len(t, input.Courses, 1)
	assert.Len(t, input.Buckets, 1)
	assert.Equal(t, "cse", input.Buckets[0].BucketName)
	assert.Len(t, input.Buckets[0].Rows, 1)
}
