package model

import (
	"encoding/json"
	"os"

	"github.com/mitchellh/mapstructure"
)

// Raw configuration as produced by the upload/configure collaborators.
// Field names follow the JSON the front-end persists.

type RoomInput struct {
	Name           string
	Kind           string
	Capacity       int
	AvailableSlots []string `mapstructure:"availableSlots"`
}

type CourseInput struct {
	Name                 string
	LecturesPerWeek      int      `mapstructure:"lecturesPerWeek"`
	LabsPerWeek          int      `mapstructure:"labsPerWeek"`
	SessionDurationHours int      `mapstructure:"sessionDurationHours"`
	Professors           []string
}

type RowInput struct {
	StudentName string   `mapstructure:"studentName"`
	RollNumber  string   `mapstructure:"rollNumber"`
	CourseIDs   []string `mapstructure:"courseIds"`
}

type BucketInput struct {
	BucketName string `mapstructure:"bucketName"`
	Rows       []RowInput
}

type Input struct {
	Classrooms []RoomInput
	Courses    []CourseInput
	Buckets    []BucketInput
}

func InputFromJSON(file string) (Input, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return Input{}, err
	}
	return DecodeInput(bytes)
}

func DecodeInput(raw []byte) (Input, error) {
	var inputJSON map[string]any
	if err := json.Unmarshal(raw, &inputJSON); err != nil {
		return Input{}, err
	}

	var input Input
	if err := mapstructure.Decode(inputJSON, &input); err != nil {
		return Input{}, err
	}

	return input, nil
}
