// Package csvio loads configuration and enrollment data from CSV files and
// writes finished timetables back out as CSV.
package csvio

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/samber/lo"

	"github.com/classforge/timetable/pkg/model"
)

const listSeparator = ";"

type enrollmentRow struct {
	StudentName string `csv:"Student_Name"`
	RollNumber  string `csv:"Roll_Number"`
	Courses     string `csv:"Courses"`
}

type classroomRow struct {
	Name           string `csv:"Name"`
	Kind           string `csv:"Kind"`
	Capacity       int    `csv:"Capacity"`
	AvailableSlots string `csv:"Available_Slots"`
}

type courseRow struct {
	Name                 string `csv:"Name"`
	LecturesPerWeek      int    `csv:"Lectures_Per_Week"`
	LabsPerWeek          int    `csv:"Labs_Per_Week"`
	SessionDurationHours int    `csv:"Session_Duration_Hours"`
	Professors           string `csv:"Professors"`
}

// LoadBucket reads one enrollment bucket; the bucket is named after the
// file, matching how each uploaded sheet becomes one bucket.
func LoadBucket(path string) (model.BucketInput, error) {
	file, err := os.Open(path)
	if err != nil {
		return model.BucketInput{}, err
	}
	defer file.Close()

	rows := []*enrollmentRow{}
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return model.BucketInput{}, err
	}

	bucket := model.BucketInput{
		BucketName: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
	}
	for _, row := range rows {
		bucket.Rows = append(bucket.Rows, model.RowInput{
			StudentName: row.StudentName,
			RollNumber:  row.RollNumber,
			CourseIDs:   splitList(row.Courses),
		})
	}
	return bucket, nil
}

func LoadClassrooms(path string) ([]model.RoomInput, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	rows := []*classroomRow{}
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, err
	}

	return lo.Map(rows, func(row *classroomRow, _ int) model.RoomInput {
		return model.RoomInput{
			Name:           row.Name,
			Kind:           row.Kind,
			Capacity:       row.Capacity,
			AvailableSlots: splitList(row.AvailableSlots),
		}
	}), nil
}

func LoadCourses(path string) ([]model.CourseInput, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	rows := []*courseRow{}
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, err
	}

	return lo.Map(rows, func(row *courseRow, _ int) model.CourseInput {
		return model.CourseInput{
			Name:                 row.Name,
			LecturesPerWeek:      row.LecturesPerWeek,
			LabsPerWeek:          row.LabsPerWeek,
			SessionDurationHours: row.SessionDurationHours,
			Professors:           splitList(row.Professors),
		}
	}), nil
}

func splitList(joined string) []string {
	parts := strings.Split(joined, listSeparator)
	trimmed := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			trimmed = append(trimmed, part)
		}
	}
	return trimmed
}
