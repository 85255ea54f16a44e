package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/classforge/timetable/internal/csvio"
	"github.com/classforge/timetable/internal/engine"
	"github.com/classforge/timetable/internal/enrollment"
	"github.com/classforge/timetable/internal/projector"
	"github.com/classforge/timetable/internal/scheduler"
	"github.com/classforge/timetable/pkg/model"
)

func main() {
	// Define arguments
	configPtr := flag.String("config", "", "Path to the JSON configuration (classrooms, courses and enrollment buckets)")
	classroomsPtr := flag.String("classrooms", "", "Path to a classrooms CSV, overriding the JSON classroom list")
	coursesPtr := flag.String("courses", "", "Path to a courses CSV, overriding the JSON course list")
	bucketsPtr := flag.String("buckets", "", "Directory of enrollment CSVs; each file becomes one bucket appended to the JSON buckets")
	seedPtr := flag.Int64("seed", 1, "Random seed; identical input and seed yield an identical timetable")
	timeoutPtr := flag.Duration("timeout", 30*time.Second, "Wall-clock budget for the whole generation run")
	outPtr := flag.String("out", "", "Path for the exported CSV timetable; if empty, nothing is exported")
	studentPtr := flag.String("student", "", "Roll number whose weekly view is printed after generation")
	flag.Parse()

	if *configPtr == "" && (*classroomsPtr == "" || *coursesPtr == "") {
		log.Fatal("either -config or both -classrooms and -courses must be specified")
	}

	input, err := loadInput(*configPtr, *classroomsPtr, *coursesPtr, *bucketsPtr)
	if err != nil {
		log.Fatalf("cannot load input: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeoutPtr)
	defer cancel()

	result, err := engine.Generate(ctx, input, scheduler.Config{Seed: *seedPtr})
	if err != nil {
		var infeasible *scheduler.InfeasibleError
		var conflict *enrollment.ConflictError
		var timeout *scheduler.TimeoutError
		switch {
		case errors.As(err, &infeasible):
			log.Fatalf("no feasible timetable: %v", infeasible)
		case errors.As(err, &conflict):
			log.Fatalf("enrollment data rejected: %v", conflict)
		case errors.As(err, &timeout):
			log.Fatalf("%v; retry with a larger -timeout", timeout)
		default:
			log.Fatalf("generation failed: %v", err)
		}
	}

	fmt.Printf("Scheduled %d sessions across %d divisions for %d students\n",
		len(result.Timetable.Placements), len(result.Roster.Divisions), len(result.Roster.Students))

	if *studentPtr != "" {
		printView(projector.StudentView(result.Timetable, result.Roster, *studentPtr))
	}

	if *outPtr != "" {
		file, err := os.Create(*outPtr)
		if err != nil {
			log.Fatalf("cannot create %v: %v", *outPtr, err)
		}
		defer file.Close()
		if err := csvio.NewWriter().WriteTimetable(file, result.Timetable); err != nil {
			log.Fatalf("cannot export timetable: %v", err)
		}
		fmt.Printf("Timetable exported to %v\n", *outPtr)
	}
}

func loadInput(configPath, classroomsPath, coursesPath, bucketsDir string) (model.Input, error) {
	var input model.Input
	var err error

	if configPath != "" {
		input, err = model.InputFromJSON(configPath)
		if err != nil {
			return model.Input{}, err
		}
	}
	if classroomsPath != "" {
		if input.Classrooms, err = csvio.LoadClassrooms(classroomsPath); err != nil {
			return model.Input{}, err
		}
	}
	if coursesPath != "" {
		if input.Courses, err = csvio.LoadCourses(coursesPath); err != nil {
			return model.Input{}, err
		}
	}
	if bucketsDir != "" {
		entries, err := os.ReadDir(bucketsDir)
		if err != nil {
			return model.Input{}, err
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			bucket, err := csvio.LoadBucket(filepath.Join(bucketsDir, entry.Name()))
			if err != nil {
				return model.Input{}, err
			}
			input.Buckets = append(input.Buckets, bucket)
		}
	}
	return input, nil
}

func printView(view model.View) {
	fmt.Printf("Timetable for %v:\n", view.Owner)
	for _, day := range model.Days() {
		rows := view.Days[day.String()]
		if len(rows) == 0 {
			continue
		}
		fmt.Printf("%v:\n", day)
		for _, row := range rows {
			fmt.Printf("  %-12v %-30v %-10v %v\n", row.TimeRange, row.CourseName, row.RoomName, row.Kind)
		}
	}
}
