// Package engine wires configuration, aggregation and scheduling into the
// single generation pipeline both commands run.
package engine

import (
	"context"

	"github.com/classforge/timetable/internal/config"
	"github.com/classforge/timetable/internal/enrollment"
	"github.com/classforge/timetable/internal/scheduler"
	"github.com/classforge/timetable/pkg/model"
)

// Result bundles the published timetable with the entities the projector
// and exporters need alongside it.
type Result struct {
	Timetable *model.Timetable
	Roster    enrollment.Roster
	Rooms     []*model.Classroom
	Courses   []*model.Course
}

// Generate runs one full generation: validate configuration, aggregate
// enrollment, schedule, and verify. Each call builds fresh domain entities,
// so concurrent or repeated runs never observe each other's state.
func Generate(ctx context.Context, input model.Input, cfg scheduler.Config) (*Result, error) {
	rooms, err := config.BuildClassrooms(input.Classrooms)
	if err != nil {
		return nil, err
	}
	courses, err := config.BuildCourses(input.Courses)
	if err != nil {
		return nil, err
	}

	aggregator := enrollment.NewAggregator(model.MaxLabStrength)
	roster, err := aggregator.Aggregate(input.Buckets, courses)
	if err != nil {
		return nil, err
	}

	problem := scheduler.Problem{Rooms: rooms, Courses: courses, Roster: roster}
	sched := scheduler.New(cfg)
	timetable, err := sched.Build(ctx, problem)
	if err != nil {
		return nil, err
	}

	return &Result{
		Timetable: timetable,
		Roster:    roster,
		Rooms:     rooms,
		Courses:   courses,
	}, nil
}
