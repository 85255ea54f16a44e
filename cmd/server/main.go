package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/classforge/timetable/internal/engine"
	"github.com/classforge/timetable/internal/enrollment"
	"github.com/classforge/timetable/internal/projector"
	"github.com/classforge/timetable/internal/scheduler"
	"github.com/classforge/timetable/pkg/model"
)

const generationTimeout = 60 * time.Second

type generateRequest struct {
	Classrooms []model.RoomInput   `json:"classrooms"`
	Courses    []model.CourseInput `json:"courses"`
	Buckets    []bucketRequest     `json:"buckets"`
	Seed       int64               `json:"seed"`
}

type bucketRequest struct {
	BucketName string `json:"bucketName"`
	Rows       []struct {
		StudentName string   `json:"studentName"`
		RollNumber  string   `json:"rollNumber"`
		CourseIDs   []string `json:"courseIds"`
	} `json:"rows"`
}

type generateResponse struct {
	RunID      string                `json:"runId"`
	Students   map[string]model.View `json:"students"`
	Rooms      map[string]model.View `json:"rooms"`
	Professors map[string]model.View `json:"professors"`
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on process environment")
	}
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	r := gin.Default()

	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/generate", handleGenerate)

	log.Printf("listening on :%v", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}

func handleGenerate(c *gin.Context) {
	var request generateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), generationTimeout)
	defer cancel()

	result, err := engine.Generate(ctx, toInput(request), scheduler.Config{Seed: request.Seed})
	if err != nil {
		status, payload := errorResponse(err)
		c.JSON(status, payload)
		return
	}

	response := generateResponse{
		RunID:      uuid.NewString(),
		Students:   make(map[string]model.View),
		Rooms:      make(map[string]model.View),
		Professors: make(map[string]model.View),
	}
	for _, student := range result.Roster.Students {
		response.Students[student.RollNumber] = projector.StudentView(result.Timetable, result.Roster, student.RollNumber)
	}
	for _, room := range result.Rooms {
		response.Rooms[room.Name] = projector.RoomView(result.Timetable, room.Name)
	}
	for _, course := range result.Courses {
		for _, professor := range course.Professors {
			if _, ok := response.Professors[professor]; !ok {
				response.Professors[professor] = projector.ProfessorView(result.Timetable, professor)
			}
		}
	}

	c.JSON(http.StatusOK, response)
}

func toInput(request generateRequest) model.Input {
	input := model.Input{
		Classrooms: request.Classrooms,
		Courses:    request.Courses,
	}
	for _, bucket := range request.Buckets {
		converted := model.BucketInput{BucketName: bucket.BucketName}
		for _, row := range bucket.Rows {
			converted.Rows = append(converted.Rows, model.RowInput{
				StudentName: row.StudentName,
				RollNumber:  row.RollNumber,
				CourseIDs:   row.CourseIDs,
			})
		}
		input.Buckets = append(input.Buckets, converted)
	}
	return input
}

// errorResponse maps the engine's error taxonomy onto HTTP statuses:
// configuration and enrollment problems are the client's to fix,
// infeasibility is a valid verdict, timeouts are retryable.
func errorResponse(err error) (int, gin.H) {
	var configuration model.ConfigurationError
	var conflict *enrollment.ConflictError
	var infeasible *scheduler.InfeasibleError
	var timeout *scheduler.TimeoutError

	switch {
	case errors.As(err, &configuration):
		return http.StatusBadRequest, gin.H{"error": configuration.Error()}
	case errors.As(err, &conflict):
		return http.StatusUnprocessableEntity, gin.H{
			"error":     "enrollment conflicts",
			"conflicts": conflict.Report.Descriptions(),
		}
	case errors.As(err, &infeasible):
		return http.StatusConflict, gin.H{
			"error":     "timetable is infeasible",
			"conflicts": infeasible.Conflicts,
		}
	case errors.As(err, &timeout):
		return http.StatusServiceUnavailable, gin.H{"error": timeout.Error(), "retryable": true}
	default:
		return http.StatusInternalServerError, gin.H{"error": err.Error()}
	}
}
