package services

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/SAP-F-2025/feedback-service/internal/models"
	"github.com/SAP-F-2025/feedback-service/internal/validator"
)

func newTestCourseService(t *testing.T) (CourseService, *mockRepository) {
	t.Helper()
	repo := newMockRepository()
	service := NewCourseService(repo, nil, slog.Default(), validator.New())
	return service, repo
}

func TestCourseService_Create(t *testing.T) {
	service, _ := newTestCourseService(t)
	ctx := context.Background()

	course, err := service.Create(ctx, &CreateCourseRequest{
		Name: "Algorithms", Code: "cs301", Description: "Sorting and graphs",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if course.Code != "CS301" {
		t.Errorf("code = %q, want uppercase CS301", course.Code)
	}
	if course.ID == 0 {
		t.Error("expected assigned ID")
	}
}

func TestCourseService_Create_Duplicate(t *testing.T) {
	service, _ := newTestCourseService(t)
	ctx := context.Background()

	if _, err := service.Create(ctx, &CreateCourseRequest{Name: "Algorithms", Code: "CS301"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	tests := []struct {
		name string
		req  *CreateCourseRequest
	}{
		{"same name", &CreateCourseRequest{Name: "Algorithms", Code: "CS999"}},
		{"same code", &CreateCourseRequest{Name: "Other", Code: "CS301"}},
		{"same code lowercase", &CreateCourseRequest{Name: "Other", Code: "cs301"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := service.Create(ctx, tt.req); !errors.Is(err, ErrDuplicateCourse) {
				t.Errorf("Create() error = %v, want ErrDuplicateCourse", err)
			}
		})
	}
}

func TestCourseService_Create_Validation(t *testing.T) {
	service, _ := newTestCourseService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  *CreateCourseRequest
	}{
		{"missing name", &CreateCourseRequest{Code: "CS301"}},
		{"missing code", &CreateCourseRequest{Name: "Algorithms"}},
		{"code too short", &CreateCourseRequest{Name: "Algorithms", Code: "C"}},
		{"code with symbols", &CreateCourseRequest{Name: "Algorithms", Code: "CS-301"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := service.Create(ctx, tt.req); !errors.Is(err, ErrValidationFailed) {
				t.Errorf("Create() error = %v, want ErrValidationFailed", err)
			}
		})
	}
}

func TestCourseService_Update_MergeMissing(t *testing.T) {
	service, _ := newTestCourseService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, &CreateCourseRequest{
		Name: "Algorithms", Code: "CS301", Description: "Original",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	updated, err := service.Update(ctx, created.ID, &UpdateCourseRequest{Name: "Advanced Algorithms"})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Name != "Advanced Algorithms" {
		t.Errorf("name = %q", updated.Name)
	}
	if updated.Code != "CS301" || updated.Description != "Original" {
		t.Errorf("omitted fields changed: code=%q desc=%q", updated.Code, updated.Description)
	}

	if _, err := service.Update(ctx, 999, &UpdateCourseRequest{Name: "x"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update() of unknown course error = %v, want ErrNotFound", err)
	}
}

func TestCourseService_Delete_ReferentialGuard(t *testing.T) {
	service, repo := newTestCourseService(t)
	ctx := context.Background()

	course, err := service.Create(ctx, &CreateCourseRequest{Name: "Algorithms", Code: "CS301"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	student := seedStudent(t, repo, "Alice", "alice@school.com")
	if err := repo.Feedback().Create(ctx, &models.Feedback{
		StudentID: student.ID, CourseID: course.ID, Rating: 4, Message: "m",
	}); err != nil {
		t.Fatalf("seed feedback: %v", err)
	}

	if err := service.Delete(ctx, course.ID); !errors.Is(err, ErrCourseHasFeedback) {
		t.Errorf("Delete() with feedback error = %v, want ErrCourseHasFeedback", err)
	}

	// After the feedback is gone the course can be removed.
	if err := repo.Feedback().DeleteByStudent(ctx, student.ID); err != nil {
		t.Fatalf("clear feedback: %v", err)
	}
	if err := service.Delete(ctx, course.ID); err != nil {
		t.Errorf("Delete() error = %v", err)
	}

	if err := service.Delete(ctx, course.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() of removed course error = %v, want ErrNotFound", err)
	}
}

func TestCourseService_List_SortedByName(t *testing.T) {
	service, _ := newTestCourseService(t)
	ctx := context.Background()

	for _, c := range []CreateCourseRequest{
		{Name: "Calculus", Code: "MA101"},
		{Name: "Algorithms", Code: "CS301"},
		{Name: "Biology", Code: "BI201"},
	} {
		req := c
		if _, err := service.Create(ctx, &req); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	courses, err := service.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(courses) != 3 {
		t.Fatalf("List() returned %d courses, want 3", len(courses))
	}
	want := []string{"Algorithms", "Biology", "Calculus"}
	for i, name := range want {
		if courses[i].Name != name {
			t.Errorf("courses[%d] = %q, want %q", i, courses[i].Name, name)
		}
	}
}
