package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/agripal/agrisite"
)

func renderView(t *testing.T, data agrisite.AdminData) string {
	t.Helper()
	var buf bytes.Buffer
	if err := adminView(data).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	return buf.String()
}

func TestAdminCourseEditPrefillsNumericFields(t *testing.T) {
	days, hours := 12, 48
	price := 149.5
	data := agrisite.AdminData{
		ActiveTab: "courses",
		EditingCourse: &agrisite.Course{
			ID:              "course-1",
			Title:           "Drip Irrigation Basics",
			Instructor:      "Lena Mwangi",
			Category:        "Irrigation",
			DifficultyLevel: "Beginner",
			DurationDays:    &days,
			DurationHours:   &hours,
			Price:           &price,
		},
	}

	page := renderView(t, data)

	// Resubmitting the edit form must round-trip the numeric columns, so
	// every optional number is pre-filled, not rendered blank.
	for _, want := range []string{
		`name="duration_days" placeholder="Days" value="12"`,
		`name="duration_hours" placeholder="Hours" value="48"`,
		`name="price" placeholder="Price" value="149.5"`,
		`name="course_id" value="course-1"`,
	} {
		if !strings.Contains(page, want) {
			t.Errorf("edit form missing %q", want)
		}
	}
}

func TestAdminCourseCreateFormStartsBlank(t *testing.T) {
	page := renderView(t, agrisite.AdminData{ActiveTab: "courses"})

	for _, want := range []string{
		`name="duration_days" placeholder="Days" value=""`,
		`name="price" placeholder="Price" value=""`,
		`name="course_id" value=""`,
	} {
		if !strings.Contains(page, want) {
			t.Errorf("create form missing %q", want)
		}
	}
}
