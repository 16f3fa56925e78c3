package validator

import (
	"strings"
	"testing"
)

func TestValidator_PasswordStrength(t *testing.T) {
	v := New()

	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{"strong", "Str0ng!Pass", true},
		{"all classes minimal length", "Aa1!aaaa", true},
		{"too short", "Aa1!aaa", false},
		{"no uppercase", "aa1!aaaa", false},
		{"no lowercase", "AA1!AAAA", false},
		{"no digit", "Aab!aaaa", false},
		{"no special", "Aa1aaaaa", false},
		{"symbol counts as special", "Aa1+aaaa", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := RegisterRequest{Name: "Alice", Email: "a@b.com", Password: tt.password}
			errs := v.Validate(&req)
			if tt.valid && errs != nil {
				t.Errorf("Validate() = %v, want nil", errs)
			}
			if !tt.valid && errs == nil {
				t.Error("Validate() = nil, want password error")
			}
		})
	}
}

func TestValidator_CourseCode(t *testing.T) {
	v := New()

	tests := []struct {
		name  string
		code  string
		valid bool
	}{
		{"letters and digits", "CS301", true},
		{"lowercase accepted", "cs301", true},
		{"minimum length", "C1", true},
		{"maximum length", strings.Repeat("A", 20), true},
		{"too short", "C", false},
		{"too long", strings.Repeat("A", 21), false},
		{"hyphen", "CS-301", false},
		{"space", "CS 301", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := CreateCourseRequest{Name: "Course", Code: tt.code}
			errs := v.Validate(&req)
			if tt.valid && errs != nil {
				t.Errorf("Validate() = %v, want nil", errs)
			}
			if !tt.valid && errs == nil {
				t.Error("Validate() = nil, want course_code error")
			}
		})
	}
}

func TestValidationErrors_Error(t *testing.T) {
	v := New()

	errs := v.Validate(&CreateFeedbackRequest{Rating: 9})
	if errs == nil {
		t.Fatal("expected validation errors")
	}

	msg := errs.Error()
	if !strings.Contains(msg, "CourseID") || !strings.Contains(msg, "Rating") || !strings.Contains(msg, "Message") {
		t.Errorf("joined message missing fields: %q", msg)
	}
}

func TestValidator_UpdateRequests_AllowEmpty(t *testing.T) {
	v := New()

	if errs := v.Validate(&UpdateFeedbackRequest{}); errs != nil {
		t.Errorf("empty feedback update = %v, want nil", errs)
	}
	if errs := v.Validate(&UpdateCourseRequest{}); errs != nil {
		t.Errorf("empty course update = %v, want nil", errs)
	}
	if errs := v.Validate(&UpdateProfileRequest{}); errs != nil {
		t.Errorf("empty profile update = %v, want nil", errs)
	}

	if errs := v.Validate(&UpdateFeedbackRequest{Rating: 6}); errs == nil {
		t.Error("out-of-range rating accepted on update")
	}
	if errs := v.Validate(&UpdateProfileRequest{DateOfBirth: "not-a-date"}); errs == nil {
		t.Error("malformed date accepted on update")
	}
}
