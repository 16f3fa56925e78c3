package validator

// RegisterRequest is the signup payload. New accounts are always students.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,password_strength"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CreateFeedbackRequest struct {
	CourseID uint   `json:"courseId" validate:"required"`
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
	Message  string `json:"message" validate:"required,max=1000"`
}

// UpdateFeedbackRequest uses merge-missing semantics: a zero rating or an
// empty message leaves the stored value unchanged.
type UpdateFeedbackRequest struct {
	Rating  int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Message string `json:"message" validate:"omitempty,max=1000"`
}

type CreateCourseRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Code        string `json:"code" validate:"required,course_code"`
	Description string `json:"description" validate:"omitempty,max=200"`
}

// UpdateCourseRequest uses merge-missing semantics; empty fields keep the
// stored value.
type UpdateCourseRequest struct {
	Name        string `json:"name" validate:"omitempty,max=200"`
	Code        string `json:"code" validate:"omitempty,course_code"`
	Description string `json:"description" validate:"omitempty,max=200"`
}

type BlockStudentRequest struct {
	IsBlocked *bool `json:"isBlocked" validate:"required"`
}

// UpdateProfileRequest uses merge-missing semantics; email is immutable
// through this path.
type UpdateProfileRequest struct {
	Name           string `json:"name" validate:"omitempty,max=100"`
	Phone          string `json:"phone" validate:"omitempty,max=30"`
	DateOfBirth    string `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02"`
	Address        string `json:"address" validate:"omitempty,max=500"`
	ProfilePicture string `json:"profilePicture" validate:"omitempty,max=500"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,password_strength"`
}
