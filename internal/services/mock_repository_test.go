package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/feedback-service/internal/models"
	"github.com/SAP-F-2025/feedback-service/internal/repositories"
)

// mockRepository is an in-memory implementation of repositories.Repository
// backed by maps, shared across the service tests.
type mockRepository struct {
	store *mockStore
}

type mockStore struct {
	mu sync.Mutex

	users    map[uint]*models.User
	courses  map[uint]*models.Course
	feedback map[uint]*models.Feedback

	nextUserID     uint
	nextCourseID   uint
	nextFeedbackID uint

	// Monotonic fake clock so creation order is deterministic.
	clock time.Time
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		store: &mockStore{
			users:    make(map[uint]*models.User),
			courses:  make(map[uint]*models.Course),
			feedback: make(map[uint]*models.Feedback),
			clock:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

func (s *mockStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (m *mockRepository) User() repositories.UserRepository           { return (*mockUserRepo)(m.store) }
func (m *mockRepository) Course() repositories.CourseRepository       { return (*mockCourseRepo)(m.store) }
func (m *mockRepository) Feedback() repositories.FeedbackRepository   { return (*mockFeedbackRepo)(m.store) }
func (m *mockRepository) Dashboard() repositories.DashboardRepository { return (*mockDashboardRepo)(m.store) }

func (m *mockRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(m)
}

func (m *mockRepository) Ping(ctx context.Context) error { return nil }
func (m *mockRepository) Close() error                   { return nil }

// ===== USERS =====

type mockUserRepo mockStore

func (r *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return fmt.Errorf("failed to create user: %w", gorm.ErrDuplicatedKey)
		}
	}

	r.nextUserID++
	user.ID = r.nextUserID
	user.CreatedAt = (*mockStore)(r).tick()
	user.UpdatedAt = user.CreatedAt
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *mockUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("failed to get user %d: %w", id, gorm.ErrRecordNotFound)
	}
	copied := *user
	return &copied, nil
}

func (r *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("failed to get user by email: %w", gorm.ErrRecordNotFound)
}

func (r *mockUserRepo) Update(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return fmt.Errorf("failed to update user %d: %w", user.ID, gorm.ErrRecordNotFound)
	}
	user.UpdatedAt = (*mockStore)(r).tick()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *mockUserRepo) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.users, id)
	return nil
}

func (r *mockUserRepo) ListStudents(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var students []*models.User
	for _, user := range r.users {
		if user.Role == models.RoleStudent {
			copied := *user
			students = append(students, &copied)
		}
	}
	sort.Slice(students, func(i, j int) bool {
		return students[i].CreatedAt.After(students[j].CreatedAt)
	})

	total := int64(len(students))
	students = paginate(students, filters.Offset, filters.Limit)
	return students, total, nil
}

func (r *mockUserRepo) CountStudents(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	for _, user := range r.users {
		if user.Role == models.RoleStudent {
			count++
		}
	}
	return count, nil
}

// ===== COURSES =====

type mockCourseRepo mockStore

func (r *mockCourseRepo) Create(ctx context.Context, course *models.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.courses {
		if existing.Name == course.Name || existing.Code == course.Code {
			return fmt.Errorf("failed to create course: %w", gorm.ErrDuplicatedKey)
		}
	}

	r.nextCourseID++
	course.ID = r.nextCourseID
	course.CreatedAt = (*mockStore)(r).tick()
	course.UpdatedAt = course.CreatedAt
	copied := *course
	r.courses[course.ID] = &copied
	return nil
}

func (r *mockCourseRepo) GetByID(ctx context.Context, id uint) (*models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	course, ok := r.courses[id]
	if !ok {
		return nil, fmt.Errorf("failed to get course %d: %w", id, gorm.ErrRecordNotFound)
	}
	copied := *course
	return &copied, nil
}

func (r *mockCourseRepo) Update(ctx context.Context, course *models.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.courses[course.ID]; !ok {
		return fmt.Errorf("failed to update course %d: %w", course.ID, gorm.ErrRecordNotFound)
	}
	for _, existing := range r.courses {
		if existing.ID != course.ID && (existing.Name == course.Name || existing.Code == course.Code) {
			return fmt.Errorf("failed to update course %d: %w", course.ID, gorm.ErrDuplicatedKey)
		}
	}
	copied := *course
	r.courses[course.ID] = &copied
	return nil
}

func (r *mockCourseRepo) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.courses, id)
	return nil
}

func (r *mockCourseRepo) ListAll(ctx context.Context) ([]*models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var courses []*models.Course
	for _, course := range r.courses {
		copied := *course
		courses = append(courses, &copied)
	}
	sort.Slice(courses, func(i, j int) bool {
		return courses[i].Name < courses[j].Name
	})
	return courses, nil
}

// ===== FEEDBACK =====

type mockFeedbackRepo mockStore

func (r *mockFeedbackRepo) Create(ctx context.Context, feedback *models.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextFeedbackID++
	feedback.ID = r.nextFeedbackID
	feedback.CreatedAt = (*mockStore)(r).tick()
	feedback.UpdatedAt = feedback.CreatedAt
	copied := *feedback
	copied.Student = nil
	copied.Course = nil
	r.feedback[feedback.ID] = &copied
	return nil
}

func (r *mockFeedbackRepo) GetByID(ctx context.Context, id uint) (*models.Feedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	feedback, ok := r.feedback[id]
	if !ok {
		return nil, fmt.Errorf("failed to get feedback %d: %w", id, gorm.ErrRecordNotFound)
	}
	return (*mockStore)(r).expand(feedback), nil
}

func (r *mockFeedbackRepo) Update(ctx context.Context, feedback *models.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.feedback[feedback.ID]; !ok {
		return fmt.Errorf("failed to update feedback %d: %w", feedback.ID, gorm.ErrRecordNotFound)
	}
	feedback.UpdatedAt = (*mockStore)(r).tick()
	copied := *feedback
	copied.Student = nil
	copied.Course = nil
	r.feedback[feedback.ID] = &copied
	return nil
}

func (r *mockFeedbackRepo) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.feedback, id)
	return nil
}

func (r *mockFeedbackRepo) List(ctx context.Context, filters repositories.FeedbackFilters) ([]*models.Feedback, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*models.Feedback
	for _, feedback := range r.feedback {
		if filters.StudentID != nil && feedback.StudentID != *filters.StudentID {
			continue
		}
		if filters.CourseID != nil && feedback.CourseID != *filters.CourseID {
			continue
		}
		if filters.Rating != nil && feedback.Rating != *filters.Rating {
			continue
		}
		matched = append(matched, (*mockStore)(r).expand(feedback))
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	matched = paginate(matched, filters.Offset, filters.Limit)
	return matched, total, nil
}

func (r *mockFeedbackRepo) ListAll(ctx context.Context) ([]*models.Feedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var all []*models.Feedback
	for _, feedback := range r.feedback {
		all = append(all, (*mockStore)(r).expand(feedback))
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return all, nil
}

func (r *mockFeedbackRepo) ExistsForStudentAndCourse(ctx context.Context, studentID, courseID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, feedback := range r.feedback {
		if feedback.StudentID == studentID && feedback.CourseID == courseID {
			return true, nil
		}
	}
	return false, nil
}

func (r *mockFeedbackRepo) CountByCourse(ctx context.Context, courseID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	for _, feedback := range r.feedback {
		if feedback.CourseID == courseID {
			count++
		}
	}
	return count, nil
}

func (r *mockFeedbackRepo) DeleteByStudent(ctx context.Context, studentID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, feedback := range r.feedback {
		if feedback.StudentID == studentID {
			delete(r.feedback, id)
		}
	}
	return nil
}

// expand attaches student and course copies, mirroring the Preload behavior
// of the real repository. Caller must hold the lock.
func (s *mockStore) expand(feedback *models.Feedback) *models.Feedback {
	copied := *feedback
	if student, ok := s.users[feedback.StudentID]; ok {
		sc := *student
		copied.Student = &sc
	}
	if course, ok := s.courses[feedback.CourseID]; ok {
		cc := *course
		copied.Course = &cc
	}
	return &copied
}

// ===== DASHBOARD =====

type mockDashboardRepo mockStore

func (r *mockDashboardRepo) GetTotalFeedback(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.feedback)), nil
}

func (r *mockDashboardRepo) GetTotalStudents(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	for _, user := range r.users {
		if user.Role == models.RoleStudent {
			count++
		}
	}
	return count, nil
}

func (r *mockDashboardRepo) GetCourseRatings(ctx context.Context) ([]repositories.CourseRatingStat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sums := make(map[uint]float64)
	counts := make(map[uint]int64)
	for _, feedback := range r.feedback {
		sums[feedback.CourseID] += float64(feedback.Rating)
		counts[feedback.CourseID]++
	}

	var stats []repositories.CourseRatingStat
	for courseID, count := range counts {
		course, ok := r.courses[courseID]
		if !ok {
			continue
		}
		stats = append(stats, repositories.CourseRatingStat{
			CourseID:      courseID,
			CourseName:    course.Name,
			CourseCode:    course.Code,
			AverageRating: sums[courseID] / float64(count),
			FeedbackCount: count,
		})
	}
	sort.Slice(stats, func(i, j int) bool {
		return stats[i].CourseName < stats[j].CourseName
	})
	return stats, nil
}

func paginate[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
