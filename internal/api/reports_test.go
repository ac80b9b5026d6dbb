package api_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"elearning_api/internal/api"
	"elearning_api/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func enroll(t *testing.T, gdb *gorm.DB, userID, courseID uint) {
	t.Helper()
	require.NoError(t, gdb.Create(&domain.Enrollment{UserID: userID, CourseID: courseID}).Error)
}

func TestCourseStats(t *testing.T) {
	gdb := setupTestDB(t)
	router := newTestRouter(gdb)
	instructor := createUser(t, gdb, "teach", "instructor")
	popular := createCourse(t, gdb, "Popular", instructor.ID)
	createCourse(t, gdb, "Empty", instructor.ID)
	s1 := createUser(t, gdb, "studentone", "student")
	s2 := createUser(t, gdb, "studenttwo", "student")
	enroll(t, gdb, s1.ID, popular.ID)
	enroll(t, gdb, s2.ID, popular.ID)

	w := doRequest(t, router, http.MethodGet, "/course-stats", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var stats []api.CourseStat
	require.NoError(t, json.NewDecoder(w.Body).Decode(&stats))
	require.Len(t, stats, 2)

	byTitle := map[string]int{}
	for _, s := range stats {
		byTitle[s.CourseTitle] = s.StudentCount
	}
	assert.Equal(t, 2, byTitle["Popular"])
	// Zero-enrollment courses still get a row
	count, ok := byTitle["Empty"]
	assert.True(t, ok)
	assert.Equal(t, 0, count)
}

func TestInstructorCourses(t *testing.T) {
	gdb := setupTestDB(t)
	router := newTestRouter(gdb)
	instructor := createUser(t, gdb, "teach", "instructor")
	admin := createUser(t, gdb, "admin", "admin")
	createCourse(t, gdb, "Real Course", instructor.ID)
	// Courses owned by non-instructors are excluded from the report
	createCourse(t, gdb, "Admin Course", admin.ID)

	w := doRequest(t, router, http.MethodGet, "/instructor-courses", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var rows []api.InstructorCourse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Real Course", rows[0].CourseTitle)
	assert.Equal(t, "teach", rows[0].InstructorName)
}

func TestStudentEnrollments(t *testing.T) {
	gdb := setupTestDB(t)
	router := newTestRouter(gdb)
	instructor := createUser(t, gdb, "teach", "instructor")
	course := createCourse(t, gdb, "Course A", instructor.ID)
	student := createUser(t, gdb, "student", "student")
	enroll(t, gdb, student.ID, course.ID)
	// An instructor enrolling is excluded from the student report
	enroll(t, gdb, instructor.ID, course.ID)

	w := doRequest(t, router, http.MethodGet, "/student-enrollments", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var rows []api.StudentEnrollment
	require.NoError(t, json.NewDecoder(w.Body).Decode(&rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "student", rows[0].Student)
	assert.Equal(t, "Course A", rows[0].CourseTitle)
}

func TestPopularCourse(t *testing.T) {
	t.Run("NoEnrollments", func(t *testing.T) {
		gdb := setupTestDB(t)
		router := newTestRouter(gdb)
		instructor := createUser(t, gdb, "teach", "instructor")
		createCourse(t, gdb, "Lonely Course", instructor.ID)

		w := doRequest(t, router, http.MethodGet, "/popular-course", nil, "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "No enrollments found")
	})

	t.Run("HighestEnrollmentWins", func(t *testing.T) {
		gdb := setupTestDB(t)
		router := newTestRouter(gdb)
		instructor := createUser(t, gdb, "teach", "instructor")
		popular := createCourse(t, gdb, "Popular", instructor.ID)
		other := createCourse(t, gdb, "Other", instructor.ID)
		s1 := createUser(t, gdb, "studentone", "student")
		s2 := createUser(t, gdb, "studenttwo", "student")
		enroll(t, gdb, s1.ID, popular.ID)
		enroll(t, gdb, s2.ID, popular.ID)
		enroll(t, gdb, s1.ID, other.ID)

		w := doRequest(t, router, http.MethodGet, "/popular-course", nil, "")

		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]string
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "Popular", resp["most_popular_course"])
	})
}

func TestDashboardStats(t *testing.T) {
	t.Run("EmptyEnrollmentsYieldsNullNotA404", func(t *testing.T) {
		gdb := setupTestDB(t)
		router := newTestRouter(gdb)
		instructor := createUser(t, gdb, "teach", "instructor")
		createCourse(t, gdb, "Course A", instructor.ID)

		w := doRequest(t, router, http.MethodGet, "/dashboard-stats", nil, "")

		assert.Equal(t, http.StatusOK, w.Code)

		body := w.Body.String()
		var resp api.DashboardResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Nil(t, resp.MostPopularCourse)
		require.Len(t, resp.EnrollmentStatistics, 1)
		assert.Equal(t, 0, resp.EnrollmentStatistics[0].StudentCount)
		assert.Contains(t, body, `"most_popular_course":null`)
	})

	t.Run("Composed", func(t *testing.T) {
		gdb := setupTestDB(t)
		router := newTestRouter(gdb)
		instructor := createUser(t, gdb, "teach", "instructor")
		course := createCourse(t, gdb, "Course A", instructor.ID)
		student := createUser(t, gdb, "student", "student")
		enroll(t, gdb, student.ID, course.ID)

		w := doRequest(t, router, http.MethodGet, "/dashboard-stats", nil, "")

		assert.Equal(t, http.StatusOK, w.Code)

		var resp api.DashboardResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		require.NotNil(t, resp.MostPopularCourse)
		assert.Equal(t, "Course A", *resp.MostPopularCourse)
		require.Len(t, resp.EnrollmentStatistics, 1)
		assert.Equal(t, 1, resp.EnrollmentStatistics[0].StudentCount)
		require.Len(t, resp.InstructorCourses, 1)
		assert.Equal(t, "teach", resp.InstructorCourses[0].InstructorName)
	})
}

func TestWelcome(t *testing.T) {
	gdb := setupTestDB(t)
	router := newTestRouter(gdb)

	w := doRequest(t, router, http.MethodGet, "/", nil, "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Welcome to the eLearning API!", w.Body.String())
}
