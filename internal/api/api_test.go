package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"elearning_api/internal/api"
	appdb "elearning_api/internal/db"
	"elearning_api/internal/domain"
	"elearning_api/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testSecret = "test-secret-key-for-testing"

// setupTestDB opens a fresh in-memory SQLite database with foreign keys
// enabled and the full schema migrated
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{})
	require.NoError(t, err)

	// An in-memory SQLite database exists per connection; keep one
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, appdb.Migrate(gdb))
	return gdb
}

// newTestRouter wires the same route table as cmd/server, without Redis
func newTestRouter(gdb *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	r.GET("/", func(c *gin.Context) {
		c.String(200, "Welcome to the eLearning API!")
	})

	r.POST("/register", api.RegisterHandler(gdb))
	r.POST("/login", api.LoginHandler(gdb, testSecret))
	r.GET("/me", middleware.JWTAuthMiddleware(testSecret), api.MeHandler(gdb))

	r.GET("/courses", api.ListCoursesHandler(gdb))
	r.POST("/courses", api.CreateCourseHandler(gdb))
	r.GET("/modules", api.ListModulesHandler(gdb))
	r.POST("/modules", api.CreateModuleHandler(gdb))
	r.POST("/enrollments", api.EnrollHandler(gdb))
	r.DELETE("/courses/:id",
		middleware.JWTAuthMiddleware(testSecret),
		middleware.AdminOnlyMiddleware(gdb),
		api.DeleteCourseHandler(gdb))

	r.GET("/course-stats", api.CourseStatsHandler(gdb, nil))
	r.GET("/instructor-courses", api.InstructorCoursesHandler(gdb, nil))
	r.GET("/student-enrollments", api.StudentEnrollmentsHandler(gdb, nil))
	r.GET("/popular-course", api.PopularCourseHandler(gdb, nil))
	r.GET("/dashboard-stats", api.DashboardStatsHandler(gdb, nil))

	return r
}

// doRequest performs a JSON request against the router and returns the
// recorded response
func doRequest(t *testing.T, r *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// createUser inserts a user with a bcrypt-hashed "password123"
func createUser(t *testing.T, gdb *gorm.DB, username, role string) domain.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	user := domain.User{
		Username: username,
		Password: string(hash),
		Email:    username + "@example.com",
		Role:     role,
	}
	require.NoError(t, gdb.Create(&user).Error)
	return user
}

// createCourse inserts a course owned by the given instructor
func createCourse(t *testing.T, gdb *gorm.DB, title string, instructorID uint) domain.Course {
	t.Helper()

	course := domain.Course{Title: title, Description: title + " description", InstructorID: instructorID}
	require.NoError(t, gdb.Create(&course).Error)
	return course
}
