package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes

	"elearning_api/internal/domain" // Importing domain models
	"elearning_api/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// CreateCourseRequest carries a new course
type CreateCourseRequest struct {
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description"`
	InstructorID uint   `json:"instructor_id" binding:"required"`
}

// CreateModuleRequest carries a new module; content may be omitted
type CreateModuleRequest struct {
	CourseID    uint    `json:"course_id" binding:"required"`
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Content     *string `json:"content"`
}

// EnrollRequest carries a new enrollment
type EnrollRequest struct {
	StudentID uint `json:"student_id" binding:"required"`
	CourseID  uint `json:"course_id" binding:"required"`
}

// ModuleResponse is a module as returned by GET /modules. CourseID is
// omitted when the listing is already filtered to a single course.
type ModuleResponse struct {
	ID          uint   `json:"id"`
	CourseID    *uint  `json:"course_id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
}

// invalidateReports drops the cached reporting payloads after a write.
// The Redis client is injected into the context by the server; when it is
// absent (tests, cache disabled) the write proceeds uncached.
func invalidateReports(c *gin.Context) {
	if v, ok := c.Get("redisClient"); ok {
		if rdb, ok := v.(*redis.Client); ok && rdb != nil {
			_ = utils.InvalidateReportCache(context.Background(), rdb)
		}
	}
}

// ListCoursesHandler returns all courses
func ListCoursesHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var courses []domain.Course
		if err := db.Find(&courses).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, courses)
	}
}

// CreateCourseHandler inserts a new course
func CreateCourseHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateCourseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		course := domain.Course{
			Title:        req.Title,
			Description:  req.Description,
			InstructorID: req.InstructorID,
		}
		if err := db.Create(&course).Error; err != nil {
			// Bad foreign key and other constraint failures land here
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logrus.WithFields(logrus.Fields{
			"course_id":     course.ID,
			"instructor_id": course.InstructorID,
		}).Info("Course created")
		invalidateReports(c)
		c.JSON(http.StatusCreated, gin.H{"message": "Course created successfully"})
	}
}

// DeleteCourseHandler removes a course; its modules go with it via the
// schema-level cascade. Admin only.
func DeleteCourseHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		res := db.Delete(&domain.Course{}, "id = ?", c.Param("id"))
		if res.Error != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": res.Error.Error()})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
			return
		}
		logrus.WithField("course_id", c.Param("id")).Info("Course deleted")
		invalidateReports(c)
		c.JSON(http.StatusOK, gin.H{"message": "Course deleted successfully"})
	}
}

// ListModulesHandler returns modules, optionally filtered by course
func ListModulesHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		courseID := c.Query("course_id") // Optional filter
		var modules []domain.Module
		query := db
		if courseID != "" {
			query = query.Where("course_id = ?", courseID)
		}
		if err := query.Find(&modules).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		resp := make([]ModuleResponse, len(modules))
		for i, m := range modules {
			resp[i] = ModuleResponse{
				ID:          m.ID,
				Title:       m.Title,
				Description: m.Description,
				Content:     m.Content,
			}
			// course_id is redundant when the listing is filtered
			if courseID == "" {
				id := m.CourseID
				resp[i].CourseID = &id
			}
		}
		c.JSON(http.StatusOK, resp)
	}
}

// CreateModuleHandler inserts a module into a course
func CreateModuleHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateModuleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		module := domain.Module{
			CourseID:    req.CourseID,
			Title:       req.Title,
			Description: req.Description,
		}
		if req.Content != nil {
			module.Content = *req.Content // Defaults to empty string when omitted
		}
		if err := db.Create(&module).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logrus.WithFields(logrus.Fields{
			"module_id": module.ID,
			"course_id": module.CourseID,
		}).Info("Module created")
		invalidateReports(c)
		c.JSON(http.StatusCreated, gin.H{"message": "Module created successfully"})
	}
}

// EnrollHandler enrolls a student in a course. An explicit existence check
// rejects duplicates up front; the composite primary key on enrollments is
// the backstop under concurrent identical requests.
func EnrollHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req EnrollRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		var existing domain.Enrollment
		err := db.Where("user_id = ? AND course_id = ?", req.StudentID, req.CourseID).First(&existing).Error
		if err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "You are already enrolled in this course."})
			return
		}
		enrollment := domain.Enrollment{UserID: req.StudentID, CourseID: req.CourseID}
		if err := db.Create(&enrollment).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":   req.StudentID,
			"course_id": req.CourseID,
		}).Info("Enrollment created")
		invalidateReports(c)
		c.JSON(http.StatusCreated, gin.H{"message": "Enrollment successful!"})
	}
}
