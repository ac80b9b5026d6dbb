package api

import (
	"context"  // Context for Redis operations
	"errors"   // Error comparison
	"net/http" // HTTP status codes

	"elearning_api/internal/utils" // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// CourseStat is one row of the per-course enrollment counts
type CourseStat struct {
	CourseTitle  string `json:"course_title"`
	StudentCount int    `json:"student_count"`
}

// InstructorCourse pairs a course with its instructor's username
type InstructorCourse struct {
	CourseTitle    string `json:"course_title"`
	InstructorName string `json:"instructor_name"`
}

// StudentEnrollment pairs a student's username with an enrolled course
type StudentEnrollment struct {
	Student     string `json:"student"`
	CourseTitle string `json:"course_title"`
}

// queryCourseStats counts enrolled users per course. The LEFT JOIN keeps
// courses with zero enrollments in the result.
func queryCourseStats(db *gorm.DB) ([]CourseStat, error) {
	var stats []CourseStat
	err := db.Table("courses").
		Select("courses.title AS course_title, COUNT(enrollments.user_id) AS student_count").
		Joins("LEFT JOIN enrollments ON enrollments.course_id = courses.id").
		Group("courses.title").
		Scan(&stats).Error
	return stats, err
}

// queryInstructorCourses lists courses whose instructor has role instructor
func queryInstructorCourses(db *gorm.DB) ([]InstructorCourse, error) {
	var rows []InstructorCourse
	err := db.Table("courses").
		Select("courses.title AS course_title, users.username AS instructor_name").
		Joins("INNER JOIN users ON users.id = courses.instructor_id").
		Where("users.role = ?", "instructor").
		Scan(&rows).Error
	return rows, err
}

// queryStudentEnrollments lists enrollments for users with role student
func queryStudentEnrollments(db *gorm.DB) ([]StudentEnrollment, error) {
	var rows []StudentEnrollment
	err := db.Table("enrollments").
		Select("users.username AS student, courses.title AS course_title").
		Joins("INNER JOIN users ON users.id = enrollments.user_id").
		Joins("INNER JOIN courses ON courses.id = enrollments.course_id").
		Where("users.role = ?", "student").
		Scan(&rows).Error
	return rows, err
}

// queryPopularCourse returns the title of the most-enrolled course, or nil
// when the enrollments table is empty
func queryPopularCourse(db *gorm.DB) (*string, error) {
	sub := db.Table("enrollments").
		Select("course_id").
		Group("course_id").
		Order("COUNT(user_id) DESC").
		Limit(1)
	var row struct{ Title string }
	err := db.Table("courses").Select("title").Where("id = (?)", sub).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row.Title, nil
}

// cachedReport serves a report from Redis when possible, otherwise runs the
// query and caches the result. A nil client disables caching entirely.
func cachedReport[T any](c *gin.Context, rdb *redis.Client, key string, query func() (T, error)) (T, bool) {
	ctx := context.Background()
	var result T
	if rdb != nil {
		if found, err := utils.GetCache(ctx, rdb, key, &result); err == nil && found {
			return result, true
		}
	}
	result, err := query()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		var zero T
		return zero, false
	}
	if rdb != nil {
		_ = utils.SetCache(ctx, rdb, key, result, utils.ReportCacheTTL)
	}
	return result, true
}

// CourseStatsHandler returns enrollment counts grouped by course title
func CourseStatsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, ok := cachedReport(c, rdb, utils.CacheKeyCourseStats, func() ([]CourseStat, error) {
			return queryCourseStats(db)
		})
		if !ok {
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

// InstructorCoursesHandler returns course titles with instructor usernames
func InstructorCoursesHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, ok := cachedReport(c, rdb, utils.CacheKeyInstructorCourses, func() ([]InstructorCourse, error) {
			return queryInstructorCourses(db)
		})
		if !ok {
			return
		}
		c.JSON(http.StatusOK, rows)
	}
}

// StudentEnrollmentsHandler returns student usernames with course titles
func StudentEnrollmentsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, ok := cachedReport(c, rdb, utils.CacheKeyStudentEnrollments, func() ([]StudentEnrollment, error) {
			return queryStudentEnrollments(db)
		})
		if !ok {
			return
		}
		c.JSON(http.StatusOK, rows)
	}
}

// PopularCourseHandler returns the course with the most enrollments, or a
// 404 when nothing is enrolled yet
func PopularCourseHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		title, ok := cachedReport(c, rdb, utils.CacheKeyPopularCourse, func() (*string, error) {
			return queryPopularCourse(db)
		})
		if !ok {
			return
		}
		if title == nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "No enrollments found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"most_popular_course": *title})
	}
}

// DashboardResponse is the combined reporting payload. MostPopularCourse is
// null rather than an error when no enrollments exist.
type DashboardResponse struct {
	EnrollmentStatistics []CourseStat       `json:"enrollment_statistics"`
	InstructorCourses    []InstructorCourse `json:"instructor_courses"`
	MostPopularCourse    *string            `json:"most_popular_course"`
}

// DashboardStatsHandler composes course stats, instructor courses and the
// most popular course into one payload
func DashboardStatsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp, ok := cachedReport(c, rdb, utils.CacheKeyDashboardStats, func() (DashboardResponse, error) {
			stats, err := queryCourseStats(db)
			if err != nil {
				return DashboardResponse{}, err
			}
			instructors, err := queryInstructorCourses(db)
			if err != nil {
				return DashboardResponse{}, err
			}
			popular, err := queryPopularCourse(db)
			if err != nil {
				return DashboardResponse{}, err
			}
			return DashboardResponse{
				EnrollmentStatistics: stats,
				InstructorCourses:    instructors,
				MostPopularCourse:    popular,
			}, nil
		})
		if !ok {
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}
