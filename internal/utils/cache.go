package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// Cache keys for the read-only reporting endpoints
const (
	CacheKeyCourseStats        = "reports:course-stats"
	CacheKeyInstructorCourses  = "reports:instructor-courses"
	CacheKeyStudentEnrollments = "reports:student-enrollments"
	CacheKeyPopularCourse      = "reports:popular-course"
	CacheKeyDashboardStats     = "reports:dashboard-stats"
)

// ReportCacheTTL bounds how stale a cached report can get
const ReportCacheTTL = 60 * time.Second

// GetCache retrieves a value from Redis and unmarshals it into dest
func GetCache(ctx context.Context, rdb *redis.Client, key string, dest any) (bool, error) {
	val, err := rdb.Get(ctx, key).Result() // Get value from Redis
	if err == redis.Nil {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	return true, json.Unmarshal([]byte(val), dest) // Unmarshal JSON into dest
}

// SetCache sets a value in Redis with a specified TTL
func SetCache(ctx context.Context, rdb *redis.Client, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return err
	}
	return rdb.Set(ctx, key, b, ttl).Err() // Set value in Redis with TTL
}

// InvalidateReportCache drops every cached report. Called after any write
// that changes courses, modules or enrollments so cached responses never
// outlive a write by more than the TTL.
func InvalidateReportCache(ctx context.Context, rdb *redis.Client) error {
	return rdb.Del(ctx,
		CacheKeyCourseStats,
		CacheKeyInstructorCourses,
		CacheKeyStudentEnrollments,
		CacheKeyPopularCourse,
		CacheKeyDashboardStats,
	).Err()
}
