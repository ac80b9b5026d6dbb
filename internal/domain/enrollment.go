package domain

import "time"

// Enrollment Model. The composite primary key is the storage-level
// backstop for the one-enrollment-per-(user,course) invariant.
type Enrollment struct {
	UserID         uint      `gorm:"primaryKey" json:"user_id"`   // Enrolled student
	CourseID       uint      `gorm:"primaryKey" json:"course_id"` // Course enrolled in
	EnrollmentDate time.Time `gorm:"autoCreateTime" json:"enrollment_date"`
	User           User      `gorm:"foreignKey:UserID" json:"-"`
	Course         Course    `gorm:"foreignKey:CourseID" json:"-"`
}
