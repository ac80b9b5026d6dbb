package domain

// User Model
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`            // Primary key
	Username string `gorm:"unique;not null" json:"username"` // Unique username
	Password string `gorm:"not null" json:"-"`               // Bcrypt hash, never serialized
	Email    string `gorm:"unique;not null" json:"email"`    // Unique email
	Role     string `gorm:"not null" json:"role"`            // Role: student, instructor or admin
}
