package domain

// Module Model
type Module struct {
	ID          uint   `gorm:"primaryKey" json:"id"`           // Primary key
	CourseID    uint   `json:"course_id"`                      // Owning course
	Title       string `gorm:"size:100;not null" json:"title"` // Module title
	Description string `gorm:"type:text" json:"description"`   // Module description
	Content     string `gorm:"type:text" json:"content"`       // Free-text content, defaults to empty
}
