package domain

// Course Model
type Course struct {
	ID           uint     `gorm:"primaryKey" json:"id"`           // Primary key
	Title        string   `gorm:"size:100;not null" json:"title"` // Course title
	Description  string   `gorm:"type:text" json:"description"`   // Course description
	InstructorID uint     `json:"instructor_id"`                  // Foreign key to User; role is not checked at insert time
	Instructor   *User    `gorm:"foreignKey:InstructorID" json:"-"`
	Modules      []Module `gorm:"constraint:OnDelete:CASCADE" json:"-"` // Deleting a course deletes its modules
}
