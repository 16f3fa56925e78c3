package models

import "time"

type Feedback struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	StudentID uint   `json:"studentId" gorm:"not null;index"`
	CourseID  uint   `json:"courseId" gorm:"not null;index"`
	Rating    int    `json:"rating" gorm:"not null"`
	Message   string `json:"message" gorm:"not null;size:1000"`

	Student *User   `json:"-" gorm:"foreignKey:StudentID"`
	Course  *Course `json:"-" gorm:"foreignKey:CourseID"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Feedback) TableName() string {
	return "feedback"
}
