package models

import "time"

type Course struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"uniqueIndex;not null;size:200"`
	Code        string `json:"code" gorm:"uniqueIndex;not null;size:20"`
	Description string `json:"description" gorm:"size:200"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Course) TableName() string {
	return "courses"
}

// CourseSummary is the course projection embedded in expanded feedback responses.
type CourseSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

func (c *Course) Summary() CourseSummary {
	return CourseSummary{ID: c.ID, Name: c.Name, Code: c.Code}
}
