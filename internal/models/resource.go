package models

import "time"

// Resource is one entry in the curated-content catalog
type Resource struct {
	ID          int64     `json:"resource_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Subject     string    `json:"subject"`
	GradeLevel  int       `json:"grade_level,omitempty"`
	FileURL     string    `json:"file_url,omitempty"`
	IsFavorite  bool      `json:"is_favorite"`
	CreatedAt   time.Time `json:"created_at"`
}
