package models

import "time"

// GradeTrend is one subject's grade series with its computed direction
type GradeTrend struct {
	Subject       string      `json:"subject"`
	Grades        []float64   `json:"grades"`
	Dates         []time.Time `json:"dates"`
	Trend         string      `json:"trend"`
	PredictedNext *float64    `json:"predicted_next,omitempty"`
}

// PerformancePrediction is a forward-looking grade estimate for one subject
type PerformancePrediction struct {
	Subject            string   `json:"subject"`
	CurrentGrade       string   `json:"current_grade"`
	PredictedNextGrade string   `json:"predicted_next_grade"`
	Confidence         float64  `json:"confidence"`
	Factors            []string `json:"factors"`
}

// Report is one uploaded academic report
type Report struct {
	ReportID   int64             `json:"report_id"`
	UserID     int64             `json:"user_id"`
	ReportDate time.Time         `json:"report_date"`
	Term       string            `json:"term"`
	Year       int               `json:"year"`
	Grades     map[string]string `json:"grades_json"`
	OverallGPA float64           `json:"overall_gpa,omitempty"`
	UploadedAt time.Time         `json:"uploaded_at"`
	Processed  bool              `json:"processed"`
}

// ReportAnalysis is the server-generated breakdown of one report
type ReportAnalysis struct {
	ReportID        int64             `json:"report_id"`
	OverallGPA      float64           `json:"overall_gpa"`
	SubjectCount    int               `json:"subject_count"`
	StrongSubjects  []string          `json:"strong_subjects"`
	WeakSubjects    []string          `json:"weak_subjects"`
	TrendAnalysis   map[string]string `json:"trend_analysis"`
	Recommendations []string          `json:"recommendations"`
}
