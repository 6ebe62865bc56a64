package api

import (
	"context"
	"fmt"
	"net/http"

	"smartpath/internal/models"
)

// RelationshipClient talks to the guardian/student relationship endpoints
type RelationshipClient struct {
	*Client
}

// NewRelationshipClient creates a relationship client sharing the base transport
func NewRelationshipClient(client *Client) *RelationshipClient {
	return &RelationshipClient{Client: client}
}

// LinkedStudents lists the students linked to the current guardian
func (c *RelationshipClient) LinkedStudents(ctx context.Context) ([]models.LinkedStudent, error) {
	var students []models.LinkedStudent
	if err := c.do(ctx, http.MethodGet, "/relationships/students", nil, &students); err != nil {
		return nil, err
	}
	return students, nil
}

// LinkedGuardians lists the teachers and parents linked to the current student
func (c *RelationshipClient) LinkedGuardians(ctx context.Context) ([]models.LinkedGuardian, error) {
	var guardians []models.LinkedGuardian
	if err := c.do(ctx, http.MethodGet, "/relationships/guardians", nil, &guardians); err != nil {
		return nil, err
	}
	return guardians, nil
}

// RemoveStudentLink severs the link between the current guardian and a student
func (c *RelationshipClient) RemoveStudentLink(ctx context.Context, studentID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/relationships/students/%d", studentID), nil, nil)
}

// StudentDashboard fetches the academic summary for one linked student
func (c *RelationshipClient) StudentDashboard(ctx context.Context, studentID int64) (*models.DashboardSnapshot, error) {
	var snapshot models.DashboardSnapshot
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/relationships/students/%d/dashboard", studentID), nil, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}
