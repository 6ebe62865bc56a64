package api

import (
	"context"
	"net/http"

	"smartpath/internal/models"
)

// MathClient talks to the math solving and practice generation endpoints
type MathClient struct {
	*Client
}

// NewMathClient creates a math client sharing the base transport
func NewMathClient(client *Client) *MathClient {
	return &MathClient{Client: client}
}

type solveRequest struct {
	Prompt      string `json:"prompt"`
	ImageBase64 string `json:"image_base64,omitempty"`
}

type solveResponse struct {
	Solution string `json:"solution"`
}

// Solve submits a problem as text, an image, or both, and returns the worked solution
func (c *MathClient) Solve(ctx context.Context, prompt, imageBase64 string) (string, error) {
	var resp solveResponse
	if err := c.do(ctx, http.MethodPost, "/math/solve", solveRequest{Prompt: prompt, ImageBase64: imageBase64}, &resp); err != nil {
		return "", err
	}
	return resp.Solution, nil
}

type practiceRequest struct {
	Subject    string `json:"subject"`
	Topic      string `json:"topic"`
	GradeLevel int    `json:"grade_level,omitempty"`
	Count      int    `json:"count"`
}

type practiceResponse struct {
	Success  bool                     `json:"success"`
	Problems []models.PracticeProblem `json:"problems"`
}

// GeneratePractice requests a generated practice set for a topic
func (c *MathClient) GeneratePractice(ctx context.Context, subject, topic string, gradeLevel, count int) ([]models.PracticeProblem, error) {
	req := practiceRequest{
		Subject:    subject,
		Topic:      topic,
		GradeLevel: gradeLevel,
		Count:      count,
	}
	var resp practiceResponse
	if err := c.do(ctx, http.MethodPost, "/math/practice", req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, NewRemoteError(http.StatusOK, "practice generation failed")
	}
	return resp.Problems, nil
}
