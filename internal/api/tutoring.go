package api

import (
	"context"
	"net/http"

	"smartpath/internal/models"
)

// TutoringClient talks to the conversational tutoring endpoint
type TutoringClient struct {
	*Client
}

// NewTutoringClient creates a tutoring client sharing the base transport
func NewTutoringClient(client *Client) *TutoringClient {
	return &TutoringClient{Client: client}
}

type tutorRequest struct {
	Message     string               `json:"message"`
	History     []models.ChatMessage `json:"history"`
	SessionID   string               `json:"session_id,omitempty"`
	ContextMode models.ContextMode   `json:"context_mode"`
}

type tutorResponse struct {
	Message string `json:"message"`
}

// Send submits one conversation turn and returns the assistant's reply
func (c *TutoringClient) Send(ctx context.Context, message string, history []models.ChatMessage, sessionID string, mode models.ContextMode) (string, error) {
	req := tutorRequest{
		Message:     message,
		History:     history,
		SessionID:   sessionID,
		ContextMode: mode,
	}
	var resp tutorResponse
	if err := c.do(ctx, http.MethodPost, "/tutor/chat", req, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}
