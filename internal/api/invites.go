package api

import (
	"context"
	"net/http"

	"smartpath/internal/models"
)

// InviteClient talks to the invite-code endpoints
type InviteClient struct {
	*Client
}

// NewInviteClient creates an invite client sharing the base transport
func NewInviteClient(client *Client) *InviteClient {
	return &InviteClient{Client: client}
}

// CreateInviteCode mints a code a student can redeem to link to the caller
func (c *InviteClient) CreateInviteCode(ctx context.Context) (*models.InviteCode, error) {
	var code models.InviteCode
	if err := c.do(ctx, http.MethodPost, "/invites", nil, &code); err != nil {
		return nil, err
	}
	return &code, nil
}

// MyInviteCodes lists the codes the caller has created
func (c *InviteClient) MyInviteCodes(ctx context.Context) ([]models.InviteCode, error) {
	var codes []models.InviteCode
	if err := c.do(ctx, http.MethodGet, "/invites", nil, &codes); err != nil {
		return nil, err
	}
	return codes, nil
}

type redeemRequest struct {
	Code string `json:"code"`
}

// RedeemInviteCode links the current student to the code's creator
func (c *InviteClient) RedeemInviteCode(ctx context.Context, code string) error {
	if code == "" {
		return ErrValidation
	}
	return c.do(ctx, http.MethodPost, "/invites/redeem", redeemRequest{Code: code}, nil)
}
