// Package intel fetches the supplementary read-only feeds the dashboard
// header renders: the analyst profile and the global threat-intel status.
// Neither feeds the core state machines.
package intel

import (
	"context"
	"errors"

	"github.com/finshield/console/internal/gateway"
	"github.com/finshield/console/internal/logging"
	"github.com/finshield/console/internal/model"
)

type Client struct {
	gw     *gateway.Gateway
	logger logging.Logger
}

func NewClient(gw *gateway.Gateway, logger logging.Logger) *Client {
	return &Client{
		gw:     gw,
		logger: logger.With(logging.Field{Key: "component", Value: "intel"}),
	}
}

// Status returns the current global threat status.
func (c *Client) Status(ctx context.Context) (*model.IntelStatus, error) {
	env := c.gw.Get(ctx, "/intel/status")
	if !env.Success {
		return nil, errors.New(env.Message)
	}

	var payload struct {
		Data model.IntelStatus `json:"data"`
	}
	if err := env.Decode(&payload); err != nil {
		return nil, err
	}
	return &payload.Data, nil
}

// Profile returns the authenticated analyst's profile.
func (c *Client) Profile(ctx context.Context) (*model.Profile, error) {
	env := c.gw.Get(ctx, "/user/profile")
	if !env.Success {
		return nil, errors.New(env.Message)
	}

	var profile model.Profile
	if err := env.Decode(&profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
