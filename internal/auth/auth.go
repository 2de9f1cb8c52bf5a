// Package auth performs the login/signup exchange and hands the resulting
// credential triple to the session manager. Failures here render inline
// under the form, not as toasts, since they block the only path forward.
package auth

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/finshield/console/internal/gateway"
	"github.com/finshield/console/internal/logging"
	"github.com/finshield/console/internal/model"
	"github.com/finshield/console/internal/session"
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// ValidateLogin checks the login form fields before any network call.
// Returns "" when valid.
func ValidateLogin(email, password string) string {
	if strings.TrimSpace(email) == "" {
		return "Please enter your email"
	}
	if !emailPattern.MatchString(email) {
		return "Please enter a valid email"
	}
	if password == "" {
		return "Please enter your password"
	}
	return ""
}

// ValidateSignup checks the signup form fields. Returns "" when valid.
func ValidateSignup(email, username, password string) string {
	if strings.TrimSpace(username) == "" {
		return "Please choose a username"
	}
	if msg := ValidateLogin(email, password); msg != "" {
		return msg
	}
	if len(password) < 8 {
		return "Password must be at least 8 characters"
	}
	return ""
}

type Client struct {
	gw       *gateway.Gateway
	sessions *session.Manager
	logger   logging.Logger
}

func NewClient(gw *gateway.Gateway, sessions *session.Manager, logger logging.Logger) *Client {
	return &Client{
		gw:       gw,
		sessions: sessions,
		logger:   logger.With(logging.Field{Key: "component", Value: "auth"}),
	}
}

// LogIn exchanges credentials for a session. On success the session
// manager persists the triple; the caller navigates to the dashboard.
func (c *Client) LogIn(ctx context.Context, email, password string) error {
	env := c.gw.Post(ctx, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	return c.adopt(env)
}

// SignUp registers a new account; the service answers with the same
// credential triple as login.
func (c *Client) SignUp(ctx context.Context, email, username, password string) error {
	env := c.gw.Post(ctx, "/auth/signup", map[string]string{
		"email":    email,
		"username": username,
		"password": password,
	})
	return c.adopt(env)
}

func (c *Client) adopt(env *model.Envelope) error {
	if !env.Success {
		return errors.New(env.Message)
	}

	var resp model.AuthResponse
	if err := env.Decode(&resp); err != nil {
		return errors.New("Invalid server response")
	}
	if !resp.Success || resp.User == nil || resp.AccessToken == "" {
		msg := resp.Message
		if msg == "" {
			msg = "Login failed"
		}
		return errors.New(msg)
	}

	if err := c.sessions.Login(resp.User, resp.AccessToken, resp.RefreshToken); err != nil {
		c.logger.Error("persisting session failed", logging.Field{Key: "error", Value: err.Error()})
		return errors.New("Could not persist session")
	}
	return nil
}
