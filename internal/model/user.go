package model

// User is the authenticated identity as reported by the analysis service.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Session is the credential triple the console holds for the current user.
// User is non-nil if and only if restoration or login succeeded.
type Session struct {
	User         *User  `json:"user,omitempty"`
	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// Authenticated reports whether the session carries a parsed user.
func (s *Session) Authenticated() bool {
	return s != nil && s.User != nil
}

// AuthResponse is the payload returned by /auth/login and /auth/signup.
type AuthResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message,omitempty"`
	User         *User  `json:"user,omitempty"`
	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// Profile is the supplementary read-only view served by /user/profile.
type Profile struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Username   string `json:"username"`
	Role       string `json:"role"`
	CreatedAt  string `json:"created_at"`
	TotalScans int    `json:"total_scans"`
}
