package models

// Admin is the operator identity returned by the login endpoint and kept as the
// session snapshot.
type Admin struct {
	ID       ID     `json:"id,omitempty"`
	Username string `json:"username"`
	FullName string `json:"full_name,omitempty"`
	Role     string `json:"role,omitempty"`
	Email    string `json:"email,omitempty"`
}

// DisplayName is the full name when known, else the username.
func (a *Admin) DisplayName() string {
	if a == nil {
		return ""
	}
	if a.FullName != "" {
		return a.FullName
	}
	return a.Username
}

// GetUsername is nil-safe.
func (a *Admin) GetUsername() string {
	if a == nil {
		return ""
	}
	return a.Username
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Success bool   `json:"success"`
	Admin   *Admin `json:"admin,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// SessionState is a point-in-time copy of the console session.
type SessionState struct {
	User          *Admin
	Authenticated bool
	Loading       bool
}
