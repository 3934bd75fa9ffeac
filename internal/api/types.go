// ABOUTME: Request and response types for the Birthday Tracker backend
// ABOUTME: Field names mirror the JSON produced and consumed by the REST API

package api

// RegisterRequest creates a new account via POST /api/auth/register
type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	BirthDate string `json:"birthDate"`
}

// LoginRequest authenticates via POST /api/auth/login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse is returned by both register and login
type AuthResponse struct {
	Token    string `json:"token"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

// User is the authenticated account profile from GET /api/me
type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	BirthDate string `json:"birthDate"`
}

// ProfileRequest updates the account profile via PUT /api/me
type ProfileRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	BirthDate string `json:"birthDate"`
}

// ChangePasswordRequest is sent via PATCH /api/me/password
type ChangePasswordRequest struct {
	OldPassword        string `json:"oldPassword"`
	NewPassword        string `json:"newPassword"`
	ConfirmNewPassword string `json:"confirmNewPassword"`
}

// FriendRequest is the editable subset sent on create and update
type FriendRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	BirthDate string `json:"birthDate"`
}

// Friend is a tracked friend; the birthday fields are server-computed
// and treated as read-only display data by this client.
type Friend struct {
	ID                string `json:"id"`
	FirstName         string `json:"firstName"`
	LastName          string `json:"lastName"`
	BirthDate         string `json:"birthDate"`
	DaysUntilBirthday int    `json:"daysUntilBirthday"`
	NextBirthday      string `json:"nextBirthday"`
	IsBirthdayToday   bool   `json:"isBirthdayToday"`
}

// Name returns the friend's display name
func (f Friend) Name() string {
	return f.FirstName + " " + f.LastName
}
