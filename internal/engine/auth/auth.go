// Package auth carries the session model and the role gate shared by the
// HTTP server and the CLI.
package auth

import (
	"fmt"

	"ostrack/internal/domain"
)

// ForbiddenError indicates the session role does not allow an action.
type ForbiddenError struct {
	Action string
}

func (e ForbiddenError) Error() string {
	return fmt.Sprintf("administrator role required for %s", e.Action)
}

// Session identifies an authenticated caller. It is issued at login,
// passed explicitly into every gated operation, and cleared at logout;
// there is no ambient global session state.
type Session struct {
	UserID string
	Email  string
	Name   string
	Role   string
	Source string
}

// FromUser builds a session for an authenticated user.
func FromUser(u domain.User, source string) Session {
	return Session{
		UserID: u.ID,
		Email:  u.Email,
		Name:   u.Name,
		Role:   u.Role,
		Source: source,
	}
}

func (s Session) IsAdmin() bool {
	return s.Role == domain.RoleAdmin
}

// RequireAdmin is the server-side gate for administrative operations.
// Hiding admin views in a UI is not enough; every gated call goes
// through here.
func RequireAdmin(s Session, action string) error {
	if !s.IsAdmin() {
		return ForbiddenError{Action: action}
	}
	return nil
}
