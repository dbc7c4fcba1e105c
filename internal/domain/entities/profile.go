package entities

import (
	"strings"
	"time"
)

type Role string

const (
	RoleStudent Role = "student"
	RoleManager Role = "manager"
)

// Identity is what the identity gate knows about the caller.
type Identity struct {
	UID           string
	Email         string
	EmailVerified bool
	Role          Role
}

func (i Identity) IsAuthenticated() bool {
	return strings.TrimSpace(i.UID) != ""
}

// Profile is the stored user document. Student fields and manager (society)
// fields share the record; Role says which set applies.
type Profile struct {
	UID         string
	Email       string
	Role        Role
	DisplayName string
	FirstName   string
	LastName    string

	Department string
	Semester   string

	SocietyName  string
	Category     string
	Description  string
	LogoURL      string
	FoundedYear  int
	ContactEmail string

	ProfileComplete bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewProfile builds a fresh profile. Managers start incomplete.
func NewProfile(uid, email string, role Role) *Profile {
	if role != RoleManager {
		role = RoleStudent
	}
	return &Profile{
		UID:             uid,
		Email:           email,
		Role:            role,
		ProfileComplete: role == RoleStudent,
	}
}

// HasSocietyDetails reports whether the fields a society page needs are set.
func (p *Profile) HasSocietyDetails() bool {
	return strings.TrimSpace(p.SocietyName) != "" &&
		strings.TrimSpace(p.Category) != "" &&
		strings.TrimSpace(p.Description) != "" &&
		strings.TrimSpace(p.ContactEmail) != ""
}

// CanCreateEvents is the gate checked before a manager creates an event.
func (p *Profile) CanCreateEvents() bool {
	return p.Role == RoleManager && p.ProfileComplete
}
