package models

// Role of an authenticated caller.
type Role string

const (
	RoleDoctor  Role = "DOCTOR"
	RolePatient Role = "PATIENT"
)

// Principal is the request-scoped identity established by the auth
// middleware. Ownership checks in the services run against it; no operation
// trusts IDs supplied in the payload for authorization.
type Principal struct {
	UserID string
	Role   Role
}

func (p Principal) IsDoctor() bool  { return p.Role == RoleDoctor }
func (p Principal) IsPatient() bool { return p.Role == RolePatient }
