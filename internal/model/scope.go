package model

import "github.com/google/uuid"

type ScopeType string

const (
	ScopeAll    ScopeType = "ALL"
	ScopeClient ScopeType = "CLIENT"
	ScopeDriver ScopeType = "DRIVER"
)

// Scope narrows which missions and invoices a principal may see. Admins see
// everything, clients their own rows, drivers the missions assigned to them.
type Scope struct {
	Type     ScopeType
	ClientID *uuid.UUID
	DriverID *uuid.UUID
}

func ScopeFor(p Principal) (Scope, bool) {
	switch {
	case p.IsAdmin():
		return Scope{Type: ScopeAll}, true
	case p.IsClient():
		id := p.UserID
		return Scope{Type: ScopeClient, ClientID: &id}, true
	case p.IsDriver():
		id := p.UserID
		return Scope{Type: ScopeDriver, DriverID: &id}, true
	default:
		return Scope{}, false
	}
}

func (s Scope) AllowsMission(m Mission) bool {
	switch s.Type {
	case ScopeAll:
		return true
	case ScopeClient:
		return s.ClientID != nil && m.ClientID == *s.ClientID
	case ScopeDriver:
		return s.DriverID != nil && m.DriverID != nil && *m.DriverID == *s.DriverID
	default:
		return false
	}
}
