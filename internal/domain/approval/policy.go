package approval

import "asset-approval-backend/internal/domain/user"

// Decision is the outcome of an authorization check.
type Decision interface{ decision() }

type Allowed struct{}

type Denied struct{ Reason string }

func (Allowed) decision() {}
func (Denied) decision()  {}

// AuthorizeNestedWrites decides whether a creator may attach signatures and assets.
// Only General Affairs may; everyone else gets a header-only approval.
func AuthorizeNestedWrites(creator *user.User) Decision {
	if creator == nil {
		return Denied{Reason: "creator not found"}
	}
	if creator.Role != user.RoleGA {
		return Denied{Reason: "only GA may attach signatures and assets"}
	}
	return Allowed{}
}

// Scope restricts which approvals a listing returns.
type Scope struct {
	All    bool
	UserID string
}

// VisibilityFor returns the listing scope for actor: GA sees everything, others
// see approvals they created, were requested for, or must sign.
func VisibilityFor(actor user.Actor) Scope {
	if actor.IsGA() {
		return Scope{All: true}
	}
	return Scope{UserID: actor.ID}
}

// Permits applies the scope to one approval loaded with its live signatures.
func (s Scope) Permits(a *Approval) bool {
	if s.All {
		return true
	}
	if a.CreatedByID == s.UserID || (a.RequestedForID != nil && *a.RequestedForID == s.UserID) {
		return true
	}
	for _, sg := range Live(a.Signatures) {
		if sg.UserID != nil && *sg.UserID == s.UserID {
			return true
		}
	}
	return false
}

// CanSign reports whether actor may sign s. Bound slots match by user id,
// unbound slots by email.
func CanSign(actor user.Actor, s Signature) bool {
	if s.UserID != nil && *s.UserID != "" {
		return *s.UserID == actor.ID
	}
	return s.Email != nil && *s.Email != "" && *s.Email == actor.Email
}
