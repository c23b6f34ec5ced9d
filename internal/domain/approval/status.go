package approval

import "fmt"

var transitions = map[Status][]Status{
	StatusDraft:           {StatusWaitingApproval, StatusReject},
	StatusWaitingApproval: {StatusDone, StatusReject},
}

// CanTransition reports whether from -> to is permitted. Staying put is always allowed.
func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func Transition(from, to Status) error {
	if !to.Valid() || !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}

// Live drops soft-deleted signatures.
func Live(sigs []Signature) []Signature {
	out := make([]Signature, 0, len(sigs))
	for _, s := range sigs {
		if !s.IsDeleted {
			out = append(out, s)
		}
	}
	return out
}

// AllSigned is true when at least one live signature exists and every live one is signed.
func AllSigned(sigs []Signature) bool {
	live := Live(sigs)
	if len(live) == 0 {
		return false
	}
	for _, s := range live {
		if !s.IsSigned() {
			return false
		}
	}
	return true
}

// Reviewed is true when at least one live signature exists and every live one has a position.
func Reviewed(sigs []Signature) bool {
	live := Live(sigs)
	if len(live) == 0 {
		return false
	}
	for _, s := range live {
		if !s.IsPositioned() {
			return false
		}
	}
	return true
}

// Derive returns the status an approval should hold after a signing event.
func Derive(current Status, sigs []Signature) Status {
	if current == StatusWaitingApproval && AllSigned(sigs) {
		return StatusDone
	}
	return current
}

// SignersLocked reports whether the signer set of an approval in s is frozen.
func SignersLocked(s Status) bool { return s == StatusDone || s == StatusReject }
