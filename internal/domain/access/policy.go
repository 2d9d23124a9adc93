package access

import "fmt"

type Operation string

const (
	OpRead           Operation = "read"
	OpList           Operation = "list"
	OpCreate         Operation = "create"
	OpUpdate         Operation = "update"
	OpDelete         Operation = "delete"
	OpUpdateProgress Operation = "update_progress" // mentor edit path on intern progress fields
)

type ResourceKind string

const (
	ResourceAttendance ResourceKind = "attendance"
	ResourceIntern     ResourceKind = "intern"
)

// Owner describes who a protected resource belongs to. For an attendance record it is derived from the
// record's intern.
type Owner struct {
	InternID     string
	MentorID     string // intern.mentor_id, empty when unassigned
	LinkedUserID string // intern.user_id, empty when the intern has no account
}

type Resource struct {
	Kind  ResourceKind
	Owner Owner
}

// Policy is the single authorization decision table for interns and attendance records.
// It holds no state; the zero value is ready to use.
type Policy struct{}

// CanAccess reports whether p may perform op on res.
func (Policy) CanAccess(p Principal, op Operation, res Resource) bool {
	if p.ID == "" {
		return false
	}

	switch p.Role {
	case RoleAdmin:
		return true
	case RoleMentor:
		return mentorCan(p, op, res)
	case RoleIntern:
		return internCan(p, op, res)
	default:
		return false
	}
}

func mentorCan(p Principal, op Operation, res Resource) bool {
	mentors := res.Owner.MentorID != "" && res.Owner.MentorID == p.ID

	switch res.Kind {
	case ResourceAttendance:
		switch op {
		case OpRead, OpList, OpCreate, OpUpdate, OpDelete:
			return mentors
		}
	case ResourceIntern:
		switch op {
		case OpRead, OpList:
			return mentors || isSelf(p, res)
		case OpUpdateProgress:
			return mentors
		}
	}
	return false
}

func internCan(p Principal, op Operation, res Resource) bool {
	if op != OpRead && op != OpList {
		return false
	}
	switch res.Kind {
	case ResourceAttendance, ResourceIntern:
		return isSelf(p, res)
	}
	return false
}

func isSelf(p Principal, res Resource) bool {
	return res.Owner.LinkedUserID != "" && res.Owner.LinkedUserID == p.ID
}

// Authorize is CanAccess as an error: a denied decision returns ErrForbidden.
func (pol Policy) Authorize(p Principal, op Operation, res Resource) error {
	if !pol.CanAccess(p, op, res) {
		return fmt.Errorf("%s %s by %s %s: %w", op, res.Kind, p.Role, p.ID, ErrForbidden)
	}
	return nil
}

// FilterVisible returns the items of list that p may perform op on, preserving order.
// It never fails: items the principal cannot see are dropped silently.
func FilterVisible[T any](pol Policy, p Principal, op Operation, list []T, resource func(T) Resource) []T {
	visible := make([]T, 0, len(list))
	for _, item := range list {
		if pol.CanAccess(p, op, resource(item)) {
			visible = append(visible, item)
		}
	}
	return visible
}

// Scope is the query-side form of the decision table for list operations, letting repositories
// narrow their result set before FilterVisible runs on it.
type Scope struct {
	All          bool
	MentorID     string
	LinkedUserID string
}

// ListScope returns the widest set of kind resources p may list.
func (Policy) ListScope(p Principal, kind ResourceKind) (Scope, error) {
	if p.ID == "" {
		return Scope{}, ErrUnauthenticated
	}
	switch p.Role {
	case RoleAdmin:
		return Scope{All: true}, nil
	case RoleMentor:
		if kind == ResourceIntern {
			return Scope{MentorID: p.ID, LinkedUserID: p.ID}, nil
		}
		return Scope{MentorID: p.ID}, nil
	case RoleIntern:
		return Scope{LinkedUserID: p.ID}, nil
	default:
		return Scope{}, fmt.Errorf("list %s by role %q: %w", kind, p.Role, ErrForbidden)
	}
}
