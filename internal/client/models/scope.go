package models

import "strconv"

// Scope identifies whose data is being viewed: the user's own collection or
// a partner's. Self is a distinguished sentinel rather than an absent value,
// so cache maps can tell "never queried" from "queried for self".
type Scope int

// Self is the scope of the user's own collection.
const Self Scope = 0

// PartnerScope builds the scope for a partner's collection. Partner ids are
// positive.
func PartnerScope(id int) Scope { return Scope(id) }

// IsSelf reports whether the scope is the user's own collection.
func (s Scope) IsSelf() bool { return s <= 0 }

// PartnerID returns the partner's user id; zero for self.
func (s Scope) PartnerID() int {
	if s.IsSelf() {
		return 0
	}
	return int(s)
}

func (s Scope) String() string {
	if s.IsSelf() {
		return "self"
	}
	return "partner:" + strconv.Itoa(int(s))
}
