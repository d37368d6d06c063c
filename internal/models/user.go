package models

import "time"

// User represents a person who has, or has had, units assigned to them.
//
// Users are created implicitly on first allotment to a new person ID and
// updated on re-allotment (contact details merged) or by an explicit edit,
// which also propagates onto every active assignment referencing the
// person ID.
type User struct {
	// PersonID is the unique key (e.g. "EMP-001").
	PersonID string `json:"personId"`

	// Name is the person's display name.
	Name string `json:"name"`

	// Phone is the contact number, exactly 10 digits. Validated at the
	// API boundary, trusted here.
	Phone string `json:"phone"`

	// Department is optional.
	Department string `json:"department,omitempty"`

	// JoiningDate is set once when the user record is first created and
	// never changed by re-allotment.
	JoiningDate time.Time `json:"joiningDate"`
}
