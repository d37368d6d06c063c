package models

import "time"

// Status describes the lifecycle state of a single physical unit.
// Wire values are kept human-readable because they are persisted and
// displayed verbatim.
type Status string

const (
	StatusAvailable Status = "Available"
	StatusInUse     Status = "In Use"
	StatusDiscarded Status = "Discarded"
)

// Valid reports whether s is one of the known lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusInUse, StatusDiscarded:
		return true
	}
	return false
}

// Item represents a named category of physical inventory (e.g. "MacBook
// Pro 16-inch") together with every individually tracked unit of it.
type Item struct {
	// ID is the unique identifier for the item (UUID format).
	ID string `json:"id"`

	// Name is the display name. Unique across items, case-insensitively.
	Name string `json:"name"`

	// Description is free-form text shown on the item detail view.
	Description string `json:"description"`

	// ImageURL optionally points at a product image.
	ImageURL string `json:"imageUrl,omitempty"`

	// TotalQuantity is derived state: it must always equal
	// len(SubItems). The service layer recomputes it on every mutation
	// that touches the unit list.
	TotalQuantity int `json:"totalQuantity"`

	// SubItems are the physical units, in insertion order.
	SubItems []SubItem `json:"subItems"`
}

// SubItem is one physically trackable unit of an Item.
//
// Invariants maintained by the service layer:
//   - DiscardedDate is set iff Status == StatusDiscarded
//   - AssignedTo is set iff Status == StatusInUse
type SubItem struct {
	// ID is unique across the entire item collection, not just within
	// the parent item.
	ID string `json:"id"`

	// Status is the unit's lifecycle state.
	Status Status `json:"availabilityStatus"`

	// BillNumber references the purchase bill the unit was bought
	// under. Empty when the unit has no bill.
	BillNumber string `json:"billNumber,omitempty"`

	// DiscardedDate records when the unit was discarded.
	DiscardedDate *time.Time `json:"discardedDate,omitempty"`

	// AssignedTo records the current allotment while the unit is in use.
	AssignedTo *Assignment `json:"assignedTo,omitempty"`
}

// Assignment records a unit being handed to a person. Name, Phone and
// Department are snapshots of the User record at assignment time.
type Assignment struct {
	PersonID       string    `json:"personId"`
	Name           string    `json:"name"`
	Phone          string    `json:"phone"`
	Department     string    `json:"department,omitempty"`
	Project        string    `json:"project,omitempty"`
	AssignmentDate time.Time `json:"assignmentDate"`
}

// FindSubItem returns the index of the sub-item with the given ID, or -1.
func (it *Item) FindSubItem(subItemID string) int {
	for i := range it.SubItems {
		if it.SubItems[i].ID == subItemID {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the item.
func (it Item) Clone() Item {
	out := it
	out.SubItems = make([]SubItem, len(it.SubItems))
	for i, si := range it.SubItems {
		out.SubItems[i] = si.Clone()
	}
	return out
}

// Clone returns a deep copy of the sub-item.
func (si SubItem) Clone() SubItem {
	out := si
	if si.DiscardedDate != nil {
		d := *si.DiscardedDate
		out.DiscardedDate = &d
	}
	if si.AssignedTo != nil {
		a := *si.AssignedTo
		out.AssignedTo = &a
	}
	return out
}
