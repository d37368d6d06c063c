package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusAvailable, StatusInUse, StatusDiscarded} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	for _, s := range []Status{"", "available", "Broken"} {
		if s.Valid() {
			t.Errorf("%q should be invalid", s)
		}
	}
}

func TestItemClone(t *testing.T) {
	d := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	item := Item{
		ID: "item-1", Name: "Laptop", TotalQuantity: 2,
		SubItems: []SubItem{
			{ID: "u-1", Status: StatusDiscarded, DiscardedDate: &d},
			{ID: "u-2", Status: StatusInUse, AssignedTo: &Assignment{PersonID: "p-1", Name: "A"}},
		},
	}

	clone := item.Clone()
	clone.SubItems[0].ID = "changed"
	*clone.SubItems[1].AssignedTo = Assignment{PersonID: "other"}
	*clone.SubItems[0].DiscardedDate = d.AddDate(1, 0, 0)

	if item.SubItems[0].ID != "u-1" {
		t.Error("sub-item slice is shared")
	}
	if item.SubItems[1].AssignedTo.PersonID != "p-1" {
		t.Error("assignment pointer is shared")
	}
	if !item.SubItems[0].DiscardedDate.Equal(d) {
		t.Error("discarded date pointer is shared")
	}
}

func TestSubItemJSON_OmitsAbsentOptionals(t *testing.T) {
	b, err := json.Marshal(SubItem{ID: "u-1", Status: StatusAvailable})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	s := string(b)
	for _, key := range []string{"billNumber", "discardedDate", "assignedTo"} {
		if strings.Contains(s, key) {
			t.Errorf("expected %s to be omitted, got %s", key, s)
		}
	}
	if !strings.Contains(s, `"availabilityStatus":"Available"`) {
		t.Errorf("unexpected status encoding: %s", s)
	}
}
