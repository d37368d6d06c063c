package models

// Snapshot is the full-dataset read model: all three collections, loaded
// wholesale. The dataset is assumed small enough to fit in memory; there
// is no pagination.
//
// Snapshot is also the shape of the legacy single-document blob that
// predates the three-collection split.
type Snapshot struct {
	Items []Item `json:"items"`
	Bills []Bill `json:"bills"`
	Users []User `json:"users"`
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Items: make([]Item, len(s.Items)),
		Bills: append([]Bill(nil), s.Bills...),
		Users: append([]User(nil), s.Users...),
	}
	for i, it := range s.Items {
		out.Items[i] = it.Clone()
	}
	return out
}
