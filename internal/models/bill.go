package models

import "time"

// Bill represents a purchase record. Sub-items reference it by number.
//
// The bill number is user-editable; renaming it cascades to every
// referencing sub-item (see the service layer). A bill is never deleted
// automatically when its last referencing sub-item goes away.
type Bill struct {
	// BillNumber is the unique key (e.g. "INV-001").
	BillNumber string `json:"billNumber"`

	// BillDate is the purchase date.
	BillDate time.Time `json:"billDate"`

	// Company is the vendor the purchase was made from.
	Company string `json:"company"`
}
