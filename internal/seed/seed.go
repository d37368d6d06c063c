// Package seed provides the built-in default dataset.
//
// The dataset serves two purposes: it initializes empty collections when
// the store is first opened, and it is the read-only fallback the service
// layer serves when the store is unreachable. It is injected explicitly
// wherever it is needed rather than rediscovered on every read.
package seed

import (
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/stockroom/internal/models"
)

// Provider hands out copies of a fixed dataset. Entity IDs and relative
// dates are materialized once, at construction, so every Snapshot call
// returns the same data.
type Provider struct {
	snapshot models.Snapshot
}

// NewProvider builds the default dataset with dates relative to now.
func NewProvider() *Provider {
	return NewProviderAt(time.Now().UTC())
}

// NewProviderAt builds the default dataset with dates relative to the
// given reference time. Useful for deterministic tests.
func NewProviderAt(now time.Time) *Provider {
	return &Provider{snapshot: buildDataset(now)}
}

// Snapshot returns a deep copy of the dataset, safe for callers to mutate.
func (p *Provider) Snapshot() models.Snapshot {
	return p.snapshot.Clone()
}

func monthsAgo(now time.Time, months int) time.Time { return now.AddDate(0, -months, 0) }
func daysAgo(now time.Time, days int) time.Time     { return now.AddDate(0, 0, -days) }

func available(billNumber string) models.SubItem {
	return models.SubItem{
		ID:         uuid.New().String(),
		Status:     models.StatusAvailable,
		BillNumber: billNumber,
	}
}

func inUse(billNumber string, a models.Assignment) models.SubItem {
	return models.SubItem{
		ID:         uuid.New().String(),
		Status:     models.StatusInUse,
		BillNumber: billNumber,
		AssignedTo: &a,
	}
}

func discarded(billNumber string, when time.Time) models.SubItem {
	return models.SubItem{
		ID:            uuid.New().String(),
		Status:        models.StatusDiscarded,
		BillNumber:    billNumber,
		DiscardedDate: &when,
	}
}

func item(id, name, description string, subItems ...models.SubItem) models.Item {
	return models.Item{
		ID:            id,
		Name:          name,
		Description:   description,
		ImageURL:      "https://placehold.co/400x300.png",
		TotalQuantity: len(subItems),
		SubItems:      subItems,
	}
}

func buildDataset(now time.Time) models.Snapshot {
	users := []models.User{
		{PersonID: "U-123", Name: "John Doe", Phone: "1234567890", Department: "Marketing", JoiningDate: monthsAgo(now, 6)},
		{PersonID: "U-100", Name: "User 1", Phone: "5550100123", Department: "Engineering", JoiningDate: monthsAgo(now, 2)},
		{PersonID: "U-101", Name: "User 2", Phone: "5550101123", Department: "Engineering", JoiningDate: monthsAgo(now, 3)},
		{PersonID: "D-01", Name: "Dev 1", Phone: "5550200145", Department: "Engineering", JoiningDate: monthsAgo(now, 12)},
		{PersonID: "EMP-001", Name: "Alice Johnson", Phone: "1112223333", Department: "HR", JoiningDate: monthsAgo(now, 24)},
	}

	bills := []models.Bill{
		{BillNumber: "INV-001", BillDate: monthsAgo(now, 2), Company: "Apple Inc."},
		{BillNumber: "INV-002", BillDate: monthsAgo(now, 3), Company: "Dell Technologies"},
		{BillNumber: "INV-003", BillDate: monthsAgo(now, 1), Company: "Logitech"},
		{BillNumber: "INV-005", BillDate: monthsAgo(now, 5), Company: "Apple Inc."},
		{BillNumber: "INV-008", BillDate: monthsAgo(now, 2), Company: "PC Retailers"},
		{BillNumber: "INV-010", BillDate: monthsAgo(now, 12), Company: "Herman Miller"},
		{BillNumber: "INV-011", BillDate: monthsAgo(now, 6), Company: "Autonomous AI"},
	}

	monitorUnits := make([]models.SubItem, 0, 8)
	for i := 0; i < 5; i++ {
		monitorUnits = append(monitorUnits, available("INV-002"))
	}
	for i := 0; i < 3; i++ {
		monitorUnits = append(monitorUnits, inUse("INV-002", models.Assignment{
			PersonID:       users[1+i%2].PersonID,
			Name:           users[1+i%2].Name,
			Phone:          users[1+i%2].Phone,
			Department:     "Engineering",
			AssignmentDate: daysAgo(now, 7*(i+1)),
		}))
	}

	mouseUnits := make([]models.SubItem, 0, 12)
	for i := 0; i < 10; i++ {
		mouseUnits = append(mouseUnits, available("INV-003"))
	}
	for i := 0; i < 2; i++ {
		mouseUnits = append(mouseUnits, inUse("INV-003", models.Assignment{
			PersonID:       "D-01",
			Name:           "Dev 1",
			Phone:          "5550200145",
			Department:     "Engineering",
			Project:        "Internal Tools",
			AssignmentDate: daysAgo(now, 10+i),
		}))
	}

	keyboardUnits := make([]models.SubItem, 0, 10)
	for i := 0; i < 10; i++ {
		keyboardUnits = append(keyboardUnits, available("INV-005"))
	}

	items := []models.Item{
		item("item-1", "MacBook Pro 16-inch",
			"High-performance laptop for professionals. M3 Pro chip, 18GB RAM, 512GB SSD.",
			available("INV-001"),
			inUse("INV-001", models.Assignment{
				PersonID: "U-123", Name: "John Doe", Phone: "1234567890",
				Department: "Marketing", Project: "Project Phoenix",
				AssignmentDate: daysAgo(now, 5),
			}),
			available("INV-001"),
			discarded("INV-008", daysAgo(now, 1)),
			available("INV-008"),
		),
		item("item-2", "Dell UltraSharp Monitor",
			"27-inch 4K UHD monitor with vibrant colors and USB-C connectivity.",
			monitorUnits...,
		),
		item("item-3", "Logitech MX Master 3S",
			"Advanced wireless mouse with ergonomic design and customizable buttons.",
			mouseUnits...,
		),
		item("item-4", "Apple Magic Keyboard",
			"Wireless keyboard with numeric keypad, providing a comfortable and precise typing experience.",
			keyboardUnits...,
		),
		item("item-5", "Office Chair Ergonomic",
			"Herman Miller Aeron chair with lumbar support and adjustable armrests.",
			inUse("INV-010", models.Assignment{
				PersonID: "EMP-001", Name: "Alice Johnson", Phone: "1112223333",
				Department: "HR", AssignmentDate: daysAgo(now, 80),
			}),
			inUse("INV-010", models.Assignment{
				PersonID: "EMP-002", Name: "Bob Williams", Phone: "4445556666",
				Department: "HR", Project: "Website Redesign",
				AssignmentDate: daysAgo(now, 75),
			}),
			inUse("INV-010", models.Assignment{
				PersonID: "EMP-003", Name: "Charlie Brown", Phone: "7778889999",
				Department: "Marketing", AssignmentDate: daysAgo(now, 60),
			}),
			discarded("INV-010", daysAgo(now, 30)),
		),
		item("item-6", "Standing Desk Frame",
			"Autonomous SmartDesk Pro frame, dual motor, supports up to 300 lbs.",
			inUse("INV-011", models.Assignment{
				PersonID: "EMP-004", Name: "Diana Prince", Phone: "1231231234",
				Department: "Design", Project: "Mobile App",
				AssignmentDate: daysAgo(now, 50),
			}),
			available("INV-011"),
			available("INV-011"),
		),
	}

	return models.Snapshot{Items: items, Bills: bills, Users: users}
}
