// Package stats computes dashboard aggregates from the item collection.
package stats

import "github.com/mmynk/stockroom/internal/models"

// Counts summarizes unit lifecycle states.
type Counts struct {
	Total     int `json:"total"`
	Available int `json:"available"`
	InUse     int `json:"inUse"`
	Discarded int `json:"discarded"`
}

// ItemCounts is the per-item breakdown shown on the dashboard.
type ItemCounts struct {
	ItemID string `json:"itemId"`
	Name   string `json:"name"`
	Counts
}

func (c *Counts) add(s models.Status) {
	c.Total++
	switch s {
	case models.StatusAvailable:
		c.Available++
	case models.StatusInUse:
		c.InUse++
	case models.StatusDiscarded:
		c.Discarded++
	}
}

// Count tallies every unit across all items.
func Count(items []models.Item) Counts {
	var c Counts
	for _, item := range items {
		for _, si := range item.SubItems {
			c.add(si.Status)
		}
	}
	return c
}

// PerItem tallies units item by item, preserving item order.
func PerItem(items []models.Item) []ItemCounts {
	out := make([]ItemCounts, len(items))
	for i, item := range items {
		out[i].ItemID = item.ID
		out[i].Name = item.Name
		for _, si := range item.SubItems {
			out[i].add(si.Status)
		}
	}
	return out
}
