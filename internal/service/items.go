package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mmynk/stockroom/internal/models"
	"github.com/mmynk/stockroom/internal/storage"
	"github.com/mmynk/stockroom/internal/views"
)

// NewItemData carries the fields for creating an item.
type NewItemData struct {
	Name        string
	Description string
	ImageURL    string
}

// ItemUpdate carries a partial item edit; nil fields are left unchanged.
type ItemUpdate struct {
	Name        *string
	Description *string
	ImageURL    *string
}

// CreateItem creates a new item with one default available unit and
// prepends it to the item list. Fails with DuplicateNameError when the
// name is already taken, case-insensitively.
func (s *Service) CreateItem(ctx context.Context, data NewItemData) (item *models.Item, err error) {
	defer s.observe("create_item", &err)
	slog.Info("CreateItem requested", "name", data.Name)

	exists, err := s.store.ItemNameExists(ctx, data.Name)
	if err != nil {
		slog.Error("CreateItem failed", "name", data.Name, "error", err)
		return nil, err
	}
	if exists {
		return nil, &DuplicateNameError{Name: data.Name}
	}

	item = &models.Item{
		ID:            s.newID(),
		Name:          data.Name,
		Description:   data.Description,
		ImageURL:      data.ImageURL,
		TotalQuantity: 1,
		SubItems: []models.SubItem{
			{ID: s.newID(), Status: models.StatusAvailable},
		},
	}

	if err = s.store.InsertItem(ctx, item); err != nil {
		slog.Error("CreateItem failed", "name", data.Name, "error", err)
		return nil, err
	}

	slog.Info("Item created", "item_id", item.ID, "name", item.Name)
	s.views.Refresh(views.ItemList(), views.ItemDetail(item.ID))
	return item, nil
}

// UpdateItem merges a partial edit into the matching item.
func (s *Service) UpdateItem(ctx context.Context, itemID string, upd ItemUpdate) (err error) {
	defer s.observe("update_item", &err)
	slog.Info("UpdateItem requested", "item_id", itemID)

	item, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		return err
	}

	if upd.Name != nil && *upd.Name != item.Name {
		exists, err := s.store.ItemNameExists(ctx, *upd.Name)
		if err != nil {
			return err
		}
		if exists {
			return &DuplicateNameError{Name: *upd.Name}
		}
		item.Name = *upd.Name
	}
	if upd.Description != nil {
		item.Description = *upd.Description
	}
	if upd.ImageURL != nil {
		item.ImageURL = *upd.ImageURL
	}

	if err = s.store.SaveItem(ctx, item); err != nil {
		slog.Error("UpdateItem failed", "item_id", itemID, "error", err)
		return err
	}

	s.views.Refresh(views.ItemList(), views.ItemDetail(itemID))
	return nil
}

// DeleteItem removes the item and all of its units. Bills and users that
// referenced the item are left alone; orphaned references are tolerated.
func (s *Service) DeleteItem(ctx context.Context, itemID string) (err error) {
	defer s.observe("delete_item", &err)
	slog.Info("DeleteItem requested", "item_id", itemID)

	if err = s.store.DeleteItem(ctx, itemID); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			slog.Error("DeleteItem failed", "item_id", itemID, "error", err)
		}
		return err
	}

	s.views.Refresh(views.ItemList())
	return nil
}

// AddUnitsData carries the fields for a purchase of new units.
type AddUnitsData struct {
	ItemID     string
	Quantity   int
	BillNumber string
	BillDate   time.Time
	Company    string
}

// AddUnits appends Quantity new available units tagged with the bill
// number. When the bill does not exist yet it is created from the
// supplied date and company in the same transaction as the item write.
func (s *Service) AddUnits(ctx context.Context, data AddUnitsData) (err error) {
	defer s.observe("add_units", &err)
	slog.Info("AddUnits requested",
		"item_id", data.ItemID,
		"quantity", data.Quantity,
		"bill_number", data.BillNumber,
	)

	item, err := s.store.GetItem(ctx, data.ItemID)
	if err != nil {
		return err
	}

	for i := 0; i < data.Quantity; i++ {
		item.SubItems = append(item.SubItems, models.SubItem{
			ID:         s.newID(),
			Status:     models.StatusAvailable,
			BillNumber: data.BillNumber,
		})
	}
	item.TotalQuantity = len(item.SubItems)

	var newBill *models.Bill
	_, err = s.store.GetBill(ctx, data.BillNumber)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		newBill = &models.Bill{
			BillNumber: data.BillNumber,
			BillDate:   data.BillDate,
			Company:    data.Company,
		}
	case err != nil:
		return err
	}

	if err = s.store.SaveItemAndBill(ctx, item, newBill); err != nil {
		slog.Error("AddUnits failed", "item_id", data.ItemID, "error", err)
		return err
	}

	stale := []string{views.ItemDetail(data.ItemID)}
	if newBill != nil {
		stale = append(stale, views.BillList())
	}
	s.views.Refresh(stale...)
	return nil
}

// UpdateSubItem replaces the unit with the matching ID inside the item.
func (s *Service) UpdateSubItem(ctx context.Context, itemID string, sub models.SubItem) (err error) {
	defer s.observe("update_sub_item", &err)
	slog.Info("UpdateSubItem requested", "item_id", itemID, "sub_item_id", sub.ID)

	item, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		return err
	}
	idx := item.FindSubItem(sub.ID)
	if idx < 0 {
		return fmt.Errorf("sub-item %s: %w", sub.ID, storage.ErrNotFound)
	}
	item.SubItems[idx] = sub

	if err = s.store.SaveItem(ctx, item); err != nil {
		slog.Error("UpdateSubItem failed", "item_id", itemID, "error", err)
		return err
	}

	s.views.Refresh(views.ItemDetail(itemID))
	return nil
}

// DeleteSubItem removes one unit by ID and recomputes the quantity.
func (s *Service) DeleteSubItem(ctx context.Context, itemID, subItemID string) (err error) {
	defer s.observe("delete_sub_item", &err)
	slog.Info("DeleteSubItem requested", "item_id", itemID, "sub_item_id", subItemID)

	item, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		return err
	}
	idx := item.FindSubItem(subItemID)
	if idx < 0 {
		return fmt.Errorf("sub-item %s: %w", subItemID, storage.ErrNotFound)
	}
	item.SubItems = append(item.SubItems[:idx], item.SubItems[idx+1:]...)
	item.TotalQuantity = len(item.SubItems)

	if err = s.store.SaveItem(ctx, item); err != nil {
		slog.Error("DeleteSubItem failed", "item_id", itemID, "error", err)
		return err
	}

	s.views.Refresh(views.ItemDetail(itemID))
	return nil
}

// AddItemToBill appends quantity new available units tagged with the bill
// number. Unlike AddUnits it never creates the bill record; callers use
// it from the bill detail view where the bill already exists.
func (s *Service) AddItemToBill(ctx context.Context, itemID, billNumber string, quantity int) (err error) {
	defer s.observe("add_item_to_bill", &err)
	slog.Info("AddItemToBill requested", "item_id", itemID, "bill_number", billNumber, "quantity", quantity)

	item, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		return err
	}
	for i := 0; i < quantity; i++ {
		item.SubItems = append(item.SubItems, models.SubItem{
			ID:         s.newID(),
			Status:     models.StatusAvailable,
			BillNumber: billNumber,
		})
	}
	item.TotalQuantity = len(item.SubItems)

	if err = s.store.SaveItem(ctx, item); err != nil {
		slog.Error("AddItemToBill failed", "item_id", itemID, "error", err)
		return err
	}

	s.views.Refresh(views.BillDetail(billNumber), views.ItemDetail(itemID))
	return nil
}

// RemoveItemFromBill strips every unit tagged with the bill number from
// the item. The bill record itself is kept even if nothing references it
// anymore.
func (s *Service) RemoveItemFromBill(ctx context.Context, itemID, billNumber string) (err error) {
	defer s.observe("remove_item_from_bill", &err)
	slog.Info("RemoveItemFromBill requested", "item_id", itemID, "bill_number", billNumber)

	item, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		return err
	}
	kept := item.SubItems[:0]
	for _, si := range item.SubItems {
		if si.BillNumber != billNumber {
			kept = append(kept, si)
		}
	}
	item.SubItems = kept
	item.TotalQuantity = len(item.SubItems)

	if err = s.store.SaveItem(ctx, item); err != nil {
		slog.Error("RemoveItemFromBill failed", "item_id", itemID, "error", err)
		return err
	}

	s.views.Refresh(views.BillDetail(billNumber), views.ItemDetail(itemID))
	return nil
}
