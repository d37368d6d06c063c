package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mmynk/stockroom/internal/models"
	"github.com/mmynk/stockroom/internal/storage"
	"github.com/mmynk/stockroom/internal/views"
)

// Allot hands the unit to a person: status becomes In Use and the
// assignment (a snapshot of the person's contact details) is attached.
//
// The user collection is upserted in the same transaction as the item
// write: an existing user gets the new name and phone (keeping the prior
// department when the new one is empty, and the original joining date);
// an unknown person ID creates a user joining now.
func (s *Service) Allot(ctx context.Context, subItemID string, a models.Assignment) (err error) {
	defer s.observe("allot", &err)
	slog.Info("Allot requested", "sub_item_id", subItemID, "person_id", a.PersonID)

	item, err := s.store.FindItemBySubItem(ctx, subItemID)
	if err != nil {
		return err
	}
	// The unit may vanish between the ownership lookup and the item read.
	idx := item.FindSubItem(subItemID)
	if idx < 0 {
		return fmt.Errorf("sub-item %s: %w", subItemID, storage.ErrNotFound)
	}

	if a.AssignmentDate.IsZero() {
		a.AssignmentDate = s.now()
	}

	si := &item.SubItems[idx]
	si.Status = models.StatusInUse
	si.AssignedTo = &a

	var user models.User
	existing, err := s.store.GetUser(ctx, a.PersonID)
	switch {
	case err == nil:
		user = *existing
		user.Name = a.Name
		user.Phone = a.Phone
		if a.Department != "" {
			user.Department = a.Department
		}
	case errors.Is(err, storage.ErrNotFound):
		user = models.User{
			PersonID:    a.PersonID,
			Name:        a.Name,
			Phone:       a.Phone,
			Department:  a.Department,
			JoiningDate: s.now(),
		}
	default:
		return err
	}

	if err = s.store.SaveItemAndUser(ctx, item, &user); err != nil {
		slog.Error("Allot failed", "sub_item_id", subItemID, "error", err)
		return err
	}

	slog.Info("Unit allotted", "sub_item_id", subItemID, "item_id", item.ID, "person_id", a.PersonID)
	s.views.Refresh(views.ItemDetail(item.ID), views.UserList(), views.UserDetail(a.PersonID))
	return nil
}

// Unallot returns the unit to available and detaches the assignment. The
// discarded date is left untouched; it is expected to be absent already.
func (s *Service) Unallot(ctx context.Context, subItemID string) (err error) {
	defer s.observe("unallot", &err)
	slog.Info("Unallot requested", "sub_item_id", subItemID)

	return s.mutateUnit(ctx, subItemID, func(si *models.SubItem) {
		si.Status = models.StatusAvailable
		si.AssignedTo = nil
	})
}

// Discard marks the unit discarded as of now and detaches any
// assignment. Accepted from any prior state; re-discarding only moves
// the timestamp.
func (s *Service) Discard(ctx context.Context, subItemID string) (err error) {
	defer s.observe("discard", &err)
	slog.Info("Discard requested", "sub_item_id", subItemID)

	return s.mutateUnit(ctx, subItemID, func(si *models.SubItem) {
		now := s.now()
		si.Status = models.StatusDiscarded
		si.DiscardedDate = &now
		si.AssignedTo = nil
	})
}

// Undiscard restores the unit to available, clearing both the discarded
// date and any assignment.
func (s *Service) Undiscard(ctx context.Context, subItemID string) (err error) {
	defer s.observe("undiscard", &err)
	slog.Info("Undiscard requested", "sub_item_id", subItemID)

	return s.mutateUnit(ctx, subItemID, func(si *models.SubItem) {
		si.Status = models.StatusAvailable
		si.DiscardedDate = nil
		si.AssignedTo = nil
	})
}

// mutateUnit applies fn to the unit inside its owning item and saves the
// item. The owning item's detail view is reported stale.
func (s *Service) mutateUnit(ctx context.Context, subItemID string, fn func(*models.SubItem)) error {
	item, err := s.store.FindItemBySubItem(ctx, subItemID)
	if err != nil {
		return err
	}
	idx := item.FindSubItem(subItemID)
	if idx < 0 {
		return fmt.Errorf("sub-item %s: %w", subItemID, storage.ErrNotFound)
	}
	fn(&item.SubItems[idx])

	if err := s.store.SaveItem(ctx, item); err != nil {
		slog.Error("Unit mutation failed", "sub_item_id", subItemID, "item_id", item.ID, "error", err)
		return err
	}

	s.views.Refresh(views.ItemDetail(item.ID))
	return nil
}
