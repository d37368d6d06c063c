package service

import (
	"context"
	"log/slog"

	"github.com/mmynk/stockroom/internal/models"
	"github.com/mmynk/stockroom/internal/views"
)

// UpdateUser replaces the user record and propagates the new name, phone
// and department onto every assignment referencing the person ID, in one
// transaction. A zero JoiningDate keeps the stored one.
func (s *Service) UpdateUser(ctx context.Context, user models.User) (err error) {
	defer s.observe("update_user", &err)
	slog.Info("UpdateUser requested", "person_id", user.PersonID)

	if user.JoiningDate.IsZero() {
		existing, err := s.store.GetUser(ctx, user.PersonID)
		if err != nil {
			return err
		}
		user.JoiningDate = existing.JoiningDate
	}

	if err = s.store.UpdateUser(ctx, user); err != nil {
		slog.Error("UpdateUser failed", "person_id", user.PersonID, "error", err)
		return err
	}

	s.views.Refresh(views.UserList(), views.UserDetail(user.PersonID))
	return nil
}
