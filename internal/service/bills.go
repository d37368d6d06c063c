package service

import (
	"context"
	"log/slog"

	"github.com/mmynk/stockroom/internal/models"
	"github.com/mmynk/stockroom/internal/views"
)

// UpdateBill replaces the bill stored under originalNumber. When the bill
// number itself changed, every unit referencing the old number is
// rewritten to the new one in the same transaction, so no unit can retain
// a stale number.
func (s *Service) UpdateBill(ctx context.Context, originalNumber string, bill models.Bill) (err error) {
	defer s.observe("update_bill", &err)
	slog.Info("UpdateBill requested",
		"bill_number", originalNumber,
		"new_bill_number", bill.BillNumber,
	)

	if err = s.store.UpdateBill(ctx, originalNumber, bill); err != nil {
		slog.Error("UpdateBill failed", "bill_number", originalNumber, "error", err)
		return err
	}

	stale := []string{views.BillList(), views.BillDetail(originalNumber)}
	if bill.BillNumber != originalNumber {
		stale = append(stale, views.BillDetail(bill.BillNumber))
	}
	s.views.Refresh(stale...)
	return nil
}
