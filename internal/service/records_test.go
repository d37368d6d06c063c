package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mmynk/stockroom/internal/models"
	"github.com/mmynk/stockroom/internal/storage"
	"github.com/mmynk/stockroom/internal/views"
)

func TestUpdateBill_Rename(t *testing.T) {
	svc, store, rec := newTestService(t)
	ctx := context.Background()

	if _, err := svc.CreateItem(ctx, NewItemData{Name: "Laptop"}); err != nil {
		t.Fatalf("CreateItem failed: %v", err)
	}
	billDate := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	err := svc.AddUnits(ctx, AddUnitsData{
		ItemID: "id-1", Quantity: 2, BillNumber: "INV-001", BillDate: billDate, Company: "Acme",
	})
	if err != nil {
		t.Fatalf("AddUnits failed: %v", err)
	}
	rec.Reset()

	err = svc.UpdateBill(ctx, "INV-001", models.Bill{
		BillNumber: "INV-2026-001", BillDate: billDate, Company: "Acme Corp",
	})
	if err != nil {
		t.Fatalf("UpdateBill failed: %v", err)
	}

	got, err := store.GetItem(ctx, "id-1")
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	for _, si := range got.SubItems {
		if si.BillNumber == "INV-001" {
			t.Errorf("unit retained the old bill number: %+v", si)
		}
	}
	if _, err := store.GetBill(ctx, "INV-001"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("old bill still present: %v", err)
	}

	paths := rec.Paths()
	for _, want := range []string{views.BillList(), views.BillDetail("INV-001"), views.BillDetail("INV-2026-001")} {
		if !containsPath(paths, want) {
			t.Errorf("missing stale path %s in %v", want, paths)
		}
	}
}

func TestUpdateBill_NotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	err := svc.UpdateBill(context.Background(), "INV-999", models.Bill{
		BillNumber: "INV-999", BillDate: fixedNow,
	})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateUser_PropagatesToAssignments(t *testing.T) {
	svc, store, rec := newTestService(t)
	ctx := context.Background()

	if _, err := svc.CreateItem(ctx, NewItemData{Name: "Laptop"}); err != nil {
		t.Fatalf("CreateItem failed: %v", err)
	}
	err := svc.Allot(ctx, "id-2", models.Assignment{
		PersonID: "EMP-042", Name: "Priya", Phone: "5551234567", Department: "Engineering",
	})
	if err != nil {
		t.Fatalf("Allot failed: %v", err)
	}
	rec.Reset()

	// Zero joining date keeps the stored one.
	err = svc.UpdateUser(ctx, models.User{
		PersonID: "EMP-042", Name: "Priya S", Phone: "5559999999", Department: "Design",
	})
	if err != nil {
		t.Fatalf("UpdateUser failed: %v", err)
	}

	user, err := store.GetUser(ctx, "EMP-042")
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if user.Name != "Priya S" || user.Department != "Design" {
		t.Errorf("user not updated: %+v", user)
	}
	if !user.JoiningDate.Equal(fixedNow) {
		t.Errorf("joining date not preserved: %v", user.JoiningDate)
	}

	got, err := store.GetItem(ctx, "id-1")
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	a := got.SubItems[0].AssignedTo
	if a == nil || a.Name != "Priya S" || a.Phone != "5559999999" || a.Department != "Design" {
		t.Errorf("assignment not propagated: %+v", a)
	}

	paths := rec.Paths()
	if !containsPath(paths, views.UserList()) || !containsPath(paths, views.UserDetail("EMP-042")) {
		t.Errorf("unexpected refreshed paths: %v", paths)
	}
}

func TestUpdateUser_NotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	err := svc.UpdateUser(context.Background(), models.User{
		PersonID: "ghost", Name: "G", Phone: "5550000000",
	})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
