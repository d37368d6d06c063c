package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mmynk/stockroom/internal/models"
	"github.com/mmynk/stockroom/internal/storage"
)

// GetBill retrieves a bill by number.
func (s *SQLiteStore) GetBill(ctx context.Context, billNumber string) (*models.Bill, error) {
	bill := &models.Bill{}
	var billDate string
	err := s.db.QueryRowContext(ctx,
		"SELECT bill_number, bill_date, company FROM bills WHERE bill_number = ?",
		billNumber,
	).Scan(&bill.BillNumber, &billDate, &bill.Company)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("bill %s: %w", billNumber, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}
	bill.BillDate, err = parseTime(billDate)
	if err != nil {
		return nil, err
	}
	return bill, nil
}

// SaveItemAndBill saves an item and upserts a bill in one transaction.
// A nil bill saves the item alone.
func (s *SQLiteStore) SaveItemAndBill(ctx context.Context, item *models.Item, bill *models.Bill) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := saveItemTx(ctx, tx, item); err != nil {
		return err
	}
	if bill != nil {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO bills (bill_number, bill_date, company)
			VALUES (?, ?, ?)
			ON CONFLICT(bill_number) DO UPDATE SET
				bill_date = excluded.bill_date,
				company = excluded.company
		`, bill.BillNumber, formatTime(bill.BillDate), bill.Company)
		if err != nil {
			return fmt.Errorf("failed to upsert bill: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// UpdateBill replaces the bill stored under originalNumber. When the
// number changed, sub-item references follow in the same transaction.
func (s *SQLiteStore) UpdateBill(ctx context.Context, originalNumber string, bill models.Bill) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE bills SET bill_number = ?, bill_date = ?, company = ?
		WHERE bill_number = ?
	`, bill.BillNumber, formatTime(bill.BillDate), bill.Company, originalNumber)
	if err != nil {
		return fmt.Errorf("failed to update bill: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("bill %s: %w", originalNumber, storage.ErrNotFound)
	}

	if originalNumber != bill.BillNumber {
		_, err := tx.ExecContext(ctx,
			"UPDATE sub_items SET bill_number = ? WHERE bill_number = ?",
			bill.BillNumber, originalNumber,
		)
		if err != nil {
			return fmt.Errorf("failed to rewrite bill references: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ReplaceBills overwrites the entire bill collection.
func (s *SQLiteStore) ReplaceBills(ctx context.Context, bills []models.Bill) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := replaceBillsTx(ctx, tx, bills); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *SQLiteStore) loadBills(ctx context.Context) ([]models.Bill, error) {
	// rowid preserves insertion order across whole-collection writes.
	rows, err := s.db.QueryContext(ctx,
		"SELECT bill_number, bill_date, company FROM bills ORDER BY rowid",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load bills: %w", err)
	}
	defer rows.Close()

	var bills []models.Bill
	for rows.Next() {
		var bill models.Bill
		var billDate string
		if err := rows.Scan(&bill.BillNumber, &billDate, &bill.Company); err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		bill.BillDate, err = parseTime(billDate)
		if err != nil {
			return nil, err
		}
		bills = append(bills, bill)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bills: %w", err)
	}
	return bills, nil
}

func replaceBillsTx(ctx context.Context, tx *sql.Tx, bills []models.Bill) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM bills"); err != nil {
		return fmt.Errorf("failed to clear bills: %w", err)
	}
	for _, bill := range bills {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO bills (bill_number, bill_date, company) VALUES (?, ?, ?)",
			bill.BillNumber, formatTime(bill.BillDate), bill.Company,
		)
		if err != nil {
			return fmt.Errorf("failed to insert bill: %w", err)
		}
	}
	return nil
}
