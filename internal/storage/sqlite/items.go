package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mmynk/stockroom/internal/models"
	"github.com/mmynk/stockroom/internal/storage"
)

const subItemColumns = `id, status, bill_number, discarded_date,
	assigned_person_id, assigned_name, assigned_phone,
	assigned_department, assigned_project, assignment_date`

// GetItem retrieves one item with its sub-items in position order.
func (s *SQLiteStore) GetItem(ctx context.Context, id string) (*models.Item, error) {
	item := &models.Item{}
	var imageURL sql.NullString
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, description, image_url, total_quantity FROM items WHERE id = ?",
		id,
	).Scan(&item.ID, &item.Name, &item.Description, &imageURL, &item.TotalQuantity)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("item %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	item.ImageURL = imageURL.String

	subItems, err := s.loadSubItems(ctx, id)
	if err != nil {
		return nil, err
	}
	item.SubItems = subItems
	return item, nil
}

// FindItemBySubItem retrieves the item owning the given sub-item ID.
func (s *SQLiteStore) FindItemBySubItem(ctx context.Context, subItemID string) (*models.Item, error) {
	var itemID string
	err := s.db.QueryRowContext(ctx,
		"SELECT item_id FROM sub_items WHERE id = ?", subItemID,
	).Scan(&itemID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("sub-item %s: %w", subItemID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find owning item: %w", err)
	}
	return s.GetItem(ctx, itemID)
}

// ItemNameExists reports whether an item with the given name exists,
// compared case-insensitively (the name column collates NOCASE).
func (s *SQLiteStore) ItemNameExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM items WHERE name = ?)", name,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check item name: %w", err)
	}
	return exists, nil
}

// InsertItem persists a new item at the front of the list order.
func (s *SQLiteStore) InsertItem(ctx context.Context, item *models.Item) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// New items sort before every existing one.
	_, err = tx.ExecContext(ctx, `
		INSERT INTO items (id, name, description, image_url, total_quantity, seq)
		VALUES (?, ?, ?, ?, ?, (SELECT COALESCE(MIN(seq), 1) - 1 FROM items))
	`, item.ID, item.Name, item.Description, nullString(item.ImageURL), item.TotalQuantity)
	if err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}

	if err := insertSubItemsTx(ctx, tx, item.ID, item.SubItems); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// SaveItem overwrites an existing item and its full sub-item list.
func (s *SQLiteStore) SaveItem(ctx context.Context, item *models.Item) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := saveItemTx(ctx, tx, item); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteItem removes an item; sub-items go with it via ON DELETE CASCADE.
func (s *SQLiteStore) DeleteItem(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM items WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("item %s: %w", id, storage.ErrNotFound)
	}
	return nil
}

// ReplaceItems overwrites the entire item collection.
func (s *SQLiteStore) ReplaceItems(ctx context.Context, items []models.Item) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := replaceItemsTx(ctx, tx, items); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *SQLiteStore) loadItems(ctx context.Context) ([]models.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, description, image_url, total_quantity FROM items ORDER BY seq",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load items: %w", err)
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		var item models.Item
		var imageURL sql.NullString
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &imageURL, &item.TotalQuantity); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		item.ImageURL = imageURL.String
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating items: %w", err)
	}

	subRows, err := s.db.QueryContext(ctx,
		"SELECT item_id, "+subItemColumns+" FROM sub_items ORDER BY item_id, position",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load sub-items: %w", err)
	}
	defer subRows.Close()

	byItem := make(map[string][]models.SubItem)
	for subRows.Next() {
		var itemID string
		si, err := scanSubItem(subRows, &itemID)
		if err != nil {
			return nil, err
		}
		byItem[itemID] = append(byItem[itemID], si)
	}
	if err := subRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sub-items: %w", err)
	}

	for i := range items {
		items[i].SubItems = byItem[items[i].ID]
	}
	return items, nil
}

func (s *SQLiteStore) loadSubItems(ctx context.Context, itemID string) ([]models.SubItem, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+subItemColumns+" FROM sub_items WHERE item_id = ? ORDER BY position",
		itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load sub-items: %w", err)
	}
	defer rows.Close()

	var subItems []models.SubItem
	for rows.Next() {
		si, err := scanSubItem(rows, nil)
		if err != nil {
			return nil, err
		}
		subItems = append(subItems, si)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sub-items: %w", err)
	}
	return subItems, nil
}

// scanSubItem reads one sub-item row. When itemID is non-nil the leading
// item_id column is scanned into it.
func scanSubItem(rows *sql.Rows, itemID *string) (models.SubItem, error) {
	var si models.SubItem
	var billNumber, discardedDate sql.NullString
	var personID, name, phone, department, project, assignmentDate sql.NullString

	dest := []any{
		&si.ID, &si.Status, &billNumber, &discardedDate,
		&personID, &name, &phone, &department, &project, &assignmentDate,
	}
	if itemID != nil {
		dest = append([]any{itemID}, dest...)
	}
	if err := rows.Scan(dest...); err != nil {
		return si, fmt.Errorf("failed to scan sub-item: %w", err)
	}

	si.BillNumber = billNumber.String

	dd, err := parseNullTime(discardedDate)
	if err != nil {
		return si, err
	}
	si.DiscardedDate = dd

	if personID.Valid {
		ad, err := parseTime(assignmentDate.String)
		if err != nil {
			return si, err
		}
		si.AssignedTo = &models.Assignment{
			PersonID:       personID.String,
			Name:           name.String,
			Phone:          phone.String,
			Department:     department.String,
			Project:        project.String,
			AssignmentDate: ad,
		}
	}
	return si, nil
}

// saveItemTx overwrites the item row and rewrites its sub-item list.
func saveItemTx(ctx context.Context, tx *sql.Tx, item *models.Item) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE items SET name = ?, description = ?, image_url = ?, total_quantity = ?
		WHERE id = ?
	`, item.Name, item.Description, nullString(item.ImageURL), item.TotalQuantity, item.ID)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("item %s: %w", item.ID, storage.ErrNotFound)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM sub_items WHERE item_id = ?", item.ID); err != nil {
		return fmt.Errorf("failed to clear sub-items: %w", err)
	}
	return insertSubItemsTx(ctx, tx, item.ID, item.SubItems)
}

func insertSubItemsTx(ctx context.Context, tx *sql.Tx, itemID string, subItems []models.SubItem) error {
	for i, si := range subItems {
		var personID, name, phone, department, project, assignmentDate any
		if a := si.AssignedTo; a != nil {
			personID = a.PersonID
			name = a.Name
			phone = a.Phone
			department = nullString(a.Department)
			project = nullString(a.Project)
			assignmentDate = formatTime(a.AssignmentDate)
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO sub_items (
				id, item_id, position, status, bill_number, discarded_date,
				assigned_person_id, assigned_name, assigned_phone,
				assigned_department, assigned_project, assignment_date
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, si.ID, itemID, i, si.Status, nullString(si.BillNumber), nullTime(si.DiscardedDate),
			personID, name, phone, department, project, assignmentDate)
		if err != nil {
			return fmt.Errorf("failed to insert sub-item: %w", err)
		}
	}
	return nil
}

func replaceItemsTx(ctx context.Context, tx *sql.Tx, items []models.Item) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM sub_items"); err != nil {
		return fmt.Errorf("failed to clear sub-items: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM items"); err != nil {
		return fmt.Errorf("failed to clear items: %w", err)
	}
	for i, item := range items {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO items (id, name, description, image_url, total_quantity, seq)
			VALUES (?, ?, ?, ?, ?, ?)
		`, item.ID, item.Name, item.Description, nullString(item.ImageURL), item.TotalQuantity, i)
		if err != nil {
			return fmt.Errorf("failed to insert item: %w", err)
		}
		if err := insertSubItemsTx(ctx, tx, item.ID, item.SubItems); err != nil {
			return err
		}
	}
	return nil
}
