package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mmynk/stockroom/internal/models"
	"github.com/mmynk/stockroom/internal/storage"
)

// GetUser retrieves a user by person ID.
func (s *SQLiteStore) GetUser(ctx context.Context, personID string) (*models.User, error) {
	user := &models.User{}
	var department sql.NullString
	var joiningDate string
	err := s.db.QueryRowContext(ctx,
		"SELECT person_id, name, phone, department, joining_date FROM users WHERE person_id = ?",
		personID,
	).Scan(&user.PersonID, &user.Name, &user.Phone, &department, &joiningDate)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user %s: %w", personID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	user.Department = department.String
	user.JoiningDate, err = parseTime(joiningDate)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// SaveItemAndUser saves an item and upserts a user in one transaction.
// This is the allotment write path: the unit's new state and the person
// record land together or not at all.
func (s *SQLiteStore) SaveItemAndUser(ctx context.Context, item *models.Item, user *models.User) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := saveItemTx(ctx, tx, item); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO users (person_id, name, phone, department, joining_date)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(person_id) DO UPDATE SET
			name = excluded.name,
			phone = excluded.phone,
			department = excluded.department,
			joining_date = excluded.joining_date
	`, user.PersonID, user.Name, user.Phone, nullString(user.Department), formatTime(user.JoiningDate))
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// UpdateUser replaces the user record and propagates the contact fields
// onto every assignment referencing the person ID, in one transaction.
// This is the only place denormalized assignment data is resynchronized
// with the canonical user record.
func (s *SQLiteStore) UpdateUser(ctx context.Context, user models.User) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE users SET name = ?, phone = ?, department = ?, joining_date = ?
		WHERE person_id = ?
	`, user.Name, user.Phone, nullString(user.Department), formatTime(user.JoiningDate), user.PersonID)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("user %s: %w", user.PersonID, storage.ErrNotFound)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE sub_items SET assigned_name = ?, assigned_phone = ?, assigned_department = ?
		WHERE assigned_person_id = ?
	`, user.Name, user.Phone, nullString(user.Department), user.PersonID)
	if err != nil {
		return fmt.Errorf("failed to propagate user to assignments: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ReplaceUsers overwrites the entire user collection.
func (s *SQLiteStore) ReplaceUsers(ctx context.Context, users []models.User) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := replaceUsersTx(ctx, tx, users); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *SQLiteStore) loadUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT person_id, name, phone, department, joining_date FROM users ORDER BY rowid",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		var department sql.NullString
		var joiningDate string
		if err := rows.Scan(&user.PersonID, &user.Name, &user.Phone, &department, &joiningDate); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		user.Department = department.String
		user.JoiningDate, err = parseTime(joiningDate)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}
	return users, nil
}

func replaceUsersTx(ctx context.Context, tx *sql.Tx, users []models.User) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM users"); err != nil {
		return fmt.Errorf("failed to clear users: %w", err)
	}
	for _, user := range users {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO users (person_id, name, phone, department, joining_date) VALUES (?, ?, ?, ?, ?)",
			user.PersonID, user.Name, user.Phone, nullString(user.Department), formatTime(user.JoiningDate),
		)
		if err != nil {
			return fmt.Errorf("failed to insert user: %w", err)
		}
	}
	return nil
}
