package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database.
// These run on startup to ensure tables exist.
//
// Sub-items live in their own table but are exclusively owned by their
// parent item (ON DELETE CASCADE); bill_number and assigned_person_id are
// deliberately NOT foreign keys: a sub-item may reference a bill or
// person before the corresponding record exists.
const schema = `
CREATE TABLE IF NOT EXISTS items (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE COLLATE NOCASE,
    description TEXT NOT NULL DEFAULT '',
    image_url TEXT,
    total_quantity INTEGER NOT NULL DEFAULT 0,
    seq INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS sub_items (
    id TEXT PRIMARY KEY,
    item_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    status TEXT NOT NULL,
    bill_number TEXT,
    discarded_date TEXT,
    assigned_person_id TEXT,
    assigned_name TEXT,
    assigned_phone TEXT,
    assigned_department TEXT,
    assigned_project TEXT,
    assignment_date TEXT,
    FOREIGN KEY (item_id) REFERENCES items(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS bills (
    bill_number TEXT PRIMARY KEY,
    bill_date TEXT NOT NULL,
    company TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS users (
    person_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    phone TEXT NOT NULL,
    department TEXT,
    joining_date TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sub_items_item_id ON sub_items(item_id);
CREATE INDEX IF NOT EXISTS idx_sub_items_bill_number ON sub_items(bill_number);
CREATE INDEX IF NOT EXISTS idx_sub_items_person ON sub_items(assigned_person_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
