package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed the reference catalog if the DB is empty (idempotent; safe to run every start)
	if err := seedCatalog(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
-- Products (fixed catalog; no mutation endpoints exist)
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  price NUMERIC NOT NULL CHECK (price >= 0),
  image_url TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_products_name ON products(LOWER(name));

-- Carts: one JSON state record per storage key
CREATE TABLE IF NOT EXISTS carts(
  key TEXT PRIMARY KEY,
  state TEXT NOT NULL,
  updated_at TEXT
);
`
	_, err := db.Exec(schema)
	return err
}

func seedCatalog(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo catalog")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO products(id,name,price,image_url) VALUES
	  ('1','Wireless Headphones',129.99,'/premium-wireless-headphones.png'),
	  ('2','Smart Watch',299.99,'/luxury-smart-watch.jpg'),
	  ('3','Laptop Stand',49.99,'/modern-laptop-stand.jpg'),
	  ('4','Mechanical Keyboard',159.99,'/rgb-mechanical-keyboard.jpg'),
	  ('5','USB-C Hub',79.99,'/usb-c-hub-adapter.jpg'),
	  ('6','Desk Lamp',89.99,'/modern-desk-lamp.png'),
	  ('7','Webcam 4K',199.99,'/4k-webcam.png'),
	  ('8','Portable SSD',149.99,'/portable-ssd-drive.jpg')`)

	return tx.Commit()
}
