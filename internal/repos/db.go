package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
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
	// Seed baseline data if DB is empty (catalogue/partners)
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	// Ensure users exist (idempotent; safe to run every start)
	if err := seedUsers(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Catalogue
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  category TEXT NOT NULL CHECK (category IN
    ('HOLLOW','SOLID','PAVING','DECORATIVE','CEMENT','INTERLOCKING','U_BLOCK')),
  price NUMERIC NOT NULL CHECK (price >= 0),
  factory_name TEXT NOT NULL,
  dimensions TEXT,
  weight TEXT,
  strength TEXT,
  avg_rating NUMERIC NOT NULL DEFAULT 0 CHECK (avg_rating BETWEEN 0 AND 5),
  review_count INTEGER NOT NULL DEFAULT 0 CHECK (review_count >= 0),
  active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);
CREATE INDEX IF NOT EXISTS idx_products_name     ON products(LOWER(name));

-- Carts (one per session)
CREATE TABLE IF NOT EXISTS carts(
  id TEXT PRIMARY KEY,
  session_id TEXT UNIQUE NOT NULL,
  updated_at TEXT
);

CREATE TABLE IF NOT EXISTS cart_items(
  cart_id    TEXT NOT NULL REFERENCES carts(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE RESTRICT,
  qty INTEGER NOT NULL CHECK (qty >= 1),
  price_at_add NUMERIC NOT NULL,
  created_at TEXT,
  updated_at TEXT,
  PRIMARY KEY (cart_id, product_id)
);

-- Orders: immutable after creation except status and tracking
CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,                -- MOD-xxxxx
  transaction_id TEXT NOT NULL,       -- TXN-xxxxxxxxx
  session_id TEXT,
  subtotal NUMERIC NOT NULL,
  discount_amount NUMERIC NOT NULL DEFAULT 0,
  total NUMERIC NOT NULL,
  currency TEXT NOT NULL DEFAULT 'GHS',
  exchange_rate NUMERIC NOT NULL DEFAULT 1,
  payment_method TEXT,
  status TEXT NOT NULL DEFAULT 'PROCESSING' CHECK (status IN
    ('PROCESSING','IN_PRODUCTION','OUT_FOR_DELIVERY','DELIVERED')),
  tracking_location TEXT,
  tracking_eta TEXT,
  driver_name TEXT,
  driver_phone TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at);
CREATE INDEX IF NOT EXISTS idx_orders_session    ON orders(session_id);

CREATE TABLE IF NOT EXISTS order_items(
  order_id  TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL,
  name TEXT NOT NULL,                 -- snapshot, survives catalogue edits
  qty INTEGER NOT NULL,
  price NUMERIC NOT NULL,             -- unit price at add-to-cart time
  PRIMARY KEY (order_id, product_id)
);

-- Partner factories
CREATE TABLE IF NOT EXISTS partners(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  location TEXT,
  contact TEXT,
  status TEXT NOT NULL DEFAULT 'PENDING' CHECK (status IN ('PENDING','APPROVED','REJECTED')),
  tier TEXT NOT NULL DEFAULT 'standard' CHECK (tier IN ('standard','premium','enterprise')),
  subscription_fee NUMERIC NOT NULL DEFAULT 0,
  revenue_generated NUMERIC NOT NULL DEFAULT 0,
  active_fleet_count INTEGER NOT NULL DEFAULT 0,
  production_capacity INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_partners_status ON partners(status);

-- Shortlists (saved products per session)
CREATE TABLE IF NOT EXISTS shortlists(
  id TEXT PRIMARY KEY,
  session_id TEXT UNIQUE NOT NULL,
  updated_at TEXT
);

CREATE TABLE IF NOT EXISTS shortlist_items(
  shortlist_id TEXT NOT NULL REFERENCES shortlists(id) ON DELETE CASCADE,
  product_id   TEXT NOT NULL REFERENCES products(id) ON DELETE RESTRICT,
  created_at   TEXT,
  PRIMARY KEY (shortlist_id, product_id)
);

-- Users & Sessions
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('USER','PARTNER','ADMIN')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo catalogue/partners")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO products(id,name,category,price,factory_name,dimensions,weight,strength,avg_rating,review_count) VALUES
	  ('blk-hollow-5','5" Hollow Block','HOLLOW',3.80,'Shai Hills Blocks Ltd','450x125x225mm','14kg','3.5 N/mm2',4.4,112),
	  ('blk-hollow-6','6" Hollow Block','HOLLOW',4.50,'Shai Hills Blocks Ltd','450x150x225mm','17kg','3.5 N/mm2',4.6,208),
	  ('blk-hollow-8','8" Hollow Block','HOLLOW',5.90,'Tema Concrete Works','450x200x225mm','22kg','4.0 N/mm2',4.5,164),
	  ('blk-solid-5','5" Solid Block','SOLID',6.00,'Tema Concrete Works','450x125x225mm','24kg','5.0 N/mm2',4.2,87),
	  ('blk-paving-std','Standard Paving Block','PAVING',2.80,'Accra Pavers Co','200x100x60mm','4.5kg','30 N/mm2',4.7,321),
	  ('blk-deco-vent','Decorative Vent Block','DECORATIVE',7.50,'Accra Pavers Co','400x200x100mm','11kg','2.5 N/mm2',4.1,45),
	  ('cem-42-5','Portland Cement 42.5R (50kg)','CEMENT',58.00,'Shai Hills Blocks Ltd','50kg bag','50kg','42.5 MPa',4.8,540),
	  ('blk-inter-uni','Interlocking Block (Uni)','INTERLOCKING',3.20,'Volta Interlock Ltd','250x125x100mm','6kg','20 N/mm2',4.3,96),
	  ('blk-u-150','6" U-Block (Lintel)','U_BLOCK',5.20,'Tema Concrete Works','450x150x225mm','15kg','3.5 N/mm2',4.0,31)`)

	tx.MustExec(`INSERT INTO partners(id,name,location,contact,status,tier,subscription_fee,revenue_generated,active_fleet_count,production_capacity) VALUES
	  ('ptn-shai-hills','Shai Hills Blocks Ltd','Shai Hills, Greater Accra','+233 24 000 1111','APPROVED','premium',450,182500,6,12000),
	  ('ptn-tema-cw','Tema Concrete Works','Tema Industrial Area','+233 24 000 2222','APPROVED','standard',150,96400,3,8000),
	  ('ptn-accra-pav','Accra Pavers Co','Dansoman, Accra','+233 24 000 3333','APPROVED','enterprise',1200,310200,11,25000),
	  ('ptn-volta-il','Volta Interlock Ltd','Ho, Volta Region','+233 24 000 4444','PENDING','standard',150,0,0,4000)`)

	return tx.Commit()
}

// seedUsers ensures demo accounts exist (idempotent).
func seedUsers(db *sqlx.DB) error {
	type u struct {
		ID, Email, Name, Role, Hash string
	}
	mk := func(id, email, name, role, raw string) u {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return u{ID: id, Email: email, Name: name, Role: role, Hash: string(h)}
	}

	users := []u{
		mk("u-kwame", "kwame@modublock.test", "Kwame", "USER", "Passw0rd!"),
		mk("u-abena", "abena@modublock.test", "Abena", "USER", "Passw0rd!"),
		mk("u-shai", "ops@shaihillsblocks.test", "Shai Hills Ops", "PARTNER", "Passw0rd!"),
		mk("u-admin", "admin@modublock.test", "Admin", "ADMIN", "Passw0rd!"),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		if _, err := tx.Exec(`
			INSERT INTO users(id,email,name,password_hash,role)
			VALUES(?,?,?,?,?)
			ON CONFLICT(email) DO NOTHING
		`, x.ID, x.Email, x.Name, x.Hash, x.Role); err != nil {
			return err
		}
	}

	return tx.Commit()
}
