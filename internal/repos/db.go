package repos

import (
	"log"
	"strings"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// Single connection: keeps the foreign_keys pragma in force everywhere
	// and sidesteps SQLITE_BUSY on concurrent writes.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	return db, nil
}

// IsConflict reports whether err is a uniqueness or foreign-key violation
// from the storage layer, so handlers can answer 409 instead of 500.
func IsConflict(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "constraint")
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Categories (top of the two-level taxonomy)
CREATE TABLE IF NOT EXISTS categories(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  slug TEXT NOT NULL,
  icon TEXT NOT NULL DEFAULT '',
  description TEXT NOT NULL DEFAULT '',
  is_active INTEGER NOT NULL DEFAULT 1,
  show_in_navbar INTEGER NOT NULL DEFAULT 0,
  navbar_order INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_name_nocase ON categories(LOWER(name));
CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_slug ON categories(slug);

-- Subcategories: same name allowed under different categories
CREATE TABLE IF NOT EXISTS subcategories(
  id TEXT PRIMARY KEY,
  category_id TEXT NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
  name TEXT NOT NULL,
  slug TEXT NOT NULL,
  icon TEXT NOT NULL DEFAULT '',
  description TEXT NOT NULL DEFAULT '',
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_subcategories_cat_name ON subcategories(category_id, LOWER(name));
CREATE UNIQUE INDEX IF NOT EXISTS idx_subcategories_slug ON subcategories(slug);
CREATE INDEX IF NOT EXISTS idx_subcategories_category ON subcategories(category_id);

-- Products
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  subcategory_id TEXT NOT NULL REFERENCES subcategories(id) ON DELETE RESTRICT,
  name TEXT NOT NULL,
  slug TEXT NOT NULL,
  sku TEXT NOT NULL,
  brand TEXT NOT NULL DEFAULT '',
  product_type TEXT NOT NULL DEFAULT 'new' CHECK (product_type IN ('new','refurbished','rental')),
  price NUMERIC NOT NULL CHECK (price >= 0),
  original_price NUMERIC,
  discount INTEGER NOT NULL DEFAULT 0 CHECK (discount BETWEEN 0 AND 100),
  rental_price_daily NUMERIC,
  rental_price_weekly NUMERIC,
  rental_price_monthly NUMERIC,
  min_rental_period TEXT,
  stock_count INTEGER NOT NULL DEFAULT 0 CHECK (stock_count >= 0),
  in_stock INTEGER NOT NULL DEFAULT 1,
  description TEXT NOT NULL DEFAULT '',
  features_json TEXT NOT NULL DEFAULT '[]',
  specifications_json TEXT NOT NULL DEFAULT '{}',
  weight TEXT,
  warranty_months INTEGER,
  condition TEXT,
  rating NUMERIC NOT NULL DEFAULT 4.5 CHECK (rating >= 0 AND rating <= 5),
  reviews INTEGER NOT NULL DEFAULT 0,
  main_image TEXT,
  seo_title TEXT NOT NULL DEFAULT '',
  seo_description TEXT NOT NULL DEFAULT '',
  is_active INTEGER NOT NULL DEFAULT 1,
  is_featured INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_products_sku ON products(sku);
CREATE UNIQUE INDEX IF NOT EXISTS idx_products_slug ON products(slug);
CREATE INDEX IF NOT EXISTS idx_products_subcategory ON products(subcategory_id);
CREATE INDEX IF NOT EXISTS idx_products_type ON products(product_type);
CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at);

-- Additional product images
CREATE TABLE IF NOT EXISTS product_images(
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  image TEXT NOT NULL,
  alt_text TEXT NOT NULL DEFAULT '',
  is_primary INTEGER NOT NULL DEFAULT 0,
  display_order INTEGER NOT NULL DEFAULT 0 CHECK (display_order >= 0),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_product_images_product ON product_images(product_id, display_order);

-- Quote requests
CREATE TABLE IF NOT EXISTS quote_requests(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL,
  phone TEXT NOT NULL,
  company TEXT NOT NULL DEFAULT '',
  message TEXT NOT NULL DEFAULT '',
  status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending','processing','sent','completed','cancelled')),
  admin_notes TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_quotes_created_at ON quote_requests(created_at);

CREATE TABLE IF NOT EXISTS quote_items(
  id TEXT PRIMARY KEY,
  quote_id TEXT NOT NULL REFERENCES quote_requests(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL REFERENCES products(id),
  quantity INTEGER NOT NULL CHECK (quantity >= 1),
  price NUMERIC NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_quote_items_quote ON quote_items(quote_id);

-- Admin console users & sessions
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('STAFF','ADMIN')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);
`
	_, err := db.Exec(schema)
	return err
}

// SeedAdmin ensures one admin user exists (idempotent; safe to run every start).
func SeedAdmin(db *sqlx.DB, email, password string) error {
	h, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return err
	}
	_, err = db.Exec(`
		INSERT INTO users(id,email,name,password_hash,role)
		VALUES('u-admin',?,?,?,'ADMIN')
		ON CONFLICT(email) DO NOTHING
	`, email, "Admin", string(h))
	return err
}

// SeedDemo inserts a small demo catalog if the DB is empty.
func SeedDemo(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM categories`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo categories/subcategories/products")

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	tx.MustExec(`INSERT INTO categories(id,name,slug,icon,show_in_navbar,navbar_order) VALUES
	  ('cat-office','Office Supplies','office-supplies','Package',1,1),
	  ('cat-tech','Technology','technology','Printer',1,2),
	  ('cat-furniture','Furniture','furniture','Armchair',0,0)`)

	tx.MustExec(`INSERT INTO subcategories(id,category_id,name,slug,icon) VALUES
	  ('sub-pens','cat-office','Pens','pens','Pen'),
	  ('sub-paper','cat-office','Paper','paper','FileText'),
	  ('sub-printers','cat-tech','Printers','printers','Printer'),
	  ('sub-laptops','cat-tech','Laptops','laptops','Laptop')`)

	tx.MustExec(`INSERT INTO products(
	   id,subcategory_id,name,slug,sku,brand,product_type,price,original_price,discount,
	   rental_price_daily,rental_price_weekly,rental_price_monthly,min_rental_period,
	   stock_count,in_stock,description,features_json,specifications_json,
	   rating,reviews,main_image,seo_title,seo_description,is_active,is_featured)
	 VALUES
	  ('prd-pen-01','sub-pens','Ballpoint Pen Box (50)','ballpoint-pen-box-50','PEN-050','Staedtler','new',
	    24.00,30.00,20,NULL,NULL,NULL,NULL,
	    120,1,'Smooth-writing blue ballpoint pens, box of 50.',
	    '["Quick-dry ink","Ergonomic grip"]','{"Color":"Blue","Count":"50"}',
	    4.5,12,'products/pens/ballpoint-box.jpg','Ballpoint Pen Box (50)','Smooth-writing blue ballpoint pens, box of 50.',1,1),
	  ('prd-printer-01','sub-printers','LaserJet Pro M404','laserjet-pro-m404','PRT-M404','HP','refurbished',
	    899.00,NULL,0,NULL,NULL,NULL,NULL,
	    3,1,'Refurbished mono laser printer, 38 ppm.',
	    '["Duplex printing","Ethernet + USB"]','{"Speed":"38 ppm","Duty cycle":"80k pages"}',
	    4.5,4,'products/printers/laserjet-m404.jpg','LaserJet Pro M404','Refurbished mono laser printer, 38 ppm.',1,1),
	  ('prd-laptop-01','sub-laptops','ThinkPad T14 Rental','thinkpad-t14-rental','LPT-T14R','Lenovo','rental',
	    0.00,NULL,0,45.00,250.00,800.00,'1 week',
	    10,1,'Business laptop available on daily, weekly and monthly rental.',
	    '["14\" FHD display","16 GB RAM"]','{"CPU":"Ryzen 7","Storage":"512 GB SSD"}',
	    4.5,9,'products/laptops/thinkpad-t14.jpg','ThinkPad T14 Rental','Business laptop available on daily, weekly and monthly rental.',1,0)`)

	tx.MustExec(`INSERT INTO product_images(id,product_id,image,alt_text,is_primary,display_order) VALUES
	  ('img-pen-01','prd-pen-01','products/pens/ballpoint-box-side.jpg','Ballpoint Pen Box (50) - Image 1',0,1),
	  ('img-printer-01','prd-printer-01','products/printers/laserjet-m404-open.jpg','',1,0)`)

	return tx.Commit()
}
