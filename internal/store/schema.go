package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS products (
    id                 TEXT PRIMARY KEY,
    name               TEXT NOT NULL,
    price_latest       REAL NOT NULL DEFAULT 0,
    lasts_days         INTEGER NOT NULL DEFAULT 1,
    last_purchased_at  TEXT NOT NULL,
    notes              TEXT NOT NULL DEFAULT '',
    category           TEXT NOT NULL,
    created_at         TEXT NOT NULL,
    updated_at         TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS settings (
    id                    INTEGER PRIMARY KEY CHECK (id = 1),
    currency              TEXT NOT NULL,
    heads_up_days         INTEGER NOT NULL,
    reminder_hour         INTEGER NOT NULL,
    budget_enabled        INTEGER NOT NULL DEFAULT 0,
    budget_amount         REAL NOT NULL DEFAULT 0,
    last_budget_alert_at  TEXT
);

CREATE INDEX IF NOT EXISTS idx_products_name ON products(name);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);
`
