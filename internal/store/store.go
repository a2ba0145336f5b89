// Package store persists products and settings in a local SQLite database.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // register sqlite driver

	"github.com/mfigueredo/smarket/internal/model"
)

// ErrNotFound is returned when a product lookup matches nothing.
var ErrNotFound = errors.New("product not found")

// Store wraps the SQLite database.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the XDG-compliant database location.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "smarket", "smarket.db")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "smarket", "smarket.db")
}

// Open opens or creates the database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// ListProducts returns all products ordered by name.
func (s *Store) ListProducts() ([]model.Product, error) {
	rows, err := s.db.Query(`SELECT id, name, price_latest, lasts_days,
		last_purchased_at, notes, category FROM products ORDER BY name COLLATE NOCASE`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// GetProduct fetches one product by ID.
func (s *Store) GetProduct(id string) (model.Product, error) {
	row := s.db.QueryRow(`SELECT id, name, price_latest, lasts_days,
		last_purchased_at, notes, category FROM products WHERE id = ?`, id)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Product{}, ErrNotFound
	}
	return p, err
}

// FindProduct fetches one product by ID or, failing that, by exact
// case-insensitive name.
func (s *Store) FindProduct(idOrName string) (model.Product, error) {
	p, err := s.GetProduct(idOrName)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return model.Product{}, err
	}

	row := s.db.QueryRow(`SELECT id, name, price_latest, lasts_days,
		last_purchased_at, notes, category FROM products
		WHERE name = ? COLLATE NOCASE`, idOrName)
	p, err = scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Product{}, ErrNotFound
	}
	return p, err
}

// SaveProduct inserts or updates a product. LastsDays is clamped on write
// so the invariant holds no matter what the caller passed.
func (s *Store) SaveProduct(p model.Product) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(`INSERT INTO products
		(id, name, price_latest, lasts_days, last_purchased_at, notes, category, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			price_latest = excluded.price_latest,
			lasts_days = excluded.lasts_days,
			last_purchased_at = excluded.last_purchased_at,
			notes = excluded.notes,
			category = excluded.category,
			updated_at = excluded.updated_at`,
		p.ID, p.Name, p.PriceLatest, model.ClampLastsDays(p.LastsDays),
		p.LastPurchasedAt.UTC().Format(time.RFC3339), p.Notes, string(p.Category),
		now, now,
	)
	return err
}

// DeleteProduct removes a product by ID.
func (s *Store) DeleteProduct(id string) error {
	res, err := s.db.Exec("DELETE FROM products WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Settings returns the singleton settings row, creating it with defaults
// on first access.
func (s *Store) Settings() (model.AppSettings, error) {
	row := s.db.QueryRow(`SELECT currency, heads_up_days, reminder_hour,
		budget_enabled, budget_amount, last_budget_alert_at FROM settings WHERE id = 1`)

	var (
		currency  string
		settings  model.AppSettings
		enabled   int
		lastAlert sql.NullString
	)
	err := row.Scan(&currency, &settings.HeadsUpDays, &settings.ReminderHour,
		&enabled, &settings.BudgetAmount, &lastAlert)
	if errors.Is(err, sql.ErrNoRows) {
		defaults := model.DefaultSettings()
		if err := s.SaveSettings(defaults); err != nil {
			return defaults, err
		}
		return defaults, nil
	}
	if err != nil {
		return model.AppSettings{}, err
	}

	settings.Currency = model.ParseCurrency(currency)
	settings.BudgetEnabled = enabled != 0
	if lastAlert.Valid && lastAlert.String != "" {
		if t, err := time.Parse(time.RFC3339, lastAlert.String); err == nil {
			settings.LastBudgetAlertAt = &t
		}
	}
	return settings, nil
}

// SaveSettings writes the singleton settings row.
func (s *Store) SaveSettings(settings model.AppSettings) error {
	var lastAlert any
	if settings.LastBudgetAlertAt != nil {
		lastAlert = settings.LastBudgetAlertAt.UTC().Format(time.RFC3339)
	}

	enabled := 0
	if settings.BudgetEnabled {
		enabled = 1
	}

	_, err := s.db.Exec(`INSERT OR REPLACE INTO settings
		(id, currency, heads_up_days, reminder_hour, budget_enabled, budget_amount, last_budget_alert_at)
		VALUES (1, ?, ?, ?, ?, ?, ?)`,
		string(settings.Currency), settings.HeadsUpDays, settings.ReminderHour,
		enabled, settings.BudgetAmount, lastAlert,
	)
	return err
}

// MarkBudgetAlerted persists the last-budget-alert timestamp. Called
// immediately after a fired alert so the same-day throttle holds.
func (s *Store) MarkBudgetAlerted(at time.Time) error {
	_, err := s.db.Exec(`UPDATE settings SET last_budget_alert_at = ? WHERE id = 1`,
		at.UTC().Format(time.RFC3339))
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(row scanner) (model.Product, error) {
	var (
		p         model.Product
		purchased string
		category  string
	)
	if err := row.Scan(&p.ID, &p.Name, &p.PriceLatest, &p.LastsDays,
		&purchased, &p.Notes, &category); err != nil {
		return model.Product{}, err
	}

	t, err := time.Parse(time.RFC3339, purchased)
	if err != nil {
		return model.Product{}, fmt.Errorf("parsing purchase date for %s: %w", p.ID, err)
	}
	p.LastPurchasedAt = t
	p.Category = model.ParseCategory(category)
	p.LastsDays = model.ClampLastsDays(p.LastsDays)
	return p, nil
}
