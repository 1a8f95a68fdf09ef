package store

import (
	"context"
	"database/sql"
	errs "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/DaanHessen/survey-demo-tui/internal/util"
)

var (
	ErrNoChange = errs.New("no change")
	ErrNotFound = errs.New("not found")
)

// DB wraps gorm.DB for repositories and exposes Close.
type DB struct {
	gorm *gorm.DB
	sql  *sql.DB
}

func (d *DB) Close() error   { return d.sql.Close() }
func (d *DB) Gorm() *gorm.DB { return d.gorm }

// Open connects to DB per config.
func Open(ctx context.Context, cfg util.Config) (*DB, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("missing DSN")
	}
	// gorm must stay quiet: stdout belongs to the terminal UI.
	gdb, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, wrap(err, "open postgres")
	}
	sdb, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sdb.SetConnMaxLifetime(30 * time.Minute)
	sdb.SetMaxOpenConns(10)
	sdb.SetMaxIdleConns(5)
	if err := sdb.PingContext(ctx); err != nil {
		return nil, wrap(err, "ping postgres")
	}
	return &DB{gorm: gdb, sql: sdb}, nil
}

// WithTx executes fn within a database transaction.
func (d *DB) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return d.gorm.WithContext(ctx).Transaction(fn)
}

// Person is the identity the sandbox SDK attaches actions and attributes to.
type Person struct {
	ID            uuid.UUID
	EnvironmentID string
	UserID        string
	Attributes    map[string]string
	CreatedAt     time.Time
}

// Action is one tracked event of a person.
type Action struct {
	ID        uuid.UUID
	PersonID  uuid.UUID
	Name      string
	CreatedAt time.Time
}

// PersonRepo persists people, their attributes and tracked actions.
type PersonRepo struct{ db *DB }

func NewPersonRepo(db *DB) *PersonRepo { return &PersonRepo{db: db} }

// Create inserts a fresh person for the environment.
func (r *PersonRepo) Create(ctx context.Context, environmentID string) (Person, error) {
	p := Person{ID: uuid.New(), EnvironmentID: environmentID, Attributes: map[string]string{}, CreatedAt: time.Now().UTC()}
	if err := r.db.gorm.WithContext(ctx).Exec(`INSERT INTO people(id, environment_id, created_at) VALUES (?,?,?)`, p.ID, p.EnvironmentID, p.CreatedAt).Error; err != nil {
		return Person{}, wrap(err, "insert person")
	}
	return p, nil
}

// Latest returns the most recently created person of the environment or ErrNotFound.
func (r *PersonRepo) Latest(ctx context.Context, environmentID string) (Person, error) {
	var p Person
	err := r.db.WithTx(ctx, func(tx *gorm.DB) error {
		row := tx.Raw(`SELECT id, environment_id, user_id, created_at FROM people WHERE environment_id = ? ORDER BY created_at DESC LIMIT 1`, environmentID).Row()
		var err error
		if p, err = scanPerson(row); err != nil {
			return err
		}
		p.Attributes, err = loadAttributes(tx, p.ID)
		return err
	})
	return p, err
}

// Get loads a person with attributes.
func (r *PersonRepo) Get(ctx context.Context, id uuid.UUID) (Person, error) {
	var p Person
	err := r.db.WithTx(ctx, func(tx *gorm.DB) error {
		row := tx.Raw(`SELECT id, environment_id, user_id, created_at FROM people WHERE id = ?`, id).Row()
		var err error
		if p, err = scanPerson(row); err != nil {
			return err
		}
		p.Attributes, err = loadAttributes(tx, p.ID)
		return err
	})
	return p, err
}

func (r *PersonRepo) SetUserID(ctx context.Context, personID uuid.UUID, userID string) error {
	res := r.db.gorm.WithContext(ctx).Exec(`UPDATE people SET user_id = ? WHERE id = ?`, userID, personID)
	if res.Error != nil {
		return wrap(res.Error, "set user id")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetAttribute creates or overwrites one attribute of a person.
func (r *PersonRepo) SetAttribute(ctx context.Context, personID uuid.UUID, key, value string) error {
	return wrap(r.db.gorm.WithContext(ctx).Exec(`INSERT INTO person_attributes(person_id, key, value, updated_at) VALUES (?,?,?,now())
	ON CONFLICT (person_id, key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`, personID, key, value).Error, "upsert attribute")
}

// RecordAction stores a tracked action for a person.
func (r *PersonRepo) RecordAction(ctx context.Context, personID uuid.UUID, name string) error {
	return wrap(r.db.gorm.WithContext(ctx).Exec(`INSERT INTO actions(id, person_id, name, created_at) VALUES (?,?,?,?)`, uuid.New(), personID, name, time.Now().UTC()).Error, "insert action")
}

// RecentActions lists a person's actions, newest first.
func (r *PersonRepo) RecentActions(ctx context.Context, personID uuid.UUID, limit int) ([]Action, error) {
	rows, err := r.db.gorm.WithContext(ctx).Raw(`SELECT id, person_id, name, created_at FROM actions WHERE person_id = ? ORDER BY created_at DESC LIMIT ?`, personID, limit).Rows()
	if err != nil {
		return nil, wrap(err, "list actions")
	}
	defer rows.Close()
	var out []Action
	for rows.Next() {
		var a Action
		if err := rows.Scan(&a.ID, &a.PersonID, &a.Name, &a.CreatedAt); err != nil {
			return nil, wrap(err, "scan action")
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanPerson(row *sql.Row) (Person, error) {
	var (
		p      Person
		userID sql.NullString
	)
	if err := row.Scan(&p.ID, &p.EnvironmentID, &userID, &p.CreatedAt); err != nil {
		if errs.Is(err, sql.ErrNoRows) {
			return Person{}, ErrNotFound
		}
		return Person{}, wrap(err, "scan person")
	}
	p.UserID = userID.String
	return p, nil
}

func loadAttributes(tx *gorm.DB, personID uuid.UUID) (map[string]string, error) {
	rows, err := tx.Raw(`SELECT key, value FROM person_attributes WHERE person_id = ?`, personID).Rows()
	if err != nil {
		return nil, wrap(err, "load attributes")
	}
	defer rows.Close()
	attrs := map[string]string{}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, wrap(err, "scan attribute")
		}
		attrs[k] = v
	}
	return attrs, rows.Err()
}

// Helper error wrap
func wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, msg)
}
