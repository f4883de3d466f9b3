// Package journal keeps an optional Postgres log of generation outcomes.
// Rows carry no user or chat identifiers.
package journal

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/namebot/internal/names"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrations returns the schema migrations with the files at the root.
func Migrations() fs.FS {
	sub, err := fs.Sub(migrationFiles, "migrations")
	if err != nil {
		panic(fmt.Sprintf("journal: migrations: %v", err))
	}
	return sub
}

// Event is one generation outcome.
type Event struct {
	ID        uuid.UUID `db:"id"`
	Locale    string    `db:"locale"`
	Gender    string    `db:"gender"`
	Strategy  string    `db:"strategy"`
	Failed    bool      `db:"failed"`
	Attempts  int       `db:"attempts"`
	CreatedAt time.Time `db:"created_at"`
}

// NewEvent describes res as a journal row.
func NewEvent(locale string, gender names.Gender, res names.Result, now time.Time) Event {
	return Event{
		ID:        uuid.New(),
		Locale:    locale,
		Gender:    string(gender),
		Strategy:  res.Producer.String(),
		Failed:    res.Failed(),
		Attempts:  res.Attempts,
		CreatedAt: now.UTC(),
	}
}

// LocaleCount is the number of successful generations for a locale.
type LocaleCount struct {
	Locale string `db:"locale"`
	Count  int64  `db:"count"`
}

// Repo reads and writes generation_events.
type Repo struct{ DB *sqlx.DB }

// NewRepo returns a Repo over db.
func NewRepo(db *sqlx.DB) *Repo { return &Repo{DB: db} }

// Record inserts one event.
func (r *Repo) Record(ctx context.Context, e Event) error {
	const q = `
insert into generation_events (id, locale, gender, strategy, failed, attempts, created_at)
values (:id, :locale, :gender, :strategy, :failed, :attempts, :created_at)`
	if _, err := r.DB.NamedExecContext(ctx, q, e); err != nil {
		return fmt.Errorf("journal: insert event: %w", err)
	}
	return nil
}

// TopLocales returns the most generated locales, most popular first.
// Failed generations are not counted.
func (r *Repo) TopLocales(ctx context.Context, limit int) ([]LocaleCount, error) {
	if limit <= 0 {
		limit = 10
	}
	const q = `
select locale, count(*) as count
from generation_events
where not failed
group by locale
order by count desc, locale
limit $1`
	var rows []LocaleCount
	if err := r.DB.SelectContext(ctx, &rows, q, limit); err != nil {
		return nil, fmt.Errorf("journal: top locales: %w", err)
	}
	return rows, nil
}
