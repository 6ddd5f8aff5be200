package timeentry

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=timeentry_repo.go -destination=mock/timeentry_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *TimeEntry) error
	FindByID(ctx context.Context, id string) (*TimeEntry, error)
	FindOpenEntry(ctx context.Context, userID string) (*TimeEntry, error)
	FindOpenEntryForDay(ctx context.Context, userID string, day time.Time) (*TimeEntry, error)
	FindEntriesForDay(ctx context.Context, userID string, day time.Time, excludeID string) ([]TimeEntry, error)
	FindClosedEntriesForDay(ctx context.Context, userID string, day time.Time, excludeID string) ([]TimeEntry, error)
	FindBetween(ctx context.Context, userID string, from, to time.Time) ([]TimeEntry, error)
	Update(ctx context.Context, e *TimeEntry) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db  *gorm.DB
	loc *time.Location
	tx  *sql.Tx
}

func NewRepository(db *gorm.DB, loc *time.Location) Repository {
	if loc == nil {
		loc = time.UTC
	}
	return &repository{db: db, loc: loc}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, loc: r.loc, tx: tx}
}

func (r *repository) Create(ctx context.Context, e *TimeEntry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*TimeEntry, error) {
	var e TimeEntry
	err := r.db.WithContext(ctx).
		First(&e, "id = ?", id).Error
	return &e, err
}

func (r *repository) FindOpenEntry(ctx context.Context, userID string) (*TimeEntry, error) {
	var e TimeEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("clock_out IS NULL").
		Order("clock_in DESC").
		First(&e).Error
	return &e, err
}

func (r *repository) FindOpenEntryForDay(ctx context.Context, userID string, day time.Time) (*TimeEntry, error) {
	start, end := r.dayBounds(day)

	var e TimeEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("clock_in >= ? AND clock_in < ?", start, end).
		Where("clock_out IS NULL").
		Order("clock_in DESC").
		First(&e).Error
	return &e, err
}

func (r *repository) FindEntriesForDay(ctx context.Context, userID string, day time.Time, excludeID string) ([]TimeEntry, error) {
	start, end := r.dayBounds(day)

	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("clock_in >= ? AND clock_in < ?", start, end)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}

	var entries []TimeEntry
	err := q.Order("clock_in DESC").Find(&entries).Error
	return entries, err
}

func (r *repository) FindClosedEntriesForDay(ctx context.Context, userID string, day time.Time, excludeID string) ([]TimeEntry, error) {
	start, end := r.dayBounds(day)

	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("clock_in >= ? AND clock_in < ?", start, end).
		Where("clock_out IS NOT NULL")
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}

	var entries []TimeEntry
	err := q.Order("clock_in DESC").Find(&entries).Error
	return entries, err
}

func (r *repository) FindBetween(ctx context.Context, userID string, from, to time.Time) ([]TimeEntry, error) {
	var entries []TimeEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("clock_in >= ? AND clock_in < ?", from, to).
		Order("clock_in DESC").
		Find(&entries).Error
	return entries, err
}

func (r *repository) Update(ctx context.Context, e *TimeEntry) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&TimeEntry{}, "id = ?", id).Error
}

// dayBounds returns the half-open [start, end) range of the calendar day
// containing t, in the repository's configured time zone.
func (r *repository) dayBounds(t time.Time) (time.Time, time.Time) {
	local := t.In(r.loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, r.loc)
	return start, start.AddDate(0, 0, 1)
}
