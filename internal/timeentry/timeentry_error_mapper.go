package timeentry

import (
	"errors"
	"strings"

	timeentryerrors "github.com/AleBonatti/timetjek.test/internal/timeentry/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// The partial unique index enforcing one open entry per user at the storage
// layer; a violation means a concurrent clock-in won the race.
const openEntryConstraint = "uq_time_entries_one_open"

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return timeentryerrors.ErrEntryNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == openEntryConstraint {
			return timeentryerrors.ErrAlreadyClockedIn
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, openEntryConstraint) {
		return timeentryerrors.ErrAlreadyClockedIn
	}

	return err
}
