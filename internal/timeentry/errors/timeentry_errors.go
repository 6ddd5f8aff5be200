package timeentryerrors

import (
	"net/http"

	"github.com/AleBonatti/timetjek.test/internal/shared/apperror"
)

var (
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid user id",
		http.StatusBadRequest,
	)
	ErrInvalidEntryID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid time entry id",
		http.StatusBadRequest,
	)
	ErrAlreadyClockedIn = apperror.New(
		apperror.CodeConflict,
		"You already have an open time entry",
		http.StatusConflict,
	)
	ErrAnotherEntryOpen = apperror.New(
		apperror.CodeConflict,
		"Another time entry is already open",
		http.StatusConflict,
	)
	ErrNoOpenEntry = apperror.New(
		apperror.CodeNotFound,
		"No open time entry found",
		http.StatusNotFound,
	)
	ErrEntryNotFound = apperror.New(
		apperror.CodeNotFound,
		"Time entry not found",
		http.StatusNotFound,
	)
	ErrNotOwner = apperror.New(
		apperror.CodeForbidden,
		"You do not own this time entry",
		http.StatusForbidden,
	)
	ErrInvalidClockFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid timestamp format, expected RFC 3339",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)

	ErrClockOutBeforeClockIn = apperror.NewValidation(
		"clock_out",
		"Clock out must be after clock in",
	)
	ErrClockInOutsideWindow = apperror.NewValidation(
		"clock_in",
		"Clock in time must be between 6:00 AM and 11:00 PM",
	)
	ErrClockOutOutsideWindow = apperror.NewValidation(
		"clock_out",
		"Clock out time must be between 6:00 AM and 11:00 PM",
	)
	ErrOpenEntryNotLatest = apperror.NewValidation(
		"clock_out",
		"Only the latest entry for a day can be left open",
	)
	ErrEntryOverlaps = apperror.NewValidation(
		"clock_out",
		"This time entry overlaps with another entry for the same day",
	)
	ErrInvalidDateRange = apperror.NewValidation(
		"to",
		"to must be after or equal from",
	)
)
