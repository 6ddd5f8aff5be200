package timeentry

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/AleBonatti/timetjek.test/internal/events"
	"github.com/AleBonatti/timetjek.test/internal/messaging/kafka"
	"github.com/AleBonatti/timetjek.test/internal/shared/contextutil"
	timeentryerrors "github.com/AleBonatti/timetjek.test/internal/timeentry/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const TodayEntriesKeyPrefix = "time_entries:today:"

const todayCacheTTL = time.Minute

func GetTodayEntriesKey(userID string) string {
	return TodayEntriesKeyPrefix + userID
}

//go:generate mockgen -source=timeentry_service.go -destination=mock/timeentry_service_mock.go -package=mock
type Service interface {
	ClockIn(ctx context.Context, userID string, req ClockInRequest) (TimeEntryResponse, error)
	ClockOut(ctx context.Context, userID string, req ClockOutRequest) (TimeEntryResponse, error)
	Update(ctx context.Context, actorID, entryID string, req UpdateTimeEntryRequest) (TimeEntryResponse, error)
	Delete(ctx context.Context, actorID, entryID string) error
	Today(ctx context.Context, userID string) ([]TimeEntryResponse, error)
	CurrentWeek(ctx context.Context, userID string) ([]TimeEntryResponse, error)
	CurrentMonth(ctx context.Context, userID string) ([]TimeEntryResponse, error)
	DateRange(ctx context.Context, userID string, req DateRangeRequest) ([]TimeEntryResponse, error)
}

// Config carries the pieces that vary between production and tests: the
// permitted clock window, the zone used to scope calendar days, and the
// clock itself so tests can supply fixed instants.
type Config struct {
	Window   ClockWindow
	Location *time.Location
	Now      func() time.Time
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	rdb    *redis.Client
	sf     *singleflight.Group
	window ClockWindow
	loc    *time.Location
	now    func() time.Time
	locks  sync.Map // user id -> *sync.Mutex, serializes mutations per user
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, cfg Config, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, nil, cfg, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	cfg Config,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("timeentry.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("timeentry.service")
	}
	if cfg.Window == (ClockWindow{}) {
		cfg.Window = DefaultClockWindow()
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outboxRepo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		window: cfg.Window,
		loc:    cfg.Location,
		now:    cfg.Now,
		logger: l,
	}
}

func (s *service) ClockIn(ctx context.Context, userID string, req ClockInRequest) (TimeEntryResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("clock in requested",
		zap.String("request_id", rid),
		zap.String("user_id", userID),
	)

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return TimeEntryResponse{}, timeentryerrors.ErrInvalidUserID
	}

	mu := s.userLock(userID)
	mu.Lock()
	defer mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("clock in begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return TimeEntryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	open, err := qtx.FindOpenEntry(ctx, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("clock in open entry lookup failed", zap.Error(err))
		return TimeEntryResponse{}, err
	}
	if err == nil && open != nil {
		s.logger.Warn("clock in rejected, open entry exists",
			zap.String("user_id", userID),
			zap.String("open_entry_id", open.ID.String()),
		)
		return TimeEntryResponse{}, timeentryerrors.ErrAlreadyClockedIn
	}

	now := s.now().In(s.loc)
	entry := &TimeEntry{
		ID:               uuid.New(),
		UserID:           userUUID,
		ClockIn:          now,
		ClockInLatitude:  req.Latitude,
		ClockInLongitude: req.Longitude,
	}

	if err := qtx.Create(ctx, entry); err != nil {
		s.logger.Error("clock in persist failed", zap.Error(err))
		return TimeEntryResponse{}, mapRepositoryError(err)
	}

	if err := s.queueEvent(ctx, tx, rid, events.TimeEntryClockedIn, entry, now); err != nil {
		return TimeEntryResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("clock in commit failed", zap.String("request_id", rid), zap.Error(err))
		return TimeEntryResponse{}, mapRepositoryError(err)
	}

	s.invalidateTodayCache(ctx, userID)
	s.logger.Info("clock in success",
		zap.String("request_id", rid),
		zap.String("entry_id", entry.ID.String()),
		zap.String("user_id", userID),
	)
	return mapToResponse(*entry), nil
}

func (s *service) ClockOut(ctx context.Context, userID string, req ClockOutRequest) (TimeEntryResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("clock out requested",
		zap.String("request_id", rid),
		zap.String("user_id", userID),
	)

	if _, err := uuid.Parse(userID); err != nil {
		return TimeEntryResponse{}, timeentryerrors.ErrInvalidUserID
	}

	mu := s.userLock(userID)
	mu.Lock()
	defer mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("clock out begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return TimeEntryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := s.now().In(s.loc)

	// Only today's open entry is eligible; an entry left open on a previous
	// day cannot be closed through this path.
	entry, err := qtx.FindOpenEntryForDay(ctx, userID, now)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TimeEntryResponse{}, timeentryerrors.ErrNoOpenEntry
		}
		s.logger.Error("clock out open entry lookup failed", zap.Error(err))
		return TimeEntryResponse{}, err
	}

	entry.ClockOut = &now
	if req.Latitude != nil {
		entry.ClockOutLatitude = req.Latitude
	}
	if req.Longitude != nil {
		entry.ClockOutLongitude = req.Longitude
	}

	if err := qtx.Update(ctx, entry); err != nil {
		s.logger.Error("clock out persist failed", zap.Error(err))
		return TimeEntryResponse{}, mapRepositoryError(err)
	}

	if err := s.queueEvent(ctx, tx, rid, events.TimeEntryClockedOut, entry, now); err != nil {
		return TimeEntryResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("clock out commit failed", zap.String("request_id", rid), zap.Error(err))
		return TimeEntryResponse{}, err
	}

	s.invalidateTodayCache(ctx, userID)
	s.logger.Info("clock out success",
		zap.String("request_id", rid),
		zap.String("entry_id", entry.ID.String()),
		zap.String("user_id", userID),
	)
	return mapToResponse(*entry), nil
}

func (s *service) Update(ctx context.Context, actorID, entryID string, req UpdateTimeEntryRequest) (TimeEntryResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update time entry requested",
		zap.String("request_id", rid),
		zap.String("entry_id", entryID),
		zap.String("actor_id", actorID),
	)

	if _, err := uuid.Parse(actorID); err != nil {
		return TimeEntryResponse{}, timeentryerrors.ErrInvalidUserID
	}
	if _, err := uuid.Parse(entryID); err != nil {
		return TimeEntryResponse{}, timeentryerrors.ErrInvalidEntryID
	}

	mu := s.userLock(actorID)
	mu.Lock()
	defer mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update time entry begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return TimeEntryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	entry, err := qtx.FindByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TimeEntryResponse{}, timeentryerrors.ErrEntryNotFound
		}
		return TimeEntryResponse{}, err
	}
	if entry.UserID.String() != actorID {
		s.logger.Warn("update time entry rejected, not owner",
			zap.String("entry_id", entryID),
			zap.String("actor_id", actorID),
		)
		return TimeEntryResponse{}, timeentryerrors.ErrNotOwner
	}

	newClockIn, newClockOut, err := s.parseClockTimes(req)
	if err != nil {
		return TimeEntryResponse{}, err
	}

	if err := s.validateEntryTimes(ctx, qtx, entry, newClockIn, newClockOut); err != nil {
		s.logger.Warn("update time entry validation failed",
			zap.String("entry_id", entryID),
			zap.Error(err),
		)
		return TimeEntryResponse{}, err
	}

	entry.ClockIn = newClockIn
	entry.ClockOut = newClockOut
	entry.Notes = req.Notes

	if err := qtx.Update(ctx, entry); err != nil {
		s.logger.Error("update time entry persist failed", zap.Error(err))
		mapped := mapRepositoryError(err)
		// The recency check only scans the new clock-in's day, so an edit
		// re-opening an entry can still trip the one-open-entry index when
		// another day holds an open entry. Report it as an edit conflict,
		// not a clock-in one.
		if errors.Is(mapped, timeentryerrors.ErrAlreadyClockedIn) {
			mapped = timeentryerrors.ErrAnotherEntryOpen
		}
		return TimeEntryResponse{}, mapped
	}

	if err := s.queueEvent(ctx, tx, rid, events.TimeEntryUpdated, entry, s.now().In(s.loc)); err != nil {
		return TimeEntryResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update time entry commit failed", zap.String("request_id", rid), zap.Error(err))
		return TimeEntryResponse{}, err
	}

	s.invalidateTodayCache(ctx, actorID)
	s.logger.Info("update time entry success",
		zap.String("request_id", rid),
		zap.String("entry_id", entryID),
	)
	return mapToResponse(*entry), nil
}

func (s *service) Delete(ctx context.Context, actorID, entryID string) error {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("delete time entry requested",
		zap.String("request_id", rid),
		zap.String("entry_id", entryID),
		zap.String("actor_id", actorID),
	)

	if _, err := uuid.Parse(actorID); err != nil {
		return timeentryerrors.ErrInvalidUserID
	}
	if _, err := uuid.Parse(entryID); err != nil {
		return timeentryerrors.ErrInvalidEntryID
	}

	mu := s.userLock(actorID)
	mu.Lock()
	defer mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete time entry begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	entry, err := qtx.FindByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return timeentryerrors.ErrEntryNotFound
		}
		return err
	}
	if entry.UserID.String() != actorID {
		return timeentryerrors.ErrNotOwner
	}

	// Removing an entry cannot introduce an overlap or a second open entry,
	// so no invariant re-check is needed here.
	if err := qtx.Delete(ctx, entryID); err != nil {
		s.logger.Error("delete time entry persist failed", zap.Error(err))
		return err
	}

	if err := s.queueEvent(ctx, tx, rid, events.TimeEntryDeleted, entry, s.now().In(s.loc)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete time entry commit failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}

	s.invalidateTodayCache(ctx, actorID)
	s.logger.Info("delete time entry success",
		zap.String("request_id", rid),
		zap.String("entry_id", entryID),
	)
	return nil
}

// validateEntryTimes runs the edit-time invariant checks in order, stopping
// at the first failure. Working hours come first because they need no
// repository round-trip; the recency and overlap checks are mutually
// exclusive on whether a clock-out is present.
func (s *service) validateEntryTimes(
	ctx context.Context,
	repo Repository,
	entry *TimeEntry,
	newClockIn time.Time,
	newClockOut *time.Time,
) error {
	if newClockOut != nil && !newClockOut.After(newClockIn) {
		return timeentryerrors.ErrClockOutBeforeClockIn
	}

	if !s.window.Contains(newClockIn.In(s.loc)) {
		return timeentryerrors.ErrClockInOutsideWindow
	}
	if newClockOut != nil && !s.window.Contains(newClockOut.In(s.loc)) {
		return timeentryerrors.ErrClockOutOutsideWindow
	}

	if newClockOut == nil {
		others, err := repo.FindEntriesForDay(ctx, entry.UserID.String(), newClockIn, entry.ID.String())
		if err != nil {
			return err
		}
		for i := range others {
			if others[i].ClockIn.After(newClockIn) {
				return timeentryerrors.ErrOpenEntryNotLatest
			}
		}
		return nil
	}

	closed, err := repo.FindClosedEntriesForDay(ctx, entry.UserID.String(), newClockIn, entry.ID.String())
	if err != nil {
		return err
	}
	candidate := &TimeEntry{ClockIn: newClockIn, ClockOut: newClockOut}
	for i := range closed {
		if candidate.Overlaps(&closed[i]) {
			return timeentryerrors.ErrEntryOverlaps
		}
	}
	return nil
}

func (s *service) Today(ctx context.Context, userID string) ([]TimeEntryResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, timeentryerrors.ErrInvalidUserID
	}

	cacheKey := GetTodayEntriesKey(userID)
	if s.rdb != nil {
		if val, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var cached []TimeEntryResponse
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return cached, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		from, to := s.dayBounds(s.now())
		entries, err := s.repo.FindBetween(ctx, userID, from, to)
		if err != nil {
			return nil, err
		}

		resp := mapToListResponse(entries)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, todayCacheTTL)
			}
		}

		return resp, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]TimeEntryResponse), nil
}

func (s *service) CurrentWeek(ctx context.Context, userID string) ([]TimeEntryResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, timeentryerrors.ErrInvalidUserID
	}

	now := s.now().In(s.loc)
	// Week runs Monday through Sunday.
	offset := (int(now.Weekday()) + 6) % 7
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc).AddDate(0, 0, -offset)
	end := start.AddDate(0, 0, 7)

	entries, err := s.repo.FindBetween(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(entries), nil
}

func (s *service) CurrentMonth(ctx context.Context, userID string) ([]TimeEntryResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, timeentryerrors.ErrInvalidUserID
	}

	now := s.now().In(s.loc)
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, s.loc)
	end := start.AddDate(0, 1, 0)

	entries, err := s.repo.FindBetween(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(entries), nil
}

func (s *service) DateRange(ctx context.Context, userID string, req DateRangeRequest) ([]TimeEntryResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, timeentryerrors.ErrInvalidUserID
	}

	from, err := time.ParseInLocation("2006-01-02", req.From, s.loc)
	if err != nil {
		return nil, timeentryerrors.ErrInvalidDateFormat
	}
	to, err := time.ParseInLocation("2006-01-02", req.To, s.loc)
	if err != nil {
		return nil, timeentryerrors.ErrInvalidDateFormat
	}
	if to.Before(from) {
		return nil, timeentryerrors.ErrInvalidDateRange
	}

	entries, err := s.repo.FindBetween(ctx, userID, from, to.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	return mapToListResponse(entries), nil
}

func (s *service) userLock(userID string) *sync.Mutex {
	v, _ := s.locks.LoadOrStore(userID, &sync.Mutex{})
	return v.(*sync.Mutex)
}

func (s *service) dayBounds(t time.Time) (time.Time, time.Time) {
	local := t.In(s.loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.loc)
	return start, start.AddDate(0, 0, 1)
}

// parseClockTimes reads the edit payload's timestamps. RFC 3339 is the wire
// format; a bare "2006-01-02 15:04:05" is accepted as a fallback and read in
// the configured zone.
func (s *service) parseClockTimes(req UpdateTimeEntryRequest) (time.Time, *time.Time, error) {
	newClockIn, err := s.parseClockTime(req.ClockIn)
	if err != nil {
		return time.Time{}, nil, timeentryerrors.ErrInvalidClockFormat
	}

	var newClockOut *time.Time
	if req.ClockOut != nil && *req.ClockOut != "" {
		t, err := s.parseClockTime(*req.ClockOut)
		if err != nil {
			return time.Time{}, nil, timeentryerrors.ErrInvalidClockFormat
		}
		newClockOut = &t
	}
	return newClockIn, newClockOut, nil
}

func (s *service) parseClockTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.In(s.loc), nil
	}
	return time.ParseInLocation("2006-01-02 15:04:05", value, s.loc)
}

func (s *service) queueEvent(
	ctx context.Context,
	tx *sql.Tx,
	requestID, eventType string,
	entry *TimeEntry,
	occurredAt time.Time,
) error {
	if s.outbox == nil {
		return nil
	}

	event := events.TimeEntryEvent{
		EventType:  eventType,
		RequestID:  requestID,
		EntryID:    entry.ID.String(),
		UserID:     entry.UserID.String(),
		OccurredAt: occurredAt,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal time entry event failed", zap.Error(err))
		return err
	}

	if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     requestID,
		AggregateType: "time_entry",
		AggregateID:   entry.ID.String(),
		EventType:     eventType,
		Topic:         events.TimeEntryTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("time entry outbox persist failed",
			zap.String("entry_id", entry.ID.String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (s *service) invalidateTodayCache(ctx context.Context, userID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetTodayEntriesKey(userID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate today cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}

func mapToResponse(e TimeEntry) TimeEntryResponse {
	resp := TimeEntryResponse{
		ID:                e.ID.String(),
		UserID:            e.UserID.String(),
		ClockIn:           e.ClockIn.Format(time.RFC3339),
		ClockInLatitude:   e.ClockInLatitude,
		ClockInLongitude:  e.ClockInLongitude,
		ClockOutLatitude:  e.ClockOutLatitude,
		ClockOutLongitude: e.ClockOutLongitude,
		Notes:             e.Notes,
		DurationMinutes:   e.DurationMinutes(),
		Duration:          e.FormattedDuration(),
	}
	if e.ClockOut != nil {
		v := e.ClockOut.Format(time.RFC3339)
		resp.ClockOut = &v
	}
	return resp
}

func mapToListResponse(entries []TimeEntry) []TimeEntryResponse {
	res := make([]TimeEntryResponse, len(entries))
	for i, e := range entries {
		res[i] = mapToResponse(e)
	}
	return res
}
