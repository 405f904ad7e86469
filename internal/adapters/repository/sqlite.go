package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/eventscore/rankd/internal/domain/model"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store on an embedded SQLite database. It is the
// durable backend; the schema mirrors the domain model one table per entity,
// with the (participant, activity) uniqueness of records enforced by the
// database itself.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path and runs the migration.
// Pass ":memory:" for an ephemeral database.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// modernc sqlite serializes writes internally; a single connection avoids
	// SQLITE_BUSY on concurrent upserts.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) migrate(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'DRAFT',
		created_at DATETIME NOT NULL
	);
	CREATE TABLE IF NOT EXISTS groups (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		event_id INTEGER NOT NULL REFERENCES events(id),
		name TEXT NOT NULL,
		identifier TEXT NOT NULL DEFAULT ''
	);
	CREATE TABLE IF NOT EXISTS participants (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		group_id INTEGER NOT NULL REFERENCES groups(id),
		display_name TEXT NOT NULL,
		external_id TEXT,
		gender TEXT,
		age INTEGER
	);
	CREATE TABLE IF NOT EXISTS age_categories (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		event_id INTEGER NOT NULL REFERENCES events(id),
		name TEXT NOT NULL,
		min_age INTEGER NOT NULL DEFAULT 0,
		max_age INTEGER NOT NULL DEFAULT 999
	);
	CREATE TABLE IF NOT EXISTS activities (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		event_id INTEGER NOT NULL REFERENCES events(id),
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		evaluation_type TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);
	CREATE TABLE IF NOT EXISTS records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		participant_id INTEGER NOT NULL REFERENCES participants(id),
		activity_id INTEGER NOT NULL REFERENCES activities(id),
		value_raw TEXT NOT NULL,
		evaluator_id INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL,
		UNIQUE(participant_id, activity_id)
	);
	CREATE INDEX IF NOT EXISTS idx_groups_event ON groups(event_id);
	CREATE INDEX IF NOT EXISTS idx_participants_group ON participants(group_id);
	CREATE INDEX IF NOT EXISTS idx_age_categories_event ON age_categories(event_id);
	CREATE INDEX IF NOT EXISTS idx_activities_event ON activities(event_id);
	CREATE INDEX IF NOT EXISTS idx_records_activity ON records(activity_id);`
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

// CreateEvent persists a new event.
func (s *SQLiteStore) CreateEvent(ctx context.Context, ev model.Event) (model.Event, error) {
	if ev.Status == "" {
		ev.Status = model.StatusDraft
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO events (name, status, created_at) VALUES (?, ?, ?)`,
		ev.Name, string(ev.Status), ev.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return model.Event{}, fmt.Errorf("insert event: %w", err)
	}
	ev.ID, err = res.LastInsertId()
	if err != nil {
		return model.Event{}, err
	}
	return ev, nil
}

// CreateGroup persists a new group under an existing event.
func (s *SQLiteStore) CreateGroup(ctx context.Context, g model.Group) (model.Group, error) {
	if err := s.exists(ctx, "events", g.EventID, ErrEventNotFound); err != nil {
		return model.Group{}, err
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO groups (event_id, name, identifier) VALUES (?, ?, ?)`,
		g.EventID, g.Name, g.Identifier,
	)
	if err != nil {
		return model.Group{}, fmt.Errorf("insert group: %w", err)
	}
	g.ID, err = res.LastInsertId()
	if err != nil {
		return model.Group{}, err
	}
	return g, nil
}

// CreateParticipant persists a new participant under an existing group.
func (s *SQLiteStore) CreateParticipant(ctx context.Context, p model.Participant) (model.Participant, error) {
	if err := s.exists(ctx, "groups", p.GroupID, ErrGroupNotFound); err != nil {
		return model.Participant{}, err
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO participants (group_id, display_name, external_id, gender, age) VALUES (?, ?, ?, ?, ?)`,
		p.GroupID, p.DisplayName, nullString(p.ExternalID), nullStringPtr(p.Gender), nullIntPtr(p.Age),
	)
	if err != nil {
		return model.Participant{}, fmt.Errorf("insert participant: %w", err)
	}
	p.ID, err = res.LastInsertId()
	if err != nil {
		return model.Participant{}, err
	}
	return p, nil
}

// CreateAgeCategory persists a new age category under an existing event.
func (s *SQLiteStore) CreateAgeCategory(ctx context.Context, c model.AgeCategory) (model.AgeCategory, error) {
	if err := s.exists(ctx, "events", c.EventID, ErrEventNotFound); err != nil {
		return model.AgeCategory{}, err
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO age_categories (event_id, name, min_age, max_age) VALUES (?, ?, ?, ?)`,
		c.EventID, c.Name, c.MinAge, c.MaxAge,
	)
	if err != nil {
		return model.AgeCategory{}, fmt.Errorf("insert age category: %w", err)
	}
	c.ID, err = res.LastInsertId()
	if err != nil {
		return model.AgeCategory{}, err
	}
	return c, nil
}

// CreateActivity persists a new activity under an existing event.
func (s *SQLiteStore) CreateActivity(ctx context.Context, a model.Activity) (model.Activity, error) {
	if err := s.exists(ctx, "events", a.EventID, ErrEventNotFound); err != nil {
		return model.Activity{}, err
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO activities (event_id, name, description, evaluation_type, created_at) VALUES (?, ?, ?, ?, ?)`,
		a.EventID, a.Name, a.Description, string(a.EvaluationType), a.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return model.Activity{}, fmt.Errorf("insert activity: %w", err)
	}
	a.ID, err = res.LastInsertId()
	if err != nil {
		return model.Activity{}, err
	}
	return a, nil
}

// Event returns the event with the given id.
func (s *SQLiteStore) Event(ctx context.Context, id int64) (model.Event, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, status, created_at FROM events WHERE id = ?`, id)
	var (
		ev        model.Event
		status    string
		createdAt string
	)
	if err := row.Scan(&ev.ID, &ev.Name, &status, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Event{}, ErrEventNotFound
		}
		return model.Event{}, err
	}
	ev.Status = model.EventStatus(status)
	ev.CreatedAt = parseTime(createdAt)
	return ev, nil
}

// Activity returns the activity with the given id.
func (s *SQLiteStore) Activity(ctx context.Context, id int64) (model.Activity, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, event_id, name, description, evaluation_type, created_at FROM activities WHERE id = ?`, id)
	a, err := scanActivity(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Activity{}, ErrActivityNotFound
		}
		return model.Activity{}, err
	}
	return a, nil
}

// AgeCategories returns the event's age categories in stored order.
func (s *SQLiteStore) AgeCategories(ctx context.Context, eventID int64) ([]model.AgeCategory, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, event_id, name, min_age, max_age FROM age_categories WHERE event_id = ? ORDER BY id`, eventID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.AgeCategory
	for rows.Next() {
		var c model.AgeCategory
		if err := rows.Scan(&c.ID, &c.EventID, &c.Name, &c.MinAge, &c.MaxAge); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Activities returns the event's activities in stored order.
func (s *SQLiteStore) Activities(ctx context.Context, eventID int64) ([]model.Activity, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, event_id, name, description, evaluation_type, created_at FROM activities WHERE event_id = ? ORDER BY id`, eventID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.Activity
	for rows.Next() {
		a, err := scanActivity(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Roster returns every participant of the event keyed by id, joined with
// group names in a single query.
func (s *SQLiteStore) Roster(ctx context.Context, eventID int64) (model.Roster, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.group_id, p.display_name, p.external_id, p.gender, p.age, g.name
		FROM participants p
		JOIN groups g ON g.id = p.group_id
		WHERE g.event_id = ?`, eventID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	roster := make(model.Roster)
	for rows.Next() {
		var (
			p          model.Participant
			externalID sql.NullString
			gender     sql.NullString
			age        sql.NullInt64
			groupName  string
		)
		if err := rows.Scan(&p.ID, &p.GroupID, &p.DisplayName, &externalID, &gender, &age, &groupName); err != nil {
			return nil, err
		}
		p.ExternalID = externalID.String
		if gender.Valid {
			g := gender.String
			p.Gender = &g
		}
		if age.Valid {
			a := int(age.Int64)
			p.Age = &a
		}
		roster[p.ID] = model.RosterEntry{Participant: p, GroupName: groupName}
	}
	return roster, rows.Err()
}

// EventRecords returns all score records of the event grouped by activity id.
func (s *SQLiteStore) EventRecords(ctx context.Context, eventID int64) (map[int64][]model.ScoreRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.participant_id, r.activity_id, r.value_raw, r.evaluator_id, r.created_at
		FROM records r
		JOIN activities a ON a.id = r.activity_id
		WHERE a.event_id = ? ORDER BY r.id`, eventID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := make(map[int64][]model.ScoreRecord)
	for rows.Next() {
		rec, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		out[rec.ActivityID] = append(out[rec.ActivityID], rec)
	}
	return out, rows.Err()
}

// ActivityRecords returns all score records for one activity.
func (s *SQLiteStore) ActivityRecords(ctx context.Context, activityID int64) ([]model.ScoreRecord, error) {
	if err := s.exists(ctx, "activities", activityID, ErrActivityNotFound); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, participant_id, activity_id, value_raw, evaluator_id, created_at
		FROM records WHERE activity_id = ? ORDER BY id`, activityID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.ScoreRecord
	for rows.Next() {
		rec, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// UpsertRecord inserts or overwrites the record for the (participant, activity) pair.
func (s *SQLiteStore) UpsertRecord(ctx context.Context, rec model.ScoreRecord) (model.ScoreRecord, error) {
	if err := s.exists(ctx, "activities", rec.ActivityID, ErrActivityNotFound); err != nil {
		return model.ScoreRecord{}, err
	}
	if err := s.exists(ctx, "participants", rec.ParticipantID, ErrParticipantNotFound); err != nil {
		return model.ScoreRecord{}, err
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO records (participant_id, activity_id, value_raw, evaluator_id, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(participant_id, activity_id)
		DO UPDATE SET value_raw = excluded.value_raw, evaluator_id = excluded.evaluator_id`,
		rec.ParticipantID, rec.ActivityID, rec.ValueRaw, rec.EvaluatorID, rec.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return model.ScoreRecord{}, fmt.Errorf("upsert record: %w", err)
	}
	row := s.db.QueryRowContext(ctx, `
		SELECT id, participant_id, activity_id, value_raw, evaluator_id, created_at
		FROM records WHERE participant_id = ? AND activity_id = ?`,
		rec.ParticipantID, rec.ActivityID)
	return scanRecord(row.Scan)
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) exists(ctx context.Context, table string, id int64, missing error) error {
	row := s.db.QueryRowContext(ctx, `SELECT 1 FROM `+table+` WHERE id = ?`, id)
	var one int
	if err := row.Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return missing
		}
		return err
	}
	return nil
}

func scanActivity(scan func(dest ...any) error) (model.Activity, error) {
	var (
		a         model.Activity
		evalType  string
		createdAt string
	)
	if err := scan(&a.ID, &a.EventID, &a.Name, &a.Description, &evalType, &createdAt); err != nil {
		return model.Activity{}, err
	}
	a.EvaluationType = model.EvaluationType(evalType)
	a.CreatedAt = parseTime(createdAt)
	return a, nil
}

func scanRecord(scan func(dest ...any) error) (model.ScoreRecord, error) {
	var (
		rec       model.ScoreRecord
		createdAt string
	)
	if err := scan(&rec.ID, &rec.ParticipantID, &rec.ActivityID, &rec.ValueRaw, &rec.EvaluatorID, &createdAt); err != nil {
		return model.ScoreRecord{}, err
	}
	rec.CreatedAt = parseTime(createdAt)
	return rec, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullStringPtr(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullIntPtr(i *int) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*i), Valid: true}
}

func parseTime(value string) time.Time {
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t
	}
	return time.Time{}
}
