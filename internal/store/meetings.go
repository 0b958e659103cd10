package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"meetscribe-go/internal/logger"
)

// ErrNotFound is returned when a meeting identifier resolves to no row.
var ErrNotFound = errors.New("meeting not found")

// Meeting is the persistence target of the pipeline. Transcript, summary
// and action items are nullable until a recording has been processed.
type Meeting struct {
	ID          int64
	SpaceID     int64
	Title       string
	Transcript  *string
	Summary     *string
	ActionItems *string
	UpdatedAt   time.Time
}

// Store wraps the Postgres pool for the meetings and space_members tables.
type Store struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// Connect opens the pool and pings it with exponential backoff, so a
// database that is still coming up does not kill the service at boot.
func Connect(ctx context.Context, databaseURL string, log *logger.Logger) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 30 * time.Second
	if err := backoff.Retry(func() error { return pool.Ping(ctx) }, backoff.WithContext(bo, ctx)); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	log.WithField("component", "store").Info("database connection established")
	return &Store{pool: pool, log: log}, nil
}

func NewWithPool(pool *pgxpool.Pool, log *logger.Logger) *Store {
	return &Store{pool: pool, log: log}
}

func (s *Store) Close() {
	s.pool.Close()
}

// Exists reports whether the meeting row is present. The pipeline checks
// this before any processing starts.
func (s *Store) Exists(ctx context.Context, meetingID int64) (bool, error) {
	var found bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM "meetings" WHERE "id" = $1)`, meetingID).Scan(&found)
	if err != nil {
		return false, fmt.Errorf("meeting lookup: %w", err)
	}
	return found, nil
}

// SaveTranscript overwrites the stored transcript, last write wins.
func (s *Store) SaveTranscript(ctx context.Context, meetingID int64, transcript string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE "meetings" SET "transcript" = $1, "updatedAt" = NOW() WHERE "id" = $2`,
		transcript, meetingID)
	if err != nil {
		return fmt.Errorf("save transcript: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("save transcript: %w", ErrNotFound)
	}
	return nil
}

// SaveArtifacts writes only the halves that produced a new value; a nil
// half leaves the previously stored column untouched.
func (s *Store) SaveArtifacts(ctx context.Context, meetingID int64, summary, actionItems *string) error {
	query, args := artifactsUpdate(meetingID, summary, actionItems)
	if query == "" {
		return nil
	}
	tag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("save artifacts: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("save artifacts: %w", ErrNotFound)
	}
	return nil
}

// artifactsUpdate builds the partial UPDATE for whichever halves are
// present. Returns an empty query when there is nothing to write.
func artifactsUpdate(meetingID int64, summary, actionItems *string) (string, []interface{}) {
	set := ""
	args := []interface{}{}
	if summary != nil {
		args = append(args, *summary)
		set += fmt.Sprintf(`"summary" = $%d, `, len(args))
	}
	if actionItems != nil {
		args = append(args, *actionItems)
		set += fmt.Sprintf(`"actionItems" = $%d, `, len(args))
	}
	if len(args) == 0 {
		return "", nil
	}
	args = append(args, meetingID)
	query := fmt.Sprintf(`UPDATE "meetings" SET %s"updatedAt" = NOW() WHERE "id" = $%d`, set, len(args))
	return query, args
}

// Get loads one meeting row, used by the re-summarize and report paths.
func (s *Store) Get(ctx context.Context, meetingID int64) (*Meeting, error) {
	m := &Meeting{}
	err := s.pool.QueryRow(ctx,
		`SELECT "id", "spaceId", "title", "transcript", "summary", "actionItems", "updatedAt"
		 FROM "meetings" WHERE "id" = $1`, meetingID).
		Scan(&m.ID, &m.SpaceID, &m.Title, &m.Transcript, &m.Summary, &m.ActionItems, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load meeting: %w", err)
	}
	return m, nil
}

// IsMember reports whether the user belongs to the space, admins included.
func (s *Store) IsMember(ctx context.Context, spaceID, userID int64) (bool, error) {
	var member bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM "space_members" WHERE "spaceId" = $1 AND "userId" = $2
			UNION
			SELECT 1 FROM "spaces" WHERE "id" = $1 AND "adminId" = $2
		)`, spaceID, userID).Scan(&member)
	if err != nil {
		return false, fmt.Errorf("membership lookup: %w", err)
	}
	return member, nil
}
