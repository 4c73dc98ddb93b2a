package library

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aniview/aniview/internal/catalog"
)

var (
	// ErrScoreOutOfRange is returned when a rating score falls outside 0-10.
	ErrScoreOutOfRange = errors.New("rating score out of range")
	// ErrEmptyRating is returned when a rating carries no criterion scores.
	ErrEmptyRating = errors.New("rating has no scores")
)

// List table names. Both tables share the same entry schema.
const (
	tableWatchlist = "watchlist"
	tableWatched   = "watched"
)

// Service maintains the user's watchlist, watched list and ratings. All
// mutations are write-through: the SQLite row is the durable state, there is
// no separately flushed in-memory copy. The single-writer connection makes
// operations effectively serialized without extra locking.
type Service struct {
	db     *sql.DB
	logger zerolog.Logger
}

// NewService creates a new library service.
func NewService(db *sql.DB, logger zerolog.Logger) *Service {
	return &Service{
		db:     db,
		logger: logger.With().Str("component", "library").Logger(),
	}
}

// AddToWatchlist appends an item to the watchlist. No-op when the catalog
// identifier is already present; the existing snapshot is kept.
func (s *Service) AddToWatchlist(ctx context.Context, item catalog.Anime) error {
	return s.insertEntry(ctx, s.db, tableWatchlist, item)
}

// RemoveFromWatchlist removes the entry for id if present; no-op otherwise.
func (s *Service) RemoveFromWatchlist(ctx context.Context, id int) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM watchlist WHERE mal_id = ?", id)
	return err
}

// IsInWatchlist reports whether id is on the watchlist.
func (s *Service) IsInWatchlist(ctx context.Context, id int) (bool, error) {
	return s.entryExists(ctx, tableWatchlist, id)
}

// Watchlist returns the watchlist entries in insertion order.
func (s *Service) Watchlist(ctx context.Context) ([]Entry, error) {
	return s.listEntries(ctx, tableWatchlist)
}

// AddToWatchedList appends an item to the watched list. No-op when already
// present; otherwise the same identifier is removed from the watchlist in
// the same transaction, keeping an id in at most one of the two lists.
func (s *Service) AddToWatchedList(ctx context.Context, item catalog.Anime) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	exists, err := s.entryExistsIn(ctx, tx, tableWatched, item.MalID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM watchlist WHERE mal_id = ?", item.MalID); err != nil {
		return err
	}
	if err := s.insertEntry(ctx, tx, tableWatched, item); err != nil {
		return err
	}

	return tx.Commit()
}

// RemoveFromWatchedList removes the entry for id if present; no-op otherwise.
func (s *Service) RemoveFromWatchedList(ctx context.Context, id int) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM watched WHERE mal_id = ?", id)
	return err
}

// IsInWatchedList reports whether id is on the watched list.
func (s *Service) IsInWatchedList(ctx context.Context, id int) (bool, error) {
	return s.entryExists(ctx, tableWatched, id)
}

// WatchedList returns the watched entries in insertion order.
func (s *Service) WatchedList(ctx context.Context) ([]Entry, error) {
	return s.listEntries(ctx, tableWatched)
}

// AddRating stores a rating for one title, replacing any existing rating
// for the same catalog identifier. Scores must be within 0-10 inclusive.
func (s *Service) AddRating(ctx context.Context, userRef string, input RatingInput) (*Rating, error) {
	if len(input.Scores) == 0 {
		return nil, ErrEmptyRating
	}
	for criterion, score := range input.Scores {
		if score < scoreMin || score > scoreMax {
			return nil, fmt.Errorf("%w: %s=%d", ErrScoreOutOfRange, criterion, score)
		}
	}

	scoresJSON, err := json.Marshal(input.Scores)
	if err != nil {
		return nil, err
	}

	createdAt := time.Now().UTC()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO ratings (mal_id, user_ref, scores, comment, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(mal_id) DO UPDATE SET
			user_ref = excluded.user_ref,
			scores = excluded.scores,
			comment = excluded.comment,
			created_at = excluded.created_at`,
		input.MalID, userRef, string(scoresJSON), input.Comment, createdAt)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Int("malId", input.MalID).
		Str("userRef", userRef).
		Msg("Rating stored")

	return &Rating{
		MalID:     input.MalID,
		UserRef:   userRef,
		Scores:    input.Scores,
		Comment:   input.Comment,
		CreatedAt: createdAt,
	}, nil
}

// GetRating returns the rating for id, or nil when none exists.
func (s *Service) GetRating(ctx context.Context, id int) (*Rating, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT mal_id, user_ref, scores, comment, created_at FROM ratings WHERE mal_id = ?", id)

	rating, err := scanRating(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rating, nil
}

// Ratings returns all stored ratings, newest first.
func (s *Service) Ratings(ctx context.Context) ([]Rating, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT mal_id, user_ref, scores, comment, created_at FROM ratings ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ratings := make([]Rating, 0)
	for rows.Next() {
		rating, err := scanRating(rows)
		if err != nil {
			return nil, err
		}
		ratings = append(ratings, *rating)
	}
	return ratings, rows.Err()
}

// execer covers *sql.DB and *sql.Tx for the shared entry helpers.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Service) insertEntry(ctx context.Context, ex execer, table string, item catalog.Anime) error {
	genresJSON, err := json.Marshal(item.Genres)
	if err != nil {
		return err
	}
	studiosJSON, err := json.Marshal(item.Studios)
	if err != nil {
		return err
	}

	var year sql.NullInt64
	if item.Year != nil {
		year = sql.NullInt64{Int64: int64(*item.Year), Valid: true}
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (mal_id, list_key, title, image_url, small_image_url, large_image_url,
			score, genres, year, season, studios, added_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(mal_id) DO NOTHING`, table)

	_, err = ex.ExecContext(ctx, query,
		item.MalID, item.ListKey, item.Title,
		item.Images.ImageURL, item.Images.SmallImageURL, item.Images.LargeImageURL,
		item.Score, string(genresJSON), year, item.Season, string(studiosJSON),
		time.Now().UTC())
	return err
}

func (s *Service) entryExists(ctx context.Context, table string, id int) (bool, error) {
	return s.entryExistsIn(ctx, s.db, table, id)
}

func (s *Service) entryExistsIn(ctx context.Context, ex execer, table string, id int) (bool, error) {
	var one int
	query := fmt.Sprintf("SELECT 1 FROM %s WHERE mal_id = ?", table)
	err := ex.QueryRowContext(ctx, query, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) listEntries(ctx context.Context, table string) ([]Entry, error) {
	query := fmt.Sprintf(`
		SELECT mal_id, list_key, title, image_url, small_image_url, large_image_url,
			score, genres, year, season, studios, added_at
		FROM %s ORDER BY id`, table)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]Entry, 0)
	for rows.Next() {
		var (
			entry       Entry
			genresJSON  string
			studiosJSON string
			year        sql.NullInt64
		)
		if err := rows.Scan(
			&entry.Item.MalID, &entry.Item.ListKey, &entry.Item.Title,
			&entry.Item.Images.ImageURL, &entry.Item.Images.SmallImageURL, &entry.Item.Images.LargeImageURL,
			&entry.Item.Score, &genresJSON, &year, &entry.Item.Season, &studiosJSON,
			&entry.AddedAt,
		); err != nil {
			return nil, err
		}

		if err := json.Unmarshal([]byte(genresJSON), &entry.Item.Genres); err != nil {
			return nil, fmt.Errorf("failed to decode genres for %d: %w", entry.Item.MalID, err)
		}
		if err := json.Unmarshal([]byte(studiosJSON), &entry.Item.Studios); err != nil {
			return nil, fmt.Errorf("failed to decode studios for %d: %w", entry.Item.MalID, err)
		}
		if year.Valid {
			y := int(year.Int64)
			entry.Item.Year = &y
		}

		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRating(row rowScanner) (*Rating, error) {
	var (
		rating     Rating
		scoresJSON string
	)
	if err := row.Scan(&rating.MalID, &rating.UserRef, &scoresJSON, &rating.Comment, &rating.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(scoresJSON), &rating.Scores); err != nil {
		return nil, fmt.Errorf("failed to decode scores for %d: %w", rating.MalID, err)
	}
	return &rating, nil
}
