package settings

import (
	"context"
	"database/sql"
	"strconv"

	"github.com/rs/zerolog"
)

const boolTrue = "true"

// Setting keys.
const (
	KeyShowOnlyJapanese = "display.show_only_japanese"
)

// DisplaySettings is the user's display preference set.
type DisplaySettings struct {
	ShowOnlyJapanese bool `json:"showOnlyJapanese"`
}

// DefaultDisplaySettings returns the defaults used when no row exists or
// a stored value does not parse.
func DefaultDisplaySettings() DisplaySettings {
	return DisplaySettings{
		ShowOnlyJapanese: false,
	}
}

// Service persists user display settings in the settings table. Reads are
// synchronous so callers observe a toggle on their next operation; a change
// never affects an in-flight fetch.
type Service struct {
	db     *sql.DB
	logger zerolog.Logger
}

// NewService creates a new settings service.
func NewService(db *sql.DB, logger zerolog.Logger) *Service {
	return &Service{
		db:     db,
		logger: logger.With().Str("component", "settings").Logger(),
	}
}

// ShowOnlyJapanese returns the locale-filter toggle, defaulting to false
// on a missing or unparsable row.
func (s *Service) ShowOnlyJapanese(ctx context.Context) bool {
	val, err := s.getString(ctx, KeyShowOnlyJapanese)
	if err != nil {
		return DefaultDisplaySettings().ShowOnlyJapanese
	}
	return val == boolTrue
}

// SetShowOnlyJapanese updates the locale-filter toggle.
func (s *Service) SetShowOnlyJapanese(ctx context.Context, value bool) error {
	if err := s.setString(ctx, KeyShowOnlyJapanese, strconv.FormatBool(value)); err != nil {
		return err
	}
	s.logger.Info().Bool("showOnlyJapanese", value).Msg("Display settings updated")
	return nil
}

// GetDisplaySettings returns the full display preference set.
func (s *Service) GetDisplaySettings(ctx context.Context) DisplaySettings {
	return DisplaySettings{
		ShowOnlyJapanese: s.ShowOnlyJapanese(ctx),
	}
}

// SetDisplaySettings updates the full display preference set.
func (s *Service) SetDisplaySettings(ctx context.Context, settings DisplaySettings) error {
	return s.SetShowOnlyJapanese(ctx, settings.ShowOnlyJapanese)
}

func (s *Service) getString(ctx context.Context, key string) (string, error) {
	var value string
	if err := s.db.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", key).Scan(&value); err != nil {
		return "", err
	}
	return value, nil
}

func (s *Service) setString(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at`,
		key, value)
	return err
}
