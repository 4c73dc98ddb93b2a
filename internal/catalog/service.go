package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/aniview/aniview/internal/catalog/jikan"
	"github.com/aniview/aniview/internal/config"
)

// ErrRemoteFetch is returned when the upstream catalog call does not
// succeed, for transport failures and non-success statuses alike. No retry
// or backoff is applied here; that is the caller's policy.
var ErrRemoteFetch = errors.New("remote catalog fetch failed")

// RemoteClient is the upstream catalog API surface the service consumes.
type RemoteClient interface {
	ListAnime(ctx context.Context, p jikan.ListParams) (*jikan.AnimeListResponse, error)
	GetAnimeFull(ctx context.Context, id int) (*jikan.Anime, error)
	GetAnimeCharacters(ctx context.Context, id int) ([]jikan.CharacterEntry, error)
}

// SettingsReader exposes the display settings the catalog service consults.
type SettingsReader interface {
	ShowOnlyJapanese(ctx context.Context) bool
}

// Service fetches and normalizes catalog data from the remote source and
// applies the locale filter. Every call re-fetches; there is no cache.
type Service struct {
	client   RemoteClient
	settings SettingsReader
	cfg      config.CatalogConfig
	logger   zerolog.Logger
}

// NewService creates a new catalog service.
func NewService(client RemoteClient, settings SettingsReader, cfg config.CatalogConfig, logger zerolog.Logger) *Service {
	return &Service{
		client:   client,
		settings: settings,
		cfg:      cfg,
		logger:   logger.With().Str("component", "catalog").Logger(),
	}
}

// ListByGenre fetches one listing page, optionally restricted to a genre.
// genreID 0 means no restriction; an unknown sort falls back to popularity.
// The result is normalized, locale-filtered when the setting is enabled,
// and truncated to the display limit.
func (s *Service) ListByGenre(ctx context.Context, genreID int, sort SortType, page int) ([]Anime, error) {
	if page < 1 {
		page = 1
	}

	response, err := s.client.ListAnime(ctx, jikan.ListParams{
		Page:    page,
		Limit:   s.cfg.PageSize,
		GenreID: genreID,
		Sort:    jikan.SortOrder(sort),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRemoteFetch, err)
	}

	return s.buildList(ctx, response.Data), nil
}

// Search fetches one page of text-search results. The query is passed
// verbatim to the upstream endpoint; an empty query yields the upstream
// default listing.
func (s *Service) Search(ctx context.Context, query string, page int) ([]Anime, error) {
	if page < 1 {
		page = 1
	}

	response, err := s.client.ListAnime(ctx, jikan.ListParams{
		Page:  page,
		Limit: s.cfg.PageSize,
		Query: query,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRemoteFetch, err)
	}

	return s.buildList(ctx, response.Data), nil
}

// GetDetails fetches the full record and the character/cast record
// concurrently and fails if either fetch fails. The cast list is reduced to
// one voice actor per character in the configured spoken-language track,
// truncated to the first six entries in upstream order.
func (s *Service) GetDetails(ctx context.Context, id int) (*AnimeDetail, error) {
	var (
		record     *jikan.Anime
		characters []jikan.CharacterEntry
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		record, err = s.client.GetAnimeFull(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		characters, err = s.client.GetAnimeCharacters(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRemoteFetch, err)
	}

	detail := &AnimeDetail{
		Anime:         normalizeAnime(*record),
		Synopsis:      record.Synopsis,
		ContentRating: record.Rating,
		Status:        normalizeStatus(record.Status),
		Episodes:      record.Episodes,
		Duration:      record.Duration,
		Aired: AiredRange{
			From:   record.Aired.From,
			To:     record.Aired.To,
			String: record.Aired.String,
		},
		VoiceActors: s.castCredits(characters),
	}
	if detail.Synopsis == "" {
		detail.Synopsis = synopsisPlaceholder
	}

	return detail, nil
}

// buildList normalizes a fetched page, applies the locale filter when the
// setting is enabled, and truncates to the display limit. The setting is
// read once at the start; a change mid-flight does not affect this call.
func (s *Service) buildList(ctx context.Context, raws []jikan.Anime) []Anime {
	japaneseOnly := s.settings.ShowOnlyJapanese(ctx)

	items := make([]Anime, 0, len(raws))
	for _, raw := range raws {
		if japaneseOnly && !IsJapaneseProduction(raw) {
			continue
		}
		items = append(items, normalizeAnime(raw))
	}

	if len(items) > s.cfg.DisplayLimit {
		items = items[:s.cfg.DisplayLimit]
	}

	s.logger.Debug().
		Int("fetched", len(raws)).
		Int("returned", len(items)).
		Bool("japaneseOnly", japaneseOnly).
		Msg("Catalog listing built")

	return items
}

// castCredits filters the cast to characters with at least one credited
// voice actor in the configured language, keeps the first matching actor
// per character, and caps the list at six entries.
func (s *Service) castCredits(characters []jikan.CharacterEntry) []VoiceActorCredit {
	const castLimit = 6

	credits := make([]VoiceActorCredit, 0, castLimit)
	for _, entry := range characters {
		actor, ok := firstActorForLanguage(entry.VoiceActors, s.cfg.CastLanguage)
		if !ok {
			continue
		}

		credits = append(credits, VoiceActorCredit{
			Person: CreditedPerson{
				MalID:    actor.Person.MalID,
				Name:     actor.Person.Name,
				ImageURL: actor.Person.Images.JPG.ImageURL,
			},
			Character: CreditedPerson{
				MalID:    entry.Character.MalID,
				Name:     entry.Character.Name,
				ImageURL: entry.Character.Images.JPG.ImageURL,
			},
		})
		if len(credits) == castLimit {
			break
		}
	}

	return credits
}

// firstActorForLanguage returns the first voice actor credited for the
// given spoken-language track.
func firstActorForLanguage(actors []jikan.VoiceActor, language string) (jikan.VoiceActor, bool) {
	for _, actor := range actors {
		if actor.Language == language {
			return actor, true
		}
	}
	return jikan.VoiceActor{}, false
}
