package catalog

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/aniview/aniview/internal/catalog/jikan"
	"github.com/aniview/aniview/internal/config"
)

type fakeRemote struct {
	listParams jikan.ListParams
	listResp   *jikan.AnimeListResponse
	listErr    error

	full    *jikan.Anime
	fullErr error

	characters []jikan.CharacterEntry
	charsErr   error
}

func (f *fakeRemote) ListAnime(ctx context.Context, p jikan.ListParams) (*jikan.AnimeListResponse, error) {
	f.listParams = p
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listResp, nil
}

func (f *fakeRemote) GetAnimeFull(ctx context.Context, id int) (*jikan.Anime, error) {
	if f.fullErr != nil {
		return nil, f.fullErr
	}
	return f.full, nil
}

func (f *fakeRemote) GetAnimeCharacters(ctx context.Context, id int) ([]jikan.CharacterEntry, error) {
	if f.charsErr != nil {
		return nil, f.charsErr
	}
	return f.characters, nil
}

type fakeSettings struct {
	japaneseOnly bool
}

func (f fakeSettings) ShowOnlyJapanese(ctx context.Context) bool {
	return f.japaneseOnly
}

func testCatalogConfig() config.CatalogConfig {
	return config.CatalogConfig{
		BaseURL:      "http://invalid.test",
		Timeout:      5,
		PageSize:     24,
		DisplayLimit: 10,
		CastLanguage: "Japanese",
	}
}

func newTestService(remote *fakeRemote, japaneseOnly bool) *Service {
	return NewService(remote, fakeSettings{japaneseOnly: japaneseOnly}, testCatalogConfig(), zerolog.Nop())
}

func rawAnime(id int) jikan.Anime {
	return jikan.Anime{
		MalID: id,
		Title: fmt.Sprintf("Title %d", id),
		Genres: []jikan.MalEntity{
			{MalID: 1, Name: "Action"},
		},
	}
}

func TestService_ListByGenre_QueryConstruction(t *testing.T) {
	remote := &fakeRemote{listResp: &jikan.AnimeListResponse{}}
	service := newTestService(remote, false)

	if _, err := service.ListByGenre(context.Background(), 1, SortPopularity, 1); err != nil {
		t.Fatalf("ListByGenre() error = %v", err)
	}

	if remote.listParams.GenreID != 1 {
		t.Errorf("GenreID = %d, want 1", remote.listParams.GenreID)
	}
	if remote.listParams.Sort != jikan.SortPopularity {
		t.Errorf("Sort = %q, want %q", remote.listParams.Sort, jikan.SortPopularity)
	}
	if remote.listParams.Page != 1 {
		t.Errorf("Page = %d, want 1", remote.listParams.Page)
	}
	if remote.listParams.Limit != 24 {
		t.Errorf("Limit = %d, want 24", remote.listParams.Limit)
	}
}

func TestService_ListByGenre_ClampsPage(t *testing.T) {
	remote := &fakeRemote{listResp: &jikan.AnimeListResponse{}}
	service := newTestService(remote, false)

	if _, err := service.ListByGenre(context.Background(), 0, "", -3); err != nil {
		t.Fatalf("ListByGenre() error = %v", err)
	}
	if remote.listParams.Page != 1 {
		t.Errorf("Page = %d, want 1", remote.listParams.Page)
	}
}

func TestService_ListByGenre_CapsAtDisplayLimit(t *testing.T) {
	raws := make([]jikan.Anime, 0, 24)
	for i := 1; i <= 24; i++ {
		raws = append(raws, rawAnime(i))
	}
	remote := &fakeRemote{listResp: &jikan.AnimeListResponse{Data: raws}}
	service := newTestService(remote, false)

	items, err := service.ListByGenre(context.Background(), 1, SortPopularity, 1)
	if err != nil {
		t.Fatalf("ListByGenre() error = %v", err)
	}

	if len(items) != 10 {
		t.Fatalf("ListByGenre() returned %d items, want 10", len(items))
	}
	// Upstream order is preserved through normalization
	if items[0].MalID != 1 || items[9].MalID != 10 {
		t.Errorf("items out of order: first = %d, last = %d", items[0].MalID, items[9].MalID)
	}
	for _, item := range items {
		if len(item.Genres) == 0 || item.Genres[0].MalID != 1 {
			t.Errorf("item %d missing genre 1", item.MalID)
		}
	}
}

func TestService_ListByGenre_LocaleFilter(t *testing.T) {
	japanese := rawAnime(1)
	japanese.Studios = []jikan.MalEntity{{MalID: 2, Name: "Kyoto Animation"}}

	scriptName := rawAnime(2)
	scriptName.Studios = []jikan.MalEntity{{MalID: 3, Name: "東映アニメーション"}}

	foreign := rawAnime(3)
	foreign.Studios = []jikan.MalEntity{{MalID: 4, Name: "Some Western Studio"}}

	remote := &fakeRemote{listResp: &jikan.AnimeListResponse{
		Data: []jikan.Anime{japanese, foreign, scriptName},
	}}
	service := newTestService(remote, true)

	items, err := service.ListByGenre(context.Background(), 0, "", 1)
	if err != nil {
		t.Fatalf("ListByGenre() error = %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("ListByGenre() returned %d items, want 2", len(items))
	}
	if items[0].MalID != 1 || items[1].MalID != 2 {
		t.Errorf("filtered ids = %d, %d, want 1, 2", items[0].MalID, items[1].MalID)
	}
}

func TestService_ListByGenre_FilterDisabled(t *testing.T) {
	foreign := rawAnime(3)
	foreign.Studios = []jikan.MalEntity{{MalID: 4, Name: "Some Western Studio"}}

	remote := &fakeRemote{listResp: &jikan.AnimeListResponse{Data: []jikan.Anime{foreign}}}
	service := newTestService(remote, false)

	items, err := service.ListByGenre(context.Background(), 0, "", 1)
	if err != nil {
		t.Fatalf("ListByGenre() error = %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("ListByGenre() returned %d items, want 1", len(items))
	}
}

func TestService_ListByGenre_RemoteError(t *testing.T) {
	remote := &fakeRemote{listErr: jikan.ErrAPIError}
	service := newTestService(remote, false)

	_, err := service.ListByGenre(context.Background(), 0, "", 1)
	if !errors.Is(err, ErrRemoteFetch) {
		t.Errorf("ListByGenre() error = %v, want wrapped %v", err, ErrRemoteFetch)
	}
	if !errors.Is(err, jikan.ErrAPIError) {
		t.Errorf("ListByGenre() error = %v, should preserve the upstream cause", err)
	}
}

func TestService_Search_VerbatimQuery(t *testing.T) {
	remote := &fakeRemote{listResp: &jikan.AnimeListResponse{
		Data: []jikan.Anime{rawAnime(20)},
	}}
	service := newTestService(remote, false)

	items, err := service.Search(context.Background(), "Naruto", 1)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if remote.listParams.Query != "Naruto" {
		t.Errorf("Query = %q, want %q", remote.listParams.Query, "Naruto")
	}
	if remote.listParams.GenreID != 0 {
		t.Errorf("GenreID = %d, want 0", remote.listParams.GenreID)
	}
	if remote.listParams.Sort != "" {
		t.Errorf("Sort = %q, want empty so relevance ordering applies", remote.listParams.Sort)
	}
	if len(items) != 1 {
		t.Fatalf("Search() returned %d items, want 1", len(items))
	}
}

func TestService_Search_EmptyQuery(t *testing.T) {
	remote := &fakeRemote{listResp: &jikan.AnimeListResponse{}}
	service := newTestService(remote, false)

	if _, err := service.Search(context.Background(), "", 1); err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if remote.listParams.Query != "" {
		t.Errorf("Query = %q, want empty", remote.listParams.Query)
	}
}

func TestService_Normalization(t *testing.T) {
	raw := jikan.Anime{
		MalID:         1,
		Title:         "Cowboy Bebop",
		TitleJapanese: "カウボーイビバップ",
		Score:         8.75,
		Season:        "spring",
		Aired:         jikan.DateRange{From: "1998-04-03T00:00:00+00:00"},
		Genres: []jikan.MalEntity{
			{MalID: 1, Name: "Action"},
			{MalID: 50, Name: "Adult Cast"},
		},
		Studios: []jikan.MalEntity{{MalID: 14, Name: "Sunrise"}},
	}
	remote := &fakeRemote{listResp: &jikan.AnimeListResponse{Data: []jikan.Anime{raw}}}
	service := newTestService(remote, false)

	items, err := service.ListByGenre(context.Background(), 0, "", 1)
	if err != nil {
		t.Fatalf("ListByGenre() error = %v", err)
	}
	item := items[0]

	if item.Title != "カウボーイビバップ" {
		t.Errorf("Title = %q, want the Japanese title", item.Title)
	}
	if item.Genres[0].Name != "アクション" {
		t.Errorf("Genres[0].Name = %q, want %q", item.Genres[0].Name, "アクション")
	}
	// Unmapped genre id keeps the upstream name
	if item.Genres[1].Name != "Adult Cast" {
		t.Errorf("Genres[1].Name = %q, want %q", item.Genres[1].Name, "Adult Cast")
	}
	if item.Year == nil || *item.Year != 1998 {
		t.Errorf("Year = %v, want 1998 derived from aired.from", item.Year)
	}
	if item.Season != "春" {
		t.Errorf("Season = %q, want %q", item.Season, "春")
	}
	if item.ListKey == "" {
		t.Error("ListKey should be generated")
	}
}

func TestService_Normalization_TitleFallback(t *testing.T) {
	raw := jikan.Anime{MalID: 30, Title: "Monster"}
	remote := &fakeRemote{listResp: &jikan.AnimeListResponse{Data: []jikan.Anime{raw}}}
	service := newTestService(remote, false)

	items, err := service.ListByGenre(context.Background(), 0, "", 1)
	if err != nil {
		t.Fatalf("ListByGenre() error = %v", err)
	}
	if items[0].Title != "Monster" {
		t.Errorf("Title = %q, want the primary title fallback", items[0].Title)
	}
	if items[0].Year != nil {
		t.Errorf("Year = %v, want nil when no year information exists", items[0].Year)
	}
	if items[0].Season != "" {
		t.Errorf("Season = %q, want empty for unmapped season", items[0].Season)
	}
}

func castEntry(characterID int, name string, actors ...jikan.VoiceActor) jikan.CharacterEntry {
	return jikan.CharacterEntry{
		Character:   jikan.Character{MalID: characterID, Name: name},
		VoiceActors: actors,
	}
}

func TestService_GetDetails(t *testing.T) {
	full := rawAnime(21)
	full.TitleJapanese = "ワンピース"
	full.Status = "Currently Airing"
	full.Episodes = 1000
	full.Duration = "24 min"
	full.Rating = "PG-13"
	full.Synopsis = "Pirates chase the One Piece."

	var characters []jikan.CharacterEntry
	for i := 1; i <= 8; i++ {
		characters = append(characters, castEntry(i, fmt.Sprintf("Character %d", i),
			jikan.VoiceActor{Person: jikan.Person{MalID: 100 + i, Name: fmt.Sprintf("Actor EN %d", i)}, Language: "English"},
			jikan.VoiceActor{Person: jikan.Person{MalID: 200 + i, Name: fmt.Sprintf("Actor JP %d", i)}, Language: "Japanese"},
			jikan.VoiceActor{Person: jikan.Person{MalID: 300 + i, Name: fmt.Sprintf("Actor JP alt %d", i)}, Language: "Japanese"},
		))
	}
	// One character without a Japanese track is skipped entirely
	characters = append(characters, castEntry(9, "Character 9",
		jikan.VoiceActor{Person: jikan.Person{MalID: 109, Name: "Actor EN 9"}, Language: "English"},
	))

	remote := &fakeRemote{full: &full, characters: characters}
	service := newTestService(remote, false)

	detail, err := service.GetDetails(context.Background(), 21)
	if err != nil {
		t.Fatalf("GetDetails() error = %v", err)
	}

	if detail.Title != "ワンピース" {
		t.Errorf("Title = %q, want %q", detail.Title, "ワンピース")
	}
	if detail.Status != "放送中" {
		t.Errorf("Status = %q, want %q", detail.Status, "放送中")
	}
	if detail.Episodes != 1000 {
		t.Errorf("Episodes = %d, want 1000", detail.Episodes)
	}
	if len(detail.VoiceActors) != 6 {
		t.Fatalf("VoiceActors = %d entries, want 6", len(detail.VoiceActors))
	}
	// First credited Japanese actor wins, in upstream order
	if detail.VoiceActors[0].Person.Name != "Actor JP 1" {
		t.Errorf("VoiceActors[0].Person.Name = %q, want %q", detail.VoiceActors[0].Person.Name, "Actor JP 1")
	}
	if detail.VoiceActors[0].Character.Name != "Character 1" {
		t.Errorf("VoiceActors[0].Character.Name = %q, want %q", detail.VoiceActors[0].Character.Name, "Character 1")
	}
}

func TestService_GetDetails_SynopsisPlaceholder(t *testing.T) {
	full := rawAnime(40)
	remote := &fakeRemote{full: &full}
	service := newTestService(remote, false)

	detail, err := service.GetDetails(context.Background(), 40)
	if err != nil {
		t.Fatalf("GetDetails() error = %v", err)
	}
	if detail.Synopsis != "概要は準備中です。" {
		t.Errorf("Synopsis = %q, want the placeholder", detail.Synopsis)
	}
}

func TestService_GetDetails_StatusPassthrough(t *testing.T) {
	full := rawAnime(41)
	full.Status = "On Hiatus"
	remote := &fakeRemote{full: &full}
	service := newTestService(remote, false)

	detail, err := service.GetDetails(context.Background(), 41)
	if err != nil {
		t.Fatalf("GetDetails() error = %v", err)
	}
	if detail.Status != "On Hiatus" {
		t.Errorf("Status = %q, want the unmapped code verbatim", detail.Status)
	}
}

func TestService_GetDetails_EitherFetchFails(t *testing.T) {
	full := rawAnime(42)

	remote := &fakeRemote{full: &full, charsErr: jikan.ErrAPIError}
	service := newTestService(remote, false)
	if _, err := service.GetDetails(context.Background(), 42); !errors.Is(err, ErrRemoteFetch) {
		t.Errorf("GetDetails() error = %v, want wrapped %v", err, ErrRemoteFetch)
	}

	remote = &fakeRemote{fullErr: jikan.ErrAnimeNotFound}
	service = newTestService(remote, false)
	if _, err := service.GetDetails(context.Background(), 42); !errors.Is(err, ErrRemoteFetch) {
		t.Errorf("GetDetails() error = %v, want wrapped %v", err, ErrRemoteFetch)
	}
}
