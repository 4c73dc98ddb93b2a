package catalog

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aniview/aniview/internal/catalog/jikan"
)

// genreNames maps MAL genre ids to their Japanese display names. Ids missing
// from the table keep the name the upstream record carries.
var genreNames = map[int]string{
	1:  "アクション",
	2:  "アドベンチャー",
	4:  "コメディ",
	8:  "ドラマ",
	10: "ファンタジー",
	14: "恋愛",
	18: "ロボット",
	22: "恋愛",
	23: "学園",
	24: "SF",
	36: "日常",
	37: "超自然",
	41: "青春",
	62: "異世界",
}

// seasonNames maps upstream season codes to display names. Unmapped codes
// normalize to the empty string.
var seasonNames = map[string]string{
	"spring": "春",
	"summer": "夏",
	"fall":   "秋",
	"winter": "冬",
}

// statusNames maps upstream airing-status codes to display names. Unmapped
// codes pass through verbatim.
var statusNames = map[string]string{
	"Finished Airing":  "放送終了",
	"Currently Airing": "放送中",
	"Not yet aired":    "放送予定",
}

// synopsisPlaceholder is shown when the upstream record has no synopsis.
const synopsisPlaceholder = "概要は準備中です。"

// normalizeAnime maps a raw upstream record to the basic catalog
// representation: Japanese title preferred, score defaulted to 0 by decode,
// genres relabeled, year derived from the aired range when absent, season
// mapped, and a fresh render-only list key attached.
func normalizeAnime(raw jikan.Anime) Anime {
	title := raw.TitleJapanese
	if title == "" {
		title = raw.Title
	}

	genres := make([]Genre, len(raw.Genres))
	for i, g := range raw.Genres {
		name := g.Name
		if localized, ok := genreNames[g.MalID]; ok {
			name = localized
		}
		genres[i] = Genre{MalID: g.MalID, Name: name}
	}

	studios := make([]Studio, len(raw.Studios))
	for i, s := range raw.Studios {
		studios[i] = Studio{MalID: s.MalID, Name: s.Name}
	}

	return Anime{
		MalID: raw.MalID,
		Title: title,
		Images: Images{
			ImageURL:      raw.Images.JPG.ImageURL,
			SmallImageURL: raw.Images.JPG.SmallImageURL,
			LargeImageURL: raw.Images.JPG.LargeImageURL,
		},
		Score:   raw.Score,
		Genres:  genres,
		Year:    deriveYear(raw),
		Season:  seasonNames[raw.Season],
		Studios: studios,
		ListKey: newListKey(raw.MalID),
	}
}

// deriveYear prefers the explicit year field and falls back to the year of
// the start-of-airing date. Returns nil when neither is available.
func deriveYear(raw jikan.Anime) *int {
	if raw.Year > 0 {
		y := raw.Year
		return &y
	}
	if raw.Aired.From != "" {
		if t, err := time.Parse(time.RFC3339, raw.Aired.From); err == nil {
			y := t.Year()
			return &y
		}
	}
	return nil
}

// normalizeStatus maps the airing status code, passing unmapped codes
// through verbatim.
func normalizeStatus(status string) string {
	if localized, ok := statusNames[status]; ok {
		return localized
	}
	return status
}

// newListKey builds the synchronization key for one fetched list entry.
// It is intentionally non-authoritative: two near-simultaneous fetches of
// the same title are not guaranteed distinguishable, which is acceptable
// for a rendering key.
func newListKey(malID int) string {
	return fmt.Sprintf("%d-%d-%s", malID, time.Now().UnixMilli(), uuid.NewString())
}
