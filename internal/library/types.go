package library

import (
	"time"

	"github.com/aniview/aniview/internal/catalog"
)

// Entry is one persisted list entry wrapping a basic catalog item snapshot.
// Uniqueness within a list is enforced by the catalog identifier, never by
// the item's render key.
type Entry struct {
	Item    catalog.Anime `json:"item"`
	AddedAt time.Time     `json:"addedAt"`
}

// Rating is the user's multi-criteria rating for one title. One active
// rating per catalog identifier; inserting a new one replaces the prior.
type Rating struct {
	MalID     int            `json:"malId"`
	UserRef   string         `json:"userRef"`
	Scores    map[string]int `json:"scores"`
	Comment   string         `json:"comment"`
	CreatedAt time.Time      `json:"createdAt"`
}

// RatingInput carries the caller-supplied part of a rating.
type RatingInput struct {
	MalID   int            `json:"malId"`
	Scores  map[string]int `json:"scores"`
	Comment string         `json:"comment"`
}

// Criterion is one rating dimension presented to the user.
type Criterion struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Criteria are the rating dimensions, each scored 0-10.
var Criteria = []Criterion{
	{ID: "story", Name: "ストーリー", Description: "物語の構成と展開"},
	{ID: "animation", Name: "作画", Description: "映像のクオリティ"},
	{ID: "character", Name: "キャラクター", Description: "キャラクターの魅力"},
	{ID: "music", Name: "音楽", Description: "BGMと主題歌"},
	{ID: "enjoyment", Name: "楽しさ", Description: "総合的な満足度"},
}

const (
	scoreMin = 0
	scoreMax = 10
)
