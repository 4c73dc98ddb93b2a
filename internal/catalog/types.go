package catalog

// Anime is the normalized basic catalog representation of an anime title.
// MalID is the authoritative identifier for all store operations; ListKey
// only disambiguates list entries across repeated fetches and must never be
// used for identity checks against persisted records.
type Anime struct {
	MalID   int      `json:"malId"`
	Title   string   `json:"title"`
	Images  Images   `json:"images"`
	Score   float64  `json:"score"`
	Genres  []Genre  `json:"genres"`
	Year    *int     `json:"year"`
	Season  string   `json:"season"`
	Studios []Studio `json:"studios"`
	ListKey string   `json:"listKey"`
}

// AnimeDetail extends Anime with the full-record fields.
type AnimeDetail struct {
	Anime
	Synopsis      string             `json:"synopsis"`
	ContentRating string             `json:"contentRating"`
	Status        string             `json:"status"`
	Episodes      int                `json:"episodes"`
	Duration      string             `json:"duration"`
	Aired         AiredRange         `json:"aired"`
	VoiceActors   []VoiceActorCredit `json:"voiceActors"`
}

// Genre is a genre tag with its localized display name.
type Genre struct {
	MalID int    `json:"malId"`
	Name  string `json:"name"`
}

// Studio is a production studio.
type Studio struct {
	MalID int    `json:"malId"`
	Name  string `json:"name"`
}

// Images holds the image URL variants for a title.
type Images struct {
	ImageURL      string `json:"imageUrl"`
	SmallImageURL string `json:"smallImageUrl"`
	LargeImageURL string `json:"largeImageUrl"`
}

// AiredRange is the airing date range of a title.
type AiredRange struct {
	From   string `json:"from"`
	To     string `json:"to"`
	String string `json:"string"`
}

// VoiceActorCredit pairs one voice actor with the character they play.
type VoiceActorCredit struct {
	Person    CreditedPerson `json:"person"`
	Character CreditedPerson `json:"character"`
}

// CreditedPerson is a named cast-list entry with an image.
type CreditedPerson struct {
	MalID    int    `json:"malId"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
}

// SortType selects the listing order.
type SortType string

const (
	SortPopularity SortType = "popularity"
	SortTrending   SortType = "trending"
	SortNewest     SortType = "newest"
)

// Valid reports whether s is a known sort type.
func (s SortType) Valid() bool {
	switch s {
	case SortPopularity, SortTrending, SortNewest:
		return true
	}
	return false
}
