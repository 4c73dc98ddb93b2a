package jikan

// API response models for the Jikan v4 REST API (https://docs.api.jikan.moe).
// Only the fields the catalog layer depends on are decoded; everything else
// in the upstream payload is ignored.

// AnimeListResponse is the envelope for /anime listings.
type AnimeListResponse struct {
	Pagination Pagination `json:"pagination"`
	Data       []Anime    `json:"data"`
}

// AnimeResponse is the envelope for /anime/{id}/full.
type AnimeResponse struct {
	Data Anime `json:"data"`
}

// CharactersResponse is the envelope for /anime/{id}/characters.
type CharactersResponse struct {
	Data []CharacterEntry `json:"data"`
}

// Pagination describes paging metadata on list responses.
type Pagination struct {
	LastVisiblePage int  `json:"last_visible_page"`
	HasNextPage     bool `json:"has_next_page"`
	CurrentPage     int  `json:"current_page"`
}

// Anime is a single anime record as returned by Jikan.
type Anime struct {
	MalID         int         `json:"mal_id"`
	Title         string      `json:"title"`
	TitleEnglish  string      `json:"title_english"`
	TitleJapanese string      `json:"title_japanese"`
	Images        ImageSet    `json:"images"`
	Score         float64     `json:"score"`
	ScoredBy      int         `json:"scored_by"`
	Members       int         `json:"members"`
	Synopsis      string      `json:"synopsis"`
	Type          string      `json:"type"`
	Episodes      int         `json:"episodes"`
	Status        string      `json:"status"`
	Airing        bool        `json:"airing"`
	Aired         DateRange   `json:"aired"`
	Duration      string      `json:"duration"`
	Rating        string      `json:"rating"`
	Season        string      `json:"season"`
	Year          int         `json:"year"`
	OriginCountry string      `json:"origin_country"`
	Genres        []MalEntity `json:"genres"`
	Studios       []MalEntity `json:"studios"`
}

// ImageSet holds the image URL variants for a record.
type ImageSet struct {
	JPG  Image `json:"jpg"`
	WebP Image `json:"webp"`
}

// Image holds the URLs for one image format.
type Image struct {
	ImageURL      string `json:"image_url"`
	SmallImageURL string `json:"small_image_url"`
	LargeImageURL string `json:"large_image_url"`
}

// DateRange is an airing date range.
type DateRange struct {
	From   string `json:"from"`
	To     string `json:"to"`
	String string `json:"string"`
}

// MalEntity is a MAL-identified sub-resource (genre, studio, person...).
type MalEntity struct {
	MalID int    `json:"mal_id"`
	Type  string `json:"type"`
	Name  string `json:"name"`
}

// CharacterEntry is one character with its credited voice actors.
type CharacterEntry struct {
	Character   Character    `json:"character"`
	Role        string       `json:"role"`
	VoiceActors []VoiceActor `json:"voice_actors"`
}

// Character identifies a character within an anime.
type Character struct {
	MalID  int      `json:"mal_id"`
	Name   string   `json:"name"`
	Images ImageSet `json:"images"`
}

// VoiceActor is one credited voice actor with a spoken-language tag.
type VoiceActor struct {
	Person   Person `json:"person"`
	Language string `json:"language"`
}

// Person identifies a voice actor.
type Person struct {
	MalID  int      `json:"mal_id"`
	Name   string   `json:"name"`
	Images ImageSet `json:"images"`
}

// ErrorResponse is the error payload Jikan returns on non-2xx statuses.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Type    string `json:"type"`
	Message string `json:"message"`
	Error   string `json:"error"`
}
