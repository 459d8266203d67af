package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Favorite
var (
	ErrEmptyFavoriteID     = errors.New("favorite ID cannot be empty")
	ErrEmptyFavoriteTitle  = errors.New("favorite title cannot be empty")
	ErrEmptyFavoritePrompt = errors.New("favorite primary prompt cannot be empty")
)

// Favorite is a saved prompt set.
type Favorite struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Character       string    `json:"character"`
	PromptPrimary   string    `json:"prompt_primary"`
	PromptSecondary string    `json:"prompt_secondary"`
	PromptVideo     string    `json:"prompt_video"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewFavorite creates a Favorite with a fresh ID and creation time.
// Returns an error if validation fails.
func NewFavorite(title, character, primary, secondary, video string) (*Favorite, error) {
	f := &Favorite{
		ID:              uuid.New(),
		Title:           strings.TrimSpace(title),
		Character:       strings.TrimSpace(character),
		PromptPrimary:   strings.TrimSpace(primary),
		PromptSecondary: strings.TrimSpace(secondary),
		PromptVideo:     strings.TrimSpace(video),
		CreatedAt:       time.Now().UTC(),
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Validate checks if the Favorite has valid data.
func (f *Favorite) Validate() error {
	if f.ID == uuid.Nil {
		return ErrEmptyFavoriteID
	}
	if f.Title == "" {
		return ErrEmptyFavoriteTitle
	}
	if f.PromptPrimary == "" {
		return ErrEmptyFavoritePrompt
	}
	return nil
}

// Matches reports whether query occurs, case-insensitively, in any text field.
func (f *Favorite) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, field := range []string{f.ID.String(), f.Title, f.Character, f.PromptPrimary, f.PromptSecondary, f.PromptVideo} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// FavoriteUpdate carries replacement values; empty fields leave the stored
// value untouched.
type FavoriteUpdate struct {
	Title           string `json:"title"`
	Character       string `json:"character"`
	PromptPrimary   string `json:"prompt_primary"`
	PromptSecondary string `json:"prompt_secondary"`
	PromptVideo     string `json:"prompt_video"`
}

// IsEmpty reports whether the update would change nothing.
func (u FavoriteUpdate) IsEmpty() bool {
	return strings.TrimSpace(u.Title) == "" &&
		strings.TrimSpace(u.Character) == "" &&
		strings.TrimSpace(u.PromptPrimary) == "" &&
		strings.TrimSpace(u.PromptSecondary) == "" &&
		strings.TrimSpace(u.PromptVideo) == ""
}

// Apply copies the non-empty fields of u onto f.
func (u FavoriteUpdate) Apply(f *Favorite) {
	set := func(dst *string, v string) {
		if v = strings.TrimSpace(v); v != "" {
			*dst = v
		}
	}
	set(&f.Title, u.Title)
	set(&f.Character, u.Character)
	set(&f.PromptPrimary, u.PromptPrimary)
	set(&f.PromptSecondary, u.PromptSecondary)
	set(&f.PromptVideo, u.PromptVideo)
}

// FavoriteStats summarizes the favorites collection.
type FavoriteStats struct {
	Total       int            `json:"total"`
	ByCharacter map[string]int `json:"by_character"`
	LastCreated *time.Time     `json:"last_created,omitempty"`
}

// ComputeFavoriteStats aggregates stats over an in-memory slice.
func ComputeFavoriteStats(favorites []*Favorite) FavoriteStats {
	stats := FavoriteStats{ByCharacter: make(map[string]int)}
	for _, f := range favorites {
		stats.Total++
		key := f.Character
		if key == "" {
			key = NoCharacterKey
		}
		stats.ByCharacter[key]++
		if stats.LastCreated == nil || f.CreatedAt.After(*stats.LastCreated) {
			t := f.CreatedAt
			stats.LastCreated = &t
		}
	}
	return stats
}
