package domain

import (
	"sort"
	"strings"
)

// NoCharactersContext is the character context used when no known
// character is requested.
const NoCharactersContext = "no specific characters"

// NoCharacterKey is the explicit "no character" selection.
const NoCharacterKey = "ninguno"

// AllCharactersKey selects every character in the catalog.
const AllCharactersKey = "ambos"

// CharacterProfile is a named block of descriptive text injected into
// prompt construction.
type CharacterProfile struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CharacterCatalog is a read-only lookup table of character profiles.
type CharacterCatalog struct {
	profiles map[string]CharacterProfile
}

// NewCharacterCatalog builds a catalog. Keys are matched case-insensitively;
// a profile without a name uses its key.
func NewCharacterCatalog(profiles []CharacterProfile) *CharacterCatalog {
	m := make(map[string]CharacterProfile, len(profiles))
	for _, p := range profiles {
		key := strings.ToLower(strings.TrimSpace(p.Key))
		if key == "" {
			continue
		}
		p.Key = key
		if p.Name == "" {
			p.Name = key
		}
		m[key] = p
	}
	return &CharacterCatalog{profiles: m}
}

// Lookup returns the profile for key.
func (c *CharacterCatalog) Lookup(key string) (CharacterProfile, bool) {
	p, ok := c.profiles[strings.ToLower(strings.TrimSpace(key))]
	return p, ok
}

// Keys returns the known character keys, sorted.
func (c *CharacterCatalog) Keys() []string {
	keys := make([]string, 0, len(c.profiles))
	for k := range c.profiles {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Context resolves keys into a newline-joined "Name: description" block in
// request order. Unknown keys are skipped. When nothing resolves the result
// is NoCharactersContext.
func (c *CharacterCatalog) Context(keys []string) string {
	lines := make([]string, 0, len(keys))
	for _, key := range c.expand(keys) {
		p, ok := c.Lookup(key)
		if !ok {
			continue
		}
		lines = append(lines, p.Name+": "+p.Description)
	}
	if len(lines) == 0 {
		return NoCharactersContext
	}
	return strings.Join(lines, "\n")
}

func (c *CharacterCatalog) expand(keys []string) []string {
	for i, key := range keys {
		if strings.EqualFold(strings.TrimSpace(key), AllCharactersKey) {
			out := make([]string, 0, len(keys)+len(c.profiles))
			out = append(out, keys[:i]...)
			out = append(out, c.Keys()...)
			return append(out, keys[i+1:]...)
		}
	}
	return keys
}
