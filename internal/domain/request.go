package domain

import (
	"fmt"
	"strings"
)

// DefaultStyle is used when a request does not name an artistic style.
const DefaultStyle = "photography"

// MaxImageBytes bounds the size of an image attached to a request.
const MaxImageBytes = 10 << 20

// GenerationRequest is the immutable input of one prompt-chain run.
type GenerationRequest struct {
	idea       string
	style      string
	characters []string
	image      []byte
	imageMIME  string
}

// NewGenerationRequest validates and normalizes the input of a run.
// Character keys are lower-cased, trimmed and de-duplicated while keeping
// their first-seen order. An empty style falls back to DefaultStyle.
func NewGenerationRequest(idea, style string, characters []string, image []byte, imageMIME string) (*GenerationRequest, error) {
	idea = strings.TrimSpace(idea)
	if idea == "" {
		return nil, fmt.Errorf("%w: %w", ErrValidation, ErrEmptyIdea)
	}
	if len(image) > MaxImageBytes {
		return nil, fmt.Errorf("%w: %w", ErrValidation, ErrImageTooLarge)
	}

	style = strings.TrimSpace(style)
	if style == "" {
		style = DefaultStyle
	}

	seen := make(map[string]struct{}, len(characters))
	keys := make([]string, 0, len(characters))
	for _, c := range characters {
		key := strings.ToLower(strings.TrimSpace(c))
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}

	var img []byte
	if len(image) > 0 {
		img = make([]byte, len(image))
		copy(img, image)
		if imageMIME == "" {
			imageMIME = "image/jpeg"
		}
	} else {
		imageMIME = ""
	}

	return &GenerationRequest{
		idea:       idea,
		style:      style,
		characters: keys,
		image:      img,
		imageMIME:  imageMIME,
	}, nil
}

// Idea returns the user's free-text description.
func (r *GenerationRequest) Idea() string { return r.idea }

// Style returns the artistic style label.
func (r *GenerationRequest) Style() string { return r.style }

// Characters returns a copy of the requested character keys in request order.
func (r *GenerationRequest) Characters() []string {
	out := make([]string, len(r.characters))
	copy(out, r.characters)
	return out
}

// HasImage reports whether an image was attached.
func (r *GenerationRequest) HasImage() bool { return len(r.image) > 0 }

// Image returns a copy of the attached image bytes, or nil.
func (r *GenerationRequest) Image() []byte {
	if r.image == nil {
		return nil
	}
	out := make([]byte, len(r.image))
	copy(out, r.image)
	return out
}

// ImageMIME returns the content type of the attached image.
func (r *GenerationRequest) ImageMIME() string { return r.imageMIME }

// ParseCharacterList splits a comma separated list of character keys, as
// sent by form posts and the CLI.
func ParseCharacterList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
