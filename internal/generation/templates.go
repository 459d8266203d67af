package generation

import (
	"fmt"
	"strings"
)

// Templates renders every instruction sent to providers. The source language
// is the language of the primary prompt; the target language is the one it
// is translated into.
type Templates struct {
	SourceLanguage string
	TargetLanguage string
}

// DefaultTemplates returns templates producing Spanish prompts translated to English.
func DefaultTemplates() Templates {
	return Templates{SourceLanguage: "Spanish", TargetLanguage: "English"}
}

func (t Templates) withDefaults() Templates {
	d := DefaultTemplates()
	if strings.TrimSpace(t.SourceLanguage) == "" {
		t.SourceLanguage = d.SourceLanguage
	}
	if strings.TrimSpace(t.TargetLanguage) == "" {
		t.TargetLanguage = d.TargetLanguage
	}
	return t
}

const photoRules = `You are an expert photographer and builder of ultra-realistic image prompts. Build detailed photographic prompts following these rules:

1. SHOT, LENS AND ANGLE:
   - Shot type (wide, close-up, medium side, POV)
   - Lens (35mm, 50mm, 70mm, 85mm, etc.)
   - Camera angle (frontal, high angle, low angle, aerial)
   - Aperture, shutter speed, ISO

2. CHARACTER DESCRIPTION:
   - Specific traits (age, hair, eyes, figure)
   - Body language and position
   - Detailed outfit
   - Artistic, neutral language, never vulgar

3. CLOTHING AND BODY:
   - Respectful terminology only
   - No explicit or vulgar terms

4. BACKGROUND AND ENVIRONMENT:
   - Weather, time of day, architecture, objects
   - Detailed and coherent with the scene

5. IMAGE TYPE AND ART STYLE:
   - Ultra-realistic photography by default
   - Style: editorial, retro-futuristic, cinematic
   - Artistic references (artists, filmmakers)

6. LIGHT AND RESOLUTION:
   - Light: natural, artificial, neon
   - Shadows: diffuse, hard, cast
   - Resolution: 8K, cinematic quality
   - Rendering: realism, stylized

IMPORTANT: everything in ONE COMPACT PARAGRAPH, with no line breaks or special formatting.`

const visionSystem = `You are an expert image analyst with a photographic eye. Describe images in technical terms so they can be used as context for prompt construction.

Describe:
- Exact pose of the subject
- Clothing (texture, color, fit)
- Detailed environment
- Lighting (type, direction, quality)
- Weather and time of day
- Camera composition
- Background and ambient details

Be technical and direct, using professional photographic terminology.
Answer in one compact paragraph.`

const visionInstruction = `Analyze this image with a professional photographic focus:

1. SUBJECT AND POSE: visible traits, exact pose and body language, facial expression.
2. ATTIRE: garments (type, color, texture, fit), accessories, visible details.
3. ENVIRONMENT: indoor or outdoor, nearby objects, background and blur.
4. LIGHTING: natural, artificial or mixed; direction and quality; shadows and reflections.
5. COMPOSITION: shot type, camera angle, apparent depth of field.

Give a technical answer in ONE compact paragraph.`

const videoInstruction = `Based on the following photographic prompt, write an animation suggestion describing:
- Camera movement type (zoom, pan, tilt, dolly, orbit)
- Direction and speed of the movement
- Subject action (blinking, body movement, turning)
- Special effects (bokeh, light leak, color grading)
- Approximate duration in seconds
- Transitions (fade, dissolve, wipe)

Answer in one compact paragraph that can be used directly by a video generation model.`

// PhotoRules returns the fixed rules for photographic-prompt construction.
func (t Templates) PhotoRules() string {
	return photoRules
}

// VisionSystem returns the system message for image analysis.
func (t Templates) VisionSystem() string {
	return visionSystem
}

// VisionInstruction returns the user instruction sent with the image.
func (t Templates) VisionInstruction() string {
	return visionInstruction
}

// UserMessage assembles the single instruction for the primary prompt.
func (t Templates) UserMessage(idea, style, characterContext, imageAnalysis string) string {
	t = t.withDefaults()
	var b strings.Builder
	b.WriteString("Build an ultra-detailed photographic prompt from these specifications:\n\n")
	fmt.Fprintf(&b, "USER IDEA:\n%s\n\n", idea)
	fmt.Fprintf(&b, "ART STYLE:\n%s\n\n", style)
	fmt.Fprintf(&b, "CHARACTERS:\n%s\n\n", characterContext)
	if strings.TrimSpace(imageAnalysis) != "" {
		fmt.Fprintf(&b, "IMAGE ANALYSIS (visual reference):\n%s\n\n", imageAnalysis)
	}
	fmt.Fprintf(&b, "INSTRUCTIONS:\n%s\n\n", photoRules)
	fmt.Fprintf(&b, "Write the final prompt in %s, in a SINGLE PARAGRAPH, including every technical "+
		"photographic element, the character description (if any), environment, light, art style and inspirations.",
		strings.ToUpper(t.SourceLanguage))
	return b.String()
}

// VideoMessage combines the video instruction with a finished photographic prompt.
func (t Templates) VideoMessage(photoPrompt string) string {
	return videoInstruction + "\n\nPhotographic prompt:\n" + photoPrompt + "\n\nNow write the animation suggestion."
}

// TranslatorSystem returns the system message for the translation provider.
func (t Templates) TranslatorSystem() string {
	t = t.withDefaults()
	return fmt.Sprintf("You are a professional translator. Translate from %s to %s exactly, "+
		"keeping every technical photographic term. Return only the translation.", t.SourceLanguage, t.TargetLanguage)
}

// TranslationMessage asks a text provider to translate text.
func (t Templates) TranslationMessage(text string) string {
	t = t.withDefaults()
	return fmt.Sprintf("Translate the following photographic prompt from %s to %s exactly, keeping every "+
		"technical detail:\n\n%s\n\nReturn ONLY the translation, with no explanations.",
		t.SourceLanguage, t.TargetLanguage, text)
}

// CombinedMessage asks a chat model for all three sections in one answer.
func (t Templates) CombinedMessage(idea, style, characterContext string) string {
	t = t.withDefaults()
	var b strings.Builder
	fmt.Fprintf(&b, "Idea: %s\nStyle: %s\nCharacters: %s\n\n", idea, style, characterContext)
	fmt.Fprintf(&b, "Answer with exactly three sections using these markers:\n\n")
	fmt.Fprintf(&b, "%s\n[the photographic prompt in %s, one paragraph]\n\n", MarkerPrimary, t.SourceLanguage)
	fmt.Fprintf(&b, "%s\n[the same prompt translated to %s]\n\n", MarkerSecondary, t.TargetLanguage)
	fmt.Fprintf(&b, "%s\n[the camera movement and animation suggestion]", MarkerVideo)
	return b.String()
}
