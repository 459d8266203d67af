package generation

import (
	"fmt"
	"strings"

	"github.com/phrazzld/promptchain/internal/domain"
)

// LocalModelID identifies results produced without any provider.
const LocalModelID = "local-template"

type styleTemplate struct {
	shot   string
	light  string
	finish string
	camera string
}

var styleTemplates = map[string]styleTemplate{
	"photography": {
		shot:   "medium shot, 50mm lens, f/2.0, 1/250s, ISO 200, eye-level angle",
		light:  "natural golden-hour light with soft diffuse shadows",
		finish: "ultra-realistic photograph, 8K, editorial quality",
		camera: "slow push-in toward the subject, gentle natural blinking, ~5s duration, soft fade-out",
	},
	"cinematic": {
		shot:   "wide anamorphic shot, 35mm lens, f/2.8, low angle",
		light:  "moody practical lighting with teal and orange grading and hard cast shadows",
		finish: "cinematic film still, 8K, shallow depth of field",
		camera: "slow dolly left to right with subtle parallax, light leak accents, ~6s duration, dissolve transition",
	},
	"portrait": {
		shot:   "close-up portrait, 85mm lens, f/1.8, frontal angle",
		light:  "soft key light with gentle fill and creamy bokeh background",
		finish: "high-end portrait photography, 8K, natural skin texture",
		camera: "subtle zoom in on the face, slow blink and slight head turn, ~4s duration, fade transition",
	},
	"fashion": {
		shot:   "full-body shot, 70mm lens, f/4, slightly low angle",
		light:  "studio strobe lighting with crisp defined shadows",
		finish: "fashion editorial photograph, 8K, magazine quality",
		camera: "slow orbit around the subject, fabric moving in a light breeze, ~5s duration, wipe transition",
	},
	"artistic": {
		shot:   "medium wide shot, 35mm lens, f/5.6, high angle",
		light:  "dramatic chiaroscuro lighting with colored gels",
		finish: "fine-art photograph with painterly texture, 8K",
		camera: "slow tilt up revealing the scene, drifting particles, ~6s duration, dissolve transition",
	},
}

// LocalGenerator builds prompts from fixed style templates without calling
// any provider. It is deterministic.
type LocalGenerator struct {
	characters *domain.CharacterCatalog
}

// NewLocalGenerator creates a LocalGenerator.
func NewLocalGenerator(characters *domain.CharacterCatalog) *LocalGenerator {
	if characters == nil {
		characters = domain.NewCharacterCatalog(nil)
	}
	return &LocalGenerator{characters: characters}
}

// Styles returns the styles with a dedicated template.
func (g *LocalGenerator) Styles() []string {
	return []string{"artistic", "cinematic", "fashion", "photography", "portrait"}
}

// Generate renders the templates for req.
func (g *LocalGenerator) Generate(req *domain.GenerationRequest) *domain.GenerationResult {
	tpl, ok := styleTemplates[strings.ToLower(req.Style())]
	if !ok {
		tpl = styleTemplates[domain.DefaultStyle]
	}

	subject := req.Idea()
	if chars := g.characters.Context(req.Characters()); chars != domain.NoCharactersContext {
		subject += ", featuring " + strings.ReplaceAll(chars, "\n", "; ")
	}

	prompt := fmt.Sprintf("%s, %s, %s, %s style, %s.", tpl.shot, subject, tpl.light, req.Style(), tpl.finish)
	return &domain.GenerationResult{
		PromptPrimaryLang: prompt,
		VideoPrompt:       tpl.camera,
		ModelUsed:         LocalModelID,
		PrimaryModel:      LocalModelID,
		PrimaryStatus:     domain.PrimaryStatusSuccess,
		TranslationStatus: domain.TranslationStatusSkipped,
	}
}
