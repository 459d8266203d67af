package domain

// PrimaryStatus reports whether the primary text provider produced the prompt.
type PrimaryStatus string

// Possible primary status values
const (
	PrimaryStatusSuccess PrimaryStatus = "success"
	PrimaryStatusFailed  PrimaryStatus = "failed"
)

// TranslationStatus reports how the secondary-language prompt was obtained.
type TranslationStatus string

// Possible translation status values
const (
	TranslationStatusSuccess  TranslationStatus = "success"
	TranslationStatusFallback TranslationStatus = "fallback"
	TranslationStatusFailed   TranslationStatus = "failed"
	TranslationStatusSkipped  TranslationStatus = "skipped"
)

// GenerationResult is the outcome of one successful prompt-chain run. It is
// built once by the orchestrator and never mutated afterwards.
type GenerationResult struct {
	PromptPrimaryLang   string            `json:"prompt_primary_lang"`
	PromptSecondaryLang string            `json:"prompt_secondary_lang,omitempty"`
	VideoPrompt         string            `json:"video_prompt"`
	ModelUsed           string            `json:"model_used"`
	PrimaryModel        string            `json:"primary_model"`
	PrimaryStatus       PrimaryStatus     `json:"primary_status"`
	FallbackModel       string            `json:"fallback_model,omitempty"`
	TranslationStatus   TranslationStatus `json:"translation_status"`
	TranslationModel    string            `json:"translation_model,omitempty"`
	ImageAnalysisUsed   bool              `json:"image_analysis_used"`
}

// HasSecondary reports whether a translated prompt is present.
func (r *GenerationResult) HasSecondary() bool {
	return r.PromptSecondaryLang != ""
}

// ModelInfo renders a one-line provenance summary, e.g.
// "Primary: gemini-2.5-pro (failed) | Fallback: qwen/qwen-2-vl-72b-instruct".
func (r *GenerationResult) ModelInfo() string {
	info := "Primary: " + r.PrimaryModel + " (" + string(r.PrimaryStatus) + ")"
	if r.FallbackModel != "" {
		info += " | Fallback: " + r.FallbackModel
	}
	return info
}
