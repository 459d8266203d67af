// Package chatapi is a client for OpenAI-compatible chat completion
// endpoints. It serves both OpenRouter (fallback text, vision and animation
// models) and OpenAI (translation) and implements generation.ChatProvider.
//
// Each Complete call issues exactly one HTTP request. Retry policy belongs to
// the caller.
package chatapi
