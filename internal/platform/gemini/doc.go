// Package gemini provides an implementation of the generation.TextProvider
// interface backed by Google's Gemini API.
//
// This package is an infrastructure adapter: it translates a prompt and an
// optional system instruction into a genai GenerateContent call and returns
// the concatenated text of the first candidate. It does not retry; retries and
// fallback are owned by the generation package.
//
// Errors returned by the Client wrap generation.ErrProviderCallFailed and never
// carry the API key or the raw response body.
package gemini
