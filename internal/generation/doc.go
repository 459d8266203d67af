// Package generation implements the prompt chain: it sequences calls to
// external text, chat and vision providers to turn an idea into a
// photographic prompt, its translation and a paired video prompt.
//
// Providers are abstracted behind TextProvider and ChatProvider. Every call
// against a provider is a Stage; stages are retried with exponential backoff
// by a Retrier and composed with RunWithFallback, which reports a tagged
// Outcome instead of nesting error handlers. The Orchestrator runs the stages
// of one request strictly in order:
//
//	INIT -> IMAGE_ANALYSIS (optional) -> PRIMARY_BUILD (incl. VIDEO_DERIVE) -> TRANSLATE -> DONE
//
// Only PRIMARY_BUILD is fatal. Image analysis, video derivation and
// translation degrade instead of failing the request.
package generation
