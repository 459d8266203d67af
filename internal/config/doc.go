// Package config loads promptchain settings with viper: defaults, then an
// optional YAML file, then PROMPTCHAIN_* environment variables and the legacy
// unprefixed names (GEMINI_API_KEY, MODELO_A_LOGICO, ...). The result is
// validated once and treated as read-only for the life of the process.
package config
