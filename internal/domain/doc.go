// Package domain contains the core entities of the prompt chain: generation
// requests and results, character profiles and saved favorites. It is
// independent of any provider, transport or storage mechanism.
package domain
