// Package service contains the application use cases: the prompt generation
// modes and the favorites collection. Services receive their collaborators
// through constructor injection and depend on interfaces (store.FavoriteStore,
// the generation components) rather than on concrete backends or providers.
//
// Service methods return sentinel errors for expected conditions and wrap
// unexpected ones in service error types; callers use errors.Is/errors.As and
// the API layer maps them to HTTP status codes.
package service
