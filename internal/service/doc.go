// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and repositories
// (defined in internal/store) to fulfill application features.
//
// Services receive their dependencies through constructor injection and
// express storage needs through repository interfaces defined in this
// package, so they never depend on a specific database implementation.
// Multi-step operations apply transactional boundaries through
// store.RunInTransaction. Domain and store errors are translated into
// service errors that the API layer maps to HTTP status codes.
package service
