// Package api handles incoming HTTP requests, request validation, and
// response formatting for the task endpoints. It adapts HTTP concerns to
// service operations and maps internal errors to sanitized status codes
// and messages.
package api
