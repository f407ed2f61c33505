// Package errors defines the application's error vocabulary: typed AppError
// values for internal layers, renderable APIError responses for handlers,
// and RFC 7807 problem details with a centralized handler that maps any
// error onto the right HTTP status and problem type.
package errors
