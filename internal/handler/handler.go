// Package handler is the HTTP layer of the API.
//
// Handlers bind and validate requests through the validation package,
// call the service layer and write its response envelope. Errors are
// returned untouched to the global error handler.
package handler
