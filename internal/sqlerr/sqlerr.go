// Package sqlerr handles database driver errors.
//
// It parses error codes from the database driver and converts them
// into application errors (e.g. a foreign key violation becomes an
// InvalidReference error, a unique violation a Conflict).
package sqlerr
