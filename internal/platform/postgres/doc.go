// Package postgres provides PostgreSQL implementations of the store
// interfaces using the pgx stdlib driver. It maps driver-level errors
// to the sentinel errors defined in the store package.
package postgres
