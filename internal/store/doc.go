// Package store defines the persistence interfaces for the application's
// entities along with the sentinel errors store implementations return.
// Concrete implementations live under internal/platform.
package store
