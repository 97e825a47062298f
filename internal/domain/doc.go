// Package domain contains the core entities of the task-tracking
// application: users and tasks. Entities validate themselves and carry
// no persistence or transport concerns.
package domain
