// Package api implements the HTTP handlers for the task-tracking API.
// Handlers decode and validate request bodies, delegate to the services,
// and map service-level failures onto HTTP status codes.
package api
