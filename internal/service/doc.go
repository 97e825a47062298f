// Package service contains the application services that sit between the
// HTTP layer and the stores. TaskService applies the cache-aside pattern
// around task persistence; authentication lives in the auth subpackage.
package service
