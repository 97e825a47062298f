// Package mocks provides hand-written test doubles for the store, cache,
// and auth interfaces. Mocks default to simple in-memory behavior and
// expose Fn hooks for overriding individual operations per test.
package mocks
