// Package store declares the persistence interfaces, the request-scoped
// Session abstraction, and the error taxonomy shared by all store
// implementations.
package store
