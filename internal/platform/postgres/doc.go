// Package postgres provides PostgreSQL implementations of the store
// interfaces, translating driver-level errors into the store error taxonomy.
package postgres
