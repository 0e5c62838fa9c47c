// Package domain contains the core business entities and their invariants,
// independent of HTTP and persistence concerns.
package domain
