// Package service implements the business operations over domain entities,
// coordinating the user store, password hashing, and the request session.
package service
