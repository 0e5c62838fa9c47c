// Package api defines the HTTP surface: request and response schemas, the
// route table, and handlers that translate parsed inputs into service calls.
package api
