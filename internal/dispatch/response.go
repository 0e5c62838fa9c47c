package dispatch

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
)

// responseKind discriminates the serializable response variants. It replaces
// the duck-typed "looks like a schema" inspection the wrapper would otherwise
// need: handlers state explicitly which shape they return.
type responseKind int

const (
	kindNone responseKind = iota
	kindItem
	kindItemStatus
	kindList
	kindRaw
)

// Response is the tagged union of values a handler may return.
// Construct it with Item, ItemWithStatus, List, or Raw.
type Response struct {
	kind   responseKind
	item   any
	items  []any
	status int
	raw    http.HandlerFunc
}

// Item returns a response serializing a single schema value with the
// configured success status.
func Item(v any) Response {
	return Response{kind: kindItem, item: v}
}

// ItemWithStatus returns a response serializing a single schema value with
// an explicit status code, overriding the configured success status.
func ItemWithStatus(v any, status int) Response {
	return Response{kind: kindItemStatus, item: v, status: status}
}

// List returns a response serializing a sequence of schema values as a JSON
// array. The sequence must be non-empty and homogeneous; violating that is a
// programmer error and panics during serialization.
func List(items ...any) Response {
	return Response{kind: kindList, items: items}
}

// Raw returns a passthrough response: the handler function writes the
// response itself and the wrapper performs no serialization.
func Raw(h http.HandlerFunc) Response {
	return Response{kind: kindRaw, raw: h}
}

// InvalidModelListError is the panic value raised when a List response does
// not hold a non-empty homogeneous sequence of schema values. It signals a
// programmer error in the handler, so it is not converted to a client-facing
// HTTP error by this layer; the router's recoverer turns it into a generic 500.
type InvalidModelListError struct {
	Items []any
}

func (e *InvalidModelListError) Error() string {
	return fmt.Sprintf("dispatch: response is not a homogeneous list of models: %v", e.Items)
}

// write serializes the response according to its kind.
func (res Response) write(w http.ResponseWriter, r *http.Request, status int, excludeEmpty bool, log *slog.Logger) {
	switch res.kind {
	case kindRaw:
		res.raw(w, r)

	case kindItem:
		writeBody(w, marshalItem(res.item, excludeEmpty), status, log)

	case kindItemStatus:
		writeBody(w, marshalItem(res.item, excludeEmpty), res.status, log)

	case kindList:
		if !isHomogeneousList(res.items) {
			panic(&InvalidModelListError{Items: res.items})
		}
		payloads := make([]string, 0, len(res.items))
		for _, item := range res.items {
			payloads = append(payloads, string(marshalItem(item, excludeEmpty)))
		}
		writeBody(w, []byte("["+strings.Join(payloads, ", ")+"]"), status, log)

	default:
		panic("dispatch: handler returned an empty response with no error")
	}
}

// isHomogeneousList reports whether items is a non-empty sequence whose
// elements all share one concrete type.
func isHomogeneousList(items []any) bool {
	if len(items) == 0 {
		return false
	}
	first := reflect.TypeOf(items[0])
	if first == nil {
		return false
	}
	for _, item := range items[1:] {
		if reflect.TypeOf(item) != first {
			return false
		}
	}
	return true
}

// marshalItem serializes one schema value. With excludeEmpty set, top-level
// null members are removed, so optional schema fields use pointer types.
// Key order is deterministic in both paths, making repeated serialization of
// the same value byte-identical.
func marshalItem(v any, excludeEmpty bool) []byte {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("dispatch: response value is not serializable: %v", err))
	}

	if !excludeEmpty || len(raw) == 0 || raw[0] != '{' {
		return raw
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return raw
	}
	for key, value := range fields {
		if string(value) == "null" {
			delete(fields, key)
		}
	}
	pruned, err := json.Marshal(fields)
	if err != nil {
		return raw
	}
	return pruned
}

// writeBody sends an already-serialized JSON body with the given status.
func writeBody(w http.ResponseWriter, body []byte, status int, log *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Error("failed to write JSON response", slog.String("error", err.Error()))
	}
}
