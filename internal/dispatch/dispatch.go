package dispatch

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/dmaus/userhub-api/internal/api/shared"
	"github.com/dmaus/userhub-api/internal/httperr"
	"github.com/dmaus/userhub-api/internal/platform/logger"
	"github.com/dmaus/userhub-api/internal/store"
)

// Options declares what a wrapped handler expects from the request and how
// its result is serialized. Query, Body, and Form are factories returning a
// fresh schema value to parse the corresponding input into; leaving one nil
// skips that input.
type Options struct {
	// Query, Body, Form produce a pointer to a zero schema struct per request.
	// Body and Form are mutually exclusive on one route: both read the
	// request body, so whichever runs second always reports missing fields.
	Query func() any
	Body  func() any
	Form  func() any

	// BodyMany parses the body as a JSON array of Body schemas, reporting
	// every failing element together.
	BodyMany bool

	// SuccessStatus is the status code for successful Item and List
	// responses. Zero means 200.
	SuccessStatus int

	// ExcludeEmpty drops top-level null members from serialized responses.
	ExcludeEmpty bool
}

// Context carries the parsed inputs and the request-scoped session into the
// handler. Inputs hold the schema values produced by the Options factories,
// or nil when the corresponding schema was not declared.
type Context struct {
	Query    any
	Body     any
	BodyList []any
	Form     any

	// Session is the request's unit of work, nil when the route was wired
	// without a session factory. The handler (or its service) commits it;
	// the wrapper rolls it back on persistence errors and discards it
	// otherwise.
	Session store.Session

	Logger *slog.Logger
}

// HandlerFunc is a route handler reduced to business logic: it receives
// already-typed inputs and returns either a Response or an error from the
// declared taxonomy.
type HandlerFunc func(r *http.Request, c *Context) (Response, error)

// Wrap builds the http.HandlerFunc for a route: parse the declared schemas,
// answer 400 with the aggregated error buckets before the handler ever runs,
// open a session, dispatch, convert declared errors, serialize the result.
//
// Error semantics: *httperr.Error values become their own status and
// message; persistence errors roll the session back and become a 500 whose
// body carries the error detail; anything else is logged and answered with
// a bare 500.
func Wrap(sessions store.SessionFactory, opts Options, h HandlerFunc) http.HandlerFunc {
	successStatus := opts.SuccessStatus
	if successStatus == 0 {
		successStatus = http.StatusOK
	}

	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		c := &Context{Logger: log}

		// Parse phase. Failures accumulate per input bucket; parsing never
		// short-circuits, so one response reports every invalid input.
		buckets := make(map[string]any)

		if opts.Query != nil {
			target := opts.Query()
			if fieldErrs := decodeParams(NormalizeQuery(r.URL.Query()), target); len(fieldErrs) > 0 {
				buckets[bucketQuery] = fieldErrs
			} else {
				c.Query = target
			}
		}

		if opts.Body != nil {
			raw, err := io.ReadAll(r.Body)
			if err != nil {
				buckets[bucketBody] = []FieldError{{Field: "root", Message: "could not read request body"}}
			} else if opts.BodyMany {
				parsed, failures := decodeJSONMany(raw, opts.Body)
				if failures != nil {
					buckets[bucketBody] = failures
				} else {
					c.BodyList = parsed
				}
			} else {
				target := opts.Body()
				if fieldErrs := decodeJSON(raw, target); len(fieldErrs) > 0 {
					buckets[bucketBody] = fieldErrs
				} else {
					c.Body = target
				}
			}
		}

		if opts.Form != nil {
			target := opts.Form()
			if err := r.ParseForm(); err != nil {
				buckets[bucketForm] = []FieldError{{Field: "root", Message: "is not a valid form body"}}
			} else if fieldErrs := decodeParams(NormalizeQuery(r.PostForm), target); len(fieldErrs) > 0 {
				buckets[bucketForm] = fieldErrs
			} else {
				c.Form = target
			}
		}

		if len(buckets) > 0 {
			shared.RespondWithError(w, r, http.StatusBadRequest, buckets)
			return
		}

		// Dispatch phase.
		sessionDone := false
		if sessions != nil {
			sess, err := sessions.Begin(r.Context())
			if err != nil {
				log.Error("failed to begin request session", slog.String("error", err.Error()))
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}
			c.Session = sess
			defer func() {
				// Discard whatever the handler did not commit. Rollback of a
				// committed *sql.Tx is a no-op error by contract.
				if !sessionDone {
					_ = sess.Rollback()
				}
			}()
		}

		res, err := h(r, c)
		if err != nil {
			if httpErr, ok := httperr.As(err); ok {
				shared.RespondWithError(w, r, httpErr.Code, httpErr.Message)
				return
			}

			if store.IsStoreError(err) {
				if c.Session != nil {
					if rbErr := c.Session.Rollback(); rbErr != nil {
						log.Error("failed to roll back session", slog.String("error", rbErr.Error()))
					}
					sessionDone = true
				}
				log.Error("persistence failure during dispatch",
					slog.String("error", err.Error()),
					slog.String("path", r.URL.Path))
				shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
				return
			}

			// Undeclared errors are fatal to the request: nothing beyond a
			// generic 500 reaches the client.
			log.Error("unhandled error during dispatch",
				slog.String("error", err.Error()),
				slog.String("path", r.URL.Path))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		// Serialization phase.
		res.write(w, r, successStatus, opts.ExcludeEmpty, log)
	}
}
