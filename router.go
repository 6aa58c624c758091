package bookshelf

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RouterOptions configures a Router.
type RouterOptions struct {
	Logger     zerolog.Logger // Request and failure log. Default is a no-op logger.
	Collection string         // Path segment naming the book collection. Default is "books".
	ScanLimit  int            // Maximum books per list response. Default is DefaultScanLimit.
	NewID      func() string  // Id generator for new books. Default is a random UUID.
}

// request is what a handler sees of an inbound event.
type request struct {
	params params
	body   string
}

// handlerFunc performs one operation and returns the status and payload of
// a successful response. Errors are classified by the router.
type handlerFunc func(ctx context.Context, req *request) (int, any, error)

// Router dispatches API Gateway proxy events to the book operations. It
// holds no mutable state and is safe for concurrent use.
type Router struct {
	store  Store
	opts   RouterOptions
	routes []route
}

// NewRouter creates a Router backed by store.
func NewRouter(store Store, opts ...func(*RouterOptions)) *Router {
	options := RouterOptions{
		Logger:     zerolog.Nop(),
		Collection: "books",
		ScanLimit:  DefaultScanLimit,
		NewID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.Collection == "" {
		options.Collection = "books"
	}
	if options.ScanLimit <= 0 || options.ScanLimit > DefaultScanLimit {
		options.ScanLimit = DefaultScanLimit
	}
	if options.NewID == nil {
		options.NewID = uuid.NewString
	}

	r := &Router{store: store, opts: options}
	list, item := collectionPatterns(options.Collection)

	// Order matters: an item path also ends with the collection segment
	// when the id equals it, and must resolve to the item route.
	r.routes = []route{
		{method: http.MethodPost, pattern: list, handle: r.createBook},
		{method: http.MethodGet, pattern: item, handle: r.getBook},
		{method: http.MethodGet, pattern: list, handle: r.listBooks},
		{method: http.MethodPut, pattern: item, handle: r.updateBook},
		{method: http.MethodDelete, pattern: item, handle: r.deleteBook},
	}
	return r
}

// Handle is the Lambda entry point. It never returns an error: every
// failure is reported through the response.
func (r *Router) Handle(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	r.opts.Logger.Info().
		Str("method", event.HTTPMethod).
		Str("path", event.Path).
		Msg("request")

	status, body, err := r.dispatch(ctx, event)
	if err != nil {
		return r.fail(err), nil
	}
	return respond(status, body), nil
}

func (r *Router) dispatch(ctx context.Context, event events.APIGatewayProxyRequest) (status int, body any, err error) {
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("panic: %v", v)
		}
	}()

	for _, rt := range r.routes {
		if rt.method != event.HTTPMethod {
			continue
		}
		values, ok := rt.pattern.match(event.Path)
		if !ok {
			continue
		}

		payload, decodeErr := decodeBody(event)
		if decodeErr != nil {
			return 0, nil, validationError(decodeErr.Error())
		}
		return rt.handle(ctx, &request{params: values, body: payload})
	}

	return 0, nil, errRouteNotFound
}

// fail maps an error to its response. Only APIError messages reach the
// caller; everything else is logged and reported generically.
func (r *Router) fail(err error) events.APIGatewayProxyResponse {
	var (
		apiErr   *APIError
		storeErr *StoreError
	)

	switch {
	case errors.As(err, &apiErr):
		return respondError(apiErr)

	case errors.As(err, &storeErr):
		r.opts.Logger.Error().
			Err(err).
			Str("op", storeErr.Op).
			Str("code", storeErr.Code).
			Msg("dynamodb error")
		return respondError(errStore)

	default:
		r.opts.Logger.Error().Err(err).Msg("unhandled error")
		return respondError(errInternal)
	}
}

func decodeBody(event events.APIGatewayProxyRequest) (string, error) {
	if !event.IsBase64Encoded || event.Body == "" {
		return event.Body, nil
	}

	raw, err := base64.StdEncoding.DecodeString(event.Body)
	if err != nil {
		return "", errInvalidJSON
	}
	return string(raw), nil
}
