package bookshelf

import (
	"io"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
)

// maxBodyBytes matches the API Gateway proxy payload limit.
const maxBodyBytes = 6 << 20

// ServeHTTP lets the router run outside Lambda, e.g. for local development.
// The request is converted into a proxy event and handled by Handle.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, req.Body, maxBodyBytes))
	if err != nil {
		writeResponse(w, respondError(validationError("request body too large or unreadable")))
		return
	}

	resp, _ := r.Handle(req.Context(), events.APIGatewayProxyRequest{
		HTTPMethod: req.Method,
		Path:       req.URL.Path,
		Body:       string(body),
	})
	writeResponse(w, resp)
}

func writeResponse(w http.ResponseWriter, resp events.APIGatewayProxyResponse) {
	for k, v := range resp.Headers {
		w.Header().Set(k, v)
	}
	w.WriteHeader(resp.StatusCode)
	_, _ = io.WriteString(w, resp.Body)
}
