package bookshelf

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
)

// created is the body of a successful create.
type created struct {
	BookID string `json:"bookId"`
}

// listing is the body of a successful list.
type listing struct {
	Items            []Book `json:"items"`
	Count            int    `json:"count"`
	LastEvaluatedKey string `json:"lastEvaluatedKey,omitempty"`
}

// deleted is the body of a successful delete.
type deleted struct {
	Deleted bool   `json:"deleted"`
	BookID  string `json:"bookId"`
}

// internalErrorBody is sent when a response cannot be encoded.
const internalErrorBody = `{"code":"INTERNAL_ERROR","message":"unexpected error"}`

// respond encodes body as the JSON payload of a proxy response. Non-ASCII
// text is written as UTF-8 and HTML characters are not escaped.
func respond(status int, body any) events.APIGatewayProxyResponse {
	payload, err := encodeJSON(body)
	if err != nil {
		status, payload = http.StatusInternalServerError, internalErrorBody
	}

	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       payload,
	}
}

func encodeJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

func respondError(err *APIError) events.APIGatewayProxyResponse {
	return respond(err.Status(), err)
}
