// Package assert provides fluent assertion utilities for testing bookshelf
// responses and stored DynamoDB items.
//
// # Usage
//
//	import "github.com/nisimpson/bookshelf/dynamock/assert"
//
//	// Assert on proxy responses
//	assert.Response(t, resp).
//		HasStatus(400).
//		HasErrorCode("VALIDATION_ERROR").
//		HasMessage("title is required")
//
//	// Assert on stored items
//	assert.Item(t, client.Item("B1")).
//		HasAttribute("Title", "Dune").
//		LacksAttribute("PublishedDate")
package assert

import (
	"encoding/json"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ResponseAssertion provides fluent assertions for proxy responses.
type ResponseAssertion struct {
	t    *testing.T
	resp events.APIGatewayProxyResponse
	body map[string]any
}

// Response creates a new ResponseAssertion. The body is decoded lazily, on
// the first assertion that needs it.
func Response(t *testing.T, resp events.APIGatewayProxyResponse) *ResponseAssertion {
	return &ResponseAssertion{t: t, resp: resp}
}

// HasStatus asserts the response status code.
func (a *ResponseAssertion) HasStatus(expected int) *ResponseAssertion {
	a.t.Helper()
	if a.resp.StatusCode != expected {
		a.t.Errorf("expected status %d, got %d (body: %s)", expected, a.resp.StatusCode, a.resp.Body)
	}
	return a
}

// IsJSON asserts the content type header and that the body is a JSON object.
func (a *ResponseAssertion) IsJSON() *ResponseAssertion {
	a.t.Helper()
	if got := a.resp.Headers["Content-Type"]; got != "application/json" {
		a.t.Errorf("expected Content-Type application/json, got %q", got)
	}
	a.decode()
	return a
}

// HasErrorCode asserts the "code" field of an error body.
func (a *ResponseAssertion) HasErrorCode(expected string) *ResponseAssertion {
	a.t.Helper()
	return a.HasStringField("code", expected)
}

// HasMessage asserts the "message" field of an error body.
func (a *ResponseAssertion) HasMessage(expected string) *ResponseAssertion {
	a.t.Helper()
	return a.HasStringField("message", expected)
}

// HasStringField asserts that a top-level field holds the expected string.
func (a *ResponseAssertion) HasStringField(name, expected string) *ResponseAssertion {
	a.t.Helper()
	value, ok := a.decode()[name]
	if !ok {
		a.t.Errorf("body missing field %s", name)
		return a
	}
	str, ok := value.(string)
	if !ok {
		a.t.Errorf("field %s is not a string: %v", name, value)
		return a
	}
	if str != expected {
		a.t.Errorf("field %s expected %q, got %q", name, expected, str)
	}
	return a
}

// LacksField asserts that a top-level field is absent.
func (a *ResponseAssertion) LacksField(name string) *ResponseAssertion {
	a.t.Helper()
	if value, ok := a.decode()[name]; ok {
		a.t.Errorf("expected body to lack field %s, got %v", name, value)
	}
	return a
}

// HasItemCount asserts the length of "items" and that "count" agrees with it.
func (a *ResponseAssertion) HasItemCount(expected int) *ResponseAssertion {
	a.t.Helper()
	body := a.decode()
	items, ok := body["items"].([]any)
	if !ok {
		a.t.Errorf("body field items is not an array: %v", body["items"])
		return a
	}
	if len(items) != expected {
		a.t.Errorf("expected %d items, got %d", expected, len(items))
	}
	if count, _ := body["count"].(float64); int(count) != len(items) {
		a.t.Errorf("count %v does not match %d items", body["count"], len(items))
	}
	return a
}

// Field returns a top-level field of the decoded body.
func (a *ResponseAssertion) Field(name string) any {
	return a.decode()[name]
}

// String returns a top-level string field of the decoded body, or "".
func (a *ResponseAssertion) String(name string) string {
	str, _ := a.decode()[name].(string)
	return str
}

func (a *ResponseAssertion) decode() map[string]any {
	a.t.Helper()
	if a.body != nil {
		return a.body
	}
	a.body = map[string]any{}
	if err := json.Unmarshal([]byte(a.resp.Body), &a.body); err != nil {
		a.t.Errorf("body is not a JSON object: %v (body: %s)", err, a.resp.Body)
	}
	return a.body
}

// ItemAssertion provides fluent assertions for a single DynamoDB item.
type ItemAssertion struct {
	t    *testing.T
	item map[string]types.AttributeValue
}

// Item creates a new ItemAssertion for the given item.
func Item(t *testing.T, item map[string]types.AttributeValue) *ItemAssertion {
	return &ItemAssertion{t: t, item: item}
}

// Exists asserts the item is present.
func (a *ItemAssertion) Exists() *ItemAssertion {
	a.t.Helper()
	if a.item == nil {
		a.t.Error("expected item to exist")
	}
	return a
}

// IsMissing asserts the item is absent.
func (a *ItemAssertion) IsMissing() *ItemAssertion {
	a.t.Helper()
	if a.item != nil {
		a.t.Errorf("expected no item, got %v", a.item)
	}
	return a
}

// HasAttribute asserts that a string attribute holds the expected value.
func (a *ItemAssertion) HasAttribute(name, expected string) *ItemAssertion {
	a.t.Helper()
	attr, ok := a.item[name]
	if !ok {
		a.t.Errorf("item missing attribute %s", name)
		return a
	}
	str, ok := attr.(*types.AttributeValueMemberS)
	if !ok {
		a.t.Errorf("attribute %s is not a string", name)
		return a
	}
	if str.Value != expected {
		a.t.Errorf("attribute %s expected %s, got %s", name, expected, str.Value)
	}
	return a
}

// LacksAttribute asserts that an attribute is not stored.
func (a *ItemAssertion) LacksAttribute(name string) *ItemAssertion {
	a.t.Helper()
	if _, ok := a.item[name]; ok {
		a.t.Errorf("expected item to lack attribute %s", name)
	}
	return a
}
