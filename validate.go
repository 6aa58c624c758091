package bookshelf

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// statusRule is the validator tag accepting exactly the declared statuses.
var statusRule = fmt.Sprintf("oneof=%s %s", StatusUnread, StatusRead)

var statusMessage = fmt.Sprintf("status must be %s or %s", StatusUnread, StatusRead)

// fieldRule describes how one body field is normalized and checked.
// Rules are evaluated in declaration order and the first failure wins.
type fieldRule struct {
	field    string
	trim     bool   // trim surrounding whitespace before checking
	fallback string // value used when the field is absent, null or empty
	tag      string // validator tag; empty means any string is accepted
	message  string // reported when tag fails
}

var createRules = []fieldRule{
	{field: "title", trim: true, tag: "required", message: "title is required"},
	{field: "author", trim: true, tag: "required", message: "author is required"},
	{field: "status", fallback: string(StatusUnread), tag: statusRule, message: statusMessage},
	{field: "publishedDate"},
}

var updateRules = []fieldRule{
	{field: "title", trim: true, tag: "required", message: "title must be non-empty"},
	{field: "author", trim: true, tag: "required", message: "author must be non-empty"},
	{field: "status", tag: statusRule, message: statusMessage},
	{field: "publishedDate"},
}

var errInvalidJSON = errors.New("invalid JSON body")

// bookFields is a decoded request body. Keeping the raw values lets
// handlers tell an absent field from a null or empty one.
type bookFields map[string]json.RawMessage

func parseFields(body string) (bookFields, error) {
	var fields bookFields
	if err := json.Unmarshal([]byte(body), &fields); err != nil {
		return nil, errInvalidJSON
	}
	if fields == nil {
		return nil, errInvalidJSON
	}
	return fields, nil
}

// str returns the string value of name. A JSON null decodes to "".
func (f bookFields) str(name string) (value string, present bool, err error) {
	raw, ok := f[name]
	if !ok {
		return "", false, nil
	}
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", true, fmt.Errorf("%s must be a string", name)
	}
	return value, true, nil
}

// checkFields applies rules to fields and returns the normalized values by
// field name. With partial set, absent fields are skipped and left out of
// the result.
func checkFields(fields bookFields, rules []fieldRule, partial bool) (map[string]string, *APIError) {
	values := make(map[string]string, len(rules))
	for _, r := range rules {
		value, present, err := fields.str(r.field)
		if err != nil {
			return nil, validationError(err.Error())
		}
		if !present && partial {
			continue
		}

		if r.trim {
			value = strings.TrimSpace(value)
		}
		if value == "" && r.fallback != "" {
			value = r.fallback
		}
		if r.tag != "" {
			if err := validate.Var(value, r.tag); err != nil {
				return nil, validationError(r.message)
			}
		}
		values[r.field] = value
	}
	return values, nil
}

// newBook builds a book from validated create values.
func newBook(id string, values map[string]string) Book {
	return Book{
		ID:            id,
		Title:         values["title"],
		Author:        values["author"],
		Status:        Status(values["status"]),
		PublishedDate: values["publishedDate"],
	}
}

// mergeBook applies validated update values to current. Fields missing from
// values keep their stored value, and an empty publishedDate never clears
// the stored one.
func mergeBook(current Book, values map[string]string) Book {
	merged := current
	if v, ok := values["title"]; ok {
		merged.Title = v
	}
	if v, ok := values["author"]; ok {
		merged.Author = v
	}
	if v, ok := values["status"]; ok {
		merged.Status = Status(v)
	}
	if v := values["publishedDate"]; v != "" {
		merged.PublishedDate = v
	}
	return merged
}
