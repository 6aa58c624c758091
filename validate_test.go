package bookshelf

import (
	"testing"
)

func TestParseFields(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "object", body: `{"title":"Dune"}`},
		{name: "empty object", body: `{}`},
		{name: "malformed", body: `{"title":`, wantErr: true},
		{name: "array", body: `["Dune"]`, wantErr: true},
		{name: "string", body: `"Dune"`, wantErr: true},
		{name: "null", body: `null`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseFields(tt.body)
			if tt.wantErr && err != errInvalidJSON {
				t.Errorf("Expected errInvalidJSON, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
		})
	}
}

func TestCheckFieldsCreate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
		want    map[string]string
	}{
		{
			name: "defaults status",
			body: `{"title":"Dune","author":"Herbert"}`,
			want: map[string]string{"title": "Dune", "author": "Herbert", "status": "未読", "publishedDate": ""},
		},
		{
			name: "trims title and author",
			body: `{"title":"  Dune ","author":"\tHerbert\n","status":"読了"}`,
			want: map[string]string{"title": "Dune", "author": "Herbert", "status": "読了", "publishedDate": ""},
		},
		{
			name: "keeps published date",
			body: `{"title":"Dune","author":"Herbert","publishedDate":"1965-08-01"}`,
			want: map[string]string{"title": "Dune", "author": "Herbert", "status": "未読", "publishedDate": "1965-08-01"},
		},
		{
			name: "null status is the default",
			body: `{"title":"Dune","author":"Herbert","status":null}`,
			want: map[string]string{"title": "Dune", "author": "Herbert", "status": "未読", "publishedDate": ""},
		},
		{name: "missing title", body: `{"author":"Herbert"}`, message: "title is required"},
		{name: "blank title", body: `{"title":"   ","author":"Herbert"}`, message: "title is required"},
		{name: "null title", body: `{"title":null,"author":"Herbert"}`, message: "title is required"},
		{name: "missing author", body: `{"title":"Dune"}`, message: "author is required"},
		{name: "title checked before author", body: `{}`, message: "title is required"},
		{name: "unknown status", body: `{"title":"Dune","author":"Herbert","status":"reading"}`, message: "status must be 未読 or 読了"},
		{name: "non-string title", body: `{"title":42,"author":"Herbert"}`, message: "title must be a string"},
		{name: "non-string date", body: `{"title":"Dune","author":"Herbert","publishedDate":1965}`, message: "publishedDate must be a string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields, err := parseFields(tt.body)
			if err != nil {
				t.Fatalf("Failed to parse body: %v", err)
			}

			values, apiErr := checkFields(fields, createRules, false)
			if tt.message != "" {
				if apiErr == nil {
					t.Fatalf("Expected error %q, got values %v", tt.message, values)
				}
				if apiErr.Code != CodeValidation || apiErr.Message != tt.message {
					t.Errorf("Expected %s %q, got %s %q", CodeValidation, tt.message, apiErr.Code, apiErr.Message)
				}
				return
			}

			if apiErr != nil {
				t.Fatalf("Expected no error, got %v", apiErr)
			}
			for k, v := range tt.want {
				if values[k] != v {
					t.Errorf("Expected %s %q, got %q", k, v, values[k])
				}
			}
		})
	}
}

func TestCheckFieldsUpdate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
		want    map[string]string
	}{
		{name: "empty object", body: `{}`, want: map[string]string{}},
		{name: "title only", body: `{"title":" Children of Dune "}`, want: map[string]string{"title": "Children of Dune"}},
		{name: "status only", body: `{"status":"読了"}`, want: map[string]string{"status": "読了"}},
		{name: "blank title", body: `{"title":""}`, message: "title must be non-empty"},
		{name: "null author", body: `{"author":null}`, message: "author must be non-empty"},
		{name: "empty status", body: `{"status":""}`, message: "status must be 未読 or 読了"},
		{name: "unknown status", body: `{"status":"done"}`, message: "status must be 未読 or 読了"},
		{name: "non-string status", body: `{"status":true}`, message: "status must be a string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields, err := parseFields(tt.body)
			if err != nil {
				t.Fatalf("Failed to parse body: %v", err)
			}

			values, apiErr := checkFields(fields, updateRules, true)
			if tt.message != "" {
				if apiErr == nil || apiErr.Message != tt.message {
					t.Fatalf("Expected error %q, got %v", tt.message, apiErr)
				}
				return
			}

			if apiErr != nil {
				t.Fatalf("Expected no error, got %v", apiErr)
			}
			if len(values) != len(tt.want) {
				t.Errorf("Expected %d values, got %v", len(tt.want), values)
			}
			for k, v := range tt.want {
				if values[k] != v {
					t.Errorf("Expected %s %q, got %q", k, v, values[k])
				}
			}
		})
	}
}

func TestMergeBook(t *testing.T) {
	current := Book{
		ID:            "B1",
		Title:         "Dune",
		Author:        "Herbert",
		Status:        StatusUnread,
		PublishedDate: "1965-08-01",
	}

	t.Run("empty values keep the book", func(t *testing.T) {
		if got := mergeBook(current, map[string]string{}); got != current {
			t.Errorf("Expected %+v, got %+v", current, got)
		}
	})

	t.Run("applies present values", func(t *testing.T) {
		got := mergeBook(current, map[string]string{"title": "Dune Messiah", "status": "読了"})
		want := current
		want.Title = "Dune Messiah"
		want.Status = StatusRead
		if got != want {
			t.Errorf("Expected %+v, got %+v", want, got)
		}
	})

	t.Run("empty published date is ignored", func(t *testing.T) {
		got := mergeBook(current, map[string]string{"publishedDate": ""})
		if got.PublishedDate != "1965-08-01" {
			t.Errorf("Expected published date to be kept, got %q", got.PublishedDate)
		}
	})

	t.Run("never changes the id", func(t *testing.T) {
		got := mergeBook(current, map[string]string{"bookId": "B2"})
		if got.ID != "B1" {
			t.Errorf("Expected id B1, got %s", got.ID)
		}
	})
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusUnread, StatusRead} {
		if !s.Valid() {
			t.Errorf("Expected %q to be valid", s)
		}
	}
	for _, s := range []Status{"", "unread", "未読 "} {
		if s.Valid() {
			t.Errorf("Expected %q to be invalid", s)
		}
	}
}
