package storefront

import (
	"fmt"
	"strings"
)

// HTTPError is returned when the Storefront API answers with a non-2xx status
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("storefront API returned status %d: %s", e.StatusCode, truncate(e.Body, 200))
}

// TransportError is returned when the Storefront API could not be reached or
// its response could not be read
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "storefront request failed: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// GraphQLErrorEntry is one entry of a GraphQL errors array
type GraphQLErrorEntry struct {
	Message    string         `json:"message"`
	Path       []any          `json:"path,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

// GraphQLError is returned when the response carries GraphQL errors
type GraphQLError struct {
	Errors []GraphQLErrorEntry
}

func (e *GraphQLError) Error() string {
	messages := make([]string, 0, len(e.Errors))
	for _, entry := range e.Errors {
		messages = append(messages, entry.Message)
	}
	return "storefront API errors: " + strings.Join(messages, "; ")
}

// Code returns the extensions code of the first error, if any
func (e *GraphQLError) Code() string {
	if len(e.Errors) == 0 {
		return ""
	}
	code, _ := e.Errors[0].Extensions["code"].(string)
	return code
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
