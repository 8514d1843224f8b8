package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// These messages are shown to users verbatim.
var (
	ErrEmptyResponse   = errors.New("Empty response from server")   //nolint:staticcheck // user-facing text
	ErrInvalidResponse = errors.New("Invalid response from server") //nolint:staticcheck // user-facing text
)

// StatusError is returned for non-2xx responses
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return e.Message
}

// IsStatus reports whether err is a *StatusError with the given code
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}

// maxErrorText bounds the raw body text used as an error message
const maxErrorText = 500

// statusError builds the error for a non-2xx response from its body
func statusError(resp *http.Response, body []byte) *StatusError {
	return &StatusError{
		Code:    resp.StatusCode,
		Message: errorMessage(resp.StatusCode, resp.Header.Get("Content-Type"), body),
	}
}

// errorMessage picks the most useful message from an error body:
// a JSON "error" or "message" field, then the body text, then "<code> <status text>".
func errorMessage(code int, contentType string, body []byte) string {
	var payload struct {
		Error   interface{} `json:"error"`
		Message interface{} `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if msg := textValue(payload.Error); msg != "" {
			return msg
		}
		if msg := textValue(payload.Message); msg != "" {
			return msg
		}
	}

	text := strings.TrimSpace(string(body))
	if looksLikeHTML(contentType, text) {
		text = htmlText(body)
	}
	if text != "" {
		if len(text) > maxErrorText {
			cut := maxErrorText
			for cut > 0 && !utf8.RuneStart(text[cut]) {
				cut--
			}
			text = text[:cut] + "..."
		}
		return text
	}

	return fmt.Sprintf("%d %s", code, http.StatusText(code))
}

// textValue renders a JSON field as a message; objects and arrays are re-encoded
func textValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(data)
	}
}

func looksLikeHTML(contentType, text string) bool {
	if strings.Contains(strings.ToLower(contentType), "html") {
		return true
	}
	lower := strings.ToLower(text)
	return strings.HasPrefix(lower, "<!doctype html") || strings.HasPrefix(lower, "<html")
}

// htmlText reduces an HTML error page (typically from a proxy) to its title, or its visible
// text when there is no title
func htmlText(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return strings.TrimSpace(string(body))
	}

	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}

	doc.Find("script, style").Remove()
	return strings.Join(strings.Fields(doc.Find("body").Text()), " ")
}
