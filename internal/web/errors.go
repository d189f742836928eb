package web

// errors.go provides unified error response handling for the web layer.
//
// The error flow:
//  1. Handler encounters an error
//  2. Calls respondError(w, r, err, statusCode)
//  3. Error is mapped to a user message (web errors here, load errors via feed.MapError)
//  4. Technical error is logged with the request ID for correlation
//  5. User message is rendered as JSON, an HTML page or plain text

import (
	"errors"
	"net/http"
	"strings"

	"github.com/JonMunkholm/portfolio/internal/feed"
	"github.com/JonMunkholm/portfolio/internal/logging"
	"github.com/JonMunkholm/portfolio/internal/web/templates"
)

var (
	errNotFound         = errors.New("page not found")
	errMethodNotAllowed = errors.New("method not allowed")
	errProjectNotFound  = errors.New("project not found")
	errRateLimited      = errors.New("rate limit exceeded")
)

// webMessages covers errors raised by the web layer itself.
var webMessages = []struct {
	target error
	msg    feed.UserMessage
}{
	{errNotFound, feed.UserMessage{
		Message: "The page you asked for does not exist",
		Action:  "Check the address or go back to the home page",
		Code:    "WEB001",
	}},
	{errMethodNotAllowed, feed.UserMessage{
		Message: "This method is not allowed here",
		Action:  "Check the API documentation for the right method",
		Code:    "WEB002",
	}},
	{errProjectNotFound, feed.UserMessage{
		Message: "No project with that ID",
		Action:  "List projects at /api/projects to find valid IDs",
		Code:    "WEB003",
	}},
	{errRateLimited, feed.UserMessage{
		Message: "Too many requests",
		Action:  "Please wait a moment before trying again",
		Code:    "RATE001",
	}},
}

// ErrorResponse represents the JSON structure for API error responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

func userMessage(err error) feed.UserMessage {
	for _, m := range webMessages {
		if errors.Is(err, m.target) {
			return m.msg
		}
	}
	return feed.MapError(err)
}

// respondError logs the technical error and answers with a user message
// in the format the client asked for.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	msg := userMessage(err)

	logger := logging.FromContext(r.Context())
	attrs := []any{
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", msg.Code,
	}
	if statusCode >= 500 {
		logger.Error("request error", attrs...)
	} else {
		logger.Warn("request error", attrs...)
	}

	switch {
	case wantsJSON(r):
		writeJSON(w, statusCode, ErrorResponse{
			Error:   msg.Message,
			Message: msg.Message,
			Action:  msg.Action,
			Code:    msg.Code,
		})
	case wantsHTML(r):
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(statusCode)
		page := templates.Page("Error", templates.ErrorAlert(msg.Message, msg.Action, msg.Code))
		if err := page.Render(r.Context(), w); err != nil {
			logger.Error("render error page", "error", err)
		}
	default:
		http.Error(w, msg.Message+" ("+msg.Code+")", statusCode)
	}
}

// wantsJSON checks if the client prefers a JSON response.
func wantsJSON(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		return true
	}
	// API routes default to JSON
	return strings.HasPrefix(r.URL.Path, "/api/")
}

// wantsHTML checks if the client is a browser asking for a page.
func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
