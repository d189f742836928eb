package feed

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

var (
	// ErrNoRecords means the document parsed but produced no usable records.
	ErrNoRecords = errors.New("no usable project records")

	// ErrLoadInFlight is returned by Refresh while another cycle is running.
	ErrLoadInFlight = errors.New("load already in progress")

	// ErrLoadDiscarded means the cycle finished after its context was cancelled.
	ErrLoadDiscarded = errors.New("load result discarded")

	// ErrBodyTooLarge means the document exceeded the size limit.
	ErrBodyTooLarge = errors.New("source document too large")

	// ErrUnsupportedCharset is returned by Decode for unknown charset names.
	ErrUnsupportedCharset = errors.New("unsupported charset")

	// ErrUnsupportedSource is returned by NewSource for locations it cannot read.
	ErrUnsupportedSource = errors.New("unsupported source location")
)

// UserMessage is a load failure rendered for people rather than logs.
type UserMessage struct {
	Message string `json:"message"`
	Action  string `json:"action"`
	Code    string `json:"code"`
}

func (m UserMessage) String() string {
	return fmt.Sprintf("%s. %s (Error: %s)", m.Message, m.Action, m.Code)
}

// errorTarget matches a sentinel or typed error anywhere in the chain.
type errorTarget struct {
	match func(error) bool
	msg   UserMessage
}

// errorPattern matches on the error text, case-insensitively.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

var (
	msgStatus = UserMessage{
		Message: "The projects source answered with an error status",
		Action:  "Check that the CSV URL is published and publicly readable",
		Code:    "SRC001",
	}
	msgNotFound = UserMessage{
		Message: "The projects source could not be found",
		Action:  "Check PROJECTS_CSV_URL points at an existing file or URL",
		Code:    "SRC002",
	}
	msgConnection = UserMessage{
		Message: "Could not connect to the projects source",
		Action:  "Check the host is reachable; the previous list is still shown",
		Code:    "SRC003",
	}
	msgTimeout = UserMessage{
		Message: "Fetching the projects source timed out",
		Action:  "Try again later or raise PROJECTS_FETCH_TIMEOUT",
		Code:    "SRC004",
	}
	msgTooLarge = UserMessage{
		Message: "The projects document is larger than allowed",
		Action:  "Trim the sheet or raise PROJECTS_CSV_MAX_BYTES",
		Code:    "SRC005",
	}
	msgBadSource = UserMessage{
		Message: "The projects source location is not supported",
		Action:  "Use an http(s) URL, a file:// URL or a local path",
		Code:    "SRC006",
	}
	msgNoRecords = UserMessage{
		Message: "The projects document has no usable rows",
		Action:  "Make sure the header row is present and each row has id, title and summary",
		Code:    "PARSE001",
	}
	msgCharset = UserMessage{
		Message: "The configured character set is not supported",
		Action:  "Set PROJECTS_CSV_CHARSET to utf-8, windows-1252 or iso-8859-1",
		Code:    "PARSE002",
	}
	msgInFlight = UserMessage{
		Message: "A refresh is already running",
		Action:  "Wait a moment and check the status again",
		Code:    "LOAD001",
	}
	msgCancelled = UserMessage{
		Message: "The refresh was cancelled before it finished",
		Action:  "Start a new refresh when ready",
		Code:    "LOAD002",
	}
	msgUnknown = UserMessage{
		Message: "An unexpected error occurred while loading projects",
		Action:  "Check the server logs for the load ID",
		Code:    "ERR000",
	}
)

// errorTargets is checked before errorPatterns. First match wins.
var errorTargets = []errorTarget{
	{match: func(err error) bool { var se *StatusError; return errors.As(err, &se) }, msg: msgStatus},
	{match: func(err error) bool { return errors.Is(err, ErrLoadDiscarded) }, msg: msgCancelled},
	{match: func(err error) bool { return errors.Is(err, ErrLoadInFlight) }, msg: msgInFlight},
	{match: func(err error) bool { return errors.Is(err, ErrNoRecords) }, msg: msgNoRecords},
	{match: func(err error) bool { return errors.Is(err, ErrBodyTooLarge) }, msg: msgTooLarge},
	{match: func(err error) bool { return errors.Is(err, ErrUnsupportedCharset) }, msg: msgCharset},
	{match: func(err error) bool { return errors.Is(err, ErrUnsupportedSource) }, msg: msgBadSource},
	{match: func(err error) bool { return errors.Is(err, fs.ErrNotExist) }, msg: msgNotFound},
	{match: func(err error) bool { return errors.Is(err, context.DeadlineExceeded) }, msg: msgTimeout},
	{match: func(err error) bool { return errors.Is(err, context.Canceled) }, msg: msgCancelled},
}

// errorPatterns catches transport errors that carry no usable sentinel.
var errorPatterns = []errorPattern{
	{pattern: "connection refused", msg: msgConnection},
	{pattern: "connection reset", msg: msgConnection},
	{pattern: "no such host", msg: msgConnection},
	{pattern: "timeout", msg: msgTimeout},
	{pattern: "no such file", msg: msgNotFound},
}

// MapError converts a load error into a UserMessage.
// Returns an empty UserMessage for a nil error.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	for _, t := range errorTargets {
		if t.match(err) {
			return t.msg
		}
	}

	errStr := strings.ToLower(err.Error())
	for _, p := range errorPatterns {
		if strings.Contains(errStr, p.pattern) {
			return p.msg
		}
	}

	return msgUnknown
}
