package core

// error_messages.go maps technical errors to user-facing messages.
//
// # Error Codes Reference
//
// When a run fails the user sees a message, an action, and a code they can
// quote when asking for help. Codes are grouped by category:
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - Missing input: The price list file could not be opened
//	          Action: Place prices.csv next to the program or set PRICES_INPUT
//
//	FILE002 - Invalid CSV: The price list is not a valid CSV file
//	          Action: Check quoting around prices such as "1,200"
//
//	FILE003 - Encoding error: The price list is not UTF-8
//	          Action: Save the file as UTF-8
//
//	FILE005 - Empty file: The price list has no header line
//	          Action: Add the header line and item rows
//
// # Row Errors (VAL001-VAL099)
//
//	VAL001 - Unknown category: A row uses a category that cannot be sorted
//	         Action: Use one of 腕輪, 草, 巻物, 杖, 壺
//
//	VAL002 - Malformed price: A buy price is not a whole number
//	         Action: Write prices as digits, optionally with commas
//
//	VAL003 - Malformed row: A row has fewer than five columns
//	         Action: Fill in category, name, uses, state and buy price
//
// # Request Errors (REQ001-REQ099)
//
//	REQ001 - Invalid query: The search parameters are not valid
//	         Action: Choose すべて, 買値 or 売値 and enter digits only
//
// # Default Error (ERR000)
//
//	ERR000 - Unknown error: An unexpected error occurred
//	         Action: Check the log output for details
//
// Sentinel errors are matched with errors.Is first. Plain-text patterns are
// a fallback for errors that crossed a boundary as strings.

import (
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorPattern ties a sentinel and its text form to a user message.
type errorPattern struct {
	sentinel error
	pattern  string
	msg      UserMessage
}

// errorPatterns is checked in order; the first match wins.
var errorPatterns = []errorPattern{
	// =========================================================================
	// File Errors (FILE001-FILE005)
	// =========================================================================
	{
		sentinel: ErrMissingInput,
		pattern:  "missing input",
		msg: UserMessage{
			Message: "The price list file could not be opened",
			Action:  "Place prices.csv next to the program or set PRICES_INPUT",
			Code:    "FILE001",
		},
	},
	{
		sentinel: ErrInvalidCSV,
		pattern:  "invalid csv",
		msg: UserMessage{
			Message: "The price list is not a valid CSV file",
			Action:  `Check quoting around prices such as "1,200"`,
			Code:    "FILE002",
		},
	},
	{
		sentinel: ErrEncoding,
		pattern:  "encoding error",
		msg: UserMessage{
			Message: "The price list is not UTF-8",
			Action:  "Save the file as UTF-8",
			Code:    "FILE003",
		},
	},
	{
		sentinel: ErrEmptyFile,
		pattern:  "empty file",
		msg: UserMessage{
			Message: "The price list has no header line",
			Action:  "Add the header line and item rows",
			Code:    "FILE005",
		},
	},

	// =========================================================================
	// Row Errors (VAL001-VAL003)
	// =========================================================================
	{
		sentinel: ErrUnknownCategory,
		pattern:  "unknown category",
		msg: UserMessage{
			Message: "A row uses a category that cannot be sorted",
			Action:  "Use one of 腕輪, 草, 巻物, 杖, 壺",
			Code:    "VAL001",
		},
	},
	{
		sentinel: ErrMalformedPrice,
		pattern:  "malformed price",
		msg: UserMessage{
			Message: "A buy price is not a whole number",
			Action:  "Write prices as digits, optionally with commas",
			Code:    "VAL002",
		},
	},
	{
		sentinel: ErrMalformedRow,
		pattern:  "malformed row",
		msg: UserMessage{
			Message: "A row has fewer than five columns",
			Action:  "Fill in category, name, uses, state and buy price",
			Code:    "VAL003",
		},
	},

	// =========================================================================
	// Request Errors (REQ001)
	// =========================================================================
	{
		sentinel: ErrInvalidQuery,
		pattern:  "invalid query",
		msg: UserMessage{
			Message: "The search parameters are not valid",
			Action:  "Choose すべて, 買値 or 売値 and enter digits only",
			Code:    "REQ001",
		},
	},
}

// defaultMessage is returned when no pattern matches.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Check the log output for details",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// Returns an empty UserMessage for a nil error.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	for _, ep := range errorPatterns {
		if errors.Is(err, ep.sentinel) {
			return ep.msg
		}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific code rather than ERR000.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error with its user-facing message.
type UserError struct {
	Technical error       // Original technical error for logging
	User      UserMessage // User-friendly message for display
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err to a UserError. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
