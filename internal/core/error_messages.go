package core

// error_messages.go maps technical errors to user-facing messages with a
// code that users can quote to support.
//
// # Swimmer Errors (SWM001-SWM099)
//
//	SWM001 - Swimmer not found: The swimmer does not exist or was removed
//	         Action: Return to the roster and pick the swimmer again
//	         Patterns: "swimmer not found"
//
//	SWM002 - Invalid form: One or more fields need attention
//	         Action: Correct the highlighted fields and save again
//	         Patterns: "validation failed"
//
//	SWM003 - Unknown team: The selected team does not exist
//	         Action: Pick another team or leave the swimmer without one
//	         Patterns: "team not found"
//
// # Photo Errors (PHOTO001-PHOTO099)
//
//	PHOTO001 - Not an image: Only image files can be uploaded
//	PHOTO002 - Too large: Photos must be 5MB or smaller
//	PHOTO003 - Busy: Too many uploads in progress
//	PHOTO004 - Not found: The photo was already removed
//	PHOTO005 - No file: No photo was selected
//
// # Session Errors (AUTH001-AUTH099)
//
//	AUTH001 - Session expired: The sign-in session is no longer valid
//	AUTH002 - Sign-in required: The action needs a signed-in user
//
// # Reference Data Errors (REF001-REF099)
//
//	REF001 - Unknown status: A record carries a status code the app does not know
//	REF002 - Unknown pool course: A competition carries an unknown pool course
//
// # Database Errors (DB001-DB099)
//
//	DB001 - Duplicate key
//	DB003 - Foreign key
//	DB004 - Connection refused
//	DB005 - Connection reset
//	DB006 - Timeout
//	DB007 - Deadlock
//
// # Request Errors (REQ001-REQ099)
//
//	REQ001 - Request cancelled
//	REQ002 - Request timed out
//
// # Rate Limiting (RATE001)
//
//	RATE001 - Too many requests
//
// # Default Error (ERR000)
//
// Fallback when no pattern matches. Check the application logs for the
// original technical error.
//
// Patterns are matched case-insensitively with strings.Contains and the
// first match wins, so specific patterns come before general ones.

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	// Swimmers
	{
		pattern: "swimmer not found",
		msg:     UserMessage{Message: "The swimmer does not exist or was removed", Action: "Return to the roster and pick the swimmer again", Code: "SWM001"},
	},
	{
		pattern: "validation failed",
		msg:     UserMessage{Message: "One or more fields need attention", Action: "Correct the highlighted fields and save again", Code: "SWM002"},
	},
	{
		pattern: "team not found",
		msg:     UserMessage{Message: "The selected team does not exist", Action: "Pick another team or leave the swimmer without one", Code: "SWM003"},
	},

	// Photos
	{
		pattern: "photo is not an image",
		msg:     UserMessage{Message: "Only image files can be uploaded", Action: "Choose a JPEG, PNG, GIF or WebP file", Code: "PHOTO001"},
	},
	{
		pattern: "photo too large",
		msg:     UserMessage{Message: "Photos must be 5MB or smaller", Action: "Resize the image and try again", Code: "PHOTO002"},
	},
	{
		pattern: "too many uploads",
		msg:     UserMessage{Message: "Too many uploads in progress", Action: "Please wait a moment and try again", Code: "PHOTO003"},
	},
	{
		pattern: "photo not found",
		msg:     UserMessage{Message: "The photo was already removed", Action: "Reload the page", Code: "PHOTO004"},
	},
	{
		pattern: "no photo provided",
		msg:     UserMessage{Message: "No photo was selected", Action: "Choose an image to upload", Code: "PHOTO005"},
	},

	// Sessions
	{
		pattern: "invalid session token",
		msg:     UserMessage{Message: "Your session has expired", Action: "Sign in again", Code: "AUTH001"},
	},
	{
		pattern: "sign-in required",
		msg:     UserMessage{Message: "You need to sign in first", Action: "Sign in with Google and try again", Code: "AUTH002"},
	},

	// Reference data
	{
		pattern: "status code",
		msg:     UserMessage{Message: "A record has a status this page cannot show", Action: "Please contact support", Code: "REF001"},
	},
	{
		pattern: "unknown pool course",
		msg:     UserMessage{Message: "A competition has an unknown pool course", Action: "Please contact support", Code: "REF002"},
	},

	// Database
	{
		pattern: "duplicate key",
		msg:     UserMessage{Message: "A record with this ID already exists", Action: "Reload the page and try again", Code: "DB001"},
	},
	{
		pattern: "violates foreign key",
		msg:     UserMessage{Message: "Referenced record does not exist", Action: "Reload the page and pick the value again", Code: "DB003"},
	},
	{
		pattern: "connection refused",
		msg:     UserMessage{Message: "Unable to connect to database", Action: "Please try again in a few moments", Code: "DB004"},
	},
	{
		pattern: "connection reset",
		msg:     UserMessage{Message: "Database connection was interrupted", Action: "Please try again", Code: "DB005"},
	},

	// Requests. Checked before the generic timeout pattern.
	{
		pattern: "context canceled",
		msg:     UserMessage{Message: "Request was cancelled", Action: "Please try again", Code: "REQ001"},
	},
	{
		pattern: "context deadline exceeded",
		msg:     UserMessage{Message: "Request timed out", Action: "Check your connection and try again", Code: "REQ002"},
	},

	{
		pattern: "timeout",
		msg:     UserMessage{Message: "Operation timed out", Action: "Please try again later", Code: "DB006"},
	},
	{
		pattern: "deadlock",
		msg:     UserMessage{Message: "Database was busy with conflicting operations", Action: "Please try again", Code: "DB007"},
	},

	// Rate limiting
	{
		pattern: "rate limit",
		msg:     UserMessage{Message: "Too many requests", Action: "Please wait a moment before trying again", Code: "RATE001"},
	},
}

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message. Unknown
// errors map to ERR000; nil maps to the zero UserMessage.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}
	return defaultMessage
}

// FormatUserError renders "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific message rather than
// the ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
