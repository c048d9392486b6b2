// Package core provides the business logic of the HR console tables.
//
// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support
// reference. Error codes are grouped by category:
//
// # Table Errors (TBL001-TBL099)
//
//	TBL001 - Table not found: The requested table does not exist
//	         Action: Pick a table from the navigation
//	         Patterns: "table not found"
//
//	TBL002 - Invalid catalog: The table catalog could not be loaded
//	         Action: Fix the catalog file; the previous catalog stays active
//	         Patterns: "invalid table definition"
//
// # Column Errors (COL001-COL099)
//
//	COL001 - Invalid command: The column change could not be applied
//	         Action: Reload the page and try again
//	         Patterns: "invalid column command"
//
//	COL002 - Unknown column: The column is not part of this table
//	         Action: Reload the page to get the current columns
//	         Patterns: "unknown column"
//
// # Preference Errors (PREF001-PREF099)
//
//	PREF001 - Save failed: Column settings could not be saved
//	          Action: Your change is shown but will be lost on reload
//	          Patterns: "save preference"
//
//	PREF002 - Load failed: Saved column settings could not be read
//	          Action: Default columns are shown
//	          Patterns: "load preference"
//
// # Database Errors (DB001-DB099)
//
//	DB001 - Connection refused: Unable to connect to database
//	        Patterns: "connection refused"
//
//	DB002 - Connection reset: Database connection was interrupted
//	        Patterns: "connection reset"
//
//	DB003 - Timeout: Operation timed out
//	        Patterns: "timeout"
//
// # Request Errors (REQ001-REQ099)
//
//	REQ001 - Request cancelled
//	         Patterns: "context canceled"
//
//	REQ002 - Request timeout
//	         Patterns: "context deadline exceeded"
//
// # Rate Limiting (RATE001-RATE099)
//
//	RATE001 - Rate limited: Too many requests
//	          Patterns: "rate limit"
//
// # Default Error (ERR000)
//
// Fallback when no specific pattern matches.
//
// Error patterns are matched case-insensitively using strings.Contains.
// The first matching pattern wins, so more specific patterns come first.
package core

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

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error patterns (case-insensitive) to user messages.
// The first matching pattern wins, so order matters.
var errorPatterns = []errorPattern{
	// =========================================================================
	// Table Errors (TBL001-TBL002)
	// =========================================================================
	{
		pattern: "table not found",
		msg: UserMessage{
			Message: "The requested table does not exist",
			Action:  "Pick a table from the navigation",
			Code:    "TBL001",
		},
	},
	{
		pattern: "invalid table definition",
		msg: UserMessage{
			Message: "The table catalog could not be loaded",
			Action:  "Fix the catalog file; the previous catalog stays active",
			Code:    "TBL002",
		},
	},

	// =========================================================================
	// Column and Preference Errors (COL001-COL002, PREF001-PREF002)
	// =========================================================================
	{
		pattern: "invalid column command",
		msg: UserMessage{
			Message: "The column change could not be applied",
			Action:  "Reload the page and try again",
			Code:    "COL001",
		},
	},
	{
		pattern: "unknown column",
		msg: UserMessage{
			Message: "The column is not part of this table",
			Action:  "Reload the page to get the current columns",
			Code:    "COL002",
		},
	},
	{
		pattern: "save preference",
		msg: UserMessage{
			Message: "Column settings could not be saved",
			Action:  "Your change is shown but will be lost on reload",
			Code:    "PREF001",
		},
	},
	{
		pattern: "load preference",
		msg: UserMessage{
			Message: "Saved column settings could not be read",
			Action:  "Default columns are shown",
			Code:    "PREF002",
		},
	},

	// =========================================================================
	// Request Errors (REQ001-REQ002)
	// Checked before the database patterns: a deadline error mentions neither
	// a connection nor a "timeout".
	// =========================================================================
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "REQ001",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Please try again in a few moments",
			Code:    "REQ002",
		},
	},

	// =========================================================================
	// Database Errors (DB001-DB003)
	// =========================================================================
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to database",
			Action:  "Please try again in a few moments",
			Code:    "DB001",
		},
	},
	{
		pattern: "connection reset",
		msg: UserMessage{
			Message: "Database connection was interrupted",
			Action:  "Please try again",
			Code:    "DB002",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "Operation timed out",
			Action:  "Please try again later",
			Code:    "DB003",
		},
	},

	// =========================================================================
	// Rate Limiting (RATE001)
	// =========================================================================
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// defaultErrorMessage is returned when no pattern matches.
var defaultErrorMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// Returns an empty UserMessage for a nil error.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())
	for _, p := range errorPatterns {
		if strings.Contains(errStr, p.pattern) {
			return p.msg
		}
	}

	return defaultErrorMessage
}

// FormatUserError returns a formatted string for display to users.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err matches a known pattern rather than the
// generic ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultErrorMessage.Code
}
