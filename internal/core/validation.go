package core

// validation.go checks table definitions before they reach the registry.
//
// A definition is rejected when it would leave the grid guessing: duplicate
// or empty column keys, references to columns that do not exist, unknown
// formats or pins. All problems are reported at once so a broken catalog
// file can be fixed in one pass.

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single problem with a table definition.
type ValidationError struct {
	Field   string // Offending field or column key
	Message string // Human-readable error message
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// ValidateDefinition reports every problem found in def, wrapped in
// ErrInvalidDefinition. Returns nil for a valid definition.
func ValidateDefinition(def TableDefinition) error {
	var errs []ValidationError

	if strings.TrimSpace(def.Info.Key) == "" {
		errs = append(errs, ValidationError{Field: "key", Message: "table key is required"})
	}
	if len(def.Columns) == 0 {
		errs = append(errs, ValidationError{Field: "columns", Message: "at least one column is required"})
	}

	keys := make(map[string]bool, len(def.Columns))
	for i, c := range def.Columns {
		if strings.TrimSpace(c.Key) == "" {
			errs = append(errs, ValidationError{Field: fmt.Sprintf("columns[%d]", i), Message: "column key is required"})
			continue
		}
		if keys[c.Key] {
			errs = append(errs, ValidationError{Field: c.Key, Message: "duplicate column key"})
		}
		keys[c.Key] = true

		if c.Format != "" && !validFormats[c.Format] {
			errs = append(errs, ValidationError{Field: c.Key, Message: fmt.Sprintf("unknown format %q", c.Format)})
		}
		if c.Pinned != "" && c.Pinned != "left" && c.Pinned != "right" {
			errs = append(errs, ValidationError{Field: c.Key, Message: fmt.Sprintf("pinned must be left or right, got %q", c.Pinned)})
		}
		if c.Width < 0 || c.MinWidth < 0 || c.MaxWidth < 0 {
			errs = append(errs, ValidationError{Field: c.Key, Message: "widths must be non-negative"})
		}
	}

	check := func(field string, list []string) {
		for _, k := range list {
			if !keys[k] {
				errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf("unknown column %q", k)})
			}
		}
	}
	check("fixed", def.Fixed)
	check("default_keys", def.DefaultKeys)
	check("attribute_keys", def.AttributeKeys)
	if def.ActionKey != "" {
		check("action_key", []string{def.ActionKey})
		// The action column is pinned last by the grid; it is never fixed
		// or managed by an attribute panel.
		if slices.Contains(def.Fixed, def.ActionKey) {
			errs = append(errs, ValidationError{Field: "fixed", Message: fmt.Sprintf("action column %q cannot be listed", def.ActionKey)})
		}
		if slices.Contains(def.AttributeKeys, def.ActionKey) {
			errs = append(errs, ValidationError{Field: "attribute_keys", Message: fmt.Sprintf("action column %q cannot be listed", def.ActionKey)})
		}
	}

	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return fmt.Errorf("%w %q:\n  - %s", ErrInvalidDefinition, def.Info.Key, strings.Join(msgs, "\n  - "))
}
