package core

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateDefinition(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*TableDefinition)
		wantErr  bool
		contains string
	}{
		{
			name:   "valid definition",
			mutate: func(*TableDefinition) {},
		},
		{
			name:     "missing key",
			mutate:   func(d *TableDefinition) { d.Info.Key = " " },
			wantErr:  true,
			contains: "table key is required",
		},
		{
			name:     "no columns",
			mutate:   func(d *TableDefinition) { d.Columns = nil },
			wantErr:  true,
			contains: "at least one column is required",
		},
		{
			name: "duplicate column",
			mutate: func(d *TableDefinition) {
				d.Columns = append(d.Columns, ColumnSpec{Key: "id"})
			},
			wantErr:  true,
			contains: "duplicate column key",
		},
		{
			name:     "unknown format",
			mutate:   func(d *TableDefinition) { d.Columns[0].Format = "currency" },
			wantErr:  true,
			contains: `unknown format "currency"`,
		},
		{
			name:     "bad pin",
			mutate:   func(d *TableDefinition) { d.Columns[0].Pinned = "top" },
			wantErr:  true,
			contains: "pinned must be left or right",
		},
		{
			name:     "negative width",
			mutate:   func(d *TableDefinition) { d.Columns[1].MinWidth = -1 },
			wantErr:  true,
			contains: "widths must be non-negative",
		},
		{
			name:     "unknown attribute key",
			mutate:   func(d *TableDefinition) { d.AttributeKeys = []string{"salary"} },
			wantErr:  true,
			contains: `attribute_keys: unknown column "salary"`,
		},
		{
			name:     "unknown action key",
			mutate:   func(d *TableDefinition) { d.ActionKey = "edit" },
			wantErr:  true,
			contains: `action_key: unknown column "edit"`,
		},
		{
			name: "fixed action key",
			mutate: func(d *TableDefinition) {
				d.ActionKey = "status"
				d.Fixed = []string{"id", "status"}
			},
			wantErr:  true,
			contains: `fixed: action column "status" cannot be listed`,
		},
		{
			name: "action key in attribute panel",
			mutate: func(d *TableDefinition) {
				d.ActionKey = "status"
				d.AttributeKeys = []string{"name", "status"}
			},
			wantErr:  true,
			contains: `attribute_keys: action column "status" cannot be listed`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := testDefinition("employees", "People")
			tt.mutate(&def)

			err := ValidateDefinition(def)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateDefinition() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			if !errors.Is(err, ErrInvalidDefinition) {
				t.Errorf("error %v does not wrap ErrInvalidDefinition", err)
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.contains)
			}
		})
	}
}

func TestValidateDefinition_ReportsAllProblems(t *testing.T) {
	def := testDefinition("employees", "People")
	def.Fixed = []string{"missing"}
	def.Columns[0].Format = "currency"

	err := ValidateDefinition(def)
	if err == nil {
		t.Fatal("ValidateDefinition() = nil, want error")
	}
	if got := strings.Count(err.Error(), "\n  - "); got != 2 {
		t.Errorf("reported %d problems, want 2: %v", got, err)
	}
}
