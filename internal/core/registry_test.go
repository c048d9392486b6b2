package core

import (
	"errors"
	"testing"
)

func testDefinition(key, group string) TableDefinition {
	return TableDefinition{
		Info: TableInfo{Key: key, Group: group},
		Columns: []ColumnSpec{
			{Key: "id", Title: "ID", Width: 80},
			{Key: "name", Width: 200},
			{Key: "status", Title: "Status", Format: FormatStatus},
		},
	}
}

func TestRegister_NormalizesDefinition(t *testing.T) {
	Clear()
	defer Clear()

	Register(testDefinition("employees", "People"))

	def, ok := Get("employees")
	if !ok {
		t.Fatal("Get(employees) not found after Register")
	}
	if def.Info.Label != "employees" {
		t.Errorf("Label = %q, want %q", def.Info.Label, "employees")
	}
	name, _ := def.Column("name")
	if name.Title != "name" {
		t.Errorf("Title = %q, want key as fallback", name.Title)
	}
	if name.Format != FormatText {
		t.Errorf("Format = %q, want %q", name.Format, FormatText)
	}
}

func TestRegister_PanicsOnDuplicate(t *testing.T) {
	Clear()
	defer Clear()

	Register(testDefinition("employees", "People"))

	defer func() {
		if recover() == nil {
			t.Error("Register of a duplicate key did not panic")
		}
	}()
	Register(testDefinition("employees", "People"))
}

func TestRegister_PanicsOnInvalid(t *testing.T) {
	Clear()
	defer Clear()

	defer func() {
		if recover() == nil {
			t.Error("Register of an invalid definition did not panic")
		}
	}()
	Register(TableDefinition{Info: TableInfo{Key: "empty"}})
}

func TestReplace(t *testing.T) {
	Clear()
	defer Clear()

	Register(testDefinition("employees", "People"))
	Register(testDefinition("leave", "People"))

	err := Replace([]TableDefinition{testDefinition("contracts", "Contracts")})
	if err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	if _, ok := Get("employees"); ok {
		t.Error("employees still registered after Replace")
	}
	if got := TableCount(); got != 1 {
		t.Errorf("TableCount() = %d, want 1", got)
	}
}

func TestReplace_InvalidKeepsRegistry(t *testing.T) {
	Clear()
	defer Clear()

	Register(testDefinition("employees", "People"))

	bad := testDefinition("contracts", "Contracts")
	bad.Fixed = []string{"missing"}

	err := Replace([]TableDefinition{testDefinition("leave", "People"), bad})
	if !errors.Is(err, ErrInvalidDefinition) {
		t.Fatalf("Replace() error = %v, want ErrInvalidDefinition", err)
	}
	if _, ok := Get("employees"); !ok {
		t.Error("registry changed by a failed Replace")
	}

	err = Replace([]TableDefinition{testDefinition("leave", "People"), testDefinition("leave", "People")})
	if !errors.Is(err, ErrInvalidDefinition) {
		t.Errorf("Replace() with duplicates error = %v, want ErrInvalidDefinition", err)
	}
}

func TestAllAndGroups(t *testing.T) {
	Clear()
	defer Clear()

	Register(testDefinition("reviews", "People"))
	Register(testDefinition("contracts", "Contracts"))
	Register(testDefinition("employees", "People"))

	all := All()
	want := []string{"contracts", "employees", "reviews"}
	if len(all) != len(want) {
		t.Fatalf("All() returned %d tables, want %d", len(all), len(want))
	}
	for i, def := range all {
		if def.Info.Key != want[i] {
			t.Errorf("All()[%d] = %q, want %q", i, def.Info.Key, want[i])
		}
	}

	groups := Groups()
	if len(groups) != 2 || groups[0] != "Contracts" || groups[1] != "People" {
		t.Errorf("Groups() = %v, want [Contracts People]", groups)
	}

	people := ByGroup("People")
	if len(people) != 2 || people[0].Info.Key != "employees" {
		t.Errorf("ByGroup(People) = %v, want employees first", people)
	}
}
