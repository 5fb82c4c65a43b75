package syntax

import "testing"

func TestNormalizeTypeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"SqlCommand", "SqlCommand"},
		{"System.Data.SqlClient.SqlCommand", "System.Data.SqlClient.SqlCommand"},
		{"global::System.Data.SqlClient.SqlCommand", "System.Data.SqlClient.SqlCommand"},
		{"List<int>", "List"},
		{"Dictionary<string, List<int>>", "Dictionary"},
		{"Outer<int>.Inner", "Outer.Inner"},
		{"System . Data", "System.Data"},
		{"Nullable?", "Nullable"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := NormalizeTypeName(tt.in); got != tt.want {
				t.Errorf("NormalizeTypeName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestUnquoteLiteral(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"regular", `"sp_GetUsers"`, "sp_GetUsers"},
		{"escapes kept", `"a\"b"`, `a\"b`},
		{"verbatim", `@"dbo.sp_Orders"`, "dbo.sp_Orders"},
		{"raw", `"""SELECT 1"""`, "SELECT 1"},
		{"raw multiline", "\"\"\"\n    SELECT 1\n    \"\"\"", "SELECT 1"},
		{"utf8", `"abc"u8`, "abc"},
		{"empty", `""`, ""},
		{"not a literal", "name", "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UnquoteLiteral(tt.in); got != tt.want {
				t.Errorf("UnquoteLiteral(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestQualify(t *testing.T) {
	if got := Qualify("", "Repo"); got != "Repo" {
		t.Errorf("Qualify empty namespace = %q", got)
	}
	if got := Qualify("App.Data", "Repo"); got != "App.Data.Repo" {
		t.Errorf("Qualify = %q", got)
	}
	d := TypeDecl{Namespace: "App", Name: "Repo"}
	if d.FullName() != "App.Repo" {
		t.Errorf("FullName = %q", d.FullName())
	}
}
