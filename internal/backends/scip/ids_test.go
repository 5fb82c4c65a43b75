package scip

import "testing"

func TestParseSCIPIdentifier(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		wantErr    bool
		scheme     string
		pkg        string
		version    string
		descriptor string
	}{
		{
			name:       "with version",
			id:         "scip-dotnet nuget System.Data.SqlClient 4.8.6 System/Data/SqlClient/SqlCommand#",
			scheme:     "scip-dotnet",
			pkg:        "System.Data.SqlClient",
			version:    "4.8.6",
			descriptor: "System/Data/SqlClient/SqlCommand#",
		},
		{
			name:       "without version",
			id:         "scip-dotnet nuget App App/Repo#",
			scheme:     "scip-dotnet",
			pkg:        "App",
			descriptor: "App/Repo#",
		},
		{
			name:       "descriptor with spaces",
			id:         "scip-dotnet nuget App 1.0 App/`Odd Name`#",
			scheme:     "scip-dotnet",
			pkg:        "App",
			version:    "1.0",
			descriptor: "App/`Odd Name`#",
		},
		{name: "empty", id: "", wantErr: true},
		{name: "local", id: "local 12", wantErr: true},
		{name: "too short", id: "scip-dotnet nuget", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSCIPIdentifier(tt.id)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Scheme != tt.scheme || got.Package != tt.pkg || got.Version != tt.version || got.Descriptor != tt.descriptor {
				t.Errorf("ParseSCIPIdentifier(%q) = %+v", tt.id, got)
			}
			if got.Raw != tt.id {
				t.Errorf("Raw = %q", got.Raw)
			}
		})
	}
}

func TestTypeName(t *testing.T) {
	tests := []struct {
		descriptor string
		want       string
	}{
		{"System/Data/SqlClient/SqlCommand#", "System.Data.SqlClient.SqlCommand"},
		{"System/Data/SqlClient/SqlCommand#`.ctor`().", "System.Data.SqlClient.SqlCommand"},
		{"System/Data/SqlClient/SqlCommand#`.ctor`(+1).", "System.Data.SqlClient.SqlCommand"},
		{"App/Outer#Inner#", "App.Outer.Inner"},
		{"System/Collections/Generic/`List`1`#", "System.Collections.Generic.List"},
		{"App/Repo#Load().", "App.Repo"},
		{"App/Repo#Name.", "App.Repo"},
		{"System/Data/", ""},
		{"Helper().", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.descriptor, func(t *testing.T) {
			id := &SCIPIdentifier{Descriptor: tt.descriptor}
			if got := id.TypeName(); got != tt.want {
				t.Errorf("TypeName(%q) = %q, want %q", tt.descriptor, got, tt.want)
			}
		})
	}
}
