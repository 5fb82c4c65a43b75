package main

import (
	"encoding/json"
	"strings"
	"testing"

	"dbcalls/internal/config"
	"dbcalls/internal/rules"
)

func TestFormatResponse_Rules(t *testing.T) {
	resp := buildRulesResponse(rules.Default())

	human, err := FormatResponse(resp, FormatHuman)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"Mode A: LINQ queries, raw SQL and SqlCommand constructions (report category DatabaseCalls)",
		"Mode B: SqlCommand constructions only (report category SqlCommands)",
		"Raw SQL methods: FromSqlRaw, ExecuteSqlRaw, ExecuteSqlCommand",
		"Constructed type: System.Data.SqlClient.SqlCommand",
		queryOperatorCaveat,
	} {
		if !strings.Contains(human, want) {
			t.Errorf("human output missing %q:\n%s", want, human)
		}
	}

	raw, err := FormatResponse(resp, FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	var decoded RulesResponseCLI
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(decoded.Modes) != 2 {
		t.Fatalf("modes = %+v", decoded.Modes)
	}
	if len(decoded.Modes[1].QueryOperators) != 0 {
		t.Error("mode B has no method rules")
	}
	if decoded.Modes[0].QueryOperators[0] != "Where" {
		t.Errorf("first operator = %q", decoded.Modes[0].QueryOperators[0])
	}
}

func TestFormatResponse_Config(t *testing.T) {
	resp := &ConfigShowResponse{
		UsedDefaults: true,
		EnvOverrides: []config.EnvOverride{{EnvVar: "DBCALLS_SCAN_MODE", Field: "scan.mode", Value: "B"}},
		Config:       config.DefaultConfig(),
	}

	human, err := FormatResponse(resp, FormatHuman)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"Source: defaults (no config file found)",
		"DBCALLS_SCAN_MODE=B → scan.mode",
		"  output: console",
		"  scipIndex: (syntax only)",
	} {
		if !strings.Contains(human, want) {
			t.Errorf("human output missing %q:\n%s", want, human)
		}
	}
}

func TestFormatResponse_Unsupported(t *testing.T) {
	if _, err := FormatResponse(&RulesResponseCLI{}, OutputFormat("xml")); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestFormatResponse_YAMLAndTOML(t *testing.T) {
	resp := &ConfigShowResponse{UsedDefaults: true, Config: config.DefaultConfig()}

	y, err := FormatResponse(resp, FormatYAML)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(y, "usedDefaults: true") || !strings.Contains(y, "  output: console") {
		t.Errorf("unexpected YAML:\n%s", y)
	}

	tm, err := FormatResponse(resp, FormatTOML)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(tm, "usedDefaults = true") || !strings.Contains(tm, "[config.scan]") {
		t.Errorf("unexpected TOML:\n%s", tm)
	}
}
