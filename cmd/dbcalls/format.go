package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatYAML  OutputFormat = "yaml"
	FormatTOML  OutputFormat = "toml"
	FormatHuman OutputFormat = "human"
)

// FormatResponse formats a response according to the specified format
func FormatResponse(resp interface{}, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(resp)
	case FormatYAML:
		return formatYAML(resp)
	case FormatTOML:
		return formatTOML(resp)
	case FormatHuman:
		return formatHuman(resp)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func formatJSON(resp interface{}) (string, error) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

func formatYAML(resp interface{}) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(resp); err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func formatTOML(resp interface{}) (string, error) {
	data, err := toml.Marshal(resp)
	if err != nil {
		return "", fmt.Errorf("failed to marshal TOML: %w", err)
	}
	return strings.TrimSuffix(string(data), "\n"), nil
}

func formatHuman(resp interface{}) (string, error) {
	switch v := resp.(type) {
	case *RulesResponseCLI:
		return formatRulesHuman(v), nil
	case *ConfigShowResponse:
		return formatConfigHuman(v), nil
	default:
		return formatJSON(resp)
	}
}

func formatRulesHuman(resp *RulesResponseCLI) string {
	var b strings.Builder
	for i, m := range resp.Modes {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "Mode %s: %s (report category %s)\n", m.Option, m.Description, m.Category)
		b.WriteString(strings.Repeat("─", 50) + "\n")
		if len(m.QueryOperators) > 0 {
			fmt.Fprintf(&b, "Query operators: %s\n", strings.Join(m.QueryOperators, ", "))
			b.WriteString(queryOperatorCaveat + "\n")
		}
		if len(m.RawSQLMethods) > 0 {
			fmt.Fprintf(&b, "Raw SQL methods: %s\n", strings.Join(m.RawSQLMethods, ", "))
		}
		fmt.Fprintf(&b, "Constructed type: %s\n", m.CommandType)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func formatConfigHuman(resp *ConfigShowResponse) string {
	var b strings.Builder
	b.WriteString("dbcalls Configuration\n")
	b.WriteString(strings.Repeat("─", 50) + "\n")

	if resp.UsedDefaults {
		b.WriteString("Source: defaults (no config file found)\n")
	} else if resp.ConfigPath != "" {
		fmt.Fprintf(&b, "Source: %s\n", resp.ConfigPath)
	}

	if len(resp.EnvOverrides) > 0 {
		b.WriteString("\nEnvironment Overrides:\n")
		for _, ov := range resp.EnvOverrides {
			fmt.Fprintf(&b, "  %s=%s → %s\n", ov.EnvVar, ov.Value, ov.Field)
		}
	}

	cfg := resp.Config
	b.WriteString("\n")
	fmt.Fprintf(&b, "version: %d\n", cfg.Version)

	b.WriteString("\nscan:\n")
	fmt.Fprintf(&b, "  root: %s\n", valueOrDefault(cfg.Scan.Root, "(prompt)"))
	fmt.Fprintf(&b, "  mode: %s\n", valueOrDefault(cfg.Scan.Mode, "(prompt)"))
	fmt.Fprintf(&b, "  output: %s\n", cfg.Scan.Output)
	fmt.Fprintf(&b, "  exclude: %s\n", valueOrDefault(strings.Join(cfg.Scan.Exclude, ", "), "(none)"))

	b.WriteString("\nreport:\n")
	fmt.Fprintf(&b, "  outputDir: %s\n", valueOrDefault(cfg.Report.OutputDir, "(scanned folder)"))

	b.WriteString("\nresolver:\n")
	fmt.Fprintf(&b, "  scipIndex: %s\n", valueOrDefault(cfg.Resolver.ScipIndex, "(syntax only)"))

	b.WriteString("\nlogging:\n")
	fmt.Fprintf(&b, "  level: %s\n", cfg.Logging.Level)
	fmt.Fprintf(&b, "  file: %s\n", valueOrDefault(cfg.Logging.File, "(none)"))
	fmt.Fprintf(&b, "  maxSize: %s\n", cfg.Logging.MaxSize)
	fmt.Fprintf(&b, "  maxBackups: %d\n", cfg.Logging.MaxBackups)

	return strings.TrimSuffix(b.String(), "\n")
}

func valueOrDefault(value, def string) string {
	if value == "" {
		return def
	}
	return value
}
