package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dbcalls/internal/rules"
)

var rulesFormat string

const queryOperatorCaveat = "  (matched by method name only: Count, Any, First, ToList and similar calls on in-memory collections are reported too)"

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Show what each analysis looks for",
	Long: `Print the fixed rule set: the method names and the constructed type that
count as a database request in each analysis mode.

Query operators are matched by method name alone, so calls such as Count, Any
or ToList on in-memory collections are reported as well.`,
	Args: cobra.NoArgs,
	RunE: runRules,
}

func init() {
	rulesCmd.Flags().StringVar(&rulesFormat, "format", "human", "Output format (json, yaml, toml, human)")
	rootCmd.AddCommand(rulesCmd)
}

// RulesResponseCLI is the output of the rules command.
type RulesResponseCLI struct {
	Modes []ModeRulesCLI `json:"modes" yaml:"modes" toml:"modes"`
}

// ModeRulesCLI lists the rules applied by one mode.
type ModeRulesCLI struct {
	Option         string   `json:"option" yaml:"option" toml:"option"`
	Description    string   `json:"description" yaml:"description" toml:"description"`
	Category       string   `json:"category" yaml:"category" toml:"category"`
	QueryOperators []string `json:"queryOperators,omitempty" yaml:"queryOperators,omitempty" toml:"queryOperators,omitempty"`
	RawSQLMethods  []string `json:"rawSqlMethods,omitempty" yaml:"rawSqlMethods,omitempty" toml:"rawSqlMethods,omitempty"`
	CommandType    string   `json:"commandType" yaml:"commandType" toml:"commandType"`
}

func buildRulesResponse(rs *rules.RuleSet) *RulesResponseCLI {
	resp := &RulesResponseCLI{}
	for _, m := range rules.Modes() {
		entry := ModeRulesCLI{
			Option:      m.String(),
			Description: m.Description(),
			Category:    m.Category(),
			CommandType: rs.CommandType(),
		}
		if m == rules.ModeCombined {
			entry.QueryOperators = rs.QueryOperators()
			entry.RawSQLMethods = rs.RawSQLMethods()
		}
		resp.Modes = append(resp.Modes, entry)
	}
	return resp
}

func runRules(cmd *cobra.Command, args []string) error {
	out, err := FormatResponse(buildRulesResponse(rules.Default()), OutputFormat(rulesFormat))
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
