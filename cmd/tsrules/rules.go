package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/lint"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the available rules",
	Args:  cobra.NoArgs,
	RunE:  runRules,
}

func init() {
	rulesCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

type ruleInfo struct {
	Name          string   `json:"name"`
	Code          string   `json:"code"`
	Category      string   `json:"category"`
	Severity      string   `json:"severity"`
	Description   string   `json:"description"`
	RequiresTypes bool     `json:"requires_types,omitempty"`
	Fixable       bool     `json:"fixable,omitempty"`
	Options       []string `json:"options,omitempty"`
}

func runRules(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	reg, err := rules.NewRegistry()
	if err != nil {
		return err
	}
	infos := collectRuleInfos(reg)
	switch strings.ToLower(format) {
	case "pretty":
		return renderRulesPretty(cmd.OutOrStdout(), infos)
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
}

func collectRuleInfos(reg *lint.Registry) []ruleInfo {
	infos := make([]ruleInfo, 0, reg.Len())
	for _, r := range reg.Rules() {
		m := r.Meta()
		infos = append(infos, ruleInfo{
			Name:          m.Name,
			Code:          m.Code.ID(),
			Category:      m.Category.String(),
			Severity:      strings.ToLower(m.Severity.String()),
			Description:   m.Description,
			RequiresTypes: m.RequiresTypes,
			Fixable:       m.Fixable,
			Options:       m.Options,
		})
	}
	return infos
}

func renderRulesPretty(w io.Writer, infos []ruleInfo) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RULE\tCODE\tCATEGORY\tSEVERITY\tFLAGS")
	for _, info := range infos {
		var flags []string
		if info.RequiresTypes {
			flags = append(flags, "types")
		}
		if info.Fixable {
			flags = append(flags, "fix")
		}
		if len(info.Options) > 0 {
			flags = append(flags, "options: "+strings.Join(info.Options, ","))
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", info.Name, info.Code, info.Category, info.Severity, strings.Join(flags, " "))
	}
	return tw.Flush()
}
