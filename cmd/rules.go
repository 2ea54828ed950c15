/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/samwightt/gqlvet/pkg/render"
	"github.com/samwightt/gqlvet/pkg/validation/rules"
	"github.com/spf13/cobra"
)

func formatRuleText(r RuleInfo) string {
	if r.VisitsFragmentSpreads {
		return fmt.Sprintf("%s (follows spreads) # %s", r.Name, r.Description)
	}
	return fmt.Sprintf("%s # %s", r.Name, r.Description)
}

func formatRulesPretty(infos []RuleInfo) string {
	t := makeTable()

	for _, r := range infos {
		spreads := ""
		if r.VisitsFragmentSpreads {
			spreads = "yes"
		}
		t.Row(r.Name, spreads, r.Description)
	}
	t.Headers("rule", "spreads", "description")

	return t.String()
}

func NewRulesCmd() *cobra.Command {
	var enabledOnly bool

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Lists the validation rules",
		Long: `Lists the validation rules in the order they run.

Rules marked as following spreads see fragments through the spreads that
use them, with the variables of the operation they are spread into.
The names are what --rule and --disable-rule accept.`,
		Example: `  # List every rule
  gqlvet rules

  # Show only the rules the config file leaves enabled
  gqlvet rules --enabled`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			selected := rules.All()
			if enabledOnly {
				var err error
				selected, err = rules.Select(enabledRules, disabledRules)
				if err != nil {
					return err
				}
			}

			infos := make([]RuleInfo, 0, len(selected))
			for _, r := range selected {
				infos = append(infos, RuleInfo{
					Name:                  r.Name,
					Description:           r.Description,
					VisitsFragmentSpreads: r.VisitFragmentSpreads,
				})
			}

			renderer := render.Renderer[RuleInfo]{
				Data:         infos,
				TextFormat:   formatRuleText,
				PrettyFormat: formatRulesPretty,
			}
			return renderer.Write(cmd.OutOrStdout(), outputFormat)
		},
	}

	cmd.Flags().BoolVar(&enabledOnly, "enabled", false, "Only show rules left enabled by the config file")

	return cmd
}
