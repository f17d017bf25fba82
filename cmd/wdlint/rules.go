package main

import (
	"github.com/spf13/cobra"

	"wdlkit/wdl/pkg/cli"
	"wdlkit/wdl/pkg/wdl/lint"
)

func newRulesCmd(g *globalOptions) *cobra.Command {
	var (
		format string
		tags   []string
	)

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available lint rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printer, err := g.printer(cmd, format)
			if err != nil {
				return cli.NewCommandError("rules", err)
			}

			rules := lint.Rules()
			if len(tags) > 0 {
				var set lint.TagSet
				for _, name := range tags {
					tag, err := lint.ParseTag(name)
					if err != nil {
						return cli.NewCommandError("rules", err)
					}
					set = set.Union(lint.NewTagSet(tag))
				}
				rules = lint.ByTag(set)
			}
			return printer.PrintRules(rules)
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "only list rules carrying one of these tags")
	return cmd
}

func newExplainCmd(g *globalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "explain RULE",
		Short: "Explain a lint rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rule, err := lookupRule(args[0])
			if err != nil {
				return cli.NewCommandError("explain", err)
			}
			printer, err := g.printer(cmd, format)
			if err != nil {
				return cli.NewCommandError("explain", err)
			}
			return printer.PrintRule(rule)
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json")
	return cmd
}
