package cli

import (
	"github.com/spf13/cobra"

	"github.com/reoring/cardbrand/rulefile"
)

func newRulesCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Print the active rule table in evaluation order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("format") && a.cfg.Output == "json" {
				format = string(rulefile.FormatJSON)
			}
			f, err := rulefile.ParseFormat(format)
			if err != nil {
				return err
			}
			data, err := rulefile.Encode(a.classifier.Rules(), f)
			if err != nil {
				return err
			}
			_, err = a.out.Write(data)
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", string(rulefile.FormatYAML), `table format ("yaml", "json")`)
	return cmd
}
