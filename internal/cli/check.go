package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check [number...]",
		Short: "Classify each argument, or each line of standard input",
		Long: `Classify card numbers given as arguments. With no arguments, every
non-blank line of standard input is classified. Results are printed with the
number masked. The exit status is 0 whatever the classification.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				for _, raw := range args {
					if err := a.checkOne(raw); err != nil {
						return err
					}
				}
				return nil
			}
			sc := bufio.NewScanner(a.in)
			for sc.Scan() {
				line := strings.TrimSpace(sc.Text())
				if line == "" {
					continue
				}
				if err := a.checkOne(line); err != nil {
					return err
				}
			}
			if err := sc.Err(); err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			return nil
		},
	}
}

func (a *app) checkOne(raw string) error {
	res, err := a.classifier.Check(raw)
	return a.render(res, err, true)
}
