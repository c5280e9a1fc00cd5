package cli

import (
	"fmt"

	j "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	cardbrand "github.com/reoring/cardbrand"
	"github.com/reoring/cardbrand/i18n"
)

func newCheckDigitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "checkdigit <payload>",
		Short: "Print the Luhn check digit for a number without its last digit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := cardbrand.CheckDigit(cardbrand.Normalize(args[0]))
			if err != nil {
				return fmt.Errorf("%s: %w", i18n.T(cardbrand.CodeInvalidFormat, nil), err)
			}
			if a.cfg.Output == "json" {
				return j.NewEncoder(a.out).Encode(map[string]string{"check_digit": string(d)})
			}
			_, err = fmt.Fprintln(a.out, i18n.T("result.checkdigit", map[string]any{"Digit": string(d)}))
			return err
		},
	}
}
