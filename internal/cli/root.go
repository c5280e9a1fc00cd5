// Package cli implements the cardbrand command tree.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	cardbrand "github.com/reoring/cardbrand"
	"github.com/reoring/cardbrand/i18n"
	"github.com/reoring/cardbrand/internal/config"
	"github.com/reoring/cardbrand/internal/logging"
	"github.com/reoring/cardbrand/rulefile"
)

// version is set by the linker.
var version = "dev"

// app carries the state shared by every subcommand once configuration has
// been loaded.
type app struct {
	in      io.Reader
	out     io.Writer
	errOut  io.Writer
	cfgFile string

	cfg        config.Config
	classifier *cardbrand.Classifier
	styled     bool
}

// Execute runs the command tree and returns the process exit code.
func Execute(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	cmd := newRootCmd(in, out, errOut)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(errOut, "Error:", err)
		return 1
	}
	return 0
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{in: in, out: out, errOut: errOut}

	cmd := &cobra.Command{
		Use:   "cardbrand",
		Short: "Check a card number and tell which network issued it",
		Long: `cardbrand validates a credit-card-like number with the Luhn checksum
and classifies it by issuing network from its leading digits.

Running without a subcommand prompts for one number on standard input.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.runPrompt()
		},
	}
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default is ./cardbrand.yaml or $XDG_CONFIG_HOME/cardbrand/cardbrand.yaml)")
	pf.String("language", config.Defaults["language"].(string), `message language ("en", "pt")`)
	pf.StringP("output", "o", config.Defaults["output"].(string), `output format ("text", "json")`)
	pf.String("rules", "", "YAML or JSON rule table replacing the built-in one")
	pf.String("log-level", config.Defaults["log.level"].(string), `log level ("debug", "info", "warn", "error")`)

	cmd.AddCommand(
		newCheckCmd(a),
		newCheckDigitCmd(a),
		newRulesCmd(a),
		newServeCmd(a),
	)
	return cmd
}

// setup loads configuration and prepares logging, messages and the
// classifier.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	a.cfg = cfg

	if err := logging.SetLevel(cfg.Log.Level); err != nil {
		return err
	}
	i18n.SetLanguage(cfg.Language)

	rules := cardbrand.DefaultRules()
	if cfg.Rules != "" {
		rules, err = rulefile.LoadFile(cfg.Rules)
		if err != nil {
			return fmt.Errorf("load rules: %w", err)
		}
		logging.Infof("loaded %d rules from %s", len(rules), cfg.Rules)
	}
	a.classifier = cardbrand.NewClassifier(rules)
	a.styled = isTerminal(a.out)
	return nil
}

// runPrompt reads one line, classifies it and prints the issuer or the
// fallback message. Classification outcomes never produce an error.
func (a *app) runPrompt() error {
	if a.cfg.Output == "text" {
		fmt.Fprint(a.out, i18n.T("prompt", nil))
	}
	line, err := readLine(bufio.NewReader(a.in))
	if err != nil {
		return err
	}
	if a.cfg.Output == "text" && !a.styled {
		// keep the answer on its own line when input was piped
		fmt.Fprintln(a.out)
	}
	res, cerr := a.classifier.Check(line)
	return a.render(res, cerr, false)
}

// readLine returns the next line without its terminator. Reaching end of
// input is not an error; an empty reader yields "".
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
