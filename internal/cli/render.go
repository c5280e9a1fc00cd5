package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	j "github.com/goccy/go-json"
	"golang.org/x/term"

	cardbrand "github.com/reoring/cardbrand"
	"github.com/reoring/cardbrand/i18n"
)

var (
	issuerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	unknownStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	maskedStyle  = lipgloss.NewStyle().Faint(true)
)

// checkOutput is the JSON shape of one classification.
type checkOutput struct {
	cardbrand.Result
	Reasons []string `json:"reasons,omitempty"`
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// render prints one result. withNumber prefixes text output with the masked
// number so several results can be told apart.
func (a *app) render(res cardbrand.Result, err error, withNumber bool) error {
	iss, _ := cardbrand.AsIssues(err)

	if a.cfg.Output == "json" {
		out := checkOutput{Result: res}
		if len(iss) > 0 {
			out.Reasons = iss.Codes()
		}
		return j.NewEncoder(a.out).Encode(out)
	}

	var line string
	if res.Issuer.Known() {
		line = a.style(issuerStyle, i18n.T("result.issuer", map[string]any{"Issuer": res.Issuer.String()}))
	} else {
		line = a.style(unknownStyle, i18n.T("result.unknown", nil))
		if withNumber && len(iss) > 0 {
			line += " (" + i18n.T(iss[0].Code, nil) + ")"
		}
	}
	if withNumber {
		masked := res.Masked
		if masked == "" {
			masked = "-"
		}
		line = a.style(maskedStyle, masked) + "  " + line
	}
	_, werr := fmt.Fprintln(a.out, line)
	return werr
}

func (a *app) style(s lipgloss.Style, text string) string {
	if !a.styled {
		return text
	}
	return s.Render(text)
}
