package cli

import (
	"errors"
	"fmt"
	"io"
	"syscall"

	"github.com/charmbracelet/lipgloss"

	"github.com/vivekpd15/qr2scad/pkg/pipeline"
)

var (
	colorGreen = lipgloss.Color("35")  // success
	colorCyan  = lipgloss.Color("36")  // numbers
	colorDim   = lipgloss.Color("240") // muted text
)

var (
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
)

// printSummary writes the one-line conversion summary to w (stderr),
// keeping stdout free for the -v script echo.
func printSummary(w io.Writer, result *pipeline.Result, outfile string) {
	fmt.Fprintf(w, "%s %s  %s modules, %s dark %s\n",
		styleSuccess.Render("wrote"),
		outfile,
		styleNumber.Render(fmt.Sprintf("%d", result.ModuleCount)),
		styleNumber.Render(fmt.Sprintf("%d", result.DarkModules)),
		styleDim.Render("("+result.Duration.String()+")"))
}

// echoScript writes the emitted script to w. A closed downstream
// consumer (EPIPE, e.g. `qr2scad -v ... | head`) counts as normal
// early termination rather than an error.
func echoScript(w io.Writer, script string) error {
	if _, err := io.WriteString(w, script+"\n"); err != nil {
		if errors.Is(err, syscall.EPIPE) {
			return nil
		}
		return err
	}
	return nil
}
