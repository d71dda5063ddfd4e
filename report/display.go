package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/kr/pretty"
	"github.com/pterm/pterm"
)

var (
	SuccessColorFG = pterm.FgLightGreen
	SuccessStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	WarnColorFG    = pterm.FgYellow
	WarnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	ErrorColorFG   = pterm.FgRed
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = SuccessColorFG
	InfoStyleBG    = SuccessStyleBG
)

// DisplayErrorMessage prints a standard Go error under a tag.
func DisplayErrorMessage(tag string, err error) {
	fmt.Fprint(out, ErrorStyleBG.Sprint(tag))
	fmt.Fprintln(out, ErrorColorFG.Sprint(" "+err.Error()))
}

// DisplayWarningMessage prints a warning message.
func DisplayWarningMessage(tag, msg string) {
	fmt.Fprint(out, WarnStyleBG.Sprint(tag))
	fmt.Fprintln(out, WarnColorFG.Sprint(" "+msg))
}

// DisplayInfoMessage prints an informational message to the user.
func DisplayInfoMessage(tag, msg string) {
	fmt.Fprint(out, InfoStyleBG.Sprint(tag))
	fmt.Fprintln(out, InfoColorFG.Sprint(" "+msg))
}

// displayDebugValue dumps a Go value in a readable, multi-line form.
func displayDebugValue(label string, v interface{}) {
	fmt.Fprint(out, InfoStyleBG.Sprint("Debug"))
	fmt.Fprintln(out, " "+label+":")
	fmt.Fprintln(out, pretty.Sprint(v))
}

// -----------------------------------------------------------------------------

// phaseSpinner stores the current phase spinner.
var phaseSpinner *pterm.SpinnerPrinter
var currentPhase string
var phaseStartTime time.Time

const maxPhaseLength = len("Translating")

// displayBeginPhase displays the beginning of a pipeline phase.
func displayBeginPhase(phase string) {
	currentPhase = phase
	phaseText := phase + "..." + strings.Repeat(" ", maxPhaseLength-len(phase)+2)
	spinner := pterm.DefaultSpinner.WithStyle(pterm.NewStyle(InfoColorFG))

	spinner.SuccessPrinter = &pterm.PrefixPrinter{
		MessageStyle: pterm.NewStyle(pterm.FgDefault),
		Prefix: pterm.Prefix{
			Style: SuccessStyleBG,
			Text:  "Done",
		},
	}

	spinner.FailPrinter = &pterm.PrefixPrinter{
		MessageStyle: pterm.NewStyle(pterm.FgDefault),
		Prefix: pterm.Prefix{
			Style: ErrorStyleBG,
			Text:  "Fail",
		},
	}

	phaseSpinner, _ = spinner.Start(phaseText)
	phaseStartTime = time.Now()
}

// displayEndPhase displays the end of a pipeline phase.
func displayEndPhase(success bool) {
	if phaseSpinner != nil {
		if success {
			phaseSpinner.Success(
				currentPhase+strings.Repeat(" ", maxPhaseLength-len(currentPhase)+2),
				fmt.Sprintf("(%.3fs)", time.Since(phaseStartTime).Seconds()),
			)
		} else {
			phaseSpinner.Fail(currentPhase + strings.Repeat(" ", maxPhaseLength-len(currentPhase)+2))
		}

		phaseSpinner = nil
	}
}

// displayCompilationFinished displays the closing message of a run.
func displayCompilationFinished(success bool, outputPath string, errorCount, warningCount int) {
	fmt.Fprint(out, "\n")

	if success {
		fmt.Fprint(out, SuccessColorFG.Sprint("All done! "))
	} else {
		fmt.Fprint(out, ErrorColorFG.Sprint("Oh no! "))
	}

	fmt.Fprint(out, "(")

	switch errorCount {
	case 0:
		fmt.Fprint(out, SuccessColorFG.Sprint(0), " errors, ")
	case 1:
		fmt.Fprint(out, ErrorColorFG.Sprint(1), " error, ")
	default:
		fmt.Fprint(out, ErrorColorFG.Sprint(errorCount), " errors, ")
	}

	switch warningCount {
	case 0:
		fmt.Fprint(out, SuccessColorFG.Sprint(0), " warnings)")
	case 1:
		fmt.Fprint(out, WarnColorFG.Sprint(1), " warning)")
	default:
		fmt.Fprint(out, WarnColorFG.Sprint(warningCount), " warnings)")
	}

	if success && outputPath != "" {
		fmt.Fprint(out, " -> ", InfoColorFG.Sprint(outputPath))
	}

	fmt.Fprintln(out)
}
