package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	successColor = color.New(color.FgGreen)
	failureColor = color.New(color.FgRed)
	infoColor    = color.New(color.FgCyan)
)

func printSuccess(w io.Writer, format string, args ...any) {
	successColor.Fprintf(w, "✅ %s\n", fmt.Sprintf(format, args...))
}

func printFailure(w io.Writer, format string, args ...any) {
	failureColor.Fprintf(w, "❌ %s\n", fmt.Sprintf(format, args...))
}

func printInfo(w io.Writer, format string, args ...any) {
	infoColor.Fprintf(w, "%s\n", fmt.Sprintf(format, args...))
}
