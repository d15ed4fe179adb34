package main

import (
	"fmt"
	"os"

	"depscope/internal/export"
	"depscope/internal/output"
)

// renderSection prints a sub-view of the analysis in the requested
// format. Human and markdown formats share the text renderer the
// command supplies; json and yaml encode the value directly.
func renderSection(v interface{}, format export.Format, human func() string) {
	switch format {
	case export.FormatJSON:
		data, err := output.MarshalJSON(v)
		exitOnRenderError(err)
		os.Stdout.Write(data)
	case export.FormatYAML:
		data, err := output.MarshalYAML(v)
		exitOnRenderError(err)
		os.Stdout.Write(data)
	default:
		fmt.Print(human())
	}
}

func exitOnRenderError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
}

// mustParseFormat validates a --format value or exits.
func mustParseFormat(s string) export.Format {
	format, err := export.ParseFormat(s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	return format
}
