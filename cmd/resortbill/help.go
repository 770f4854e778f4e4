package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: resortbill <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render     Export booking files to 3-page PDF bills")
	fmt.Fprintln(w, "  preview    Write the on-screen HTML bill of a booking")
	fmt.Fprintln(w, "  quote      Print nights, rent and balance of a booking")
	fmt.Fprintln(w, "  doctor     Check the system for PDF export")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'resortbill help <command>' for details on a specific command.")
}

func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w, "Profile and output control:")
	fmt.Fprintln(w, "  -c, --config <name>       Resort profile name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: resortbill render <booking.yaml>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Export each booking to <prefix>_<bookingId>.pdf.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output directory, or a .pdf file for one booking")
	fmt.Fprintln(w, "  -l, --logo <path>         Logo image (PNG or JPEG, up to 2MB)")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel exports (0 = auto)")
	fmt.Fprintln(w, "      --html                Also write the export-mode HTML")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Capture:")
	fmt.Fprintln(w, "      --settle <d>          Delay before capture (default 600ms)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Page load timeout (default 30s)")
	fmt.Fprintln(w, "      --scale <f>           Device scale factor, 1-4 (default 2)")
	fmt.Fprintln(w, "      --quality <n>         Page JPEG quality, 1-100 (default 90)")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom template/style directory")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printPreviewUsage prints usage for the preview command.
func printPreviewUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: resortbill preview <booking.yaml> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render the preview-mode HTML bill. Writes to stdout unless -o is set.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output .html file or directory")
	fmt.Fprintln(w, "  -l, --logo <path>         Logo image (PNG or JPEG, up to 2MB)")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom template/style directory")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printQuoteUsage prints usage for the quote command.
func printQuoteUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: resortbill quote <booking.yaml> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the derived amounts of a booking.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Format:")
	fmt.Fprintln(w, "      --json                Print JSON")
	fmt.Fprintln(w, "      --yaml                Print YAML")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: resortbill doctor [--json] [-c <name>]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check that this machine can export bills: browser, sandbox,")
	fmt.Fprintln(w, "temp directory, resort profile, default logo and output directory.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --json                Print JSON")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "render":
		printRenderUsage(env.Stdout)
	case "preview":
		printPreviewUsage(env.Stdout)
	case "quote":
		printQuoteUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: resortbill version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: resortbill help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
