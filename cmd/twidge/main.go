// Package main provides the twidge command, which runs a single widget in
// the terminal and prints its result.
//
// Usage:
//
//	twidge echo                   Show the name of every key pressed
//	twidge echobytes              Show the raw bytes of every key pressed
//	twidge edit [text]            Edit a line of text
//	twidge form <labels>          Fill in a form with comma-separated labels
//	twidge filter <options>       Filter comma-separated options by regexp
//	twidge select <options>       Pick comma-separated options by number
//	twidge help                   Show help
//
// Examples:
//
//	twidge edit "Hello World!"
//	twidge form Name=Ann,EMail -o json
//	twidge select red,green,blue
//	twidge filter red,green,blue > choice.txt
package main

import (
	"fmt"
	"io"
	"os"
)

const version = "0.1.0"

const usage = `twidge - terminal widgets

Usage:
  twidge <command> [options] [args]

Commands:
  echo              Show the name of every key pressed
  echobytes         Show the raw bytes of every key pressed
  edit [text]       Edit a line of text, starting from text
  form <labels>     Fill in a form with comma-separated labels; a label
                    written as Label=text starts with that text
  filter <options>  Filter comma-separated options by a regular expression
  select <options>  Pick comma-separated options by typing their numbers
  version           Print version information
  help              Show this help message

Options:
  -config path          Config file (default $XDG_CONFIG_HOME/twidge/config.toml)
  -o text|json|yaml     Result format (default text)
  -escape-timeout dur   Wait for the rest of an escape sequence (default 50ms)
  -frame                Draw a border around the widget

Keys:
  enter submits, ctrl+c or escape three times aborts. In forms
  tab/shift+tab move between fields and ctrl+s submits.

The widget is drawn on stdout, or on stderr when stdout is not a terminal,
so the result can be piped. Exit status is 0 on completion, 1 on error and
130 when aborted.
`

const (
	exitOK          = 0
	exitError       = 1
	exitInterrupted = 130
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one command and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		fmt.Fprint(stderr, usage)
		return exitError
	}

	command := args[0]
	args = args[1:]

	switch command {
	case "echo", "echobytes", "edit", "form", "filter", "select":
		return runWidget(command, args, stdout, stderr)
	case "version":
		fmt.Fprintf(stdout, "twidge version %s\n", version)
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
	default:
		fmt.Fprintf(stderr, "unknown command: %s\n\n", command)
		fmt.Fprint(stderr, usage)
		return exitError
	}
	return exitOK
}
