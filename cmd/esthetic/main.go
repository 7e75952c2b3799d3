package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/agiangrant/esthetic/cmd/esthetic/commands"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "render":
		err = commands.Render(args)
	case "serve":
		err = commands.Serve(args)
	case "init":
		err = commands.Init(args)
	case "version", "-v", "--version":
		fmt.Printf("esthetic version %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`esthetic - dropdown widgets for plain <select> controls

Usage: esthetic <command> [options]

Commands:
  render     Enhance every host element of a page and write the result
  serve      Serve a page with live widgets over HTTP
  init       Write a default esthetic.toml
  version    Print version information
  help       Show this help message

Examples:
  esthetic render page.html                 Write the enhanced page to stdout
  esthetic render -o out.html page.html     Write it to out.html
  esthetic serve --addr :9000 page.html     Try the widgets on localhost:9000
  esthetic init --locale de                 Create esthetic.toml with German text

Configuration:
  Widgets are configured via esthetic.toml in the project root.
  Run 'esthetic init' to create one with the defaults.`)
}
