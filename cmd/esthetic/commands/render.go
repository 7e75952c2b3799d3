package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/agiangrant/esthetic"
	"github.com/agiangrant/esthetic/internal/logging"
	"github.com/agiangrant/esthetic/source"
)

// Render implements 'esthetic render': enhance every host in a document and
// write the result.
func Render(args []string) error {
	fs, logLevel := newFlagSet("render")
	configPath := fs.String("config", "", "config file (default: esthetic.toml in the project root)")
	outPath := fs.StringP("out", "o", "", "output file (default: stdout)")
	if err := parse(fs, logLevel, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: esthetic render [--config file] [--out file] input.html")
	}

	config, err := LoadProjectConfig(*configPath)
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", *outPath, err)
		}
		defer f.Close()
		out = f
	}

	n, err := renderFile(fs.Arg(0), out, config)
	if err != nil {
		return err
	}
	logging.Logger().Info("rendered", "input", fs.Arg(0), "widgets", n)
	return nil
}

func renderFile(path string, out io.Writer, config esthetic.Config) (int, error) {
	in, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer in.Close()

	doc, err := source.Parse(in)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	ctl, err := esthetic.NewController(config)
	if err != nil {
		return 0, err
	}
	widgets, err := ctl.Enhance(doc)
	if err != nil {
		return 0, err
	}

	w := bufio.NewWriter(out)
	if err := ctl.Write(w, doc); err != nil {
		return 0, err
	}
	return len(widgets), w.Flush()
}
