// diaview is an interactive browser for layered image (.dia) archives.
//
// Interactive mode (default): opens a terminal UI with the archive's
// asset ids in a list pane. Selecting an id resolves its dependency
// chain, composites the layers, and shows the result in the preview
// pane, scaled down to fit. A newer selection supersedes an in-flight
// render; its result is discarded when it lands.
//
// Headless mode (--id/--out): composites a single asset id and writes
// the result as a PNG file, then exits. Useful for scripting and for
// inspecting archives on machines without a usable terminal.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/go-dia/dia"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var renderID string
	var outPath string
	var logLevel string

	flagSet := pflag.NewFlagSet("diaview", pflag.ContinueOnError)
	flagSet.StringVar(&renderID, "id", "", "composite this asset id and exit (requires --out)")
	flagSet.StringVar(&outPath, "out", "", "write the composited image to this PNG file")
	flagSet.StringVar(&logLevel, "log-level", "", "enable library logging at this level (debug, info, warn, error)")
	flagSet.BoolP("help", "h", false, "show help")

	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Printf("diaview %s\n", dia.Version)
		return nil
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(flagSet)
			return nil
		}
		return err
	}

	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}

	args := flagSet.Args()
	if len(args) != 1 {
		printHelp(flagSet)
		return errors.New("expected exactly one archive path")
	}

	if logLevel != "" {
		level, err := parseLevel(logLevel)
		if err != nil {
			return err
		}
		dia.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})))
	}

	ar := dia.NewArchive(args[0])
	manifest, err := ar.ReadManifest()
	if err != nil {
		return err
	}
	cat := dia.NewCatalog(manifest)

	if renderID != "" || outPath != "" {
		return renderOnce(cat, ar, renderID, outPath)
	}

	program := tea.NewProgram(newModel(ar, cat), tea.WithAltScreen())
	_, err = program.Run()
	return err
}

// renderOnce composites a single id and writes it out as PNG.
func renderOnce(cat *dia.Catalog, ar dia.Archive, id, outPath string) error {
	if id == "" || outPath == "" {
		return errors.New("--id and --out must be used together")
	}

	pm, err := dia.Render(cat, ar, id)
	if err != nil {
		return fmt.Errorf("render %q: %w", id, err)
	}
	if err := pm.SavePNG(outPath); err != nil {
		return err
	}

	fmt.Printf("%s: %dx%d\n", outPath, pm.Width(), pm.Height())
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `diaview — interactive browser for layered image archives.

Opens a terminal UI listing the archive's asset ids. Selecting an id
composites its dependency chain and previews the result, scaled to fit.

With --id and --out, composites one id headlessly and writes a PNG.

Usage:
  diaview [flags] <path/to/archive.dia>

Flags:
%s`, flagSet.FlagUsages())
}
