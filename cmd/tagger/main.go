// Command tagger renders YAML document trees as markup or JSON using the
// tagger streaming writer.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/bjaus/tagger"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
		os.Exit(1)
	}
}

var opts struct {
	Verbose bool
	Indent  string
	Out     string
	Format  string
}

func outFlag() cli.Flag {
	return &cli.StringFlag{
		Name:        "out",
		Aliases:     []string{"o"},
		Usage:       "Write to `FILE` atomically instead of standard output",
		Destination: &opts.Out,
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:     "tagger",
		HelpName: "tagger",
		Usage:    "Stream markup documents described in YAML",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "verbose",
				Aliases:     []string{"v"},
				Usage:       "Include debug level logs",
				Destination: &opts.Verbose,
			},
		},
		Before: func(*cli.Context) error {
			setupLogging(opts.Verbose)
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "render",
				Usage:     "Render a YAML element tree as XML, SVG or HTML",
				ArgsUsage: "[FILE]",
				Flags: []cli.Flag{
					outFlag(),
					&cli.StringFlag{
						Name:        "indent",
						Usage:       "Indent nested elements with `STRING`",
						Destination: &opts.Indent,
					},
					&cli.StringFlag{
						Name:        "format",
						Aliases:     []string{"f"},
						Usage:       "Output format: xml or html",
						Value:       string(XML),
						Destination: &opts.Format,
					},
				},
				Action: renderCmd,
			},
			{
				Name:      "json",
				Usage:     "Stream a YAML mapping as a JSON object",
				ArgsUsage: "[FILE]",
				Flags:     []cli.Flag{outFlag()},
				Action:    jsonCmd,
			},
			{
				Name:  "formats",
				Usage: "List the formats accepted by render",
				Action: func(cc *cli.Context) error {
					for _, f := range formats {
						if _, err := fmt.Fprintln(cc.App.Writer, f); err != nil {
							return err
						}
					}
					return nil
				},
			},
		},
	}
}

func setupLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func renderCmd(cc *cli.Context) error {
	f, err := ParseFormat(opts.Format)
	if err != nil {
		return err
	}
	in, err := openInput(cc.Args().First())
	if err != nil {
		return err
	}
	defer in.Close()

	var topts []tagger.Option
	if opts.Indent != "" {
		topts = append(topts, tagger.WithIndent(opts.Indent))
	}
	slog.Debug("rendering tree", "input", cc.Args().First(), "format", f, "indent", opts.Indent)
	return writeOutput(opts.Out, func(w io.Writer) error {
		return renderTree(w, in, f, topts...)
	})
}

func jsonCmd(cc *cli.Context) error {
	in, err := openInput(cc.Args().First())
	if err != nil {
		return err
	}
	defer in.Close()

	slog.Debug("converting mapping", "input", cc.Args().First())
	return writeOutput(opts.Out, func(w io.Writer) error {
		return convertJSON(w, in)
	})
}
