package commands

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	json "github.com/goccy/go-json"

	"csssel/config"
	"csssel/match"
	"csssel/recipe"
)

// openDestination returns STDOUT when name is empty.
func openDestination(name string) (io.WriteCloser, string, error) {
	if len(name) == 0 {
		return nopCloser{os.Stdout}, "STDOUT", nil
	}
	f, err := os.Create(name)
	if err != nil {
		return nil, name, fmt.Errorf("unable to create destination file '%s': %w", name, err)
	}
	return f, name, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

func writeBuilt(w io.Writer, book *recipe.Book, named []recipe.Named, format config.OutputFmt) error {
	switch format {
	case config.OutputFmtJson:
		return writeJSON(w, recipe.Results(named))
	case config.OutputFmtCss:
		_, err := recipe.Stylesheet(named, book.Imports...).WriteTo(w)
		return err
	default:
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, n := range named {
			fmt.Fprintf(tw, "%s\t%s\n", n.Name, n.Selector)
		}
		return tw.Flush()
	}
}

func writeMatched(w io.Writer, results []match.Result, format config.OutputFmt, nodes bool) error {
	if !nodes {
		for i := range results {
			results[i].Nodes = nil
		}
	}
	switch format {
	case config.OutputFmtJson:
		return writeJSON(w, results)
	case config.OutputFmtCss:
		return fmt.Errorf("output format '%s' is not supported for match results", format)
	default:
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, r := range results {
			fmt.Fprintf(tw, "%s\t%d\t%s\n", r.Name, r.Count, r.Selector)
			for _, n := range r.Nodes {
				fmt.Fprintf(tw, "\t\t%s\n", n)
			}
		}
		return tw.Flush()
	}
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("unable to encode json: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}
