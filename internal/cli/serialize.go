package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/rdfstore/internal/graph"
)

// SerializeOptions holds flags for the serialize command.
type SerializeOptions struct {
	*RootOptions
	Sorted bool
}

// SerializeResult is the JSON payload of the serialize command.
type SerializeResult struct {
	Source  string   `json:"source"`
	Triples int      `json:"triples"`
	Lines   []string `json:"lines"`
}

// NewSerializeCommand creates the serialize command.
func NewSerializeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SerializeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serialize <document>",
		Short: "Print the triples of a document",
		Long: `Crawl an annotated document (.yaml, .yml, .cue) or decode an N-Triples
file (.nt) and print the resulting graph, one triple per line.

Examples:
  rdfstore serialize page.yaml
  rdfstore serialize page.cue --sorted
  rdfstore serialize data.nt --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSerialize(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Sorted, "sorted", false, "sort lines for stable output")

	return cmd
}

func runSerialize(opts *SerializeOptions, path string, cmd *cobra.Command) error {
	g := graph.New()
	if err := loadInto(g, path); err != nil {
		return err
	}

	var lines []string
	if out := g.Serialize(); out != "" {
		lines = strings.Split(out, "\n")
	}
	if opts.Sorted {
		sort.Strings(lines)
	}

	w := cmd.OutOrStdout()
	if opts.Format == "json" {
		if lines == nil {
			lines = []string{}
		}
		return writeOK(w, SerializeResult{Source: path, Triples: g.Len(), Lines: lines})
	}
	if len(lines) > 0 {
		fmt.Fprintln(w, strings.Join(lines, "\n"))
	}
	return nil
}
