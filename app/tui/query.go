package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/acarl005/stripansi"
	"github.com/mattn/go-isatty"
	"github.com/noelzubin/notefind/notes"
	"github.com/noelzubin/notefind/search"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

type queryFlags struct {
	caseSensitive bool
	wholeWord     bool
	regex         bool
	noCategories  bool
	category      string
	priority      string
	from          string
	to            string
	json          bool
	limit         int
}

// jsonResult is one result as printed by --json.
type jsonResult struct {
	search.Result
	Contexts []search.Context `json:"contexts"`
}

func newQueryCmd(root *rootFlags) *cobra.Command {
	flags := &queryFlags{}

	cmd := &cobra.Command{
		Use:   "query [text]",
		Short: "Run one search and print the ranked results",
		Long: `Runs a single search against the notes snapshot.

With no text the filters alone select notes, every one scoring 1.
With neither text nor filters nothing is returned.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(root)
			if err != nil {
				return err
			}

			opts, err := flags.options(e.config.SearchOptions(), e.collection, cmd)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				opts.Query = args[0]
			}

			results := e.engine.Search(e.collection.Notes, e.collection.Categories, opts)
			limit := flags.limit
			if !cmd.Flags().Changed("limit") {
				limit = e.config.ResultLimit
			}
			if limit > 0 && len(results) > limit {
				results = results[:limit]
			}

			if flags.json {
				return printJSON(cmd.OutOrStdout(), results, e.engine, e.config.ContextSize)
			}
			w := cmd.OutOrStdout()
			printResults(w, results, e, opts, !isTerminal(w))
			return nil
		},
	}

	f := cmd.Flags()
	f.BoolVarP(&flags.caseSensitive, "case", "c", false, "case sensitive matching")
	f.BoolVarP(&flags.wholeWord, "word", "w", false, "match whole words only")
	f.BoolVarP(&flags.regex, "regex", "e", false, "treat the query as a regular expression")
	f.BoolVar(&flags.noCategories, "no-categories", false, "do not search category names")
	f.StringVar(&flags.category, "category", "", "only notes in this category (id or name)")
	f.StringVarP(&flags.priority, "priority", "p", "", "only notes with this priority (low, medium, high, critical)")
	f.StringVar(&flags.from, "from", "", "only notes on or after this date (YYYY-MM-DD)")
	f.StringVar(&flags.to, "to", "", "only notes on or before this date (YYYY-MM-DD)")
	f.BoolVar(&flags.json, "json", false, "print results as JSON")
	f.IntVar(&flags.limit, "limit", 0, "maximum number of results, 0 for all")

	return cmd
}

// options applies the flags that were set on top of the configured defaults.
func (f *queryFlags) options(opts search.Options, collection *notes.Collection, cmd *cobra.Command) (search.Options, error) {
	changed := cmd.Flags().Changed
	if changed("case") {
		opts.CaseSensitive = f.caseSensitive
	}
	if changed("word") {
		opts.MatchWholeWord = f.wholeWord
	}
	if changed("regex") {
		opts.UseRegex = f.regex
	}
	if changed("no-categories") {
		opts.SearchInCategories = !f.noCategories
	}

	if f.category != "" {
		opts.CategoryFilter = f.category
		if _, ok := collection.Category(f.category); !ok {
			if c, ok := collection.CategoryByName(f.category); ok {
				opts.CategoryFilter = c.ID
			}
		}
	}

	if f.priority != "" {
		p, err := search.ParsePriority(f.priority)
		if err != nil {
			return opts, err
		}
		opts.PriorityFilter = p
	}

	var err error
	if opts.DateRange.From, err = parseDate(f.from); err != nil {
		return opts, fmt.Errorf("--from: %w", err)
	}
	if opts.DateRange.To, err = parseDate(f.to); err != nil {
		return opts, fmt.Errorf("--to: %w", err)
	}
	return opts, nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation(dateLayout, s, time.Local)
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

// printResults writes the ranked results. With plain set, styling is
// left out so the output can be piped.
func printResults(w io.Writer, results []search.Result, e *env, opts search.Options, plain bool) {
	render := func(s string) string {
		if plain {
			return stripansi.Strip(s)
		}
		return s
	}

	if len(results) == 0 {
		if opts.Inactive() {
			fmt.Fprintln(w, "nothing to search for")
		} else {
			fmt.Fprintln(w, "no results")
		}
		return
	}

	for _, r := range results {
		fmt.Fprintf(w, "%3d  %s  %s\n", r.Score, r.Note.ID, title(r, e.collection))
		if len(r.Matches) == 0 {
			fmt.Fprintf(w, "     %s\n", render(snippet(r, e.engine, e.config.ContextSize)))
			continue
		}
		for _, m := range r.Matches {
			for _, p := range m.Positions {
				line := render(highlight(e.engine.ExtractContext(m.Text, p, e.config.ContextSize)))
				fmt.Fprintf(w, "     %-8s %s\n", m.Field+":", line)
			}
		}
	}
}

func printJSON(w io.Writer, results []search.Result, engine search.Engine, contextSize int) error {
	out := lo.Map(results, func(r search.Result, _ int) jsonResult {
		var contexts []search.Context
		for _, m := range r.Matches {
			for _, p := range m.Positions {
				contexts = append(contexts, engine.ExtractContext(m.Text, p, contextSize))
			}
		}
		return jsonResult{Result: r, Contexts: contexts}
	})

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	return nil
}
