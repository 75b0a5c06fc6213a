// Command filters translates a collection URL query into the Storefront
// filter variables and applied filter chips the service would use.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"storefront/internal/filter"
	"storefront/internal/model"
)

type translation struct {
	Filters        []model.FilterPredicate `json:"filters" yaml:"filters"`
	AppliedFilters []model.AppliedFilter   `json:"appliedFilters" yaml:"appliedFilters"`
	Sort           model.SortOption        `json:"sort" yaml:"sort"`
}

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:      "filters",
		Usage:     "Translate collection URL queries into storefront product filters",
		Writer:    out,
		ErrWriter: out,
		Commands: []*cli.Command{
			{
				Name:      "translate",
				Usage:     "Print the filters, applied filters and sort for a query string",
				ArgsUsage: "QUERY",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "json",
						Usage:   "output format: json or yaml",
					},
					&cli.StringFlag{
						Name:  "path",
						Value: "/",
						Usage: "page path used for the removal links",
					},
				},
				Action: translateAction,
			},
			{
				Name:  "rules",
				Usage: "List the filter rules in priority order",
				Action: func(c *cli.Context) error {
					for i, name := range filter.NewTranslator().RuleNames() {
						fmt.Fprintf(c.App.Writer, "%d. %s\n", i+1, name)
					}
					fmt.Fprintf(c.App.Writer, "then: %s / %s price range\n", filter.KeyMinPrice, filter.KeyMaxPrice)
					return nil
				},
			},
		},
	}
}

func translateAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one QUERY argument, got %d", c.NArg())
	}

	raw := c.Args().First()
	// Accept full URLs as well as bare query strings.
	if i := strings.Index(raw, "?"); i >= 0 {
		raw = raw[i+1:]
	}

	params := filter.ParseQuery(raw)
	res := filter.NewTranslator().Translate(params)
	out := translation{
		Filters:        res.Filters,
		AppliedFilters: filter.WithRemovalLinks(c.String("path"), params, res.AppliedFilters),
		Sort:           filter.TranslateSort(params),
	}

	switch strings.ToLower(c.String("format")) {
	case "json":
		enc := json.NewEncoder(c.App.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "yaml", "yml":
		enc := yaml.NewEncoder(c.App.Writer)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q", c.String("format"))
	}
}
