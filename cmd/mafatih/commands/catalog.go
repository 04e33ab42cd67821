// cmd/mafatih/commands/catalog.go
package commands

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"mafatih/internal/catalog"
	"mafatih/internal/models"
)

const catalogTimeout = 30 * time.Second

func newCatalogCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse the Islam House content catalog",
	}
	cmd.AddCommand(
		newCatalogListCmd(e),
		newCatalogPageCmd(e),
		newCatalogTOCCmd(e),
		newCatalogDiagnoseCmd(e),
	)
	return cmd
}

type listOutput struct {
	Items         []models.ContentItem `json:"items"`
	UsingFallback bool                 `json:"usingFallback"`
	Error         string               `json:"error,omitempty"`
	Stats         catalog.ContentStats `json:"stats"`
}

func newCatalogListCmd(e *env) *cobra.Command {
	var f catalog.Filters
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List content with filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch f.SortBy {
			case "", catalog.SortLatest, catalog.SortPopular, catalog.SortTitle:
			default:
				return fmt.Errorf("--sort must be one of latest, popular, title")
			}
			a, err := e.services(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), catalogTimeout)
			defer cancel()

			res := a.Catalog.ListContent(ctx, f)
			out := listOutput{Items: res.Data, UsingFallback: res.UsingFallback, Stats: catalog.Stats(res.Data)}
			if res.Err != nil {
				out.Error = res.Err.Error()
			}
			return printJSON(cmd, out)
		},
	}
	cmd.Flags().StringVar(&f.Lang, "lang", "ar", "content language")
	cmd.Flags().StringVar(&f.ContentType, "type", "", "content type (book, article, audio, video)")
	cmd.Flags().StringVar(&f.Category, "category", "", "category name or id")
	cmd.Flags().StringVar(&f.Author, "author", "", "author name or id")
	cmd.Flags().StringVarP(&f.Search, "search", "s", "", "search in title, description and author")
	cmd.Flags().StringVar(&f.SortBy, "sort", "", "latest, popular or title")
	cmd.Flags().IntVar(&f.Offset, "offset", 0, "items to skip")
	cmd.Flags().IntVar(&f.Limit, "limit", 20, "maximum items")
	return cmd
}

func parseID(raw, name string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return n, nil
}

func newCatalogPageCmd(e *env) *cobra.Command {
	var langs []string
	cmd := &cobra.Command{
		Use:   "page <book-id> <page>",
		Short: "Show one page of a book",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			bookID, err := parseID(args[0], "book id")
			if err != nil {
				return err
			}
			page, err := parseID(args[1], "page")
			if err != nil {
				return err
			}
			a, err := e.services(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), catalogTimeout)
			defer cancel()

			content, err := a.Catalog.GetPage(ctx, bookID, page, langs)
			if err != nil {
				return err
			}
			return printJSON(cmd, content)
		},
	}
	cmd.Flags().StringSliceVar(&langs, "langs", nil, "languages to include, e.g. ar,en")
	return cmd
}

func newCatalogTOCCmd(e *env) *cobra.Command {
	var lang string
	cmd := &cobra.Command{
		Use:   "toc <book-id>",
		Short: "Show the table of contents of a book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bookID, err := parseID(args[0], "book id")
			if err != nil {
				return err
			}
			a, err := e.services(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), catalogTimeout)
			defer cancel()

			toc, err := a.Catalog.GetTableOfContents(ctx, bookID, lang)
			if err != nil {
				return err
			}
			return printJSON(cmd, toc)
		},
	}
	cmd.Flags().StringVar(&lang, "lang", "ar", "title language")
	return cmd
}

func newCatalogDiagnoseCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "diagnose",
		Short: "Probe the catalog API and report reachability",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := e.services(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), catalogTimeout)
			defer cancel()
			return printJSON(cmd, a.Catalog.TestConnection(ctx))
		},
	}
}
