package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hyperjump/ideaworks/internal/cli"
	"github.com/hyperjump/ideaworks/internal/models"
)

func newSuggestCmd(g *globalFlags) *cobra.Command {
	var (
		query  models.CollaboratorQuery
		format string
	)
	cmd := &cobra.Command{
		Use:   "suggest --idea <text> [--idea <text>...]",
		Short: "Suggest collaborators for one or more ideas",
		Example: `  ideaworks suggest --idea "LLM-powered RAG app" --keyword langchain
  ideaworks suggest --idea "geospatial risk maps" --location Sofia --max 5 --format text`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := cli.ParseOutputFormat(format)
			if err != nil {
				return err
			}
			cfg, _, logger, err := g.setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			if err := query.Validate(models.QueryLimits{
				DefaultMaxResults: cfg.Search.DefaultMaxResults,
				MaxResultsLimit:   cfg.Search.MaxResultsLimit,
			}); err != nil {
				return err
			}

			comps, err := initializeComponents(cfg, logger)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Server.RequestTimeout)
			defer cancel()
			response := comps.Finder.Suggest(ctx, &query)
			return cli.WriteSuggestions(cmd.OutOrStdout(), response, out)
		},
	}
	cmd.Flags().StringArrayVar(&query.Ideas, "idea", nil, "idea description (repeatable, required)")
	cmd.Flags().StringArrayVar(&query.Keywords, "keyword", nil, "extra search keyword (repeatable)")
	cmd.Flags().StringVar(&query.Location, "location", "", "preferred location")
	cmd.Flags().IntVar(&query.MaxResults, "max", 0, "maximum number of candidates (default from config)")
	cmd.Flags().StringVar(&format, "format", string(cli.OutputJSON), "output format: json or text")
	_ = cmd.MarkFlagRequired("idea")
	return cmd
}

// joinArgs joins positional args so multi-word queries work with or without quotes.
func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
