package main

import (
	"context"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hyperjump/ideaworks/internal/cli"
	"github.com/hyperjump/ideaworks/internal/papers"
)

func newPapersCmd(g *globalFlags) *cobra.Command {
	var (
		source string
		limit  int
		offset int
		format string
	)
	cmd := &cobra.Command{
		Use:   "papers <query>",
		Short: "Search research papers on Crossref and arXiv",
		Example: `  ideaworks papers graph neural networks
  ideaworks papers --source both --limit 5 "retrieval augmented generation"`,
		Args: cobra.MinimumNArgs(1),
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

			comps, err := initializeComponents(cfg, logger)
			if err != nil {
				return err
			}

			params := url.Values{"q": {joinArgs(args)}, "source": {source}}
			if limit > 0 {
				params.Set("limit", strconv.Itoa(limit))
			}
			if offset > 0 {
				params.Set("offset", strconv.Itoa(offset))
			}
			q, err := papers.ParseQuery(params, comps.Papers.Limits())
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Server.RequestTimeout)
			defer cancel()
			response, err := comps.Papers.Search(ctx, q)
			if err != nil {
				return err
			}
			return cli.WritePapers(cmd.OutOrStdout(), response, out)
		},
	}
	cmd.Flags().StringVar(&source, "source", "crossref", "crossref, arxiv, both or all")
	cmd.Flags().IntVar(&limit, "limit", 0, "number of results (default from config)")
	cmd.Flags().IntVar(&offset, "offset", 0, "result offset")
	cmd.Flags().StringVar(&format, "format", string(cli.OutputText), "output format: json or text")
	return cmd
}
