package main

import (
	"fmt"
	"strconv"
	"strings"

	"boardshelf/backend/internal/catalog"
	"boardshelf/backend/internal/duplicate"
	"boardshelf/backend/internal/filter"

	"github.com/spf13/cobra"
)

func newGamesCommand(ctx *commandContext) *cobra.Command {
	gamesCmd := &cobra.Command{
		Use:   "games",
		Short: "Inspect the catalogue",
	}

	gamesCmd.AddCommand(newGamesListCommand(ctx))
	gamesCmd.AddCommand(newGamesDupesCommand(ctx))

	return gamesCmd
}

func newGamesListCommand(ctx *commandContext) *cobra.Command {
	var (
		spec       filter.Spec
		matchAll   bool
		categories []string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List games matching the given filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := ctx.store()
			if err != nil {
				return err
			}
			cats, err := st.Categories(cmd.Context())
			if err != nil {
				return err
			}
			vocabulary := make([]string, 0, len(cats))
			for _, c := range cats {
				vocabulary = append(vocabulary, c.Name)
			}
			records, err := st.Records(cmd.Context())
			if err != nil {
				return err
			}

			spec.Categories = categories
			spec.CategoryFilterType = filter.MatchAny
			if matchAll {
				spec.CategoryFilterType = filter.MatchAll
			}
			matched := filter.NewEngine(vocabulary).Apply(records, spec)

			out := cmd.OutOrStdout()
			if len(matched) == 0 {
				fmt.Fprintln(out, "No games match")
				return nil
			}
			fmt.Fprintln(out, renderGames(matched))
			fmt.Fprintf(out, "%d of %d games\n", len(matched), len(records))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&spec.NumPlayers, "players", 0, "Number of players that must be able to play")
	flags.Float64Var(&spec.Rating, "rating", 0, "Minimum personal rating")
	flags.StringSliceVar(&categories, "category", nil, "Category to match (repeatable or comma separated)")
	flags.BoolVar(&matchAll, "and", false, "Require every category instead of any")
	flags.StringVar(&spec.Language, "language", filter.All, "Language code")
	flags.StringVar(&spec.Owner, "owner", filter.All, "Owner name")
	flags.StringVar(&spec.Mode, "mode", filter.All, "Tag to match")
	flags.StringVarP(&spec.Query, "query", "q", "", "Name substring")
	return cmd
}

func newGamesDupesCommand(ctx *commandContext) *cobra.Command {
	var (
		candidate catalog.Record
		threshold float64
	)

	cmd := &cobra.Command{
		Use:   "dupes",
		Short: "Show which stored games a new entry would duplicate",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, cfg, err := ctx.store()
			if err != nil {
				return err
			}
			records, err := st.Records(cmd.Context())
			if err != nil {
				return err
			}
			if threshold <= 0 {
				threshold = cfg.DuplicateThreshold
			}

			matches, err := duplicate.New(threshold).Matches(candidate, records)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(matches) == 0 {
				fmt.Fprintln(out, "No duplicates found")
				return nil
			}
			rows := make([][]string, 0, len(matches))
			for _, m := range matches {
				rows = append(rows, []string{m.Record.ID, m.Record.Name, strconv.FormatFloat(m.Score, 'f', 3, 64)})
			}
			fmt.Fprintln(out, renderTable([]string{"ID", "Name", "Score"}, rows, []columnAlignment{alignLeft, alignLeft, alignRight}))
			return nil
		},
	}

	cmd.Flags().StringVar(&candidate.Name, "name", "", "Name of the new entry")
	cmd.Flags().StringVar(&candidate.ID, "id", "", "Catalogue ID of the new entry")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "Similarity threshold (defaults to DUPLICATE_THRESHOLD)")
	return cmd
}

func renderGames(records []catalog.Record) string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.ID,
			r.Name,
			players(r),
			rating(r),
			strings.Join(r.Categories, ", "),
			strings.Join(r.Owners, ", "),
			r.Tag,
		})
	}
	return renderTable(
		[]string{"ID", "Name", "Players", "Rating", "Categories", "Owners", "Tag"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight},
	)
}

func players(r catalog.Record) string {
	switch {
	case r.MinPlayers == 0 && r.MaxPlayers == 0:
		return "-"
	case r.MinPlayers == r.MaxPlayers:
		return strconv.Itoa(r.MinPlayers)
	default:
		return fmt.Sprintf("%d-%d", r.MinPlayers, r.MaxPlayers)
	}
}

func rating(r catalog.Record) string {
	if r.Rating == nil {
		return "-"
	}
	return strconv.FormatFloat(*r.Rating, 'f', -1, 64)
}
