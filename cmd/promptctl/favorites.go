package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/phrazzld/promptchain/internal/bootstrap"
	"github.com/phrazzld/promptchain/internal/domain"
	"github.com/phrazzld/promptchain/internal/service"
)

func newFavoritesCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "favorites",
		Aliases: []string{"fav"},
		Short:   "Manage saved favorites",
	}
	cmd.AddCommand(
		newFavoritesListCommand(ctx),
		newFavoritesSearchCommand(ctx),
		newFavoritesShowCommand(ctx),
		newFavoritesAddCommand(ctx),
		newFavoritesDeleteCommand(ctx),
		newFavoritesExportCommand(ctx),
		newFavoritesStatsCommand(ctx),
	)
	return cmd
}

func newFavoritesListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List favorites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withComponents(cmd, func(c *bootstrap.Components) error {
				favorites, err := c.Favorites.List(cmd.Context())
				if err != nil {
					return err
				}
				printFavorites(cmd, favorites)
				return nil
			})
		},
	}
}

func newFavoritesSearchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "search QUERY",
		Short: "Search favorites by text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withComponents(cmd, func(c *bootstrap.Components) error {
				favorites, err := c.Favorites.Search(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				printFavorites(cmd, favorites)
				return nil
			})
		},
	}
}

func newFavoritesShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one favorite",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseFavoriteID(args[0])
			if err != nil {
				return err
			}
			return ctx.withComponents(cmd, func(c *bootstrap.Components) error {
				f, err := c.Favorites.Get(cmd.Context(), id)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "ID:        %s\n", f.ID)
				fmt.Fprintf(out, "Title:     %s\n", f.Title)
				fmt.Fprintf(out, "Character: %s\n", f.Character)
				fmt.Fprintf(out, "Created:   %s\n", f.CreatedAt.Format(time.RFC3339))
				fmt.Fprintf(out, "\nPrimary:\n%s\n", f.PromptPrimary)
				if f.PromptSecondary != "" {
					fmt.Fprintf(out, "\nSecondary:\n%s\n", f.PromptSecondary)
				}
				if f.PromptVideo != "" {
					fmt.Fprintf(out, "\nVideo:\n%s\n", f.PromptVideo)
				}
				return nil
			})
		},
	}
}

func newFavoritesAddCommand(ctx *commandContext) *cobra.Command {
	var in service.NewFavoriteInput

	cmd := &cobra.Command{
		Use:   "add TITLE",
		Short: "Save a favorite",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Title = args[0]
			return ctx.withComponents(cmd, func(c *bootstrap.Components) error {
				f, err := c.Favorites.Add(cmd.Context(), in)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved favorite %s\n", f.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&in.PromptPrimary, "primary", "", "Primary language prompt")
	cmd.Flags().StringVar(&in.PromptSecondary, "secondary", "", "Secondary language prompt")
	cmd.Flags().StringVar(&in.PromptVideo, "video", "", "Video prompt")
	cmd.Flags().StringVar(&in.Character, "character", "", "Character key")
	return cmd
}

func newFavoritesDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete a favorite",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseFavoriteID(args[0])
			if err != nil {
				return err
			}
			return ctx.withComponents(cmd, func(c *bootstrap.Components) error {
				if err := c.Favorites.Delete(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted favorite %s\n", id)
				return nil
			})
		},
	}
}

func newFavoritesExportCommand(ctx *commandContext) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export favorites as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withComponents(cmd, func(c *bootstrap.Components) error {
				data, err := c.Favorites.Export(cmd.Context())
				if err != nil {
					return err
				}
				if output == "" || output == "-" {
					_, err = cmd.OutOrStdout().Write(append(data, '\n'))
					return err
				}
				if err := os.WriteFile(output, data, 0o644); err != nil {
					return fmt.Errorf("write export: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported favorites to %s\n", output)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of stdout")
	return cmd
}

func newFavoritesStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarize favorites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withComponents(cmd, func(c *bootstrap.Components) error {
				stats, err := c.Favorites.Stats(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Total favorites: %d\n", stats.Total)
				if stats.LastCreated != nil {
					fmt.Fprintf(out, "Last saved: %s\n", stats.LastCreated.Format(time.RFC3339))
				}
				if len(stats.ByCharacter) == 0 {
					return nil
				}

				keys := make([]string, 0, len(stats.ByCharacter))
				for k := range stats.ByCharacter {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				rows := make([][]string, 0, len(keys))
				for _, k := range keys {
					rows = append(rows, []string{k, strconv.Itoa(stats.ByCharacter[k])})
				}
				fmt.Fprintln(out, renderTable([]string{"Character", "Count"}, rows, []columnAlignment{alignLeft, alignRight}))
				return nil
			})
		},
	}
}

func parseFavoriteID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s", domain.ErrInvalidID, raw)
	}
	return id, nil
}

func printFavorites(cmd *cobra.Command, favorites []*domain.Favorite) {
	out := cmd.OutOrStdout()
	if len(favorites) == 0 {
		fmt.Fprintln(out, "No favorites found")
		return
	}
	rows := make([][]string, 0, len(favorites))
	for _, f := range favorites {
		rows = append(rows, []string{
			f.ID.String(),
			truncate(f.Title, 40),
			f.Character,
			f.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"ID", "Title", "Character", "Created"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
	))
}
