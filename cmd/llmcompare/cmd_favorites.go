package main

import (
	"fmt"

	"github.com/spboyer/llmcompare/internal/catalog"
	"github.com/spboyer/llmcompare/internal/models"
	"github.com/spboyer/llmcompare/internal/prefs"
	"github.com/spf13/cobra"
)

func newFavoritesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "favorites",
		Aliases: []string{"fav"},
		Short:   "Manage favorite models",
		Long: `Manage favorite models.

Favorites are marked with ★ in "llmcompare list"; "llmcompare list
--favorites" shows only them.`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List favorite models",
			Args:  cobra.NoArgs,
			RunE:  favoritesListE,
		},
		&cobra.Command{
			Use:   "add <model-id>...",
			Short: "Add models to favorites",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return editFavorites(cmd, args, true, func(f *prefs.Favorites, id string) (string, error) {
					return "Added " + id, f.Add(id)
				})
			},
		},
		&cobra.Command{
			Use:   "remove <model-id>...",
			Short: "Remove models from favorites",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return editFavorites(cmd, args, false, func(f *prefs.Favorites, id string) (string, error) {
					return "Removed " + id, f.Remove(id)
				})
			},
		},
		&cobra.Command{
			Use:   "toggle <model-id>...",
			Short: "Add models that are not favorites and remove those that are",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return editFavorites(cmd, args, true, func(f *prefs.Favorites, id string) (string, error) {
					on, err := f.Toggle(id)
					if on {
						return "Added " + id, err
					}
					return "Removed " + id, err
				})
			},
		},
	)
	return cmd
}

func favoritesListE(cmd *cobra.Command, _ []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	ids, err := prefs.NewFavorites(e.store).List()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(ids) == 0 {
		fmt.Fprintln(out, "No favorites yet. Add one with: llmcompare favorites add <model-id>") //nolint:errcheck
		return nil
	}

	c, err := e.catalog(cmd.Context())
	if err != nil {
		return err
	}
	ms := make([]models.Model, 0, len(ids))
	for _, id := range ids {
		m, err := c.Get(id)
		if err != nil {
			// Favorites can outlive the catalog entry they point at.
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: favorite %q is not in the catalog\n", id) //nolint:errcheck
			continue
		}
		ms = append(ms, m)
	}
	printModelTable(cmd, ms, toSet(ids))
	return nil
}

// editFavorites applies edit to each id. With requireKnown, ids missing from
// the catalog are rejected; removal skips the check so stale entries can go.
func editFavorites(cmd *cobra.Command, ids []string, requireKnown bool, edit func(*prefs.Favorites, string) (string, error)) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	c, err := e.catalog(cmd.Context())
	if err != nil {
		return err
	}
	favorites := prefs.NewFavorites(e.store)
	for _, id := range ids {
		if requireKnown && !c.Has(id) {
			return fmt.Errorf("%w: %q", catalog.ErrNotFound, id)
		}
		msg, err := edit(favorites, id)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg) //nolint:errcheck
	}
	return nil
}
