package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vbonduro/labinv/internal/domain"
)

type itemFlags struct {
	name     string
	location int64
	number   int
	price    float64
}

func (f *itemFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "item name")
	cmd.Flags().Int64Var(&f.location, "location", 0, "location id")
	cmd.Flags().IntVar(&f.number, "number", 0, "quantity in stock")
	cmd.Flags().Float64Var(&f.price, "price", 0, "unit price")
}

// apply overrides draft with the flags the user actually set.
func (f *itemFlags) apply(cmd *cobra.Command, draft *domain.ItemDraft) {
	if cmd.Flags().Changed("name") {
		draft.Name = f.name
	}
	if cmd.Flags().Changed("location") {
		draft.LocationID = f.location
	}
	if cmd.Flags().Changed("number") {
		n := f.number
		draft.Number = &n
	}
	if cmd.Flags().Changed("price") {
		p := f.price
		draft.Price = &p
	}
}

func newItemsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "List and edit items",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all items with their location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printItems(cmd.OutOrStdout(), a.store.ItemsWithLocations())
		},
	})

	var add itemFlags
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add an item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var draft domain.ItemDraft
			add.apply(cmd, &draft)
			item, err := a.store.CreateItem(cmd.Context(), draft)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created item %d\n", item.ID)
			return printItems(cmd.OutOrStdout(), a.store.ItemsWithLocations())
		},
	}
	add.register(addCmd)

	var upd itemFlags
	updateCmd := &cobra.Command{
		Use:   "update ID",
		Short: "Replace an item; unset flags keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			current, ok := a.store.Item(id)
			if !ok {
				return fmt.Errorf("item %d: %w", id, domain.ErrNotFound)
			}
			draft := domain.ItemFields{
				Name:       current.Name,
				LocationID: current.LocationID,
				Number:     current.Number,
				Price:      current.Price,
			}.Draft()
			upd.apply(cmd, &draft)

			if _, err := a.store.UpdateItem(cmd.Context(), id, draft); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated item %d\n", id)
			return printItems(cmd.OutOrStdout(), a.store.ItemsWithLocations())
		},
	}
	upd.register(updateCmd)

	cmd.AddCommand(addCmd, updateCmd, &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.store.DeleteItem(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted item %d\n", id)
			return printItems(cmd.OutOrStdout(), a.store.ItemsWithLocations())
		},
	})
	return cmd
}

func newSearchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search [TERM]",
		Short: "Find items whose name contains TERM, ignoring case",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var term string
			if len(args) == 1 {
				term = args[0]
			}
			matches := a.store.Search(term)
			rows := make([]domain.ItemWithLocation, len(matches))
			for i, it := range matches {
				loc, _ := a.store.Location(it.LocationID)
				rows[i] = it.WithLocation(loc.Name)
			}
			return printItems(cmd.OutOrStdout(), rows)
		},
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
