package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vbonduro/labinv/internal/domain"
)

func newLocationsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "locations",
		Aliases: []string{"locs"},
		Short:   "List and edit storage locations",
	}

	list := func(cmd *cobra.Command) error {
		return printLocations(cmd.OutOrStdout(), a.store.Locations(), a.store.LocationItemCount)
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List locations with their item counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return list(cmd)
		},
	})

	var addName string
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loc, err := a.store.CreateLocation(cmd.Context(), domain.LocationDraft{Name: addName})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created location %d\n", loc.ID)
			return list(cmd)
		},
	}
	addCmd.Flags().StringVar(&addName, "name", "", "location name")

	var updName string
	updateCmd := &cobra.Command{
		Use:   "update ID",
		Short: "Rename a location",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if _, err := a.store.UpdateLocation(cmd.Context(), id, domain.LocationDraft{Name: updName}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated location %d\n", id)
			return list(cmd)
		},
	}
	updateCmd.Flags().StringVar(&updName, "name", "", "new location name")

	cmd.AddCommand(addCmd, updateCmd, &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a location that no item uses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.store.DeleteLocation(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted location %d\n", id)
			return list(cmd)
		},
	})
	return cmd
}
