package main

import (
	"fmt"

	"github.com/Veraticus/budgetbuddy/internal/cli"
	"github.com/Veraticus/budgetbuddy/internal/model"
	"github.com/Veraticus/budgetbuddy/internal/storage"
	"github.com/spf13/cobra"
)

func profilesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "Manage budget profiles",
		Long:  `List, create, rename, and delete budget profiles.`,
	}

	cmd.AddCommand(listProfilesCmd(a))
	cmd.AddCommand(createProfileCmd(a))
	cmd.AddCommand(renameProfileCmd(a))
	cmd.AddCommand(deleteProfileCmd(a))

	return cmd
}

func listProfilesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			profiles, err := a.loadProfiles(cmd.Context(), a.repository())
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), cli.RenderProfileList(profiles))
			return nil
		},
	}
}

func createProfileCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new empty profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			err := a.updateProfiles(cmd.Context(), func(repo *storage.Repository, profiles model.Collection) error {
				_, err := repo.CreateProfile(profiles, name)
				return err
			})
			if err != nil {
				return fmt.Errorf("failed to create profile: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Created profile %q", name)))
			return nil
		},
	}
}

func renameProfileCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <old-name> <new-name>",
		Short: "Rename a profile",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			oldName, newName := args[0], args[1]
			err := a.updateProfiles(cmd.Context(), func(repo *storage.Repository, profiles model.Collection) error {
				return repo.RenameProfile(profiles, oldName, newName)
			})
			if err != nil {
				return fmt.Errorf("failed to rename profile: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Renamed profile %q to %q", oldName, newName)))
			return nil
		},
	}
}

func deleteProfileCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a profile and its transactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			err := a.updateProfiles(cmd.Context(), func(repo *storage.Repository, profiles model.Collection) error {
				return repo.DeleteProfile(profiles, name)
			})
			if err != nil {
				return fmt.Errorf("failed to delete profile: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Deleted profile %q", name)))
			return nil
		},
	}
}
