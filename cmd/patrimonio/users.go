package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"patrimonio/internal/auth"
	"patrimonio/internal/cli"
	"patrimonio/internal/model"
)

func usersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage dashboard users",
		Long: `Manage the credential store backing the dashboard login: list users,
register or update them, and reset passwords. Passwords are bcrypt-hashed
before they reach the database.`,
	}

	cmd.AddCommand(usersListCmd())
	cmd.AddCommand(usersAddCmd())
	cmd.AddCommand(usersPasswdCmd())

	return cmd
}

func usersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all users",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			ctx := cmd.Context()
			if err := store.Migrate(ctx); err != nil {
				return err
			}

			users, err := store.FetchAllUsers(ctx)
			if err != nil {
				return err
			}

			if len(users) == 0 {
				slog.Info(cli.FormatWarning("No users registered"))
				return nil
			}

			out := cmd.OutOrStdout()
			for _, user := range users {
				lastLogin := "never"
				if user.LastLoginAt != nil {
					lastLogin = user.LastLoginAt.Format("2006-01-02 15:04")
				}
				fmt.Fprintf(out, "%-20s %-30s %-25s roles=%s last_login=%s\n",
					user.Username, user.Email, user.FullName(), user.RolesString(), lastLogin)
			}
			return nil
		},
	}
}

func usersAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <username>",
		Short: "Register a user or update an existing one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			firstName, _ := cmd.Flags().GetString("first-name")
			lastName, _ := cmd.Flags().GetString("last-name")
			password, _ := cmd.Flags().GetString("password")
			roles, _ := cmd.Flags().GetString("roles")

			store, err := openStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			ctx := cmd.Context()
			if err := store.Migrate(ctx); err != nil {
				return err
			}

			user, err := auth.New(store).Register(ctx, args[0], email, firstName, lastName, password)
			if err != nil {
				return err
			}

			if roles != "" && roles != auth.DefaultRole {
				user.Roles = model.ParseRoles(roles)
				if err := store.UpsertUser(ctx, user); err != nil {
					return err
				}
			}

			slog.Info(cli.FormatSuccess(fmt.Sprintf("User %s saved (roles: %s)",
				user.Username, strings.Join(user.Roles, ", "))))
			return nil
		},
	}

	cmd.Flags().String("email", "", "email address (unique)")
	cmd.Flags().String("first-name", "", "first name")
	cmd.Flags().String("last-name", "", "last name")
	cmd.Flags().String("password", "", "password (hashed before storage)")
	cmd.Flags().String("roles", auth.DefaultRole, "comma-separated roles")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func usersPasswdCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "passwd <username>",
		Short: "Reset a user's password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, _ := cmd.Flags().GetString("password")

			store, err := openStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			ctx := cmd.Context()
			if err := store.Migrate(ctx); err != nil {
				return err
			}

			hash, err := auth.HashPassword(password)
			if err != nil {
				return err
			}

			if err := store.UpdatePasswordHash(ctx, args[0], hash); err != nil {
				return err
			}

			slog.Info(cli.FormatSuccess("Password updated for " + args[0]))
			return nil
		},
	}

	cmd.Flags().String("password", "", "new password")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
