package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yeremiapane/table-reservation/config"
	"github.com/yeremiapane/table-reservation/database"
	"github.com/yeremiapane/table-reservation/middlewares"
	"github.com/yeremiapane/table-reservation/models"
	"github.com/yeremiapane/table-reservation/utils"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage operators",
	}
	cmd.AddCommand(newUserAddCmd())
	return cmd
}

func newUserAddCmd() *cobra.Command {
	var username, password, role string

	c := &cobra.Command{
		Use:   "add",
		Short: "Add an operator who can log in to the admin API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if role != middlewares.RoleOperator && role != middlewares.RoleAdmin {
				return fmt.Errorf("invalid role %q (want %s or %s)", role, middlewares.RoleOperator, middlewares.RoleAdmin)
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			db, err := config.InitDB(cfg)
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}
			if err := database.Migrate(db); err != nil {
				return err
			}

			hash, err := utils.HashPassword(password)
			if err != nil {
				return err
			}
			user := models.User{Username: username, Password: hash, Role: role}
			if err := database.NewStore(db).CreateUser(cmd.Context(), &user); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created user %q (role=%s)\n", username, role)
			return nil
		},
	}

	c.Flags().StringVar(&username, "username", "", "username")
	c.Flags().StringVar(&password, "password", "", "password")
	c.Flags().StringVar(&role, "role", middlewares.RoleOperator, "operator or admin")
	_ = c.MarkFlagRequired("username")
	_ = c.MarkFlagRequired("password")
	return c
}
