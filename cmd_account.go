package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"pantry-backend/internal/platform/auth"
	"pantry-backend/internal/platform/db"
)

var (
	accountID       string
	accountPassword string
	accountRole     string
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage staff accounts",
}

// 最初の admin は API からは作れないのでここで作る
var accountAddCmd = &cobra.Command{
	Use:     "add",
	Short:   "Create a staff or admin account",
	Example: `  pantry account add --id alice --password 'correct horse' --role admin`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := bootstrap()
		if err != nil {
			return err
		}
		conn, err := db.Connect(cfg.DB)
		if err != nil {
			return err
		}
		defer conn.Close()

		svc := auth.NewService(conn, []byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL)
		if err := svc.Register(cmd.Context(), accountID, accountPassword, accountRole); err != nil {
			if errors.Is(err, auth.ErrAlreadyExists) {
				return fmt.Errorf("account %q already exists", accountID)
			}
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created account %q\n", accountID)
		return nil
	},
}

func init() {
	accountAddCmd.Flags().StringVar(&accountID, "id", "", "login id")
	accountAddCmd.Flags().StringVar(&accountPassword, "password", "", "password (8+ characters)")
	accountAddCmd.Flags().StringVar(&accountRole, "role", auth.RoleStaff, "staff or admin")
	_ = accountAddCmd.MarkFlagRequired("id")
	_ = accountAddCmd.MarkFlagRequired("password")
	accountCmd.AddCommand(accountAddCmd)
}
