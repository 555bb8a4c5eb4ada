package main

import (
	"fmt"
	"time"

	"github.com/SscSPs/property_ledger/internal/platform/config"
	"github.com/SscSPs/property_ledger/internal/utils"
	"github.com/spf13/cobra"
)

// tokenCmd issues a bearer token for a user id. Login is handled outside
// this service, so it only exists for local development and scripts.
func tokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a development bearer token",
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, _ := cmd.Flags().GetString("user")
			ttl, _ := cmd.Flags().GetDuration("ttl")

			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if cfg.IsProduction {
				return fmt.Errorf("refusing to issue tokens in production")
			}

			token, err := utils.GenerateJWT(userID, cfg.JWTSecret, ttl, cfg.JWTIssuer)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().String("user", "", "user id to put in the token subject")
	cmd.Flags().Duration("ttl", 24*time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
