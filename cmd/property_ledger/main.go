package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// @title Property Ledger API
// @version 1.0
// @description Payments, schedules and invoice reconciliation for rental properties.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	rootCmd := &cobra.Command{
		Use:          "property_ledger",
		Short:        "Property ledger backend",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		migrateCmd(),
		tokenCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
