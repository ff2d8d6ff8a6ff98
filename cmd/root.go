// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	userID       string
	httpEndpoint string
	bearerToken  string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "app",
	Short: "Workspace Service",
	Long:  `Workspace Service CLI for running the server and managing workspaces.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&httpEndpoint, "http-endpoint", "http://localhost:8080", "HTTP server endpoint")
	rootCmd.PersistentFlags().StringVar(&userID, "user-id", "", "User ID for impersonation through the identity header")
	rootCmd.PersistentFlags().StringVar(&bearerToken, "token", "", "Bearer token, see the token command")
}
