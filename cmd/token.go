// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/canonical/workspace-service/pkg/authentication"
)

// tokenRequest describes a client credentials grant against the issuer trusted by serve.
type tokenRequest struct {
	ClientID     string
	ClientSecret string
	TokenURL     string
	IssuerURL    string
	Audience     string
	Scopes       []string
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Get an access token using Client Credentials flow",
	Long: `Requests an access token the workspace API accepts when AUTHENTICATION_ENABLED is set.

The issuer and scope default to AUTHENTICATION_ISSUER and AUTHENTICATION_REQUIRED_SCOPE,
so the token carries the scope serve checks. Pass the result to other commands with --token.`,
	Run: func(cmd *cobra.Command, args []string) {
		req := tokenRequest{}
		req.ClientID, _ = cmd.Flags().GetString("client-id")
		req.ClientSecret, _ = cmd.Flags().GetString("client-secret")
		req.TokenURL, _ = cmd.Flags().GetString("token-url")
		req.IssuerURL, _ = cmd.Flags().GetString("issuer-url")
		req.Audience, _ = cmd.Flags().GetString("audience")
		req.Scopes, _ = cmd.Flags().GetStringSlice("scopes")
		format, _ := cmd.Flags().GetString("format")

		token, err := fetchToken(cmd.Context(), req)
		if err != nil {
			cmd.PrintErrln(err)
			os.Exit(1)
		}

		if err := printToken(cmd.OutOrStdout(), token, format); err != nil {
			cmd.PrintErrln(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)

	tokenCmd.Flags().String("client-id", os.Getenv("CLIENT_ID"), "Client ID, defaults to $CLIENT_ID")
	tokenCmd.Flags().String("client-secret", os.Getenv("CLIENT_SECRET"), "Client Secret, defaults to $CLIENT_SECRET")
	tokenCmd.Flags().String("token-url", "", "Token URL, discovered from the issuer when empty")
	tokenCmd.Flags().String("issuer-url", os.Getenv("AUTHENTICATION_ISSUER"), "Issuer URL for OIDC discovery")
	tokenCmd.Flags().String("audience", "", "Audience requested for the token")
	tokenCmd.Flags().StringSlice("scopes", defaultScopes(os.Getenv("AUTHENTICATION_REQUIRED_SCOPE")), "Scopes (comma-separated)")
	tokenCmd.Flags().String("format", "text", "Output format (text or json)")
}

func defaultScopes(required string) []string {
	if required = strings.TrimSpace(required); required == "" {
		return []string{}
	}
	return []string{required}
}

func fetchToken(ctx context.Context, req tokenRequest) (*oauth2.Token, error) {
	if req.ClientID == "" || req.ClientSecret == "" {
		return nil, fmt.Errorf("client id and secret are required")
	}

	tokenURL := req.TokenURL
	if tokenURL == "" {
		if req.IssuerURL == "" {
			return nil, fmt.Errorf("either --token-url or --issuer-url must be provided")
		}

		url, err := authentication.TokenEndpoint(ctx, req.IssuerURL)
		if err != nil {
			return nil, err
		}
		tokenURL = url
	}

	config := &clientcredentials.Config{
		ClientID:     req.ClientID,
		ClientSecret: req.ClientSecret,
		TokenURL:     tokenURL,
		Scopes:       req.Scopes,
	}
	if req.Audience != "" {
		config.EndpointParams = map[string][]string{"audience": {req.Audience}}
	}

	token, err := config.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get token: %w", err)
	}

	return token, nil
}

func printToken(out io.Writer, token *oauth2.Token, format string) error {
	if format != "json" {
		_, err := fmt.Fprintln(out, token.AccessToken)
		return err
	}

	doc := map[string]interface{}{
		"access_token": token.AccessToken,
		"token_type":   token.TokenType,
	}
	if !token.Expiry.IsZero() {
		doc["expiry"] = token.Expiry.UTC().Format(time.RFC3339)
	}

	return json.NewEncoder(out).Encode(doc)
}
