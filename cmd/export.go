// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/canonical/workspace-service/internal/identity"
)

var exportCmd = &cobra.Command{
	Use:   "export <workspace-id> <activity|tasks>",
	Short: "Download a workspace CSV export",
	Long:  `Download the activity log or the task list of a workspace as CSV`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")

		return runExport(cmd.Context(), args[0], args[1], output, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("output", "o", "", "Write to this file, \".\" uses the server provided filename, defaults to stdout")
}

func exportURL(endpoint, workspaceID, kind string) (string, error) {
	if kind != "activity" && kind != "tasks" {
		return "", fmt.Errorf("unknown export %q, expected activity or tasks", kind)
	}

	if !strings.HasPrefix(endpoint, "http") {
		endpoint = "http://" + endpoint
	}

	return fmt.Sprintf("%s/api/v0/workspaces/%s/exports/%s.csv", strings.TrimSuffix(endpoint, "/"), workspaceID, kind), nil
}

func runExport(ctx context.Context, workspaceID, kind, output string, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	url, err := exportURL(httpEndpoint, workspaceID, kind)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	if userID != "" {
		req.Header.Set(identity.HeaderName, userID)
	}
	if bearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+bearerToken)
	}

	client := &http.Client{Timeout: 60 * time.Second}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("api error (status %d): %s", resp.StatusCode, string(body))
	}

	var w io.Writer = stdout

	if output != "" {
		if output == "." {
			output = attachmentName(resp.Header.Get("Content-Disposition"), kind)
		}

		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", output, err)
		}
		defer f.Close()

		w = f
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	return nil
}

func attachmentName(disposition, kind string) string {
	_, params, err := mime.ParseMediaType(disposition)
	if err != nil || params["filename"] == "" {
		return kind + ".csv"
	}
	return params["filename"]
}
