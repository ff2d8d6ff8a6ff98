// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestExportURL(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		kind     string
		expected string
		err      bool
	}{
		{name: "activity", endpoint: "http://localhost:8080/", kind: "activity", expected: "http://localhost:8080/api/v0/workspaces/w1/exports/activity.csv"},
		{name: "no scheme", endpoint: "localhost:8080", kind: "tasks", expected: "http://localhost:8080/api/v0/workspaces/w1/exports/tasks.csv"},
		{name: "unknown kind", endpoint: "localhost:8080", kind: "members", err: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := exportURL(test.endpoint, "w1", test.kind)
			if (err != nil) != test.err {
				t.Fatalf("unexpected error %v", err)
			}
			if got != test.expected {
				t.Fatalf("expected %s, got %s", test.expected, got)
			}
		})
	}
}

func TestAttachmentName(t *testing.T) {
	if got := attachmentName(`attachment; filename="acme-tasks-2026-03-10.csv"`, "tasks"); got != "acme-tasks-2026-03-10.csv" {
		t.Fatalf("unexpected filename %s", got)
	}
	if got := attachmentName("", "activity"); got != "activity.csv" {
		t.Fatalf("unexpected fallback %s", got)
	}
}

func TestRunExport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Kratos-Authenticated-Identity-Id") != "u1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte("Title,Status"))
	}))
	defer srv.Close()

	httpEndpoint, userID = srv.URL, "u1"
	defer func() { httpEndpoint, userID = "http://localhost:8080", "" }()

	var out bytes.Buffer
	if err := runExport(context.Background(), "w1", "tasks", "", &out); err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	if out.String() != "Title,Status" {
		t.Fatalf("unexpected body %q", out.String())
	}

	userID = ""
	if err := runExport(context.Background(), "w1", "tasks", "", &out); err == nil {
		t.Fatal("expected an api error without identity")
	}
}
