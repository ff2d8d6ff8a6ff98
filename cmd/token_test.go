// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/oauth2"
)

func TestDefaultScopes(t *testing.T) {
	if got := defaultScopes(""); len(got) != 0 {
		t.Fatalf("expected no scopes, got %v", got)
	}
	if got := defaultScopes(" workspaces:api "); len(got) != 1 || got[0] != "workspaces:api" {
		t.Fatalf("unexpected scopes %v", got)
	}
}

func TestFetchToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("failed to parse form: %v", err)
		}

		if r.Form.Get("grant_type") != "client_credentials" {
			t.Errorf("unexpected grant %q", r.Form.Get("grant_type"))
		}
		if r.Form.Get("scope") != "workspaces:api" || r.Form.Get("audience") != "workspace-service" {
			t.Errorf("unexpected form %v", r.Form)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"abc","token_type":"bearer","expires_in":3600}`))
	}))
	defer srv.Close()

	token, err := fetchToken(context.Background(), tokenRequest{
		ClientID:     "cli",
		ClientSecret: "secret",
		TokenURL:     srv.URL,
		Audience:     "workspace-service",
		Scopes:       []string{"workspaces:api"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if token.AccessToken != "abc" {
		t.Fatalf("unexpected token %q", token.AccessToken)
	}
}

func TestFetchTokenValidation(t *testing.T) {
	tests := []struct {
		name string
		req  tokenRequest
		msg  string
	}{
		{name: "no credentials", req: tokenRequest{TokenURL: "http://localhost"}, msg: "client id and secret"},
		{name: "no endpoint", req: tokenRequest{ClientID: "cli", ClientSecret: "secret"}, msg: "--token-url or --issuer-url"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := fetchToken(context.Background(), test.req)
			if err == nil || !strings.Contains(err.Error(), test.msg) {
				t.Fatalf("expected %q error, got %v", test.msg, err)
			}
		})
	}
}

func TestPrintToken(t *testing.T) {
	token := &oauth2.Token{AccessToken: "abc", TokenType: "bearer"}

	var out bytes.Buffer
	if err := printToken(&out, token, "text"); err != nil {
		t.Fatal(err)
	}
	if out.String() != "abc\n" {
		t.Fatalf("unexpected output %q", out.String())
	}

	out.Reset()
	if err := printToken(&out, token, "json"); err != nil {
		t.Fatal(err)
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(out.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}
	if doc["access_token"] != "abc" || doc["expiry"] != nil {
		t.Fatalf("unexpected document %v", doc)
	}
}
