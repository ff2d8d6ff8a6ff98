// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"fmt"
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var otelHTTPClient = http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}

// NewProvider creates an OIDC provider using the issuer's well-known configuration.
func NewProvider(ctx context.Context, issuer string) (*oidc.Provider, error) {
	provider, err := oidc.NewProvider(oidc.ClientContext(ctx, &otelHTTPClient), issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to create OIDC provider: %v", err)
	}

	return provider, nil
}

// NewKeySetVerifier verifies tokens of issuer against the keys served at jwksURL, skipping discovery.
// Access tokens carry no client id, so the audience check is left to the scope and subject claims.
func NewKeySetVerifier(ctx context.Context, issuer, jwksURL string) *oidc.IDTokenVerifier {
	keySet := oidc.NewRemoteKeySet(oidc.ClientContext(ctx, &otelHTTPClient), jwksURL)

	return oidc.NewVerifier(issuer, keySet, &oidc.Config{SkipClientIDCheck: true})
}

// TokenEndpoint discovers the OAuth2 token endpoint of issuer.
func TokenEndpoint(ctx context.Context, issuer string) (string, error) {
	provider, err := NewProvider(ctx, issuer)
	if err != nil {
		return "", err
	}

	url := provider.Endpoint().TokenURL
	if url == "" {
		return "", fmt.Errorf("issuer %s does not advertise a token endpoint", issuer)
	}

	return url, nil
}
