// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package config

import (
	"time"
)

// EnvSpec is the basic environment configuration setup needed for the app to start
type EnvSpec struct {
	OtelGRPCEndpoint string `envconfig:"otel_grpc_endpoint"`
	OtelHTTPEndpoint string `envconfig:"otel_http_endpoint"`
	TracingEnabled   bool   `envconfig:"tracing_enabled" default:"true"`

	LogLevel string `envconfig:"log_level" default:"error"`
	Debug    bool   `envconfig:"debug" default:"false"`

	Port     int `envconfig:"port" default:"8080"`
	GRPCPort int `envconfig:"grpc_port" default:"50051"`

	AppURL             string   `envconfig:"app_url" default:"http://localhost:3000"`
	CORSAllowedOrigins []string `envconfig:"cors_allowed_origins" default:"*"`

	DSN string `envconfig:"DSN" required:"true"`

	DBMaxConns        int32         `envconfig:"db_max_conns" default:"25"`
	DBMinConns        int32         `envconfig:"db_min_conns" default:"2"`
	DBMaxConnLifetime time.Duration `envconfig:"db_max_conn_lifetime" default:"1h"`
	DBMaxConnIdleTime time.Duration `envconfig:"db_max_conn_idle_time" default:"30m"`

	KratosAdminURL string `envconfig:"kratos_admin_url"`

	AuthenticationEnabled         bool     `envconfig:"authentication_enabled" default:"false"`
	AuthenticationIssuer          string   `envconfig:"authentication_issuer"`
	AuthenticationJWKSURL         string   `envconfig:"authentication_jwks_url"`
	AuthenticationAllowedSubjects []string `envconfig:"authentication_allowed_subjects"`
	AuthenticationRequiredScope   string   `envconfig:"authentication_required_scope"`

	AuthorizationEnabled bool   `envconfig:"authorization_enabled" default:"false"`
	OpenfgaApiScheme     string `envconfig:"openfga_api_scheme" default:""`
	OpenfgaApiHost       string `envconfig:"openfga_api_host"`
	OpenfgaApiToken      string `envconfig:"openfga_api_token"`
	OpenfgaStoreId       string `envconfig:"openfga_store_id"`
	OpenfgaModelId       string `envconfig:"openfga_authorization_model_id" default:""`

	RedisAddr         string        `envconfig:"redis_addr"`
	RedisPassword     string        `envconfig:"redis_password"`
	RedisDB           int           `envconfig:"redis_db" default:"0"`
	DashboardCacheTTL time.Duration `envconfig:"dashboard_cache_ttl" default:"5m"`

	SMTPHost     string `envconfig:"smtp_host"`
	SMTPPort     int    `envconfig:"smtp_port" default:"587"`
	SMTPUsername string `envconfig:"smtp_username"`
	SMTPPassword string `envconfig:"smtp_password"`
	SMTPFrom     string `envconfig:"smtp_from" default:"no-reply@example.com"`

	PaymentProvider     string `envconfig:"payment_provider" default:"razorpay"`
	ProPlanPrice        string `envconfig:"pro_plan_price" default:"499.00"`
	ProPlanCurrency     string `envconfig:"pro_plan_currency" default:"INR"`
	RazorpayKeyID       string `envconfig:"razorpay_key_id"`
	RazorpayKeySecret   string `envconfig:"razorpay_key_secret"`
	RazorpayAPIURL      string `envconfig:"razorpay_api_url" default:"https://api.razorpay.com"`
	StripeSecretKey     string `envconfig:"stripe_secret_key"`
	StripeWebhookSecret string `envconfig:"stripe_webhook_secret"`
}
