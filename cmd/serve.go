// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/canonical/workspace-service/internal/authorization"
	"github.com/canonical/workspace-service/internal/cache"
	"github.com/canonical/workspace-service/internal/config"
	"github.com/canonical/workspace-service/internal/db"
	"github.com/canonical/workspace-service/internal/identity"
	"github.com/canonical/workspace-service/internal/kratos"
	"github.com/canonical/workspace-service/internal/logging"
	"github.com/canonical/workspace-service/internal/mail"
	"github.com/canonical/workspace-service/internal/monitoring"
	"github.com/canonical/workspace-service/internal/monitoring/prometheus"
	"github.com/canonical/workspace-service/internal/openfga"
	"github.com/canonical/workspace-service/internal/storage"
	"github.com/canonical/workspace-service/internal/tracing"
	"github.com/canonical/workspace-service/internal/types"
	"github.com/canonical/workspace-service/pkg/activity"
	"github.com/canonical/workspace-service/pkg/authentication"
	"github.com/canonical/workspace-service/pkg/billing"
	"github.com/canonical/workspace-service/pkg/export"
	"github.com/canonical/workspace-service/pkg/member"
	"github.com/canonical/workspace-service/pkg/task"
	"github.com/canonical/workspace-service/pkg/web"
	"github.com/canonical/workspace-service/pkg/webhooks"
	"github.com/canonical/workspace-service/pkg/workspace"
)

const serviceName = "workspace-service"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve starts the web server",
	Long:  `Launch the web application, list of environment variables is available in the readme`,
	Run: func(cmd *cobra.Command, args []string) {
		main()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve() error {
	specs := new(config.EnvSpec)
	if err := envconfig.Process("", specs); err != nil {
		panic(fmt.Errorf("issues with environment sourcing: %s", err))
	}

	logger := logging.NewLogger(specs.LogLevel)
	logger.Debugf("env vars: %v", specs)
	defer logger.Sync()

	monitor := prometheus.NewMonitor(serviceName, logger)
	tracer := tracing.NewTracer(tracing.NewConfig(specs.TracingEnabled, specs.OtelGRPCEndpoint, specs.OtelHTTPEndpoint, logger))

	price, err := types.ParsePrice(specs.ProPlanPrice, specs.ProPlanCurrency)
	if err != nil {
		return fmt.Errorf("invalid pro plan price: %w", err)
	}

	dbConfig := db.Config{
		DSN:             specs.DSN,
		MaxConns:        specs.DBMaxConns,
		MinConns:        specs.DBMinConns,
		MaxConnLifetime: specs.DBMaxConnLifetime,
		MaxConnIdleTime: specs.DBMaxConnIdleTime,
		TracingEnabled:  specs.TracingEnabled,
	}
	dbClient, err := db.NewDBClient(dbConfig, tracer, monitor, logger)
	if err != nil {
		return fmt.Errorf("failed to create database client: %v", err)
	}
	defer dbClient.Close()
	s := storage.NewStorage(dbClient, tracer, monitor, logger)

	authorizer := newAuthorizer(specs, tracer, monitor, logger)

	var viewCache cache.CacheInterface = cache.NewNoopCache()
	if specs.RedisAddr != "" {
		redisCache, err := cache.NewRedisCache(
			cache.Config{Addr: specs.RedisAddr, Password: specs.RedisPassword, DB: specs.RedisDB},
			tracer,
			monitor,
			logger,
		)
		if err != nil {
			return fmt.Errorf("failed to create redis cache: %v", err)
		}
		defer redisCache.Close()
		viewCache = redisCache
		logger.Info("Dashboard cache is enabled")
	}

	var mailer mail.MailerInterface = mail.NewNoopMailer(logger)
	if specs.SMTPHost != "" {
		mailer = mail.NewMailer(
			mail.Config{
				Host:     specs.SMTPHost,
				Port:     specs.SMTPPort,
				Username: specs.SMTPUsername,
				Password: specs.SMTPPassword,
				From:     specs.SMTPFrom,
			},
			tracer,
			monitor,
			logger,
		)
	}

	recorder := activity.NewRecorder(s, viewCache, tracer, monitor, logger)

	workspaceService := workspace.NewService(
		s,
		recorder,
		authorizer,
		viewCache,
		workspace.Config{CacheTTL: specs.DashboardCacheTTL, Price: price},
		tracer,
		monitor,
		logger,
	)

	billingConfig := billing.Config{
		Provider:            billing.Provider(specs.PaymentProvider),
		Price:               price,
		AppURL:              specs.AppURL,
		RazorpayKeyID:       specs.RazorpayKeyID,
		RazorpayKeySecret:   specs.RazorpayKeySecret,
		StripeSecretKey:     specs.StripeSecretKey,
		StripeWebhookSecret: specs.StripeWebhookSecret,
	}
	if err := billingConfig.Validate(); err != nil {
		return fmt.Errorf("invalid billing configuration: %w", err)
	}

	billingService := billing.NewService(
		s,
		recorder,
		billing.NewRazorpayClient(specs.RazorpayAPIURL, specs.RazorpayKeyID, specs.RazorpayKeySecret, tracer, logger),
		billing.NewStripeClient(specs.StripeSecretKey, tracer),
		billingConfig,
		tracer,
		monitor,
		logger,
	)

	services := web.Services{
		Workspaces: workspaceService,
		Members:    member.NewService(s, recorder, authorizer, mailer, specs.AppURL, tracer, monitor, logger),
		Tasks:      task.NewService(s, recorder, tracer, monitor, logger),
		Activity:   activity.NewService(s, tracer, monitor, logger),
		Exports:    export.NewService(s, tracer, monitor, logger),
		Billing:    billingService,
		Webhooks:   webhooks.NewService(s, workspaceService, billingService, tracer, monitor, logger),
	}

	identify, err := newIdentify(specs, tracer, monitor, logger)
	if err != nil {
		return err
	}

	// gRPC only serves the health protocol
	lis, err := net.Listen("tcp", fmt.Sprintf("0.0.0.0:%v", specs.GRPCPort))
	if err != nil {
		logger.Fatalf("failed to listen on grpc port: %v", err)
	}

	grpcServer := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
	)
	healthServer := health.NewServer()
	healthServer.SetServingStatus(serviceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	go func() {
		logger.Infof("Starting gRPC server on port %v", specs.GRPCPort)
		if err := grpcServer.Serve(lis); err != nil {
			logger.Fatalf("failed to serve gRPC: %v", err)
		}
	}()

	router := web.NewRouter(
		web.Config{CORSAllowedOrigins: specs.CORSAllowedOrigins, Identify: identify},
		services,
		dbClient,
		tracer,
		monitor,
		logger,
	)
	logger.Infof("Starting HTTP server on port %v", specs.Port)

	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%v", specs.Port),
		WriteTimeout: time.Second * 60,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      router,
	}

	var serverError error
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Security().SystemStartup()
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError = fmt.Errorf("server error: %w", err)
			c <- os.Interrupt
		}
	}()

	<-c

	// Create a deadline to wait for.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger.Security().SystemShutdown()
	healthServer.Shutdown()
	grpcServer.GracefulStop()
	if err := srv.Shutdown(ctx); err != nil {
		serverError = fmt.Errorf("server shutdown error: %w", err)
	}

	return serverError
}

func newAuthorizer(specs *config.EnvSpec, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *authorization.Authorizer {
	if !specs.AuthorizationEnabled {
		logger.Info("Using noop authorizer")
		return authorization.NewAuthorizer(
			openfga.NewNoopClient(tracer, monitor, logger),
			tracer,
			monitor,
			logger,
		)
	}

	ofga := openfga.NewClient(
		openfga.NewConfig(
			specs.OpenfgaApiScheme,
			specs.OpenfgaApiHost,
			specs.OpenfgaStoreId,
			specs.OpenfgaApiToken,
			specs.OpenfgaModelId,
			specs.Debug,
			tracer,
			monitor,
			logger,
		),
	)
	authorizer := authorization.NewAuthorizer(
		ofga,
		tracer,
		monitor,
		logger,
	)
	logger.Info("Authorization is enabled")
	if authorizer.ValidateModel(context.Background()) != nil {
		panic("Invalid authorization model provided")
	}

	return authorizer
}

// newIdentify picks bearer token authentication when enabled, otherwise the identity proxy headers are trusted.
func newIdentify(specs *config.EnvSpec, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) (func(http.Handler) http.Handler, error) {
	if specs.AuthenticationEnabled {
		verifier, err := authentication.NewJWTAuthenticator(
			context.Background(),
			specs.AuthenticationIssuer,
			specs.AuthenticationJWKSURL,
			specs.AuthenticationAllowedSubjects,
			specs.AuthenticationRequiredScope,
			tracer,
			monitor,
			logger,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create authenticator: %w", err)
		}
		return authentication.NewMiddleware(verifier, tracer, monitor, logger).Authenticate(), nil
	}

	var kratosClient identity.KratosInterface
	if specs.KratosAdminURL != "" {
		kratosClient = kratos.NewClient(specs.KratosAdminURL, tracer, monitor, logger)
	}

	return identity.NewMiddleware(kratosClient, tracer, monitor, logger).HTTPMiddleware, nil
}

func main() {
	if err := serve(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}
