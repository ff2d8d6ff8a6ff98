// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/openfga/go-sdk/client"
	"github.com/spf13/cobra"
	corev1 "k8s.io/api/core/v1"
	k8serrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"

	"github.com/canonical/workspace-service/internal/authorization"
	"github.com/canonical/workspace-service/internal/logging"
	"github.com/canonical/workspace-service/internal/monitoring"
	"github.com/canonical/workspace-service/internal/openfga"
	"github.com/canonical/workspace-service/internal/tracing"
)

const (
	StoreName    = "workspace-service"
	ModelVersion = "v0"
)

// fgaModel identifies the store and model written by create-fga-model.
type fgaModel struct {
	StoreID string `json:"store_id"`
	ModelID string `json:"model_id"`
}

// Env returns the variables serve reads to reach the model.
func (m fgaModel) Env() map[string]string {
	return map[string]string{
		"OPENFGA_STORE_ID":               m.StoreID,
		"OPENFGA_AUTHORIZATION_MODEL_ID": m.ModelID,
	}
}

var createFgaModelCmd = &cobra.Command{
	Use:   "create-fga-model",
	Short: "Creates an openfga model",
	Long: `Writes the workspace role model (owner, admin, member) to OpenFGA.

A store is created when --fga-store-id is empty. The resulting ids can be
published to a Kubernetes ConfigMap consumed by the serve command.`,
	Run: func(cmd *cobra.Command, args []string) {
		apiURL, _ := cmd.Flags().GetString("fga-api-url")
		apiToken, _ := cmd.Flags().GetString("fga-api-token")
		storeID, _ := cmd.Flags().GetString("fga-store-id")
		format, _ := cmd.Flags().GetString("format")
		verbose, _ := cmd.Flags().GetBool("verbose")
		configMapResource, _ := cmd.Flags().GetString("store-k8s-configmap-resource")
		kubeconfigPath, _ := cmd.Flags().GetString("kubeconfig")

		model, err := createModel(cmd.Context(), apiURL, apiToken, storeID, verbose)
		if err != nil {
			cmd.PrintErrln(err)
			os.Exit(1)
		}

		if configMapResource != "" {
			if err := publishModel(cmd.Context(), kubeconfigPath, configMapResource, model); err != nil {
				cmd.PrintErrln(fmt.Errorf("failed to update configmap: %w", err))
				os.Exit(1)
			}
			cmd.Printf("ConfigMap %s updated successfully\n", configMapResource)
		}

		if format == "json" {
			if err := json.NewEncoder(cmd.OutOrStdout()).Encode(model); err != nil {
				cmd.PrintErrln(fmt.Errorf("failed to encode output: %v", err))
				os.Exit(1)
			}
			return
		}

		cmd.Printf("Created model: %s\n", model.ModelID)
		if storeID == "" {
			cmd.Printf("Created store: %s\n", model.StoreID)
		}
	},
}

func init() {
	rootCmd.AddCommand(createFgaModelCmd)

	createFgaModelCmd.Flags().String("fga-api-url", "", "The openfga API URL")
	createFgaModelCmd.Flags().String("fga-api-token", "", "The openfga API token")
	createFgaModelCmd.Flags().String("fga-store-id", "", "The openfga store to create the model in, if empty one will be created")
	createFgaModelCmd.Flags().String("format", "text", "Output format (text or json)")
	createFgaModelCmd.Flags().BoolP("verbose", "v", false, "Enable verbose logging")
	createFgaModelCmd.Flags().String("store-k8s-configmap-resource", "", "The configmap resource to store the FGA Store ID and Model ID, format: namespace/name")
	createFgaModelCmd.Flags().String("kubeconfig", "", "Path to the kubeconfig file (optional, defaults to in-cluster config)")
	_ = createFgaModelCmd.MarkFlagRequired("fga-api-url")
	_ = createFgaModelCmd.MarkFlagRequired("fga-api-token")
}

func createModel(ctx context.Context, apiURL, apiToken, storeID string, verbose bool) (*fgaModel, error) {
	logger := logging.NewNoopLogger()
	tracer := tracing.NewNoopTracer()
	monitor := monitoring.NewNoopMonitor("", logger)

	scheme, host, err := parseURL(apiURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse url: %w", err)
	}

	// built by hand, NewConfig validates a model id we do not have yet
	fgaClient := openfga.NewClient(&openfga.Config{
		ApiScheme: scheme,
		ApiHost:   host,
		StoreID:   storeID,
		ApiToken:  apiToken,
		Debug:     verbose,
		Tracer:    tracer,
		Monitor:   monitor,
		Logger:    logger,
	})

	if storeID == "" {
		storeID, err = fgaClient.CreateStore(ctx, StoreName)
		if err != nil {
			return nil, fmt.Errorf("failed to create store: %w", err)
		}
		fgaClient.SetStoreID(ctx, storeID)
	}

	authzModel := authorization.NewAuthorizationModelProvider(ModelVersion).GetModel()

	modelID, err := fgaClient.WriteModel(
		ctx,
		&client.ClientWriteAuthorizationModelRequest{
			TypeDefinitions: authzModel.TypeDefinitions,
			SchemaVersion:   authzModel.SchemaVersion,
			Conditions:      authzModel.Conditions,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to write model: %w", err)
	}

	return &fgaModel{StoreID: storeID, ModelID: modelID}, nil
}

func parseURL(s string) (string, string, error) {
	u, err := url.Parse(s)
	if err != nil {
		return "", "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", "", fmt.Errorf("expected scheme://host, got %q", s)
	}
	return u.Scheme, u.Host, nil
}

func parseConfigMapResource(resource string) (string, string, error) {
	namespace, name, ok := strings.Cut(resource, "/")
	if !ok || namespace == "" || name == "" || strings.Contains(name, "/") {
		return "", "", fmt.Errorf("invalid configmap resource format: %s, expected namespace/name", resource)
	}
	return namespace, name, nil
}

func kubeConfig(kubeconfigPath string) (*rest.Config, error) {
	if kubeconfigPath != "" {
		return clientcmd.BuildConfigFromFlags("", kubeconfigPath)
	}

	if config, err := rest.InClusterConfig(); err == nil {
		return config, nil
	}

	// running outside a cluster, use the default loading rules
	return clientcmd.NewNonInteractiveDeferredLoadingClientConfig(
		clientcmd.NewDefaultClientConfigLoadingRules(),
		&clientcmd.ConfigOverrides{},
	).ClientConfig()
}

func publishModel(ctx context.Context, kubeconfigPath, configMapResource string, model *fgaModel) error {
	namespace, name, err := parseConfigMapResource(configMapResource)
	if err != nil {
		return err
	}

	config, err := kubeConfig(kubeconfigPath)
	if err != nil {
		return fmt.Errorf("failed to load kubeconfig: %w", err)
	}

	clientset, err := kubernetes.NewForConfig(config)
	if err != nil {
		return fmt.Errorf("failed to create kubernetes client: %w", err)
	}

	return upsertConfigMap(ctx, clientset, namespace, name, model.Env())
}

func upsertConfigMap(ctx context.Context, clientset kubernetes.Interface, namespace, name string, data map[string]string) error {
	configMaps := clientset.CoreV1().ConfigMaps(namespace)

	cm, err := configMaps.Get(ctx, name, metav1.GetOptions{})
	if k8serrors.IsNotFound(err) {
		cm = &corev1.ConfigMap{
			ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: namespace},
			Data:       data,
		}
		if _, err := configMaps.Create(ctx, cm, metav1.CreateOptions{}); err != nil {
			return fmt.Errorf("failed to create configmap %s/%s: %w", namespace, name, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get configmap %s/%s: %w", namespace, name, err)
	}

	if cm.Data == nil {
		cm.Data = make(map[string]string, len(data))
	}
	for k, v := range data {
		cm.Data[k] = v
	}

	if _, err := configMaps.Update(ctx, cm, metav1.UpdateOptions{}); err != nil {
		return fmt.Errorf("failed to update configmap %s/%s: %w", namespace, name, err)
	}

	return nil
}
