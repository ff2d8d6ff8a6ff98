// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package openfga

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"

	fga "github.com/openfga/go-sdk"
	"github.com/openfga/go-sdk/client"
	"github.com/openfga/go-sdk/credentials"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/canonical/workspace-service/internal/logging"
	"github.com/canonical/workspace-service/internal/monitoring"
	"github.com/canonical/workspace-service/internal/tracing"
)

type Client struct {
	c *client.OpenFgaClient

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (c *Client) ReadModel(ctx context.Context) (*fga.AuthorizationModel, error) {
	ctx, span := c.tracer.Start(ctx, "openfga.Client.ReadModel")
	defer span.End()

	authModel, err := c.c.ReadAuthorizationModel(ctx).Execute()
	c.setAvailability(err)
	if err != nil {
		c.logger.Errorf("issues performing read operation: %s", err)
		return nil, err
	}

	return authModel.AuthorizationModel, nil
}

// CompareModel reports whether the model stored in openfga has the same types as model.
func (c *Client) CompareModel(ctx context.Context, model fga.AuthorizationModel) (bool, error) {
	ctx, span := c.tracer.Start(ctx, "openfga.Client.CompareModel")
	defer span.End()

	authModel, err := c.ReadModel(ctx)
	if err != nil {
		return false, err
	}
	if authModel == nil {
		return false, fmt.Errorf("no authorization model found")
	}

	if authModel.SchemaVersion != model.SchemaVersion {
		c.logger.Errorf("invalid authorization model schema version")
		return false, nil
	}

	stored, err := normalize(authModel.TypeDefinitions)
	if err != nil {
		return false, err
	}
	expected, err := normalize(model.TypeDefinitions)
	if err != nil {
		return false, err
	}

	if !reflect.DeepEqual(stored, expected) {
		c.logger.Errorf("invalid authorization model type definitions")
		return false, nil
	}

	return true, nil
}

func normalize(v interface{}) (interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var out interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *Client) ReadTuples(ctx context.Context, user, relation, object, continuationToken string) (*client.ClientReadResponse, error) {
	ctx, span := c.tracer.Start(ctx, "openfga.Client.ReadTuples")
	defer span.End()

	body := client.ClientReadRequest{}
	if user != "" {
		body.User = fga.PtrString(user)
	}
	if relation != "" {
		body.Relation = fga.PtrString(relation)
	}
	if object != "" {
		body.Object = fga.PtrString(object)
	}

	options := client.ClientReadOptions{}
	if continuationToken != "" {
		options.ContinuationToken = fga.PtrString(continuationToken)
	}

	res, err := c.c.Read(ctx).Body(body).Options(options).Execute()
	c.setAvailability(err)
	if err != nil {
		c.logger.Errorf("issues performing read operation: %s", err)
		return nil, err
	}

	return res, nil
}

func (c *Client) WriteTuple(ctx context.Context, user, relation, object string) error {
	ctx, span := c.tracer.Start(ctx, "openfga.Client.WriteTuple")
	defer span.End()

	body := client.ClientWriteRequest{
		Writes: []client.ClientTupleKey{
			{User: user, Relation: relation, Object: object},
		},
	}

	_, err := c.c.Write(ctx).Body(body).Execute()
	c.setAvailability(err)
	if err != nil {
		c.logger.Errorf("issues performing write operation: %s", err)
		return err
	}

	return nil
}

func (c *Client) DeleteTuple(ctx context.Context, user, relation, object string) error {
	ctx, span := c.tracer.Start(ctx, "openfga.Client.DeleteTuple")
	defer span.End()

	return c.DeleteTuples(ctx, []Tuple{*NewTuple(user, relation, object)})
}

func (c *Client) DeleteTuples(ctx context.Context, tuples []Tuple) error {
	ctx, span := c.tracer.Start(ctx, "openfga.Client.DeleteTuples")
	defer span.End()

	if len(tuples) == 0 {
		return nil
	}

	deletes := make([]client.ClientTupleKeyWithoutCondition, 0, len(tuples))
	for _, t := range tuples {
		deletes = append(deletes, client.ClientTupleKeyWithoutCondition{User: t.User, Relation: t.Relation, Object: t.Object})
	}

	_, err := c.c.Write(ctx).Body(client.ClientWriteRequest{Deletes: deletes}).Execute()
	c.setAvailability(err)
	if err != nil {
		c.logger.Errorf("issues performing delete operation: %s", err)
		return err
	}

	return nil
}

func (c *Client) CreateStore(ctx context.Context, name string) (string, error) {
	ctx, span := c.tracer.Start(ctx, "openfga.Client.CreateStore")
	defer span.End()

	store, err := c.c.CreateStore(ctx).Body(client.ClientCreateStoreRequest{Name: name}).Execute()
	if err != nil {
		return "", err
	}

	return store.Id, nil
}

func (c *Client) WriteModel(ctx context.Context, model *client.ClientWriteAuthorizationModelRequest) (string, error) {
	ctx, span := c.tracer.Start(ctx, "openfga.Client.WriteModel")
	defer span.End()

	res, err := c.c.WriteAuthorizationModel(ctx).Body(*model).Execute()
	if err != nil {
		return "", err
	}

	return res.AuthorizationModelId, nil
}

func (c *Client) SetStoreID(ctx context.Context, storeID string) {
	if err := c.c.SetStoreId(storeID); err != nil {
		c.logger.Errorf("failed to set store id: %s", err)
	}
}

func (c *Client) setAvailability(err error) {
	available := 1.0
	if err != nil {
		available = 0
	}

	if mErr := c.monitor.SetDependencyAvailability(map[string]string{"component": "openfga"}, available); mErr != nil {
		c.logger.Debugf("failed to set dependency metric: %v", mErr)
	}
}

func NewClient(cfg *Config) *Client {
	c := new(Client)

	c.tracer = cfg.Tracer
	c.monitor = cfg.Monitor
	c.logger = cfg.Logger

	fgaConfig := &client.ClientConfiguration{
		ApiUrl:               fmt.Sprintf("%s://%s", cfg.ApiScheme, cfg.ApiHost),
		StoreId:              cfg.StoreID,
		AuthorizationModelId: cfg.AuthModelID,
		Credentials: &credentials.Credentials{
			Method: credentials.CredentialsMethodApiToken,
			Config: &credentials.Config{
				ApiToken: cfg.ApiToken,
			},
		},
		Debug:      cfg.Debug,
		HTTPClient: &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
	}

	fgaClient, err := client.NewSdkClient(fgaConfig)
	if err != nil {
		c.logger.Fatalf("issues setting up OpenFGA client %s", err)
	}

	c.c = fgaClient

	return c
}
