// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package openfga

import (
	"context"

	fga "github.com/openfga/go-sdk"
	"github.com/openfga/go-sdk/client"

	"github.com/canonical/workspace-service/internal/logging"
	"github.com/canonical/workspace-service/internal/monitoring"
	"github.com/canonical/workspace-service/internal/tracing"
)

// NoopClient accepts every write and reports an empty store.
type NoopClient struct {
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (c *NoopClient) ReadModel(ctx context.Context) (*fga.AuthorizationModel, error) {
	return nil, nil
}

func (c *NoopClient) CompareModel(ctx context.Context, model fga.AuthorizationModel) (bool, error) {
	return true, nil
}

func (c *NoopClient) ReadTuples(ctx context.Context, user, relation, object, continuationToken string) (*client.ClientReadResponse, error) {
	return new(client.ClientReadResponse), nil
}

func (c *NoopClient) WriteTuple(ctx context.Context, user, relation, object string) error {
	return nil
}

func (c *NoopClient) DeleteTuple(ctx context.Context, user, relation, object string) error {
	return nil
}

func (c *NoopClient) DeleteTuples(ctx context.Context, tuples []Tuple) error {
	return nil
}

func NewNoopClient(tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *NoopClient {
	c := new(NoopClient)

	c.tracer = tracer
	c.monitor = monitor
	c.logger = logger

	return c
}
