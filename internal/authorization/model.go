// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"encoding/json"
	"fmt"

	fga "github.com/openfga/go-sdk"
	"github.com/openfga/language/pkg/go/transformer"
)

const workspaceModelDSL = `model
  schema 1.1

type user

type workspace
  relations
    define owner: [user]
    define admin: [user] or owner
    define member: [user] or admin
    define can_view: member
    define can_edit: member
    define can_manage: admin
    define can_bill: owner
`

type AuthorizationModelProvider struct {
	version string
}

// GetModel returns the workspace authorization model, the DSL is fixed so a conversion failure is a programming error.
func (p *AuthorizationModelProvider) GetModel() *fga.AuthorizationModel {
	model, err := parseModel(workspaceModelDSL)
	if err != nil {
		panic(fmt.Sprintf("invalid %s authorization model: %v", p.version, err))
	}
	return model
}

func parseModel(dsl string) (*fga.AuthorizationModel, error) {
	raw, err := transformer.TransformDSLToJSON(dsl)
	if err != nil {
		return nil, err
	}

	model := new(fga.AuthorizationModel)
	if err := json.Unmarshal([]byte(raw), model); err != nil {
		return nil, err
	}

	return model, nil
}

func NewAuthorizationModelProvider(version string) *AuthorizationModelProvider {
	return &AuthorizationModelProvider{version: version}
}
