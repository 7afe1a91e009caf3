// Package plaid replicates the accounts attached to a Plaid item. Each
// pass is a full refresh: the accounts endpoint has no modification
// cursor, and the account list is small.
package plaid

import (
	"context"

	"github.com/pingcap/errors"
	"github.com/syncpointhq/src2dw/config"
	"github.com/syncpointhq/src2dw/pkg/coreinterfaces"
	"github.com/syncpointhq/src2dw/pkg/plaidapi"
	"github.com/syncpointhq/src2dw/schema"
	"github.com/syncpointhq/src2dw/state"
)

type Connector struct {
	host string
}

func New() *Connector {
	return &Connector{host: plaidapi.ProductionHost}
}

// NewWithHost points the connector at a non-production environment,
// mainly for tests.
func NewWithHost(host string) *Connector {
	return &Connector{host: host}
}

func (c *Connector) Schema(conf config.Configuration) ([]schema.Table, error) {
	return []schema.Table{
		{
			Table:      "accounts",
			PrimaryKey: []string{"account_id"},
			Columns: map[string]schema.DataType{
				"account_id":            schema.TypeString,
				"holder_category":       schema.TypeString,
				"mask":                  schema.TypeString,
				"name":                  schema.TypeString,
				"official_name":         schema.TypeString,
				"persistent_account_id": schema.TypeString,
				"subtype":               schema.TypeString,
				"type":                  schema.TypeString,
			},
		},
	}, nil
}

func (c *Connector) Update(ctx context.Context, conf config.Configuration, st state.State, ops coreinterfaces.OperationRouter) error {
	clientID, err := conf.Require("client_id")
	if err != nil {
		return errors.Trace(err)
	}
	clientSecret, err := conf.Require("client_secret")
	if err != nil {
		return errors.Trace(err)
	}
	accessToken, err := conf.Require("plaid_access_token")
	if err != nil {
		return errors.Trace(err)
	}

	client := plaidapi.NewClient(c.host, clientID, clientSecret)
	accounts, err := client.AccountsGet(accessToken)
	if err != nil {
		return errors.Annotate(err, "Error fetching accounts")
	}

	for _, account := range accounts {
		if err := ops.Upsert("accounts", schema.Row{
			"account_id":            account.AccountID,
			"holder_category":       account.HolderCategory,
			"mask":                  account.Mask,
			"name":                  account.Name,
			"official_name":         account.OfficialName,
			"persistent_account_id": account.PersistentAccountID,
			"subtype":               account.Subtype,
			"type":                  account.Type,
		}); err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}
