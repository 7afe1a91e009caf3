package plaidapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/pingcap/errors"
	"github.com/tidwall/gjson"
)

const ProductionHost = "https://production.plaid.com"

// Account is one account attached to a Plaid item. All fields are delivered
// as strings; absent fields stay empty.
type Account struct {
	AccountID           string
	HolderCategory      string
	Mask                string
	Name                string
	OfficialName        string
	PersistentAccountID string
	Subtype             string
	Type                string
}

// Client is a minimal Plaid API client covering the endpoints the accounts
// connector extracts from.
type Client struct {
	host         string
	clientID     string
	clientSecret string
	httpClient   *retryablehttp.Client
}

// NewClient creates a client against the given host (the production
// environment in normal use).
func NewClient(host, clientID, clientSecret string) *Client {
	httpClient := retryablehttp.NewClient()
	httpClient.RetryMax = 3
	httpClient.Logger = nil
	return &Client{
		host:         host,
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   httpClient,
	}
}

// AccountsGet fetches all accounts reachable through the access token.
func (c *Client) AccountsGet(accessToken string) ([]Account, error) {
	payload, _ := json.Marshal(map[string]string{
		"client_id":    c.clientID,
		"secret":       c.clientSecret,
		"access_token": accessToken,
	})
	resp, err := c.httpClient.Post(c.host+"/accounts/get", "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Trace(err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("accounts/get failed, status code: %d, error: %s",
			resp.StatusCode, gjson.GetBytes(body, "error_code").String())
	}

	var accounts []Account
	for _, item := range gjson.GetBytes(body, "accounts").Array() {
		accounts = append(accounts, Account{
			AccountID:           item.Get("account_id").String(),
			HolderCategory:      item.Get("holder_category").String(),
			Mask:                item.Get("mask").String(),
			Name:                item.Get("name").String(),
			OfficialName:        item.Get("official_name").String(),
			PersistentAccountID: item.Get("persistent_account_id").String(),
			Subtype:             item.Get("subtype").String(),
			Type:                item.Get("type").String(),
		})
	}
	return accounts, nil
}
