package plaidapi_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/syncpointhq/src2dw/pkg/plaidapi"
	"github.com/tidwall/gjson"
)

func TestAccountsGet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/accounts/get", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.Equal(t, "cid", gjson.GetBytes(body, "client_id").String())
		require.Equal(t, "sec", gjson.GetBytes(body, "secret").String())
		require.Equal(t, "tok", gjson.GetBytes(body, "access_token").String())

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"accounts": [
				{"account_id": "a1", "name": "Checking", "mask": "0000", "subtype": "checking", "type": "depository"},
				{"account_id": "a2", "name": "Savings", "official_name": "Plaid Savings", "subtype": "savings", "type": "depository"}
			],
			"request_id": "req1"
		}`)
	}))
	defer server.Close()

	client := plaidapi.NewClient(server.URL, "cid", "sec")
	accounts, err := client.AccountsGet("tok")
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	require.Equal(t, "a1", accounts[0].AccountID)
	require.Equal(t, "Checking", accounts[0].Name)
	require.Equal(t, "Plaid Savings", accounts[1].OfficialName)
	require.Empty(t, accounts[0].HolderCategory)
}

func TestAccountsGetErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"error_code": "INVALID_ACCESS_TOKEN"}`)
	}))
	defer server.Close()

	client := plaidapi.NewClient(server.URL, "cid", "sec")
	_, err := client.AccountsGet("bad")
	require.Error(t, err)
	require.Contains(t, err.Error(), "INVALID_ACCESS_TOKEN")
}
