package plaid_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/syncpointhq/src2dw/config"
	"github.com/syncpointhq/src2dw/connectors/plaid"
	"github.com/syncpointhq/src2dw/schema"
	"github.com/syncpointhq/src2dw/state"
)

type recorder struct {
	upserts []schema.Row
}

func (r *recorder) Upsert(table string, row schema.Row) error {
	r.upserts = append(r.upserts, row)
	return nil
}

func (r *recorder) Delete(table string, keys schema.Row) error { return nil }
func (r *recorder) Checkpoint(st state.State) error            { return nil }

func plaidConf() config.Configuration {
	return config.Configuration{
		"client_id":          "cid",
		"client_secret":      "sec",
		"plaid_access_token": "tok",
	}
}

func TestSchema(t *testing.T) {
	tables, err := plaid.New().Schema(nil)
	require.NoError(t, err)
	require.Len(t, tables, 1)
	require.Equal(t, "accounts", tables[0].Table)
	require.Equal(t, []string{"account_id"}, tables[0].PrimaryKey)
	require.Len(t, tables[0].Columns, 8)
}

func TestUpdateUpsertsAccounts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"accounts": [
			{"account_id": "a1", "name": "Checking", "type": "depository", "subtype": "checking"}
		]}`)
	}))
	defer server.Close()

	rec := &recorder{}
	conn := plaid.NewWithHost(server.URL)
	require.NoError(t, conn.Update(context.Background(), plaidConf(), state.State{}, rec))

	require.Len(t, rec.upserts, 1)
	require.Equal(t, "a1", rec.upserts[0]["account_id"])
	require.Equal(t, "depository", rec.upserts[0]["type"])
}

func TestUpdateMissingAccessToken(t *testing.T) {
	conf := plaidConf()
	delete(conf, "plaid_access_token")

	err := plaid.New().Update(context.Background(), conf, state.State{}, &recorder{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "plaid_access_token")
}
