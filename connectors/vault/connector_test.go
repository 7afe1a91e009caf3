package vault_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/syncpointhq/src2dw/config"
	"github.com/syncpointhq/src2dw/connectors/vault"
	"github.com/syncpointhq/src2dw/pkg/vaultapi"
	"github.com/syncpointhq/src2dw/schema"
	"github.com/syncpointhq/src2dw/state"
)

type recorder struct {
	tables  []string
	upserts []schema.Row
	states  []state.State
}

func (r *recorder) Upsert(table string, row schema.Row) error {
	r.tables = append(r.tables, table)
	r.upserts = append(r.upserts, row)
	return nil
}

func (r *recorder) Delete(table string, keys schema.Row) error { return nil }

func (r *recorder) Checkpoint(st state.State) error {
	r.states = append(r.states, st)
	return nil
}

func vaultConf() config.Configuration {
	return config.Configuration{
		"subdomain": "acme",
		"username":  "bot",
		"password":  "s3cret",
	}
}

// newVaultServer records the VQL queries it receives.
func newVaultServer(t *testing.T, queries *[]string) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v24.2/auth", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			io.WriteString(w, `{"responseStatus": "SUCCESS", "sessionId": "sess-1"}`)
			return
		}
		io.WriteString(w, `{"responseStatus": "SUCCESS"}`)
	})
	mux.HandleFunc("/api/v24.2/configuration/Objecttype", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"data": [
			{"object": "product__v", "label_plural": "Products",
			 "type_fields": [{"name": "id"}, {"name": "name__v"}, {"name": "modified_date__v"}]}
		]}`)
	})
	mux.HandleFunc("/api/v24.2/query", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		*queries = append(*queries, string(body))
		io.WriteString(w, `{
			"responseDetails": {"size": 1, "total": 2, "next_page": "/api/v24.2/query/1/page2"},
			"data": [{"id": ["p1"], "name__v": "Aspirin"}]
		}`)
	})
	mux.HandleFunc("/api/v24.2/query/1/page2", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{
			"responseDetails": {"size": 1, "total": 2},
			"data": [{"id": ["p2"], "name__v": "Ibuprofen"}]
		}`)
	})
	return httptest.NewServer(mux)
}

func fixedClock() time.Time {
	return time.Date(2024, 9, 24, 12, 0, 0, 0, time.UTC)
}

func TestSchemaDiscoversObjectTables(t *testing.T) {
	var queries []string
	server := newVaultServer(t, &queries)
	defer server.Close()

	conn := vault.NewWithClient(vaultapi.NewClientWithBaseURL(server.URL), fixedClock)
	tables, err := conn.Schema(vaultConf())
	require.NoError(t, err)
	require.Len(t, tables, 1)
	require.Equal(t, "Products", tables[0].Table)
	require.Equal(t, []string{"id"}, tables[0].PrimaryKey)
}

func TestUpdatePagesThroughRecords(t *testing.T) {
	var queries []string
	server := newVaultServer(t, &queries)
	defer server.Close()

	conn := vault.NewWithClient(vaultapi.NewClientWithBaseURL(server.URL), fixedClock)
	rec := &recorder{}
	require.NoError(t, conn.Update(context.Background(), vaultConf(), state.State{}, rec))

	require.Len(t, rec.upserts, 2)
	require.Equal(t, []string{"Products", "Products"}, rec.tables)
	require.Equal(t, "p1", rec.upserts[0]["id"])
	require.Equal(t, "p2", rec.upserts[1]["id"])

	// first sync: no cursor filter, declared fields and page size present
	require.Len(t, queries, 1)
	require.Contains(t, queries[0], "id,%20name__v,%20modified_date__v")
	require.Contains(t, queries[0], "PAGESIZE%2050")
	require.NotContains(t, queries[0], "modified_date__v%20>")

	// checkpoint carries the pass start time
	require.Len(t, rec.states, 1)
	require.Equal(t, "2024-09-24T12:00:00.000000Z", rec.states[0].GetString("cursor", ""))
}

func TestUpdateIncrementalFiltersByCursor(t *testing.T) {
	var queries []string
	server := newVaultServer(t, &queries)
	defer server.Close()

	conn := vault.NewWithClient(vaultapi.NewClientWithBaseURL(server.URL), fixedClock)
	st := state.State{"cursor": "2024-09-01T00:00:00.000000Z"}
	require.NoError(t, conn.Update(context.Background(), vaultConf(), st, &recorder{}))

	require.Len(t, queries, 1)
	require.Contains(t, queries[0], "WHERE%20modified_date__v%20>%20'2024-09-01T00:00:00.000000Z'")
}

func TestUpdateMissingCredentials(t *testing.T) {
	conf := vaultConf()
	delete(conf, "password")

	err := vault.New().Update(context.Background(), conf, state.State{}, &recorder{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "password")
}
