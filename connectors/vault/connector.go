// Package vault replicates every object type of a Veeva Vault tenant, one
// destination table per object. Records are fetched over VQL, filtered by
// modified_date__v when a cursor exists, and paged until exhausted. The
// checkpoint cursor is the start time of the pass, so records modified
// while the pass runs are picked up again next sync.
package vault

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/pingcap/errors"
	"github.com/pingcap/log"
	"github.com/syncpointhq/src2dw/config"
	"github.com/syncpointhq/src2dw/pkg/coreinterfaces"
	"github.com/syncpointhq/src2dw/pkg/vaultapi"
	"github.com/syncpointhq/src2dw/schema"
	"github.com/syncpointhq/src2dw/state"
	"go.uber.org/zap"
)

const (
	pageSize     = 50
	cursorLayout = "2006-01-02T15:04:05.000000Z"
)

type Connector struct {
	newClient func(conf config.Configuration) (*vaultapi.Client, error)
	now       func() time.Time
}

func New() *Connector {
	return &Connector{
		newClient: func(conf config.Configuration) (*vaultapi.Client, error) {
			subdomain, err := conf.Require("subdomain")
			if err != nil {
				return nil, errors.Trace(err)
			}
			return vaultapi.NewClient(subdomain), nil
		},
		now: time.Now,
	}
}

// NewWithClient injects a prebuilt client and clock, mainly for tests.
func NewWithClient(client *vaultapi.Client, now func() time.Time) *Connector {
	return &Connector{
		newClient: func(config.Configuration) (*vaultapi.Client, error) { return client, nil },
		now:       now,
	}
}

// Schema is discovered dynamically: one table per object type, labeled by
// its plural label, keyed by id.
func (c *Connector) Schema(conf config.Configuration) ([]schema.Table, error) {
	client, session, _, err := c.startSession(conf)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer client.EndSession(session)

	objects, err := client.ObjectTypes(session)
	if err != nil {
		return nil, errors.Trace(err)
	}

	tables := make([]schema.Table, 0, len(objects))
	for _, obj := range objects {
		tables = append(tables, schema.Table{
			Table:      obj.LabelPlural,
			PrimaryKey: []string{"id"},
		})
	}
	return tables, nil
}

func (c *Connector) Update(ctx context.Context, conf config.Configuration, st state.State, ops coreinterfaces.OperationRouter) error {
	client, session, username, err := c.startSession(conf)
	if err != nil {
		return errors.Trace(err)
	}
	defer client.EndSession(session)

	// the next sync resumes from this pass's start time
	currentTime := c.now().UTC().Format(cursorLayout)
	cursor := st.GetString("cursor", "")

	objects, err := client.ObjectTypes(session)
	if err != nil {
		return errors.Trace(err)
	}
	log.Info("Starting Vault object replication",
		zap.String("username", username),
		zap.Int("objects", len(objects)),
		zap.String("cursor", cursor))

	for _, obj := range objects {
		if err := c.replicateObject(client, session, obj, cursor, ops); err != nil {
			return errors.Annotatef(err, "Failed to replicate object %s", obj.Name)
		}
	}

	return errors.Trace(ops.Checkpoint(state.State{"cursor": currentTime}))
}

func (c *Connector) startSession(conf config.Configuration) (*vaultapi.Client, string, string, error) {
	client, err := c.newClient(conf)
	if err != nil {
		return nil, "", "", errors.Trace(err)
	}
	username, err := conf.Require("username")
	if err != nil {
		return nil, "", "", errors.Trace(err)
	}
	password, err := conf.Require("password")
	if err != nil {
		return nil, "", "", errors.Trace(err)
	}
	session, err := client.StartSession(username, password)
	if err != nil {
		return nil, "", "", errors.Trace(err)
	}
	return client, session, username, nil
}

// replicateObject pages one object's records through VQL and upserts them.
func (c *Connector) replicateObject(client *vaultapi.Client, session string, obj vaultapi.ObjectType, cursor string, ops coreinterfaces.OperationRouter) error {
	vql := composeQuery(obj, cursor)
	log.Debug("Next query", zap.String("vql", vql))

	page, err := client.Query(session, vql)
	for {
		if err != nil {
			return errors.Trace(err)
		}
		for _, record := range page.Records {
			if err := ops.Upsert(obj.LabelPlural, schema.Row(record)); err != nil {
				return errors.Trace(err)
			}
		}
		if page.NextPage == "" {
			return nil
		}
		page, err = client.QueryPage(session, page.NextPage)
	}
}

// composeQuery builds the VQL for one object, filtered by the cursor on
// incremental syncs.
func composeQuery(obj vaultapi.ObjectType, cursor string) string {
	fields := strings.Join(obj.Fields, ", ")
	var sb strings.Builder
	sb.WriteString("select ")
	sb.WriteString(fields)
	sb.WriteString(" from ")
	sb.WriteString(obj.Name)
	if cursor != "" {
		sb.WriteString(" WHERE modified_date__v > '")
		sb.WriteString(cursor)
		sb.WriteString("'")
	}
	sb.WriteString(" PAGESIZE ")
	sb.WriteString(strconv.Itoa(pageSize))
	return sb.String()
}
