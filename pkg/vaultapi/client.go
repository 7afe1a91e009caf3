package vaultapi

import (
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/pingcap/errors"
	"github.com/pingcap/log"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const apiVersion = "v24.2"

// ObjectType describes one Vault object type: its queryable name, the
// plural label used as the destination table name, and its declared fields.
type ObjectType struct {
	Name        string
	LabelPlural string
	Fields      []string
}

// QueryResult is one page of a VQL query. NextPage is empty on the last
// page, otherwise it is the server-relative path of the following page.
type QueryResult struct {
	Records  []map[string]interface{}
	Total    int64
	NextPage string
}

// Client talks to one Veeva Vault tenant.
type Client struct {
	baseURL    string
	httpClient *retryablehttp.Client
}

// NewClient creates a client for the given tenant subdomain.
func NewClient(subdomain string) *Client {
	return NewClientWithBaseURL("https://" + subdomain + ".veevavault.com")
}

// NewClientWithBaseURL creates a client against an explicit base URL,
// mainly for tests.
func NewClientWithBaseURL(baseURL string) *Client {
	httpClient := retryablehttp.NewClient()
	httpClient.RetryMax = 3
	httpClient.Logger = nil
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *Client) endpoint(path string) string {
	return c.baseURL + "/api/" + apiVersion + "/" + path
}

// StartSession authenticates and returns the session id used as the
// Authorization header on every subsequent call.
func (c *Client) StartSession(username, password string) (string, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := retryablehttp.NewRequest(http.MethodPost, c.endpoint("auth"), strings.NewReader(form.Encode()))
	if err != nil {
		return "", errors.Trace(err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	body, err := c.do(req)
	if err != nil {
		return "", errors.Annotate(err, "Authentication request failed")
	}
	if gjson.GetBytes(body, "responseStatus").String() != "SUCCESS" {
		return "", errors.Errorf("Failed to create session for user %s", username)
	}
	sessionID := gjson.GetBytes(body, "sessionId").String()
	log.Info("Started Vault session", zap.String("username", username))
	return sessionID, nil
}

// EndSession deactivates the session. Failures are logged, not returned:
// an expired session on the server costs nothing.
func (c *Client) EndSession(sessionID string) {
	req, err := retryablehttp.NewRequest(http.MethodDelete, c.endpoint("auth"), nil)
	if err != nil {
		log.Warn("Failed to build session deactivation request", zap.Error(err))
		return
	}
	req.Header.Set("Authorization", sessionID)
	if _, err := c.do(req); err != nil {
		log.Warn("Failed to deactivate Vault session", zap.Error(err))
	}
}

// ObjectTypes lists every object type configured in the tenant.
func (c *Client) ObjectTypes(sessionID string) ([]ObjectType, error) {
	req, err := retryablehttp.NewRequest(http.MethodGet, c.endpoint("configuration/Objecttype"), nil)
	if err != nil {
		return nil, errors.Trace(err)
	}
	req.Header.Set("Authorization", sessionID)
	req.Header.Set("Accept", "application/json")

	body, err := c.do(req)
	if err != nil {
		return nil, errors.Annotate(err, "Failed to list object types")
	}

	var objects []ObjectType
	for _, item := range gjson.GetBytes(body, "data").Array() {
		obj := ObjectType{
			Name:        item.Get("object").String(),
			LabelPlural: item.Get("label_plural").String(),
		}
		for _, field := range item.Get("type_fields").Array() {
			obj.Fields = append(obj.Fields, field.Get("name").String())
		}
		objects = append(objects, obj)
	}
	return objects, nil
}

// Query submits a VQL query and returns its first page.
func (c *Client) Query(sessionID, vql string) (*QueryResult, error) {
	payload := "q=" + strings.ReplaceAll(vql, " ", "%20")
	req, err := retryablehttp.NewRequest(http.MethodPost, c.endpoint("query"), strings.NewReader(payload))
	if err != nil {
		return nil, errors.Trace(err)
	}
	req.Header.Set("Authorization", sessionID)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-VaultAPI-DescribeQuery", "true")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	body, err := c.do(req)
	if err != nil {
		return nil, errors.Annotate(err, "VQL query failed")
	}
	return parseQueryPage(body), nil
}

// QueryPage follows a next_page path returned by a prior query.
func (c *Client) QueryPage(sessionID, nextPage string) (*QueryResult, error) {
	req, err := retryablehttp.NewRequest(http.MethodGet, c.baseURL+nextPage, nil)
	if err != nil {
		return nil, errors.Trace(err)
	}
	req.Header.Set("Authorization", sessionID)
	req.Header.Set("Accept", "application/json")

	body, err := c.do(req)
	if err != nil {
		return nil, errors.Annotate(err, "VQL pagination request failed")
	}
	return parseQueryPage(body), nil
}

func (c *Client) do(req *retryablehttp.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Trace(err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("%s returned %d. Expected 200.", req.URL.Path, resp.StatusCode)
	}
	return body, nil
}

func parseQueryPage(body []byte) *QueryResult {
	result := &QueryResult{
		Total:    gjson.GetBytes(body, "responseDetails.total").Int(),
		NextPage: gjson.GetBytes(body, "responseDetails.next_page").String(),
	}
	for _, record := range gjson.GetBytes(body, "data").Array() {
		row := make(map[string]interface{})
		record.ForEach(func(key, value gjson.Result) bool {
			// single-element list values collapse to their scalar
			if value.IsArray() {
				if arr := value.Array(); len(arr) == 1 {
					row[key.String()] = arr[0].Value()
					return true
				}
			}
			row[key.String()] = value.Value()
			return true
		})
		result.Records = append(result.Records, row)
	}
	return result
}
