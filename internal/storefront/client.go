package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
)

// Storefront API request headers
const (
	HeaderPublicToken    = "X-Shopify-Storefront-Access-Token"
	HeaderPrivateToken   = "Shopify-Storefront-Private-Token"
	HeaderStorefrontID   = "Shopify-Storefront-Id"
	HeaderBuyerIP        = "Shopify-Storefront-Buyer-IP"
	HeaderRequestGroupID = "Custom-Storefront-Request-Group-ID"
	HeaderPurpose        = "Purpose"
)

const mockShopDomain = "mock.shop"

// Options configures a Client
type Options struct {
	StoreDomain        string
	APIVersion         string
	PublicAccessToken  string
	PrivateAccessToken string
	StorefrontID       string
	Country            string
	Language           string
	Timeout            time.Duration
	RetryMax           int
	RetryWaitMin       time.Duration
	RetryWaitMax       time.Duration

	// Endpoint overrides the URL derived from StoreDomain and APIVersion
	Endpoint string
}

// RequestHeaders are forwarded from the incoming page request
type RequestHeaders struct {
	BuyerIP        string
	RequestGroupID string
	Purpose        string
}

// Client talks to the commerce Storefront GraphQL API
type Client struct {
	opts       Options
	endpoint   string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient creates a Storefront API client backed by a retrying transport
func NewClient(opts Options, log zerolog.Logger) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = opts.RetryMax
	if opts.RetryWaitMin > 0 {
		retryClient.RetryWaitMin = opts.RetryWaitMin
	}
	if opts.RetryWaitMax > 0 {
		retryClient.RetryWaitMax = opts.RetryWaitMax
	}
	retryClient.HTTPClient = &http.Client{Timeout: opts.Timeout}
	retryClient.Logger = retryLogger{log: log}
	// Hand the final response back so status codes can be reported.
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = Endpoint(opts.StoreDomain, opts.APIVersion)
	}

	return &Client{
		opts:       opts,
		endpoint:   endpoint,
		httpClient: retryClient.StandardClient(),
		log:        log,
	}
}

// Endpoint returns the GraphQL URL of a store
func Endpoint(storeDomain, apiVersion string) string {
	domain := strings.TrimSuffix(storeDomain, "/")
	if !strings.HasPrefix(domain, "http://") && !strings.HasPrefix(domain, "https://") {
		domain = "https://" + domain
	}
	if strings.TrimPrefix(strings.TrimPrefix(domain, "https://"), "http://") == mockShopDomain {
		return domain + "/api"
	}
	return fmt.Sprintf("%s/api/%s/graphql.json", domain, apiVersion)
}

// URL returns the endpoint the client posts to
func (c *Client) URL() string {
	return c.endpoint
}

type graphQLRequest struct {
	Query     string `json:"query"`
	Variables any    `json:"variables,omitempty"`
}

type graphQLResponse struct {
	Data   json.RawMessage     `json:"data"`
	Errors []GraphQLErrorEntry `json:"errors,omitempty"`
}

// Query runs a GraphQL operation and decodes its data into out
func (c *Client) Query(ctx context.Context, query string, variables any, hdr RequestHeaders, out any) error {
	body, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("failed to encode GraphQL request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req, hdr)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Err: fmt.Errorf("failed to read response: %w", err)}
	}

	c.log.Debug().
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Str("request_group_id", req.Header.Get(HeaderRequestGroupID)).
		Msg("storefront query")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &HTTPError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var gqlResp graphQLResponse
	if err := json.Unmarshal(respBody, &gqlResp); err != nil {
		return fmt.Errorf("failed to decode storefront response: %w", err)
	}
	if len(gqlResp.Errors) > 0 {
		return &GraphQLError{Errors: gqlResp.Errors}
	}
	if out == nil || len(gqlResp.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(gqlResp.Data, out); err != nil {
		return fmt.Errorf("failed to decode storefront data: %w", err)
	}

	return nil
}

func (c *Client) setHeaders(req *http.Request, hdr RequestHeaders) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	// The private token is meant for server-side requests and takes precedence.
	if c.opts.PrivateAccessToken != "" {
		req.Header.Set(HeaderPrivateToken, c.opts.PrivateAccessToken)
	} else if c.opts.PublicAccessToken != "" {
		req.Header.Set(HeaderPublicToken, c.opts.PublicAccessToken)
	}
	if c.opts.StorefrontID != "" {
		req.Header.Set(HeaderStorefrontID, c.opts.StorefrontID)
	}

	if hdr.BuyerIP != "" {
		req.Header.Set(HeaderBuyerIP, hdr.BuyerIP)
	}
	groupID := hdr.RequestGroupID
	if groupID == "" {
		groupID = uuid.NewString()
	}
	req.Header.Set(HeaderRequestGroupID, groupID)
	if hdr.Purpose != "" {
		req.Header.Set(HeaderPurpose, hdr.Purpose)
	}
}

// retryLogger routes retryablehttp's leveled logs into zerolog
type retryLogger struct {
	log zerolog.Logger
}

func (l retryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.log.Error().Fields(keysAndValues).Msg(msg)
}

func (l retryLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.log.Trace().Fields(keysAndValues).Msg(msg)
}

func (l retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.log.Warn().Fields(keysAndValues).Msg(msg)
}

var _ retryablehttp.LeveledLogger = retryLogger{}
