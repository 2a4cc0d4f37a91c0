package internal

import (
	"fmt"
	"net/http"
	"time"

	"wayforpay/config"
	"wayforpay/entity"
	"wayforpay/services"
)

// Endpoints are the gateway URLs used by the client.
type Endpoints struct {
	API      string
	Purchase string
	Widget   string
}

func DefaultEndpoints() Endpoints {
	return Endpoints{
		API:      APIURL,
		Purchase: PurchaseURL,
		Widget:   WidgetURL,
	}
}

// Client builds, signs and sends WayForPay requests. Credentials never change
// after construction, so one client may serve concurrent callers; setters are
// meant for start-up wiring only.
type Client struct {
	credentials entity.Credentials
	signer      *Signer
	endpoints   Endpoints
	httpClient  *http.Client
	logger      services.LogHandler
	database    services.Database
}

// NewClient validates credentials; charset "" means utf8.
func NewClient(credentials entity.Credentials, charset string) (*Client, error) {
	if credentials.Account == "" {
		return nil, fmt.Errorf("%w: merchant account must be not empty", ErrInvalidConfiguration)
	}
	if credentials.Password == "" {
		return nil, fmt.Errorf("%w: merchant password must be not empty", ErrInvalidConfiguration)
	}
	return &Client{
		credentials: credentials,
		signer:      NewSigner(credentials.Password, charset),
		endpoints:   DefaultEndpoints(),
		httpClient:  newHTTPClient(30 * time.Second),
		logger:      NewLogger("wayforpay", false, nil),
	}, nil
}

// NewClientFromConfig creates a client with merchant and gateway settings
// from conf.
func NewClientFromConfig(conf *config.Config) (*Client, error) {
	if conf == nil {
		return nil, fmt.Errorf("%w: configuration not loaded", ErrInvalidConfiguration)
	}
	client, err := NewClient(entity.Credentials{
		Account:  conf.Merchant.Account,
		Password: conf.Merchant.Password,
	}, conf.Merchant.Charset)
	if err != nil {
		return nil, err
	}
	endpoints := DefaultEndpoints()
	if conf.Gateway.ApiUrl != "" {
		endpoints.API = conf.Gateway.ApiUrl
	}
	if conf.Gateway.PurchaseUrl != "" {
		endpoints.Purchase = conf.Gateway.PurchaseUrl
	}
	if conf.Gateway.WidgetUrl != "" {
		endpoints.Widget = conf.Gateway.WidgetUrl
	}
	client.endpoints = endpoints
	if conf.Gateway.Timeout > 0 {
		client.httpClient = newHTTPClient(conf.Gateway.Timeout)
	}
	return client, nil
}

func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

func (c *Client) SetLogger(logger services.LogHandler) {
	c.logger = logger
}

func (c *Client) SetDatabase(database services.Database) {
	c.database = database
}

func (c *Client) SetHTTPClient(httpClient *http.Client) {
	c.httpClient = httpClient
}

func (c *Client) SetEndpoints(endpoints Endpoints) {
	c.endpoints = endpoints
}

func (c *Client) Account() string {
	return c.credentials.Account
}
