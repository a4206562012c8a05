package resthttp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

const (
	// HeaderKeyRequestID request id header key
	headerKeyRequestID = "X-Request-Id"
)

// Client lendvault api client
type Client struct {
	client *resty.Client
}

// New client of the api served at host, token authenticates as a holder
func New(host, token string) *Client {
	c := resty.New().
		SetBaseURL(strings.TrimSuffix(host, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("Charset", "utf-8").
		SetTimeout(10 * time.Second)

	if token != "" {
		c.SetAuthToken(token)
	}

	return &Client{client: c}
}

// Error api error response
type Error struct {
	Status int    `json:"-"`
	Code   int    `json:"code"`
	Msg    string `json:"msg"`
	Hint   string `json:"hint,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%d] %d %s", e.Status, e.Code, e.Msg)
}

// Request new resty request
func (c *Client) Request(ctx context.Context) *resty.Request {
	return c.client.R().SetContext(ctx)
}

// WithRequestID resty request with request id
func (c *Client) WithRequestID(ctx context.Context, requestID string) *resty.Request {
	return c.Request(ctx).SetHeader(headerKeyRequestID, requestID)
}

// Execute do network request, decoding the data field of the response into resp
func (c *Client) Execute(request *resty.Request, method, url string, body interface{}, resp interface{}) error {
	logrus.Debugln("request", method, url)

	if body != nil {
		request = request.SetBody(body)
	}

	r, err := request.Execute(strings.ToUpper(method), url)
	if err != nil {
		return err
	}

	return ParseResponse(r, resp)
}

// ParseResponse parse response
func ParseResponse(r *resty.Response, obj interface{}) error {
	if !r.IsSuccess() {
		apiErr := &Error{Status: r.StatusCode()}
		if err := json.Unmarshal(r.Body(), apiErr); err != nil {
			apiErr.Msg = strings.TrimSpace(string(r.Body()))
		}

		return apiErr
	}

	if obj == nil {
		return nil
	}

	var data struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(r.Body(), &data); err != nil {
		return err
	}

	return json.Unmarshal(data.Data, obj)
}
