package clients

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fihealth/internal/providers"
	"fihealth/internal/structures"

	json "github.com/goccy/go-json"
	"github.com/hashicorp/go-retryablehttp"
)

// MailMessage is the sendmail form posted to a region mailing list.
type MailMessage struct {
	NameFrom  string
	EmailFrom string
	Subject   string
	Body      string
}

func (m *MailMessage) form() url.Values {
	return url.Values{
		"name_from":  {m.NameFrom},
		"email_from": {m.EmailFrom},
		"subject":    {m.Subject},
		"body":       {m.Body},
	}
}

type MailmanClientInterface interface {
	Members(ctx context.Context, region string) ([]string, error)
	Subscribe(ctx context.Context, region string, email string) error
	Unsubscribe(ctx context.Context, region string, email string) error
	SendMail(ctx context.Context, region string, msg *MailMessage) error
}

// MailmanClient reads list members through a retrying client. Writes are sent
// once: a repeated sendmail would reach the list twice.
type MailmanClient struct {
	reader  *retryablehttp.Client
	client  *http.Client
	timeout time.Duration
	base    string
}

func NewMailmanClient(conf *structures.Config) MailmanClientInterface {
	reader := retryablehttp.NewClient()
	reader.Logger = nil
	reader.RetryMax = conf.Mailman.RetryMax
	reader.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return &MailmanClient{
		reader:  reader,
		client:  &http.Client{Timeout: conf.Mailman.Timeout},
		timeout: conf.Mailman.Timeout,
		base:    structures.BaseURL(conf.Mailman.Host, conf.Mailman.Port) + conf.Mailman.Path,
	}
}

// ListURL is the mailing list resource of a region. List names are lower-case.
func (c *MailmanClient) ListURL(region string) string {
	return c.base + strings.ToLower(region)
}

func (c *MailmanClient) do(ctx context.Context, method string, target string, form url.Values) ([]byte, error) {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req.Header.Set(providers.TransactionHeader, providers.TransactionID(ctx))

	return readMailmanResponse(c.client.Do(req))
}

func readMailmanResponse(resp *http.Response, err error) ([]byte, error) {
	if err != nil {
		return nil, wrapTransportError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, wrapTransportError(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return data, statusError(resp.StatusCode)
	}
	return data, nil
}

// Members returns the addresses subscribed to the region list. The call is
// bounded by mailman.timeout, retries included.
func (c *MailmanClient) Members(ctx context.Context, region string) ([]string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.ListURL(region), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(providers.TransactionHeader, providers.TransactionID(ctx))

	data, err := readMailmanResponse(c.reader.Do(req))
	if err != nil {
		return nil, err
	}
	var members []string
	if err = json.Unmarshal(data, &members); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstreamMalformed, err)
	}
	return members, nil
}

func (c *MailmanClient) Subscribe(ctx context.Context, region string, email string) error {
	_, err := c.do(ctx, http.MethodPut, c.ListURL(region), url.Values{"address": {email}})
	return err
}

func (c *MailmanClient) Unsubscribe(ctx context.Context, region string, email string) error {
	_, err := c.do(ctx, http.MethodDelete, c.ListURL(region), url.Values{"address": {email}})
	return err
}

func (c *MailmanClient) SendMail(ctx context.Context, region string, msg *MailMessage) error {
	_, err := c.do(ctx, http.MethodPost, c.ListURL(region)+"/sendmail", msg.form())
	return err
}
