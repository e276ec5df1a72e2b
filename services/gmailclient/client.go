package gmailclient

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/log"
	"github.com/pkg/errors"
	"github.com/sony/gobreaker"
	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/customeros/webmail/config"
	"github.com/customeros/webmail/interfaces"
	webmail_errors "github.com/customeros/webmail/internal/errors"
	"github.com/customeros/webmail/internal/logger"
	"github.com/customeros/webmail/internal/metrics"
	"github.com/customeros/webmail/internal/tracing"
)

const DefaultUserID = "me"

type gmailClient struct {
	baseURL   string
	transport http.RoundTripper
	breaker   *gobreaker.CircuitBreaker
	log       logger.Logger
}

type Option func(*gmailClient)

// WithTransport replaces the base transport under the oauth2 and tracing layers.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *gmailClient) {
		c.transport = rt
	}
}

func NewGmailClient(gmailCfg *config.GmailConfig, cbCfg *config.CircuitBreakerConfig, log logger.Logger, opts ...Option) interfaces.GmailClient {
	c := &gmailClient{
		baseURL:   gmailCfg.BaseURL,
		transport: http.DefaultTransport,
		log:       log,
	}
	if cbCfg != nil && cbCfg.Enabled {
		c.breaker = newCircuitBreaker(cbCfg, log)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func newCircuitBreaker(cfg *config.CircuitBreakerConfig, log logger.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "gmail-api",
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.ConsecutiveFailures
		},
		IsSuccessful: isBreakerSuccess,
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warnf("Circuit breaker %s changed from %s to %s", name, from.String(), to.String())
		},
	})
}

// isBreakerSuccess only counts provider outages and transport failures against the breaker.
func isBreakerSuccess(err error) bool {
	if err == nil {
		return true
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code < http.StatusInternalServerError && apiErr.Code != http.StatusTooManyRequests
	}
	return errors.Is(err, context.Canceled)
}

func (c *gmailClient) service(ctx context.Context, cred interfaces.Credential) (*gmail.Service, error) {
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cred.AccessToken, TokenType: "Bearer"}),
			Base:   &tracingTransport{base: c.transport},
		},
	}
	return gmail.NewService(ctx, option.WithHTTPClient(httpClient), option.WithEndpoint(c.baseURL))
}

func userID(cred interfaces.Credential) string {
	if cred.UserID == "" {
		return DefaultUserID
	}
	return cred.UserID
}

// execute runs one upstream call with tracing, metrics and the circuit breaker, and converts failures to UpstreamError.
func (c *gmailClient) execute(ctx context.Context, cred interfaces.Credential, operation string, fn func(ctx context.Context, svc *gmail.Service) error) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "GmailClient."+operation)
	defer span.Finish()
	tracing.SetDefaultGmailClientSpanTags(ctx, span, operation)

	svc, err := c.service(ctx, cred)
	if err != nil {
		err = errors.Wrap(err, "failed to create gmail service")
		tracing.TraceErr(span, err)
		return webmail_errors.NewUpstreamError(operation, err)
	}

	start := time.Now()
	call := func() error { return fn(ctx, svc) }
	if c.breaker != nil {
		_, err = c.breaker.Execute(func() (interface{}, error) {
			return nil, call()
		})
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = errors.Wrap(webmail_errors.ErrCircuitOpen, err.Error())
		}
	} else {
		err = call()
	}

	metrics.RecordUpstreamCall(operation, statusLabel(err), time.Since(start))
	if err != nil {
		upstreamErr := webmail_errors.NewUpstreamError(operation, err)
		tracing.TraceErr(span, upstreamErr, log.Int("status", upstreamErr.StatusCode))
		c.log.Errorf("Gmail %s failed: %v", operation, upstreamErr)
		return upstreamErr
	}
	return nil
}

func statusLabel(err error) string {
	if err == nil {
		return "ok"
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return strconv.Itoa(apiErr.Code)
	}
	if errors.Is(err, webmail_errors.ErrCircuitOpen) {
		return "circuit_open"
	}
	return "transport_error"
}

func (c *gmailClient) ListMessages(ctx context.Context, cred interfaces.Credential, params interfaces.ListMessagesParams) (*gmail.ListMessagesResponse, error) {
	var resp *gmail.ListMessagesResponse
	err := c.execute(ctx, cred, "messages.list", func(ctx context.Context, svc *gmail.Service) error {
		call := svc.Users.Messages.List(userID(cred)).Context(ctx)
		if params.Query != "" {
			call = call.Q(params.Query)
		}
		if len(params.LabelIDs) > 0 {
			call = call.LabelIds(params.LabelIDs...)
		}
		if params.MaxResults > 0 {
			call = call.MaxResults(params.MaxResults)
		}
		if params.PageToken != "" {
			call = call.PageToken(params.PageToken)
		}
		if params.IncludeSpamTrash != nil {
			call = call.IncludeSpamTrash(*params.IncludeSpamTrash)
		}
		var err error
		resp, err = call.Do()
		return err
	})
	return resp, err
}

func (c *gmailClient) GetMessage(ctx context.Context, cred interfaces.Credential, messageID, format string, metadataHeaders ...string) (*gmail.Message, error) {
	var msg *gmail.Message
	err := c.execute(ctx, cred, "messages.get", func(ctx context.Context, svc *gmail.Service) error {
		call := svc.Users.Messages.Get(userID(cred), messageID).Context(ctx)
		if format != "" {
			call = call.Format(strings.ToLower(format))
		}
		if len(metadataHeaders) > 0 {
			call = call.MetadataHeaders(metadataHeaders...)
		}
		var err error
		msg, err = call.Do()
		return err
	})
	return msg, err
}

func (c *gmailClient) GetAttachment(ctx context.Context, cred interfaces.Credential, messageID, attachmentID string) (*gmail.MessagePartBody, error) {
	var body *gmail.MessagePartBody
	err := c.execute(ctx, cred, "messages.attachments.get", func(ctx context.Context, svc *gmail.Service) error {
		var err error
		body, err = svc.Users.Messages.Attachments.Get(userID(cred), messageID, attachmentID).Context(ctx).Do()
		return err
	})
	return body, err
}

func (c *gmailClient) SendMessage(ctx context.Context, cred interfaces.Credential, raw string) (*gmail.Message, error) {
	var sent *gmail.Message
	err := c.execute(ctx, cred, "messages.send", func(ctx context.Context, svc *gmail.Service) error {
		var err error
		sent, err = svc.Users.Messages.Send(userID(cred), &gmail.Message{Raw: raw}).Context(ctx).Do()
		return err
	})
	return sent, err
}

func (c *gmailClient) TrashMessage(ctx context.Context, cred interfaces.Credential, messageID string) error {
	return c.execute(ctx, cred, "messages.trash", func(ctx context.Context, svc *gmail.Service) error {
		_, err := svc.Users.Messages.Trash(userID(cred), messageID).Context(ctx).Do()
		return err
	})
}

func (c *gmailClient) BatchDeleteMessages(ctx context.Context, cred interfaces.Credential, messageIDs []string) error {
	return c.execute(ctx, cred, "messages.batchDelete", func(ctx context.Context, svc *gmail.Service) error {
		return svc.Users.Messages.BatchDelete(userID(cred), &gmail.BatchDeleteMessagesRequest{Ids: messageIDs}).Context(ctx).Do()
	})
}

func (c *gmailClient) ListLabels(ctx context.Context, cred interfaces.Credential) (*gmail.ListLabelsResponse, error) {
	var labels *gmail.ListLabelsResponse
	err := c.execute(ctx, cred, "labels.list", func(ctx context.Context, svc *gmail.Service) error {
		var err error
		labels, err = svc.Users.Labels.List(userID(cred)).Context(ctx).Do()
		return err
	})
	return labels, err
}

// tracingTransport propagates the active span to the upstream request headers.
type tracingTransport struct {
	base http.RoundTripper
}

func (t *tracingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if span := opentracing.SpanFromContext(req.Context()); span != nil {
		req = tracing.InjectSpanContextIntoHTTPRequest(req.Clone(req.Context()), span)
	}
	return t.base.RoundTrip(req)
}
