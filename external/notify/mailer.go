package notify

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/resend/resend-go/v2"
	"github.com/riskibarqy/club-backoffice/internal/platform/logging"
	"github.com/riskibarqy/club-backoffice/internal/platform/markdown"
	"github.com/riskibarqy/club-backoffice/internal/platform/resilience"
	"github.com/riskibarqy/club-backoffice/internal/usecase"
)

var errEmailTransient = crerr.New("email provider transient failure")

type MailerConfig struct {
	APIKey         string
	From           string
	BaseURL        string
	Timeout        time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
	HTTPClient     *http.Client
	Logger         *logging.Logger
}

// Mailer sends signup confirmations through Resend.
type Mailer struct {
	client  *resend.Client
	from    string
	timeout time.Duration
	breaker *resilience.CircuitBreaker
	logger  *logging.Logger
}

func NewMailer(cfg MailerConfig) (*Mailer, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("resend api key is required")
	}
	if strings.TrimSpace(cfg.From) == "" {
		return nil, fmt.Errorf("sender address is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	client := resend.NewCustomClient(httpClient, strings.TrimSpace(cfg.APIKey))
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		parsed, err := url.Parse(strings.TrimSuffix(base, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("parse resend base url: %w", err)
		}
		client.BaseURL = parsed
	}

	return &Mailer{
		client:  client,
		from:    strings.TrimSpace(cfg.From),
		timeout: timeout,
		breaker: resilience.NewCircuitBreakerFromConfig(cfg.CircuitBreaker),
		logger:  logger.Named("notify"),
	}, nil
}

// SignupReceived emails the captain, and the teammate when there is one,
// a summary of the signup with its payment link.
func (m *Mailer) SignupReceived(ctx context.Context, notice usecase.SignupNotice) error {
	to := recipients(notice)
	if len(to) == 0 {
		return nil
	}

	body, err := markdown.Render(signupMessage(notice))
	if err != nil {
		return crerr.Wrap(err, "render signup email")
	}
	req := &resend.SendEmailRequest{
		From:    m.from,
		To:      to,
		Subject: "League signup received: " + notice.LeagueName,
		Html:    body,
	}

	send := func() error {
		sendCtx, cancel := context.WithTimeout(ctx, m.timeout)
		defer cancel()

		sent, err := m.client.Emails.SendWithContext(sendCtx, req)
		if err != nil {
			return crerr.Mark(crerr.Wrap(err, "send signup email"), errEmailTransient)
		}
		m.logger.InfoContext(ctx, "signup email sent", "message_id", sent.Id, "signup_id", notice.Signup.ID)
		return nil
	}

	if m.breaker != nil {
		err = m.breaker.Execute(send, isCircuitFailure)
	} else {
		err = send()
	}
	if err == nil {
		return nil
	}
	if stderrors.Is(err, resilience.ErrCircuitOpen) {
		m.logger.WarnContext(ctx, "email circuit breaker rejected request", "state", m.breaker.State())
		return fmt.Errorf("%w: email provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}
	return fmt.Errorf("%w: %w", usecase.ErrDependencyUnavailable, err)
}

func isCircuitFailure(err error) bool {
	return crerr.Is(err, errEmailTransient)
}

func recipients(notice usecase.SignupNotice) []string {
	out := make([]string, 0, 2)
	for _, email := range []string{notice.Signup.CaptainEmail, notice.Signup.TeammateEmail} {
		email = strings.TrimSpace(email)
		if email == "" || containsFold(out, email) {
			continue
		}
		out = append(out, email)
	}
	return out
}

func containsFold(items []string, v string) bool {
	for _, item := range items {
		if strings.EqualFold(item, v) {
			return true
		}
	}
	return false
}
