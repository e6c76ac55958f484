package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	"cardshop/internal/domain/payment"
	"cardshop/internal/pkg/config"
	"cardshop/internal/pkg/errs"
)

const (
	sessionsPath         = "/v1/checkout/sessions"
	sessionIDHeader      = "Payment-Session-Id"
	idempotencyKeyHeader = "Idempotency-Key"
	maxErrorBody         = 4 << 10
)

var (
	ErrGatewayRejected = errs.New("payment gateway rejected the request")
	ErrBadResponse     = errs.New("payment gateway returned an unreadable response")
)

type HTTPGateway struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

func NewHTTPGateway(cfg config.PaymentConfig) *HTTPGateway {
	return &HTTPGateway{
		client: &http.Client{
			Timeout: cfg.RequestTimeout,
			// The provider may answer with a redirect to its hosted page.
			// That response is the result, so it is never followed.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		baseURL: strings.TrimRight(cfg.APIBaseURL, "/"),
		apiKey:  cfg.APIKey,
	}
}

// CreateSession asks the provider for a hosted checkout session. A 303 answer
// comes back as *payment.Handoff carrying the session.
func (g *HTTPGateway) CreateSession(ctx context.Context, req payment.SessionRequest) (payment.Session, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return payment.Session{}, errs.Wrap(err, "failed to encode session request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+sessionsPath, bytes.NewReader(body))
	if err != nil {
		return payment.Session{}, errs.Wrap(err, "failed to build session request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)
	if req.Metadata.ReservationID != "" {
		httpReq.Header.Set(idempotencyKeyHeader, req.Metadata.ReservationID)
	}

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return payment.Session{}, errs.Wrap(err, "payment gateway request failed")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusSeeOther || resp.StatusCode == http.StatusFound:
		return handoffFrom(resp)
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		var s payment.Session
		if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
			return payment.Session{}, errs.Mark(errs.Wrap(err, "failed to decode session"), ErrBadResponse)
		}
		if s.ID == "" || s.URL == "" {
			return payment.Session{}, ErrBadResponse
		}
		return s, nil
	default:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return payment.Session{}, errs.Mark(
			errs.Newf("payment gateway status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))),
			ErrGatewayRejected,
		)
	}
}

func handoffFrom(resp *http.Response) (payment.Session, error) {
	location := resp.Header.Get("Location")
	if location == "" {
		return payment.Session{}, errs.Mark(errs.New("redirect without location"), ErrBadResponse)
	}

	id := resp.Header.Get(sessionIDHeader)
	if id == "" {
		u, err := url.Parse(location)
		if err != nil {
			return payment.Session{}, errs.Mark(errs.Wrap(err, "invalid redirect location"), ErrBadResponse)
		}
		id = u.Query().Get("session_id")
		if id == "" {
			id = path.Base(u.Path)
		}
	}
	if id == "" || id == "/" || id == "." {
		return payment.Session{}, errs.Mark(errs.New("redirect without session id"), ErrBadResponse)
	}

	s := payment.Session{ID: id, URL: location}
	return s, &payment.Handoff{Session: s}
}
