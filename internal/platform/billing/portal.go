package billing

import (
	"context"
	"fmt"
	"strings"

	stripe "github.com/stripe/stripe-go/v76"
	portalsession "github.com/stripe/stripe-go/v76/billingportal/session"

	"github.com/troovstudio/troov-backend/internal/platform/logger"
)

// PortalClient opens hosted billing portal sessions for existing customers.
type PortalClient interface {
	CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error)
}

type Config struct {
	SecretKey string `koanf:"secret_key"`
}

func (c Config) Configured() bool { return strings.TrimSpace(c.SecretKey) != "" }

type stripePortal struct {
	log      *logger.Logger
	sessions portalsession.Client
}

func NewStripePortal(log *logger.Logger, cfg Config) (PortalClient, error) {
	key := strings.TrimSpace(cfg.SecretKey)
	if key == "" {
		return nil, fmt.Errorf("stripe: missing secret key")
	}
	return &stripePortal{
		log:      log.With("client", "StripePortal"),
		sessions: portalsession.Client{B: stripe.GetBackend(stripe.APIBackend), Key: key},
	}, nil
}

func (p *stripePortal) CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error) {
	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(customerID),
		ReturnURL: stripe.String(returnURL),
	}
	params.Context = ctx
	sess, err := p.sessions.New(params)
	if err != nil {
		p.log.Warn("stripe portal session failed", "error", err)
		return "", fmt.Errorf("stripe portal session: %w", err)
	}
	return sess.URL, nil
}
