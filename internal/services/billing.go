package services

import (
	"errors"
	"net/url"
	"strings"

	"github.com/troovstudio/troov-backend/internal/data/repos"
	"github.com/troovstudio/troov-backend/internal/platform/apierr"
	"github.com/troovstudio/troov-backend/internal/platform/billing"
	"github.com/troovstudio/troov-backend/internal/platform/dbctx"
	"github.com/troovstudio/troov-backend/internal/platform/logger"
)

const fallbackAppURL = "http://localhost:3000"

var errBillingNotConfigured = errors.New("Billing is not configured")

// ReturnOrigin carries the request headers the portal return URL is built
// from.
type ReturnOrigin struct {
	Origin  string
	Referer string
}

type BillingService interface {
	PortalSession(dbc dbctx.Context, from ReturnOrigin) (string, error)
}

type billingService struct {
	log           *logger.Logger
	subscriptions repos.SubscriptionRepo
	portal        billing.PortalClient
	appURL        string
}

// NewBillingService accepts a nil portal when Stripe is not configured.
func NewBillingService(log *logger.Logger, subscriptions repos.SubscriptionRepo, portal billing.PortalClient, appURL string) BillingService {
	return &billingService{
		log:           log.With("service", "BillingService"),
		subscriptions: subscriptions,
		portal:        portal,
		appURL:        strings.TrimSpace(appURL),
	}
}

func (s *billingService) PortalSession(dbc dbctx.Context, from ReturnOrigin) (string, error) {
	userID, err := requestUser(dbc.Ctx)
	if err != nil {
		return "", err
	}
	if s.portal == nil {
		return "", apierr.Internal("billing_not_configured", errBillingNotConfigured)
	}
	sub, err := s.subscriptions.GetByUserID(dbc, userID)
	if err != nil {
		s.log.Warn("subscription lookup failed", "error", err)
	}
	if err != nil || sub == nil || sub.StripeCustomerID == nil || strings.TrimSpace(*sub.StripeCustomerID) == "" {
		return "", apierr.BadRequest("no_billing_account", "No billing account found. Upgrade to a paid plan first.")
	}
	returnURL := portalReturnURL(from, s.appURL)
	sessionURL, err := s.portal.CreatePortalSession(dbc.Ctx, *sub.StripeCustomerID, returnURL)
	if err != nil {
		return "", apierr.Internal("portal_session_failed", err)
	}
	return sessionURL, nil
}

// portalReturnURL picks the first of the Origin header, the Referer's origin,
// the configured app URL and localhost, and points it at the dashboard.
func portalReturnURL(from ReturnOrigin, appURL string) string {
	origin := strings.TrimSpace(from.Origin)
	if origin == "" {
		origin = refererOrigin(from.Referer)
	}
	if origin == "" {
		origin = appURL
	}
	if origin == "" {
		origin = fallbackAppURL
	}
	return strings.TrimSuffix(origin, "/") + "/dashboard"
}

func refererOrigin(referer string) string {
	referer = strings.TrimSpace(referer)
	if referer == "" {
		return ""
	}
	u, err := url.Parse(referer)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
