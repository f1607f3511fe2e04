package menu

import (
	"context"
	"errors"

	"github.com/colaai/backend/internal/domain/identity"
	"github.com/colaai/backend/internal/domain/shared"
	"github.com/colaai/backend/internal/domain/tenant"
	"github.com/colaai/backend/internal/infrastructure/cache"
	"go.uber.org/zap"
)

// RevalidateOutcome says what a revalidation request actually did.
// Callers that skipped (no session, no slug) are not errors; the
// outcome makes the skip observable instead of silently returning.
type RevalidateOutcome string

const (
	OutcomeInvalidated      RevalidateOutcome = "invalidated"
	OutcomeSkippedNoSession RevalidateOutcome = "skipped_no_session"
	OutcomeSkippedNoSlug    RevalidateOutcome = "skipped_no_slug"
)

// TagInvalidator drops a cache entry by its tag.
type TagInvalidator interface {
	InvalidateTag(ctx context.Context, tag string) error
}

// RevalidateService invalidates a tenant's cached public menu.
type RevalidateService struct {
	tenants tenant.Repository
	cache   TagInvalidator
	logger  *zap.Logger
}

// NewRevalidateService creates a new RevalidateService
func NewRevalidateService(tenants tenant.Repository, invalidator TagInvalidator, logger *zap.Logger) *RevalidateService {
	return &RevalidateService{
		tenants: tenants,
		cache:   invalidator,
		logger:  logger,
	}
}

// RevalidateTenantMenu drops the menu cache tag for the session's
// tenant. Unauthenticated callers and tenants without a public slug
// skip without touching the cache. Invalidation is idempotent.
func (s *RevalidateService) RevalidateTenantMenu(ctx context.Context, session *identity.Session) (RevalidateOutcome, error) {
	if session == nil || session.TenantID == nil {
		return OutcomeSkippedNoSession, nil
	}

	tn, err := s.tenants.FindByID(ctx, *session.TenantID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return OutcomeSkippedNoSlug, nil
		}
		return "", err
	}
	if tn.PublicSlug == "" {
		return OutcomeSkippedNoSlug, nil
	}

	tag := cache.MenuTag(tn.PublicSlug)
	if err := s.cache.InvalidateTag(ctx, tag); err != nil {
		return "", err
	}

	s.logger.Info("Revalidated tenant menu",
		zap.String("tenant_id", tn.ID.String()),
		zap.String("tag", tag))
	return OutcomeInvalidated, nil
}
