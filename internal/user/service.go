package user

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/barriolink/community-events-backend/internal/apperrors"
	"github.com/barriolink/community-events-backend/internal/auditlog"
)

type Service interface {
	Reconcile(ctx context.Context, externalID, email, displayName, ip string) (*User, error)
	ResolveByFirebaseUID(ctx context.Context, uid string) (*User, error)
}

type service struct {
	repo     Repository
	auditSvc auditlog.Service
}

func NewService(repo Repository, auditSvc auditlog.Service) Service {
	return &service{repo: repo, auditSvc: auditSvc}
}

// ===========================
// 🔄 Reconcile maps an external identity onto exactly one local user row.
//
// Three-way branch: match by external ID first, then by email (a user may be
// provisioned by email before ever authenticating, or switch provider
// accounts while keeping the same address), else create.
func (s *service) Reconcile(ctx context.Context, externalID, email, displayName, ip string) (*User, error) {
	if externalID == "" {
		return nil, apperrors.Validationf("externalId is required")
	}
	if email == "" {
		return nil, apperrors.Validationf("email is required")
	}

	u, err := s.reconcile(ctx, externalID, email, displayName)

	details := map[string]interface{}{"firebase_uid": externalID, "email": email}
	if err != nil {
		details["error"] = err.Error()
		_ = s.auditSvc.LogAction(ctx, nil, nil, auditlog.ActionUserSynced, details, ip, "failure")
		return nil, err
	}

	_ = s.auditSvc.LogAction(ctx, &u.ID, nil, auditlog.ActionUserSynced, details, ip, "success")
	return u, nil
}

func (s *service) reconcile(ctx context.Context, externalID, email, displayName string) (*User, error) {
	// 1. Known external identity: refresh mutable profile fields
	existing, err := s.repo.FindByFirebaseUID(ctx, externalID)
	if err == nil {
		changed := false
		if email != "" && existing.Email != email {
			existing.Email = email
			changed = true
		}
		if displayName != "" && (existing.DisplayName == nil || *existing.DisplayName != displayName) {
			existing.DisplayName = &displayName
			changed = true
		}
		if changed {
			if err := s.repo.Update(ctx, existing); err != nil {
				return nil, err
			}
		}
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 2. Unseen identity but known email: attach the identity to that row
	byEmail, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		byEmail.FirebaseUID = externalID
		if displayName != "" {
			byEmail.DisplayName = &displayName
		}
		if err := s.repo.Update(ctx, byEmail); err != nil {
			return nil, err
		}
		return byEmail, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 3. First contact: create the row
	u := &User{
		FirebaseUID: externalID,
		Email:       email,
	}
	if displayName != "" {
		u.DisplayName = &displayName
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// ResolveByFirebaseUID returns the local row for a verified identity, or
// NotFound when the caller never synced.
func (s *service) ResolveByFirebaseUID(ctx context.Context, uid string) (*User, error) {
	u, err := s.repo.FindByFirebaseUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("user with uid %s", uid)
		}
		return nil, err
	}
	return u, nil
}
