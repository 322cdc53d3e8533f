package service

import (
	"context"

	"github.com/onevoker/TimeTracker/internal/core/domain"
	"github.com/onevoker/TimeTracker/internal/core/ports"
)

// VerifyService holds the ownership rules checked before mutations. Admins
// get no blanket bypass: only VerifySameUserOrAdmin consults ROLE_Admin.
type VerifyService struct {
	owners ports.RecordOwnerLookup
}

func NewVerifyService(owners ports.RecordOwnerLookup) *VerifyService {
	return &VerifyService{owners: owners}
}

// VerifySameUser fails unless p acts on its own user id.
func (s *VerifyService) VerifySameUser(targetUserID int, p *domain.Principal) error {
	if p == nil {
		return domain.ErrUnauthenticated
	}
	if p.UserID != targetUserID {
		return domain.ErrUnauthorized
	}
	return nil
}

// VerifySameUserOrAdmin passes for self-access first, and only then for
// holders of ROLE_Admin.
func (s *VerifyService) VerifySameUserOrAdmin(targetUserID int, p *domain.Principal) error {
	err := s.VerifySameUser(targetUserID, p)
	if err == nil || p == nil {
		return err
	}
	if p.HasRole(domain.RoleAdmin) {
		return nil
	}
	return domain.ErrUnauthorized
}

// VerifyUserByRecordID guards record updates.
func (s *VerifyService) VerifyUserByRecordID(ctx context.Context, recordID int, p *domain.Principal) error {
	return s.verifyRecordOwner(ctx, recordID, p)
}

// VerifyUserForDeleteRecord guards record deletion.
func (s *VerifyService) VerifyUserForDeleteRecord(ctx context.Context, recordID int, p *domain.Principal) error {
	return s.verifyRecordOwner(ctx, recordID, p)
}

func (s *VerifyService) verifyRecordOwner(ctx context.Context, recordID int, p *domain.Principal) error {
	if p == nil {
		return domain.ErrUnauthenticated
	}
	ownerID, err := s.owners.OwnerOf(ctx, recordID)
	if err != nil {
		return err
	}
	return s.VerifySameUser(ownerID, p)
}

// HasRole reports whether p was granted role. A nil principal holds no roles.
func (s *VerifyService) HasRole(p *domain.Principal, role domain.Role) bool {
	return p.HasRole(role)
}
