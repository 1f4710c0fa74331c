package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rishusinha26/portfolio-backend/internal/domain/entity"
	"github.com/rishusinha26/portfolio-backend/internal/domain/repository"
	"github.com/rishusinha26/portfolio-backend/pkg/identity"
)

// IdentityService keeps one local user record per identity-provider subject.
type IdentityService struct {
	Users  repository.UserRepository
	Logger logrus.FieldLogger

	now func() time.Time
}

func NewIdentityService(users repository.UserRepository, logger logrus.FieldLogger) *IdentityService {
	return &IdentityService{Users: users, Logger: logger}
}

func (s *IdentityService) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now().UTC()
}

// Resolve looks the subject up, creating a user-role record on first sight and
// bumping the last-login time otherwise.
func (s *IdentityService) Resolve(ctx context.Context, claims identity.Claims) (*entity.User, error) {
	if claims.Subject == "" {
		return nil, newError(ErrAuthentication, "Invalid or expired token", identity.ErrInvalidToken)
	}
	now := s.clock()

	u, err := s.Users.GetBySubject(ctx, claims.Subject)
	switch {
	case err == nil:
		if err := s.Users.TouchLastLogin(ctx, u.ID, now); err != nil {
			return nil, Persistence("Failed to update user", err)
		}
		u.LastLogin = now
		return u, nil
	case !errors.Is(err, repository.ErrNotFound):
		return nil, Persistence("Failed to load user", err)
	}

	u = &entity.User{
		SubjectID:   claims.Subject,
		Email:       strings.ToLower(strings.TrimSpace(claims.Email)),
		DisplayName: claims.Name,
		Role:        entity.RoleUser,
		LastLogin:   now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		// a concurrent first request created it; use that record
		if errors.Is(err, repository.ErrConflict) {
			existing, gerr := s.Users.GetBySubject(ctx, claims.Subject)
			if gerr == nil {
				return existing, nil
			}
			err = gerr
		}
		return nil, Persistence("Failed to create user", err)
	}
	s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "subject": u.SubjectID}).Info("created user on first sign-in")
	return u, nil
}

// SetRole changes the role of the user identified by email or subject id.
func (s *IdentityService) SetRole(ctx context.Context, emailOrSubject string, role entity.Role) (*entity.User, error) {
	if !role.Valid() {
		return nil, Validation("Unknown role", map[string]string{"role": "must be one of: user, admin"})
	}
	key := strings.TrimSpace(emailOrSubject)
	if key == "" {
		return nil, Validation("Email or subject id required", nil)
	}

	var (
		u   *entity.User
		err error
	)
	if strings.Contains(key, "@") {
		u, err = s.Users.GetByEmail(ctx, strings.ToLower(key))
	} else {
		u, err = s.Users.GetBySubject(ctx, key)
	}
	if err != nil {
		return nil, fromStore(err, "User not found. Sign in once before promoting.", "Failed to load user")
	}
	if err := s.Users.UpdateRole(ctx, u.ID, role); err != nil {
		return nil, fromStore(err, "User not found", "Failed to update role")
	}
	u.Role = role
	return u, nil
}
