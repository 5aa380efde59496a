// Package identity resolves the acting user for checkout-style flows:
// session user, returning guest matched by phone-derived pseudo-email,
// upgraded anonymous session, or freshly minted guest.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/salehkamalkamel/rofida-furniture-sub001/internal/domain"
	userrepo "github.com/salehkamalkamel/rofida-furniture-sub001/internal/repository/user"
)

type userRepo interface {
	Create(ctx context.Context, in userrepo.CreateInput) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	SetGuestIdentity(ctx context.Context, id, name, email string) (*domain.User, error)
}

// GuestContact is the optional contact block from a guest checkout form.
type GuestContact struct {
	Phone    string
	FullName string
}

type Resolver struct {
	users  userRepo
	logger logrus.FieldLogger
}

func New(users userrepo.Repository, logger logrus.FieldLogger) *Resolver {
	if logger == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		logger = l
	}
	return &Resolver{users: users, logger: logger}
}

// GuestEmail derives the deterministic pseudo-email for a phone number.
func GuestEmail(phone string) string {
	return fmt.Sprintf("%s@%s", strings.TrimSpace(phone), domain.GuestEmailDomain)
}

// Resolve returns exactly one user id to attribute subsequent writes to.
// Priority: returning guest by phone, upgraded anonymous session, newly
// minted guest, then the session itself. No write happens before a
// failure is ruled out.
func (r *Resolver) Resolve(ctx context.Context, sess *domain.Session, contact *GuestContact) (string, error) {
	phone := ""
	if contact != nil {
		phone = strings.TrimSpace(contact.Phone)
	}

	if phone != "" {
		email := GuestEmail(phone)
		existing, err := r.users.GetByEmail(ctx, email)
		switch {
		case err == nil:
			// Returning guest: repeat checkouts reunite under one row
			// without a login.
			return existing.ID, nil
		case !errors.Is(err, domain.ErrNotFound):
			return "", err
		}

		if sess != nil && sess.IsAnonymous {
			// Upgrade in place so the anonymous session keeps its cart
			// and history under the same id.
			upgraded, err := r.users.SetGuestIdentity(ctx, sess.UserID, contact.FullName, email)
			if err != nil {
				return "", err
			}
			return upgraded.ID, nil
		}

		if sess == nil {
			minted, err := r.users.Create(ctx, userrepo.CreateInput{
				Name:        contact.FullName,
				Email:       email,
				IsAnonymous: true,
			})
			if err != nil {
				return "", err
			}
			r.logger.WithField("user_id", minted.ID).Info("identity: minted guest user")
			return minted.ID, nil
		}
	}

	if sess != nil && sess.UserID != "" {
		return sess.UserID, nil
	}

	// Unreachable under correct client behavior, checked anyway so no
	// write is ever attributed to nobody.
	return "", domain.ErrIdentityResolution
}
