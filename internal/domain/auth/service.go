package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pquerna/otp/totp"
)

const invitationTTL = 7 * 24 * time.Hour

type Service struct {
	Store *Store
}

func NewService(store *Store) *Service {
	return &Service{Store: store}
}

type LoginResult struct {
	User AuthUser
}

// Login verifies credentials and, when MFA is enabled for the user, the TOTP
// code. The caller issues the token; this layer never sees the JWT secret.
func (s *Service) Login(ctx context.Context, email, password, mfaCode string) (LoginResult, error) {
	user, err := s.Store.FindActiveUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}
	if err := CheckPassword(user.Password, password); err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	if user.MFAEnabled {
		if mfaCode == "" {
			return LoginResult{}, ErrMFARequired
		}
		if !totp.Validate(mfaCode, user.MFASecret) {
			return LoginResult{}, ErrMFAInvalid
		}
	}

	if err := s.Store.UpdateLastLogin(ctx, user.ID); err != nil {
		return LoginResult{}, err
	}
	return LoginResult{User: user}, nil
}

type MFASetup struct {
	Secret string `json:"secret"`
	URL    string `json:"url"`
}

func (s *Service) SetupMFA(ctx context.Context, userID string) (MFASetup, error) {
	email, err := s.Store.UserEmail(ctx, userID)
	if err != nil {
		return MFASetup{}, err
	}

	key, err := totp.Generate(totp.GenerateOpts{Issuer: "Nomina", AccountName: email})
	if err != nil {
		return MFASetup{}, err
	}
	if err := s.Store.UpdateMFASecret(ctx, userID, key.Secret()); err != nil {
		return MFASetup{}, err
	}
	return MFASetup{Secret: key.Secret(), URL: key.URL()}, nil
}

func (s *Service) VerifyMFA(ctx context.Context, userID, code string) error {
	secret, err := s.Store.MFASecret(ctx, userID)
	if err != nil {
		return err
	}
	if secret == "" || !totp.Validate(code, secret) {
		return ErrMFAInvalid
	}
	return s.Store.SetMFAEnabled(ctx, userID, true)
}

type InvitationResult struct {
	ID    string
	Token string
	Email string
}

// Invite provisions a pending account. The raw token goes out by email only;
// the database keeps its hash.
func (s *Service) Invite(ctx context.Context, companyID, email, roleName, createdBy string) (InvitationResult, error) {
	roleID, err := s.Store.RoleIDByName(ctx, roleName)
	if err != nil {
		return InvitationResult{}, err
	}

	token := uuid.NewString()
	id, err := s.Store.CreateInvitation(ctx, companyID, strings.ToLower(strings.TrimSpace(email)), roleID, hashToken(token), createdBy, time.Now().Add(invitationTTL))
	if err != nil {
		return InvitationResult{}, err
	}
	return InvitationResult{ID: id, Token: token, Email: email}, nil
}

func (s *Service) AcceptInvitation(ctx context.Context, token, password string) (string, error) {
	invitation, err := s.Store.PendingInvitation(ctx, hashToken(token))
	if err != nil {
		return "", ErrInvitationInvalid
	}

	hash, err := HashPassword(password)
	if err != nil {
		return "", err
	}

	userID, err := s.Store.CreateUser(ctx, invitation.CompanyID, invitation.Email, hash, invitation.RoleID)
	if err != nil {
		return "", err
	}
	if err := s.Store.MarkInvitationUsed(ctx, invitation.ID); err != nil {
		return "", err
	}
	return userID, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
