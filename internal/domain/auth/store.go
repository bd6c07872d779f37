package auth

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

type AuthUser struct {
	ID         string
	CompanyID  string
	RoleID     string
	RoleName   string
	Password   string
	MFAEnabled bool
	MFASecret  string
}

func (s *Store) FindActiveUserByEmail(ctx context.Context, email string) (AuthUser, error) {
	var out AuthUser
	err := s.DB.QueryRow(ctx, `
    SELECT u.id, COALESCE(u.company_id::text, ''), u.role_id, r.name, u.password_hash,
           u.mfa_enabled, COALESCE(u.mfa_secret, '')
    FROM users u
    JOIN roles r ON u.role_id = r.id
    WHERE u.email = $1 AND u.status = 'active'
  `, email).Scan(&out.ID, &out.CompanyID, &out.RoleID, &out.RoleName, &out.Password, &out.MFAEnabled, &out.MFASecret)
	return out, err
}

func (s *Store) HasPermission(ctx context.Context, roleID, permission string) (bool, error) {
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM role_permissions rp
    JOIN permissions p ON rp.permission_id = p.id
    WHERE rp.role_id = $1 AND p.key = $2
  `, roleID, permission).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) UpdateLastLogin(ctx context.Context, userID string) error {
	_, err := s.DB.Exec(ctx, "UPDATE users SET last_login = now() WHERE id = $1", userID)
	return err
}

func (s *Store) UpdateMFASecret(ctx context.Context, userID, secret string) error {
	_, err := s.DB.Exec(ctx, "UPDATE users SET mfa_secret = $1, mfa_enabled = false WHERE id = $2", secret, userID)
	return err
}

func (s *Store) MFASecret(ctx context.Context, userID string) (string, error) {
	var secret string
	if err := s.DB.QueryRow(ctx, "SELECT COALESCE(mfa_secret, '') FROM users WHERE id = $1", userID).Scan(&secret); err != nil {
		return "", err
	}
	return secret, nil
}

func (s *Store) SetMFAEnabled(ctx context.Context, userID string, enabled bool) error {
	_, err := s.DB.Exec(ctx, "UPDATE users SET mfa_enabled = $1 WHERE id = $2", enabled, userID)
	return err
}

func (s *Store) UserEmail(ctx context.Context, userID string) (string, error) {
	var email string
	if err := s.DB.QueryRow(ctx, "SELECT email FROM users WHERE id = $1", userID).Scan(&email); err != nil {
		return "", err
	}
	return email, nil
}

func (s *Store) RoleIDByName(ctx context.Context, name string) (string, error) {
	var id string
	if err := s.DB.QueryRow(ctx, "SELECT id FROM roles WHERE name = $1", name).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) CreateInvitation(ctx context.Context, companyID, email, roleID, tokenHash, createdBy string, expires time.Time) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO invitations (company_id, email, role_id, token_hash, created_by, expires_at)
    VALUES ($1,$2,$3,$4,$5,$6)
    RETURNING id
  `, companyID, email, roleID, tokenHash, createdBy, expires).Scan(&id)
	return id, err
}

type Invitation struct {
	ID        string
	CompanyID string
	Email     string
	RoleID    string
}

func (s *Store) PendingInvitation(ctx context.Context, tokenHash string) (Invitation, error) {
	var out Invitation
	err := s.DB.QueryRow(ctx, `
    SELECT id, company_id, email, role_id
    FROM invitations
    WHERE token_hash = $1 AND expires_at > now() AND used_at IS NULL
  `, tokenHash).Scan(&out.ID, &out.CompanyID, &out.Email, &out.RoleID)
	return out, err
}

func (s *Store) MarkInvitationUsed(ctx context.Context, invitationID string) error {
	_, err := s.DB.Exec(ctx, "UPDATE invitations SET used_at = now() WHERE id = $1", invitationID)
	return err
}

func (s *Store) CreateUser(ctx context.Context, companyID, email, passwordHash, roleID string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO users (company_id, email, password_hash, role_id, status)
    VALUES (NULLIF($1, '')::uuid, $2, $3, $4, 'active')
    RETURNING id
  `, companyID, email, passwordHash, roleID).Scan(&id)
	return id, err
}
