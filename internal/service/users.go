package service

import (
	"bitwise74/contacts-api/internal/model"
	"bitwise74/contacts-api/pkg/security"
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

type UserFields struct {
	Username string
	Email    string
	Password string
}

type UserService struct {
	DB    *gorm.DB
	Argon *security.ArgonHash
}

func NewUserService(db *gorm.DB, argon *security.ArgonHash) *UserService {
	return &UserService{DB: db, Argon: argon}
}

// GravatarURL builds the default avatar of an account from its email
func GravatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return "https://www.gravatar.com/avatar/" + hex.EncodeToString(sum[:]) + "?d=identicon"
}

// Create stores a new unconfirmed account
func (s *UserService) Create(ctx context.Context, f UserFields) (*model.User, error) {
	_, err := s.FindByEmail(ctx, f.Email)
	if err == nil {
		return nil, ErrDuplicateAccount
	}

	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	hash, err := s.Argon.GenerateFromPassword(f.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password, %w", err)
	}

	avatar := GravatarURL(f.Email)

	u := &model.User{
		Username: f.Username,
		Email:    f.Email,
		Password: hash,
		Avatar:   &avatar,
	}

	if err := s.DB.WithContext(ctx).Create(u).Error; err != nil {
		// Someone else registered the same email in between
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateAccount
		}

		return nil, fmt.Errorf("failed to create user, %w", err)
	}

	return u, nil
}

func (s *UserService) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User

	err := s.DB.WithContext(ctx).
		Where("email = ?", email).
		First(&u).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to fetch user, %w", err)
	}

	return &u, nil
}

// Authenticate checks a password login. An unconfirmed account is
// rejected before its password is looked at.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	u, err := s.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}

		return nil, err
	}

	if !u.Confirmed {
		return nil, ErrNotConfirmed
	}

	ok, err := s.Argon.VerifyPasswd(password, u.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password, %w", err)
	}

	if !ok {
		return nil, ErrInvalidCredentials
	}

	return u, nil
}

// SetConfirmed marks the account as confirmed. Confirming twice is fine.
func (s *UserService) SetConfirmed(ctx context.Context, email string) error {
	r := s.DB.WithContext(ctx).
		Model(&model.User{}).
		Where("email = ?", email).
		Update("confirmed", true)
	if r.Error != nil {
		return fmt.Errorf("failed to confirm user, %w", r.Error)
	}

	if r.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// RotateRefreshToken overwrites the stored refresh token. A nil token
// logs the user out.
func (s *UserService) RotateRefreshToken(ctx context.Context, userID uint, token *string) error {
	err := s.DB.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", userID).
		Update("refresh_token", token).
		Error
	if err != nil {
		return fmt.Errorf("failed to update refresh token, %w", err)
	}

	return nil
}

func (s *UserService) SetAvatar(ctx context.Context, email, url string) (*model.User, error) {
	var u model.User

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("email = ?", email).First(&u).Error; err != nil {
			return err
		}

		u.Avatar = &url
		return tx.Model(&u).Update("avatar", url).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to update avatar, %w", err)
	}

	return &u, nil
}
