package service

import (
	"bitwise74/contacts-api/internal/model"
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ContactFields is everything a caller controls on a contact
type ContactFields struct {
	Name        string
	Surname     string
	Email       string
	PhoneNumber string
	Birthday    model.Date
	Description string
}

// Columns overwritten on update. Listed explicitly so zero values are
// written too.
var contactColumns = []string{"name", "surname", "email", "phone_number", "birthday", "description", "updated_at"}

// ContactService runs every contact query scoped to the owning user
type ContactService struct {
	DB *gorm.DB
	// Clock used for birthday lookups
	Now func() time.Time
}

func NewContactService(db *gorm.DB) *ContactService {
	return &ContactService{DB: db, Now: time.Now}
}

func (s *ContactService) owned(ctx context.Context, owner uint) *gorm.DB {
	return s.DB.WithContext(ctx).Where("user_id = ?", owner)
}

// List returns up to limit contacts after skipping offset, oldest first.
// Bounds are checked by the caller.
func (s *ContactService) List(ctx context.Context, owner uint, limit, offset int) ([]model.Contact, error) {
	contacts := []model.Contact{}

	err := s.owned(ctx, owner).
		Order("id asc").
		Offset(offset).
		Limit(limit).
		Find(&contacts).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts, %w", err)
	}

	return contacts, nil
}

func (s *ContactService) Get(ctx context.Context, owner, id uint) (*model.Contact, error) {
	var c model.Contact

	err := s.owned(ctx, owner).
		Where("id = ?", id).
		First(&c).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to fetch contact, %w", err)
	}

	return &c, nil
}

// ListByField returns every contact whose selected column equals the
// filter value exactly
func (s *ContactService) ListByField(ctx context.Context, owner uint, f FilterBy) ([]model.Contact, error) {
	column := f.Field.column()
	if column == "" {
		return nil, ErrNoFilter
	}

	contacts := []model.Contact{}

	err := s.owned(ctx, owner).
		Where(column+" = ?", f.Value).
		Order("id asc").
		Find(&contacts).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to search contacts, %w", err)
	}

	return contacts, nil
}

// UpcomingBirthdays returns contacts whose birthday falls within the next
// days days, today included
func (s *ContactService) UpcomingBirthdays(ctx context.Context, owner uint, days int) ([]model.Contact, error) {
	if days < 0 {
		return nil, ErrNegativeWindow
	}

	var all []model.Contact

	err := s.owned(ctx, owner).
		Order("id asc").
		Find(&all).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch contacts, %w", err)
	}

	today := s.Now()
	matched := []model.Contact{}

	for _, c := range all {
		if birthdayInWindow(c.Birthday, today, days) {
			matched = append(matched, c)
		}
	}

	return matched, nil
}

func (s *ContactService) Create(ctx context.Context, owner uint, f ContactFields) (*model.Contact, error) {
	c := &model.Contact{
		Name:        f.Name,
		Surname:     f.Surname,
		Email:       f.Email,
		PhoneNumber: f.PhoneNumber,
		Birthday:    f.Birthday,
		Description: f.Description,
		UserID:      owner,
	}

	if err := s.DB.WithContext(ctx).Create(c).Error; err != nil {
		return nil, fmt.Errorf("failed to create contact, %w", err)
	}

	return c, nil
}

// Update replaces every field of the contact. Nothing is written when
// the contact isn't found.
func (s *ContactService) Update(ctx context.Context, owner, id uint, f ContactFields) (*model.Contact, error) {
	var c model.Contact

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", id, owner).First(&c).Error; err != nil {
			return err
		}

		c.Name = f.Name
		c.Surname = f.Surname
		c.Email = f.Email
		c.PhoneNumber = f.PhoneNumber
		c.Birthday = f.Birthday
		c.Description = f.Description

		return tx.Model(&c).Select(contactColumns).Updates(&c).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to update contact, %w", err)
	}

	return &c, nil
}

// Delete removes the contact and returns it as it was before deletion
func (s *ContactService) Delete(ctx context.Context, owner, id uint) (*model.Contact, error) {
	var c model.Contact

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", id, owner).First(&c).Error; err != nil {
			return err
		}

		return tx.Delete(&model.Contact{}, c.ID).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to delete contact, %w", err)
	}

	return &c, nil
}
