package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/trisers/shopauth/domain"
)

// AccountRepositoryImpl implements domain.AccountRepository using GORM
type AccountRepositoryImpl struct {
	db *gorm.DB
}

// DBAccount represents the database model for Account (with GORM tags).
// Email is stored lowercase so the unique index doubles as the
// case-insensitive uniqueness check.
type DBAccount struct {
	ID             uint                      `gorm:"primaryKey"`
	FullName       string                    `gorm:"size:255;not null"`
	Email          string                    `gorm:"uniqueIndex;size:255;not null"`
	Phone          string                    `gorm:"uniqueIndex;size:32"`
	PasswordHash   string                    `gorm:"column:password"`
	Role           string                    `gorm:"index;size:32;default:customer"`
	Status         string                    `gorm:"index;size:32;default:pending"`
	EmailVerified  bool                      `gorm:"index"`
	CapabilityIDs  datatypes.JSONSlice[uint] `gorm:"column:capability_ids"`
	OTPHash        string                    `gorm:"column:otp"`
	OTPExpiresAt   *time.Time                `gorm:"column:otp_expire"`
	LastLoginAt    *time.Time                `gorm:"column:last_login"`
	ProfilePicture string                    `gorm:"size:512"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName returns the table name for GORM
func (DBAccount) TableName() string {
	return "accounts"
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *gorm.DB) domain.AccountRepository {
	return &AccountRepositoryImpl{db: db}
}

// Create implements domain.AccountRepository
func (r *AccountRepositoryImpl) Create(ctx context.Context, account *domain.Account) error {
	dbAccount := r.domainToDB(account)
	if err := r.db.WithContext(ctx).Create(dbAccount).Error; err != nil {
		return err
	}
	account.ID = dbAccount.ID
	account.CreatedAt = dbAccount.CreatedAt
	account.UpdatedAt = dbAccount.UpdatedAt
	return nil
}

// FindByEmail implements domain.AccountRepository. Lookup is
// case-insensitive; emails are normalized to lowercase on write.
func (r *AccountRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var dbAccount DBAccount
	err := r.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&dbAccount).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbAccount), nil
}

// FindByPhone implements domain.AccountRepository
func (r *AccountRepositoryImpl) FindByPhone(ctx context.Context, phone string) (*domain.Account, error) {
	var dbAccount DBAccount
	err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&dbAccount).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbAccount), nil
}

// FindByID implements domain.AccountRepository
func (r *AccountRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Account, error) {
	var dbAccount DBAccount
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbAccount).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbAccount), nil
}

// Update implements domain.AccountRepository
func (r *AccountRepositoryImpl) Update(ctx context.Context, account *domain.Account) error {
	dbAccount := r.domainToDB(account)
	// Save writes all columns, including cleared OTP fields
	return r.db.WithContext(ctx).Save(dbAccount).Error
}

func (r *AccountRepositoryImpl) domainToDB(account *domain.Account) *DBAccount {
	return &DBAccount{
		ID:             account.ID,
		FullName:       account.FullName,
		Email:          strings.ToLower(account.Email),
		Phone:          account.Phone,
		PasswordHash:   account.PasswordHash,
		Role:           account.Role,
		Status:         account.Status,
		EmailVerified:  account.EmailVerified,
		CapabilityIDs:  datatypes.NewJSONSlice(account.CapabilityIDs),
		OTPHash:        account.OTPHash,
		OTPExpiresAt:   account.OTPExpiresAt,
		LastLoginAt:    account.LastLoginAt,
		ProfilePicture: account.ProfilePicture,
		CreatedAt:      account.CreatedAt,
		UpdatedAt:      account.UpdatedAt,
	}
}

func (r *AccountRepositoryImpl) dbToDomain(dbAccount *DBAccount) *domain.Account {
	return &domain.Account{
		ID:             dbAccount.ID,
		FullName:       dbAccount.FullName,
		Email:          dbAccount.Email,
		Phone:          dbAccount.Phone,
		PasswordHash:   dbAccount.PasswordHash,
		Role:           dbAccount.Role,
		Status:         dbAccount.Status,
		EmailVerified:  dbAccount.EmailVerified,
		CapabilityIDs:  dbAccount.CapabilityIDs,
		OTPHash:        dbAccount.OTPHash,
		OTPExpiresAt:   dbAccount.OTPExpiresAt,
		LastLoginAt:    dbAccount.LastLoginAt,
		ProfilePicture: dbAccount.ProfilePicture,
		CreatedAt:      dbAccount.CreatedAt,
		UpdatedAt:      dbAccount.UpdatedAt,
	}
}
