package store

import (
	"errors"

	"clubbot/internal/model"

	"gorm.io/gorm"
)

// CreateAccount inserts a dashboard account; the model hook hashes the
// password. A taken username yields ErrDuplicateName.
func (s *Store) CreateAccount(account *model.Account) error {
	if err := s.db.Create(account).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateName
		}
		return storageErr("create account", err)
	}
	return nil
}

// AccountByUsername returns the account, or nil if no row exists.
func (s *Store) AccountByUsername(username string) (*model.Account, error) {
	var account model.Account
	err := s.db.Where("username = ?", username).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("get account by username", err)
	}
	return &account, nil
}

// AccountByID returns the account, or nil if no row exists.
func (s *Store) AccountByID(id uint) (*model.Account, error) {
	var account model.Account
	err := s.db.First(&account, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("get account", err)
	}
	return &account, nil
}

// SaveAccount persists field updates on an existing account.
func (s *Store) SaveAccount(account *model.Account) error {
	if err := s.db.Save(account).Error; err != nil {
		return storageErr("save account", err)
	}
	return nil
}

// ListAccounts returns all dashboard accounts.
func (s *Store) ListAccounts() ([]model.Account, error) {
	var accounts []model.Account
	if err := s.db.Find(&accounts).Error; err != nil {
		return nil, storageErr("list accounts", err)
	}
	return accounts, nil
}

// AccountCount returns the number of dashboard accounts.
func (s *Store) AccountCount() (int64, error) {
	var count int64
	if err := s.db.Model(&model.Account{}).Count(&count).Error; err != nil {
		return 0, storageErr("count accounts", err)
	}
	return count, nil
}
