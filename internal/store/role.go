package store

import (
	"errors"

	"clubbot/internal/model"

	"gorm.io/gorm"
)

// CreateClubRole inserts a new club role. A taken name yields
// ErrDuplicateName.
func (s *Store) CreateClubRole(name string, description *string) (*model.ClubRole, error) {
	role := model.ClubRole{
		Name:        name,
		Description: description,
	}
	if err := s.db.Create(&role).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateName
		}
		return nil, storageErr("create club role", err)
	}
	return &role, nil
}

// ClubRoleByID returns the role, or nil if no row exists.
func (s *Store) ClubRoleByID(id uint) (*model.ClubRole, error) {
	var role model.ClubRole
	err := s.db.First(&role, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("get club role", err)
	}
	return &role, nil
}

// ClubRoleByName returns the role with the given name, or nil if no row
// exists.
func (s *Store) ClubRoleByName(name string) (*model.ClubRole, error) {
	var role model.ClubRole
	err := s.db.Where("name = ?", name).First(&role).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("get club role by name", err)
	}
	return &role, nil
}

// AllClubRoles lists every club role, ordered by name.
func (s *Store) AllClubRoles() ([]model.ClubRole, error) {
	var roles []model.ClubRole
	if err := s.db.Order("name ASC").Find(&roles).Error; err != nil {
		return nil, storageErr("list club roles", err)
	}
	return roles, nil
}

// DeleteClubRole removes a role and all of its member assignments in one
// transaction. Returns true if the role existed.
func (s *Store) DeleteClubRole(id uint) (bool, error) {
	deleted := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", id).Delete(&model.MemberRole{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.ClubRole{}, id)
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, storageErr("delete club role", err)
	}
	return deleted, nil
}

// AssignRole creates a (user, role) assignment. A duplicate pair yields
// ErrAlreadyAssigned.
func (s *Store) AssignRole(userID int64, roleID uint, assignedBy int64, assignedAt string) (*model.MemberRole, error) {
	assignment := model.MemberRole{
		UserID:     userID,
		RoleID:     roleID,
		AssignedAt: assignedAt,
		AssignedBy: assignedBy,
	}
	if err := s.db.Create(&assignment).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyAssigned
		}
		return nil, storageErr("assign role", err)
	}
	return &assignment, nil
}

// MemberRoleFor returns the assignment row, or nil if no row exists.
func (s *Store) MemberRoleFor(userID int64, roleID uint) (*model.MemberRole, error) {
	var assignment model.MemberRole
	err := s.db.
		Where("user_id = ? AND role_id = ?", userID, roleID).
		First(&assignment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("get member role", err)
	}
	return &assignment, nil
}

// RemoveRole deletes a (user, role) assignment. Returns true if a row was
// removed.
func (s *Store) RemoveRole(userID int64, roleID uint) (bool, error) {
	result := s.db.
		Where("user_id = ? AND role_id = ?", userID, roleID).
		Delete(&model.MemberRole{})
	if result.Error != nil {
		return false, storageErr("remove role", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// RolesForMember lists the club roles assigned to a member, ordered by
// name.
func (s *Store) RolesForMember(userID int64) ([]model.ClubRole, error) {
	var roles []model.ClubRole
	err := s.db.
		Model(&model.ClubRole{}).
		Joins("JOIN member_roles ON member_roles.role_id = club_roles.id").
		Where("member_roles.user_id = ?", userID).
		Order("club_roles.name ASC").
		Find(&roles).Error
	if err != nil {
		return nil, storageErr("list roles for member", err)
	}
	return roles, nil
}

// MembersWithRole lists the user ids holding a role, in assignment order.
func (s *Store) MembersWithRole(roleID uint) ([]int64, error) {
	var userIDs []int64
	err := s.db.
		Model(&model.MemberRole{}).
		Where("role_id = ?", roleID).
		Order("assigned_at ASC").
		Pluck("user_id", &userIDs).Error
	if err != nil {
		return nil, storageErr("list members with role", err)
	}
	return userIDs, nil
}
