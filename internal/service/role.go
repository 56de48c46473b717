package service

import (
	"time"

	"clubbot/internal/model"
	"clubbot/internal/store"
	"clubbot/internal/timeutil"

	"github.com/patrickmn/go-cache"
)

const (
	roleOverviewCacheKey = "roles_overview"
	roleCacheTTL         = 30 * time.Second
	roleCacheCleanup     = time.Minute
)

// RoleOverview is a role together with its member count, as served to
// listings.
type RoleOverview struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	MemberCount int     `json:"member_count"`
}

// RoleService wraps club role and assignment storage, injecting
// assignment timestamps. Duplicate detection lives in the store; callers
// wanting friendlier messaging check IsMemberAssigned first. The
// overview cache is invalidated by every mutation, whichever surface
// it came through.
type RoleService struct {
	store *store.Store
	cache *cache.Cache
}

func NewRoleService(s *store.Store) *RoleService {
	return &RoleService{
		store: s,
		cache: cache.New(roleCacheTTL, roleCacheCleanup),
	}
}

// CreateRole creates a new club role. A taken name yields
// store.ErrDuplicateName.
func (s *RoleService) CreateRole(name string, description *string) (*model.ClubRole, error) {
	role, err := s.store.CreateClubRole(name, description)
	if err != nil {
		return nil, err
	}
	s.cache.Delete(roleOverviewCacheKey)
	return role, nil
}

// RoleByName returns a role, or nil if it does not exist.
func (s *RoleService) RoleByName(name string) (*model.ClubRole, error) {
	return s.store.ClubRoleByName(name)
}

// RoleByID returns a role, or nil if it does not exist.
func (s *RoleService) RoleByID(id uint) (*model.ClubRole, error) {
	return s.store.ClubRoleByID(id)
}

// AllRoles lists every club role, ordered by name.
func (s *RoleService) AllRoles() ([]model.ClubRole, error) {
	return s.store.AllClubRoles()
}

// Overview lists every club role with its member count, ordered by
// name. Results are cached; any role or assignment mutation through
// this service invalidates the cache.
func (s *RoleService) Overview() ([]RoleOverview, error) {
	if cached, found := s.cache.Get(roleOverviewCacheKey); found {
		return cached.([]RoleOverview), nil
	}

	roles, err := s.store.AllClubRoles()
	if err != nil {
		return nil, err
	}

	overview := make([]RoleOverview, 0, len(roles))
	for _, role := range roles {
		members, err := s.store.MembersWithRole(role.ID)
		if err != nil {
			return nil, err
		}
		overview = append(overview, RoleOverview{
			ID:          role.ID,
			Name:        role.Name,
			Description: role.Description,
			MemberCount: len(members),
		})
	}

	s.cache.Set(roleOverviewCacheKey, overview, cache.DefaultExpiration)
	return overview, nil
}

// DeleteRole removes a role and its assignments. Returns true if the role
// existed.
func (s *RoleService) DeleteRole(id uint) (bool, error) {
	deleted, err := s.store.DeleteClubRole(id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.cache.Delete(roleOverviewCacheKey)
	}
	return deleted, nil
}

// AssignRole assigns a club role to a member. A duplicate assignment
// yields store.ErrAlreadyAssigned.
func (s *RoleService) AssignRole(userID int64, roleID uint, assignedBy int64) (*model.MemberRole, error) {
	assignment, err := s.store.AssignRole(userID, roleID, assignedBy, timeutil.NowISO())
	if err != nil {
		return nil, err
	}
	s.cache.Delete(roleOverviewCacheKey)
	return assignment, nil
}

// RemoveRole removes a member's assignment. Returns true if it existed.
func (s *RoleService) RemoveRole(userID int64, roleID uint) (bool, error) {
	removed, err := s.store.RemoveRole(userID, roleID)
	if err != nil {
		return false, err
	}
	if removed {
		s.cache.Delete(roleOverviewCacheKey)
	}
	return removed, nil
}

// MemberRoles lists the club roles assigned to a member, ordered by name.
func (s *RoleService) MemberRoles(userID int64) ([]model.ClubRole, error) {
	return s.store.RolesForMember(userID)
}

// RoleMembers lists the user ids holding a role, in assignment order.
func (s *RoleService) RoleMembers(roleID uint) ([]int64, error) {
	return s.store.MembersWithRole(roleID)
}

// IsMemberAssigned reports whether a member holds a role.
func (s *RoleService) IsMemberAssigned(userID int64, roleID uint) (bool, error) {
	assignment, err := s.store.MemberRoleFor(userID, roleID)
	if err != nil {
		return false, err
	}
	return assignment != nil, nil
}
