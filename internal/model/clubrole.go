package model

// ClubRole is an organizational label managed by HR, independent of any
// platform-native role. Deleting a role removes its member assignments.
type ClubRole struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"uniqueIndex;not null" json:"name"`
	Description *string `json:"description"`

	Assignments []MemberRole `gorm:"foreignKey:RoleID;constraint:OnDelete:CASCADE" json:"-"`
}

// MemberRole is the assignment edge between a member and a ClubRole. The
// composite primary key rejects a duplicate assignment at the storage
// layer.
type MemberRole struct {
	UserID     int64  `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	RoleID     uint   `gorm:"primaryKey;autoIncrement:false" json:"role_id"`
	AssignedAt string `gorm:"not null" json:"assigned_at"`
	AssignedBy int64  `gorm:"not null" json:"assigned_by"`
}
