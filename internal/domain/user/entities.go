package user

import (
	"errors"
	"strings"
	"time"

	"gorm.io/datatypes"
)

var (
	ErrNotFound     = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
	ErrInvalidLogin = errors.New("invalid credentials")
)

type Role string

const (
	RoleStaff       Role = "STAFF"
	RoleGA          Role = "GA"
	RoleCoordinator Role = "COORDINATOR"
	RoleLead        Role = "LEAD"
	RoleManager     Role = "MANAGER"
)

// ApproverRoles are the roles that may be designated as signers.
var ApproverRoles = []Role{RoleManager, RoleLead, RoleCoordinator, RoleGA}

func (r Role) Valid() bool {
	switch r {
	case RoleStaff, RoleGA, RoleCoordinator, RoleLead, RoleManager:
		return true
	}
	return false
}

func (r Role) Label() string {
	switch r {
	case RoleStaff:
		return "Staff"
	case RoleGA:
		return "General Affairs"
	case RoleCoordinator:
		return "Coordinator"
	case RoleLead:
		return "Team Lead"
	case RoleManager:
		return "Manager"
	}
	return string(r)
}

// Table: users
type User struct {
	ID          string         `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	FirstName   string         `gorm:"column:first_name;size:100;not null;index" json:"firstName"`
	LastName    string         `gorm:"column:last_name;size:100" json:"lastName"`
	Email       string         `gorm:"column:email;size:191;not null;uniqueIndex" json:"email"`
	Password    string         `gorm:"column:password;size:255;not null" json:"-"`
	Role        Role           `gorm:"column:role;size:20;not null;default:STAFF;index" json:"role"`
	Image       *string        `gorm:"column:image;type:text" json:"image"`
	SocialMedia datatypes.JSON `gorm:"column:social_media" json:"socialMedia"`
	IsActive    bool           `gorm:"column:is_active;not null;default:false" json:"isActive"`
	IsDeleted   bool           `gorm:"column:is_deleted;not null;default:false;index" json:"-"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string { return "users" }

func (u User) FullName() string { return strings.TrimSpace(u.FirstName + " " + u.LastName) }

// Actor is the authenticated caller as decoded from the bearer token.
type Actor struct {
	ID    string
	Email string
	Role  Role
}

func (a Actor) IsGA() bool { return a.Role == RoleGA }
