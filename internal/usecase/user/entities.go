package user

import (
	"encoding/json"

	"asset-approval-backend/internal/domain/paging"
	domain "asset-approval-backend/internal/domain/user"
)

type SocialNetwork string

const (
	Facebook  SocialNetwork = "FACEBOOK"
	Instagram SocialNetwork = "INSTAGRAM"
	Twitter   SocialNetwork = "TWITTER"
	LinkedIn  SocialNetwork = "LINKEDIN"
)

func (n SocialNetwork) Valid() bool {
	switch n {
	case Facebook, Instagram, Twitter, LinkedIn:
		return true
	}
	return false
}

type SocialMedia struct {
	Name SocialNetwork `json:"name"`
	URL  string        `json:"url"`
}

type RegisterInput struct {
	FirstName string
	Email     string
	Role      domain.Role
}

type ProfileInput struct {
	FirstName   string
	LastName    string
	Image       *string
	SocialMedia []SocialMedia
}

type DTO struct {
	ID          string        `json:"id"`
	FirstName   string        `json:"firstName"`
	LastName    string        `json:"lastName"`
	FullName    string        `json:"fullName"`
	Email       string        `json:"email"`
	Role        domain.Role   `json:"role"`
	RoleLabel   string        `json:"roleLabel"`
	Image       *string       `json:"image"`
	SocialMedia []SocialMedia `json:"socialMedia"`
	IsActive    bool          `json:"isActive"`
	CreatedAt   string        `json:"createdAt"`
	UpdatedAt   string        `json:"updatedAt"`
}

type ListResult struct {
	Items []DTO
	Meta  paging.Meta
}

func (u *Usecase) toDTO(usr *domain.User) DTO {
	social := []SocialMedia{}
	if len(usr.SocialMedia) > 0 {
		if err := json.Unmarshal(usr.SocialMedia, &social); err != nil {
			u.log.WithError(err).WithField("user_id", usr.ID).Warn("unreadable social media column")
			social = []SocialMedia{}
		}
	}
	return DTO{
		ID:          usr.ID,
		FirstName:   usr.FirstName,
		LastName:    usr.LastName,
		FullName:    usr.FullName(),
		Email:       usr.Email,
		Role:        usr.Role,
		RoleLabel:   usr.Role.Label(),
		Image:       usr.Image,
		SocialMedia: social,
		IsActive:    usr.IsActive,
		CreatedAt:   u.fmt.DateTime(usr.CreatedAt),
		UpdatedAt:   u.fmt.DateTime(usr.UpdatedAt),
	}
}
