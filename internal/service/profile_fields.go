package service

import (
	"usherhub/internal/entity"

	"gorm.io/datatypes"
)

// ProfileUpdate is the whitelisted projection shared by the self-update and
// admin-update paths. Pointer fields distinguish "absent" from zero values.
type ProfileUpdate struct {
	Bio          *string
	Experience   *string
	Skills       []string
	Availability *bool
	Phone        *string
	Location     *string
}

// UserUpdate wraps a profile update with the account-level fields only admins
// may touch. Role and password never appear here; callers that receive them
// report them as rejected fields instead of silently dropping them.
type UserUpdate struct {
	Name               *string
	IsActive           *bool
	IsVisibleOnWebsite *bool
	Profile            ProfileUpdate
}

// adminOnlyFields are accepted from admins and rejected from self-updates.
var adminOnlyFields = map[string]bool{
	"isActive":           true,
	"isVisibleOnWebsite": true,
}

// forbiddenFields can never be changed through an update payload.
var forbiddenFields = map[string]bool{
	"role":     true,
	"password": true,
	"email":    true,
}

// RejectedFields reports which of the raw payload keys an update path must
// refuse. admin selects between the two whitelists.
func RejectedFields(keys []string, admin bool) []string {
	var rejected []string
	for _, key := range keys {
		if forbiddenFields[key] {
			rejected = append(rejected, key)
			continue
		}
		if !admin && adminOnlyFields[key] {
			rejected = append(rejected, key)
		}
	}
	return rejected
}

// Apply copies the accepted fields onto the user. The profile image and its
// rejection flags are owned by the upload and moderation flows, never by a
// field update.
func (u UserUpdate) Apply(user *entity.User) {
	if u.Name != nil {
		user.Name = *u.Name
	}
	if u.IsActive != nil {
		user.IsActive = *u.IsActive
	}
	if u.IsVisibleOnWebsite != nil {
		user.IsVisibleOnWebsite = *u.IsVisibleOnWebsite
	}
	u.Profile.apply(&user.Profile)
}

func (p ProfileUpdate) apply(profile *entity.Profile) {
	if p.Bio != nil {
		profile.Bio = *p.Bio
	}
	if p.Experience != nil {
		profile.Experience = *p.Experience
	}
	if p.Skills != nil {
		profile.Skills = datatypes.NewJSONSlice(p.Skills)
	}
	if p.Availability != nil {
		profile.Availability = *p.Availability
	}
	if p.Phone != nil {
		profile.Phone = *p.Phone
	}
	if p.Location != nil {
		profile.Location = *p.Location
	}
}
