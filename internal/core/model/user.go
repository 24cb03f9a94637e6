package model

import (
	"strings"
	"time"

	"github.com/agenthands/distnode/internal/core/common"
)

type User struct {
	UserID    string    `json:"userID"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
	Bio       *string   `json:"bio"`
	Avatar    *string   `json:"avatar"`
}

type Profile struct {
	User  User       `json:"user"`
	Posts []PostView `json:"posts"`
}

// ProfileInput edits bio and/or avatar. Nil fields are left unchanged.
type ProfileInput struct {
	Bio    *string `json:"bio"`
	Avatar *string `json:"avatar"`
}

func (in ProfileInput) Validate() error {
	if blank(in.Bio) && blank(in.Avatar) {
		return common.Validation("Either bio or avatar must be provided")
	}
	return nil
}

// Changes returns the non-blank fields keyed by User property name. A blank
// field is left as stored.
func (in ProfileInput) Changes() map[string]string {
	changes := make(map[string]string, 2)
	if !blank(in.Bio) {
		changes["bio"] = *in.Bio
	}
	if !blank(in.Avatar) {
		changes["avatar"] = *in.Avatar
	}
	return changes
}

func blank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}
