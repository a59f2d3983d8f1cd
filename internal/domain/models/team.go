package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Team member types. The About page groups founders apart from members.
const (
	TeamTypeFounder   = "founder"
	TeamTypeCoFounder = "co_founder"
	TeamTypeMember    = "member"
)

// TeamTypes lists the accepted TeamMember.Type values.
var TeamTypes = []string{TeamTypeFounder, TeamTypeCoFounder, TeamTypeMember}

// MemberSocial holds a team member's profile links.
type MemberSocial struct {
	LinkedIn string `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
	Facebook string `bson:"facebook,omitempty" json:"facebook,omitempty"`
	Twitter  string `bson:"twitter,omitempty" json:"twitter,omitempty"`
}

type TeamMember struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Role         string             `bson:"role" json:"role"`
	Designation  string             `bson:"designation,omitempty" json:"designation,omitempty"`
	Organization string             `bson:"organization,omitempty" json:"organization,omitempty"`
	Photo        string             `bson:"photo,omitempty" json:"photo,omitempty"`
	Bio          string             `bson:"bio,omitempty" json:"bio,omitempty"`
	Email        string             `bson:"email,omitempty" json:"email,omitempty"`
	SocialLinks  MemberSocial       `bson:"social_links" json:"socialLinks"`
	Type         string             `bson:"type" json:"type"`
	Order        int                `bson:"order" json:"order"`
	IsActive     bool               `bson:"is_active" json:"isActive"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updatedAt"`
}

// IsFounder reports whether the member is shown on a founder card.
func (m TeamMember) IsFounder() bool {
	return m.Type == TeamTypeFounder || m.Type == TeamTypeCoFounder
}
