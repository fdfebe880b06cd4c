// Package pods implements accountability pods: small groups of users that
// set weekly workout commitments and track each other's progress.
package pods

import (
	"time"

	"github.com/google/uuid"
)

const (
	MinMembers = 2
	MaxMembers = 8

	MinCommitment = 1
	MaxCommitment = 7

	MaxNameLength        = 60
	MaxDescriptionLength = 500
	MaxMessageLength     = 500
)

type MemberStatus string

const (
	MemberStatusActive MemberStatus = "active"
	MemberStatusLeft   MemberStatus = "left"
)

type InviteStatus string

const (
	InviteStatusPending  InviteStatus = "pending"
	InviteStatusAccepted InviteStatus = "accepted"
	InviteStatusDeclined InviteStatus = "declined"
)

type Pod struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatorID   uuid.UUID `json:"creatorId"`
	CreatedAt   time.Time `json:"createdAt"`
	MemberCount int       `json:"memberCount"`
}

type Member struct {
	UserID      uuid.UUID `json:"userId"`
	DisplayName string    `json:"displayName"`
	JoinedAt    time.Time `json:"joinedAt"`
}

type Invite struct {
	ID        uuid.UUID    `json:"id"`
	PodID     uuid.UUID    `json:"podId"`
	InviterID uuid.UUID    `json:"inviterId"`
	InviteeID uuid.UUID    `json:"inviteeId"`
	Status    InviteStatus `json:"status"`
	CreatedAt time.Time    `json:"createdAt"`
}

// Commitment is a member's workout target for the week starting at
// WeekStart, a Monday.
type Commitment struct {
	PodID     uuid.UUID `json:"podId"`
	UserID    uuid.UUID `json:"userId"`
	WeekStart time.Time `json:"weekStart"`
	Target    int       `json:"target"`
}

type Message struct {
	ID          uuid.UUID `json:"id"`
	PodID       uuid.UUID `json:"podId"`
	UserID      uuid.UUID `json:"userId"`
	DisplayName string    `json:"displayName"`
	Body        string    `json:"body"`
	CreatedAt   time.Time `json:"createdAt"`
}

type MemberProgress struct {
	UserID             uuid.UUID `json:"userId"`
	DisplayName        string    `json:"displayName"`
	Commitment         int       `json:"commitment"`
	Completed          int       `json:"completed"`
	ProgressPercentage int       `json:"progressPercentage"`
	IsOnTrack          bool      `json:"isOnTrack"`
	Streak             int       `json:"streak"`
}
