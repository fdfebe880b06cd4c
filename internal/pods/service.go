package pods

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/fitnesshub/backend/internal/apperrors"
	"github.com/fitnesshub/backend/internal/telemetry/tracing"
	"github.com/fitnesshub/backend/internal/weekwindow"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=pods_test

const (
	DefaultMessagesLimit = 50
	MaxMessagesLimit     = 200
)

var errNotMember = apperrors.Forbidden("not an active member of this pod")

type podsRepo interface {
	CreatePod(ctx context.Context, pod Pod) (*Pod, error)
	Pod(ctx context.Context, podID uuid.UUID) (*Pod, error)
	PodsForUser(ctx context.Context, userID uuid.UUID) ([]Pod, error)
	DeletePod(ctx context.Context, podID uuid.UUID) error
	IsActiveMember(ctx context.Context, podID, userID uuid.UUID) (bool, error)
	LeavePod(ctx context.Context, podID, userID uuid.UUID) error
	CreateInvite(ctx context.Context, invite Invite) (*Invite, error)
	Invite(ctx context.Context, inviteID uuid.UUID) (*Invite, error)
	PendingInvites(ctx context.Context, userID uuid.UUID) ([]Invite, error)
	AcceptInvite(ctx context.Context, invite Invite, maxMembers int) error
	DeclineInvite(ctx context.Context, inviteID uuid.UUID) error
	UpsertCommitment(ctx context.Context, c Commitment) (*Commitment, error)
	AddMessage(ctx context.Context, msg Message) (*Message, error)
	Messages(ctx context.Context, podID uuid.UUID, limit int) ([]Message, error)
}

type progressAggregator interface {
	Progress(ctx context.Context, podID uuid.UUID, now time.Time) []MemberProgress
}

type CreatePodRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Service struct {
	repo       podsRepo
	aggregator progressAggregator
}

func NewService(repo podsRepo, aggregator progressAggregator) *Service {
	return &Service{
		repo:       repo,
		aggregator: aggregator,
	}
}

func (s *Service) CreatePod(ctx context.Context, creatorID uuid.UUID, req CreatePodRequest) (_ *Pod, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.pods.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if creatorID == uuid.Nil {
		return nil, apperrors.ErrUnauthenticated
	}

	name := strings.TrimSpace(req.Name)
	if name == "" || utf8.RuneCountInString(name) > MaxNameLength {
		return nil, apperrors.Validation(fmt.Sprintf("pod name must be between 1 and %d characters", MaxNameLength))
	}
	description := strings.TrimSpace(req.Description)
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return nil, apperrors.Validation(fmt.Sprintf("pod description must be at most %d characters", MaxDescriptionLength))
	}

	return s.repo.CreatePod(ctx, Pod{
		Name:        name,
		Description: description,
		CreatorID:   creatorID,
	})
}

func (s *Service) ListPods(ctx context.Context, userID uuid.UUID) (_ []Pod, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.pods.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if userID == uuid.Nil {
		return nil, apperrors.ErrUnauthenticated
	}
	return s.repo.PodsForUser(ctx, userID)
}

func (s *Service) DeletePod(ctx context.Context, userID, podID uuid.UUID) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.pods.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if userID == uuid.Nil {
		return apperrors.ErrUnauthenticated
	}

	pod, err := s.repo.Pod(ctx, podID)
	if err != nil {
		return err
	}
	if pod.CreatorID != userID {
		return apperrors.Forbidden("only the pod creator can delete the pod")
	}

	return s.repo.DeletePod(ctx, podID)
}

func (s *Service) Leave(ctx context.Context, userID, podID uuid.UUID) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.pods.leave")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if userID == uuid.Nil {
		return apperrors.ErrUnauthenticated
	}

	pod, err := s.repo.Pod(ctx, podID)
	if err != nil {
		return err
	}
	if err := s.requireMember(ctx, podID, userID); err != nil {
		return err
	}
	if pod.CreatorID == userID {
		return apperrors.Validation("pod creator cannot leave the pod")
	}

	if err := s.repo.LeavePod(ctx, podID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return errNotMember
		}
		return err
	}
	return nil
}

func (s *Service) Invite(ctx context.Context, inviterID, podID, inviteeID uuid.UUID) (_ *Invite, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.pods.invite")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if inviterID == uuid.Nil {
		return nil, apperrors.ErrUnauthenticated
	}
	if inviteeID == uuid.Nil {
		return nil, apperrors.Validation("invitee is required")
	}
	if inviteeID == inviterID {
		return nil, apperrors.Validation("cannot invite yourself")
	}

	pod, err := s.repo.Pod(ctx, podID)
	if err != nil {
		return nil, err
	}
	if err := s.requireMember(ctx, podID, inviterID); err != nil {
		return nil, err
	}
	if pod.MemberCount >= MaxMembers {
		return nil, ErrPodFull
	}

	alreadyMember, err := s.repo.IsActiveMember(ctx, podID, inviteeID)
	if err != nil {
		return nil, err
	}
	if alreadyMember {
		return nil, apperrors.Conflict("user is already a member of this pod")
	}

	return s.repo.CreateInvite(ctx, Invite{
		PodID:     podID,
		InviterID: inviterID,
		InviteeID: inviteeID,
	})
}

func (s *Service) PendingInvites(ctx context.Context, userID uuid.UUID) (_ []Invite, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.pods.pendinginvites")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if userID == uuid.Nil {
		return nil, apperrors.ErrUnauthenticated
	}
	return s.repo.PendingInvites(ctx, userID)
}

func (s *Service) RespondToInvite(ctx context.Context, userID, inviteID uuid.UUID, accept bool) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.pods.respondtoinvite")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if userID == uuid.Nil {
		return apperrors.ErrUnauthenticated
	}

	invite, err := s.repo.Invite(ctx, inviteID)
	if err != nil {
		return err
	}
	if invite.InviteeID != userID {
		return apperrors.Forbidden("only the invited user can respond to this invite")
	}
	if invite.Status != InviteStatusPending {
		return ErrInviteAnswered
	}

	if !accept {
		return s.repo.DeclineInvite(ctx, inviteID)
	}
	if err := s.repo.AcceptInvite(ctx, *invite, MaxMembers); err != nil {
		return err
	}

	log.Debugf("user %s joined pod %s", userID, invite.PodID)
	return nil
}

// SetCommitment sets the caller's target for the week containing now. The
// week is taken in now's location.
func (s *Service) SetCommitment(ctx context.Context, userID, podID uuid.UUID, target int, now time.Time) (_ *Commitment, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.pods.setcommitment")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if userID == uuid.Nil {
		return nil, apperrors.ErrUnauthenticated
	}
	if target < MinCommitment || target > MaxCommitment {
		return nil, apperrors.Validation(fmt.Sprintf("weekly commitment must be between %d and %d", MinCommitment, MaxCommitment))
	}
	if err := s.requireMember(ctx, podID, userID); err != nil {
		return nil, err
	}

	return s.repo.UpsertCommitment(ctx, Commitment{
		PodID:     podID,
		UserID:    userID,
		WeekStart: weekwindow.CurrentWeekStart(now),
		Target:    target,
	})
}

func (s *Service) PostMessage(ctx context.Context, userID, podID uuid.UUID, body string) (_ *Message, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.pods.postmessage")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if userID == uuid.Nil {
		return nil, apperrors.ErrUnauthenticated
	}
	body = strings.TrimSpace(body)
	if body == "" || utf8.RuneCountInString(body) > MaxMessageLength {
		return nil, apperrors.Validation(fmt.Sprintf("message must be between 1 and %d characters", MaxMessageLength))
	}
	if err := s.requireMember(ctx, podID, userID); err != nil {
		return nil, err
	}

	return s.repo.AddMessage(ctx, Message{
		PodID:  podID,
		UserID: userID,
		Body:   body,
	})
}

func (s *Service) ListMessages(ctx context.Context, userID, podID uuid.UUID, limit int) (_ []Message, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.pods.listmessages")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if userID == uuid.Nil {
		return nil, apperrors.ErrUnauthenticated
	}
	if limit <= 0 {
		limit = DefaultMessagesLimit
	}
	if limit > MaxMessagesLimit {
		limit = MaxMessagesLimit
	}
	if err := s.requireMember(ctx, podID, userID); err != nil {
		return nil, err
	}

	return s.repo.Messages(ctx, podID, limit)
}

// MemberProgress returns this week's progress of every active member. Only
// members of the pod may see it.
func (s *Service) MemberProgress(ctx context.Context, userID, podID uuid.UUID, now time.Time) (_ []MemberProgress, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.pods.memberprogress")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if userID == uuid.Nil {
		return nil, apperrors.ErrUnauthenticated
	}
	if err := s.requireMember(ctx, podID, userID); err != nil {
		return nil, err
	}

	return s.aggregator.Progress(ctx, podID, now), nil
}

func (s *Service) requireMember(ctx context.Context, podID, userID uuid.UUID) error {
	active, err := s.repo.IsActiveMember(ctx, podID, userID)
	if err != nil {
		return fmt.Errorf("check membership: %w", err)
	}
	if !active {
		return errNotMember
	}
	return nil
}
