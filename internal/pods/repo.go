package pods

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/fitnesshub/backend/internal/apperrors"
	"github.com/fitnesshub/backend/internal/db"
	"github.com/fitnesshub/backend/internal/telemetry/tracing"
	"github.com/fitnesshub/backend/pkg"
)

var (
	ErrPodFull        = apperrors.Conflict("pod is full")
	ErrInvitePending  = apperrors.Conflict("user already has a pending invite to this pod")
	ErrInviteAnswered = apperrors.Conflict("invite has already been answered")
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func dateOnly(t time.Time) string {
	return t.Format(time.DateOnly)
}

func rollbackOrCommit(ctx context.Context, tx pgx.Tx, err *error) {
	if *err != nil {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
			*err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, *err)
		}
	} else {
		*err = tx.Commit(ctx)
	}
}

// CreatePod stores the pod and makes its creator the first active member.
func (r *Repo) CreatePod(ctx context.Context, pod Pod) (_ *Pod, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.pods.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if pod.ID == uuid.Nil {
		pod.ID = uuid.New()
	}
	span.SetAttributes(attribute.String("pod.id", pod.ID.String()))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer rollbackOrCommit(ctx, tx, &err)

	if err := db.EnsureProfile(ctx, tx, pod.CreatorID); err != nil {
		return nil, err
	}

	if err := tx.QueryRow(ctx, `
		INSERT INTO pod (id, name, description, creator_id)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at;
	`, pod.ID, pod.Name, pod.Description, pod.CreatorID).Scan(&pod.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert pod: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO pod_member (pod_id, user_id, status, joined_at)
		VALUES ($1, $2, $3, $4);
	`, pod.ID, pod.CreatorID, MemberStatusActive, pod.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert creator membership: %w", err)
	}

	pod.MemberCount = 1
	return &pod, nil
}

func (r *Repo) Pod(ctx context.Context, podID uuid.UUID) (_ *Pod, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.pods.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("pod.id", podID.String()))

	var p Pod
	err = r.db.QueryRow(ctx, `
		SELECT p.id, p.name, p.description, p.creator_id, p.created_at,
		       (SELECT COUNT(*) FROM pod_member m WHERE m.pod_id = p.id AND m.status = $2)
		FROM pod p
		WHERE p.id = $1;
	`, podID, MemberStatusActive).Scan(&p.ID, &p.Name, &p.Description, &p.CreatorID, &p.CreatedAt, &p.MemberCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	return &p, nil
}

// PodsForUser lists the pods the user is an active member of, newest first.
func (r *Repo) PodsForUser(ctx context.Context, userID uuid.UUID) (_ []Pod, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.pods.foruser")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT p.id, p.name, p.description, p.creator_id, p.created_at,
		       (SELECT COUNT(*) FROM pod_member c WHERE c.pod_id = p.id AND c.status = $2)
		FROM pod p
		JOIN pod_member m ON m.pod_id = p.id
		WHERE m.user_id = $1 AND m.status = $2
		ORDER BY p.created_at DESC, p.id;
	`, userID, MemberStatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pods := make([]Pod, 0)
	for rows.Next() {
		var p Pod
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.CreatorID, &p.CreatedAt, &p.MemberCount); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		pods = append(pods, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return pods, nil
}

func (r *Repo) DeletePod(ctx context.Context, podID uuid.UUID) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.pods.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(ctx, `DELETE FROM pod WHERE id = $1;`, podID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *Repo) IsActiveMember(ctx context.Context, podID, userID uuid.UUID) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.pods.isactivemember")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var active bool
	if err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM pod_member WHERE pod_id = $1 AND user_id = $2 AND status = $3
		);
	`, podID, userID, MemberStatusActive).Scan(&active); err != nil {
		return false, err
	}
	return active, nil
}

// ActiveMembers returns the active members in the order they joined.
func (r *Repo) ActiveMembers(ctx context.Context, podID uuid.UUID) (_ []Member, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.pods.activemembers")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("pod.id", podID.String()))

	rows, err := r.db.Query(ctx, `
		SELECT m.user_id, COALESCE(p.display_name, ''), m.joined_at
		FROM pod_member m
		LEFT JOIN profile p ON p.id = m.user_id
		WHERE m.pod_id = $1 AND m.status = $2
		ORDER BY m.joined_at, m.user_id;
	`, podID, MemberStatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make([]Member, 0, MaxMembers)
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.UserID, &m.DisplayName, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return members, nil
}

func (r *Repo) LeavePod(ctx context.Context, podID, userID uuid.UUID) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.pods.leave")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(ctx, `
		UPDATE pod_member SET status = $3
		WHERE pod_id = $1 AND user_id = $2 AND status = $4;
	`, podID, userID, MemberStatusLeft, MemberStatusActive)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *Repo) CreateInvite(ctx context.Context, invite Invite) (_ *Invite, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.pods.createinvite")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if invite.ID == uuid.Nil {
		invite.ID = uuid.New()
	}
	invite.Status = InviteStatusPending

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer rollbackOrCommit(ctx, tx, &err)

	if err := db.EnsureProfile(ctx, tx, invite.InviteeID); err != nil {
		return nil, err
	}

	if err := tx.QueryRow(ctx, `
		INSERT INTO pod_invite (id, pod_id, inviter_id, invitee_id, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at;
	`, invite.ID, invite.PodID, invite.InviterID, invite.InviteeID, invite.Status).Scan(&invite.CreatedAt); err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, ErrInvitePending
		}
		return nil, fmt.Errorf("insert invite: %w", err)
	}

	return &invite, nil
}

func (r *Repo) Invite(ctx context.Context, inviteID uuid.UUID) (_ *Invite, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.pods.invite")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var i Invite
	err = r.db.QueryRow(ctx, `
		SELECT id, pod_id, inviter_id, invitee_id, status, created_at
		FROM pod_invite
		WHERE id = $1;
	`, inviteID).Scan(&i.ID, &i.PodID, &i.InviterID, &i.InviteeID, &i.Status, &i.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	return &i, nil
}

func (r *Repo) PendingInvites(ctx context.Context, userID uuid.UUID) (_ []Invite, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.pods.pendinginvites")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT id, pod_id, inviter_id, invitee_id, status, created_at
		FROM pod_invite
		WHERE invitee_id = $1 AND status = $2
		ORDER BY created_at DESC, id;
	`, userID, InviteStatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invites := make([]Invite, 0)
	for rows.Next() {
		var i Invite
		if err := rows.Scan(&i.ID, &i.PodID, &i.InviterID, &i.InviteeID, &i.Status, &i.CreatedAt); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		invites = append(invites, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return invites, nil
}

// AcceptInvite activates the invitee's membership. The pod row is locked so
// concurrent accepts cannot push the pod over maxMembers.
func (r *Repo) AcceptInvite(ctx context.Context, invite Invite, maxMembers int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.pods.acceptinvite")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("invite.id", invite.ID.String()))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer rollbackOrCommit(ctx, tx, &err)

	var podID uuid.UUID
	if err := tx.QueryRow(ctx, `SELECT id FROM pod WHERE id = $1 FOR UPDATE;`, invite.PodID).Scan(&podID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("lock pod: %w", err)
	}

	var active int
	if err := tx.QueryRow(ctx, `
		SELECT COUNT(*) FROM pod_member WHERE pod_id = $1 AND status = $2;
	`, invite.PodID, MemberStatusActive).Scan(&active); err != nil {
		return fmt.Errorf("count members: %w", err)
	}
	if active >= maxMembers {
		return ErrPodFull
	}

	tag, err := tx.Exec(ctx, `
		UPDATE pod_invite SET status = $2
		WHERE id = $1 AND status = $3;
	`, invite.ID, InviteStatusAccepted, InviteStatusPending)
	if err != nil {
		return fmt.Errorf("update invite: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrInviteAnswered
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO pod_member (pod_id, user_id, status, joined_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (pod_id, user_id) DO UPDATE
			SET status = EXCLUDED.status,
			    joined_at = EXCLUDED.joined_at;
	`, invite.PodID, invite.InviteeID, MemberStatusActive); err != nil {
		return fmt.Errorf("activate membership: %w", err)
	}

	return nil
}

func (r *Repo) DeclineInvite(ctx context.Context, inviteID uuid.UUID) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.pods.declineinvite")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(ctx, `
		UPDATE pod_invite SET status = $2
		WHERE id = $1 AND status = $3;
	`, inviteID, InviteStatusDeclined, InviteStatusPending)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInviteAnswered
	}
	return nil
}

// UpsertCommitment sets the target for the commitment's week, replacing any
// earlier target for the same week.
func (r *Repo) UpsertCommitment(ctx context.Context, c Commitment) (_ *Commitment, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.pods.upsertcommitment")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("week.start", dateOnly(c.WeekStart)))

	if _, err := r.db.Exec(ctx, `
		INSERT INTO pod_commitment (pod_id, user_id, week_start, target, updated_at)
		VALUES ($1, $2, $3::date, $4, now())
		ON CONFLICT (pod_id, user_id, week_start) DO UPDATE
			SET target = EXCLUDED.target,
			    updated_at = EXCLUDED.updated_at;
	`, c.PodID, c.UserID, dateOnly(c.WeekStart), c.Target); err != nil {
		// the pod was deleted after the membership check
		if pkg.IsForeignKeyViolationError(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("upsert commitment: %w", err)
	}

	return &c, nil
}

// Commitments returns the pod's commitments for weeks starting in
// [from, to). Both bounds are taken as calendar dates.
func (r *Repo) Commitments(ctx context.Context, podID uuid.UUID, from, to time.Time) (_ []Commitment, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.pods.commitments")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT pod_id, user_id, week_start, target
		FROM pod_commitment
		WHERE pod_id = $1 AND week_start >= $2::date AND week_start < $3::date
		ORDER BY week_start DESC, user_id;
	`, podID, dateOnly(from), dateOnly(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	commitments := make([]Commitment, 0)
	for rows.Next() {
		var c Commitment
		if err := rows.Scan(&c.PodID, &c.UserID, &c.WeekStart, &c.Target); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		commitments = append(commitments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return commitments, nil
}

// CompletedCounts counts completed sessions per user in one query. Users
// without sessions are absent from the result.
func (r *Repo) CompletedCounts(ctx context.Context, userIDs []uuid.UUID, from, to time.Time) (_ map[uuid.UUID]int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.pods.completedcounts")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("users.count", len(userIDs)))

	var upper *time.Time
	if !to.IsZero() {
		upper = &to
	}

	rows, err := r.db.Query(ctx, `
		SELECT user_id, COUNT(*)
		FROM workout_session
		WHERE user_id = ANY($1)
		  AND status = 'completed'
		  AND started_at >= $2
		  AND ($3::timestamptz IS NULL OR started_at < $3)
		GROUP BY user_id;
	`, userIDs, from, upper)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[uuid.UUID]int, len(userIDs))
	for rows.Next() {
		var (
			userID uuid.UUID
			count  int
		)
		if err := rows.Scan(&userID, &count); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		counts[userID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}

func (r *Repo) AddMessage(ctx context.Context, msg Message) (_ *Message, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.pods.addmessage")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}

	if err := r.db.QueryRow(ctx, `
		WITH inserted AS (
			INSERT INTO pod_message (id, pod_id, user_id, body)
			VALUES ($1, $2, $3, $4)
			RETURNING user_id, created_at
		)
		SELECT i.created_at, COALESCE(p.display_name, '')
		FROM inserted i
		LEFT JOIN profile p ON p.id = i.user_id;
	`, msg.ID, msg.PodID, msg.UserID, msg.Body).Scan(&msg.CreatedAt, &msg.DisplayName); err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("insert message: %w", err)
	}

	return &msg, nil
}

// Messages returns the latest messages of a pod, newest first.
func (r *Repo) Messages(ctx context.Context, podID uuid.UUID, limit int) (_ []Message, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.pods.messages")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("limit", limit))

	rows, err := r.db.Query(ctx, `
		SELECT m.id, m.pod_id, m.user_id, COALESCE(p.display_name, ''), m.body, m.created_at
		FROM pod_message m
		LEFT JOIN profile p ON p.id = m.user_id
		WHERE m.pod_id = $1
		ORDER BY m.created_at DESC, m.id
		LIMIT $2;
	`, podID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make([]Message, 0, limit)
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.PodID, &m.UserID, &m.DisplayName, &m.Body, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return messages, nil
}
