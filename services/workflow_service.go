package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"news-editorial-api/models"
)

// Action is the closed set of workflow actions. Payload requirements are
// checked per action in the dispatch switch, so there is no string-keyed
// handler lookup and no runtime field probing.
type Action string

const (
	ActionSubmit         Action = "SUBMIT"
	ActionAssign         Action = "ASSIGN"
	ActionStartReview    Action = "START_REVIEW"
	ActionRequestChanges Action = "REQUEST_CHANGES"
	ActionApprove        Action = "APPROVE"
	ActionReject         Action = "REJECT"
	ActionPublish        Action = "PUBLISH"
	ActionHold           Action = "HOLD"
	ActionAddNote        Action = "ADD_NOTE"
	ActionUnpublish      Action = "UNPUBLISH"
)

// ParseAction maps a request string onto the closed action set.
func ParseAction(raw string) (Action, bool) {
	switch a := Action(strings.ToUpper(strings.TrimSpace(raw))); a {
	case ActionSubmit, ActionAssign, ActionStartReview, ActionRequestChanges,
		ActionApprove, ActionReject, ActionPublish, ActionHold, ActionAddNote,
		ActionUnpublish:
		return a, true
	}
	return "", false
}

// ActionRequest carries the optional payload for an action.
type ActionRequest struct {
	Action      Action     `json:"action"`
	Feedback    string     `json:"feedback"`
	Priority    string     `json:"priority"`
	ReviewerID  int        `json:"reviewer_id"`
	ScheduledAt *time.Time `json:"scheduled_at"`
}

// ActionResult is the status pair after a successful transition.
type ActionResult struct {
	ContentStatus string `json:"content_status"`
	ReviewStatus  string `json:"review_status"`
}

// WorkflowService is the single choke point for every status change to a
// content item. It validates the actor, the payload and the transition,
// applies content and review updates in one transaction, and emits a
// workflow event for the audit and notification consumers.
type WorkflowService struct {
	store  WorkflowStore
	rules  RuleSource
	perms  *PermissionService
	events EventPublisher

	mu    sync.Mutex
	locks map[int]*contentLock

	now func() time.Time
}

// contentLock is refcounted so the locks map shrinks back once the last
// waiter for a content item is done.
type contentLock struct {
	mu   sync.Mutex
	refs int
}

func NewWorkflowService(store WorkflowStore, rules RuleSource, perms *PermissionService, events EventPublisher) *WorkflowService {
	return &WorkflowService{
		store:  store,
		rules:  rules,
		perms:  perms,
		events: events,
		locks:  make(map[int]*contentLock),
		now:    time.Now,
	}
}

// lockContent serializes Execute calls per content item so concurrent actors
// cannot both pass the same stale precondition in-process. Cross-process
// racers are caught by the optimistic status check in TransitionContent.
func (s *WorkflowService) lockContent(contentID int) func() {
	s.mu.Lock()
	l, ok := s.locks[contentID]
	if !ok {
		l = &contentLock{}
		s.locks[contentID] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, contentID)
		}
		s.mu.Unlock()
	}
}

// Execute runs one workflow action. On rejection it returns a
// *WorkflowError; every attempt, successful or rejected, produces a
// workflow event for the audit trail.
func (s *WorkflowService) Execute(actor Actor, contentID int, req ActionRequest) (*ActionResult, error) {
	unlock := s.lockContent(contentID)
	defer unlock()

	item, err := s.store.ContentByID(contentID)
	if err != nil {
		return nil, AsWorkflowError(err)
	}
	review, err := s.store.CurrentReview(contentID)
	if err != nil {
		return nil, AsWorkflowError(err)
	}

	action, ok := ParseAction(string(req.Action))
	if !ok {
		return nil, validationError([]string{fmt.Sprintf("unknown action %q", req.Action)})
	}
	req.Action = action

	if _, perr := s.perms.Authorize(actor, req.Action, item); perr != nil {
		s.emitRejection(actor, item, req, perr)
		return nil, perr
	}

	result, ev, err := s.apply(actor, item, review, req)
	if err != nil {
		we := AsWorkflowError(err)
		if we.Kind != ErrDependency {
			s.emitRejection(actor, item, req, we)
		}
		return nil, we
	}

	s.events.Publish(ev)
	if ev.Action == models.ActionPublished {
		share := ev
		share.Action = models.ActionSocialShareIntent
		share.Detail = "queued a social share for the article"
		share.Recipients = nil
		s.events.Publish(share)
	}
	return result, nil
}

func (s *WorkflowService) apply(actor Actor, item *models.ContentItem, review *models.ReviewRecord, req ActionRequest) (*ActionResult, WorkflowEvent, error) {
	switch req.Action {
	case ActionSubmit:
		return s.submit(actor, item, review)
	case ActionAssign:
		return s.assign(actor, item, review, req)
	case ActionStartReview:
		return s.startReview(actor, item, review)
	case ActionRequestChanges:
		return s.requestChanges(actor, item, review, req)
	case ActionApprove:
		return s.approve(actor, item, review, req)
	case ActionReject:
		return s.reject(actor, item, review, req)
	case ActionPublish:
		return s.publish(actor, item, review, req)
	case ActionHold:
		return s.hold(actor, item, review)
	case ActionAddNote:
		return s.addNote(actor, item, review, req)
	case ActionUnpublish:
		return s.unpublish(actor, item, review)
	}
	return nil, WorkflowEvent{}, validationError([]string{fmt.Sprintf("unknown action %q", req.Action)})
}

func (s *WorkflowService) submit(actor Actor, item *models.ContentItem, review *models.ReviewRecord) (*ActionResult, WorkflowEvent, error) {
	if item.Status != models.ContentStatusDraft && item.Status != models.ContentStatusChangesRequested {
		return nil, WorkflowEvent{}, transitionError("cannot submit from status %q", item.Status)
	}

	rule, err := s.rules.ForCategory(item.Category)
	if err != nil {
		return nil, WorkflowEvent{}, err
	}
	if violations := ValidateSubmission(item, rule); len(violations) > 0 {
		return nil, WorkflowEvent{}, validationError(violations)
	}

	now := s.now()
	auto := rule != nil && rule.AutoPublishTrusted && actor.Role == models.RoleSeniorWriter

	contentStatus := models.ContentStatusPendingReview
	reviewStatus := models.ReviewStatusPending
	auditAction := models.ActionSubmitted
	detail := "submitted the article for review"
	if auto {
		contentStatus = models.ContentStatusApproved
		reviewStatus = models.ReviewStatusApproved
		auditAction = models.ActionAutoApproved
		detail = "submission auto-approved for trusted senior writer"
	}

	err = s.store.InTransaction(func(tx WorkflowStore) error {
		if err := s.transition(tx, item, item.Status, map[string]interface{}{"status": contentStatus}); err != nil {
			return err
		}
		if review == nil || review.IsTerminal() {
			record := &models.ReviewRecord{
				ContentID:    item.ContentID,
				ReviewStatus: reviewStatus,
				Priority:     models.PriorityNormal,
				SubmittedAt:  now,
			}
			if auto {
				record.ReviewedAt = &now
			}
			return tx.SaveReview(record)
		}
		// Resubmission after changes_requested reuses the open record.
		updates := map[string]interface{}{
			"review_status": reviewStatus,
			"submitted_at":  now,
		}
		if auto {
			updates["reviewed_at"] = now
		}
		return tx.UpdateReview(review.ReviewID, updates)
	})
	if err != nil {
		return nil, WorkflowEvent{}, err
	}

	ev := s.event(actor, item, auditAction, detail, contentStatus, reviewStatus)
	ev.Recipients = rule.Recipients()
	return &ActionResult{ContentStatus: contentStatus, ReviewStatus: reviewStatus}, ev, nil
}

func (s *WorkflowService) assign(actor Actor, item *models.ContentItem, review *models.ReviewRecord, req ActionRequest) (*ActionResult, WorkflowEvent, error) {
	if review == nil {
		return nil, WorkflowEvent{}, notFoundError("content item %d has no review record", item.ContentID)
	}
	if review.IsTerminal() {
		return nil, WorkflowEvent{}, transitionError("cannot assign a review in status %q", review.ReviewStatus)
	}

	var violations []string
	if req.ReviewerID <= 0 {
		violations = append(violations, "a reviewer is required")
	}
	priority := req.Priority
	if priority == "" {
		priority = models.PriorityNormal
	}
	if !models.ValidPriority(priority) {
		violations = append(violations, fmt.Sprintf("invalid priority %q", req.Priority))
	}
	if len(violations) > 0 {
		return nil, WorkflowEvent{}, validationError(violations)
	}

	now := s.now()
	err := s.store.InTransaction(func(tx WorkflowStore) error {
		return tx.UpdateReview(review.ReviewID, map[string]interface{}{
			"review_status": models.ReviewStatusAssigned,
			"priority":      priority,
			"reviewer_id":   req.ReviewerID,
			"assigned_at":   now,
		})
	})
	if err != nil {
		return nil, WorkflowEvent{}, err
	}

	detail := fmt.Sprintf("assigned the review to reviewer %d with %s priority", req.ReviewerID, priority)
	ev := s.event(actor, item, models.ActionAssigned, detail, item.Status, models.ReviewStatusAssigned)
	return &ActionResult{ContentStatus: item.Status, ReviewStatus: models.ReviewStatusAssigned}, ev, nil
}

func (s *WorkflowService) startReview(actor Actor, item *models.ContentItem, review *models.ReviewRecord) (*ActionResult, WorkflowEvent, error) {
	if review == nil {
		return nil, WorkflowEvent{}, notFoundError("content item %d has no review record", item.ContentID)
	}
	if review.ReviewStatus != models.ReviewStatusPending && review.ReviewStatus != models.ReviewStatusAssigned {
		return nil, WorkflowEvent{}, transitionError("cannot start a review in status %q", review.ReviewStatus)
	}

	err := s.store.InTransaction(func(tx WorkflowStore) error {
		if item.Status == models.ContentStatusPendingReview {
			if err := s.transition(tx, item, item.Status, map[string]interface{}{"status": models.ContentStatusInReview}); err != nil {
				return err
			}
		}
		return tx.UpdateReview(review.ReviewID, map[string]interface{}{
			"review_status": models.ReviewStatusInReview,
		})
	})
	if err != nil {
		return nil, WorkflowEvent{}, err
	}

	ev := s.event(actor, item, models.ActionReviewStarted, "started reviewing the article",
		models.ContentStatusInReview, models.ReviewStatusInReview)
	return &ActionResult{ContentStatus: models.ContentStatusInReview, ReviewStatus: models.ReviewStatusInReview}, ev, nil
}

func (s *WorkflowService) requestChanges(actor Actor, item *models.ContentItem, review *models.ReviewRecord, req ActionRequest) (*ActionResult, WorkflowEvent, error) {
	if strings.TrimSpace(req.Feedback) == "" {
		return nil, WorkflowEvent{}, validationError([]string{"feedback text is required to request changes"})
	}
	if review == nil {
		return nil, WorkflowEvent{}, notFoundError("content item %d has no review record", item.ContentID)
	}
	if item.Status != models.ContentStatusPendingReview && item.Status != models.ContentStatusInReview {
		return nil, WorkflowEvent{}, transitionError("cannot request changes from status %q", item.Status)
	}

	now := s.now()
	err := s.store.InTransaction(func(tx WorkflowStore) error {
		if err := s.transition(tx, item, item.Status, map[string]interface{}{"status": models.ContentStatusChangesRequested}); err != nil {
			return err
		}
		if err := tx.UpdateReview(review.ReviewID, map[string]interface{}{
			"review_status": models.ReviewStatusChangesRequested,
			"reviewed_at":   now,
		}); err != nil {
			return err
		}
		return tx.AppendFeedback(s.feedback(actor, item, review, models.FeedbackRevisionRequest, req.Feedback, false, now))
	})
	if err != nil {
		return nil, WorkflowEvent{}, err
	}

	detail := fmt.Sprintf("requested changes: %s", req.Feedback)
	ev := s.event(actor, item, models.ActionChangesRequested, detail,
		models.ContentStatusChangesRequested, models.ReviewStatusChangesRequested)
	return &ActionResult{ContentStatus: models.ContentStatusChangesRequested, ReviewStatus: models.ReviewStatusChangesRequested}, ev, nil
}

func (s *WorkflowService) approve(actor Actor, item *models.ContentItem, review *models.ReviewRecord, req ActionRequest) (*ActionResult, WorkflowEvent, error) {
	if review == nil {
		return nil, WorkflowEvent{}, notFoundError("content item %d has no review record", item.ContentID)
	}
	if item.Status != models.ContentStatusPendingReview && item.Status != models.ContentStatusInReview {
		return nil, WorkflowEvent{}, transitionError("cannot approve from status %q", item.Status)
	}

	now := s.now()
	err := s.store.InTransaction(func(tx WorkflowStore) error {
		if err := s.transition(tx, item, item.Status, map[string]interface{}{"status": models.ContentStatusApproved}); err != nil {
			return err
		}
		if err := tx.UpdateReview(review.ReviewID, map[string]interface{}{
			"review_status": models.ReviewStatusApproved,
			"reviewed_at":   now,
		}); err != nil {
			return err
		}
		if strings.TrimSpace(req.Feedback) != "" {
			return tx.AppendFeedback(s.feedback(actor, item, review, models.FeedbackApproval, req.Feedback, false, now))
		}
		return nil
	})
	if err != nil {
		return nil, WorkflowEvent{}, err
	}

	// Editor approval is terminal like admin approval, but the audit trail
	// keeps the distinction: editors are recorded as recommending.
	auditAction := models.ActionApproved
	detail := "approved the article"
	if actor.Role == models.RoleEditor {
		auditAction = models.ActionRecommendApproval
		detail = "recommended the article for approval"
	}
	ev := s.event(actor, item, auditAction, detail, models.ContentStatusApproved, models.ReviewStatusApproved)
	return &ActionResult{ContentStatus: models.ContentStatusApproved, ReviewStatus: models.ReviewStatusApproved}, ev, nil
}

func (s *WorkflowService) reject(actor Actor, item *models.ContentItem, review *models.ReviewRecord, req ActionRequest) (*ActionResult, WorkflowEvent, error) {
	if strings.TrimSpace(req.Feedback) == "" {
		return nil, WorkflowEvent{}, validationError([]string{"feedback text is required to reject"})
	}
	if review == nil {
		return nil, WorkflowEvent{}, notFoundError("content item %d has no review record", item.ContentID)
	}
	if item.Status != models.ContentStatusPendingReview && item.Status != models.ContentStatusInReview {
		return nil, WorkflowEvent{}, transitionError("cannot reject from status %q", item.Status)
	}

	now := s.now()
	err := s.store.InTransaction(func(tx WorkflowStore) error {
		if err := s.transition(tx, item, item.Status, map[string]interface{}{"status": models.ContentStatusRejected}); err != nil {
			return err
		}
		if err := tx.UpdateReview(review.ReviewID, map[string]interface{}{
			"review_status": models.ReviewStatusRejected,
			"reviewed_at":   now,
		}); err != nil {
			return err
		}
		return tx.AppendFeedback(s.feedback(actor, item, review, models.FeedbackRejection, req.Feedback, false, now))
	})
	if err != nil {
		return nil, WorkflowEvent{}, err
	}

	detail := fmt.Sprintf("rejected the article: %s", req.Feedback)
	ev := s.event(actor, item, models.ActionRejected, detail,
		models.ContentStatusRejected, models.ReviewStatusRejected)
	return &ActionResult{ContentStatus: models.ContentStatusRejected, ReviewStatus: models.ReviewStatusRejected}, ev, nil
}

func (s *WorkflowService) publish(actor Actor, item *models.ContentItem, review *models.ReviewRecord, req ActionRequest) (*ActionResult, WorkflowEvent, error) {
	if review == nil {
		return nil, WorkflowEvent{}, notFoundError("content item %d has no review record", item.ContentID)
	}
	if item.Status != models.ContentStatusApproved && item.Status != models.ContentStatusScheduled {
		return nil, WorkflowEvent{}, transitionError("cannot publish from status %q", item.Status)
	}

	now := s.now()
	scheduled := req.ScheduledAt != nil && req.ScheduledAt.After(now)

	contentStatus := models.ContentStatusPublished
	auditAction := models.ActionPublished
	detail := "published the article"
	updates := map[string]interface{}{
		"status":       contentStatus,
		"published_at": now,
	}
	if scheduled {
		contentStatus = models.ContentStatusScheduled
		auditAction = models.ActionScheduled
		detail = fmt.Sprintf("scheduled the article for %s", req.ScheduledAt.Format(time.RFC3339))
		updates = map[string]interface{}{
			"status":       contentStatus,
			"scheduled_at": *req.ScheduledAt,
		}
	}

	err := s.store.InTransaction(func(tx WorkflowStore) error {
		if err := s.transition(tx, item, item.Status, updates); err != nil {
			return err
		}
		return tx.UpdateReview(review.ReviewID, map[string]interface{}{
			"review_status": models.ReviewStatusPublished,
			"published_at":  now,
		})
	})
	if err != nil {
		return nil, WorkflowEvent{}, err
	}

	ev := s.event(actor, item, auditAction, detail, contentStatus, models.ReviewStatusPublished)
	return &ActionResult{ContentStatus: contentStatus, ReviewStatus: models.ReviewStatusPublished}, ev, nil
}

func (s *WorkflowService) hold(actor Actor, item *models.ContentItem, review *models.ReviewRecord) (*ActionResult, WorkflowEvent, error) {
	if review == nil {
		return nil, WorkflowEvent{}, notFoundError("content item %d has no review record", item.ContentID)
	}
	if review.IsTerminal() {
		return nil, WorkflowEvent{}, transitionError("cannot hold a review in status %q", review.ReviewStatus)
	}

	err := s.store.InTransaction(func(tx WorkflowStore) error {
		return tx.UpdateReview(review.ReviewID, map[string]interface{}{
			"review_status": models.ReviewStatusOnHold,
		})
	})
	if err != nil {
		return nil, WorkflowEvent{}, err
	}

	ev := s.event(actor, item, models.ActionHeld, "put the review on hold", item.Status, models.ReviewStatusOnHold)
	return &ActionResult{ContentStatus: item.Status, ReviewStatus: models.ReviewStatusOnHold}, ev, nil
}

func (s *WorkflowService) addNote(actor Actor, item *models.ContentItem, review *models.ReviewRecord, req ActionRequest) (*ActionResult, WorkflowEvent, error) {
	if strings.TrimSpace(req.Feedback) == "" {
		return nil, WorkflowEvent{}, validationError([]string{"note text is required"})
	}
	if review == nil {
		return nil, WorkflowEvent{}, notFoundError("content item %d has no review record", item.ContentID)
	}

	err := s.store.InTransaction(func(tx WorkflowStore) error {
		return tx.AppendFeedback(s.feedback(actor, item, review, models.FeedbackComment, req.Feedback, true, s.now()))
	})
	if err != nil {
		return nil, WorkflowEvent{}, err
	}

	ev := s.event(actor, item, models.ActionNoteAdded, "added an internal note", item.Status, review.ReviewStatus)
	return &ActionResult{ContentStatus: item.Status, ReviewStatus: review.ReviewStatus}, ev, nil
}

func (s *WorkflowService) unpublish(actor Actor, item *models.ContentItem, review *models.ReviewRecord) (*ActionResult, WorkflowEvent, error) {
	if item.Status != models.ContentStatusPublished && item.Status != models.ContentStatusScheduled {
		return nil, WorkflowEvent{}, transitionError("cannot unpublish from status %q", item.Status)
	}

	err := s.store.InTransaction(func(tx WorkflowStore) error {
		return s.transition(tx, item, item.Status, map[string]interface{}{
			"status":       models.ContentStatusDraft,
			"published_at": nil,
			"scheduled_at": nil,
		})
	})
	if err != nil {
		return nil, WorkflowEvent{}, err
	}

	reviewStatus := ""
	if review != nil {
		reviewStatus = review.ReviewStatus
	}
	ev := s.event(actor, item, models.ActionUnpublished, "unpublished the article", models.ContentStatusDraft, reviewStatus)
	return &ActionResult{ContentStatus: models.ContentStatusDraft, ReviewStatus: reviewStatus}, ev, nil
}

// transition maps a stale-status failure onto a Conflict rejection so the
// caller can re-read and retry.
func (s *WorkflowService) transition(tx WorkflowStore, item *models.ContentItem, from string, updates map[string]interface{}) error {
	if err := tx.TransitionContent(item.ContentID, from, updates); err != nil {
		if errors.Is(err, ErrStaleStatus) {
			return conflictError("content item %d was modified concurrently", item.ContentID)
		}
		return err
	}
	return nil
}

func (s *WorkflowService) feedback(actor Actor, item *models.ContentItem, review *models.ReviewRecord, entryType, body string, internal bool, at time.Time) *models.FeedbackEntry {
	return &models.FeedbackEntry{
		ReviewID:   review.ReviewID,
		ContentID:  item.ContentID,
		AuthorID:   actor.ID,
		AuthorName: actor.DisplayName,
		AuthorRole: actor.Role,
		EntryType:  entryType,
		Body:       body,
		IsInternal: internal,
		CreateAt:   at,
	}
}

func (s *WorkflowService) event(actor Actor, item *models.ContentItem, action, detail, contentStatus, reviewStatus string) WorkflowEvent {
	return WorkflowEvent{
		Action:        action,
		Detail:        detail,
		Success:       true,
		ContentID:     item.ContentID,
		ContentTitle:  item.Title,
		Category:      item.Category,
		AuthorID:      item.AuthorID,
		ContentStatus: contentStatus,
		ReviewStatus:  reviewStatus,
		Actor:         actor,
		OccurredAt:    s.now(),
	}
}

func (s *WorkflowService) emitRejection(actor Actor, item *models.ContentItem, req ActionRequest, we *WorkflowError) {
	s.events.Publish(WorkflowEvent{
		Action:        strings.ToLower(string(req.Action)),
		Detail:        fmt.Sprintf("attempted %s: %s", req.Action, we.Error()),
		Success:       false,
		Reason:        string(we.Kind),
		ContentID:     item.ContentID,
		ContentTitle:  item.Title,
		Category:      item.Category,
		AuthorID:      item.AuthorID,
		ContentStatus: item.Status,
		Actor:         actor,
		OccurredAt:    s.now(),
	})
}
