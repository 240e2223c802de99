package services

import (
	"errors"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"gorm.io/gorm"

	"news-editorial-api/models"
)

// Actor is the authenticated identity the API layer resolved for a request.
type Actor struct {
	ID          int    `json:"id"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

// AssignmentSource resolves an editor's category assignment. The production
// implementation is the cached GORM store below.
type AssignmentSource interface {
	AssignmentFor(editorID int, category string) (*models.Assignment, error)
}

// AssignmentStore is the GORM-backed assignment lookup. Assignments are
// read-mostly admin configuration, so lookups go through a short-TTL cache.
type AssignmentStore struct {
	db    *gorm.DB
	cache *gocache.Cache
}

const assignmentCacheTTL = 5 * time.Minute

func NewAssignmentStore(db *gorm.DB) *AssignmentStore {
	return &AssignmentStore{
		db:    db,
		cache: gocache.New(assignmentCacheTTL, 10*time.Minute),
	}
}

// AssignmentFor returns the editor's assignment for a category, or nil when
// none exists.
func (s *AssignmentStore) AssignmentFor(editorID int, category string) (*models.Assignment, error) {
	key := fmt.Sprintf("%d/%s", editorID, category)
	if cached, ok := s.cache.Get(key); ok {
		if cached == nil {
			return nil, nil
		}
		a := cached.(models.Assignment)
		return &a, nil
	}

	var assignment models.Assignment
	err := s.db.Where("editor_id = ? AND category = ? AND delete_at IS NULL", editorID, category).
		First(&assignment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.cache.Set(key, nil, gocache.DefaultExpiration)
			return nil, nil
		}
		return nil, dependencyError("failed to load assignment", err)
	}

	s.cache.Set(key, assignment, gocache.DefaultExpiration)
	return &assignment, nil
}

// Invalidate drops the cached assignment for an editor/category pair after
// an admin change.
func (s *AssignmentStore) Invalidate(editorID int, category string) {
	s.cache.Delete(fmt.Sprintf("%d/%s", editorID, category))
}

// PermissionService is the single authority for "may this actor perform this
// action on this item". Every engine path goes through Authorize; no other
// code compares roles or assignments.
type PermissionService struct {
	assignments AssignmentSource
}

func NewPermissionService(assignments AssignmentSource) *PermissionService {
	return &PermissionService{assignments: assignments}
}

// Authorize resolves whether actor may perform action on item. It returns
// the matched assignment for editors (nil for admins) or a permission
// rejection. Transition legality is checked separately by the engine.
func (s *PermissionService) Authorize(actor Actor, action Action, item *models.ContentItem) (*models.Assignment, *WorkflowError) {
	// Admins bypass category assignment checks entirely.
	if models.IsAdminRole(actor.Role) {
		return nil, nil
	}

	switch action {
	case ActionAddNote:
		// Anyone who can read the item may comment: its author, any editor,
		// regardless of category assignment.
		if actor.ID == item.AuthorID || actor.Role == models.RoleEditor {
			return nil, nil
		}
		return nil, permissionError("no access to content item %d", item.ContentID)

	case ActionSubmit:
		if actor.ID != item.AuthorID {
			return nil, permissionError("only the author may submit content item %d", item.ContentID)
		}
		return nil, nil

	case ActionUnpublish:
		return nil, permissionError("only admins may unpublish content")
	}

	// Everything else is editorial and category-scoped.
	if actor.Role != models.RoleEditor {
		return nil, permissionError("role %s may not perform %s", actor.Role, action)
	}

	assignment, err := s.assignments.AssignmentFor(actor.ID, item.Category)
	if err != nil {
		return nil, AsWorkflowError(err)
	}
	if assignment == nil {
		return nil, permissionError("no assignment for category %q", item.Category)
	}

	switch action {
	case ActionApprove:
		if !assignment.CanApprove {
			return nil, permissionError("assignment for category %q does not allow approval", item.Category)
		}
	case ActionPublish:
		if !assignment.CanPublish {
			return nil, permissionError("assignment for category %q does not allow publishing", item.Category)
		}
	}
	return assignment, nil
}
