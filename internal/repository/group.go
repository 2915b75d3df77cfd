// Package repository implements the data access layer for groups.
package repository

import (
	"context"
	"errors"
	"strings"

	"commons/internal/models"
	"commons/internal/observability"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GroupFilter narrows discovery listings. Empty fields match everything.
type GroupFilter struct {
	Category string `json:"category,omitempty"`
	City     string `json:"city,omitempty"`
	Tag      string `json:"tag,omitempty"`
	Query    string `json:"q,omitempty"`
	Limit    int    `json:"limit"`
	Offset   int    `json:"offset"`
}

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// Normalize clamps paging and canonicalises the text filters.
func (f GroupFilter) Normalize() GroupFilter {
	f.Category = strings.ToLower(strings.TrimSpace(f.Category))
	f.City = strings.TrimSpace(f.City)
	f.Tag = strings.ToLower(strings.TrimSpace(f.Tag))
	f.Query = strings.ToLower(strings.TrimSpace(f.Query))
	if f.Limit <= 0 {
		f.Limit = defaultListLimit
	}
	if f.Limit > maxListLimit {
		f.Limit = maxListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}

// GroupRepository defines persistence operations for groups and everything
// owned by a group.
type GroupRepository interface {
	// Transaction runs fn against a repository bound to one database transaction.
	Transaction(ctx context.Context, fn func(repo GroupRepository) error) error

	CreateGroup(ctx context.Context, group *models.Group) error
	GetGroup(ctx context.Context, id uint) (*models.Group, error)
	// GetGroupForUpdate loads the group row locked until the transaction ends.
	GetGroupForUpdate(ctx context.Context, id uint) (*models.Group, error)
	SaveGroup(ctx context.Context, group *models.Group) error
	// DeleteGroupCascade removes the group with its memberships, messages and
	// join requests.
	DeleteGroupCascade(ctx context.Context, id uint) error
	ListApprovedGroups(ctx context.Context, filter GroupFilter) ([]models.Group, error)
	ListPendingGroups(ctx context.Context) ([]models.Group, error)
	ListGroupsForUser(ctx context.Context, userID uint) ([]models.Group, error)

	GetMembership(ctx context.Context, groupID, userID uint) (*models.GroupMembership, error)
	ListMemberships(ctx context.Context, groupID uint) ([]models.GroupMembership, error)
	CreateMembership(ctx context.Context, m *models.GroupMembership) error
	UpdateMembershipRole(ctx context.Context, groupID, userID uint, role models.GroupRole) error
	DeleteMembership(ctx context.Context, groupID, userID uint) error

	LastMessage(ctx context.Context, groupID uint) (*models.GroupMessage, error)
	CreateMessage(ctx context.Context, msg *models.GroupMessage) error
	ListMessagesAfter(ctx context.Context, groupID uint, afterSeq uint64, limit int) ([]models.GroupMessage, error)

	CreateJoinRequest(ctx context.Context, req *models.GroupJoinRequest) error
	GetJoinRequest(ctx context.Context, groupID, requestID uint) (*models.GroupJoinRequest, error)
	GetPendingJoinRequest(ctx context.Context, groupID, userID uint) (*models.GroupJoinRequest, error)
	ListPendingJoinRequests(ctx context.Context, groupID uint) ([]models.GroupJoinRequest, error)
	SaveJoinRequest(ctx context.Context, req *models.GroupJoinRequest) error
}

type groupRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewGroupRepository returns a new GroupRepository implementation.
func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepository{db: db, log: observability.NewRepoLogger("groups")}
}

func (r *groupRepository) Transaction(ctx context.Context, fn func(repo GroupRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&groupRepository{db: tx, log: r.log})
	})
}

// internal wraps an unexpected driver error, logging it once.
func (r *groupRepository) internal(ctx context.Context, err error, op string) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return err
	}
	r.log.LogError(ctx, err, op)
	return models.NewInternalError(err)
}

// track opens a repository span and starts the query latency timer.
func track(ctx context.Context, method, operation, table string) (context.Context, func()) {
	ctx, span := observability.TraceRepositoryMethod(ctx, method, table)
	stop := observability.TrackQuery(operation, table)
	return ctx, func() {
		stop()
		span.End()
	}
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *groupRepository) CreateGroup(ctx context.Context, group *models.Group) error {
	ctx, done := track(ctx, "CreateGroup", "create", "groups")
	defer done()
	if err := r.db.WithContext(ctx).Create(group).Error; err != nil {
		return r.internal(ctx, err, "create_group")
	}
	r.log.LogCreate(ctx, map[string]interface{}{"group_id": group.ID, "creator_id": group.CreatorID})
	return nil
}

func (r *groupRepository) getGroup(ctx context.Context, id uint, lock bool) (*models.Group, error) {
	ctx, done := track(ctx, "GetGroup", "read", "groups")
	defer done()
	q := r.db.WithContext(ctx)
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var group models.Group
	if err := q.First(&group, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Group", id)
		}
		return nil, r.internal(ctx, err, "get_group")
	}
	return &group, nil
}

func (r *groupRepository) GetGroup(ctx context.Context, id uint) (*models.Group, error) {
	return r.getGroup(ctx, id, false)
}

func (r *groupRepository) GetGroupForUpdate(ctx context.Context, id uint) (*models.Group, error) {
	return r.getGroup(ctx, id, true)
}

func (r *groupRepository) SaveGroup(ctx context.Context, group *models.Group) error {
	ctx, done := track(ctx, "SaveGroup", "update", "groups")
	defer done()
	if err := r.db.WithContext(ctx).Save(group).Error; err != nil {
		return r.internal(ctx, err, "save_group")
	}
	r.log.LogUpdate(ctx, map[string]interface{}{"group_id": group.ID, "lifecycle": group.Lifecycle})
	return nil
}

func (r *groupRepository) DeleteGroupCascade(ctx context.Context, id uint) error {
	ctx, done := track(ctx, "DeleteGroupCascade", "delete", "groups")
	defer done()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, owned := range []interface{}{
			&models.GroupMessage{},
			&models.GroupMembership{},
			&models.GroupJoinRequest{},
		} {
			if err := tx.Where("group_id = ?", id).Delete(owned).Error; err != nil {
				return r.internal(ctx, err, "delete_group_cascade")
			}
		}
		res := tx.Delete(&models.Group{}, id)
		if res.Error != nil {
			return r.internal(ctx, res.Error, "delete_group")
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Group", id)
		}
		r.log.LogDelete(ctx, map[string]interface{}{"group_id": id})
		return nil
	})
}

func (r *groupRepository) ListApprovedGroups(ctx context.Context, filter GroupFilter) ([]models.Group, error) {
	ctx, done := track(ctx, "ListApprovedGroups", "list_approved", "groups")
	defer done()
	f := filter.Normalize()

	q := r.db.WithContext(ctx).
		Where("lifecycle = ? AND visibility = ?", models.GroupLifecycleApproved, models.GroupVisibilityPublic)
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.City != "" {
		q = q.Where("LOWER(city) = ?", strings.ToLower(f.City))
	}
	if f.Tag != "" {
		// Tags are a JSON array of normalised strings.
		q = q.Where("tags LIKE ?", `%"`+escapeLike(f.Tag)+`"%`)
	}
	if f.Query != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+escapeLike(f.Query)+"%")
	}

	var groups []models.Group
	err := q.Order("created_at DESC").Order("id DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&groups).Error
	if err != nil {
		return nil, r.internal(ctx, err, "list_approved_groups")
	}
	return groups, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer("%", "", "_", "").Replace(s)
}

func (r *groupRepository) ListPendingGroups(ctx context.Context) ([]models.Group, error) {
	ctx, done := track(ctx, "ListPendingGroups", "list_pending", "groups")
	defer done()
	var groups []models.Group
	err := r.db.WithContext(ctx).
		Where("lifecycle = ?", models.GroupLifecyclePending).
		Order("created_at ASC").Order("id ASC").
		Find(&groups).Error
	if err != nil {
		return nil, r.internal(ctx, err, "list_pending_groups")
	}
	return groups, nil
}

func (r *groupRepository) ListGroupsForUser(ctx context.Context, userID uint) ([]models.Group, error) {
	ctx, done := track(ctx, "ListGroupsForUser", "list_for_user", "groups")
	defer done()
	joined := r.db.Model(&models.GroupMembership{}).Select("group_id").Where("user_id = ?", userID)

	var groups []models.Group
	err := r.db.WithContext(ctx).
		Where("creator_id = ?", userID).
		Or("id IN (?)", joined).
		Order("created_at DESC").Order("id DESC").
		Find(&groups).Error
	if err != nil {
		return nil, r.internal(ctx, err, "list_groups_for_user")
	}
	return groups, nil
}
