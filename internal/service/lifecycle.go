package service

import (
	"context"
	"fmt"
	"strings"

	"commons/internal/cache"
	"commons/internal/lock"
	"commons/internal/models"
	"commons/internal/notifications"
	"commons/internal/permission"
	"commons/internal/repository"
	"commons/internal/validation"

	"github.com/cespare/xxhash/v2"
)

// GroupService owns group lifecycle and membership.
type GroupService struct {
	deps
}

// NewGroupService wires a GroupService. A nil locker falls back to an
// in-process keyed lock.
func NewGroupService(repo repository.GroupRepository, locker lock.Locker, opts ...Option) *GroupService {
	return &GroupService{deps: newDeps(repo, locker, "group_service", opts)}
}

// CreateGroupInput carries the attributes of a new group.
type CreateGroupInput struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Category    string                 `json:"category"`
	City        string                 `json:"city"`
	Tags        []string               `json:"tags"`
	AvatarRef   string                 `json:"avatar_ref"`
	Visibility  models.GroupVisibility `json:"visibility"`
	MaxMembers  int                    `json:"max_members"`
	Settings    models.GroupSettings   `json:"settings"`
}

// UpdateGroupInput is a partial update; nil fields are left alone.
type UpdateGroupInput struct {
	Name        *string                 `json:"name,omitempty"`
	Description *string                 `json:"description,omitempty"`
	Category    *string                 `json:"category,omitempty"`
	City        *string                 `json:"city,omitempty"`
	Tags        *[]string               `json:"tags,omitempty"`
	AvatarRef   *string                 `json:"avatar_ref,omitempty"`
	Visibility  *models.GroupVisibility `json:"visibility,omitempty"`
	MaxMembers  *int                    `json:"max_members,omitempty"`
	Settings    *models.GroupSettings   `json:"settings,omitempty"`
}

// ModerationDecision is a moderator's verdict on a pending group.
type ModerationDecision string

const (
	DecisionApprove ModerationDecision = "approve"
	DecisionReject  ModerationDecision = "reject"
)

func attributesOf(g *models.Group) validation.GroupAttributes {
	return validation.GroupAttributes{
		Name:        g.Name,
		Description: g.Description,
		Category:    g.Category,
		City:        g.City,
		Tags:        g.Tags,
		AvatarRef:   g.AvatarRef,
		Visibility:  g.Visibility,
		MaxMembers:  g.MaxMembers,
		Settings:    g.Settings,
	}
}

func applyAttributes(g *models.Group, a validation.GroupAttributes) {
	g.Name = a.Name
	g.Description = a.Description
	g.Category = a.Category
	g.City = a.City
	g.Tags = a.Tags
	g.AvatarRef = a.AvatarRef
	g.Visibility = a.Visibility
	g.MaxMembers = a.MaxMembers
	g.Settings = a.Settings
}

// CreateGroup stores a new Pending group owned by creatorID.
func (s *GroupService) CreateGroup(ctx context.Context, creatorID uint, input CreateGroupInput) (group *models.Group, err error) {
	ctx, finish := s.begin(ctx, "create_group", 0, creatorID)
	defer func() { finish(err) }()

	if creatorID == 0 {
		return nil, models.NewValidationError("creator is required")
	}
	attrs := validation.GroupAttributes{
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		City:        input.City,
		Tags:        input.Tags,
		AvatarRef:   input.AvatarRef,
		Visibility:  input.Visibility,
		MaxMembers:  input.MaxMembers,
		Settings:    input.Settings,
	}.Normalize()
	if err := validation.ValidateGroupAttributes(attrs); err != nil {
		return nil, err
	}

	group = &models.Group{
		CreatorID: creatorID,
		Lifecycle: models.GroupLifecyclePending,
	}
	applyAttributes(group, attrs)
	if err := s.repo.CreateGroup(ctx, group); err != nil {
		return nil, err
	}

	s.publishGroup(ctx, s.event(notifications.EventGroupCreated, group.ID, creatorID, map[string]interface{}{
		"name": group.Name,
	}))
	return group, nil
}

// ModerateGroup applies a moderator's decision to a Pending group. The caller
// has already verified moderatorID holds the platform moderator role.
func (s *GroupService) ModerateGroup(ctx context.Context, groupID, moderatorID uint, decision ModerationDecision, reason string) (group *models.Group, err error) {
	ctx, finish := s.begin(ctx, "moderate_group", groupID, moderatorID)
	defer func() { finish(err) }()

	reason = strings.TrimSpace(reason)
	switch decision {
	case DecisionApprove:
		reason = ""
	case DecisionReject:
		if err := validation.ValidateRejectionReason(reason); err != nil {
			return nil, err
		}
	default:
		return nil, models.NewValidationError(fmt.Sprintf("unknown moderation decision %q", decision))
	}

	err = s.inGroup(ctx, groupID, []string{lock.MembersKey(groupID)}, func(tx repository.GroupRepository, snap *GroupSnapshot) error {
		g := snap.Group
		if g.Lifecycle != models.GroupLifecyclePending {
			return models.NewInvalidStateError(fmt.Sprintf("group is already %s", g.Lifecycle))
		}
		now := s.now()
		g.ReviewedBy = &moderatorID
		g.ReviewedAt = &now
		if decision == DecisionApprove {
			g.Lifecycle = models.GroupLifecycleApproved
		} else {
			g.Lifecycle = models.GroupLifecycleRejected
			g.RejectionReason = reason
		}
		if err := tx.SaveGroup(ctx, &g); err != nil {
			return err
		}
		group = &g
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateListings(ctx, groupID)
	evType := notifications.EventGroupApproved
	payload := map[string]interface{}{"name": group.Name}
	if group.Lifecycle == models.GroupLifecycleRejected {
		evType = notifications.EventGroupRejected
		payload["reason"] = group.RejectionReason
	}
	ev := s.event(evType, groupID, moderatorID, payload)
	s.publishGroup(ctx, ev)
	s.publishUser(ctx, group.CreatorID, ev)
	return group, nil
}

// UpdateGroupAttributes applies a creator's partial edit. Lifecycle is untouched.
func (s *GroupService) UpdateGroupAttributes(ctx context.Context, groupID, actorID uint, patch UpdateGroupInput) (group *models.Group, err error) {
	ctx, finish := s.begin(ctx, "update_group", groupID, actorID)
	defer func() { finish(err) }()

	err = s.inGroup(ctx, groupID, []string{lock.MembersKey(groupID)}, func(tx repository.GroupRepository, snap *GroupSnapshot) error {
		if err := snap.authorize(permission.ActionUpdateAttributes, actorID); err != nil {
			return err
		}
		attrs := attributesOf(&snap.Group)
		if patch.Name != nil {
			attrs.Name = *patch.Name
		}
		if patch.Description != nil {
			attrs.Description = *patch.Description
		}
		if patch.Category != nil {
			attrs.Category = *patch.Category
		}
		if patch.City != nil {
			attrs.City = *patch.City
		}
		if patch.Tags != nil {
			attrs.Tags = *patch.Tags
		}
		if patch.AvatarRef != nil {
			attrs.AvatarRef = *patch.AvatarRef
		}
		if patch.Visibility != nil {
			attrs.Visibility = *patch.Visibility
		}
		if patch.MaxMembers != nil {
			attrs.MaxMembers = *patch.MaxMembers
		}
		if patch.Settings != nil {
			attrs.Settings = *patch.Settings
		}
		attrs = attrs.Normalize()
		if err := validation.ValidateGroupAttributes(attrs); err != nil {
			return err
		}
		if attrs.MaxMembers < snap.MemberCount() {
			return models.NewValidationError(fmt.Sprintf(
				"max members cannot be lower than the current member count (%d)", snap.MemberCount()))
		}

		g := snap.Group
		applyAttributes(&g, attrs)
		if err := tx.SaveGroup(ctx, &g); err != nil {
			return err
		}
		group = &g
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateListings(ctx, groupID)
	s.publishGroup(ctx, s.event(notifications.EventGroupUpdated, groupID, actorID, nil))
	return group, nil
}

// DeleteGroup removes the group with its memberships, messages and join
// requests. It holds both of the group's locks so no post interleaves.
func (s *GroupService) DeleteGroup(ctx context.Context, groupID, actorID uint) (err error) {
	ctx, finish := s.begin(ctx, "delete_group", groupID, actorID)
	defer func() { finish(err) }()

	keys := []string{lock.MembersKey(groupID), lock.MessagesKey(groupID)}
	err = s.inGroup(ctx, groupID, keys, func(tx repository.GroupRepository, snap *GroupSnapshot) error {
		if err := snap.authorize(permission.ActionDeleteGroup, actorID); err != nil {
			return err
		}
		return tx.DeleteGroupCascade(ctx, groupID)
	})
	if err != nil {
		return err
	}

	s.invalidateListings(ctx, groupID)
	s.publishGroup(ctx, s.event(notifications.EventGroupDeleted, groupID, actorID, nil))
	return nil
}

// GetGroup returns a group the requester may see. Non-approved groups are
// hidden from everyone but the creator, private ones from non-members.
func (s *GroupService) GetGroup(ctx context.Context, groupID, requesterID uint) (group *models.Group, err error) {
	ctx, finish := s.begin(ctx, "get_group", groupID, requesterID)
	defer func() { finish(err) }()

	// The version is read before the row so a fill that loses a race with a
	// write lands under a key nobody reads any more.
	key := cache.GroupKey(groupID, s.cache.Version(ctx, cache.GroupNamespace(groupID)))
	group, err = cache.Aside(ctx, s.cache, key, cache.GroupTTL, func(ctx context.Context) (*models.Group, error) {
		return s.repo.GetGroup(ctx, groupID)
	})
	if err != nil {
		return nil, err
	}
	var membership *models.GroupMembership
	if requesterID != 0 && requesterID != group.CreatorID {
		if membership, err = s.repo.GetMembership(ctx, groupID, requesterID); err != nil {
			return nil, err
		}
	}

	d := permission.Evaluate(permission.Input{
		Action:     permission.ActionViewGroup,
		Role:       permission.RoleOf(group, requesterID, membership),
		Lifecycle:  group.Lifecycle,
		Visibility: group.Visibility,
	})
	if !d.Allowed {
		return nil, models.NewNotFoundError("Group", groupID)
	}
	return group, nil
}

// ListApprovedGroups is the discovery listing: Approved, Public groups only.
// Results are cached per filter under the current listing version.
func (s *GroupService) ListApprovedGroups(ctx context.Context, filter repository.GroupFilter) (groups []models.Group, err error) {
	ctx, finish := s.begin(ctx, "list_approved_groups", 0, 0)
	defer func() { finish(err) }()

	f := filter.Normalize()
	key := cache.ListingKey(s.cache.Version(ctx, cache.ListingNamespace), filterHash(f))
	return cache.Aside(ctx, s.cache, key, s.listingTTL, func(ctx context.Context) ([]models.Group, error) {
		return s.repo.ListApprovedGroups(ctx, f)
	})
}

func filterHash(f repository.GroupFilter) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(fmt.Sprintf("%s|%s|%s|%s|%d|%d",
		f.Category, strings.ToLower(f.City), f.Tag, f.Query, f.Limit, f.Offset)))
}

// ListPendingGroups returns the moderation queue, oldest first.
func (s *GroupService) ListPendingGroups(ctx context.Context) ([]models.Group, error) {
	return s.repo.ListPendingGroups(ctx)
}

// ListGroupsForUser returns groups the user created (any state) or joined.
func (s *GroupService) ListGroupsForUser(ctx context.Context, userID uint) ([]models.Group, error) {
	return s.repo.ListGroupsForUser(ctx, userID)
}
