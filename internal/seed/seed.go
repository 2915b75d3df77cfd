// Package seed creates demo and development data for the group subsystem.
// Everything goes through the services so seeded data obeys the same rules
// as live traffic.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"commons/internal/middleware"
	"commons/internal/models"
	"commons/internal/service"
	"commons/internal/validation"
)

// Summary counts what a run created.
type Summary struct {
	Groups   int
	Members  int
	Messages int
}

// Seeder applies fixtures through the group services.
type Seeder struct {
	groups   *service.GroupService
	messages *service.MessageChannel
}

// NewSeeder returns a Seeder bound to the given services.
func NewSeeder(groups *service.GroupService, messages *service.MessageChannel) *Seeder {
	return &Seeder{groups: groups, messages: messages}
}

// Apply creates every fixture group in order and stops at the first error.
func (s *Seeder) Apply(ctx context.Context, f *Fixtures) (Summary, error) {
	var sum Summary
	for i := range f.Groups {
		if err := s.applyGroup(ctx, f.ModeratorID, &f.Groups[i], &sum); err != nil {
			return sum, fmt.Errorf("seed group %q: %w", f.Groups[i].Name, err)
		}
	}
	middleware.Logger.Info("seed complete",
		slog.Int("groups", sum.Groups),
		slog.Int("members", sum.Members),
		slog.Int("messages", sum.Messages))
	return sum, nil
}

func (s *Seeder) applyGroup(ctx context.Context, moderatorID uint, g *GroupFixture, sum *Summary) error {
	group, err := s.groups.CreateGroup(ctx, g.CreatorID, service.CreateGroupInput{
		Name:        g.Name,
		Description: g.Description,
		Category:    g.Category,
		City:        g.City,
		Tags:        g.Tags,
		Visibility:  models.GroupVisibility(g.Visibility),
		MaxMembers:  g.MaxMembers,
		Settings: models.GroupSettings{
			AllowMemberInvites: g.MemberInvites,
			RequireApproval:    g.RequireApproval,
		},
	})
	if err != nil {
		return err
	}
	sum.Groups++

	switch g.Decision {
	case "approve":
		if _, err := s.groups.ModerateGroup(ctx, group.ID, moderatorID, service.DecisionApprove, ""); err != nil {
			return err
		}
	case "reject":
		reason := g.RejectionReason
		if reason == "" {
			reason = "seeded rejection"
		}
		if len(reason) > validation.MaxRejectionReasonLen {
			reason = reason[:validation.MaxRejectionReasonLen]
		}
		_, err := s.groups.ModerateGroup(ctx, group.ID, moderatorID, service.DecisionReject, reason)
		return err
	default:
		return nil
	}

	for _, uid := range g.Members {
		if _, err := s.groups.Invite(ctx, group.ID, g.CreatorID, uid); err != nil {
			return err
		}
		sum.Members++
	}
	for _, uid := range g.Admins {
		if _, err := s.groups.Promote(ctx, group.ID, g.CreatorID, uid); err != nil {
			return err
		}
	}
	for _, content := range g.Messages {
		if _, err := s.messages.Post(ctx, service.PostMessageInput{
			GroupID:  group.ID,
			SenderID: g.CreatorID,
			Kind:     models.MessageKindText,
			Content:  content,
		}); err != nil {
			return err
		}
		sum.Messages++
	}
	return nil
}
