// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"commons/internal/models"
)

const (
	MaxGroupNameLen        = 120
	MaxGroupDescriptionLen = 5000
	MaxCategoryLen         = 60
	MaxCityLen             = 80
	MaxTags                = 10
	MaxTagLen              = 30
	MaxRejectionReasonLen  = 1000
	MaxJoinRequestNoteLen  = 500
	MaxMessageContentLen   = 10000
	MaxMediaRefLen         = 512
)

// NormalizeTags trims, lower-cases and de-duplicates tags, keeping first
// occurrence order and dropping empties.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// ValidateTags checks already-normalised tags.
func ValidateTags(tags []string) error {
	if len(tags) > MaxTags {
		return fmt.Errorf("at most %d tags are allowed", MaxTags)
	}
	for _, t := range tags {
		if utf8.RuneCountInString(t) > MaxTagLen {
			return fmt.Errorf("tag %q exceeds %d characters", t, MaxTagLen)
		}
		if strings.ContainsAny(t, `"%_`) {
			return fmt.Errorf("tag %q contains reserved characters", t)
		}
	}
	return nil
}

// ValidateGroupName requires a non-blank name within the length bound.
func ValidateGroupName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if utf8.RuneCountInString(name) > MaxGroupNameLen {
		return fmt.Errorf("name must not exceed %d characters", MaxGroupNameLen)
	}
	return nil
}

// ValidateGroupDescription requires a non-blank description within the length bound.
func ValidateGroupDescription(desc string) error {
	desc = strings.TrimSpace(desc)
	if desc == "" {
		return fmt.Errorf("description is required")
	}
	if utf8.RuneCountInString(desc) > MaxGroupDescriptionLen {
		return fmt.Errorf("description must not exceed %d characters", MaxGroupDescriptionLen)
	}
	return nil
}

// ValidateMaxMembers enforces the [MinGroupMembers, MaxGroupMembers] bound.
func ValidateMaxMembers(n int) error {
	if n < models.MinGroupMembers || n > models.MaxGroupMembers {
		return fmt.Errorf("max members must be between %d and %d", models.MinGroupMembers, models.MaxGroupMembers)
	}
	return nil
}

// ValidateVisibility accepts public or private.
func ValidateVisibility(v models.GroupVisibility) error {
	switch v {
	case models.GroupVisibilityPublic, models.GroupVisibilityPrivate:
		return nil
	default:
		return fmt.Errorf("visibility must be %q or %q", models.GroupVisibilityPublic, models.GroupVisibilityPrivate)
	}
}

// ValidateMediaRef accepts empty, or an absolute http(s) URL / opaque key
// within the length bound.
func ValidateMediaRef(ref string) error {
	if ref == "" {
		return nil
	}
	if len(ref) > MaxMediaRefLen {
		return fmt.Errorf("media reference must not exceed %d characters", MaxMediaRefLen)
	}
	if strings.Contains(ref, "://") {
		u, err := url.Parse(ref)
		if err != nil || (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
			return fmt.Errorf("media reference must be an http(s) URL or an opaque key")
		}
	}
	if strings.ContainsAny(ref, " \t\n") {
		return fmt.Errorf("media reference must not contain whitespace")
	}
	return nil
}

func checkLen(field, v string, limit int) error {
	if utf8.RuneCountInString(v) > limit {
		return fmt.Errorf("%s must not exceed %d characters", field, limit)
	}
	return nil
}

// GroupAttributes is the creator-editable surface of a group.
type GroupAttributes struct {
	Name        string
	Description string
	Category    string
	City        string
	Tags        []string
	AvatarRef   string
	Visibility  models.GroupVisibility
	MaxMembers  int
	Settings    models.GroupSettings
}

// Normalize trims text fields, normalises tags and defaults visibility.
func (a GroupAttributes) Normalize() GroupAttributes {
	a.Name = strings.TrimSpace(a.Name)
	a.Description = strings.TrimSpace(a.Description)
	a.Category = strings.ToLower(strings.TrimSpace(a.Category))
	a.City = strings.TrimSpace(a.City)
	a.AvatarRef = strings.TrimSpace(a.AvatarRef)
	a.Tags = NormalizeTags(a.Tags)
	if a.Visibility == "" {
		a.Visibility = models.GroupVisibilityPublic
	}
	return a
}

// ValidateGroupAttributes validates normalised attributes and returns the
// first problem as a validation error.
func ValidateGroupAttributes(a GroupAttributes) error {
	checks := []error{
		ValidateGroupName(a.Name),
		ValidateGroupDescription(a.Description),
		checkLen("category", a.Category, MaxCategoryLen),
		checkLen("city", a.City, MaxCityLen),
		ValidateTags(a.Tags),
		ValidateMediaRef(a.AvatarRef),
		ValidateVisibility(a.Visibility),
		ValidateMaxMembers(a.MaxMembers),
	}
	for _, err := range checks {
		if err != nil {
			return models.NewValidationError(err.Error())
		}
	}
	return nil
}

// ValidateRejectionReason requires a non-blank reason within the length bound.
func ValidateRejectionReason(reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return models.NewValidationError("a rejection reason is required")
	}
	if err := checkLen("rejection reason", reason, MaxRejectionReasonLen); err != nil {
		return models.NewValidationError(err.Error())
	}
	return nil
}

// ValidateJoinRequestNote bounds the optional note.
func ValidateJoinRequestNote(note string) error {
	if err := checkLen("note", note, MaxJoinRequestNoteLen); err != nil {
		return models.NewValidationError(err.Error())
	}
	return nil
}

// ValidateMessage checks a message body against its kind.
func ValidateMessage(kind models.MessageKind, content, mediaRef string) error {
	switch kind {
	case models.MessageKindText, models.MessageKindAnnouncement:
		if strings.TrimSpace(content) == "" {
			return models.NewValidationError("message content is required")
		}
	case models.MessageKindImage:
		if mediaRef == "" {
			return models.NewValidationError("image messages require a media reference")
		}
	default:
		return models.NewValidationError(fmt.Sprintf("unknown message kind %q", kind))
	}
	if utf8.RuneCountInString(content) > MaxMessageContentLen {
		return models.NewValidationError(fmt.Sprintf("message content too long (max %d characters)", MaxMessageContentLen))
	}
	if err := ValidateMediaRef(mediaRef); err != nil {
		return models.NewValidationError(err.Error())
	}
	return nil
}
