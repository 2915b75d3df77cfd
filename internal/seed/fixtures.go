package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Fixtures describe a fixed demo dataset.
type Fixtures struct {
	ModeratorID uint           `yaml:"moderator_id"`
	Groups      []GroupFixture `yaml:"groups"`
}

// GroupFixture is one group with its people and messages. Decision is
// "approve", "reject" or empty to leave the group pending.
type GroupFixture struct {
	Name            string   `yaml:"name"`
	Description     string   `yaml:"description"`
	Category        string   `yaml:"category"`
	City            string   `yaml:"city"`
	Tags            []string `yaml:"tags"`
	Visibility      string   `yaml:"visibility"`
	MaxMembers      int      `yaml:"max_members"`
	RequireApproval bool     `yaml:"require_approval"`
	MemberInvites   bool     `yaml:"member_invites"`
	CreatorID       uint     `yaml:"creator_id"`
	Decision        string   `yaml:"decision"`
	RejectionReason string   `yaml:"rejection_reason"`
	Members         []uint   `yaml:"members"`
	Admins          []uint   `yaml:"admins"`
	Messages        []string `yaml:"messages"`
}

// ParseFixtures decodes a YAML fixture document.
func ParseFixtures(data []byte) (*Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	for i, g := range f.Groups {
		if g.CreatorID == 0 {
			return nil, fmt.Errorf("fixture group %d (%q): creator_id is required", i, g.Name)
		}
		switch g.Decision {
		case "", "approve", "reject":
		default:
			return nil, fmt.Errorf("fixture group %d (%q): unknown decision %q", i, g.Name, g.Decision)
		}
	}
	return &f, nil
}

// LoadFixtures reads and parses the fixture file at path.
func LoadFixtures(path string) (*Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures: %w", err)
	}
	return ParseFixtures(data)
}
