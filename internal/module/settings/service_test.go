package settings

import (
	"context"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/provely/server/internal/shared/config"
)

type fakeRepo struct {
	row *PlatformSettings
}

func (f *fakeRepo) Get(context.Context) (*PlatformSettings, error) {
	if f.row == nil {
		return nil, ErrSettingsNotFound
	}
	return f.row, nil
}

func (f *fakeRepo) Upsert(_ context.Context, s *PlatformSettings) error {
	f.row = s
	return nil
}

func testConfig() config.InviteConfig {
	return config.InviteConfig{SkillLimit: 5, ProjectLimit: 10, TeamLimit: 10}
}

func TestService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("falls back to defaults when no row exists", func(t *testing.T) {
		svc := NewService(&fakeRepo{}, nil, testConfig(), nil, zap.NewNop())

		row, err := svc.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, 5, row.SkillInviteLimit)
		assert.Equal(t, 10, row.ProjectInviteLimit)
		assert.Equal(t, 10, row.TeamInviteLimit)
	})

	t.Run("returns stored row", func(t *testing.T) {
		repo := &fakeRepo{row: &PlatformSettings{SkillInviteLimit: 3, ProjectInviteLimit: 7, TeamInviteLimit: 4}}
		svc := NewService(repo, nil, testConfig(), nil, zap.NewNop())

		row, err := svc.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, row.SkillInviteLimit)
	})
}

func TestPlatformSettings_LimitFor(t *testing.T) {
	row := &PlatformSettings{SkillInviteLimit: 5, ProjectInviteLimit: 10, TeamInviteLimit: 8}

	assert.Equal(t, 5, row.LimitFor("skills"))
	assert.Equal(t, 10, row.LimitFor("project"))
	assert.Equal(t, 8, row.LimitFor("team"))
	assert.Equal(t, 0, row.LimitFor("employment")) // single-verifier domains have no send limit
}

func TestPlatformSettings_DomainEnabled(t *testing.T) {
	t.Run("empty list enables everything", func(t *testing.T) {
		row := &PlatformSettings{}
		assert.True(t, row.DomainEnabled("skills"))
		assert.True(t, row.DomainEnabled("connection"))
	})

	t.Run("explicit list is exclusive", func(t *testing.T) {
		row := &PlatformSettings{EnabledDomains: pq.StringArray{"skills", "team"}}
		assert.True(t, row.DomainEnabled("skills"))
		assert.True(t, row.DomainEnabled("team"))
		assert.False(t, row.DomainEnabled("employment"))
	})
}
