package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderClause(t *testing.T) {
	tests := []struct {
		field string
		want  string
	}{
		{"id", "ORDER BY id ASC"},
		{"name", "ORDER BY name ASC, id ASC"},
		{"description", "ORDER BY description ASC, id ASC"},
		{"price", "ORDER BY price ASC, id ASC"},
		{"creationDate", "ORDER BY created_at ASC, id ASC"},
		{"updateDate", "ORDER BY updated_at ASC, id ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			got, err := orderClause(tt.field)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOrderClause_RejectsUnknownField(t *testing.T) {
	_, err := orderClause("name; DROP TABLE products")
	require.Error(t, err)
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%phone%", likePattern("phone"))
	assert.Equal(t, `%100\%\_off\\%`, likePattern(`100%_off\`))
}

func TestParseID(t *testing.T) {
	id, ok := parseID("42")
	require.True(t, ok)
	assert.Equal(t, int64(42), id)

	for _, bad := range []string{"", "abc", "0", "-1", "65f0c0ffee"} {
		_, ok := parseID(bad)
		assert.False(t, ok, bad)
	}
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := migrationFS.ReadDir("migrations")
	require.NoError(t, err)
	assert.Len(t, entries, 4)
}
