package content

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/garden/slug"
)

func TestRecordRoundTripNote(t *testing.T) {
	p, err := Parse("essays/on-notes.md", []byte("---\ntitle: On Notes\nup: \"[[maps/thinking]]\"\n---\nBody [[index]]"))
	require.NoError(t, err)
	created := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	p.Dates = &Dates{Created: created}
	p.Links = []slug.Full{"index"}

	got, err := FromRecord(p.Record())
	require.NoError(t, err)

	assert.Equal(t, p.Slug, got.Slug)
	assert.Equal(t, "On Notes", got.Title())
	assert.Equal(t, p.Text, got.Text)
	assert.Equal(t, []string{"maps/thinking"}, got.Frontmatter.Link("up").Targets())
	require.NotNil(t, got.Dates)
	assert.Equal(t, created, got.Dates.Created)
	assert.Equal(t, []slug.Full{"index"}, got.Links)
}

func TestRecordRoundTripVirtual(t *testing.T) {
	p := virtualPage("tags/thinking", "thinking", KindTag)

	got, err := FromRecord(p.Record())
	require.NoError(t, err)

	assert.True(t, got.Virtual)
	assert.Equal(t, KindTag, got.Kind)
	assert.Equal(t, "thinking", got.Title())
	assert.Nil(t, got.Dates)
}

func TestFromRecordBadSource(t *testing.T) {
	_, err := FromRecord(Record{Slug: "broken", FilePath: "broken.md", Source: []byte("---\ntitle: [unclosed\n---\n")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}
