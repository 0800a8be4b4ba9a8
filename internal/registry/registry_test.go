package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refradar/refradar/internal/domain"
)

func seedMemory(t *testing.T) *Memory {
	t.Helper()
	reg := NewMemory()
	for _, p := range []domain.Provider{
		{ID: "prov-davies", Name: "Davies Electrical", Phone: "+27821234567", Tags: []string{"electrical", "Sandton"}},
		{ID: "prov-mikes", Name: "Mike's Plumbing", Phone: "+27831112222", Tags: []string{"plumbing"}},
	} {
		_, err := reg.Add(context.Background(), p)
		require.NoError(t, err)
	}
	return reg
}

func TestMemory_AddAssignsID(t *testing.T) {
	reg := NewMemory()

	stored, err := reg.Add(context.Background(), domain.Provider{Name: "Davies Electrical"})
	require.NoError(t, err)
	assert.NotEmpty(t, stored.ID)
	assert.False(t, stored.CreatedAt.IsZero())
	assert.False(t, stored.UpdatedAt.IsZero())
}

func TestMemory_ByName(t *testing.T) {
	reg := seedMemory(t)

	testCases := []struct {
		name    string
		query   string
		wantIDs []string
	}{
		{name: "case-insensitive exact", query: "davies electrical", wantIDs: []string{"prov-davies"}},
		{name: "query contains name", query: "Davies Electrical Services", wantIDs: []string{"prov-davies"}},
		{name: "name contains query", query: "Davies", wantIDs: []string{"prov-davies"}},
		{name: "collapsed whitespace", query: "  Mike's   Plumbing ", wantIDs: []string{"prov-mikes"}},
		{name: "no candidates", query: "Joe's Roofing", wantIDs: nil},
		{name: "empty query", query: "", wantIDs: nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := reg.ByName(context.Background(), tc.query)
			require.NoError(t, err)

			var ids []string
			for _, p := range got {
				ids = append(ids, p.ID)
			}
			assert.ElementsMatch(t, tc.wantIDs, ids)
		})
	}
}

func TestMemory_ByPhone(t *testing.T) {
	reg := seedMemory(t)

	got, err := reg.ByPhone(context.Background(), "+27821234567")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "prov-davies", got[0].ID)

	none, err := reg.ByPhone(context.Background(), "+27849999999")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMemory_ByTags(t *testing.T) {
	reg := seedMemory(t)

	got, err := reg.ByTags(context.Background(), []string{"sandton", "nonsense"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "prov-davies", got[0].ID)

	none, err := reg.ByTags(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestTagRoundTrip(t *testing.T) {
	stored := joinTags([]string{"Electrical", " sandton ", ""})
	assert.Equal(t, ",electrical,sandton,", stored)
	assert.Equal(t, []string{"electrical", "sandton"}, splitTags(stored))

	assert.Equal(t, ",,", joinTags(nil))
	assert.Nil(t, splitTags(",,"))
}
