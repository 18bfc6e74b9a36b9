package sermons

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afc-website/internal/models"
)

var base = time.Date(2026, 1, 4, 9, 0, 0, 0, time.UTC)

func video(id, title string, daysAgo int) models.Video {
	return models.Video{
		ID:          id,
		VideoID:     id,
		Title:       title,
		PublishedAt: base.AddDate(0, 0, -daysAgo),
		Duration:    "45:00",
	}
}

func TestExtractSpeaker(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		description string
		want        string
	}{
		{"title by clause", "Hope in Trials - by Pastor John", "", "Pastor John"},
		{"title by colon", "Grace Abounds by: Rev. Mary Wanjiku", "", "Rev. Mary Wanjiku"},
		{"title from clause", "A Word from Bishop Otieno - Part 2", "", "Bishop Otieno"},
		{"description speaker", "Sunday Service", "Speaker: Elder James Mwangi\nRecorded live", "Elder James Mwangi"},
		{"description preacher stops at tag", "Sunday Service", "PREACHER: Pastor Ruth<br>", "Pastor Ruth"},
		{"title wins over description", "Faith - by Pastor A", "Speaker: Pastor B", "Pastor A"},
		{"no match", "Walking in Faith Through Difficult Times", "A message on perseverance.", UnknownSpeaker},
		{"by inside a word", "Abby's Testimony", "", UnknownSpeaker},
		{"empty", "", "", UnknownSpeaker},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractSpeaker(tt.title, tt.description))
		})
	}
}

func TestMerge_UploadsWinDuplicates(t *testing.T) {
	upload := video("v1", "Upload title", 1)
	upload.ViewCount = 10

	inPlaylist := video("v1", "Playlist copy", 1)
	inPlaylist.PlaylistID = "PL1"
	inPlaylist.PlaylistTitle = "Faith Series"
	inPlaylist.ViewCount = 99

	playlists := []models.Playlist{{ID: "PL1", Title: "Faith Series", Videos: []models.Video{inPlaylist, video("v2", "Other", 2)}}}

	merged := Merge([]models.Video{upload}, playlists)

	require.Len(t, merged, 2)
	assert.Equal(t, "Upload title", merged[0].Title)
	assert.Equal(t, int64(10), merged[0].ViewCount)
	assert.Equal(t, "PL1", merged[0].PlaylistID)
	assert.Equal(t, "v2", merged[1].VideoID)
}

func TestMerge_FirstPlaylistReferenceKept(t *testing.T) {
	a := video("v1", "Shared", 1)
	a.PlaylistID = "PL1"
	b := video("v1", "Shared", 1)
	b.PlaylistID = "PL2"

	merged := Merge(nil, []models.Playlist{
		{ID: "PL1", Videos: []models.Video{a}},
		{ID: "PL2", Videos: []models.Video{b}},
	})

	require.Len(t, merged, 1)
	assert.Equal(t, "PL1", merged[0].PlaylistID)
}

func TestBuild_EnrichesSermons(t *testing.T) {
	v := video("v1", "Hope in Trials - by Pastor John", 0)
	v.PlaylistID = "PL1"
	playlists := []models.Playlist{{ID: "PL1", Title: "Hope Series", Videos: []models.Video{v}}}

	nairobi, err := time.LoadLocation("Africa/Nairobi")
	require.NoError(t, err)

	sermons := Build(nil, playlists, nairobi)
	require.Len(t, sermons, 1)
	assert.Equal(t, "Pastor John", sermons[0].Speaker)
	assert.Equal(t, "January 4, 2026", sermons[0].Date)
	assert.Equal(t, "Hope Series", sermons[0].PlaylistTitle)
}

func TestApply_SearchFindsFaith(t *testing.T) {
	sermons := Build([]models.Video{
		video("v1", "Walking in Faith Through Difficult Times", 3),
		video("v2", "The Power of Prayer", 2),
		video("v3", "Grace Upon Grace", 1),
	}, nil, time.UTC)

	page := Apply(sermons, Query{Search: "faith", Filter: models.FilterAll, Page: 1})

	require.Equal(t, 1, page.Total)
	assert.Equal(t, "Walking in Faith Through Difficult Times", page.Sermons[0].Title)
}

func TestApply_SearchCoversSpeakerDescriptionAndPlaylist(t *testing.T) {
	a := video("a", "Sermon A - by Pastor Kamau", 1)
	b := video("b", "Sermon B", 2)
	b.Description = "A word on forgiveness"
	c := video("c", "Sermon C", 3)
	c.PlaylistID = "PL1"

	sermons := Build([]models.Video{a, b}, []models.Playlist{{ID: "PL1", Title: "Kingdom Living", Videos: []models.Video{c}}}, time.UTC)

	assert.Equal(t, 1, Apply(sermons, Query{Search: "KAMAU"}).Total)
	assert.Equal(t, 1, Apply(sermons, Query{Search: "forgiveness"}).Total)
	assert.Equal(t, 1, Apply(sermons, Query{Search: "kingdom"}).Total)
	assert.Equal(t, 3, Apply(sermons, Query{Search: "   "}).Total)
	assert.Equal(t, 0, Apply(sermons, Query{Search: "nothing matches"}).Total)
}

func TestApply_Sorting(t *testing.T) {
	old := video("old", "Old", 10)
	old.ViewCount = 500
	mid := video("mid", "Mid", 5)
	mid.ViewCount = 500
	fresh := video("fresh", "Fresh", 1)
	fresh.ViewCount = 20

	sermons := Build([]models.Video{old, fresh, mid}, nil, time.UTC)

	recent := Apply(sermons, Query{Filter: models.FilterRecent})
	assert.Equal(t, []string{"fresh", "mid", "old"}, videoIDs(recent.Sermons))

	all := Apply(sermons, Query{Filter: models.FilterAll})
	assert.Equal(t, []string{"fresh", "mid", "old"}, videoIDs(all.Sermons))

	popular := Apply(sermons, Query{Filter: models.FilterPopular})
	assert.Equal(t, []string{"mid", "old", "fresh"}, videoIDs(popular.Sermons))
}

func TestApply_PlaylistFilter(t *testing.T) {
	inPL := video("p1", "In playlist", 1)
	inPL.PlaylistID = "PL1"
	sermons := Build([]models.Video{video("u1", "Upload", 2)}, []models.Playlist{{ID: "PL1", Videos: []models.Video{inPL}}}, time.UTC)

	page := Apply(sermons, Query{PlaylistID: "PL1"})
	assert.Equal(t, []string{"p1"}, videoIDs(page.Sermons))
}

func TestApply_Pagination(t *testing.T) {
	sermons := Build(numbered(21), nil, time.UTC)

	sizes := []int{}
	for p := 1; p <= 3; p++ {
		page := Apply(sermons, Query{Page: p})
		assert.Equal(t, p, page.Page)
		assert.Equal(t, 3, page.TotalPages)
		sizes = append(sizes, len(page.Sermons))
	}
	assert.Equal(t, []int{9, 9, 3}, sizes)

	// out of range falls back to the first page
	page := Apply(sermons, Query{Page: 4})
	assert.Equal(t, 1, page.Page)
	assert.Len(t, page.Sermons, 9)

	empty := Apply(nil, Query{Page: 2})
	assert.Equal(t, 1, empty.Page)
	assert.Equal(t, 0, empty.TotalPages)
	assert.Empty(t, empty.Sermons)
}

func TestListing_FilterChangeResetsPage(t *testing.T) {
	videos := numbered(21)
	for i := 0; i < 5; i++ {
		videos[i].Title = fmt.Sprintf("Faith part %d", i+1)
	}
	l := NewListing(Build(videos, nil, time.UTC))

	page := l.GoTo(3)
	assert.Equal(t, 3, page.Page)
	assert.Len(t, page.Sermons, 3)

	l.SetSearch("faith")
	page = l.Current()
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 5, page.Total)
	assert.Len(t, page.Sermons, 5)

	l.GoTo(2)
	assert.Equal(t, 1, l.Query().Page)

	l.SetSearch("")
	l.GoTo(2)
	l.SetFilter(models.FilterPopular)
	assert.Equal(t, 1, l.Query().Page)

	l.GoTo(2)
	l.SetPlaylist("PL-none")
	assert.Equal(t, 1, l.Query().Page)
	assert.Equal(t, 0, l.Current().Total)
}

func TestListing_GoToClamps(t *testing.T) {
	l := NewListing(Build(numbered(21), nil, time.UTC))
	assert.Equal(t, 3, l.GoTo(99).Page)
	assert.Equal(t, 1, l.GoTo(-1).Page)
}

func TestPlaylistSummaries(t *testing.T) {
	summaries := PlaylistSummaries([]models.Playlist{
		{ID: "PL1", Title: "Faith", Videos: []models.Video{video("a", "A", 1), video("b", "B", 2)}},
		{ID: "PL2", Title: "Empty"},
	})
	assert.Equal(t, []models.PlaylistSummary{{ID: "PL1", Title: "Faith", Count: 2}}, summaries)
}

func TestFindAndSiblings(t *testing.T) {
	a := video("a", "Part 1", 3)
	a.PlaylistID = "PL1"
	b := video("b", "Part 2", 2)
	b.PlaylistID = "PL1"
	b.Duration = ""
	solo := video("solo", "Standalone", 1)

	sermons := Build([]models.Video{solo}, []models.Playlist{{ID: "PL1", Videos: []models.Video{a, b}}}, time.UTC)

	s, ok := Find(sermons, "a")
	require.True(t, ok)
	siblings := Siblings(sermons, s)
	require.Len(t, siblings, 2)
	assert.Equal(t, "45:00", siblings[0].Duration)
	assert.Equal(t, DefaultDuration, siblings[1].Duration)

	s, ok = Find(sermons, "solo")
	require.True(t, ok)
	assert.Empty(t, Siblings(sermons, s))

	_, ok = Find(sermons, "missing")
	assert.False(t, ok)
}

func TestLatest(t *testing.T) {
	_, ok := Latest(nil)
	assert.False(t, ok)

	sermons := Build([]models.Video{video("old", "Old", 5), video("new", "New", 0), video("mid", "Mid", 2)}, nil, time.UTC)
	latest, ok := Latest(sermons)
	require.True(t, ok)
	assert.Equal(t, "new", latest.VideoID)
}

func numbered(n int) []models.Video {
	out := make([]models.Video, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, video(fmt.Sprintf("v%02d", i), fmt.Sprintf("Sermon %d", i), i))
	}
	return out
}

func videoIDs(sermons []models.Sermon) []string {
	out := make([]string, 0, len(sermons))
	for _, s := range sermons {
		out = append(out, s.VideoID)
	}
	return out
}
