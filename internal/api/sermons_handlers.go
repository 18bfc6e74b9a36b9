package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/afc-website/internal/models"
	"github.com/afc-website/internal/sermons"
)

func (s *Server) loadSermons(c *gin.Context) ([]models.Sermon, models.DirectorySnapshot) {
	snap := s.directory.Load(c.Request.Context())
	return sermons.Build(snap.Uploads, snap.Playlists, s.catalog.Location()), snap
}

// listSermons handles GET /api/sermons?q=&filter=&playlist=&page=
func (s *Server) listSermons(c *gin.Context) {
	page := 1
	if p := c.Query("page"); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "page must be a number"})
			return
		}
		page = n
	}

	all, snap := s.loadSermons(c)
	result := sermons.Apply(all, sermons.Query{
		Search:     c.Query("q"),
		Filter:     models.ParseSermonFilter(c.Query("filter")),
		PlaylistID: c.Query("playlist"),
		Page:       page,
	})

	c.JSON(http.StatusOK, gin.H{
		"sermons":    result.Sermons,
		"page":       result.Page,
		"pageSize":   result.PageSize,
		"totalPages": result.TotalPages,
		"total":      result.Total,
		"source":     snap.Source,
		"degraded":   snap.Degraded,
	})
}

// latestSermon handles GET /api/sermons/latest
func (s *Server) latestSermon(c *gin.Context) {
	all, snap := s.loadSermons(c)
	resp := gin.H{"sermon": nil, "source": snap.Source, "degraded": snap.Degraded}
	if latest, ok := sermons.Latest(all); ok {
		resp["sermon"] = latest
	}
	c.JSON(http.StatusOK, resp)
}

// getSermon handles GET /api/sermons/:videoId
func (s *Server) getSermon(c *gin.Context) {
	all, snap := s.loadSermons(c)
	sermon, ok := sermons.Find(all, c.Param("videoId"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sermon not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sermon":   sermon,
		"playlist": sermons.Siblings(all, sermon),
		"source":   snap.Source,
		"degraded": snap.Degraded,
	})
}

// listPlaylists handles GET /api/playlists
func (s *Server) listPlaylists(c *gin.Context) {
	snap := s.directory.Load(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"playlists": sermons.PlaylistSummaries(snap.Playlists),
		"source":    snap.Source,
		"degraded":  snap.Degraded,
	})
}
