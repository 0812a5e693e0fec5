package web

import (
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/poiesic/subnav/core"
	"github.com/poiesic/subnav/storage"
)

const (
	runStartedMessage = "AIフローの実行を開始しました。"
	loadFailedMessage = "補助金データの読み込みに失敗しました。"
	defaultRunLimit   = 20
)

var templateFuncs = template.FuncMap{
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02")
	},
}

type indexData struct {
	Subsidies []*core.Subsidy
	Tag       string
	Error     string
}

func (s *Server) index(c *gin.Context) {
	filter := storage.SubsidyFilter{Tag: c.Query("tag")}
	subsidies, err := s.subsidies.ListSubsidies(c.Request.Context(), filter)
	if err != nil {
		_ = c.Error(err)
		c.HTML(http.StatusInternalServerError, "index.html", indexData{Tag: filter.Tag, Error: loadFailedMessage})
		return
	}
	c.HTML(http.StatusOK, "index.html", indexData{Subsidies: subsidies, Tag: filter.Tag})
}

func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) listSubsidies(c *gin.Context) {
	limit, err := queryLimit(c, 0)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filter := storage.SubsidyFilter{Tag: c.Query("tag"), Limit: limit}
	subsidies, err := s.subsidies.ListSubsidies(c.Request.Context(), filter)
	if err != nil {
		s.internalError(c, err)
		return
	}
	if subsidies == nil {
		subsidies = []*core.Subsidy{}
	}
	c.JSON(http.StatusOK, subsidies)
}

func (s *Server) getSubsidy(c *gin.Context) {
	subsidy, err := s.subsidies.GetSubsidy(c.Request.Context(), c.Param("id"))
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "subsidy not found"})
		return
	}
	if err != nil {
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, subsidy)
}

// runFlow starts or queues a pipeline run and acknowledges at once. Only a
// failure to record the run is reported to the caller.
func (s *Server) runFlow(c *gin.Context) {
	run, err := s.runner.Submit(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"message": runStartedMessage,
		"run_id":  run.ID,
	})
}

func (s *Server) getRun(c *gin.Context) {
	run, err := s.runner.Status(c.Request.Context(), c.Param("id"))
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
		return
	}
	if err != nil {
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, run)
}

func (s *Server) listRuns(c *gin.Context) {
	limit, err := queryLimit(c, defaultRunLimit)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	runs, err := s.runner.List(c.Request.Context(), limit)
	if err != nil {
		s.internalError(c, err)
		return
	}
	if runs == nil {
		runs = []*core.Run{}
	}
	c.JSON(http.StatusOK, runs)
}

func (s *Server) internalError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

func queryLimit(c *gin.Context, fallback int) (int, error) {
	raw := c.Query("limit")
	if raw == "" {
		return fallback, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, errors.New("limit must be a non-negative integer")
	}
	return limit, nil
}
