// Package mazeapi exposes maze generation runs over HTTP.
package mazeapi

import (
	"errors"
	"net/http"

	"github.com/beka-birhanu/vinom-mazegen/maze"
	"github.com/beka-birhanu/vinom-mazegen/service"
	"github.com/beka-birhanu/vinom-mazegen/service/i"
	"github.com/gin-gonic/gin"
)

// MazeController manages maze generation runs.
type MazeController struct {
	generator i.MazeGenerator
}

// NewMazeController initializes a MazeController.
func NewMazeController(g i.MazeGenerator) (*MazeController, error) {
	if g == nil {
		return nil, errors.New("maze controller requires a generator")
	}
	return &MazeController{generator: g}, nil
}

// RegisterPublic registers public routes.
func (mc *MazeController) RegisterPublic(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.POST("", mc.start)
		mazes.GET("/current", mc.current)
		mazes.DELETE("/current", mc.cancel)
		mazes.GET("/events", mc.events)
		mazes.GET("/history", mc.history)
	}
}

// start handles run creation requests. A running generation is cancelled first.
func (mc *MazeController) start(ctx *gin.Context) {
	var request StartRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	info, err := mc.generator.Start(ctx.Request.Context(), request.Width, request.Height)
	switch {
	case errors.Is(err, maze.ErrInvalidDimension), errors.Is(err, service.ErrDimensionTooLarge):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, service.ErrGenerationBusy):
		ctx.JSON(http.StatusConflict, gin.H{"error": "another maze generation is running"})
		return
	case err != nil:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while starting maze generation"})
		return
	}

	ctx.JSON(http.StatusAccepted, &RunResponse{
		ID:          info.ID,
		Width:       info.Width,
		Height:      info.Height,
		TotalWidth:  info.TotalWidth,
		TotalHeight: info.TotalHeight,
	})
}

// current returns the observed state of the latest run.
func (mc *MazeController) current(ctx *gin.Context) {
	snapshot, err := mc.generator.Snapshot()
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "no maze generation run"})
		return
	}

	ctx.JSON(http.StatusOK, &SnapshotResponse{
		ID:          snapshot.ID,
		Status:      string(snapshot.Status),
		TotalWidth:  snapshot.TotalWidth,
		TotalHeight: snapshot.TotalHeight,
		Carved:      snapshot.Carved,
		Rows:        snapshot.Rows,
	})
}

// cancel stops the running generation.
func (mc *MazeController) cancel(ctx *gin.Context) {
	if err := mc.generator.Cancel(); err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "no maze generation run"})
		return
	}
	ctx.Status(http.StatusNoContent)
}

// history lists finished runs, most recent first.
func (mc *MazeController) history(ctx *gin.Context) {
	var query HistoryQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if query.Limit == 0 {
		query.Limit = defaultHistoryLimit
	}

	summaries, err := mc.generator.History(ctx.Request.Context(), query.Limit)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while reading run history"})
		return
	}

	response := make([]RunSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		response = append(response, RunSummaryResponse{
			ID:         s.ID,
			Status:     string(s.Status),
			Width:      s.Width,
			Height:     s.Height,
			Carved:     s.Carved,
			FinishedAt: s.FinishedAt,
		})
	}
	ctx.JSON(http.StatusOK, response)
}

// events streams run events as server-sent events until the client leaves.
func (mc *MazeController) events(ctx *gin.Context) {
	events, unsubscribe := mc.generator.Subscribe()
	defer unsubscribe()

	ctx.Header("Content-Type", "text/event-stream")
	ctx.Header("Cache-Control", "no-cache")
	ctx.Header("Connection", "keep-alive")
	ctx.Status(http.StatusOK)
	ctx.Writer.Flush()

	for {
		select {
		case <-ctx.Request.Context().Done():
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			ctx.SSEvent(string(e.Kind), e)
			ctx.Writer.Flush()
		}
	}
}
