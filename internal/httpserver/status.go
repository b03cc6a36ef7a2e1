package httpserver

import (
	"time"

	"github.com/gin-gonic/gin"

	"task-description-updater/internal/poller"
	"task-description-updater/pkg/response"
)

type statusResp struct {
	ListID         string             `json:"list_id"`
	Watermark      int64              `json:"watermark"`
	CyclesRun      int                `json:"cycles_run"`
	Running        bool               `json:"running"`
	LastCycleStart *response.DateTime `json:"last_cycle_start,omitempty"`
	LastCycleEnd   *response.DateTime `json:"last_cycle_end,omitempty"`
	LastCycle      poller.CycleResult `json:"last_cycle"`
	LastError      string             `json:"last_error,omitempty"`
}

func newStatusResp(s poller.Status) statusResp {
	return statusResp{
		ListID:         s.ListID,
		Watermark:      s.Watermark,
		CyclesRun:      s.CyclesRun,
		Running:        s.Running,
		LastCycleStart: dateTime(s.LastCycleStart),
		LastCycleEnd:   dateTime(s.LastCycleEnd),
		LastCycle:      s.LastCycle,
		LastError:      s.LastError,
	}
}

func dateTime(t time.Time) *response.DateTime {
	if t.IsZero() {
		return nil
	}
	d := response.DateTime(t)
	return &d
}

// status returns the poller snapshot.
// @Summary Poller Status
// @Description Watermark, cycle counts and last error of the polling loop
// @Tags Status
// @Produce json
// @Success 200 {object} response.Resp "Poller status"
// @Failure 503 {object} response.Resp "Hierarchy not resolved yet"
// @Router /status [get]
func (srv HTTPServer) status(c *gin.Context) {
	src := srv.statusSource()
	if src == nil {
		response.ServiceUnavailable(c, gin.H{"status": "resolving"})
		return
	}

	response.OK(c, newStatusResp(src.Status()))
}
