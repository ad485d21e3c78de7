package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/secureexam/portal-backend/internal/service"
)

const (
	monitorRefreshInterval = 5 * time.Second
	monitorWriteTimeout    = 10 * time.Second
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// An empty allowed-origins slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// MonitorHandler streams live exam activity to the admin dashboard.
type MonitorHandler struct {
	reportService *service.ReportService
	log           zerolog.Logger
	upgrader      websocket.Upgrader
}

// NewMonitorHandler creates a new MonitorHandler.
func NewMonitorHandler(reportService *service.ReportService, log zerolog.Logger, allowedOrigins []string) *MonitorHandler {
	return &MonitorHandler{
		reportService: reportService,
		log:           log.With().Str("component", "monitor_handler").Logger(),
		upgrader:      buildUpgrader(allowedOrigins),
	}
}

// MonitorStream godoc
// WS /ws/v1/admin/monitor?token=...
// Upgrades to WebSocket and pushes a live-stats snapshot immediately,
// then on a fixed interval until the client disconnects.
func (h *MonitorHandler) MonitorStream(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	h.log.Info().Str("remote", conn.RemoteAddr().String()).Msg("Admin attached to live monitor")

	ctx := c.Request.Context()

	// Drain client frames so control messages (close, ping) get processed.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(monitorRefreshInterval)
	defer ticker.Stop()

	for {
		stats, err := h.reportService.LiveStats(ctx)
		if err != nil {
			h.log.Warn().Err(err).Msg("Failed to compute live stats")
		} else {
			conn.SetWriteDeadline(time.Now().Add(monitorWriteTimeout))
			if err := conn.WriteJSON(gin.H{"type": "stats", "data": stats}); err != nil {
				h.log.Info().Str("remote", conn.RemoteAddr().String()).Msg("Admin disconnected from live monitor")
				return
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
