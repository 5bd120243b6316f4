package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/percept-vision/percept/postprocess"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = (wsPongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		// Origin is enforced by the CORS configuration on the HTTP side.
		return true
	},
}

// wsError is pushed to the client when a batch cannot be processed. The
// connection stays open so later batches still go through.
type wsError struct {
	Error string `json:"error"`
}

// handleNMSStream upgrades to a websocket and runs suppression over each
// batch the client sends, answering every NMSRequest with an NMSResponse.
func (s *Server) handleNMSStream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "error", err)
		return
	}
	defer func() { _ = conn.Close() }()

	wsConnectionsActive.Inc()
	defer wsConnectionsActive.Dec()

	conn.SetReadLimit(int64(s.config.MaxUploadMB) << 20)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go s.pingLoop(conn, done)

	for {
		var req NMSRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("websocket read failed", "error", err)
			}
			return
		}

		resp, err := s.processBatch(req)
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err != nil {
			if werr := conn.WriteJSON(wsError{Error: err.Error()}); werr != nil {
				return
			}
			continue
		}

		wsBatchesTotal.Inc()
		if err := conn.WriteJSON(resp); err != nil {
			return
		}
	}
}

// processBatch validates a batch and runs suppression over it.
func (s *Server) processBatch(req NMSRequest) (NMSResponse, error) {
	if len(req.Boxes) != len(req.Scores) {
		return NMSResponse{}, fmt.Errorf("boxes and scores length mismatch: %d vs %d", len(req.Boxes), len(req.Scores))
	}

	threshold := s.config.IoUThreshold
	if req.Threshold != nil {
		threshold = *req.Threshold
	}
	if threshold < 0 || threshold > 1 {
		return NMSResponse{}, fmt.Errorf("threshold out of range: %g", threshold)
	}

	boxes := make([]postprocess.Box, len(req.Boxes))
	for i, b := range req.Boxes {
		boxes[i] = postprocess.NewBox(b[0], b[1], b[2], b[3])
	}

	keep := postprocess.NMS(boxes, req.Scores, threshold)
	if keep == nil {
		keep = []int{}
	}

	nmsBatchSize.Observe(float64(len(boxes)))
	nmsKeptBoxes.Observe(float64(len(keep)))

	return NMSResponse{Keep: keep, Count: len(keep), Threshold: threshold}, nil
}

// pingLoop keeps the connection alive until the reader returns.
func (s *Server) pingLoop(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
