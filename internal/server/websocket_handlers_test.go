package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialTestStream(t *testing.T) *websocket.Conn {
	t.Helper()

	s := NewServer(testConfig())
	srv := httptest.NewServer(http.HandlerFunc(s.handleNMSStream))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/nms"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return conn
}

func TestServer_NMSStream(t *testing.T) {
	conn := dialTestStream(t)

	require.NoError(t, conn.WriteJSON(NMSRequest{
		Boxes: [][4]float32{
			{0, 0, 10, 10},
			{1, 1, 11, 11},
			{100, 100, 110, 110},
		},
		Scores: []float32{0.9, 0.8, 0.7},
	}))

	var resp NMSResponse
	require.NoError(t, conn.ReadJSON(&resp))
	assert.Equal(t, []int{0, 2}, resp.Keep)
	assert.Equal(t, 2, resp.Count)
}

func TestServer_NMSStream_MultipleBatches(t *testing.T) {
	conn := dialTestStream(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, conn.WriteJSON(NMSRequest{
			Boxes:  [][4]float32{{0, 0, 10, 10}},
			Scores: []float32{0.9},
		}))

		var resp NMSResponse
		require.NoError(t, conn.ReadJSON(&resp))
		assert.Equal(t, []int{0}, resp.Keep)
	}
}

func TestServer_NMSStream_BadBatchKeepsConnection(t *testing.T) {
	conn := dialTestStream(t)

	// Mismatched lengths produce an error message but the stream survives.
	require.NoError(t, conn.WriteJSON(NMSRequest{
		Boxes:  [][4]float32{{0, 0, 10, 10}},
		Scores: []float32{0.9, 0.8},
	}))

	var errMsg wsError
	require.NoError(t, conn.ReadJSON(&errMsg))
	assert.Contains(t, errMsg.Error, "mismatch")

	require.NoError(t, conn.WriteJSON(NMSRequest{
		Boxes:  [][4]float32{{0, 0, 10, 10}},
		Scores: []float32{0.9},
	}))

	var resp NMSResponse
	require.NoError(t, conn.ReadJSON(&resp))
	assert.Equal(t, []int{0}, resp.Keep)
}
