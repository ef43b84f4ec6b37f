package socket

import (
	socketio "github.com/googollee/go-socket.io"
	"go.uber.org/zap"
)

// NewServer initializes the Socket.IO server used to push new team
// messages to connected clients. Polling the messages endpoint remains
// the source of truth; this is fan-out only.
func NewServer(logger *zap.Logger) *socketio.Server {
	server := socketio.NewServer(nil)

	server.OnConnect("/", func(c socketio.Conn) error {
		logger.Debug("socket connected", zap.String("id", c.ID()))
		return nil
	})

	// Clients join a room per team to receive that team's messages
	server.OnEvent("/", "join", func(c socketio.Conn, teamID string) {
		if teamID == "" {
			logger.Warn("join event without teamId", zap.String("id", c.ID()))
			return
		}
		c.Join(teamID)
		logger.Debug("socket joined team room",
			zap.String("id", c.ID()),
			zap.String("teamId", teamID),
		)
	})

	server.OnEvent("/", "leave", func(c socketio.Conn, teamID string) {
		if teamID == "" {
			return
		}
		c.Leave(teamID)
	})

	server.OnError("/", func(c socketio.Conn, err error) {
		logger.Warn("socket error", zap.Error(err))
	})

	server.OnDisconnect("/", func(c socketio.Conn, reason string) {
		logger.Debug("socket disconnected", zap.String("id", c.ID()), zap.String("reason", reason))
	})

	return server
}
