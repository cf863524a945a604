package realtime

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io/v2/socket"
	"go.uber.org/zap"

	"github.com/provely/server/internal/module/notification"
	"github.com/provely/server/internal/utils/middleware"
)

// Gateway owns the socket.io server. Each authenticated connection joins
// a room named after the user id, so pushing to a user reaches all of
// their open tabs and devices at once.
type Gateway struct {
	server    *socket.Server
	validator middleware.JWTValidator
	logger    *zap.Logger
}

var _ notification.RealtimeEmitter = (*Gateway)(nil)

// NewGateway creates the socket.io server and installs the connection
// handler. Call Register to mount it on the router.
func NewGateway(validator middleware.JWTValidator, logger *zap.Logger) *Gateway {
	g := &Gateway{
		server:    socket.NewServer(nil, nil),
		validator: validator,
		logger:    logger,
	}

	g.server.On("connection", func(clients ...interface{}) {
		client := clients[0].(*socket.Socket)

		claims, ok := g.authenticate(client)
		if !ok {
			client.Emit("error", gin.H{"error": "authentication required"})
			client.Disconnect(true)
			return
		}

		client.Join(roomFor(claims.UserID))
		g.logger.Debug("realtime client connected",
			zap.String("user_id", claims.UserID.String()),
			zap.String("socket_id", string(client.Id())))

		client.On("disconnecting", func(...interface{}) {
			g.logger.Debug("realtime client disconnecting",
				zap.String("user_id", claims.UserID.String()))
		})
	})

	return g
}

// Register mounts the socket.io endpoint on the router.
func (g *Gateway) Register(router *gin.Engine) {
	opts := socket.DefaultServerOptions()
	opts.SetServeClient(false)
	opts.SetPingInterval(25 * time.Second)
	opts.SetPingTimeout(20 * time.Second)
	opts.SetConnectTimeout(10 * time.Second)
	opts.SetTransports(types.NewSet("polling", "websocket"))
	opts.SetCors(&types.Cors{
		Origin:      "*",
		Credentials: true,
	})

	handler := g.server.ServeHandler(opts)
	router.GET("/socket.io/*f", gin.WrapH(handler))
	router.POST("/socket.io/*f", gin.WrapH(handler))
}

// Emit pushes an event to every open connection of the given user. A
// user with no connections is a no-op.
func (g *Gateway) Emit(userID uuid.UUID, event string, payload any) {
	g.server.To(roomFor(userID)).Emit(event, payload)
}

// Close shuts the socket server down.
func (g *Gateway) Close() {
	g.server.Close(nil)
}

// authenticate validates the bearer token from the handshake auth data.
func (g *Gateway) authenticate(client *socket.Socket) (*middleware.AuthClaims, bool) {
	authData, ok := client.Handshake().Auth.(map[string]interface{})
	if !ok {
		return nil, false
	}

	token, ok := authData["authorization"].(string)
	if !ok || token == "" {
		return nil, false
	}
	token = strings.TrimPrefix(token, middleware.BearerPrefix)

	claims, err := g.validator.ValidateToken(token)
	if err != nil {
		g.logger.Debug("realtime auth rejected", zap.Error(err))
		return nil, false
	}
	return claims, true
}

func roomFor(userID uuid.UUID) socket.Room {
	return socket.Room("user:" + userID.String())
}
