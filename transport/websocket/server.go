package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"nhooyr.io/websocket"

	"github.com/rocketscienceinc/rockpaperscissors-backend/internal/entity"
	"github.com/rocketscienceinc/rockpaperscissors-backend/internal/pkg"
	"github.com/rocketscienceinc/rockpaperscissors-backend/internal/usecase"
)

const writeTimeout = 10 * time.Second

type sessionFactory interface {
	Catalog() *entity.Catalog
	NewSession(presenters ...usecase.Presenter) *usecase.Session
}

type viewRepo interface {
	Save(ctx context.Context, sessionID string, view *entity.Game) error
}

type handler func(ctx context.Context, conn *connection, payload *Payload) error

type Server struct {
	logger         *slog.Logger
	sessions       sessionFactory
	viewRepo       viewRepo
	originPatterns []string

	handlers map[string]handler
}

// New creates the server. viewRepo may be nil, then views only go to the socket.
func New(logger *slog.Logger, sessions sessionFactory, viewRepo viewRepo, originPatterns []string) *Server {
	server := &Server{
		logger:         logger.With("component", "websocket"),
		sessions:       sessions,
		viewRepo:       viewRepo,
		originPatterns: originPatterns,
	}

	server.handlers = map[string]handler{
		actionNew:     server.handleNewGame,
		actionChoice:  server.handleChoice,
		actionRematch: server.handleRematch,
		actionReplay:  server.handleReplay,
		actionChoices: server.handleChoices,
	}

	return server
}

// Start - starts WebSocket server and stops it when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(ctx),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.serveConnection(ctx, w, r)
	})

	return mux
}

// serveConnection accepts the socket and gives it a session of its own.
func (that *Server) serveConnection(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "serveConnection")

	socket, err := websocket.Accept(writer, req, &websocket.AcceptOptions{
		OriginPatterns: that.originPatterns,
	})
	if err != nil {
		log.Error("failed to accept websocket", "error", err)
		return
	}

	defer socket.CloseNow()

	conn := &connection{
		id:     pkg.GenerateNewSessionID(),
		socket: socket,
	}

	// views are published before the client sees them
	var presenters []usecase.Presenter
	if that.viewRepo != nil {
		presenters = append(presenters, usecase.NewViewPublisher(conn.id, that.viewRepo))
	}
	presenters = append(presenters, conn)

	conn.session = that.sessions.NewSession(presenters...)

	log = log.With("sessionID", conn.id)
	log.Info("WebSocket connection established")

	if err = conn.send(ctx, actionConnect, Payload{SessionID: conn.id}); err != nil {
		log.Error("failed to greet client", "error", err)
		return
	}

	if err = that.handleMessages(ctx, conn); err != nil {
		log.Error("error handling messages", "error", err)
		return
	}

	socket.Close(websocket.StatusNormalClosure, "")
}

// handleMessages - processes messages from the client until it goes away.
func (that *Server) handleMessages(ctx context.Context, conn *connection) error {
	log := that.logger.With("method", "handleMessages", "sessionID", conn.id)

	for {
		_, data, err := conn.socket.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway || errors.Is(err, context.Canceled) {
				log.Info("WebSocket connection closed")
				return nil
			}

			return fmt.Errorf("failed to read message: %w", err)
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Warn("failed to unmarshal message", "error", err)
			if err = conn.sendError(ctx, actionError, "malformed message"); err != nil {
				return err
			}

			continue
		}

		handle, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			if err = conn.sendError(ctx, actionError, "unknown action "+message.Action); err != nil {
				return err
			}

			continue
		}

		var payload Payload
		if len(message.Payload) > 0 {
			if err = json.Unmarshal(message.Payload, &payload); err != nil {
				log.Warn("failed to unmarshal payload", "action", message.Action, "error", err)
				if err = conn.sendError(ctx, message.Action, "malformed payload"); err != nil {
					return err
				}

				continue
			}
		}

		if err = handle(ctx, conn, &payload); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
			if err = conn.sendError(ctx, message.Action, err.Error()); err != nil {
				return err
			}
		}
	}
}
