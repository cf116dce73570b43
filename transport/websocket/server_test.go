package websocket

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"nhooyr.io/websocket"

	"github.com/rocketscienceinc/rockpaperscissors-backend/internal/entity"
	"github.com/rocketscienceinc/rockpaperscissors-backend/internal/rps"
	"github.com/rocketscienceinc/rockpaperscissors-backend/internal/usecase"
)

// fixed always draws the same catalog index.
type fixed int

func (that fixed) Intn(n int) int {
	return int(that) % n
}

type fixedSessions struct {
	logger  *slog.Logger
	catalog *entity.Catalog
	index   int
}

func (that *fixedSessions) Catalog() *entity.Catalog {
	return that.catalog
}

func (that *fixedSessions) NewSession(presenters ...usecase.Presenter) *usecase.Session {
	return usecase.NewSession(that.logger, rps.NewEngine(that.catalog, fixed(that.index)), presenters...)
}

type mockViewRepo struct {
	mock.Mock
}

func (that *mockViewRepo) Save(ctx context.Context, sessionID string, view *entity.Game) error {
	args := that.Called(ctx, sessionID, view)
	return args.Error(0)
}

type clientPayload struct {
	SessionID string            `json:"session_id"`
	Game      *entity.Game      `json:"game"`
	Choices   []json.RawMessage `json:"choices"`
	Error     string            `json:"error"`
}

type client struct {
	t      *testing.T
	ctx    context.Context
	socket *websocket.Conn
}

func (that *client) send(raw string) {
	that.t.Helper()

	require.NoError(that.t, that.socket.Write(that.ctx, websocket.MessageText, []byte(raw)))
}

func (that *client) receive() (string, clientPayload) {
	that.t.Helper()

	_, data, err := that.socket.Read(that.ctx)
	require.NoError(that.t, err)

	var message Message
	require.NoError(that.t, json.Unmarshal(data, &message))

	var payload clientPayload
	require.NoError(that.t, json.Unmarshal(message.Payload, &payload))

	return message.Action, payload
}

// dial starts a server whose automated players always draw paper.
func dial(t *testing.T, viewRepo viewRepo) (*client, string) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sessions := &fixedSessions{logger: logger, catalog: entity.ClassicCatalog(), index: 1}

	server := New(logger, sessions, viewRepo, nil)
	httpServer := httptest.NewServer(server.Handler(ctx))
	t.Cleanup(httpServer.Close)

	url := "ws" + strings.TrimPrefix(httpServer.URL, "http") + "/ws"
	socket, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = socket.Close(websocket.StatusNormalClosure, "") })

	c := &client{t: t, ctx: ctx, socket: socket}

	action, payload := c.receive()
	require.Equal(t, actionConnect, action)
	require.NotEmpty(t, payload.SessionID)

	return c, payload.SessionID
}

func TestServer_PlayRound(t *testing.T) {
	c, _ := dial(t, nil)

	// When: a human game is started
	c.send(`{"action": "game:new", "payload": {"human": true}}`)

	// Then: the bootstrap state is rendered
	action, payload := c.receive()
	require.Equal(t, actionState, action)
	require.NotNil(t, payload.Game)
	assert.False(t, payload.Game.Initialized)
	assert.False(t, payload.Game.Players[0].IsCPU)
	assert.Nil(t, payload.Game.Players[0].Choice)

	// When: the human picks rock against paper
	c.send(`{"action": "game:choice", "payload": {"player_id": 1, "choice_id": 1}}`)

	// Then: the resolved round is rendered
	action, payload = c.receive()
	require.Equal(t, actionState, action)
	assert.True(t, payload.Game.Initialized)
	assert.Equal(t, "Rock", payload.Game.Players[0].Choice.Label)
	assert.Equal(t, "Paper", payload.Game.Players[1].Choice.Label)
	assert.Equal(t, entity.ResultLose, payload.Game.Players[0].Result)
	assert.Equal(t, entity.ResultWin, payload.Game.Players[1].Result)
	assert.Equal(t, 1, payload.Game.Players[1].Score)
}

func TestServer_Rematch(t *testing.T) {
	c, _ := dial(t, nil)

	c.send(`{"action": "game:rematch", "payload": {"human": false}}`)
	action, payload := c.receive()
	require.Equal(t, actionState, action)
	assert.True(t, payload.Game.Players[0].IsCPU)

	// automated players always draw the same, so replays are draws
	c.send(`{"action": "game:replay"}`)
	action, payload = c.receive()
	require.Equal(t, actionState, action)
	assert.Equal(t, entity.ResultDraw, payload.Game.Players[0].Result)
	assert.Equal(t, entity.ResultDraw, payload.Game.Players[1].Result)
}

func TestServer_Errors(t *testing.T) {
	t.Run("Choice before a game", func(t *testing.T) {
		c, _ := dial(t, nil)

		c.send(`{"action": "game:choice", "payload": {"player_id": 1, "choice_id": 1}}`)

		action, payload := c.receive()
		assert.Equal(t, actionChoice, action)
		assert.Contains(t, payload.Error, "no active game")
	})

	t.Run("Unknown choice", func(t *testing.T) {
		c, _ := dial(t, nil)

		c.send(`{"action": "game:new", "payload": {"human": true}}`)
		_, _ = c.receive()

		c.send(`{"action": "game:choice", "payload": {"player_id": 1, "choice_id": 42}}`)

		action, payload := c.receive()
		assert.Equal(t, actionChoice, action)
		assert.Contains(t, payload.Error, "choice not found")
	})

	t.Run("Unknown action", func(t *testing.T) {
		c, _ := dial(t, nil)

		c.send(`{"action": "game:surrender"}`)

		action, payload := c.receive()
		assert.Equal(t, actionError, action)
		assert.Contains(t, payload.Error, "game:surrender")
	})

	t.Run("Malformed message keeps the connection open", func(t *testing.T) {
		c, _ := dial(t, nil)

		c.send(`{"action": `)
		action, payload := c.receive()
		assert.Equal(t, actionError, action)
		assert.Equal(t, "malformed message", payload.Error)

		c.send(`{"action": "game:choices"}`)
		action, _ = c.receive()
		assert.Equal(t, actionChoices, action)
	})
}

func TestServer_Choices(t *testing.T) {
	c, _ := dial(t, nil)

	c.send(`{"action": "game:choices"}`)

	action, payload := c.receive()
	require.Equal(t, actionChoices, action)
	require.Len(t, payload.Choices, 3)
	assert.JSONEq(t, `{"id": 1, "label": "Rock", "icon": "/img/icons/rock.png", "strengths": [3]}`, string(payload.Choices[0]))
}

func TestServer_PublishesViews(t *testing.T) {
	repo := &mockViewRepo{}
	repo.On("Save", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	c, sessionID := dial(t, repo)

	c.send(`{"action": "game:new", "payload": {"human": false}}`)
	_, _ = c.receive()

	repo.AssertCalled(t, "Save", mock.Anything, sessionID, mock.MatchedBy(func(view *entity.Game) bool {
		return len(view.Players) == 2 && view.Players[0].IsCPU
	}))
}
