package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lgbarn/chess-engine-go/internal/errors"
	"github.com/lgbarn/chess-engine-go/internal/search"
)

const writeWait = 10 * time.Second

// wsMessage is one decoded client message.
type wsMessage struct {
	req SearchRequest
	err error
}

// wsHandler reads SearchRequests from the connection and streams an info
// message per completed iteration followed by the bestmove message. A
// "stop" text message, or a new request, cancels the running search.
// All writes happen on this goroutine.
func (app *Application) wsHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := app.upgrader.Upgrade(w, r, nil)
	if err != nil {
		app.cfg.Logf(1, "server: websocket upgrade: %v\n", err)
		return
	}
	defer conn.Close()
	app.cfg.Logf(1, "server: websocket connection from %s\n", conn.RemoteAddr())

	messages := make(chan wsMessage)
	stop := make(chan struct{}, 1)
	done := make(chan struct{})
	defer close(done)
	go readLoop(conn, messages, stop, done)

	for msg := range messages {
		select {
		case <-stop:
		default:
		}
		if msg.err != nil {
			err = writeMessage(conn, ErrorResponse{Error: msg.err.Error()})
		} else {
			err = app.streamSearch(r.Context(), conn, msg.req, stop)
		}
		if err != nil {
			app.cfg.Logf(1, "server: websocket write: %v\n", err)
			return
		}
	}
}

// readLoop decodes client messages until the connection closes.
func readLoop(conn *websocket.Conn, messages chan<- wsMessage, stop chan<- struct{}, done <-chan struct{}) {
	defer close(messages)
	signal := func() {
		select {
		case stop <- struct{}{}:
		default:
		}
	}

	for {
		kind, data, err := conn.ReadMessage()
		if err != nil {
			signal()
			return
		}
		if kind == websocket.TextMessage && strings.TrimSpace(string(data)) == "stop" {
			signal()
			continue
		}

		var msg wsMessage
		if err := json.Unmarshal(data, &msg.req); err != nil {
			msg.err = errors.Wrap(errors.ErrParseFailure, err.Error())
		}
		signal()
		select {
		case messages <- msg:
		case <-done:
			return
		}
	}
}

// streamSearch runs one search, writing progress as it goes.
func (app *Application) streamSearch(ctx context.Context, conn *websocket.Conn, req SearchRequest, stop <-chan struct{}) error {
	pos, err := req.position()
	if err != nil {
		return writeMessage(conn, ErrorResponse{Error: err.Error()})
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-stop:
			cancel()
		case <-ctx.Done():
		}
	}()

	e := app.acquire()
	defer app.release(e)

	var writeErr error
	e.SetInfoFunc(func(info search.Info) {
		if writeErr == nil {
			writeErr = writeMessage(conn, infoResponse(info))
		}
		if writeErr != nil {
			cancel()
		}
	})
	result := e.Search(ctx, pos, app.limits(req))
	if writeErr != nil {
		return writeErr
	}
	return writeMessage(conn, resultResponse(result))
}

func writeMessage(conn *websocket.Conn, v any) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(v)
}
