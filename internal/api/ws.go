package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	errs "github.com/matzehuels/masonry/pkg/errors"
	"github.com/matzehuels/masonry/pkg/feed"
	"github.com/matzehuels/masonry/pkg/grid"
	"github.com/matzehuels/masonry/pkg/masonry"
	"github.com/matzehuels/masonry/pkg/media"
	"github.com/matzehuels/masonry/pkg/pipeline"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Feed message types.
const (
	msgAppend     = "append"      // client: tiles arrived
	msgPage       = "page"        // client: a search result page arrived
	msgReset      = "reset"       // client: new query
	msgVisible    = "visible"     // client: last visible row index
	msgLoadFailed = "load_failed" // client: a requested page could not be fetched
	msgLayout     = "layout"      // server: settled layout
	msgLoadMore   = "load_more"   // server: fetch the given page
	msgError      = "error"       // server: rejected message
)

// feedMessage is the envelope for both directions of the feed socket.
type feedMessage struct {
	Type string `json:"type"`

	// Client fields
	Tiles   json.RawMessage `json:"tiles,omitempty"`
	Page    json.RawMessage `json:"page,omitempty"`
	HasNext *bool           `json:"has_next,omitempty"`
	Row     *int            `json:"row,omitempty"`

	// Server fields
	Version    uint64       `json:"version,omitempty"`
	PageNumber int          `json:"page_number,omitempty"`
	Layout     *grid.Layout `json:"layout,omitempty"`
	Code       errs.Code    `json:"code,omitempty"`
	Message    string       `json:"message,omitempty"`
}

// feedSession is one websocket connection with its own feed.
type feedSession struct {
	id       string
	conn     *websocket.Conn
	feed     *feed.Feed
	cfg      masonry.Config
	debounce *feed.Debouncer
	server   *Server

	writeMu sync.Mutex
}

// handleFeed upgrades to a websocket. Query parameters profile and width
// select the layout config.
func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	opts := pipeline.Options{
		Profile:  r.URL.Query().Get("profile"),
		Profiles: s.profiles,
		Logger:   s.logger,
	}
	if v := r.URL.Query().Get("width"); v != "" {
		width, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(w, r, s.logger, errs.New(errs.ErrCodeInvalidInput, "invalid width %q", v))
			return
		}
		opts.ContainerWidth = width
	}
	cfg, err := opts.Config()
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	calc, err := masonry.New(cfg)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "err", err)
		return
	}

	sess := &feedSession{
		id:       uuid.NewString(),
		conn:     conn,
		feed:     feed.New(calc, feed.WithLogger(s.logger)),
		cfg:      cfg,
		debounce: feed.NewDebouncer(s.cfg.Debounce),
		server:   s,
	}
	sess.run(r.Context())
}

func (c *feedSession) run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	logger := c.server.logger.With("session", c.id)
	logger.Debug("feed connected")

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.pingLoop(ctx)
	}()

	defer func() {
		cancel()
		c.debounce.Stop()
		wg.Wait()
		c.conn.Close()
		logger.Debug("feed disconnected")
	}()

	c.conn.SetReadLimit(c.server.cfg.MaxBodyBytes)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg feedMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("feed read failed", "err", err)
			}
			return
		}
		if err := c.handle(ctx, msg); err != nil {
			c.send(feedMessage{Type: msgError, Code: errs.GetCode(err), Message: errs.UserMessage(err)})
		}
	}
}

func (c *feedSession) handle(ctx context.Context, msg feedMessage) error {
	switch msg.Type {
	case msgAppend:
		if len(msg.Tiles) == 0 {
			return errs.New(errs.ErrCodeInvalidInput, "append needs tiles")
		}
		tiles, err := grid.ParseTiles(msg.Tiles)
		if err != nil {
			c.feed.CancelLoad()
			return err
		}
		hasNext := true
		if msg.HasNext != nil {
			hasNext = *msg.HasNext
		}
		c.feed.AppendTiles(tiles, hasNext)
		c.publish(ctx)
	case msgPage:
		if len(msg.Page) == 0 {
			return errs.New(errs.ErrCodeInvalidInput, "page message needs page")
		}
		page, err := media.ParsePage(msg.Page)
		if err != nil {
			c.feed.CancelLoad()
			return err
		}
		c.feed.AppendPage(page)
		c.publish(ctx)
	case msgReset:
		c.feed.Reset()
		c.publish(ctx)
	case msgVisible:
		if msg.Row == nil {
			return errs.New(errs.ErrCodeInvalidInput, "visible needs row")
		}
		if c.feed.ShouldLoadMore(*msg.Row) {
			if page, ok := c.feed.NextPage(); ok {
				c.send(feedMessage{Type: msgLoadMore, PageNumber: page})
			}
		}
	case msgLoadFailed:
		c.feed.CancelLoad()
	default:
		return errs.New(errs.ErrCodeInvalidInput, "unknown message type %q", msg.Type)
	}
	return nil
}

// publish sends the feed's layout once changes settle.
func (c *feedSession) publish(ctx context.Context) {
	c.debounce.Do(ctx, func(context.Context) {
		snap := c.feed.Snapshot()
		l := grid.FromRows(snap.Rows, c.cfg, snap.Skipped)
		hasNext := snap.HasNext
		c.send(feedMessage{
			Type:       msgLayout,
			Version:    snap.Version,
			PageNumber: snap.Page,
			HasNext:    &hasNext,
			Layout:     &l,
		})
	})
}

func (c *feedSession) send(msg feedMessage) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteJSON(msg); err != nil {
		c.server.logger.Debug("feed write failed", "session", c.id, "err", err)
	}
}

func (c *feedSession) pingLoop(ctx context.Context) {
	t := time.NewTicker(pingPeriod)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			c.writeMu.Lock()
			err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
			c.writeMu.Unlock()
			if err != nil {
				return
			}
		}
	}
}
