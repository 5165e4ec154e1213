// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/vechain/eternix/api/utils"
	"github.com/vechain/eternix/block"
	"github.com/vechain/eternix/co"
	"github.com/vechain/eternix/eternix"
	"github.com/vechain/eternix/log"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 7) / 10
)

var logger = log.WithContext("pkg", "subscriptions")

// Reader is the block store the subscriptions follow, typically a *chain.Repository.
type Reader interface {
	GetBlock(slot uint64) (*block.Block, error)
	BestSlot() (uint64, bool)
	NewTicker() co.Waiter
}

// BlockMessage is pushed for every block, in slot order.
type BlockMessage struct {
	ID        eternix.Bytes32 `json:"id"`
	Slot      uint64          `json:"slot"`
	Timestamp uint64          `json:"timestamp"`
	Proposer  *uint64         `json:"proposer"`
	Protocol  bool            `json:"protocol"`
}

func convertBlock(b *block.Block) *BlockMessage {
	msg := &BlockMessage{
		ID:        b.ID(),
		Slot:      b.Slot(),
		Timestamp: b.Timestamp(),
		Protocol:  b.IsProtocol(),
	}
	if p, ok := b.Proposer(); ok {
		msg.Proposer = &p
	}
	return msg
}

type Subscriptions struct {
	repo     Reader
	upgrader *websocket.Upgrader
	done     chan struct{}
	wg       sync.WaitGroup
}

func New(repo Reader, allowedOrigins []string) *Subscriptions {
	return &Subscriptions{
		repo: repo,
		upgrader: &websocket.Upgrader{
			EnableCompression: true,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				for _, allowed := range allowedOrigins {
					if allowed == origin || allowed == "*" {
						return true
					}
				}
				return false
			},
		},
		done: make(chan struct{}),
	}
}

// parsePosition resolves the pos query to the first slot to send. It defaults to the slot
// after the best block and may not point beyond it.
func (s *Subscriptions) parsePosition(pos string) (uint64, error) {
	next := uint64(0)
	if best, ok := s.repo.BestSlot(); ok {
		next = best + 1
	}
	if pos == "" {
		return next, nil
	}
	slot, err := utils.ParseUint("pos", pos)
	if err != nil {
		return 0, err
	}
	if slot > next {
		return 0, utils.Forbidden(errors.Errorf("pos %d is ahead of the next slot %d", slot, next))
	}
	return slot, nil
}

func (s *Subscriptions) handleSubjectBlock(w http.ResponseWriter, req *http.Request) error {
	from, err := s.parsePosition(req.URL.Query().Get("pos"))
	if err != nil {
		return err
	}

	conn, err := s.upgrader.Upgrade(w, req, nil)
	if err != nil {
		// the upgrader has already replied
		logger.Debug("upgrade failed", "err", err)
		return nil
	}
	s.wg.Add(1)
	defer s.wg.Done()
	defer conn.Close()

	if err := s.pipe(conn, from); err != nil {
		logger.Debug("subscription closed", "err", err)
	}
	return nil
}

// pipe pushes blocks from slot `from` until the peer leaves or the subscriptions are closed.
func (s *Subscriptions) pipe(conn *websocket.Conn, from uint64) error {
	closed := make(chan struct{})
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := s.repo.NewTicker()
	pingTicker := time.NewTicker(pingPeriod)
	defer pingTicker.Stop()

	next := from
	for {
		best, ok := s.repo.BestSlot()
		for ; ok && next <= best; next++ {
			b, err := s.repo.GetBlock(next)
			if err != nil {
				return errors.WithMessagef(err, "read block %d", next)
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(convertBlock(b)); err != nil {
				return err
			}
		}

		select {
		case <-s.done:
			msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "service closed")
			return conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
		case <-closed:
			return nil
		case <-ticker.C():
		case <-pingTicker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return err
			}
		}
	}
}

// Close disconnects every subscriber and waits for their handlers to return.
func (s *Subscriptions) Close() {
	close(s.done)
	s.wg.Wait()
}

func (s *Subscriptions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/block").
		Methods(http.MethodGet).
		Name("subscriptions_block").
		HandlerFunc(utils.WrapHandlerFunc(s.handleSubjectBlock))
}
