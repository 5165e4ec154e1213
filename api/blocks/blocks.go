// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package blocks

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vechain/eternix/api/utils"
	"github.com/vechain/eternix/block"
)

// Reader is the block store behind the endpoint, typically a *chain.Repository.
type Reader interface {
	GetBlock(slot uint64) (*block.Block, error)
	BestSlot() (uint64, bool)
	IsNotFound(err error) bool
}

type Blocks struct {
	repo Reader
}

func New(repo Reader) *Blocks {
	return &Blocks{repo}
}

// parseSlot accepts a decimal slot or "best".
func (b *Blocks) parseSlot(s string) (uint64, error) {
	if s != "best" {
		return utils.ParseUint("slot", s)
	}
	best, ok := b.repo.BestSlot()
	if !ok {
		return 0, utils.NotFound(fmt.Errorf("no block yet"))
	}
	return best, nil
}

func (b *Blocks) handleGetBlock(w http.ResponseWriter, req *http.Request) error {
	slot, err := b.parseSlot(mux.Vars(req)["slot"])
	if err != nil {
		return err
	}
	blk, err := b.repo.GetBlock(slot)
	if err != nil {
		if b.repo.IsNotFound(err) {
			return utils.NotFound(fmt.Errorf("block %d not found", slot))
		}
		return err
	}
	return utils.WriteJSON(w, convertBlock(blk))
}

func (b *Blocks) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{slot}").
		Methods(http.MethodGet).
		Name("blocks_get_block").
		HandlerFunc(utils.WrapHandlerFunc(b.handleGetBlock))
}
