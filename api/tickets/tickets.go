// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tickets

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vechain/eternix/api/utils"
	"github.com/vechain/eternix/sim"
	"github.com/vechain/eternix/state"
)

type Ticket struct {
	ID              uint64             `json:"id"`
	Owner           uint64             `json:"owner"`
	Status          state.TicketStatus `json:"status"`
	Bucket          uint64             `json:"bucket"`
	Category        state.Category     `json:"category"`
	CreationEpoch   uint64             `json:"creationEpoch"`
	RetireRequested *uint64            `json:"retireRequested"`
	RetireEffective *uint64            `json:"retireEffective"`
}

type Tickets struct {
	viewer utils.StateViewer
}

func New(viewer utils.StateViewer) *Tickets {
	return &Tickets{viewer}
}

func (t *Tickets) handleGetTicket(w http.ResponseWriter, req *http.Request) error {
	id, err := utils.ParseUint("id", mux.Vars(req)["id"])
	if err != nil {
		return err
	}
	var out *Ticket
	t.viewer.View(func(st *state.State, _ sim.SimClock) {
		tk, ok := st.Ticket(id)
		if !ok {
			return
		}
		out = &Ticket{
			ID:              tk.ID,
			Owner:           tk.Owner,
			Status:          tk.Status(),
			Bucket:          tk.Bucket(),
			CreationEpoch:   tk.CreationEpoch,
			RetireRequested: copyEpoch(tk.RetireRequested),
			RetireEffective: copyEpoch(tk.RetireEffective),
		}
		if b, ok := st.Bucket(tk.Bucket()); ok {
			out.Category = b.Category
		}
	})
	if out == nil {
		return utils.NotFound(fmt.Errorf("ticket %d not found", id))
	}
	return utils.WriteJSON(w, out)
}

// copyEpoch detaches an optional epoch from the state so it can be encoded after the lock is released.
func copyEpoch(e *uint64) *uint64 {
	if e == nil {
		return nil
	}
	v := *e
	return &v
}

func (t *Tickets) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{id}").
		Methods(http.MethodGet).
		Name("tickets_get_ticket").
		HandlerFunc(utils.WrapHandlerFunc(t.handleGetTicket))
}
