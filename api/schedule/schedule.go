// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package schedule

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vechain/eternix/api/utils"
	"github.com/vechain/eternix/sim"
	"github.com/vechain/eternix/sortition"
	"github.com/vechain/eternix/state"
)

const (
	defaultCount = 10
	maxCount     = 1000
)

// Preview is the leader schedule computed against the current state. It only holds as long
// as the eligible ticket set doesn't change.
type Preview struct {
	Epoch       uint64                 `json:"epoch"`
	Assignments []sortition.Assignment `json:"assignments"`
}

type Schedule struct {
	viewer utils.StateViewer
}

func New(viewer utils.StateViewer) *Schedule {
	return &Schedule{viewer}
}

func (s *Schedule) handleGetSchedule(w http.ResponseWriter, req *http.Request) error {
	query := req.URL.Query()

	var (
		from    uint64
		hasFrom bool
		count   uint64 = defaultCount
	)
	if v := query.Get("from"); v != "" {
		n, err := utils.ParseUint("from", v)
		if err != nil {
			return err
		}
		from, hasFrom = n, true
	}
	if v := query.Get("count"); v != "" {
		n, err := utils.ParseUint("count", v)
		if err != nil {
			return err
		}
		if n > maxCount {
			return utils.BadRequest(fmt.Errorf("count %d exceeds %d", n, maxCount))
		}
		count = n
	}

	var (
		preview Preview
		err     error
	)
	s.viewer.View(func(st *state.State, clock sim.SimClock) {
		if !hasFrom {
			from = clock.Slot
		}
		preview.Epoch = st.Epoch()
		preview.Assignments, err = sortition.Schedule(st, from, count)
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, preview)
}

func (s *Schedule) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("schedule_get_schedule").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetSchedule))
}
