// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package validators

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vechain/eternix/api/utils"
	"github.com/vechain/eternix/sim"
	"github.com/vechain/eternix/state"
)

type Validators struct {
	viewer utils.StateViewer
}

func New(viewer utils.StateViewer) *Validators {
	return &Validators{viewer}
}

func (v *Validators) handleGetValidators(w http.ResponseWriter, _ *http.Request) error {
	var out []*Validator
	v.viewer.View(func(st *state.State, _ sim.SimClock) {
		out = make([]*Validator, 0, len(st.ValidatorIDs()))
		for _, id := range st.ValidatorIDs() {
			val, _ := st.Validator(id)
			out = append(out, convertValidator(st, val))
		}
	})
	return utils.WriteJSON(w, out)
}

func (v *Validators) handleGetValidator(w http.ResponseWriter, req *http.Request) error {
	id, err := utils.ParseUint("id", mux.Vars(req)["id"])
	if err != nil {
		return err
	}
	var out *Validator
	v.viewer.View(func(st *state.State, _ sim.SimClock) {
		if val, ok := st.Validator(id); ok {
			out = convertValidator(st, val)
		}
	})
	if out == nil {
		return utils.NotFound(fmt.Errorf("validator %d not found", id))
	}
	return utils.WriteJSON(w, out)
}

func (v *Validators) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("validators_list").
		HandlerFunc(utils.WrapHandlerFunc(v.handleGetValidators))
	sub.Path("/{id}").
		Methods(http.MethodGet).
		Name("validators_get_validator").
		HandlerFunc(utils.WrapHandlerFunc(v.handleGetValidator))
}
