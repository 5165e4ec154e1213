// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package api serves a read-only JSON view of a running simulation.
package api

import (
	"net/http"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/vechain/eternix/api/blocks"
	"github.com/vechain/eternix/api/schedule"
	"github.com/vechain/eternix/api/subscriptions"
	"github.com/vechain/eternix/api/tickets"
	"github.com/vechain/eternix/api/utils"
	"github.com/vechain/eternix/api/validators"
	"github.com/vechain/eternix/log"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	AllowedOrigins  string
	EnableReqLogger bool
	EnableMetrics   bool
}

// BlockStore is the block source of the api, typically a *chain.Repository.
type BlockStore interface {
	blocks.Reader
	subscriptions.Reader
}

// New return api router
func New(viewer utils.StateViewer, repo BlockStore, opts Options) (http.HandlerFunc, func()) {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	validators.New(viewer).
		Mount(router, "/validators")
	tickets.New(viewer).
		Mount(router, "/tickets")
	blocks.New(repo).
		Mount(router, "/blocks")
	schedule.New(viewer).
		Mount(router, "/schedule")
	subs := subscriptions.New(repo, origins)
	subs.Mount(router, "/subscriptions")

	if opts.EnableMetrics {
		router.Use(metricsMiddleware)
	}

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type"}),
	)(handler)

	if opts.EnableReqLogger {
		handler = RequestLoggerHandler(handler, logger)
	}

	return handler.ServeHTTP, subs.Close // subscriptions handles hijacked conns, which need to be closed
}
