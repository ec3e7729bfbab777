package main

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/mcdev12/frontoffice/go/internal/gateway"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
)

func setupServer(services *Services, wsHandler *gateway.WebSocketHandler) *http.Server {
	mux := http.NewServeMux()

	c := cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
		},
		AllowedOrigins: []string{"*"},
		AllowedHeaders: []string{"*"},
	})

	registerRoutes(mux, services)
	if wsHandler != nil {
		wsHandler.RegisterRoutes(mux)
	}
	setupHealthCheck(mux)

	handler := c.Handler(mux)

	return &http.Server{
		Addr:    fmt.Sprintf(":%s", getEnv("PORT", "8080")),
		Handler: handler,
	}
}

func registerRoutes(mux *http.ServeMux, services *Services) {
	mux.HandleFunc("GET /api/offers/pending", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, services.Offers.PendingOffers())
	})
	mux.HandleFunc("GET /api/offers/history", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, services.Offers.OfferHistory())
	})
	mux.HandleFunc("GET /api/trades/history", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, services.Engine.GetTradeHistory())
	})
	mux.HandleFunc("GET /api/picks/transfers", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, services.Ledger.GetTransferHistory())
	})
	mux.HandleFunc("GET /api/leaks", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, services.Negotiations.RecentLeaks(20))
	})

	mux.HandleFunc("GET /api/teams/{teamID}/picks", func(w http.ResponseWriter, r *http.Request) {
		teamID, ok := pathTeamID(w, r)
		if !ok {
			return
		}
		writeJSON(w, services.Ledger.GetPicksOwnedBy(teamID))
	})
	mux.HandleFunc("GET /api/teams/{teamID}/stepien", func(w http.ResponseWriter, r *http.Request) {
		teamID, ok := pathTeamID(w, r)
		if !ok {
			return
		}
		writeJSON(w, services.Ledger.GetStepienStatus(teamID))
	})
	mux.HandleFunc("GET /api/teams/{teamID}/negotiations", func(w http.ResponseWriter, r *http.Request) {
		teamID, ok := pathTeamID(w, r)
		if !ok {
			return
		}
		writeJSON(w, services.Negotiations.ActiveNegotiationsForTeam(teamID))
	})
	mux.HandleFunc("GET /api/teams/{teamID}/negotiations/history", func(w http.ResponseWriter, r *http.Request) {
		teamID, ok := pathTeamID(w, r)
		if !ok {
			return
		}
		writeJSON(w, services.Negotiations.HistoryForTeam(teamID))
	})

	mux.HandleFunc("POST /api/offers/{offerID}/accept", func(w http.ResponseWriter, r *http.Request) {
		offerID, err := uuid.Parse(r.PathValue("offerID"))
		if err != nil {
			http.Error(w, "invalid offer id", http.StatusBadRequest)
			return
		}
		status, err := services.Offers.AcceptOffer(r.Context(), offerID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		if status == "" {
			http.Error(w, "offer not pending", http.StatusConflict)
			return
		}
		writeJSON(w, map[string]string{"status": string(status)})
	})
	mux.HandleFunc("POST /api/offers/{offerID}/reject", func(w http.ResponseWriter, r *http.Request) {
		offerID, err := uuid.Parse(r.PathValue("offerID"))
		if err != nil {
			http.Error(w, "invalid offer id", http.StatusBadRequest)
			return
		}
		services.Offers.RejectOffer(offerID)
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("POST /api/season/advance", func(w http.ResponseWriter, r *http.Request) {
		if err := services.Season.AdvanceDay(r.Context()); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]int{"day": services.Season.Day()})
	})
}

func pathTeamID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	teamID, err := uuid.Parse(r.PathValue("teamID"))
	if err != nil {
		http.Error(w, "invalid team id", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return teamID, true
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func setupHealthCheck(mux *http.ServeMux) {
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			log.Error().Err(err).Msg("failed to write health check response")
		}
	})
}
