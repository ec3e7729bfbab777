package gateway

import (
	"encoding/json"

	"github.com/mcdev12/frontoffice/go/internal/events"
	"github.com/rs/zerolog/log"
)

// BusHandler adapts the in-process event bus to the connection
// manager, for deployments running without NATS.
func BusHandler(cm *ConnectionManager) events.Handler {
	return func(event events.Event) {
		payload, err := json.Marshal(event.Payload)
		if err != nil {
			log.Error().Err(err).Str("event_type", string(event.Type)).Msg("failed to marshal event payload")
			return
		}

		teamIDs := make([]string, len(event.TeamIDs))
		for i, id := range event.TeamIDs {
			teamIDs[i] = id.String()
		}

		wsEvent := &TradeEvent{
			ID:        event.ID.String(),
			Type:      string(event.Type),
			TeamIDs:   teamIDs,
			Timestamp: event.OccurredAt,
			Data:      payload,
		}
		for _, teamID := range event.TeamIDs {
			cm.BroadcastToTeam(teamID, wsEvent)
		}
	}
}
