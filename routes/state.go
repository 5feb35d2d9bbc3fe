package routes

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/victorjacobs/go-natureremo/bridge"
)

type stateResponse struct {
	Aircons       []bridge.AirconState `json:"aircons"`
	LastRefreshed time.Time            `json:"last_refreshed"`
}

type cache struct {
	lastRefreshed int64
}

// State serves the bridged appliances' normalized state. Hitting the
// endpoint triggers an on-demand snapshot refresh, rate limited to one per
// 30 seconds to stay clear of the vendor's API limits.
func State(b *bridge.Bridge) func(http.ResponseWriter, *http.Request, httprouter.Params) {
	c := &cache{}

	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		now := time.Now().UnixMilli()

		if c.lastRefreshed+30_000 < now {
			if err := b.RequestRefresh(); err != nil {
				log.Printf("Failed to refresh: %v", err)

				return
			}

			c.lastRefreshed = now

			log.Printf("Refreshed web cache")
		}

		resp := stateResponse{
			Aircons:       b.AirconStates(),
			LastRefreshed: b.LastRefreshed(),
		}

		if marshaled, err := json.Marshal(resp); err != nil {
			log.Printf("error marshaling: %v", err)
		} else {
			w.Write(marshaled)
		}
	}
}
