package hc

import (
	"net/http"
	"time"

	"lendvault/handler/render"
	"lendvault/pkg/sysversion"

	"github.com/fox-one/pkg/property"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
)

// Handle handle hc request, reporting when the accrual worker last finished a round
func Handle(ver string, properties property.Store, checkpointKey string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.NoCache)
	r.Handle("/", handle(ver, properties, checkpointKey))
	return r
}

func handle(version string, properties property.Store, checkpointKey string) http.HandlerFunc {
	b := time.Now()
	return func(w http.ResponseWriter, r *http.Request) {
		uptime := time.Since(b).Truncate(time.Millisecond)
		resp := render.H{
			"uptime":  uptime.String(),
			"version": version,
		}

		if properties != nil {
			if v, err := properties.Get(r.Context(), checkpointKey); err == nil && !v.Time().IsZero() {
				resp["accrued_at"] = v.Time().UTC().Format(time.RFC3339)
			}

			if ver, err := sysversion.ReadSysVersion(r.Context(), properties); err == nil {
				resp["schema_version"] = ver
			}
		}

		render.JSON(w, resp)
	}
}
