package handler

import (
	"net/http"

	"lendvault/core"
	"lendvault/handler/auth"
	"lendvault/handler/render"
	"lendvault/handler/rest"

	"github.com/go-chi/chi"
	"github.com/twitchtv/twirp"
)

// Server server
type Server struct {
	cfg           *core.Config
	session       core.Session
	vaultStore    core.VaultStore
	eventStore    core.EventStore
	vaultService  core.VaultService
	walletService core.WalletService
	clock         core.Clock
}

// New new server function
func New(
	cfg *core.Config,
	session core.Session,
	vaultStore core.VaultStore,
	eventStore core.EventStore,
	vaultService core.VaultService,
	walletService core.WalletService,
	clock core.Clock,
) Server {
	return Server{
		cfg:           cfg,
		session:       session,
		vaultStore:    vaultStore,
		eventStore:    eventStore,
		vaultService:  vaultService,
		walletService: walletService,
		clock:         clock,
	}
}

// HandleRestAPI handle restful apis
func (s Server) HandleRestAPI() http.Handler {
	r := chi.NewRouter()
	r.Use(render.WrapResponse(true))
	r.Use(auth.HandleAuthentication(s.session))
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.Error(w, twirp.NotFoundError("not found"))
	})

	r.Post("/oauth", auth.HandleOauth(&s.cfg.Mixin, s.session))
	r.Mount("/", rest.Handle(
		s.vaultStore,
		s.eventStore,
		s.vaultService,
		s.walletService,
		s.clock,
		s.cfg.App.Decimals,
	))

	return r
}
