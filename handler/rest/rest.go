package rest

import (
	"errors"
	"net/http"
	"strconv"

	"lendvault/core"
	"lendvault/handler/render"
	"lendvault/handler/request"

	"github.com/go-chi/chi"
	"github.com/twitchtv/twirp"
)

// Handle handle rest api request
func Handle(
	vaultStore core.VaultStore,
	eventStore core.EventStore,
	vaultService core.VaultService,
	walletService core.WalletService,
	clock core.Clock,
	decimals int32,
) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	router.Get("/vaults", vaultsHandler(vaultStore, vaultService, decimals))
	router.Route("/vaults/{id}", func(r chi.Router) {
		r.Get("/", vaultHandler(vaultService, decimals))
		r.Get("/events", eventsHandler(eventStore))
		r.Get("/positions/{identity}", positionHandler(vaultService, clock, decimals))
		r.Post("/preview-lock", previewLockHandler(vaultService, decimals))
		r.Post("/accrue", accrueHandler(vaultService))

		r.Post("/deposit", positionOpHandler(vaultService.Deposit, decimals, false))
		r.Post("/lock", positionOpHandler(vaultService.Lock, decimals, false))
		r.Post("/borrow", positionOpHandler(vaultService.Borrow, decimals, false))
		r.Post("/repay", positionOpHandler(vaultService.Repay, decimals, false))
		r.Post("/withdraw", positionOpHandler(vaultService.Withdraw, decimals, true))
		r.Post("/withdraw-early", positionOpHandler(vaultService.WithdrawEarly, decimals, true))
		r.Post("/transfer-position", transferPositionHandler(vaultService, decimals))

		r.Post("/pause", pauseHandler(vaultService.Pause))
		r.Post("/unpause", pauseHandler(vaultService.Unpause))
		r.Post("/reserve-factor", reserveFactorHandler(vaultService))
		r.Post("/withdraw-reserves", withdrawReservesHandler(vaultService, decimals))
	})

	router.Post("/pay-requests", payRequestsHandler(vaultStore, walletService))

	return router
}

func vaultID(r *http.Request) (uint64, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id == 0 {
		return 0, twirp.InvalidArgumentError("id", "invalid vault id")
	}

	return id, nil
}

func holder(r *http.Request) (string, error) {
	h, ok := request.NewContext(r.Context()).GetHolder()
	if !ok {
		return "", twirp.NewError(twirp.Unauthenticated, "login required")
	}

	return h, nil
}
