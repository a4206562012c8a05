package rest

import (
	"context"
	"net/http"
	"strconv"

	"lendvault/core"
	"lendvault/handler/param"
	"lendvault/handler/render"
	"lendvault/handler/views"
	"lendvault/pkg/interest"
	"lendvault/pkg/number"

	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/twitchtv/twirp"
)

const maxEvents = 500

func vaultsHandler(vaultStore core.VaultStore, vaultService core.VaultService, decimals int32) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		vaults, err := vaultStore.All(ctx)
		if err != nil {
			render.Error(w, err)
			return
		}

		out := make([]*views.Vault, 0, len(vaults))
		for _, v := range vaults {
			info, err := vaultService.VaultInfo(ctx, v.ID)
			if err != nil {
				logger.FromContext(ctx).WithError(err).WithField("vault", v.ID).Errorln("vault info")
				continue
			}

			out = append(out, views.VaultView(info, decimals))
		}

		render.JSON(w, out)
	}
}

func vaultHandler(vaultService core.VaultService, decimals int32) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := vaultID(r)
		if err != nil {
			render.Error(w, err)
			return
		}

		info, err := vaultService.VaultInfo(r.Context(), id)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.VaultView(info, decimals))
	}
}

func eventsHandler(eventStore core.EventStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := vaultID(r)
		if err != nil {
			render.Error(w, err)
			return
		}

		limit := 100
		if v := r.URL.Query().Get("limit"); v != "" {
			if limit, err = strconv.Atoi(v); err != nil || limit <= 0 || limit > maxEvents {
				render.Error(w, twirp.InvalidArgumentError("limit", "out of range"))
				return
			}
		}

		events, err := eventStore.ListByVault(r.Context(), id, limit)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, events)
	}
}

func accrueHandler(vaultService core.VaultService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := vaultID(r)
		if err != nil {
			render.Error(w, err)
			return
		}

		v, err := vaultService.Accrue(r.Context(), id)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, v)
	}
}

type pauseOp func(ctx context.Context, operator string, vaultID uint64) (*core.Vault, error)

func pauseHandler(op pauseOp) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		operator, err := holder(r)
		if err != nil {
			render.Error(w, err)
			return
		}

		id, err := vaultID(r)
		if err != nil {
			render.Error(w, err)
			return
		}

		v, err := op(r.Context(), operator, id)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, v)
	}
}

func reserveFactorHandler(vaultService core.VaultService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		operator, err := holder(r)
		if err != nil {
			render.Error(w, err)
			return
		}

		id, err := vaultID(r)
		if err != nil {
			render.Error(w, err)
			return
		}

		var body struct {
			ReserveFactor decimal.Decimal `json:"reserve_factor"`
		}

		if err := param.Binding(r, &body); err != nil {
			render.Error(w, err)
			return
		}

		factor, err := number.ToScaled(body.ReserveFactor, 9)
		if err != nil || factor > interest.Precision {
			render.Error(w, twirp.InvalidArgumentError("reserve_factor", "out of range"))
			return
		}

		v, err := vaultService.SetReserveFactor(r.Context(), operator, id, factor)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, v)
	}
}

func withdrawReservesHandler(vaultService core.VaultService, decimals int32) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		operator, err := holder(r)
		if err != nil {
			render.Error(w, err)
			return
		}

		id, err := vaultID(r)
		if err != nil {
			render.Error(w, err)
			return
		}

		var body struct {
			Amount decimal.Decimal `json:"amount"`
		}

		if err := param.Binding(r, &body); err != nil {
			render.Error(w, err)
			return
		}

		amount, err := number.ToScaled(body.Amount, decimals)
		if err != nil {
			render.Error(w, twirp.InvalidArgumentError("amount", "out of range"))
			return
		}

		receipt, err := vaultService.WithdrawReserves(r.Context(), operator, id, amount)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.ReceiptView(receipt, decimals))
	}
}
