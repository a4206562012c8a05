package rest

import (
	"net/http"

	"lendvault/core"
	"lendvault/handler/param"
	"lendvault/handler/render"
	"lendvault/pkg/id"

	"github.com/twitchtv/twirp"
)

func payRequestsHandler(vaultStore core.VaultStore, walletService core.WalletService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			VaultID uint64 `json:"vault_id" valid:"required"`
			// base units
			Amount  uint64 `json:"amount" valid:"required"`
			TraceID string `json:"trace_id,omitempty"`
			Memo    string `json:"memo,omitempty" valid:"maxstringlength(140)"`
		}

		if err := param.Binding(r, &body); err != nil {
			render.Error(w, err)
			return
		}

		v, err := vaultStore.Find(r.Context(), body.VaultID)
		if err != nil {
			render.Error(w, err)
			return
		}

		if body.TraceID == "" {
			body.TraceID = id.GenTraceID()
		}

		// deposits and repayments move funds in exactly once
		trace := id.TransferTraceID(body.TraceID, 0)
		url, err := walletService.PaySchemaURL(body.Amount, v.AssetID, trace, body.Memo)
		if err != nil {
			render.Error(w, twirp.InvalidArgumentError("amount", err.Error()))
			return
		}

		render.JSON(w, render.H{
			"url":       url,
			"trace_id":  body.TraceID,
			"pay_trace": trace,
			"asset_id":  v.AssetID,
		})
	}
}
