package rest

import (
	"context"
	"net/http"

	"lendvault/core"
	"lendvault/handler/param"
	"lendvault/handler/render"
	"lendvault/handler/views"
	"lendvault/pkg/number"

	"github.com/go-chi/chi"
	"github.com/shopspring/decimal"
	"github.com/twitchtv/twirp"
)

type positionBody struct {
	// defaults to the holder's own wallet
	Identity string `json:"identity,omitempty"`
	// asset amount for deposit, lock, borrow and repay
	Amount decimal.Decimal `json:"amount,omitempty"`
	// shares for withdraw and withdraw-early
	Shares  uint64 `json:"shares,omitempty"`
	Tier    uint8  `json:"tier,omitempty"`
	TraceID string `json:"trace_id,omitempty" valid:"uuid"`
	// receiving identity of transfer-position
	Target string `json:"target,omitempty"`
}

// bind builds the vault request from the path, the holder and the body
func bind(r *http.Request, decimals int32, useShares bool) (*core.Request, *positionBody, error) {
	id, err := vaultID(r)
	if err != nil {
		return nil, nil, err
	}

	h, err := holder(r)
	if err != nil {
		return nil, nil, err
	}

	var body positionBody
	if err := param.Binding(r, &body); err != nil {
		return nil, nil, err
	}

	req := &core.Request{
		VaultID:  id,
		Holder:   h,
		Identity: body.Identity,
		Tier:     body.Tier,
		TraceID:  body.TraceID,
	}

	if req.Identity == "" {
		req.Identity = h
	}

	if useShares {
		req.Amount = body.Shares
	} else if req.Amount, err = number.ToScaled(body.Amount, decimals); err != nil {
		return nil, nil, twirp.InvalidArgumentError("amount", "out of range")
	}

	return req, &body, nil
}

type positionOp func(ctx context.Context, req *core.Request) (*core.Receipt, error)

func positionOpHandler(op positionOp, decimals int32, useShares bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, _, err := bind(r, decimals, useShares)
		if err != nil {
			render.Error(w, err)
			return
		}

		receipt, err := op(r.Context(), req)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.ReceiptView(receipt, decimals))
	}
}

func transferPositionHandler(vaultService core.VaultService, decimals int32) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, body, err := bind(r, decimals, true)
		if err != nil {
			render.Error(w, err)
			return
		}

		if body.Target == "" {
			render.Error(w, twirp.RequiredArgumentError("target"))
			return
		}

		receipt, err := vaultService.TransferPosition(r.Context(), req, body.Target)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.ReceiptView(receipt, decimals))
	}
}

func previewLockHandler(vaultService core.VaultService, decimals int32) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := vaultID(r)
		if err != nil {
			render.Error(w, err)
			return
		}

		var body positionBody
		if err := param.Binding(r, &body); err != nil {
			render.Error(w, err)
			return
		}

		amount, err := number.ToScaled(body.Amount, decimals)
		if err != nil {
			render.Error(w, twirp.InvalidArgumentError("amount", "out of range"))
			return
		}

		quote, err := vaultService.PreviewLock(r.Context(), &core.Request{
			VaultID:  id,
			Identity: body.Identity,
			Amount:   amount,
			Tier:     body.Tier,
		})
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.LockQuoteView(quote, decimals))
	}
}

func positionHandler(vaultService core.VaultService, clock core.Clock, decimals int32) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := vaultID(r)
		if err != nil {
			render.Error(w, err)
			return
		}

		info, err := vaultService.PositionInfo(r.Context(), id, chi.URLParam(r, "identity"))
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.PositionView(info, clock.Now().Unix(), decimals))
	}
}
