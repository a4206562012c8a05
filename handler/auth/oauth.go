package auth

import (
	"net/http"

	"lendvault/core"
	"lendvault/handler/param"
	"lendvault/handler/render"

	"github.com/fox-one/mixin-sdk-go"
	"github.com/twitchtv/twirp"
)

// HandleOauth exchanges a mixin oauth code for an access token and returns
// the holder the token authenticates as
func HandleOauth(mixinConfig *core.Mixin, session core.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Code string `json:"code,omitempty" valid:"minstringlength(6),required"`
		}

		if err := param.Binding(r, &body); err != nil {
			render.Error(w, err)
			return
		}

		ctx := r.Context()

		token, scope, err := mixin.AuthorizeToken(ctx, mixinConfig.ClientID, mixinConfig.ClientSecret, body.Code, "")
		if err != nil {
			render.Error(w, twirp.InvalidArgumentError("code", err.Error()))
			return
		}

		holder, err := session.Login(ctx, token)
		if err != nil {
			render.Error(w, twirp.NewError(twirp.Unauthenticated, err.Error()))
			return
		}

		render.JSON(w, render.H{
			"token":  token,
			"scope":  scope,
			"holder": holder,
		})
	}
}
