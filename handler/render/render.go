package render

import (
	"encoding/json"
	"net/http"
	"strconv"

	"lendvault/handler/codes"

	"github.com/sirupsen/logrus"
	"github.com/twitchtv/twirp"
)

// H map of response fields
type H map[string]interface{}

// JSON render with json
func JSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Errorln("render json")
	}
}

// Error write err with the http status of its twirp code
func Error(w http.ResponseWriter, err error) {
	twerr := codes.Convert(err)

	code := codes.Get(twerr.Code())
	if v, err := strconv.Atoi(twerr.Meta(codes.CustomCodeKey)); err == nil {
		code = v
	}

	resp := errorResponse{Code: code, Msg: twerr.Msg()}
	if twerr.Code() == twirp.Internal {
		resp.Msg = "internal error"
		if ResponseErrorMessageAsHint {
			resp.Hint = twerr.Msg()
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(twirp.ServerHTTPStatusFromErrorCode(twerr.Code()))

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logrus.WithError(err).Errorln("render error")
	}
}

// NotFoundRequest not found request error
func NotFoundRequest(w http.ResponseWriter, err error) {
	Error(w, twirp.NotFoundError(err.Error()))
}
