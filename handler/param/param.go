package param

import (
	"encoding/json"
	"net/http"

	"lendvault/handler/codes"

	"github.com/asaskevich/govalidator"
	"github.com/twitchtv/twirp"
)

// Binding decodes the json body into v and validates its valid tags
func Binding(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return codes.With(twirp.InvalidArgumentError("body", err.Error()), codes.InvalidArguments)
	}

	if _, err := govalidator.ValidateStruct(v); err != nil {
		return codes.With(twirp.InvalidArgumentError("body", err.Error()), codes.InvalidArguments)
	}

	return nil
}
