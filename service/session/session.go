package session

import (
	"context"
	"errors"
	"time"

	"lendvault/core"

	"github.com/asaskevich/govalidator"
	"github.com/bluele/gcache"
	"github.com/fox-one/mixin-sdk-go"
	"golang.org/x/sync/singleflight"
)

type loginFunc func(ctx context.Context, accessToken string) (string, error)

func mixinLogin(ctx context.Context, accessToken string) (string, error) {
	profile, err := mixin.UserMe(ctx, accessToken)
	if err != nil {
		return "", err
	}

	return profile.UserID, nil
}

// New new session backed by the mixin profile api, logins are cached for ttl
func New(capacity int, ttl time.Duration) core.Session {
	return newSession(mixinLogin, capacity, ttl)
}

func newSession(login loginFunc, capacity int, ttl time.Duration) core.Session {
	var s core.Session = &session{
		login: login,
		sf:    &singleflight.Group{},
	}

	if capacity > 0 {
		s = &cacheSession{
			Session: s,
			tokens:  gcache.New(capacity).LRU().Expiration(ttl).Build(),
		}
	}

	return s
}

type session struct {
	login loginFunc
	sf    *singleflight.Group
}

func (s *session) Login(ctx context.Context, accessToken string) (string, error) {
	if accessToken == "" {
		return "", errors.New("empty token")
	}

	v, err, _ := s.sf.Do(accessToken, func() (interface{}, error) {
		holder, err := s.login(ctx, accessToken)
		if err != nil {
			return nil, err
		}

		if !govalidator.IsUUID(holder) {
			return nil, errors.New("invalid user id")
		}

		return holder, nil
	})
	if err != nil {
		return "", err
	}

	return v.(string), nil
}

type cacheSession struct {
	core.Session
	tokens gcache.Cache
}

func (s *cacheSession) Login(ctx context.Context, accessToken string) (string, error) {
	if v, err := s.tokens.Get(accessToken); err == nil {
		return v.(string), nil
	}

	holder, err := s.Session.Login(ctx, accessToken)
	if err != nil {
		return "", err
	}

	_ = s.tokens.Set(accessToken, holder)
	return holder, nil
}
