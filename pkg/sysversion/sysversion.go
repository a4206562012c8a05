package sysversion

import (
	"context"

	"github.com/fox-one/pkg/property"
)

const (
	SysVersionKey = "sysversion"

	// Current schema version written by migrate
	Current int64 = 1
)

func ReadSysVersion(ctx context.Context, property property.Store) (int64, error) {
	v, err := property.Get(ctx, SysVersionKey)
	if err != nil {
		return 0, err
	}
	return v.Int64(), nil
}

// WriteSysVersion stamps the database with ver, refusing to go backwards
func WriteSysVersion(ctx context.Context, property property.Store, ver int64) error {
	cur, err := ReadSysVersion(ctx, property)
	if err != nil {
		return err
	}

	if cur >= ver {
		return nil
	}

	return property.Save(ctx, SysVersionKey, ver)
}

// Outdated reports whether the database predates the running binary
func Outdated(ctx context.Context, property property.Store) (bool, error) {
	cur, err := ReadSysVersion(ctx, property)
	if err != nil {
		return false, err
	}

	return cur < Current, nil
}
