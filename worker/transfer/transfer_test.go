package transfer

import (
	"context"
	"errors"
	"testing"

	"lendvault/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type database struct{}

func (database) Tx(fn func(tx *db.DB) error) error { return fn(nil) }

type outbox struct {
	transfers []*core.Transfer
}

func (o *outbox) Create(_ context.Context, _ *db.DB, transfer *core.Transfer) error {
	o.transfers = append(o.transfers, transfer)
	return nil
}

func (o *outbox) Delete(_ context.Context, _ *db.DB, ids ...uint64) error {
	for _, id := range ids {
		for idx, t := range o.transfers {
			if t.ID == id {
				o.transfers = append(o.transfers[:idx], o.transfers[idx+1:]...)
				break
			}
		}
	}

	return nil
}

func (o *outbox) Top(_ context.Context, limit int) ([]*core.Transfer, error) {
	if len(o.transfers) > limit {
		return append([]*core.Transfer(nil), o.transfers[:limit]...), nil
	}

	return append([]*core.Transfer(nil), o.transfers...), nil
}

type wallet struct {
	paid []string
	fail string
}

func (w *wallet) HandleTransfer(_ context.Context, transfer *core.Transfer) error {
	if transfer.TraceID == w.fail {
		return errors.New("insufficient balance")
	}

	w.paid = append(w.paid, transfer.TraceID)
	return nil
}

func (w *wallet) VerifyPayment(context.Context, *core.Transfer) (bool, error) { return true, nil }

func (w *wallet) PaySchemaURL(uint64, string, string, string) (string, error) { return "", nil }

func TestWorker(t *testing.T) {
	box := &outbox{transfers: []*core.Transfer{
		{ID: 1, TraceID: "a", Amount: 10},
		{ID: 2, TraceID: "b", Amount: 20},
		{ID: 3, TraceID: "c", Amount: 30},
	}}
	w := &wallet{fail: "b"}

	job, err := New("UTC", database{}, box, w)
	require.NoError(t, err)

	err = job.onWork(context.Background())
	assert.Error(t, err)
	assert.Equal(t, []string{"a"}, w.paid)
	require.Len(t, box.transfers, 2)

	w.fail = ""
	require.NoError(t, job.onWork(context.Background()))
	assert.Equal(t, []string{"a", "b", "c"}, w.paid)
	assert.Empty(t, box.transfers)
}
