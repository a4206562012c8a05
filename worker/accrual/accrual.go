package accrual

import (
	"context"
	"sync"
	"time"

	"lendvault/core"
	"lendvault/pkg/concurrency"
	"lendvault/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/property"
)

// CheckpointKey property key holding the time of the last finished round
const CheckpointKey = "accrue_checkpoint"

// Worker accrues interest on every vault so idle vaults keep their index current
type Worker struct {
	worker.BaseJob
	vaultStore   core.VaultStore
	vaultService core.VaultService
	property     property.Store
	limit        *concurrency.GoLimit
}

// New new accrual worker, spec is a cron spec such as "@every 1m"
func New(location, spec string, vaultStore core.VaultStore, vaultService core.VaultService, property property.Store) (*Worker, error) {
	w := &Worker{
		vaultStore:   vaultStore,
		vaultService: vaultService,
		property:     property,
		limit:        concurrency.NewGoLimit(8),
	}

	if err := w.Init("accrual", location, spec, w.onWork); err != nil {
		return nil, err
	}

	return w, nil
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx)

	vaults, err := w.vaultStore.All(ctx)
	if err != nil {
		log.WithError(err).Errorln("vaults.All")
		return err
	}

	var wg sync.WaitGroup
	for _, v := range vaults {
		if v.IsPaused {
			continue
		}

		wg.Add(1)
		w.limit.Add()
		go func(v *core.Vault) {
			defer wg.Done()
			defer w.limit.Done()

			if _, err := w.vaultService.Accrue(ctx, v.ID); err != nil {
				log.WithError(err).WithField("vault", v.ID).Errorln("accrue")
			}
		}(v)
	}
	wg.Wait()

	if w.property == nil {
		return nil
	}

	if err := w.property.Save(ctx, CheckpointKey, time.Now()); err != nil {
		log.WithError(err).Errorln("property.Save", CheckpointKey)
		return err
	}

	return nil
}
