package inventory

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/pos-inventory/internal/domain/repository"
)

const sweepLockKey = "pos-inventory:alerts:sweep"

// AlertSweeper ejecuta MonitorAll para cada tenant con inventario cada interval.
// Con locker, solo la instancia que obtiene el candado barre en ese intervalo.
type AlertSweeper struct {
	monitor  *AlertMonitor
	invRepo  repository.InventoryRepository
	locker   SweepLocker
	interval time.Duration
	log      zerolog.Logger
}

// NewAlertSweeper construye el barrido. locker puede ser nil (instancia única).
func NewAlertSweeper(monitor *AlertMonitor, invRepo repository.InventoryRepository, locker SweepLocker, interval time.Duration, log zerolog.Logger) *AlertSweeper {
	return &AlertSweeper{
		monitor:  monitor,
		invRepo:  invRepo,
		locker:   locker,
		interval: interval,
		log:      log,
	}
}

// Start bloquea hasta que ctx se cancele.
func (s *AlertSweeper) Start(ctx context.Context) {
	if s.interval <= 0 {
		return
	}
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.SweepOnce(ctx); err != nil && ctx.Err() == nil {
				s.log.Error().Err(err).Msg("barrido de alertas")
			}
		}
	}
}

// SweepOnce evalúa todos los tenants y devuelve cuántas alertas cambiaron.
func (s *AlertSweeper) SweepOnce(ctx context.Context) (int, error) {
	if s.locker != nil {
		ok, err := s.locker.TryLock(ctx, sweepLockKey, s.lockTTL())
		if err != nil {
			return 0, err
		}
		if !ok {
			s.log.Debug().Msg("barrido de alertas en curso en otra instancia")
			return 0, nil
		}
	}
	tenants, err := s.invRepo.ListTenants(ctx)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, tenantID := range tenants {
		changed, err := s.monitor.MonitorAll(ctx, tenantID)
		total += len(changed)
		if err != nil {
			s.log.Warn().Err(err).Str("tenant_id", tenantID).Msg("barrido de alertas del tenant")
			continue
		}
		if len(changed) > 0 {
			s.log.Info().Str("tenant_id", tenantID).Int("changed", len(changed)).Msg("alertas actualizadas")
		}
	}
	return total, nil
}

// lockTTL algo menor que el intervalo para que el siguiente tick pueda tomar el candado.
func (s *AlertSweeper) lockTTL() time.Duration {
	if s.interval <= time.Second {
		return s.interval
	}
	return s.interval - s.interval/10
}
