package services

import (
	"MysteryBox/internal/config"
	"MysteryBox/internal/metrics"
	"MysteryBox/internal/models"
	"MysteryBox/internal/repository"
	"context"
	"errors"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"sync"
	"time"
)

const sweepJob = "depletion_sweep"

var ErrSweepInProgress = errors.New("depletion sweep is in progress")

// DepletionSweeper periodically disables live boxes that hold an item with
// no remaining stock. Unboxing handles depletion inline; the sweep catches
// boxes whose stock was zeroed some other way.
type DepletionSweeper struct {
	store         repository.Store
	depletion     DepletionHandler
	notifier      NotificationService
	jobMetrics    *metrics.JobMetrics
	configuration *config.Configuration
	logService    LogService
	sweeping      bool
	mutex         sync.Mutex
	cron          *cron.Cron
}

func NewDepletionSweeper(
	store repository.Store,
	depletion DepletionHandler,
	notifier NotificationService,
	jobMetrics *metrics.JobMetrics,
	logService LogService,
	configuration *config.Configuration,
) *DepletionSweeper {
	return &DepletionSweeper{
		store:         store,
		depletion:     depletion,
		notifier:      notifier,
		jobMetrics:    jobMetrics,
		configuration: configuration,
		logService:    logService,
		cron:          cron.New(),
	}
}

// Start schedules the sweep on the configured cron expression.
func (d *DepletionSweeper) Start() error {
	schedule := d.configuration.Server.SweepConfig.Schedule
	_, err := d.cron.AddFunc(schedule, func() {
		if !d.begin() {
			return
		}
		defer d.finish()
		d.sweep(context.Background(), false)
	})
	if err != nil {
		d.logService.Log.WithFields(logrus.Fields{
			"job":   sweepJob,
			"cron":  schedule,
			"error": err.Error(),
		}).Error("Failed to schedule depletion sweep")
		return err
	}
	d.cron.Start()
	d.logService.Log.WithFields(logrus.Fields{
		"job":    sweepJob,
		"status": "scheduled",
		"cron":   schedule,
	}).Info("Depletion sweep scheduled")
	return nil
}

// Stop halts the schedule and waits for a running sweep to finish.
func (d *DepletionSweeper) Stop() {
	<-d.cron.Stop().Done()
	d.logService.Log.WithFields(logrus.Fields{
		"job":    sweepJob,
		"status": "stopped",
	}).Info("Depletion sweep stopped")
}

// ForceSweep runs a sweep now in the background. It fails when one is
// already running.
func (d *DepletionSweeper) ForceSweep() error {
	if !d.begin() {
		return ErrSweepInProgress
	}
	go func() {
		defer d.finish()
		d.sweep(context.Background(), true)
	}()
	return nil
}

// RunOnce sweeps synchronously and reports how many boxes were disabled.
func (d *DepletionSweeper) RunOnce(ctx context.Context) (int, error) {
	if !d.begin() {
		return 0, ErrSweepInProgress
	}
	defer d.finish()
	return d.sweep(ctx, true)
}

func (d *DepletionSweeper) IsSweeping() bool {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.sweeping
}

func (d *DepletionSweeper) begin() bool {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	if d.sweeping {
		return false
	}
	d.sweeping = true
	return true
}

func (d *DepletionSweeper) finish() {
	d.mutex.Lock()
	d.sweeping = false
	d.mutex.Unlock()
}

func (d *DepletionSweeper) sweep(ctx context.Context, forced bool) (int, error) {
	started := time.Now()
	defer func() { d.jobMetrics.ObserveDuration(sweepJob, time.Since(started)) }()

	status := "start"
	if forced {
		status = "forced"
	}
	d.logService.Log.WithFields(logrus.Fields{"job": sweepJob, "status": status}).Debug("Looking for depleted items")

	items, err := d.store.WithContext(ctx).Items().FindDepletedInLiveBoxes()
	if err != nil {
		d.jobMetrics.IncFailure(sweepJob)
		d.logService.Log.WithFields(logrus.Fields{
			"job":    sweepJob,
			"status": "error",
			"error":  err.Error(),
		}).Error("Failed to find depleted items")
		return 0, err
	}

	disabled := 0
	var failed error
	for i := range items {
		item := items[i]
		var pending *models.Notification
		err := d.store.Transaction(ctx, func(tx repository.Store) error {
			box, err := tx.Boxes().FindByID(item.BoxID)
			if err != nil {
				return err
			}
			pending, err = d.depletion.HandleDepletion(tx, box, &item)
			return err
		})
		if err != nil {
			failed = err
			d.logService.Log.WithFields(logrus.Fields{
				"job":    sweepJob,
				"status": "error",
				"box":    item.BoxID,
				"item":   item.ID,
				"error":  err.Error(),
			}).Error("Failed to disable depleted box")
			continue
		}
		if pending != nil {
			disabled++
			dispatch(ctx, d.notifier, d.logService, pending)
		}
	}

	if failed != nil {
		d.jobMetrics.IncFailure(sweepJob)
		return disabled, failed
	}
	d.jobMetrics.IncSuccess(sweepJob)
	if disabled > 0 {
		d.logService.Log.WithFields(logrus.Fields{
			"job":    sweepJob,
			"status": "success",
			"count":  disabled,
		}).Info("Depletion sweep finished")
	}
	return disabled, nil
}
