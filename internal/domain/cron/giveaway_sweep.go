package cron

import (
	"context"
	"time"

	"github.com/drawlab-gg/backend/internal/domain"
	"github.com/drawlab-gg/backend/internal/model"
	"github.com/drawlab-gg/backend/internal/repository"
	"github.com/drawlab-gg/backend/pkg/xcontext"
)

// GiveawaySweepCronJob discovers giveaways whose deadline has passed and
// resolves them. A giveaway whose resolution hits a transient store error
// stays unresolved and is retried on the next sweep.
type GiveawaySweepCronJob struct {
	giveawayRepo   repository.GiveawayRepository
	giveawayDomain domain.GiveawayDomain
	interval       time.Duration
}

func NewGiveawaySweepCronJob(
	giveawayRepo repository.GiveawayRepository,
	giveawayDomain domain.GiveawayDomain,
	interval time.Duration,
) *GiveawaySweepCronJob {
	return &GiveawaySweepCronJob{
		giveawayRepo:   giveawayRepo,
		giveawayDomain: giveawayDomain,
		interval:       interval,
	}
}

func (job *GiveawaySweepCronJob) Do(ctx context.Context) {
	expired, err := job.giveawayRepo.GetUnresolvedExpired(ctx, time.Now())
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get expired giveaways: %v", err)
		return
	}

	for i := range expired {
		outcome, err := job.giveawayDomain.Resolve(ctx, &expired[i])
		if err != nil {
			// One failure must not abort the sweep of the others.
			xcontext.Logger(ctx).Errorf("Cannot resolve giveaway %s: %v", expired[i].ID, err)
			continue
		}

		if outcome.Outcome == model.OutcomeAlreadyEnded {
			xcontext.Logger(ctx).Debugf("Giveaway %s was ended by someone else", expired[i].ID)
			continue
		}

		xcontext.Logger(ctx).Infof("Resolved giveaway %s: %s", expired[i].ID, outcome.Outcome)
	}
}

// RunNow sweeps immediately at startup so giveaways that expired while the
// process was down are resolved without waiting a full interval.
func (job *GiveawaySweepCronJob) RunNow() bool {
	return true
}

func (job *GiveawaySweepCronJob) Next() time.Time {
	return time.Now().Add(job.interval)
}
