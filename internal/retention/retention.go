// Package retention decides which backups a keep-last/hourly/daily/weekly/
// monthly/yearly policy retains.
//
// Rules run from finest to coarsest. Each rule keeps the newest backup of
// up to N calendar buckets that no earlier rule has already covered;
// everything no rule keeps is marked for removal.
package retention

import (
	"fmt"
	"sync"
	"time"

	"github.com/raoulx24/rdb-retention/internal/config"
	"github.com/raoulx24/rdb-retention/internal/logging"
)

// Engine classifies backup lists with a reloadable policy and time zone.
type Engine struct {
	mu     sync.RWMutex
	policy Policy
	loc    *time.Location
	log    logging.Logger
}

func New(cfg *config.Config, log logging.Logger) (*Engine, error) {
	e := &Engine{log: log}
	if err := e.UpdateConfig(cfg); err != nil {
		return nil, err
	}
	return e, nil
}

// PolicyFromConfig converts the retention section of the config file.
func PolicyFromConfig(c config.RetentionConfig) Policy {
	return Policy{
		KeepLast:    c.KeepLast,
		KeepHourly:  c.KeepHourly,
		KeepDaily:   c.KeepDaily,
		KeepWeekly:  c.KeepWeekly,
		KeepMonthly: c.KeepMonthly,
		KeepYearly:  c.KeepYearly,
	}
}

// UpdateConfig swaps in the retention policy and time zone of cfg. The
// engine keeps its previous settings if cfg is invalid.
func (e *Engine) UpdateConfig(cfg *config.Config) error {
	policy := PolicyFromConfig(cfg.Retention)
	if err := policy.Validate(); err != nil {
		return err
	}
	loc, err := cfg.Archive.Location()
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.policy = policy
	e.loc = loc
	e.mu.Unlock()

	e.log.Debug("retention settings updated", "policy", policy.String(), "timezone", loc.String())
	return nil
}

// Policy returns the policy currently in effect.
func (e *Engine) Policy() Policy {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.policy
}

// Apply converts every timestamp into the engine's time zone, sorts the
// records newest first and classifies them.
func (e *Engine) Apply(records []*Record) (Summary, error) {
	e.mu.RLock()
	policy := e.policy
	loc := e.loc
	e.mu.RUnlock()

	for _, r := range records {
		r.Timestamp = r.Timestamp.In(loc)
	}
	SortDescending(records)

	if err := Classify(records, policy); err != nil {
		e.log.Error("retention: classification failed", "error", err)
		return Summary{}, fmt.Errorf("classifying %d backups: %w", len(records), err)
	}

	sum := Summarize(records)
	e.log.Info("retention: classified backups",
		"policy", policy.String(),
		"total", sum.Total,
		"kept", sum.Kept,
		"removed", sum.Removed,
	)
	return sum, nil
}
