package retention

import "time"

// bucket identifies the calendar slot a record falls into for one rule.
// Fields a rule does not use stay zero.
type bucket struct {
	unix  int64
	year  int
	month time.Month
	week  int
	day   int
	hour  int
}

type bucketFunc func(time.Time) bucket

var bucketFuncs = map[Rule]bucketFunc{
	RuleLast: func(t time.Time) bucket {
		return bucket{unix: t.Unix()}
	},
	RuleHourly: func(t time.Time) bucket {
		y, m, d := t.Date()
		return bucket{year: y, month: m, day: d, hour: t.Hour()}
	},
	RuleDaily: func(t time.Time) bucket {
		y, m, d := t.Date()
		return bucket{year: y, month: m, day: d}
	},
	RuleWeekly: func(t time.Time) bucket {
		// ISO week-year, which differs from the calendar year around
		// new year
		y, w := t.ISOWeek()
		return bucket{year: y, week: w}
	},
	RuleMonthly: func(t time.Time) bucket {
		y, m, _ := t.Date()
		return bucket{year: y, month: m}
	},
	RuleYearly: func(t time.Time) bucket {
		return bucket{year: t.Year()}
	},
}

// Classify marks every record Keep or Remove under policy. records must be
// strictly descending by timestamp. Existing marks are discarded first, so
// classifying the same list twice gives the same result.
//
// Calendar buckets are computed in each timestamp's own location.
func Classify(records []*Record, policy Policy) error {
	if err := policy.Validate(); err != nil {
		return err
	}
	for i := 1; i < len(records); i++ {
		if !records[i].Timestamp.Before(records[i-1].Timestamp) {
			return &OrderError{Index: i}
		}
	}

	for _, r := range records {
		r.reset()
	}
	markPartial(records)

	if policy.IsZero() {
		for _, r := range records {
			if r.Mark == Unmarked {
				r.Mark = Keep
				r.Rule = RuleAll
			}
		}
		return nil
	}

	for _, rule := range ruleOrder {
		if count := policy.Count(rule); count > 0 {
			applyRule(records, count, rule, bucketFuncs[rule])
		}
	}

	for _, r := range records {
		if r.Mark == Unmarked {
			r.Mark = Remove
		}
	}
	return nil
}

// markPartial settles incomplete backups before any rule runs. The newest
// one is kept as long as no complete backup is newer; every other is
// removed.
func markPartial(records []*Record) {
	keepNext := true
	for _, r := range records {
		if !r.Partial {
			keepNext = false
			continue
		}
		if keepNext {
			r.Mark = Keep
			r.Rule = RulePartial
		} else {
			r.Mark = Remove
		}
		keepNext = false
	}
}

// applyRule keeps the newest record of up to count buckets not already
// covered by an earlier rule. Older records sharing a bucket accepted here
// are removed; records in buckets an earlier rule kept are left for the
// coarser rules that follow.
func applyRule(records []*Record, count int, rule Rule, key bucketFunc) {
	alreadyKept := make(map[bucket]struct{})
	for _, r := range records {
		// a kept partial backup does not cover its bucket
		if r.Mark == Keep && r.Rule != RulePartial {
			alreadyKept[key(r.Timestamp)] = struct{}{}
		}
	}

	newBuckets := make(map[bucket]struct{})
	accepted := 0
	quotaReached := false

	for _, r := range records {
		if quotaReached {
			continue
		}
		// marks set by an earlier rule are final
		if r.Mark != Unmarked {
			continue
		}

		k := key(r.Timestamp)
		if _, ok := alreadyKept[k]; ok {
			continue
		}

		if _, seen := newBuckets[k]; seen {
			r.Mark = Remove
			continue
		}

		if accepted >= count {
			quotaReached = true
			continue
		}
		accepted++
		newBuckets[k] = struct{}{}
		r.Mark = Keep
		r.Rule = rule
		r.Ordinal = accepted
	}
}
