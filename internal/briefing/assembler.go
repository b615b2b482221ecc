// Package briefing assembles the deterministic business context snapshot
// that grounds every assistant request.
package briefing

import (
	"github.com/atlasgrid/command-center/pkg/models"
)

// KPI health statuses derived from the trend direction.
const (
	StatusConcerning = "concerning"
	StatusPositive   = "positive"
)

// Assemble builds a ContextSnapshot from the current KPI board, the active
// alert feed, and the static business profile.
//
// Assemble is a pure function: identical inputs produce structurally
// identical snapshots, and it performs no I/O. Callers must invoke it fresh
// for every request cycle so the snapshot reflects the latest upstream
// state; snapshots are never cached.
func Assemble(kpis []models.KPI, alerts []models.Alert, profile models.BusinessProfile) models.ContextSnapshot {
	snap := models.ContextSnapshot{
		KPIs:     make([]models.KPIStatus, 0, len(kpis)),
		Alerts:   make([]models.Alert, 0, len(alerts)),
		Business: profile,
	}

	for _, k := range kpis {
		status := StatusPositive
		if k.Trend == "down" {
			status = StatusConcerning
		}
		snap.KPIs = append(snap.KPIs, models.KPIStatus{
			Metric:     k.Title,
			Value:      k.Value,
			Unit:       k.Unit,
			Trend:      k.Trend,
			TrendValue: k.TrendValue,
			Status:     status,
		})
	}

	// Alert fields pass through unchanged.
	snap.Alerts = append(snap.Alerts, alerts...)

	return snap
}

// WorstKPI returns the first KPI whose derived status is concerning, which
// by board ordering is the lowest-performing metric. The second return is
// false when no KPI is trending down.
func WorstKPI(snap models.ContextSnapshot) (models.KPIStatus, bool) {
	for _, k := range snap.KPIs {
		if k.Status == StatusConcerning {
			return k, true
		}
	}
	return models.KPIStatus{}, false
}

// TopAlert returns the highest-severity alert, first in feed order among
// equals. The second return is false when the feed is empty.
func TopAlert(snap models.ContextSnapshot) (models.Alert, bool) {
	rank := map[string]int{"critical": 4, "high": 3, "medium": 2, "low": 1}

	var best models.Alert
	bestRank := 0
	for _, a := range snap.Alerts {
		if r := rank[a.Severity]; r > bestRank {
			best = a
			bestRank = r
		}
	}
	return best, bestRank > 0
}
