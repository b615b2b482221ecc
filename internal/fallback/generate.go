// Package fallback synthesizes a response turn when the gateway call fails,
// so the user never receives an empty response.
package fallback

import (
	"fmt"
	"strings"

	"github.com/atlasgrid/command-center/internal/briefing"
	"github.com/atlasgrid/command-center/pkg/models"
)

// Generate produces deterministic narrative text for a failed cycle. The
// text references the snapshot's lowest-performing KPI and highest-severity
// alert, with wording branching on the failure classification.
func Generate(kind models.ErrorKind, snap models.ContextSnapshot) string {
	summary := contextSummary(snap)

	switch kind {
	case models.ErrKindRateLimited:
		return "I'm experiencing high demand right now. " + summary +
			" Please try your specific question again in a few moments for detailed analysis."

	case models.ErrKindPaymentRequired:
		return "The AI analysis service is temporarily unavailable. " + summary +
			" Please contact your system administrator for AI service restoration."

	default:
		return "I apologize, but I'm experiencing technical difficulties reaching the analysis service. " +
			summary +
			" Please try your question again, or contact technical support if issues persist."
	}
}

// contextSummary builds the data-grounded portion of the fallback from the
// snapshot. The snapshot is assembled deterministically, so for a given
// dashboard state the summary is identical on every call.
func contextSummary(snap models.ContextSnapshot) string {
	var parts []string

	if kpi, ok := briefing.WorstKPI(snap); ok {
		value := kpi.Value
		if kpi.Unit != "" {
			value += " " + kpi.Unit
		}
		parts = append(parts, fmt.Sprintf("%s at %s (%s) is the most pressing metric on the board",
			kpi.Metric, value, kpi.TrendValue))
	}

	if alert, ok := briefing.TopAlert(snap); ok {
		parts = append(parts, fmt.Sprintf("the top alert remains %q in %s with %s at stake",
			alert.Title, alert.Region, alert.Impact))
	}

	if len(parts) == 0 {
		return "The dashboard currently shows no concerning metrics or active alerts."
	}
	return "Based on the current dashboard data, " + strings.Join(parts, ", and ") + "."
}
