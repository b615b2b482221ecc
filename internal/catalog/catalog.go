// Package catalog serves the static reference data behind the command
// center: the KPI board, the active alert feed, trend chart series, the
// business profile, and the assistant's quick-action prompts.
//
// The data ships embedded in the binary and is read-only at runtime. It is
// the only state shared between sessions, which is why everything returned
// from this package is a copy.
package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/atlasgrid/command-center/pkg/models"
)

//go:embed data.yaml
var rawData []byte

type dataset struct {
	KPIs         []models.KPI           `yaml:"kpis"`
	Alerts       []models.Alert         `yaml:"alerts"`
	Trends       []models.TrendSeries   `yaml:"trends"`
	Profile      models.BusinessProfile `yaml:"business_profile"`
	QuickActions []models.QuickAction   `yaml:"quick_actions"`
}

// Catalog is an immutable view over the embedded reference dataset.
type Catalog struct {
	data dataset
}

// Load parses the embedded dataset. It fails only if the embedded YAML is
// malformed, which is a build defect rather than a runtime condition.
func Load() (*Catalog, error) {
	var d dataset
	if err := yaml.Unmarshal(rawData, &d); err != nil {
		return nil, fmt.Errorf("parse embedded catalog: %w", err)
	}
	if len(d.KPIs) == 0 || len(d.Alerts) == 0 {
		return nil, fmt.Errorf("embedded catalog is incomplete: %d kpis, %d alerts", len(d.KPIs), len(d.Alerts))
	}
	return &Catalog{data: d}, nil
}

// KPIs returns the current KPI board.
func (c *Catalog) KPIs() []models.KPI {
	out := make([]models.KPI, len(c.data.KPIs))
	copy(out, c.data.KPIs)
	return out
}

// Alerts returns all active alerts, most critical first in source order.
func (c *Catalog) Alerts() []models.Alert {
	out := make([]models.Alert, len(c.data.Alerts))
	copy(out, c.data.Alerts)
	return out
}

// Alert returns a single alert by its ID.
func (c *Catalog) Alert(id string) (models.Alert, bool) {
	for _, a := range c.data.Alerts {
		if a.ID == id {
			return a, true
		}
	}
	return models.Alert{}, false
}

// Trends returns the dashboard trend chart series.
func (c *Catalog) Trends() []models.TrendSeries {
	out := make([]models.TrendSeries, len(c.data.Trends))
	copy(out, c.data.Trends)
	return out
}

// Profile returns the static business profile.
func (c *Catalog) Profile() models.BusinessProfile {
	p := c.data.Profile
	p.KeyRegions = append([]string(nil), c.data.Profile.KeyRegions...)
	p.CurrentChallenges = append([]string(nil), c.data.Profile.CurrentChallenges...)
	return p
}

// QuickActions returns the canned assistant prompts.
func (c *Catalog) QuickActions() []models.QuickAction {
	out := make([]models.QuickAction, len(c.data.QuickActions))
	copy(out, c.data.QuickActions)
	return out
}
