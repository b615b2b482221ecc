package catalog_test

import (
	"testing"

	"github.com/atlasgrid/command-center/internal/catalog"
)

func mustLoad(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return c
}

func TestLoadEmbeddedDataset(t *testing.T) {
	c := mustLoad(t)

	if got := len(c.KPIs()); got != 7 {
		t.Errorf("KPIs() returned %d entries, want 7", got)
	}
	if got := len(c.Alerts()); got != 5 {
		t.Errorf("Alerts() returned %d entries, want 5", got)
	}
	if got := len(c.Trends()); got != 3 {
		t.Errorf("Trends() returned %d series, want 3", got)
	}
	if got := len(c.QuickActions()); got != 3 {
		t.Errorf("QuickActions() returned %d entries, want 3", got)
	}
}

func TestKPIFields(t *testing.T) {
	c := mustLoad(t)

	for _, k := range c.KPIs() {
		if k.Title == "" || k.Value == "" {
			t.Errorf("KPI %+v missing title or value", k)
		}
		if k.Trend != "up" && k.Trend != "down" {
			t.Errorf("KPI %q has trend %q, want up or down", k.Title, k.Trend)
		}
	}
}

func TestAlertLookup(t *testing.T) {
	c := mustLoad(t)

	first := c.Alerts()[0]
	got, ok := c.Alert(first.ID)
	if !ok {
		t.Fatalf("Alert(%q) not found", first.ID)
	}
	if got.Title != first.Title {
		t.Errorf("Alert(%q).Title = %q, want %q", first.ID, got.Title, first.Title)
	}

	if _, ok := c.Alert("no-such-alert"); ok {
		t.Error("Alert() for unknown ID succeeded, want miss")
	}
}

func TestProfileIsPopulated(t *testing.T) {
	c := mustLoad(t)

	p := c.Profile()
	if p.Company == "" || p.Industry == "" {
		t.Errorf("Profile() = %+v, want company and industry set", p)
	}
	if len(p.KeyRegions) == 0 || len(p.CurrentChallenges) == 0 {
		t.Error("Profile() missing key regions or current challenges")
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	c := mustLoad(t)

	kpis := c.KPIs()
	kpis[0].Title = "mutated"
	if c.KPIs()[0].Title == "mutated" {
		t.Error("KPIs() exposes internal state")
	}

	p := c.Profile()
	p.KeyRegions[0] = "mutated"
	if c.Profile().KeyRegions[0] == "mutated" {
		t.Error("Profile() exposes internal KeyRegions slice")
	}
}
