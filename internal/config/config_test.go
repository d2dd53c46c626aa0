package config

import "testing"

func TestDefaultCarriesClosedLabelSet(t *testing.T) {
	cfg := Default()

	labels := []string{
		LabelBFill, LabelFFill, LabelDiscard, LabelZero,
		LabelGood, LabelComment, LabelLinearFill,
	}
	for _, l := range labels {
		if !cfg.KnownLabel(l) {
			t.Errorf("expected label %q in default set", l)
		}
	}
	if cfg.KnownLabel("made-up") {
		t.Error("unknown label must not validate")
	}
}

func TestDefaultViewConstants(t *testing.T) {
	cfg := Default()

	if cfg.FractionPreshown != 6 {
		t.Errorf("expected fractionPreshown=6, got %d", cfg.FractionPreshown)
	}
	if cfg.MaxPreshownPoints != 50000 {
		t.Errorf("expected maxPreshownPoints=50000, got %d", cfg.MaxPreshownPoints)
	}
	if cfg.MinimumYRange != 10 {
		t.Errorf("expected minimumYRange=10, got %v", cfg.MinimumYRange)
	}
	if cfg.DecimateThreshold != 8000 || cfg.DecimatePoints != 2000 {
		t.Errorf("unexpected decimation bounds: %d/%d",
			cfg.DecimateThreshold, cfg.DecimatePoints)
	}
}

func TestPaletteColorSaturates(t *testing.T) {
	cfg := Default()
	last := cfg.Palette[len(cfg.Palette)-1]
	if got := cfg.PaletteColor(len(cfg.Palette) + 5); got != last {
		t.Errorf("expected saturation at last palette entry %s, got %s", last, got)
	}
}
