package memory

import "testing"

func TestBounds_ModeEntryWins(t *testing.T) {
	s := DefaultSettings()
	s.Mode = ModePlan
	if got := s.Bounds(); got != s.ModeSettings[ModePlan] {
		t.Errorf("expected plan-mode bounds, got %+v", got)
	}
}

func TestBounds_FallbackForUnknownMode(t *testing.T) {
	s := DefaultSettings()
	s.Mode = "architect"
	if got := s.Bounds(); got != s.Fallback {
		t.Errorf("unknown mode must resolve to fallback, got %+v", got)
	}
}

func TestApply_IsCopyOnWrite(t *testing.T) {
	base := DefaultSettings()
	mode := "architect"
	updated := base.Apply(SettingsUpdate{
		Mode:         &mode,
		ModeSettings: map[string]Bounds{"architect": {MaxHistoryItems: 3, MaxPatterns: 2, MaxMistakes: 1}},
	})

	if base.Mode != ModeCode {
		t.Errorf("Apply mutated the original snapshot: mode=%s", base.Mode)
	}
	if _, ok := base.ModeSettings["architect"]; ok {
		t.Error("Apply mutated the original mode table")
	}
	if updated.Mode != "architect" {
		t.Errorf("update not applied: mode=%s", updated.Mode)
	}
	if got := updated.Bounds(); got.MaxHistoryItems != 3 {
		t.Errorf("merged mode entry not resolved, got %+v", got)
	}
}

func TestApply_NilFieldsPreserve(t *testing.T) {
	base := DefaultSettings()
	out := base.Apply(SettingsUpdate{})
	if out.Enabled != base.Enabled || out.Mode != base.Mode || out.Fallback != base.Fallback {
		t.Errorf("empty update must preserve everything, got %+v", out)
	}
}

func TestApply_DisableAndReenable(t *testing.T) {
	off := false
	on := true
	s := DefaultSettings().Apply(SettingsUpdate{Enabled: &off})
	if s.Enabled {
		t.Fatal("expected disabled")
	}
	s = s.Apply(SettingsUpdate{Enabled: &on})
	if !s.Enabled {
		t.Fatal("expected re-enabled")
	}
}
