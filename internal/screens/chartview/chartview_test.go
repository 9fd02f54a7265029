package chartview

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/scorebook/internal/charts"
	"github.com/abhisek/scorebook/internal/screen/screentest"
)

func TestLines_OneChartPerSubject(t *testing.T) {
	env, _ := screentest.NewEnv(t, "Math", "English")
	screentest.AddTest(t, env, "T1", map[string]string{"Math": "80", "English": "70"})

	s := NewLines(env)
	s.Init()

	specs := s.Specs()
	if len(specs) != 2 {
		t.Fatalf("specs = %d, want 2", len(specs))
	}
	if got := env.Charts.Live(); len(got) != 2 || got[0] != "line-English" || got[1] != "line-Math" {
		t.Errorf("live surfaces = %v", got)
	}
	out := ansi.Strip(s.View(140, 40))
	if !strings.Contains(out, "Math") || !strings.Contains(out, "English") {
		t.Errorf("view missing charts:\n%s", out)
	}
}

func TestLines_RebuildsAfterChange(t *testing.T) {
	env, _ := screentest.NewEnv(t, "Math")
	s := NewLines(env)
	s.Init()
	if len(s.Specs()[0].Datasets[0].Data) != 0 {
		t.Fatal("expected no points before any test")
	}

	screentest.AddTest(t, env, "T1", map[string]string{"Math": "55"})
	s.Resume()

	if got := s.Specs()[0].Datasets[0].Data; len(got) != 1 || got[0] != 55 {
		t.Errorf("data after resume = %v", got)
	}
	if len(env.Charts.Live()) != 1 {
		t.Errorf("rebuild must not leak surfaces: %v", env.Charts.Live())
	}
}

func TestLines_Empty(t *testing.T) {
	env, _ := screentest.NewEnv(t)
	s := NewLines(env)
	s.Init()
	if !strings.Contains(ansi.Strip(s.View(100, 30)), "No subjects yet") {
		t.Error("expected empty hint")
	}
}

func TestPies_OnePerTest(t *testing.T) {
	env, _ := screentest.NewEnv(t, "Math", "English")
	a := screentest.AddTest(t, env, "T1", map[string]string{"Math": "80", "English": "40"})
	screentest.AddTest(t, env, "T2", map[string]string{"Math": "10"})

	s := NewPies(env)
	s.Init()
	if len(s.Specs()) != 2 {
		t.Fatalf("specs = %d, want 2", len(s.Specs()))
	}
	if s.Specs()[0].Surface != charts.PieSurface(a.ID) {
		t.Errorf("surface = %s", s.Specs()[0].Surface)
	}
	out := ansi.Strip(s.View(140, 40))
	if !strings.Contains(out, "66.7%") || !strings.Contains(out, "Total: 120") {
		t.Errorf("view missing pie labels:\n%s", out)
	}
}

func TestCloseReleasesSurfaces(t *testing.T) {
	env, _ := screentest.NewEnv(t, "Math")
	s := NewLines(env)
	s.Init()
	s.Close()
	if len(env.Charts.Live()) != 0 {
		t.Errorf("close should release surfaces: %v", env.Charts.Live())
	}
}

func TestConflictingScreensReportError(t *testing.T) {
	env, _ := screentest.NewEnv(t, "Math")
	first := NewLines(env)
	first.Init()
	defer first.Close()

	second := NewLines(env)
	second.Init()
	if second.Err() == nil {
		t.Fatal("expected surface conflict")
	}
	if !strings.Contains(ansi.Strip(second.View(100, 30)), "already open") {
		t.Error("expected conflict notice")
	}
}

func TestOverview(t *testing.T) {
	env, _ := screentest.NewEnv(t, "Math", "English")
	screentest.AddTest(t, env, "T1", map[string]string{"Math": "80", "English": "70"})
	s := NewOverview(env)
	s.Init()
	specs := s.Specs()
	if len(specs) != 2 || specs[0].Surface != charts.SurfaceCombined || specs[1].Surface != charts.SurfaceTotals {
		t.Fatalf("unexpected overview specs: %+v", specs)
	}
}

func TestRedrawKeepsSurfaceCount(t *testing.T) {
	env, _ := screentest.NewEnv(t, "Math")
	s := NewLines(env)
	s.Init()
	s.Update(screentest.KeyPress('r'))
	if s.Err() != nil || len(env.Charts.Live()) != 1 {
		t.Errorf("redraw err=%v live=%v", s.Err(), env.Charts.Live())
	}
}
