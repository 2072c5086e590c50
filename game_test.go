package main

import (
	"testing"

	"github.com/milk9111/vhscam/ecs"
	"github.com/milk9111/vhscam/ecs/system"
)

func TestCollectReportsKeepsNewest(t *testing.T) {
	g := &Game{world: ecs.NewWorld()}

	g.collectReports()
	if g.hasReport {
		t.Fatalf("no report before any trigger")
	}

	g.world.Emit(system.ActionInteract.String(), system.Report{Action: system.ActionInteract, Frame: 3})
	g.world.Emit(system.ActionShoot.String(), system.Report{Action: system.ActionShoot, Frame: 3})
	g.collectReports()
	if !g.hasReport || g.report.Action != system.ActionShoot {
		t.Fatalf("expected the shoot report, got %v", g.report)
	}

	g.world.Update()
	g.collectReports()
	if !g.hasReport || g.report.Action != system.ActionShoot {
		t.Fatalf("a quiet frame should keep the last report, got %v", g.report)
	}
}
