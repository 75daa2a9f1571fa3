package server

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/crystal-mush/mudbits/pkg/gamedb"
)

func TestRelayMessagesCounted(t *testing.T) {
	env := newTestEnv(t)
	g := env.game
	g.Metrics = NewMetrics()
	ch := g.EnsureChannel("Public", gamedb.Nothing)
	ch.Join(env.wizard)

	// A bridged inbound message counts even without an outbound relay.
	g.RelayToChannel("Public", "hello over there", "DC-bridge")
	if got := testutil.ToFloat64(g.Metrics.relayMessages); got != 1 {
		t.Errorf("relay messages after inbound = %v, want 1", got)
	}

	// Local channel talk with no relay configured is not bridged.
	g.SendToChannel(ch, env.wizard, "Wizard", "hello")
	if got := testutil.ToFloat64(g.Metrics.relayMessages); got != 1 {
		t.Errorf("relay messages without relay = %v, want 1", got)
	}
}
