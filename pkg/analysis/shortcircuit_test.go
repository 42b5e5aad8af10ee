package analysis

import (
	"testing"

	"github.com/gridwright/oneline/pkg/model"
)

func faultByNode(results []FaultResult) map[string]FaultResult {
	m := make(map[string]FaultResult, len(results))
	for _, r := range results {
		m[r.NodeID] = r
	}
	return m
}

// TestShortCircuitImpedanceMethod verifies impedance accumulation: the
// service seed arrives unchanged at the cable-less main panel and is
// attenuated through the feeder cable.
func TestShortCircuitImpedanceMethod(t *testing.T) {
	results := RunShortCircuit(feederGraph(), testEngine())
	byNode := faultByNode(results)

	if len(byNode) != 3 {
		t.Fatalf("want 3 results, got %d", len(byNode))
	}
	for id, r := range byNode {
		if r.Method != MethodImpedance {
			t.Errorf("method[%s] = %s, want %s", id, r.Method, MethodImpedance)
		}
		if r.ZThorOhm == nil || *r.ZThorOhm <= 0 {
			t.Errorf("node %s should carry a positive Thevenin impedance", id)
		}
	}

	if got := byNode["MDP"].AvailableFaultKA; !approx(got, 30, 0.01) {
		t.Errorf("fault at MDP = %g kA, want 30", got)
	}
	sub := byNode["NEW-SP"].AvailableFaultKA
	if sub >= byNode["MDP"].AvailableFaultKA {
		t.Errorf("fault downstream of cable should attenuate: %g kA", sub)
	}
	if sub <= 0 {
		t.Errorf("fault at NEW-SP = %g kA, want positive", sub)
	}
}

// TestShortCircuitStubBroadcast verifies the fallback when no node carries
// a fault seed: the declared service figure is broadcast flat.
func TestShortCircuitStubBroadcast(t *testing.T) {
	g := feederGraph()
	g.Nodes[0].AvailableFaultKA = nil
	g.ShortCircuit = &model.ShortCircuitContext{ServiceAvailableFaultKA: fptr(22)}

	results := RunShortCircuit(g, testEngine())
	if len(results) != 3 {
		t.Fatalf("want 3 results, got %d", len(results))
	}
	for _, r := range results {
		if r.Method != MethodStub {
			t.Errorf("method = %s, want %s", r.Method, MethodStub)
		}
		if !approx(r.AvailableFaultKA, 22, 1e-9) {
			t.Errorf("fault = %g kA, want 22", r.AvailableFaultKA)
		}
		if r.ZThorOhm != nil {
			t.Error("stub rows carry no impedance")
		}
	}
}

// TestShortCircuitNoInput verifies the pass yields nothing when neither
// seeds nor a service figure exist.
func TestShortCircuitNoInput(t *testing.T) {
	g := feederGraph()
	g.Nodes[0].AvailableFaultKA = nil

	if results := RunShortCircuit(g, testEngine()); len(results) != 0 {
		t.Fatalf("want no results, got %d", len(results))
	}
}

// TestShortCircuitUnreachableNode verifies a bus with no path from any
// seed gets no impedance-method row.
func TestShortCircuitUnreachableNode(t *testing.T) {
	g := feederGraph()
	g.Nodes = append(g.Nodes, model.Node{
		ID: "ISLAND", Type: model.NodePanel, VoltageLLV: fptr(208), Phases: "ABC",
	})

	byNode := faultByNode(RunShortCircuit(g, testEngine()))
	if _, ok := byNode["ISLAND"]; ok {
		t.Error("unreachable bus should get no result")
	}
	if len(byNode) != 3 {
		t.Errorf("want 3 reachable results, got %d", len(byNode))
	}
}
