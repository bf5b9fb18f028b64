package classify

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/nerrad567/loxwatch/internal/inventory"
)

func testCatalog(t *testing.T) *inventory.Catalog {
	t.Helper()

	catalog, err := inventory.Parse(map[string]any{
		"controls": map[string]any{
			"u-dim": map[string]any{
				"name": "Ceiling Light",
				"type": "Dimmer",
				"room": "r-living",
			},
			"u-dim2": map[string]any{
				"name": "Wall Light",
				"type": "Dimmer",
				"room": "r-kitchen",
			},
			"u-blind": map[string]any{
				"name": "South Blind",
				"type": "Jalousie",
				"room": "r-living",
			},
			"u-orphan": map[string]any{
				"name": "Garage Relay",
				"type": "FutureRelayType",
			},
		},
		"rooms": map[string]any{
			"r-living":  map[string]any{"name": "Living Room"},
			"r-kitchen": map[string]any{"name": "Kitchen"},
		},
	})
	if err != nil {
		t.Fatalf("building test catalog: %v", err)
	}
	return catalog
}

func TestAnalyze_Counts(t *testing.T) {
	a := Analyze(testCatalog(t))

	if a.TotalControls != 4 {
		t.Errorf("TotalControls = %d, want 4", a.TotalControls)
	}
	if a.TotalRooms != 2 {
		t.Errorf("TotalRooms = %d, want 2", a.TotalRooms)
	}
	if a.TotalTypes != 3 {
		t.Errorf("TotalTypes = %d, want 3 (Dimmer, Blind/Shutter, FutureRelayType)", a.TotalTypes)
	}

	// Each control lands in exactly one type group and one room group.
	byType := 0
	for _, group := range a.ByType {
		byType += len(group)
	}
	byRoom := 0
	for _, group := range a.ByRoom {
		byRoom += len(group)
	}
	if byType != a.TotalControls {
		t.Errorf("sum of ByType groups = %d, want %d", byType, a.TotalControls)
	}
	if byRoom != a.TotalControls {
		t.Errorf("sum of ByRoom groups = %d, want %d", byRoom, a.TotalControls)
	}
}

func TestAnalyze_Grouping(t *testing.T) {
	a := Analyze(testCatalog(t))

	dimmers := a.ByType["Dimmer"]
	if len(dimmers) != 2 {
		t.Fatalf("ByType[Dimmer] = %d entries, want 2", len(dimmers))
	}
	// Catalog order within the group: Ceiling Light before Wall Light.
	if dimmers[0].Name != "Ceiling Light" || dimmers[1].Name != "Wall Light" {
		t.Errorf("Dimmer group order = [%s, %s], want catalog order", dimmers[0].Name, dimmers[1].Name)
	}

	living := a.ByRoom["Living Room"]
	if len(living) != 2 {
		t.Errorf("ByRoom[Living Room] = %d entries, want 2", len(living))
	}

	unassigned := a.ByRoom[UnassignedRoom]
	if len(unassigned) != 1 {
		t.Fatalf("ByRoom[%s] = %d entries, want 1", UnassignedRoom, len(unassigned))
	}
	if unassigned[0].Name != "Garage Relay" {
		t.Errorf("unassigned entry = %q, want Garage Relay", unassigned[0].Name)
	}
}

func TestAnalyze_UnknownTypeLabelsAsItself(t *testing.T) {
	a := Analyze(testCatalog(t))

	group, ok := a.ByType["FutureRelayType"]
	if !ok {
		t.Fatal("unknown type tag did not form its own group")
	}
	if group[0].TypeLabel != "FutureRelayType" {
		t.Errorf("TypeLabel = %q, want verbatim tag", group[0].TypeLabel)
	}
}

func TestTypeLabel(t *testing.T) {
	tests := []struct {
		tag  string
		want string
	}{
		{"Dimmer", "Dimmer"},
		{"Jalousie", "Blind/Shutter"},
		{"InfoOnlyAnalog", "Analogue State"},
		{"IRoomControllerV2", "Room Climate Controller V2"},
		{"SomethingNew", "SomethingNew"},
	}

	for _, tt := range tests {
		if got := TypeLabel(tt.tag); got != tt.want {
			t.Errorf("TypeLabel(%q) = %q, want %q", tt.tag, got, tt.want)
		}
	}
}

func TestAnalysis_WriteJSON(t *testing.T) {
	a := Analyze(testCatalog(t))

	var buf bytes.Buffer
	if err := a.WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["total_controls"].(float64) != 4 {
		t.Errorf("total_controls = %v, want 4", decoded["total_controls"])
	}
}
