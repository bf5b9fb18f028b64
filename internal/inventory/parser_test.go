package inventory

import (
	"errors"
	"reflect"
	"testing"
)

// testStructure returns the inner payload shared by both schema variants.
func testStructure() map[string]any {
	return map[string]any{
		"controls": map[string]any{
			"uuid-light": map[string]any{
				"name": "Ceiling Light",
				"type": "Dimmer",
				"room": "room-living",
				"cat":  "cat-lights",
			},
			"uuid-blind": map[string]any{
				"name": "South Blind",
				"type": "Jalousie",
				"room": "room-living",
			},
			"uuid-temp": map[string]any{
				"name": "Boiler Temp",
				"type": "InfoOnlyAnalog",
				"room": "room-ghost", // dangling reference
			},
			"uuid-anon": map[string]any{
				"type": "Switch",
			},
		},
		"rooms": map[string]any{
			"room-living": map[string]any{"name": "Living Room"},
			"room-hall":   map[string]any{"name": "Hallway"},
		},
		"cats": map[string]any{
			"cat-lights": map[string]any{"name": "Lighting"},
		},
	}
}

func TestParse_FlatDocument(t *testing.T) {
	catalog, err := Parse(testStructure())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(catalog.Controls) != 4 {
		t.Fatalf("len(Controls) = %d, want 4", len(catalog.Controls))
	}
	if len(catalog.Rooms) != 2 {
		t.Errorf("len(Rooms) = %d, want 2", len(catalog.Rooms))
	}
	if len(catalog.Categories) != 1 {
		t.Errorf("len(Categories) = %d, want 1", len(catalog.Categories))
	}

	light, ok := catalog.Control("uuid-light")
	if !ok {
		t.Fatal("Control(uuid-light) not found")
	}
	if light.TypeTag != "Dimmer" {
		t.Errorf("TypeTag = %q, want %q", light.TypeTag, "Dimmer")
	}
	if light.RoomID != "room-living" {
		t.Errorf("RoomID = %q, want %q", light.RoomID, "room-living")
	}
	if catalog.RoomName(light.RoomID) != "Living Room" {
		t.Errorf("RoomName = %q, want %q", catalog.RoomName(light.RoomID), "Living Room")
	}
	if catalog.CategoryName(light.CategoryID) != "Lighting" {
		t.Errorf("CategoryName = %q, want %q", catalog.CategoryName(light.CategoryID), "Lighting")
	}
}

func TestParse_EnvelopeInvariance(t *testing.T) {
	flat, err := Parse(testStructure())
	if err != nil {
		t.Fatalf("Parse(flat) error = %v", err)
	}

	wrapped, err := Parse(map[string]any{"LL": testStructure()})
	if err != nil {
		t.Fatalf("Parse(wrapped) error = %v", err)
	}

	if !reflect.DeepEqual(flat.Controls, wrapped.Controls) {
		t.Error("controls differ between envelope and flat variants")
	}
	if !reflect.DeepEqual(flat.Rooms, wrapped.Rooms) {
		t.Error("rooms differ between envelope and flat variants")
	}
}

func TestParse_EnvelopeKeyWithoutPayload(t *testing.T) {
	// A top-level "LL" entry that does not contain the inventory collections
	// must not be mistaken for the legacy envelope.
	doc := testStructure()
	doc["LL"] = map[string]any{
		"value": "1.0",
		"Code":  "200",
	}

	catalog, err := Parse(doc)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(catalog.Controls) != 4 {
		t.Errorf("len(Controls) = %d, want 4", len(catalog.Controls))
	}
}

func TestParse_MissingCollections(t *testing.T) {
	tests := []struct {
		name string
		doc  map[string]any
	}{
		{
			name: "missing controls",
			doc:  map[string]any{"rooms": map[string]any{}},
		},
		{
			name: "missing rooms",
			doc:  map[string]any{"controls": map[string]any{}},
		},
		{
			name: "empty document",
			doc:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.doc)
			if !errors.Is(err, ErrMalformedInventory) {
				t.Errorf("Parse() error = %v, want ErrMalformedInventory", err)
			}
		})
	}
}

func TestParse_DanglingRoomReference(t *testing.T) {
	catalog, err := Parse(testStructure())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	// The control referencing a non-existent room is retained, unassigned.
	temp, ok := catalog.Control("uuid-temp")
	if !ok {
		t.Fatal("control with dangling room reference was dropped")
	}
	if temp.RoomID != "" {
		t.Errorf("RoomID = %q, want unassigned (empty)", temp.RoomID)
	}

	// Every resolved room ID must exist in the Rooms map.
	for _, ctl := range catalog.Controls {
		if ctl.RoomID == "" {
			continue
		}
		if _, ok := catalog.Rooms[ctl.RoomID]; !ok {
			t.Errorf("control %s references unknown room %q", ctl.ID, ctl.RoomID)
		}
	}
}

func TestParse_UnknownTypeTagPassesThrough(t *testing.T) {
	doc := map[string]any{
		"controls": map[string]any{
			"uuid-x": map[string]any{
				"name": "Future Gadget",
				"type": "QuantumFluxCapacitor",
			},
		},
		"rooms": map[string]any{},
	}

	catalog, err := Parse(doc)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	ctl, _ := catalog.Control("uuid-x")
	if ctl.TypeTag != "QuantumFluxCapacitor" {
		t.Errorf("TypeTag = %q, want verbatim pass-through", ctl.TypeTag)
	}
}

func TestParse_DeterministicOrdering(t *testing.T) {
	first, err := Parse(testStructure())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	second, err := Parse(testStructure())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if !reflect.DeepEqual(first.Controls, second.Controls) {
		t.Error("identical documents produced different control orderings")
	}

	// Order is by name: Boiler Temp, Ceiling Light, South Blind, then the
	// unnamed control (falls back to its uuid).
	wantFirst := "Boiler Temp"
	if first.Controls[0].Name != wantFirst {
		t.Errorf("Controls[0].Name = %q, want %q", first.Controls[0].Name, wantFirst)
	}
}

func TestParse_Indices(t *testing.T) {
	catalog, err := Parse(testStructure())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	// Index sizes must sum to the control count.
	byType := 0
	for _, group := range catalog.ByTypeTag {
		byType += len(group)
	}
	byRoom := 0
	for _, group := range catalog.ByRoomID {
		byRoom += len(group)
	}
	if byType != len(catalog.Controls) {
		t.Errorf("sum of ByTypeTag groups = %d, want %d", byType, len(catalog.Controls))
	}
	if byRoom != len(catalog.Controls) {
		t.Errorf("sum of ByRoomID groups = %d, want %d", byRoom, len(catalog.Controls))
	}

	// The unassigned bucket holds the dangling-reference control and the
	// control with no room at all.
	if got := len(catalog.ByRoomID[""]); got != 2 {
		t.Errorf("unassigned bucket size = %d, want 2", got)
	}
}

func TestParseJSON_InvalidJSON(t *testing.T) {
	_, err := ParseJSON([]byte("{not json"))
	if !errors.Is(err, ErrInvalidJSON) {
		t.Errorf("ParseJSON() error = %v, want ErrInvalidJSON", err)
	}
}

func TestParseJSON_RoundTrip(t *testing.T) {
	data := []byte(`{
		"LL": {
			"controls": {
				"u1": {"name": "Lamp", "type": "Switch", "room": "r1"}
			},
			"rooms": {
				"r1": {"name": "Study"}
			}
		}
	}`)

	catalog, err := ParseJSON(data)
	if err != nil {
		t.Fatalf("ParseJSON() error = %v", err)
	}
	if len(catalog.Controls) != 1 {
		t.Fatalf("len(Controls) = %d, want 1", len(catalog.Controls))
	}
	if catalog.Controls[0].Name != "Lamp" {
		t.Errorf("Name = %q, want %q", catalog.Controls[0].Name, "Lamp")
	}
}
