package inventory

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Structure document keys.
const (
	// envelopeKey is the legacy top-level wrapper some firmware versions
	// place around the structure payload. Gen 1 miniservers emit
	// {"LL": {"controls": ..., "rooms": ...}}; Gen 2 emits the flat form.
	envelopeKey = "LL"

	controlsKey   = "controls"
	roomsKey      = "rooms"
	categoriesKey = "cats"
)

// ParseJSON decodes a raw structure document and parses it into a Catalog.
//
// Parameters:
//   - data: Raw JSON bytes as returned by the structure endpoint
//
// Returns:
//   - *Catalog: Parsed, read-only inventory snapshot
//   - error: ErrInvalidJSON or ErrMalformedInventory (wrapped with context)
func ParseJSON(data []byte) (*Catalog, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return Parse(doc)
}

// Parse builds a Catalog from a decoded structure document.
//
// Both wire-schema variants are accepted transparently: the legacy form with
// the envelope wrapper and the modern flat form. Callers never need to know
// which variant the miniserver emitted.
//
// The raw document is not retained; the returned Catalog is self-contained.
//
// Returns:
//   - *Catalog: Parsed, read-only inventory snapshot
//   - error: ErrMalformedInventory if controls or rooms are missing
func Parse(doc map[string]any) (*Catalog, error) {
	payload := unwrapEnvelope(doc)

	controlsRaw, ok := payload[controlsKey].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: missing %q collection", ErrMalformedInventory, controlsKey)
	}
	roomsRaw, ok := payload[roomsKey].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: missing %q collection", ErrMalformedInventory, roomsKey)
	}

	catalog := &Catalog{
		Rooms:      parseRooms(roomsRaw),
		Categories: parseCategories(payload),
		ByTypeTag:  make(map[string][]Control),
		ByRoomID:   make(map[string][]Control),
		byID:       make(map[string]int, len(controlsRaw)),
	}

	catalog.Controls = parseControls(controlsRaw, catalog.Rooms)

	for i, ctl := range catalog.Controls {
		catalog.byID[ctl.ID] = i
		catalog.ByTypeTag[ctl.TypeTag] = append(catalog.ByTypeTag[ctl.TypeTag], ctl)
		catalog.ByRoomID[ctl.RoomID] = append(catalog.ByRoomID[ctl.RoomID], ctl)
	}

	return catalog, nil
}

// unwrapEnvelope resolves the schema variant once, so downstream code sees a
// single canonical shape.
//
// The envelope is unwrapped only when the wrapper contains the expected inner
// collections. A structure that happens to contain an "LL" control entry at
// the top level is therefore not mistaken for the legacy form.
func unwrapEnvelope(doc map[string]any) map[string]any {
	inner, ok := doc[envelopeKey].(map[string]any)
	if !ok {
		return doc
	}
	if _, hasControls := inner[controlsKey].(map[string]any); !hasControls {
		return doc
	}
	if _, hasRooms := inner[roomsKey].(map[string]any); !hasRooms {
		return doc
	}
	return inner
}

// parseControls extracts and orders the control entries.
//
// Controls referencing a room that does not exist are retained with the
// unassigned (empty) room ID rather than dropped: a commissioning mistake on
// one control must not hide it from monitoring.
func parseControls(raw map[string]any, rooms map[string]Room) []Control {
	controls := make([]Control, 0, len(raw))

	for id, v := range raw {
		attrs, ok := v.(map[string]any)
		if !ok {
			// Tolerate junk entries; an id mapped to a non-object carries
			// nothing we can monitor.
			continue
		}

		ctl := Control{
			ID:            id,
			Name:          stringAttr(attrs, "name", id),
			TypeTag:       stringAttr(attrs, "type", "unknown"),
			RawAttributes: attrs,
		}

		if roomID := stringAttr(attrs, "room", ""); roomID != "" {
			if _, exists := rooms[roomID]; exists {
				ctl.RoomID = roomID
			}
		}
		ctl.CategoryID = stringAttr(attrs, "cat", "")

		controls = append(controls, ctl)
	}

	// JSON objects carry no ordering, so impose one: by name, ID for ties.
	// Every listing, grouping, and selection index derives from this order.
	sort.Slice(controls, func(i, j int) bool {
		if controls[i].Name != controls[j].Name {
			return controls[i].Name < controls[j].Name
		}
		return controls[i].ID < controls[j].ID
	})

	return controls
}

// parseRooms extracts the room collection.
func parseRooms(raw map[string]any) map[string]Room {
	rooms := make(map[string]Room, len(raw))
	for id, v := range raw {
		attrs, ok := v.(map[string]any)
		if !ok {
			continue
		}
		rooms[id] = Room{
			ID:   id,
			Name: stringAttr(attrs, "name", id),
		}
	}
	return rooms
}

// parseCategories extracts the optional category collection.
// A missing or malformed collection yields an empty map, never an error.
func parseCategories(payload map[string]any) map[string]Category {
	raw, ok := payload[categoriesKey].(map[string]any)
	if !ok {
		return map[string]Category{}
	}

	cats := make(map[string]Category, len(raw))
	for id, v := range raw {
		attrs, ok := v.(map[string]any)
		if !ok {
			continue
		}
		cats[id] = Category{
			ID:   id,
			Name: stringAttr(attrs, "name", id),
		}
	}
	return cats
}

// stringAttr reads a string attribute from a decoded JSON object,
// falling back when the key is absent or not a string.
func stringAttr(attrs map[string]any, key, fallback string) string {
	if s, ok := attrs[key].(string); ok && s != "" {
		return s
	}
	return fallback
}
