package inventory

// Control represents one device or sensor entry in the miniserver structure.
//
// The TypeTag is carried verbatim from the structure document. Unknown tags
// are retained as-is so new firmware device types never break parsing.
type Control struct {
	// Identity
	ID   string `json:"uuid"`
	Name string `json:"name"`

	// Classification
	TypeTag string `json:"type"`

	// Location references. Empty string means unassigned: either the
	// structure declared no room, or the reference was dangling.
	RoomID     string `json:"room,omitempty"`
	CategoryID string `json:"cat,omitempty"`

	// RawAttributes preserves the full control entry from the structure
	// document (states, details, ...). It is never interpreted here.
	RawAttributes map[string]any `json:"-"`
}

// Room is a named physical location grouping zero or more controls.
type Room struct {
	ID   string `json:"uuid"`
	Name string `json:"name"`
}

// Category is an optional functional grouping declared by the miniserver.
type Category struct {
	ID   string `json:"uuid"`
	Name string `json:"name"`
}

// Catalog is the fully parsed inventory for one structure fetch.
//
// It is built once by Parse and read-only thereafter: the derived indices
// reference the same Control values as the Controls slice, and no component
// mutates entries after construction. A re-fetch builds a fresh Catalog.
type Catalog struct {
	// Controls in catalog order: sorted by name, then by ID for ties.
	// The structure document is a JSON object, so this sort is what makes
	// listings deterministic across fetches of identical payloads.
	Controls []Control

	// Rooms and Categories keyed by their identifier.
	Rooms      map[string]Room
	Categories map[string]Category

	// Derived indices, built once at parse time. Keys are the raw TypeTag
	// and RoomID values; the unassigned bucket uses the empty string key.
	ByTypeTag map[string][]Control
	ByRoomID  map[string][]Control

	byID map[string]int // position in Controls
}

// Control returns the control with the given ID, or false if absent.
func (c *Catalog) Control(id string) (Control, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return Control{}, false
	}
	return c.Controls[idx], true
}

// RoomName resolves a room ID to its name.
// Returns the empty string for unassigned or dangling references.
func (c *Catalog) RoomName(roomID string) string {
	if roomID == "" {
		return ""
	}
	room, ok := c.Rooms[roomID]
	if !ok {
		return ""
	}
	return room.Name
}

// CategoryName resolves a category ID to its name.
// Returns the empty string when the category is absent.
func (c *Catalog) CategoryName(catID string) string {
	if catID == "" {
		return ""
	}
	cat, ok := c.Categories[catID]
	if !ok {
		return ""
	}
	return cat.Name
}
