package classify

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/nerrad567/loxwatch/internal/inventory"
)

// Entry is one classified control, ready for display and monitoring.
type Entry struct {
	ID        string `json:"uuid"`
	Name      string `json:"name"`
	TypeTag   string `json:"type"`
	TypeLabel string `json:"type_label"`
	Room      string `json:"room"`
	Category  string `json:"category,omitempty"`
}

// Analysis is the grouped view of one inventory snapshot.
//
// It is a pure function of the Catalog: no I/O, no mutation of catalog
// entries. Group ordering follows catalog order, so identical input yields
// identical output.
type Analysis struct {
	Timestamp time.Time `json:"timestamp"`

	// Scalar counts. TotalControls always equals the sum of ByType group
	// sizes and the sum of ByRoom group sizes.
	TotalControls   int `json:"total_controls"`
	TotalRooms      int `json:"total_rooms"`
	TotalCategories int `json:"total_categories"`
	TotalTypes      int `json:"total_types"`

	// Controls in catalog order. This is the presentation order used for
	// numbered selection listings.
	Controls []Entry `json:"controls"`

	// ByType groups entries by readable type label.
	ByType map[string][]Entry `json:"controls_by_type"`

	// ByRoom groups entries by room name. Controls without a resolvable
	// room fall into the UnassignedRoom bucket, so every control appears
	// in exactly one group.
	ByRoom map[string][]Entry `json:"controls_by_room"`

	// Rooms lists all declared room names, including empty ones.
	Rooms []string `json:"rooms"`
}

// Analyze classifies every control in the catalog by type and by room.
//
// Parameters:
//   - catalog: Parsed inventory snapshot (read-only)
//
// Returns:
//   - *Analysis: Grouped views and summary counts
func Analyze(catalog *inventory.Catalog) *Analysis {
	a := &Analysis{
		Timestamp:       time.Now(),
		TotalControls:   len(catalog.Controls),
		TotalRooms:      len(catalog.Rooms),
		TotalCategories: len(catalog.Categories),
		Controls:        make([]Entry, 0, len(catalog.Controls)),
		ByType:          make(map[string][]Entry),
		ByRoom:          make(map[string][]Entry),
	}

	for _, ctl := range catalog.Controls {
		entry := Entry{
			ID:        ctl.ID,
			Name:      ctl.Name,
			TypeTag:   ctl.TypeTag,
			TypeLabel: TypeLabel(ctl.TypeTag),
			Room:      roomLabel(catalog, ctl.RoomID),
			Category:  catalog.CategoryName(ctl.CategoryID),
		}

		a.Controls = append(a.Controls, entry)
		a.ByType[entry.TypeLabel] = append(a.ByType[entry.TypeLabel], entry)
		a.ByRoom[entry.Room] = append(a.ByRoom[entry.Room], entry)
	}

	a.TotalTypes = len(a.ByType)

	for _, room := range catalog.Rooms {
		a.Rooms = append(a.Rooms, room.Name)
	}

	return a
}

// roomLabel resolves a room reference to its display name.
func roomLabel(catalog *inventory.Catalog, roomID string) string {
	if name := catalog.RoomName(roomID); name != "" {
		return name
	}
	return UnassignedRoom
}

// WriteJSON writes the analysis as indented JSON.
//
// The external presentation layer decides where the bytes go; this method
// owns only the serialised form.
func (a *Analysis) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(a); err != nil {
		return fmt.Errorf("encoding analysis: %w", err)
	}
	return nil
}
