// Package inventory parses the miniserver structure document into a Catalog.
//
// The structure document is a nested JSON mapping whose shape varies by
// firmware generation. Older firmware wraps the payload in a legacy "LL"
// envelope; newer firmware emits the collections at the top level. This
// package detects and unwraps the envelope in one normalization step so the
// rest of the system only ever sees one canonical shape.
//
// # Forward compatibility
//
// Control type tags are read verbatim and never validated against an
// enumeration. A firmware update introducing a new control type must not
// break parsing; the tag simply flows through to classification untouched.
//
// # Usage
//
//	catalog, err := inventory.ParseJSON(data)
//	if err != nil {
//	    // errors.Is(err, inventory.ErrMalformedInventory) when the document
//	    // is missing the controls or rooms collection
//	}
//	fmt.Println(len(catalog.Controls))
//
// The Catalog is immutable after construction and safe for concurrent reads.
package inventory
