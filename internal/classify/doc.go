// Package classify groups a parsed inventory Catalog by control type and room.
//
// Classification is a pure function of the Catalog: it performs no I/O and
// never mutates catalog entries. The resulting Analysis carries grouped views
// (by readable type label, by room name) plus summary counts, and serialises
// to JSON for the saved analysis report.
//
// Controls whose room reference could not be resolved are grouped under the
// UnassignedRoom bucket so that every control appears in exactly one room
// group and the counts always sum correctly.
package classify
