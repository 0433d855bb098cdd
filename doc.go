// Package anvil decodes Minecraft Anvil region files (.mca) into an
// immutable in-memory block-id grid.
//
// A region file stores up to 32x32 chunk columns. ReadRegion loads one file,
// decodes every present chunk in parallel, resolves block names through a
// caller-supplied dictionary, and returns a Region exposing block lookup by
// region-local coordinates. Cells with no data (absent chunks, absent
// sections, names missing from the dictionary) hold MissingBlockID.
package anvil
