// Package changelog merges changelog fragments into a markdown changelog.
//
// This package implements:
//   - Heading detection and section lookup over the document's lines
//   - Merging new changes into the "Unreleased" section, keeping existing
//     category bodies and every unrelated line untouched
//   - Category-ordered rendering of changes following Keep a Changelog
//   - Atomic reading and writing of the changelog document
//   - Colored terminal previews of pending changes
//
// Only heading levels and line ranges are interpreted; the rest of the
// document is treated as opaque text.
package changelog
