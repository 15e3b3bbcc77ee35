// Package fragment implements the on-disk format of changelog fragments.
//
// A fragment is a small text file describing one pending change:
//
//	- Author: Jane Doe
//	- Kind: Added
//	---
//	Support for X
//
// This package implements:
//   - Encoding and strict decoding of single fragments
//   - Rendering a change as a changelog bullet entry
//   - Discovery of fragment files in a directory
//   - Writing new fragments under generated file names
package fragment
