// Package ir provides the plugin protocol types shared by every other package.
//
// This package contains the element input record, the output node model and
// the error taxonomy. All other internal packages import ir; ir imports
// nothing internal.
//
// Key design constraints:
//   - Output is encoded canonically: no HTML escaping, NFC-normalised strings,
//     sorted object keys
//   - All JSON tags use the host's names ("name", "data", "arguments", "children")
package ir
