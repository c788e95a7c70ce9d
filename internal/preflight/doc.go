// Package preflight provides readiness checks for the converter and the
// filesystem paths a conversion run depends on.
//
// These checks run in two contexts:
//   - Converting commands call RunAll before the first file so a missing jar
//     or unwritable work directory fails fast instead of once per file.
//   - The CLI "swbd check" command renders every result as a table.
package preflight
