// Package converter runs the Stanford EnglishGrammaticalStructure converter
// to turn Penn Treebank trees into basic CoNLL-X dependencies.
//
// Key types:
//   - Converter: anything that turns bracketed trees into CoNLL text
//   - Stanford: the external Java implementation
//   - Func: adapts a plain function, used by tests and dry runs
//
// The trees and the converter output are kept under the work directory as
// <name>.mrg and <name>.dep so failed runs can be inspected.
package converter
