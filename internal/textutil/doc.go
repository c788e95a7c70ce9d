// Package textutil provides the small text helpers shared by the corpus
// converters: Unicode-aware lower-casing of corpus tokens, a few predicates
// over Switchboard word forms, and a generic conditional helper.
package textutil
