// Package conll models the enriched CoNLL-X dependency format written by the
// conversions.
//
// Column 6 (FEATS) carries the disfluency annotation as five '|'-separated
// subfields:
//
//	speaker|tag|edit|dpsRM,RR|mrgRM,RR
//
// where tag is one of F, D, C, E or '-', edit is 1 for words under an EDITED
// node, and the last two subfields record the reparandum (RM) and repair (RR)
// spans taken from the .dps files and from the \[ \+ \] markers in the .mrg
// files. Sentence-level operations keep dependency heads consistent while
// tokens are removed or merged.
package conll
