// Package nxt reads the NXT (NITE XML Toolkit) standoff annotation of the
// Switchboard corpus: the terminals layer with word timings, the syntax layer
// with parse trees over terminals, and the optional turns layer.
//
// Elements are linked by href attributes of the form
// "sw2005.A.terminals.xml#id(s1_1)" or, for spans,
// "sw2005.A.terminals.xml#id(s1_1)..id(s1_9)". LoadConversation resolves
// these links and returns ptb trees whose words carry terminal ids and
// timings.
package nxt
