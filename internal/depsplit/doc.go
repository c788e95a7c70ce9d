// Package depsplit distributes pre-converted .mrg.dep files over the legacy
// train, dev, and test split, marking each token with whether the matching
// treebank word lies under an EDITED node.
package depsplit
