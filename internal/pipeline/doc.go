// Package pipeline holds the plumbing shared by every conversion command:
// error markers and wrapping, run/section/file context annotation, and the
// Run type that ties a conversion to its output lock, run manifest, and logger.
//
// Conversion packages report failures with Wrap so the command layer can
// decide whether a file was skipped (alignment or validation problems) or the
// run failed (external tool, configuration, or I/O errors).
package pipeline
