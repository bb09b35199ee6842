// Package diag defines the diagnostic model shared by the loader, the
// validation pipeline, the expression classifier and the symbol mangler.
//
// A Diagnostic carries a stable machine-readable Code (rendered through
// Code.ID as a dotted string such as "schema.parse_failure"), ordered named
// Args, a Location (source, line, column) and a fallback Message. The
// canonical single-line rendering is
//
//	CODE | source:line:column | message
//
// Diagnostics implement error, so core packages return them through plain
// error values and callers recover the payload with errors.As.
//
// Localisation is not performed here. A Localizer may be passed to
// RenderWith at a display boundary; without one, the fallback message is
// used. Nothing in this package reads process locale state.
//
// The expression lexer and parser emit span-based findings through Reporter.
// FirstError captures the first one, which is what the classifier reports;
// BagReporter and DedupReporter serve tools that want every finding.
package diag
