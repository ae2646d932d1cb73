// Package readweb extracts the readable main content of web pages using
// site-specific presets: ordered lists of CSS selectors applied to a
// normalized copy of the page markup.
//
// Raw markup is first normalized (noise elements, comments, volatile
// machine-generated identifiers and oversized values are removed). A preset
// is then validated against the normalized document and, when it passes,
// applied to produce the main-content markup that downstream collaborators
// convert to markdown.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, gemini/).
package readweb
