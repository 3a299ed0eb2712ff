// Package pagecap implements hybrid page capture: a human drives a real
// browser while a companion watch loop observes navigation and captures
// each settled page as clean markdown on disk.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, goquery/, sqlite/).
package pagecap
