// Package pagesense fetches a web page, extracts a short plain-text preview
// and hands that preview to an external sentiment/NLP service, returning the
// service's payload to the caller.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, resty/, gemini/).
package pagesense
