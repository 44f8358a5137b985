// Package musicbrainz fills in missing track metadata by querying the
// MusicBrainz recording search web service.
//
// # Lookups
//
// Each eligible record is searched by title, plus artist when one is
// known. The highest scoring candidate is accepted only when its
// relevance score reaches the configured minimum, so near misses never
// overwrite existing metadata.
//
// # Eligibility
//
// By default only records whose artist or album is still a fallback
// value ("Unknown Artist", "Miscellaneous") are looked up. Enrichment
// of every record can be requested explicitly.
//
// # Etiquette
//
// The client identifies itself with an application name, version and
// contact address, and pauses between consecutive requests, following
// the MusicBrainz API terms of use.
package musicbrainz
