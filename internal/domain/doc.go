// Package domain contains the entities that flow through one card request:
// the inbound request, the model's word analysis, synthesized audio clips and
// the enriched card built from them. Nothing here performs I/O.
package domain
