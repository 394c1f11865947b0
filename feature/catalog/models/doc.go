// Package models contains the GORM models of the asset catalog.
//
// Every table uses a surrogate integer primary key named id. Reference tables
// (tags, categories, types, preview kinds, preview tags, download tags) share
// the ReferenceItem shape and are addressed through ReferenceKind.
//
// Join tables are append-only. AssetRevision rows are versioned by Ordinal;
// AssetCategory rows are kept as history with a single active row per asset.
package models
