// Package catalog wires the asset catalog together.
//
// Service runs reconciliation passes (snapshot loading, dry runs, report
// writing and run history) and serves read queries. Handler exposes the read
// side over HTTP:
//
//	GET /catalog/assets/:originalId  current revision, category, tags, attachments
//	GET /catalog/runs?limit=N        recent reconciliation runs
//	GET /catalog/reports             reports uploaded to object storage
package catalog
