// Package report collects the changes found by a reconciliation pass.
//
// Events are grouped into six buckets (new, updated and edited assets,
// changed categories, new preview images, new file versions) and rendered as
// a plain text report. Writer stores the rendered text under a timestamped
// file name and can upload a copy to object storage.
package report
