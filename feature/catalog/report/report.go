package report

import (
	"fmt"
	"strings"
)

// Bucket names one section of the change report.
type Bucket string

const (
	NewAsset        Bucket = "new_asset"
	UpdatedAsset    Bucket = "updated_asset"
	EditedAsset     Bucket = "edited_asset"
	ChangedCategory Bucket = "changed_category"
	NewPreviewImage Bucket = "new_preview_image"
	NewFileVersion  Bucket = "new_file_version"
)

// Buckets lists every bucket in rendering order.
var Buckets = []Bucket{NewAsset, EditedAsset, UpdatedAsset, ChangedCategory, NewPreviewImage, NewFileVersion}

// Event is one reported change. Only the fields relevant to its bucket are set.
type Event struct {
	Asset       string `json:"asset"`
	Category    string `json:"category,omitempty"`
	Details     string `json:"details,omitempty"`
	OldCategory string `json:"old_category,omitempty"`
	NewCategory string `json:"new_category,omitempty"`
	Filename    string `json:"filename,omitempty"`
	Revision    int    `json:"revision,omitempty"`
}

// Report accumulates events per bucket in encounter order.
type Report struct {
	events map[Bucket][]Event
}

// New creates an empty report.
func New() *Report {
	return &Report{events: make(map[Bucket][]Event, len(Buckets))}
}

func (r *Report) add(b Bucket, e Event) {
	r.events[b] = append(r.events[b], e)
}

// AddNewAsset records a newly created asset.
func (r *Report) AddNewAsset(asset, category string) {
	r.add(NewAsset, Event{Asset: asset, Category: category})
}

// AddUpdatedAsset records a major change that produced a new revision.
func (r *Report) AddUpdatedAsset(asset, category, details string) {
	r.add(UpdatedAsset, Event{Asset: asset, Category: category, Details: details})
}

// AddEditedAsset records a minor change applied in place.
func (r *Report) AddEditedAsset(asset, category, details string) {
	r.add(EditedAsset, Event{Asset: asset, Category: category, Details: details})
}

// AddChangedCategory records a change of the asset's active category.
func (r *Report) AddChangedCategory(asset, oldCategory, newCategory string) {
	r.add(ChangedCategory, Event{Asset: asset, OldCategory: oldCategory, NewCategory: newCategory})
}

// AddNewPreviewImage records a thumbnail change.
func (r *Report) AddNewPreviewImage(asset, category string) {
	r.add(NewPreviewImage, Event{Asset: asset, Category: category})
}

// AddNewFileVersion records a new file stored under an already known revision ordinal.
func (r *Report) AddNewFileVersion(asset, category, filename string, revision int) {
	r.add(NewFileVersion, Event{Asset: asset, Category: category, Filename: filename, Revision: revision})
}

// Events returns the events of one bucket.
func (r *Report) Events(b Bucket) []Event {
	return r.events[b]
}

// Empty reports whether no bucket holds an event.
func (r *Report) Empty() bool {
	for _, b := range Buckets {
		if len(r.events[b]) > 0 {
			return false
		}
	}
	return true
}

// Summary returns the event count of every bucket.
func (r *Report) Summary() Summary {
	return Summary{
		NewAssets:        len(r.events[NewAsset]),
		UpdatedAssets:    len(r.events[UpdatedAsset]),
		EditedAssets:     len(r.events[EditedAsset]),
		ChangedCategory:  len(r.events[ChangedCategory]),
		NewFileVersions:  len(r.events[NewFileVersion]),
		NewPreviewImages: len(r.events[NewPreviewImage]),
	}
}

// Render formats the report as text. Empty buckets are omitted.
func (r *Report) Render() string {
	var sb strings.Builder
	for _, b := range Buckets {
		events := r.events[b]
		if len(events) == 0 {
			continue
		}

		sb.WriteString(header(b, len(events)))
		sb.WriteString("\n\n")
		for _, e := range events {
			sb.WriteString(line(b, e))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func header(b Bucket, n int) string {
	switch b {
	case NewAsset:
		return fmt.Sprintf("New assets: %d", n)
	case EditedAsset:
		return fmt.Sprintf("Edited assets (small change): %d", n)
	case UpdatedAsset:
		return fmt.Sprintf("Updated assets (new revision): %d", n)
	case ChangedCategory:
		return fmt.Sprintf("Changed Category: %d", n)
	case NewPreviewImage:
		return fmt.Sprintf("New preview image: %d", n)
	case NewFileVersion:
		return fmt.Sprintf("New File Versions %d:", n)
	}
	return fmt.Sprintf("%s: %d", b, n)
}

func line(b Bucket, e Event) string {
	switch b {
	case EditedAsset, UpdatedAsset:
		return fmt.Sprintf("%s -- %s (%s)", e.Category, e.Asset, e.Details)
	case ChangedCategory:
		return fmt.Sprintf("%s -- *From* %s *To* %s", e.Asset, e.OldCategory, e.NewCategory)
	case NewFileVersion:
		return fmt.Sprintf("%s -- %s -- %s -- Revision %d", e.Category, e.Asset, e.Filename, e.Revision)
	}
	return fmt.Sprintf("%s -- %s", e.Category, e.Asset)
}
