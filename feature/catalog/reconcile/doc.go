// Package reconcile applies a snapshot of remote asset records to the catalog.
//
// Each record is processed in order:
//
//  1. Preview and download attachments are stored, with their tags and file revisions.
//  2. The asset is created, or its current revision is compared with the record.
//     Major changes (title, type, creation date, thumbnail, internal reference)
//     insert a new revision with the next ordinal. Minor changes update the
//     current revision in place.
//  3. Tags are linked.
//  4. The first listed category becomes the single active category.
//  5. Previews and downloads are linked to the asset.
//
// Every create is preceded by a lookup on the natural key, so running the same
// snapshot twice changes nothing and reports nothing.
package reconcile
