package reconcile

import (
	"context"
	"fmt"

	"asset-catalog/feature/catalog/models"
	"asset-catalog/feature/catalog/snapshot"

	"go.uber.org/zap"
)

// resolveAttachments stores the record's previews and downloads and returns
// their local ids. Attachments of unknown type are logged and skipped.
func (r *Reconciler) resolveAttachments(ctx context.Context, p *pass, rec *snapshot.Record) ([]int64, []int64, error) {
	var previewIDs, downloadIDs []int64

	for i := range rec.Attachments {
		a := &rec.Attachments[i]
		switch a.Typename {
		case snapshot.PreviewAttachment:
			id, err := r.resolvePreview(ctx, p, a)
			if err != nil {
				return nil, nil, err
			}
			previewIDs = append(previewIDs, id)
		case snapshot.DownloadAttachment:
			id, err := r.resolveDownload(ctx, p, rec, a)
			if err != nil {
				return nil, nil, err
			}
			downloadIDs = append(downloadIDs, id)
		default:
			r.logger.Warn("Skipping attachment",
				zap.String("original_id", rec.ID),
				zap.String("attachment_id", a.ID),
				zap.String("typename", a.Typename),
				zap.Error(fmt.Errorf("%w: %q", ErrUnknownAttachment, a.Typename)),
			)
		}
	}
	return previewIDs, downloadIDs, nil
}

func (r *Reconciler) resolvePreview(ctx context.Context, p *pass, a *snapshot.Attachment) (int64, error) {
	preview, ok := p.cache.Preview(a.ID)
	if !ok {
		kindID, err := p.cache.ResolveOrCreate(ctx, models.KindPreviewKind, a.Kind)
		if err != nil {
			return 0, err
		}
		preview = models.Preview{
			OriginalID:    a.ID,
			URL:           a.URL,
			Label:         a.Label,
			PreviewKindID: kindID,
		}
		if err := r.catalog.CreatePreview(ctx, &preview); err != nil {
			return 0, err
		}
		p.cache.AddPreview(preview)
	}

	for _, tag := range a.Tags {
		tagID, err := p.cache.ResolveOrCreate(ctx, models.KindPreviewTag, tag)
		if err != nil {
			return 0, err
		}
		if _, err := r.catalog.EnsurePreviewTag(ctx, preview.ID, tagID); err != nil {
			return 0, err
		}
	}
	return preview.ID, nil
}

func (r *Reconciler) resolveDownload(ctx context.Context, p *pass, rec *snapshot.Record, a *snapshot.Attachment) (int64, error) {
	download, err := r.catalog.DownloadByOriginalID(ctx, a.ID)
	if err != nil {
		return 0, err
	}
	if download == nil {
		download = &models.Download{OriginalID: a.ID, URL: a.URL, Label: a.Label}
		if err := r.catalog.CreateDownload(ctx, download); err != nil {
			return 0, err
		}
	}

	for _, tag := range a.Tags {
		tagID, err := p.cache.ResolveOrCreate(ctx, models.KindDownloadTag, tag)
		if err != nil {
			return 0, err
		}
		if _, err := r.catalog.EnsureDownloadTag(ctx, download.ID, tagID); err != nil {
			return 0, err
		}
	}

	for _, rr := range a.Revisions {
		existing, err := r.catalog.RevisionsAt(ctx, download.ID, rr.Revision)
		if err != nil {
			return 0, err
		}
		if hasFile(existing, rr.Filename, rr.Size) {
			continue
		}

		revision := models.Revision{
			DownloadID:      download.ID,
			Filename:        rr.Filename,
			Size:            rr.Size,
			Revision:        rr.Revision,
			SourceCreatedAt: rr.CreatedAt,
		}
		if err := r.catalog.CreateRevision(ctx, &revision); err != nil {
			return 0, err
		}
		// a different file under an ordinal that was already stored
		if len(existing) > 0 {
			p.report.AddNewFileVersion(rec.Title, rec.PrimaryCategory(), rr.Filename, rr.Revision)
		}
	}
	return download.ID, nil
}

func hasFile(revisions []models.Revision, filename string, size int64) bool {
	for _, r := range revisions {
		if r.Filename == filename && r.Size == size {
			return true
		}
	}
	return false
}
