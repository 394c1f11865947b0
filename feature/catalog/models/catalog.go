package models

// Table names of the catalog store.
const (
	TablePreview             = "preview"
	TablePreviewPreviewTag   = "preview_preview_tag"
	TableDownload            = "download"
	TableDownloadDownloadTag = "download_download_tag"
	TableRevision            = "revision"
	TableAsset               = "asset"
	TableAssetRevision       = "asset_revision"
	TableAssetTag            = "asset_tag"
	TableAssetCategory       = "asset_category"
	TableAssetPreview        = "asset_preview"
	TableAssetDownload       = "asset_download"
	TableReconcileRun        = "reconcile_run"
)

// NoThumbnail is stored in AssetRevision.ThumbnailID when the remote
// thumbnail does not resolve to a known preview.
const NoThumbnail int64 = -1

// Preview is a remote preview image. Created once per original id, never updated.
type Preview struct {
	ID            int64  `gorm:"column:id;primaryKey" json:"id"`
	OriginalID    string `gorm:"column:original_id;not null;index" json:"original_id"`
	URL           string `gorm:"column:url;not null" json:"url"`
	Label         string `gorm:"column:label" json:"label"`
	PreviewKindID int64  `gorm:"column:preview_kind_id;not null" json:"preview_kind_id"`
}

func (Preview) TableName() string { return TablePreview }

// Download is a remote downloadable file. Created once per original id, never updated.
type Download struct {
	ID         int64  `gorm:"column:id;primaryKey" json:"id"`
	OriginalID string `gorm:"column:original_id;not null;index" json:"original_id"`
	URL        string `gorm:"column:url;not null" json:"url"`
	Label      string `gorm:"column:label" json:"label"`
}

func (Download) TableName() string { return TableDownload }

// Revision is one file revision of a Download.
type Revision struct {
	ID              int64  `gorm:"column:id;primaryKey" json:"id"`
	DownloadID      int64  `gorm:"column:download_id;not null;index" json:"download_id"`
	Filename        string `gorm:"column:filename;not null" json:"filename"`
	Size            int64  `gorm:"column:size;not null" json:"size"`
	Revision        int    `gorm:"column:revision;not null" json:"revision"`
	SourceCreatedAt string `gorm:"column:created_at" json:"created_at"`
	// HaveFile is maintained by the file transfer tooling, never by reconciliation.
	HaveFile bool `gorm:"column:have_file" json:"have_file"`
}

func (Revision) TableName() string { return TableRevision }

// Asset is the stable anchor of an asset across metadata revisions.
type Asset struct {
	ID         int64  `gorm:"column:id;primaryKey" json:"id"`
	OriginalID string `gorm:"column:original_id;not null;index" json:"original_id"`
}

func (Asset) TableName() string { return TableAsset }

// ExtraData holds the ten recognized remote extra-data values.
type ExtraData struct {
	Author              string `gorm:"column:extra_data_author" json:"author"`
	PhysicalSize        string `gorm:"column:extra_data_physical_size" json:"physical_size"`
	Ref                 string `gorm:"column:extra_data_ref" json:"ref"`
	Type                string `gorm:"column:extra_data_type" json:"type"`
	Style               string `gorm:"column:extra_data_style" json:"style"`
	Quality             string `gorm:"column:extra_data_quality" json:"quality"`
	Meshes              string `gorm:"column:extra_data_meshes" json:"meshes"`
	CountersQuads       string `gorm:"column:extra_data_counters_quads" json:"counters_quads"`
	SubstanceResolution string `gorm:"column:extra_data_substance_resolution" json:"substance_resolution"`
	PreviewDisp         string `gorm:"column:extra_data_preview_disp" json:"preview_disp"`
}

// AssetRevision is one versioned snapshot of an asset's descriptive metadata.
// The current revision of an asset is the one with the highest Ordinal.
type AssetRevision struct {
	ID              int64     `gorm:"column:id;primaryKey" json:"id"`
	AssetID         int64     `gorm:"column:asset_id;not null;index" json:"asset_id"`
	Name            string    `gorm:"column:name;not null" json:"name"`
	TypeID          int64     `gorm:"column:type_id;not null" json:"type_id"`
	IsNew           bool      `gorm:"column:is_new" json:"is_new"`
	IsUpdate        bool      `gorm:"column:is_update" json:"is_update"`
	SourceCreatedAt string    `gorm:"column:created_at" json:"created_at"`
	ThumbnailID     int64     `gorm:"column:thumbnail_id;not null" json:"thumbnail_id"`
	ExtraData       ExtraData `gorm:"embedded" json:"extra_data"`
	Ordinal         int       `gorm:"column:asset_revision;not null" json:"asset_revision"`
}

func (AssetRevision) TableName() string { return TableAssetRevision }

// AssetCategory records category membership. At most one row per asset is active.
type AssetCategory struct {
	ID         int64 `gorm:"column:id;primaryKey" json:"id"`
	AssetID    int64 `gorm:"column:asset_id;not null;index" json:"asset_id"`
	CategoryID int64 `gorm:"column:category_id;not null" json:"category_id"`
	IsActive   bool  `gorm:"column:is_active;not null" json:"is_active"`
}

func (AssetCategory) TableName() string { return TableAssetCategory }

// AssetTag joins assets and tags.
type AssetTag struct {
	ID      int64 `gorm:"column:id;primaryKey" json:"id"`
	AssetID int64 `gorm:"column:asset_id;not null;index" json:"asset_id"`
	TagID   int64 `gorm:"column:tag_id;not null" json:"tag_id"`
}

func (AssetTag) TableName() string { return TableAssetTag }

// AssetPreview joins assets and previews.
type AssetPreview struct {
	ID        int64 `gorm:"column:id;primaryKey" json:"id"`
	AssetID   int64 `gorm:"column:asset_id;not null;index" json:"asset_id"`
	PreviewID int64 `gorm:"column:preview_id;not null" json:"preview_id"`
}

func (AssetPreview) TableName() string { return TableAssetPreview }

// AssetDownload joins assets and downloads.
type AssetDownload struct {
	ID         int64 `gorm:"column:id;primaryKey" json:"id"`
	AssetID    int64 `gorm:"column:asset_id;not null;index" json:"asset_id"`
	DownloadID int64 `gorm:"column:download_id;not null" json:"download_id"`
}

func (AssetDownload) TableName() string { return TableAssetDownload }

// PreviewPreviewTag joins previews and preview tags.
type PreviewPreviewTag struct {
	ID           int64 `gorm:"column:id;primaryKey" json:"id"`
	PreviewID    int64 `gorm:"column:preview_id;not null;index" json:"preview_id"`
	PreviewTagID int64 `gorm:"column:preview_tag_id;not null" json:"preview_tag_id"`
}

func (PreviewPreviewTag) TableName() string { return TablePreviewPreviewTag }

// DownloadDownloadTag joins downloads and download tags.
type DownloadDownloadTag struct {
	ID            int64 `gorm:"column:id;primaryKey" json:"id"`
	DownloadID    int64 `gorm:"column:download_id;not null;index" json:"download_id"`
	DownloadTagID int64 `gorm:"column:download_tag_id;not null" json:"download_tag_id"`
}

func (DownloadDownloadTag) TableName() string { return TableDownloadDownloadTag }
