package models

// ReferenceKind names one of the small name-keyed reference tables.
type ReferenceKind string

const (
	KindTag         ReferenceKind = "tag"
	KindCategory    ReferenceKind = "category"
	KindType        ReferenceKind = "type"
	KindPreviewKind ReferenceKind = "preview_kind"
	KindPreviewTag  ReferenceKind = "preview_tag"
	KindDownloadTag ReferenceKind = "download_tag"
)

// ReferenceKinds lists every reference table in creation order.
var ReferenceKinds = []ReferenceKind{
	KindTag,
	KindCategory,
	KindType,
	KindPreviewKind,
	KindPreviewTag,
	KindDownloadTag,
}

// Table returns the table backing this reference kind.
func (k ReferenceKind) Table() string {
	return string(k)
}

// ReferenceItem is a row of any reference table. Names are unique per table,
// which the lookup cache enforces before inserting.
type ReferenceItem struct {
	ID   int64  `gorm:"column:id;primaryKey" json:"id"`
	Name string `gorm:"column:name;not null" json:"name"`
}
