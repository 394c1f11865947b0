package snapshot

// Attachment type names used by the remote catalog.
const (
	PreviewAttachment  = "PreviewAttachment"
	DownloadAttachment = "DownloadAttachment"
)

// Record is one asset as returned by the remote catalog.
type Record struct {
	ID                       string           `json:"id"`
	Title                    string           `json:"title"`
	Typename                 string           `json:"__typename"`
	Tags                     []string         `json:"tags"`
	Categories               []string         `json:"categories"`
	New                      bool             `json:"new"`
	DownloadsRecentlyUpdated bool             `json:"downloadsRecentlyUpdated"`
	CreatedAt                string           `json:"createdAt"`
	ExtraData                []ExtraDataEntry `json:"extraData"`
	Thumbnail                Thumbnail        `json:"thumbnail"`
	Attachments              []Attachment     `json:"attachments"`
}

// PrimaryCategory returns the first category of the record, or an empty string.
func (r Record) PrimaryCategory() string {
	if len(r.Categories) == 0 {
		return ""
	}
	return r.Categories[0]
}

// ExtraDataEntry is one free-form key/value pair of remote metadata.
type ExtraDataEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Thumbnail references the preview used as the asset's thumbnail.
type Thumbnail struct {
	ID   string   `json:"id"`
	URL  string   `json:"url"`
	Tags []string `json:"tags"`
}

// Attachment is either a preview or a download, told apart by Typename.
// Kind is only set on previews, Revisions only on downloads.
type Attachment struct {
	Typename  string           `json:"__typename"`
	ID        string           `json:"id"`
	Tags      []string         `json:"tags"`
	Label     string           `json:"label"`
	Kind      string           `json:"kind,omitempty"`
	URL       string           `json:"url"`
	Revisions []RemoteRevision `json:"revisions,omitempty"`
}

// RemoteRevision is one file revision of a download attachment.
type RemoteRevision struct {
	Filename  string `json:"filename"`
	Size      int64  `json:"size"`
	Revision  int    `json:"revision"`
	CreatedAt string `json:"createdAt"`
}
