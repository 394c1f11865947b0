package report

import "fmt"

// Summary holds per-bucket event counts.
type Summary struct {
	NewAssets        int `json:"new_asset"`
	UpdatedAssets    int `json:"updated_asset"`
	EditedAssets     int `json:"edited_asset"`
	ChangedCategory  int `json:"changed_category"`
	NewFileVersions  int `json:"new_file_version"`
	NewPreviewImages int `json:"new_preview_image"`
}

// Lines returns the console form of the summary.
func (s Summary) Lines() []string {
	return []string{
		fmt.Sprintf("New elements - %d", s.NewAssets),
		fmt.Sprintf("Updated elements - %d", s.UpdatedAssets),
		fmt.Sprintf("Edited elements - %d", s.EditedAssets),
		fmt.Sprintf("Changed category - %d", s.ChangedCategory),
		fmt.Sprintf("File new versions - %d", s.NewFileVersions),
		fmt.Sprintf("New preview images - %d", s.NewPreviewImages),
	}
}

// Map returns the counts keyed by bucket name.
func (s Summary) Map() map[string]any {
	return map[string]any{
		string(NewAsset):        s.NewAssets,
		string(UpdatedAsset):    s.UpdatedAssets,
		string(EditedAsset):     s.EditedAssets,
		string(ChangedCategory): s.ChangedCategory,
		string(NewFileVersion):  s.NewFileVersions,
		string(NewPreviewImage): s.NewPreviewImages,
	}
}
