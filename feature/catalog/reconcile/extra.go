package reconcile

import (
	"asset-catalog/feature/catalog/models"
	"asset-catalog/feature/catalog/snapshot"
)

// extraField maps a remote extra-data key onto a column of models.ExtraData.
type extraField struct {
	key   string
	label string
	major bool
	value func(*models.ExtraData) *string
}

var extraFields = []extraField{
	{key: "author", label: "Extra Author", value: func(e *models.ExtraData) *string { return &e.Author }},
	{key: "physicalSize", label: "Extra Physical size", value: func(e *models.ExtraData) *string { return &e.PhysicalSize }},
	{key: "ref", label: "Extra Internal reference", major: true, value: func(e *models.ExtraData) *string { return &e.Ref }},
	{key: "type", label: "Extra type", value: func(e *models.ExtraData) *string { return &e.Type }},
	{key: "style", label: "Extra style", value: func(e *models.ExtraData) *string { return &e.Style }},
	{key: "quality", label: "Extra quality", value: func(e *models.ExtraData) *string { return &e.Quality }},
	{key: "meshes", label: "Extra meshes", value: func(e *models.ExtraData) *string { return &e.Meshes }},
	{key: "counters.quads", label: "Extra quad count", value: func(e *models.ExtraData) *string { return &e.CountersQuads }},
	{key: "substance_resolution", label: "Extra resolution", value: func(e *models.ExtraData) *string { return &e.SubstanceResolution }},
	{key: "previewDisp", label: "Extra displacement", value: func(e *models.ExtraData) *string { return &e.PreviewDisp }},
}

var extraFieldsByKey = func() map[string]extraField {
	m := make(map[string]extraField, len(extraFields))
	for _, f := range extraFields {
		m[f.key] = f
	}
	return m
}()

// extraDataFrom maps recognized entries onto a fresh ExtraData. Unknown keys are ignored.
func extraDataFrom(entries []snapshot.ExtraDataEntry) models.ExtraData {
	var extra models.ExtraData
	for _, e := range entries {
		if f, ok := extraFieldsByKey[e.Key]; ok {
			*f.value(&extra) = e.Value
		}
	}
	return extra
}
