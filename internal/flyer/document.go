package flyer

import "github.com/sora-estate/maisoku/internal/listing"

// MaxFeatures is the deterministic cap on the feature grid: the first
// MaxFeatures features in original order are shown, the rest dropped.
const MaxFeatures = 8

// Placeholder fills any slot whose field came back empty, so the layout
// never silently collapses a cell.
const Placeholder = "—"

// Header is the top slot: property name and headline price.
type Header struct {
	Name     string
	Subtitle string
	Price    string
}

// TextBlock is a captioned free-text slot.
type TextBlock struct {
	Label string
	Value string
}

// SpecCell is one label/value pair inside the specification table.
type SpecCell struct {
	Label string
	Value string
}

// SpecRow is one row of the specification table. Full-width rows carry a
// single cell spanning the row; paired rows carry two short cells.
type SpecRow struct {
	Cells     []SpecCell
	FullWidth bool
}

// FeatureList is the bounded feature grid.
type FeatureList struct {
	Label     string
	Items     []string
	Truncated bool
}

// Document is the composed single-page layout: pure slot placement, no
// pixels. Composing the same record twice yields a structurally identical
// document.
type Document struct {
	Language    listing.Language
	Header      Header
	ImageRef    string
	Description TextBlock
	Facilities  TextBlock
	SpecRows    []SpecRow
	Features    FeatureList
	Issuer      Issuer
	Labels      LabelSet
}

func orPlaceholder(v string) string {
	if v == "" {
		return Placeholder
	}
	return v
}

// Compose maps a listing record into the fixed slot layout for the given
// language. imageRef is the source image reference shown as-is in the image
// slot (typically a data URL); it is never cropped or re-encoded here.
//
// Grouping policy for the specification table: typically long values
// (location, access, restrictions) get a full-width row; short values are
// paired two per row.
func Compose(rec *listing.Record, imageRef string, lang listing.Language) *Document {
	labels := Labels(lang)

	rows := []SpecRow{
		{FullWidth: true, Cells: []SpecCell{{labels.Location, orPlaceholder(rec.Location)}}},
		{FullWidth: true, Cells: []SpecCell{{labels.Access, orPlaceholder(rec.Access)}}},
		{Cells: []SpecCell{
			{labels.Layout, orPlaceholder(rec.Layout)},
			{labels.Size, orPlaceholder(rec.Size)},
		}},
		{Cells: []SpecCell{
			{labels.BuiltYear, orPlaceholder(rec.BuiltYear)},
			{labels.Floor, orPlaceholder(rec.Floor)},
		}},
		{Cells: []SpecCell{
			{labels.ManagementFee, orPlaceholder(rec.ManagementFee)},
			{labels.RepairFund, orPlaceholder(rec.RepairFund)},
		}},
		{Cells: []SpecCell{
			{labels.CoverageRatio, orPlaceholder(rec.CoverageRatio)},
			{labels.FloorAreaRatio, orPlaceholder(rec.FloorAreaRatio)},
		}},
		{FullWidth: true, Cells: []SpecCell{{labels.Restrictions, orPlaceholder(rec.Restrictions)}}},
	}

	features := rec.Features
	truncated := false
	if len(features) > MaxFeatures {
		features = features[:MaxFeatures]
		truncated = true
	}
	// Copy so the document does not alias the record's slice.
	items := make([]string, len(features))
	copy(items, features)

	return &Document{
		Language: lang,
		Header: Header{
			Name:     orPlaceholder(rec.PropertyName),
			Subtitle: labels.Subtitle,
			Price:    orPlaceholder(rec.Price),
		},
		ImageRef:    imageRef,
		Description: TextBlock{Label: labels.Description, Value: orPlaceholder(rec.Description)},
		Facilities:  TextBlock{Label: labels.Facilities, Value: orPlaceholder(rec.Facilities)},
		SpecRows:    rows,
		Features: FeatureList{
			Label:     labels.Features,
			Items:     items,
			Truncated: truncated,
		},
		Issuer: IssuerInfo(lang),
		Labels: labels,
	}
}
