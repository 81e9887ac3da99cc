package summary

import "encoding/json"

// Typography rows were stored in two shapes over time. Each shape decodes
// into partial fields; a row carrying keys of both prefers the newer shape
// field by field.
type typographyShape interface {
	fields() typographyFields
}

type typographyFields struct {
	label       *string
	fontFamily  *string
	color       *string
	previewText *string
	description *string
}

// typographyV1 is the original editor shape.
type typographyV1 struct {
	Level       *string
	FontFamily  *string
	TextColor   *string
	PreviewText *string
}

func (v typographyV1) fields() typographyFields {
	return typographyFields{
		label:       v.Level,
		fontFamily:  v.FontFamily,
		color:       v.TextColor,
		previewText: v.PreviewText,
	}
}

// typographyV2 is the current editor shape.
type typographyV2 struct {
	Label       *string
	FontFamily  *string
	Color       *string
	PreviewText *string
	Description *string
}

func (v typographyV2) fields() typographyFields {
	return typographyFields{
		label:       v.Label,
		fontFamily:  v.FontFamily,
		color:       v.Color,
		previewText: v.PreviewText,
		description: v.Description,
	}
}

func shapesOf(obj object) []typographyShape {
	v2 := typographyV2{
		Label:       obj.strPtr("label"),
		FontFamily:  obj.strPtr("fontFamily"),
		Color:       obj.strPtr("color"),
		PreviewText: obj.strPtr("previewText"),
		Description: obj.strPtr("description"),
	}
	v1 := typographyV1{
		Level:       obj.strPtr("level"),
		FontFamily:  obj.strPtr("font_family"),
		TextColor:   obj.strPtr("textColor"),
		PreviewText: obj.strPtr("preview_text"),
	}
	return []typographyShape{v2, v1}
}

func normalizeTypographyRow(obj object) TypographyEntry {
	var merged typographyFields
	for _, shape := range shapesOf(obj) {
		f := shape.fields()
		merged.label = firstSet(merged.label, f.label)
		merged.fontFamily = firstSet(merged.fontFamily, f.fontFamily)
		merged.color = firstSet(merged.color, f.color)
		merged.previewText = firstSet(merged.previewText, f.previewText)
		merged.description = firstSet(merged.description, f.description)
	}
	return TypographyEntry{
		Label:       coalesce(merged.label),
		FontFamily:  coalesce(merged.fontFamily),
		Color:       coalesce(merged.color),
		PreviewText: coalesce(merged.previewText),
		Description: coalesce(merged.description),
		FontSize:    obj.str("fontSize"),
		FontWeight:  obj.str("fontWeight"),
		LineHeight:  obj.str("lineHeight"),
	}
}

func firstSet(current, next *string) *string {
	if current != nil {
		return current
	}
	return next
}

// normalizeTypography keeps one entry per stored element; non-object
// elements become empty entries.
func normalizeTypography(raw json.RawMessage) []TypographyEntry {
	elems, ok := decodeArray(raw)
	out := make([]TypographyEntry, 0, len(elems))
	if !ok {
		return out
	}
	for _, elem := range elems {
		out = append(out, normalizeTypographyRow(decodeObject(elem)))
	}
	return out
}
