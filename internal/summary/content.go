package summary

import (
	"reflect"
	"strings"

	"github.com/troovstudio/troov-backend/internal/domain/project"
)

// HasContent is the deep emptiness check shared by every section: blank
// strings, empty collections, nil and booleans are empty; any number counts;
// maps and structs count when any value does.
func HasContent(v any) bool {
	return hasValue(reflect.ValueOf(v))
}

func hasValue(rv reflect.Value) bool {
	if !rv.IsValid() {
		return false
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return false
		}
		return hasValue(rv.Elem())
	case reflect.String:
		return strings.TrimSpace(rv.String()) != ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	case reflect.Slice, reflect.Array:
		return rv.Len() > 0
	case reflect.Map:
		iter := rv.MapRange()
		for iter.Next() {
			if hasValue(iter.Value()) {
				return true
			}
		}
		return false
	case reflect.Struct:
		t := rv.Type()
		for i := 0; i < rv.NumField(); i++ {
			if !t.Field(i).IsExported() {
				continue
			}
			if hasValue(rv.Field(i)) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// HasOverviewContent never counts the priority level, so an overview whose
// only change is its priority is neither default nor filled in.
func HasOverviewContent(o OverviewData) bool {
	if IsDefaultOverview(o) {
		return false
	}
	for _, v := range o.textFields() {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return len(o.WebsiteFeatures) > 0
}

func HasMoodBoardContent(m MoodBoardData) bool {
	return len(m.InspirationImages) > 0 ||
		len(m.WebsiteReferences) > 0 ||
		strings.TrimSpace(m.Notes) != ""
}

func HasStyleGuideContent(sg StyleGuideData) bool {
	if IsDefaultStyleGuide(sg) {
		return false
	}
	for _, c := range sg.Colors {
		if strings.TrimSpace(c) != "" {
			return true
		}
	}
	if len(sg.CustomColors) > 0 {
		return true
	}
	if typographyModified(sg.Typography) {
		return true
	}
	return len(sg.ButtonStyles) > 0
}

// typographyModified reports typography that departs from the seed, either
// in font, color or description, or by no longer matching the seeded rows.
func typographyModified(rows []TypographyEntry) bool {
	if len(rows) == 0 {
		return false
	}
	canonical := Seeds().DefaultTypography()[0]
	for _, t := range rows {
		if t.FontFamily != canonical.FontFamily || t.Color != canonical.Color {
			return true
		}
		if t.Description != "" && t.Description != t.Label {
			return true
		}
	}
	return !isCanonicalTypography(rows)
}

func HasSitemapContent(pages []SitemapPage) bool {
	return len(pages) > 0 && !IsDefaultSitemap(pages)
}

func HasTechnicalContent(t TechnicalData) bool { return HasContent(t) }

func HasContentSectionContent(c ContentData) bool { return HasContent(c) }

func HasAssetsContent(a AssetsData) bool { return len(a.UploadedAssets) > 0 }

// Evaluate returns the content-derived completion of every section except
// tasks.
func Evaluate(d Data) map[project.Section]bool {
	return map[project.Section]bool{
		project.SectionOverview:   HasOverviewContent(d.Overview),
		project.SectionMood:       HasMoodBoardContent(d.MoodBoard),
		project.SectionStyleGuide: HasStyleGuideContent(d.StyleGuide),
		project.SectionWireframe:  HasSitemapContent(d.Sitemap.Pages),
		project.SectionTechnical:  HasTechnicalContent(d.Technical),
		project.SectionContent:    HasContentSectionContent(d.Content),
		project.SectionAssets:     HasAssetsContent(d.Assets),
	}
}
