package summary

import "strings"

// IsDefaultOverview reports whether the overview still holds only its seed:
// every text field blank, no website features and the seeded priority.
func IsDefaultOverview(o OverviewData) bool {
	if len(o.WebsiteFeatures) > 0 {
		return false
	}
	if strings.TrimSpace(o.PriorityLevel) != Seeds().DefaultPriority() {
		return false
	}
	for _, v := range o.textFields() {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// IsDefaultStyleGuide reports whether the style guide is untouched: no
// colors, no custom colors, typography empty or exactly the seeded rows and
// button styles empty or exactly the seeded pair.
func IsDefaultStyleGuide(sg StyleGuideData) bool {
	for _, c := range sg.Colors {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	if len(sg.CustomColors) > 0 {
		return false
	}
	if len(sg.Typography) > 0 && !isCanonicalTypography(sg.Typography) {
		return false
	}
	if len(sg.ButtonStyles) > 0 && !isDefaultButtonStyles(sg.ButtonStyles) {
		return false
	}
	return true
}

// isCanonicalTypography compares index by index against the seeded rows.
func isCanonicalTypography(rows []TypographyEntry) bool {
	canonical := Seeds().DefaultTypography()
	if len(rows) != len(canonical) {
		return false
	}
	for i, want := range canonical {
		got := rows[i]
		if strings.TrimSpace(got.Label) != want.Label ||
			strings.TrimSpace(got.FontFamily) != want.FontFamily ||
			strings.TrimSpace(got.Color) != want.Color ||
			strings.TrimSpace(got.PreviewText) != want.PreviewText {
			return false
		}
	}
	return true
}

// isDefaultButtonStyles accepts the seeded secondary button with either its
// border color or its border width.
func isDefaultButtonStyles(styles map[string]ButtonStyle) bool {
	if len(styles) == 0 {
		return true
	}
	primary, okP := styles["primary"]
	secondary, okS := styles["secondary"]
	if len(styles) != 2 || !okP || !okS {
		return false
	}
	seed := Seeds().Buttons
	if !styleString(primary, "fontFamily", seed.Primary.FontFamily) ||
		!styleString(primary, "backgroundColor", seed.Primary.BackgroundColor) ||
		!styleString(primary, "textColor", seed.Primary.TextColor) {
		return false
	}
	if !styleString(secondary, "fontFamily", seed.Secondary.FontFamily) ||
		!styleString(secondary, "backgroundColor", seed.Secondary.BackgroundColor) {
		return false
	}
	if styleString(secondary, "borderColor", seed.Secondary.BorderColor) {
		return true
	}
	width, ok := numberValue(secondary["borderWidth"])
	return ok && width == float64(seed.Secondary.BorderWidth)
}

func styleString(style ButtonStyle, key, want string) bool {
	s, ok := style[key].(string)
	return ok && s == want
}

// IsDefaultSitemap reports whether pages is empty or only the seeded home
// page without blocks or children.
func IsDefaultSitemap(pages []SitemapPage) bool {
	if len(pages) == 0 {
		return true
	}
	if len(pages) != 1 {
		return false
	}
	home := Seeds().Sitemap.Home
	p := pages[0]
	return p.Name == home.Name &&
		p.Path == home.Path &&
		len(p.Blocks) == 0 &&
		len(p.Children) == 0
}
