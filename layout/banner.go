package layout

import "strings"

// BannerConfig holds configuration for repeating-banner detection.
type BannerConfig struct {
	// LeadingLines is how many lines from the top of each page are
	// considered banner candidates.
	LeadingLines int

	// MinOccurrenceRatio is the minimum fraction of pages a text must
	// recur on to be considered a banner (0.0 to 1.0).
	MinOccurrenceRatio float64

	// MinPages is the minimum number of pages required before banner
	// detection runs at all.
	MinPages int
}

// DefaultBannerConfig returns sensible default configuration.
func DefaultBannerConfig() BannerConfig {
	return BannerConfig{
		LeadingLines:       3,
		MinOccurrenceRatio: 0.5,
		MinPages:           2,
	}
}

// BannerDetector finds document letterhead lines that repeat near the top
// of pages. Banner lines are excluded from table data but serve as a
// continuation signal for the multi-page merger.
type BannerDetector struct {
	config BannerConfig
}

// NewBannerDetector creates a detector with default configuration.
func NewBannerDetector() *BannerDetector {
	return &BannerDetector{config: DefaultBannerConfig()}
}

// NewBannerDetectorWithConfig creates a detector with custom configuration.
func NewBannerDetectorWithConfig(config BannerConfig) *BannerDetector {
	return &BannerDetector{config: config}
}

// BannerResult holds the texts identified as repeating page banners.
type BannerResult struct {
	texts map[string]bool

	// Config used for detection
	Config BannerConfig
}

// IsBanner reports whether a line's text matches a detected banner.
func (r *BannerResult) IsBanner(text string) bool {
	if r == nil || len(r.texts) == 0 {
		return false
	}
	return r.texts[normalizeBannerText(text)]
}

// Detect analyzes the leading lines of every page and returns the texts
// that recur on enough pages to be considered banners.
func (d *BannerDetector) Detect(pages [][]Line) *BannerResult {
	result := &BannerResult{Config: d.config}
	if len(pages) < d.config.MinPages {
		return result
	}

	counts := make(map[string]int)
	for _, lines := range pages {
		seen := make(map[string]bool)
		for i, line := range lines {
			if i >= d.config.LeadingLines {
				break
			}
			key := normalizeBannerText(line.Text())
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			counts[key]++
		}
	}

	minPages := int(float64(len(pages)) * d.config.MinOccurrenceRatio)
	if minPages < d.config.MinPages {
		minPages = d.config.MinPages
	}

	result.texts = make(map[string]bool)
	for key, n := range counts {
		if n >= minPages {
			result.texts[key] = true
		}
	}

	return result
}

// normalizeBannerText collapses whitespace and case so that banners with
// minor extraction jitter still match across pages.
func normalizeBannerText(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
