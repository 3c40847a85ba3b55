package format

import (
	"fmt"
	"sort"

	"github.com/tvoe/grabber/internal/domain"
)

const (
	// BestFormatID is the reserved identifier meaning "let the engine pick
	// its own best combined streams".
	BestFormatID = "best"

	// HighestLabel is the label of the synthetic entry prepended to every
	// non-empty normalized list. It never collides with a real quality
	// class label.
	HighestLabel = "Highest Available"

	codecNone = "none"
)

// Normalize turns the engine's raw format list into a deduplicated, ranked,
// human-labeled list of quality options. Audio-only formats, formats without
// a resolvable locator and formats with no known size are dropped. The
// result is sorted by height descending with a synthetic "Highest Available"
// entry first; an empty survivor set yields an empty list.
func Normalize(raw []domain.RawFormat) []domain.QualityOption {
	options := make([]domain.QualityOption, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))

	for _, f := range raw {
		if f.URL == "" {
			continue
		}
		if f.Filesize == 0 && f.FilesizeApprox == 0 {
			continue
		}
		if f.VideoCodec == "" || f.VideoCodec == codecNone {
			continue
		}

		label := QualityLabel(f.Height, f.Width, f.FPS)
		if _, dup := seen[label]; dup {
			// First format to claim a label wins, regardless of the size
			// or codec of later duplicates.
			continue
		}
		seen[label] = struct{}{}

		size := f.Filesize
		if size == 0 {
			size = f.FilesizeApprox
		}

		options = append(options, domain.QualityOption{
			FormatID:     f.ID,
			Label:        label,
			Height:       f.Height,
			Width:        f.Width,
			FPS:          f.FPS,
			SizeBytes:    size,
			SizeLabel:    FormatSize(size),
			VideoCodec:   f.VideoCodec,
			AudioCodec:   f.AudioCodec,
			ContainerExt: f.Ext,
		})
	}

	// Ties keep their input order.
	sort.SliceStable(options, func(i, j int) bool {
		return options[i].Height > options[j].Height
	})

	if len(options) == 0 {
		return options
	}

	highest := options[0]
	highest.Label = HighestLabel
	highest.FormatID = BestFormatID
	return append([]domain.QualityOption{highest}, options...)
}

// QualityLabel maps a resolution to its human-readable quality class. Width
// and fps are accepted for future refinement but the label currently depends
// on height alone.
func QualityLabel(height, width, fps int) string {
	switch {
	case height >= 4320:
		return fmt.Sprintf("%dK", height/1000)
	case height >= 2160:
		return "4K"
	case height >= 1440:
		return "2K"
	case height >= 1080:
		return "1080p"
	case height >= 720:
		return "720p"
	case height >= 480:
		return "480p"
	case height >= 360:
		return "360p"
	case height >= 240:
		return "240p"
	case height >= 144:
		return "144p"
	default:
		return fmt.Sprintf("%dp", height)
	}
}

// FormatSize renders a byte count using the largest unit that keeps the
// scaled value under 1024, with one fractional digit. Zero means the size
// is unknown.
func FormatSize(bytes int64) string {
	if bytes == 0 {
		return "Unknown"
	}
	value := float64(bytes)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if value < 1024 {
			return fmt.Sprintf("%.1f %s", value, unit)
		}
		value /= 1024
	}
	return fmt.Sprintf("%.1f TB", value)
}

// FormatDuration renders whole seconds as "H:MM:SS", or "M:SS" under an
// hour. Zero means the duration is unknown.
func FormatDuration(seconds int) string {
	if seconds <= 0 {
		return "Unknown"
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%d:%02d", minutes, secs)
}
