package format

import (
	"testing"

	"github.com/tvoe/grabber/internal/domain"
)

func videoFormat(id string, height int, size int64) domain.RawFormat {
	return domain.RawFormat{
		ID:         id,
		Height:     height,
		Width:      height * 16 / 9,
		VideoCodec: "avc1.640028",
		AudioCodec: "mp4a.40.2",
		Filesize:   size,
		Ext:        "mp4",
		URL:        "https://example.com/" + id,
	}
}

func TestNormalize_SyntheticEntryFirst(t *testing.T) {
	raw := []domain.RawFormat{
		videoFormat("134", 360, 1000),
		videoFormat("137", 1080, 5000),
	}

	got := Normalize(raw)
	if len(got) != 3 {
		t.Fatalf("Normalize() returned %d entries, want 3", len(got))
	}
	if got[0].Label != HighestLabel {
		t.Errorf("entry[0].Label = %q, want %q", got[0].Label, HighestLabel)
	}
	if got[0].FormatID != BestFormatID {
		t.Errorf("entry[0].FormatID = %q, want %q", got[0].FormatID, BestFormatID)
	}

	// Besides label and formatId the synthetic entry mirrors entry[1].
	synthetic := got[0]
	synthetic.Label = got[1].Label
	synthetic.FormatID = got[1].FormatID
	if synthetic != got[1] {
		t.Errorf("synthetic entry %+v does not mirror entry[1] %+v", got[0], got[1])
	}
}

func TestNormalize_SortedByHeightDescending(t *testing.T) {
	raw := []domain.RawFormat{
		videoFormat("134", 360, 1000),
		videoFormat("137", 1080, 5000),
		videoFormat("136", 720, 3000),
		videoFormat("135", 480, 2000),
	}

	got := Normalize(raw)
	for i := 2; i < len(got); i++ {
		if got[i-1].Height < got[i].Height {
			t.Fatalf("entries not sorted by height descending: %d before %d",
				got[i-1].Height, got[i].Height)
		}
	}

	seen := make(map[string]bool)
	for _, opt := range got[1:] {
		if seen[opt.Label] {
			t.Errorf("duplicate label %q in normalized output", opt.Label)
		}
		seen[opt.Label] = true
	}
}

func TestNormalize_FirstWinsOnDuplicateLabel(t *testing.T) {
	first := videoFormat("18", 1080, 100)
	second := videoFormat("137", 1080, 500)

	got := Normalize([]domain.RawFormat{first, second})
	if len(got) != 2 {
		t.Fatalf("Normalize() returned %d entries, want 2", len(got))
	}
	if got[1].FormatID != "18" || got[1].SizeBytes != 100 {
		t.Errorf("got formatId=%q size=%d, want the first 1080p entry (18, 100)",
			got[1].FormatID, got[1].SizeBytes)
	}
}

func TestNormalize_ExcludesAudioOnly(t *testing.T) {
	audio := domain.RawFormat{
		ID:         "140",
		VideoCodec: "none",
		AudioCodec: "mp4a.40.2",
		Filesize:   2000,
		Ext:        "m4a",
		URL:        "https://example.com/140",
	}

	got := Normalize([]domain.RawFormat{audio, videoFormat("136", 720, 3000)})
	for _, opt := range got {
		if opt.FormatID == "140" {
			t.Fatal("audio-only format leaked into normalized output")
		}
	}
}

func TestNormalize_ExcludesUnusableFormats(t *testing.T) {
	noURL := videoFormat("1", 720, 3000)
	noURL.URL = ""

	noSize := videoFormat("2", 480, 0)
	noSize.FilesizeApprox = 0

	if got := Normalize([]domain.RawFormat{noURL, noSize}); len(got) != 0 {
		t.Fatalf("Normalize() = %+v, want empty output", got)
	}
}

func TestNormalize_ApproxSizeFallback(t *testing.T) {
	f := videoFormat("136", 720, 0)
	f.FilesizeApprox = 4096

	got := Normalize([]domain.RawFormat{f})
	if len(got) != 2 {
		t.Fatalf("Normalize() returned %d entries, want 2", len(got))
	}
	if got[1].SizeBytes != 4096 {
		t.Errorf("SizeBytes = %d, want approximate size 4096", got[1].SizeBytes)
	}
	if got[1].SizeLabel != "4.0 KB" {
		t.Errorf("SizeLabel = %q, want %q", got[1].SizeLabel, "4.0 KB")
	}
}

func TestNormalize_EmptyInput(t *testing.T) {
	if got := Normalize(nil); len(got) != 0 {
		t.Fatalf("Normalize(nil) = %+v, want empty output", got)
	}
}

func TestQualityLabel_Boundaries(t *testing.T) {
	tests := []struct {
		height int
		want   string
	}{
		{8640, "8K"},
		{4320, "4K"},
		{2160, "4K"},
		{2159, "2K"},
		{1440, "2K"},
		{1080, "1080p"},
		{1079, "720p"},
		{720, "720p"},
		{480, "480p"},
		{360, "360p"},
		{240, "240p"},
		{144, "144p"},
		{100, "100p"},
		{0, "0p"},
	}
	for _, tt := range tests {
		if got := QualityLabel(tt.height, 0, 0); got != tt.want {
			t.Errorf("QualityLabel(%d) = %q, want %q", tt.height, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{45, "0:45"},
		{125, "2:05"},
		{3725, "1:02:05"},
		{3600, "1:00:00"},
		{0, "Unknown"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.seconds); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "Unknown"},
		{512, "512.0 B"},
		{1536, "1.5 KB"},
		{15925248, "15.2 MB"},
		{1610612736, "1.5 GB"},
		{2199023255552, "2.0 TB"},
	}
	for _, tt := range tests {
		if got := FormatSize(tt.bytes); got != tt.want {
			t.Errorf("FormatSize(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}
