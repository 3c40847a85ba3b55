package domain

// RawFormat is one media-stream descriptor as emitted by the extraction
// engine. No field is guaranteed to be present; absent values carry their
// zero value.
type RawFormat struct {
	ID             string
	Height         int
	Width          int
	FPS            int
	VideoCodec     string
	AudioCodec     string
	Filesize       int64
	FilesizeApprox int64
	Ext            string
	URL            string
}

// QualityOption is a normalized, client-facing representation of one
// selectable quality tier.
type QualityOption struct {
	FormatID     string `json:"formatId"`
	Label        string `json:"label"`
	Height       int    `json:"height"`
	Width        int    `json:"width"`
	FPS          int    `json:"fps"`
	SizeBytes    int64  `json:"sizeBytes"`
	SizeLabel    string `json:"sizeLabel"`
	VideoCodec   string `json:"videoCodec"`
	AudioCodec   string `json:"audioCodec"`
	ContainerExt string `json:"containerExt"`
}

// VideoMetadata is the engine's structured metadata for a single video.
// It is fetched fresh per preview request and never persisted.
type VideoMetadata struct {
	ID          string
	Title       string
	Thumbnail   string
	Duration    int
	Uploader    string
	ViewCount   int64
	LikeCount   int64
	Description string
	Formats     []RawFormat
}
