package format

import "fmt"

const (
	defaultVideoContainer = "mp4"
	defaultAudioContainer = "m4a"
)

// Resolver maps a client quality selection back to a format-selection
// expression understood by the download engine.
type Resolver struct {
	videoExt string
	audioExt string
}

// NewResolver creates a resolver preferring the given container extensions
// for combined selections. Empty values fall back to mp4/m4a.
func NewResolver(videoExt, audioExt string) *Resolver {
	if videoExt == "" {
		videoExt = defaultVideoContainer
	}
	if audioExt == "" {
		audioExt = defaultAudioContainer
	}
	return &Resolver{videoExt: videoExt, audioExt: audioExt}
}

// Resolve returns the format-selection expression for a quality label and an
// optional explicit format identifier. First matching rule wins: the
// synthetic best entry selects best video+audio muxed into the preferred
// container, an explicit identifier passes through verbatim, and a bare
// label degrades to the container-preferred best since labels are not
// unique keys into the raw list.
func (r *Resolver) Resolve(quality, formatID string) string {
	switch {
	case quality == HighestLabel || formatID == BestFormatID:
		return fmt.Sprintf("bestvideo[ext=%s]+bestaudio[ext=%s]/best[ext=%s]/best",
			r.videoExt, r.audioExt, r.videoExt)
	case formatID != "":
		return formatID
	default:
		return fmt.Sprintf("best[ext=%s]/best", r.videoExt)
	}
}
