package driven

import "context"

// TranscriptSource fetches the spoken transcript of a video.
//
// Absence is a normal result, not an error: when captions are disabled or
// unavailable the source returns ok=false with a nil error, and the caller
// treats it as "cannot build a session". Errors are reserved for genuine
// failures (I/O, network).
type TranscriptSource interface {
	// Fetch returns the transcript for the given document identifier,
	// preferring the given languages in order.
	Fetch(ctx context.Context, id string, languages []string) (text string, ok bool, err error)
}
