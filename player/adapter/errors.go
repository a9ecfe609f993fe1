package adapter

import "strings"

// Playback error codes. The numbering follows the upstream embedded-player
// contract and is part of the user-facing product surface.
const (
	CodeInvalidParam    = 2   // malformed video reference
	CodeLoadFailure     = 5   // player could not render the video
	CodeNotFound        = 100 // video missing or removed
	CodeEmbedBlocked    = 101 // owner disallows external playback
	CodeEmbedBlockedAlt = 150 // same as 101, reported under a second code
)

// messageByCode maps error codes to their user-facing messages. Kept as
// data so the mapping cannot drift between call sites.
var messageByCode = map[int]string{
	CodeNotFound:        "This video was not found or has been removed.",
	CodeEmbedBlocked:    "The owner of this video does not allow it to be played here.",
	CodeEmbedBlockedAlt: "The owner of this video does not allow it to be played here.",
}

const genericFailureMessage = "This video failed to load."

// MessageFor returns the user-facing message for a playback error code.
// Unknown codes get the generic failure message.
func MessageFor(code int) string {
	if msg, ok := messageByCode[code]; ok {
		return msg
	}
	return genericFailureMessage
}

// errorCodeTable classifies the player's free-form error strings onto the
// fixed code set. First substring match wins.
var errorCodeTable = []struct {
	substr string
	code   int
}{
	{"video unavailable", CodeNotFound},
	{"has been removed", CodeNotFound},
	{"does not exist", CodeNotFound},
	{"404", CodeNotFound},
	{"private video", CodeEmbedBlocked},
	{"sign in to confirm", CodeEmbedBlocked},
	{"age-restricted", CodeEmbedBlocked},
	{"not available in your country", CodeEmbedBlocked},
	{"blocked", CodeEmbedBlocked},
	{"restricted", CodeEmbedBlocked},
}

// ClassifyError maps a raw player error string to an error code.
func ClassifyError(raw string) int {
	lowered := strings.ToLower(raw)
	for _, entry := range errorCodeTable {
		if strings.Contains(lowered, entry.substr) {
			return entry.code
		}
	}
	return CodeLoadFailure
}
