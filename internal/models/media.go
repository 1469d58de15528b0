package models

import "fmt"

// MediaKind enumerates the seven media kinds a stored file can have.
// Dispatch over it is an exhaustive switch, not a string-keyed table, so a
// new kind breaks compilation everywhere it matters.
type MediaKind string

const (
	KindDocument  MediaKind = "document"
	KindPhoto     MediaKind = "photo"
	KindVideo     MediaKind = "video"
	KindAudio     MediaKind = "audio"
	KindAnimation MediaKind = "animation"
	KindVoice     MediaKind = "voice"
	KindSticker   MediaKind = "sticker"
)

// MediaKinds lists every valid kind in a stable order.
var MediaKinds = []MediaKind{
	KindDocument, KindPhoto, KindVideo, KindAudio,
	KindAnimation, KindVoice, KindSticker,
}

func (k MediaKind) Valid() bool {
	switch k {
	case KindDocument, KindPhoto, KindVideo, KindAudio, KindAnimation, KindVoice, KindSticker:
		return true
	}
	return false
}

func ParseMediaKind(s string) (MediaKind, error) {
	k := MediaKind(s)
	if !k.Valid() {
		return "", fmt.Errorf("unknown media kind %q", s)
	}
	return k, nil
}

// BroadcastKind enumerates the eight independent broadcast sub-flows.
// It is wider than MediaKind: plain text and location have no stored-file
// counterpart.
type BroadcastKind string

const (
	BroadcastText      BroadcastKind = "text"
	BroadcastPhoto     BroadcastKind = "photo"
	BroadcastVideo     BroadcastKind = "video"
	BroadcastDocument  BroadcastKind = "document"
	BroadcastAnimation BroadcastKind = "animation"
	BroadcastVoice     BroadcastKind = "voice"
	BroadcastLocation  BroadcastKind = "location"
	BroadcastAudio     BroadcastKind = "audio"
)

func (k BroadcastKind) Valid() bool {
	switch k {
	case BroadcastText, BroadcastPhoto, BroadcastVideo, BroadcastDocument,
		BroadcastAnimation, BroadcastVoice, BroadcastLocation, BroadcastAudio:
		return true
	}
	return false
}
