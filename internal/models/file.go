package models

import "time"

// StoredFile is one distributable artifact addressed by its numeric code.
// Exactly one of FileID (Telegram media handle) or FileLink (plain URL) is
// expected in practice; the code is immutable once assigned.
type StoredFile struct {
	ID         int64     `json:"id"`
	Code       string    `json:"code"`
	FileID     string    `json:"file_id"`
	FileLink   string    `json:"file_link"`
	Kind       MediaKind `json:"kind"`
	Caption    string    `json:"caption"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// HasPayload reports whether the row carries anything deliverable at all.
func (f *StoredFile) HasPayload() bool {
	return f.FileID != "" || f.FileLink != ""
}

// Channel is a mandatory-subscription channel. The handle is stored without
// the leading "@".
type Channel struct {
	ID     int64  `json:"id"`
	Handle string `json:"handle"`
}

// FileRequest is one append-only audit row: a user successfully resolved a
// code. Used only for reporting, never for delivery logic.
type FileRequest struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	FileCode    string    `json:"file_code"`
	RequestedAt time.Time `json:"requested_at"`
}
