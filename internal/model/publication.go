package model

import "time"

// Publication is a research publication posted by a member.  Only the
// original poster may delete it; the backend enforces that rule and the
// client surfaces the resulting error.
type Publication struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Abstract string     `json:"abstract"`
	PostedBy ProjectRef `json:"posted_by"`
	PostedAt time.Time  `json:"posted_at"`
}

// UserFile is an uploaded document visible to all members.  File type and
// size are derived server side from the multipart upload.
type UserFile struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	URL        string     `json:"file"`
	UploadedAt time.Time  `json:"uploaded_at"`
	FileType   string     `json:"file_type"`
	Size       int64      `json:"size"`
	UploadedBy ProjectRef `json:"uploaded_by"`
}
