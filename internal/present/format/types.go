package format

import "time"

// Document is one rendered post.
type Document struct {
	PostID   int64  `json:"postId"`
	Filename string `json:"filename"`
	Handle   string `json:"handle"`
	Markdown string `json:"markdown"`
}

// Summary is one row of a post listing.
type Summary struct {
	Index       int       `json:"index"`
	PostID      int64     `json:"postId"`
	Filename    string    `json:"filename"`
	Handle      string    `json:"handle"`
	PublishedAt time.Time `json:"publishedAt"`
	Tags        []string  `json:"tags,omitempty"`
	Shares      int       `json:"shares"`
}

// ManifestEntry is one exported post recorded in the manifest.
type ManifestEntry struct {
	PostID     int64     `json:"postId"`
	Filename   string    `json:"filename"`
	Hash       string    `json:"hash"`
	ExportedAt time.Time `json:"exportedAt"`
}
