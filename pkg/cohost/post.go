package cohost

import (
	"encoding/json"
	"fmt"
)

// Post is one chost as exported by cohost-dl.
type Post struct {
	PostID                   int64      `json:"postId" validate:"required"`
	Headline                 string     `json:"headline"`
	PublishedAt              string     `json:"publishedAt" validate:"required"`
	Filename                 string     `json:"filename" validate:"required"`
	TransparentShareOfPostID *int64     `json:"transparentShareOfPostId"`
	ShareOfPostID            *int64     `json:"shareOfPostId"`
	State                    int        `json:"state"`
	NumComments              int        `json:"numComments"`
	NumSharedComments        int        `json:"numSharedComments"`
	CWs                      []string   `json:"cws"`
	Tags                     []string   `json:"tags"`
	Blocks                   Blocks     `json:"blocks" validate:"dive"`
	PlainTextBody            string     `json:"plainTextBody"`
	PostingProject           Project    `json:"postingProject"`
	ShareTree                []Post     `json:"shareTree" validate:"dive"`
	RelatedProjects          []Project  `json:"relatedProjects" validate:"-"`
	SinglePostPageURL        string     `json:"singlePostPageUrl" validate:"required"`
	EffectiveAdultContent    bool       `json:"effectiveAdultContent"`
	Pinned                   bool       `json:"pinned"`
	CommentsLocked           bool       `json:"commentsLocked"`
	SharesLocked             bool       `json:"sharesLocked"`
	ResponseToAskID          *NumericID `json:"responseToAskId"`
}

// UnmarshalJSON decodes the share tree one post at a time so a failure
// keeps the index of the ancestor it came from.
func (p *Post) UnmarshalJSON(data []byte) error {
	type plain Post
	var aux struct {
		plain
		ShareTree []json.RawMessage `json:"shareTree"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return wrapJSONError(err)
	}
	*p = Post(aux.plain)
	p.ShareTree = nil
	if aux.ShareTree != nil {
		p.ShareTree = make([]Post, 0, len(aux.ShareTree))
	}
	for i, raw := range aux.ShareTree {
		var anc Post
		if err := json.Unmarshal(raw, &anc); err != nil {
			return prefixField(fmt.Sprintf("shareTree[%d]", i), wrapJSONError(err))
		}
		p.ShareTree = append(p.ShareTree, anc)
	}
	return nil
}

// IsShare reports whether the post reshares another post, visibly or not.
func (p Post) IsShare() bool {
	return p.TransparentShareOfPostID != nil || p.ShareOfPostID != nil
}

// IsTransparentShare reports whether the post is an auto-collapsed reshare.
func (p Post) IsTransparentShare() bool {
	return p.TransparentShareOfPostID != nil
}

// SharedPostID returns the id of the reshared post. The transparent id wins
// when both are set.
func (p Post) SharedPostID() (int64, bool) {
	if p.TransparentShareOfPostID != nil {
		return *p.TransparentShareOfPostID, true
	}
	if p.ShareOfPostID != nil {
		return *p.ShareOfPostID, true
	}
	return 0, false
}

// Author returns the handle of the posting project.
func (p Post) Author() string { return p.PostingProject.Handle }

// Privacy is a project's visibility setting.
type Privacy string

const (
	PrivacyPublic   Privacy = "public"
	PrivacyLoggedIn Privacy = "logged-in"
	PrivacyPrivate  Privacy = "private"
)

// Project is the page a post was published from.
type Project struct {
	ProjectID   int64    `json:"projectId"`
	Handle      string   `json:"handle" validate:"required"`
	DisplayName string   `json:"displayName"`
	Dek         string   `json:"dek"`
	Description string   `json:"description"`
	AvatarURL   string   `json:"avatarURL"`
	Pronouns    string   `json:"pronouns"`
	URL         string   `json:"url"`
	Privacy     Privacy  `json:"privacy"`
	Flags       []string `json:"flags"`
}

// Name is the display name, or the handle when no display name is set.
func (p Project) Name() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.Handle
}
