//go:build ignore

// Command generate_sample writes a synthetic cohost export for load testing.
//
//	go run scripts/generate_sample.go > posts.json
//	go run scripts/generate_sample.go -ndjson > liked.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	mrand "math/rand"
	"os"
	"time"
)

type project struct {
	Handle      string `json:"handle"`
	DisplayName string `json:"displayName"`
}

type block map[string]any

type post struct {
	PostID                   int64    `json:"postId"`
	Headline                 string   `json:"headline"`
	PublishedAt              string   `json:"publishedAt"`
	Filename                 string   `json:"filename"`
	TransparentShareOfPostID *int64   `json:"transparentShareOfPostId"`
	ShareOfPostID            *int64   `json:"shareOfPostId"`
	State                    int      `json:"state"`
	NumComments              int      `json:"numComments"`
	CWs                      []string `json:"cws"`
	Tags                     []string `json:"tags"`
	PostingProject           project  `json:"postingProject"`
	Blocks                   []block  `json:"blocks"`
	ShareTree                []post   `json:"shareTree"`
	SinglePostPageURL        string   `json:"singlePostPageUrl"`
}

var handles = []string{"nex3", "jkap", "eramdam", "vogon", "mogar", "staff"}

func main() {
	total := flag.Int("n", 500, "number of posts")
	ndjson := flag.Bool("ndjson", false, "one post per line instead of a JSON array")
	flag.Parse()

	// Deterministic seed for reproducible output
	mr := mrand.New(mrand.NewSource(42))

	tags := make([]string, 20)
	for i := 0; i < 20; i++ {
		tags[i] = fmt.Sprintf("tag %02d", i+1)
	}

	base := time.Date(2024, 9, 30, 12, 0, 0, 0, time.UTC)
	out := make([]post, 0, *total)
	for i := 0; i < *total; i++ {
		// Stagger timestamps backwards to look natural
		at := base.Add(-time.Duration(30*i+mr.Intn(60)) * time.Minute)
		p := newPost(mr, int64(100000+i), at, sampleTags(mr, tags, mr.Intn(4)))
		if mr.Float64() < 0.3 {
			anc := newPost(mr, int64(50000+i), at.Add(-48*time.Hour), nil)
			p.ShareOfPostID = &anc.PostID
			p.ShareTree = []post{anc}
		}
		out = append(out, p)
	}

	enc := json.NewEncoder(os.Stdout)
	if *ndjson {
		for _, p := range out {
			if err := enc.Encode(p); err != nil {
				panic(err)
			}
		}
		return
	}
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		panic(err)
	}
}

func newPost(r *mrand.Rand, id int64, at time.Time, tags []string) post {
	h := handles[r.Intn(len(handles))]
	slug := fmt.Sprintf("%d-sample-post", id)
	blocks := []block{{"type": "markdown", "markdown": block{"content": fmt.Sprintf("This is the body for sample post %d.", id)}}}
	if r.Float64() < 0.2 {
		blocks = append(blocks, block{"type": "attachment", "attachment": block{
			"kind": "image", "fileURL": fmt.Sprintf("https://staging.cohostcdn.org/attachment/%d/pic.png", id),
			"previewURL": "", "attachmentId": fmt.Sprintf("att-%d", id), "altText": "a sample image",
			"width": 800, "height": 600,
		}})
	}
	if tags == nil {
		tags = []string{}
	}
	return post{
		PostID:            id,
		Headline:          fmt.Sprintf("Sample Post %d", id),
		PublishedAt:       at.Format(time.RFC3339Nano),
		Filename:          slug,
		State:             1,
		CWs:               []string{},
		Tags:              tags,
		PostingProject:    project{Handle: h, DisplayName: h},
		Blocks:            blocks,
		ShareTree:         []post{},
		SinglePostPageURL: fmt.Sprintf("https://cohost.org/%s/post/%s", h, slug),
	}
}

func sampleTags(r *mrand.Rand, pool []string, k int) []string {
	if k >= len(pool) {
		k = len(pool)
	}
	idx := r.Perm(len(pool))[:k]
	out := make([]string, k)
	for i, j := range idx {
		out[i] = pool[j]
	}
	return out
}
