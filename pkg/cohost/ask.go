package cohost

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// AnonymousAsker is how an ask without a visible sender is attributed.
const AnonymousAsker = "Anonymous User"

// Ask is a question sent to the post's author.
type Ask struct {
	AskID         string         `json:"askId"`
	Anon          bool           `json:"anon"`
	LoggedIn      bool           `json:"loggedIn"`
	AskingProject *AskingProject `json:"askingProject"`
	Content       string         `json:"content"`
	SentAt        string         `json:"sentAt" validate:"required"`
}

// AskingProject is the sender of a non-anonymous ask.
type AskingProject struct {
	ProjectID   int64    `json:"projectId"`
	Handle      string   `json:"handle" validate:"required"`
	DisplayName string   `json:"displayName"`
	AvatarURL   string   `json:"avatarURL"`
	Privacy     Privacy  `json:"privacy"`
	Flags       []string `json:"flags"`
}

// IsAnonymous is true for anon asks and for asks whose sender is unknown.
func (a Ask) IsAnonymous() bool {
	return a.Anon || a.AskingProject == nil
}

// Asker returns the sender's handle or AnonymousAsker.
func (a Ask) Asker() string {
	if a.IsAnonymous() {
		return AnonymousAsker
	}
	return a.AskingProject.Handle
}

// NumericID is an id that cohost serializes either as a number or as a
// numeric string.
type NumericID int64

func (n *NumericID) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return nil
	}
	s = strings.Trim(s, `"`)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid numeric id %s", data)
	}
	*n = NumericID(v)
	return nil
}

func (n NumericID) MarshalJSON() ([]byte, error) {
	return json.Marshal(int64(n))
}
