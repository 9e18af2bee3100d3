package cohost

import (
	"encoding/json"
	"fmt"
)

// Attachment is an uploaded file; Image or Audio.
type Attachment interface {
	URL() string
}

// Image is an image attachment. AltText is nil when the author left it out.
type Image struct {
	FileURL      string  `json:"fileURL" validate:"required"`
	PreviewURL   string  `json:"previewURL"`
	AttachmentID string  `json:"attachmentId"`
	AltText      *string `json:"altText"`
	Width        int64   `json:"width"`
	Height       int64   `json:"height"`
}

// Audio is an audio attachment.
type Audio struct {
	FileURL      string `json:"fileURL" validate:"required"`
	PreviewURL   string `json:"previewURL"`
	AttachmentID string `json:"attachmentId"`
	Artist       string `json:"artist"`
	Title        string `json:"title"`
}

func (i Image) URL() string { return i.FileURL }
func (a Audio) URL() string { return a.FileURL }

func decodeAttachment(raw json.RawMessage) (Attachment, error) {
	var head struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, err
	}
	switch head.Kind {
	case "image":
		var img Image
		if err := json.Unmarshal(raw, &img); err != nil {
			return nil, err
		}
		return img, nil
	case "audio":
		var au Audio
		if err := json.Unmarshal(raw, &au); err != nil {
			return nil, err
		}
		return au, nil
	case "":
		return nil, &DecodeError{Field: "kind", Err: errMissing}
	default:
		return nil, &DecodeError{Field: "kind", Err: fmt.Errorf("unknown attachment kind %q", head.Kind)}
	}
}
