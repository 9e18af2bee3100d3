package cohost

import (
	"encoding/json"
	"fmt"
)

// Block is one piece of a post body. The set of variants is closed:
// TextContent, AttachmentGroup, SingleAttachment and Question.
type Block interface {
	blockType() string
}

// TextContent is a markdown block.
type TextContent struct {
	Content string
}

// AttachmentGroup is an attachment row; members are attachment blocks.
type AttachmentGroup struct {
	Members Blocks `json:"attachments" validate:"dive"`
}

// SingleAttachment holds one attachment.
type SingleAttachment struct {
	Attachment Attachment `json:"attachment"`
}

// Question is an ask answered by the post.
type Question struct {
	Ask Ask `json:"ask"`
}

func (TextContent) blockType() string      { return "markdown" }
func (AttachmentGroup) blockType() string  { return "attachment-row" }
func (SingleAttachment) blockType() string { return "attachment" }
func (Question) blockType() string         { return "ask" }

// Blocks decodes the "type"-tagged block list.
type Blocks []Block

func (bs *Blocks) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}
	out := make(Blocks, 0, len(raws))
	for i, raw := range raws {
		b, err := decodeBlock(raw)
		if err != nil {
			return prefixField(fmt.Sprintf("blocks[%d]", i), err)
		}
		out = append(out, b)
	}
	*bs = out
	return nil
}

func decodeBlock(raw json.RawMessage) (Block, error) {
	var env struct {
		Markdown    json.RawMessage   `json:"markdown"`
		Attachments []json.RawMessage `json:"attachments"`
		Attachment  json.RawMessage   `json:"attachment"`
		Ask         json.RawMessage   `json:"ask"`
	}
	// Type first so an unknown tag is reported before its payload.
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, err
	}
	switch head.Type {
	case "markdown", "attachment-row", "attachment", "ask":
	case "":
		return nil, &DecodeError{Field: "type", Err: errMissing}
	default:
		return nil, &DecodeError{Field: "type", Err: fmt.Errorf("unknown block type %q", head.Type)}
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, err
	}

	switch head.Type {
	case "markdown":
		if len(env.Markdown) == 0 {
			return nil, &DecodeError{Field: "markdown", Err: errMissing}
		}
		var md struct {
			Content string `json:"content"`
		}
		if err := json.Unmarshal(env.Markdown, &md); err != nil {
			return nil, prefixField("markdown", err)
		}
		return TextContent{Content: md.Content}, nil
	case "attachment-row":
		members := make(Blocks, 0, len(env.Attachments))
		for i, m := range env.Attachments {
			b, err := decodeBlock(m)
			if err != nil {
				return nil, prefixField(fmt.Sprintf("attachments[%d]", i), err)
			}
			members = append(members, b)
		}
		return AttachmentGroup{Members: members}, nil
	case "attachment":
		if len(env.Attachment) == 0 {
			return nil, &DecodeError{Field: "attachment", Err: errMissing}
		}
		a, err := decodeAttachment(env.Attachment)
		if err != nil {
			return nil, prefixField("attachment", err)
		}
		return SingleAttachment{Attachment: a}, nil
	default: // ask
		if len(env.Ask) == 0 {
			return nil, &DecodeError{Field: "ask", Err: errMissing}
		}
		var a Ask
		if err := json.Unmarshal(env.Ask, &a); err != nil {
			return nil, prefixField("ask", err)
		}
		return Question{Ask: a}, nil
	}
}
