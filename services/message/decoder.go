package message

import (
	"encoding/base64"
	"strings"

	"google.golang.org/api/gmail/v1"

	"github.com/customeros/webmail/dto"
)

const (
	mimeTypeTextPlain = "text/plain"
	mimeTypeTextHTML  = "text/html"
)

// Part is a node of a message payload tree: either a Leaf or a Branch.
type Part interface {
	part()
	header() PartHeader
}

// PartHeader holds what every node carries regardless of its kind.
type PartHeader struct {
	MimeType string
	Filename string
	Body     PartBody
}

// PartBody is the node body as returned upstream. Data is base64url encoded inline content,
// AttachmentID is set instead when the content has to be fetched separately.
type PartBody struct {
	Data         string
	AttachmentID string
	Size         int64
}

// Leaf is a node without sub-parts. Its body is content or an attachment reference.
type Leaf struct {
	PartHeader
}

// Branch is a multipart node. Its own body never contributes text or html.
type Branch struct {
	PartHeader
	Children []Part
}

func (Leaf) part()   {}
func (Branch) part() {}

func (h PartHeader) header() PartHeader {
	return h
}

// NewPart converts the Gmail payload tree into the typed Part tree.
func NewPart(p *gmail.MessagePart) Part {
	if p == nil {
		return nil
	}
	h := PartHeader{MimeType: p.MimeType, Filename: p.Filename}
	if p.Body != nil {
		h.Body = PartBody{Data: p.Body.Data, AttachmentID: p.Body.AttachmentId, Size: p.Body.Size}
	}
	if p.Parts == nil {
		return Leaf{PartHeader: h}
	}
	children := make([]Part, 0, len(p.Parts))
	for _, child := range p.Parts {
		if c := NewPart(child); c != nil {
			children = append(children, c)
		}
	}
	return Branch{PartHeader: h, Children: children}
}

// Decoded is the accumulator produced by a payload walk.
type Decoded struct {
	Body        dto.MessageBody
	Attachments []dto.AttachmentRef
	// Undecodable counts inline leaves whose data was not valid base64.
	Undecodable int
}

// Decode walks the payload depth first and collects the text body, html body and attachment refs.
// A later leaf of the same mime type replaces an earlier one.
func Decode(payload *gmail.MessagePart) Decoded {
	acc := Decoded{Attachments: []dto.AttachmentRef{}}
	root := NewPart(payload)
	if root == nil {
		return acc
	}
	return walk(root, acc)
}

func DecodeBody(payload *gmail.MessagePart) dto.MessageBody {
	return Decode(payload).Body
}

func DecodeAttachments(payload *gmail.MessagePart) []dto.AttachmentRef {
	return Decode(payload).Attachments
}

func walk(p Part, acc Decoded) Decoded {
	h := p.header()
	if h.Filename != "" && h.Body.AttachmentID != "" {
		acc.Attachments = append(acc.Attachments, dto.AttachmentRef{
			Filename:     h.Filename,
			MimeType:     h.MimeType,
			Size:         h.Body.Size,
			AttachmentID: h.Body.AttachmentID,
		})
	}

	switch node := p.(type) {
	case Branch:
		for _, child := range node.Children {
			acc = walk(child, acc)
		}
	case Leaf:
		if node.Body.Data == "" {
			return acc
		}
		text, err := DecodeBase64(node.Body.Data)
		if err != nil {
			acc.Undecodable++
			return acc
		}
		acc.Body = mergeBody(acc.Body, node.MimeType, string(text))
	}
	return acc
}

// mergeBody is the last-wins reducer for inline content.
func mergeBody(body dto.MessageBody, mimeType, content string) dto.MessageBody {
	switch strings.ToLower(mimeType) {
	case mimeTypeTextPlain:
		body.Text = content
	case mimeTypeTextHTML:
		body.HTML = content
	}
	return body
}

// DecodeBase64 accepts standard and url-safe alphabets, padded or not.
func DecodeBase64(data string) ([]byte, error) {
	data = strings.Map(func(r rune) rune {
		switch r {
		case '-':
			return '+'
		case '_':
			return '/'
		case '\r', '\n', ' ', '\t':
			return -1
		}
		return r
	}, data)
	return base64.RawStdEncoding.DecodeString(strings.TrimRight(data, "="))
}
