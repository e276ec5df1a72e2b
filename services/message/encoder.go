package message

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"mime"
	"mime/multipart"
	"net/textproto"
	"regexp"
	"strings"

	"github.com/customeros/webmail/dto"
	"github.com/customeros/webmail/internal/utils"
)

const (
	crlf              = "\r\n"
	base64LineLength  = 76
	contentTypeHTML   = "text/html; charset=utf-8"
	contentTypeMixed  = "multipart/mixed"
	transferEncoding7 = "7bit"
)

var (
	boldRegex   = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicRegex = regexp.MustCompile(`\*(.*?)\*`)
	linkRegex   = regexp.MustCompile(`\[(.*?)\]\((.*?)\)`)
)

type header struct {
	name  string
	value string
}

// FormatBody turns the lightweight compose markup into html. Bold runs before italic
// so that "**" is never split by the single star pattern.
func FormatBody(body string) string {
	body = boldRegex.ReplaceAllString(body, "<strong>$1</strong>")
	body = italicRegex.ReplaceAllString(body, "<em>$1</em>")
	body = linkRegex.ReplaceAllString(body, `<a href="$2">$1</a>`)
	return strings.ReplaceAll(body, "\n", "<br>")
}

// BuildMessage renders an RFC 2822 message. The boundary is only used when attachments are present.
// The request is expected to be validated already.
func BuildMessage(req dto.ComposeRequest, boundary string) string {
	buffer := bytes.NewBuffer(nil)
	htmlBody := FormatBody(req.Body)

	if len(req.Attachments) == 0 {
		writeHeaders(messageHeaders(req, contentTypeHTML), buffer)
		buffer.WriteString(htmlBody)
		return buffer.String()
	}

	writer := multipart.NewWriter(buffer)
	if err := writer.SetBoundary(boundary); err != nil {
		// keep the writer's random boundary
		boundary = writer.Boundary()
	}
	writeHeaders(messageHeaders(req, fmt.Sprintf(`%s; boundary="%s"`, contentTypeMixed, boundary)), buffer)

	writePart(writer, textproto.MIMEHeader{
		"Content-Type":              {contentTypeHTML},
		"Content-Transfer-Encoding": {transferEncoding7},
	}, htmlBody)

	for _, attachment := range req.Attachments {
		name := quoteParam(encodeHeaderWord(attachment.Name))
		writePart(writer, textproto.MIMEHeader{
			"Content-Type":              {fmt.Sprintf("%s; name=%s", sanitizeHeaderValue(attachment.Type), name)},
			"Content-Transfer-Encoding": {"base64"},
			"Content-Disposition":       {fmt.Sprintf("attachment; filename=%s", name)},
		}, chunkBase64(attachment.Data))
	}

	// writes to a bytes.Buffer do not fail
	_ = writer.Close()
	return buffer.String()
}

func messageHeaders(req dto.ComposeRequest, contentType string) []header {
	headers := []header{{"To", joinAddresses(req.To)}}
	if len(req.Cc) > 0 {
		headers = append(headers, header{"Cc", joinAddresses(req.Cc)})
	}
	if len(req.Bcc) > 0 {
		headers = append(headers, header{"Bcc", joinAddresses(req.Bcc)})
	}
	return append(headers,
		header{"Subject", encodeHeaderWord(req.Subject)},
		header{"MIME-Version", "1.0"},
		header{"Content-Type", contentType},
	)
}

// EncodeTransport returns the unpadded base64url form expected by the send endpoint.
func EncodeTransport(raw string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// Encode builds the message with a fresh boundary and returns both the raw and the transport form.
func Encode(req dto.ComposeRequest) (raw string, transport string) {
	raw = BuildMessage(req, utils.GenerateBoundary())
	return raw, EncodeTransport(raw)
}

func writeHeaders(headers []header, buffer *bytes.Buffer) {
	for _, h := range headers {
		buffer.WriteString(h.name + ": " + sanitizeHeaderValue(h.value) + crlf)
	}
	buffer.WriteString(crlf)
}

func writePart(writer *multipart.Writer, headers textproto.MIMEHeader, content string) {
	for key, values := range headers {
		for i := range values {
			values[i] = sanitizeHeaderValue(values[i])
		}
		headers[key] = values
	}
	part, _ := writer.CreatePart(headers)
	_, _ = part.Write([]byte(content))
}

// chunkBase64 re-wraps base64 data into lines of at most 76 characters joined by CRLF.
func chunkBase64(data string) string {
	data = strings.Join(strings.Fields(data), "")
	if data == "" {
		return ""
	}
	lines := make([]string, 0, len(data)/base64LineLength+1)
	for len(data) > base64LineLength {
		lines = append(lines, data[:base64LineLength])
		data = data[base64LineLength:]
	}
	lines = append(lines, data)
	return strings.Join(lines, crlf)
}

func joinAddresses(addresses []string) string {
	cleaned := make([]string, 0, len(addresses))
	for _, a := range addresses {
		if a = strings.TrimSpace(a); a != "" {
			cleaned = append(cleaned, a)
		}
	}
	return strings.Join(cleaned, ", ")
}

// encodeHeaderWord applies RFC 2047 encoding to non-ASCII text. ASCII input is returned unchanged.
func encodeHeaderWord(s string) string {
	return mime.BEncoding.Encode("utf-8", sanitizeHeaderValue(s))
}

func quoteParam(s string) string {
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s) + `"`
}

// sanitizeHeaderValue drops line breaks so user input cannot inject extra headers.
func sanitizeHeaderValue(s string) string {
	return strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace(s)
}
