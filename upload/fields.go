package upload

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/textproto"
	"path/filepath"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pkg/errors"
)

// sniffLen is how much of an attachment is read to detect its content type.
const sniffLen = 3072

var (
	ErrNoAttachment        = errors.New("upload fields carry no file")
	ErrMultipleAttachments = errors.New("upload fields carry more than one file")
	ErrUnsupportedValue    = errors.New("unsupported upload field value")
	ErrAttachmentTooLarge  = errors.New("attachment exceeds the size limit")
	ErrEmptyFieldName      = errors.New("upload field name cannot be empty")
)

// Fields are the form values of one upload. Exactly one value must be a File
// (or *File). The others are scalars (strings, bools, numbers, fmt.Stringer)
// or slices/arrays of scalars, which are sent as key[0], key[1], ... in order.
// Nil values are left out.
type Fields map[string]any

// File is the binary attachment of an upload.
type File struct {
	Name        string    // filename sent to the server; "blob" when empty
	Content     io.Reader // read once
	ContentType string    // sniffed from the content when empty
}

type encoded struct {
	body        []byte
	contentType string
	fileName    string
	fileSize    int64
}

func (f Fields) attachment() (string, *File, error) {
	var (
		key  string
		file *File
	)
	for k, v := range f {
		var candidate *File
		switch fv := v.(type) {
		case File:
			candidate = &fv
		case *File:
			if fv == nil {
				continue
			}
			candidate = fv
		default:
			continue
		}
		if file != nil {
			return "", nil, errors.Wrapf(ErrMultipleAttachments, "fields %q and %q", key, k)
		}
		key, file = k, candidate
	}
	if file == nil {
		return "", nil, ErrNoAttachment
	}
	return key, file, nil
}

// encode writes fields as a multipart/form-data body. Keys are written in
// sorted order so the same fields always produce the same layout.
func encode(fields Fields, maxBytes int64) (*encoded, error) {
	fileKey, file, err := fields.attachment()
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		if k == "" {
			return nil, ErrEmptyFieldName
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	out := &encoded{}
	for _, key := range keys {
		if key == fileKey {
			name, size, err := writeFile(w, key, file, maxBytes)
			if err != nil {
				return nil, err
			}
			out.fileName, out.fileSize = name, size
			continue
		}
		if err := writeValue(w, key, fields[key]); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, errors.Wrap(err, "close multipart writer")
	}

	out.body = buf.Bytes()
	out.contentType = w.FormDataContentType()
	return out, nil
}

func writeValue(w *multipart.Writer, key string, value any) error {
	if value == nil {
		return nil
	}
	if s, ok := scalar(value); ok {
		return errors.Wrapf(w.WriteField(key, s), "write field %q", key)
	}

	rv := reflect.ValueOf(value)
	if (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) && rv.Type().Elem().Kind() != reflect.Uint8 {
		for i := 0; i < rv.Len(); i++ {
			s, ok := scalar(rv.Index(i).Interface())
			if !ok {
				return errors.Wrapf(ErrUnsupportedValue, "field %q[%d] is %T", key, i, rv.Index(i).Interface())
			}
			if err := w.WriteField(fmt.Sprintf("%s[%d]", key, i), s); err != nil {
				return errors.Wrapf(err, "write field %q[%d]", key, i)
			}
		}
		return nil
	}
	return errors.Wrapf(ErrUnsupportedValue, "field %q is %T", key, value)
}

// scalar formats v the way a browser form would.
func scalar(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case bool:
		return strconv.FormatBool(x), true
	case int:
		return strconv.Itoa(x), true
	case int8:
		return strconv.FormatInt(int64(x), 10), true
	case int16:
		return strconv.FormatInt(int64(x), 10), true
	case int32:
		return strconv.FormatInt(int64(x), 10), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case uint:
		return strconv.FormatUint(uint64(x), 10), true
	case uint8:
		return strconv.FormatUint(uint64(x), 10), true
	case uint16:
		return strconv.FormatUint(uint64(x), 10), true
	case uint32:
		return strconv.FormatUint(uint64(x), 10), true
	case uint64:
		return strconv.FormatUint(x, 10), true
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case fmt.Stringer:
		return x.String(), true
	}
	return "", false
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func writeFile(w *multipart.Writer, key string, f *File, maxBytes int64) (string, int64, error) {
	if f.Content == nil {
		return "", 0, errors.Wrapf(ErrNoAttachment, "file %q has no content", key)
	}
	name := f.Name
	if name == "" {
		name = "blob"
	}

	content := f.Content
	contentType := f.ContentType
	if contentType == "" {
		head := make([]byte, sniffLen)
		n, err := io.ReadFull(content, head)
		if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
			return "", 0, errors.Wrapf(err, "read attachment %q", name)
		}
		head = head[:n]
		contentType = detectContentType(head, name)
		content = io.MultiReader(bytes.NewReader(head), content)
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, quoteEscaper.Replace(key), quoteEscaper.Replace(name)))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		return "", 0, errors.Wrapf(err, "create file part %q", key)
	}

	src := content
	if maxBytes > 0 {
		src = io.LimitReader(content, maxBytes+1)
	}
	n, err := io.Copy(part, src)
	if err != nil {
		return "", 0, errors.Wrapf(err, "copy attachment %q", name)
	}
	if maxBytes > 0 && n > maxBytes {
		return "", 0, errors.Wrapf(ErrAttachmentTooLarge, "%q is larger than %d bytes", name, maxBytes)
	}
	return name, n, nil
}

// detectContentType sniffs magic bytes first and falls back to the file
// extension, then to application/octet-stream.
func detectContentType(head []byte, name string) string {
	detected := mimetype.Detect(head)
	if !detected.Is("application/octet-stream") {
		return detected.String()
	}
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); byExt != "" {
		return byExt
	}
	return "application/octet-stream"
}
