package mp3

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bogem/id3v2/v2"
	"github.com/desertthunder/tagx/internal/editor"
	"github.com/desertthunder/tagx/internal/tags"
)

// listSeparator joins several values inside one text frame. ID3v2.4 defines it; ID3v2.3 readers
// commonly accept it too, and unlike "/" it cannot collide with names such as "AC/DC".
const listSeparator = "\x00"

// Option configures how a file is saved. Options passed to [Open] become the defaults for every
// [File.Save]; options passed to Save apply to that call only.
type Option func(*options)

type options struct {
	backupSuffix string
}

// WithBackup makes [File.Save] copy the original file to path+suffix before writing. An empty
// suffix disables the backup.
func WithBackup(suffix string) Option {
	return func(o *options) {
		o.backupSuffix = suffix
	}
}

// File is an MP3 file's ID3v2 tag. It implements [editor.Target].
type File struct {
	path  string
	tag   *id3v2.Tag
	opts  options
	dirty bool
}

// Open parses the ID3v2 tag of the file at path. A file with no tag opens with an empty ID3v2.4
// tag.
func Open(path string, opts ...Option) (*File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPath, path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrInvalidPath, path)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadableTag, path, err)
	}

	f := &File{path: path, tag: tag}
	for _, opt := range opts {
		opt(&f.opts)
	}
	return f, nil
}

func (f *File) Path() string { return f.path }

// Version returns the ID3v2 major version, 3 or 4.
func (f *File) Version() byte { return f.tag.Version() }

// Dirty reports whether a field was set since the file was opened or last saved.
func (f *File) Dirty() bool { return f.dirty }

func (f *File) FieldShape(tag tags.Tag) (tags.Shape, bool) {
	fr, ok := frames[tag]
	if !ok || fr.id(f.Version()) == "" {
		return 0, false
	}
	return fr.shape, true
}

// Supported returns the tags this file's version stores, in catalog order.
func (f *File) Supported() []tags.Tag {
	var out []tags.Tag
	for _, t := range tags.All() {
		if _, ok := f.FieldShape(t); ok {
			out = append(out, t)
		}
	}
	return out
}

func (f *File) Get(tag tags.Tag) (tags.Value, bool) {
	fr, ok := frames[tag]
	if !ok {
		return tags.Value{}, false
	}
	id := fr.id(f.Version())
	if id == "" {
		return tags.Value{}, false
	}

	switch fr.kind {
	case commentFrames:
		var items []string
		for _, fm := range f.tag.GetFrames(id) {
			if cf, ok := fm.(id3v2.CommentFrame); ok && cf.Text != "" {
				items = append(items, cf.Text)
			}
		}
		if len(items) == 0 {
			return tags.Value{}, false
		}
		return tags.List(items...), true
	case lyricsFrame:
		for _, fm := range f.tag.GetFrames(id) {
			if lf, ok := fm.(id3v2.UnsynchronisedLyricsFrame); ok && lf.Lyrics != "" {
				return tags.Text(lf.Lyrics), true
			}
		}
		return tags.Value{}, false
	case pictureFrames:
		var blobs []tags.Blob
		for _, fm := range f.tag.GetFrames(id) {
			if pf, ok := fm.(id3v2.PictureFrame); ok {
				blobs = append(blobs, tags.Blob{MIMEType: pf.MimeType, Description: pf.Description, Data: pf.Picture})
			}
		}
		if len(blobs) == 0 {
			return tags.Value{}, false
		}
		return tags.Blobs(blobs...), true
	}

	text := f.text(id)
	if text == "" {
		return tags.Value{}, false
	}

	switch fr.kind {
	case listFrame:
		items := splitValues(text)
		if len(items) == 0 {
			return tags.Value{}, false
		}
		return tags.List(items...), true
	case numberFrame:
		if tag == tags.Year && len(text) > 4 {
			text = text[:4]
		}
		n, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil {
			return tags.Value{}, false
		}
		return tags.Int(n), true
	case pairFrame:
		num, total := splitPair(text)
		n := num
		if fr.total {
			n = total
		}
		if n == 0 {
			return tags.Value{}, false
		}
		return tags.Int(n), true
	case dateFrame:
		v, err := tags.Coerce(tag, text)
		if err != nil {
			return tags.Value{}, false
		}
		return v, true
	case lengthFrame:
		ms, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil || ms < 0 {
			return tags.Value{}, false
		}
		return tags.Duration(time.Duration(ms) * time.Millisecond), true
	default:
		return tags.Text(text), true
	}
}

// Set replaces the frames that store tag. Setting an empty value removes them.
func (f *File) Set(tag tags.Tag, v tags.Value) error {
	fr, ok := frames[tag]
	if !ok || fr.id(f.Version()) == "" {
		return &editor.FieldError{Tag: tag, Err: editor.ErrUnsupportedByTarget}
	}
	if v.Shape() != fr.shape {
		return &editor.FieldError{
			Tag: tag,
			Err: fmt.Errorf("%w: field holds %s, got %s", editor.ErrShapeMismatch, fr.shape, v.Shape()),
		}
	}

	id := fr.id(f.Version())
	enc := f.encoding()

	switch fr.kind {
	case textFrame:
		f.setText(id, v.AsText())
	case listFrame:
		f.setText(id, strings.Join(v.AsList(), listSeparator))
	case numberFrame:
		text := strconv.Itoa(v.AsInt())
		if tag == tags.Year {
			text = fmt.Sprintf("%04d", v.AsInt())
		}
		f.setText(id, text)
	case pairFrame:
		num, total := splitPair(f.text(id))
		if fr.total {
			total = v.AsInt()
		} else {
			num = v.AsInt()
		}
		f.setText(id, joinPair(num, total))
	case dateFrame:
		f.setText(id, v.AsDate().String())
	case lengthFrame:
		f.setText(id, strconv.FormatInt(v.AsDuration().Milliseconds(), 10))
	case commentFrames:
		f.tag.DeleteFrames(id)
		for i, item := range v.AsList() {
			f.tag.AddCommentFrame(id3v2.CommentFrame{
				Encoding:    enc,
				Language:    "eng",
				Description: numbered("", i),
				Text:        item,
			})
		}
	case lyricsFrame:
		f.tag.DeleteFrames(id)
		if text := v.AsText(); text != "" {
			f.tag.AddUnsynchronisedLyricsFrame(id3v2.UnsynchronisedLyricsFrame{
				Encoding: enc,
				Language: "eng",
				Lyrics:   text,
			})
		}
	case pictureFrames:
		f.tag.DeleteFrames(id)
		for i, b := range v.AsBlobs() {
			pt := byte(id3v2.PTFrontCover)
			if i > 0 {
				pt = id3v2.PTOther
			}
			f.tag.AddAttachedPicture(id3v2.PictureFrame{
				Encoding:    enc,
				MimeType:    b.MIMEType,
				PictureType: pt,
				Description: numbered(b.Description, i),
				Picture:     b.Data,
			})
		}
	}

	f.dirty = true
	return nil
}

// Save writes the tag back to disk, copying the original first when a backup suffix is set.
func (f *File) Save(opts ...Option) error {
	o := f.opts
	for _, opt := range opts {
		opt(&o)
	}

	if o.backupSuffix != "" {
		if err := copyFile(f.path, f.path+o.backupSuffix); err != nil {
			return fmt.Errorf("failed to back up %s: %w", f.path, err)
		}
	}
	if err := f.tag.Save(); err != nil {
		return fmt.Errorf("failed to save %s: %w", f.path, err)
	}
	f.dirty = false
	return nil
}

func (f *File) Close() error {
	return f.tag.Close()
}

func (f *File) text(id string) string {
	return strings.TrimRight(f.tag.GetTextFrame(id).Text, listSeparator)
}

func (f *File) setText(id, text string) {
	f.tag.DeleteFrames(id)
	if text != "" {
		f.tag.AddTextFrame(id, f.encoding(), text)
	}
}

func (f *File) encoding() id3v2.Encoding {
	if f.Version() == 3 {
		return id3v2.EncodingUTF16
	}
	return id3v2.EncodingUTF8
}

func splitValues(text string) []string {
	var items []string
	for _, s := range strings.Split(text, listSeparator) {
		if s = strings.TrimSpace(s); s != "" {
			items = append(items, s)
		}
	}
	return items
}

// splitPair reads "n/total", "n" or "/total". Unreadable halves are zero.
func splitPair(text string) (num, total int) {
	a, b, _ := strings.Cut(strings.TrimSpace(text), "/")
	num, _ = strconv.Atoi(strings.TrimSpace(a))
	total, _ = strconv.Atoi(strings.TrimSpace(b))
	return num, total
}

func joinPair(num, total int) string {
	switch {
	case num == 0 && total == 0:
		return ""
	case total == 0:
		return strconv.Itoa(num)
	default:
		return fmt.Sprintf("%d/%d", num, total)
	}
}

// numbered keeps descriptions of repeated frames distinct, since ID3v2 keys COMM and APIC frames
// by their description.
func numbered(desc string, i int) string {
	if i == 0 {
		return desc
	}
	if desc == "" {
		return strconv.Itoa(i + 1)
	}
	return fmt.Sprintf("%s (%d)", desc, i+1)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
