package mp3

import "errors"

var (
	ErrInvalidPath   = errors.New("invalid path")
	ErrUnreadableTag = errors.New("unreadable ID3v2 tag")
	ErrNoFiles       = errors.New("no mp3 files found")
)
