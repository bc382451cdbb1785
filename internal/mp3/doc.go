// Package mp3 reads and writes the ID3v2 tags of MP3 files and exposes each file as an editable
// target.
package mp3
