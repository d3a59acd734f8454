package archive

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/dangdinh/giapha/pkg/types"
)

// MediaFile is one embedded media entry. Path is the media-root-relative
// path using forward slashes; it is stored under MediaPrefix unchanged.
type MediaFile struct {
	Path string
	Data []byte
}

// Contents is the result of unpacking an archive.
type Contents struct {
	Manifest *Manifest
	Media    []MediaFile
}

// Pack serializes the manifest and media files into a ZIP archive held
// entirely in memory. The manifest is written as indented UTF-8 JSON at the
// fixed entry name.
func Pack(m *Manifest, media []MediaFile) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	manifestJSON, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling manifest: %w", err)
	}
	w, err := zw.Create(ManifestName)
	if err != nil {
		return nil, fmt.Errorf("creating manifest entry: %w", err)
	}
	if _, err := w.Write(manifestJSON); err != nil {
		return nil, fmt.Errorf("writing manifest entry: %w", err)
	}

	for _, f := range media {
		w, err := zw.Create(MediaPrefix + path.Clean(f.Path))
		if err != nil {
			return nil, fmt.Errorf("creating media entry %s: %w", f.Path, err)
		}
		if _, err := w.Write(f.Data); err != nil {
			return nil, fmt.Errorf("writing media entry %s: %w", f.Path, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("closing archive: %w", err)
	}
	return buf.Bytes(), nil
}

// Unpack reads an archive, parses its manifest, and collects embedded media
// entries. Returns ErrManifestMissing when the fixed manifest entry is
// absent and ErrManifestInvalid when it does not parse or fails the
// structural check. Media entries with path traversal segments are dropped.
func Unpack(data []byte) (*Contents, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}

	var manifest *Manifest
	var media []MediaFile

	for _, f := range zr.File {
		switch {
		case f.Name == ManifestName:
			raw, err := readEntry(f)
			if err != nil {
				return nil, fmt.Errorf("reading manifest: %w", err)
			}
			var m Manifest
			if err := json.Unmarshal(raw, &m); err != nil {
				return nil, fmt.Errorf("%w: %v", types.ErrManifestInvalid, err)
			}
			manifest = &m
		case strings.HasPrefix(f.Name, MediaPrefix) && !f.FileInfo().IsDir():
			rel := f.Name[len(MediaPrefix):]
			if rel == "" || !isSafeRelPath(rel) {
				continue
			}
			raw, err := readEntry(f)
			if err != nil {
				return nil, fmt.Errorf("reading media entry %s: %w", f.Name, err)
			}
			media = append(media, MediaFile{Path: rel, Data: raw})
		}
	}

	if manifest == nil {
		return nil, types.ErrManifestMissing
	}
	if err := manifest.CheckStructure(); err != nil {
		return nil, err
	}
	return &Contents{Manifest: manifest, Media: media}, nil
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// isSafeRelPath rejects absolute paths and paths escaping the media root.
func isSafeRelPath(rel string) bool {
	if strings.HasPrefix(rel, "/") {
		return false
	}
	clean := path.Clean(rel)
	return clean != ".." && !strings.HasPrefix(clean, "../")
}
