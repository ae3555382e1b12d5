package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	fsutil "github.com/kk-code-lab/dirview/internal/fs"
)

const (
	// MetaFileName is the per-folder sidecar inside fs.MetaDirName.
	MetaFileName = "tsm.json"

	perspectiveSettingsKey = "perspectiveSettings"
	lastUpdatedKey         = "lastUpdated"
)

// MetaPath returns the sidecar location for dir.
func MetaPath(dir string) string {
	return filepath.Join(dir, fsutil.MetaDirName, MetaFileName)
}

// ReadFolderMeta loads the opaque per-folder blob. A missing file yields
// ErrNoSettings; unparsable JSON is returned as an error.
func ReadFolderMeta(dir string) (map[string]any, error) {
	data, err := os.ReadFile(MetaPath(dir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoSettings
		}
		return nil, fmt.Errorf("cannot read folder meta for %s: %w", dir, err)
	}

	var meta map[string]any
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("malformed folder meta %s: %w", MetaPath(dir), err)
	}
	if meta == nil {
		return nil, ErrNoSettings
	}
	return meta, nil
}

// WriteFolderMeta stores meta in the sidecar, creating the meta directory.
func WriteFolderMeta(dir string, meta map[string]any) error {
	path := MetaPath(dir)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create meta directory: %w", err)
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(path, data)
}

// PerspectiveFromMeta extracts the settings stored for p in a folder blob.
func PerspectiveFromMeta(meta map[string]any, p Perspective) (PerspectiveSettings, error) {
	if meta == nil {
		return PerspectiveSettings{}, ErrNoSettings
	}
	all, ok := meta[perspectiveSettingsKey].(map[string]any)
	if !ok {
		return PerspectiveSettings{}, ErrNoSettings
	}
	raw, ok := all[string(p)]
	if !ok {
		return PerspectiveSettings{}, ErrNoSettings
	}
	return Decode(raw)
}

// WithPerspective returns a copy of meta carrying ps for p. Other keys,
// including settings of other perspectives, are preserved.
func WithPerspective(meta map[string]any, p Perspective, ps PerspectiveSettings, now time.Time) map[string]any {
	out := make(map[string]any, len(meta)+2)
	for k, v := range meta {
		out[k] = v
	}

	all := map[string]any{}
	if existing, ok := meta[perspectiveSettingsKey].(map[string]any); ok {
		for k, v := range existing {
			all[k] = v
		}
	}
	all[string(p)] = ps.toMap()

	out[perspectiveSettingsKey] = all
	out[lastUpdatedKey] = now.UnixMilli()
	return out
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-"+filepath.Base(path))
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}
