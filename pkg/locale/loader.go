package locale

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFS defines a locale for every .yaml, .yml and .json file in fsys. The
// file name without extension is the tag and files may sit at any depth:
//
//	fr-ca.yaml
//	extra/pt.json
//
// A file may extend a locale defined by another file in the same tree. The
// current locale is left unchanged. Decoding errors and definitions whose
// parent never appears are returned joined after the whole tree was read.
func (r *Registry) LoadFS(fsys fs.FS) error {
	current := r.Current().Tag()
	var errs []error
	var loaded []string

	err := fs.WalkDir(fsys, ".", func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		var unmarshal func([]byte, any) error
		switch strings.ToLower(path.Ext(filePath)) {
		case ".yaml", ".yml":
			unmarshal = yaml.Unmarshal
		case ".json":
			unmarshal = json.Unmarshal
		default:
			return nil
		}

		data, err := fs.ReadFile(fsys, filePath)
		if err != nil {
			return fmt.Errorf("reading %q: %w", filePath, err)
		}

		var cfg Config
		if err := unmarshal(data, &cfg); err != nil {
			errs = append(errs, fmt.Errorf("%w: parsing %q: %s", ErrInvalidFile, filePath, err))
			return nil
		}

		tag := Normalize(strings.TrimSuffix(path.Base(filePath), path.Ext(filePath)))
		loaded = append(loaded, tag)
		if _, err := r.Define(tag, &cfg); err != nil && !errors.Is(err, ErrParentNotLoaded) {
			errs = append(errs, fmt.Errorf("%q: %w", filePath, err))
		}
		return nil
	})
	if err != nil {
		errs = append(errs, err)
	}

	for _, tag := range r.Pending() {
		if slices.Contains(loaded, tag) {
			errs = append(errs, fmt.Errorf("%w: %s", ErrParentNotLoaded, tag))
		}
	}

	r.mu.Lock()
	r.setCurrent(current)
	r.mu.Unlock()

	r.logger.Debug("locales loaded", slog.Int("count", len(loaded)))
	return errors.Join(errs...)
}
