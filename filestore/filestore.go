// Package filestore stores uploaded files on local disk under generated
// names and hands out opaque reference strings.
package filestore

import (
	"os"
	"path/filepath"
	"strings"

	"pinboard/util/common"

	"github.com/google/uuid"
)

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// Store holds uploads in a single directory. The reference it returns is the
// generated file name, never a client-supplied path.
type Store struct {
	root string
}

func NewStore(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, err
	}
	return &Store{root: root}, nil
}

// Save writes data under a generated name keeping only the extension of the
// original file name. Unknown extensions are rejected.
func (s *Store) Save(originalName string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedExtensions[ext] {
		return "", common.NewError("file type not allowed:", originalName)
	}
	ref := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(s.root, ref), data, 0o640); err != nil {
		return "", err
	}
	return ref, nil
}

// Delete removes a stored file by reference. A missing file is not an error.
func (s *Store) Delete(ref string) error {
	if ref == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.root, filepath.Base(ref)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Root returns the directory the store writes into.
func (s *Store) Root() string {
	return s.root
}

// Path returns the on-disk location for a reference.
func (s *Store) Path(ref string) string {
	return filepath.Join(s.root, filepath.Base(ref))
}
