package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"
)

// FileSystem is the part of the OS the output writer needs.
type FileSystem interface {
	Stat(name string) (os.FileInfo, error)
	Create(name string) (io.WriteCloser, error)
}

// DefaultFileSystem implements FileSystem with the os package.
type DefaultFileSystem struct{}

func (*DefaultFileSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

func (*DefaultFileSystem) Create(name string) (io.WriteCloser, error) {
	return os.Create(filepath.Clean(name))
}

var defaultFileSystem FileSystem = &DefaultFileSystem{}

// modelWriter sends an encoded model to stdout or to a file.
type modelWriter struct {
	fs     FileSystem
	stdout io.Writer
}

// write encodes v to path, where "-" means stdout. The parent directory
// of path must exist.
func (mw modelWriter) write(path, format string, v interface{}) error {
	if path == "-" {
		return writeValue(mw.stdout, format, v, false)
	}
	if err := mw.checkDir(filepath.Dir(path)); err != nil {
		return err
	}

	f, err := mw.fs.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := writeValue(f, format, v, false); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func (mw modelWriter) checkDir(dir string) error {
	fi, err := mw.fs.Stat(dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("output directory %s does not exist, please create it first", dir)
	case err != nil:
		return fmt.Errorf("check output directory: %w", err)
	case !fi.IsDir():
		return fmt.Errorf("output path %s is not a directory", dir)
	}
	return nil
}

// writeValue encodes v in the given format. Compact JSON is a single line.
func writeValue(w io.Writer, format string, v interface{}, compact bool) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		if !compact {
			enc.SetIndent("", "  ")
		}
		return enc.Encode(v)
	case "yaml", "yml":
		data, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case "cbor":
		return cbor.NewEncoder(w).Encode(v)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}
