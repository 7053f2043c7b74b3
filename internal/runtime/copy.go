package runtime

import (
	"archive/tar"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
)

// Copies a path from the instance's filesystem as a tar stream.
//
// The file at path is archived by running "tar cf - -C <dir> <base>" inside
// the instance and streaming the output to w.
func (c *Container) CopyFrom(ctx context.Context, w io.Writer, p string) error {
	exitCode, stderr, err := c.execCommand(ctx, w, "tar", "cf", "-", "-C", path.Dir(p), path.Base(p))
	if err != nil {
		return err
	}
	if exitCode != 0 {
		return fmt.Errorf("%w: archiving %s failed with exit code %d (%s)", ErrRuntime, p, exitCode, stderr)
	}
	return nil
}

// Reads a single file out of the instance's filesystem.
//
// The file is streamed out as a tar archive and unpacked in memory. A
// missing path surfaces as a failed archive command.
func (c *Container) ReadFile(ctx context.Context, p string) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.CopyFrom(ctx, &buf, p); err != nil {
		return nil, err
	}

	data, err := fileFromTar(&buf, path.Base(p))
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrRuntime, p, err)
	}
	return data, nil
}

// Extracts the named entry from a tar stream.
//
// The name is matched against each entry's base name, so it finds the file
// regardless of whether tar recorded it with a leading "./".
func fileFromTar(r io.Reader, name string) ([]byte, error) {
	tr := tar.NewReader(r)

	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("entry %q not found in archive", name)
		}
		if err != nil {
			return nil, err
		}

		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		if path.Base(hdr.Name) != name {
			continue
		}

		return io.ReadAll(tr)
	}
}
