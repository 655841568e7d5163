package utils

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

const DirPerm = 0755

var ErrSameFile = errors.New("source and destination are the same file")

func EnsureDir(fs afero.Fs, dir string) error {
	if err := fs.MkdirAll(dir, DirPerm); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// IsRegularFile follows symlinks, so a link to a file counts as a file.
func IsRegularFile(fs afero.Fs, path string) bool {
	info, err := fs.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func IsDir(fs afero.Fs, path string) bool {
	ok, err := afero.IsDir(fs, path)
	return err == nil && ok
}

// CopyFile copies src to dst, carrying over the permission bits and the
// modification time of src.
func CopyFile(fs afero.Fs, src, dst string) error {
	srcInfo, err := fs.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat source: %w", err)
	}

	if same, err := samePath(fs, src, dst, srcInfo); err != nil {
		return err
	} else if same {
		return fmt.Errorf("%w: %s", ErrSameFile, dst)
	}

	in, err := fs.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source: %w", err)
	}
	defer in.Close()

	out, err := fs.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, srcInfo.Mode().Perm())
	if err != nil {
		return fmt.Errorf("failed to create destination: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy data: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close destination: %w", err)
	}

	if err := fs.Chmod(dst, srcInfo.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := fs.Chtimes(dst, srcInfo.ModTime(), srcInfo.ModTime()); err != nil {
		return fmt.Errorf("failed to set modification time: %w", err)
	}
	return nil
}

func samePath(fs afero.Fs, src, dst string, srcInfo os.FileInfo) (bool, error) {
	absSrc, err := filepath.Abs(src)
	if err != nil {
		return false, fmt.Errorf("failed to resolve source path: %w", err)
	}
	absDst, err := filepath.Abs(dst)
	if err != nil {
		return false, fmt.Errorf("failed to resolve destination path: %w", err)
	}
	if absSrc == absDst {
		return true, nil
	}

	dstInfo, err := fs.Stat(dst)
	if err != nil {
		return false, nil
	}
	return os.SameFile(srcInfo, dstInfo), nil
}
