package orthoexpr

import (
	"context"
	"io"
	"os"
	"path"
	"path/filepath"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

// JoinPath joins an output directory and a file name. Google Storage
// directories are joined with forward slashes regardless of platform.
func JoinPath(dir, name string) string {
	if IsGoogleStoragePath(dir) {
		return gsPrefix + path.Join(dir[len(gsPrefix):], name)
	}

	return filepath.Join(dir, name)
}

// MaybeCreateOnGoogleStorage returns a writer for outPath. A gs:// path, given a
// client, is written as a Google Storage object that becomes visible when the
// writer is closed. Otherwise a local file is created (truncating any existing
// file) along with its missing parent directories.
func MaybeCreateOnGoogleStorage(outPath string, client *storage.Client) (io.WriteCloser, error) {
	if client != nil && IsGoogleStoragePath(outPath) {
		bucketName, pathName, err := splitGoogleStoragePath(outPath)
		if err != nil {
			return nil, pfx.Err(err)
		}

		w := client.Bucket(bucketName).Object(pathName).NewWriter(context.Background())
		w.ContentType = "text/csv"

		return w, nil
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return nil, pfx.Err(err)
	}

	f, err := os.OpenFile(outPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, pfx.Err(err)
	}

	return f, nil
}
