package orthoexpr

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

const gsPrefix = "gs://"

type ReadSeekCloser interface {
	io.Reader
	io.Seeker
	io.Closer
}

// IsGoogleStoragePath reports whether path names a gs:// object.
func IsGoogleStoragePath(path string) bool {
	return strings.HasPrefix(path, gsPrefix)
}

// splitGoogleStoragePath returns the bucket and object names of a gs:// path.
func splitGoogleStoragePath(path string) (bucket, object string, err error) {
	pathParts := strings.SplitN(strings.TrimPrefix(path, gsPrefix), "/", 2)
	if len(pathParts) != 2 || pathParts[0] == "" || pathParts[1] == "" {
		return "", "", fmt.Errorf("Tried to split your google storage path into 2 parts, but got %d: %v", len(pathParts), pathParts)
	}

	return pathParts[0], pathParts[1], nil
}

// Decorates a Google Storage object handle with io.Reader, io.Seeker and
// io.Closer. Derived from
// https://github.com/googleapis/google-cloud-go/issues/1124#issuecomment-419070541
type GSReadSeekCloser struct {
	*storage.ObjectHandle
	Context context.Context
	r       *storage.Reader
	offset  int64 // offset the next range reader starts from
}

func (s *GSReadSeekCloser) Read(buf []byte) (int, error) {
	var err error
	if s.r == nil {
		s.r, err = s.NewRangeReader(s.Context, s.offset, -1)
		if err != nil {
			return 0, err
		}
	}

	return s.r.Read(buf)
}

// Seek only supports rewinding to an absolute offset. As a proxy for seeking,
// the current range reader is closed and the next Read opens a new one.
func (s *GSReadSeekCloser) Seek(offset int64, whence int) (int64, error) {
	if whence != io.SeekStart {
		return 0, fmt.Errorf("io.Seeker 'whence' value %d is not implemented", whence)
	}

	if s.r != nil {
		s.r.Close()
		s.r = nil
	}
	s.offset = offset

	return s.offset, nil
}

func (s *GSReadSeekCloser) Close() error {
	if s.r != nil {
		err := s.r.Close()
		s.r = nil
		return err
	}

	return nil
}

// MaybeOpenSeekerFromGoogleStorage opens path from Google Storage if it is a
// gs:// path and a client was provided; otherwise it opens a local file.
func MaybeOpenSeekerFromGoogleStorage(path string, client *storage.Client) (ReadSeekCloser, error) {
	if client != nil && IsGoogleStoragePath(path) {
		bucketName, pathName, err := splitGoogleStoragePath(path)
		if err != nil {
			return nil, pfx.Err(err)
		}

		handle := client.Bucket(bucketName).Object(pathName)

		wrappedHandle := &GSReadSeekCloser{
			ObjectHandle: handle,
			Context:      context.Background(),
		}

		// Make a hard call so that a missing object fails here rather than on
		// the first Read
		if _, err := wrappedHandle.ObjectHandle.Attrs(wrappedHandle.Context); err != nil {
			return nil, pfx.Err(fmt.Errorf("%s: %s", path, err))
		}

		return wrappedHandle, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	return f, nil
}
