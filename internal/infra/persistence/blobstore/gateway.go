// Package blobstore persists the roster as a single JSON document in a
// gocloud.dev blob bucket. Production uses a local fileblob directory.
package blobstore

import (
	"context"
	"path/filepath"
	"time"

	"guild/internal/domain/entity"
	domainerrors "guild/internal/domain/errors"
	"guild/internal/domain/repository"

	"github.com/pkg/errors"
	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
	"gocloud.dev/gcerrors"
)

const contentType = "application/json"

// rosterGateway implements the repository.RosterGateway interface.
type rosterGateway struct {
	bucket *blob.Bucket
	key    string
	now    func() time.Time
}

// Option configures a rosterGateway.
type Option func(*rosterGateway)

// WithClock overrides the clock used for the saved-at timestamp.
func WithClock(now func() time.Time) Option {
	return func(g *rosterGateway) {
		g.now = now
	}
}

// NewRosterGateway is the constructor for rosterGateway. The bucket is owned by the caller.
func NewRosterGateway(bucket *blob.Bucket, key string, opts ...Option) repository.RosterGateway {
	g := &rosterGateway{
		bucket: bucket,
		key:    key,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Load reads and decodes the roster document.
func (g *rosterGateway) Load(ctx context.Context) ([]*entity.Hero, error) {
	data, err := g.bucket.ReadAll(ctx, g.key)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return []*entity.Hero{}, nil
		}

		return []*entity.Hero{}, errors.WithStack(domainerrors.NewStorageError(domainerrors.ErrCorruptData, err))
	}

	heroes, err := decodeDocument(data)
	if err != nil {
		return []*entity.Hero{}, errors.WithStack(domainerrors.NewStorageError(domainerrors.ErrCorruptData, err))
	}

	return heroes, nil
}

// Save encodes heroes and replaces the stored document.
func (g *rosterGateway) Save(ctx context.Context, heroes []*entity.Hero) error {
	data, err := encodeDocument(heroes, g.now())
	if err != nil {
		return errors.WithStack(domainerrors.NewStorageError(domainerrors.ErrPersistFailure, err))
	}

	if err := g.bucket.WriteAll(ctx, g.key, data, &blob.WriterOptions{ContentType: contentType}); err != nil {
		return errors.WithStack(domainerrors.NewStorageError(domainerrors.ErrPersistFailure, err))
	}

	return nil
}

// OpenFileBucket opens the directory holding path as a fileblob bucket and
// returns it with the object key for the document. The directory is created
// when missing. Writes go to a temp file next to the document and are renamed
// into place, so readers never see a partial document.
func OpenFileBucket(path string) (*blob.Bucket, string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, "", errors.Wrapf(err, "resolve roster path %q", path)
	}

	dir, key := filepath.Split(abs)
	if key == "" {
		return nil, "", errors.Errorf("roster path %q names a directory", path)
	}

	bucket, err := fileblob.OpenBucket(dir, &fileblob.Options{
		CreateDir: true,
		NoTempDir: true,
		Metadata:  fileblob.MetadataDontWrite,
	})
	if err != nil {
		return nil, "", errors.Wrapf(err, "open roster directory %q", dir)
	}

	return bucket, key, nil
}
