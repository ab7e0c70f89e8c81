package repos

import "context"

type Tx interface {
	Track() TrackRepository
	Album() AlbumRepository
	Artist() ArtistRepository

	TrackIndex() IndexRepository[*Track]
	AlbumIndex() IndexRepository[*Album]
	ArtistIndex() IndexRepository[*Artist]
	Random() RandomRepository
}

type Transaction interface {
	Tx
	Commit() error
	Rollback() error
}

type DB interface {
	Tx
	Transaction(ctx context.Context, fn func(tx Tx) error) error

	NewTransaction(ctx context.Context) (Transaction, error)

	// MaxModelID returns the highest model id that still owns index rows or 0.
	MaxModelID(ctx context.Context) (int64, error)

	Close() error
}
