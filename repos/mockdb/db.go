package mockdb

import (
	"context"

	"github.com/juho05/crossview/repos"
)

type DB struct {
	TrackRepository  TrackRepository
	AlbumRepository  AlbumRepository
	ArtistRepository ArtistRepository

	TrackIndexRepository  IndexRepository[*repos.Track]
	AlbumIndexRepository  IndexRepository[*repos.Album]
	ArtistIndexRepository IndexRepository[*repos.Artist]
	RandomRepository      RandomRepository

	TransactionMock    func(ctx context.Context, fn func(tx repos.Tx) error) error
	NewTransactionMock func(ctx context.Context) (repos.Transaction, error)
	MaxModelIDMock     func(ctx context.Context) (int64, error)
	CommitMock         func() error
	RollbackMock       func() error
	CloseMock          func() error
}

func (d *DB) Track() repos.TrackRepository {
	return d.TrackRepository
}

func (d *DB) Album() repos.AlbumRepository {
	return d.AlbumRepository
}

func (d *DB) Artist() repos.ArtistRepository {
	return d.ArtistRepository
}

func (d *DB) TrackIndex() repos.IndexRepository[*repos.Track] {
	return d.TrackIndexRepository
}

func (d *DB) AlbumIndex() repos.IndexRepository[*repos.Album] {
	return d.AlbumIndexRepository
}

func (d *DB) ArtistIndex() repos.IndexRepository[*repos.Artist] {
	return d.ArtistIndexRepository
}

func (d *DB) Random() repos.RandomRepository {
	return d.RandomRepository
}

func (d *DB) Transaction(ctx context.Context, fn func(tx repos.Tx) error) error {
	if d.TransactionMock != nil {
		return d.TransactionMock(ctx, fn)
	}
	return fn(d)
}

func (d *DB) NewTransaction(ctx context.Context) (repos.Transaction, error) {
	if d.NewTransactionMock != nil {
		return d.NewTransactionMock(ctx)
	}
	return d, nil
}

func (d *DB) MaxModelID(ctx context.Context) (int64, error) {
	if d.MaxModelIDMock != nil {
		return d.MaxModelIDMock(ctx)
	}
	return 0, nil
}

func (d *DB) Commit() error {
	if d.CommitMock != nil {
		return d.CommitMock()
	}
	return nil
}

func (d *DB) Rollback() error {
	if d.RollbackMock != nil {
		return d.RollbackMock()
	}
	return nil
}

func (d *DB) Close() error {
	if d.CloseMock != nil {
		return d.CloseMock()
	}
	return nil
}
