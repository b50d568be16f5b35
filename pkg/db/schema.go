package db

import "context"

// SchemaInterface represents the schema of the database.
type SchemaInterface interface {
	// Upgrade upgrades the schema to the latest version.
	Upgrade(ctx context.Context) error

	// Version returns the current version of the schema.
	Version(ctx context.Context) (int, error)

	// Context returns a context which is cancelled when the schema in
	// the database is older than the schema repository requires.
	//
	// args:
	//
	// - ctx: parent context.
	//
	// returns:
	//
	// - context.Context: context cancelled on outdated schema.
	//
	// - context.CancelFunc: cancel the watch.
	Context(ctx context.Context) (context.Context, context.CancelFunc)
}
