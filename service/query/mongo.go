package query

/*
	Description:
		Package `query` is a thin wrapper of https://github.com/mongodb/mongo-go-driver
		covering the operations the bot user store needs.
		Read https://godoc.org/go.mongodb.org/mongo-driver/mongo for any detail.

	Use Case:
		Please Read the testcases for usage of each method
*/

import (
	"fmt"

	"github.com/x-xyz/yieldbot/base/ctx"
	"github.com/x-xyz/yieldbot/domain"
)

var (
	// ErrNotFound is mongo document not found error
	ErrNotFound = fmt.Errorf("document not found")

	// ErrDuplicateKey is an error when violating unique index
	ErrDuplicateKey = fmt.Errorf("duplicate key")
)

type patchOp struct {
	patchMany bool
}

// PatchOp is an alias for functional argument
type PatchOp func(*patchOp)

// WithPatchMany specifies patchMany setting. To patch all entries selected, set patchMany = true.
func WithPatchMany(patchMany bool) PatchOp {
	return func(o *patchOp) {
		o.patchMany = patchMany
	}
}

// Mongo abstract the mongo layer.
type Mongo interface {
	// Insert inserts a new document to the table
	Insert(context ctx.Ctx, table domain.Table, insert interface{}) error

	// FindOne finds one document matching the query. Returns ErrNotFound when nothing matches.
	FindOne(context ctx.Ctx, table domain.Table, query, result interface{}) error

	// Count returns the number of documents matching the selector
	Count(context ctx.Ctx, table domain.Table, selector interface{}) (int, error)

	// Search finds documents with paging and sorting. sort is a field name, prefix it with `-` for descending.
	// limit 0 means no limit.
	Search(context ctx.Ctx, table domain.Table, offset, limit int, sort string, query, results interface{}) error

	// Upsert replaces the document matched by selector or inserts it
	Upsert(context ctx.Ctx, table domain.Table, selector, update interface{}) error

	// Patch `$set`s the fields of update on the matched document(s). Returns ErrNotFound when nothing matches.
	Patch(context ctx.Ctx, table domain.Table, selector, update interface{}, ops ...PatchOp) error

	// RemoveAll removes every document matching selector and returns the removed count
	RemoveAll(context ctx.Ctx, table domain.Table, selector interface{}) (int64, error)

	// Pipe runs an aggregation pipeline and decodes every result into results
	Pipe(context ctx.Ctx, table domain.Table, pipeline, results interface{}) error
}
