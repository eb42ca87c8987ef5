// Package task implements task operations scoped to their owning user.
//
// Every single-resource operation (get, update, delete) runs through
// Authorize first: the task is fetched by id and its owner compared to the
// authenticated identity. "Does not exist" and "exists but owned by someone
// else" return the same store.ErrNotFound value through the same code path,
// so a caller probing ids cannot learn whether another user's task exists.
//
// List operations skip the per-resource check and instead filter the store
// query by owner, which gives the equivalent guarantee.
package task
