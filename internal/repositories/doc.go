// Package repositories implements SQLite persistence for the development backend.
//
// Each repository handles CRUD operations with atomic sequence generation for human-readable ordering.
// All repositories support soft deletes via deleted_at timestamps and exclude deleted records from queries by default.
//
// Key Implementations:
//   - [UserRepository] : accounts created through POST /users, with email uniqueness
//   - [PostImageRepository] : metadata for images stored through POST /post/upload/image
//
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
