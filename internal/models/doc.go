// Package models defines the wire types exchanged with the backend and the entities the development backend persists.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): the JSON shapes of the HTTP API
//   - [SignupRequest] : body of POST /users
//   - [UploadResponse] / [UploadResult] : body of a successful POST /post/upload/image
//   - [ErrorResponse] : body of a non-2xx response, carrying "detail"
//
// 2. Persistent Entities: database-backed models
//   - [User] : accounts created by signup, with a bcrypt password hash
//   - [PostImage] : uploaded image metadata; the bytes live under the upload directory
//
// All persistent entities implement the [Model] interface.
package models
