// Package server provides HTTP routing, middleware, and the development backend the forms submit to.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally. Each path keeps a method table so a single
// path can serve several methods, and an unregistered method gets 405 with an Allow header.
//
// Error bodies use the {"detail": "..."} shape so clients can show the message verbatim.
//
// # Development Backend
//
// [Backend] serves the endpoints the clients call:
//   - GET /                    liveness message
//   - POST /users              create an account (password stored as a bcrypt hash)
//   - POST /post/upload/image  validate and store an image from the multipart "file" field
//   - GET /post/images         list recorded uploads
//   - GET /uploads/{name}      serve a stored image
//
// Upload validation runs in order: declared image/* content type, size limit, decodable with both sides at
// least the minimum, and a color (non-grayscale) model. The first failure is reported with status 400.
package server
