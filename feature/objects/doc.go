// Package objects exposes object CRUD over the HTTP gateway.
//
// # Routes
//
//   - GET /buckets/:bucket/objects?prefix= — list keys
//   - PUT /buckets/:bucket/objects/<key> — upload raw body (Content-Type
//     and X-Meta-* headers attach to the object; X-Copy-Source makes it
//     a server-side copy instead)
//   - GET /buckets/:bucket/objects/<key> — download payload
//     (?stat=true for metadata only, ?presign=1h for a presigned URL)
//   - HEAD /buckets/:bucket/objects/<key> — existence check
//   - DELETE /buckets/:bucket/objects/<key> — remove one object
//   - POST /buckets/:bucket/objects/remove — batch removal with per-key
//     failure reporting
package objects
