// Package buckets exposes bucket CRUD over the HTTP gateway.
//
// # Routes
//
//   - GET /buckets — list buckets with creation timestamps
//   - PUT /buckets/:name — create a bucket
//   - HEAD /buckets/:name — existence check (200 or 404)
//   - DELETE /buckets/:name?force=true — remove a bucket, emptying it
//     first when force is set
//
// Service errors pass through with the storage service's error code in
// the response body.
package buckets
