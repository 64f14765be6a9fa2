// Package api exposes the to-do item store as a JSON HTTP API.
//
// Two routes are served: /items for the collection and /items/{uid}
// for a single item, with GET, POST, PUT, PATCH, and DELETE mapped
// onto the corresponding store operations. Every failure is caught at
// the handler boundary and written as a {"message": <text>} body: 404
// when the referenced item does not exist, 400 for everything else.
package api
