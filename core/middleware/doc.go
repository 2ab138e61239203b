// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation through the X-API-Key header.
//   - rayid: assigns a request id (RayID) to every request, stores it in the
//     context for logger.WithRayID and echoes it in the X-Ray-ID header.
//
// RayID is registered first so that even rejected requests are traceable.
package middleware
