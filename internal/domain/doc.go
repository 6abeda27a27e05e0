// Package domain contains the core domain entities and value objects for gtship.
//
// This package represents the innermost layer of the Clean Architecture. It has
// no dependencies on infrastructure concerns (HTTP, file system, logging) and
// contains only pure business logic.
//
// # Entities
//
//   - [Fix]: A single timestamped position reading
//   - [Identity]: Device id and account reported with every fix
//   - [Endpoint]: Collector host, optional port and optional path
//
// Domain entities are immutable values and are safe to share between goroutines.
package domain
