// Package models defines the data model for the infinitunes catalog client.
//
// The package contains two categories of types:
//
// 1. Catalog records decoded from the JioSaavn API:
//   - [CatalogItem] : fields shared by every catalog entry (songs, albums, playlists, charts)
//   - [Song] / [Album] : the two concrete catalog shapes
//   - [ArtistField] : tagged union over the two wire shapes of an artist field
//   - [Image] : fixed three-variant artwork list with a boolean "no artwork" sentinel
//   - [HomePayload] / [Home] : raw and reshaped home-page aggregates
//
// 2. Persistent entities backed by the library database:
//   - [Download] : a completed audio download with its quality tier and file path
//
// Persistent entities implement the [Model] interface providing ID generation,
// timestamps, and validation. The [Repository] interface defines standard CRUD
// operations for database access.
package models
