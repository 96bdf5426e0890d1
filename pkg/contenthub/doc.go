// Package contenthub provides the content lifecycle core of a small
// publishing service: post creation with cover-image ingestion, post
// retrieval with author and comment hydration, and comment attachment.
//
// It exposes a single Service interface backed by a Repository (post,
// comment, and user records) and an AssetStore (uploaded binaries).
// Implementations of repositories (memory, Postgres) and asset stores
// (memory, filesystem, S3) are provided under subpackages; selection is
// configuration, not code.
//
// Authentication is an external collaborator: the service receives an
// already-authenticated author ID and performs no access control of its own.
package contenthub
