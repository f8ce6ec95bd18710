// Package pkgarchive is the Archive Service (C2): in-memory TAR and
// TAR.GZ creation and extraction, shared by source ingestion (host files
// uploaded into a build container) and container file transfer (copy-in
// for sources and patches, copy-out for finished artifacts).
//
// archive/tar and compress/gzip are the standard library's own answer to
// this concern and nothing in the retrieval pack reaches for a third-party
// tar library, so this package stays on the standard library; see
// DESIGN.md for the justification this project requires whenever a
// component is not grounded on a pack dependency.
package pkgarchive
