// Package pkgstate is the Image-State Cache (C6): a persisted map from
// RecipeTarget to ImageState, letting the Image Builder skip rebuilding a
// container image whose dependency set hasn't changed since it was last
// prepared.
//
// encoding/gob is the standard library's own self-describing binary
// serialization — the external-interfaces contract calls the on-disk
// format "a self-describing binary blob", which is gob's own documented
// behavior, so this stays on the standard library rather than reaching
// for a third-party codec; see DESIGN.md.
package pkgstate
