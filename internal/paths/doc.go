// Package paths resolves the engine's on-disk layout following XDG
// conventions on Linux and platform-native conventions elsewhere: where
// recipes and image contexts are read from, where finished packages and
// the persisted image-state cache are written.
package paths
