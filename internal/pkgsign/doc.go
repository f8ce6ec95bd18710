// Package pkgsign is the Signer (C12): it uploads a GPG key into a build
// container, imports it, and signs the finished DEB or RPM artifact with
// it. A Packager that runs without a configured [Key] skips signing
// entirely.
package pkgsign
