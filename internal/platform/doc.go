// Package platform provides the filesystem primitives shared by the copier
// and the installer: existence and type probes, and permission handling that
// degrades to a no-op on Windows.
package platform
