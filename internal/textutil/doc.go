// Package textutil sanitizes user-supplied filenames before they become
// storage object keys or filesystem paths.
package textutil
