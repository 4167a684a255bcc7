// Package magetasks provides the build tasks behind ciboard's Magefile.
//
// Tasks are plain functions returning errors so the Magefile can group them
// into namespaces (lint, test) and chain them with mg.Deps.
package magetasks
