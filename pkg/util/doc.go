// Package util provides small helpers shared across the factories packages.
//
//   - SafeFilePath / SafeFilePathAllowAbsolute reject path traversal in
//     configured directories and schema references
//   - TruncateBody caps request and response bodies for debug logging
package util
