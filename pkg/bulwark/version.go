// Package bulwark holds module-wide metadata shared by the CLI and tests.
package bulwark

// Version is the current release of the bulwark module.
const Version = "0.1.0"
